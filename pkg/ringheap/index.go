package ringheap

// heapIndex is a binary heap of cell ids with a reverse map from cell id to
// heap position. The reverse map is what makes removal of an arbitrary cell
// (the oldest one, on eviction) O(log n) instead of a linear search.
//
// Invariants:
//   - for every i > 0, before(order[i], order[parent(i)]) is false
//   - position[order[i]] == i for every i
//   - position[c] == noCell for every c not in order
type heapIndex struct {
	order    []int
	position []int

	// before reports whether cell a has strictly higher priority than cell b.
	before func(a, b int) bool
}

func newHeapIndex(capacity int, before func(a, b int) bool) *heapIndex {
	position := make([]int, capacity)
	for i := range position {
		position[i] = noCell
	}

	return &heapIndex{
		order:    make([]int, 0, capacity),
		position: position,
		before:   before,
	}
}

func (h *heapIndex) len() int {
	return len(h.order)
}

// insert adds a cell id that is not yet tracked.
func (h *heapIndex) insert(id int) {
	h.order = append(h.order, id)
	h.position[id] = len(h.order) - 1
	h.up(len(h.order) - 1)
}

// remove drops id from the heap. It returns false if id is not tracked.
func (h *heapIndex) remove(id int) bool {
	pos := h.position[id]
	if pos == noCell {
		return false
	}

	last := len(h.order) - 1
	if pos != last {
		h.swap(pos, last)
	}

	h.order = h.order[:last]
	h.position[id] = noCell

	// The entry moved into pos came from the bottom of some other subtree,
	// so it may belong above or below pos. At most one direction moves it.
	if pos < last {
		if !h.down(pos) {
			h.up(pos)
		}
	}

	return true
}

func (h *heapIndex) top() (int, bool) {
	if len(h.order) == 0 {
		return noCell, false
	}

	return h.order[0], true
}

func (h *heapIndex) popTop() (int, bool) {
	id, ok := h.top()
	if !ok {
		return noCell, false
	}

	h.remove(id)

	return id, true
}

func (h *heapIndex) clear() {
	for _, id := range h.order {
		h.position[id] = noCell
	}

	h.order = h.order[:0]
}

func (h *heapIndex) up(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if !h.before(h.order[i], h.order[parent]) {
			return
		}

		h.swap(i, parent)
		i = parent
	}
}

// down sifts order[i] towards the leaves and reports whether it moved.
func (h *heapIndex) down(i int) bool {
	start := i
	n := len(h.order)

	for {
		child := 2*i + 1
		if child >= n {
			break
		}

		if right := child + 1; right < n && h.before(h.order[right], h.order[child]) {
			child = right
		}

		if !h.before(h.order[child], h.order[i]) {
			break
		}

		h.swap(i, child)
		i = child
	}

	return i > start
}

func (h *heapIndex) swap(i, j int) {
	h.order[i], h.order[j] = h.order[j], h.order[i]
	h.position[h.order[i]] = i
	h.position[h.order[j]] = j
}
