package ringheap

import (
	"cmp"
	"fmt"
	"iter"
)

// Heap is a fixed-capacity priority queue that evicts its oldest value on
// overflow.
//
// The zero value is not usable; construct with [New] or [NewOrdered].
type Heap[T any] struct {
	cmp   func(a, b T) int
	slots *slotTable[T]
	index *heapIndex
}

// New returns an empty Heap retaining at most capacity values, ordered by
// compare. compare(a, b) < 0 means a is popped before b.
//
// It returns an error wrapping [ErrInvalidConfig] if capacity <= 0 or
// compare is nil.
func New[T any](capacity int, compare func(a, b T) int) (*Heap[T], error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: capacity must be > 0, got %d", ErrInvalidConfig, capacity)
	}

	if compare == nil {
		return nil, fmt.Errorf("%w: comparator is nil", ErrInvalidConfig)
	}

	h := &Heap[T]{
		cmp:   compare,
		slots: newSlotTable[T](capacity),
	}
	h.index = newHeapIndex(capacity, h.before)

	return h, nil
}

// NewOrdered returns a min-heap over the natural order of T.
func NewOrdered[T cmp.Ordered](capacity int) (*Heap[T], error) {
	return New(capacity, cmp.Compare[T])
}

// Reverse returns a comparator with the opposite order of c. Use it to turn
// a min-heap comparator into a max-heap one.
func Reverse[T any](c func(a, b T) int) func(a, b T) int {
	return func(a, b T) int {
		return c(b, a)
	}
}

// Push adds v.
//
// If the heap is full, the oldest retained value is evicted first and
// returned with true, whatever its priority relative to v. Otherwise Push
// returns the zero value and false.
func (h *Heap[T]) Push(v T) (T, bool) {
	var (
		evicted  T
		didEvict bool
	)

	if h.slots.full() {
		oldest, _ := h.slots.oldest()
		h.index.remove(oldest)
		evicted = h.slots.free(oldest)
		didEvict = true
	}

	id, ok := h.slots.allocate(v)
	if !ok {
		panic("ringheap: no free cell after eviction")
	}

	h.index.insert(id)

	return evicted, didEvict
}

// PopTop removes and returns the highest-priority value.
// It returns false if the heap is empty.
func (h *Heap[T]) PopTop() (T, bool) {
	id, ok := h.index.popTop()
	if !ok {
		var zero T

		return zero, false
	}

	return h.slots.free(id), true
}

// PeekTop returns the highest-priority value without removing it.
func (h *Heap[T]) PeekTop() (T, bool) {
	id, ok := h.index.top()
	if !ok {
		var zero T

		return zero, false
	}

	return h.slots.value(id), true
}

// PeekOldest returns the value the next overflowing Push would evict.
func (h *Heap[T]) PeekOldest() (T, bool) {
	id, ok := h.slots.oldest()
	if !ok {
		var zero T

		return zero, false
	}

	return h.slots.value(id), true
}

// Len returns the number of retained values.
func (h *Heap[T]) Len() int {
	return h.slots.len()
}

// Cap returns the capacity given to [New].
func (h *Heap[T]) Cap() int {
	return h.slots.capacity()
}

// IsEmpty reports whether Len() == 0.
func (h *Heap[T]) IsEmpty() bool {
	return h.slots.len() == 0
}

// IsFull reports whether the next Push will evict.
func (h *Heap[T]) IsFull() bool {
	return h.slots.full()
}

// DrainSorted returns an iterator that pops values in priority order until
// the heap is empty.
//
// Each step removes the value it yields. Breaking out of the loop early
// leaves the remaining values in the heap; ranging again continues from
// there. The heap must not be mutated by other calls during iteration.
func (h *Heap[T]) DrainSorted() iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			v, ok := h.PopTop()
			if !ok || !yield(v) {
				return
			}
		}
	}
}

// All returns an iterator over the retained values, oldest first.
// It does not modify the heap.
func (h *Heap[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		h.slots.each(func(id int) bool {
			return yield(h.slots.value(id))
		})
	}
}

// Clear removes all values. Capacity and comparator are kept.
func (h *Heap[T]) Clear() {
	h.index.clear()
	h.slots.clear()
}

func (h *Heap[T]) before(a, b int) bool {
	return h.cmp(h.slots.cells[a].value, h.slots.cells[b].value) < 0
}
