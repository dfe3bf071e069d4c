package ringheap

// noCell marks "no cell" in position maps and lookups.
const noCell = -1

// cell is one storage unit owned by a slotTable.
type cell[T any] struct {
	value T
	seq   uint64
	live  bool
}

// arrival is one entry of the arrival ring. It goes stale when its cell is
// freed (or freed and reallocated, which changes the sequence).
type arrival struct {
	cell int
	seq  uint64
}

// slotTable is the arena behind a Heap: a fixed array of cells addressed by
// stable ids, plus the arrival order of the live ones.
//
// Dead cells are reused in FIFO order, so a table that only ever evicts its
// oldest cell cycles through ids exactly like a ring buffer.
//
// Arrival order lives in its own ring of 2*capacity entries because cells
// can be freed out of order (PopTop). Freed entries are left in place and
// skipped lazily when they reach head. When the ring fills up, at least
// capacity+1 of its entries are stale, so compacting it is amortized O(1)
// per allocation.
type slotTable[T any] struct {
	cells []cell[T]

	// freeIDs is a FIFO ring of dead cell ids.
	freeIDs   []int
	freeHead  int
	freeCount int

	arrivals  []arrival
	head      int // oldest live entry in arrivals, when live > 0
	arrivalsN int // entries from head to tail, live and stale

	live    int
	nextSeq uint64
}

func newSlotTable[T any](capacity int) *slotTable[T] {
	t := &slotTable[T]{
		cells:    make([]cell[T], capacity),
		freeIDs:  make([]int, capacity),
		arrivals: make([]arrival, 2*capacity),
	}

	t.resetFree()

	return t
}

func (t *slotTable[T]) capacity() int {
	return len(t.cells)
}

func (t *slotTable[T]) len() int {
	return t.live
}

func (t *slotTable[T]) full() bool {
	return t.live == len(t.cells)
}

// allocate stores v in the longest-dead cell and returns its id.
// It returns false if every cell is live.
func (t *slotTable[T]) allocate(v T) (int, bool) {
	if t.full() {
		return noCell, false
	}

	id := t.freeIDs[t.freeHead]
	t.freeHead = (t.freeHead + 1) % len(t.freeIDs)
	t.freeCount--

	seq := t.nextSeq
	t.nextSeq++

	t.cells[id] = cell[T]{value: v, seq: seq, live: true}
	t.live++

	if t.arrivalsN == len(t.arrivals) {
		t.compact()
	}

	t.arrivals[(t.head+t.arrivalsN)%len(t.arrivals)] = arrival{cell: id, seq: seq}
	t.arrivalsN++

	return id, true
}

// free releases a live cell and returns the value it held. The cell is
// zeroed so the table keeps no reference to the value.
func (t *slotTable[T]) free(id int) T {
	c := &t.cells[id]
	if !c.live {
		panic("ringheap: free of dead cell")
	}

	v := c.value
	*c = cell[T]{seq: c.seq}
	t.live--

	t.freeIDs[(t.freeHead+t.freeCount)%len(t.freeIDs)] = id
	t.freeCount++

	t.advanceHead()

	return v
}

// oldest returns the live cell with the smallest sequence.
func (t *slotTable[T]) oldest() (int, bool) {
	if t.live == 0 {
		return noCell, false
	}

	return t.arrivals[t.head].cell, true
}

func (t *slotTable[T]) value(id int) T {
	return t.cells[id].value
}

// each yields live cell ids oldest first.
func (t *slotTable[T]) each(yield func(id int) bool) {
	for i := range t.arrivalsN {
		e := t.arrivals[(t.head+i)%len(t.arrivals)]
		if t.stale(e) {
			continue
		}

		if !yield(e.cell) {
			return
		}
	}
}

// clear frees every cell. Sequences keep counting up.
func (t *slotTable[T]) clear() {
	for i := range t.cells {
		t.cells[i] = cell[T]{seq: t.cells[i].seq}
	}

	t.live = 0
	t.head = 0
	t.arrivalsN = 0
	t.resetFree()
}

func (t *slotTable[T]) resetFree() {
	for i := range t.freeIDs {
		t.freeIDs[i] = i
	}

	t.freeHead = 0
	t.freeCount = len(t.freeIDs)
}

func (t *slotTable[T]) stale(e arrival) bool {
	c := &t.cells[e.cell]

	return !c.live || c.seq != e.seq
}

// advanceHead skips stale entries at head. Each entry is skipped at most
// once, so the cost is charged to the free that made it stale.
func (t *slotTable[T]) advanceHead() {
	for t.arrivalsN > 0 && t.stale(t.arrivals[t.head]) {
		t.head = (t.head + 1) % len(t.arrivals)
		t.arrivalsN--
	}

	if t.arrivalsN == 0 {
		t.head = 0
	}
}

// compact drops stale entries in place, keeping arrival order.
func (t *slotTable[T]) compact() {
	n := len(t.arrivals)
	kept := 0

	for i := range t.arrivalsN {
		e := t.arrivals[(t.head+i)%n]
		if t.stale(e) {
			continue
		}

		t.arrivals[(t.head+kept)%n] = e
		kept++
	}

	t.arrivalsN = kept
}
