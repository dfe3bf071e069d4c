package ringheap

import "fmt"

// Export internal functions and variables for testing.
// This file is only compiled during tests.

// CheckInvariantsForTesting verifies the internal consistency of h: heap
// order, the reverse position map, the free ring and arrival order.
// It returns the first violation found, or nil.
func (h *Heap[T]) CheckInvariantsForTesting() error {
	slots := h.slots
	index := h.index
	capacity := slots.capacity()

	if slots.live < 0 || slots.live > capacity {
		return fmt.Errorf("live=%d outside [0, %d]", slots.live, capacity)
	}

	if index.len() != slots.live {
		return fmt.Errorf("heap tracks %d cells, slot table has %d live", index.len(), slots.live)
	}

	for i := 1; i < len(index.order); i++ {
		parent := (i - 1) / 2
		if h.before(index.order[i], index.order[parent]) {
			return fmt.Errorf("heap order violated: order[%d]=%d before parent order[%d]=%d",
				i, index.order[i], parent, index.order[parent])
		}
	}

	for i, id := range index.order {
		if !slots.cells[id].live {
			return fmt.Errorf("heap tracks dead cell %d at %d", id, i)
		}

		if index.position[id] != i {
			return fmt.Errorf("position[%d]=%d, want %d", id, index.position[id], i)
		}
	}

	for id := range capacity {
		if !slots.cells[id].live && index.position[id] != noCell {
			return fmt.Errorf("dead cell %d has position %d", id, index.position[id])
		}
	}

	if slots.freeCount+slots.live != capacity {
		return fmt.Errorf("free=%d + live=%d != capacity=%d", slots.freeCount, slots.live, capacity)
	}

	for i := range slots.freeCount {
		id := slots.freeIDs[(slots.freeHead+i)%capacity]
		if slots.cells[id].live {
			return fmt.Errorf("free ring holds live cell %d", id)
		}
	}

	if slots.live > 0 && slots.stale(slots.arrivals[slots.head]) {
		return fmt.Errorf("head entry %d is stale", slots.head)
	}

	seen := 0
	lastSeq := uint64(0)

	for id := range slots.each {
		seq := slots.cells[id].seq
		if seen > 0 && seq <= lastSeq {
			return fmt.Errorf("arrival order not increasing: seq %d after %d", seq, lastSeq)
		}

		lastSeq = seq
		seen++
	}

	if seen != slots.live {
		return fmt.Errorf("arrival ring has %d live entries, want %d", seen, slots.live)
	}

	return nil
}

// OldestCellForTesting returns the cell id the next eviction would free.
func (h *Heap[T]) OldestCellForTesting() (int, bool) {
	return h.slots.oldest()
}

// ArrivalEntriesForTesting returns the number of live and stale entries held
// by the arrival ring.
func (h *Heap[T]) ArrivalEntriesForTesting() int {
	return h.slots.arrivalsN
}
