// Package ringheap provides a fixed-capacity priority queue that evicts by age.
//
// A [Heap] answers two questions at once: which retained value has the
// highest priority (heap order), and which retained value arrived first
// (arrival order). Once the heap is full, every [Heap.Push] evicts the oldest
// retained value, regardless of its priority. Heap order is a ranking view
// over whatever is currently retained; recency is the capacity constraint.
//
// Typical uses are sliding-window top-k, bounded retry/delay queues and
// admission buffers where memory must stay fixed.
//
// # Basic Usage
//
//	h, err := ringheap.New(3, cmp.Compare[int]) // min-heap
//	if err != nil {
//	    // capacity <= 0 or nil comparator: [ErrInvalidConfig]
//	}
//
//	h.Push(5)
//	h.Push(3)
//	h.Push(8)
//	h.Push(1) // evicts 5, the oldest arrival
//
//	top, _ := h.PeekTop() // 1
//
//	for v := range h.DrainSorted() {
//	    // 1, 3, 8
//	}
//
// # Ordering
//
// The comparator follows the [cmp.Compare] convention: cmp(a, b) < 0 means a
// is more prioritized than b. A max-heap is a min-heap over [Reverse] of the
// comparator. Values the comparator reports as equal come out in an
// unspecified order; the heap is not FIFO-stable among ties.
//
// # Complexity
//
// Push, PopTop and eviction are O(log n). PeekTop, PeekOldest and the size
// accessors are O(1). All storage is allocated once by [New].
//
// # Concurrency
//
// A Heap is a single-owner structure and holds no locks. Concurrent reads
// (PeekTop, Len, ...) are safe only while nothing mutates the heap; any
// mutation must be serialized by the caller.
package ringheap
