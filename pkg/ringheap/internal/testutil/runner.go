package testutil

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/calvinalkan/ringheap/pkg/ringheap"
	"github.com/calvinalkan/ringheap/pkg/ringheap/model"
)

// Harness holds a real heap and its model side by side.
type Harness struct {
	Real  *ringheap.Heap[Item]
	Model *model.Heap[Item]

	// Check verifies internal invariants of Real after every operation.
	// It is supplied by in-package tests through export_test.go.
	Check func() error

	nextID uint64
}

// NewHarness creates a real heap and a model with the same capacity.
func NewHarness(tb testing.TB, capacity int, check func(*ringheap.Heap[Item]) error) *Harness {
	tb.Helper()

	realHeap, err := ringheap.New(capacity, CompareItems)
	if err != nil {
		tb.Fatalf("ringheap.New(%d): %v", capacity, err)
	}

	ref, err := model.New(capacity, CompareItems)
	if err != nil {
		tb.Fatalf("model.New(%d): %v", capacity, err)
	}

	h := &Harness{Real: realHeap, Model: ref}
	if check != nil {
		h.Check = func() error { return check(realHeap) }
	}

	return h
}

// Apply runs op against both sides and fails tb on the first divergence.
func (h *Harness) Apply(tb testing.TB, opIndex int, op Operation) {
	tb.Helper()

	switch operation := op.(type) {
	case OpPush:
		h.nextID++
		it := Item{Priority: operation.Priority, ID: h.nextID}

		realEvicted, realDid := h.Real.Push(it)
		modelEvicted, modelDid := h.Model.Push(it)

		if realDid != modelDid || realEvicted != modelEvicted {
			tb.Fatalf("op %d %s: evicted real=(%+v,%v) model=(%+v,%v)",
				opIndex, op, realEvicted, realDid, modelEvicted, modelDid)
		}

	case OpPopTop:
		h.popOne(tb, opIndex, op)

	case OpPeekTop:
		got, ok := h.Real.PeekTop()
		if ok != (h.Model.Len() > 0) {
			tb.Fatalf("op %d %s: ok=%v with model len %d", opIndex, op, ok, h.Model.Len())
		}

		if ok && !h.Model.IsTop(got) {
			tb.Fatalf("op %d %s: got %+v, want one of %+v", opIndex, op, got, h.Model.TopCandidates())
		}

	case OpPeekOldest:
		got, ok := h.Real.PeekOldest()
		want, wantOK := h.Model.Oldest()

		if ok != wantOK || got != want {
			tb.Fatalf("op %d %s: real=(%+v,%v) model=(%+v,%v)", opIndex, op, got, ok, want, wantOK)
		}

	case OpDrain:
		taken := 0

		for got := range h.Real.DrainSorted() {
			if !h.Model.IsTop(got) {
				tb.Fatalf("op %d %s: drained %+v, want one of %+v", opIndex, op, got, h.Model.TopCandidates())
			}

			h.Model.Remove(got)
			taken++

			if operation.N > 0 && taken == operation.N {
				break
			}
		}

		if operation.N == 0 && h.Model.Len() != 0 {
			tb.Fatalf("op %d %s: full drain left %d model values", opIndex, op, h.Model.Len())
		}

	case OpAll:
		var got []Item
		for it := range h.Real.All() {
			got = append(got, it)
		}

		if diff := cmp.Diff(h.Model.Values(), got, cmpopts.EquateEmpty()); diff != "" {
			tb.Fatalf("op %d %s: arrival order mismatch (-model +real):\n%s", opIndex, op, diff)
		}

	case OpClear:
		h.Real.Clear()
		h.Model.Clear()

	default:
		tb.Fatalf("op %d: unknown operation %T", opIndex, op)
	}

	h.compare(tb, opIndex, op)
}

func (h *Harness) popOne(tb testing.TB, opIndex int, op Operation) {
	tb.Helper()

	got, ok := h.Real.PopTop()
	if ok != (h.Model.Len() > 0) {
		tb.Fatalf("op %d %s: ok=%v with model len %d", opIndex, op, ok, h.Model.Len())
	}

	if !ok {
		return
	}

	if !h.Model.IsTop(got) {
		tb.Fatalf("op %d %s: got %+v, want one of %+v", opIndex, op, got, h.Model.TopCandidates())
	}

	h.Model.Remove(got)
}

func (h *Harness) compare(tb testing.TB, opIndex int, op Operation) {
	tb.Helper()

	if h.Real.Len() != h.Model.Len() {
		tb.Fatalf("op %d %s: len real=%d model=%d", opIndex, op, h.Real.Len(), h.Model.Len())
	}

	if h.Real.Len() > h.Real.Cap() {
		tb.Fatalf("op %d %s: len %d exceeds capacity %d", opIndex, op, h.Real.Len(), h.Real.Cap())
	}

	if h.Real.IsFull() != (h.Model.Len() == h.Model.Capacity) {
		tb.Fatalf("op %d %s: IsFull=%v with model len %d/%d", opIndex, op, h.Real.IsFull(), h.Model.Len(), h.Model.Capacity)
	}

	if h.Check != nil {
		if err := h.Check(); err != nil {
			tb.Fatalf("op %d %s: invariant violated: %v", opIndex, op, err)
		}
	}
}

// Run applies ops in order and finishes with a full drain that must empty
// both sides.
func (h *Harness) Run(tb testing.TB, ops []Operation) {
	tb.Helper()

	for i, op := range ops {
		h.Apply(tb, i, op)
	}

	h.Apply(tb, len(ops), OpDrain{})
}
