// Package model provides a deliberately simple, in-memory reference model of
// ringheap's publicly observable behavior.
//
// The model is intentionally easy to audit: values live in one slice in
// arrival order and every priority query is a linear scan. It favors clarity
// over performance and shares no code with the real implementation.
//
// Values must be distinct for the model to track which element a tied pop
// removed, so tests wrap priorities in a struct carrying a unique id.
package model

import (
	"fmt"
	"slices"

	"github.com/calvinalkan/ringheap/pkg/ringheap"
)

// Entry is one retained value with the sequence it was pushed at.
type Entry[T comparable] struct {
	Value T
	Seq   uint64
}

// Heap mirrors ringheap.Heap.
type Heap[T comparable] struct {
	Capacity int
	Compare  func(a, b T) int

	// Entries holds retained values, oldest first.
	Entries []Entry[T]
	NextSeq uint64
}

// New validates the configuration the same way ringheap.New does.
func New[T comparable](capacity int, compare func(a, b T) int) (*Heap[T], error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: capacity must be > 0, got %d", ringheap.ErrInvalidConfig, capacity)
	}

	if compare == nil {
		return nil, fmt.Errorf("%w: comparator is nil", ringheap.ErrInvalidConfig)
	}

	return &Heap[T]{Capacity: capacity, Compare: compare}, nil
}

// Clone makes a deep copy so metamorphic tests can fork the same state.
func (h *Heap[T]) Clone() *Heap[T] {
	if h == nil {
		return nil
	}

	clone := *h
	clone.Entries = slices.Clone(h.Entries)

	return &clone
}

// Len returns the number of retained values.
func (h *Heap[T]) Len() int {
	return len(h.Entries)
}

// Push appends v, evicting the oldest entry first when full.
func (h *Heap[T]) Push(v T) (T, bool) {
	var (
		evicted  T
		didEvict bool
	)

	if len(h.Entries) == h.Capacity {
		evicted = h.Entries[0].Value
		didEvict = true
		h.Entries = slices.Delete(h.Entries, 0, 1)
	}

	h.Entries = append(h.Entries, Entry[T]{Value: v, Seq: h.NextSeq})
	h.NextSeq++

	return evicted, didEvict
}

// Oldest returns the value the next overflowing Push evicts.
func (h *Heap[T]) Oldest() (T, bool) {
	if len(h.Entries) == 0 {
		var zero T

		return zero, false
	}

	return h.Entries[0].Value, true
}

// TopCandidates returns every retained value tied for the highest priority,
// oldest first. Any of them is a valid PopTop result.
func (h *Heap[T]) TopCandidates() []T {
	var best []T

	for _, e := range h.Entries {
		if len(best) == 0 {
			best = append(best, e.Value)

			continue
		}

		switch c := h.Compare(e.Value, best[0]); {
		case c < 0:
			best = append(best[:0], e.Value)
		case c == 0:
			best = append(best, e.Value)
		}
	}

	return best
}

// IsTop reports whether v is retained and no retained value outranks it.
func (h *Heap[T]) IsTop(v T) bool {
	return slices.Contains(h.TopCandidates(), v)
}

// Remove deletes the entry holding v. It returns false if v is not retained.
func (h *Heap[T]) Remove(v T) bool {
	i := slices.IndexFunc(h.Entries, func(e Entry[T]) bool { return e.Value == v })
	if i < 0 {
		return false
	}

	h.Entries = slices.Delete(h.Entries, i, i+1)

	return true
}

// PopTop removes the oldest of the top candidates.
func (h *Heap[T]) PopTop() (T, bool) {
	candidates := h.TopCandidates()
	if len(candidates) == 0 {
		var zero T

		return zero, false
	}

	h.Remove(candidates[0])

	return candidates[0], true
}

// Values returns retained values, oldest first.
func (h *Heap[T]) Values() []T {
	values := make([]T, 0, len(h.Entries))
	for _, e := range h.Entries {
		values = append(values, e.Value)
	}

	return values
}

// Sorted returns retained values in priority order. Ties keep arrival order.
func (h *Heap[T]) Sorted() []T {
	values := h.Values()
	slices.SortStableFunc(values, h.Compare)

	return values
}

// Clear drops every entry. Sequences keep counting up.
func (h *Heap[T]) Clear() {
	h.Entries = nil
}
