package testutil

import (
	"cmp"
	"fmt"
)

// Item is the value type pushed by the harness. Priorities are drawn from a
// small range so ties are common; ID is unique per push so the model can
// tell tied items apart.
type Item struct {
	Priority uint8
	ID       uint64
}

// CompareItems orders items by priority only. IDs never break ties.
func CompareItems(a, b Item) int {
	return cmp.Compare(a.Priority, b.Priority)
}

// Operation is a single public-API call we apply to both the model and the
// real heap.
type Operation interface {
	Name() string
	String() string
}

// OpPush represents a Push(item) call. The runner assigns the item ID.
type OpPush struct {
	Priority uint8
}

// Name returns the operation name.
func (OpPush) Name() string { return "Push" }
func (operation OpPush) String() string {
	return fmt.Sprintf("Push(priority=%d)", operation.Priority)
}

// OpPopTop represents a PopTop() call.
type OpPopTop struct{}

// Name returns the operation name.
func (OpPopTop) Name() string   { return "PopTop" }
func (OpPopTop) String() string { return "PopTop()" }

// OpPeekTop represents a PeekTop() call.
type OpPeekTop struct{}

// Name returns the operation name.
func (OpPeekTop) Name() string   { return "PeekTop" }
func (OpPeekTop) String() string { return "PeekTop()" }

// OpPeekOldest represents a PeekOldest() call.
type OpPeekOldest struct{}

// Name returns the operation name.
func (OpPeekOldest) Name() string   { return "PeekOldest" }
func (OpPeekOldest) String() string { return "PeekOldest()" }

// OpDrain ranges over DrainSorted() and stops after N values (0 = all).
type OpDrain struct {
	N int
}

// Name returns the operation name.
func (OpDrain) Name() string { return "Drain" }
func (operation OpDrain) String() string {
	return fmt.Sprintf("Drain(n=%d)", operation.N)
}

// OpAll collects All().
type OpAll struct{}

// Name returns the operation name.
func (OpAll) Name() string   { return "All" }
func (OpAll) String() string { return "All()" }

// OpClear represents a Clear() call.
type OpClear struct{}

// Name returns the operation name.
func (OpClear) Name() string   { return "Clear" }
func (OpClear) String() string { return "Clear()" }
