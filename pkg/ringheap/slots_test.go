package ringheap

import (
	"iter"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func liveIDs[T any](table *slotTable[T]) []int {
	return slices.Collect(iter.Seq[int](table.each))
}

func Test_SlotTable_Allocates_Cells_In_Ring_Order_When_Fresh(t *testing.T) {
	t.Parallel()

	table := newSlotTable[string](3)

	for want, v := range []string{"a", "b", "c"} {
		id, ok := table.allocate(v)
		require.True(t, ok, "allocate %q", v)
		assert.Equal(t, want, id, "fresh table hands out ids in order")
	}

	_, ok := table.allocate("d")
	assert.False(t, ok, "allocate must fail when every cell is live")
	assert.True(t, table.full(), "table should be full")
}

func Test_SlotTable_Reuses_Freed_Cell_When_Oldest_Evicted(t *testing.T) {
	t.Parallel()

	table := newSlotTable[int](3)
	for v := range 3 {
		table.allocate(v)
	}

	// Steady-state overflow: free oldest, allocate. Ids cycle 0, 1, 2, 0...
	for round := range 7 {
		oldest, ok := table.oldest()
		require.True(t, ok)
		assert.Equal(t, round%3, oldest, "round %d: oldest cell", round)

		got := table.free(oldest)
		assert.Equal(t, round, got, "round %d: freed value", round)

		id, ok := table.allocate(round + 3)
		require.True(t, ok)
		assert.Equal(t, oldest, id, "round %d: freed cell is reused", round)
	}

	assert.Empty(t, cmp.Diff([]int{1, 2, 0}, liveIDs(table)), "arrival order of cell ids")
}

func Test_SlotTable_Advances_Head_When_Oldest_Freed_After_Holes(t *testing.T) {
	t.Parallel()

	table := newSlotTable[int](4)
	for v := range 4 {
		table.allocate(v)
	}

	table.free(1)
	table.free(2)

	oldest, _ := table.oldest()
	assert.Equal(t, 0, oldest, "freeing later cells leaves head in place")

	table.free(0)

	oldest, ok := table.oldest()
	require.True(t, ok)
	assert.Equal(t, 3, oldest, "head skips both dead cells")
	assert.Equal(t, 1, table.arrivalsN, "stale entries before head are dropped")

	table.free(3)

	_, ok = table.oldest()
	assert.False(t, ok, "empty table has no oldest")
	assert.Equal(t, 0, table.arrivalsN, "empty table has no arrival entries")
}

func Test_SlotTable_Reuses_Longest_Dead_Cell_When_Several_Free(t *testing.T) {
	t.Parallel()

	table := newSlotTable[int](4)
	for v := range 4 {
		table.allocate(v)
	}

	table.free(2)
	table.free(0)

	id, _ := table.allocate(10)
	assert.Equal(t, 2, id, "first freed cell is reused first")

	id, _ = table.allocate(11)
	assert.Equal(t, 0, id, "then the next one")

	// Cell 0 now holds the newest value even though its id is lowest.
	assert.Empty(t, cmp.Diff([]int{1, 3, 2, 0}, liveIDs(table)), "arrival order")
}

func Test_SlotTable_Compacts_Arrivals_When_Ring_Full(t *testing.T) {
	t.Parallel()

	const capacity = 3

	table := newSlotTable[int](capacity)
	table.allocate(0) // long-lived, pins head

	// Each round adds an entry and frees it again, leaving it stale behind
	// head. The ring would overflow without compaction.
	for v := 1; v <= 5*capacity; v++ {
		id, ok := table.allocate(v)
		require.True(t, ok)
		table.free(id)

		require.LessOrEqual(t, table.arrivalsN, 2*capacity, "arrival ring is bounded")
	}

	id, _ := table.allocate(99)
	assert.Empty(t, cmp.Diff([]int{0, id}, liveIDs(table)), "only live cells remain in order")
	assert.Equal(t, 0, table.value(0), "long-lived value is intact")
}

func Test_SlotTable_Zeroes_Cell_When_Freed(t *testing.T) {
	t.Parallel()

	table := newSlotTable[*int](1)
	v := 7

	id, _ := table.allocate(&v)
	got := table.free(id)

	assert.Same(t, &v, got, "free returns the stored pointer")
	assert.Nil(t, table.cells[id].value, "freed cell must not keep a reference")
	assert.False(t, table.cells[id].live, "freed cell is dead")
}

func Test_SlotTable_Panics_When_Dead_Cell_Freed(t *testing.T) {
	t.Parallel()

	table := newSlotTable[int](2)
	id, _ := table.allocate(1)
	table.free(id)

	assert.Panics(t, func() { table.free(id) }, "double free is a defect")
}

func Test_SlotTable_Clear_Keeps_Sequence_Monotonic_When_Reused(t *testing.T) {
	t.Parallel()

	table := newSlotTable[int](2)
	table.allocate(1)
	table.allocate(2)

	table.clear()
	assert.Equal(t, 0, table.len(), "clear drops every cell")

	id, ok := table.allocate(3)
	require.True(t, ok)
	assert.Equal(t, 0, id, "free ring restarts at cell 0")
	assert.Equal(t, uint64(2), table.cells[id].seq, "sequence keeps counting")
}
