package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWarehouseState_FindFirstEmptySlot_LexicographicallySmallest(t *testing.T) {
	// GIVEN shelf 0 full and shelf 1 with slots 0 and 2 occupied
	ws := newTestState(t, smallConfig())
	for i := 0; i < 5; i++ {
		ws.SetSlot(SlotRef{Shelf: 0, Slot: i}, "A")
	}
	ws.SetSlot(SlotRef{Shelf: 1, Slot: 0}, "B")
	ws.SetSlot(SlotRef{Shelf: 1, Slot: 2}, "B")

	// WHEN scanned twice
	first, ok1 := ws.FindFirstEmptySlot()
	second, ok2 := ws.FindFirstEmptySlot()

	// THEN both scans return shelf 1 slot 1
	require.True(t, ok1)
	require.True(t, ok2)
	assert.Equal(t, SlotRef{Shelf: 1, Slot: 1}, first)
	assert.Equal(t, first, second)
}

func TestWarehouseState_FindFirstEmptySlot_AllFull(t *testing.T) {
	ws := newTestState(t, smallConfig())
	fillAll(ws, "C")
	_, ok := ws.FindFirstEmptySlot()
	assert.False(t, ok)
}

func TestWarehouseState_FindFirstSlotWithItem(t *testing.T) {
	// GIVEN B on shelf 3 slot 0 and shelf 2 slot 4
	ws := newTestState(t, smallConfig())
	ws.SetSlot(SlotRef{Shelf: 3, Slot: 0}, "B")
	ws.SetSlot(SlotRef{Shelf: 2, Slot: 4}, "B")
	ws.SetSlot(SlotRef{Shelf: 0, Slot: 0}, "A")

	// WHEN searching for B
	ref, ok := ws.FindFirstSlotWithItem("B")

	// THEN the lower shelf index wins even with a higher slot index
	require.True(t, ok)
	assert.Equal(t, SlotRef{Shelf: 2, Slot: 4}, ref)

	_, ok = ws.FindFirstSlotWithItem("C")
	assert.False(t, ok)
	_, ok = ws.FindFirstSlotWithItem(NoItem)
	assert.False(t, ok, "searching for NoItem must not match empty slots")
}

func TestWarehouseState_FindFirst_MatchesBruteForceMinimum(t *testing.T) {
	// GIVEN a pseudo-random fill pattern
	ws := newTestState(t, smallConfig())
	rng := newRandFromSeed(3)
	g := ws.Grid()
	var empties, withB []SlotRef
	for s := 0; s < g.NumShelves(); s++ {
		for i := 0; i < g.SlotsPerShelf; i++ {
			ref := SlotRef{Shelf: s, Slot: i}
			switch rng.Intn(3) {
			case 0:
				empties = append(empties, ref)
			case 1:
				ws.SetSlot(ref, "B")
				withB = append(withB, ref)
			default:
				ws.SetSlot(ref, "A")
			}
		}
	}

	// THEN each scan returns the minimum ref satisfying its predicate
	minOf := func(refs []SlotRef) SlotRef {
		best := refs[0]
		for _, r := range refs[1:] {
			if r.Less(best) {
				best = r
			}
		}
		return best
	}
	if len(empties) > 0 {
		got, ok := ws.FindFirstEmptySlot()
		require.True(t, ok)
		assert.Equal(t, minOf(empties), got)
	}
	if len(withB) > 0 {
		got, ok := ws.FindFirstSlotWithItem("B")
		require.True(t, ok)
		assert.Equal(t, minOf(withB), got)
	}
}

func TestWarehouseState_SetSlot_OutOfRangePanics(t *testing.T) {
	ws := newTestState(t, smallConfig())
	assert.Panics(t, func() { ws.SetSlot(SlotRef{Shelf: 4, Slot: 0}, "A") })
	assert.Panics(t, func() { ws.SetSlot(SlotRef{Shelf: 0, Slot: 5}, "A") })
	assert.Panics(t, func() { ws.SetSlot(SlotRef{Shelf: -1, Slot: 0}, "A") })
}

func TestWarehouseState_Queues_FIFOAndNonBlocking(t *testing.T) {
	ws := newTestState(t, smallConfig())

	_, ok := ws.DequeueSupply()
	assert.False(t, ok)
	_, ok = ws.DequeueOrder()
	assert.False(t, ok)

	ws.EnqueueSupply("A")
	ws.EnqueueSupply("B")
	ws.EnqueueOrder("C")

	k, ok := ws.DequeueSupply()
	assert.True(t, ok)
	assert.Equal(t, ItemKind("A"), k)
	k, _ = ws.DequeueOrder()
	assert.Equal(t, ItemKind("C"), k)

	m := ws.Metrics()
	assert.Equal(t, 2, m.ItemsArrived)
	assert.Equal(t, 1, m.OrdersPlaced)
	assert.Equal(t, 1, m.SupplyDequeued["A"])
}

func TestWarehouseState_Summaries_ConsistentWithSlots(t *testing.T) {
	// GIVEN A twice on shelf 0 and C once on shelf 2
	ws := newTestState(t, smallConfig())
	ws.SetSlot(SlotRef{Shelf: 0, Slot: 0}, "A")
	ws.SetSlot(SlotRef{Shelf: 0, Slot: 3}, "A")
	ws.SetSlot(SlotRef{Shelf: 2, Slot: 1}, "C")

	// THEN the aggregate includes zero counts for absent kinds
	assert.Equal(t, map[ItemKind]int{"A": 2, "B": 0, "C": 1}, ws.InventorySummary())

	// AND the per-shelf view sums to the aggregate
	per := ws.PerShelfSummary()
	require.Len(t, per, 4)
	assert.Equal(t, map[ItemKind]int{"A": 2, "B": 0, "C": 0}, per[0])
	assert.Equal(t, map[ItemKind]int{"A": 0, "B": 0, "C": 1}, per[2])
}

func TestWarehouseState_Snapshot_IdempotentWithoutMutation(t *testing.T) {
	ws := newTestState(t, smallConfig())
	ws.EnqueueSupply("A")
	ws.SetSlot(SlotRef{Shelf: 1, Slot: 1}, "B")

	v1 := ws.Snapshot()
	v2 := ws.Snapshot()
	assert.Equal(t, v1, v2)
}

func TestWarehouseState_Snapshot_IsDeepCopy(t *testing.T) {
	// GIVEN a snapshot
	ws := newTestState(t, smallConfig())
	ws.SetSlot(SlotRef{Shelf: 0, Slot: 0}, "A")
	ws.EnqueueOrder("B")
	v := ws.Snapshot()

	// WHEN the state and the view's slices are both mutated
	ws.SetSlot(SlotRef{Shelf: 0, Slot: 0}, NoItem)
	ws.RecordDelivery("A")
	v.Shelves[1][0] = "Z"

	// THEN neither affects the other
	assert.Equal(t, ItemKind("A"), v.Shelves[0][0])
	assert.Empty(t, v.DeliveredItems)
	assert.Equal(t, NoItem, ws.Slot(SlotRef{Shelf: 1, Slot: 0}))
	assert.Greater(t, ws.Snapshot().Version, v.Version)
}

func TestWarehouseState_Snapshot_CarriesLayout(t *testing.T) {
	cfg := smallConfig()
	ws := newTestState(t, cfg)
	v := ws.Snapshot()
	assert.Equal(t, 10, v.GridSize)
	assert.Equal(t, cfg.Grid.Shelves, v.ShelfPositions)
	assert.Equal(t, cfg.Grid.SupplyStation, v.SupplyStation)
	assert.Equal(t, cfg.Grid.DeliveryStation, v.DeliveryStation)
	assert.Equal(t, Coord(9, 9), v.SupplyRobot.Position)
	assert.Equal(t, Coord(0, 0), v.DeliveryRobot.Position)
	require.Len(t, v.Shelves, 4)
	assert.Len(t, v.Shelves[0], 5)
}

func TestWarehouseState_StoreAndPick_MoveItemAtomically(t *testing.T) {
	ws := newTestState(t, smallConfig())
	ref := SlotRef{Shelf: 2, Slot: 3}

	ws.SetCarrying(SupplyRobot, "A")
	assert.Equal(t, ItemKind("A"), ws.StoreItem(ref))
	assert.Equal(t, NoItem, ws.Robot(SupplyRobot).Carrying)
	assert.Equal(t, ItemKind("A"), ws.Slot(ref))

	assert.Equal(t, ItemKind("A"), ws.PickItem(ref))
	assert.Equal(t, NoItem, ws.Slot(ref))
	assert.Equal(t, ItemKind("A"), ws.Robot(DeliveryRobot).Carrying)

	assert.Equal(t, ItemKind("A"), ws.CompleteDelivery())
	assert.Equal(t, NoItem, ws.Robot(DeliveryRobot).Carrying)
	assert.Equal(t, []ItemKind{"A"}, ws.Snapshot().DeliveredItems)
}

func TestWarehouseState_SeedStock_OnlyFillsEmpty(t *testing.T) {
	ws := newTestState(t, smallConfig())
	ref := SlotRef{Shelf: 0, Slot: 0}
	assert.True(t, ws.SeedStock(ref, "A"))
	assert.False(t, ws.SeedStock(ref, "B"))
	assert.Equal(t, ItemKind("A"), ws.Slot(ref))
	assert.Equal(t, 1, ws.Metrics().InitialStock["A"])
	assert.Equal(t, 0, ws.Metrics().InitialStock["B"])
}

func TestNewWarehouseState_StartOutsideGridPanics(t *testing.T) {
	grid, err := smallConfig().GridModel()
	require.NoError(t, err)
	assert.Panics(t, func() { NewWarehouseState(grid, nil, Coord(10, 0), Coord(0, 0)) })
	assert.Panics(t, func() { NewWarehouseState(grid, nil, Coord(0, 0), Coord(0, -1)) })
}

func TestWarehouseState_MoveRobot_OutsideGridPanics(t *testing.T) {
	ws := newTestState(t, smallConfig())
	assert.Panics(t, func() { ws.MoveRobot(SupplyRobot, Coord(-1, 0)) })
}
