package sim

import (
	"fmt"
	"sync"
)

// RobotRole selects one of the two robots.
type RobotRole int

const (
	SupplyRobot RobotRole = iota
	DeliveryRobot
)

func (r RobotRole) String() string {
	switch r {
	case SupplyRobot:
		return "supply"
	case DeliveryRobot:
		return "delivery"
	default:
		return fmt.Sprintf("robot(%d)", int(r))
	}
}

// Robot is a robot's position and the item in its hands, if any.
type Robot struct {
	Position Coordinate `json:"pos"`
	Carrying ItemKind   `json:"carrying"`
}

// WarehouseState is the single shared mutable aggregate: shelves, both
// queues, the delivered log and both robots. Every method takes the one
// mutex for the duration of a single logical step and never across a robot
// movement, so a task's dequeue, scan and final slot write are separate
// critical sections.
type WarehouseState struct {
	mu sync.Mutex

	grid  GridModel  // immutable after construction; read without the lock
	kinds []ItemKind // immutable; fixes summary key order

	shelves   [][]ItemKind
	supplyQ   ItemQueue
	orderQ    ItemQueue
	delivered []ItemKind
	robots    [2]Robot
	metrics   Metrics
	version   uint64 // bumped on every mutation
}

// NewWarehouseState creates empty shelves for grid and places the robots.
// Panics if a start position is outside the grid.
func NewWarehouseState(grid GridModel, kinds []ItemKind, supplyStart, deliveryStart Coordinate) *WarehouseState {
	if !grid.InBounds(supplyStart) {
		panic(fmt.Sprintf("NewWarehouseState: supply robot start %s outside grid", supplyStart))
	}
	if !grid.InBounds(deliveryStart) {
		panic(fmt.Sprintf("NewWarehouseState: delivery robot start %s outside grid", deliveryStart))
	}
	shelves := make([][]ItemKind, grid.NumShelves())
	for i := range shelves {
		shelves[i] = make([]ItemKind, grid.SlotsPerShelf)
	}
	ws := &WarehouseState{
		grid:    grid,
		kinds:   append([]ItemKind(nil), kinds...),
		shelves: shelves,
		metrics: NewMetrics(),
	}
	ws.robots[SupplyRobot].Position = supplyStart
	ws.robots[DeliveryRobot].Position = deliveryStart
	return ws
}

// Grid returns the static geometry.
func (ws *WarehouseState) Grid() GridModel {
	return ws.grid
}

// EnqueueSupply appends an arrived item to the incoming supply queue.
func (ws *WarehouseState) EnqueueSupply(k ItemKind) {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	ws.supplyQ.Enqueue(k)
	ws.metrics.ItemsArrived++
	ws.version++
}

// EnqueueOrder appends an order to the delivery order queue.
func (ws *WarehouseState) EnqueueOrder(k ItemKind) {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	ws.orderQ.Enqueue(k)
	ws.metrics.OrdersPlaced++
	ws.version++
}

// DequeueSupply pops the head of the supply queue. Non-blocking.
func (ws *WarehouseState) DequeueSupply() (ItemKind, bool) {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	k, ok := ws.supplyQ.Dequeue()
	if ok {
		ws.metrics.SupplyDequeued[k]++
		ws.version++
	}
	return k, ok
}

// DequeueOrder pops the head of the order queue. Non-blocking.
func (ws *WarehouseState) DequeueOrder() (ItemKind, bool) {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	k, ok := ws.orderQ.Dequeue()
	if ok {
		ws.version++
	}
	return k, ok
}

// FindFirstEmptySlot scans shelves in index order, then slots in index order,
// and returns the lexicographically smallest empty slot.
func (ws *WarehouseState) FindFirstEmptySlot() (SlotRef, bool) {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	return ws.findLocked(NoItem)
}

// FindFirstSlotWithItem is FindFirstEmptySlot for slots holding k.
func (ws *WarehouseState) FindFirstSlotWithItem(k ItemKind) (SlotRef, bool) {
	if k.IsEmpty() {
		return SlotRef{}, false
	}
	ws.mu.Lock()
	defer ws.mu.Unlock()
	return ws.findLocked(k)
}

func (ws *WarehouseState) findLocked(want ItemKind) (SlotRef, bool) {
	for s, shelf := range ws.shelves {
		for i, k := range shelf {
			if k == want {
				return SlotRef{Shelf: s, Slot: i}, true
			}
		}
	}
	return SlotRef{}, false
}

// Slot reads one slot.
func (ws *WarehouseState) Slot(ref SlotRef) ItemKind {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	ws.checkRef(ref)
	return ws.shelves[ref.Shelf][ref.Slot]
}

// SetSlot writes one slot directly. Panics on an out-of-range ref.
func (ws *WarehouseState) SetSlot(ref SlotRef, k ItemKind) {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	ws.checkRef(ref)
	ws.shelves[ref.Shelf][ref.Slot] = k
	ws.version++
}

// SeedStock places k into ref if the slot is empty and counts it as initial
// stock. Reports whether the slot was filled.
func (ws *WarehouseState) SeedStock(ref SlotRef, k ItemKind) bool {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	ws.checkRef(ref)
	if !ws.shelves[ref.Shelf][ref.Slot].IsEmpty() {
		return false
	}
	ws.shelves[ref.Shelf][ref.Slot] = k
	ws.metrics.InitialStock[k]++
	ws.version++
	return true
}

// RecordDelivery appends k to the delivered log.
func (ws *WarehouseState) RecordDelivery(k ItemKind) {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	ws.recordDeliveryLocked(k)
}

func (ws *WarehouseState) recordDeliveryLocked(k ItemKind) {
	ws.delivered = append(ws.delivered, k)
	ws.metrics.ItemsDelivered++
	ws.version++
}

// Robot returns a copy of one robot record.
func (ws *WarehouseState) Robot(role RobotRole) Robot {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	return ws.robots[role]
}

// MoveRobot sets a robot's position. Panics if pos is outside the grid.
func (ws *WarehouseState) MoveRobot(role RobotRole, pos Coordinate) {
	if !ws.grid.InBounds(pos) {
		panic(fmt.Sprintf("MoveRobot: %s robot target %s outside grid", role, pos))
	}
	ws.mu.Lock()
	defer ws.mu.Unlock()
	ws.robots[role].Position = pos
	ws.metrics.RobotSteps++
	ws.version++
}

// SetCarrying sets (or clears, with NoItem) what a robot holds.
func (ws *WarehouseState) SetCarrying(role RobotRole, k ItemKind) {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	ws.robots[role].Carrying = k
	ws.version++
}

// StoreItem moves the supply robot's load into ref in one step: the slot is
// written and the robot's hands are cleared together. Returns the stored kind.
func (ws *WarehouseState) StoreItem(ref SlotRef) ItemKind {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	ws.checkRef(ref)
	k := ws.robots[SupplyRobot].Carrying
	ws.shelves[ref.Shelf][ref.Slot] = k
	ws.robots[SupplyRobot].Carrying = NoItem
	ws.metrics.ItemsStored++
	ws.version++
	return k
}

// PickItem clears ref and puts its item into the delivery robot's hands in
// one step, so the item is always on the shelf or in hand, never neither.
func (ws *WarehouseState) PickItem(ref SlotRef) ItemKind {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	ws.checkRef(ref)
	k := ws.shelves[ref.Shelf][ref.Slot]
	ws.shelves[ref.Shelf][ref.Slot] = NoItem
	ws.robots[DeliveryRobot].Carrying = k
	ws.version++
	return k
}

// CompleteDelivery empties the delivery robot's hands into the delivered log.
func (ws *WarehouseState) CompleteDelivery() ItemKind {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	k := ws.robots[DeliveryRobot].Carrying
	ws.robots[DeliveryRobot].Carrying = NoItem
	if !k.IsEmpty() {
		ws.recordDeliveryLocked(k)
	}
	return k
}

// RecordLoss counts a dequeued supply item that found no empty slot.
func (ws *WarehouseState) RecordLoss(k ItemKind) {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	ws.metrics.ItemsLost++
	ws.metrics.LostByKind[k]++
}

// RecordUnfulfilled counts a dequeued order that found no stock.
func (ws *WarehouseState) RecordUnfulfilled(k ItemKind) {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	ws.metrics.OrdersUnfulfilled++
}

// Metrics returns a copy of the counters.
func (ws *WarehouseState) Metrics() Metrics {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	return ws.metrics.clone()
}

// InventorySummary counts each kind across all slots.
func (ws *WarehouseState) InventorySummary() map[ItemKind]int {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	return ws.inventoryLocked()
}

// PerShelfSummary counts each kind per shelf, indexed by shelf.
func (ws *WarehouseState) PerShelfSummary() []map[ItemKind]int {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	return ws.perShelfLocked()
}

// Snapshot returns a deep copy of everything an observer needs.
func (ws *WarehouseState) Snapshot() StateView {
	ws.mu.Lock()
	defer ws.mu.Unlock()

	shelves := make([][]ItemKind, len(ws.shelves))
	for i, shelf := range ws.shelves {
		shelves[i] = append([]ItemKind(nil), shelf...)
	}
	delivered := make([]ItemKind, len(ws.delivered))
	copy(delivered, ws.delivered)

	return StateView{
		Version:         ws.version,
		Inventory:       ws.inventoryLocked(),
		ShelfInventory:  ws.perShelfLocked(),
		IncomingQueue:   ws.supplyQ.Items(),
		OrderQueue:      ws.orderQ.Items(),
		DeliveredItems:  delivered,
		SupplyRobot:     ws.robots[SupplyRobot],
		DeliveryRobot:   ws.robots[DeliveryRobot],
		Shelves:         shelves,
		ShelfPositions:  append([]Coordinate(nil), ws.grid.ShelfPositions...),
		SupplyStation:   ws.grid.SupplyStation,
		DeliveryStation: ws.grid.DeliveryStation,
		GridSize:        ws.grid.Size,
	}
}

func (ws *WarehouseState) inventoryLocked() map[ItemKind]int {
	inv := ws.zeroCounts()
	for _, shelf := range ws.shelves {
		countInto(inv, shelf)
	}
	return inv
}

func (ws *WarehouseState) perShelfLocked() []map[ItemKind]int {
	out := make([]map[ItemKind]int, len(ws.shelves))
	for i, shelf := range ws.shelves {
		out[i] = ws.zeroCounts()
		countInto(out[i], shelf)
	}
	return out
}

func (ws *WarehouseState) zeroCounts() map[ItemKind]int {
	m := make(map[ItemKind]int, len(ws.kinds))
	for _, k := range ws.kinds {
		m[k] = 0
	}
	return m
}

func (ws *WarehouseState) checkRef(ref SlotRef) {
	if ref.Shelf < 0 || ref.Shelf >= len(ws.shelves) || ref.Slot < 0 || ref.Slot >= ws.grid.SlotsPerShelf {
		panic(fmt.Sprintf("slot ref %s out of range (%d shelves x %d slots)", ref, len(ws.shelves), ws.grid.SlotsPerShelf))
	}
}

func countInto(m map[ItemKind]int, slots []ItemKind) {
	for _, k := range slots {
		if !k.IsEmpty() {
			m[k]++
		}
	}
}
