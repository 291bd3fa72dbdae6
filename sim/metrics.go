// Tracks warehouse-wide counters for final reporting and for the stock
// ledger used to check item conservation.

package sim

import (
	"fmt"
	"sort"
)

// Metrics aggregates counters about the simulation.
// Owned by WarehouseState and updated under its lock.
type Metrics struct {
	ItemsArrived      int `json:"items_arrived"`      // enqueued to the supply queue
	OrdersPlaced      int `json:"orders_placed"`      // enqueued to the order queue
	ItemsStored       int `json:"items_stored"`       // written to a shelf by the supply robot
	ItemsDelivered    int `json:"items_delivered"`    // appended to the delivered log
	ItemsLost         int `json:"items_lost"`         // dequeued with no empty slot
	OrdersUnfulfilled int `json:"orders_unfulfilled"` // dequeued with no matching stock
	RobotSteps        int `json:"robot_steps"`        // single grid steps by either robot

	InitialStock   map[ItemKind]int `json:"initial_stock"`   // pre-seeded per kind
	SupplyDequeued map[ItemKind]int `json:"supply_dequeued"` // taken off the supply queue per kind
	LostByKind     map[ItemKind]int `json:"lost_by_kind"`
}

// NewMetrics returns zeroed counters with initialized maps.
func NewMetrics() Metrics {
	return Metrics{
		InitialStock:   make(map[ItemKind]int),
		SupplyDequeued: make(map[ItemKind]int),
		LostByKind:     make(map[ItemKind]int),
	}
}

// ExpectedStock is the number of k that must be on shelves, in a robot's
// hands, or delivered: everything seeded or dequeued, minus what was lost.
func (m Metrics) ExpectedStock(k ItemKind) int {
	return m.InitialStock[k] + m.SupplyDequeued[k] - m.LostByKind[k]
}

func (m Metrics) clone() Metrics {
	c := m
	c.InitialStock = cloneCounts(m.InitialStock)
	c.SupplyDequeued = cloneCounts(m.SupplyDequeued)
	c.LostByKind = cloneCounts(m.LostByKind)
	return c
}

// Print displays the counters at the end of the simulation.
func (m Metrics) Print() {
	fmt.Println("=== Warehouse Metrics ===")
	fmt.Printf("Items Arrived        : %d\n", m.ItemsArrived)
	fmt.Printf("Orders Placed        : %d\n", m.OrdersPlaced)
	fmt.Printf("Items Stored         : %d\n", m.ItemsStored)
	fmt.Printf("Items Delivered      : %d\n", m.ItemsDelivered)
	fmt.Printf("Items Lost (full)    : %d\n", m.ItemsLost)
	fmt.Printf("Orders Unfulfilled   : %d\n", m.OrdersUnfulfilled)
	fmt.Printf("Robot Steps          : %d\n", m.RobotSteps)
	if m.OrdersPlaced > 0 {
		fmt.Printf("Fill Rate            : %.2f%%\n", 100*float64(m.ItemsDelivered)/float64(m.OrdersPlaced))
	}
	kinds := make([]string, 0, len(m.InitialStock))
	for k := range m.InitialStock {
		kinds = append(kinds, string(k))
	}
	sort.Strings(kinds)
	for _, k := range kinds {
		fmt.Printf("Initial Stock %-6s : %d\n", k, m.InitialStock[ItemKind(k)])
	}
}

func cloneCounts(m map[ItemKind]int) map[ItemKind]int {
	out := make(map[ItemKind]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
