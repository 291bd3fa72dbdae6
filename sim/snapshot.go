package sim

// StateView is an immutable point-in-time copy of the warehouse, shaped for
// observers. JSON field names are the wire contract of the state push.
type StateView struct {
	Version         uint64             `json:"version"`
	Inventory       map[ItemKind]int   `json:"inventory"`
	ShelfInventory  []map[ItemKind]int `json:"shelf_inventory"`
	IncomingQueue   []ItemKind         `json:"incoming_queue"`
	OrderQueue      []ItemKind         `json:"order_queue"`
	DeliveredItems  []ItemKind         `json:"delivered_items"`
	SupplyRobot     Robot              `json:"supply_robot"`
	DeliveryRobot   Robot              `json:"delivery_robot"`
	Shelves         [][]ItemKind       `json:"shelves"`
	ShelfPositions  []Coordinate       `json:"shelf_positions"`
	SupplyStation   Coordinate         `json:"supply_station"`
	DeliveryStation Coordinate         `json:"delivery_station"`
	GridSize        int                `json:"grid_size"`
}

// InHand counts k across both robots' hands.
func (v StateView) InHand(k ItemKind) int {
	n := 0
	for _, r := range []Robot{v.SupplyRobot, v.DeliveryRobot} {
		if r.Carrying == k {
			n++
		}
	}
	return n
}

// Delivered counts k in the delivered log.
func (v StateView) Delivered(k ItemKind) int {
	n := 0
	for _, d := range v.DeliveredItems {
		if d == k {
			n++
		}
	}
	return n
}

// Publisher receives snapshots. Publish must return promptly and never fail
// the caller; implementations drop rather than block.
type Publisher interface {
	Publish(view StateView)
}

// PublisherFunc adapts a function to Publisher.
type PublisherFunc func(StateView)

func (f PublisherFunc) Publish(view StateView) { f(view) }

// DiscardPublisher drops every snapshot.
var DiscardPublisher Publisher = PublisherFunc(func(StateView) {})
