package sim

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/warehouse-sim/sim/trace"
)

// DeliveryRobotController fulfils orders by fetching the first matching item
// off the shelves and carrying it to the delivery station:
//
//	Idle -> MovingToShelf -> MovingToDeliveryStation -> Idle
type DeliveryRobotController struct {
	state    *WarehouseState
	mover    *Mover
	pub      Publisher
	clock    Clock
	trace    *trace.SimulationTrace
	interval time.Duration
}

// NewDeliveryRobotController creates the controller. tr may be nil.
func NewDeliveryRobotController(state *WarehouseState, mover *Mover, pub Publisher, clock Clock, tr *trace.SimulationTrace, interval time.Duration) *DeliveryRobotController {
	return &DeliveryRobotController{state: state, mover: mover, pub: pub, clock: clock, trace: tr, interval: interval}
}

// Tick runs at most one delivery task. It returns false when the order queue
// was empty.
//
// An order with no matching stock is dropped (OutcomeUnfulfillable); it was
// already dequeued and is not retried.
func (c *DeliveryRobotController) Tick() (trace.TaskRecord, bool) {
	item, ok := c.state.DequeueOrder()
	if !ok {
		return trace.TaskRecord{}, false
	}
	rec := trace.TaskRecord{
		ID:        trace.NewTaskID(),
		Robot:     DeliveryRobot.String(),
		Item:      string(item),
		Shelf:     -1,
		Slot:      -1,
		StartedAt: time.Now(),
	}

	ref, found := c.state.FindFirstSlotWithItem(item)
	if !found {
		c.state.RecordUnfulfilled(item)
		logrus.Warnf("[delivery robot] no %s in stock; order dropped", item)
		c.pub.Publish(c.state.Snapshot())
		rec.Outcome = trace.OutcomeUnfulfillable
		return c.finish(rec), true
	}
	rec.Shelf, rec.Slot = ref.Shelf, ref.Slot

	grid := c.state.Grid()
	rec.Steps += c.mover.Move(DeliveryRobot, grid.ShelfPosition(ref.Shelf))
	c.state.PickItem(ref)
	c.pub.Publish(c.state.Snapshot())

	rec.Steps += c.mover.Move(DeliveryRobot, grid.DeliveryStation)
	c.state.CompleteDelivery()
	logrus.Infof("[delivery robot] delivered %s", item)
	c.pub.Publish(c.state.Snapshot())

	rec.Outcome = trace.OutcomeDelivered
	return c.finish(rec), true
}

func (c *DeliveryRobotController) finish(rec trace.TaskRecord) trace.TaskRecord {
	rec.FinishedAt = time.Now()
	c.trace.RecordTask(rec)
	return rec
}

// Run polls every interval until ctx is cancelled.
func (c *DeliveryRobotController) Run(ctx context.Context) error {
	return runEvery(ctx, c.clock, fixed(c.interval), func() { c.Tick() })
}
