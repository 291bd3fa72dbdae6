package sim

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/warehouse-sim/sim/trace"
)

// SupplyRobotController moves incoming items from the supply station to the
// first empty shelf slot, one task per tick:
//
//	Idle -> MovingToSupplyStation -> MovingToShelf -> Idle
//
// The dequeue, the slot scan and the final slot write are separate critical
// sections; the robot walks between them without holding the state lock.
type SupplyRobotController struct {
	state    *WarehouseState
	mover    *Mover
	pub      Publisher
	clock    Clock
	trace    *trace.SimulationTrace
	interval time.Duration
}

// NewSupplyRobotController creates the controller. tr may be nil.
func NewSupplyRobotController(state *WarehouseState, mover *Mover, pub Publisher, clock Clock, tr *trace.SimulationTrace, interval time.Duration) *SupplyRobotController {
	return &SupplyRobotController{state: state, mover: mover, pub: pub, clock: clock, trace: tr, interval: interval}
}

// Tick runs at most one supply task. It returns false, with a zero record,
// when the supply queue was empty.
//
// If no slot is empty the dequeued item is discarded, not requeued: the
// task ends with OutcomeLost and the item never reaches a shelf.
func (c *SupplyRobotController) Tick() (trace.TaskRecord, bool) {
	item, ok := c.state.DequeueSupply()
	if !ok {
		return trace.TaskRecord{}, false
	}
	rec := trace.TaskRecord{
		ID:        trace.NewTaskID(),
		Robot:     SupplyRobot.String(),
		Item:      string(item),
		Shelf:     -1,
		Slot:      -1,
		StartedAt: time.Now(),
	}

	ref, found := c.state.FindFirstEmptySlot()
	if !found {
		c.state.RecordLoss(item)
		logrus.Warnf("[supply robot] no empty slot for %s; item discarded", item)
		c.pub.Publish(c.state.Snapshot())
		rec.Outcome = trace.OutcomeLost
		return c.finish(rec), true
	}
	rec.Shelf, rec.Slot = ref.Shelf, ref.Slot

	grid := c.state.Grid()
	rec.Steps += c.mover.Move(SupplyRobot, grid.SupplyStation)
	c.state.SetCarrying(SupplyRobot, item)
	c.pub.Publish(c.state.Snapshot())

	rec.Steps += c.mover.Move(SupplyRobot, grid.ShelfPosition(ref.Shelf))
	c.state.StoreItem(ref)
	logrus.Infof("[supply robot] stored %s at %s", item, ref)
	c.pub.Publish(c.state.Snapshot())

	rec.Outcome = trace.OutcomeStored
	return c.finish(rec), true
}

func (c *SupplyRobotController) finish(rec trace.TaskRecord) trace.TaskRecord {
	rec.FinishedAt = time.Now()
	c.trace.RecordTask(rec)
	return rec
}

// Run polls every interval until ctx is cancelled.
func (c *SupplyRobotController) Run(ctx context.Context) error {
	return runEvery(ctx, c.clock, fixed(c.interval), func() { c.Tick() })
}
