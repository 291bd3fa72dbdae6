package sim

import (
	"time"

	"github.com/sirupsen/logrus"
)

// NextStep returns the cell one unit from pos toward target, or pos itself if
// they are equal. Rows are closed before columns, so repeated steps trace an
// L-shaped path and never move diagonally. Obstacles are ignored.
func NextStep(pos, target Coordinate) Coordinate {
	switch {
	case pos.Row > target.Row:
		pos.Row--
	case pos.Row < target.Row:
		pos.Row++
	case pos.Col > target.Col:
		pos.Col--
	case pos.Col < target.Col:
		pos.Col++
	}
	return pos
}

// Mover animates a robot across the grid one cell at a time, publishing a
// snapshot after every step. Both robot controllers share one Mover.
type Mover struct {
	state    *WarehouseState
	pub      Publisher
	clock    Clock
	interval time.Duration // pause after each step
}

// NewMover creates a Mover that pauses interval after each step.
func NewMover(state *WarehouseState, pub Publisher, clock Clock, interval time.Duration) *Mover {
	return &Mover{state: state, pub: pub, clock: clock, interval: interval}
}

// Move walks role's robot to target and returns the number of steps taken,
// which is always the Manhattan distance. The pause between steps is the
// only suspension point; the state lock is held only while the position is
// written. Move does not observe cancellation, so a task that has started
// always finishes its path.
func (m *Mover) Move(role RobotRole, target Coordinate) int {
	pos := m.state.Robot(role).Position
	steps := 0
	for pos != target {
		pos = NextStep(pos, target)
		m.state.MoveRobot(role, pos)
		steps++
		m.pub.Publish(m.state.Snapshot())
		<-m.clock.After(m.interval)
	}
	if steps > 0 {
		logrus.Debugf("[%s robot] reached %s in %d steps", role, target, steps)
	}
	return steps
}
