package walk

import "time"

// Pose is the actor's placement. RotY is in degrees about the Y axis.
type Pose struct {
	X, Y, Z float64
	RotY    float64
}

// InitialPose is where every run starts: on top of the staircase.
var InitialPose = Pose{X: 2.5, Y: 10.6, Z: -1, RotY: 0}

func (p Pose) apply(d Delta) Pose {
	return Pose{X: p.X + d.X, Y: p.Y + d.Y, Z: p.Z + d.Z, RotY: p.RotY + d.RotY}
}

// MaxCatchUpTicks bounds how many ticks one Advance call may run after a
// stalled frame.
const MaxCatchUpTicks = 4

// Controller runs the fixed walk cycle. It is driven from the frame loop and
// is not safe for concurrent use.
type Controller struct {
	pose       Pose
	tick       int
	inProgress bool

	interval time.Duration
	acc      time.Duration

	// OnPhase, if set, is called on the first tick of each phase.
	OnPhase func(Phase)
	// OnFinish, if set, is called once when a run completes.
	OnFinish func(Pose)
}

// NewController returns an idle controller holding the initial pose.
func NewController() *Controller {
	return &Controller{pose: InitialPose}
}

// Start begins a run ticking every interval. It reports false and changes
// nothing if a run is already in progress.
func (c *Controller) Start(interval time.Duration) bool {
	if c.inProgress {
		return false
	}
	if interval <= 0 {
		interval = time.Millisecond
	}
	c.tick = 0
	c.pose = InitialPose
	c.interval = interval
	c.acc = 0
	c.inProgress = true
	return true
}

// Tick advances the run by one step. Calls while idle are ignored.
func (c *Controller) Tick() {
	if !c.inProgress {
		return
	}
	ph, ok := PhaseAt(c.tick)
	if !ok {
		c.finish()
		return
	}
	if start, _ := ph.Range(); start == c.tick && c.OnPhase != nil {
		c.OnPhase(ph)
	}
	c.pose = c.pose.apply(ph.Delta())
	c.tick++
	if c.tick >= TotalTicks {
		c.finish()
	}
}

func (c *Controller) finish() {
	c.inProgress = false
	c.acc = 0
	if c.OnFinish != nil {
		c.OnFinish(c.pose)
	}
}

// Advance feeds elapsed frame time into the periodic tick. It returns the
// number of ticks run.
func (c *Controller) Advance(dt time.Duration) int {
	if !c.inProgress || dt <= 0 {
		return 0
	}
	c.acc += dt
	if limit := c.interval * MaxCatchUpTicks; c.acc > limit {
		c.acc = limit
	}
	n := 0
	for c.inProgress && c.acc >= c.interval {
		c.acc -= c.interval
		c.Tick()
		n++
	}
	return n
}

// InProgress reports whether a run is active.
func (c *Controller) InProgress() bool { return c.inProgress }

// Pose returns the current actor pose.
func (c *Controller) Pose() Pose { return c.pose }

// TickCount returns the number of ticks run in the current (or last) run.
func (c *Controller) TickCount() int { return c.tick }

// Interval returns the tick interval of the current (or last) run.
func (c *Controller) Interval() time.Duration { return c.interval }
