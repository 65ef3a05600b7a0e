package walk

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const poseTol = 1e-9

func assertPose(t *testing.T, want, got Pose) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, poseTol, "x")
	assert.InDelta(t, want.Y, got.Y, poseTol, "y")
	assert.InDelta(t, want.Z, got.Z, poseTol, "z")
	assert.InDelta(t, want.RotY, got.RotY, poseTol, "rotY")
}

func TestPhaseAtCoversRange(t *testing.T) {
	seen := make(map[Phase]int)
	for tick := 0; tick < TotalTicks; tick++ {
		ph, ok := PhaseAt(tick)
		require.True(t, ok, "tick %d has no phase", tick)
		start, end := ph.Range()
		assert.True(t, tick >= start && tick < end, "tick %d outside %v [%d,%d)", tick, ph, start, end)
		assert.Equal(t, Phase(tick/TicksPerPhase), ph)
		seen[ph]++
	}
	assert.Len(t, seen, PhaseCount)
	for ph, n := range seen {
		assert.Equal(t, TicksPerPhase, n, "phase %v", ph)
	}

	for _, tick := range []int{-1, TotalTicks, TotalTicks + 5} {
		_, ok := PhaseAt(tick)
		assert.False(t, ok, "tick %d", tick)
	}
}

func TestPhaseTableContiguous(t *testing.T) {
	prevEnd := 0
	for i := 0; i < PhaseCount; i++ {
		start, end := Phase(i).Range()
		assert.Equal(t, prevEnd, start, "phase %d", i)
		assert.Greater(t, end, start)
		prevEnd = end
	}
	assert.Equal(t, TotalTicks, prevEnd)
}

func TestStartResetsPose(t *testing.T) {
	c := NewController()
	require.True(t, c.Start(10*time.Millisecond))
	for c.InProgress() {
		c.Tick()
	}
	assert.NotEqual(t, InitialPose, c.Pose())

	require.True(t, c.Start(10*time.Millisecond))
	assert.Equal(t, 0, c.TickCount())
	assert.Equal(t, Pose{X: 2.5, Y: 10.6, Z: -1, RotY: 0}, c.Pose())
}

func TestStartWhileRunningIsNoop(t *testing.T) {
	c := NewController()
	require.True(t, c.Start(20*time.Millisecond))
	for i := 0; i < 15; i++ {
		c.Tick()
	}
	before := c.Pose()

	assert.False(t, c.Start(5*time.Millisecond))
	assert.Equal(t, 15, c.TickCount())
	assert.Equal(t, before, c.Pose())
	assert.Equal(t, 20*time.Millisecond, c.Interval())
}

func TestFullRunEndPose(t *testing.T) {
	c := NewController()
	require.True(t, c.Start(time.Millisecond))
	for i := 0; i < TotalTicks; i++ {
		require.True(t, c.InProgress(), "stopped early at tick %d", i)
		c.Tick()
	}
	assert.False(t, c.InProgress())
	assert.Equal(t, TotalTicks, c.TickCount())

	want := Pose{X: 2.8, Y: -1.0, Z: 1.0, RotY: 210}
	assertPose(t, want, c.Pose())
	assertPose(t, want, finalPose())
}

func TestTickAfterFinishIsIgnored(t *testing.T) {
	c := NewController()
	c.Start(time.Millisecond)
	for c.InProgress() {
		c.Tick()
	}
	end := c.Pose()
	for i := 0; i < 10; i++ {
		c.Tick()
	}
	assert.Equal(t, end, c.Pose())
	assert.Equal(t, TotalTicks, c.TickCount())
	assert.Zero(t, c.Advance(time.Second))
}

func TestTickWhileIdleIsIgnored(t *testing.T) {
	c := NewController()
	c.Tick()
	assert.Equal(t, InitialPose, c.Pose())
	assert.Zero(t, c.TickCount())
}

func TestCallbacks(t *testing.T) {
	c := NewController()
	var phases []Phase
	finished := 0
	c.OnPhase = func(p Phase) { phases = append(phases, p) }
	c.OnFinish = func(Pose) { finished++ }

	c.Start(time.Millisecond)
	for c.InProgress() {
		c.Tick()
	}
	assert.Equal(t, []Phase{
		PhaseStepOff, PhaseStrideIn, PhaseTurnIn, PhasePivot,
		PhaseTurnOut, PhaseStrideOut, PhaseSettle,
	}, phases)
	assert.Equal(t, 1, finished)
}

func TestAdvance(t *testing.T) {
	c := NewController()
	c.Start(50 * time.Millisecond)

	assert.Equal(t, 0, c.Advance(30*time.Millisecond))
	assert.Equal(t, 1, c.Advance(30*time.Millisecond))
	assert.Equal(t, 2, c.Advance(110*time.Millisecond))
	assert.Equal(t, 3, c.TickCount())

	// A stalled frame runs at most MaxCatchUpTicks.
	assert.Equal(t, MaxCatchUpTicks, c.Advance(10*time.Second))
	assert.Equal(t, 3+MaxCatchUpTicks, c.TickCount())
}

func TestAdvanceRunsToCompletion(t *testing.T) {
	c := NewController()
	c.Start(10 * time.Millisecond)
	total := 0
	for i := 0; i < 1000 && c.InProgress(); i++ {
		total += c.Advance(16 * time.Millisecond)
	}
	assert.False(t, c.InProgress())
	assert.Equal(t, TotalTicks, total)
	assertPose(t, finalPose(), c.Pose())
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "pivot", PhasePivot.String())
	assert.Equal(t, "unknown", Phase(42).String())
	assert.Equal(t, Delta{}, Phase(-1).Delta())
}

// finalPose sums the phase table onto the initial pose.
func finalPose() Pose {
	p := InitialPose
	for i := range phaseTable {
		d := phaseTable[i].delta
		n := float64(phaseTable[i].end - phaseTable[i].start)
		p.X += d.X * n
		p.Y += d.Y * n
		p.Z += d.Z * n
		p.RotY += d.RotY * n
	}
	return p
}
