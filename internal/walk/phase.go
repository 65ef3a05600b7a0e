package walk

// Phase identifies one leg of the walk-down-stairs cycle.
type Phase int

const (
	PhaseStepOff Phase = iota
	PhaseStrideIn
	PhaseTurnIn
	PhasePivot
	PhaseTurnOut
	PhaseStrideOut
	PhaseSettle
)

// PhaseCount is the number of phases in a run.
const PhaseCount = 7

// TicksPerPhase is the length of every phase in ticks.
const TicksPerPhase = 10

// TotalTicks is the tick at which a run ends.
const TotalTicks = PhaseCount * TicksPerPhase // 70

// Delta is the per-tick change applied to the pose during a phase.
// RotY is in degrees.
type Delta struct {
	X, Y, Z float64
	RotY    float64
}

type phaseEntry struct {
	name  string
	start int // inclusive
	end   int // exclusive
	delta Delta
}

// phaseTable is contiguous and covers [0, TotalTicks).
var phaseTable = [PhaseCount]phaseEntry{
	{"step-off", 0, 10, Delta{X: -0.05, Y: -0.10, Z: 0.00, RotY: 0}},
	{"stride-in", 10, 20, Delta{X: -0.25, Y: -0.18, Z: 0.05, RotY: 3}},
	{"turn-in", 20, 30, Delta{X: -0.22, Y: -0.20, Z: 0.10, RotY: 3}},
	{"pivot", 30, 40, Delta{X: 0.03, Y: -0.20, Z: 0.12, RotY: 6}},
	{"turn-out", 40, 50, Delta{X: 0.29, Y: -0.20, Z: 0.05, RotY: 6}},
	{"stride-out", 50, 60, Delta{X: 0.23, Y: -0.18, Z: -0.08, RotY: 3}},
	{"settle", 60, 70, Delta{X: 0.00, Y: -0.10, Z: -0.04, RotY: 0}},
}

func (p Phase) String() string {
	if p < 0 || int(p) >= PhaseCount {
		return "unknown"
	}
	return phaseTable[p].name
}

// Delta returns the per-tick pose change of the phase.
func (p Phase) Delta() Delta {
	if p < 0 || int(p) >= PhaseCount {
		return Delta{}
	}
	return phaseTable[p].delta
}

// Range returns the [start, end) tick range of the phase.
func (p Phase) Range() (start, end int) {
	if p < 0 || int(p) >= PhaseCount {
		return 0, 0
	}
	return phaseTable[p].start, phaseTable[p].end
}

// PhaseAt returns the phase that owns tick t. ok is false outside [0, TotalTicks).
func PhaseAt(t int) (Phase, bool) {
	for i := range phaseTable {
		if t >= phaseTable[i].start && t < phaseTable[i].end {
			return Phase(i), true
		}
	}
	return 0, false
}
