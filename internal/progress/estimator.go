package progress

import (
	"fmt"
	"math"
	"time"
)

type Step struct {
	Name             string
	Done             bool
	ExpectedDuration time.Duration
}

type Phase int

const (
	NoStepRunning Phase = iota
	LinearPhase
	ExponentialSlowdownPhase
	AllDone
)

func (p Phase) String() string {
	switch p {
	case LinearPhase:
		return "linear"
	case ExponentialSlowdownPhase:
		return "slowdown"
	case AllDone:
		return "done"
	}
	return "idle"
}

// Active reports whether a step is in flight and the estimate still moves.
func (p Phase) Active() bool { return p == LinearPhase || p == ExponentialSlowdownPhase }

const (
	// slowdownAt is the fraction of the expected duration after which
	// progress switches from linear to an exponential tail.
	slowdownAt = 0.9
	// tailMillis is the decay constant of the tail in milliseconds.
	tailMillis = 100000.0
)

type Snapshot struct {
	Phase            Phase
	StepIndex        int
	StepName         string
	StepProgress     float64
	Percent          float64
	CompletedPercent float64
	Label            string
}

// Estimator turns a step list and wall-clock time into a progress estimate.
// It tracks only the active step and when it started; the step list belongs
// to the caller.
type Estimator struct {
	Title string

	activeName string
	activeIdx  int
	started    time.Time
	phase      Phase
}

func NewEstimator(title string) *Estimator {
	if title == "" {
		title = "Inspecting"
	}
	return &Estimator{Title: title, activeIdx: -1}
}

func (e *Estimator) Phase() Phase { return e.phase }

// Sample re-evaluates progress at now. A different active step than on the
// previous call restarts the clock for that step.
func (e *Estimator) Sample(now time.Time, steps []Step) Snapshot {
	total := len(steps)
	if total == 0 {
		e.reset()
		e.phase = NoStepRunning
		return Snapshot{Phase: NoStepRunning, StepIndex: -1}
	}

	done := 0
	idx := -1
	for i, s := range steps {
		if s.Done {
			done++
		} else if idx < 0 {
			idx = i
		}
	}
	completed := 100 * float64(done) / float64(total)

	if idx < 0 {
		e.reset()
		e.phase = AllDone
		snap := Snapshot{Phase: AllDone, StepIndex: total, Percent: 100, CompletedPercent: 100, StepProgress: 1}
		snap.Label = e.label(snap)
		return snap
	}

	step := steps[idx]
	if step.Name != e.activeName || idx != e.activeIdx {
		e.activeName, e.activeIdx = step.Name, idx
		e.started = now
	}
	elapsed := now.Sub(e.started)
	if elapsed < 0 {
		elapsed = 0
	}
	frac, phase := StepFraction(elapsed, step.ExpectedDuration)
	e.phase = phase

	// idx+frac rounds up to idx+1 for long tails, so the sum is clamped too.
	pct := math.Min(100*(float64(idx)+frac)/float64(total), math.Nextafter(100, 0))
	snap := Snapshot{
		Phase:            phase,
		StepIndex:        idx,
		StepName:         step.Name,
		StepProgress:     frac,
		Percent:          pct,
		CompletedPercent: completed,
	}
	snap.Label = e.label(snap)
	return snap
}

func (e *Estimator) reset() {
	e.activeName, e.activeIdx = "", -1
	e.started = time.Time{}
}

// StepFraction estimates how far along one step is. A non-positive expected
// duration puts the step straight into the tail instead of dividing by it.
// The result stays below 1.
func StepFraction(elapsed, expected time.Duration) (float64, Phase) {
	threshold := time.Duration(float64(expected) * slowdownAt)
	if expected <= 0 {
		threshold = 0
	}
	if elapsed < threshold {
		return float64(elapsed) / float64(expected), LinearPhase
	}
	excess := float64(elapsed-threshold) / float64(time.Millisecond)
	frac := slowdownAt + (1-slowdownAt)*(1-math.Exp(-excess/tailMillis))
	if frac >= 1 {
		frac = math.Nextafter(1, 0)
	}
	return frac, ExponentialSlowdownPhase
}

func (e *Estimator) label(s Snapshot) string {
	switch s.Phase {
	case AllDone:
		return fmt.Sprintf("%s… done: 100%%", e.Title)
	case NoStepRunning:
		return ""
	}
	return fmt.Sprintf("%s… %s: %d%%", e.Title, s.StepName, int(math.Floor(s.Percent)))
}
