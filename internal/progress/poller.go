package progress

import (
	"context"
	"time"
)

// Source returns the current step list each time the poller samples.
type Source func() []Step

// Poller drives an Estimator from a ticker outside of the dashboard.
type Poller struct {
	Interval  time.Duration
	Clock     Clock
	Estimator *Estimator
}

// Run samples immediately and then every Interval until all steps are done,
// no step is running, or ctx ends. The ticker is stopped on every return.
func (p *Poller) Run(ctx context.Context, src Source, onSample func(Snapshot)) error {
	clock := p.Clock
	if clock == nil {
		clock = SystemClock{}
	}
	est := p.Estimator
	if est == nil {
		est = NewEstimator("")
	}
	interval := p.Interval
	if interval <= 0 {
		interval = 250 * time.Millisecond
	}

	snap := est.Sample(clock.Now(), src())
	onSample(snap)
	if !snap.Phase.Active() {
		return nil
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			snap = est.Sample(clock.Now(), src())
			onSample(snap)
			if !snap.Phase.Active() {
				return nil
			}
		}
	}
}
