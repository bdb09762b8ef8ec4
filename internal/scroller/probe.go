package scroller

import (
	"context"
	"sync"
)

// Sizer is the host side of a Probe: a scratch area that lays out staged
// handles off screen and reports their heights once layout has settled.
type Sizer interface {
	// Stage replaces the probe's content with handles. Stage(nil) clears it.
	Stage(handles []Handle)
	Height(h Handle) int
}

// Probe is a Measurer for hosts whose layout pass runs asynchronously.
// Measure stages the handles and blocks until the host calls LayoutSettled,
// the context is cancelled, or the probe is detached.
type Probe struct {
	sizer Sizer

	mu       sync.Mutex
	attached bool
	settled  chan struct{} // non-nil while a measurement waits
}

// NewProbe returns a detached probe over sizer.
func NewProbe(sizer Sizer) *Probe {
	return &Probe{sizer: sizer}
}

// Attach makes the probe available for measurement.
func (p *Probe) Attach() {
	p.mu.Lock()
	p.attached = true
	p.mu.Unlock()
}

// Detach abandons a pending measurement and rejects further ones.
func (p *Probe) Detach() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.attached = false
	p.wake()
	p.sizer.Stage(nil)
}

// LayoutSettled resumes the pending measurement, if any. Calls without a
// pending measurement are ignored.
func (p *Probe) LayoutSettled() {
	p.mu.Lock()
	p.wake()
	p.mu.Unlock()
}

// Pending reports whether a measurement is waiting for layout.
func (p *Probe) Pending() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.settled != nil
}

// Measure implements Measurer.
func (p *Probe) Measure(ctx context.Context, handles []Handle) ([]int, error) {
	p.mu.Lock()
	if !p.attached {
		p.mu.Unlock()
		return nil, ErrProbeDetached
	}
	if p.settled != nil {
		p.mu.Unlock()
		return nil, ErrMeasureInFlight
	}
	settled := make(chan struct{})
	p.settled = settled
	p.sizer.Stage(handles)
	p.mu.Unlock()

	select {
	case <-settled:
	case <-ctx.Done():
		p.mu.Lock()
		if p.settled == settled {
			p.settled = nil
			p.sizer.Stage(nil)
		}
		p.mu.Unlock()
		return nil, ctx.Err()
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.attached {
		return nil, ErrProbeDetached
	}
	heights := make([]int, len(handles))
	for i, h := range handles {
		heights[i] = p.sizer.Height(h)
	}
	p.sizer.Stage(nil)
	return heights, nil
}

// wake releases the waiting measurement exactly once. Callers hold mu.
func (p *Probe) wake() {
	if p.settled != nil {
		close(p.settled)
		p.settled = nil
	}
}
