// SPDX-License-Identifier: Unlicense OR MIT

package loop

import (
	"fmt"
	"time"
)

const (
	// DefaultInterval is the frame period targeted by Poll.
	DefaultInterval = time.Second / 60
	// MinInterval is the shortest frame period IntervalFor accepts.
	MinInterval = 100 * time.Microsecond
	// VSyncTimeout bounds the event wait after a throttled swap.
	VSyncTimeout = time.Millisecond
	// DefaultNap is the sleep between event polls of NewPacer's Poll.
	DefaultNap = time.Millisecond
)

// IntervalFor converts a target frame rate to a frame period.
func IntervalFor(fps float64) (time.Duration, error) {
	if !(fps > 0) {
		return 0, fmt.Errorf("loop: invalid frame rate %v", fps)
	}
	d := time.Duration(float64(time.Second) / fps)
	if d < MinInterval {
		return 0, fmt.Errorf("loop: frame rate %v exceeds %v frames per second", fps, float64(time.Second/MinInterval))
	}
	return d, nil
}

// NewPacer returns a VSync pacer if swaps are throttled by the swap
// interval, and a Poll pacer targeting interval otherwise.
func NewPacer(events Waiter, swapThrottled bool, interval time.Duration) Pacer {
	if swapThrottled {
		return &VSync{Events: events, Timeout: VSyncTimeout}
	}
	return &Poll{Events: events, Interval: interval, Nap: DefaultNap}
}

// Clock is a monotonic time source.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

type systemClock struct{}

// System is the Clock backed by the runtime's monotonic clock.
var System Clock = systemClock{}

func (systemClock) Now() time.Time { return time.Now() }

func (systemClock) Sleep(d time.Duration) { time.Sleep(d) }

// Events is a native event queue. ProcessEvents drains the queue once
// and reports false when the window was asked to close.
type Events interface {
	ProcessEvents() bool
}

// Waiter is an Events that can block until the queue is readable.
type Waiter interface {
	Events
	// WaitEvents blocks until an event is queued or timeout expires.
	WaitEvents(timeout time.Duration) error
}

// Pacer is a frame scheduler. Pace is called after a frame has been
// presented, with the time presentation finished, and returns when the
// next frame is due. It reports false if the window is closing.
type Pacer interface {
	Pace(start time.Time) (bool, error)
}

// VSync paces frames that are already throttled by a swap interval of 1.
// It only waits on the event queue, until either a close request arrives
// or Timeout has elapsed since start.
type VSync struct {
	Events  Waiter
	Timeout time.Duration
	Clock   Clock
}

func (v *VSync) Pace(start time.Time) (bool, error) {
	clock := v.Clock
	if clock == nil {
		clock = System
	}
	deadline := start.Add(v.Timeout)
	for {
		if !v.Events.ProcessEvents() {
			return false, nil
		}
		rem := deadline.Sub(clock.Now())
		if rem <= 0 {
			return true, nil
		}
		if err := v.Events.WaitEvents(rem); err != nil {
			return false, err
		}
	}
}

// Poll paces frames without help from the swap interval. It polls the
// event queue, napping between polls, until Interval has elapsed since
// start.
type Poll struct {
	Events Events
	// Interval is the frame period. Zero means DefaultInterval.
	Interval time.Duration
	// Nap is the sleep between polls. Zero means busy polling.
	Nap   time.Duration
	Clock Clock
}

func (p *Poll) Pace(start time.Time) (bool, error) {
	clock := p.Clock
	if clock == nil {
		clock = System
	}
	interval := p.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	for {
		if !p.Events.ProcessEvents() {
			return false, nil
		}
		el := clock.Now().Sub(start)
		if el >= interval {
			return true, nil
		}
		if p.Nap > 0 {
			nap := p.Nap
			if rem := interval - el; rem < nap {
				nap = rem
			}
			clock.Sleep(nap)
		}
	}
}
