// SPDX-License-Identifier: Unlicense OR MIT

// Package loop implements the paced render loop shared by the demos:
// render a frame, present it, then wait for the next frame while
// watching the event queue for a close request.
package loop

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
)

// Frame describes the frame about to be rendered.
type Frame struct {
	// Index counts frames from 0.
	Index int
	// Now is the time the frame started.
	Now time.Time
	// Elapsed is the time since the first frame started.
	Elapsed time.Duration
	// Delta is the time since the previous frame started. It is zero
	// for the first frame.
	Delta time.Duration
	// Rate is the frame rate implied by Delta, or zero for the first frame.
	Rate float64
}

// Loop drives Render and Present until Pacer reports the window closed.
type Loop struct {
	Render  func(f Frame) error
	Present func() error
	Pacer   Pacer
	// Clock defaults to System.
	Clock Clock
	// Logger receives per-frame timing at debug level. Nil disables
	// diagnostics.
	Logger *log.Logger
	// MaxFrames stops the loop after that many frames when positive.
	MaxFrames int
}

// ErrNoPacer is returned by Run when Loop.Pacer is nil.
var ErrNoPacer = errors.New("loop: no pacer")

// Run renders frames until the window is closed, ctx is done, or
// rendering fails. Cancellation is only observed between frames. A close
// request ends the loop without error.
func (l *Loop) Run(ctx context.Context) (Stats, error) {
	var stats Stats
	if l.Pacer == nil {
		return stats, ErrNoPacer
	}
	clock := l.Clock
	if clock == nil {
		clock = System
	}
	var first, prev time.Time
	quit := false
	for i := 0; !quit; i++ {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		if l.MaxFrames > 0 && i >= l.MaxFrames {
			break
		}
		now := clock.Now()
		f := Frame{Index: i, Now: now}
		if i == 0 {
			first = now
		} else {
			f.Elapsed = now.Sub(first)
			f.Delta = now.Sub(prev)
			if f.Delta > 0 {
				f.Rate = 1 / f.Delta.Seconds()
			}
			stats.add(f.Delta)
			if l.Logger != nil {
				l.Logger.Debug("frame", "n", i, "delta", f.Delta, "fps", fmt.Sprintf("%.1f", f.Rate))
			}
		}
		prev = now
		if l.Render != nil {
			if err := l.Render(f); err != nil {
				return stats, fmt.Errorf("loop: frame %d: %w", i, err)
			}
		}
		if l.Present != nil {
			if err := l.Present(); err != nil {
				return stats, fmt.Errorf("loop: present frame %d: %w", i, err)
			}
		}
		stats.Frames++
		open, err := l.Pacer.Pace(clock.Now())
		if err != nil {
			return stats, fmt.Errorf("loop: pacing frame %d: %w", i, err)
		}
		if !open {
			quit = true
		}
	}
	return stats, nil
}
