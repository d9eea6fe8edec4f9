// SPDX-License-Identifier: Unlicense OR MIT

package loop

import (
	"time"

	"golang.org/x/exp/slices"
)

// window is the number of recent deltas kept for the median.
const window = 120

// Stats summarizes the frame timing of a Run.
type Stats struct {
	// Frames is the number of frames presented.
	Frames int

	n             int
	min, max, sum time.Duration
	recent        []time.Duration
	next          int
}

func (s *Stats) add(d time.Duration) {
	if s.n == 0 || d < s.min {
		s.min = d
	}
	if d > s.max {
		s.max = d
	}
	s.n++
	s.sum += d
	if len(s.recent) < window {
		s.recent = append(s.recent, d)
		return
	}
	s.recent[s.next] = d
	s.next = (s.next + 1) % window
}

// Min returns the shortest frame delta, or zero with fewer than two frames.
func (s *Stats) Min() time.Duration { return s.min }

// Max returns the longest frame delta.
func (s *Stats) Max() time.Duration { return s.max }

// Mean returns the average frame delta.
func (s *Stats) Mean() time.Duration {
	if s.n == 0 {
		return 0
	}
	return s.sum / time.Duration(s.n)
}

// Median returns the median of the most recent frame deltas.
func (s *Stats) Median() time.Duration {
	if len(s.recent) == 0 {
		return 0
	}
	ds := slices.Clone(s.recent)
	slices.Sort(ds)
	return ds[len(ds)/2]
}

// Rate returns the mean frame rate.
func (s *Stats) Rate() float64 {
	m := s.Mean()
	if m <= 0 {
		return 0
	}
	return 1 / m.Seconds()
}
