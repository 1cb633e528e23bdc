/*
NAME
  tone.go

DESCRIPTION
  tone.go implements a Source generating a mono sine tone at a fixed
  frequency and level, duplicated across both stereo tracks.

LICENSE
  This program is free software: you can redistribute it and/or modify
  it under the terms of the GNU General Public License as published by
  the Free Software Foundation, either version 3 of the License, or
  (at your option) any later version.
*/

// Package tone provides a sine-wave Source, useful for test signals
// and idents.
package tone

import (
	"math"

	"github.com/sanslogic/dsrtx/source"
)

// Source renders a continuous sine wave at Frequency Hz, scaled by
// Level (0-1), into both stereo tracks. It never reaches EOF.
type Source struct {
	x     float64
	delta float64
	level float64
}

// New returns a Source generating a sine wave at frequency Hz scaled
// by level, which should be in [0, 1].
func New(frequency, level float64) *Source {
	return &Source{
		delta: 2.0 * math.Pi * frequency / source.SampleRate,
		level: level,
	}
}

// Read implements source.Source.
func (s *Source) Read(l, r []int16) (int, error) {
	for i := range l {
		v := int16(math.Sin(s.x) * s.level * math.MaxInt16)
		l[i], r[i] = v, v
		s.x += s.delta
	}
	return len(l), nil
}

// EOF implements source.Source. A tone generator never ends.
func (s *Source) EOF() bool {
	return false
}

// Close implements source.Source.
func (s *Source) Close() error {
	return nil
}
