/*
NAME
  qpsk.go

DESCRIPTION
  qpsk.go implements the DSR baseband modulator: differential QPSK
  symbol mapping shaped by a root-raised-cosine pulse windowed with a
  Hamming taper, interpolated to the configured oversampling ratio via
  an overlap-add tap bank.

LICENSE
  This program is free software: you can redistribute it and/or modify
  it under the terms of the GNU General Public License as published by
  the Free Software Foundation, either version 3 of the License, or
  (at your option) any later version.
*/

// Package modem turns a scrambled baseband bitstream into interpolated
// differential-QPSK I/Q samples, ready for an RF sink.
package modem

import (
	"fmt"
	"math"
)

// invSqrt2 is 1/sqrt(2), the per-axis scale of a unit-magnitude QPSK
// constellation point.
const invSqrt2 = 0.70710678118654752440

// iq is one interpolator tap or one accumulator cell: in-phase and
// quadrature components.
type iq struct {
	i, q int16
}

// constellation holds the four unit QPSK symbol points in transmission
// order, rotating 90 degrees between consecutive entries.
var constellation = [4][2]float64{
	{-1, -1},
	{-1, 1},
	{1, 1},
	{1, -1},
}

// diffMap maps a 2-bit dibit, read MSB first, to the differential
// phase step applied to the running symbol.
var diffMap = [4]byte{0, 3, 1, 2}

// Modulator holds the precomputed tap bank and running state of one
// differential-QPSK shaped modulator. It is not safe for concurrent
// use.
type Modulator struct {
	interpolation int
	ntaps         int
	taps          [4][]iq

	win  []iq
	winx int

	sym byte
}

// NewModulator builds a Modulator with the given integer interpolation
// factor and output amplitude level (0,1]. The number of filter taps
// is 10*interpolation, rounded up to the next odd value.
func NewModulator(interpolation int, level float64) (*Modulator, error) {
	if interpolation <= 0 {
		return nil, fmt.Errorf("modem: interpolation must be positive, got %d", interpolation)
	}
	if level <= 0 || level > 1 {
		return nil, fmt.Errorf("modem: level must be in (0,1], got %g", level)
	}

	m := &Modulator{
		interpolation: interpolation,
		ntaps:         (10 * interpolation) | 1,
	}

	n := m.ntaps / 2
	for s := 0; s < 4; s++ {
		m.taps[s] = make([]iq, m.ntaps)
		for x := 0; x < m.ntaps; x++ {
			t := float64(x-n) / float64(interpolation)
			r := rrc(t, 0.5, 1.0) * hamming(float64(x-n)/float64(n))
			m.taps[s][x] = iq{
				i: round16(r * constellation[s][0] * invSqrt2 * math.MaxInt16 * level),
				q: round16(r * constellation[s][1] * invSqrt2 * math.MaxInt16 * level),
			}
		}
	}

	m.win = make([]iq, m.ntaps)
	return m, nil
}

func round16(v float64) int16 {
	return int16(math.Round(v))
}

// hamming evaluates a Hamming window over the normalised interval
// [-1,1], returning 0 outside it.
func hamming(x float64) float64 {
	if x < -1 || x > 1 {
		return 0
	}
	return 0.54 - 0.46*math.Cos(math.Pi*(1.0+x))
}

// rrc evaluates a root-raised-cosine pulse with roll-off b and symbol
// period t at offset x.
func rrc(x, b, t float64) float64 {
	switch {
	case x == 0:
		return (1.0 / t) * (1.0 + b*(4.0/math.Pi-1))
	case math.Abs(x) == t/(4.0*b):
		return b / (t * math.Sqrt2) * ((1.0+2.0/math.Pi)*math.Sin(math.Pi/(4.0*b)) + (1.0-2.0/math.Pi)*math.Cos(math.Pi/(4.0*b)))
	default:
		t1 := 4.0 * b * (x / t)
		t2 := math.Sin(math.Pi*(x/t)*(1.0-b)) + 4.0*b*(x/t)*math.Cos(math.Pi*(x/t)*(1.0+b))
		t3 := math.Pi * (x / t) * (1.0 - t1*t1)
		return (1.0 / t) * (t2 / t3)
	}
}

// Modulate reads bits (MSB first) from src two at a time, advances the
// differential symbol state, and writes the resulting interpolated I/Q
// samples into dst as interleaved int16 pairs. It returns the number
// of I/Q sample pairs written, bits/2*interpolation. dst must have
// room for at least 2*that many int16 values.
func (m *Modulator) Modulate(dst []int16, src []byte, bits int) int {
	out := 0
	for x := 0; x < bits; x += 2 {
		shift := uint(6 - (x & 7))
		dibit := (src[x>>3] >> shift) & 3
		m.sym = (m.sym + diffMap[dibit]) & 3

		taps := m.taps[m.sym]
		for i := 0; i < m.ntaps; i++ {
			w := (m.winx + i) % m.ntaps
			m.win[w].i += taps[i].i
			m.win[w].q += taps[i].q
		}

		for i := 0; i < m.interpolation; i++ {
			dst[out*2+0] = m.win[m.winx].i
			dst[out*2+1] = m.win[m.winx].q
			m.win[m.winx] = iq{}
			m.winx++
			if m.winx == m.ntaps {
				m.winx = 0
			}
			out++
		}
	}
	return out
}

// NTaps returns the number of filter taps the modulator interpolates
// with, for callers that want to size or inspect buffers.
func (m *Modulator) NTaps() int {
	return m.ntaps
}

// Symbol returns the modulator's current differential symbol state
// (0-3).
func (m *Modulator) Symbol() byte {
	return m.sym
}
