/*
NAME
  source.go

DESCRIPTION
  source.go defines the pull-model audio source contract every channel
  source implementation in source/file, source/tone and source/wavsrc
  satisfies.

LICENSE
  This program is free software: you can redistribute it and/or modify
  it under the terms of the GNU General Public License as published by
  the Free Software Foundation, either version 3 of the License, or
  (at your option) any later version.
*/

// Package source defines the pull-model audio source contract used by
// the broadcast controller to fill each channel slot's 64-sample
// block. Concrete sources live in source/file, source/tone and
// source/wavsrc.
package source

// SampleRate is the fixed sample rate, in Hz, every Source produces.
const SampleRate = 32000

// Source is a pull-model stereo audio source. A mono source writes
// identical samples into both l and r.
//
// Read never returns an error for ordinary end of stream: once a
// source is exhausted it latches EOF and every subsequent Read
// returns 0 until Close. A non-nil error indicates the source is
// broken and the caller should drop it, letting its channel fall back
// to silence.
type Source interface {
	// Read fills up to len(l) samples into l and r. It returns the
	// number of samples written, which is less than len(l) only at
	// end of stream.
	Read(l, r []int16) (n int, err error)

	// EOF reports whether the source has latched end of stream.
	EOF() bool

	// Close releases any resources held by the source.
	Close() error
}
