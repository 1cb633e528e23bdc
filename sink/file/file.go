/*
NAME
  file.go

DESCRIPTION
  file.go implements a Sink writing modulated I/Q samples to a file,
  or to standard output, in one of several on-disk sample formats.

LICENSE
  This program is free software: you can redistribute it and/or modify
  it under the terms of the GNU General Public License as published by
  the Free Software Foundation, either version 3 of the License, or
  (at your option) any later version.
*/

// Package file provides a Sink writing modulated baseband I/Q samples
// to a file in a chosen on-disk sample format.
package file

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"math"
	"os"
)

// DataType selects the on-disk sample representation Sink encodes
// each I/Q sample as.
type DataType int

// Supported on-disk sample formats, matching the set an SDR front end
// or file-based IQ consumer typically expects.
const (
	UInt8 DataType = iota
	Int8
	UInt16
	Int16
	Int32
	Float32
)

// Sink writes interleaved I/Q samples to a file or to standard output
// (path "-"), encoded as typ.
type Sink struct {
	f       *os.File
	w       *bufio.Writer
	typ     DataType
	live    bool
	scratch []byte
}

// Open opens path (or standard output, for path "-") as a Sink
// encoding every written sample as typ. live marks the sink as pacing
// writes to wall-clock time, mirroring a real RF front end.
func Open(path string, typ DataType, live bool) (*Sink, error) {
	var f *os.File
	if path == "-" {
		f = os.Stdout
	} else {
		var err error
		f, err = os.Create(path)
		if err != nil {
			return nil, fmt.Errorf("sink/file: creating %s: %w", path, err)
		}
	}

	return &Sink{
		f:    f,
		w:    bufio.NewWriterSize(f, 1024*sampleSize(typ)),
		typ:  typ,
		live: live,
	}, nil
}

func sampleSize(typ DataType) int {
	switch typ {
	case UInt8, Int8:
		return 1
	case UInt16, Int16:
		return 2
	case Int32, Float32:
		return 4
	default:
		return 2
	}
}

// Write implements sink.Sink. len(iq) must be even; samples are
// interleaved I, Q, I, Q, ...
func (s *Sink) Write(iq []int16) error {
	n := len(iq) * sampleSize(s.typ)
	if cap(s.scratch) < n {
		s.scratch = make([]byte, n)
	}
	buf := s.scratch[:n]

	switch s.typ {
	case UInt8:
		for i, v := range iq {
			buf[i] = byte((int(v) - math.MinInt16) >> 8)
		}
	case Int8:
		for i, v := range iq {
			buf[i] = byte(v >> 8)
		}
	case UInt16:
		for i, v := range iq {
			binary.LittleEndian.PutUint16(buf[i*2:], uint16(int(v)-math.MinInt16))
		}
	case Int16:
		for i, v := range iq {
			binary.LittleEndian.PutUint16(buf[i*2:], uint16(v))
		}
	case Int32:
		for i, v := range iq {
			binary.LittleEndian.PutUint32(buf[i*4:], uint32(int32(v)<<16+int32(v)))
		}
	case Float32:
		for i, v := range iq {
			binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(float32(v)*(1.0/32767.0)))
		}
	default:
		return fmt.Errorf("sink/file: unrecognised data type %d", s.typ)
	}

	if _, err := s.w.Write(buf); err != nil {
		return fmt.Errorf("sink/file: write: %w", err)
	}
	return nil
}

// Scale implements sink.Sink. A file sink quantises on write without
// reducing input amplitude, so no headroom compensation is needed.
func (s *Sink) Scale() float64 {
	return 1.0
}

// Live implements sink.Sink.
func (s *Sink) Live() bool {
	return s.live
}

// Close implements sink.Sink.
func (s *Sink) Close() error {
	if err := s.w.Flush(); err != nil {
		return err
	}
	if s.f == os.Stdout {
		return nil
	}
	return s.f.Close()
}
