/*
NAME
  file.go

DESCRIPTION
  file.go implements a Source reading interleaved 16-bit PCM samples
  from a file, or from the stdout of a subprocess, with optional
  repeat-on-EOF.

LICENSE
  This program is free software: you can redistribute it and/or modify
  it under the terms of the GNU General Public License as published by
  the Free Software Foundation, either version 3 of the License, or
  (at your option) any later version.
*/

// Package file provides Source implementations reading raw 16-bit PCM
// audio from a file or a subprocess's standard output.
package file

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/pkg/errors"
)

// Source reads interleaved 16-bit little-endian PCM audio from a file
// or subprocess.
type Source struct {
	r       io.ReadCloser
	closer  func() error
	stereo  bool
	repeat  bool
	reopen  func() (io.ReadCloser, func() error, error)
	eof     bool
	scratch []byte
}

// Open opens path as a raw-PCM Source. If exec is true, path is run
// as a shell command and its standard output is read instead. stereo
// selects 2-channel interleaved input over mono; repeat rewinds (or
// re-execs) the source on end of file instead of latching EOF.
func Open(path string, execCmd, stereo, repeat bool) (*Source, error) {
	s := &Source{stereo: stereo, repeat: repeat}
	s.reopen = func() (io.ReadCloser, func() error, error) {
		return openOnce(path, execCmd)
	}

	r, closer, err := s.reopen()
	if err != nil {
		return nil, err
	}
	s.r, s.closer = r, closer
	return s, nil
}

func openOnce(path string, execCmd bool) (io.ReadCloser, func() error, error) {
	if !execCmd {
		f, err := os.Open(path)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "source/file: opening %s", path)
		}
		return f, f.Close, nil
	}

	cmd := exec.Command("sh", "-c", path)
	out, err := cmd.StdoutPipe()
	if err != nil {
		return nil, nil, errors.Wrapf(err, "source/file: piping command %q", path)
	}
	if err := cmd.Start(); err != nil {
		return nil, nil, errors.Wrapf(err, "source/file: starting command %q", path)
	}
	return out, func() error {
		out.Close()
		return cmd.Wait()
	}, nil
}

// Read implements Source.
func (s *Source) Read(l, r []int16) (int, error) {
	if s.eof {
		return 0, nil
	}

	n := len(l)
	channels := 1
	if s.stereo {
		channels = 2
	}

	need := n * channels * 2
	if cap(s.scratch) < need {
		s.scratch = make([]byte, need)
	}
	buf := s.scratch[:need]

	read, err := io.ReadFull(s.r, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return 0, fmt.Errorf("source/file: read: %w", err)
	}

	samples := read / (channels * 2)
	for i := 0; i < samples; i++ {
		if s.stereo {
			l[i] = int16(binary.LittleEndian.Uint16(buf[i*4:]))
			r[i] = int16(binary.LittleEndian.Uint16(buf[i*4+2:]))
		} else {
			v := int16(binary.LittleEndian.Uint16(buf[i*2:]))
			l[i], r[i] = v, v
		}
	}

	if samples < n {
		if s.repeat {
			if err := s.rewind(); err != nil {
				return samples, err
			}
			more, err := s.Read(l[samples:n], r[samples:n])
			return samples + more, err
		}
		s.eof = true
	}

	return samples, nil
}

func (s *Source) rewind() error {
	if f, ok := s.r.(*os.File); ok {
		if _, err := f.Seek(0, io.SeekStart); err == nil {
			return nil
		}
	}

	if s.closer != nil {
		s.closer()
	}
	r, closer, err := s.reopen()
	if err != nil {
		return err
	}
	s.r, s.closer = r, closer
	return nil
}

// EOF implements Source.
func (s *Source) EOF() bool {
	return s.eof
}

// Close implements Source.
func (s *Source) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer()
}
