/*
NAME
  wavsrc.go

DESCRIPTION
  wavsrc.go implements a Source decoding PCM samples from a WAV file,
  as a convenience alternative to raw headerless audio.

LICENSE
  This program is free software: you can redistribute it and/or modify
  it under the terms of the GNU General Public License as published by
  the Free Software Foundation, either version 3 of the License, or
  (at your option) any later version.
*/

// Package wavsrc provides a Source reading PCM samples out of a
// RIFF/WAVE file.
package wavsrc

import (
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/sanslogic/dsrtx/source"
)

const pcmChunkSamples = 4096

// Source reads interleaved PCM samples from a WAV file, repeating
// from the start on end of file when repeat is set.
type Source struct {
	f      *os.File
	dec    *wav.Decoder
	buf    *audio.IntBuffer
	pos    int
	n      int
	repeat bool
	eof    bool
}

// Open opens path as a WAV Source. The file's sample rate must match
// source.SampleRate; repeat rewinds to the start of the data chunk on
// end of file instead of latching EOF.
func Open(path string, repeat bool) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("wavsrc: opening %s: %w", path, err)
	}

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		f.Close()
		return nil, fmt.Errorf("wavsrc: %s is not a valid WAV file", path)
	}
	dec.ReadInfo()
	if int(dec.SampleRate) != source.SampleRate {
		f.Close()
		return nil, fmt.Errorf("wavsrc: %s has sample rate %d, want %d", path, dec.SampleRate, source.SampleRate)
	}
	if dec.NumChans != 1 && dec.NumChans != 2 {
		f.Close()
		return nil, fmt.Errorf("wavsrc: %s has %d channels, want 1 or 2", path, dec.NumChans)
	}

	s := &Source{
		f:      f,
		dec:    dec,
		repeat: repeat,
		buf: &audio.IntBuffer{
			Format: &audio.Format{NumChannels: int(dec.NumChans), SampleRate: int(dec.SampleRate)},
			Data:   make([]int, pcmChunkSamples*int(dec.NumChans)),
		},
	}
	return s, nil
}

// Read implements source.Source.
func (s *Source) Read(l, r []int16) (int, error) {
	if s.eof {
		return 0, nil
	}

	written := 0
	for written < len(l) {
		if s.pos >= s.n {
			if err := s.fill(); err != nil {
				return written, err
			}
			if s.n == 0 {
				if s.repeat {
					if err := s.rewind(); err != nil {
						return written, err
					}
					continue
				}
				s.eof = true
				return written, nil
			}
		}

		channels := s.buf.Format.NumChannels
		for s.pos < s.n && written < len(l) {
			if channels == 2 {
				l[written] = int16(s.buf.Data[s.pos*2])
				r[written] = int16(s.buf.Data[s.pos*2+1])
			} else {
				v := int16(s.buf.Data[s.pos])
				l[written], r[written] = v, v
			}
			s.pos++
			written++
		}
	}
	return written, nil
}

func (s *Source) fill() error {
	n, err := s.dec.PCMBuffer(s.buf)
	if err != nil {
		return fmt.Errorf("wavsrc: decoding: %w", err)
	}
	channels := s.buf.Format.NumChannels
	s.n = n / channels
	s.pos = 0
	return nil
}

func (s *Source) rewind() error {
	if _, err := s.f.Seek(0, 0); err != nil {
		return fmt.Errorf("wavsrc: rewinding: %w", err)
	}
	s.dec = wav.NewDecoder(s.f)
	if !s.dec.IsValidFile() {
		return fmt.Errorf("wavsrc: rewound file is no longer valid")
	}
	s.dec.ReadInfo()
	s.n, s.pos = 0, 0
	return nil
}

// EOF implements source.Source.
func (s *Source) EOF() bool {
	return s.eof
}

// Close implements source.Source.
func (s *Source) Close() error {
	return s.f.Close()
}
