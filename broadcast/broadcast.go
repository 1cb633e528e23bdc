/*
NAME
  broadcast.go

DESCRIPTION
  broadcast.go implements the core controller tying a configured set
  of channel sources to the DSR frame assembler, the QPSK modulator
  and an RF sink, with two-strike cancellation.

LICENSE
  This program is free software: you can redistribute it and/or modify
  it under the terms of the GNU General Public License as published by
  the Free Software Foundation, either version 3 of the License, or
  (at your option) any later version.
*/

// Package broadcast wires the configured channel sources, the dsr
// frame assembler and the modem modulator to an RF sink, mirroring
// dsrtx's main loop: read one 2 ms audio block from every active
// channel, encode it, modulate it, and push it to the sink, until
// told to stop.
package broadcast

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/ausocean/utils/logging"

	"github.com/sanslogic/dsrtx/channel"
	"github.com/sanslogic/dsrtx/charset"
	"github.com/sanslogic/dsrtx/config"
	"github.com/sanslogic/dsrtx/dsr"
	"github.com/sanslogic/dsrtx/modem"
	"github.com/sanslogic/dsrtx/sink"
	"github.com/sanslogic/dsrtx/source"
	rawaudio "github.com/sanslogic/dsrtx/source/file"
	"github.com/sanslogic/dsrtx/source/tone"
	"github.com/sanslogic/dsrtx/source/wavsrc"
)

// Logger is the structured logger every Encoder reports through. The
// default implementation is github.com/ausocean/utils/logging.
type Logger = logging.Logger

// samplesPerChannel is the number of samples, per channel, read for
// one Encode call.
const samplesPerChannel = dsr.SamplesPerBlock

// Encoder owns one dsr.Encoder, one modem.Modulator, the configured
// per-channel sources and one sink.Sink. It is single-threaded
// cooperative: its own goroutine is the only writer of its DSR and
// modem state.
type Encoder struct {
	enc     *dsr.Encoder
	mod     *modem.Modulator
	sink    sink.Sink
	sources [channel.Count]source.Source
	log     Logger

	block []byte
	iq    []int16
	monoL [samplesPerChannel]int16
	monoR [samplesPerChannel]int16

	abort   int32
	running bool
	stop    chan struct{}
	wg      sync.WaitGroup
}

// New builds an Encoder from a validated configuration, opening every
// configured channel's source and failing only on a malformed sample
// rate or modulator parameter. A channel whose source fails to open
// is logged and left silent, mirroring dsrtx's "Warning: Failed to
// open" behaviour rather than aborting the whole broadcast.
func New(cfg *config.Config, snk sink.Sink, log Logger) (*Encoder, error) {
	if dsr.SymbolRate == 0 || cfg.Output.SampleRate%dsr.SymbolRate != 0 {
		return nil, fmt.Errorf("broadcast: sample rate %d is not a multiple of %d", cfg.Output.SampleRate, dsr.SymbolRate)
	}
	interpolation := cfg.Output.SampleRate / dsr.SymbolRate

	var table channel.Table
	var sources [channel.Count]source.Source
	for i := range cfg.Channels {
		c := &cfg.Channels[i]
		base := (c.Number - 1) * 2

		src, err := openSource(c)
		if err != nil {
			log.Error("broadcast: failed to open channel source", "channel", c.Number, "error", err.Error())
			src = nil
		}

		switch strings.ToLower(c.Mode) {
		case "s":
			if table[base].Mode != channel.Off {
				log.Warning("broadcast: channel already allocated, skipping", "channel", c.Number, "mode", "S")
				continue
			}
			table[base] = channel.Channel{
				Type:  uint8(c.ProgramType),
				Music: c.Music,
				Mode:  channel.Primary,
				Name:  charset.Encode(c.Name),
			}
			secondary := c.SecondaryType
			if secondary == 0 {
				secondary = c.ProgramType
			}
			table[base+1] = channel.Channel{
				Type: uint8(secondary),
				Mode: channel.Secondary,
				Name: charset.Encode(c.Name),
			}
			sources[base] = src

		case "a", "b":
			slot := base
			if strings.ToLower(c.Mode) == "b" {
				slot++
			}
			if table[slot].Mode != channel.Off {
				log.Warning("broadcast: channel already allocated, skipping", "channel", c.Number, "mode", strings.ToUpper(c.Mode))
				continue
			}
			table[slot] = channel.Channel{
				Type:  uint8(c.ProgramType),
				Music: c.Music,
				Mode:  channel.Primary,
				Name:  charset.Encode(c.Name),
			}
			sources[slot] = src
		}
	}

	mod, err := modem.NewModulator(interpolation, 0.8*snk.Scale())
	if err != nil {
		return nil, fmt.Errorf("broadcast: %w", err)
	}

	dibits := dsr.BlockBytes * 8 / 2

	return &Encoder{
		enc:     dsr.NewEncoder(table),
		mod:     mod,
		sink:    snk,
		sources: sources,
		log:     log,
		block:   make([]byte, dsr.BlockBytes),
		iq:      make([]int16, dibits*interpolation*2),
	}, nil
}

func openSource(c *config.Channel) (source.Source, error) {
	switch strings.ToLower(c.SourceType) {
	case "", "rawaudio":
		if c.Input == "" {
			return nil, fmt.Errorf("broadcast: rawaudio source requires input")
		}
		return rawaudio.Open(c.Input, c.Exec, c.Stereo, c.Repeat)

	case "tone":
		return tone.New(c.Frequency, c.Level), nil

	case "wav":
		return wavsrc.Open(c.Input, c.Repeat)

	default:
		return nil, fmt.Errorf("broadcast: unrecognised source type %q", c.SourceType)
	}
}

// Start resets the strike counter and launches the encode/modulate/
// write loop in its own goroutine.
func (e *Encoder) Start() error {
	if e.running {
		e.log.Warning("broadcast: start called, but already running")
		return nil
	}

	atomic.StoreInt32(&e.abort, 0)
	e.stop = make(chan struct{})
	e.running = true

	e.wg.Add(1)
	go e.run()
	return nil
}

// Stop closes the stop channel, letting the loop finish the block
// already in flight before it exits, waits for it to finish, and
// closes the sink. A Cancel received independently (e.g. from a
// second OS signal) can still abort the loop without draining; Stop
// itself always lets the current block complete.
func (e *Encoder) Stop() error {
	if !e.running {
		e.log.Warning("broadcast: stop called but not running")
		return nil
	}

	close(e.stop)
	e.wg.Wait()
	e.running = false

	if err := e.sink.Close(); err != nil {
		return fmt.Errorf("broadcast: closing sink: %w", err)
	}
	return nil
}

// Wait blocks until the run loop exits, whether from Stop or from
// Cancel reaching the strike threshold on its own.
func (e *Encoder) Wait() {
	e.wg.Wait()
}

// Cancel raises the strike counter. The first call requests a clean
// stop after the current block finishes; a second call, before that
// drain completes, aborts the loop immediately without writing the
// in-flight block.
func (e *Encoder) Cancel() {
	atomic.AddInt32(&e.abort, 1)
}

func (e *Encoder) run() {
	defer e.wg.Done()

	var audio dsr.AudioBlock
	for {
		select {
		case <-e.stop:
			return
		default:
		}

		if atomic.LoadInt32(&e.abort) >= 2 {
			e.log.Warning("broadcast: aborting without draining")
			return
		}

		for i := range audio {
			audio[i] = 0
		}
		e.readAudio(&audio)

		block := e.enc.EncodeWithPI(audio, 0)
		n := e.mod.Modulate(e.iq, block, len(block)*8)

		if atomic.LoadInt32(&e.abort) >= 2 {
			e.log.Warning("broadcast: aborting without draining")
			return
		}

		if err := e.sink.Write(e.iq[:n*2]); err != nil {
			e.log.Error("broadcast: sink write failed", "error", err.Error())
			return
		}

		if atomic.LoadInt32(&e.abort) >= 1 {
			return
		}
	}
}

// readAudio fills one 2 ms audio block from every channel's source,
// mirroring dsrtx's stereo-pair/mono dispatch: a stereo pair reads
// both tracks from the primary slot's source; a mono A/B channel
// averages its source's two tracks into the single slot.
func (e *Encoder) readAudio(audio *dsr.AudioBlock) {
	channels := e.enc.Channels

	for l := 0; l < channel.Count; l++ {
		base := l &^ 1

		if l == base && channels[base].Mode == channel.Primary && channels[base+1].Mode == channel.Secondary {
			if src := e.sources[l]; src != nil {
				lSlice := audio[l*samplesPerChannel : (l+1)*samplesPerChannel]
				rSlice := audio[(l+1)*samplesPerChannel : (l+2)*samplesPerChannel]
				if _, err := src.Read(lSlice, rSlice); err != nil {
					e.log.Error("broadcast: channel read failed", "channel", l, "error", err.Error())
				}
			}
			l++
			continue
		}

		if channels[l].Mode == channel.Primary {
			if src := e.sources[l]; src != nil {
				if _, err := src.Read(e.monoL[:], e.monoR[:]); err != nil {
					e.log.Error("broadcast: channel read failed", "channel", l, "error", err.Error())
				}
				dst := audio[l*samplesPerChannel : (l+1)*samplesPerChannel]
				for i := range dst {
					dst[i] = int16((int32(e.monoL[i]) + int32(e.monoR[i])) / 2)
				}
			}
		}
	}
}
