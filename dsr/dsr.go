/*
NAME
  dsr.go

DESCRIPTION
  dsr.go implements the DSR baseband frame assembler: block-floating
  companding, BCH(63,44) and BCH(14,6) forward error correction, two-way
  bit interleaving and PRBS spectrum shaping, turning 2 ms of 32-channel
  audio into a 5120-byte baseband block.

LICENSE
  This program is free software: you can redistribute it and/or modify
  it under the terms of the GNU General Public License as published by
  the Free Software Foundation, either version 3 of the License, or
  (at your option) any later version.
*/

// Package dsr assembles DSR baseband blocks from 32-channel audio and
// a service-administration matrix. It is the bit-exact core of the
// broadcast encoder: every other package exists to feed it samples or
// consume its output.
package dsr

import (
	"github.com/sanslogic/dsrtx/bits"
	"github.com/sanslogic/dsrtx/channel"
	"github.com/sanslogic/dsrtx/sau"
)

const (
	// SampleRate is the audio sample rate, in Hz, of every channel.
	SampleRate = 32000

	// SymbolRate is the baseband symbol rate, in symbols/s.
	SymbolRate = 10240000

	// Channels is the number of mono channel slots the encoder carries.
	Channels = channel.Count

	// SamplesPerBlock is the number of samples, per channel, in one
	// 2 ms audio block.
	SamplesPerBlock = 64
	samplesPerBlock = SamplesPerBlock

	// framesPerBlock is the number of main frame pairs emitted per
	// audio block.
	framesPerBlock = 64

	// frameBytes is the size, in bytes, of one main frame pair (a and b).
	frameBytes = 80

	// BlockBytes is the size, in bytes, of one encoded baseband block.
	BlockBytes = framesPerBlock * frameBytes

	// delayLen is the length, in samples, of the delay ring shared by
	// all channels (four 2 ms blocks).
	delayLen = 8192

	// delaySlot is the size, in samples, of one quarter of the delay
	// ring: one 2 ms block of every channel (32 channels * 64 samples).
	delaySlot = 0x800

	syncWord = 0x712

	bchGenerator = 0x8751
)

// Encoder holds the mutable state of one DSR baseband assembler: the
// channel table, frame counter, service-administration matrix and
// sample delay ring. It is not safe for concurrent use.
type Encoder struct {
	Channels channel.Table

	frame int
	sa    sau.Matrix
	delay [delayLen]int16
}

// NewEncoder returns an Encoder with the given channel table, and
// builds its initial service-administration matrix.
func NewEncoder(channels channel.Table) *Encoder {
	e := &Encoder{Channels: channels}
	e.UpdateSA()
	return e
}

// UpdateSA rebuilds the service-administration matrix from the
// current channel table. Call it after changing e.Channels.
func (e *Encoder) UpdateSA() {
	e.sa = sau.Build(e.Channels)
}

// Frame returns the index of the next main frame pair the encoder
// will emit. It advances by framesPerBlock on every call to Encode.
func (e *Encoder) Frame() int {
	return e.frame
}

// AudioBlock is one 2 ms slice of audio: 32 channels, 64 samples each,
// channel-major (AudioBlock[c*64+x] is sample x of channel c).
type AudioBlock [Channels * samplesPerBlock]int16

// Encode assembles one 5120-byte baseband block from a 2 ms audio
// block, advancing the encoder's internal frame counter by
// framesPerBlock. The programme-identification field of every ZI
// frame is zero; use EncodeWithPI to set it.
func (e *Encoder) Encode(audio AudioBlock) []byte {
	return e.EncodeWithPI(audio, 0)
}

// EncodeWithPI is Encode with an explicit 22-bit
// programme-identification value carried in every ZI frame of this
// audio block. pi is masked to 22 bits.
func (e *Encoder) EncodeWithPI(audio AudioBlock, pi uint32) []byte {
	pi &= (1 << 22) - 1

	blockno := e.frame >> 6

	scale := e.scaleBlock(audio)

	var zi [16][8]byte
	for i := 0; i < 16; i++ {
		ziFrame(&zi[i], ranges[scale[i*2+0]].shift, ranges[scale[i*2+1]].shift, pi)
	}

	e.insertDelay(audio, scale, blockno)
	readBase := (blockno & 3) * delaySlot & (delayLen - 1)

	block := make([]byte, BlockBytes)
	for i := 0; i < framesPerBlock; i++ {
		e.assembleFramePair(block[i*frameBytes:(i+1)*frameBytes], readBase+i*Channels, zi, i)
	}

	e.frame += framesPerBlock
	return block
}

// scaleBlock selects, for each of the 32 channels, the coarsest-to-
// finest range index whose mask no sample in the block overflows.
func (e *Encoder) scaleBlock(audio AudioBlock) [Channels]int {
	var scale [Channels]int
	for c := 0; c < Channels; c++ {
		idx := 0
		for x := 0; x < samplesPerBlock; x++ {
			s := audio[c*samplesPerBlock+x]
			as := s
			if as < 0 {
				as = ^as
			}
			for uint16(as)&ranges[idx].mask != 0 {
				idx++
			}
		}
		scale[c] = idx
	}
	return scale
}

// insertDelay writes the scaled samples of this audio block into the
// delay ring, 4 ms ahead of the read pointer used to build frames.
func (e *Encoder) insertDelay(audio AudioBlock, scale [Channels]int, blockno int) {
	base := ((blockno + 2) & 3) * delaySlot & (delayLen - 1)
	for x := 0; x < samplesPerBlock; x++ {
		for c := 0; c < Channels; c++ {
			shift := ranges[scale[c]].shift
			v := audio[c*samplesPerBlock+x] << uint(shift)
			e.delay[base+x*Channels+c] = v >> 2
		}
	}
}

// assembleFramePair builds the i-th 80-byte main frame pair (40 bytes
// a, 40 bytes b) of the current audio block, reading 32 delay-ring
// samples starting at readOff.
func (e *Encoder) assembleFramePair(dst []byte, readOff int, zi [16][8]byte, i int) {
	var a, b [40]byte

	bits.WriteUint(a[:], 0, syncWord, 11)
	bits.WriteUint(b[:], 0, (^uint64(syncWord))&0x7FF, 11)

	j := e.frame + i + 16
	saBit := e.sa.Bit(j)
	bits.WriteUint(a[:], 11, uint64(saBit), 1)
	bits.WriteUint(b[:], 11, 0, 1)

	var c [8][10]byte
	off := readOff
	for k := 0; k < 8; k++ {
		l1 := e.delay[(off+0)&(delayLen-1)]
		r1 := e.delay[(off+1)&(delayLen-1)]
		l2 := e.delay[(off+2)&(delayLen-1)]
		r2 := e.delay[(off+3)&(delayLen-1)]
		off += 4

		zi1 := (zi[k*2+0][i>>3] >> uint(7-(i&7))) & 1
		zi2 := (zi[k*2+1][i>>3] >> uint(7-(i&7))) & 1
		build77Block(&c[k], l1, r1, l2, r2, zi1, zi2)
	}

	x := 0
	for j := 0; j < 10; j++ {
		l := 16
		if j == 9 {
			l = 10
		}
		bits.WriteUint(a[:], 12+x, (uint64(ileave[c[0][j]])<<1)|uint64(ileave[c[1][j]]), l)
		bits.WriteUint(a[:], 166+x, (uint64(ileave[c[2][j]])<<1)|uint64(ileave[c[3][j]]), l)
		bits.WriteUint(b[:], 12+x, (uint64(ileave[c[4][j]])<<1)|uint64(ileave[c[5][j]]), l)
		bits.WriteUint(b[:], 166+x, (uint64(ileave[c[6][j]])<<1)|uint64(ileave[c[7][j]]), l)
		x += l
	}

	mkPRBS(a[:], false)
	mkPRBS(b[:], true)

	for k := 0; k < 40; k++ {
		dst[k*2+0] = byte(ileave[a[k]]>>7) | byte(ileave[b[k]]>>8)
		dst[k*2+1] = byte(ileave[a[k]]<<1) | byte(ileave[b[k]])
	}
}

// build77Block assembles one 77-bit audio sub-block: four 11-bit
// signed MSBs, a 19-bit BCH(63,44) parity over them, the two ZI bits,
// and four 3-bit signed LSBs. Stored as 10 bytes, the final byte
// holding only its top 5 bits.
func build77Block(dst *[10]byte, l1, r1, l2, r2 int16, zi1, zi2 byte) {
	var buf [10]byte

	bits.WriteInt(buf[:], 0, int64(l1>>3), 11)
	bits.WriteInt(buf[:], 11, int64(r1>>3), 11)
	bits.WriteInt(buf[:], 22, int64(l2>>3), 11)
	bits.WriteInt(buf[:], 33, int64(r2>>3), 11)

	bchEncode63_44(&buf)

	bits.WriteUint(buf[:], 63, uint64(zi1), 1)
	bits.WriteUint(buf[:], 64, uint64(zi2), 1)

	bits.WriteInt(buf[:], 65, int64(l1), 3)
	bits.WriteInt(buf[:], 68, int64(r1), 3)
	bits.WriteInt(buf[:], 71, int64(l2), 3)
	bits.WriteInt(buf[:], 74, int64(r2), 3)

	buf[9] >>= 3
	*dst = buf
}

// bchEncode63_44 computes the 19-bit BCH(63,44) parity of the 44
// payload bits already present at offset 0 of buf, writing the result
// at offset 44. The generator polynomial is 0x8751, applied MSB-first.
func bchEncode63_44(buf *[10]byte) {
	var code uint32
	for i := 0; i < 44; i++ {
		bit := (buf[i>>3] >> uint(7-(i&7))) & 1
		bit ^= byte(code >> 18)
		code <<= 1
		if bit&1 != 0 {
			code ^= bchGenerator
		}
	}
	bits.WriteUint(buf[:], 44, uint64(code), 19)
}

// ziFrame assembles one 64-bit ZI frame: a 14-bit codeword (6-bit
// scale pair plus its BCH(14,6) check byte) repeated three times,
// followed by the 22-bit programme-identification field.
func ziFrame(dst *[8]byte, shiftL, shiftR int, pi uint32) {
	c := uint16(shiftL&7)<<3 | uint16(shiftR&7)
	c = c<<8 | uint16(ziBCH[c])

	bits.WriteInt(dst[:], 0, int64(c), 14)
	bits.WriteInt(dst[:], 14, int64(c), 14)
	bits.WriteInt(dst[:], 28, int64(c), 14)
	bits.WriteInt(dst[:], 42, int64(pi), 22)
}

// mkPRBS XORs a spectrum-shaping pseudo-random bit sequence into bits
// 12-319 of a 40-byte main frame (the interleaved 77-block payload),
// leaving the sync word and service bit (bits 0-11) in place. variant
// selects one of
// two decorrelated PRBS variants (the "a" and "b" frames use different
// ones so their shaping sequences don't cancel).
func mkPRBS(buf []byte, variant bool) {
	r := uint16(0xBD)
	for x := 12; x < 320; x++ {
		var bit byte
		if variant {
			bit = byte(r^(r>>3)) & 1
		} else {
			bit = byte(r) & 1
		}
		buf[x>>3] ^= bit << uint(7-(x&7))

		fb := byte(r^(r>>4)) & 1
		r = (r >> 1) | (uint16(fb) << 8)
	}
}
