/*
NAME
  channel.go

DESCRIPTION
  channel.go defines the channel descriptor shared by the sau and dsr
  packages: the per-slot programme type, mode and station name that
  both the service-administration matrix and the frame assembler read.

LICENSE
  This program is free software: you can redistribute it and/or modify
  it under the terms of the GNU General Public License as published by
  the Free Software Foundation, either version 3 of the License, or
  (at your option) any later version.
*/

// Package channel defines the DSR channel descriptor: the small,
// shared type both the sau (service-administration) and dsr (frame
// assembler) packages build on, kept in its own package so neither of
// those needs to import the other.
package channel

// Mode is the operating mode of a channel slot.
type Mode uint8

// The three possible channel modes. A stereo pair is formed by
// consecutive even/odd indices 2k, 2k+1 where channels[2k].Mode ==
// Primary and channels[2k+1].Mode == Secondary.
const (
	Off Mode = iota
	Primary
	Secondary
)

// Count is the number of channel slots in the encoder's channel
// table: 32 mono slots, or equivalently 16 stereo pairs.
const Count = 32

// Channel is a single channel descriptor slot.
type Channel struct {
	// Type is the 4-bit programme type (news, sport, music genres...).
	Type uint8

	// Music indicates the channel predominantly carries music content.
	Music bool

	// Mode is this slot's operating mode.
	Mode Mode

	// Name is the 8-byte DSR-charset-encoded station name. Use the
	// charset package to produce this from a UTF-8 string.
	Name [8]byte
}

// Table is the fixed-size set of channel descriptors owned by the
// encoder state. It is mutated only before encoding begins; spec
// explicitly excludes dynamic reconfiguration of the table mid-stream.
type Table [Count]Channel

// ParamByte packs a channel's type, music flag and mode into the
// 7-bit field the service-administration PA block protects with a
// parity bit: (type<<4)|(music<<3)|(mode<<1).
func (c Channel) ParamByte() byte {
	var music byte
	if c.Music {
		music = 1
	}
	return (c.Type << 4) | (music << 3) | (byte(c.Mode) << 1)
}
