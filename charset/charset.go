/*
NAME
  charset.go

DESCRIPTION
  charset.go provides the DSR 256-glyph station-name character set and
  the UTF-8 <-> DSR byte conversions used to encode and decode the
  8-byte "name" field of a channel descriptor.

LICENSE
  This program is free software: you can redistribute it and/or modify
  it under the terms of the GNU General Public License as published by
  the Free Software Foundation, either version 3 of the License, or
  (at your option) any later version.
*/

// Package charset implements the DSR station-name character set: a
// 256-entry table mapping bytes to Unicode code points, covering
// Latin-1-like Western text plus a handful of Eastern European
// letters, currency symbols and arrow glyphs.
//
// Code-point lookup for encoding uses a reverse map built once, at
// package initialisation, from the 256-entry table.
package charset

import "unicode/utf8"

// NameLen is the fixed length, in bytes, of a DSR station name field.
const NameLen = 8

// unmapped marks a table slot with no assigned glyph.
const unmapped = rune(0)

// table is the DSR byte -> code point mapping. Slots with no glyph
// are left at the zero rune.
var table = [256]rune{
	0x00: 'Ã', 0x01: 'Å', 0x02: 'Æ', 0x03: 'Œ', 0x04: 'ŷ', 0x05: 'Ý', 0x06: 'Õ', 0x07: 'Ø',
	0x08: 'Þ', 0x09: 'Ŋ', 0x0A: 'Ŕ', 0x0B: 'Ć', 0x0C: 'Ś', 0x0D: 'Ź', 0x0E: 'Ŧ', 0x0F: 'ð',

	0x10: 'ã', 0x11: 'å', 0x12: 'æ', 0x13: 'œ', 0x14: 'ŵ', 0x15: 'ý', 0x16: 'õ', 0x17: 'ø',
	0x18: 'þ', 0x19: 'ŋ', 0x1A: 'ŕ', 0x1B: 'ć', 0x1C: 'ś', 0x1D: 'ź', 0x1E: 'ŧ',

	0x20: ' ', 0x21: '!', 0x22: '"', 0x23: '#', 0x24: '¤', 0x25: '%', 0x26: '&', 0x27: '\'',
	0x28: '(', 0x29: ')', 0x2A: '*', 0x2B: '+', 0x2C: ',', 0x2D: '-', 0x2E: '.', 0x2F: '/',

	0x30: '0', 0x31: '1', 0x32: '2', 0x33: '3', 0x34: '4', 0x35: '5', 0x36: '6', 0x37: '7',
	0x38: '8', 0x39: '9', 0x3A: ':', 0x3B: ';', 0x3C: '<', 0x3D: '=', 0x3E: '>', 0x3F: '?',

	0x40: '@', 0x41: 'A', 0x42: 'B', 0x43: 'C', 0x44: 'D', 0x45: 'E', 0x46: 'F', 0x47: 'G',
	0x48: 'H', 0x49: 'I', 0x4A: 'J', 0x4B: 'K', 0x4C: 'L', 0x4D: 'M', 0x4E: 'N', 0x4F: 'O',

	0x50: 'P', 0x51: 'Q', 0x52: 'R', 0x53: 'S', 0x54: 'T', 0x55: 'U', 0x56: 'V', 0x57: 'W',
	0x58: 'X', 0x59: 'Y', 0x5A: 'Z', 0x5B: '[', 0x5C: '\\', 0x5D: ']', 0x5E: '―', 0x5F: '_',

	0x60: '‖', 0x61: 'a', 0x62: 'b', 0x63: 'c', 0x64: 'd', 0x65: 'e', 0x66: 'f', 0x67: 'g',
	0x68: 'h', 0x69: 'i', 0x6A: 'j', 0x6B: 'k', 0x6C: 'l', 0x6D: 'm', 0x6E: 'n', 0x6F: 'o',

	0x70: 'p', 0x71: 'q', 0x72: 'r', 0x73: 's', 0x74: 't', 0x75: 'u', 0x76: 'v', 0x77: 'w',
	0x78: 'x', 0x79: 'y', 0x7A: 'z', 0x7B: '{', 0x7C: '|', 0x7D: '}', 0x7E: '¯',

	0x80: 'á', 0x81: 'à', 0x82: 'é', 0x83: 'è', 0x84: 'í', 0x85: 'ì', 0x86: 'ó', 0x87: 'ò',
	0x88: 'ú', 0x89: 'ù', 0x8A: 'Ñ', 0x8B: 'Ç', 0x8C: 'Ş', 0x8D: 'β', 0x8E: '¡', 0x8F: 'Ĳ',

	0x90: 'â', 0x91: 'ä', 0x92: 'ê', 0x93: 'ë', 0x94: 'î', 0x95: 'ï', 0x96: 'ô', 0x97: 'ö',
	0x98: 'û', 0x99: 'ü', 0x9A: 'ñ', 0x9B: 'ç', 0x9C: 'ş', 0x9D: 'ǧ', 0x9E: 'ı', 0x9F: 'ĳ',

	0xA0: 'ª', 0xA1: 'α', 0xA2: '©', 0xA3: '‰', 0xA4: 'Ǧ', 0xA5: 'ě', 0xA6: 'ň', 0xA7: 'ő',
	0xA8: 'π', 0xA9: '₠', 0xAA: '£', 0xAB: '$', 0xAC: '←', 0xAD: '↑', 0xAE: '→', 0xAF: '↓',

	0xB0: 'º', 0xB1: '¹', 0xB2: '²', 0xB3: '³', 0xB4: '±', 0xB5: 'İ', 0xB6: 'ń', 0xB7: 'ű',
	0xB8: 'µ', 0xB9: '¿', 0xBA: '÷', 0xBB: '°', 0xBC: '¼', 0xBD: '½', 0xBE: '¾', 0xBF: '§',

	0xC0: 'Á', 0xC1: 'À', 0xC2: 'É', 0xC3: 'È', 0xC4: 'Í', 0xC5: 'Ì', 0xC6: 'Ó', 0xC7: 'Ò',
	0xC8: 'Ú', 0xC9: 'Ù', 0xCA: 'Ř', 0xCB: 'Č', 0xCC: 'Š', 0xCD: 'Ž', 0xCE: 'Ð', 0xCF: 'Ŀ',

	0xD0: 'Â', 0xD1: 'Ä', 0xD2: 'Ê', 0xD3: 'Ë', 0xD4: 'Î', 0xD5: 'Ï', 0xD6: 'Ô', 0xD7: 'Ö',
	0xD8: 'Û', 0xD9: 'Ü', 0xDA: 'ř', 0xDB: 'č', 0xDC: 'š', 0xDD: 'ž', 0xDE: 'đ', 0xDF: 'ŀ',

	// 0xE0-0xFF are reserved and carry no glyph.
}

// reverse maps a code point back to its DSR byte, built once from
// table.
var reverse = buildReverse()

func buildReverse() map[rune]byte {
	m := make(map[rune]byte, 256)
	for i, r := range table {
		if r == unmapped {
			continue
		}
		// The table has no duplicate code points, so first-wins is
		// equivalent to last-wins here.
		if _, ok := m[r]; !ok {
			m[r] = byte(i)
		}
	}
	return m
}

// Encode maps a UTF-8 string to an 8-byte DSR station name,
// code-point by code point. Unmapped code points become 0x20 (space);
// a name shorter than eight characters is padded with spaces, and
// characters past the eighth are dropped.
func Encode(name string) [8]byte {
	var out [8]byte
	for i := range out {
		out[i] = ' '
	}

	i := 0
	for _, r := range name {
		if i >= NameLen {
			break
		}
		if b, ok := reverse[r]; ok {
			out[i] = b
		} else {
			out[i] = ' '
		}
		i++
	}
	return out
}

// Decode maps an 8-byte DSR station name to a UTF-8 string. Bytes with
// no assigned glyph decode as '?'.
func Decode(name [8]byte) string {
	buf := make([]byte, 0, NameLen*utf8.UTFMax)
	for _, b := range name {
		r := table[b]
		if r == unmapped {
			r = '?'
		}
		buf = utf8.AppendRune(buf, r)
	}
	return string(buf)
}
