package sau

// parity is the 256-entry lookup table that prepends an even-parity
// bit (bit 0) over bits 1..7 of its index: parity[x]&1 ==
// popcount(x>>1)&1, and the upper 7 bits of parity[x] equal the upper
// 7 bits of x. Taken from the original abbreviated BCH encoder table.
var parity = [256]byte{
	0x00, 0x00, 0x03, 0x03, 0x05, 0x05, 0x06, 0x06, 0x09, 0x09, 0x0A, 0x0A, 0x0C, 0x0C, 0x0F, 0x0F,
	0x11, 0x11, 0x12, 0x12, 0x14, 0x14, 0x17, 0x17, 0x18, 0x18, 0x1B, 0x1B, 0x1D, 0x1D, 0x1E, 0x1E,
	0x21, 0x21, 0x22, 0x22, 0x24, 0x24, 0x27, 0x27, 0x28, 0x28, 0x2B, 0x2B, 0x2D, 0x2D, 0x2E, 0x2E,
	0x30, 0x30, 0x33, 0x33, 0x35, 0x35, 0x36, 0x36, 0x39, 0x39, 0x3A, 0x3A, 0x3C, 0x3C, 0x3F, 0x3F,
	0x41, 0x41, 0x42, 0x42, 0x44, 0x44, 0x47, 0x47, 0x48, 0x48, 0x4B, 0x4B, 0x4D, 0x4D, 0x4E, 0x4E,
	0x50, 0x50, 0x53, 0x53, 0x55, 0x55, 0x56, 0x56, 0x59, 0x59, 0x5A, 0x5A, 0x5C, 0x5C, 0x5F, 0x5F,
	0x60, 0x60, 0x63, 0x63, 0x65, 0x65, 0x66, 0x66, 0x69, 0x69, 0x6A, 0x6A, 0x6C, 0x6C, 0x6F, 0x6F,
	0x71, 0x71, 0x72, 0x72, 0x74, 0x74, 0x77, 0x77, 0x78, 0x78, 0x7B, 0x7B, 0x7D, 0x7D, 0x7E, 0x7E,
	0x81, 0x81, 0x82, 0x82, 0x84, 0x84, 0x87, 0x87, 0x88, 0x88, 0x8B, 0x8B, 0x8D, 0x8D, 0x8E, 0x8E,
	0x90, 0x90, 0x93, 0x93, 0x95, 0x95, 0x96, 0x96, 0x99, 0x99, 0x9A, 0x9A, 0x9C, 0x9C, 0x9F, 0x9F,
	0xA0, 0xA0, 0xA3, 0xA3, 0xA5, 0xA5, 0xA6, 0xA6, 0xA9, 0xA9, 0xAA, 0xAA, 0xAC, 0xAC, 0xAF, 0xAF,
	0xB1, 0xB1, 0xB2, 0xB2, 0xB4, 0xB4, 0xB7, 0xB7, 0xB8, 0xB8, 0xBB, 0xBB, 0xBD, 0xBD, 0xBE, 0xBE,
	0xC0, 0xC0, 0xC3, 0xC3, 0xC5, 0xC5, 0xC6, 0xC6, 0xC9, 0xC9, 0xCA, 0xCA, 0xCC, 0xCC, 0xCF, 0xCF,
	0xD1, 0xD1, 0xD2, 0xD2, 0xD4, 0xD4, 0xD7, 0xD7, 0xD8, 0xD8, 0xDB, 0xDB, 0xDD, 0xDD, 0xDE, 0xDE,
	0xE1, 0xE1, 0xE2, 0xE2, 0xE4, 0xE4, 0xE7, 0xE7, 0xE8, 0xE8, 0xEB, 0xEB, 0xED, 0xED, 0xEE, 0xEE,
	0xF0, 0xF0, 0xF3, 0xF3, 0xF5, 0xF5, 0xF6, 0xF6, 0xF9, 0xF9, 0xFA, 0xFA, 0xFC, 0xFC, 0xFF, 0xFF,
}
