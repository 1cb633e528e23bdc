package dsr

import (
	"testing"

	"github.com/sanslogic/dsrtx/channel"
)

func TestEncodeProducesFixedSizeBlock(t *testing.T) {
	e := NewEncoder(channel.Table{})
	var audio AudioBlock
	block := e.Encode(audio)
	if len(block) != BlockBytes {
		t.Fatalf("block length = %d, want %d", len(block), BlockBytes)
	}
}

func TestEncodeAdvancesFrameCounterBy64(t *testing.T) {
	e := NewEncoder(channel.Table{})
	var audio AudioBlock
	before := e.Frame()
	e.Encode(audio)
	if got := e.Frame(); got != before+framesPerBlock {
		t.Fatalf("frame counter = %d, want %d", got, before+framesPerBlock)
	}
}

// TestSyncWordEverySubframe checks that every one of the 64 frame
// pairs in a block carries the sync word 0x712 in a's first 11 bits
// and its complement (masked to 11 bits) in b's. Bits 0-11 of each
// 40-byte half are written before PRBS scrambling (which only touches
// bits 12 and up), so they can be recovered directly from the final
// interleaved output.
func TestSyncWordEverySubframe(t *testing.T) {
	e := NewEncoder(channel.Table{})
	var audio AudioBlock
	block := e.Encode(audio)

	for i := 0; i < framesPerBlock; i++ {
		pair := block[i*frameBytes : (i+1)*frameBytes]
		a0, b0 := deinterleaveByte(pair[0], pair[1])
		a1, b1 := deinterleaveByte(pair[2], pair[3])

		sync := uint16(a0)<<3 | uint16(a1)>>5
		if sync != syncWord {
			t.Fatalf("pair %d: a sync = %#03x, want %#03x", i, sync, syncWord)
		}

		bsync := uint16(b0)<<3 | uint16(b1)>>5
		want := uint16((^uint64(syncWord)) & 0x7FF)
		if bsync != want {
			t.Fatalf("pair %d: b sync = %#03x, want %#03x", i, bsync, want)
		}
	}
}

// deinterleaveByte reverses the final interleave step of
// assembleFramePair for one byte index k, given the two output bytes
// dst[k*2] and dst[k*2+1], returning the original a[k] and b[k].
func deinterleaveByte(hi, lo byte) (a, b byte) {
	a = oddNibble(lo) | oddNibble(hi)<<4
	b = evenNibble(lo) | evenNibble(hi)<<4
	return a, b
}

// oddNibble packs bits 1,3,5,7 of x (low to high) into a 4-bit value.
func oddNibble(x byte) byte {
	var n byte
	for i := 0; i < 4; i++ {
		n |= ((x >> uint(2*i+1)) & 1) << uint(i)
	}
	return n
}

// evenNibble packs bits 0,2,4,6 of x (low to high) into a 4-bit value.
func evenNibble(x byte) byte {
	var n byte
	for i := 0; i < 4; i++ {
		n |= ((x >> uint(2*i)) & 1) << uint(i)
	}
	return n
}

func TestScaleFloorsSaturatedInput(t *testing.T) {
	e := NewEncoder(channel.Table{})
	var audio AudioBlock
	for i := range audio {
		audio[i] = 0x7FFF
	}
	scale := e.scaleBlock(audio)
	for c, idx := range scale {
		if ranges[idx].shift != 0 {
			t.Fatalf("channel %d: shift = %d, want 0 for saturated input", c, ranges[idx].shift)
		}
	}
}

func TestScaleCeilingsQuietInput(t *testing.T) {
	e := NewEncoder(channel.Table{})
	var audio AudioBlock
	for i := range audio {
		audio[i] = 1
	}
	scale := e.scaleBlock(audio)
	for c, idx := range scale {
		if ranges[idx].shift != 7 {
			t.Fatalf("channel %d: shift = %d, want 7 for near-silent input", c, ranges[idx].shift)
		}
	}
}

func TestEncodeIsDeterministic(t *testing.T) {
	mk := func() AudioBlock {
		var a AudioBlock
		for i := range a {
			a[i] = int16(i * 7 % 2048)
		}
		return a
	}

	e1 := NewEncoder(channel.Table{})
	e2 := NewEncoder(channel.Table{})

	b1 := e1.Encode(mk())
	b2 := e2.Encode(mk())

	if len(b1) != len(b2) {
		t.Fatalf("length mismatch")
	}
	for i := range b1 {
		if b1[i] != b2[i] {
			t.Fatalf("byte %d differs: %#02x vs %#02x", i, b1[i], b2[i])
		}
	}
}

func TestUpdateSAReflectsChannelChange(t *testing.T) {
	e := NewEncoder(channel.Table{})
	before := e.sa

	e.Channels[0] = channel.Channel{Type: 9, Music: true, Mode: channel.Primary}
	e.UpdateSA()

	if e.sa == before {
		t.Fatalf("UpdateSA did not change the matrix after a channel edit")
	}
}

func TestBuild77BlockAllZero(t *testing.T) {
	var c [10]byte
	build77Block(&c, 0, 0, 0, 0, 0, 0)
	for i, v := range c {
		if v != 0 {
			t.Fatalf("byte %d = %#02x, want 0", i, v)
		}
	}
}

func TestBCHEncodeZeroPayloadIsZero(t *testing.T) {
	var buf [10]byte
	bchEncode63_44(&buf)
	for i, v := range buf {
		if v != 0 {
			t.Fatalf("byte %d = %#02x, want 0", i, v)
		}
	}
}

func TestZiFrameKnownValue(t *testing.T) {
	var zi [8]byte
	ziFrame(&zi, 0, 0, 0)
	for i, v := range zi {
		if v != 0 {
			t.Fatalf("byte %d = %#02x, want 0 (c=0 and ziBCH[0]=0)", i, v)
		}
	}
}
