package charset

import "testing"

func TestRoundTripASCII(t *testing.T) {
	want := "DSR TEST"
	got := Decode(Encode(want))
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestRoundTripAccented(t *testing.T) {
	in := "Ĳsselmeer"
	runes := []rune(in)
	want := string(runes[:NameLen])

	got := Decode(Encode(in))
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestUnmappedCodePointBecomesSpace(t *testing.T) {
	enc := Encode("日本語A")
	want := [8]byte{' ', ' ', ' ', 'A', ' ', ' ', ' ', ' '}
	if enc != want {
		t.Fatalf("got %v, want %v", enc, want)
	}
}

func TestReservedByteDecodesAsQuestionMark(t *testing.T) {
	var name [8]byte
	for i := range name {
		name[i] = 0xE0 // reserved, no glyph assigned.
	}
	got := Decode(name)
	want := "????????"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestIjLigatureByte(t *testing.T) {
	var name [8]byte
	name[0] = 0x8F
	for i := 1; i < 8; i++ {
		name[i] = ' '
	}
	got := []rune(Decode(name))
	if got[0] != 'Ĳ' {
		t.Fatalf("0x8F did not decode to Ĳ, got %q", string(got[0]))
	}
}
