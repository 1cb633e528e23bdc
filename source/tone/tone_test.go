package tone

import (
	"math"
	"testing"

	"github.com/sanslogic/dsrtx/source"
)

func TestReadNeverEOF(t *testing.T) {
	s := New(1000, 1.0)
	l := make([]int16, source.SampleRate*2)
	r := make([]int16, source.SampleRate*2)

	n, err := s.Read(l, r)
	if err != nil {
		t.Fatal(err)
	}
	if n != len(l) {
		t.Fatalf("n = %d, want %d", n, len(l))
	}
	if s.EOF() {
		t.Fatalf("tone source must never report EOF")
	}
}

func TestReadDuplicatesMonoToStereo(t *testing.T) {
	s := New(1000, 0.5)
	l := make([]int16, 64)
	r := make([]int16, 64)

	if _, err := s.Read(l, r); err != nil {
		t.Fatal(err)
	}
	for i := range l {
		if l[i] != r[i] {
			t.Fatalf("sample %d: l=%d r=%d, want equal", i, l[i], r[i])
		}
	}
}

func TestReadAmplitudeRespectsLevel(t *testing.T) {
	s := New(source.SampleRate/4.0, 0.25)
	l := make([]int16, 4)
	r := make([]int16, 4)

	if _, err := s.Read(l, r); err != nil {
		t.Fatal(err)
	}

	// First sample is sin(0) == 0; the quarter-period sample after it
	// should hit the peak scaled by level.
	if l[0] != 0 {
		t.Fatalf("first sample = %d, want 0", l[0])
	}
	level := 0.25
	want := int16(level * math.MaxInt16)
	if l[1] != want {
		t.Fatalf("peak sample = %d, want %d", l[1], want)
	}
}

func TestPhaseAdvancesContinuouslyAcrossReads(t *testing.T) {
	a := New(2000, 1.0)
	b := New(2000, 1.0)

	l1 := make([]int16, 10)
	r1 := make([]int16, 10)
	l2 := make([]int16, 20)
	r2 := make([]int16, 20)

	a.Read(l1, r1)
	a.Read(l1, r1)

	b.Read(l2, r2)

	for i := 0; i < 10; i++ {
		if l1[i] != l2[10+i] {
			t.Fatalf("sample %d after two short reads = %d, want %d (continuous phase)", i, l1[i], l2[10+i])
		}
	}
}
