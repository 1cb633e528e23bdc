package wavsrc

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/sanslogic/dsrtx/source"
)

func writeWAV(t *testing.T, channels int, samples []int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	enc := wav.NewEncoder(f, source.SampleRate, 16, channels, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: channels, SampleRate: source.SampleRate},
		Data:           samples,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatal(err)
	}
	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadStereoWAV(t *testing.T) {
	path := writeWAV(t, 2, []int{1, -1, 2, -2, 3, -3})

	s, err := Open(path, false)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	l := make([]int16, 4)
	r := make([]int16, 4)
	n, err := s.Read(l, r)
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Fatalf("n = %d, want 3", n)
	}
	wantL := []int16{1, 2, 3}
	wantR := []int16{-1, -2, -3}
	for i := range wantL {
		if l[i] != wantL[i] || r[i] != wantR[i] {
			t.Fatalf("sample %d = (%d,%d), want (%d,%d)", i, l[i], r[i], wantL[i], wantR[i])
		}
	}
	if !s.EOF() {
		t.Fatalf("expected EOF after consuming entire file without repeat")
	}
}

func TestReadMonoWAVDuplicatesChannels(t *testing.T) {
	path := writeWAV(t, 1, []int{10, 20, 30})

	s, err := Open(path, false)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	l := make([]int16, 3)
	r := make([]int16, 3)
	if _, err := s.Read(l, r); err != nil {
		t.Fatal(err)
	}
	for i := range l {
		if l[i] != r[i] {
			t.Fatalf("sample %d: l=%d r=%d, want equal", i, l[i], r[i])
		}
	}
}

func TestReadRejectsWrongSampleRate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	enc := wav.NewEncoder(f, 44100, 16, 1, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: 44100},
		Data:           []int{1, 2, 3},
		SourceBitDepth: 16,
	}
	enc.Write(buf)
	enc.Close()
	f.Close()

	if _, err := Open(path, false); err == nil {
		t.Fatalf("expected error for mismatched sample rate")
	}
}

func TestReadRepeatsOnEOF(t *testing.T) {
	path := writeWAV(t, 1, []int{5, 6})

	s, err := Open(path, true)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	l := make([]int16, 5)
	r := make([]int16, 5)
	n, err := s.Read(l, r)
	if err != nil {
		t.Fatal(err)
	}
	if n != 5 {
		t.Fatalf("n = %d, want 5", n)
	}
	want := []int16{5, 6, 5, 6, 5}
	for i := range want {
		if l[i] != want[i] {
			t.Fatalf("sample %d = %d, want %d", i, l[i], want[i])
		}
	}
	if s.EOF() {
		t.Fatalf("repeat source must never latch EOF")
	}
}
