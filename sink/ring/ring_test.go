package ring

import (
	"testing"
	"time"
)

func TestWriteThenNextRoundTrips(t *testing.T) {
	r := New(4, 8, 1.0, false)
	if err := r.Write([]int16{1, 2, 3, 4}); err != nil {
		t.Fatal(err)
	}
	iq, underrun := r.Next(time.Second)
	if underrun {
		t.Fatalf("expected no underrun")
	}
	want := []int16{1, 2, 3, 4}
	if len(iq) != len(want) {
		t.Fatalf("len = %d, want %d", len(iq), len(want))
	}
	for i, w := range want {
		if iq[i] != w {
			t.Fatalf("sample %d = %d, want %d", i, iq[i], w)
		}
	}
}

func TestNextUnderrunsWhenEmpty(t *testing.T) {
	r := New(4, 8, 1.0, false)
	iq, underrun := r.Next(10 * time.Millisecond)
	if !underrun {
		t.Fatalf("expected underrun on empty ring")
	}
	if len(iq) != 8 {
		t.Fatalf("len = %d, want chunkSamples 8", len(iq))
	}
	for _, v := range iq {
		if v != 0 {
			t.Fatalf("underrun chunk must be zero-filled, got %v", iq)
		}
	}
}

func TestWriteBlocksWhenFull(t *testing.T) {
	r := New(1, 2, 1.0, false)
	if err := r.Write([]int16{1, 2}); err != nil {
		t.Fatal(err)
	}

	done := make(chan error, 1)
	go func() {
		done <- r.Write([]int16{3, 4})
	}()

	select {
	case <-done:
		t.Fatalf("second Write should block while ring is full")
	case <-time.After(20 * time.Millisecond):
	}

	r.Next(time.Second)

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("unblocked Write returned error: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatalf("Write did not unblock after consumer drained a slot")
	}
}

func TestWriteCopiesInputSlice(t *testing.T) {
	r := New(1, 2, 1.0, false)
	src := []int16{5, 6}
	r.Write(src)
	src[0] = 99

	iq, _ := r.Next(time.Second)
	if iq[0] != 5 {
		t.Fatalf("Write must copy its input; got %d after mutating source", iq[0])
	}
}

func TestWriteAfterCloseReturnsErrClosed(t *testing.T) {
	r := New(1, 2, 1.0, false)
	r.Close()
	if err := r.Write([]int16{1, 2}); err != ErrClosed {
		t.Fatalf("err = %v, want ErrClosed", err)
	}
}

func TestScaleAndLive(t *testing.T) {
	r := New(1, 2, 0.5, true)
	if r.Scale() != 0.5 {
		t.Fatalf("Scale() = %v, want 0.5", r.Scale())
	}
	if !r.Live() {
		t.Fatalf("Live() = false, want true")
	}
}
