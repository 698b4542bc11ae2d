package entropy_test

import (
	"bytes"
	"errors"
	"sync"
	"testing"

	"github.com/lost-woods/entropy/src/entropy"
)

// stuckSource emits the same byte forever, like a wedged hardware RNG.
type stuckSource struct{ b byte }

func (s *stuckSource) Fill(p []byte) error {
	for i := range p {
		p[i] = s.b
	}
	return nil
}

func (s *stuckSource) Name() string { return "stuck" }

// failingSource always errors, like an unplugged device.
type failingSource struct{}

func (failingSource) Fill(p []byte) error { return errors.New("device gone") }
func (failingSource) Name() string        { return "failing" }

func TestMock_Deterministic(t *testing.T) {
	a := entropy.NewMock(42)
	b := entropy.NewMock(42)

	bufA := make([]byte, 64)
	bufB := make([]byte, 64)
	if err := a.Fill(bufA); err != nil {
		t.Fatal(err)
	}
	if err := b.Fill(bufB); err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(bufA, bufB) {
		t.Fatal("same seed must produce the same stream")
	}
}

func TestMock_DifferentSeedsDiverge(t *testing.T) {
	a := entropy.NewMock(42)
	b := entropy.NewMock(43)

	bufA := make([]byte, 64)
	bufB := make([]byte, 64)
	a.Fill(bufA)
	b.Fill(bufB)

	if bytes.Equal(bufA, bufB) {
		t.Fatal("different seeds should diverge")
	}
}

func TestMock_Reset(t *testing.T) {
	m := entropy.NewMock(7)

	first := make([]byte, 32)
	second := make([]byte, 32)
	m.Fill(first)
	m.Reset()
	m.Fill(second)

	if !bytes.Equal(first, second) {
		t.Fatal("reset must replay the stream from the seed")
	}
}

func TestSystem_FillsAndVaries(t *testing.T) {
	src := entropy.NewSystem()

	a := make([]byte, 32)
	b := make([]byte, 32)
	if err := src.Fill(a); err != nil {
		t.Fatal(err)
	}
	if err := src.Fill(b); err != nil {
		t.Fatal(err)
	}

	if bytes.Equal(a, b) {
		t.Fatal("two 32-byte system reads should differ")
	}
}

func TestLocked_ReturnsSameWrapperForLocked(t *testing.T) {
	inner := entropy.NewLocked(entropy.NewMock(1))
	if outer := entropy.NewLocked(inner); outer != inner {
		t.Fatal("double wrapping should be a no-op")
	}
	if entropy.NewLocked(nil) != nil {
		t.Fatal("nil source should stay nil")
	}
}

func TestLocked_ConcurrentFills(t *testing.T) {
	src := entropy.NewLocked(entropy.NewMock(99))

	const goroutines = 50
	const perG = 200

	var wg sync.WaitGroup
	errs := make(chan error, goroutines)
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			buf := make([]byte, 16)
			for i := 0; i < perG; i++ {
				if err := src.Fill(buf); err != nil {
					errs <- err
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Fatalf("concurrent fill failed: %v", err)
	}
}

func TestCheck_HealthySource(t *testing.T) {
	h := entropy.NewHealth()
	if err := entropy.Check(entropy.NewMock(42), h); err != nil {
		t.Fatalf("mock source should pass the health check: %v", err)
	}
}

func TestCheck_StuckSource(t *testing.T) {
	if err := entropy.Check(&stuckSource{b: 0x55}, nil); err == nil {
		t.Fatal("constant output must fail the health check")
	}
}

func TestCheck_FailingSource(t *testing.T) {
	if err := entropy.Check(failingSource{}, nil); err == nil {
		t.Fatal("read failures must propagate")
	}
}

func TestHealth_Snapshot(t *testing.T) {
	h := entropy.NewHealth()

	if ok, _, _ := h.Snapshot(); ok {
		t.Fatal("health should start not-ok")
	}

	h.Set(true, "")
	ok, msg, at := h.Snapshot()
	if !ok || msg != "" || at.IsZero() {
		t.Fatalf("unexpected snapshot: ok=%v msg=%q at=%v", ok, msg, at)
	}

	h.Set(false, "boom")
	if ok, msg, _ := h.Snapshot(); ok || msg != "boom" {
		t.Fatalf("unexpected snapshot after failure: ok=%v msg=%q", ok, msg)
	}
}

func TestFromReader_PropagatesShortReads(t *testing.T) {
	src := entropy.FromReader(bytes.NewReader([]byte{1, 2, 3}), "tiny")

	buf := make([]byte, 8)
	if err := src.Fill(buf); err == nil {
		t.Fatal("short reads must surface as errors, never silent zero-fill")
	}
}
