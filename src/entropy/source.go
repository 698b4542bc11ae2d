// Package entropy defines the byte-source capability consumed by the
// quality engine, along with the bundled source implementations: the OS
// RNG, a deterministic mock, and a hardware RNG on a USB serial port.
package entropy

import (
	crand "crypto/rand"
	"io"

	"github.com/pkg/errors"
)

// Source is the single capability the engine depends on: fully populate
// the given buffer with bytes, synchronously. A failed or partial fill
// must surface as an error, never as a silent zero-fill.
type Source interface {
	Fill(p []byte) error
	Name() string
}

// SystemSource reads from the operating system RNG (crypto/rand).
type SystemSource struct{}

func NewSystem() *SystemSource { return &SystemSource{} }

func (s *SystemSource) Fill(p []byte) error {
	if _, err := io.ReadFull(crand.Reader, p); err != nil {
		return errors.Wrap(err, "system RNG read failed")
	}
	return nil
}

func (s *SystemSource) Name() string { return "System RNG (crypto/rand)" }

// readerSource adapts any io.Reader (e.g. a serial port) to a Source.
type readerSource struct {
	r    io.Reader
	name string
}

// FromReader wraps an io.Reader as a Source with the given display name.
func FromReader(r io.Reader, name string) Source {
	return &readerSource{r: r, name: name}
}

func (s *readerSource) Fill(p []byte) error {
	if _, err := io.ReadFull(s.r, p); err != nil {
		return errors.Wrapf(err, "%s read failed", s.name)
	}
	return nil
}

func (s *readerSource) Name() string { return s.name }
