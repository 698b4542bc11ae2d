// Package cipher is a toy XOR stream cipher driven by an entropy source.
// It exists to exercise sources, not to protect data; use a real AEAD for
// anything that matters.
package cipher

import (
	mathbits "math/bits"

	"github.com/pkg/errors"

	"github.com/lost-woods/entropy/src/entropy"
)

type Stream struct {
	src       entropy.Source
	processed int
}

func New(src entropy.Source) *Stream {
	return &Stream{src: src}
}

// Process XORs data against a fresh keystream of the same length. XOR is
// symmetric, so decryption is the same operation against the same
// keystream position (replay the source to decrypt).
func (s *Stream) Process(data []byte) ([]byte, error) {
	keystream := make([]byte, len(data))
	if err := s.src.Fill(keystream); err != nil {
		return nil, errors.Wrap(err, "generating keystream")
	}

	out := make([]byte, len(data))
	for i := range data {
		out[i] = data[i] ^ keystream[i]
	}

	s.processed += len(data)
	return out, nil
}

// BytesProcessed returns the total number of bytes processed so far.
func (s *Stream) BytesProcessed() int { return s.processed }

// Avalanche encrypts data, flips one input bit, encrypts again, and
// returns the percentage of output bits that changed. Because each call
// draws a fresh keystream the figure reflects keystream divergence rather
// than cipher diffusion.
func (s *Stream) Avalanche(data []byte, bitToFlip int) (float64, error) {
	if len(data) == 0 {
		return 0, nil
	}

	first, err := s.Process(data)
	if err != nil {
		return 0, err
	}

	modified := make([]byte, len(data))
	copy(modified, data)
	if byteIdx := bitToFlip / 8; byteIdx < len(modified) {
		modified[byteIdx] ^= 1 << uint(bitToFlip%8)
	}

	second, err := s.Process(modified)
	if err != nil {
		return 0, err
	}

	changed := 0
	for i := range first {
		changed += mathbits.OnesCount8(first[i] ^ second[i])
	}
	return float64(changed) / float64(len(first)*8) * 100.0, nil
}
