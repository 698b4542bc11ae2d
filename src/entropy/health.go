package entropy

import (
	"encoding/binary"
	"fmt"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/lost-woods/entropy/src/quality"
)

// minHealthySampleEntropy is the min-entropy floor (bits/byte) for a
// 256-byte health sample. A healthy RNG sits near 5.7; dropping under 3.0
// means some byte value occupies an eighth of the sample.
const minHealthySampleEntropy = 3.0

type Health struct {
	mu            sync.RWMutex
	ok            bool
	lastErr       string
	lastCheckedAt time.Time
	lastSample32  uint32
	repeatCount32 int
}

func NewHealth() *Health { return &Health{ok: false} }

func (h *Health) Set(ok bool, errMsg string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.ok = ok
	h.lastErr = errMsg
	h.lastCheckedAt = time.Now()
}

func (h *Health) Snapshot() (ok bool, errMsg string, t time.Time) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.ok, h.lastErr, h.lastCheckedAt
}

// Check performs a lightweight sanity check against the source. It cannot
// prove randomness, but detects disconnection, stuck output and gross bias
// using the quality engine's min-entropy estimate.
func Check(src Source, h *Health) error {
	const sampleBytes = 256
	buf := make([]byte, sampleBytes)

	if err := src.Fill(buf); err != nil {
		return errors.Wrap(err, "health sample")
	}

	if minEnt := quality.MinEntropy(buf); minEnt < minHealthySampleEntropy {
		return fmt.Errorf("source appears stuck or heavily biased (min-entropy %.2f bits/byte over %d bytes)",
			minEnt, sampleBytes)
	}

	if h != nil {
		h.mu.Lock()
		h.lastSample32 = binary.BigEndian.Uint32(buf[:4])
		h.repeatCount32 = 0
		h.mu.Unlock()
	}

	return nil
}

// PeriodicCheck samples four bytes on every tick and tracks repeated
// 32-bit words. Intended to run as a background goroutine for the
// lifetime of the process.
func PeriodicCheck(src Source, h *Health, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	var buf [4]byte
	for range ticker.C {
		if err := src.Fill(buf[:]); err != nil {
			h.Set(false, "source read failed: "+err.Error())
			continue
		}

		w := binary.BigEndian.Uint32(buf[:])

		h.mu.Lock()
		if w == h.lastSample32 {
			h.repeatCount32++
		} else {
			h.repeatCount32 = 0
		}
		h.lastSample32 = w

		// 20 identical 32-bit values in a row is astronomically unlikely
		// for a healthy RNG.
		if h.repeatCount32 >= 20 {
			h.ok = false
			h.lastErr = "source appears stuck (repeating identical 32-bit outputs)"
			h.lastCheckedAt = time.Now()
			h.mu.Unlock()
			continue
		}

		h.ok = true
		h.lastErr = ""
		h.lastCheckedAt = time.Now()
		h.mu.Unlock()
	}
}
