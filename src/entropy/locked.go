package entropy

import "sync"

// Locked wraps a Source and serializes Fill calls with a mutex. This is
// critical for fairness and correctness when a single entropy source is
// shared across concurrent HTTP requests and background health checks.
type Locked struct {
	src Source
	mu  sync.Mutex
}

// NewLocked returns a Source that is safe for concurrent use.
// If src is already a *Locked, it is returned as-is.
func NewLocked(src Source) Source {
	if src == nil {
		return nil
	}
	if _, ok := src.(*Locked); ok {
		return src
	}
	return &Locked{src: src}
}

func (l *Locked) Fill(p []byte) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.Fill(p)
}

func (l *Locked) Name() string { return l.src.Name() }
