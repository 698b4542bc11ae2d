package entropy

// MockSource is a deterministic source for tests and offline runs. It is a
// plain LCG (glibc constants) and must never back anything that needs real
// randomness.
type MockSource struct {
	state uint64
	seed  uint64
}

func NewMock(seed uint64) *MockSource {
	return &MockSource{state: seed, seed: seed}
}

func (m *MockSource) Fill(p []byte) error {
	for i := range p {
		m.state = m.state*1103515245 + 12345
		p[i] = byte(m.state >> 24)
	}
	return nil
}

func (m *MockSource) Name() string { return "Mock RNG (deterministic)" }

// Reset rewinds the generator to its seed so a fill sequence can be
// replayed exactly.
func (m *MockSource) Reset() { m.state = m.seed }
