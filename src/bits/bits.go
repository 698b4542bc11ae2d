package bits

import "fmt"

// View is a zero-copy, bit-level accessor over a byte buffer.
// Bits are indexed 0..8N-1, most-significant bit first within each byte.
type View struct {
	data []byte
}

func NewView(data []byte) View {
	return View{data: data}
}

// Len returns the number of addressable bits.
func (v View) Len() int {
	return len(v.data) * 8
}

// Bit returns the bit at index i (0 or 1).
func (v View) Bit(i int) (uint8, error) {
	if i < 0 || i >= v.Len() {
		return 0, fmt.Errorf("bit index %d out of range [0, %d)", i, v.Len())
	}
	return v.MustBit(i), nil
}

// MustBit is Bit without the range check. The caller is expected to have
// validated i against Len; out-of-range indices panic.
func (v View) MustBit(i int) uint8 {
	return (v.data[i>>3] >> (7 - uint(i&7))) & 1
}

// Ones counts the set bits in the first n bits of the view.
func (v View) Ones(n int) int {
	count := 0
	for i := 0; i < n; i++ {
		if v.MustBit(i) == 1 {
			count++
		}
	}
	return count
}
