package fnvindex

// Stepper walks the sequence (h1 + i*h2) mod m for i = 0, 1, 2, ...
//
// Each step adds h2 mod m and reduces once, so the sequence is exact for any
// i and m <= 2^63 without needing a wide multiply. All values are unsigned,
// so there is no negative remainder to correct.
type Stepper struct {
	pos  uint64
	step uint64
	m    uint64
}

// NewStepper returns a stepper positioned at h1 mod m. m must be non zero.
func NewStepper(h1, h2 uint32, m uint64) Stepper {
	return Stepper{
		pos:  uint64(h1) % m,
		step: uint64(h2) % m,
		m:    m,
	}
}

// Next returns the current position and advances to the following one.
func (s *Stepper) Next() uint64 {
	j := s.pos
	s.pos += s.step
	if s.pos >= s.m {
		s.pos -= s.m
	}
	return j
}

// Indices returns the k bit positions in [0, m) for s.
//
// Returns nil if k <= 0 or m == 0.
func Indices(s string, k int, m uint64) []uint64 {
	return AppendIndices(nil, s, k, m)
}

// AppendIndices appends the k bit positions in [0, m) for s to dst.
func AppendIndices(dst []uint64, s string, k int, m uint64) []uint64 {
	if k <= 0 || m == 0 {
		return dst
	}
	h1, h2 := Pair(s)
	st := NewStepper(h1, h2, m)
	for i := 0; i < k; i++ {
		dst = append(dst, st.Next())
	}
	return dst
}
