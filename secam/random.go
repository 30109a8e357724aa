package secam

import "math/rand/v2"

// Entropy supplies the seeds from which each scanline's random stream is
// derived. Any math/rand/v2 source satisfies it; tests inject a fixed PCG.
type Entropy = rand.Source

// globalEntropy draws from the process-wide math/rand/v2 generator.
type globalEntropy struct{}

func (globalEntropy) Uint64() uint64 { return rand.Uint64() }

// seed returns a non-negative 31-bit seed, the range of C rand().
func seed(src Entropy) int32 {
	return int32(src.Uint64() >> 33)
}

// Stream is the per-row pseudo-random sequence. It is advanced once per
// pixel with a 32-bit xorshift transform, so neighbouring pixels receive
// correlated values.
type Stream struct {
	state int32
}

// NewStream returns a stream positioned at s.
func NewStream(s int32) Stream {
	return Stream{state: s}
}

// Value returns the current state without advancing.
func (s *Stream) Value() int32 {
	return s.state
}

// Next advances the stream by one application of the mixing transform.
func (s *Stream) Next() {
	s.state = juice(s.state)
}

// juice is the xorshift step. Right shift is arithmetic and left shifts
// wrap at 32 bits.
func juice(j int32) int32 {
	j ^= j << 13
	j ^= j >> 17
	j ^= j << 5
	return j
}

// umod is the modulo with a result in [0, b).
func umod(a, b int32) int32 {
	return ((a % b) + b) % b
}
