package rng

// Package rng implements the seeded generator every visual decision in the
// pipeline is drawn from. The generator is a fixed 32-bit mixer (the
// mulberry32 construction) rather than math/rand so that two processes given
// the same seed produce bit-identical streams; exports and test fixtures
// depend on that.

const increment = 0x6D2B79F5

// RNG is a deterministic 32-bit stream generator.
type RNG struct {
	state uint32
}

// New returns a generator seeded with the given value.
func New(seed int64) *RNG {
	return &RNG{state: uint32(seed)}
}

// Next advances the stream and returns a value in [0, 1).
func (r *RNG) Next() float64 {
	r.state += increment
	t := r.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return float64(t^(t>>14)) / 4294967296.0
}

// Range returns a value in [min, max).
func (r *RNG) Range(min, max float64) float64 {
	return min + r.Next()*(max-min)
}

// Intn returns an integer in [0, n).
func (r *RNG) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	v := int(r.Next() * float64(n))
	if v >= n {
		v = n - 1
	}
	return v
}

// Per-cell reseed constants. Changing these changes every seed's output.
const (
	cellX = 1341
	cellY = 7231
)

// CellNoise returns a value in [-1, 1) for an integer lattice cell. Each cell
// reseeds the generator independently, so lookups are order-free and stable
// per seed. The result is grainy by construction; callers that need
// smoothness blur on top.
func CellNoise(x, y int, seed int64) float64 {
	g := New(seed + int64(x)*cellX + int64(y)*cellY)
	return g.Next()*2 - 1
}
