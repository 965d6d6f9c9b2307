package rng

import (
	"math/rand/v2"

	"scenariogen/internal/domain/world"
)

// Random is the single random stream a map is generated from. Same seed,
// same calls, same results.
type Random struct {
	r *rand.Rand
}

func New(seed uint64) *Random {
	return &Random{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// IntRange returns a uniform value in [lo, hi].
func (r *Random) IntRange(lo, hi int) int {
	if hi < lo {
		lo, hi = hi, lo
	}
	return lo + r.r.IntN(hi-lo+1)
}

func (r *Random) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return r.r.IntN(n)
}

// Chance reports true with the given percent probability.
func (r *Random) Chance(percent int) bool {
	return r.IntRange(0, 99) < percent
}

func (r *Random) Float64() float64 {
	return r.r.Float64()
}

func Pick[T world.Integer](r *Random, v world.RandomValue[T]) T {
	lo, hi := v.Min, v.Max
	if hi < lo {
		lo, hi = hi, lo
	}
	return lo + T(r.r.Uint64N(uint64(hi-lo)+1))
}

// Element returns a random element, or the zero value for an empty slice.
func Element[T any](r *Random, s []T) T {
	var zero T
	if len(s) == 0 {
		return zero
	}
	return s[r.Intn(len(s))]
}

func Shuffle[T any](r *Random, s []T) {
	r.r.Shuffle(len(s), func(i, j int) { s[i], s[j] = s[j], s[i] })
}
