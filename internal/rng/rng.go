// Package rng implements the seeded Mulberry32 stream every generator draws from.
package rng

import (
	"errors"
	"math"
)

var ErrEmpty = errors.New("rng: pick from empty slice")

// Rand is a Mulberry32 generator. Output depends only on the seed and the
// number of calls made. Not safe for concurrent use.
type Rand struct {
	s uint32
}

func New(seed uint32) *Rand { return &Rand{s: seed} }

// Float64 returns the next value in [0,1).
func (r *Rand) Float64() float64 {
	r.s += 0x6D2B79F5
	t := (r.s ^ r.s>>15) * (1 | r.s)
	t = (t + (t^t>>7)*(61|t)) ^ t
	return float64(t^t>>14) / 4294967296
}

func (r *Rand) Uniform(min, max float64) float64 {
	return min + r.Float64()*(max-min)
}

// Int returns an integer in [min, max], both inclusive.
func (r *Rand) Int(min, max int) int {
	return int(math.Floor(r.Uniform(float64(min), float64(max+1))))
}

// Gaussian draws a standard normal sample (Box-Muller).
func (r *Rand) Gaussian() float64 {
	u, v := 0.0, 0.0
	for u == 0 {
		u = r.Float64()
	}
	for v == 0 {
		v = r.Float64()
	}
	return math.Sqrt(-2*math.Log(u)) * math.Cos(2*math.Pi*v)
}

func Pick[T any](r *Rand, items []T) (T, error) {
	var zero T
	if len(items) == 0 {
		return zero, ErrEmpty
	}
	return items[int(r.Float64()*float64(len(items)))], nil
}

// PickN returns n distinct elements: a Fisher-Yates shuffle of a copy, sliced.
// n is clamped to len(items).
func PickN[T any](r *Rand, items []T, n int) ([]T, error) {
	if len(items) == 0 {
		return nil, ErrEmpty
	}
	out := make([]T, len(items))
	copy(out, items)
	for i := len(out) - 1; i > 0; i-- {
		j := int(r.Float64() * float64(i+1))
		out[i], out[j] = out[j], out[i]
	}
	if n < 0 {
		n = 0
	}
	if n > len(out) {
		n = len(out)
	}
	return out[:n], nil
}

// MustPick is Pick over static tables; an empty table is a programming error.
func MustPick[T any](r *Rand, items []T) T {
	v, err := Pick(r, items)
	if err != nil {
		panic(err)
	}
	return v
}

func MustPickN[T any](r *Rand, items []T, n int) []T {
	v, err := PickN(r, items, n)
	if err != nil {
		panic(err)
	}
	return v
}
