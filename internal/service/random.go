package service

import "math/rand"

// Random is the source of randomness used to pick questions and shuffle options.
// *rand.Rand satisfies it.
type Random interface {
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
}

type globalRandom struct{}

func (globalRandom) Intn(n int) int                     { return rand.Intn(n) }
func (globalRandom) Shuffle(n int, swap func(i, j int)) { rand.Shuffle(n, swap) }

// DefaultRandom uses the process-wide math/rand source.
var DefaultRandom Random = globalRandom{}
