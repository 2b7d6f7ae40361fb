package systems

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// Source is the single random stream shared by every stochastic rule of a
// simulation. All draws go through it so a run is reproducible from its seed.
type Source struct {
	*rand.Rand
	src rand.Source
}

// NewSource returns a PCG-backed stream seeded with seed.
func NewSource(seed uint64) *Source {
	src := rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
	return &Source{Rand: rand.New(src), src: src}
}

// LogNormal draws a log-normal variate with the given log-space parameters.
// The sampler reads from the shared stream.
func (s *Source) LogNormal(mu, sigma float64) float64 {
	return distuv.LogNormal{Mu: mu, Sigma: sigma, Src: s.src}.Rand()
}
