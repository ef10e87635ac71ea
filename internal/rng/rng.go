// Package rng threads a single seeded generator through setup and every
// handler so that runs are reproducible (spec.md §5, §9).
package rng

import "math/rand"

// Source wraps math/rand.Rand. Handlers must not instantiate fresh
// generators per call — doing so destroys run-to-run reproducibility.
type Source struct {
	r *rand.Rand
}

// New builds a Source from a seed. The seed is passed to rand.NewSource
// unchanged, so equal seeds give identical streams.
func New(seed int64) *Source {
	return &Source{r: rand.New(rand.NewSource(seed))}
}

// Float64 returns a uniform sample in [0,1).
func (s *Source) Float64() float64 { return s.r.Float64() }

// Intn returns a uniform sample in [0,n).
func (s *Source) Intn(n int) int { return s.r.Intn(n) }

// Normal draws from Normal(mean, sd). sd == 0 returns mean exactly.
func (s *Source) Normal(mean, sd float64) float64 {
	if sd == 0 {
		return mean
	}
	return s.r.NormFloat64()*sd + mean
}

// NormalNonNegative draws from Normal(mean, sd) truncated at 0: negative
// samples are clamped up to 0 rather than resampled, matching the model's
// velocity-sampling requirement (spec.md §4.5 step 2:
// "max(0, Normal(Vavg_mean, Vavg_sd))").
func (s *Source) NormalNonNegative(mean, sd float64) float64 {
	v := s.Normal(mean, sd)
	if v < 0 {
		return 0
	}
	return v
}

// AbsNormal draws from Normal(mean, sd) and returns its absolute value,
// used for headway sampling (spec.md §4.8: "h_i = |Normal(avgHdwy, sdHdwy)|").
func (s *Source) AbsNormal(mean, sd float64) float64 {
	v := s.Normal(mean, sd)
	if v < 0 {
		return -v
	}
	return v
}
