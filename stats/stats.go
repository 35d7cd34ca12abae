// Package stats keeps running statistics over many solves.
package stats

import "math"

const (
	Epsilon = 1e-6
)

func FuzzyEqual(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

// Statistic is a running mean and variance (Welford's algorithm) that also
// remembers the extremes.
type Statistic struct {
	n    int
	last float64
	min  float64
	max  float64

	mean float64
	m2   float64
}

func (s *Statistic) Push(val float64) {
	s.last = val
	s.n++
	if s.n == 1 {
		s.mean = val
		s.m2 = 0
		s.min, s.max = val, val
		return
	}
	s.min = math.Min(s.min, val)
	s.max = math.Max(s.max, val)
	delta := val - s.mean
	s.mean += delta / float64(s.n)
	s.m2 += delta * (val - s.mean)
}

func (s *Statistic) Mean() float64 {
	if s.n > 0 {
		return s.mean
	}
	return 0.0
}

func (s *Statistic) Variance() float64 {
	if s.n <= 1 {
		return 0.0
	}
	return s.m2 / float64(s.n-1)
}

func (s *Statistic) Stdev() float64 {
	return math.Sqrt(s.Variance())
}

func (s *Statistic) StandardError() float64 {
	if s.n == 0 {
		return 0.0
	}
	return math.Sqrt(s.Variance() / float64(s.n))
}

func (s *Statistic) Min() float64  { return s.min }
func (s *Statistic) Max() float64  { return s.max }
func (s *Statistic) Last() float64 { return s.last }

func (s *Statistic) Iterations() int {
	return s.n
}

// Proportion counts successes out of trials, e.g. deals won out of deals
// played.
type Proportion struct {
	Successes int
	Trials    int
}

func (p *Proportion) Push(success bool) {
	p.Trials++
	if success {
		p.Successes++
	}
}

func (p Proportion) Rate() float64 {
	if p.Trials == 0 {
		return 0
	}
	return float64(p.Successes) / float64(p.Trials)
}

// Interval returns the normal approximation confidence interval around
// Rate, clamped to [0, 1]. confidence is a percentage, e.g. 95.
func (p Proportion) Interval(confidence float64) (lo, hi float64) {
	if p.Trials == 0 {
		return 0, 0
	}
	r := p.Rate()
	half := ZVal(confidence) * math.Sqrt(r*(1-r)/float64(p.Trials))
	return math.Max(0, r-half), math.Min(1, r+half)
}
