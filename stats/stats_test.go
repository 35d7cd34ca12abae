package stats

import (
	"testing"

	"github.com/matryer/is"
)

func TestRunningStat(t *testing.T) {
	is := is.New(t)
	type tc struct {
		nodes    []int
		mean     float64
		stdev    float64
		min, max float64
	}
	cases := []tc{
		{[]int{10, 12, 23, 23, 16, 23, 21, 16}, 18, 5.2372293656638, 10, 23},
		{[]int{14, 35, 71, 124, 10, 24, 55, 33, 87, 19}, 47.2, 36.937785531891, 10, 124},
		{[]int{1}, 1, 0, 1, 1},
		{[]int{}, 0, 0, 0, 0},
		{[]int{1, 1}, 1, 0, 1, 1},
	}
	for _, c := range cases {
		s := &Statistic{}
		for _, n := range c.nodes {
			s.Push(float64(n))
		}
		is.True(FuzzyEqual(s.Mean(), c.mean))
		is.True(FuzzyEqual(s.Stdev(), c.stdev))
		is.Equal(s.Min(), c.min)
		is.Equal(s.Max(), c.max)
		is.Equal(s.Iterations(), len(c.nodes))
	}
}

func TestZVal(t *testing.T) {
	is := is.New(t)
	is.True(FuzzyEqual(ZVal(95), 1.959963984540054))
	is.True(FuzzyEqual(ZVal(99), 2.5758293035489))
}

func TestProportion(t *testing.T) {
	is := is.New(t)
	p := Proportion{}
	lo, hi := p.Interval(95)
	is.Equal(lo, 0.0)
	is.Equal(hi, 0.0)
	for i := 0; i < 100; i++ {
		p.Push(i%4 != 0)
	}
	is.Equal(p.Successes, 75)
	is.True(FuzzyEqual(p.Rate(), 0.75))
	lo, hi = p.Interval(95)
	// 1.96 * sqrt(.75*.25/100)
	is.True(FuzzyEqual(hi-p.Rate(), 0.08486893))
	is.True(FuzzyEqual(p.Rate()-lo, hi-p.Rate()))

	all := Proportion{Successes: 10, Trials: 10}
	lo, hi = all.Interval(95)
	is.Equal(lo, 1.0)
	is.Equal(hi, 1.0)
}
