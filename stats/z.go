package stats

import "gonum.org/v1/gonum/stat/distuv"

// ZVal is the two-tailed z for a confidence level given in percent, e.g.
// 95 gives about 1.96. Proportion.Interval scales its standard error by it.
func ZVal(confidence float64) float64 {
	std := distuv.Normal{Mu: 0, Sigma: 1}
	return std.Quantile((1 + confidence/100) / 2)
}
