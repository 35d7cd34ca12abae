package automatic

import (
	"fmt"
	"strings"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/samber/lo"

	"github.com/domino14/shenzhen/stats"
)

const (
	histogramBins  = 10
	histogramWidth = 40
	confidence     = 95.0
)

// Report aggregates the results of a batch.
type Report struct {
	Results []Result
	Wins    stats.Proportion
	// Nodes and Seconds cover every deal; Moves only the won ones.
	Nodes   stats.Statistic
	Moves   stats.Statistic
	Seconds stats.Statistic
}

func (r *Report) add(res Result) {
	r.Results = append(r.Results, res)
	r.Wins.Push(res.Won)
	r.Nodes.Push(float64(res.Nodes))
	r.Seconds.Push(res.Elapsed.Seconds())
	if res.Won {
		r.Moves.Push(float64(res.Moves))
	}
}

// Lost returns the seeds that weren't solved.
func (r *Report) Lost() []uint64 {
	return lo.FilterMap(r.Results, func(res Result, _ int) (uint64, bool) {
		return res.Seed, !res.Won
	})
}

func (r *Report) TotalNodes() int {
	return lo.SumBy(r.Results, func(res Result) int { return res.Nodes })
}

func (r *Report) String() string {
	var sb strings.Builder
	lo95, hi95 := r.Wins.Interval(confidence)
	fmt.Fprintf(&sb, "deals: %d  won: %d (%.1f%%, %.0f%% interval %.1f%% - %.1f%%)\n",
		r.Wins.Trials, r.Wins.Successes, 100*r.Wins.Rate(), confidence, 100*lo95, 100*hi95)
	fmt.Fprintf(&sb, "nodes: mean %.0f  stdev %.0f  min %.0f  max %.0f  total %d\n",
		r.Nodes.Mean(), r.Nodes.Stdev(), r.Nodes.Min(), r.Nodes.Max(), r.TotalNodes())
	if r.Moves.Iterations() > 0 {
		fmt.Fprintf(&sb, "moves (won deals): mean %.1f  min %.0f  max %.0f\n",
			r.Moves.Mean(), r.Moves.Min(), r.Moves.Max())
	}
	fmt.Fprintf(&sb, "seconds per deal: mean %.3f  max %.3f\n", r.Seconds.Mean(), r.Seconds.Max())

	if len(r.Results) > 1 {
		nodes := lo.Map(r.Results, func(res Result, _ int) float64 { return float64(res.Nodes) })
		sb.WriteString("\nnodes per deal:\n")
		h := histogram.Hist(histogramBins, nodes)
		if err := histogram.Fprint(&sb, h, histogram.Linear(histogramWidth)); err != nil {
			fmt.Fprintf(&sb, "(no histogram: %v)\n", err)
		}
	}
	return sb.String()
}
