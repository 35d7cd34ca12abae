// Package automatic solves batches of deals without supervision and
// reports how the solver did on them.
package automatic

import (
	"context"
	"errors"
	"expvar"
	"fmt"
	"io"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/domino14/shenzhen/config"
	"github.com/domino14/shenzhen/deal"
	"github.com/domino14/shenzhen/game"
	"github.com/domino14/shenzhen/solver"
)

var (
	SolvedCounter = expvar.NewInt("solvedCounter")
	isRunning     atomic.Bool
)

var ErrAlreadyRunning = errors.New("a batch is already running, please wait till it completes")

// Result is one deal's outcome.
type Result struct {
	Seed    uint64
	Won     bool
	Moves   int
	Nodes   int
	Elapsed time.Duration
}

const logHeader = "seed,won,moves,nodes,seconds\n"

func (r Result) csv() string {
	return fmt.Sprintf("%d,%t,%d,%d,%.3f\n", r.Seed, r.Won, r.Moves, r.Nodes, r.Elapsed.Seconds())
}

// IsRunning reports whether a batch is in progress.
func IsRunning() bool {
	return isRunning.Load()
}

// Run solves the deal for every seed, threads at a time, each worker with
// its own solver built from cfg. If logfile is not nil a CSV line is
// written to it per deal as deals finish. Cancelling ctx stops the batch;
// a deal whose search was cut short by the cancellation is left out, so the
// report covers only deals that were searched under their own limits.
func Run(ctx context.Context, cfg *config.Config, seeds []uint64, logfile io.Writer) (*Report, error) {
	if !isRunning.CompareAndSwap(false, true) {
		return nil, ErrAlreadyRunning
	}
	defer isRunning.Store(false)

	threads := cfg.GetInt(config.ConfigThreads)
	if threads <= 0 {
		threads = runtime.NumCPU()
	}
	threads = min(threads, max(1, len(seeds)))
	log.Debug().Int("deals", len(seeds)).Int("threads", threads).Msg("batch-start")

	if logfile != nil {
		if _, err := io.WriteString(logfile, logHeader); err != nil {
			return nil, err
		}
	}

	jobs := make(chan uint64, 100)
	results := make(chan Result, 100)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(jobs)
		for i, seed := range seeds {
			select {
			case jobs <- seed:
			case <-gctx.Done():
				log.Info().Int("queued", i).Msg("batch-stopping-early")
				return nil
			}
		}
		return nil
	})

	workers, wctx := errgroup.WithContext(gctx)
	for i := 0; i < threads; i++ {
		workers.Go(func() error {
			s, err := solver.NewFromConfig(cfg)
			if err != nil {
				return err
			}
			for seed := range jobs {
				if wctx.Err() != nil {
					// leave the rest unsearched rather than report them lost.
					return nil
				}
				res, err := solveSeed(wctx, s, seed)
				if err != nil {
					return err
				}
				if wctx.Err() != nil {
					// cut short, so it says nothing about the deal.
					return nil
				}
				SolvedCounter.Add(1)
				results <- res
			}
			return nil
		})
	}
	g.Go(func() error {
		err := workers.Wait()
		close(results)
		return err
	})

	report := &Report{}
	for res := range results {
		report.add(res)
		if logfile != nil {
			if _, err := io.WriteString(logfile, res.csv()); err != nil {
				log.Err(err).Msg("batch-log-write")
			}
		}
		if n := len(report.Results); n%100 == 0 {
			log.Info().Int("solved", n).Float64("win-rate", report.Wins.Rate()).Msg("batch-progress")
		}
	}
	if err := g.Wait(); err != nil {
		return report, err
	}
	log.Debug().Int("solved", len(report.Results)).Msg("batch-done")
	return report, nil
}

func solveSeed(ctx context.Context, s *solver.Solver, seed uint64) (Result, error) {
	st, err := game.FromGrid(deal.Seeded(seed))
	if err != nil {
		return Result{}, fmt.Errorf("seed %d: %w", seed, err)
	}
	sol, err := s.Solve(ctx, st)
	if err != nil && !errors.Is(err, solver.ErrNoSolution) {
		return Result{}, fmt.Errorf("seed %d: %w", seed, err)
	}
	return Result{
		Seed:    seed,
		Won:     sol.Won,
		Moves:   sol.Moves(),
		Nodes:   sol.Nodes,
		Elapsed: sol.Elapsed,
	}, nil
}
