// Package solver searches for a winning line from a starting position.
//
// The search is best-first, approximately: the frontier is a plain slice
// popped from the end, and is only sorted by score every resortInterval
// pops. It finds a win quickly on most deals but proves nothing; running
// out of budget returns the best line seen so far.
package solver

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/domino14/shenzhen/config"
	"github.com/domino14/shenzhen/equity"
	"github.com/domino14/shenzhen/game"
	"github.com/domino14/shenzhen/move"
	"github.com/domino14/shenzhen/movegen"
	"github.com/domino14/shenzhen/zobrist"
)

var (
	// ErrNoSolution means the whole reachable space (as far as the
	// search would go) was explored without a win.
	ErrNoSolution  = errors.New("no solution found")
	ErrBadDedup    = errors.New("dedup-mode must be approximate or exact")
	ErrNotReplayed = errors.New("actions do not replay from this position")
)

const (
	DefaultMaxNodes          = 200000
	DefaultMaxSolutionLength = 150
	DefaultResortInterval    = 64
	DefaultLogInterval       = 10000
)

// node is a frontier entry. Its line is recovered by walking parents, so
// siblings share their common prefix.
type node struct {
	st     *game.GameState
	parent *node
	// actions taken from parent to get here: one real move, then a resolve
	// if anything was retired.
	actions []move.Move
	score   float64
}

// Solution is what a search came up with. Won says whether Final is
// actually a finished board.
type Solution struct {
	Actions []move.Move
	Won     bool
	Score   float64
	Final   *game.GameState
	Nodes   int
	Elapsed time.Duration
}

// Moves counts the real moves in the solution.
func (s *Solution) Moves() int {
	n := 0
	for _, a := range s.Actions {
		if !a.IsPseudo() {
			n++
		}
	}
	return n
}

type Solver struct {
	gen  movegen.MoveGenerator
	eval equity.Calculator

	zobrist *zobrist.Zobrist
	table   dedupTable

	maxNodes          int
	maxSolutionLength int
	resortInterval    int
	logInterval       int
	timeLimit         time.Duration
}

// Init sets up the solver with the default search limits and a small
// approximate dedup table.
func (s *Solver) Init(gen movegen.MoveGenerator, eval equity.Calculator) {
	s.gen = gen
	s.eval = eval
	s.zobrist = zobrist.New()
	s.maxNodes = DefaultMaxNodes
	s.maxSolutionLength = DefaultMaxSolutionLength
	s.resortInterval = DefaultResortInterval
	s.logInterval = DefaultLogInterval
	s.table = newApproximateTable(s.zobrist, minTablePow+6)
}

// NewFromConfig builds a solver with every setting taken from cfg.
func NewFromConfig(cfg *config.Config) (*Solver, error) {
	w, err := cfg.Weights()
	if err != nil {
		return nil, err
	}
	gen := movegen.NewGenerator()
	gen.SetSkipEmptyTransfers(cfg.GetBool(config.ConfigSkipEmptyTransfers))
	s := &Solver{}
	s.Init(gen, equity.NewStaticEvaluator(w))
	s.SetMaxNodes(cfg.GetInt(config.ConfigMaxNodes))
	s.SetMaxSolutionLength(cfg.GetInt(config.ConfigMaxSolutionLength))
	s.SetResortInterval(cfg.GetInt(config.ConfigResortInterval))
	s.SetLogInterval(cfg.GetInt(config.ConfigLogInterval))
	s.SetTimeLimit(cfg.GetDuration(config.ConfigTimeLimit))
	err = s.SetDedupMode(DedupMode(cfg.GetString(config.ConfigDedupMode)),
		cfg.GetFloat64(config.ConfigTTableMemFraction), cfg.GetInt(config.ConfigTTableMaxEntries))
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Solver) SetMaxNodes(n int) {
	s.maxNodes = n
}

func (s *Solver) SetMaxSolutionLength(n int) {
	s.maxSolutionLength = n
}

func (s *Solver) SetResortInterval(n int) {
	s.resortInterval = max(1, n)
}

func (s *Solver) SetLogInterval(n int) {
	s.logInterval = n
}

// SetTimeLimit bounds the wall clock time of each solve. 0 means no limit.
func (s *Solver) SetTimeLimit(d time.Duration) {
	s.timeLimit = d
}

func (s *Solver) SetDedupMode(mode DedupMode, fractionOfMemory float64, maxEntries int) error {
	switch mode {
	case DedupApproximate:
		s.table = newApproximateTable(s.zobrist, tableSizePow(fractionOfMemory, maxEntries))
	case DedupExact:
		s.table = newExactTable()
	default:
		return fmt.Errorf("%w: %q", ErrBadDedup, mode)
	}
	return nil
}

func (s *Solver) Evaluator() equity.Calculator {
	return s.eval
}

// Solve searches from st, which is left untouched. It returns a nil error
// when it finds a win, and also when it stops early on its node budget, its
// time limit, or ctx; check Solution.Won. ErrNoSolution comes back with
// the best line when the frontier runs dry.
func (s *Solver) Solve(ctx context.Context, st *game.GameState) (*Solution, error) {
	tstart := time.Now()
	var deadline time.Time
	if s.timeLimit > 0 {
		deadline = tstart.Add(s.timeLimit)
	}
	s.table.reset()

	rootState := st.Copy()
	root := &node{st: rootState}
	if n := rootState.AutoResolve(); n > 0 {
		root.actions = []move.Move{move.NewResolveMove(n)}
	}
	root.score = s.eval.Equity(rootState)
	s.table.seen(rootState)

	log.Debug().Int("max-nodes", s.maxNodes).
		Int("max-solution-length", s.maxSolutionLength).
		Int("resort-interval", s.resortInterval).
		Float64("root-score", root.score).
		Msg("solve-start")

	frontier := []*node{root}
	best := root
	expanded, pops, pruned := 0, 0, 0

	finish := func(n *node, reason string) *Solution {
		sol := s.solution(n, expanded, time.Since(tstart))
		ts := s.table.stats()
		log.Debug().Str("reason", reason).
			Int("nodes", expanded).
			Int("pruned", pruned).
			Int("frontier", len(frontier)).
			Uint64("table-stored", ts.stored).
			Uint64("table-dups", ts.dups).
			Uint64("table-evictions", ts.evictions).
			Bool("won", sol.Won).
			Int("moves", sol.Moves()).
			Float64("time-elapsed-sec", sol.Elapsed.Seconds()).
			Msg("solve-returning")
		return sol
	}

	for {
		if len(frontier) == 0 {
			return finish(best, "frontier-empty"), ErrNoSolution
		}
		if expanded >= s.maxNodes {
			return finish(best, "node-budget"), nil
		}
		if ctx.Err() != nil {
			return finish(best, "cancelled"), nil
		}
		if !deadline.IsZero() && time.Now().After(deadline) {
			return finish(best, "time-limit"), nil
		}
		if pops%s.resortInterval == 0 {
			slices.SortFunc(frontier, func(a, b *node) int {
				switch {
				case a.score < b.score:
					return -1
				case a.score > b.score:
					return 1
				}
				return 0
			})
		}
		pops++
		n := frontier[len(frontier)-1]
		frontier[len(frontier)-1] = nil
		frontier = frontier[:len(frontier)-1]

		if n.score >= equity.WinScore {
			return finish(n, "won"), nil
		}
		// the limit counts real moves; resolve entries in the line are free.
		if n.st.MovesTaken() > s.maxSolutionLength {
			pruned++
			continue
		}

		expanded++
		for _, m := range s.gen.GenAll(n.st) {
			child := n.st.Copy()
			if err := child.PlayMove(m); err != nil {
				// the generator and the rules disagree.
				return nil, fmt.Errorf("generated %v: %w", m, err)
			}
			retired := child.AutoResolve()
			if s.table.seen(child) {
				continue
			}
			c := &node{st: child, parent: n, score: s.eval.Equity(child)}
			if retired > 0 {
				c.actions = []move.Move{m, move.NewResolveMove(retired)}
			} else {
				c.actions = []move.Move{m}
			}
			if c.score > best.score {
				best = c
			}
			frontier = append(frontier, c)
		}

		if s.logInterval > 0 && expanded%s.logInterval == 0 {
			log.Debug().Int("nodes", expanded).
				Int("frontier", len(frontier)).
				Float64("best-score", best.score).
				Int("depth", n.st.MovesTaken()).
				Msg("solve-progress")
		}
	}
}

func (s *Solver) solution(n *node, expanded int, elapsed time.Duration) *Solution {
	var chunks [][]move.Move
	for p := n; p != nil; p = p.parent {
		chunks = append(chunks, p.actions)
	}
	slices.Reverse(chunks)
	actions := slices.Concat(chunks...)
	return &Solution{
		Actions: actions,
		Won:     n.st.IsWon(),
		Score:   n.score,
		Final:   n.st.Copy(),
		Nodes:   expanded,
		Elapsed: elapsed,
	}
}

// Replay plays actions from st the way the solver produced them: the
// position is resolved after every real move, and each resolve action must
// match the number of cards that resolving retired. It returns the final
// position.
func Replay(st *game.GameState, actions []move.Move) (*game.GameState, error) {
	g := st.Copy()
	pending := g.AutoResolve()
	for i, m := range actions {
		if m.Action() == move.MoveTypeResolve {
			if m.Count() != pending {
				return nil, fmt.Errorf("%w: action %d resolves %d cards, board resolved %d",
					ErrNotReplayed, i, m.Count(), pending)
			}
			pending = 0
			continue
		}
		if pending > 0 {
			return nil, fmt.Errorf("%w: %d cards resolved before action %d without a resolve action",
				ErrNotReplayed, pending, i)
		}
		if err := g.PlayMove(m); err != nil {
			return nil, fmt.Errorf("%w: action %d: %w", ErrNotReplayed, i, err)
		}
		pending = g.AutoResolve()
	}
	if pending > 0 {
		return nil, fmt.Errorf("%w: %d cards resolved after the last action", ErrNotReplayed, pending)
	}
	return g, nil
}
