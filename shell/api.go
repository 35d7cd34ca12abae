package shell

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/domino14/shenzhen/automatic"
	"github.com/domino14/shenzhen/card"
	"github.com/domino14/shenzhen/config"
	"github.com/domino14/shenzhen/deal"
	"github.com/domino14/shenzhen/game"
	"github.com/domino14/shenzhen/layout"
	"github.com/domino14/shenzhen/solver"
)

type Response struct {
	message string
}

type CmdOptions map[string][]string

func (c CmdOptions) String(key string) string {
	v := c[key]
	if len(v) > 0 {
		return v[0]
	}
	return ""
}

func (c CmdOptions) Int(key string) (int, error) {
	v := c[key]
	if len(v) == 0 {
		return 0, errors.New(key + " not found in options")
	}
	return strconv.Atoi(v[0])
}

func (c CmdOptions) IntDefault(key string, defaultI int) (int, error) {
	v := c[key]
	if len(v) == 0 {
		return defaultI, nil
	}
	return strconv.Atoi(v[0])
}

func msg(message string) *Response {
	return &Response{message: message}
}

type handler func(cmd *shellcmd) (*Response, error)

func (sc *ShellController) commands() map[string]handler {
	return map[string]handler{
		"help":     sc.help,
		"load":     sc.load,
		"layout":   sc.layout,
		"deal":     sc.deal,
		"show":     sc.show,
		"s":        sc.show,
		"gen":      sc.generate,
		"play":     sc.play,
		"resolve":  sc.resolve,
		"eval":     sc.evaluate,
		"solve":    sc.solve,
		"replay":   sc.replay,
		"export":   sc.export,
		"reset":    sc.reset,
		"set":      sc.set,
		"autoplay": sc.autoplay,
		"exit":     sc.exit,
	}
}

// setPosition makes st the start and the current position.
func (sc *ShellController) setPosition(st *game.GameState, name string) *Response {
	sc.start = st
	sc.cur = st.Copy()
	sc.curName = name
	sc.curPlays = nil
	sc.solution = nil
	sc.solvedFor = nil
	return msg(sc.cur.ToDisplayText())
}

func (sc *ShellController) needPosition() error {
	if sc.cur == nil {
		return errNoPosition
	}
	return nil
}

func (sc *ShellController) load(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) != 1 {
		return nil, errors.New("usage: load <file>")
	}
	st, f, err := layout.Load(cmd.args[0])
	if err != nil {
		return nil, err
	}
	name := f.Name
	if name == "" {
		name = cmd.args[0]
	}
	return sc.setPosition(st, name), nil
}

func (sc *ShellController) layout(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return nil, errors.New("usage: layout <rows separated by />")
	}
	st, err := layout.ToGameState(strings.Join(cmd.args, " "))
	if err != nil {
		return nil, err
	}
	return sc.setPosition(st, "layout"), nil
}

func (sc *ShellController) deal(cmd *shellcmd) (*Response, error) {
	var grid [][]card.Card
	name := "random deal"
	if len(cmd.args) == 0 {
		grid = deal.Random()
	} else {
		seed, err := strconv.ParseUint(cmd.args[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad seed: %w", err)
		}
		grid = deal.Seeded(seed)
		name = "deal " + cmd.args[0]
	}
	st, err := game.FromGrid(grid)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("layout", layout.Encode(grid)).Msg("dealt")
	return sc.setPosition(st, name), nil
}

func (sc *ShellController) show(cmd *shellcmd) (*Response, error) {
	if err := sc.needPosition(); err != nil {
		return nil, err
	}
	return msg(sc.cur.ToDisplayText()), nil
}

func (sc *ShellController) reset(cmd *shellcmd) (*Response, error) {
	if err := sc.needPosition(); err != nil {
		return nil, err
	}
	sc.cur = sc.start.Copy()
	sc.curPlays = nil
	return msg(sc.cur.ToDisplayText()), nil
}

func (sc *ShellController) generate(cmd *shellcmd) (*Response, error) {
	if err := sc.needPosition(); err != nil {
		return nil, err
	}
	plays := sc.gen.GenAll(sc.cur)
	sc.curPlays = append(sc.curPlays[:0], plays...)
	if len(plays) == 0 {
		return msg("no moves"), nil
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%-4s %-22s %s\n", "#", "move", "score after")
	for i, m := range sc.curPlays {
		c := sc.cur.Copy()
		if err := c.PlayMove(m); err != nil {
			return nil, err
		}
		c.AutoResolve()
		fmt.Fprintf(&sb, "%-4d %-22s %.1f\n", i+1, m.ShortDescription(), sc.eval.Equity(c))
	}
	return msg(strings.TrimRight(sb.String(), "\n")), nil
}

func (sc *ShellController) play(cmd *shellcmd) (*Response, error) {
	if err := sc.needPosition(); err != nil {
		return nil, err
	}
	if len(cmd.args) != 1 {
		return nil, errors.New("usage: play <number from gen>")
	}
	n, err := strconv.Atoi(cmd.args[0])
	if err != nil {
		return nil, err
	}
	if n < 1 || n > len(sc.curPlays) {
		return nil, fmt.Errorf("no move %d; run gen first", n)
	}
	m := sc.curPlays[n-1]
	if err := sc.cur.PlayMove(m); err != nil {
		return nil, err
	}
	sc.curPlays = nil
	retired := sc.cur.AutoResolve()
	var sb strings.Builder
	fmt.Fprintf(&sb, "played %s", m.ShortDescription())
	if retired > 0 {
		fmt.Fprintf(&sb, ", %d resolved", retired)
	}
	sb.WriteString("\n")
	sb.WriteString(sc.cur.ToDisplayText())
	return msg(sb.String()), nil
}

func (sc *ShellController) resolve(cmd *shellcmd) (*Response, error) {
	if err := sc.needPosition(); err != nil {
		return nil, err
	}
	n := sc.cur.AutoResolve()
	sc.curPlays = nil
	return msg(fmt.Sprintf("%d resolved\n%s", n, sc.cur.ToDisplayText())), nil
}

func (sc *ShellController) evaluate(cmd *shellcmd) (*Response, error) {
	if err := sc.needPosition(); err != nil {
		return nil, err
	}
	var sb strings.Builder
	for _, t := range sc.eval.Breakdown(sc.cur) {
		fmt.Fprintf(&sb, "%-14s %8.2f\n", t.Name, t.Value)
	}
	fmt.Fprintf(&sb, "%-14s %8.2f", "total", sc.eval.Equity(sc.cur))
	return msg(sb.String()), nil
}

func (sc *ShellController) solve(cmd *shellcmd) (*Response, error) {
	if err := sc.needPosition(); err != nil {
		return nil, err
	}
	if nodes, err := cmd.options.IntDefault("nodes", 0); err != nil {
		return nil, err
	} else if nodes > 0 {
		sc.solver.SetMaxNodes(nodes)
		defer sc.solver.SetMaxNodes(sc.cfg.GetInt(config.ConfigMaxNodes))
	}
	ctx, cancel := context.WithCancel(context.Background())
	sc.cancel = cancel
	defer cancel()

	sol, err := sc.solver.Solve(ctx, sc.cur)
	if err != nil && !errors.Is(err, solver.ErrNoSolution) {
		return nil, err
	}
	sc.solution = sol
	sc.solvedFor = sc.cur.Copy()

	var sb strings.Builder
	switch {
	case sol.Won:
		fmt.Fprintf(&sb, "solved in %d moves", sol.Moves())
	case err != nil:
		fmt.Fprintf(&sb, "no solution; best line has %d moves", sol.Moves())
	default:
		fmt.Fprintf(&sb, "gave up; best line has %d moves", sol.Moves())
	}
	fmt.Fprintf(&sb, " (%d nodes, %.2fs, score %.1f)\n", sol.Nodes, sol.Elapsed.Seconds(), sol.Score)
	for i, a := range sol.Actions {
		fmt.Fprintf(&sb, "%3d. %s\n", i+1, a.ShortDescription())
	}
	return msg(strings.TrimRight(sb.String(), "\n")), nil
}

// replay steps through the last solution, showing the board after every
// real move, and leaves the current position at its end.
func (sc *ShellController) replay(cmd *shellcmd) (*Response, error) {
	if sc.solution == nil {
		return nil, errors.New("nothing to replay; solve first")
	}
	if _, err := solver.Replay(sc.solvedFor, sc.solution.Actions); err != nil {
		return nil, err
	}
	g := sc.solvedFor.Copy()
	g.AutoResolve()
	var sb strings.Builder
	for i, a := range sc.solution.Actions {
		if a.IsPseudo() {
			continue
		}
		if err := g.PlayMove(a); err != nil {
			return nil, fmt.Errorf("action %d: %w", i+1, err)
		}
		g.AutoResolve()
		fmt.Fprintf(&sb, "%d. %s\n", i+1, a.ShortDescription())
		sb.WriteString(g.ToDisplayText())
		sb.WriteString("\n")
	}
	sc.cur = g
	sc.curPlays = nil
	if g.IsWon() {
		sb.WriteString("won")
	} else {
		sb.WriteString("not won")
	}
	return msg(sb.String()), nil
}

func (sc *ShellController) export(cmd *shellcmd) (*Response, error) {
	if sc.solution == nil {
		return nil, errors.New("nothing to export; solve first")
	}
	if len(cmd.args) != 1 {
		return nil, errors.New("usage: export <file>")
	}
	f, err := os.Create(cmd.args[0])
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if err := sc.solution.Output(sc.curName).Write(f); err != nil {
		return nil, err
	}
	return msg("wrote " + cmd.args[0]), nil
}

func (sc *ShellController) set(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		var sb strings.Builder
		for _, k := range sc.cfg.AllKeys() {
			fmt.Fprintf(&sb, "%s: %v\n", k, sc.cfg.Get(k))
		}
		return msg(strings.TrimRight(sb.String(), "\n")), nil
	}
	if len(cmd.args) != 2 {
		return nil, errors.New("usage: set <key> <value>")
	}
	old := sc.cfg.Get(cmd.args[0])
	sc.cfg.Set(cmd.args[0], cmd.args[1])
	if err := sc.rebuild(); err != nil {
		sc.cfg.Set(cmd.args[0], old)
		return nil, err
	}
	return msg(fmt.Sprintf("%s set to %v", cmd.args[0], sc.cfg.Get(cmd.args[0]))), nil
}

func (sc *ShellController) autoplay(cmd *shellcmd) (*Response, error) {
	n := 10
	if len(cmd.args) > 0 {
		var err error
		if n, err = strconv.Atoi(cmd.args[0]); err != nil {
			return nil, err
		}
	}
	start, err := cmd.options.IntDefault("seed", 0)
	if err != nil {
		return nil, err
	}
	seeds := automatic.GenerateSeeds(n)
	if _, ok := cmd.options["seed"]; ok {
		seeds = automatic.SequentialSeeds(uint64(start), n)
	}
	var logfile *os.File
	if fn := cmd.options.String("file"); fn != "" {
		if logfile, err = os.Create(fn); err != nil {
			return nil, err
		}
		defer logfile.Close()
	}
	ctx, cancel := context.WithCancel(context.Background())
	sc.cancel = cancel
	defer cancel()
	var report *automatic.Report
	if logfile != nil {
		report, err = automatic.Run(ctx, sc.cfg, seeds, logfile)
	} else {
		report, err = automatic.Run(ctx, sc.cfg, seeds, nil)
	}
	if err != nil {
		return nil, err
	}
	return msg(strings.TrimRight(report.String(), "\n")), nil
}

func (sc *ShellController) exit(cmd *shellcmd) (*Response, error) {
	return nil, errExit
}
