package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"

	"github.com/domino14/shenzhen/config"
	"github.com/domino14/shenzhen/equity"
	"github.com/domino14/shenzhen/game"
	"github.com/domino14/shenzhen/move"
	"github.com/domino14/shenzhen/movegen"
	"github.com/domino14/shenzhen/solver"
)

var (
	errNoData            = errors.New("no data in this line")
	errWrongOptionSyntax = errors.New("wrong format; all options need arguments")
	errNoPosition        = errors.New("no position loaded; use load, layout or deal")
	errExit              = errors.New("exit requested")
)

type ShellController struct {
	l   *readline.Instance
	out io.Writer
	cfg *config.Config

	solver *solver.Solver
	gen    *movegen.Generator
	eval   *equity.StaticEvaluator

	// start is the position as loaded; cur is where play has got to.
	start     *game.GameState
	cur       *game.GameState
	curName   string
	curPlays  []move.Move
	solution  *solver.Solution
	solvedFor *game.GameState

	cancel context.CancelFunc
}

type shellcmd struct {
	cmd     string
	args    []string
	options CmdOptions
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func NewShellController(cfg *config.Config) *ShellController {
	sc, err := newController(cfg, os.Stdout)
	if err != nil {
		panic(err)
	}
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[31mshenzhen>\033[0m ",
		HistoryFile:     "/tmp/shenzhen-readline.tmp",
		AutoComplete:    NewShellCompleter(sc),
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		panic(err)
	}
	sc.l = l
	sc.out = l.Stdout()
	return sc
}

func newController(cfg *config.Config, out io.Writer) (*ShellController, error) {
	sc := &ShellController{cfg: cfg, out: out}
	if err := sc.rebuild(); err != nil {
		return nil, err
	}
	return sc, nil
}

// rebuild recreates the search machinery from the current config.
func (sc *ShellController) rebuild() error {
	s, err := solver.NewFromConfig(sc.cfg)
	if err != nil {
		return err
	}
	w, err := sc.cfg.Weights()
	if err != nil {
		return err
	}
	sc.solver = s
	sc.gen = movegen.NewGenerator()
	sc.eval = equity.NewStaticEvaluator(w)
	return nil
}

func (sc *ShellController) showMessage(msg string) {
	io.WriteString(sc.out, msg)
	io.WriteString(sc.out, "\n")
}

func (sc *ShellController) showError(err error) {
	sc.showMessage("Error: " + err.Error())
}

// extractFields splits a line into a command, its arguments, and -name
// value options. Quoting follows the shell.
func extractFields(line string) (*shellcmd, error) {
	fields, err := shellquote.Split(line)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, errNoData
	}
	cmd := &shellcmd{cmd: fields[0], options: CmdOptions{}}
	for i := 1; i < len(fields); i++ {
		f := fields[i]
		if strings.HasPrefix(f, "-") && len(f) > 1 {
			if _, err := strconv.Atoi(f); err != nil {
				if i == len(fields)-1 {
					return nil, errWrongOptionSyntax
				}
				key := strings.TrimLeft(f, "-")
				cmd.options[key] = append(cmd.options[key], fields[i+1])
				i++
				continue
			}
		}
		cmd.args = append(cmd.args, f)
	}
	return cmd, nil
}

// Execute runs one line, as when the binary is given a command on its
// command line.
func (sc *ShellController) Execute(sig chan os.Signal, line string) {
	if err := sc.dispatch(line); err != nil {
		if errors.Is(err, errExit) {
			sig <- syscall.SIGINT
			return
		}
		sc.showError(err)
	}
}

func (sc *ShellController) dispatch(line string) error {
	cmd, err := extractFields(line)
	if err != nil {
		if errors.Is(err, errNoData) {
			return nil
		}
		return err
	}
	handler, ok := sc.commands()[cmd.cmd]
	if !ok {
		log.Debug().Msgf("you said: %v", strconv.Quote(line))
		return fmt.Errorf("unknown command %q; try help", cmd.cmd)
	}
	resp, err := handler(cmd)
	if err != nil {
		return err
	}
	if resp != nil && resp.message != "" {
		sc.showMessage(resp.message)
	}
	return nil
}

func (sc *ShellController) Loop(sig chan os.Signal) {
	defer sc.l.Close()

	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				sig <- syscall.SIGINT
				break
			}
			continue
		} else if err == io.EOF {
			sig <- syscall.SIGINT
			break
		}
		line = strings.TrimSpace(line)
		if err := sc.dispatch(line); err != nil {
			if errors.Is(err, errExit) {
				sig <- syscall.SIGINT
				break
			}
			sc.showError(err)
		}
	}
	log.Debug().Msgf("Exiting readline loop...")
}

// Cleanup stops anything still running.
func (sc *ShellController) Cleanup() {
	if sc.cancel != nil {
		sc.cancel()
	}
}
