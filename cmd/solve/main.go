// solve reads a layout, solves it, and writes the solution as YAML on
// stdout.
//
//	solve [flags] <layout.yaml | seed:N | layout:ROWS>
//
// The exit status is 1 if no win was found.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime/pprof"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/shenzhen/config"
	"github.com/domino14/shenzhen/deal"
	"github.com/domino14/shenzhen/game"
	"github.com/domino14/shenzhen/layout"
	"github.com/domino14/shenzhen/solver"
)

func setupLogging(cfg *config.Config) {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	output.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}
	output.FormatMessage = func(i interface{}) string {
		return fmt.Sprintf("%s", i)
	}
	output.FormatFieldName = func(i interface{}) string {
		return fmt.Sprintf("%s:", i)
	}
	level := zerolog.InfoLevel
	if cfg.GetBool(config.ConfigDebug) {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(output).Level(level).With().Timestamp().Logger()
}

func loadPosition(arg string) (*game.GameState, string, error) {
	if s, ok := strings.CutPrefix(arg, "seed:"); ok {
		seed, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return nil, "", fmt.Errorf("bad seed: %w", err)
		}
		g, err := game.FromGrid(deal.Seeded(seed))
		return g, arg, err
	}
	if s, ok := strings.CutPrefix(arg, "layout:"); ok {
		g, err := layout.ToGameState(s)
		return g, "layout", err
	}
	g, f, err := layout.Load(arg)
	if err != nil {
		return nil, "", err
	}
	name := f.Name
	if name == "" {
		name = arg
	}
	return g, name, nil
}

func run(cfg *config.Config) (bool, error) {
	st, name, err := loadPosition(cfg.Args()[0])
	if err != nil {
		return false, fmt.Errorf("loading layout: %w", err)
	}
	s, err := solver.NewFromConfig(cfg)
	if err != nil {
		return false, err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sol, err := s.Solve(ctx, st)
	if err != nil && !errors.Is(err, solver.ErrNoSolution) {
		return false, err
	}
	log.Info().Bool("won", sol.Won).
		Int("moves", sol.Moves()).
		Int("nodes", sol.Nodes).
		Dur("elapsed", sol.Elapsed).
		Msg("solve-finished")

	if err := sol.Output(name).Write(os.Stdout); err != nil {
		return false, err
	}
	return sol.Won, nil
}

func main() {
	cfg := &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	setupLogging(cfg)
	if len(cfg.Args()) != 1 {
		fmt.Fprintln(os.Stderr, "usage: solve [flags] <layout.yaml | seed:N | layout:ROWS>")
		os.Exit(2)
	}

	if cfg.GetString(config.ConfigCPUProfile) != "" {
		f, err := os.Create(cfg.GetString(config.ConfigCPUProfile))
		if err != nil {
			log.Fatal().Err(err).Msg("cpu-profile")
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal().Err(err).Msg("cpu-profile")
		}
		defer pprof.StopCPUProfile()
	}

	won, err := run(cfg)
	if err != nil {
		log.Error().Err(err).Msg("solve-failed")
		os.Exit(1)
	}
	if !won {
		os.Exit(1)
	}
}
