// autoplay solves a batch of dealt layouts and prints a report.
//
//	autoplay [flags] <n> [first-seed] [csv-file]
//
// Without first-seed the seeds are random.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/shenzhen/automatic"
	"github.com/domino14/shenzhen/config"
)

func main() {
	cfg := &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	output.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}
	level := zerolog.InfoLevel
	if cfg.GetBool(config.ConfigDebug) {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(output).Level(level).With().Timestamp().Logger()

	args := cfg.Args()
	if len(args) < 1 || len(args) > 3 {
		fmt.Fprintln(os.Stderr, "usage: autoplay [flags] <n> [first-seed] [csv-file]")
		os.Exit(2)
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		log.Fatal().Str("n", args[0]).Msg("need a positive number of deals")
	}
	seeds := automatic.GenerateSeeds(n)
	if len(args) > 1 {
		start, err := strconv.ParseUint(args[1], 10, 64)
		if err != nil {
			log.Fatal().Err(err).Msg("bad-first-seed")
		}
		seeds = automatic.SequentialSeeds(start, n)
	}

	var logfile io.Writer
	if len(args) > 2 {
		f, err := os.Create(args[2])
		if err != nil {
			log.Fatal().Err(err).Msg("creating-log")
		}
		defer f.Close()
		logfile = f
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	report, err := automatic.Run(ctx, cfg, seeds, logfile)
	if err != nil {
		log.Error().Err(err).Msg("autoplay-failed")
		return
	}
	fmt.Print(report.String())
}
