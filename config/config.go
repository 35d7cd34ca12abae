// Package config loads settings from flags, SHENZHEN_* environment
// variables and an optional YAML file, in that order of precedence.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/domino14/shenzhen/equity"
)

const (
	ConfigDebug              = "debug"
	ConfigCPUProfile         = "cpu-profile"
	ConfigConfigFile         = "config-file"
	ConfigMaxNodes           = "max-nodes"
	ConfigMaxSolutionLength  = "max-solution-length"
	ConfigResortInterval     = "resort-interval"
	ConfigLogInterval        = "log-interval"
	ConfigTimeLimit          = "time-limit"
	ConfigDedupMode          = "dedup-mode"
	ConfigTTableMemFraction  = "ttable-mem-fraction"
	ConfigTTableMaxEntries   = "ttable-max-entries"
	ConfigSkipEmptyTransfers = "skip-empty-transfers"
	ConfigThreads            = "threads"
	ConfigWeights            = "weights"
)

const envPrefix = "SHENZHEN"

type Config struct {
	*viper.Viper
	args []string
}

func DefaultConfig() *Config {
	c := &Config{Viper: viper.New()}
	c.setDefaults()
	return c
}

func (c *Config) setDefaults() {
	c.SetDefault(ConfigDebug, false)
	c.SetDefault(ConfigCPUProfile, "")
	c.SetDefault(ConfigConfigFile, "")
	c.SetDefault(ConfigMaxNodes, 200000)
	c.SetDefault(ConfigMaxSolutionLength, 150)
	c.SetDefault(ConfigResortInterval, 64)
	c.SetDefault(ConfigLogInterval, 10000)
	c.SetDefault(ConfigTimeLimit, "0s")
	c.SetDefault(ConfigDedupMode, "approximate")
	c.SetDefault(ConfigTTableMemFraction, 0.1)
	c.SetDefault(ConfigTTableMaxEntries, 1<<22)
	c.SetDefault(ConfigSkipEmptyTransfers, true)
	c.SetDefault(ConfigThreads, 0)

	w := equity.DefaultWeights()
	c.SetDefault(ConfigWeights+".markers", w.Markers)
	c.SetDefault(ConfigWeights+".foundation", w.Foundation)
	c.SetDefault(ConfigWeights+".empty-stack", w.EmptyStack)
	c.SetDefault(ConfigWeights+".high-base", w.HighBase)
	c.SetDefault(ConfigWeights+".high-base-value", w.HighBaseValue)
	c.SetDefault(ConfigWeights+".imbalance", w.Imbalance)
	c.SetDefault(ConfigWeights+".slot-card", w.SlotCard)
	c.SetDefault(ConfigWeights+".moves", w.Moves)
	c.SetDefault(ConfigWeights+".moves-divisor", w.MovesDivisor)
	c.SetDefault(ConfigWeights+".moves-grace", w.MovesGrace)
	c.SetDefault(ConfigWeights+".endgame-cards", w.EndgameCards)
	c.SetDefault(ConfigWeights+".endgame-bonus", w.EndgameBonus)
}

// Load parses args and reads the environment and config file. Flags that
// aren't settings (positional arguments) are left for the caller in
// Args().
func (c *Config) Load(args []string) error {
	c.Viper = viper.New()
	c.setDefaults()

	fs := pflag.NewFlagSet("shenzhen", pflag.ContinueOnError)
	fs.Bool(ConfigDebug, false, "debug logging on")
	fs.String(ConfigCPUProfile, "", "write a cpu profile to this file")
	fs.String(ConfigConfigFile, "", "yaml file with settings and heuristic weights")
	fs.Int(ConfigMaxNodes, 200000, "expansions before the solver gives up")
	fs.Int(ConfigMaxSolutionLength, 150, "longest line the solver will follow, in moves")
	fs.Int(ConfigResortInterval, 64, "expansions between frontier sorts")
	fs.Int(ConfigLogInterval, 10000, "expansions between progress logs")
	fs.Duration(ConfigTimeLimit, 0, "wall clock limit for one solve; 0 for none")
	fs.String(ConfigDedupMode, "approximate", "duplicate detection: approximate or exact")
	fs.Float64(ConfigTTableMemFraction, 0.1, "fraction of system memory for the approximate table")
	fs.Int(ConfigTTableMaxEntries, 1<<22, "upper bound on approximate table entries")
	fs.Bool(ConfigSkipEmptyTransfers, true, "don't move whole stacks onto empty stacks")
	fs.Int(ConfigThreads, 0, "concurrent solves in autoplay; 0 for one per cpu")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := c.BindPFlags(fs); err != nil {
		return err
	}
	c.args = fs.Args()

	c.SetEnvPrefix(envPrefix)
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	c.AutomaticEnv()

	if f := c.GetString(ConfigConfigFile); f != "" {
		c.SetConfigFile(f)
		if err := c.ReadInConfig(); err != nil {
			return fmt.Errorf("reading %s: %w", f, err)
		}
	}
	return nil
}

// Weights returns the evaluator weights, starting from the defaults and
// overriding whatever the config sets.
func (c *Config) Weights() (equity.Weights, error) {
	// Unmarshal rather than UnmarshalKey, so environment overrides of
	// single weights are seen.
	var all struct {
		Weights equity.Weights `mapstructure:"weights"`
	}
	all.Weights = equity.DefaultWeights()
	if err := c.Unmarshal(&all); err != nil {
		return all.Weights, fmt.Errorf("bad weights: %w", err)
	}
	return all.Weights, nil
}

// Args returns the positional arguments left over after Load.
func (c *Config) Args() []string {
	return c.args
}

func (c *Config) SanitizedSettings() map[string]any {
	return c.AllSettings()
}
