package automatic

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/domino14/shenzhen/config"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Set(config.ConfigMaxNodes, 200)
	cfg.Set(config.ConfigTTableMaxEntries, 1<<14)
	cfg.Set(config.ConfigThreads, 2)
	return cfg
}

func TestRunBatch(t *testing.T) {
	var buf bytes.Buffer
	seeds := SequentialSeeds(100, 6)
	report, err := Run(context.Background(), testConfig(), seeds, &buf)
	require.NoError(t, err)
	assert.Equal(t, 6, report.Wins.Trials)
	assert.Len(t, report.Results, 6)
	assert.Equal(t, 6, report.Nodes.Iterations())
	assert.LessOrEqual(t, report.Nodes.Max(), 200.0)
	assert.Equal(t, report.Wins.Trials-report.Wins.Successes, len(report.Lost()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 7)
	assert.Equal(t, strings.TrimSpace(logHeader), lines[0])
	assert.False(t, IsRunning())

	seen := map[uint64]bool{}
	for _, r := range report.Results {
		seen[r.Seed] = true
	}
	for _, s := range seeds {
		assert.True(t, seen[s])
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	report, err := Run(ctx, testConfig(), SequentialSeeds(0, 500), nil)
	require.NoError(t, err)
	assert.Empty(t, report.Results)
	assert.Equal(t, 0, report.Wins.Trials)
	assert.False(t, IsRunning())
}

// cancelOnResult cancels the batch as soon as the first deal is logged.
type cancelOnResult struct {
	cancel context.CancelFunc
	writes int
}

func (c *cancelOnResult) Write(p []byte) (int, error) {
	c.writes++
	// the first write is the header.
	if c.writes == 2 {
		c.cancel()
	}
	return len(p), nil
}

func TestRunCancelledMidBatchKeepsOnlySearchedDeals(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w := &cancelOnResult{cancel: cancel}
	report, err := Run(ctx, testConfig(), SequentialSeeds(0, 500), w)
	require.NoError(t, err)
	assert.NotEmpty(t, report.Results)
	assert.Less(t, len(report.Results), 500)
	for _, r := range report.Results {
		assert.Positive(t, r.Nodes, "seed %d was reported without being searched", r.Seed)
	}
	assert.Equal(t, len(report.Results), report.Nodes.Iterations())
}

func TestRunBadConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Set(config.ConfigDedupMode, "nope")
	_, err := Run(context.Background(), cfg, SequentialSeeds(0, 3), nil)
	assert.Error(t, err)
	assert.False(t, IsRunning())
}

func TestReportString(t *testing.T) {
	r := &Report{}
	r.add(Result{Seed: 1, Won: true, Moves: 40, Nodes: 100, Elapsed: time.Second})
	r.add(Result{Seed: 2, Won: false, Nodes: 5000, Elapsed: 2 * time.Second})
	r.add(Result{Seed: 3, Won: true, Moves: 60, Nodes: 300, Elapsed: time.Second})
	assert.Equal(t, []uint64{2}, r.Lost())
	assert.Equal(t, 5400, r.TotalNodes())
	assert.InDelta(t, 50.0, r.Moves.Mean(), 1e-9)

	s := r.String()
	assert.Contains(t, s, "deals: 3  won: 2 (66.7%")
	assert.Contains(t, s, "moves (won deals): mean 50.0")
	assert.Contains(t, s, "nodes per deal:")
}

func TestSeedsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seeds.txt")
	seeds := GenerateSeeds(20)
	require.NoError(t, SaveSeeds(seeds, path))
	back, err := LoadSeeds(path)
	require.NoError(t, err)
	assert.Equal(t, seeds, back)

	require.NoError(t, os.WriteFile(path, []byte("# x\n\n12\nbanana\n"), 0o644))
	_, err = LoadSeeds(path)
	assert.ErrorContains(t, err, "line 4")
}
