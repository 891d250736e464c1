package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/plus3/blockfall/tetris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runSim(t *testing.T, seed uint64, steps int64) (*tally, *tetris.Game, *Report) {
	t.Helper()
	tl := newTally()
	game, err := tetris.NewGame(10, 20,
		tetris.WithRandomSource(tetris.NewRandomSource(seed)),
		tetris.WithObserver(tl),
	)
	require.NoError(t, err)

	report := &Report{Width: 10, Height: 20, Seed: seed, Steps: steps, TickEvery: 2}
	report.Loop, report.TotalTime = simulate(context.Background(), game, tl, simOptions{
		steps:     steps,
		tickEvery: 2,
		seed:      seed,
	})
	report.fill(tl)
	return tl, game, report
}

func TestSimulate(t *testing.T) {
	tl, game, report := runSim(t, 9, 20000)

	assert.Equal(t, int64(20000), report.Loop.Ticks.Count+report.Loop.Actions.Count)
	assert.Greater(t, tl.games, 1, "games restart after game over")
	assert.Contains(t, []int{tl.games - 1, tl.games}, len(tl.scores))

	total := 0
	for _, kc := range report.Settled {
		total += kc.Count
	}
	assert.Greater(t, total, 0)
	assert.Equal(t, tl.rows, game.Score()+sum(tl.scores[:min(len(tl.scores), tl.games-1)]),
		"cleared rows are the scores of finished games plus the running one")
}

func sum(xs []int) int {
	total := 0
	for _, x := range xs {
		total += x
	}
	return total
}

func TestSimulateIsReproducible(t *testing.T) {
	a, gameA, _ := runSim(t, 21, 5000)
	b, gameB, _ := runSim(t, 21, 5000)

	assert.Equal(t, a.scores, b.scores)
	assert.Equal(t, a.settled, b.settled)
	assert.Equal(t, gameA.Snapshot().Digest(), gameB.Snapshot().Digest())
}

func TestSimulateStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	game, err := tetris.NewGame(10, 20, tetris.WithRandomSource(tetris.NewRandomSource(1)))
	require.NoError(t, err)
	stats, _ := simulate(ctx, game, newTally(), simOptions{tickEvery: 4, seed: 1})
	assert.Zero(t, stats.Ticks.Count+stats.Actions.Count)
}

func TestScoreStats(t *testing.T) {
	assert.Equal(t, ScoreStats{}, newScoreStats(nil))
	assert.Equal(t, ScoreStats{Min: 1, Max: 9, Avg: 4, Median: 2}, newScoreStats([]int{9, 1, 2}))
}

func TestReportGenerate(t *testing.T) {
	_, _, report := runSim(t, 5, 2000)

	var buf bytes.Buffer
	require.NoError(t, report.Generate(&buf))
	out := buf.String()
	assert.Contains(t, out, "# Blockfall Simulation Report")
	assert.Contains(t, out, "- **Board:** 10x20")
	assert.Contains(t, out, "or 2000 steps")
	assert.Contains(t, out, "- I: ")
	assert.Contains(t, out, "- J: ")
}
