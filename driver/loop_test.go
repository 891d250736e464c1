package driver_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/plus3/blockfall/driver"
	"github.com/plus3/blockfall/tetris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingEngine records the calls it receives. The mutex is only there so
// the test goroutine can read the counts while Run is active.
type countingEngine struct {
	mu      sync.Mutex
	ticks   int
	actions []tetris.Action
}

func (e *countingEngine) Apply(action tetris.Action) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.actions = append(e.actions, action)
}

func (e *countingEngine) AdvanceTick() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.ticks++
}

func (e *countingEngine) counts() (int, int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ticks, len(e.actions)
}

func TestLoopOnce(t *testing.T) {
	engine := &countingEngine{}
	loop := driver.NewLoop(engine, driver.WithInterval(250*time.Millisecond))

	t.Run("accumulates partial intervals", func(t *testing.T) {
		assert.Equal(t, 0, loop.Once(0.1))
		assert.Equal(t, 0, loop.Once(0.1))
		assert.Equal(t, 1, loop.Once(0.1))
		assert.Equal(t, 1, engine.ticks)
	})

	t.Run("fires every elapsed interval", func(t *testing.T) {
		loop.ResetClock()
		assert.Equal(t, 4, loop.Once(1.0))
		assert.Equal(t, 5, engine.ticks)
	})

	t.Run("reset clock drops pending time", func(t *testing.T) {
		loop.Once(0.2)
		loop.ResetClock()
		assert.Equal(t, 0, loop.Once(0.1))
	})
}

func TestLoopDefaultInterval(t *testing.T) {
	loop := driver.NewLoop(&countingEngine{}, driver.WithInterval(0))
	assert.Equal(t, driver.DefaultInterval, loop.Interval())
}

func TestLoopApplyAndHooks(t *testing.T) {
	engine := &countingEngine{}
	loop := driver.NewLoop(engine)

	updates := 0
	loop.OnUpdate(func() { updates++ })

	loop.Apply(tetris.ActionRotate)
	loop.Apply(tetris.ActionMoveLeft)
	loop.Tick()

	assert.Equal(t, []tetris.Action{tetris.ActionRotate, tetris.ActionMoveLeft}, engine.actions)
	assert.Equal(t, 1, engine.ticks)
	assert.Equal(t, 3, updates)

	stats := loop.Stats()
	assert.Equal(t, int64(2), stats.Actions.Count)
	assert.Equal(t, int64(1), stats.Ticks.Count)
	assert.LessOrEqual(t, stats.Actions.MinDuration, stats.Actions.MaxDuration)
	assert.Equal(t, stats.Ticks.TotalDuration, stats.Ticks.LastDuration)
}

func TestLoopStatsEmpty(t *testing.T) {
	stats := driver.NewLoop(&countingEngine{}).Stats()
	assert.Zero(t, stats.Ticks.Count)
	assert.Zero(t, stats.Ticks.MinDuration)
	assert.Zero(t, stats.Ticks.AvgDuration)
}

func TestLoopSubmitDropsWhenFull(t *testing.T) {
	loop := driver.NewLoop(&countingEngine{}, driver.WithQueueSize(2))

	assert.True(t, loop.Submit(tetris.ActionMoveLeft))
	assert.True(t, loop.Submit(tetris.ActionMoveLeft))
	assert.False(t, loop.Submit(tetris.ActionMoveLeft))
	assert.Equal(t, int64(1), loop.Stats().Dropped)
}

func TestLoopRun(t *testing.T) {
	engine := &countingEngine{}
	loop := driver.NewLoop(engine, driver.WithInterval(5*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		loop.Run(ctx)
	}()

	require.True(t, loop.Submit(tetris.ActionDrop))
	require.True(t, loop.Submit(tetris.ActionRotate))

	require.Eventually(t, func() bool {
		ticks, actions := engine.counts()
		return ticks >= 3 && actions == 2
	}, time.Second, time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestLoopDrivesGame(t *testing.T) {
	game, err := tetris.NewGame(10, 20, tetris.WithRandomSource(tetris.NewRandomSource(1)))
	require.NoError(t, err)
	game.StartGame()

	loop := driver.NewLoop(game, driver.WithInterval(100*time.Millisecond))
	var previous [][]tetris.Square
	loop.OnUpdate(func() {
		previous = append(previous, game.PreviousSquares())
	})

	start := game.Active().OccupiedSquares()
	loop.Once(0.1)

	require.Len(t, previous, 1)
	assert.Equal(t, start, previous[0])
	assert.Equal(t, start[0].Row+1, game.Active().OccupiedSquares()[0].Row)
}
