package main

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/blockfall/config"
	"github.com/plus3/blockfall/tetris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newSimScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("")
	require.NoError(t, screen.Init())
	screen.SetSize(60, 24)
	t.Cleanup(screen.Fini)
	return screen
}

func screenLine(screen tcell.SimulationScreen, y int) string {
	cells, width, _ := screen.GetContents()
	var b strings.Builder
	for x := 0; x < width; x++ {
		cell := cells[y*width+x]
		if len(cell.Runes) > 0 {
			b.WriteRune(cell.Runes[0])
		}
	}
	return b.String()
}

func TestKeyMapping(t *testing.T) {
	cases := []struct {
		key     tcell.Key
		ch      rune
		command command
		action  tetris.Action
	}{
		{tcell.KeyLeft, 0, commandAction, tetris.ActionMoveLeft},
		{tcell.KeyRight, 0, commandAction, tetris.ActionMoveRight},
		{tcell.KeyUp, 0, commandAction, tetris.ActionRotate},
		{tcell.KeyDown, 0, commandAction, tetris.ActionDrop},
		{tcell.KeyRune, 'h', commandAction, tetris.ActionMoveLeft},
		{tcell.KeyRune, ' ', commandAction, tetris.ActionDrop},
		{tcell.KeyRune, 'r', commandRestart, tetris.ActionNone},
		{tcell.KeyRune, 'q', commandQuit, tetris.ActionNone},
		{tcell.KeyEscape, 0, commandQuit, tetris.ActionNone},
		{tcell.KeyRune, 'x', commandIgnore, tetris.ActionNone},
	}
	for _, tc := range cases {
		ev := tcell.NewEventKey(tc.key, tc.ch, tcell.ModNone)
		assert.Equal(t, tc.command, keyCommand(ev), "%s %q", tcell.KeyNames[tc.key], tc.ch)
		assert.Equal(t, tc.action, keyAction(ev), "%s %q", tcell.KeyNames[tc.key], tc.ch)
	}
}

func TestDraw(t *testing.T) {
	screen := newSimScreen(t)
	game, err := tetris.NewGame(10, 20, tetris.WithRandomSource(tetris.NewRandomSource(2)))
	require.NoError(t, err)
	game.StartGame()

	draw(screen, game.Snapshot())
	assert.Contains(t, screenLine(screen, 1), "NEXT")
	assert.Contains(t, screenLine(screen, 8), "SCORE 0")
	assert.NotContains(t, screenLine(screen, 10), "GAME OVER")

	for game.State() == tetris.StatePlaying {
		game.AdvanceTick()
	}
	draw(screen, game.Snapshot())
	assert.Contains(t, screenLine(screen, 10), "GAME OVER")
}

func TestPlayQuits(t *testing.T) {
	screen := newSimScreen(t)
	cfg := config.Default()
	cfg.Seed = 4
	game, err := cfg.NewGame()
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		done <- play(context.Background(), screen, game, cfg, zap.NewNop())
	}()

	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("play did not return after quit")
	}
}

func TestPlayStopsOnCancel(t *testing.T) {
	screen := newSimScreen(t)
	cfg := config.Default()
	cfg.Seed = 4
	game, err := cfg.NewGame()
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	assert.NoError(t, play(ctx, screen, game, cfg, zap.NewNop()))
}
