package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/blockfall/debugui"
	debugui_ebiten "github.com/plus3/blockfall/debugui/ebiten"
	"github.com/plus3/blockfall/driver"
	"github.com/plus3/blockfall/tetris"
)

const (
	previewCells = 5
	// Held arrow keys repeat after repeatDelay frames, every repeatEvery frames.
	repeatDelay = 12
	repeatEvery = 4
)

var palette = map[tetris.Kind]color.RGBA{
	tetris.KindI: {0, 240, 240, 255},
	tetris.KindO: {240, 240, 0, 255},
	tetris.KindT: {160, 0, 240, 255},
	tetris.KindS: {0, 240, 0, 255},
	tetris.KindZ: {240, 0, 0, 255},
	tetris.KindL: {240, 160, 0, 255},
	tetris.KindJ: {0, 0, 240, 255},
}

var (
	background = color.RGBA{20, 20, 28, 255}
	emptyCell  = color.RGBA{40, 40, 52, 255}
)

var keyActions = []struct {
	key    ebiten.Key
	action tetris.Action
	repeat bool
}{
	{ebiten.KeyArrowLeft, tetris.ActionMoveLeft, true},
	{ebiten.KeyArrowRight, tetris.ActionMoveRight, true},
	{ebiten.KeyArrowUp, tetris.ActionRotate, false},
	{ebiten.KeyArrowDown, tetris.ActionDrop, true},
}

// window implements ebiten.Game. Update runs the loop at the display rate;
// the loop's accumulator turns frames into gravity ticks.
type window struct {
	session *driver.Session
	loop    *driver.Loop
	scale   int

	overlay *debugui_ebiten.Overlay
	panel   *debugui.Panel
}

func newWindow(session *driver.Session, loop *driver.Loop, scale int) *window {
	return &window{session: session, loop: loop, scale: scale}
}

// size is the board plus a side column for the preview and score.
func (w *window) size() (int, int) {
	game := w.session.Game()
	return (game.Width() + previewCells + 1) * w.scale, game.Height() * w.scale
}

func (w *window) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyQ) || ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	captured := false
	if w.overlay != nil {
		w.overlay.BeginFrame()
		if w.panel.Render(w.session.Game().Snapshot(), w.loop.Stats()) {
			w.restart()
		}
		captured = debugui.CurrentInput().WantCaptureKeyboard
	}

	if !captured {
		w.handleKeys()
	}
	w.loop.Once(1.0 / float64(ebiten.TPS()))

	if w.overlay != nil {
		w.overlay.EndFrame()
	}
	return nil
}

func (w *window) handleKeys() {
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		w.restart()
	}
	for _, ka := range keyActions {
		if pressed(ka.key, ka.repeat) {
			w.loop.Apply(ka.action)
		}
	}
}

func pressed(key ebiten.Key, repeat bool) bool {
	d := inpututil.KeyPressDuration(key)
	if d == 1 {
		return true
	}
	return repeat && d > repeatDelay && (d-repeatDelay)%repeatEvery == 0
}

func (w *window) restart() {
	w.session.RequestRestart()
	w.loop.Apply(tetris.ActionNone)
	w.loop.ResetClock()
}

func (w *window) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	snap := w.session.Game().Snapshot()

	for r, row := range snap.Grid() {
		for c, kind := range row {
			w.drawCell(screen, r, c, cellColor(kind))
		}
	}

	left := snap.Width + 1
	minRow, minCol := topLeft(snap.Next)
	for _, sq := range snap.Next {
		w.drawCell(screen, 1+sq.Row-minRow, left+sq.Col-minCol, palette[snap.NextKind])
	}

	status := fmt.Sprintf("NEXT\n\n\n\n\n\nSCORE %d", snap.Score)
	if snap.State == tetris.StateGameOver {
		status += "\n\nGAME OVER\nR to restart"
	}
	ebitenutil.DebugPrintAt(screen, status, left*w.scale, 0)

	if w.overlay != nil {
		w.overlay.Draw(screen)
	}
}

func (w *window) drawCell(screen *ebiten.Image, row, col int, c color.Color) {
	s := float32(w.scale)
	vector.DrawFilledRect(screen, float32(col)*s+1, float32(row)*s+1, s-2, s-2, c, false)
}

func (w *window) Layout(outsideWidth, outsideHeight int) (int, int) {
	if w.overlay != nil {
		return w.overlay.Layout(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

func cellColor(kind tetris.Kind) color.Color {
	if c, ok := palette[kind]; ok {
		return c
	}
	return emptyCell
}

func topLeft(squares []tetris.Square) (int, int) {
	if len(squares) == 0 {
		return 0, 0
	}
	minRow, minCol := squares[0].Row, squares[0].Col
	for _, sq := range squares[1:] {
		minRow = min(minRow, sq.Row)
		minCol = min(minCol, sq.Col)
	}
	return minRow, minCol
}
