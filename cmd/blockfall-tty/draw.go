package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/blockfall/tetris"
)

var palette = map[tetris.Kind]tcell.Color{
	tetris.KindI: tcell.ColorAqua,
	tetris.KindO: tcell.ColorYellow,
	tetris.KindT: tcell.ColorFuchsia,
	tetris.KindS: tcell.ColorLime,
	tetris.KindZ: tcell.ColorRed,
	tetris.KindL: tcell.ColorWhite,
	tetris.KindJ: tcell.ColorBlue,
}

var (
	frameStyle = tcell.StyleDefault.Foreground(tcell.ColorGray)
	textStyle  = tcell.StyleDefault
	emptyStyle = tcell.StyleDefault.Background(tcell.ColorBlack)
)

// Each board cell is two terminal columns wide so squares look square.
const cellWidth = 2

func kindStyle(kind tetris.Kind) tcell.Style {
	if c, ok := palette[kind]; ok {
		return tcell.StyleDefault.Background(c)
	}
	return emptyStyle
}

func draw(screen tcell.Screen, snap tetris.Snapshot) {
	screen.Clear()

	// Frame, with the board at x=1, y=1.
	right := snap.Width*cellWidth + 1
	for y := 0; y <= snap.Height+1; y++ {
		screen.SetContent(0, y, '│', nil, frameStyle)
		screen.SetContent(right, y, '│', nil, frameStyle)
	}
	for x := 0; x <= right; x++ {
		screen.SetContent(x, snap.Height+1, '─', nil, frameStyle)
	}
	screen.SetContent(0, snap.Height+1, '└', nil, frameStyle)
	screen.SetContent(right, snap.Height+1, '┘', nil, frameStyle)

	for r, row := range snap.Grid() {
		for c, kind := range row {
			setCell(screen, 1+c*cellWidth, 1+r, kindStyle(kind))
		}
	}

	side := right + 3
	drawText(screen, side, 1, "NEXT")
	minRow, minCol := topLeft(snap.Next)
	for _, sq := range snap.Next {
		setCell(screen, side+(sq.Col-minCol)*cellWidth, 3+sq.Row-minRow, kindStyle(snap.NextKind))
	}

	drawText(screen, side, 8, fmt.Sprintf("SCORE %d", snap.Score))
	if snap.State == tetris.StateGameOver {
		drawText(screen, side, 10, "GAME OVER")
		drawText(screen, side, 11, "r to restart, q to quit")
	}

	screen.Show()
}

func setCell(screen tcell.Screen, x, y int, style tcell.Style) {
	for i := range cellWidth {
		screen.SetContent(x+i, y, ' ', nil, style)
	}
}

func drawText(screen tcell.Screen, x, y int, text string) {
	for i, r := range []rune(text) {
		screen.SetContent(x+i, y, r, nil, textStyle)
	}
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
