package tetris_test

import (
	"fmt"

	"github.com/plus3/blockfall/tetris"
)

// firstKind always draws the I piece.
type firstKind struct{}

func (firstKind) IntN(int) int { return 0 }

// ExampleGame shows the host side of the engine: start a game, feed it
// actions and ticks, then read back what changed.
func ExampleGame() {
	game, err := tetris.NewGame(10, 20, tetris.WithRandomSource(firstKind{}))
	if err != nil {
		panic(err)
	}
	game.StartGame()

	fmt.Println("spawned:", game.Active().OccupiedSquares())

	game.Apply(tetris.ActionMoveLeft)
	game.AdvanceTick()
	fmt.Println("erase:  ", game.PreviousSquares())
	fmt.Println("draw:   ", game.Active().OccupiedSquares())

	game.Apply(tetris.ActionRotate)
	fmt.Println("rotated:", game.Active().OccupiedSquares())
	fmt.Println("score:  ", game.Score(), game.State())

	// Output:
	// spawned: [(0,5) (1,5) (2,5) (3,5)]
	// erase:   [(0,4) (1,4) (2,4) (3,4)]
	// draw:    [(1,4) (2,4) (3,4) (4,4)]
	// rotated: [(2,3) (2,4) (2,5) (2,6)]
	// score:   0 playing
}

// ExamplePiece_EraseRow shows a settled piece losing a row: the square on the
// cleared row disappears and the squares above it move down.
func ExamplePiece_EraseRow() {
	piece := tetris.NewPiece(tetris.KindL, 10, 0)
	fmt.Println(piece.OccupiedSquares())

	piece.EraseRow(12)
	fmt.Println(piece.OccupiedSquares(), piece.Erased())

	// Output:
	// [(10,1) (11,1) (12,1) (12,2)]
	// [(11,1) (12,1)] true
}
