package tetris

// Observer is notified of game events synchronously, from inside the call
// that caused them. Implementations must not call back into the Game.
type Observer interface {
	GameStarted(id string)
	PieceSettled(kind Kind)
	RowsCleared(rows []int)
	GameOver(score int)
}

type observers []Observer

func (o observers) gameStarted(id string) {
	for _, obs := range o {
		obs.GameStarted(id)
	}
}

func (o observers) pieceSettled(kind Kind) {
	for _, obs := range o {
		obs.PieceSettled(kind)
	}
}

func (o observers) rowsCleared(rows []int) {
	for _, obs := range o {
		obs.RowsCleared(append([]int(nil), rows...))
	}
}

func (o observers) gameOver(score int) {
	for _, obs := range o {
		obs.GameOver(score)
	}
}
