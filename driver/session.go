package driver

import (
	"sync/atomic"

	"github.com/plus3/blockfall/tetris"
)

// Session is an Engine around one Game that can be asked to start a new
// round from any goroutine. The restart happens on the loop's goroutine, at
// the start of the next action or tick.
type Session struct {
	game    *tetris.Game
	restart atomic.Bool
}

// NewSession starts game and wraps it.
func NewSession(game *tetris.Game) *Session {
	game.StartGame()
	return &Session{game: game}
}

func (s *Session) Game() *tetris.Game {
	return s.game
}

// RequestRestart marks the session for a restart. Submitting ActionNone
// afterwards makes it take effect without waiting for the next tick.
func (s *Session) RequestRestart() {
	s.restart.Store(true)
}

func (s *Session) Apply(action tetris.Action) {
	s.restartIfRequested()
	s.game.Apply(action)
}

func (s *Session) AdvanceTick() {
	s.restartIfRequested()
	s.game.AdvanceTick()
}

func (s *Session) restartIfRequested() {
	if s.restart.CompareAndSwap(true, false) {
		s.game.StartGame()
	}
}
