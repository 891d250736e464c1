package main

import (
	"context"
	"time"

	"github.com/plus3/blockfall/driver"
	"github.com/plus3/blockfall/tetris"
)

// tally is an observer that keeps the totals the report needs.
type tally struct {
	games    int
	settled  map[tetris.Kind]int
	rows     int
	scores   []int
	maxScore int
}

func newTally() *tally {
	return &tally{settled: make(map[tetris.Kind]int)}
}

func (t *tally) GameStarted(string) {
	t.games++
}

func (t *tally) PieceSettled(kind tetris.Kind) {
	t.settled[kind]++
}

func (t *tally) RowsCleared(rows []int) {
	t.rows += len(rows)
}

func (t *tally) GameOver(score int) {
	t.scores = append(t.scores, score)
	t.maxScore = max(t.maxScore, score)
}

// policy picks the next player input. One in tickEvery steps is a tick;
// the rest are random actions.
type policy struct {
	src         tetris.RandomSource
	tickEvery int
}

var policyActions = [...]tetris.Action{
	tetris.ActionMoveLeft,
	tetris.ActionMoveRight,
	tetris.ActionRotate,
	tetris.ActionDrop,
	tetris.ActionNone,
}

func (p policy) next() (tetris.Action, bool) {
	if p.src.IntN(p.tickEvery) == 0 {
		return tetris.ActionNone, false
	}
	return policyActions[p.src.IntN(len(policyActions))], true
}

// policySeedMix keeps the input stream apart from the piece stream when both
// come from the same -seed.
const policySeedMix = 0x5bd1e9955bd1e995

type simOptions struct {
	steps       int64
	tickEvery int
	seed        uint64
}

// simulate plays games back to back, restarting after each game over, until
// ctx is done or opts.steps engine calls have been made.
func simulate(ctx context.Context, game *tetris.Game, t *tally, opts simOptions) (driver.LoopStats, time.Duration) {
	session := driver.NewSession(game)
	loop := driver.NewLoop(session)
	p := policy{src: tetris.NewRandomSource(opts.seed ^ policySeedMix), tickEvery: max(opts.tickEvery, 1)}

	start := time.Now()
	for step := int64(0); opts.steps <= 0 || step < opts.steps; step++ {
		if step%1024 == 0 && ctx.Err() != nil {
			break
		}
		if game.State() == tetris.StateGameOver {
			session.RequestRestart()
		}
		if action, ok := p.next(); ok {
			loop.Apply(action)
		} else {
			loop.Tick()
		}
	}
	return loop.Stats(), time.Since(start)
}
