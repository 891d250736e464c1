// Package driver feeds a game engine from a host: it turns elapsed time into
// gravity ticks and serializes player actions with those ticks so the engine
// only ever sees one call at a time.
package driver

import (
	"context"
	"math"
	"sync/atomic"
	"time"

	"github.com/plus3/blockfall/tetris"
	"go.uber.org/zap"
)

// DefaultInterval is the gravity interval of the reference game.
const DefaultInterval = 300 * time.Millisecond

// Engine is the part of tetris.Game the loop drives.
type Engine interface {
	Apply(action tetris.Action)
	AdvanceTick()
}

// LoopStats provides statistics about loop execution.
type LoopStats struct {
	Ticks   CallStats
	Actions CallStats
	// Dropped counts submitted actions discarded because the queue was full.
	Dropped int64
}

// CallStats provides timing statistics for one kind of engine call.
type CallStats struct {
	Count         int64
	MinDuration   time.Duration
	MaxDuration   time.Duration
	AvgDuration   time.Duration
	LastDuration  time.Duration
	TotalDuration time.Duration
}

type callStatsInternal struct {
	count         int64
	minDuration   time.Duration
	maxDuration   time.Duration
	totalDuration time.Duration
	lastDuration  time.Duration
}

func newCallStats() *callStatsInternal {
	return &callStatsInternal{minDuration: time.Duration(1<<63 - 1)}
}

func (s *callStatsInternal) record(d time.Duration) {
	s.count++
	s.lastDuration = d
	s.totalDuration += d
	if d < s.minDuration {
		s.minDuration = d
	}
	if d > s.maxDuration {
		s.maxDuration = d
	}
}

func (s *callStatsInternal) export() CallStats {
	out := CallStats{
		Count:         s.count,
		MaxDuration:   s.maxDuration,
		LastDuration:  s.lastDuration,
		TotalDuration: s.totalDuration,
	}
	if s.count > 0 {
		out.MinDuration = s.minDuration
		out.AvgDuration = s.totalDuration / time.Duration(s.count)
	}
	return out
}

// Loop drives an Engine. Apply, Once and the OnUpdate hooks must all run on
// the same goroutine; Run provides that goroutine itself and lets other
// goroutines Submit actions into it.
type Loop struct {
	engine   Engine
	interval time.Duration
	logger   *zap.Logger

	accumulator time.Duration
	actions     chan tetris.Action
	onUpdate    []func()

	tickStats   *callStatsInternal
	actionStats *callStatsInternal
	dropped     atomic.Int64
}

// LoopOption configures a Loop.
type LoopOption func(*Loop)

// WithInterval sets the gravity interval; non-positive values are ignored.
func WithInterval(d time.Duration) LoopOption {
	return func(l *Loop) {
		if d > 0 {
			l.interval = d
		}
	}
}

func WithLogger(logger *zap.Logger) LoopOption {
	return func(l *Loop) {
		l.logger = logger
	}
}

// WithQueueSize sets how many submitted actions may wait for Run.
func WithQueueSize(n int) LoopOption {
	return func(l *Loop) {
		l.actions = make(chan tetris.Action, n)
	}
}

// NewLoop creates a loop for the given engine.
func NewLoop(engine Engine, opts ...LoopOption) *Loop {
	l := &Loop{
		engine:      engine,
		interval:    DefaultInterval,
		logger:      zap.NewNop(),
		actions:     make(chan tetris.Action, 32),
		tickStats:   newCallStats(),
		actionStats: newCallStats(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Interval returns the gravity interval.
func (l *Loop) Interval() time.Duration {
	return l.interval
}

// OnUpdate registers fn to run after every engine call the loop makes.
// Renderers hook in here.
func (l *Loop) OnUpdate(fn func()) {
	l.onUpdate = append(l.onUpdate, fn)
}

// Apply forwards one action to the engine immediately.
func (l *Loop) Apply(action tetris.Action) {
	start := time.Now()
	l.engine.Apply(action)
	l.actionStats.record(time.Since(start))
	l.notify()
}

// Tick advances the engine by one gravity step immediately.
func (l *Loop) Tick() {
	start := time.Now()
	l.engine.AdvanceTick()
	l.tickStats.record(time.Since(start))
	l.notify()
}

// Once adds dt seconds of elapsed time and fires one tick per whole interval
// that has passed. It returns the number of ticks fired.
func (l *Loop) Once(dt float64) int {
	l.accumulator += time.Duration(math.Round(dt * float64(time.Second)))

	fired := 0
	for l.accumulator >= l.interval {
		l.accumulator -= l.interval
		l.Tick()
		fired++
	}
	return fired
}

// ResetClock discards elapsed time that has not produced a tick yet.
func (l *Loop) ResetClock() {
	l.accumulator = 0
}

// Submit queues an action for Run. It never blocks: when the queue is full
// the action is dropped and false is returned.
func (l *Loop) Submit(action tetris.Action) bool {
	select {
	case l.actions <- action:
		return true
	default:
		l.dropped.Add(1)
		l.logger.Warn("action queue full, dropping action", zap.Stringer("action", action))
		return false
	}
}

// Run ticks the engine every interval and applies submitted actions as they
// arrive, until the context is cancelled.
func (l *Loop) Run(ctx context.Context) {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	l.logger.Debug("loop started", zap.Duration("interval", l.interval))
	defer l.logger.Debug("loop stopped")

	for {
		select {
		case <-ctx.Done():
			return
		case action := <-l.actions:
			l.Apply(action)
		case <-ticker.C:
			l.Tick()
		}
	}
}

// Stats returns statistics about engine calls made so far.
func (l *Loop) Stats() LoopStats {
	return LoopStats{
		Ticks:   l.tickStats.export(),
		Actions: l.actionStats.export(),
		Dropped: l.dropped.Load(),
	}
}

func (l *Loop) notify() {
	for _, fn := range l.onUpdate {
		fn()
	}
}
