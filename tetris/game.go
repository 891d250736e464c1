package tetris

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// MinWidth and MinHeight are the smallest boards the spawn box fits on.
	MinWidth  = 6
	MinHeight = patternSize
)

var ErrInvalidDimensions = errors.New("invalid board dimensions")

// Game owns the settled pieces, the active and next pieces and the score.
// It is not safe for concurrent use: the host serializes every call.
type Game struct {
	width     int
	height    int
	spawnCol  int
	random    RandomSource
	logger    *zap.Logger
	observers observers

	id       string
	state    State
	settled  []*Piece
	active   *Piece
	next     *Piece
	score    int
	previous []Square
	erased   []int
	occ      *occupancy
}

// Option configures a Game at construction.
type Option func(*Game)

// WithRandomSource sets the source used to draw piece kinds.
func WithRandomSource(src RandomSource) Option {
	return func(g *Game) {
		g.random = src
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(g *Game) {
		g.logger = logger
	}
}

// WithObserver adds an observer; it may be given more than once.
func WithObserver(obs Observer) Option {
	return func(g *Game) {
		g.observers = append(g.observers, obs)
	}
}

// WithSpawnColumn overrides the column of the spawn box's left edge.
func WithSpawnColumn(col int) Option {
	return func(g *Game) {
		g.spawnCol = col
	}
}

// NewGame returns an idle game on a width x height board. The dimensions
// never change afterwards.
func NewGame(width, height int, opts ...Option) (*Game, error) {
	if width < MinWidth || height < MinHeight {
		return nil, fmt.Errorf("%w: %dx%d, need at least %dx%d",
			ErrInvalidDimensions, width, height, MinWidth, MinHeight)
	}

	g := &Game{
		width:    width,
		height:   height,
		spawnCol: width/2 - 1,
		logger:   zap.NewNop(),
		occ:      newOccupancy(height),
	}
	for _, opt := range opts {
		opt(g)
	}

	if g.spawnCol < 0 || g.spawnCol+patternSize > width {
		return nil, fmt.Errorf("%w: spawn column %d does not fit width %d",
			ErrInvalidDimensions, g.spawnCol, width)
	}
	if g.random == nil {
		g.random = NewRandomSource(uint64(time.Now().UnixNano()))
	}

	return g, nil
}

// StartGame clears the board, draws the active and next pieces and resets
// the score. It may be called at any time to restart.
func (g *Game) StartGame() {
	g.id = uuid.NewString()
	g.settled = nil
	g.occ.reset()
	g.active = g.spawn()
	g.next = g.spawn()
	g.score = 0
	g.previous = nil
	g.erased = g.erased[:0]
	g.state = StatePlaying

	g.logger.Info("game started",
		zap.String("game_id", g.id),
		zap.Int("width", g.width),
		zap.Int("height", g.height),
		zap.Stringer("active", g.active.kind),
		zap.Stringer("next", g.next.kind),
	)
	g.observers.gameStarted(g.id)
}

// Apply performs a player action. Moves that would leave the board or hit a
// settled square are ignored. Outside StatePlaying every action is ignored.
func (g *Game) Apply(action Action) {
	if g.state != StatePlaying {
		return
	}

	g.beginStep()
	switch action {
	case ActionMoveLeft:
		g.shift(-1)
	case ActionMoveRight:
		g.shift(1)
	case ActionRotate:
		g.rotate()
	case ActionDrop:
		g.fall()
	}
}

// AdvanceTick is one gravity step: the active piece moves down a row, or is
// settled when it cannot.
func (g *Game) AdvanceTick() {
	if g.state != StatePlaying {
		return
	}

	g.beginStep()
	g.fall()
}

func (g *Game) beginStep() {
	g.previous = g.active.OccupiedSquares()
	g.erased = g.erased[:0]
}

func (g *Game) shift(dCol int) {
	squares := g.active.OccupiedSquares()
	edge := 0
	if dCol > 0 {
		edge = g.width - 1
	}
	for _, sq := range squares {
		if sq.Col == edge {
			return
		}
	}
	if g.occ.anyOccupied(squares, 0, dCol) {
		return
	}
	g.active.Translate(0, dCol)
}

func (g *Game) rotate() {
	after := g.active.SimulateRotation()
	for _, sq := range after {
		if sq.Col < 0 || sq.Col >= g.width || sq.Row < 0 || sq.Row >= g.height {
			return
		}
	}
	if g.occ.anyOccupied(after, 0, 0) {
		return
	}
	g.active.Rotate()
}

func (g *Game) fall() {
	squares := g.active.OccupiedSquares()
	for _, sq := range squares {
		if sq.Row == g.height-1 {
			g.settle()
			return
		}
	}
	if g.occ.anyOccupied(squares, 1, 0) {
		g.settle()
		return
	}
	g.active.Translate(1, 0)
}

// settle hands the active piece over to the settled set, promotes the next
// piece, clears full rows and checks for a top-out.
func (g *Game) settle() {
	g.previous = nil
	settled := g.active
	g.settled = append(g.settled, settled)
	g.occ.add(settled)
	g.active = g.next
	g.next = g.spawn()

	g.logger.Debug("piece settled",
		zap.String("game_id", g.id),
		zap.Stringer("kind", settled.kind),
		zap.Int("settled", len(g.settled)),
	)
	g.observers.pieceSettled(settled.kind)

	g.clearRows()

	if g.occ.anyOccupied(g.active.OccupiedSquares(), 0, 0) {
		g.state = StateGameOver
		g.logger.Info("game over",
			zap.String("game_id", g.id),
			zap.Int("score", g.score),
			zap.Int("settled", len(g.settled)),
		)
		g.observers.gameOver(g.score)
	}
}

// clearRows erases every full row. Full rows are found on the configuration
// before any erase and erased top to bottom by their original index; each
// erase only moves rows above it, so lower indices stay valid.
func (g *Game) clearRows() {
	full := g.occ.fullRows(g.width)
	if len(full) == 0 {
		return
	}

	for _, y := range full {
		for _, p := range g.settled {
			p.EraseRow(y)
		}
		g.erased = append(g.erased, y)
		g.score++
	}
	g.occ.rebuild(g.settled)

	g.logger.Debug("rows cleared",
		zap.String("game_id", g.id),
		zap.Ints("rows", full),
		zap.Int("score", g.score),
	)
	g.observers.rowsCleared(g.erased)
}

func (g *Game) spawn() *Piece {
	return NewPiece(RandomKind(g.random), 0, g.spawnCol)
}

func (g *Game) Width() int {
	return g.width
}

func (g *Game) Height() int {
	return g.height
}

// SpawnColumn is the left edge of the spawn box, where new pieces appear.
func (g *Game) SpawnColumn() int {
	return g.spawnCol
}

// ID identifies the current game; it changes on every StartGame and is
// empty before the first one.
func (g *Game) ID() string {
	return g.id
}

func (g *Game) State() State {
	return g.state
}

// Score is the total number of rows cleared since StartGame.
func (g *Game) Score() int {
	return g.score
}

// Settled returns the settled pieces in settle order. The pieces are the
// game's own; callers must treat them as read-only.
func (g *Game) Settled() []*Piece {
	return g.settled
}

// Active returns the falling piece, or nil before StartGame.
func (g *Game) Active() *Piece {
	return g.active
}

// Next returns the piece that becomes active after the next settle.
func (g *Game) Next() *Piece {
	return g.next
}

// PreviousSquares returns the active piece's squares before the last step.
// It is empty after a settle.
func (g *Game) PreviousSquares() []Square {
	return append([]Square(nil), g.previous...)
}

// ErasedRows returns the rows cleared by the last step, top to bottom.
func (g *Game) ErasedRows() []int {
	return append([]int(nil), g.erased...)
}
