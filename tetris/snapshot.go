package tetris

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// Snapshot is a copy of everything a renderer needs after a step. It shares
// no memory with the Game.
type Snapshot struct {
	ID          string
	Width       int
	Height      int
	SpawnColumn int
	State       State
	Score       int

	Settled    []Cell
	ActiveKind Kind
	Active     []Square
	NextKind   Kind
	Next       []Square
	Previous   []Square
	ErasedRows []int
}

// Snapshot copies the observable state of the game.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		ID:          g.id,
		Width:       g.width,
		Height:      g.height,
		SpawnColumn: g.spawnCol,
		State:       g.state,
		Score:       g.score,
		Previous:    g.PreviousSquares(),
		ErasedRows:  g.ErasedRows(),
	}
	for _, p := range g.settled {
		for _, sq := range p.OccupiedSquares() {
			s.Settled = append(s.Settled, Cell{Square: sq, Kind: p.kind})
		}
	}
	if g.active != nil {
		s.ActiveKind = g.active.kind
		s.Active = g.active.OccupiedSquares()
	}
	if g.next != nil {
		s.NextKind = g.next.kind
		s.Next = g.next.OccupiedSquares()
	}
	return s
}

// Grid renders settled and active squares into a [row][col] matrix of kinds;
// empty cells are KindNone.
func (s Snapshot) Grid() [][]Kind {
	grid := make([][]Kind, s.Height)
	for r := range grid {
		grid[r] = make([]Kind, s.Width)
	}
	put := func(sq Square, k Kind) {
		if sq.Row >= 0 && sq.Row < s.Height && sq.Col >= 0 && sq.Col < s.Width {
			grid[sq.Row][sq.Col] = k
		}
	}
	for _, c := range s.Settled {
		put(c.Square, c.Kind)
	}
	if s.State == StatePlaying {
		for _, sq := range s.Active {
			put(sq, s.ActiveKind)
		}
	}
	return grid
}

// Digest hashes the board contents, pieces, score and state. The game ID is
// left out so that two games driven by the same seed and inputs match.
func (s Snapshot) Digest() uint64 {
	d := xxhash.New()
	var buf [8]byte
	putInt := func(v int) {
		binary.LittleEndian.PutUint64(buf[:], uint64(int64(v)))
		_, _ = d.Write(buf[:])
	}

	putInt(s.Width)
	putInt(s.Height)
	putInt(int(s.State))
	putInt(s.Score)
	for r, row := range s.Grid() {
		for c, k := range row {
			if k != KindNone {
				putInt(r)
				putInt(c)
				putInt(int(k))
			}
		}
	}
	putInt(int(s.ActiveKind))
	for _, sq := range s.Active {
		putInt(sq.Row)
		putInt(sq.Col)
	}
	putInt(int(s.NextKind))
	for _, sq := range s.Next {
		putInt(sq.Row)
		putInt(sq.Col)
	}
	return d.Sum64()
}
