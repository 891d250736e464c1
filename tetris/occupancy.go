package tetris

import "github.com/kamstrup/intmap"

// occupancy is a lookup of settled squares derived from the settled pieces.
// It is rebuilt whenever the settled set changes and never edited on its own.
type occupancy struct {
	cells     *intmap.Map[uint64, Kind]
	rowCounts []int
}

func newOccupancy(height int) *occupancy {
	return &occupancy{
		cells:     intmap.New[uint64, Kind](256),
		rowCounts: make([]int, height),
	}
}

func (o *occupancy) reset() {
	o.cells.Clear()
	clear(o.rowCounts)
}

func (o *occupancy) add(p *Piece) {
	for _, sq := range p.OccupiedSquares() {
		o.cells.Put(sq.key(), p.kind)
		if sq.Row >= 0 && sq.Row < len(o.rowCounts) {
			o.rowCounts[sq.Row]++
		}
	}
}

func (o *occupancy) rebuild(pieces []*Piece) {
	o.reset()
	for _, p := range pieces {
		o.add(p)
	}
}

func (o *occupancy) occupied(sq Square) bool {
	_, ok := o.cells.Get(sq.key())
	return ok
}

// anyOccupied reports whether any of squares, shifted by (dRow, dCol), is settled.
func (o *occupancy) anyOccupied(squares []Square, dRow, dCol int) bool {
	for _, sq := range squares {
		if o.occupied(Square{Row: sq.Row + dRow, Col: sq.Col + dCol}) {
			return true
		}
	}
	return false
}

// fullRows returns, top to bottom, the rows whose settled count equals width.
func (o *occupancy) fullRows(width int) []int {
	var rows []int
	for y, n := range o.rowCounts {
		if n == width {
			rows = append(rows, y)
		}
	}
	return rows
}
