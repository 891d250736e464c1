// Package tetris implements the rules engine of a falling-block puzzle game:
// piece geometry, collision checks against settled pieces, row clearing and
// the row-clear score. It owns no timer, window or input handling; a host
// drives it by calling Game.Apply and Game.AdvanceTick serially.
package tetris

import "fmt"

// Square identifies one board cell by row (top is 0) and column (left is 0).
type Square struct {
	Row int
	Col int
}

func (s Square) String() string {
	return fmt.Sprintf("(%d,%d)", s.Row, s.Col)
}

// key packs the square into a single integer for the occupancy index.
func (s Square) key() uint64 {
	return uint64(uint32(s.Row))<<32 | uint64(uint32(s.Col))
}

// Cell is a settled square together with the kind of piece that left it.
type Cell struct {
	Square
	Kind Kind
}
