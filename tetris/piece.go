package tetris

// Piece is a tetromino on the board.
//
// A fresh piece is clean: its squares are derived from kind, anchor and
// rotation on every call. EraseRow bakes the remaining squares into an
// explicit list, after which the piece no longer rotates. A piece erased
// down to zero squares stays valid and simply occupies nothing.
type Piece struct {
	kind Kind
	form form
}

// form is either cleanForm or erasedForm.
type form interface {
	isForm()
}

type cleanForm struct {
	anchor   Square
	rotation int
}

type erasedForm struct {
	squares []Square
}

func (cleanForm) isForm()  {}
func (erasedForm) isForm() {}

// NewPiece returns a clean piece of the given kind whose 4x4 pattern box has
// its top-left corner at (row, col).
func NewPiece(kind Kind, row, col int) *Piece {
	return &Piece{
		kind: kind,
		form: cleanForm{anchor: Square{Row: row, Col: col}},
	}
}

func (p *Piece) Kind() Kind {
	return p.kind
}

// Anchor returns the top-left corner of the pattern box. Erased pieces have
// no anchor and report ok=false.
func (p *Piece) Anchor() (Square, bool) {
	if f, ok := p.form.(cleanForm); ok {
		return f.anchor, true
	}
	return Square{}, false
}

// Rotation returns the number of clockwise quarter turns, 0 through 3.
// Erased pieces always report 0.
func (p *Piece) Rotation() int {
	if f, ok := p.form.(cleanForm); ok {
		return f.rotation
	}
	return 0
}

// Erased reports whether the piece carries an explicit square list.
func (p *Piece) Erased() bool {
	_, ok := p.form.(erasedForm)
	return ok
}

// OccupiedSquares returns the squares the piece covers, in row-major order
// for clean pieces. The returned slice is owned by the caller.
func (p *Piece) OccupiedSquares() []Square {
	switch f := p.form.(type) {
	case cleanForm:
		return squaresOf(p.kind, f.anchor, f.rotation)
	case erasedForm:
		out := make([]Square, len(f.squares))
		copy(out, f.squares)
		return out
	default:
		return nil
	}
}

// SimulateRotation returns what OccupiedSquares would return after Rotate,
// without changing the piece.
func (p *Piece) SimulateRotation() []Square {
	if f, ok := p.form.(cleanForm); ok {
		return squaresOf(p.kind, f.anchor, f.rotation+1)
	}
	return p.OccupiedSquares()
}

// Translate shifts the piece. Bounds are the caller's concern.
func (p *Piece) Translate(dRow, dCol int) {
	switch f := p.form.(type) {
	case cleanForm:
		f.anchor.Row += dRow
		f.anchor.Col += dCol
		p.form = f
	case erasedForm:
		for i := range f.squares {
			f.squares[i].Row += dRow
			f.squares[i].Col += dCol
		}
	}
}

// Rotate advances the rotation by one clockwise quarter turn. Bounds are the
// caller's concern; erased pieces ignore it.
func (p *Piece) Rotate() {
	if f, ok := p.form.(cleanForm); ok {
		f.rotation = (f.rotation + 1) % 4
		p.form = f
	}
}

// EraseRow removes every square on row y and moves the squares above it down
// by one row. Squares below y keep their position.
func (p *Piece) EraseRow(y int) {
	current := p.OccupiedSquares()
	kept := make([]Square, 0, len(current))
	for _, sq := range current {
		switch {
		case sq.Row < y:
			kept = append(kept, Square{Row: sq.Row + 1, Col: sq.Col})
		case sq.Row > y:
			kept = append(kept, sq)
		}
	}
	p.form = erasedForm{squares: kept}
}

// Clone returns an independent copy of the piece.
func (p *Piece) Clone() *Piece {
	c := &Piece{kind: p.kind, form: p.form}
	if f, ok := p.form.(erasedForm); ok {
		c.form = erasedForm{squares: append([]Square(nil), f.squares...)}
	}
	return c
}

func squaresOf(kind Kind, anchor Square, rotation int) []Square {
	grid := kind.rotated(rotation)
	out := make([]Square, 0, 4)
	for r := range patternSize {
		for c := range patternSize {
			if grid[r][c] {
				out = append(out, Square{Row: anchor.Row + r, Col: anchor.Col + c})
			}
		}
	}
	return out
}
