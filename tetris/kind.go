package tetris

// Kind is one of the seven tetromino shapes.
type Kind uint8

const (
	KindNone Kind = iota
	KindI
	KindO
	KindT
	KindS
	KindZ
	KindL
	KindJ
)

// Kinds lists the playable kinds in draw order.
var Kinds = [7]Kind{KindI, KindO, KindT, KindS, KindZ, KindL, KindJ}

const patternSize = 4

// pattern is a 4x4 occupancy grid indexed [row][col].
type pattern [patternSize][patternSize]bool

var patterns = [...]pattern{
	KindI: {
		{false, true, false, false},
		{false, true, false, false},
		{false, true, false, false},
		{false, true, false, false},
	},
	KindO: {
		{false, false, false, false},
		{false, true, true, false},
		{false, true, true, false},
		{false, false, false, false},
	},
	KindT: {
		{false, false, false, false},
		{false, true, true, true},
		{false, false, true, false},
		{false, false, false, false},
	},
	KindS: {
		{false, false, false, false},
		{false, false, true, true},
		{false, true, true, false},
		{false, false, false, false},
	},
	KindZ: {
		{false, false, false, false},
		{false, true, true, false},
		{false, false, true, true},
		{false, false, false, false},
	},
	KindL: {
		{false, true, false, false},
		{false, true, false, false},
		{false, true, true, false},
		{false, false, false, false},
	},
	KindJ: {
		{false, false, true, false},
		{false, false, true, false},
		{false, true, true, false},
		{false, false, false, false},
	},
}

func (k Kind) String() string {
	switch k {
	case KindI:
		return "I"
	case KindO:
		return "O"
	case KindT:
		return "T"
	case KindS:
		return "S"
	case KindZ:
		return "Z"
	case KindL:
		return "L"
	case KindJ:
		return "J"
	default:
		return "None"
	}
}

// Valid reports whether k is one of the seven playable kinds.
func (k Kind) Valid() bool {
	return k >= KindI && k <= KindJ
}

// canonical returns the unrotated pattern; KindNone and unknown values are empty.
func (k Kind) canonical() pattern {
	if !k.Valid() {
		return pattern{}
	}
	return patterns[k]
}

// rotateOnce turns a pattern 90 degrees clockwise.
func rotateOnce(p pattern) pattern {
	var out pattern
	for r := range patternSize {
		for c := range patternSize {
			out[r][c] = p[patternSize-1-c][r]
		}
	}
	return out
}

// rotated applies n clockwise turns starting from the canonical pattern.
func (k Kind) rotated(n int) pattern {
	p := k.canonical()
	for range n % 4 {
		p = rotateOnce(p)
	}
	return p
}
