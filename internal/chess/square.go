package chess

// Square is one of the 64 board cells, numbered file-major then rank (a1=0, a2=1, ... h8=63).
type Square int

// NoSquare marks an absent square, e.g. no en-passant target.
const NoSquare Square = -1

// Constants for board dimensions and coordinates.
const (
	BoardSize = 8
	RankBase  = '1'
	FileBase  = 'a'
)

const (
	A1 Square = iota
	A2
	A3
	A4
	A5
	A6
	A7
	A8
	B1
	B2
	B3
	B4
	B5
	B6
	B7
	B8
	C1
	C2
	C3
	C4
	C5
	C6
	C7
	C8
	D1
	D2
	D3
	D4
	D5
	D6
	D7
	D8
	E1
	E2
	E3
	E4
	E5
	E6
	E7
	E8
	F1
	F2
	F3
	F4
	F5
	F6
	F7
	F8
	G1
	G2
	G3
	G4
	G5
	G6
	G7
	G8
	H1
	H2
	H3
	H4
	H5
	H6
	H7
	H8
	NumSquares
)

// SquareAt returns the square at zero-based file x and rank y, or NoSquare when off the board.
func SquareAt(x, y int) Square {
	if x < 0 || x >= BoardSize || y < 0 || y >= BoardSize {
		return NoSquare
	}
	return Square(x*BoardSize + y)
}

// ParseSquare converts a name like "e4" to a square.
func ParseSquare(name string) (Square, bool) {
	if len(name) != 2 {
		return NoSquare, false
	}
	sq := SquareAt(int(name[0])-FileBase, int(name[1])-RankBase)
	return sq, sq != NoSquare
}

// File returns the zero-based file (0 = a).
func (s Square) File() int {
	return int(s) / BoardSize
}

// Rank returns the zero-based rank (0 = rank 1).
func (s Square) Rank() int {
	return int(s) % BoardSize
}

// FileChar returns the file letter.
func (s Square) FileChar() byte {
	return byte(FileBase + s.File())
}

// RankChar returns the rank digit.
func (s Square) RankChar() byte {
	return byte(RankBase + s.Rank())
}

// IsLight reports whether the square is a light square (a1 is dark).
func (s Square) IsLight() bool {
	return (s.File()+s.Rank())%2 == 1
}

// IsValid reports whether the square is on the board.
func (s Square) IsValid() bool {
	return s >= A1 && s < NumSquares
}

// String returns the algebraic name, e.g. "e4".
func (s Square) String() string {
	if !s.IsValid() {
		return "-"
	}
	return string([]byte{s.FileChar(), s.RankChar()})
}

// FENOrder lists the squares in FEN order: rank 8 down to rank 1, file a to h.
var FENOrder = func() []Square {
	squares := make([]Square, 0, NumSquares)
	for y := BoardSize - 1; y >= 0; y-- {
		for x := 0; x < BoardSize; x++ {
			squares = append(squares, SquareAt(x, y))
		}
	}
	return squares
}()

// SquareSet is a set of squares stored as a 64-bit mask. Iteration is in square order.
type SquareSet uint64

// Has reports whether sq is in the set.
func (s SquareSet) Has(sq Square) bool {
	return s&(1<<uint(sq)) != 0
}

// With returns the set with sq added.
func (s SquareSet) With(sq Square) SquareSet {
	return s | 1<<uint(sq)
}

// Without returns the set with sq removed.
func (s SquareSet) Without(sq Square) SquareSet {
	return s &^ (1 << uint(sq))
}

// Len returns the number of squares in the set.
func (s SquareSet) Len() int {
	n := 0
	for ; s != 0; s &= s - 1 {
		n++
	}
	return n
}

// Squares returns the members in ascending square order.
func (s SquareSet) Squares() []Square {
	out := make([]Square, 0, s.Len())
	for sq := A1; sq < NumSquares; sq++ {
		if s.Has(sq) {
			out = append(out, sq)
		}
	}
	return out
}

// First returns the lowest square in the set, or NoSquare when empty.
func (s SquareSet) First() Square {
	for sq := A1; sq < NumSquares; sq++ {
		if s.Has(sq) {
			return sq
		}
	}
	return NoSquare
}
