// Package chess provides the core chess value types: sides, pieces, squares and moves.
package chess

// Side represents the colour of a piece or player.
type Side int

const (
	White Side = iota
	Black
)

// String returns the string representation of a side.
func (s Side) String() string {
	if s == White {
		return "White"
	}
	return "Black"
}

// Flip returns the opposite side.
func (s Side) Flip() Side {
	if s == White {
		return Black
	}
	return White
}

// PawnDirection returns +1 for White, -1 for Black.
func (s Side) PawnDirection() int {
	if s == White {
		return 1
	}
	return -1
}

// PieceKind represents a chess piece type without colour.
type PieceKind int

const (
	NoKind PieceKind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// NonPawnKinds lists the piece kinds that carry a notation letter, king first.
var NonPawnKinds = []PieceKind{King, Queen, Rook, Bishop, Knight}

// PromotionKinds lists the kinds a pawn may promote to, in the order they are generated.
var PromotionKinds = []PieceKind{Queen, Rook, Bishop, Knight}

// String returns the string representation of a piece kind.
func (k PieceKind) String() string {
	names := []string{"None", "Pawn", "Knight", "Bishop", "Rook", "Queen", "King"}
	if k >= 0 && int(k) < len(names) {
		return names[k]
	}
	return "Unknown"
}

// Letter returns the uppercase English letter of a piece kind.
func (k PieceKind) Letter() byte {
	letters := []byte{' ', 'P', 'N', 'B', 'R', 'Q', 'K'}
	if k >= 0 && int(k) < len(letters) {
		return letters[k]
	}
	return '?'
}

// Value returns the material value used for scoring (king counts 0).
func (k PieceKind) Value() int {
	switch k {
	case Pawn:
		return 1
	case Knight, Bishop:
		return 3
	case Rook:
		return 5
	case Queen:
		return 9
	default:
		return 0
	}
}

// Piece is a coloured piece. The zero value is NoPiece.
type Piece int

const (
	NoPiece Piece = iota
	WhitePawn
	WhiteKnight
	WhiteBishop
	WhiteRook
	WhiteQueen
	WhiteKing
	BlackPawn
	BlackKnight
	BlackBishop
	BlackRook
	BlackQueen
	BlackKing
	NumPieces
)

// AllPieces lists the twelve real pieces.
var AllPieces = []Piece{
	WhitePawn, WhiteKnight, WhiteBishop, WhiteRook, WhiteQueen, WhiteKing,
	BlackPawn, BlackKnight, BlackBishop, BlackRook, BlackQueen, BlackKing,
}

const fenGlyphs = " PNBRQKpnbrqk"

// NewPiece creates a coloured piece.
func NewPiece(kind PieceKind, side Side) Piece {
	if kind == NoKind {
		return NoPiece
	}
	if side == White {
		return Piece(kind)
	}
	return Piece(int(kind) + 6)
}

// PieceFromFEN converts a FEN glyph to a piece.
func PieceFromFEN(c byte) (Piece, bool) {
	for i := 1; i < len(fenGlyphs); i++ {
		if fenGlyphs[i] == c {
			return Piece(i), true
		}
	}
	return NoPiece, false
}

// Kind returns the piece kind.
func (p Piece) Kind() PieceKind {
	switch {
	case p == NoPiece || p >= NumPieces:
		return NoKind
	case p <= WhiteKing:
		return PieceKind(p)
	default:
		return PieceKind(int(p) - 6)
	}
}

// Side returns the side owning the piece. Undefined for NoPiece.
func (p Piece) Side() Side {
	if p >= BlackPawn {
		return Black
	}
	return White
}

// FEN returns the FEN glyph: uppercase for White, lowercase for Black.
func (p Piece) FEN() byte {
	if p <= NoPiece || p >= NumPieces {
		return ' '
	}
	return fenGlyphs[p]
}

// String returns a readable piece name such as "White Knight".
func (p Piece) String() string {
	if p == NoPiece {
		return "None"
	}
	return p.Side().String() + " " + p.Kind().String()
}
