package chess

// CastleMoveType identifies one of the four castling moves.
type CastleMoveType int

const (
	WhiteKingside CastleMoveType = iota
	WhiteQueenside
	BlackKingside
	BlackQueenside
	NumCastleMoveTypes
)

// CastleInfo describes the fixed geometry of a castling move.
type CastleInfo struct {
	Side      Side
	Kingside  bool
	KingFrom  Square
	KingTo    Square
	RookFrom  Square
	RookTo    Square
	Empty     []Square // squares that must be empty
	RookPiece Piece
	FENChar   byte
}

var castleInfos = [NumCastleMoveTypes]CastleInfo{
	WhiteKingside:  {White, true, E1, G1, H1, F1, []Square{F1, G1}, WhiteRook, 'K'},
	WhiteQueenside: {White, false, E1, C1, A1, D1, []Square{B1, C1, D1}, WhiteRook, 'Q'},
	BlackKingside:  {Black, true, E8, G8, H8, F8, []Square{F8, G8}, BlackRook, 'k'},
	BlackQueenside: {Black, false, E8, C8, A8, D8, []Square{B8, C8, D8}, BlackRook, 'q'},
}

// Info returns the castle geometry.
func (c CastleMoveType) Info() CastleInfo {
	return castleInfos[c]
}

// Notation returns "O-O" or "O-O-O".
func (c CastleMoveType) Notation() string {
	if castleInfos[c].Kingside {
		return "O-O"
	}
	return "O-O-O"
}

// DetermineCastle returns the castle type when piece moving from -> to is a castling king move.
func DetermineCastle(from, to Square, piece Piece) (CastleMoveType, bool) {
	if piece.Kind() != King {
		return 0, false
	}
	for c := WhiteKingside; c < NumCastleMoveTypes; c++ {
		info := castleInfos[c]
		if info.Side == piece.Side() && info.KingFrom == from && info.KingTo == to {
			return c, true
		}
	}
	return 0, false
}

// CastleFor returns the castle type for a side and wing.
func CastleFor(side Side, kingside bool) CastleMoveType {
	switch {
	case side == White && kingside:
		return WhiteKingside
	case side == White:
		return WhiteQueenside
	case kingside:
		return BlackKingside
	default:
		return BlackQueenside
	}
}

// CastlingRights is the set of castle moves still permitted.
type CastlingRights uint8

// AllCastlingRights grants all four castle moves.
const AllCastlingRights CastlingRights = 1<<NumCastleMoveTypes - 1

// Has reports whether the right is present.
func (r CastlingRights) Has(c CastleMoveType) bool {
	return r&(1<<uint(c)) != 0
}

// With returns the rights with c added.
func (r CastlingRights) With(c CastleMoveType) CastlingRights {
	return r | 1<<uint(c)
}

// Without returns the rights with c removed.
func (r CastlingRights) Without(c CastleMoveType) CastlingRights {
	return r &^ (1 << uint(c))
}

// String returns the FEN castling field, "-" when empty.
func (r CastlingRights) String() string {
	if r == 0 {
		return "-"
	}
	var out []byte
	for c := WhiteKingside; c < NumCastleMoveTypes; c++ {
		if r.Has(c) {
			out = append(out, castleInfos[c].FENChar)
		}
	}
	return string(out)
}
