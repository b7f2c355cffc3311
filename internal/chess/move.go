package chess

// Move is a value type identifying a move by its squares and optional promotion.
// Promotion is NoKind unless a pawn reaches the last rank.
type Move struct {
	From      Square
	To        Square
	Promotion PieceKind
}

// NewMove creates a non-promoting move.
func NewMove(from, to Square) Move {
	return Move{From: from, To: to}
}

// NewPromotion creates a promoting move.
func NewPromotion(from, to Square, kind PieceKind) Move {
	return Move{From: from, To: to, Promotion: kind}
}

// IsPromotion returns true if the move carries a promotion piece.
func (m Move) IsPromotion() bool {
	return m.Promotion != NoKind
}

// String returns the coordinate form of the move, e.g. "e7e8Q".
func (m Move) String() string {
	s := m.From.String() + m.To.String()
	if m.IsPromotion() {
		s += string(m.Promotion.Letter())
	}
	return s
}

// Less orders moves by from-square, to-square, then promotion.
func (m Move) Less(o Move) bool {
	if m.From != o.From {
		return m.From < o.From
	}
	if m.To != o.To {
		return m.To < o.To
	}
	return m.Promotion < o.Promotion
}
