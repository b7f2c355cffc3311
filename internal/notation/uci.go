package notation

import (
	"strings"

	"github.com/lgbarn/chessgame-go/internal/chess"
	"github.com/lgbarn/chessgame-go/internal/errors"
)

// FormatUCI renders m as from, to and a lowercase promotion letter, e.g. "e7e8q".
// Castling is written as the king's move.
func FormatUCI(m chess.Move) string {
	s := m.From.String() + m.To.String()
	if m.IsPromotion() {
		s += uciLetters.Symbol(m.Promotion)
	}
	return s
}

// ParseUCI decodes a UCI move string. Only the shape is validated; callers check
// legality against a position. Promotion letters are accepted in either case.
func ParseUCI(s string) (chess.Move, error) {
	if len(s) != 4 && len(s) != 5 {
		return chess.Move{}, errors.ErrIllegalMove
	}
	from, ok := chess.ParseSquare(s[0:2])
	if !ok {
		return chess.Move{}, errors.ErrIllegalMove
	}
	to, ok := chess.ParseSquare(s[2:4])
	if !ok {
		return chess.Move{}, errors.ErrIllegalMove
	}
	m := chess.NewMove(from, to)
	if len(s) == 5 {
		kind, ok := uciLetters.Kind(strings.ToLower(s[4:]))
		if !ok || kind == chess.King {
			return chess.Move{}, errors.ErrIllegalMove
		}
		m.Promotion = kind
	}
	return m, nil
}
