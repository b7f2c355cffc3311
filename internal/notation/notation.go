package notation

import (
	"fmt"
	"strings"

	"github.com/lgbarn/chessgame-go/internal/chess"
	"github.com/lgbarn/chessgame-go/internal/engine"
	"github.com/lgbarn/chessgame-go/internal/errors"
)

// Format renders the legal move m in notation t. The mapping supplies the piece
// symbols for SAN and LAN; nil means English. FAN and UCI ignore it.
func Format(p *engine.Position, t Type, mapping *Mapping, m chess.Move) (string, error) {
	if !p.IsLegal(m) {
		return "", fmt.Errorf("move %s: %w", m, errors.ErrIllegalMove)
	}
	if mapping == nil {
		mapping = English
	}

	switch t {
	case SAN:
		return formatSAN(p, mapping, m), nil
	case FAN:
		return formatSAN(p, Figurines, m), nil
	case LAN:
		return formatLAN(p, mapping, m), nil
	case UCI:
		return FormatUCI(m), nil
	}
	return "", fmt.Errorf("notation %s: %w", t, errors.ErrInvalidConfig)
}

// Parse resolves s against the legal moves of p. SAN, LAN and FAN strings that match
// no legal move, or more than one, fail with ErrIllegalMove. UCI is decoded by
// position only and is not checked for legality.
func Parse(p *engine.Position, t Type, mapping *Mapping, s string) (chess.Move, error) {
	if mapping == nil {
		mapping = English
	}

	var (
		m   chess.Move
		err error
	)
	switch t {
	case SAN:
		m, err = parseSAN(p, mapping, s)
	case FAN:
		m, err = parseSAN(p, Figurines, s)
	case LAN:
		m, err = parseLAN(p, mapping, s)
	case UCI:
		m, err = ParseUCI(s)
	default:
		return chess.Move{}, fmt.Errorf("notation %s: %w", t, errors.ErrInvalidConfig)
	}
	if err != nil {
		return chess.Move{}, fmt.Errorf("%s %q: %w", t, s, err)
	}
	return m, nil
}

func isCapture(p *engine.Position, m chess.Move) bool {
	return !p.IsEmpty(m.To) || p.IsEnPassant(m.From, m.To)
}

// writeSuffix appends the promotion and the check or mate marker.
func writeSuffix(sb *strings.Builder, p *engine.Position, mapping *Mapping, m chess.Move) {
	if m.IsPromotion() {
		sb.WriteByte('=')
		sb.WriteString(mapping.Symbol(m.Promotion))
	}
	switch p.KingStateAfter(p.SideToMove().Flip(), m, true) {
	case engine.Check:
		sb.WriteByte('+')
	case engine.Mate:
		sb.WriteByte('#')
	}
}

// trimCheck removes a trailing check or mate marker.
func trimCheck(s string) string {
	return strings.TrimRight(s, "+#")
}

// castleToken returns the castle named by "O-O" or "O-O-O" for the side to move.
func castleToken(p *engine.Position, s string) (chess.CastleMoveType, bool) {
	switch s {
	case "O-O":
		return chess.CastleFor(p.SideToMove(), true), true
	case "O-O-O":
		return chess.CastleFor(p.SideToMove(), false), true
	}
	return 0, false
}
