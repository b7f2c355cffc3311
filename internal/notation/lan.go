package notation

import (
	"regexp"
	"strings"

	"github.com/lgbarn/chessgame-go/internal/chess"
	"github.com/lgbarn/chessgame-go/internal/engine"
	"github.com/lgbarn/chessgame-go/internal/errors"
)

var lanBody = regexp.MustCompile(`^([a-h][1-8])([-x])([a-h][1-8])$`)

func formatLAN(p *engine.Position, mapping *Mapping, m chess.Move) string {
	var sb strings.Builder
	piece := p.PieceAt(m.From)

	if c, ok := chess.DetermineCastle(m.From, m.To, piece); ok {
		sb.WriteString(c.Notation())
	} else {
		sb.WriteString(mapping.Symbol(piece.Kind()))
		sb.WriteString(m.From.String())
		if isCapture(p, m) {
			sb.WriteByte('x')
		} else {
			sb.WriteByte('-')
		}
		sb.WriteString(m.To.String())
	}

	writeSuffix(&sb, p, mapping, m)
	return sb.String()
}

func parseLAN(p *engine.Position, mapping *Mapping, s string) (chess.Move, error) {
	s = trimCheck(s)
	if c, ok := castleToken(p, s); ok {
		info := c.Info()
		m := chess.NewMove(info.KingFrom, info.KingTo)
		if !p.IsLegal(m) {
			return chess.Move{}, errors.ErrIllegalMove
		}
		return m, nil
	}

	kind, symbol := mapping.prefix(s)
	body, promotion := mapping.promotionSuffix(s[len(symbol):])
	match := lanBody.FindStringSubmatch(body)
	if match == nil {
		return chess.Move{}, errors.ErrIllegalMove
	}

	from, _ := chess.ParseSquare(match[1])
	to, _ := chess.ParseSquare(match[3])
	m := chess.NewPromotion(from, to, promotion)
	if !p.IsLegal(m) || p.PieceAt(from).Kind() != kind {
		return chess.Move{}, errors.ErrIllegalMove
	}
	return m, nil
}
