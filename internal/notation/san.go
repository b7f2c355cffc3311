package notation

import (
	"regexp"
	"strings"

	"github.com/lgbarn/chessgame-go/internal/chess"
	"github.com/lgbarn/chessgame-go/internal/engine"
	"github.com/lgbarn/chessgame-go/internal/errors"
)

var sanBody = regexp.MustCompile(`^([a-h])?([1-8])?(x)?([a-h][1-8])$`)

func formatSAN(p *engine.Position, mapping *Mapping, m chess.Move) string {
	var sb strings.Builder
	piece := p.PieceAt(m.From)

	if c, ok := chess.DetermineCastle(m.From, m.To, piece); ok {
		sb.WriteString(c.Notation())
	} else {
		capture := isCapture(p, m)
		if piece.Kind() == chess.Pawn {
			if capture {
				sb.WriteByte(m.From.FileChar())
			}
		} else {
			sb.WriteString(mapping.Symbol(piece.Kind()))
			sb.WriteString(disambiguation(p.LegalMovesTo(piece, m.To), m.From))
		}
		if capture {
			sb.WriteByte('x')
		}
		sb.WriteString(m.To.String())
	}

	writeSuffix(&sb, p, mapping, m)
	return sb.String()
}

// disambiguation returns the from-square qualifier needed when several pieces of the
// same kind can reach the target: the file if that is unique, else the rank, else
// the whole square.
func disambiguation(candidates []chess.Move, from chess.Square) string {
	if len(candidates) < 2 {
		return ""
	}
	var sameFile, sameRank int
	for _, c := range candidates {
		if c.From.File() == from.File() {
			sameFile++
		}
		if c.From.Rank() == from.Rank() {
			sameRank++
		}
	}
	switch {
	case sameFile == 1:
		return string(from.FileChar())
	case sameRank == 1:
		return string(from.RankChar())
	default:
		return from.String()
	}
}

// sanToken is the decoded form of a SAN string before it is matched to a move.
type sanToken struct {
	kind      chess.PieceKind
	file      int // -1 when absent
	rank      int // -1 when absent
	target    chess.Square
	promotion chess.PieceKind
}

func scanSAN(p *engine.Position, mapping *Mapping, s string) (sanToken, bool) {
	tok := sanToken{kind: chess.Pawn, file: -1, rank: -1}

	if len(s) == 2 {
		sq, ok := chess.ParseSquare(s)
		tok.target = sq
		return tok, ok
	}

	s = trimCheck(s)
	if c, ok := castleToken(p, s); ok {
		tok.kind = chess.King
		tok.target = c.Info().KingTo
		return tok, true
	}

	kind, symbol := mapping.prefix(s)
	tok.kind = kind
	s, tok.promotion = mapping.promotionSuffix(s[len(symbol):])

	match := sanBody.FindStringSubmatch(s)
	if match == nil {
		return tok, false
	}
	if match[1] != "" {
		tok.file = int(match[1][0] - chess.FileBase)
	}
	if match[2] != "" {
		tok.rank = int(match[2][0] - chess.RankBase)
	}
	tok.target, _ = chess.ParseSquare(match[4])
	return tok, true
}

func parseSAN(p *engine.Position, mapping *Mapping, s string) (chess.Move, error) {
	tok, ok := scanSAN(p, mapping, s)
	if !ok {
		return chess.Move{}, errors.ErrIllegalMove
	}

	candidates := p.LegalMovesTo(chess.NewPiece(tok.kind, p.SideToMove()), tok.target)
	if len(candidates) == 0 {
		return chess.Move{}, errors.ErrIllegalMove
	}
	if tok.promotion != chess.NoKind {
		candidates = filterMoves(candidates, func(m chess.Move) bool { return m.Promotion == tok.promotion })
	}
	if len(candidates) == 1 {
		return candidates[0], nil
	}
	if tok.file >= 0 {
		candidates = filterMoves(candidates, func(m chess.Move) bool { return m.From.File() == tok.file })
	}
	if tok.rank >= 0 {
		candidates = filterMoves(candidates, func(m chess.Move) bool { return m.From.Rank() == tok.rank })
	}
	if len(candidates) != 1 {
		return chess.Move{}, errors.ErrIllegalMove
	}
	return candidates[0], nil
}

func filterMoves(moves []chess.Move, keep func(chess.Move) bool) []chess.Move {
	var out []chess.Move
	for _, m := range moves {
		if keep(m) {
			out = append(out, m)
		}
	}
	return out
}
