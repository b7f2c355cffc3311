package engine

import (
	"github.com/lgbarn/chessgame-go/internal/chess"
)

// FiftyMoveLimit is the half-move clock value at which the fifty-move rule applies.
const FiftyMoveLimit = 100

// IsFiftyMoveDraw returns true if 50 full moves were made without a pawn move or capture.
func (p *Position) IsFiftyMoveDraw() bool {
	return p.halfMoves >= FiftyMoveLimit
}

// IsThreefoldRepetition returns true if the current position occurred more than twice
// since the last pawn move.
func (p *Position) IsThreefoldRepetition() bool {
	return p.RepetitionCount() > 2
}

// IsStalemate returns true if the side to move is not in check and has no legal move.
func (p *Position) IsStalemate() bool {
	return p.KingState(p.sideToMove, false) == Normal && !p.HasLegalMoves()
}

// HasInsufficientMaterial returns true if the position has insufficient
// mating material for either side.
// Insufficient material includes:
// - K vs K
// - K+B vs K
// - K+N vs K
// - K+B vs K+B (same color bishops)
func (p *Position) HasInsufficientMaterial() bool {
	for _, kind := range []chess.PieceKind{chess.Pawn, chess.Rook, chess.Queen} {
		if p.pieces[chess.NewPiece(kind, chess.White)] != 0 || p.pieces[chess.NewPiece(kind, chess.Black)] != 0 {
			return false
		}
	}

	whiteBishops, blackBishops := p.pieces[chess.WhiteBishop], p.pieces[chess.BlackBishop]
	whiteMinors := whiteBishops.Len() + p.pieces[chess.WhiteKnight].Len()
	blackMinors := blackBishops.Len() + p.pieces[chess.BlackKnight].Len()
	if whiteMinors >= 2 || blackMinors >= 2 {
		return false
	}

	// K vs K, K+B vs K, K+N vs K
	if whiteMinors == 0 || blackMinors == 0 {
		return true
	}

	// K+B vs K+B (same color bishops)
	if whiteBishops.Len() == 1 && blackBishops.Len() == 1 {
		return whiteBishops.First().IsLight() == blackBishops.First().IsLight()
	}
	return false
}

// Score returns the material balance from White's point of view.
func (p *Position) Score() int {
	score := 0
	for _, piece := range chess.AllPieces {
		value := piece.Kind().Value() * p.pieces[piece].Len()
		if piece.Side() == chess.White {
			score += value
		} else {
			score -= value
		}
	}
	return score
}

// Perft counts the leaf nodes of the legal move tree to the given depth.
func Perft(p *Position, depth int) int {
	if depth <= 0 {
		return 1
	}
	moves := p.LegalMoves()
	if depth == 1 {
		return len(moves)
	}
	nodes := 0
	for _, m := range moves {
		p.Try(m, func() {
			nodes += Perft(p, depth-1)
		})
	}
	return nodes
}

// Divide returns the perft count below each legal move, keyed by coordinate notation.
func Divide(p *Position, depth int) map[string]int {
	out := make(map[string]int)
	for _, m := range p.LegalMoves() {
		p.Try(m, func() {
			out[m.String()] = Perft(p, depth-1)
		})
	}
	return out
}
