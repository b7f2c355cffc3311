package engine

import (
	"sort"

	"github.com/lgbarn/chessgame-go/internal/chess"
)

// KingState classifies the safety of a king at a snapshot.
type KingState int

const (
	Normal KingState = iota
	Check
	Mate
)

// String returns the string representation of a king state.
func (s KingState) String() string {
	switch s {
	case Check:
		return "Check"
	case Mate:
		return "Mate"
	default:
		return "Normal"
	}
}

// KingState returns the state of side's king. With checkMate false a checked king is
// reported as Check without searching for escapes.
func (p *Position) KingState(side chess.Side, checkMate bool) KingState {
	king := p.KingSquare(side)
	if king == chess.NoSquare || !p.IsAttacked(king, side.Flip()) {
		return Normal
	}
	if checkMate && side == p.sideToMove && !p.hasEscape() {
		return Mate
	}
	return Check
}

// KingStateAfter returns side's king state after m is played, leaving the position unchanged.
func (p *Position) KingStateAfter(side chess.Side, m chess.Move, checkMate bool) KingState {
	var state KingState
	p.Try(m, func() {
		state = p.KingState(side, checkMate)
	})
	return state
}

// SquaresAttackingKing returns the squares of the enemy pieces giving check to side's king.
func (p *Position) SquaresAttackingKing(side chess.Side) []chess.Square {
	king := p.KingSquare(side)
	if king == chess.NoSquare {
		return nil
	}
	return p.attacksOn(king).fromSet(side.Flip()).Squares()
}

// LegalMoves returns every legal move for the side to move, sorted.
func (p *Position) LegalMoves() []chess.Move {
	var moves []chess.Move
	for _, from := range p.Occupied().Squares() {
		if p.board[from].Side() != p.sideToMove {
			continue
		}
		for _, to := range p.targets().from(from).Squares() {
			moves = p.appendLegal(moves, from, to)
		}
	}
	sortMoves(moves)
	return moves
}

// LegalMovesFrom returns the legal moves of the piece on from.
func (p *Position) LegalMovesFrom(from chess.Square) []chess.Move {
	piece := p.board[from]
	if piece == chess.NoPiece || piece.Side() != p.sideToMove {
		return nil
	}
	var moves []chess.Move
	for _, to := range p.targets().from(from).Squares() {
		moves = p.appendLegal(moves, from, to)
	}
	sortMoves(moves)
	return moves
}

// LegalMovesTo returns the legal moves of any piece equal to piece that land on target.
// Notation disambiguation is built on this.
func (p *Position) LegalMovesTo(piece chess.Piece, target chess.Square) []chess.Move {
	if piece == chess.NoPiece || piece.Side() != p.sideToMove {
		return nil
	}
	q := targetQuery{pos: p, to: target}
	var moves []chess.Move
	for _, from := range p.pieces[piece].Squares() {
		if piece.Kind() == chess.Pawn && abs(target.File()-from.File()) >= 2 {
			continue
		}
		for _, to := range q.from(from).Squares() {
			moves = p.appendLegal(moves, from, to)
		}
	}
	sortMoves(moves)
	return moves
}

// IsLegal reports whether m is legal, including its promotion field.
func (p *Position) IsLegal(m chess.Move) bool {
	if !m.From.IsValid() || !m.To.IsValid() {
		return false
	}
	piece := p.board[m.From]
	if piece == chess.NoPiece || piece.Side() != p.sideToMove {
		return false
	}
	q := targetQuery{pos: p, to: m.To}
	if q.from(m.From) == 0 {
		return false
	}
	for _, legal := range p.appendLegal(nil, m.From, m.To) {
		if legal == m {
			return true
		}
	}
	return false
}

// HasLegalMoves returns true if the side to move has at least one legal move.
func (p *Position) HasLegalMoves() bool {
	for _, from := range p.Occupied().Squares() {
		if p.board[from].Side() != p.sideToMove {
			continue
		}
		for _, to := range p.targets().from(from).Squares() {
			if len(p.appendLegal(nil, from, to)) > 0 {
				return true
			}
		}
	}
	return false
}

// appendLegal adds the move from -> to when it passes the king-safety and castling checks.
// A promotion adds all four promotion moves.
func (p *Position) appendLegal(moves []chess.Move, from, to chess.Square) []chess.Move {
	piece := p.board[from]
	m := chess.NewMove(from, to)
	if piece.Kind() == chess.Pawn && (to.Rank() == 0 || to.Rank() == chess.BoardSize-1) {
		m.Promotion = chess.Queen
	}

	if p.KingStateAfter(p.sideToMove, m, false) != Normal {
		return moves
	}
	if p.isIllegalCastle(from, to, piece) {
		return moves
	}

	if !m.IsPromotion() {
		return append(moves, m)
	}
	for _, kind := range chess.PromotionKinds {
		moves = append(moves, chess.NewPromotion(from, to, kind))
	}
	return moves
}

// isIllegalCastle rejects castling out of check or through the rook's destination square.
func (p *Position) isIllegalCastle(from, to chess.Square, piece chess.Piece) bool {
	c, ok := chess.DetermineCastle(from, to, piece)
	if !ok {
		return false
	}
	enemy := p.sideToMove.Flip()
	if p.IsAttacked(p.KingSquare(p.sideToMove), enemy) {
		return true
	}
	return p.IsAttacked(c.Info().RookTo, enemy)
}

// hasEscape reports whether the side to move has a move leaving its king safe.
func (p *Position) hasEscape() bool {
	for _, from := range p.Occupied().Squares() {
		piece := p.board[from]
		if piece.Side() != p.sideToMove {
			continue
		}
		for _, to := range p.targets().from(from).Squares() {
			if p.isIllegalCastle(from, to, piece) {
				continue
			}
			if p.KingStateAfter(p.sideToMove, chess.NewMove(from, to), false) == Normal {
				return true
			}
		}
	}
	return false
}

func sortMoves(moves []chess.Move) {
	sort.Slice(moves, func(i, j int) bool { return moves[i].Less(moves[j]) })
}
