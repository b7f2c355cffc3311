package engine

import "github.com/lgbarn/chessgame-go/internal/chess"

// targetQuery computes pseudo-legal destinations. A query can be narrowed to a single
// destination and restricted to attacks, which is how check detection uses it.
type targetQuery struct {
	pos        *Position
	to         chess.Square
	attackOnly bool
}

func (p *Position) targets() targetQuery {
	return targetQuery{pos: p, to: chess.NoSquare}
}

func (p *Position) attacksOn(sq chess.Square) targetQuery {
	return targetQuery{pos: p, to: sq, attackOnly: true}
}

// PseudoLegalTargets returns the destinations of the piece on from, ignoring king safety.
// An empty square yields an empty set.
func (p *Position) PseudoLegalTargets(from chess.Square) chess.SquareSet {
	return p.targets().from(from)
}

// IsAttacked reports whether any piece of by attacks sq.
func (p *Position) IsAttacked(sq chess.Square, by chess.Side) bool {
	return p.attacksOn(sq).any(by)
}

func (q targetQuery) narrow(set chess.SquareSet) chess.SquareSet {
	if q.to == chess.NoSquare {
		return set
	}
	if set.Has(q.to) {
		return chess.SquareSet(0).With(q.to)
	}
	return 0
}

func (q targetQuery) from(from chess.Square) chess.SquareSet {
	p := q.pos
	piece := p.board[from]
	switch piece.Kind() {
	case chess.NoKind:
		return 0
	case chess.Pawn:
		return q.pawnTargets(from, piece)
	case chess.Knight, chess.King:
		return q.kingOrKnightTargets(from, piece)
	default:
		return q.slidingTargets(from, piece)
	}
}

func (q targetQuery) pawnTargets(from chess.Square, piece chess.Piece) chess.SquareSet {
	p := q.pos
	var out chess.SquareSet
	for _, to := range q.narrow(p.geo.PawnTargets(from, piece.Side())).Squares() {
		target := p.board[to]
		switch {
		case abs(to.Rank()-from.Rank()) == 2:
			between := chess.SquareAt(to.File(), to.Rank()-piece.Side().PawnDirection())
			if !q.attackOnly && target == chess.NoPiece && p.IsEmpty(between) {
				out = out.With(to)
			}
		case to.File() != from.File():
			if (target != chess.NoPiece && target.Side() != piece.Side()) ||
				(target == chess.NoPiece && q.attackOnly) ||
				p.IsEnPassant(from, to) {
				out = out.With(to)
			}
		default:
			if !q.attackOnly && target == chess.NoPiece {
				out = out.With(to)
			}
		}
	}
	return out
}

func (q targetQuery) kingOrKnightTargets(from chess.Square, piece chess.Piece) chess.SquareSet {
	p := q.pos
	var out chess.SquareSet
	for _, to := range q.narrow(p.geo.KingOrKnightTargets(from, piece.Kind())).Squares() {
		if piece.Kind() == chess.King && abs(from.File()-to.File()) == 2 {
			if c, ok := chess.DetermineCastle(from, to, piece); ok && !q.attackOnly && p.castlePathClear(c) {
				out = out.With(to)
			}
			continue
		}
		if target := p.board[to]; target == chess.NoPiece || target.Side() != piece.Side() {
			out = out.With(to)
		}
	}
	return out
}

func (q targetQuery) slidingTargets(from chess.Square, piece chess.Piece) chess.SquareSet {
	p := q.pos
	var out chess.SquareSet
	for _, ray := range p.geo.Rays(from, piece.Kind()) {
		for _, to := range ray {
			target := p.board[to]
			if (target == chess.NoPiece || target.Side() != piece.Side()) &&
				(q.to == chess.NoSquare || q.to == to) {
				out = out.With(to)
			}
			if target != chess.NoPiece {
				break
			}
		}
	}
	return out
}

// castlePathClear checks the right, the empty squares and the rook on its home square.
func (p *Position) castlePathClear(c chess.CastleMoveType) bool {
	if !p.castling.Has(c) {
		return false
	}
	info := c.Info()
	for _, sq := range info.Empty {
		if !p.IsEmpty(sq) {
			return false
		}
	}
	return p.board[info.RookFrom] == info.RookPiece
}

// any reports whether some piece of side has a target.
func (q targetQuery) any(side chess.Side) bool {
	for _, from := range q.pos.Occupied().Squares() {
		if q.pos.board[from].Side() == side && q.from(from) != 0 {
			return true
		}
	}
	return false
}

// fromSet returns the squares of side's pieces that have at least one target.
func (q targetQuery) fromSet(side chess.Side) chess.SquareSet {
	var out chess.SquareSet
	for _, from := range q.pos.Occupied().Squares() {
		if q.pos.board[from].Side() == side && q.from(from) != 0 {
			out = out.With(from)
		}
	}
	return out
}
