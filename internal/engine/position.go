// Package engine provides the chess position, move generation, legality and draw rules.
package engine

import (
	"sort"

	"golang.org/x/exp/maps"

	"github.com/lgbarn/chessgame-go/internal/chess"
)

// Position is the mutable game state. It is not safe for concurrent use; use Clone to
// explore alternative continuations.
type Position struct {
	geo *Geometry

	board  [chess.NumSquares]chess.Piece
	pieces [chess.NumPieces]chess.SquareSet

	sideToMove chess.Side
	castling   chess.CastlingRights
	epTarget   chess.Square
	halfMoves  int
	fullMoves  int

	// Signature (FEN without counters) to occurrence count.
	history map[string]int
}

// undo records everything apply changed so that revert restores the exact prior state.
type undo struct {
	move       chess.Move
	moved      chess.Piece
	captured   chess.Piece
	capturedOn chess.Square
	castled    bool
	castle     chess.CastleMoveType
	castling   chess.CastlingRights
	epTarget   chess.Square
	halfMoves  int
	fullMoves  int
}

func newEmptyPosition() *Position {
	return &Position{
		geo:       sharedGeometry,
		epTarget:  chess.NoSquare,
		fullMoves: 1,
		history:   make(map[string]int),
	}
}

var backRank = []chess.PieceKind{
	chess.Rook, chess.Knight, chess.Bishop, chess.Queen,
	chess.King, chess.Bishop, chess.Knight, chess.Rook,
}

// NewPosition creates the standard starting position.
func NewPosition() *Position {
	p := newEmptyPosition()
	for x, kind := range backRank {
		p.put(chess.SquareAt(x, 0), chess.NewPiece(kind, chess.White))
		p.put(chess.SquareAt(x, 1), chess.WhitePawn)
		p.put(chess.SquareAt(x, 6), chess.BlackPawn)
		p.put(chess.SquareAt(x, 7), chess.NewPiece(kind, chess.Black))
	}
	p.sideToMove = chess.White
	p.castling = chess.AllCastlingRights
	p.recordHistory()
	return p
}

func (p *Position) put(sq chess.Square, piece chess.Piece) {
	if piece == chess.NoPiece {
		return
	}
	p.board[sq] = piece
	p.pieces[piece] = p.pieces[piece].With(sq)
}

func (p *Position) remove(sq chess.Square) {
	piece := p.board[sq]
	if piece == chess.NoPiece {
		return
	}
	p.pieces[piece] = p.pieces[piece].Without(sq)
	p.board[sq] = chess.NoPiece
}

// Clone returns a deep, independent copy including the repetition history.
func (p *Position) Clone() *Position {
	c := *p
	c.history = maps.Clone(p.history)
	return &c
}

// Geometry returns the shared target tables.
func (p *Position) Geometry() *Geometry {
	return p.geo
}

// PieceAt returns the piece on sq, or NoPiece.
func (p *Position) PieceAt(sq chess.Square) chess.Piece {
	return p.board[sq]
}

// IsEmpty reports whether sq is unoccupied.
func (p *Position) IsEmpty(sq chess.Square) bool {
	return p.board[sq] == chess.NoPiece
}

// Squares returns the set of squares holding piece.
func (p *Position) Squares(piece chess.Piece) chess.SquareSet {
	return p.pieces[piece]
}

// Occupied returns every occupied square.
func (p *Position) Occupied() chess.SquareSet {
	var set chess.SquareSet
	for _, piece := range chess.AllPieces {
		set |= p.pieces[piece]
	}
	return set
}

// KingSquare returns the square of side's king, or NoSquare if it is missing.
func (p *Position) KingSquare(side chess.Side) chess.Square {
	return p.pieces[chess.NewPiece(chess.King, side)].First()
}

// SideToMove returns the side whose turn it is.
func (p *Position) SideToMove() chess.Side {
	return p.sideToMove
}

// CastlingRights returns the remaining castling rights.
func (p *Position) CastlingRights() chess.CastlingRights {
	return p.castling
}

// CanCastle reports whether the castling right is still present.
func (p *Position) CanCastle(c chess.CastleMoveType) bool {
	return p.castling.Has(c)
}

// EnPassantTarget returns the en-passant target square, or NoSquare.
func (p *Position) EnPassantTarget() chess.Square {
	return p.epTarget
}

// HalfMoveClock returns the number of half-moves since the last pawn move or capture.
func (p *Position) HalfMoveClock() int {
	return p.halfMoves
}

// FullMoveCount returns the full-move number; it starts at 1 and increments after Black moves.
func (p *Position) FullMoveCount() int {
	return p.fullMoves
}

// IsEnPassant reports whether from -> to is an en-passant capture.
func (p *Position) IsEnPassant(from, to chess.Square) bool {
	if p.epTarget == chess.NoSquare || to != p.epTarget {
		return false
	}
	if p.board[from].Kind() != chess.Pawn {
		return false
	}
	return from.File() != to.File() && p.IsEmpty(to)
}

// Play applies the move without checking legality and returns the captured piece
// (NoPiece if none). With updateHistory the repetition history is maintained: it is
// cleared by a pawn move and the new position is counted.
func (p *Position) Play(m chess.Move, updateHistory bool) chess.Piece {
	u := p.apply(m)
	if updateHistory {
		if u.moved.Kind() == chess.Pawn {
			clear(p.history)
		}
		p.recordHistory()
	}
	return u.captured
}

// Try plays m, calls fn, then rolls the position back exactly. History is not touched.
func (p *Position) Try(m chess.Move, fn func()) {
	u := p.apply(m)
	defer p.revert(u)
	fn()
}

func (p *Position) apply(m chess.Move) undo {
	u := undo{
		move:       m,
		moved:      p.board[m.From],
		capturedOn: chess.NoSquare,
		castling:   p.castling,
		epTarget:   p.epTarget,
		halfMoves:  p.halfMoves,
		fullMoves:  p.fullMoves,
	}
	piece := u.moved
	enPassant := p.IsEnPassant(m.From, m.To)

	p.remove(m.From)
	if enPassant {
		capSq := chess.SquareAt(m.To.File(), m.From.Rank())
		u.captured, u.capturedOn = p.board[capSq], capSq
		p.remove(capSq)
	} else if p.board[m.To] != chess.NoPiece {
		u.captured, u.capturedOn = p.board[m.To], m.To
		p.remove(m.To)
	}

	if m.Promotion != chess.NoKind {
		p.put(m.To, chess.NewPiece(m.Promotion, piece.Side()))
	} else {
		p.put(m.To, piece)
	}

	if c, ok := chess.DetermineCastle(m.From, m.To, piece); ok {
		info := c.Info()
		rook := p.board[info.RookFrom]
		p.remove(info.RookFrom)
		p.put(info.RookTo, rook)
		u.castled, u.castle = true, c
	}

	p.epTarget = chess.NoSquare
	if piece.Kind() == chess.Pawn && abs(m.To.Rank()-m.From.Rank()) == 2 {
		p.epTarget = chess.SquareAt(m.To.File(), m.To.Rank()-piece.Side().PawnDirection())
	}

	p.erodeCastlingRights(piece, u.captured, m)

	p.sideToMove = p.sideToMove.Flip()
	if p.sideToMove == chess.White {
		p.fullMoves++
	}
	if piece.Kind() == chess.Pawn || u.captured != chess.NoPiece {
		p.halfMoves = 0
	} else {
		p.halfMoves++
	}
	return u
}

// erodeCastlingRights removes rights lost by a king move, a rook leaving its home square
// or a rook captured on its home square.
func (p *Position) erodeCastlingRights(piece, captured chess.Piece, m chess.Move) {
	for c := chess.WhiteKingside; c < chess.NumCastleMoveTypes; c++ {
		info := c.Info()
		switch {
		case piece == chess.NewPiece(chess.King, info.Side),
			piece == info.RookPiece && m.From == info.RookFrom,
			captured == info.RookPiece && m.To == info.RookFrom:
			p.castling = p.castling.Without(c)
		}
	}
}

func (p *Position) revert(u undo) {
	m := u.move
	p.sideToMove = p.sideToMove.Flip()

	p.remove(m.To)
	p.put(m.From, u.moved)
	if u.captured != chess.NoPiece {
		p.put(u.capturedOn, u.captured)
	}
	if u.castled {
		info := u.castle.Info()
		rook := p.board[info.RookTo]
		p.remove(info.RookTo)
		p.put(info.RookFrom, rook)
	}

	p.castling = u.castling
	p.epTarget = u.epTarget
	p.halfMoves = u.halfMoves
	p.fullMoves = u.fullMoves
}

func (p *Position) recordHistory() {
	p.history[p.Signature()]++
}

// RepetitionCount returns how often the current position occurred since the last pawn move.
func (p *Position) RepetitionCount() int {
	return p.history[p.Signature()]
}

// Signatures returns the recorded position signatures in sorted order.
func (p *Position) Signatures() []string {
	keys := maps.Keys(p.history)
	sort.Strings(keys)
	return keys
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
