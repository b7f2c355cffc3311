package engine

import (
	"testing"

	"github.com/lgbarn/chessgame-go/internal/chess"
	"github.com/lgbarn/chessgame-go/internal/testutil"
)

// snapshot captures everything a move can touch.
type snapshot struct {
	FEN        string
	ASCII      string
	Castling   chess.CastlingRights
	EnPassant  chess.Square
	HalfMoves  int
	FullMoves  int
	Signatures []string
	Pieces     [chess.NumPieces]chess.SquareSet
}

func takeSnapshot(p *Position) snapshot {
	s := snapshot{
		FEN:        p.FEN(),
		ASCII:      p.ASCII(),
		Castling:   p.CastlingRights(),
		EnPassant:  p.EnPassantTarget(),
		HalfMoves:  p.HalfMoveClock(),
		FullMoves:  p.FullMoveCount(),
		Signatures: p.Signatures(),
	}
	for _, piece := range chess.AllPieces {
		s.Pieces[piece] = p.Squares(piece)
	}
	return s
}

func TestTry_RestoresPosition(t *testing.T) {
	for name, fen := range oracleFENs {
		fen := fen
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			p := mustPosition(t, fen)
			before := takeSnapshot(p)
			mover := p.SideToMove()
			for _, m := range p.LegalMoves() {
				p.Try(m, func() {
					if p.SideToMove() == mover {
						t.Errorf("Try(%v): side to move not flipped", m)
					}
				})
				testutil.AssertEqual(t, takeSnapshot(p), before, "after Try(%v)", m)
			}
		})
	}
}

func TestLegalMoves_NeverLeaveKingAttacked(t *testing.T) {
	for name, fen := range oracleFENs {
		fen := fen
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			p := mustPosition(t, fen)
			mover := p.SideToMove()
			for _, m := range p.LegalMoves() {
				p.Try(m, func() {
					if p.IsAttacked(p.KingSquare(mover), mover.Flip()) {
						t.Errorf("legal move %v leaves the king attacked", m)
					}
				})
			}
		})
	}
}

func TestPseudoLegalRejections_AreExplained(t *testing.T) {
	for name, fen := range oracleFENs {
		fen := fen
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			p := mustPosition(t, fen)
			mover := p.SideToMove()
			legal := make(map[[2]chess.Square]bool)
			for _, m := range p.LegalMoves() {
				legal[[2]chess.Square{m.From, m.To}] = true
			}
			for _, from := range p.Occupied().Squares() {
				if p.PieceAt(from).Side() != mover {
					continue
				}
				for _, to := range p.PseudoLegalTargets(from).Squares() {
					if legal[[2]chess.Square{from, to}] {
						continue
					}
					if _, castle := chess.DetermineCastle(from, to, p.PieceAt(from)); castle {
						continue
					}
					var attacked bool
					p.Try(chess.NewMove(from, to), func() {
						attacked = p.IsAttacked(p.KingSquare(mover), mover.Flip())
					})
					if !attacked {
						t.Errorf("pseudo-legal %v-%v rejected without leaving the king attacked", from, to)
					}
				}
			}
		})
	}
}

func TestClone_IsIndependent(t *testing.T) {
	t.Parallel()
	p := NewPosition()
	c := p.Clone()
	c.Play(chess.NewMove(chess.G1, chess.F3), true)

	testutil.AssertEqual(t, p.FEN(), InitialFEN)
	testutil.AssertEqual(t, len(p.Signatures()), 1)
	testutil.AssertEqual(t, len(c.Signatures()), 2)
	testutil.AssertEqual(t, c.PieceAt(chess.F3), chess.WhiteKnight)
}

func TestPlay_ReturnsCapturedPiece(t *testing.T) {
	t.Parallel()
	p := mustPosition(t, "4k3/8/8/3r4/8/8/3R4/4K3 w - - 0 1")
	testutil.AssertEqual(t, p.Play(chess.NewMove(chess.D2, chess.D5), true), chess.BlackRook)
	testutil.AssertEqual(t, p.Play(chess.NewMove(chess.E8, chess.E7), true), chess.NoPiece)
	testutil.AssertEqual(t, p.Squares(chess.BlackRook), chess.SquareSet(0))
}

func TestPlay_Promotion(t *testing.T) {
	t.Parallel()
	p := mustPosition(t, "8/P6k/8/8/8/8/8/K7 w - - 0 1")
	p.Play(chess.NewPromotion(chess.A7, chess.A8, chess.Knight), true)
	testutil.AssertEqual(t, p.PieceAt(chess.A8), chess.WhiteKnight)
	testutil.AssertEqual(t, p.Squares(chess.WhitePawn), chess.SquareSet(0))
	testutil.AssertEqual(t, p.FEN(), "N7/7k/8/8/8/8/8/K7 b - - 0 1")
}

func TestKingSquare(t *testing.T) {
	t.Parallel()
	p := NewPosition()
	testutil.AssertEqual(t, p.KingSquare(chess.White), chess.E1)
	testutil.AssertEqual(t, p.KingSquare(chess.Black), chess.E8)
	testutil.AssertEqual(t, p.Occupied().Len(), 32)
}
