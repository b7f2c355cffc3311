package engine

import (
	"testing"

	"github.com/lgbarn/chessgame-go/internal/chess"
	"github.com/lgbarn/chessgame-go/internal/errors"
	"github.com/lgbarn/chessgame-go/internal/testutil"
)

func TestNewPositionFromFEN(t *testing.T) {
	tests := []struct {
		name    string
		fen     string
		checkFn func(*Position) bool
	}{
		{
			name: "initial position",
			fen:  InitialFEN,
			checkFn: func(p *Position) bool {
				return p.PieceAt(chess.E1) == chess.WhiteKing &&
					p.PieceAt(chess.E8) == chess.BlackKing &&
					p.PieceAt(chess.E2) == chess.WhitePawn &&
					p.PieceAt(chess.E7) == chess.BlackPawn &&
					p.SideToMove() == chess.White &&
					p.CastlingRights() == chess.AllCastlingRights
			},
		},
		{
			name: "after 1.e4",
			fen:  "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1",
			checkFn: func(p *Position) bool {
				return p.PieceAt(chess.E4) == chess.WhitePawn &&
					p.IsEmpty(chess.E2) &&
					p.SideToMove() == chess.Black &&
					p.EnPassantTarget() == chess.E3
			},
		},
		{
			name: "no castling rights",
			fen:  "r3k2r/pppppppp/8/8/8/8/PPPPPPPP/R3K2R w - - 0 1",
			checkFn: func(p *Position) bool {
				return p.CastlingRights() == 0
			},
		},
		{
			name: "clocks",
			fen:  "8/5k2/8/8/8/8/5K2/4R3 b - - 17 42",
			checkFn: func(p *Position) bool {
				return p.HalfMoveClock() == 17 && p.FullMoveCount() == 42
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p, err := NewPositionFromFEN(tt.fen)
			if err != nil {
				t.Fatalf("NewPositionFromFEN(%q) error: %v", tt.fen, err)
			}
			if !tt.checkFn(p) {
				t.Errorf("NewPositionFromFEN(%q) produced unexpected position:\n%s", tt.fen, p.ASCII())
			}
		})
	}
}

func TestNewPositionFromFEN_Invalid(t *testing.T) {
	tests := []struct {
		name string
		fen  string
	}{
		{"garbage", "bla"},
		{"five fields", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0"},
		{"seven ranks", "rnbqkbnr/pppppppp/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"},
		{"short rank", "rnbqkbnr/ppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"},
		{"long rank", "rnbqkbnr/pppppppp/9/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"},
		{"bad piece", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNX w KQkq - 0 1"},
		{"bad side", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1"},
		{"bad castling", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQxq - 0 1"},
		{"bad en passant", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq z9 0 1"},
		{"bad halfmove", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - x 1"},
		{"zero fullmove", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 0"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p, err := NewPositionFromFEN(tt.fen)
			testutil.AssertErrorIs(t, err, errors.ErrInvalidFEN)
			testutil.AssertNil(t, p)
		})
	}
}

func TestFEN_RoundTrip(t *testing.T) {
	fens := []string{
		InitialFEN,
		"rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1",
		"rnbqkbnr/pp1ppppp/8/2p5/4P3/8/PPPP1PPP/RNBQKBNR w KQkq c6 0 2",
		"r1bqkb1r/pppp1ppp/2n2n2/4p3/2B1P3/5N2/PPPP1PPP/RNBQK2R w KQkq - 4 4",
		"8/5k2/8/8/8/8/5K2/4R3 w - - 0 1",
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	}

	for _, fen := range fens {
		fen := fen
		t.Run(fen, func(t *testing.T) {
			t.Parallel()
			p, err := NewPositionFromFEN(fen)
			if err != nil {
				t.Fatalf("NewPositionFromFEN(%q) error: %v", fen, err)
			}
			testutil.AssertEqual(t, p.FEN(), fen)
		})
	}
}

func TestFEN_DropsUnbackedCastlingRights(t *testing.T) {
	t.Parallel()
	p, err := NewPositionFromFEN("4rr2/2p1n1R1/pq1pkp2/1N6/BpppN1P1/b5B1/8/3K3Q w KQkq - 0 1")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, p.FEN(), "4rr2/2p1n1R1/pq1pkp2/1N6/BpppN1P1/b5B1/8/3K3Q w - - 0 1")

	p, err = NewPositionFromFEN("r3k3/8/8/8/8/8/8/4K2R w KQkq - 0 1")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, p.CastlingRights().String(), "Kq")
}

func TestNewPosition(t *testing.T) {
	t.Parallel()
	testutil.AssertEqual(t, NewPosition().FEN(), InitialFEN)
}

func TestSmallFEN(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		want string
	}{
		{"initial", InitialFEN, "rnbqkbnrpppppppp32PPPPPPPPRNBQKBNRw"},
		{"black to move", "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1", "rnbqkbnrpppppppp20P11PPPP1PPPRNBQKBNR"},
		{"trailing empties dropped", "4k3/8/8/8/8/8/8/K7 w - - 0 1", "4k51Kw"},
		{"bare kings", "K7/8/7k/8/8/8/8/8 w - - 0 1", "K22kw"},
		{"last square occupied", "8/8/8/8/8/8/8/K6k b - - 0 1", "56K6k"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p, err := NewPositionFromFEN(tt.fen)
			testutil.AssertNoError(t, err)
			testutil.AssertEqual(t, p.SmallFEN(), tt.want)
		})
	}
}

func TestASCII(t *testing.T) {
	t.Parallel()
	p := NewPosition()
	p.Play(chess.NewMove(chess.E2, chess.E4), true)
	p.Play(chess.NewMove(chess.E7, chess.E6), true)

	want := "rnbqkbnr\n" +
		"pppp_ppp\n" +
		"____p___\n" +
		"________\n" +
		"____P___\n" +
		"________\n" +
		"PPPP_PPP\n" +
		"RNBQKBNR\n"
	testutil.AssertEqual(t, p.ASCII(), want)
	testutil.AssertEqual(t, p.SideToMove(), chess.White)
	testutil.AssertEqual(t, p.EnPassantTarget(), chess.NoSquare)
	testutil.AssertEqual(t, p.FullMoveCount(), 2)
}

func BenchmarkNewPositionFromFEN(b *testing.B) {
	for name, fen := range benchFENs {
		b.Run(name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_, _ = NewPositionFromFEN(fen)
			}
		})
	}
}
