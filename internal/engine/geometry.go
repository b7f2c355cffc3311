package engine

import "github.com/lgbarn/chessgame-go/internal/chess"

// Geometry holds the occupancy-independent target tables. It is built once and only read
// afterwards, so a single instance is shared by every Position.
type Geometry struct {
	king   [chess.NumSquares]chess.SquareSet
	knight [chess.NumSquares]chess.SquareSet
	pawn   [2][chess.NumSquares]chess.SquareSet

	bishopRays [chess.NumSquares][][]chess.Square
	rookRays   [chess.NumSquares][][]chess.Square
	queenRays  [chess.NumSquares][][]chess.Square
}

var (
	diagonals = [][2]int{{1, 1}, {-1, 1}, {-1, -1}, {1, -1}}
	straights = [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	kingSteps = [][2]int{{1, 1}, {-1, 1}, {-1, -1}, {1, -1}, {1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	jumps     = [][2]int{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
)

var sharedGeometry = NewGeometry()

// NewGeometry builds the target tables.
func NewGeometry() *Geometry {
	g := &Geometry{}
	for sq := chess.A1; sq < chess.NumSquares; sq++ {
		x, y := sq.File(), sq.Rank()

		for _, d := range kingSteps {
			if to := chess.SquareAt(x+d[0], y+d[1]); to != chess.NoSquare {
				g.king[sq] = g.king[sq].With(to)
			}
		}
		if sq == chess.E1 || sq == chess.E8 {
			g.king[sq] = g.king[sq].With(chess.SquareAt(x+2, y)).With(chess.SquareAt(x-2, y))
		}

		for _, d := range jumps {
			if to := chess.SquareAt(x+d[0], y+d[1]); to != chess.NoSquare {
				g.knight[sq] = g.knight[sq].With(to)
			}
		}

		g.bishopRays[sq] = rays(x, y, diagonals)
		g.rookRays[sq] = rays(x, y, straights)
		g.queenRays[sq] = append(rays(x, y, diagonals), rays(x, y, straights)...)

		if y > 0 && y < chess.BoardSize-1 {
			g.pawn[chess.White][sq] = pawnTargets(x, y, chess.White)
			g.pawn[chess.Black][sq] = pawnTargets(x, y, chess.Black)
		}
	}
	return g
}

// rays walks each direction outward until the board edge. Empty rays are dropped.
func rays(x, y int, dirs [][2]int) [][]chess.Square {
	var out [][]chess.Square
	for _, d := range dirs {
		var ray []chess.Square
		for i := 1; ; i++ {
			to := chess.SquareAt(x+d[0]*i, y+d[1]*i)
			if to == chess.NoSquare {
				break
			}
			ray = append(ray, to)
		}
		if len(ray) > 0 {
			out = append(out, ray)
		}
	}
	return out
}

func pawnTargets(x, y int, side chess.Side) chess.SquareSet {
	dir := side.PawnDirection()
	var set chess.SquareSet
	for _, dx := range []int{-1, 0, 1} {
		if to := chess.SquareAt(x+dx, y+dir); to != chess.NoSquare {
			set = set.With(to)
		}
	}
	home := 1
	if side == chess.Black {
		home = chess.BoardSize - 2
	}
	if y == home {
		set = set.With(chess.SquareAt(x, y+2*dir))
	}
	return set
}

// KingOrKnightTargets returns the fixed target set for a king or knight on sq.
func (g *Geometry) KingOrKnightTargets(sq chess.Square, kind chess.PieceKind) chess.SquareSet {
	if kind == chess.King {
		return g.king[sq]
	}
	return g.knight[sq]
}

// PawnTargets returns the push and capture squares of a pawn of side on sq.
func (g *Geometry) PawnTargets(sq chess.Square, side chess.Side) chess.SquareSet {
	return g.pawn[side][sq]
}

// Rays returns the ordered rays of a sliding piece kind on sq.
func (g *Geometry) Rays(sq chess.Square, kind chess.PieceKind) [][]chess.Square {
	switch kind {
	case chess.Bishop:
		return g.bishopRays[sq]
	case chess.Rook:
		return g.rookRays[sq]
	case chess.Queen:
		return g.queenRays[sq]
	default:
		return nil
	}
}
