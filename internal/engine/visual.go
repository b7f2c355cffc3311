package engine

import (
	"fmt"
	"strings"

	"github.com/lgbarn/chessgame-go/internal/chess"
	"github.com/lgbarn/chessgame-go/internal/errors"
)

// Perspective selects which side is drawn at the bottom of the big ASCII board.
type Perspective int

const (
	WhitePerspective Perspective = iota
	BlackPerspective
	CurrentPlayerPerspective
)

// ParsePerspective converts "white", "black" or "current" to a Perspective.
func ParsePerspective(s string) (Perspective, error) {
	switch strings.ToLower(s) {
	case "", "white", "w":
		return WhitePerspective, nil
	case "black", "b":
		return BlackPerspective, nil
	case "current", "c":
		return CurrentPlayerPerspective, nil
	default:
		return WhitePerspective, fmt.Errorf("unknown perspective %q: %w", s, errors.ErrInvalidConfig)
	}
}

const (
	horizontalLine = "+---+---+---+---+---+---+---+---+\n"
	fileLine       = "  a   b   c   d   e   f   g   h\n"
	flippedFiles   = "  h   g   f   e   d   c   b   a\n"
)

// BigASCII draws the board as a bordered grid with rank labels and a file line.
func (p *Position) BigASCII(perspective Perspective) string {
	flipped := perspective == BlackPerspective ||
		(perspective == CurrentPlayerPerspective && p.sideToMove == chess.Black)

	var sb strings.Builder
	sb.WriteString(horizontalLine)
	for row := 0; row < chess.BoardSize; row++ {
		y := chess.BoardSize - 1 - row
		if flipped {
			y = row
		}
		sb.WriteByte('|')
		for col := 0; col < chess.BoardSize; col++ {
			x := col
			if flipped {
				x = chess.BoardSize - 1 - col
			}
			if piece := p.board[chess.SquareAt(x, y)]; piece != chess.NoPiece {
				sb.WriteByte(' ')
				sb.WriteByte(piece.FEN())
				sb.WriteString(" |")
			} else {
				sb.WriteString("   |")
			}
		}
		fmt.Fprintf(&sb, "  %d\n", y+1)
		sb.WriteString(horizontalLine)
	}
	if flipped {
		sb.WriteString(flippedFiles)
	} else {
		sb.WriteString(fileLine)
	}
	return sb.String()
}
