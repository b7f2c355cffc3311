package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lgbarn/chessgame-go/internal/chess"
	"github.com/lgbarn/chessgame-go/internal/errors"
)

// InitialFEN is the FEN string for the standard starting position.
const InitialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// NewPositionFromFEN creates a position from a six-field FEN string.
// Castling rights whose king or rook is not on its home square are dropped.
func NewPositionFromFEN(fen string) (*Position, error) {
	parts := strings.Split(fen, " ")
	if len(parts) != 6 {
		return nil, fmt.Errorf("expected 6 fields, got %d: %w", len(parts), errors.ErrInvalidFEN)
	}

	p := newEmptyPosition()
	if err := parsePiecePlacement(p, parts[0]); err != nil {
		return nil, err
	}
	if err := parseSideToMove(p, parts[1]); err != nil {
		return nil, err
	}
	if err := parseCastlingRights(p, parts[2]); err != nil {
		return nil, err
	}
	if err := parseEnPassant(p, parts[3]); err != nil {
		return nil, err
	}
	if err := parseClocks(p, parts[4], parts[5]); err != nil {
		return nil, err
	}

	p.recordHistory()
	return p, nil
}

// parsePiecePlacement parses the piece placement field of a FEN string.
func parsePiecePlacement(p *Position, placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != chess.BoardSize {
		return fmt.Errorf("expected 8 ranks, got %d: %w", len(ranks), errors.ErrInvalidFEN)
	}
	for i, rank := range ranks {
		y := chess.BoardSize - 1 - i
		x := 0
		for j := 0; j < len(rank); j++ {
			c := rank[j]
			if c >= '1' && c <= '8' {
				x += int(c - '0')
				continue
			}
			piece, ok := chess.PieceFromFEN(c)
			if !ok {
				return fmt.Errorf("invalid piece character: %c: %w", c, errors.ErrInvalidFEN)
			}
			if x >= chess.BoardSize {
				return fmt.Errorf("rank %d overflows: %w", y+1, errors.ErrInvalidFEN)
			}
			p.put(chess.SquareAt(x, y), piece)
			x++
		}
		if x != chess.BoardSize {
			return fmt.Errorf("rank %d has %d files: %w", y+1, x, errors.ErrInvalidFEN)
		}
	}
	return nil
}

// parseSideToMove parses the side to move field.
func parseSideToMove(p *Position, field string) error {
	switch field {
	case "w":
		p.sideToMove = chess.White
	case "b":
		p.sideToMove = chess.Black
	default:
		return fmt.Errorf("invalid side to move: %s: %w", field, errors.ErrInvalidFEN)
	}
	return nil
}

// parseCastlingRights parses the castling availability field.
func parseCastlingRights(p *Position, field string) error {
	if field == "-" {
		return nil
	}
	for i := 0; i < len(field); i++ {
		found := false
		for c := chess.WhiteKingside; c < chess.NumCastleMoveTypes; c++ {
			if c.Info().FENChar == field[i] {
				found = true
				if p.castleSetupIntact(c) {
					p.castling = p.castling.With(c)
				}
			}
		}
		if !found {
			return fmt.Errorf("invalid castling character: %c: %w", field[i], errors.ErrInvalidFEN)
		}
	}
	return nil
}

func (p *Position) castleSetupIntact(c chess.CastleMoveType) bool {
	info := c.Info()
	return p.board[info.KingFrom] == chess.NewPiece(chess.King, info.Side) &&
		p.board[info.RookFrom] == info.RookPiece
}

// parseEnPassant parses the en passant target square field.
func parseEnPassant(p *Position, field string) error {
	if field == "-" {
		return nil
	}
	sq, ok := chess.ParseSquare(field)
	if !ok {
		return fmt.Errorf("invalid en passant square: %s: %w", field, errors.ErrInvalidFEN)
	}
	p.epTarget = sq
	return nil
}

// parseClocks parses the halfmove clock and fullmove number fields.
func parseClocks(p *Position, half, full string) error {
	h, err := strconv.Atoi(half)
	if err != nil || h < 0 {
		return fmt.Errorf("invalid halfmove clock: %s: %w", half, errors.ErrInvalidFEN)
	}
	f, err := strconv.Atoi(full)
	if err != nil || f < 1 {
		return fmt.Errorf("invalid fullmove number: %s: %w", full, errors.ErrInvalidFEN)
	}
	p.halfMoves, p.fullMoves = h, f
	return nil
}

// FEN returns the position as a six-field FEN string.
func (p *Position) FEN() string {
	var sb strings.Builder
	p.writeFEN(&sb)
	fmt.Fprintf(&sb, " %d %d", p.halfMoves, p.fullMoves)
	return sb.String()
}

// Signature returns the repetition key: FEN without the two counters.
func (p *Position) Signature() string {
	var sb strings.Builder
	p.writeFEN(&sb)
	return sb.String()
}

func (p *Position) writeFEN(sb *strings.Builder) {
	writePiecePlacement(sb, p)
	sb.WriteByte(' ')
	if p.sideToMove == chess.White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}
	sb.WriteByte(' ')
	sb.WriteString(p.castling.String())
	sb.WriteByte(' ')
	sb.WriteString(p.epTarget.String())
}

// writePiecePlacement writes the piece placement to the builder.
func writePiecePlacement(sb *strings.Builder, p *Position) {
	empty := 0
	for _, sq := range chess.FENOrder {
		if piece := p.board[sq]; piece != chess.NoPiece {
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(piece.FEN())
		} else {
			empty++
		}
		if sq.File() == chess.BoardSize-1 {
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			if sq.Rank() != 0 {
				sb.WriteByte('/')
			}
		}
	}
}

// SmallFEN returns a compact form without separators or counters. Empty runs continue
// across ranks, the empty run after the last piece is left out, and the string ends
// with 'w' only when White is to move.
func (p *Position) SmallFEN() string {
	var sb strings.Builder
	empty := 0
	for _, sq := range chess.FENOrder {
		piece := p.board[sq]
		if piece == chess.NoPiece {
			empty++
			continue
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
			empty = 0
		}
		sb.WriteByte(piece.FEN())
	}
	if p.sideToMove == chess.White {
		sb.WriteByte('w')
	}
	return sb.String()
}

// ASCII returns an 8x8 grid of FEN glyphs with '_' for empty squares, rank 8 first.
func (p *Position) ASCII() string {
	var sb strings.Builder
	for _, sq := range chess.FENOrder {
		if piece := p.board[sq]; piece != chess.NoPiece {
			sb.WriteByte(piece.FEN())
		} else {
			sb.WriteByte('_')
		}
		if sq.File() == chess.BoardSize-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
