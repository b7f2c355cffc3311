package notation

import (
	"fmt"
	"strings"

	"github.com/lgbarn/chessgame-go/internal/chess"
	"github.com/lgbarn/chessgame-go/internal/errors"
)

// Mapping assigns a notation symbol to each non-pawn piece kind. Pawns never have a
// symbol. A Mapping is immutable once built and may be shared freely.
type Mapping struct {
	symbols [chess.King + 1]string
}

// NewMapping builds a mapping from the king, queen, rook, bishop and knight symbols.
// Every symbol must be non-empty.
func NewMapping(king, queen, rook, bishop, knight string) (*Mapping, error) {
	m := &Mapping{}
	for kind, symbol := range map[chess.PieceKind]string{
		chess.King: king, chess.Queen: queen, chess.Rook: rook, chess.Bishop: bishop, chess.Knight: knight,
	} {
		if symbol == "" {
			return nil, fmt.Errorf("empty symbol for %s: %w", kind, errors.ErrInvalidConfig)
		}
		m.symbols[kind] = symbol
	}
	return m, nil
}

func mustMapping(king, queen, rook, bishop, knight string) *Mapping {
	m, err := NewMapping(king, queen, rook, bishop, knight)
	if err != nil {
		panic(err)
	}
	return m
}

// Symbol returns the symbol of kind, or "" for pawns.
func (m *Mapping) Symbol(kind chess.PieceKind) string {
	if kind == chess.Pawn || kind == chess.NoKind || kind > chess.King {
		return ""
	}
	return m.symbols[kind]
}

// Kind returns the piece kind whose symbol is exactly symbol.
func (m *Mapping) Kind(symbol string) (chess.PieceKind, bool) {
	for _, kind := range chess.NonPawnKinds {
		if m.symbols[kind] == symbol {
			return kind, true
		}
	}
	return chess.NoKind, false
}

// prefix returns the kind whose symbol starts s and the symbol itself. When symbols
// overlap (Russian uses "Кр" for the king and "К" for the knight) the longest wins.
// A string without a piece prefix is a pawn move.
func (m *Mapping) prefix(s string) (chess.PieceKind, string) {
	kind, best := chess.Pawn, ""
	for _, k := range chess.NonPawnKinds {
		if sym := m.symbols[k]; strings.HasPrefix(s, sym) && len(sym) > len(best) {
			kind, best = k, sym
		}
	}
	return kind, best
}

// promotionSuffix strips a trailing "=X" and returns the promotion kind.
func (m *Mapping) promotionSuffix(s string) (string, chess.PieceKind) {
	if !strings.Contains(s, "=") {
		return s, chess.NoKind
	}
	for _, k := range chess.NonPawnKinds {
		if suffix := "=" + m.symbols[k]; strings.HasSuffix(s, suffix) {
			return strings.TrimSuffix(s, suffix), k
		}
	}
	return s, chess.NoKind
}
