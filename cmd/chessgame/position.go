// position.go - Position inspection, move playing and perft
package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/lgbarn/chessgame-go/internal/config"
	"github.com/lgbarn/chessgame-go/internal/engine"
	"github.com/lgbarn/chessgame-go/internal/game"
)

// positionRequest describes a -fen/-moves/-perft invocation.
type positionRequest struct {
	fen   string
	moves string
	perft int
}

func (r positionRequest) active() bool {
	return r.fen != "" || r.moves != "" || r.perft > 0
}

// runPosition plays the requested moves and prints the board, the FEN, the
// legal moves and the result, or only the perft count when one is asked for.
func runPosition(w io.Writer, req positionRequest, cfg *config.Config) error {
	g := game.New()
	if req.fen != "" {
		var err error
		if g, err = game.NewFromFEN(req.fen); err != nil {
			return err
		}
	}
	if err := g.SetLanguage(cfg.Language); err != nil {
		return err
	}
	if req.moves != "" {
		if err := g.PlayMoves(cfg.Output.Notation, req.moves); err != nil {
			return err
		}
	}

	if req.perft > 0 {
		_, err := fmt.Fprintf(w, "perft(%d) = %d\n", req.perft, engine.Perft(g.Position(), req.perft))
		return err
	}

	legal := make([]string, 0, len(g.LegalMoves()))
	for _, m := range g.LegalMoves() {
		s, err := g.Notation(cfg.Output.Notation, m)
		if err != nil {
			return err
		}
		legal = append(legal, s)
	}

	var sb strings.Builder
	sb.WriteString(g.BigASCII(cfg.Perspective))
	fmt.Fprintf(&sb, "FEN: %s\n", g.FEN())
	fmt.Fprintf(&sb, "Legal moves (%d): %s\n", len(legal), strings.Join(legal, " "))
	if r := g.Result(); r != nil {
		fmt.Fprintf(&sb, "Result: %s (%s)\n", r.Token(), r)
	} else {
		fmt.Fprintf(&sb, "%s to move\n", g.SideToMove())
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
