package processing

import (
	"strconv"

	"github.com/lgbarn/chessgame-go/internal/config"
	"github.com/lgbarn/chessgame-go/internal/engine"
	"github.com/lgbarn/chessgame-go/internal/game"
)

// Annotate adds the annotations enabled in cfg to g.
func Annotate(g *game.Game, cfg *config.AnnotationConfig) error {
	if cfg == nil {
		return nil
	}

	if cfg.AddPlyCount {
		g.SetTag(game.TagPlyCount, strconv.Itoa(g.PlyCount()))
	}

	if cfg.FixResultTags {
		if v := g.Tag(game.TagResult); v == "" || v == "*" {
			g.SetTag(game.TagResult, g.Result().Token())
		}
	}

	if cfg.AddFENComments {
		pos, err := engine.NewPositionFromFEN(g.InitialFEN())
		if err != nil {
			return err
		}
		for ply, m := range g.Moves() {
			pos.Play(m, false)
			g.AddCommentAfter(ply, game.Comment{Text: pos.FEN()})
		}
	}
	return nil
}
