package output

import (
	"strings"

	"github.com/lgbarn/chessgame-go/internal/chess"
	"github.com/lgbarn/chessgame-go/internal/config"
	"github.com/lgbarn/chessgame-go/internal/engine"
	"github.com/lgbarn/chessgame-go/internal/game"
	"github.com/lgbarn/chessgame-go/internal/notation"
)

// JSONGame represents a game in JSON format.
type JSONGame struct {
	Tags        map[string]string `json:"tags"`
	Moves       []JSONMove        `json:"moves,omitempty"`
	Result      string            `json:"result"`
	Termination string            `json:"termination,omitempty"`
	PlyCount    int               `json:"plyCount"`
	FinalFEN    string            `json:"finalFEN"`
	InitialFEN  string            `json:"initialFEN,omitempty"`
}

// JSONMove represents a move in JSON format.
type JSONMove struct {
	MoveNumber int      `json:"moveNumber"`
	Color      string   `json:"color"` // "white" or "black"
	SAN        string   `json:"san"`
	UCI        string   `json:"uci"`
	From       string   `json:"from"`
	To         string   `json:"to"`
	Piece      string   `json:"piece"`
	Captured   string   `json:"captured,omitempty"`
	Promotion  string   `json:"promotion,omitempty"`
	Comments   []string `json:"comments,omitempty"`
	Variations []string `json:"variations,omitempty"`
	FEN        string   `json:"fen,omitempty"`
}

// JSONOutput holds multiple games for array output.
type JSONOutput struct {
	Games []*JSONGame `json:"games"`
}

// GameToJSON converts a game to JSON format by replaying it from its initial position.
func GameToJSON(g *game.Game, cfg *config.Config) (*JSONGame, error) {
	jg := &JSONGame{
		Tags:     copyTags(g),
		PlyCount: g.PlyCount(),
		FinalFEN: g.FEN(),
	}
	if fen := g.InitialFEN(); fen != engine.InitialFEN {
		jg.InitialFEN = fen
	}

	jg.Result = g.Tag(game.TagResult)
	if r := g.Result(); r != nil {
		jg.Termination = r.String()
		if jg.Result == "" {
			jg.Result = r.Token()
		}
	}
	if jg.Result == "" {
		jg.Result = "*"
	}

	mapping, err := notation.Language(g.Language())
	if err != nil {
		return nil, err
	}
	pos, err := engine.NewPositionFromFEN(g.InitialFEN())
	if err != nil {
		return nil, err
	}

	for ply, m := range g.Moves() {
		jm, err := convertMove(pos, mapping, m)
		if err != nil {
			return nil, err
		}
		addComments(&jm, g.CommentsBefore(ply))
		addComments(&jm, g.CommentsAfter(ply))

		pos.Play(m, true)
		if cfg.Annotation.AddFENComments {
			jm.FEN = pos.FEN()
		}
		jg.Moves = append(jg.Moves, jm)
	}

	return jg, nil
}

// convertMove describes m in the position before it is played.
func convertMove(pos *engine.Position, mapping *notation.Mapping, m chess.Move) (JSONMove, error) {
	san, err := notation.Format(pos, notation.SAN, mapping, m)
	if err != nil {
		return JSONMove{}, err
	}

	side := pos.SideToMove()
	jm := JSONMove{
		MoveNumber: pos.FullMoveCount(),
		Color:      strings.ToLower(side.String()),
		SAN:        san,
		UCI:        notation.FormatUCI(m),
		From:       m.From.String(),
		To:         m.To.String(),
		Piece:      pieceTypeName(pos.PieceAt(m.From).Kind()),
	}

	switch {
	case pos.IsEnPassant(m.From, m.To):
		jm.Captured = pieceTypeName(chess.Pawn)
	case !pos.IsEmpty(m.To):
		jm.Captured = pieceTypeName(pos.PieceAt(m.To).Kind())
	}
	if m.IsPromotion() {
		jm.Promotion = pieceTypeName(m.Promotion)
	}
	return jm, nil
}

func addComments(jm *JSONMove, comments []game.Comment) {
	for _, c := range comments {
		if c.Variation {
			jm.Variations = append(jm.Variations, c.Text)
		} else {
			jm.Comments = append(jm.Comments, c.Text)
		}
	}
}

// copyTags copies game tags and ensures seven tag roster has values.
func copyTags(g *game.Game) map[string]string {
	tags := g.Tags()
	result := make(map[string]string, len(tags)+len(game.SevenTagRoster))
	for _, t := range tags {
		result[t.Name] = t.Value
	}
	for _, tag := range game.SevenTagRoster {
		if _, ok := result[tag]; !ok {
			result[tag] = "?"
		}
	}
	return result
}

// pieceTypeName returns the piece kind as a lowercase word.
func pieceTypeName(k chess.PieceKind) string {
	if k == chess.NoKind {
		return ""
	}
	return strings.ToLower(k.String())
}
