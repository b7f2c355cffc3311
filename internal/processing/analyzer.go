// Package processing provides game analysis, validation, filtering and annotation.
package processing

import (
	"fmt"

	"github.com/lgbarn/chessgame-go/internal/chess"
	"github.com/lgbarn/chessgame-go/internal/config"
	"github.com/lgbarn/chessgame-go/internal/engine"
	"github.com/lgbarn/chessgame-go/internal/game"
)

// GameAnalysis holds analysis results from replaying a game.
type GameAnalysis struct {
	Result   *game.Result // nil while the game is in progress
	PlyCount int

	HasFiftyMoveRule        bool // the clock reached 100 half-moves at some point
	HasRepetition           bool // some position occurred three times
	HasUnderpromotion       bool
	HasInsufficientMaterial bool // in the final position
	HasComments             bool

	Captured []chess.Piece
}

// FullMoves returns the number of full moves played, counting a lone white move.
func (ga *GameAnalysis) FullMoves() int {
	return (ga.PlyCount + 1) / 2
}

// AnalyzeGame replays a game from its initial position.
func AnalyzeGame(g *game.Game) *GameAnalysis {
	analysis := &GameAnalysis{
		Result:   g.Result(),
		PlyCount: g.PlyCount(),
		Captured: g.CapturedPieces(),
	}

	pos, err := engine.NewPositionFromFEN(g.InitialFEN())
	if err != nil {
		return analysis
	}
	positionCount := map[string]int{pos.Signature(): 1}

	for ply, m := range g.Moves() {
		if m.IsPromotion() && m.Promotion != chess.Queen {
			analysis.HasUnderpromotion = true
		}
		if len(g.CommentsBefore(ply)) > 0 || len(g.CommentsAfter(ply)) > 0 {
			analysis.HasComments = true
		}

		pos.Play(m, false)

		if pos.IsFiftyMoveDraw() {
			analysis.HasFiftyMoveRule = true
		}
		sig := pos.Signature()
		positionCount[sig]++
		if positionCount[sig] >= 3 {
			analysis.HasRepetition = true
		}
	}

	analysis.HasInsufficientMaterial = pos.HasInsufficientMaterial()
	return analysis
}

// ValidationResult holds the result of game validation.
type ValidationResult struct {
	Valid    bool
	Problems []string
}

// ValidateGame checks the tags of a replayed game: the seven tag roster must be
// present, and a decided Result tag must agree with the final position.
func ValidateGame(g *game.Game) *ValidationResult {
	result := &ValidationResult{Valid: true}
	problem := func(format string, args ...any) {
		result.Valid = false
		result.Problems = append(result.Problems, fmt.Sprintf(format, args...))
	}

	for _, tag := range game.SevenTagRoster {
		if !g.HasTag(tag) {
			problem("missing required tag: %s", tag)
		}
	}

	tag := g.Tag(game.TagResult)
	if g.HasTag(game.TagResult) && !isValidResult(tag) {
		problem("invalid result: %s", tag)
		return result
	}
	if r := g.Result(); r != nil && r.Draw == game.NoDraw && isValidResult(tag) && tag != r.Token() {
		problem("result %s contradicts final position (%s)", tag, r)
	}
	return result
}

// isValidResult checks if a result string is a valid PGN result.
func isValidResult(result string) bool {
	switch result {
	case "1-0", "0-1", "1/2-1/2", "*":
		return true
	default:
		return false
	}
}

// Matches reports whether a game passes the filters in f.
func Matches(a *GameAnalysis, f *config.FilterConfig) bool {
	if f == nil || !f.Active() {
		return true
	}
	if f.CheckMoveBounds {
		moves := uint(a.FullMoves())
		if moves < f.LowerMoveBound || moves > f.UpperMoveBound {
			return false
		}
	}
	if f.MatchCheckmate && (a.Result == nil || a.Result.Type == game.Draw) {
		return false
	}
	if f.MatchStalemate && (a.Result == nil || a.Result.Draw != game.Stalemate) {
		return false
	}
	if f.MatchDraw && (a.Result == nil || a.Result.Type != game.Draw) {
		return false
	}
	return true
}
