package game

import "github.com/lgbarn/chessgame-go/internal/chess"

// ResultType is the outcome of a finished game.
type ResultType int

const (
	WhiteWins ResultType = iota
	BlackWins
	Draw
)

// ResultFromWinner returns the result type for a game won by side.
func ResultFromWinner(side chess.Side) ResultType {
	if side == chess.Black {
		return BlackWins
	}
	return WhiteWins
}

// Token returns the PGN result token.
func (t ResultType) Token() string {
	switch t {
	case WhiteWins:
		return "1-0"
	case BlackWins:
		return "0-1"
	default:
		return "1/2-1/2"
	}
}

func (t ResultType) String() string {
	switch t {
	case WhiteWins:
		return "white wins"
	case BlackWins:
		return "black wins"
	default:
		return "draw"
	}
}

// DrawType names the rule that ended a drawn game.
type DrawType int

const (
	NoDraw DrawType = iota
	InsufficientMaterial
	FiftyMoveRule
	ThreefoldRepetition
	Stalemate
)

func (d DrawType) String() string {
	switch d {
	case InsufficientMaterial:
		return "insufficient material"
	case FiftyMoveRule:
		return "fifty-move rule"
	case ThreefoldRepetition:
		return "threefold repetition"
	case Stalemate:
		return "stalemate"
	default:
		return "none"
	}
}

// Result describes a finished game. Draw is NoDraw unless Type is Draw.
type Result struct {
	Type ResultType
	Draw DrawType
}

// Token returns the PGN result token, "*" for an unfinished game (nil result).
func (r *Result) Token() string {
	if r == nil {
		return "*"
	}
	return r.Type.Token()
}

func (r *Result) String() string {
	switch {
	case r == nil:
		return "in progress"
	case r.Type == Draw:
		return "draw by " + r.Draw.String()
	default:
		return r.Type.String()
	}
}
