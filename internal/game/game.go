// Package game wraps an engine position with its move list, notation language and PGN
// data. It is the main entry point for replaying and inspecting games.
package game

import (
	"fmt"
	"strings"

	"github.com/lgbarn/chessgame-go/internal/chess"
	"github.com/lgbarn/chessgame-go/internal/engine"
	"github.com/lgbarn/chessgame-go/internal/errors"
	"github.com/lgbarn/chessgame-go/internal/notation"
)

// Game represents a chess game: the current position, the moves played from the
// initial position, and the PGN tags and comments.
type Game struct {
	PGNData

	pos      *engine.Position
	initial  string
	moves    []chess.Move
	language string
	mapping  *notation.Mapping
}

// New creates a game from the standard initial position.
func New() *Game {
	return &Game{
		pos:      engine.NewPosition(),
		initial:  engine.InitialFEN,
		language: notation.DefaultLanguage,
		mapping:  notation.English,
	}
}

// NewFromFEN creates a game starting from fen.
func NewFromFEN(fen string) (*Game, error) {
	pos, err := engine.NewPositionFromFEN(fen)
	if err != nil {
		return nil, err
	}
	return &Game{
		pos:      pos,
		initial:  pos.FEN(),
		language: notation.DefaultLanguage,
		mapping:  notation.English,
	}, nil
}

// replay returns a fresh position at the initial FEN.
func (g *Game) replay() *engine.Position {
	pos, err := engine.NewPositionFromFEN(g.initial)
	if err != nil {
		// initial was produced by FEN() of a valid position
		panic(fmt.Sprintf("replaying %q: %v", g.initial, err))
	}
	return pos
}

// Clone returns an independent copy of the game.
func (g *Game) Clone() *Game {
	return &Game{
		PGNData:  g.PGNData.clone(),
		pos:      g.pos.Clone(),
		initial:  g.initial,
		moves:    append([]chess.Move(nil), g.moves...),
		language: g.language,
		mapping:  g.mapping,
	}
}

// Position returns a copy of the current position.
func (g *Game) Position() *engine.Position {
	return g.pos.Clone()
}

// SetLanguage selects the piece letters used by SAN and LAN.
func (g *Game) SetLanguage(code string) error {
	m, err := notation.Language(code)
	if err != nil {
		return err
	}
	g.language, g.mapping = code, m
	return nil
}

// Language returns the active language code.
func (g *Game) Language() string {
	return g.language
}

// ASCII returns the compact board diagram.
func (g *Game) ASCII() string {
	return g.pos.ASCII()
}

// BigASCII returns the framed board diagram seen from perspective.
func (g *Game) BigASCII(perspective engine.Perspective) string {
	return g.pos.BigASCII(perspective)
}

// FEN returns the current position in FEN.
func (g *Game) FEN() string {
	return g.pos.FEN()
}

// SmallFEN returns the compact position string used for hashing.
func (g *Game) SmallFEN() string {
	return g.pos.SmallFEN()
}

// InitialFEN returns the FEN the game started from.
func (g *Game) InitialFEN() string {
	return g.initial
}

// FullMoveCount returns the FEN full-move number.
func (g *Game) FullMoveCount() int {
	return g.pos.FullMoveCount()
}

// SideToMove returns the side whose turn it is.
func (g *Game) SideToMove() chess.Side {
	return g.pos.SideToMove()
}

// Piece returns the piece on sq, or NoPiece.
func (g *Game) Piece(sq chess.Square) chess.Piece {
	return g.pos.PieceAt(sq)
}

// Squares returns the squares holding piece.
func (g *Game) Squares(piece chess.Piece) []chess.Square {
	return g.pos.Squares(piece).Squares()
}

// OccupiedSquares returns every occupied square.
func (g *Game) OccupiedSquares() []chess.Square {
	return g.pos.Occupied().Squares()
}

// LegalMoves returns the legal moves of the side to move.
func (g *Game) LegalMoves() []chess.Move {
	return g.pos.LegalMoves()
}

// LegalMovesFrom returns the legal moves of the piece on from.
func (g *Game) LegalMovesFrom(from chess.Square) []chess.Move {
	return g.pos.LegalMovesFrom(from)
}

// IsLegal reports whether m is legal in the current position.
func (g *Game) IsLegal(m chess.Move) bool {
	return g.pos.IsLegal(m)
}

// IsKingAttacked reports whether the side to move is in check.
func (g *Game) IsKingAttacked() bool {
	return g.pos.KingState(g.pos.SideToMove(), false) == engine.Check
}

// SquaresAttackingKing returns the squares of the pieces checking the side to move.
func (g *Game) SquaresAttackingKing() []chess.Square {
	return g.pos.SquaresAttackingKing(g.pos.SideToMove())
}

// Moves returns the moves played so far.
func (g *Game) Moves() []chess.Move {
	return append([]chess.Move(nil), g.moves...)
}

// PlyCount returns the number of half-moves played.
func (g *Game) PlyCount() int {
	return len(g.moves)
}

// LastMove returns the last move played, or false if no moves.
func (g *Game) LastMove() (chess.Move, bool) {
	if len(g.moves) == 0 {
		return chess.Move{}, false
	}
	return g.moves[len(g.moves)-1], true
}

// ParseMove resolves s in notation t against the current position.
func (g *Game) ParseMove(t notation.Type, s string) (chess.Move, error) {
	return notation.Parse(g.pos, t, g.mapping, s)
}

// Notation renders the legal move m in notation t.
func (g *Game) Notation(t notation.Type, m chess.Move) (string, error) {
	return notation.Format(g.pos, t, g.mapping, m)
}

// NotationList renders every move played, replaying from the initial position.
func (g *Game) NotationList(t notation.Type) ([]string, error) {
	pos := g.replay()
	list := make([]string, 0, len(g.moves))
	for i, m := range g.moves {
		s, err := notation.Format(pos, t, g.mapping, m)
		if err != nil {
			return list, fmt.Errorf("ply %d: %w", i+1, err)
		}
		list = append(list, s)
		pos.Play(m, false)
	}
	return list, nil
}

// Play applies m without a legality check and returns the captured piece.
func (g *Game) Play(m chess.Move) chess.Piece {
	captured := g.pos.Play(m, true)
	g.moves = append(g.moves, m)
	return captured
}

// PlayNotation parses s in notation t and plays it. The move must be legal.
func (g *Game) PlayNotation(t notation.Type, s string) error {
	m, err := g.ParseMove(t, s)
	if err != nil {
		return err
	}
	if !g.pos.IsLegal(m) {
		return fmt.Errorf("%s %q: %w", t, s, errors.ErrIllegalMove)
	}
	g.Play(m)
	return nil
}

// PlayMoves plays a list of moves separated by spaces or commas. Moves before the
// first failure stay played.
func (g *Game) PlayMoves(t notation.Type, moves string) error {
	fields := strings.FieldsFunc(moves, func(r rune) bool { return r == ' ' || r == ',' })
	for _, s := range fields {
		if err := g.PlayNotation(t, s); err != nil {
			return fmt.Errorf("ply %d: %w", len(g.moves)+1, err)
		}
	}
	return nil
}

// Result returns the outcome of the game, or nil while it is in progress.
func (g *Game) Result() *Result {
	switch {
	case g.pos.KingState(g.pos.SideToMove(), true) == engine.Mate:
		return &Result{Type: ResultFromWinner(g.pos.SideToMove().Flip())}
	case g.pos.HasInsufficientMaterial():
		return &Result{Type: Draw, Draw: InsufficientMaterial}
	case g.pos.IsFiftyMoveDraw():
		return &Result{Type: Draw, Draw: FiftyMoveRule}
	case g.pos.IsThreefoldRepetition():
		return &Result{Type: Draw, Draw: ThreefoldRepetition}
	case !g.pos.HasLegalMoves():
		return &Result{Type: Draw, Draw: Stalemate}
	}
	return nil
}

// Score returns the material balance from white's point of view.
func (g *Game) Score() int {
	return g.pos.Score()
}

// CapturedPieces returns the pieces captured so far, in capture order.
func (g *Game) CapturedPieces() []chess.Piece {
	pos := g.replay()
	var captured []chess.Piece
	for _, m := range g.moves {
		if p := pos.Play(m, false); p != chess.NoPiece {
			captured = append(captured, p)
		}
	}
	return captured
}

// Subset returns a new game holding the first n moves. Tags and comments are not
// copied.
func (g *Game) Subset(n int) *Game {
	sub := &Game{
		pos:      g.replay(),
		initial:  g.initial,
		language: g.language,
		mapping:  g.mapping,
	}
	for i, m := range g.moves {
		if i >= n {
			break
		}
		sub.Play(m)
	}
	return sub
}
