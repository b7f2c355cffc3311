// Package errors defines the sentinel errors shared by the chess engine, the notation
// codecs and the PGN tooling, plus context wrappers that keep the sentinel reachable
// through errors.Is and errors.As.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors. Callers match them with errors.Is.
var (
	// ErrInvalidFEN indicates a malformed FEN string.
	ErrInvalidFEN = errors.New("invalid FEN string")

	// ErrIllegalMove indicates a move or notation that does not resolve to exactly
	// one legal move in the current position.
	ErrIllegalMove = errors.New("illegal move")

	// ErrParseFailure indicates malformed PGN text.
	ErrParseFailure = errors.New("parse failure")

	// ErrInvalidConfig indicates invalid configuration values.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrUnknownLanguage indicates a notation language code without a mapping.
	ErrUnknownLanguage = errors.New("unknown language")

	// ErrMissingTag indicates a required PGN tag is missing.
	ErrMissingTag = errors.New("missing required tag")

	// ErrGameNotFound indicates that the archive holds no game with the given id.
	ErrGameNotFound = errors.New("game not found")
)

// GameError attaches game context to an error: where in the input the game
// came from, which ply failed and the offending move text.
type GameError struct {
	Err      error
	GameNum  int    // 1-based
	PlyNum   int    // 0 when the failure is not tied to a ply
	MoveText string
	File     string
	Line     int
}

// Error returns "file:line, game n, ply p, move "x": cause", omitting unknown parts.
func (e *GameError) Error() string {
	var parts []string
	switch {
	case e.File != "" && e.Line > 0:
		parts = append(parts, fmt.Sprintf("%s:%d", e.File, e.Line))
	case e.File != "":
		parts = append(parts, e.File)
	}
	parts = append(parts, fmt.Sprintf("game %d", e.GameNum))
	if e.PlyNum > 0 {
		parts = append(parts, fmt.Sprintf("ply %d", e.PlyNum))
	}
	if e.MoveText != "" {
		parts = append(parts, fmt.Sprintf("move %q", e.MoveText))
	}

	msg := strings.Join(parts, ", ")
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *GameError) Unwrap() error {
	return e.Err
}

// ParseError locates a PGN syntax error.
type ParseError struct {
	Err      error
	File     string
	Line     int // 1-based
	Column   int // 1-based
	Expected string
	Got      string
}

// Error returns the location, the expected/got context and the cause.
func (e *ParseError) Error() string {
	var parts []string
	if e.File != "" || e.Line > 0 {
		loc := e.File
		if e.Line > 0 {
			loc += fmt.Sprintf(":%d", e.Line)
			if e.Column > 0 {
				loc += fmt.Sprintf(":%d", e.Column)
			}
		}
		parts = append(parts, strings.TrimPrefix(loc, ":"))
	}

	switch {
	case e.Expected != "" && e.Got != "":
		parts = append(parts, fmt.Sprintf("expected %s, got %s", e.Expected, e.Got))
	case e.Expected != "":
		parts = append(parts, "expected "+e.Expected)
	case e.Got != "":
		parts = append(parts, "unexpected "+e.Got)
	}

	if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}
	if len(parts) == 0 {
		return "parse error"
	}
	return strings.Join(parts, ": ")
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Wrap prefixes err with context. A nil err stays nil.
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// Wrapf is Wrap with a format string.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}
