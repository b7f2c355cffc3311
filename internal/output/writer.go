package output

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/lgbarn/chessgame-go/internal/config"
	"github.com/lgbarn/chessgame-go/internal/game"
)

// GameWriter is the interface for writing games to output.
// Different implementations handle different output formats (PGN, JSON, etc.).
type GameWriter interface {
	// WriteGame writes a single game to the output.
	WriteGame(g *game.Game) error

	// Flush flushes any buffered data to the underlying writer.
	Flush() error

	// Close closes the writer and releases any resources.
	// For batch writers (like JSON), this also writes any pending output.
	Close() error
}

// NewGameWriter returns the writer selected by cfg.Output.
func NewGameWriter(w io.Writer, cfg *config.Config) GameWriter {
	switch {
	case cfg.Output.JSONFormat:
		return NewJSONWriter(w, cfg)
	case cfg.Output.MovesOnly:
		return NewMoveListWriter(w, cfg)
	default:
		return NewPGNWriter(w, cfg)
	}
}

// PGNWriter writes games in PGN format, separated by blank lines.
type PGNWriter struct {
	w       io.Writer
	cfg     *config.Config
	written int
}

// NewPGNWriter creates a new PGN writer.
func NewPGNWriter(w io.Writer, cfg *config.Config) *PGNWriter {
	return &PGNWriter{
		w:   w,
		cfg: cfg,
	}
}

// WriteGame writes a game in PGN format.
func (pw *PGNWriter) WriteGame(g *game.Game) error {
	if pw.written > 0 {
		if _, err := io.WriteString(pw.w, "\n"); err != nil {
			return err
		}
	}
	if err := WritePGN(pw.w, g, pw.cfg); err != nil {
		return err
	}
	pw.written++
	return nil
}

// Flush flushes the PGN writer (no-op for PGN as it writes immediately).
func (pw *PGNWriter) Flush() error {
	return nil
}

// Close closes the PGN writer.
func (pw *PGNWriter) Close() error {
	return nil
}

// MoveListWriter writes the moves of each game on one line in the configured notation.
type MoveListWriter struct {
	w   io.Writer
	cfg *config.Config
}

// NewMoveListWriter creates a move list writer.
func NewMoveListWriter(w io.Writer, cfg *config.Config) *MoveListWriter {
	return &MoveListWriter{w: w, cfg: cfg}
}

// WriteGame writes the notation list of g.
func (mw *MoveListWriter) WriteGame(g *game.Game) error {
	list, err := g.NotationList(mw.cfg.Output.Notation)
	if err != nil {
		return err
	}
	_, err = io.WriteString(mw.w, strings.Join(list, " ")+"\n")
	return err
}

// Flush is a no-op.
func (mw *MoveListWriter) Flush() error {
	return nil
}

// Close is a no-op.
func (mw *MoveListWriter) Close() error {
	return nil
}

// JSONWriter writes games in JSON format.
// It buffers games and writes them as a JSON array on Close or Flush.
type JSONWriter struct {
	w      io.Writer
	cfg    *config.Config
	games  []*JSONGame
	single bool // If true, write each game immediately instead of batching
}

// NewJSONWriter creates a new JSON writer.
// By default, it batches games and writes them as an array on Close().
func NewJSONWriter(w io.Writer, cfg *config.Config) *JSONWriter {
	return &JSONWriter{
		w:   w,
		cfg: cfg,
	}
}

// NewJSONWriterSingle creates a JSON writer that writes each game immediately.
func NewJSONWriterSingle(w io.Writer, cfg *config.Config) *JSONWriter {
	return &JSONWriter{
		w:      w,
		cfg:    cfg,
		single: true,
	}
}

// WriteGame converts a game and buffers it (or writes it immediately in single mode).
func (jw *JSONWriter) WriteGame(g *game.Game) error {
	jsonGame, err := GameToJSON(g, jw.cfg)
	if err != nil {
		return err
	}
	if jw.single {
		return jw.encode(jsonGame)
	}
	jw.games = append(jw.games, jsonGame)
	return nil
}

// Flush writes all buffered games as a JSON array.
func (jw *JSONWriter) Flush() error {
	if jw.single || len(jw.games) == 0 {
		return nil
	}
	err := jw.encode(&JSONOutput{Games: jw.games})
	jw.games = jw.games[:0]
	return err
}

func (jw *JSONWriter) encode(v any) error {
	enc := json.NewEncoder(jw.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Close flushes and closes the JSON writer.
func (jw *JSONWriter) Close() error {
	return jw.Flush()
}
