// Package output writes games as PGN, JSON or plain move lists.
package output

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/lgbarn/chessgame-go/internal/chess"
	"github.com/lgbarn/chessgame-go/internal/config"
	"github.com/lgbarn/chessgame-go/internal/errors"
	"github.com/lgbarn/chessgame-go/internal/game"
	"github.com/lgbarn/chessgame-go/internal/notation"
)

// OutputWriter handles formatted output with line length control.
type OutputWriter struct {
	w             io.Writer
	lineLength    int
	maxLineLength int
	needsSpace    bool
	err           error
}

// NewOutputWriter creates a new output writer.
func NewOutputWriter(w io.Writer, maxLineLength int) *OutputWriter {
	if maxLineLength <= 0 {
		maxLineLength = config.DefaultLineLength
	}
	return &OutputWriter{
		w:             w,
		maxLineLength: maxLineLength,
	}
}

func (o *OutputWriter) emit(s string) {
	if o.err == nil {
		_, o.err = io.WriteString(o.w, s)
	}
}

// Write writes a word, separated from the previous one by a space, or by a line
// break when the word would not fit on the current line.
func (o *OutputWriter) Write(s string) {
	n := utf8.RuneCountInString(s)
	if o.needsSpace && n > 0 {
		if o.lineLength+1+n > o.maxLineLength {
			o.emit("\n")
			o.lineLength = 0
		} else {
			o.emit(" ")
			o.lineLength++
		}
	}

	o.emit(s)
	o.lineLength += n
	o.needsSpace = true
}

// NewLine ends the current line.
func (o *OutputWriter) NewLine() {
	o.emit("\n")
	o.lineLength = 0
	o.needsSpace = false
}

// Err returns the first error from the underlying writer.
func (o *OutputWriter) Err() error {
	return o.err
}

// writeTags writes the tag section in the configured form. Tags of the seven tag
// roster come first; the rest keep the order they were set in.
func writeTags(w *OutputWriter, g *game.Game, form config.TagOutputForm) {
	if form == config.NoTags {
		return
	}

	for _, tag := range game.SevenTagRoster {
		value, ok := g.Tag(tag), g.HasTag(tag)
		if !ok {
			if form != config.SevenTagRoster {
				continue
			}
			value = "?"
		}
		w.emit(fmt.Sprintf("[%s \"%s\"]\n", tag, escapeTagValue(value)))
	}

	if form != config.SevenTagRoster {
		for _, t := range g.Tags() {
			if !game.IsSevenTagRosterTag(t.Name) {
				w.emit(fmt.Sprintf("[%s \"%s\"]\n", t.Name, escapeTagValue(t.Value)))
			}
		}
	}
	w.emit("\n")
}

// escapeTagValue escapes special characters in tag values.
func escapeTagValue(s string) string {
	// Fast path: if no escaping needed, return original string
	if !strings.ContainsAny(s, "\\\"") {
		return s
	}
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	return s
}

// writeMoves writes the movetext. Every white move gets "n." and every black move
// "n...", comments before a move follow its number, and the result token ends the
// text.
func writeMoves(w *OutputWriter, g *game.Game) error {
	sans, err := g.NotationList(notation.SAN)
	if err != nil {
		return err
	}

	start, err := game.NewFromFEN(g.InitialFEN())
	if err != nil {
		return err
	}
	moveNum := start.FullMoveCount()
	white := start.SideToMove() == chess.White

	for ply, san := range sans {
		if white {
			w.Write(fmt.Sprintf("%d.", moveNum))
		} else {
			w.Write(fmt.Sprintf("%d...", moveNum))
			moveNum++
		}
		white = !white

		writeComments(w, g.CommentsBefore(ply))
		w.Write(san)
		writeComments(w, g.CommentsAfter(ply))
	}

	w.Write(g.Tag(game.TagResult))
	w.NewLine()
	return nil
}

// writeComments writes comments word by word so that long ones wrap.
func writeComments(w *OutputWriter, comments []game.Comment) {
	for _, c := range comments {
		for _, word := range strings.Split(c.String(), " ") {
			w.Write(word)
		}
	}
}

// WritePGN writes one game as PGN. The game must have a Result tag.
func WritePGN(out io.Writer, g *game.Game, cfg *config.Config) error {
	if !g.HasTag(game.TagResult) {
		return fmt.Errorf("%s: %w", game.TagResult, errors.ErrMissingTag)
	}

	w := NewOutputWriter(out, int(cfg.Output.MaxLineLength))
	writeTags(w, g, cfg.Output.TagFormat)
	if err := writeMoves(w, g); err != nil {
		return err
	}
	return w.Err()
}
