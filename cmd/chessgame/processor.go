// processor.go - Game processing and output functions
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/lgbarn/chessgame-go/internal/config"
	"github.com/lgbarn/chessgame-go/internal/eco"
	"github.com/lgbarn/chessgame-go/internal/game"
	"github.com/lgbarn/chessgame-go/internal/hashing"
	"github.com/lgbarn/chessgame-go/internal/matching"
	"github.com/lgbarn/chessgame-go/internal/output"
	"github.com/lgbarn/chessgame-go/internal/pgn"
	"github.com/lgbarn/chessgame-go/internal/processing"
	"github.com/lgbarn/chessgame-go/internal/store"
)

// ProcessingContext holds all processing state
type ProcessingContext struct {
	cfg       *config.Config
	detector  *hashing.DuplicateDetector
	book      *eco.Book
	tags      *matching.TagMatcher
	archive   *store.Store
	writer    output.GameWriter
	dupWriter output.GameWriter

	source     string
	sourceGame int

	totalGames  int
	outputGames int
	duplicates  int
	failed      int
}

// newProcessingContext sets up the optional stages selected by cfg.
func newProcessingContext(cfg *config.Config) (*ProcessingContext, error) {
	ctx := &ProcessingContext{
		cfg:    cfg,
		writer: output.NewGameWriter(cfg.OutputFile, cfg),
	}

	if cfg.Duplicate.Suppress || cfg.Duplicate.DuplicateFile != nil {
		ctx.detector = hashing.NewDuplicateDetector()
	}
	if cfg.Duplicate.DuplicateFile != nil {
		ctx.dupWriter = output.NewGameWriter(cfg.Duplicate.DuplicateFile, cfg)
	}

	if cfg.AddECO {
		book, err := loadECOBook(cfg)
		if err != nil {
			return nil, err
		}
		ctx.book = book
	}

	if cfg.StoreDir != "" {
		archive, err := store.Open(cfg.StoreDir)
		if err != nil {
			return nil, err
		}
		ctx.archive = archive
	}

	return ctx, nil
}

// loadECOBook loads the ECO book named in cfg, or the built-in one.
func loadECOBook(cfg *config.Config) (*eco.Book, error) {
	if cfg.BookFile == "" {
		return eco.Default(), nil
	}

	book, err := eco.Open(cfg.BookFile)
	if err != nil {
		return nil, fmt.Errorf("loading ECO file %s: %w", cfg.BookFile, err)
	}
	if cfg.Verbosity > 1 {
		fmt.Fprintf(cfg.LogFile, "Loaded %d ECO entries\n", book.EntriesLoaded())
	}
	return book, nil
}

// Close flushes the writers and closes the archive.
func (ctx *ProcessingContext) Close() error {
	err := ctx.writer.Close()
	if ctx.dupWriter != nil {
		if dupErr := ctx.dupWriter.Close(); err == nil {
			err = dupErr
		}
	}
	if ctx.archive != nil {
		if storeErr := ctx.archive.Close(); err == nil {
			err = storeErr
		}
	}
	return err
}

// processInput imports the games in r and runs each through the pipeline.
func processInput(r io.Reader, name string, ctx *ProcessingContext) error {
	ctx.source = name
	ctx.sourceGame = 0

	imp := pgn.NewImporter(ctx.cfg)
	err := imp.Run(r, name, ctx.handleGame)
	ctx.failed += imp.Failed()
	return err
}

// processAllInputs processes all input files or stdin.
func processAllInputs(ctx *ProcessingContext, args []string) error {
	if len(args) == 0 {
		return processInput(os.Stdin, "stdin", ctx)
	}

	for _, filename := range args {
		file, err := os.Open(filename) //nolint:gosec // G304: CLI tool opens user-specified files
		if err != nil {
			fmt.Fprintf(ctx.cfg.LogFile, "Error opening file %s: %v\n", filename, err)
			continue
		}

		err = processInput(file, filename, ctx)
		file.Close() //nolint:errcheck,gosec // G104: read-only file
		if err != nil {
			return err
		}
	}
	return nil
}

// handleGame runs one game through classification, the filters, annotation,
// duplicate detection, the archive and the writer.
func (ctx *ProcessingContext) handleGame(g *game.Game) error {
	cfg := ctx.cfg
	ctx.totalGames++
	ctx.sourceGame++

	if ctx.book != nil {
		ctx.book.AddTags(g)
	}
	if ctx.tags != nil && !ctx.tags.MatchGame(g) {
		return nil
	}
	if cfg.Filter.Active() && !processing.Matches(processing.AnalyzeGame(g), cfg.Filter) {
		return nil
	}
	if err := processing.Annotate(g, cfg.Annotation); err != nil {
		return err
	}

	if ctx.detector != nil && ctx.detector.CheckAndAdd(g) {
		ctx.duplicates++
		if ctx.dupWriter != nil {
			if err := ctx.dupWriter.WriteGame(g); err != nil {
				return err
			}
		}
		if cfg.Duplicate.Suppress {
			return nil
		}
	}

	if ctx.archive != nil {
		if err := ctx.archive.Save(ctx.gameID(), g); err != nil {
			return err
		}
	}

	if err := ctx.writer.WriteGame(g); err != nil {
		return err
	}
	ctx.outputGames++

	if cfg.Verbosity > 1 {
		fmt.Fprintf(cfg.LogFile, "%s game %d: %s\n", ctx.source, ctx.sourceGame, g.Result())
	}
	return nil
}

// gameID names an archived game after its input and its position in it.
func (ctx *ProcessingContext) gameID() string {
	return fmt.Sprintf("%s/%06d", filepath.Base(ctx.source), ctx.sourceGame)
}

// reportStatistics prints the final statistics to the log.
func reportStatistics(ctx *ProcessingContext) {
	w := ctx.cfg.LogFile
	if ctx.detector != nil {
		fmt.Fprintf(w, "%d game(s) output, %d duplicate(s) out of %d.\n", ctx.outputGames, ctx.duplicates, ctx.totalGames)
	} else {
		fmt.Fprintf(w, "%d game(s) matched out of %d.\n", ctx.outputGames, ctx.totalGames)
	}
	if ctx.failed > 0 {
		fmt.Fprintf(w, "%d game(s) could not be read.\n", ctx.failed)
	}
}
