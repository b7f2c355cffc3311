// flags.go - Command-line flag definitions and configuration
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/lgbarn/chessgame-go/internal/config"
	"github.com/lgbarn/chessgame-go/internal/engine"
	"github.com/lgbarn/chessgame-go/internal/errors"
	"github.com/lgbarn/chessgame-go/internal/game"
	"github.com/lgbarn/chessgame-go/internal/matching"
	"github.com/lgbarn/chessgame-go/internal/notation"
)

var (
	// Output options
	outputFile   = flag.String("o", "", "Output file (default: stdout)")
	appendOutput = flag.Bool("a", false, "Append to output file instead of overwrite")
	sevenTagOnly = flag.Bool("7", false, "Output only the seven tag roster")
	noTags       = flag.Bool("notags", false, "Don't output any tags")
	lineLength   = flag.Int("w", config.DefaultLineLength, "Maximum line length")
	outputFormat = flag.String("W", "", "Print move lists in this notation: san, lan, uci, fan")
	jsonOutput   = flag.Bool("J", false, "Output in JSON format")

	// Input options
	language = flag.String("lang", notation.DefaultLanguage, "Notation language code for SAN input and output")
	encoding = flag.String("encoding", "utf-8", "Input character set: utf-8 or latin1")

	// Content options
	noComments   = flag.Bool("C", false, "Don't output comments")
	noVariations = flag.Bool("V", false, "Don't output variations")

	// Duplicate detection
	suppressDuplicates = flag.Bool("D", false, "Suppress duplicate games")
	duplicateFile      = flag.String("d", "", "Output duplicates to this file")

	// ECO classification
	ecoFile = flag.String("e", "", "ECO classification file (PGN or ECO|Opening|Variation|moves text)")
	addECO  = flag.Bool("eco", false, "Add ECO tags using the built-in opening book")

	// Tag filtering options
	tagFile      = flag.String("t", "", "Tag criteria file for filtering")
	playerFilter = flag.String("p", "", "Filter by player name (either color)")
	whiteFilter  = flag.String("Tw", "", "Filter by White player")
	blackFilter  = flag.String("Tb", "", "Filter by Black player")
	ecoFilter    = flag.String("Te", "", "Filter by ECO code prefix")
	resultFilter = flag.String("Tr", "", "Filter by result (1-0, 0-1, 1/2-1/2)")
	useSoundex   = flag.Bool("S", false, "Use Soundex for player name matching")

	// Filtering options
	minMoves        = flag.Int("minmoves", 0, "Minimum number of moves")
	maxMoves        = flag.Int("maxmoves", 0, "Maximum number of moves (0 = no limit)")
	checkmateFilter = flag.Bool("checkmate", false, "Only output games ending in checkmate")
	stalemateFilter = flag.Bool("stalemate", false, "Only output games ending in stalemate")
	drawFilter      = flag.Bool("draw", false, "Only output games ending in a rule-based draw")

	// Annotations
	addPlyCount    = flag.Bool("plycount", false, "Add PlyCount tag")
	addFENComments = flag.Bool("fencomments", false, "Add FEN comment after each move")
	fixResultTags  = flag.Bool("fixresulttags", false, "Set missing or '*' result tags from the final position")

	// Archive
	storeDir = flag.String("store", "", "Archive every output game in this directory")

	// Position inspection
	fenString   = flag.String("fen", "", "Show this position instead of reading PGN")
	movesString = flag.String("moves", "", "Moves to play from -fen (or the initial position), separated by spaces or commas")
	perftDepth  = flag.Int("perft", 0, "Count the leaf nodes of the legal move tree to this depth")
	perspective = flag.String("perspective", "white", "Board orientation: white, black or current")

	// Logging
	logFile   = flag.String("l", "", "Write diagnostics to log file")
	appendLog = flag.String("L", "", "Append diagnostics to log file")

	// Other options
	quiet   = flag.Bool("s", false, "Silent mode (no game count)")
	help    = flag.Bool("h", false, "Show help")
	version = flag.Bool("version", false, "Show version")

	// Performance options
	workers = flag.Int("workers", 1, "Number of replay workers (0 = one per CPU core)")
)

// applyFlags applies command-line flags to the configuration.
func applyFlags(cfg *config.Config) error {
	applyTagOutputFlags(cfg)
	applyContentFlags(cfg)
	if err := applyOutputFormatFlags(cfg); err != nil {
		return err
	}
	if err := applyInputFlags(cfg); err != nil {
		return err
	}
	applyMoveBoundsFlags(cfg)
	applyAnnotationFlags(cfg)
	applyFilterFlags(cfg)
	applyDuplicateFlags(cfg)
	applyECOFlags(cfg)

	cfg.StoreDir = *storeDir
	if *quiet {
		cfg.Verbosity = 0
	}
	return nil
}

// applyTagOutputFlags configures tag output settings.
func applyTagOutputFlags(cfg *config.Config) {
	switch {
	case *noTags:
		cfg.Output.TagFormat = config.NoTags
	case *sevenTagOnly:
		cfg.Output.TagFormat = config.SevenTagRoster
	}
}

// applyContentFlags configures content output settings.
func applyContentFlags(cfg *config.Config) {
	cfg.Output.KeepComments = !*noComments
	cfg.Output.KeepVariations = !*noVariations
	cfg.Output.JSONFormat = *jsonOutput
	if *lineLength > 0 {
		cfg.Output.MaxLineLength = uint(*lineLength)
	}
}

// applyOutputFormatFlags selects the notation. Naming one switches output to
// move lists.
func applyOutputFormatFlags(cfg *config.Config) error {
	if *outputFormat == "" {
		cfg.Output.Notation = notation.SAN
		return nil
	}

	t, err := notation.ParseType(*outputFormat)
	if err != nil {
		return err
	}
	cfg.Output.Notation = t
	cfg.Output.MovesOnly = true
	return nil
}

// applyInputFlags configures language, encoding, board perspective and workers.
func applyInputFlags(cfg *config.Config) error {
	if _, err := notation.Language(*language); err != nil {
		return err
	}
	cfg.Language = *language

	enc, err := config.ParseEncoding(*encoding)
	if err != nil {
		return err
	}
	cfg.Encoding = enc

	p, err := engine.ParsePerspective(*perspective)
	if err != nil {
		return err
	}
	cfg.Perspective = p

	switch {
	case *workers == 0:
		cfg.Workers = runtime.NumCPU()
	case *workers < 0:
		return fmt.Errorf("workers %d: %w", *workers, errors.ErrInvalidConfig)
	default:
		cfg.Workers = *workers
	}
	return nil
}

// applyMoveBoundsFlags configures move bounds.
func applyMoveBoundsFlags(cfg *config.Config) {
	hasMoveBounds := *minMoves > 0 || *maxMoves > 0
	if !hasMoveBounds {
		return
	}

	cfg.Filter.CheckMoveBounds = true
	cfg.Filter.UpperMoveBound = ^uint(0)
	if *minMoves > 0 {
		cfg.Filter.LowerMoveBound = uint(*minMoves)
	}
	if *maxMoves > 0 {
		cfg.Filter.UpperMoveBound = uint(*maxMoves)
	}
}

// applyAnnotationFlags configures annotation and tag fixing settings.
func applyAnnotationFlags(cfg *config.Config) {
	cfg.Annotation.AddPlyCount = *addPlyCount
	cfg.Annotation.AddFENComments = *addFENComments
	cfg.Annotation.FixResultTags = *fixResultTags
}

// applyFilterFlags configures game filter settings.
func applyFilterFlags(cfg *config.Config) {
	cfg.Filter.MatchCheckmate = *checkmateFilter
	cfg.Filter.MatchStalemate = *stalemateFilter
	cfg.Filter.MatchDraw = *drawFilter
}

// applyDuplicateFlags configures duplicate detection settings.
func applyDuplicateFlags(cfg *config.Config) {
	cfg.Duplicate.Suppress = *suppressDuplicates
}

// applyECOFlags enables classification from -e or the built-in book.
func applyECOFlags(cfg *config.Config) {
	cfg.AddECO = *addECO || *ecoFile != ""
	cfg.BookFile = *ecoFile
}

// setupTagMatcher builds the tag filter from -t, -p and the -T flags. It returns
// nil when no tag criteria are given.
func setupTagMatcher() (*matching.TagMatcher, error) {
	tm := matching.NewTagMatcher()
	tm.SetUseSoundex(*useSoundex)

	if *tagFile != "" {
		file, err := os.Open(*tagFile)
		if err != nil {
			return nil, fmt.Errorf("opening tag file %s: %w", *tagFile, err)
		}
		defer file.Close()
		if err := tm.Load(file); err != nil {
			return nil, fmt.Errorf("tag file %s: %w", *tagFile, err)
		}
	}

	if *playerFilter != "" {
		tm.AddPlayerCriterion(*playerFilter)
	}
	nameOp := matching.OpContains
	if *useSoundex {
		nameOp = matching.OpSoundex
	}
	criteria := []struct {
		tag   string
		value string
		op    matching.TagOperator
	}{
		{game.TagWhite, *whiteFilter, nameOp},
		{game.TagBlack, *blackFilter, nameOp},
		{game.TagResult, *resultFilter, matching.OpEqual},
	}
	for _, c := range criteria {
		if c.value == "" {
			continue
		}
		if err := tm.AddCriterion(c.tag, c.value, c.op); err != nil {
			return nil, err
		}
	}
	if *ecoFilter != "" {
		tm.AddPrefixCriterion(game.TagECO, *ecoFilter)
	}

	if tm.CriteriaCount() == 0 {
		return nil, nil
	}
	return tm, nil
}
