// chessgame replays, classifies, archives and re-emits chess games in PGN format,
// and inspects single positions.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/lgbarn/chessgame-go/internal/config"
)

const programVersion = "0.1.0"

func main() {
	os.Exit(run())
}

func run() int {
	flag.Usage = usage
	flag.Parse()

	if *help {
		usage()
		return 0
	}

	if *version {
		fmt.Printf("chessgame version %s\n", programVersion)
		return 0
	}

	cfg := config.NewConfig()
	if err := applyFlags(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	// Set up logging and output files
	closers, err := setupFiles(cfg)
	defer func() {
		for _, f := range closers {
			f.Close() //nolint:errcheck,gosec // G104: cleanup on exit
		}
	}()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	req := positionRequest{fen: *fenString, moves: *movesString, perft: *perftDepth}
	if req.active() {
		if err := runPosition(cfg.OutputFile, req, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	tags, err := setupTagMatcher()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	ctx, err := newProcessingContext(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	ctx.tags = tags

	// Process input files or stdin
	err = processAllInputs(ctx, flag.Args())
	if closeErr := ctx.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if cfg.Verbosity > 0 {
		reportStatistics(ctx)
	}
	return 0
}

// setupFiles opens the log, output and duplicate files named on the command line.
// The returned files must be closed by the caller, even on error.
func setupFiles(cfg *config.Config) ([]*os.File, error) {
	var files []*os.File

	switch {
	case *logFile != "":
		file, err := os.Create(*logFile)
		if err != nil {
			return files, fmt.Errorf("creating log file %s: %w", *logFile, err)
		}
		files = append(files, file)
		cfg.LogFile = file
	case *appendLog != "":
		file, err := os.OpenFile(*appendLog, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644) //nolint:gosec // G302: 0644 is appropriate for user-created log files
		if err != nil {
			return files, fmt.Errorf("opening log file %s: %w", *appendLog, err)
		}
		files = append(files, file)
		cfg.LogFile = file
	}

	if *outputFile != "" {
		var file *os.File
		var err error
		if *appendOutput {
			file, err = os.OpenFile(*outputFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644) //nolint:gosec // G302: 0644 is appropriate for user-created output files
		} else {
			file, err = os.Create(*outputFile)
		}
		if err != nil {
			return files, fmt.Errorf("creating output file %s: %w", *outputFile, err)
		}
		files = append(files, file)
		cfg.OutputFile = file
	}

	if *duplicateFile != "" {
		file, err := os.Create(*duplicateFile)
		if err != nil {
			return files, fmt.Errorf("creating duplicate file %s: %w", *duplicateFile, err)
		}
		files = append(files, file)
		cfg.Duplicate.DuplicateFile = file
	}

	return files, nil
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: chessgame [options] [input-files...]\n\n")
	fmt.Fprintf(os.Stderr, "Replays chess games in PGN format and writes them back out.\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nMove list notations (-W):\n")
	fmt.Fprintf(os.Stderr, "  san    Standard Algebraic Notation (Nf3)\n")
	fmt.Fprintf(os.Stderr, "  lan    Long algebraic (Ng1-f3)\n")
	fmt.Fprintf(os.Stderr, "  uci    UCI format (g1f3)\n")
	fmt.Fprintf(os.Stderr, "  fan    Figurine algebraic (♞f3)\n")
}
