package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/lgbarn/chessgame-go/internal/config"
	"github.com/lgbarn/chessgame-go/internal/notation"
	"github.com/lgbarn/chessgame-go/internal/store"
	"github.com/lgbarn/chessgame-go/internal/testutil"
)

const testGames = `[Event "A"]
[White "X"]
[Black "Y"]
[Result "0-1"]

1. f3 e5 2. g4 Qh4# 0-1

[Event "B"]
[Result "*"]

1. e4 c5 2. Nf3 d6 *

[Event "C"]
[Result "0-1"]

1. f3 e5 2. g4 Qh4# 0-1
`

const brokenGame = `
[Event "D"]
[Result "*"]

1. e4 e5 2. Ke3 *
`

// runPipeline processes input with cfg and returns the context after Close.
func runPipeline(t *testing.T, cfg *config.Config, input string) *ProcessingContext {
	t.Helper()
	ctx, err := newProcessingContext(cfg)
	testutil.AssertNoError(t, err)
	testutil.AssertNoError(t, processInput(strings.NewReader(input), "games.pgn", ctx))
	testutil.AssertNoError(t, ctx.Close())
	return ctx
}

func newTestConfig(out, log *bytes.Buffer) *config.ConfigBuilder {
	return config.NewConfigBuilder().WithOutput(out).WithLog(log)
}

func TestPipeline_Default(t *testing.T) {
	var out, log bytes.Buffer
	ctx := runPipeline(t, newTestConfig(&out, &log).Build(), testGames)

	testutil.AssertEqual(t, ctx.totalGames, 3)
	testutil.AssertEqual(t, ctx.outputGames, 3)
	testutil.AssertEqual(t, strings.Count(out.String(), "[Event "), 3)
	testutil.AssertContains(t, out.String(), "1. f3 1... e5 2. g4 2... Qh4# 0-1")
	testutil.AssertEqual(t, log.String(), "")
}

func TestPipeline_Duplicates(t *testing.T) {
	t.Run("suppress", func(t *testing.T) {
		var out, log bytes.Buffer
		ctx := runPipeline(t, newTestConfig(&out, &log).WithDuplicateSuppression(true).Build(), testGames)

		testutil.AssertEqual(t, ctx.outputGames, 2)
		testutil.AssertEqual(t, ctx.duplicates, 1)
		testutil.AssertNotContains(t, out.String(), `[Event "C"]`)

		var report bytes.Buffer
		ctx.cfg.LogFile = &report
		reportStatistics(ctx)
		testutil.AssertEqual(t, report.String(), "2 game(s) output, 1 duplicate(s) out of 3.\n")
	})

	t.Run("duplicate file", func(t *testing.T) {
		var out, log, dups bytes.Buffer
		cfg := newTestConfig(&out, &log).Build()
		cfg.Duplicate.DuplicateFile = &dups
		ctx := runPipeline(t, cfg, testGames)

		testutil.AssertEqual(t, ctx.outputGames, 3)
		testutil.AssertEqual(t, ctx.duplicates, 1)
		testutil.AssertContains(t, dups.String(), `[Event "C"]`)
		testutil.AssertNotContains(t, dups.String(), `[Event "A"]`)
	})
}

func TestPipeline_Filter(t *testing.T) {
	var out, log bytes.Buffer
	ctx := runPipeline(t, newTestConfig(&out, &log).WithCheckmateFilter(true).Build(), testGames)

	testutil.AssertEqual(t, ctx.totalGames, 3)
	testutil.AssertEqual(t, ctx.outputGames, 2)
	testutil.AssertNotContains(t, out.String(), `[Event "B"]`)

	var report bytes.Buffer
	ctx.cfg.LogFile = &report
	reportStatistics(ctx)
	testutil.AssertEqual(t, report.String(), "2 game(s) matched out of 3.\n")
}

func TestPipeline_ECO(t *testing.T) {
	var out, log bytes.Buffer
	runPipeline(t, newTestConfig(&out, &log).WithECO("").Build(), testGames)

	testutil.AssertContains(t, out.String(), `[ECO "B50"]`)
	testutil.AssertContains(t, out.String(), `[Opening "Sicilian Defence"]`)
	testutil.AssertEqual(t, strings.Count(out.String(), "[ECO "), 1)
}

func TestPipeline_Annotations(t *testing.T) {
	var out, log bytes.Buffer
	cfg := newTestConfig(&out, &log).WithPlyCount(true).Build()
	runPipeline(t, cfg, testGames)

	testutil.AssertContains(t, out.String(), `[PlyCount "4"]`)
}

func TestPipeline_MoveList(t *testing.T) {
	var out, log bytes.Buffer
	cfg := newTestConfig(&out, &log).WithNotation(notation.UCI).Build()
	cfg.Output.MovesOnly = true
	runPipeline(t, cfg, testGames)

	want := "f2f3 e7e5 g2g4 d8h4\n" +
		"e2e4 c7c5 g1f3 d7d6\n" +
		"f2f3 e7e5 g2g4 d8h4\n"
	testutil.AssertEqual(t, out.String(), want)
}

func TestPipeline_Store(t *testing.T) {
	var out, log bytes.Buffer
	dir := t.TempDir()
	runPipeline(t, newTestConfig(&out, &log).WithStore(dir).Build(), testGames)

	archive, err := store.Open(dir)
	testutil.AssertNoError(t, err)
	defer archive.Close()

	ids, err := archive.List()
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, ids, []string{"games.pgn/000001", "games.pgn/000002", "games.pgn/000003"})

	rec, err := archive.Record("games.pgn/000001")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, rec.White, "X")
	testutil.AssertEqual(t, rec.Termination, "black wins")
}

func TestPipeline_BadGame(t *testing.T) {
	var out, log bytes.Buffer
	ctx := runPipeline(t, newTestConfig(&out, &log).Build(), testGames+brokenGame)

	testutil.AssertEqual(t, ctx.outputGames, 3)
	testutil.AssertEqual(t, ctx.failed, 1)
	testutil.AssertContains(t, log.String(), `move "Ke3"`)
}

func TestPipeline_Workers(t *testing.T) {
	var sequential, parallel, log bytes.Buffer
	input := strings.Repeat(testGames+"\n", 5)

	runPipeline(t, newTestConfig(&sequential, &log).Build(), input)
	ctx := runPipeline(t, newTestConfig(&parallel, &log).WithWorkers(3).Build(), input)

	testutil.AssertEqual(t, ctx.outputGames, 15)
	testutil.AssertEqual(t, parallel.String(), sequential.String())
}

func TestPipeline_TagFilter(t *testing.T) {
	defer saveRestoreString(ecoFilter, "B5")()
	tags, err := setupTagMatcher()
	testutil.AssertNoError(t, err)

	var out, log bytes.Buffer
	ctx, err := newProcessingContext(newTestConfig(&out, &log).WithECO("").Build())
	testutil.AssertNoError(t, err)
	ctx.tags = tags
	testutil.AssertNoError(t, processInput(strings.NewReader(testGames), "games.pgn", ctx))
	testutil.AssertNoError(t, ctx.Close())

	testutil.AssertEqual(t, ctx.outputGames, 1)
	testutil.AssertContains(t, out.String(), `[Event "B"]`)
}
