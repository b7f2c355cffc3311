package pgn

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/lgbarn/chessgame-go/internal/config"
	"github.com/lgbarn/chessgame-go/internal/errors"
	"github.com/lgbarn/chessgame-go/internal/game"
	"github.com/lgbarn/chessgame-go/internal/notation"
	"github.com/lgbarn/chessgame-go/internal/testutil"
)

const fischer1992 = `[Event "F/S Return Match"]
[Site "Belgrade, Serbia JUG"]
[Date "1992.11.04"]
[Round "29"]
[White "Fischer, Robert \"Bobby\" J."]
[Black "Spassky \\ Boris V."]
[Result "1/2-1/2"]
 
1.e4 e5 2.Nf3 Nc6 3.Bb5 {Deze opening wordt Spaans genoemd.} a6 4.Ba4 Nf6
5.O-O Be7 6.Re1 b5 7.Bb3 d6 8.c3 O-O 9. h3 Nb8 10.d4 Nbd7 11.c4 c6
12.cxb5 axb5 13.Nc3 Bb7 14.Bg5 b4 15.Nb1 h6 16.Bh4 c5 17.dxe5 Nxe4
18.Bxe7 Qxe7 19.exd6 Qf6 20.Nbd2 Nxd6 21.Nc4 Nxc4 22.Bxc4 Nb6 23.Ne5
Rae8 24.Bxf7+ Rxf7 25.Nxf7 Rxe1+ 26.Qxe1 Kxf7 27.Qe3 Qg5 28.Qxg5 hxg5
29.b3 Ke6 30.a3 Kd6 31.axb4 cxb4 32.Ra5 Nd5 33. f3 Bc8 34.Kf2 Bf5 35.Ra7
g6 36.Ra6+ Kc5 37.Ke1 Nf4 38.g3 Nxh3 39.Kd2 Kb5 40.Rd6 Kc5 41.Ra6 Nf2
42.g4 Bd3 43.Re6 1-0`

const chessCom = `[Event "?"]
[Site "?"]
[Date "????.??.??"]
[Round "?"]
[White "?"]
[Black "?"]
[Result "*"]

1. d4 f5 2. Nc3 e5 3. dxe5 (3. d5 {Bla} h6 (3... g6)) {Bla} 3... h6 *`

const lichess = `[Event "?"]
[Site "?"]
[Date "????.??.??"]
[Round "?"]
[White "?"]
[Black "?"]
[Result "*"]
[WhiteElo "?"]
[BlackElo "?"]
[Variant "Standard"]
[TimeControl "-"]
[ECO "A80"]
[Opening "Dutch Defense: Raphael Variation"]
[Termination "Unterminated"]
[Annotator "lichess.org"]

1. d4 f5 2. Nc3 { A80 Dutch Defense: Raphael Variation } e5 3. dxe5 h6 0-1`

// importGames runs the importer and collects games and errors.
func importGames(t *testing.T, cfg *config.Config, pgn string) ([]*game.Game, []error) {
	t.Helper()
	imp := NewImporter(cfg)
	var errs []error
	imp.OnError = func(err error) { errs = append(errs, err) }
	games, err := imp.ReadAll(strings.NewReader(pgn), "test.pgn")
	if err != nil {
		t.Fatalf("ReadAll() error: %v", err)
	}
	return games, errs
}

func lastSAN(t *testing.T, g *game.Game) string {
	t.Helper()
	list, err := g.NotationList(notation.SAN)
	if err != nil {
		t.Fatalf("NotationList() error: %v", err)
	}
	return list[len(list)-1]
}

func TestImport(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		pgn      string
		lastMove string
		plies    int
	}{
		{"escaped tags", fischer1992, "Re6", 85},
		{"variations", chessCom, "h6", 6},
		{"lichess", lichess, "h6", 6},
		{"broken tag", "[Event \"?\"]\n[Site ...\n\n1. d4 f5 2. Nc3 0-1", "Nc3", 3},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := config.NewConfigBuilder().WithLog(io.Discard).Build()
			games, errs := importGames(t, cfg, tt.pgn)
			testutil.AssertEqual(t, len(errs), 0, "errors: %v", errs)
			if len(games) != 1 {
				t.Fatalf("imported %d games, want 1", len(games))
			}
			testutil.AssertEqual(t, lastSAN(t, games[0]), tt.lastMove)
			testutil.AssertEqual(t, games[0].PlyCount(), tt.plies)
		})
	}
}

func TestImport_Tags(t *testing.T) {
	t.Parallel()
	games, _ := importGames(t, nil, fischer1992)
	g := games[0]

	testutil.AssertEqual(t, g.White(), `Fischer, Robert "Bobby" J.`)
	testutil.AssertEqual(t, g.Black(), `Spassky \ Boris V.`)
	// an existing Result tag wins over the termination marker
	testutil.AssertEqual(t, g.Tag(game.TagResult), "1/2-1/2")
	testutil.AssertEqual(t, g.CommentsAfter(4), []game.Comment{{Text: "Deze opening wordt Spaans genoemd."}})
}

func TestImport_ResultFromTermination(t *testing.T) {
	t.Parallel()
	games, _ := importGames(t, nil, "[Event \"x\"]\n\n1. f3 e5 2. g4 Qh4# 0-1")
	testutil.AssertEqual(t, games[0].Tag(game.TagResult), "0-1")
	testutil.AssertEqual(t, games[0].Result().Token(), "0-1")
}

func TestImport_Errors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		pgn      string
		sentinel error
		line     int
		contains string
	}{
		{
			name:     "invalid move number",
			pgn:      "[Event \"?\"]\n[Site \"?\"]\n[Date \"????.??.??\"]\n\n1. d4 f5 3. Nc3 0-1",
			sentinel: errors.ErrParseFailure,
			line:     5,
			contains: "invalid move number 3",
		},
		{
			name:     "black move number on white move",
			pgn:      "[Event \"?\"]\n\n1. d4 f5 2... Nc3 0-1",
			sentinel: errors.ErrParseFailure,
			line:     3,
			contains: "in front of a white move",
		},
		{
			name:     "no correct ending",
			pgn:      "[Event \"?\"]\n[Site \"?\"]\n[Date \"????.??.??\"]\n\n1. d4 f5 2. Nc3\n[Site \"?\"]\n",
			sentinel: errors.ErrParseFailure,
			contains: "6:1: expected game termination",
		},
		{
			name:     "no tags",
			pgn:      "1. d4 f5 2. Nc3 0-1",
			sentinel: errors.ErrMissingTag,
			line:     1,
		},
		{
			name:     "illegal move",
			pgn:      "[Event \"?\"]\n\n1. d4 f5 2. Ke3 0-1",
			sentinel: errors.ErrIllegalMove,
			line:     3,
			contains: `ply 3, move "Ke3"`,
		},
		{
			name:     "bad FEN tag",
			pgn:      "[Event \"?\"]\n[FEN \"not a fen\"]\n\n1. d4 *",
			sentinel: errors.ErrInvalidFEN,
			line:     1,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := config.NewConfigBuilder().WithLog(io.Discard).Build()
			games, errs := importGames(t, cfg, tt.pgn)
			testutil.AssertEqual(t, len(games), 0)
			if len(errs) == 0 {
				t.Fatal("no error reported")
			}
			err := errs[0]
			testutil.AssertErrorIs(t, err, tt.sentinel)

			var gerr *errors.GameError
			testutil.AssertTrue(t, errors.As(err, &gerr), "want *GameError, got %T", err)
			testutil.AssertEqual(t, gerr.GameNum, 1)
			if tt.line != 0 {
				testutil.AssertEqual(t, gerr.Line, tt.line)
			}
			testutil.AssertContains(t, err.Error(), tt.contains)
		})
	}
}

func TestImport_ContinuesAfterBadGame(t *testing.T) {
	t.Parallel()
	pgn := "[Round \"1\"]\n\n1. e4 e5 *\n\n[Round \"2\"]\n\n1. e4 Ke7 2. Ke3 *\n\n[Round \"3\"]\n\n1. d4 d5 *"
	games, errs := importGames(t, config.NewConfigBuilder().WithLog(io.Discard).Build(), pgn)

	testutil.AssertEqual(t, len(errs), 1)
	testutil.AssertEqual(t, len(games), 2)
	testutil.AssertEqual(t, games[1].Tag("Round"), "3")
}

func TestImport_Parallel(t *testing.T) {
	t.Parallel()
	var sb strings.Builder
	for i := 1; i <= 40; i++ {
		fmt.Fprintf(&sb, "[Round \"%d\"]\n\n", i)
		if i%10 == 0 {
			sb.WriteString("1. e5 *\n\n")
		} else {
			sb.WriteString("1. e4 e5 2. Nf3 Nc6 3. Bb5 a6 *\n\n")
		}
	}

	cfg := config.NewConfigBuilder().WithWorkers(4).WithLog(io.Discard).Build()
	imp := NewImporter(cfg)
	var failedRounds []int
	imp.OnError = func(err error) {
		var gerr *errors.GameError
		if errors.As(err, &gerr) {
			failedRounds = append(failedRounds, gerr.GameNum)
		}
	}
	games, err := imp.ReadAll(strings.NewReader(sb.String()), "")
	testutil.AssertNoError(t, err)

	testutil.AssertEqual(t, failedRounds, []int{10, 20, 30, 40})
	testutil.AssertEqual(t, len(games), 36)
	testutil.AssertEqual(t, imp.Imported(), 36)
	testutil.AssertEqual(t, imp.Failed(), 4)

	want := 1
	for _, g := range games {
		if want%10 == 0 {
			want++
		}
		testutil.AssertEqual(t, g.Tag("Round"), fmt.Sprint(want))
		want++
	}
}

func TestImport_StopsWhenCallbackFails(t *testing.T) {
	t.Parallel()
	for _, workers := range []int{1, 3} {
		cfg := config.NewConfigBuilder().WithWorkers(workers).Build()
		imp := NewImporter(cfg)
		stop := fmt.Errorf("enough")
		seen := 0
		pgn := strings.Repeat("[Event \"x\"]\n\n1. e4 *\n\n", 20)
		err := imp.Run(strings.NewReader(pgn), "", func(*game.Game) error {
			seen++
			if seen == 2 {
				return stop
			}
			return nil
		})
		testutil.AssertErrorIs(t, err, stop, "workers=%d", workers)
		testutil.AssertEqual(t, seen, 2, "workers=%d", workers)
	}
}

func TestImport_Accept(t *testing.T) {
	t.Parallel()
	imp := NewImporter(nil)
	imp.Accept = func(raw *RawGame) bool {
		v, _ := raw.Tag("White")
		return v == "Carlsen"
	}
	pgn := "[White \"Carlsen\"]\n\n1. e4 *\n\n[White \"Caruana\"]\n\n1. d4 *"
	games, err := imp.ReadAll(strings.NewReader(pgn), "")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, len(games), 1)
	testutil.AssertEqual(t, games[0].White(), "Carlsen")
}

func TestImport_CommentsAndVariations(t *testing.T) {
	t.Parallel()
	pgn := "[Event \"x\"]\n\n1. {c0} (v0) d4 {c1} (v1) 1... d5 *"
	tests := []struct {
		name           string
		keepComments   bool
		keepVariations bool
		before         []game.Comment
		after          []game.Comment
	}{
		{"keep all", true, true,
			[]game.Comment{{Text: "c0"}, {Text: "v0", Variation: true}},
			[]game.Comment{{Text: "c1"}, {Text: "v1", Variation: true}}},
		{"drop comments", false, true,
			[]game.Comment{{Text: "v0", Variation: true}},
			[]game.Comment{{Text: "v1", Variation: true}}},
		{"drop variations", true, false,
			[]game.Comment{{Text: "c0"}},
			[]game.Comment{{Text: "c1"}}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := config.NewConfigBuilder().KeepComments(tt.keepComments).KeepVariations(tt.keepVariations).Build()
			games, _ := importGames(t, cfg, pgn)
			testutil.AssertEqual(t, games[0].CommentsBefore(0), tt.before)
			testutil.AssertEqual(t, games[0].CommentsAfter(0), tt.after)
		})
	}
}

func TestImport_Language(t *testing.T) {
	t.Parallel()
	cfg := config.NewConfigBuilder().WithLanguage("de").Build()
	games, errs := importGames(t, cfg, "[Event \"x\"]\n\n1. e4 e5 2. Sf3 Sc6 3. Lb5 a6 *")
	testutil.AssertEqual(t, len(errs), 0, "errors: %v", errs)
	testutil.AssertEqual(t, games[0].PlyCount(), 6)
	testutil.AssertEqual(t, games[0].Language(), "de")
}

func TestImport_FENTag(t *testing.T) {
	t.Parallel()
	pgn := "[Event \"x\"]\n[SetUp \"1\"]\n[FEN \"4k3/8/8/8/8/8/4P3/4K3 b - - 0 30\"]\n\n30... Kd7 31. e4 *"
	games, errs := importGames(t, nil, pgn)
	testutil.AssertEqual(t, len(errs), 0, "errors: %v", errs)
	testutil.AssertEqual(t, games[0].PlyCount(), 2)
	testutil.AssertEqual(t, games[0].InitialFEN(), "4k3/8/8/8/8/8/4P3/4K3 b - - 0 30")
}

func TestImport_Latin1(t *testing.T) {
	t.Parallel()
	cfg := config.NewConfigBuilder().WithEncoding(config.Latin1).Build()
	games, _ := importGames(t, cfg, "[Site \"M\xfcnchen\"]\n\n1. e4 *")
	testutil.AssertEqual(t, games[0].Tag(game.TagSite), "München")
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, io.ErrUnexpectedEOF
}

func TestImport_ReadError(t *testing.T) {
	t.Parallel()
	for _, workers := range []int{1, 2} {
		imp := NewImporter(config.NewConfigBuilder().WithWorkers(workers).Build())
		_, err := imp.ReadAll(failingReader{}, "")
		testutil.AssertErrorIs(t, err, io.ErrUnexpectedEOF, "workers=%d", workers)
	}
}

func TestImport_DefaultErrorLog(t *testing.T) {
	t.Parallel()
	var log bytes.Buffer
	imp := NewImporter(config.NewConfigBuilder().WithLog(&log).Build())
	_, err := imp.ReadAll(strings.NewReader("1. e4 *"), "x.pgn")
	testutil.AssertNoError(t, err)
	testutil.AssertContains(t, log.String(), "missing required tag")
}
