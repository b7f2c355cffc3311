package pgn

import (
	"fmt"
	"io"

	"github.com/lgbarn/chessgame-go/internal/chess"
	"github.com/lgbarn/chessgame-go/internal/config"
	"github.com/lgbarn/chessgame-go/internal/errors"
	"github.com/lgbarn/chessgame-go/internal/game"
	"github.com/lgbarn/chessgame-go/internal/notation"
	"github.com/lgbarn/chessgame-go/internal/worker"
)

// Importer turns PGN text into replayed games. Games that fail to parse or replay
// are reported to OnError and skipped; the import carries on with the next game.
type Importer struct {
	cfg *config.Config

	// OnError receives a *errors.GameError for every rejected game. When nil the
	// error is written to the configured log.
	OnError func(error)

	// Accept, when set, selects games by their tags before they are replayed.
	Accept func(raw *RawGame) bool

	imported int
	failed   int
}

// NewImporter creates an importer. If cfg is nil, a default config is used.
func NewImporter(cfg *config.Config) *Importer {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return &Importer{cfg: cfg}
}

// Imported returns the number of games handed to the callback so far.
func (imp *Importer) Imported() int {
	return imp.imported
}

// Failed returns the number of games rejected so far.
func (imp *Importer) Failed() int {
	return imp.failed
}

// parsed is a raw game on its way to the workers, or the parse error in its place.
type parsed struct {
	raw *RawGame
	err error
}

// Run imports every game in r and calls fn with each one, in input order. source
// names the input in errors. Run stops early when fn returns an error and returns
// that error, or a read error from r.
func (imp *Importer) Run(r io.Reader, source string, fn func(*game.Game) error) error {
	p := NewParser(r, imp.cfg)
	p.SetSource(source)

	if imp.cfg.Workers <= 1 {
		for index := 0; ; index++ {
			raw, err := p.ParseGame()
			if raw == nil && err == nil {
				return nil
			}
			if raw == nil {
				return err
			}
			if err := imp.deliver(imp.process(worker.WorkItem[parsed]{Value: parsed{raw, err}, Index: index}), fn); err != nil {
				return err
			}
		}
	}

	pool := worker.NewPool(imp.process,
		worker.WithWorkers(imp.cfg.Workers),
		worker.WithBufferSize(imp.cfg.Workers*4))
	pool.Start()

	var readErr error
	go func() {
		defer pool.Close()
		for index := 0; !pool.IsStopped(); index++ {
			raw, err := p.ParseGame()
			if raw == nil {
				readErr = err
				return
			}
			pool.Submit(worker.WorkItem[parsed]{Value: parsed{raw, err}, Index: index})
		}
	}()

	err := worker.Reorder(pool.Results(), func(res worker.Result[*game.Game]) error {
		return imp.deliver(res, fn)
	})
	if err != nil {
		pool.Stop()
		for range pool.Results() {
		}
		return err
	}
	return readErr
}

// ReadAll imports every game in r.
func (imp *Importer) ReadAll(r io.Reader, source string) ([]*game.Game, error) {
	var games []*game.Game
	err := imp.Run(r, source, func(g *game.Game) error {
		games = append(games, g)
		return nil
	})
	return games, err
}

// process builds one game. It runs on the worker goroutines.
func (imp *Importer) process(item worker.WorkItem[parsed]) worker.Result[*game.Game] {
	res := worker.Result[*game.Game]{Index: item.Index}
	raw := item.Value.raw
	if item.Value.err != nil {
		res.Err = &errors.GameError{Err: item.Value.err, GameNum: raw.Number}
		return res
	}
	if imp.Accept != nil && !imp.Accept(raw) {
		return res
	}
	res.Value, res.Err = imp.Build(raw)
	return res
}

// deliver reports a failed game or hands a built one to fn.
func (imp *Importer) deliver(res worker.Result[*game.Game], fn func(*game.Game) error) error {
	switch {
	case res.Err != nil:
		imp.failed++
		imp.report(res.Err)
		return nil
	case res.Value == nil:
		return nil
	}
	imp.imported++
	return fn(res.Value)
}

func (imp *Importer) report(err error) {
	if imp.OnError != nil {
		imp.OnError(err)
		return
	}
	if imp.cfg.LogFile != nil {
		fmt.Fprintln(imp.cfg.LogFile, err)
	}
}

// Build replays a raw game. Move numbers must agree with the position they are
// written in front of, and every move must be legal SAN in the configured language.
func (imp *Importer) Build(raw *RawGame) (*game.Game, error) {
	fail := func(n int, at *RawPly, err error) error {
		ge := &errors.GameError{Err: err, GameNum: raw.Number, PlyNum: n, File: raw.Source, Line: raw.Line}
		if at != nil {
			ge.MoveText = at.Text
			ge.Line = at.Line
		}
		return ge
	}

	if len(raw.Tags) == 0 {
		return nil, fail(0, nil, errors.ErrMissingTag)
	}

	g := game.New()
	if fen, ok := raw.Tag(game.TagFEN); ok {
		var err error
		if g, err = game.NewFromFEN(fen); err != nil {
			return nil, fail(0, nil, err)
		}
	}
	if err := g.SetLanguage(imp.cfg.Language); err != nil {
		return nil, fail(0, nil, err)
	}
	for _, t := range raw.Tags {
		g.SetTag(t.Name, t.Value)
	}

	for i := range raw.Plies {
		ply := &raw.Plies[i]
		if ply.Number != 0 {
			if ply.Number != g.FullMoveCount() {
				return nil, fail(i+1, ply, fmt.Errorf("invalid move number %d, expected %d: %w",
					ply.Number, g.FullMoveCount(), errors.ErrParseFailure))
			}
			if ply.Black && g.SideToMove() != chess.Black {
				return nil, fail(i+1, ply, fmt.Errorf("move number %d... in front of a white move: %w",
					ply.Number, errors.ErrParseFailure))
			}
		}

		imp.addComments(g.AddCommentBefore, i, ply.Before)
		if err := g.PlayNotation(notation.SAN, ply.Text); err != nil {
			return nil, fail(i+1, ply, err)
		}
		imp.addComments(g.AddCommentAfter, i, ply.After)
	}

	if raw.Result != "" {
		if v := g.Tag(game.TagResult); v == "" || v == "?" {
			g.SetTag(game.TagResult, raw.Result)
		}
	}
	return g, nil
}

func (imp *Importer) addComments(add func(int, game.Comment), ply int, comments []game.Comment) {
	out := imp.cfg.Output
	for _, c := range comments {
		if out != nil && ((c.Variation && !out.KeepVariations) || (!c.Variation && !out.KeepComments)) {
			continue
		}
		add(ply, c)
	}
}
