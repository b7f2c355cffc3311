// Package store archives games in a badger key-value database.
package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/lgbarn/chessgame-go/internal/config"
	"github.com/lgbarn/chessgame-go/internal/engine"
	"github.com/lgbarn/chessgame-go/internal/errors"
	"github.com/lgbarn/chessgame-go/internal/game"
	"github.com/lgbarn/chessgame-go/internal/output"
	"github.com/lgbarn/chessgame-go/internal/pgn"
)

const keyPrefix = "game/"

// Record is the stored form of a game.
type Record struct {
	ID          string    `json:"id"`
	PGN         string    `json:"pgn"`
	Language    string    `json:"language"`
	White       string    `json:"white,omitempty"`
	Black       string    `json:"black,omitempty"`
	Result      string    `json:"result"`
	Termination string    `json:"termination"`
	PlyCount    int       `json:"ply_count"`
	FinalFEN    string    `json:"final_fen"`
	ECO         string    `json:"eco,omitempty"`
	SavedAt     time.Time `json:"saved_at"`
}

// Store wraps BadgerDB for persistent storage
type Store struct {
	db *badger.DB
}

// Open opens or creates an archive in dir.
func Open(dir string) (*Store, error) {
	return open(badger.DefaultOptions(dir))
}

// OpenInMemory opens an archive that lives only as long as the process.
func OpenInMemory() (*Store, error) {
	return open(badger.DefaultOptions("").WithInMemory(true))
}

func open(opts badger.Options) (*Store, error) {
	opts.Logger = nil // Disable logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func key(id string) []byte {
	return []byte(keyPrefix + id)
}

// NewRecord renders g as a record. A missing Result tag is filled in from the
// game's outcome, and games from a set-up position get FEN and SetUp tags.
func NewRecord(id string, g *game.Game) (*Record, error) {
	g = g.Clone()
	if !g.HasTag(game.TagResult) {
		g.SetTag(game.TagResult, g.Result().Token())
	}
	if g.InitialFEN() != engine.InitialFEN && !g.HasTag(game.TagFEN) {
		g.SetTag(game.TagSetUp, "1")
		g.SetTag(game.TagFEN, g.InitialFEN())
	}

	var buf bytes.Buffer
	if err := output.WritePGN(&buf, g, config.NewConfig()); err != nil {
		return nil, err
	}

	return &Record{
		ID:          id,
		PGN:         buf.String(),
		Language:    g.Language(),
		White:       g.White(),
		Black:       g.Black(),
		Result:      g.Tag(game.TagResult),
		Termination: g.Result().String(),
		PlyCount:    g.PlyCount(),
		FinalFEN:    g.FEN(),
		ECO:         g.ECO(),
	}, nil
}

// Save stores g under id, replacing any game already stored there.
func (s *Store) Save(id string, g *game.Game) error {
	rec, err := NewRecord(id, g)
	if err != nil {
		return fmt.Errorf("save %s: %w", id, err)
	}
	rec.SavedAt = time.Now()

	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key(id), data)
	})
}

// Record returns the stored record for id.
func (s *Store) Record(id string) (*Record, error) {
	rec := &Record{}

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key(id))
		if err == badger.ErrKeyNotFound {
			return errors.Wrap(errors.ErrGameNotFound, id)
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, rec)
		})
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// Load replays the game stored under id.
func (s *Store) Load(id string) (*game.Game, error) {
	rec, err := s.Record(id)
	if err != nil {
		return nil, err
	}

	cfg := config.NewConfig()
	cfg.Language = rec.Language
	cfg.LogFile = io.Discard

	var buildErr error
	imp := pgn.NewImporter(cfg)
	imp.OnError = func(err error) { buildErr = err }
	games, err := imp.ReadAll(strings.NewReader(rec.PGN), id)
	if err != nil {
		return nil, err
	}
	if buildErr != nil {
		return nil, buildErr
	}
	if len(games) != 1 {
		return nil, fmt.Errorf("%s: stored record holds %d games: %w", id, len(games), errors.ErrParseFailure)
	}
	return games[0], nil
}

// List returns the stored ids in key order.
func (s *Store) List() ([]string, error) {
	var ids []string

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(keyPrefix)

		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			ids = append(ids, strings.TrimPrefix(string(it.Item().Key()), keyPrefix))
		}
		return nil
	})

	return ids, err
}

// Delete removes the game stored under id.
func (s *Store) Delete(id string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(key(id))
		if err == badger.ErrKeyNotFound {
			return errors.Wrap(errors.ErrGameNotFound, id)
		}
		if err != nil {
			return err
		}
		return txn.Delete(key(id))
	})
}
