// Package eco provides ECO (Encyclopaedia of Chess Openings) classification.
package eco

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/lgbarn/chessgame-go/internal/config"
	"github.com/lgbarn/chessgame-go/internal/engine"
	"github.com/lgbarn/chessgame-go/internal/errors"
	"github.com/lgbarn/chessgame-go/internal/game"
	"github.com/lgbarn/chessgame-go/internal/notation"
	"github.com/lgbarn/chessgame-go/internal/pgn"
)

//go:embed book.txt
var defaultBook string

// Opening is a single classification entry.
type Opening struct {
	ECO       string // e.g., "B33"
	Name      string // e.g., "Sicilian Defence"
	Variation string // e.g., "Sveshnikov Variation"
}

// FullName returns "Name / Variation (ECO)", leaving out an empty variation.
func (o *Opening) FullName() string {
	name := o.Name
	if o.Variation != "" {
		name += " / " + o.Variation
	}
	return fmt.Sprintf("%s (%s)", name, o.ECO)
}

// node is a trie node keyed by English SAN.
type node struct {
	children map[string]*node
	opening  *Opening
}

func newNode() *node {
	return &node{children: make(map[string]*node)}
}

// Book classifies games by walking their moves through an opening trie.
// It is safe for concurrent lookups once loaded.
type Book struct {
	root          *node
	entriesLoaded int
	maxHalfMoves  int
}

// NewBook creates an empty book.
func NewBook() *Book {
	return &Book{root: newNode()}
}

var (
	defaultOnce sync.Once
	defaultECO  *Book
)

// Default returns the book embedded in the binary.
func Default() *Book {
	defaultOnce.Do(func() {
		defaultECO = NewBook()
		if err := defaultECO.LoadText(strings.NewReader(defaultBook)); err != nil {
			panic(fmt.Sprintf("embedded ECO book: %v", err))
		}
	})
	return defaultECO
}

// Open loads a book from a file. Files starting with a tag section are read as
// PGN, anything else as pipe-separated text.
func Open(filename string) (*Book, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("cannot open ECO file: %w", err)
	}
	defer file.Close()

	b := NewBook()
	br := bufio.NewReader(file)
	if isPGN(br) {
		err = b.LoadPGN(br, filename)
	} else {
		err = b.LoadText(br)
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// isPGN peeks at the first non-blank byte.
func isPGN(br *bufio.Reader) bool {
	for n := 1; ; n++ {
		buf, err := br.Peek(n)
		if len(buf) < n {
			return false
		}
		switch buf[n-1] {
		case ' ', '\t', '\r', '\n':
			if err != nil {
				return false
			}
			continue
		case '[':
			return true
		}
		return false
	}
}

// LoadPGN adds one entry per game that has an ECO tag. Games that fail to
// replay are skipped.
func (b *Book) LoadPGN(r io.Reader, source string) error {
	cfg := config.NewConfig()
	cfg.Verbosity = 0
	cfg.LogFile = io.Discard

	imp := pgn.NewImporter(cfg)
	imp.OnError = func(error) {}
	err := imp.Run(r, source, func(g *game.Game) error {
		if !g.HasTag(game.TagECO) {
			return nil
		}
		b.add(&Opening{
			ECO:       g.Tag(game.TagECO),
			Name:      g.Tag(game.TagOpening),
			Variation: g.Tag(game.TagVariation),
		}, g)
		return nil
	})
	if err != nil {
		return fmt.Errorf("error parsing ECO file: %w", err)
	}
	return nil
}

// LoadText reads lines of the form "ECO|Opening|Variation|moves". Blank lines and
// lines starting with '#' are ignored. Move numbers in the move list are allowed.
func (b *Book) LoadText(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.SplitN(line, "|", 4)
		if len(fields) != 4 {
			return fmt.Errorf("line %d: want 4 fields, got %d: %w", lineNum, len(fields), errors.ErrParseFailure)
		}

		g := game.New()
		for _, tok := range strings.Fields(fields[3]) {
			if strings.HasSuffix(tok, ".") {
				continue
			}
			if err := g.PlayNotation(notation.SAN, tok); err != nil {
				return fmt.Errorf("line %d: %w", lineNum, err)
			}
		}
		b.add(&Opening{
			ECO:       strings.TrimSpace(fields[0]),
			Name:      strings.TrimSpace(fields[1]),
			Variation: strings.TrimSpace(fields[2]),
		}, g)
	}
	return scanner.Err()
}

// add stores o at the end of g's move path. The first entry for a path wins.
func (b *Book) add(o *Opening, g *game.Game) {
	if g.InitialFEN() != engine.InitialFEN || g.PlyCount() == 0 {
		return
	}
	moves, err := englishSAN(g)
	if err != nil {
		return
	}

	n := b.root
	for _, san := range moves {
		child, ok := n.children[san]
		if !ok {
			child = newNode()
			n.children[san] = child
		}
		n = child
	}
	if n.opening != nil {
		return
	}
	n.opening = o
	b.entriesLoaded++
	if len(moves) > b.maxHalfMoves {
		b.maxHalfMoves = len(moves)
	}
}

// Lookup returns the deepest classified opening along g's moves, or nil.
// Games from a set-up position are not classified.
func (b *Book) Lookup(g *game.Game) *Opening {
	if b.entriesLoaded == 0 || g.InitialFEN() != engine.InitialFEN {
		return nil
	}

	pos := engine.NewPosition()
	var best *Opening
	n := b.root
	for _, m := range g.Moves() {
		san, err := notation.Format(pos, notation.SAN, notation.English, m)
		if err != nil {
			break
		}
		child, ok := n.children[san]
		if !ok {
			break
		}
		if child.opening != nil {
			best = child.opening
		}
		n = child
		pos.Play(m, false)
	}
	return best
}

// AddTags sets the ECO, Opening and Variation tags of g from its classification.
func (b *Book) AddTags(g *game.Game) bool {
	match := b.Lookup(g)
	if match == nil {
		return false
	}

	g.SetTag(game.TagECO, match.ECO)
	if match.Name != "" {
		g.SetTag(game.TagOpening, match.Name)
	}
	if match.Variation != "" {
		g.SetTag(game.TagVariation, match.Variation)
	}
	return true
}

// EntriesLoaded returns the number of ECO entries loaded.
func (b *Book) EntriesLoaded() int {
	return b.entriesLoaded
}

// MaxHalfMoves returns the length of the longest line in the book.
func (b *Book) MaxHalfMoves() int {
	return b.maxHalfMoves
}

func englishSAN(g *game.Game) ([]string, error) {
	pos := engine.NewPosition()
	list := make([]string, 0, g.PlyCount())
	for _, m := range g.Moves() {
		san, err := notation.Format(pos, notation.SAN, notation.English, m)
		if err != nil {
			return nil, err
		}
		list = append(list, san)
		pos.Play(m, false)
	}
	return list, nil
}
