package pgn

import (
	"fmt"
	"io"

	"github.com/lgbarn/chessgame-go/internal/config"
	"github.com/lgbarn/chessgame-go/internal/errors"
	"github.com/lgbarn/chessgame-go/internal/game"
)

// RawGame is a game as written in the input: tags, move text and comments,
// not yet checked against the rules.
type RawGame struct {
	Tags   []game.TagPair
	Plies  []RawPly
	Result string // "" when the game had no termination marker

	Number int // 1-based position in the input
	Line   int // line of the first token
	Source string
}

// Tag returns the value of the first tag called name.
func (g *RawGame) Tag(name string) (string, bool) {
	for _, t := range g.Tags {
		if t.Name == name {
			return t.Value, true
		}
	}
	return "", false
}

// RawPly is one move token with the move number written in front of it and the
// comments around it.
type RawPly struct {
	Number int  // 0 when no move number preceded the move
	Black  bool // the move number used the "n..." form
	Text   string
	Line   int
	Column int
	Before []game.Comment
	After  []game.Comment
}

// Parser parses PGN input into RawGame structures.
type Parser struct {
	lexer        *Lexer
	currentToken *Token
	cfg          *config.Config
	source       string
	games        int
}

// NewParser creates a new parser for the given reader.
// If cfg is nil, a default config is created.
func NewParser(r io.Reader, cfg *config.Config) *Parser {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return &Parser{
		lexer: NewLexer(r, cfg),
		cfg:   cfg,
	}
}

// SetSource names the input in errors, usually with a file name.
func (p *Parser) SetSource(name string) {
	p.source = name
}

// nextToken gets the next token from the lexer.
func (p *Parser) nextToken() {
	p.currentToken = p.lexer.NextToken()
}

func (p *Parser) warnf(format string, args ...any) {
	if p.cfg.LogFile != nil {
		fmt.Fprintf(p.cfg.LogFile, format+"\n", args...)
	}
}

// ParseGame parses a single game from the input. It returns nil, nil once the
// input is exhausted. On a syntax error the partial game is returned together
// with a *errors.ParseError, and the parser is positioned at the next game.
func (p *Parser) ParseGame() (*RawGame, error) {
	if p.currentToken == nil {
		p.nextToken()
	}

	p.skipToNextGame()
	if p.currentToken.Type == EOFToken {
		return nil, p.lexer.Err()
	}

	p.games++
	raw := &RawGame{
		Number: p.games,
		Line:   p.currentToken.Line,
		Source: p.source,
	}

	raw.Tags = p.parseOptTagList()

	plies, err := p.parseMoveList()
	raw.Plies = plies
	if err != nil {
		p.resync()
		return raw, err
	}

	if p.currentToken.Type != TerminatingResult {
		err := p.unexpected("game termination")
		p.resync()
		return raw, err
	}
	raw.Result = p.currentToken.Text
	p.nextToken()

	return raw, nil
}

// ParseAllGames parses all games from the input. Parsing stops at the first error.
func (p *Parser) ParseAllGames() ([]*RawGame, error) {
	games := make([]*RawGame, 0, 100)

	for {
		g, err := p.ParseGame()
		if err != nil {
			return games, err
		}
		if g == nil {
			break
		}
		games = append(games, g)
	}

	return games, nil
}

// skipToNextGame skips tokens until the start of a game is found.
func (p *Parser) skipToNextGame() {
	for {
		switch p.currentToken.Type {
		case EOFToken, TagToken, MoveToken, MoveNumber, TerminatingResult:
			return
		default:
			p.nextToken()
		}
	}
}

// resync drops the rest of a broken game, stopping at the next tag section.
func (p *Parser) resync() {
	for p.currentToken.Type != EOFToken && p.currentToken.Type != TagToken {
		p.nextToken()
	}
}

// parseOptTagList parses zero or more tags.
func (p *Parser) parseOptTagList() []game.TagPair {
	var tags []game.TagPair
	for {
		switch p.currentToken.Type {
		case TagToken:
			name := p.currentToken.Text
			line := p.currentToken.Line
			p.nextToken()

			if p.currentToken.Type == StringToken {
				tags = append(tags, game.TagPair{Name: name, Value: p.currentToken.Text})
				p.nextToken()
			} else {
				p.warnf("Missing tag string for %s on line %d.", name, line)
			}
		case StringToken:
			p.warnf("Missing tag name for %s on line %d.", p.currentToken.Text, p.currentToken.Line)
			p.nextToken()
		default:
			return tags
		}
	}
}

// parseMoveList parses moves up to the game termination. Comments written after a
// move number belong in front of the following move. Other comments follow the
// move they come after, or precede the first move when there is none yet.
func (p *Parser) parseMoveList() ([]RawPly, error) {
	var (
		plies   []RawPly
		pending []game.Comment
		number  int
		black   bool
	)

	for {
		tok := p.currentToken
		switch tok.Type {
		case MoveNumber:
			number, black = tok.MoveNum, tok.Dots >= 3

		case CommentToken, VariationToken:
			c := game.Comment{Text: tok.Text, Variation: tok.Type == VariationToken}
			if len(plies) == 0 || number != 0 {
				pending = append(pending, c)
			} else {
				last := &plies[len(plies)-1]
				last.After = append(last.After, c)
			}

		case NAGToken:
			// annotations are not kept

		case MoveToken:
			plies = append(plies, RawPly{
				Number: number,
				Black:  black,
				Text:   tok.Text,
				Line:   tok.Line,
				Column: tok.Column,
				Before: pending,
			})
			pending, number, black = nil, 0, false

		case ErrorToken:
			return plies, p.unexpected("move")

		default:
			if len(pending) > 0 {
				if len(plies) == 0 {
					p.warnf("Comments without moves on line %d.", tok.Line)
				} else {
					last := &plies[len(plies)-1]
					last.After = append(last.After, pending...)
				}
			}
			return plies, nil
		}
		p.nextToken()
	}
}

// unexpected builds a ParseError for the current token.
func (p *Parser) unexpected(expected string) error {
	tok := p.currentToken
	got := tok.Type.String()
	if tok.Text != "" {
		got = fmt.Sprintf("%s %q", got, tok.Text)
	}
	return &errors.ParseError{
		Err:      errors.ErrParseFailure,
		File:     p.source,
		Line:     tok.Line,
		Column:   tok.Column,
		Expected: expected,
		Got:      got,
	}
}
