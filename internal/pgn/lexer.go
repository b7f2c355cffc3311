package pgn

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/lgbarn/chessgame-go/internal/config"
)

// Lexer tokenizes PGN input.
type Lexer struct {
	reader  *bufio.Reader
	line    string
	pos     int
	lineNum int
	eof     bool
	err     error
	log     io.Writer

	// start of the symbol being gathered
	startLine int
	startCol  int
}

// Character classification table
var chTab [256]TokenType

// Move character classification table
var moveChars [256]bool

func init() {
	initLexTables()
}

// initLexTables initializes the character classification tables.
func initLexTables() {
	for i := range chTab {
		chTab[i] = ErrorToken
	}

	for _, c := range []byte{' ', '\t', '\r', '\n', '\f', '\v'} {
		chTab[c] = Whitespace
	}

	chTab['['] = TagStart
	chTab[']'] = TagEnd
	chTab['"'] = DoubleQuote
	chTab['{'] = CommentStart
	chTab['}'] = CommentEnd
	chTab[';'] = LineComment
	chTab['$'] = NAGToken
	chTab['!'] = Annotate
	chTab['?'] = Annotate
	chTab['.'] = Dot
	chTab['('] = RAVStart
	chTab[')'] = RAVEnd
	chTab['%'] = Percent
	chTab['*'] = Star
	chTab['-'] = Dash

	for c := byte('0'); c <= '9'; c++ {
		chTab[c] = Digit
	}
	for c := byte('A'); c <= 'Z'; c++ {
		chTab[c] = Alpha
		chTab[c+32] = Alpha
	}
	// UTF-8 sequences: localized piece letters and figurines
	for c := 0x80; c < 0x100; c++ {
		chTab[c] = Alpha
	}

	initMoveChars()
}

// initMoveChars initializes the move character classification table.
func initMoveChars() {
	for c := 0; c < 0x100; c++ {
		moveChars[c] = chTab[c] == Alpha || chTab[c] == Digit
	}
	for _, c := range []byte{'x', ':', '-', '=', '+', '#'} {
		moveChars[c] = true
	}
}

// NewLexer creates a new lexer for the given reader. Latin-1 input is decoded to
// UTF-8 when cfg asks for it. If cfg is nil, a default config is used.
func NewLexer(r io.Reader, cfg *config.Config) *Lexer {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	if cfg.Encoding == config.Latin1 {
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	}
	return &Lexer{
		reader: bufio.NewReader(r),
		log:    cfg.LogFile,
	}
}

// Err returns the read error that ended the input, if any.
func (l *Lexer) Err() error {
	return l.err
}

func (l *Lexer) warnf(format string, args ...any) {
	if l.log != nil {
		fmt.Fprintf(l.log, format+"\n", args...)
	}
}

// readLine reads the next line from input.
func (l *Lexer) readLine() bool {
	if l.eof {
		return false
	}
	line, err := l.reader.ReadString('\n')
	if err != nil {
		if err != io.EOF {
			l.err = err
		}
		l.eof = true
		if len(line) == 0 {
			return false
		}
	}
	l.line = line
	l.pos = 0
	l.lineNum++
	return true
}

// currentChar returns the current character or 0 if at end of line.
func (l *Lexer) currentChar() byte {
	if l.pos >= len(l.line) {
		return 0
	}
	return l.line[l.pos]
}

// advance moves to the next character.
func (l *Lexer) advance() {
	if l.pos < len(l.line) {
		l.pos++
	}
}

// skipWhile advances over characters of class t.
func (l *Lexer) skipWhile(t TokenType) {
	for l.pos < len(l.line) && chTab[l.currentChar()] == t {
		l.advance()
	}
}

// NextToken returns the next token from the input.
func (l *Lexer) NextToken() *Token {
	for {
		token := l.getNextSymbol()
		if token.Type != NoToken {
			token.Line = l.startLine
			token.Column = l.startCol
			return token
		}
	}
}

// getNextSymbol identifies the next symbol.
func (l *Lexer) getNextSymbol() *Token {
	if l.pos >= len(l.line) {
		if !l.readLine() {
			l.startLine, l.startCol = l.lineNum, l.pos+1
			return &Token{Type: EOFToken}
		}
		return &Token{Type: NoToken}
	}

	l.startLine, l.startCol = l.lineNum, l.pos+1
	ch := l.currentChar()
	symbolStart := l.pos
	l.advance()

	switch chTab[ch] {
	case Whitespace:
		l.skipWhile(Whitespace)
		return &Token{Type: NoToken}

	case TagStart:
		return l.gatherTag()

	case TagEnd:
		return &Token{Type: NoToken}

	case DoubleQuote:
		return l.gatherString()

	case CommentStart:
		return l.gatherComment()

	case CommentEnd:
		l.warnf("Unmatched comment end on line %d.", l.lineNum)
		return &Token{Type: NoToken}

	case LineComment:
		text := strings.TrimSpace(l.line[l.pos:])
		l.pos = len(l.line)
		return &Token{Type: CommentToken, Text: text}

	case NAGToken:
		start := l.pos
		l.skipWhile(Digit)
		return &Token{Type: NAGToken, Text: "$" + l.line[start:l.pos]}

	case Annotate:
		l.skipWhile(Annotate)
		return &Token{Type: NAGToken, Text: annotationToNAG(l.line[symbolStart:l.pos])}

	case Dot:
		l.skipWhile(Dot)
		return &Token{Type: NoToken}

	case RAVStart:
		return l.gatherVariation()

	case RAVEnd:
		l.warnf("Too many ')' found on line %d.", l.lineNum)
		return &Token{Type: NoToken}

	case Percent:
		// escape mechanism: the rest of the line is ignored
		l.pos = len(l.line)
		return &Token{Type: NoToken}

	case Alpha:
		return l.gatherMove(symbolStart)

	case Digit:
		return l.gatherNumeric(ch)

	case Star:
		return &Token{Type: TerminatingResult, Text: "*"}

	case Dash:
		if l.currentChar() == '-' {
			l.advance()
			return &Token{Type: ErrorToken, Text: "--"}
		}
		l.warnf("Single '-' not allowed on line %d.", l.lineNum)
		return &Token{Type: NoToken}

	default:
		l.warnf("Unknown character %c (0x%x) on line %d.", ch, ch, l.lineNum)
		l.skipWhile(ErrorToken)
		return &Token{Type: NoToken}
	}
}

// gatherTag gathers a tag name after '['.
func (l *Lexer) gatherTag() *Token {
	l.skipWhile(Whitespace)

	start := l.pos
	for l.pos < len(l.line) {
		ch := l.currentChar()
		if ch < 0x80 && (chTab[ch] == Alpha || chTab[ch] == Digit || ch == '_') {
			l.advance()
		} else {
			break
		}
	}

	if l.pos > start {
		return &Token{Type: TagToken, Text: l.line[start:l.pos]}
	}
	return &Token{Type: NoToken}
}

// gatherString gathers a quoted string, resolving \" and \\ escapes.
func (l *Lexer) gatherString() *Token {
	var sb strings.Builder
	escaped := false

	for l.pos < len(l.line) {
		ch := l.currentChar()
		l.advance()

		switch {
		case escaped:
			sb.WriteByte(ch)
			escaped = false
		case ch == '\\':
			escaped = true
		case ch == '"':
			return &Token{Type: StringToken, Text: sb.String()}
		case ch == '\n' || ch == '\r':
		default:
			sb.WriteByte(ch)
		}
	}

	l.warnf("Missing closing quote on line %d.", l.lineNum)
	return &Token{Type: StringToken, Text: sb.String()}
}

// gatherComment gathers a brace comment, which may span lines.
func (l *Lexer) gatherComment() *Token {
	var sb strings.Builder
	for {
		for l.pos < len(l.line) {
			ch := l.currentChar()
			l.advance()
			if ch == '}' {
				return &Token{Type: CommentToken, Text: collapseSpace(sb.String())}
			}
			sb.WriteByte(ch)
		}
		if !l.readLine() {
			break
		}
	}

	l.warnf("Missing end of comment.")
	return &Token{Type: CommentToken, Text: collapseSpace(sb.String())}
}

// gatherVariation gathers the text of a recursive annotation variation up to the
// matching ')'. Parentheses inside comments do not count.
func (l *Lexer) gatherVariation() *Token {
	var sb strings.Builder
	depth := 1
	inComment := false
	for {
		for l.pos < len(l.line) {
			ch := l.currentChar()
			l.advance()
			switch {
			case inComment:
				inComment = ch != '}'
			case ch == '{':
				inComment = true
			case ch == '(':
				depth++
			case ch == ')':
				depth--
				if depth == 0 {
					return &Token{Type: VariationToken, Text: collapseSpace(sb.String())}
				}
			}
			sb.WriteByte(ch)
		}
		if !l.readLine() {
			break
		}
	}

	l.warnf("Missing ')' to close variation.")
	return &Token{Type: VariationToken, Text: collapseSpace(sb.String())}
}

// collapseSpace joins the words of s with single spaces.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// gatherMove handles alpha characters (potential moves).
func (l *Lexer) gatherMove(symbolStart int) *Token {
	for l.pos < len(l.line) && moveChars[l.currentChar()] {
		l.advance()
	}

	text := normalizeCastle(l.line[symbolStart:l.pos])
	if moveSeemValid(text) {
		return &Token{Type: MoveToken, Text: text}
	}
	return &Token{Type: ErrorToken, Text: text}
}

// gatherNumeric handles numeric tokens (move numbers, results, castling).
func (l *Lexer) gatherNumeric(initialDigit byte) *Token {
	remaining := l.line[l.pos:]

	switch initialDigit {
	case '0':
		// Could be 0-1 (result) or 0-0 / 0-0-0 (castling)
		if strings.HasPrefix(remaining, "-1") {
			l.pos += 2
			return &Token{Type: TerminatingResult, Text: "0-1"}
		}
		if strings.HasPrefix(remaining, "-0-0") {
			l.pos += 4
			return l.gatherCastleSuffix("O-O-O")
		}
		if strings.HasPrefix(remaining, "-0") {
			l.pos += 2
			return l.gatherCastleSuffix("O-O")
		}
	case '1':
		if strings.HasPrefix(remaining, "-0") {
			l.pos += 2
			return &Token{Type: TerminatingResult, Text: "1-0"}
		}
		if strings.HasPrefix(remaining, "/2") {
			l.pos += 2
			if strings.HasPrefix(l.line[l.pos:], "-1/2") {
				l.pos += 4
			}
			return &Token{Type: TerminatingResult, Text: "1/2-1/2"}
		}
	}

	return l.gatherMoveNumber()
}

// gatherCastleSuffix keeps a check or mate marker written after 0-0.
func (l *Lexer) gatherCastleSuffix(text string) *Token {
	start := l.pos
	for l.currentChar() == '+' || l.currentChar() == '#' {
		l.advance()
	}
	return &Token{Type: MoveToken, Text: text + l.line[start:l.pos]}
}

// gatherMoveNumber parses a move number token and its dots.
func (l *Lexer) gatherMoveNumber() *Token {
	start := l.pos - 1
	l.skipWhile(Digit)
	num, err := strconv.Atoi(l.line[start:l.pos])
	if err != nil {
		return &Token{Type: ErrorToken, Text: l.line[start:l.pos]}
	}

	dotStart := l.pos
	l.skipWhile(Dot)
	return &Token{Type: MoveNumber, MoveNum: num, Dots: l.pos - dotStart}
}

// normalizeCastle rewrites the o-o and 0-0 spellings of castling as O-O.
func normalizeCastle(text string) string {
	body := strings.TrimRight(text, "+#")
	switch body {
	case "o-o", "0-0":
		return "O-O" + text[len(body):]
	case "o-o-o", "0-0-0":
		return "O-O-O" + text[len(body):]
	}
	return text
}

// annotationToNAG converts annotation symbols to NAG strings.
func annotationToNAG(text string) string {
	switch text {
	case "!":
		return "$1"
	case "?":
		return "$2"
	case "!!":
		return "$3"
	case "??":
		return "$4"
	case "!?":
		return "$5"
	case "?!":
		return "$6"
	default:
		return "$0"
	}
}

// moveSeemValid does a basic check if the move text looks valid.
func moveSeemValid(text string) bool {
	if len(text) < 2 {
		return false
	}

	body := strings.TrimRight(text, "+#")
	if body == "O-O" || body == "O-O-O" {
		return true
	}

	// Must contain at least one file (a-h) and one rank (1-8)
	hasFile := false
	hasRank := false
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c >= 'a' && c <= 'h' {
			hasFile = true
		}
		if c >= '1' && c <= '8' {
			hasRank = true
		}
	}

	return hasFile && hasRank
}

// LineNumber returns the current line number.
func (l *Lexer) LineNumber() int {
	return l.lineNum
}
