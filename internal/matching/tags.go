// Package matching selects games by their tag values.
package matching

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/lgbarn/chessgame-go/internal/errors"
	"github.com/lgbarn/chessgame-go/internal/game"
)

// TagOperator represents comparison operators for tag matching.
type TagOperator int

const (
	OpEqual TagOperator = iota
	OpNotEqual
	OpLessThan
	OpLessOrEqual
	OpGreaterThan
	OpGreaterOrEqual
	OpContains // substring match
	OpRegex    // regex match
	OpSoundex  // soundex match for names
)

// playerTag matches either White or Black.
const playerTag = "_Player"

// TagCriterion represents a single tag matching criterion.
type TagCriterion struct {
	TagName  string
	Value    string
	Operator TagOperator

	regex   *regexp.Regexp
	soundex string
	lower   string
}

// TagMatcher selects games whose tags satisfy every criterion, or any one of
// them when MatchAny is set.
type TagMatcher struct {
	criteria   []*TagCriterion
	useSoundex bool
	matchAny   bool
}

// NewTagMatcher creates a new tag matcher.
func NewTagMatcher() *TagMatcher {
	return &TagMatcher{}
}

// SetMatchAny makes a single matching criterion enough.
func (tm *TagMatcher) SetMatchAny(enabled bool) {
	tm.matchAny = enabled
}

// SetUseSoundex compares player names by sound.
func (tm *TagMatcher) SetUseSoundex(use bool) {
	tm.useSoundex = use
}

// AddCriterion adds a tag matching criterion.
func (tm *TagMatcher) AddCriterion(tagName, value string, op TagOperator) error {
	c := &TagCriterion{TagName: tagName, Value: value, Operator: op}

	switch op {
	case OpRegex:
		re, err := regexp.Compile(value)
		if err != nil {
			return fmt.Errorf("tag %s: %v: %w", tagName, err, errors.ErrInvalidConfig)
		}
		c.regex = re
	case OpSoundex:
		c.soundex = Soundex(value)
	case OpContains:
		c.lower = strings.ToLower(value)
	}

	tm.criteria = append(tm.criteria, c)
	return nil
}

// AddPlayerCriterion matches name against either player, by substring or by
// soundex.
func (tm *TagMatcher) AddPlayerCriterion(name string) {
	op := OpContains
	if tm.useSoundex {
		op = OpSoundex
	}
	_ = tm.AddCriterion(playerTag, name, op)
}

// AddPrefixCriterion matches tag values starting with prefix, such as an ECO
// range "B9".
func (tm *TagMatcher) AddPrefixCriterion(tagName, prefix string) {
	_ = tm.AddCriterion(tagName, "^"+regexp.QuoteMeta(prefix), OpRegex)
}

var operators = []struct {
	token string
	op    TagOperator
}{
	{"<=", OpLessOrEqual},
	{">=", OpGreaterOrEqual},
	{"<>", OpNotEqual},
	{"!=", OpNotEqual},
	{"<", OpLessThan},
	{">", OpGreaterThan},
	{"=", OpEqual},
	{"~", OpRegex},
}

// ParseCriterion parses a criterion line such as `Date >= "1990.01.01"` or
// `White "Fischer"`. Blank lines and lines starting with '#' are ignored.
func (tm *TagMatcher) ParseCriterion(line string) error {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}

	tagEnd := strings.IndexAny(line, " \t<>=!~")
	if tagEnd <= 0 {
		return fmt.Errorf("criterion %q: missing value: %w", line, errors.ErrInvalidConfig)
	}
	tagName := line[:tagEnd]
	rest := strings.TrimSpace(line[tagEnd:])

	op := OpEqual
	for _, o := range operators {
		if strings.HasPrefix(rest, o.token) {
			op = o.op
			rest = strings.TrimSpace(rest[len(o.token):])
			break
		}
	}

	value := rest
	if len(value) >= 2 && value[0] == '"' && value[len(value)-1] == '"' {
		value = value[1 : len(value)-1]
	}
	if tagName == game.TagWhite || tagName == game.TagBlack {
		if op == OpEqual && tm.useSoundex {
			op = OpSoundex
		}
	}
	return tm.AddCriterion(tagName, value, op)
}

// Load reads one criterion per line.
func (tm *TagMatcher) Load(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		if err := tm.ParseCriterion(scanner.Text()); err != nil {
			return fmt.Errorf("line %d: %w", lineNum, err)
		}
	}
	return scanner.Err()
}

// MatchGame checks if a game matches the criteria. No criteria match every game.
func (tm *TagMatcher) MatchGame(g *game.Game) bool {
	if len(tm.criteria) == 0 {
		return true
	}

	for _, c := range tm.criteria {
		matches := tm.matchCriterion(g, c)
		if matches == tm.matchAny {
			return matches
		}
	}
	return !tm.matchAny
}

func (tm *TagMatcher) matchCriterion(g *game.Game, c *TagCriterion) bool {
	if c.TagName == playerTag {
		return matchValue(g.White(), c) || matchValue(g.Black(), c)
	}

	if !g.HasTag(c.TagName) {
		return c.Operator == OpNotEqual
	}
	return matchValue(g.Tag(c.TagName), c)
}

func matchValue(tagValue string, c *TagCriterion) bool {
	switch c.Operator {
	case OpEqual:
		return strings.EqualFold(tagValue, c.Value)
	case OpNotEqual:
		return !strings.EqualFold(tagValue, c.Value)
	case OpContains:
		return strings.Contains(strings.ToLower(tagValue), c.lower)
	case OpRegex:
		return c.regex.MatchString(tagValue)
	case OpSoundex:
		return Soundex(tagValue) == c.soundex
	}
	return compareOrdered(compareValues(tagValue, c.Value), c.Operator)
}

func compareOrdered(cmp int, op TagOperator) bool {
	switch op {
	case OpLessThan:
		return cmp < 0
	case OpLessOrEqual:
		return cmp <= 0
	case OpGreaterThan:
		return cmp > 0
	case OpGreaterOrEqual:
		return cmp >= 0
	}
	return false
}

// compareValues orders two tag values as dates (YYYY.MM.DD), then as numbers,
// then case-insensitively as text.
func compareValues(a, b string) int {
	if da, db := parseDate(a), parseDate(b); da > 0 && db > 0 {
		return da - db
	}

	na, errA := strconv.ParseFloat(a, 64)
	nb, errB := strconv.ParseFloat(b, 64)
	if errA == nil && errB == nil {
		switch {
		case na < nb:
			return -1
		case na > nb:
			return 1
		}
		return 0
	}

	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

// parseDate encodes a PGN date as YYYYMMDD. Unknown month or day parts ("??")
// count as 1. Returns 0 if the year is not a number.
func parseDate(s string) int {
	parts := strings.Split(s, ".")

	year, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || year < 100 || year > 3000 {
		return 0
	}

	month, day := 1, 1
	if len(parts) >= 2 {
		if m, err := strconv.Atoi(parts[1]); err == nil && m >= 1 && m <= 12 {
			month = m
		}
	}
	if len(parts) >= 3 {
		if d, err := strconv.Atoi(parts[2]); err == nil && d >= 1 && d <= 31 {
			day = d
		}
	}
	return year*10000 + month*100 + day
}

// CriteriaCount returns the number of criteria.
func (tm *TagMatcher) CriteriaCount() int {
	return len(tm.criteria)
}
