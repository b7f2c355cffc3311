package game

import "golang.org/x/exp/maps"

// Tag names used by the importer, the exporter and the opening classifier.
const (
	TagEvent     = "Event"
	TagSite      = "Site"
	TagDate      = "Date"
	TagRound     = "Round"
	TagWhite     = "White"
	TagBlack     = "Black"
	TagResult    = "Result"
	TagWhiteElo  = "WhiteElo"
	TagBlackElo  = "BlackElo"
	TagECO       = "ECO"
	TagOpening   = "Opening"
	TagVariation = "Variation"
	TagFEN       = "FEN"
	TagSetUp     = "SetUp"
	TagAnnotator = "Annotator"
	TagPlyCount  = "PlyCount"
)

// SevenTagRoster contains the seven required PGN tags in order.
var SevenTagRoster = []string{
	TagEvent,
	TagSite,
	TagDate,
	TagRound,
	TagWhite,
	TagBlack,
	TagResult,
}

// IsSevenTagRosterTag returns true if the tag is one of the seven required tags.
func IsSevenTagRosterTag(tag string) bool {
	for _, t := range SevenTagRoster {
		if t == tag {
			return true
		}
	}
	return false
}

// TagPair is a single PGN tag.
type TagPair struct {
	Name  string
	Value string
}

// Comment is a movetext annotation. Variations are kept verbatim as text, without
// the enclosing parentheses.
type Comment struct {
	Text      string
	Variation bool
}

// String returns the comment as it appears in movetext.
func (c Comment) String() string {
	if c.Variation {
		return "(" + c.Text + ")"
	}
	return "{" + c.Text + "}"
}

// PGNData holds the tags and comments that travel with a game. Comments are keyed by
// 0-based ply index: "before" comments precede the move, "after" comments follow it.
type PGNData struct {
	tags   map[string]string
	order  []string
	before map[int][]Comment
	after  map[int][]Comment
}

// Tag returns a tag value, or empty string if not present.
func (d *PGNData) Tag(name string) string {
	return d.tags[name]
}

// HasTag returns true if the tag is present.
func (d *PGNData) HasTag(name string) bool {
	_, ok := d.tags[name]
	return ok
}

// SetTag sets a tag value. New tags keep their insertion order.
func (d *PGNData) SetTag(name, value string) {
	if d.tags == nil {
		d.tags = make(map[string]string)
	}
	if _, ok := d.tags[name]; !ok {
		d.order = append(d.order, name)
	}
	d.tags[name] = value
}

// DeleteTag removes a tag.
func (d *PGNData) DeleteTag(name string) {
	if _, ok := d.tags[name]; !ok {
		return
	}
	delete(d.tags, name)
	for i, n := range d.order {
		if n == name {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
}

// Tags returns the tags in insertion order.
func (d *PGNData) Tags() []TagPair {
	pairs := make([]TagPair, 0, len(d.order))
	for _, name := range d.order {
		pairs = append(pairs, TagPair{Name: name, Value: d.tags[name]})
	}
	return pairs
}

// AddCommentBefore attaches a comment in front of the move at ply.
func (d *PGNData) AddCommentBefore(ply int, c Comment) {
	if d.before == nil {
		d.before = make(map[int][]Comment)
	}
	d.before[ply] = append(d.before[ply], c)
}

// AddCommentAfter attaches a comment behind the move at ply.
func (d *PGNData) AddCommentAfter(ply int, c Comment) {
	if d.after == nil {
		d.after = make(map[int][]Comment)
	}
	d.after[ply] = append(d.after[ply], c)
}

// CommentsBefore returns the comments in front of the move at ply.
func (d *PGNData) CommentsBefore(ply int) []Comment {
	return d.before[ply]
}

// CommentsAfter returns the comments behind the move at ply.
func (d *PGNData) CommentsAfter(ply int) []Comment {
	return d.after[ply]
}

func (d *PGNData) clone() PGNData {
	c := PGNData{
		tags:  maps.Clone(d.tags),
		order: append([]string(nil), d.order...),
	}
	c.before = cloneComments(d.before)
	c.after = cloneComments(d.after)
	return c
}

func cloneComments(m map[int][]Comment) map[int][]Comment {
	if m == nil {
		return nil
	}
	c := make(map[int][]Comment, len(m))
	for k, v := range m {
		c[k] = append([]Comment(nil), v...)
	}
	return c
}

// White returns the White player name.
func (d *PGNData) White() string {
	return d.Tag(TagWhite)
}

// Black returns the Black player name.
func (d *PGNData) Black() string {
	return d.Tag(TagBlack)
}

// Event returns the event name.
func (d *PGNData) Event() string {
	return d.Tag(TagEvent)
}

// Date returns the date string.
func (d *PGNData) Date() string {
	return d.Tag(TagDate)
}

// ECO returns the ECO code.
func (d *PGNData) ECO() string {
	return d.Tag(TagECO)
}
