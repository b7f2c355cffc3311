package config

import (
	"fmt"

	"github.com/lgbarn/chessgame-go/internal/errors"
	"github.com/lgbarn/chessgame-go/internal/notation"
)

// TagOutputForm specifies which tags to output.
type TagOutputForm int

const (
	AllTags        TagOutputForm = 0
	SevenTagRoster TagOutputForm = 1
	NoTags         TagOutputForm = 2
)

// DefaultLineLength is the PGN movetext wrap width.
const DefaultLineLength = 78

// minLineLength leaves room for the longest move number and SAN token.
const minLineLength = 20

// OutputConfig holds settings related to output formatting.
type OutputConfig struct {
	// Notation selects the move notation of notation lists
	Notation notation.Type

	// MaxLineLength is the maximum line length for PGN movetext
	MaxLineLength uint

	// JSONFormat enables JSON output instead of PGN
	JSONFormat bool

	// MovesOnly prints the notation list instead of PGN
	MovesOnly bool

	// KeepComments controls whether comments are kept in output
	KeepComments bool

	// KeepVariations controls whether variations (RAV) are kept
	KeepVariations bool

	// TagFormat specifies which tags to output (AllTags, SevenTagRoster, NoTags)
	TagFormat TagOutputForm
}

// NewOutputConfig creates an OutputConfig with default values.
func NewOutputConfig() *OutputConfig {
	return &OutputConfig{
		Notation:       notation.SAN,
		MaxLineLength:  DefaultLineLength,
		KeepComments:   true,
		KeepVariations: true,
		TagFormat:      AllTags,
	}
}

// Validate checks that the output configuration is usable.
func (o *OutputConfig) Validate() error {
	if o.MaxLineLength < minLineLength {
		return fmt.Errorf("line length %d below %d: %w", o.MaxLineLength, minLineLength, errors.ErrInvalidConfig)
	}
	return nil
}
