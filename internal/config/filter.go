package config

import (
	"fmt"

	"github.com/lgbarn/chessgame-go/internal/errors"
)

// FilterConfig holds settings for selecting games by their replayed outcome.
// All filters are disabled by default.
type FilterConfig struct {
	// Move bounds, in full moves
	CheckMoveBounds bool
	LowerMoveBound  uint
	UpperMoveBound  uint

	// Match conditions
	MatchCheckmate bool
	MatchStalemate bool
	MatchDraw      bool // any rule-based draw
}

// NewFilterConfig creates a FilterConfig with default values.
func NewFilterConfig() *FilterConfig {
	return &FilterConfig{}
}

// Active reports whether any filter is enabled.
func (f *FilterConfig) Active() bool {
	return f.CheckMoveBounds || f.MatchCheckmate || f.MatchStalemate || f.MatchDraw
}

// Validate checks that the filter configuration is valid.
func (f *FilterConfig) Validate() error {
	if f.CheckMoveBounds && f.LowerMoveBound > f.UpperMoveBound {
		return fmt.Errorf("lower move bound (%d) > upper move bound (%d): %w",
			f.LowerMoveBound, f.UpperMoveBound, errors.ErrInvalidConfig)
	}
	return nil
}
