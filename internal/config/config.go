// Package config provides the configuration shared by the chessgame command and the
// PGN tooling.
package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lgbarn/chessgame-go/internal/engine"
	"github.com/lgbarn/chessgame-go/internal/errors"
	"github.com/lgbarn/chessgame-go/internal/notation"
)

// Encoding identifies the character set of PGN input.
type Encoding int

const (
	UTF8 Encoding = iota
	Latin1
)

// ParseEncoding converts "utf-8" or "latin1" (and common aliases) to an Encoding.
func ParseEncoding(s string) (Encoding, error) {
	switch strings.ToLower(s) {
	case "", "utf8", "utf-8":
		return UTF8, nil
	case "latin1", "latin-1", "iso-8859-1", "iso8859-1":
		return Latin1, nil
	}
	return UTF8, fmt.Errorf("encoding %q: %w", s, errors.ErrInvalidConfig)
}

func (e Encoding) String() string {
	if e == Latin1 {
		return "latin1"
	}
	return "utf-8"
}

// Config holds all program configuration.
type Config struct {
	Verbosity int // 0=nothing, 1=game count, 2=running commentary
	Workers   int

	// Language is the notation language code of SAN input and output.
	Language string
	Encoding Encoding

	// ECO classification; BookFile empty means the embedded book.
	AddECO   bool
	BookFile string

	// StoreDir enables the game archive when set.
	StoreDir string

	Perspective engine.Perspective

	Output     *OutputConfig
	Filter     *FilterConfig
	Duplicate  *DuplicateConfig
	Annotation *AnnotationConfig

	OutputFile io.Writer
	LogFile    io.Writer
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Verbosity:   1,
		Workers:     1,
		Language:    notation.DefaultLanguage,
		Encoding:    UTF8,
		Perspective: engine.WhitePerspective,
		Output:      NewOutputConfig(),
		Filter:      NewFilterConfig(),
		Duplicate:   NewDuplicateConfig(),
		Annotation:  NewAnnotationConfig(),
		OutputFile:  os.Stdout,
		LogFile:     os.Stderr,
	}
}

// SetOutput sets the main output stream.
func (c *Config) SetOutput(w io.Writer) {
	c.OutputFile = w
}

// SetLog sets the diagnostic stream.
func (c *Config) SetLog(w io.Writer) {
	c.LogFile = w
}

// Validate checks the configuration for values the rest of the program cannot use.
func (c *Config) Validate() error {
	if _, err := notation.Language(c.Language); err != nil {
		return err
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers (%d) must be at least 1: %w", c.Workers, errors.ErrInvalidConfig)
	}
	if err := c.Output.Validate(); err != nil {
		return err
	}
	return c.Filter.Validate()
}
