package config

import (
	"io"

	"github.com/lgbarn/chessgame-go/internal/notation"
)

// ConfigBuilder provides a fluent API for building Config instances.
type ConfigBuilder struct {
	cfg *Config
}

// NewConfigBuilder creates a new ConfigBuilder with default values.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		cfg: NewConfig(),
	}
}

// Build returns the built Config.
func (b *ConfigBuilder) Build() *Config {
	return b.cfg
}

// WithNotation sets the notation of move lists.
func (b *ConfigBuilder) WithNotation(t notation.Type) *ConfigBuilder {
	b.cfg.Output.Notation = t
	return b
}

// WithLanguage sets the notation language code.
func (b *ConfigBuilder) WithLanguage(code string) *ConfigBuilder {
	b.cfg.Language = code
	return b
}

// WithEncoding sets the input character set.
func (b *ConfigBuilder) WithEncoding(e Encoding) *ConfigBuilder {
	b.cfg.Encoding = e
	return b
}

// WithMaxLineLength sets the maximum line length.
func (b *ConfigBuilder) WithMaxLineLength(length uint) *ConfigBuilder {
	b.cfg.Output.MaxLineLength = length
	return b
}

// WithJSONOutput enables JSON output.
func (b *ConfigBuilder) WithJSONOutput(enabled bool) *ConfigBuilder {
	b.cfg.Output.JSONFormat = enabled
	return b
}

// WithWorkers sets the number of replay workers.
func (b *ConfigBuilder) WithWorkers(n int) *ConfigBuilder {
	b.cfg.Workers = n
	return b
}

// WithECO enables opening classification from book; "" selects the embedded book.
func (b *ConfigBuilder) WithECO(book string) *ConfigBuilder {
	b.cfg.AddECO = true
	b.cfg.BookFile = book
	return b
}

// WithStore enables the game archive in dir.
func (b *ConfigBuilder) WithStore(dir string) *ConfigBuilder {
	b.cfg.StoreDir = dir
	return b
}

// WithDuplicateSuppression enables duplicate suppression.
func (b *ConfigBuilder) WithDuplicateSuppression(enabled bool) *ConfigBuilder {
	b.cfg.Duplicate.Suppress = enabled
	return b
}

// WithMoveBounds sets move bounds for filtering.
func (b *ConfigBuilder) WithMoveBounds(lower, upper uint) *ConfigBuilder {
	b.cfg.Filter.CheckMoveBounds = true
	b.cfg.Filter.LowerMoveBound = lower
	b.cfg.Filter.UpperMoveBound = upper
	return b
}

// WithCheckmateFilter enables checkmate-only filtering.
func (b *ConfigBuilder) WithCheckmateFilter(enabled bool) *ConfigBuilder {
	b.cfg.Filter.MatchCheckmate = enabled
	return b
}

// WithStalemateFilter enables stalemate-only filtering.
func (b *ConfigBuilder) WithStalemateFilter(enabled bool) *ConfigBuilder {
	b.cfg.Filter.MatchStalemate = enabled
	return b
}

// WithFENComments enables FEN comments.
func (b *ConfigBuilder) WithFENComments(enabled bool) *ConfigBuilder {
	b.cfg.Annotation.AddFENComments = enabled
	return b
}

// WithPlyCount enables the PlyCount tag.
func (b *ConfigBuilder) WithPlyCount(enabled bool) *ConfigBuilder {
	b.cfg.Annotation.AddPlyCount = enabled
	return b
}

// WithOutput sets the output writer.
func (b *ConfigBuilder) WithOutput(w io.Writer) *ConfigBuilder {
	b.cfg.OutputFile = w
	return b
}

// WithLog sets the diagnostic writer.
func (b *ConfigBuilder) WithLog(w io.Writer) *ConfigBuilder {
	b.cfg.LogFile = w
	return b
}

// WithVerbosity sets the verbosity level.
func (b *ConfigBuilder) WithVerbosity(level int) *ConfigBuilder {
	b.cfg.Verbosity = level
	return b
}

// KeepComments controls whether comments are kept.
func (b *ConfigBuilder) KeepComments(keep bool) *ConfigBuilder {
	b.cfg.Output.KeepComments = keep
	return b
}

// KeepVariations controls whether variations are kept.
func (b *ConfigBuilder) KeepVariations(keep bool) *ConfigBuilder {
	b.cfg.Output.KeepVariations = keep
	return b
}
