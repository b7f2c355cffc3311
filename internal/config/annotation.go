package config

// AnnotationConfig holds settings for adding annotations to games.
type AnnotationConfig struct {
	AddFENComments bool // add the FEN after each move as a comment
	AddPlyCount    bool // add a PlyCount tag
	FixResultTags  bool // set a missing or "*" Result tag from the replayed outcome
}

// NewAnnotationConfig creates an AnnotationConfig with default values.
// All boolean fields default to false (Go zero value).
func NewAnnotationConfig() *AnnotationConfig {
	return &AnnotationConfig{}
}
