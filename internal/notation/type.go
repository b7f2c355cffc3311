// Package notation converts moves to and from SAN, LAN, UCI and FAN text. Every
// conversion consults the legality filter of the position it is given.
package notation

import (
	"fmt"
	"strings"

	"github.com/lgbarn/chessgame-go/internal/errors"
)

// Type selects a notation.
type Type int

const (
	SAN Type = iota // short algebraic
	LAN             // long algebraic
	UCI             // coordinate notation of the UCI protocol
	FAN             // figurine algebraic
)

var typeNames = [...]string{"SAN", "LAN", "UCI", "FAN"}

// String returns the notation name.
func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return fmt.Sprintf("Type(%d)", int(t))
	}
	return typeNames[t]
}

// ParseType converts a case-insensitive name such as "san" to a Type.
func ParseType(name string) (Type, error) {
	for i, n := range typeNames {
		if strings.EqualFold(n, name) {
			return Type(i), nil
		}
	}
	return SAN, fmt.Errorf("unknown notation %q: %w", name, errors.ErrInvalidConfig)
}
