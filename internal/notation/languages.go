package notation

import (
	"fmt"
	"sort"
	"sync"

	"golang.org/x/exp/maps"

	"github.com/lgbarn/chessgame-go/internal/errors"
)

// DefaultLanguage is the language code of the English letters.
const DefaultLanguage = "en"

var (
	// English is the mapping used when no language is given.
	English = mustMapping("K", "Q", "R", "B", "N")

	// Figurines is the mapping used by FAN.
	Figurines = mustMapping("♚", "♛", "♜", "♝", "♞")

	uciLetters = mustMapping("k", "q", "r", "b", "n")
)

var (
	languagesMu sync.RWMutex
	languages   = map[string]*Mapping{
		"en": English,
		"de": mustMapping("K", "D", "T", "L", "S"),
		"fr": mustMapping("R", "D", "T", "F", "C"),
		"ru": mustMapping("Кр", "Ф", "Л", "С", "К"),
		"es": mustMapping("R", "D", "T", "A", "C"),
		"it": mustMapping("R", "D", "T", "A", "C"),
		"id": mustMapping("R", "M", "B", "G", "K"),
		"nl": mustMapping("K", "D", "T", "L", "P"),
		"pt": mustMapping("R", "D", "T", "B", "C"),
		"tr": mustMapping("Ş", "V", "K", "F", "A"),
	}
)

// AddLanguage registers the symbols for a new language code. Existing codes cannot be
// overridden.
func AddLanguage(code, king, queen, rook, bishop, knight string) error {
	m, err := NewMapping(king, queen, rook, bishop, knight)
	if err != nil {
		return fmt.Errorf("language %q: %w", code, err)
	}

	languagesMu.Lock()
	defer languagesMu.Unlock()
	if _, exists := languages[code]; exists {
		return fmt.Errorf("language %q already registered: %w", code, errors.ErrInvalidConfig)
	}
	languages[code] = m
	return nil
}

// Language returns the mapping registered for code.
func Language(code string) (*Mapping, error) {
	languagesMu.RLock()
	defer languagesMu.RUnlock()
	m, ok := languages[code]
	if !ok {
		return nil, fmt.Errorf("%q: %w", code, errors.ErrUnknownLanguage)
	}
	return m, nil
}

// Languages returns the registered language codes in sorted order.
func Languages() []string {
	languagesMu.RLock()
	codes := maps.Keys(languages)
	languagesMu.RUnlock()
	sort.Strings(codes)
	return codes
}
