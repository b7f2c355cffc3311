// Package hashing provides duplicate detection for chess games.
package hashing

import (
	"sync"

	"github.com/cespare/xxhash/v2"

	"github.com/lgbarn/chessgame-go/internal/game"
	"github.com/lgbarn/chessgame-go/internal/notation"
)

// GameSignature stores identifying information about a game.
type GameSignature struct {
	// Hash covers the initial position and the move sequence
	Hash uint64
	// Final is the hash of the final position
	Final uint64
	// PlyCount is the number of half-moves in the game
	PlyCount int
}

// Signature computes the signature of a game. Tags and comments do not take part.
func Signature(g *game.Game) GameSignature {
	d := xxhash.New()
	_, _ = d.WriteString(g.InitialFEN())
	for _, m := range g.Moves() {
		_, _ = d.WriteString(" ")
		_, _ = d.WriteString(notation.FormatUCI(m))
	}
	return GameSignature{
		Hash:     d.Sum64(),
		Final:    xxhash.Sum64String(g.SmallFEN()),
		PlyCount: g.PlyCount(),
	}
}

// DuplicateDetector tracks seen games. It is safe for concurrent use.
type DuplicateDetector struct {
	mu sync.Mutex
	// hashTable stores seen signatures by move sequence hash
	hashTable map[uint64][]GameSignature
	// duplicateCount tracks number of duplicates found
	duplicateCount int
}

// NewDuplicateDetector creates a new duplicate detector.
func NewDuplicateDetector() *DuplicateDetector {
	return &DuplicateDetector{
		hashTable: make(map[uint64][]GameSignature),
	}
}

// CheckAndAdd checks if a game is a duplicate and adds it to the hash table.
// Returns true if the game is a duplicate.
func (d *DuplicateDetector) CheckAndAdd(g *game.Game) bool {
	sig := Signature(g)

	d.mu.Lock()
	defer d.mu.Unlock()

	for _, existing := range d.hashTable[sig.Hash] {
		if existing == sig {
			d.duplicateCount++
			return true
		}
	}

	d.hashTable[sig.Hash] = append(d.hashTable[sig.Hash], sig)
	return false
}

// DuplicateCount returns the number of duplicates detected.
func (d *DuplicateDetector) DuplicateCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.duplicateCount
}

// UniqueCount returns the number of unique games.
func (d *DuplicateDetector) UniqueCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	count := 0
	for _, sigs := range d.hashTable {
		count += len(sigs)
	}
	return count
}

// Reset clears the hash table.
func (d *DuplicateDetector) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.hashTable = make(map[uint64][]GameSignature)
	d.duplicateCount = 0
}
