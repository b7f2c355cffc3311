package hashing

import (
	"sync"
	"testing"

	"github.com/lgbarn/chessgame-go/internal/game"
	"github.com/lgbarn/chessgame-go/internal/notation"
	"github.com/lgbarn/chessgame-go/internal/testutil"
)

func playGame(t testing.TB, moves string) *game.Game {
	t.Helper()
	g := game.New()
	if err := g.PlayMoves(notation.SAN, moves); err != nil {
		t.Fatalf("PlayMoves(%q) error: %v", moves, err)
	}
	return g
}

func TestSignature(t *testing.T) {
	t.Parallel()
	a := playGame(t, "e4 e5 Nf3 Nc6")
	b := playGame(t, "e4 e5 Nf3 Nc6")
	b.SetTag(game.TagWhite, "someone else")
	b.AddCommentAfter(0, game.Comment{Text: "best by test"})
	testutil.AssertEqual(t, Signature(a), Signature(b))

	// same final position through a different move order
	c := playGame(t, "Nf3 Nc6 e4 e5")
	testutil.AssertEqual(t, Signature(c).Final, Signature(a).Final)
	testutil.AssertTrue(t, Signature(c).Hash != Signature(a).Hash)
	testutil.AssertEqual(t, Signature(c).PlyCount, 4)
}

func TestDuplicateDetector(t *testing.T) {
	t.Parallel()
	d := NewDuplicateDetector()

	testutil.AssertFalse(t, d.CheckAndAdd(playGame(t, "e4 e5")))
	testutil.AssertFalse(t, d.CheckAndAdd(playGame(t, "d4 d5")))
	testutil.AssertTrue(t, d.CheckAndAdd(playGame(t, "e4 e5")))
	testutil.AssertFalse(t, d.CheckAndAdd(playGame(t, "e4 e5 Nf3")))

	testutil.AssertEqual(t, d.DuplicateCount(), 1)
	testutil.AssertEqual(t, d.UniqueCount(), 3)

	d.Reset()
	testutil.AssertEqual(t, d.UniqueCount(), 0)
	testutil.AssertFalse(t, d.CheckAndAdd(playGame(t, "e4 e5")))
}

func TestDuplicateDetector_Concurrent(t *testing.T) {
	t.Parallel()
	d := NewDuplicateDetector()
	lines := []string{"e4 e5", "d4 d5", "c4 c5", "Nf3 Nf6"}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, line := range lines {
				d.CheckAndAdd(playGame(t, line))
			}
		}()
	}
	wg.Wait()

	testutil.AssertEqual(t, d.UniqueCount(), len(lines))
	testutil.AssertEqual(t, d.DuplicateCount(), 8*len(lines)-len(lines))
}
