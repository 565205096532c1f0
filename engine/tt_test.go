package engine

import (
	"testing"

	gm "heron-engine/heronmg"
)

func TestTTStoreProbeRoundTrip(t *testing.T) {
	var tt TransTable
	tt.Resize(1)

	key := uint64(0xDEADBEEFCAFEF00D)
	move := gm.NewMove(12, 28, gm.PieceTypeNone)
	tt.Store(key, move, 123, ExactFlag, 7, 3)

	entry, hit := tt.Probe(key)
	if !hit {
		t.Fatalf("probe missed a stored key")
	}
	if entry.Move != move || entry.Depth != 7 || entry.Flag != ExactFlag {
		t.Fatalf("entry fields corrupted: %+v", entry)
	}
	if got := ScoreFromTT(entry.Score, 3); got != 123 {
		t.Fatalf("score round trip: got %d want 123", got)
	}

	if _, hit := tt.Probe(key ^ 1); hit {
		t.Fatalf("probe hit a key that was never stored")
	}
}

func TestTTMateScoreNormalization(t *testing.T) {
	var tt TransTable
	tt.Resize(1)

	// A mate found 5 plies from the root scores -MaxScore+5 at that node.
	key := uint64(0x1234567890ABCDEF)
	mateScore := -MaxScore + 5
	tt.Store(key, gm.NewMove(0, 8, gm.PieceTypeNone), mateScore, ExactFlag, 9, 5)

	entry, hit := tt.Probe(key)
	if !hit {
		t.Fatalf("probe missed")
	}
	// Stored value means "mated in N from this node", independent of ply
	if got := int32(entry.Score); got != -MaxScore {
		t.Fatalf("stored mate score: got %d want %d", got, -MaxScore)
	}
	// Reading at a different ply re-applies the distance
	if got := ScoreFromTT(entry.Score, 2); got != -MaxScore+2 {
		t.Fatalf("restored mate score at ply 2: got %d want %d", got, -MaxScore+2)
	}
}

func TestTTAbsentConvention(t *testing.T) {
	var tt TransTable
	tt.Resize(1)

	key := uint64(42)
	tt.Store(key, gm.NullMove, 0, AlphaFlag, 0, 0)
	if _, hit := tt.Probe(key); hit {
		t.Fatalf("depth-0 NullMove entry must be treated as absent")
	}
}

func TestTTClearAndHashfull(t *testing.T) {
	var tt TransTable
	tt.Resize(1)

	if tt.Hashfull() != 0 {
		t.Fatalf("fresh table not empty")
	}
	for i := uint64(1); i <= 500; i++ {
		tt.Store(i*0x9E3779B97F4A7C15, gm.NewMove(0, 1, gm.PieceTypeNone), 1, ExactFlag, 1, 0)
	}
	if tt.Hashfull() == 0 {
		t.Fatalf("hashfull still zero after stores")
	}
	tt.Clear()
	if tt.Hashfull() != 0 {
		t.Fatalf("hashfull nonzero after clear")
	}
}

func TestTTResizePowerOfTwo(t *testing.T) {
	var tt TransTable
	for _, mb := range []int{1, 2, 7, 64} {
		tt.Resize(mb)
		n := uint64(len(tt.entries))
		if n == 0 || n&(n-1) != 0 {
			t.Fatalf("Resize(%d): entry count %d is not a power of two", mb, n)
		}
		if tt.mask != n-1 {
			t.Fatalf("Resize(%d): mask mismatch", mb)
		}
	}
}
