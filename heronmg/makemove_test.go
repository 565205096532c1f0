package heronmg

import (
	"math/rand"
	"testing"
)

func mustParse(t *testing.T, fen string) *Board {
	t.Helper()
	b, err := ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q): %v", fen, err)
	}
	return b
}

func checkRestored(t *testing.T, b *Board, wantFEN string, wantKey, wantPawnKey uint64) {
	t.Helper()
	if !b.Validate() {
		t.Fatalf("board inconsistent after unmake")
	}
	if got := b.ToFEN(); got != wantFEN {
		t.Fatalf("FEN mismatch after unmake: got %q want %q", got, wantFEN)
	}
	if b.Hash() != wantKey {
		t.Fatalf("zobrist mismatch after unmake")
	}
	if b.PawnHash() != wantPawnKey {
		t.Fatalf("pawn key mismatch after unmake")
	}
}

func TestMakeUnmakeNormalMove(t *testing.T) {
	b := mustParse(t, FENStartPos)
	startFEN := b.ToFEN()
	startKey := b.Hash()
	startPawnKey := b.PawnHash()

	m := NewMove(12, 28, PieceTypeNone) // e2e4
	if !b.MakeMove(m) {
		t.Fatalf("MakeMove failed for e2e4")
	}
	if !b.Validate() {
		t.Fatalf("board invalid after MakeMove")
	}
	b.UnmakeMove()
	checkRestored(t, b, startFEN, startKey, startPawnKey)
}

func TestMakeUnmakeCapture(t *testing.T) {
	b := mustParse(t, "4k3/7r/8/8/8/8/8/R3K3 w - - 0 1")
	startFEN := b.ToFEN()
	startKey := b.Hash()
	startPawnKey := b.PawnHash()

	m := NewMove(0, 55, PieceTypeNone) // a1 rook takes h7 rook
	if !b.MakeMove(m) {
		t.Fatalf("MakeMove failed for capture")
	}
	if b.PieceAt(55) != WhiteRook {
		t.Fatalf("expected white rook on h7, got %v", b.PieceAt(55))
	}
	b.UnmakeMove()
	checkRestored(t, b, startFEN, startKey, startPawnKey)
}

func TestMakeUnmakeEnPassant(t *testing.T) {
	b := mustParse(t, "k7/8/8/3pP3/8/8/8/7K w - d6 0 2")
	startFEN := b.ToFEN()
	startKey := b.Hash()
	startPawnKey := b.PawnHash()

	m := NewMove(36, 43, PieceTypeNone) // e5xd6 e.p.
	if !b.MakeMove(m) {
		t.Fatalf("MakeMove failed for en passant")
	}
	if b.PieceAt(35) != NoPiece {
		t.Fatalf("captured pawn still on d5")
	}
	if b.PieceAt(43) != WhitePawn {
		t.Fatalf("capturing pawn not on d6")
	}
	b.UnmakeMove()
	checkRestored(t, b, startFEN, startKey, startPawnKey)
}

func TestMakeUnmakeCastling(t *testing.T) {
	b := mustParse(t, "4k3/8/8/8/8/8/8/4K2R w K - 0 1")
	startFEN := b.ToFEN()
	startKey := b.Hash()
	startPawnKey := b.PawnHash()

	m := NewMove(4, 6, PieceTypeNone) // e1g1
	if !b.MakeMove(m) {
		t.Fatalf("MakeMove failed for castling")
	}
	if b.PieceAt(5) != WhiteRook {
		t.Fatalf("expected rook on f1 after castling, got %v", b.PieceAt(5))
	}
	if b.PieceAt(6) != WhiteKing {
		t.Fatalf("expected king on g1 after castling, got %v", b.PieceAt(6))
	}
	if b.CastlingRightsMask()&CastlingWhiteK != 0 {
		t.Fatalf("castling right not removed")
	}
	b.UnmakeMove()
	checkRestored(t, b, startFEN, startKey, startPawnKey)
}

func TestMakeUnmakePromotion(t *testing.T) {
	b := mustParse(t, "1n5k/P7/8/8/8/8/8/7K w - - 0 1")
	startFEN := b.ToFEN()
	startKey := b.Hash()
	startPawnKey := b.PawnHash()

	m := NewMove(48, 57, PieceTypeQueen) // a7xb8=Q
	if !b.MakeMove(m) {
		t.Fatalf("MakeMove failed for promotion capture")
	}
	if b.PieceAt(57) != WhiteQueen {
		t.Fatalf("expected queen on b8, got %v", b.PieceAt(57))
	}
	b.UnmakeMove()
	checkRestored(t, b, startFEN, startKey, startPawnKey)
}

func TestNullMoveRestore(t *testing.T) {
	fens := []string{
		FENStartPos,
		"k7/8/8/3pP3/8/8/8/7K w - d6 0 2",
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	}
	for _, fen := range fens {
		b := mustParse(t, fen)
		startFEN := b.ToFEN()
		startKey := b.Hash()
		startPawnKey := b.PawnHash()

		b.MakeNullMove()
		if b.SideToMove() == mustParse(t, fen).SideToMove() {
			t.Fatalf("%s: null move did not flip the side to move", fen)
		}
		if b.EnPassantSquare() != NoSquare {
			t.Fatalf("%s: null move did not clear en passant", fen)
		}
		b.UnmakeNullMove()
		checkRestored(t, b, startFEN, startKey, startPawnKey)
	}
}

// TestMakeUnmakeRandomWalk plays random legal games and verifies at every
// step that the incremental keys match a full recomputation and that
// unmaking restores the position exactly.
func TestMakeUnmakeRandomWalk(t *testing.T) {
	rnd := rand.New(rand.NewSource(31415))
	for game := 0; game < 20; game++ {
		b := mustParse(t, FENStartPos)
		var fens []string
		var keys []uint64
		var pawnKeys []uint64

		plies := 0
		for plies < 120 {
			moves := b.GenerateMoves()
			if len(moves) == 0 {
				break
			}
			fens = append(fens, b.ToFEN())
			keys = append(keys, b.Hash())
			pawnKeys = append(pawnKeys, b.PawnHash())

			m := moves[rnd.Intn(len(moves))]
			if !b.MakeMove(m) {
				t.Fatalf("generated move %s was not legal", m.String())
			}
			if b.Hash() != b.ComputeZobrist() {
				t.Fatalf("incremental zobrist diverged after %s in %s", m.String(), fens[len(fens)-1])
			}
			if b.PawnHash() != b.ComputePawnHash() {
				t.Fatalf("incremental pawn key diverged after %s", m.String())
			}
			plies++
		}
		for i := len(fens) - 1; i >= 0; i-- {
			b.UnmakeMove()
			checkRestored(t, b, fens[i], keys[i], pawnKeys[i])
		}
	}
}

func TestFiftyMoveAndRepetitionDraw(t *testing.T) {
	b := mustParse(t, "4k3/8/8/8/8/8/8/4K2R w - - 99 80")
	if b.IsDraw() {
		t.Fatalf("99 halfmoves is not yet a draw")
	}
	if !b.MakeMove(NewMove(4, 3, PieceTypeNone)) { // e1d1
		t.Fatalf("quiet king move rejected")
	}
	if !b.IsDraw() {
		t.Fatalf("100 halfmoves should be a draw")
	}
	b.UnmakeMove()

	// Shuffle kings until the starting position appears a third time
	b2 := mustParse(t, "4k3/8/8/8/8/8/8/4K2R w - - 0 1")
	seq := []Move{
		NewMove(4, 3, PieceTypeNone), NewMove(60, 59, PieceTypeNone),
		NewMove(3, 4, PieceTypeNone), NewMove(59, 60, PieceTypeNone),
		NewMove(4, 3, PieceTypeNone), NewMove(60, 59, PieceTypeNone),
		NewMove(3, 4, PieceTypeNone), NewMove(59, 60, PieceTypeNone),
	}
	for i, m := range seq {
		if b2.IsDraw() {
			t.Fatalf("premature draw before move %d", i)
		}
		if !b2.MakeMove(m) {
			t.Fatalf("move %d (%s) rejected", i, m.String())
		}
	}
	if !b2.IsDraw() {
		t.Fatalf("threefold repetition not detected")
	}
}

func TestInsufficientMaterial(t *testing.T) {
	cases := []struct {
		fen  string
		want bool
	}{
		{"4k3/8/8/8/8/8/8/4K3 w - - 0 1", true},
		{"4k3/8/8/8/8/8/8/4KN2 w - - 0 1", true},
		{"4k3/8/8/8/8/8/8/4KB2 w - - 0 1", true},
		{"4k3/8/8/8/8/8/8/3NKN2 w - - 0 1", false},
		{"4k3/8/8/8/8/8/4P3/4K3 w - - 0 1", false},
		{"4k3/8/8/8/8/8/8/4K2R w - - 0 1", false},
	}
	for _, tc := range cases {
		b := mustParse(t, tc.fen)
		if got := b.IsDraw(); got != tc.want {
			t.Errorf("IsDraw(%q) = %v, want %v", tc.fen, got, tc.want)
		}
	}
}
