package engine

import (
	"testing"

	gm "heron-engine/heronmg"
)

func newTestSearcher() *Searcher {
	s := NewSearcher()
	s.PrintInfo = false
	s.TT.Resize(16)
	return s
}

func TestSearchFindsMateWithRook(t *testing.T) {
	board, err := gm.ParseFEN("8/8/8/8/8/8/4k3/4K2R w K - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	s := newTestSearcher()
	result := s.Think(board, Limits{Depth: 6})
	if result.Move == gm.NullMove {
		t.Fatalf("no best move returned")
	}
	if result.Eval < MateThreshold {
		t.Fatalf("expected a mate score, got %d", result.Eval)
	}
	if result.MateIn <= 0 {
		t.Fatalf("expected positive mate-in, got %d", result.MateIn)
	}
	if !board.IsPseudoLegal(result.Move) || !board.IsLegal(result.Move) {
		t.Fatalf("best move %s is not legal", result.Move.String())
	}
}

func TestSearchDepthOneStartpos(t *testing.T) {
	board, err := gm.ParseFEN(gm.FENStartPos)
	if err != nil {
		t.Fatal(err)
	}
	s := newTestSearcher()
	result := s.Think(board, Limits{Depth: 1})
	if result.Nodes < 20 {
		t.Fatalf("depth-1 search visited %d nodes, want >= 20", result.Nodes)
	}
	legal := board.GenerateMoves()
	found := false
	for _, m := range legal {
		if m == result.Move {
			found = true
		}
	}
	if !found {
		t.Fatalf("best move %s not among the %d legal moves", result.Move.String(), len(legal))
	}
}

func TestSearchNeverReturnsIllegalMove(t *testing.T) {
	fens := []string{
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"8/8/1k1K4/8/2BN2p1/8/4P3/8 w - - 0 1",
		"r1b1k3/2q5/2p5/5p2/p1B2P1p/2P5/4QP2/4K2R b Kq - 0 28",
	}
	s := newTestSearcher()
	for _, fen := range fens {
		board, err := gm.ParseFEN(fen)
		if err != nil {
			t.Fatal(err)
		}
		s.NewGame()
		result := s.Think(board, Limits{Depth: 4})
		if result.Move == gm.NullMove {
			t.Fatalf("%s: no best move", fen)
		}
		if !board.IsLegal(result.Move) {
			t.Fatalf("%s: illegal bestmove %s", fen, result.Move.String())
		}
	}
}

func TestQuiesceStandPatEqualsEval(t *testing.T) {
	board, err := gm.ParseFEN("4k3/8/8/8/8/8/4P3/4K3 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	s := newTestSearcher()
	s.board = board
	s.tm.StartInfinite()
	want := Evaluate(board, &s.pawnCache)
	if got := s.quiesce(-MaxScore, MaxScore, 0); got != want {
		t.Fatalf("quiesce with no captures: got %d, evaluate %d", got, want)
	}
}

func TestSearchScoresRepetitionAsDraw(t *testing.T) {
	board, err := gm.ParseFEN(gm.FENStartPos)
	if err != nil {
		t.Fatal(err)
	}
	// Knights out and back twice: the start position occurs a third time
	seq := []string{"g1f3", "g8f6", "f3g1", "f6g8", "g1f3", "g8f6", "f3g1", "f6g8"}
	for _, ms := range seq {
		m, err := gm.ParseMove(ms)
		if err != nil {
			t.Fatal(err)
		}
		if !board.MakeMove(m) {
			t.Fatalf("move %s rejected", ms)
		}
	}
	if !board.IsDraw() {
		t.Fatalf("threefold repetition not detected")
	}
	s := newTestSearcher()
	result := s.Think(board, Limits{Depth: 3})
	if result.Eval != DrawScore {
		t.Fatalf("drawn position searched to %d, want %d", result.Eval, DrawScore)
	}
}

func TestSearchStalemateIsDraw(t *testing.T) {
	board, err := gm.ParseFEN("7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	s := newTestSearcher()
	result := s.Think(board, Limits{Depth: 3})
	if result.Eval != DrawScore {
		t.Fatalf("stalemate searched to %d, want %d", result.Eval, DrawScore)
	}
}

func TestSearchDeterministicGivenSameState(t *testing.T) {
	fen := "r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10"
	run := func() (gm.Move, int32, uint64) {
		board, err := gm.ParseFEN(fen)
		if err != nil {
			t.Fatal(err)
		}
		s := newTestSearcher()
		r := s.Think(board, Limits{Depth: 5})
		return r.Move, r.Eval, r.Nodes
	}
	m1, e1, n1 := run()
	m2, e2, n2 := run()
	if m1 != m2 || e1 != e2 || n1 != n2 {
		t.Fatalf("search not deterministic: (%s,%d,%d) vs (%s,%d,%d)",
			m1.String(), e1, n1, m2.String(), e2, n2)
	}
}

func TestBenchReproducible(t *testing.T) {
	s := newTestSearcher()
	first := s.Bench(2)
	second := s.Bench(2)
	if first != second {
		t.Fatalf("bench totals differ: %d vs %d", first, second)
	}
	if first == 0 {
		t.Fatalf("bench searched zero nodes")
	}
}

func TestAspirationConvergesInsideWindow(t *testing.T) {
	board, err := gm.ParseFEN("r1bqkb1r/pp1p1ppp/2n2n2/2p1p1B1/2P5/2NP1N2/PP2PPPP/R2QKB1R b KQkq - 5 5")
	if err != nil {
		t.Fatal(err)
	}
	s := newTestSearcher()
	s.board = board
	s.tm.StartInfinite()
	prev := NoScore
	for depth := 1; depth <= 8; depth++ {
		score := s.aspiration(depth, prev)
		if score == NoScore {
			t.Fatalf("aspiration aborted without a deadline")
		}
		if Abs(score) > MaxScore {
			t.Fatalf("score %d outside the value range", score)
		}
		prev = score
	}
}

func TestBoardUnchangedAfterSearch(t *testing.T) {
	fen := "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	board, err := gm.ParseFEN(fen)
	if err != nil {
		t.Fatal(err)
	}
	key := board.Hash()
	ply := board.Ply()
	s := newTestSearcher()
	s.Think(board, Limits{Depth: 4})
	if board.Hash() != key {
		t.Fatalf("search mutated the board")
	}
	if board.Ply() != ply {
		t.Fatalf("search left the undo stack unbalanced: %d vs %d", board.Ply(), ply)
	}
	if board.ToFEN() != fen {
		t.Fatalf("search changed the position: %s", board.ToFEN())
	}
}

func BenchmarkSearchMiddlegame(b *testing.B) {
	board, err := gm.ParseFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	if err != nil {
		b.Fatal(err)
	}
	s := newTestSearcher()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.NewGame()
		s.Think(board, Limits{Depth: 6})
	}
}
