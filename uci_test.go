package main

import (
	"testing"

	"heron-engine/engine"
	gm "heron-engine/heronmg"
)

func TestHandlePositionStartposMoves(t *testing.T) {
	board, ok := handlePosition("position startpos moves e2e4 e7e5 g1f3")
	if !ok {
		t.Fatalf("position command rejected")
	}
	want := "rnbqkbnr/pppp1ppp/8/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R b KQkq - 1 2"
	if got := board.ToFEN(); got != want {
		t.Fatalf("position after moves: got %q want %q", got, want)
	}
}

func TestHandlePositionFen(t *testing.T) {
	fen := "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	board, ok := handlePosition("position fen " + fen)
	if !ok {
		t.Fatalf("fen position rejected")
	}
	if got := board.ToFEN(); got != fen {
		t.Fatalf("fen position: got %q want %q", got, fen)
	}
}

func TestHandlePositionBadInputSurvives(t *testing.T) {
	if _, ok := handlePosition("position fen this is not a fen"); ok {
		t.Fatalf("garbage fen accepted")
	}
	// An illegal move stops application but keeps the board playable
	board, ok := handlePosition("position startpos moves e2e4 e2e4")
	if !ok {
		t.Fatalf("position rejected entirely")
	}
	if !board.HasLegalMoves() {
		t.Fatalf("board unusable after bad move list")
	}
}

func TestHandlePositionCastlingAndPromotion(t *testing.T) {
	board, ok := handlePosition("position fen 4k3/1P6/8/8/8/8/8/4K2R w K - 0 1 moves e1g1 e8d8 b7b8q")
	if !ok {
		t.Fatalf("position rejected")
	}
	if board.PieceAt(gm.Square(57)) != gm.WhiteQueen {
		t.Fatalf("promotion not applied, b8 = %v", board.PieceAt(gm.Square(57)))
	}
	if board.PieceAt(gm.Square(6)) != gm.WhiteKing || board.PieceAt(gm.Square(5)) != gm.WhiteRook {
		t.Fatalf("castling not applied")
	}
}

func BenchmarkStartposSearch(b *testing.B) {
	board := gm.ParseFen(gm.Startpos)
	searcher := engine.NewSearcher()
	searcher.PrintInfo = false
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		searcher.NewGame()
		searcher.Think(&board, engine.Limits{Depth: 5})
	}
}
