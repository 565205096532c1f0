package heronmg

import "math/rand"

// Zobrist hashing tables for pieces, castling, en passant, and side to move.
var zobristPiece [15][64]uint64 // keys for piece (indexed by piece code) on each square
var zobristCastle [16]uint64    // keys for each castling rights state (0-15)
var zobristEnPassant [8]uint64  // keys for en passant file (file 0-7)
var zobristSide uint64          // key for side to move (Black to move)

func init() {
	initZobrist()
}

func initZobrist() {
	// Use a fixed seed for reproducibility in tests
	rnd := rand.New(rand.NewSource(0xC0DE))

	for p := 0; p < 15; p++ {
		for sq := 0; sq < 64; sq++ {
			zobristPiece[p][sq] = rnd.Uint64()
		}
	}
	for cr := 0; cr < 16; cr++ {
		zobristCastle[cr] = rnd.Uint64()
	}
	for f := 0; f < 8; f++ {
		zobristEnPassant[f] = rnd.Uint64()
	}
	zobristSide = rnd.Uint64()
}

// epHashContribution returns the en-passant file key, but only when an
// en-passant capture is actually possible for the side to move. Hashing the
// file unconditionally would make positions distinct that are not.
func (b *Board) epHashContribution() uint64 {
	ep := b.enPassantSquare
	if ep == NoSquare {
		return 0
	}
	us := b.sideToMove
	if pawnAttacks[1-us][int(ep)]&b.pawns[int(us)] == 0 {
		return 0
	}
	return zobristEnPassant[int(ep)%8]
}

// ComputeZobrist calculates the full Zobrist hash for the current board
// state from scratch. MakeMove maintains the same value incrementally.
func (b *Board) ComputeZobrist() uint64 {
	var key uint64
	for sq := 0; sq < 64; sq++ {
		p := b.pieces[sq]
		if p != NoPiece {
			key ^= zobristPiece[p][sq]
		}
	}
	if b.sideToMove == Black {
		key ^= zobristSide
	}
	key ^= zobristCastle[int(b.castlingRights)]
	key ^= b.epHashContribution()
	return key
}

// ComputePawnHash calculates the pawn-only sub-key from scratch.
func (b *Board) ComputePawnHash() uint64 {
	var key uint64
	for _, p := range [2]Piece{WhitePawn, BlackPawn} {
		pawns := b.pawns[int(colorOf(p))]
		for pawns != 0 {
			sq := PopLsb(&pawns)
			key ^= zobristPiece[p][sq]
		}
	}
	return key
}
