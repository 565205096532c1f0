package engine

import (
	gm "heron-engine/heronmg"
)

const pawnTableSize = 1 << 16 // entries; power of two for mask indexing

// PawnEntry caches the tapered pawn-structure score for one pawn
// configuration, keyed by the pawn-only Zobrist key.
type PawnEntry struct {
	Key uint64
	MG  int32
	EG  int32
}

// PawnTable is the pawn evaluation cache. Owned by the Searcher and
// carried across searches; cleared on a new game.
type PawnTable struct {
	entries [pawnTableSize]PawnEntry
}

// Get returns the cached pawn score for the board, computing and storing
// it on a miss.
func (pt *PawnTable) Get(b *gm.Board) (mg, eg int32) {
	key := b.PawnHash()
	entry := &pt.entries[key&(pawnTableSize-1)]
	if entry.Key != key {
		mg, eg = computePawnStructure(b)
		*entry = PawnEntry{Key: key, MG: mg, EG: eg}
	}
	return entry.MG, entry.EG
}

// Clear wipes the cache.
func (pt *PawnTable) Clear() {
	for i := range pt.entries {
		pt.entries[i] = PawnEntry{}
	}
}

// passedPawnMasks[color][sq] covers the same and adjacent files ahead of sq.
var passedPawnMasks [2][64]uint64

func init() {
	for sq := 0; sq < 64; sq++ {
		span := gm.FileMask(sq)
		if sq%8 > 0 {
			span |= gm.FileMask(sq - 1)
		}
		if sq%8 < 7 {
			span |= gm.FileMask(sq + 1)
		}
		var ahead, behind uint64
		for r := sq/8 + 1; r < 8; r++ {
			ahead |= gm.RankMask(r * 8)
		}
		for r := 0; r < sq/8; r++ {
			behind |= gm.RankMask(r * 8)
		}
		passedPawnMasks[gm.White][sq] = span & ahead
		passedPawnMasks[gm.Black][sq] = span & behind
	}
}

// computePawnStructure evaluates both sides' pawn structure from scratch:
// passed pawns (per-square table), doubled, chained and phalanx pawns.
// White-positive.
func computePawnStructure(b *gm.Board) (mg, eg int32) {
	wmg, weg := evalPawnSide(b, gm.White)
	bmg, beg := evalPawnSide(b, gm.Black)
	return wmg - bmg, weg - beg
}

func evalPawnSide(b *gm.Board, us gm.Color) (mg, eg int32) {
	const fileA = 0x0101010101010101
	const fileH = 0x8080808080808080

	ally := b.Bitboards(us).Pawns
	enemy := b.Bitboards(1 - us).Pawns

	for pawns := ally; pawns != 0; {
		sq := gm.PopLsb(&pawns)
		if passedPawnMasks[us][sq]&enemy == 0 {
			idx := sq
			if us == gm.Black {
				idx = FlipView[sq]
			}
			mg += int32(PassedPawnPSQT_MG[idx])
			eg += int32(PassedPawnPSQT_EG[idx])
		}
	}

	// Doubled: pawns directly in front of another ally pawn
	var front uint64
	if us == gm.White {
		front = ally << 8
	} else {
		front = ally >> 8
	}
	doubled := gm.Popcount(ally & front)
	mg -= int32(doubled * PawnDoubledMG)
	eg -= int32(doubled * PawnDoubledEG)

	// Chained: pawns defended by another ally pawn
	var defended uint64
	if us == gm.White {
		defended = ((ally &^ fileA) << 7) | ((ally &^ fileH) << 9)
	} else {
		defended = ((ally &^ fileA) >> 9) | ((ally &^ fileH) >> 7)
	}
	chained := gm.Popcount(ally & defended)
	mg += int32(chained * PawnConnectedMG)
	eg += int32(chained * PawnConnectedEG)

	// Phalanx: adjacent pawn pairs on the same rank
	phalanx := gm.Popcount(ally & ((ally &^ fileA) >> 1))
	mg += int32(phalanx * PawnPhalanxMG)
	eg += int32(phalanx * PawnPhalanxEG)

	return mg, eg
}
