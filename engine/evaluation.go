package engine

import (
	gm "heron-engine/heronmg"
)

const lightSquares uint64 = 0x55AA55AA55AA55AA
const darkSquares uint64 = ^lightSquares

// Evaluate returns the tapered static evaluation of the position,
// positive when the side to move is better (negamax convention).
// Terms: piece-square tables with folded-in piece values, cached pawn
// structure, mobility, bishop pair and tempo.
func Evaluate(b *gm.Board, pawnTable *PawnTable) int32 {
	var mg, eg int32
	phase := 0

	for occ := b.AllOccupancy(); occ != 0; {
		sq := gm.PopLsb(&occ)
		p := b.PieceAt(gm.Square(sq))
		pt := p.Type()
		phase += piecePhase[pt]
		if p.Color() == gm.White {
			mg += int32(pieceValueMG[pt] + PSQT_MG[pt][sq])
			eg += int32(pieceValueEG[pt] + PSQT_EG[pt][sq])
		} else {
			flipped := FlipView[sq]
			mg -= int32(pieceValueMG[pt] + PSQT_MG[pt][flipped])
			eg -= int32(pieceValueEG[pt] + PSQT_EG[pt][flipped])
		}
	}

	pawnMG, pawnEG := pawnTable.Get(b)
	mg += pawnMG
	eg += pawnEG

	wmg, weg := mobilityScore(b, gm.White)
	bmg, beg := mobilityScore(b, gm.Black)
	mg += wmg - bmg
	eg += weg - beg

	mg += bishopPairScore(b, gm.White, BishopPairBonusMG) - bishopPairScore(b, gm.Black, BishopPairBonusMG)
	eg += bishopPairScore(b, gm.White, BishopPairBonusEG) - bishopPairScore(b, gm.Black, BishopPairBonusEG)

	if phase > TotalPhase {
		phase = TotalPhase
	}
	score := (mg*int32(phase) + eg*int32(TotalPhase-phase)) / TotalPhase

	if b.SideToMove() == gm.Black {
		score = -score
	}
	return score + int32(TempoBonus)
}

// mobilityScore weighs each knight, bishop and rook by the number of
// squares it attacks that are neither occupied by friendly pieces nor
// covered by enemy pawns.
func mobilityScore(b *gm.Board, us gm.Color) (mg, eg int32) {
	const fileA = 0x0101010101010101
	const fileH = 0x8080808080808080

	own := b.Bitboards(us)
	enemyPawns := b.Bitboards(1 - us).Pawns
	occ := b.AllOccupancy()

	var pawnCover uint64
	if us == gm.White {
		// squares the black pawns attack
		pawnCover = ((enemyPawns &^ fileA) >> 9) | ((enemyPawns &^ fileH) >> 7)
	} else {
		pawnCover = ((enemyPawns &^ fileA) << 7) | ((enemyPawns &^ fileH) << 9)
	}
	safe := ^own.All & ^pawnCover

	for pieces := own.Knights; pieces != 0; {
		sq := gm.PopLsb(&pieces)
		count := gm.Popcount(gm.KnightAttacks(sq) & safe)
		mg += int32(knightMobilityMG[count])
		eg += int32(knightMobilityEG[count])
	}
	for pieces := own.Bishops; pieces != 0; {
		sq := gm.PopLsb(&pieces)
		count := gm.Popcount(gm.BishopAttacks(sq, occ) & safe)
		mg += int32(bishopMobilityMG[count])
		eg += int32(bishopMobilityEG[count])
	}
	for pieces := own.Rooks; pieces != 0; {
		sq := gm.PopLsb(&pieces)
		count := gm.Popcount(gm.RookAttacks(sq, occ) & safe)
		mg += int32(rookMobilityMG[count])
		eg += int32(rookMobilityEG[count])
	}
	return mg, eg
}

// bishopPairScore awards the bonus only when bishops of both square
// colors survive.
func bishopPairScore(b *gm.Board, us gm.Color, bonus int) int32 {
	bishops := b.Bitboards(us).Bishops
	if bishops&lightSquares != 0 && bishops&darkSquares != 0 {
		return int32(bonus)
	}
	return 0
}
