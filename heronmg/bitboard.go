package heronmg

import "math/bits"

// File and rank masks, indexed by file/rank number (0-7).
var fileMasks = [8]uint64{
	0x0101010101010101, 0x0202020202020202, 0x0404040404040404, 0x0808080808080808,
	0x1010101010101010, 0x2020202020202020, 0x4040404040404040, 0x8080808080808080,
}
var rankMasks = [8]uint64{
	0x00000000000000FF, 0x000000000000FF00, 0x0000000000FF0000, 0x00000000FF000000,
	0x000000FF00000000, 0x0000FF0000000000, 0x00FF000000000000, 0xFF00000000000000,
}

// Diagonal masks indexed by 7-rank+file (a1-h8 direction).
var diagMasks [15]uint64

// Anti-diagonal masks indexed by rank+file (a8-h1 direction).
var antiDiagMasks [15]uint64

func init() {
	for sq := 0; sq < 64; sq++ {
		diagMasks[7-rankOf(sq)+fileOf(sq)] |= uint64(1) << uint(sq)
		antiDiagMasks[rankOf(sq)+fileOf(sq)] |= uint64(1) << uint(sq)
	}
}

func fileOf(sq int) int { return sq & 7 }
func rankOf(sq int) int { return sq >> 3 }

// FileMask returns the mask of the file containing sq.
func FileMask(sq int) uint64 { return fileMasks[fileOf(sq)] }

// RankMask returns the mask of the rank containing sq.
func RankMask(sq int) uint64 { return rankMasks[rankOf(sq)] }

// DiagMask returns the mask of the a1-h8 diagonal containing sq.
func DiagMask(sq int) uint64 { return diagMasks[7-rankOf(sq)+fileOf(sq)] }

// AntiDiagMask returns the mask of the a8-h1 diagonal containing sq.
func AntiDiagMask(sq int) uint64 { return antiDiagMasks[rankOf(sq)+fileOf(sq)] }

// Lsb returns the index of the least significant set bit.
// Undefined on an empty bitboard; callers guard.
func Lsb(bb uint64) int { return bits.TrailingZeros64(bb) }

// Msb returns the index of the most significant set bit.
// Undefined on an empty bitboard; callers guard.
func Msb(bb uint64) int { return 63 - bits.LeadingZeros64(bb) }

// PopLsb removes the least significant set bit from the mask and returns its index.
func PopLsb(mask *uint64) int {
	idx := bits.TrailingZeros64(*mask)
	*mask &= *mask - 1
	return idx
}

// PopMsb removes the most significant set bit from the mask and returns its index.
func PopMsb(mask *uint64) int {
	idx := 63 - bits.LeadingZeros64(*mask)
	*mask ^= uint64(1) << uint(idx)
	return idx
}

// Popcount returns the number of set bits.
func Popcount(bb uint64) int { return bits.OnesCount64(bb) }

// FlipVertical mirrors the bitboard over the horizontal axis (rank 1 <-> rank 8).
func FlipVertical(bb uint64) uint64 { return bits.ReverseBytes64(bb) }

// bb returns a bitboard with the given square bit set.
func bb(sq Square) uint64 { return 1 << uint64(sq) }
