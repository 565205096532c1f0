package engine

import (
	gm "heron-engine/heronmg"
)

// Bound flags for transposition table entries
const (
	AlphaFlag int8 = iota // upper bound: real score <= Score
	BetaFlag              // lower bound: real score >= Score
	ExactFlag
)

// DefaultHashMB is the table size used until a setoption Hash arrives.
const DefaultHashMB = 64

// TTEntry is one transposition table slot. An entry with Depth 0 and a
// NullMove is treated as absent.
type TTEntry struct {
	Hash  uint64
	Move  gm.Move
	Score int16
	Depth int8
	Flag  int8
}

// TransTable is a fixed, power-of-two sized, always-replace cache mapping
// Zobrist keys to search results. Single-threaded; no locks.
type TransTable struct {
	entries []TTEntry
	mask    uint64
}

// Resize reallocates the table for the given size in megabytes, rounding
// the entry count down to a power of two. The previous contents are lost.
func (tt *TransTable) Resize(sizeMB int) {
	if sizeMB < 1 {
		sizeMB = 1
	}
	entrySize := 16 // unsafe.Sizeof(TTEntry{}) with padding
	count := uint64(sizeMB) * 1024 * 1024 / uint64(entrySize)
	size := uint64(1)
	for size*2 <= count {
		size *= 2
	}
	tt.entries = make([]TTEntry, size)
	tt.mask = size - 1
}

// Clear wipes every entry, keeping the allocation.
func (tt *TransTable) Clear() {
	for i := range tt.entries {
		tt.entries[i] = TTEntry{}
	}
}

func (tt *TransTable) ensureInit() {
	if tt.entries == nil {
		tt.Resize(DefaultHashMB)
	}
}

// Probe returns the stored entry when the key matches.
func (tt *TransTable) Probe(hash uint64) (TTEntry, bool) {
	tt.ensureInit()
	entry := tt.entries[hash&tt.mask]
	if entry.Hash != hash {
		return TTEntry{}, false
	}
	if entry.Depth == 0 && entry.Move == gm.NullMove {
		return TTEntry{}, false
	}
	return entry, true
}

// Store writes an entry unconditionally (always-replace). Mate scores are
// normalized so the stored value means "mate in N from this node": the
// distance from the root is folded out before storing and folded back in
// by ScoreFromTT.
func (tt *TransTable) Store(hash uint64, move gm.Move, score int32, flag int8, depth int8, ply int) {
	tt.ensureInit()
	if score > MateThreshold {
		score += int32(ply)
	} else if score < -MateThreshold {
		score -= int32(ply)
	}
	tt.entries[hash&tt.mask] = TTEntry{
		Hash:  hash,
		Move:  move,
		Score: int16(score),
		Depth: depth,
		Flag:  flag,
	}
}

// ScoreFromTT reverses the mate-distance normalization applied by Store.
func ScoreFromTT(stored int16, ply int) int32 {
	score := int32(stored)
	if score > MateThreshold {
		score -= int32(ply)
	} else if score < -MateThreshold {
		score += int32(ply)
	}
	return score
}

// Prefetch touches the entry for the given key so its cache line is warm
// before the search descends. Go has no portable prefetch intrinsic; a
// discarded read of the slot serves the same purpose.
func (tt *TransTable) Prefetch(hash uint64) {
	if tt.entries == nil {
		return
	}
	_ = tt.entries[hash&tt.mask].Hash
}

// Hashfull reports the approximate fill ratio in permille, sampled from
// the first 1000 entries per UCI convention.
func (tt *TransTable) Hashfull() int {
	tt.ensureInit()
	sample := 1000
	if len(tt.entries) < sample {
		sample = len(tt.entries)
	}
	used := 0
	for i := 0; i < sample; i++ {
		if tt.entries[i].Hash != 0 {
			used++
		}
	}
	if sample == 0 {
		return 0
	}
	return used * 1000 / sample
}
