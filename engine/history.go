package engine

import (
	gm "heron-engine/heronmg"
)

const historyMaxVal = 10000 // a bonus that reaches this value halves the table

// HistoryTable scores quiet moves by from/to square for ordering. Bonuses
// are applied on beta cutoffs, the matching malus to the quiets tried
// before the cutoff move. Lives for one search.
type HistoryTable [64][64]int32

// Bonus credits a quiet move that caused a beta cutoff.
func (h *HistoryTable) Bonus(m gm.Move, depth int8) {
	d := int32(depth)
	h[m.From()][m.To()] += d * (d - 1)
	if h[m.From()][m.To()] >= historyMaxVal {
		h.age()
	}
}

// Malus debits a quiet move that was tried ahead of the cutoff move.
func (h *HistoryTable) Malus(m gm.Move, depth int8) {
	d := int32(depth)
	h[m.From()][m.To()] -= d * (d - 1)
}

// Score returns the ordering score of a quiet move.
func (h *HistoryTable) Score(m gm.Move) int32 {
	return h[m.From()][m.To()]
}

// age halves every entry so positive scores stay below historyMaxVal.
func (h *HistoryTable) age() {
	for from := 0; from < 64; from++ {
		for to := 0; to < 64; to++ {
			h[from][to] /= 2
		}
	}
}

// Clear zeroes the table.
func (h *HistoryTable) Clear() {
	for from := 0; from < 64; from++ {
		for to := 0; to < 64; to++ {
			h[from][to] = 0
		}
	}
}
