package engine

import (
	"strings"

	gm "heron-engine/heronmg"
)

// PVLine is one row of the triangular PV table: Moves[ply..Length) is the
// best continuation found from that ply.
type PVLine struct {
	Moves  [MaxPly + 1]gm.Move
	Length int
}

// Clear resets the line to start at the given ply.
func (pv *PVLine) Clear(ply int) {
	pv.Length = ply
}

// String renders the line in long algebraic notation from the given ply.
func (pv *PVLine) String(ply int) string {
	var sb strings.Builder
	for i := ply; i < pv.Length; i++ {
		if i > ply {
			sb.WriteByte(' ')
		}
		sb.WriteString(pv.Moves[i].String())
	}
	return sb.String()
}

// updatePV records move at ply p and copies the child's continuation up,
// per the triangular-table scheme.
func (s *Searcher) updatePV(ply int, move gm.Move) {
	s.pvTable[ply].Moves[ply] = move
	child := &s.pvTable[ply+1]
	for i := ply + 1; i < child.Length; i++ {
		s.pvTable[ply].Moves[i] = child.Moves[i]
	}
	s.pvTable[ply].Length = child.Length
	if s.pvTable[ply].Length <= ply {
		s.pvTable[ply].Length = ply + 1
	}
}
