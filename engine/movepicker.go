package engine

import (
	gm "heron-engine/heronmg"
)

// Picker stages, in yield order.
const (
	stageTTMove = iota
	stageGenNoisy
	stageNoisy
	stageKiller
	stageGenQuiet
	stageQuiet
	stageDone
)

type scoredMove struct {
	move  gm.Move
	score int32
}

// MovePicker yields the legal moves of a position in staged order: the TT
// move first, then captures and promotions by MVV-LVA, then the ply's
// killer, then quiets by history score. Quiescence stops after the noisy
// stage.
type MovePicker struct {
	board     *gm.Board
	history   *HistoryTable
	ttMove    gm.Move
	killer    gm.Move
	noisyOnly bool

	stage      int
	quietStage bool
	moves      []scoredMove
	idx        int
	picked     int
}

// NewMovePicker prepares a picker over all moves.
func NewMovePicker(board *gm.Board, history *HistoryTable, ttMove, killer gm.Move) MovePicker {
	return MovePicker{board: board, history: history, ttMove: ttMove, killer: killer}
}

// NewNoisyPicker prepares a quiescence picker over captures and promotions only.
func NewNoisyPicker(board *gm.Board, history *HistoryTable, ttMove gm.Move) MovePicker {
	return MovePicker{board: board, history: history, ttMove: ttMove, killer: gm.NullMove, noisyOnly: true}
}

// MovesPicked returns how many legal moves have been yielded so far.
func (mp *MovePicker) MovesPicked() int { return mp.picked }

// InQuietStage reports whether the picker has moved past the noisy stages;
// moves yielded from then on are treated as quiet for history updates.
func (mp *MovePicker) InQuietStage() bool { return mp.quietStage }

// NextMove yields the next move, or ok=false when no moves remain.
func (mp *MovePicker) NextMove() (gm.Move, bool) {
	b := mp.board
	for {
		switch mp.stage {
		case stageTTMove:
			mp.stage = stageGenNoisy
			if mp.ttMove != gm.NullMove && b.IsPseudoLegal(mp.ttMove) && b.IsLegal(mp.ttMove) {
				mp.picked++
				return mp.ttMove, true
			}

		case stageGenNoisy:
			pseudo := b.PseudoCaptures(make([]gm.Move, 0, 48))
			mp.moves = mp.moves[:0]
			for _, m := range pseudo {
				if m == mp.ttMove {
					continue
				}
				mp.moves = append(mp.moves, scoredMove{move: m, score: mp.scoreNoisy(m)})
			}
			mp.idx = 0
			mp.stage = stageNoisy

		case stageNoisy:
			if m, ok := mp.pickBest(); ok {
				mp.picked++
				return m, true
			}
			if mp.noisyOnly {
				mp.stage = stageDone
			} else {
				mp.stage = stageKiller
			}

		case stageKiller:
			mp.stage = stageGenQuiet
			mp.quietStage = true
			k := mp.killer
			if k != gm.NullMove && k != mp.ttMove && !b.IsCapture(k) &&
				k.PromotionPieceType() == gm.PieceTypeNone &&
				b.IsPseudoLegal(k) && b.IsLegal(k) {
				mp.picked++
				return k, true
			}

		case stageGenQuiet:
			pseudo := b.PseudoQuiets(make([]gm.Move, 0, 48))
			mp.moves = mp.moves[:0]
			for _, m := range pseudo {
				if m == mp.ttMove || m == mp.killer {
					continue
				}
				mp.moves = append(mp.moves, scoredMove{move: m, score: mp.history.Score(m)})
			}
			mp.idx = 0
			mp.stage = stageQuiet

		case stageQuiet:
			if m, ok := mp.pickBest(); ok {
				mp.picked++
				return m, true
			}
			mp.stage = stageDone

		default:
			return gm.NullMove, false
		}
	}
}

// pickBest runs one step of lazy selection sort over the staged buffer,
// skipping moves that leave the king in check.
func (mp *MovePicker) pickBest() (gm.Move, bool) {
	for mp.idx < len(mp.moves) {
		best := mp.idx
		for i := mp.idx + 1; i < len(mp.moves); i++ {
			if mp.moves[i].score > mp.moves[best].score {
				best = i
			}
		}
		mp.moves[mp.idx], mp.moves[best] = mp.moves[best], mp.moves[mp.idx]
		m := mp.moves[mp.idx].move
		mp.idx++
		if mp.board.IsLegal(m) {
			return m, true
		}
	}
	return gm.NullMove, false
}

// scoreNoisy orders captures by most-valuable-victim, least-valuable-
// attacker, with promotions lifted by the promoted piece's value.
func (mp *MovePicker) scoreNoisy(m gm.Move) int32 {
	b := mp.board
	attacker := b.PieceAt(m.From()).Type()
	victim := b.PieceAt(m.To()).Type()
	if victim == gm.PieceTypeNone && b.IsCapture(m) {
		victim = gm.PieceTypePawn // en passant
	}
	score := 10*int32(pieceValueMG[victim]) - int32(pieceValueMG[attacker])
	if promo := m.PromotionPieceType(); promo != gm.PieceTypeNone {
		score += int32(pieceValueMG[promo])
	}
	return score
}
