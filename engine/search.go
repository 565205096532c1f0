package engine

import (
	"fmt"
	"math"

	gm "heron-engine/heronmg"
)

// =============================================================================
// SCORE CONSTANTS
// =============================================================================
const (
	MaxScore      int32 = 32500
	MateThreshold int32 = 32000
	DrawScore     int32 = 0
	NoScore       int32 = -32700
)

const MaxPly = 100
const maxMoves = 256

// Node kinds of the search tree. Root enables PV extraction; Nmp forbids
// immediate re-entry into null-move pruning.
type nodeKind uint8

const (
	nodeRoot nodeKind = iota
	nodePV
	nodeNotPV
	nodeNmp
)

// aspiration window start size
const aspirationDelta int32 = 40

// Precomputed late-move reductions, indexed by depth and moves picked.
var lmrTable [MaxPly + 1][maxMoves]int

func init() {
	for depth := 1; depth <= MaxPly; depth++ {
		for moves := 1; moves < maxMoves; moves++ {
			lmrTable[depth][moves] = int(math.Round(1.2 + math.Log(float64(depth))*math.Log(float64(moves))/4.0))
		}
	}
}

func lmrReduction(depth, movesPicked int) int {
	d := Clamp(depth, 1, MaxPly)
	m := Clamp(movesPicked, 1, maxMoves-1)
	return lmrTable[d][m]
}

// StackEntry is the per-ply search scratch: the distance from the root and
// the killer slot for that ply.
type StackEntry struct {
	ply    int
	killer gm.Move
}

// Limits describes one "go" request.
type Limits struct {
	Depth    int
	WTime    int
	BTime    int
	WInc     int
	BInc     int
	MoveTime int
	Infinite bool
}

// Result reports the outcome of a search.
type Result struct {
	Move     gm.Move
	Eval     int32
	MateIn   int
	Depth    int
	Seldepth int
	Nodes    uint64
	TimeMs   int64
}

// Searcher owns every mutable search resource: the transposition table,
// pawn cache, history table, killer slots and PV tables. The board is
// borrowed for the duration of one Think call.
type Searcher struct {
	board *gm.Board

	TT        TransTable
	pawnCache PawnTable
	history   HistoryTable
	stack     [MaxPly + 2]StackEntry
	pvTable   [MaxPly + 2]PVLine
	tm        TimeHandler

	nodes    uint64
	seldepth int
	stopFlag bool

	// MaxDepth clamps every search; configured via setoption.
	MaxDepth int

	// PrintInfo controls UCI info output during iterative deepening.
	PrintInfo bool

	Stats      CutStatistics
	PrintStats bool
}

// NewSearcher returns a Searcher with default options.
func NewSearcher() *Searcher {
	return &Searcher{MaxDepth: MaxPly, PrintInfo: true}
}

// NewGame clears all state carried between searches.
func (s *Searcher) NewGame() {
	s.TT.Clear()
	s.pawnCache.Clear()
	s.history.Clear()
	for i := range s.stack {
		s.stack[i].killer = gm.NullMove
	}
}

// Stop requests a cooperative abort of the running search.
func (s *Searcher) Stop() { s.stopFlag = true }

// Nodes returns the node count of the last search.
func (s *Searcher) Nodes() uint64 { return s.nodes }

// stopSearching polls the hard deadline every 1024 nodes to amortize
// clock reads; once set, the flag sticks for the rest of the search.
func (s *Searcher) stopSearching() bool {
	if !s.stopFlag && s.nodes%1024 == 0 && s.tm.HardTimeUp() {
		s.stopFlag = true
	}
	return s.stopFlag
}

// Think runs iterative deepening on the board within the given limits and
// returns the best move of the last completed iteration.
func (s *Searcher) Think(board *gm.Board, limits Limits) Result {
	s.board = board
	s.nodes = 0
	s.seldepth = 0
	s.stopFlag = false
	s.history.Clear()
	for i := range s.stack {
		s.stack[i].ply = i
		s.stack[i].killer = gm.NullMove
	}
	s.Stats.reset()

	switch {
	case limits.MoveTime > 0:
		s.tm.StartMoveTime(limits.MoveTime)
	case limits.Infinite || (limits.Depth > 0 && limits.WTime == 0 && limits.BTime == 0):
		s.tm.StartInfinite()
	default:
		remaining, inc := limits.WTime, limits.WInc
		if board.SideToMove() == gm.Black {
			remaining, inc = limits.BTime, limits.BInc
		}
		s.tm.StartClock(remaining, inc)
	}

	depthLimit := s.MaxDepth
	if limits.Depth > 0 && limits.Depth < depthLimit {
		depthLimit = limits.Depth
	}
	depthLimit = Clamp(depthLimit, 1, MaxPly)

	var result Result
	result.Move = gm.NullMove
	prevEval := NoScore

	for depth := 1; depth <= depthLimit; depth++ {
		score := s.aspiration(depth, prevEval)
		prevEval = score

		if s.stopFlag && depth > 1 {
			break
		}
		if s.pvTable[0].Length > 0 {
			result.Move = s.pvTable[0].Moves[0]
		}
		result.Depth = depth
		result.Seldepth = s.seldepth
		result.Nodes = s.nodes
		result.TimeMs = s.tm.Elapsed().Milliseconds()
		if !s.stopFlag {
			result.Eval = score
		}
		result.MateIn = mateIn(result.Eval)

		if s.PrintInfo {
			s.printInfo(result)
		}
		if Abs(result.Eval) >= MateThreshold {
			break
		}
		if s.tm.SoftTimeUp() {
			break
		}
	}

	if s.PrintStats {
		s.Stats.dump()
	}
	return result
}

// mateIn converts a mate score to signed moves-to-mate, or 0 for
// non-mate scores.
func mateIn(eval int32) int {
	if Abs(eval) < MateThreshold {
		return 0
	}
	plies := int(MaxScore - Abs(eval))
	moves := (plies + 1) / 2
	if eval < 0 {
		return -moves
	}
	return moves
}

// aspiration searches depth with a window around the previous iteration's
// score, doubling and re-searching until the result lands inside.
// Low depths use the full window; their scores are too unstable to aim at.
func (s *Searcher) aspiration(depth int, prevEval int32) int32 {
	delta := aspirationDelta
	var alpha, beta int32
	if depth <= 6 {
		alpha, beta = -MaxScore, MaxScore
	} else {
		alpha, beta = prevEval-delta, prevEval+delta
	}

	for {
		result := s.search(alpha, beta, depth, 0, nodeRoot)
		if s.stopSearching() || (alpha < result && result < beta) {
			return result
		}
		// A mated root scores exactly -MaxScore; the window cannot widen
		// past the full range, so a result pinned on a full-range bound is
		// final.
		if alpha == -MaxScore && beta == MaxScore {
			return result
		}
		alpha = Max(alpha-delta, -MaxScore)
		beta = Min(beta+delta, MaxScore)
		delta *= 2
	}
}

func (s *Searcher) search(alpha, beta int32, depth, ply int, node nodeKind) int32 {
	b := s.board
	isRoot := node == nodeRoot
	isPV := isRoot || node == nodePV
	oldAlpha := alpha
	s.pvTable[ply].Clear(ply)

	if s.stopSearching() {
		return NoScore
	}

	s.nodes++
	if ply > s.seldepth {
		s.seldepth = ply
	}

	if b.IsDraw() {
		return DrawScore
	}
	if depth <= 0 || ply >= MaxPly {
		return s.quiesce(alpha, beta, ply)
	}

	/*
		TRANSPOSITION TABLE LOOKUP
	*/
	hash := b.Hash()
	ttMove := gm.NullMove
	var staticEval int32
	if entry, hit := s.TT.Probe(hash); hit {
		ttScore := ScoreFromTT(entry.Score, ply)
		if !isPV && int(entry.Depth) >= depth {
			if entry.Flag == ExactFlag ||
				(entry.Flag == AlphaFlag && ttScore <= alpha) ||
				(entry.Flag == BetaFlag && ttScore >= beta) {
				s.Stats.TTCutoffs++
				return ttScore
			}
		}
		ttMove = entry.Move
		staticEval = ttScore
	} else {
		staticEval = Evaluate(b, &s.pawnCache)
	}

	/*
		INTERNAL ITERATIVE REDUCTIONS
		Nodes without a hash move are less likely to matter.
	*/
	if !isRoot && ttMove == gm.NullMove && depth >= 6 {
		depth--
	}

	/*
		REVERSE FUTILITY PRUNING
		The evaluation is so far above beta that the opponent cannot catch up.
	*/
	if !isPV && depth < 5 && staticEval-int32(100*depth) >= beta {
		s.Stats.RFPCutoffs++
		return beta
	}

	inCheck := b.OurKingInCheck()

	/*
		NULL MOVE PRUNING
		Hand the opponent a free move; if the position still beats beta at
		reduced depth, prune. Needs non-pawn material against zugzwang.
	*/
	if node != nodeNmp && !inCheck && depth >= 2 && staticEval >= beta && b.HasNonPawnMaterial() {
		reduction := 3 + depth/4
		b.MakeNullMove()
		s.TT.Prefetch(b.Hash())
		nullScore := -s.search(-beta, -beta+1, depth-reduction, ply+1, nodeNmp)
		b.UnmakeNullMove()
		if s.stopSearching() {
			return NoScore
		}
		if nullScore >= beta {
			if nullScore >= MateThreshold {
				nullScore = beta
			}
			s.Stats.NullMoveCutoffs++
			return nullScore
		}
	}

	ss := &s.stack[ply]
	mp := NewMovePicker(b, &s.history, ttMove, ss.killer)

	bestScore := -MaxScore
	bestMove := gm.NullMove
	failedQuiets := make([]gm.Move, 0, 16)
	skipQuiets := false

	for {
		move, ok := mp.NextMove()
		if !ok {
			break
		}
		quietMove := mp.InQuietStage()

		/*
			LATE MOVE PRUNING
			Moves sorted this far back rarely rescue the node; stop trying
			quiets, keep looking at tactics.
		*/
		if !skipQuiets && !isPV && !inCheck && mp.MovesPicked() >= 30 {
			skipQuiets = true
		}
		if skipQuiets && quietMove {
			s.Stats.LateMovePrunes++
			continue
		}

		b.MakeMove(move)
		s.TT.Prefetch(b.Hash())
		moveGivesCheck := b.OurKingInCheck()

		// Check extension
		newDepth := depth - 1
		if moveGivesCheck {
			newDepth++
		}

		/*
			LATE MOVE REDUCTIONS
			Null-window search late quiets at reduced depth; research on
			an alpha raise.
		*/
		var score int32
		doFullNull := false
		if quietMove && mp.MovesPicked() >= 4 && depth >= 3 && !moveGivesCheck {
			lmrDepth := newDepth - lmrReduction(depth, mp.MovesPicked())
			score = -s.search(-alpha-1, -alpha, lmrDepth, ply+1, nodeNotPV)
			doFullNull = score > alpha && lmrDepth < newDepth
		} else {
			doFullNull = !isPV || mp.MovesPicked() > 1
		}
		if doFullNull {
			score = -s.search(-alpha-1, -alpha, newDepth, ply+1, nodeNotPV)
		}

		/*
			PRINCIPAL VARIATION SEARCH
			Full-window research when the null window failed inside (alpha, beta).
		*/
		if isPV && ((score > alpha && score < beta) || mp.MovesPicked() == 1) {
			score = -s.search(-beta, -alpha, newDepth, ply+1, nodePV)
		}
		b.UnmakeMove()

		if s.stopSearching() {
			return bestScore
		}

		// Fail-soft: track the best score even outside the bounds
		if score > bestScore {
			bestScore = score
			bestMove = move
			if isPV {
				s.updatePV(ply, move)
			}
			if score > alpha {
				alpha = score
				if score >= beta {
					s.Stats.BetaCutoffs++
					if quietMove {
						s.history.Bonus(move, int8(depth))
						ss.killer = move
						// malus for the quiets ordered ahead of the cutoff move
						for _, q := range failedQuiets {
							s.history.Malus(q, int8(depth))
						}
					}
					break
				}
			}
		}
		if quietMove {
			failedQuiets = append(failedQuiets, move)
		}
	}

	// Checkmate or stalemate
	if mp.MovesPicked() == 0 {
		if inCheck {
			return -MaxScore + int32(ply)
		}
		return DrawScore
	}

	if bestMove != gm.NullMove {
		var bound int8
		switch {
		case bestScore >= beta:
			bound = BetaFlag
		case alpha == oldAlpha:
			bound = AlphaFlag
		default:
			bound = ExactFlag
		}
		s.TT.Store(hash, bestMove, bestScore, bound, int8(depth), ply)
	}
	return bestScore
}

// quiesce searches only captures and promotions at the horizon, using the
// static evaluation as a stand-pat lower bound. Fail-hard.
func (s *Searcher) quiesce(alpha, beta int32, ply int) int32 {
	b := s.board

	if s.stopSearching() {
		return NoScore
	}
	s.nodes++
	if ply > s.seldepth {
		s.seldepth = ply
	}

	standPat := Evaluate(b, &s.pawnCache)
	if standPat >= beta {
		s.Stats.QStandPatCutoffs++
		return beta
	}
	if alpha < standPat {
		alpha = standPat
	}
	if ply >= MaxPly {
		return standPat
	}

	// Stages 1-2 only: the hash move (when noisy) and the MVV-LVA captures
	ttMove := gm.NullMove
	if entry, hit := s.TT.Probe(b.Hash()); hit {
		m := entry.Move
		if m != gm.NullMove && (b.IsCapture(m) || m.PromotionPieceType() != gm.PieceTypeNone) {
			ttMove = m
		}
	}
	mp := NewNoisyPicker(b, &s.history, ttMove)

	for {
		move, ok := mp.NextMove()
		if !ok {
			break
		}
		b.MakeMove(move)
		s.TT.Prefetch(b.Hash())
		score := -s.quiesce(-beta, -alpha, ply+1)
		b.UnmakeMove()

		if s.stopSearching() {
			return alpha
		}
		if score >= beta {
			s.Stats.QBetaCutoffs++
			return beta
		}
		if score > alpha {
			alpha = score
		}
	}
	return alpha
}

// printInfo emits the UCI info line for a completed iteration. The PV is
// replayed on the board to audit legality; an illegal tail is truncated
// with a warning, per protocol hygiene.
func (s *Searcher) printInfo(r Result) {
	elapsed := r.TimeMs
	if elapsed <= 0 {
		elapsed = 1
	}
	nps := r.Nodes * 1000 / uint64(elapsed)

	pv := s.auditedPV()
	fmt.Printf("info depth %d seldepth %d nodes %d time %d nps %d score %s hashfull %d pv %s\n",
		r.Depth, r.Seldepth, r.Nodes, r.TimeMs, nps,
		getMateOrCPScore(r.Eval), s.TT.Hashfull(), pv)
}

// auditedPV renders the root PV, replaying it on the board and cutting it
// off at the first illegal move.
func (s *Searcher) auditedPV() string {
	b := s.board
	line := &s.pvTable[0]
	made := 0
	out := ""
	for i := 0; i < line.Length; i++ {
		m := line.Moves[i]
		if !b.IsPseudoLegal(m) || !b.MakeMove(m) {
			fmt.Printf("info string Warning: illegal move in PV: %s\n", m.String())
			break
		}
		made++
		if out != "" {
			out += " "
		}
		out += m.String()
	}
	for ; made > 0; made-- {
		b.UnmakeMove()
	}
	return out
}
