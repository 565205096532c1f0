package heronmg

// promotionTypes in generation order; queen first so the most forcing
// move of each promotion fan is tried first.
var promotionTypes = [4]PieceType{PieceTypeQueen, PieceTypeRook, PieceTypeBishop, PieceTypeKnight}

// PseudoCaptures appends all pseudo-legal captures and promotions for the
// side to move. Promotions (both capturing and pushing) belong to this
// phase; they are the "noisy" moves of the move picker.
func (b *Board) PseudoCaptures(dst []Move) []Move {
	us := b.sideToMove
	them := 1 - us
	ui := int(us)
	occ := b.AllOccupancy()
	enemy := b.occupancy[int(them)]

	for pieces := b.knights[ui]; pieces != 0; {
		sq := PopLsb(&pieces)
		dst = appendTargets(dst, Square(sq), knightMoves[sq]&enemy)
	}
	for pieces := b.bishops[ui]; pieces != 0; {
		sq := PopLsb(&pieces)
		dst = appendTargets(dst, Square(sq), BishopAttacks(sq, occ)&enemy)
	}
	for pieces := b.rooks[ui]; pieces != 0; {
		sq := PopLsb(&pieces)
		dst = appendTargets(dst, Square(sq), RookAttacks(sq, occ)&enemy)
	}
	for pieces := b.queens[ui]; pieces != 0; {
		sq := PopLsb(&pieces)
		dst = appendTargets(dst, Square(sq), QueenAttacks(sq, occ)&enemy)
	}
	if kbb := b.kings[ui]; kbb != 0 {
		sq := Lsb(kbb)
		dst = appendTargets(dst, Square(sq), kingMoves[sq]&enemy)
	}

	promoRank := rankMasks[6]
	if us == Black {
		promoRank = rankMasks[1]
	}
	pawns := b.pawns[ui] &^ promoRank
	promoting := b.pawns[ui] & promoRank

	// Pawn captures, including onto the en-passant square
	capTargets := enemy
	if b.enPassantSquare != NoSquare {
		capTargets |= bb(b.enPassantSquare)
	}
	for p := pawns; p != 0; {
		sq := PopLsb(&p)
		dst = appendTargets(dst, Square(sq), pawnAttacks[us][sq]&capTargets)
	}

	// Promotions: captures and pushes, four pieces each
	for p := promoting; p != 0; {
		sq := PopLsb(&p)
		targets := pawnAttacks[us][sq] & enemy
		push := pawnPushSquare(us, sq)
		if occ&bb(push) == 0 {
			targets |= bb(push)
		}
		for targets != 0 {
			to := PopLsb(&targets)
			for _, pt := range promotionTypes {
				dst = append(dst, NewMove(Square(sq), Square(to), pt))
			}
		}
	}
	return dst
}

// PseudoQuiets appends all pseudo-legal non-capturing, non-promoting
// moves for the side to move, including castling. Castling path emptiness
// and safety are validated here; the final king-square check is shared
// with every other move via MakeMove.
func (b *Board) PseudoQuiets(dst []Move) []Move {
	us := b.sideToMove
	ui := int(us)
	occ := b.AllOccupancy()
	empty := ^occ

	for pieces := b.knights[ui]; pieces != 0; {
		sq := PopLsb(&pieces)
		dst = appendTargets(dst, Square(sq), knightMoves[sq]&empty)
	}
	for pieces := b.bishops[ui]; pieces != 0; {
		sq := PopLsb(&pieces)
		dst = appendTargets(dst, Square(sq), BishopAttacks(sq, occ)&empty)
	}
	for pieces := b.rooks[ui]; pieces != 0; {
		sq := PopLsb(&pieces)
		dst = appendTargets(dst, Square(sq), RookAttacks(sq, occ)&empty)
	}
	for pieces := b.queens[ui]; pieces != 0; {
		sq := PopLsb(&pieces)
		dst = appendTargets(dst, Square(sq), QueenAttacks(sq, occ)&empty)
	}
	if kbb := b.kings[ui]; kbb != 0 {
		sq := Lsb(kbb)
		dst = appendTargets(dst, Square(sq), kingMoves[sq]&empty)
	}

	// Pawn pushes (promotions are generated with the captures)
	promoRank := rankMasks[6]
	startRank := rankMasks[1]
	if us == Black {
		promoRank = rankMasks[1]
		startRank = rankMasks[6]
	}
	for p := b.pawns[ui] &^ promoRank; p != 0; {
		sq := PopLsb(&p)
		push := pawnPushSquare(us, sq)
		if occ&bb(push) != 0 {
			continue
		}
		dst = append(dst, NewMove(Square(sq), push, PieceTypeNone))
		if bb(Square(sq))&startRank != 0 {
			jump := pawnPushSquare(us, int(push))
			if occ&bb(jump) == 0 {
				dst = append(dst, NewMove(Square(sq), jump, PieceTypeNone))
			}
		}
	}

	dst = b.appendCastles(dst, occ)
	return dst
}

func pawnPushSquare(us Color, sq int) Square {
	if us == White {
		return Square(sq + 8)
	}
	return Square(sq - 8)
}

func appendTargets(dst []Move, from Square, targets uint64) []Move {
	for targets != 0 {
		to := PopLsb(&targets)
		dst = append(dst, NewMove(from, Square(to), PieceTypeNone))
	}
	return dst
}

// appendCastles emits the still-available castling moves. A castle
// requires the squares between king and rook to be empty and the king's
// current, crossed and destination squares to be unattacked.
func (b *Board) appendCastles(dst []Move, occ uint64) []Move {
	us := b.sideToMove
	them := 1 - us
	if us == White {
		if b.pieces[4] != WhiteKing {
			return dst
		}
		if b.castlingRights&CastlingWhiteK != 0 && b.pieces[7] == WhiteRook &&
			occ&(bb(5)|bb(6)) == 0 &&
			!b.IsSquareAttacked(4, them) && !b.IsSquareAttacked(5, them) && !b.IsSquareAttacked(6, them) {
			dst = append(dst, NewMove(4, 6, PieceTypeNone))
		}
		if b.castlingRights&CastlingWhiteQ != 0 && b.pieces[0] == WhiteRook &&
			occ&(bb(1)|bb(2)|bb(3)) == 0 &&
			!b.IsSquareAttacked(4, them) && !b.IsSquareAttacked(3, them) && !b.IsSquareAttacked(2, them) {
			dst = append(dst, NewMove(4, 2, PieceTypeNone))
		}
	} else {
		if b.pieces[60] != BlackKing {
			return dst
		}
		if b.castlingRights&CastlingBlackK != 0 && b.pieces[63] == BlackRook &&
			occ&(bb(61)|bb(62)) == 0 &&
			!b.IsSquareAttacked(60, them) && !b.IsSquareAttacked(61, them) && !b.IsSquareAttacked(62, them) {
			dst = append(dst, NewMove(60, 62, PieceTypeNone))
		}
		if b.castlingRights&CastlingBlackQ != 0 && b.pieces[56] == BlackRook &&
			occ&(bb(57)|bb(58)|bb(59)) == 0 &&
			!b.IsSquareAttacked(60, them) && !b.IsSquareAttacked(59, them) && !b.IsSquareAttacked(58, them) {
			dst = append(dst, NewMove(60, 58, PieceTypeNone))
		}
	}
	return dst
}

// IsPseudoLegal reports whether the move is one the generator could have
// produced for the current position. Hash moves come from the
// transposition table and may belong to a colliding position, so they are
// validated here before being trusted.
func (b *Board) IsPseudoLegal(m Move) bool {
	if m == NullMove {
		return false
	}
	from := m.From()
	to := m.To()
	p := b.pieces[int(from)]
	if p == NoPiece || colorOf(p) != b.sideToMove {
		return false
	}
	us := b.sideToMove
	occ := b.AllOccupancy()
	if b.occupancy[int(us)]&bb(to) != 0 {
		return false
	}
	promo := m.PromotionPieceType()
	if promo != PieceTypeNone && typeOf(p) != 1 {
		return false
	}

	switch typeOf(p) {
	case 1: // pawn
		lastRank := rankMasks[7]
		if us == Black {
			lastRank = rankMasks[0]
		}
		if (bb(to)&lastRank != 0) != (promo != PieceTypeNone) {
			return false
		}
		if fileOf(int(from)) == fileOf(int(to)) {
			// push
			push := pawnPushSquare(us, int(from))
			if occ&bb(push) != 0 {
				return false
			}
			if to == push {
				return true
			}
			startRank := rankMasks[1]
			if us == Black {
				startRank = rankMasks[6]
			}
			return bb(from)&startRank != 0 && to == pawnPushSquare(us, int(push)) && occ&bb(to) == 0
		}
		// capture
		if pawnAttacks[us][int(from)]&bb(to) == 0 {
			return false
		}
		return b.pieces[int(to)] != NoPiece || to == b.enPassantSquare
	case 2:
		return knightMoves[int(from)]&bb(to) != 0
	case 3:
		return BishopAttacks(int(from), occ)&bb(to) != 0
	case 4:
		return RookAttacks(int(from), occ)&bb(to) != 0
	case 5:
		return QueenAttacks(int(from), occ)&bb(to) != 0
	case 6:
		if kingMoves[int(from)]&bb(to) != 0 {
			return true
		}
		// castling: regenerate the castle moves and check membership
		if abs(fileOf(int(to))-fileOf(int(from))) == 2 {
			for _, c := range b.appendCastles(make([]Move, 0, 2), occ) {
				if c == m {
					return true
				}
			}
		}
		return false
	}
	return false
}

// legalFilter keeps only the moves that do not leave the mover in check.
func (b *Board) legalFilter(moves []Move) []Move {
	out := moves[:0]
	for _, m := range moves {
		if b.IsLegal(m) {
			out = append(out, m)
		}
	}
	return out
}

// GenerateCaptures returns the legal captures and promotions.
func (b *Board) GenerateCaptures() []Move {
	return b.legalFilter(b.PseudoCaptures(make([]Move, 0, 64)))
}

// GenerateQuiets returns the legal quiet moves.
func (b *Board) GenerateQuiets() []Move {
	return b.legalFilter(b.PseudoQuiets(make([]Move, 0, 64)))
}

// GenerateMoves returns every legal move, captures first. The output is
// stable for equal inputs.
func (b *Board) GenerateMoves() []Move {
	moves := b.PseudoCaptures(make([]Move, 0, 128))
	moves = b.PseudoQuiets(moves)
	return b.legalFilter(moves)
}

// HasLegalMoves reports whether the side to move has any legal moves.
func (b *Board) HasLegalMoves() bool {
	moves := b.PseudoCaptures(make([]Move, 0, 64))
	moves = b.PseudoQuiets(moves)
	for _, m := range moves {
		if b.IsLegal(m) {
			return true
		}
	}
	return false
}
