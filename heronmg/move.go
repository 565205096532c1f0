package heronmg

import (
	"errors"
	"strings"
)

// Move encodes a chess move in 16 bits: from square (bits 0-5), to square
// (bits 6-11) and promotion piece type (bits 12-15). Castling is encoded
// as the king moving two files; en passant as a pawn capture onto the
// en-passant square. NullMove (all bits set) denotes absence.
type Move uint16

const NullMove Move = 0xFFFF

const (
	moveToShift    = 6
	movePromoShift = 12
)

// NewMove constructs a Move value from its components.
func NewMove(from, to Square, promotion PieceType) Move {
	return Move(uint16(from&0x3F) |
		uint16(to&0x3F)<<moveToShift |
		uint16(promotion&0xF)<<movePromoShift)
}

// From returns the source square of the move.
func (m Move) From() Square { return Square(m & 0x3F) }

// To returns the destination square of the move.
func (m Move) To() Square { return Square((m >> moveToShift) & 0x3F) }

// PromotionPieceType returns the colorless type of the promoted piece
// (or PieceTypeNone).
func (m Move) PromotionPieceType() PieceType { return PieceType((m >> movePromoShift) & 0xF) }

// String produces the long-algebraic representation (e.g. "e2e4", "e7e8q").
func (m Move) String() string {
	if m == NullMove {
		return "0000"
	}
	from := m.From()
	to := m.To()
	str := string([]byte{
		'a' + byte(from%8), '1' + byte(from/8),
		'a' + byte(to%8), '1' + byte(to/8),
	})
	switch m.PromotionPieceType() {
	case PieceTypeQueen:
		str += "q"
	case PieceTypeRook:
		str += "r"
	case PieceTypeBishop:
		str += "b"
	case PieceTypeKnight:
		str += "n"
	}
	return str
}

// ParseMove converts a UCI move string (e2e4, e7e8q, 0000) into a Move.
func ParseMove(movestr string) (Move, error) {
	movestr = strings.TrimSpace(strings.ToLower(movestr))
	if movestr == "0000" {
		return NullMove, nil
	}
	if len(movestr) < 4 || len(movestr) > 5 {
		return NullMove, errors.New("invalid move length")
	}
	from, err := algebraicToIndex(movestr[0:2])
	if err != nil {
		return NullMove, err
	}
	to, err := algebraicToIndex(movestr[2:4])
	if err != nil {
		return NullMove, err
	}
	promo := PieceTypeNone
	if len(movestr) == 5 {
		switch movestr[4] {
		case 'q':
			promo = PieceTypeQueen
		case 'r':
			promo = PieceTypeRook
		case 'b':
			promo = PieceTypeBishop
		case 'n':
			promo = PieceTypeKnight
		default:
			return NullMove, errors.New("invalid promotion piece")
		}
	}
	return NewMove(Square(from), Square(to), promo), nil
}

func algebraicToIndex(alg string) (int, error) {
	if len(alg) != 2 {
		return 0, errors.New("invalid algebraic square length")
	}
	file := alg[0]
	rank := alg[1]
	if file < 'a' || file > 'h' || rank < '1' || rank > '8' {
		return 0, errors.New("invalid algebraic square")
	}
	return int(file-'a') + int(rank-'1')*8, nil
}

// IsCapture reports whether the move captures a piece on the given board
// (including en passant).
func (b *Board) IsCapture(m Move) bool {
	to := m.To()
	if b.pieces[int(to)] != NoPiece {
		return true
	}
	return to == b.enPassantSquare && b.enPassantSquare != NoSquare &&
		typeOf(b.pieces[int(m.From())]) == 1
}
