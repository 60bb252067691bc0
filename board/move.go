package board

import (
	"fmt"
	"strings"
)

// Square indexes the board a1=0 .. h8=63.
type Square int8

const NoSquare Square = -1

const (
	A1, B1, C1, D1, E1, F1, G1, H1 Square = 0, 1, 2, 3, 4, 5, 6, 7
	A8, B8, C8, D8, E8, F8, G8, H8 Square = 56, 57, 58, 59, 60, 61, 62, 63
)

// NewSquare builds a square from zero-based file and rank.
func NewSquare(file, rank int) Square { return Square(rank*8 + file) }

// File returns 0 for the a-file through 7 for the h-file.
func (sq Square) File() int { return int(sq) & 7 }

// Rank returns 0 for the first rank through 7 for the eighth.
func (sq Square) Rank() int { return int(sq) >> 3 }

// Valid reports whether sq is on the board.
func (sq Square) Valid() bool { return sq >= 0 && sq < 64 }

// Central reports whether sq is one of d4, e4, d5, e5.
func (sq Square) Central() bool {
	f, r := sq.File(), sq.Rank()
	return sq.Valid() && (f == 3 || f == 4) && (r == 3 || r == 4)
}

func (sq Square) String() string {
	if !sq.Valid() {
		return "-"
	}
	return string([]byte{'a' + byte(sq.File()), '1' + byte(sq.Rank())})
}

// ParseSquare parses algebraic notation such as "e4".
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("board: bad square %q", s)
	}
	f, r := s[0], s[1]
	if f >= 'A' && f <= 'H' {
		f += 'a' - 'A'
	}
	if f < 'a' || f > 'h' || r < '1' || r > '8' {
		return NoSquare, fmt.Errorf("board: bad square %q", s)
	}
	return NewSquare(int(f-'a'), int(r-'1')), nil
}

// Move packs a move into 32 bits:
//
//	bits  0-5   from
//	bits  6-11  to
//	bits 12-15  moved piece
//	bits 16-19  captured piece
//	bits 20-23  promotion piece
//	bits 24-27  flags
type Move uint32

// NullMove is the zero move; it is never legal.
const NullMove Move = 0

const (
	moveToShift      = 6
	movePieceShift   = 12
	moveCaptureShift = 16
	movePromoteShift = 20
	moveFlagShift    = 24
)

// MoveFlags marks special move kinds.
type MoveFlags uint8

const (
	FlagCapture MoveFlags = 1 << iota
	FlagEnPassant
	FlagCastle
	FlagDoublePush
)

// NewMove constructs a move from its parts.
func NewMove(from, to Square, piece, captured, promotion Piece, flags MoveFlags) Move {
	if captured != NoPiece {
		flags |= FlagCapture
	}
	return Move(uint32(from&63) |
		uint32(to&63)<<moveToShift |
		uint32(piece&15)<<movePieceShift |
		uint32(captured&15)<<moveCaptureShift |
		uint32(promotion&15)<<movePromoteShift |
		uint32(flags&15)<<moveFlagShift)
}

func (m Move) From() Square          { return Square(m & 63) }
func (m Move) To() Square            { return Square((m >> moveToShift) & 63) }
func (m Move) MovedPiece() Piece     { return Piece((m >> movePieceShift) & 15) }
func (m Move) CapturedPiece() Piece  { return Piece((m >> moveCaptureShift) & 15) }
func (m Move) PromotionPiece() Piece { return Piece((m >> movePromoteShift) & 15) }
func (m Move) Promotion() PieceType  { return m.PromotionPiece().Type() }
func (m Move) Flags() MoveFlags      { return MoveFlags((m >> moveFlagShift) & 15) }
func (m Move) IsCapture() bool       { return m.Flags()&FlagCapture != 0 }
func (m Move) IsEnPassant() bool     { return m.Flags()&FlagEnPassant != 0 }
func (m Move) IsCastle() bool        { return m.Flags()&FlagCastle != 0 }
func (m Move) IsDoublePush() bool    { return m.Flags()&FlagDoublePush != 0 }
func (m Move) IsPromotion() bool     { return m.PromotionPiece() != NoPiece }
func (m Move) Color() Color          { return m.MovedPiece().Color() }

// String returns coordinate notation such as "e2e4" or "e7e8q".
func (m Move) String() string {
	if m == NullMove {
		return "0000"
	}
	s := m.From().String() + m.To().String()
	if promo := m.PromotionPiece(); promo != NoPiece {
		s += strings.ToLower(string(charFromPiece(promo)))
	}
	return s
}

// ParsePromotion maps "q", "r", "b", "n" (any case) to a piece type.
// The empty string yields PieceTypeNone.
func ParsePromotion(s string) (PieceType, error) {
	switch strings.ToLower(s) {
	case "":
		return PieceTypeNone, nil
	case "q":
		return Queen, nil
	case "r":
		return Rook, nil
	case "b":
		return Bishop, nil
	case "n":
		return Knight, nil
	}
	return PieceTypeNone, fmt.Errorf("board: bad promotion piece %q", s)
}
