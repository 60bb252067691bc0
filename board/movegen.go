package board

import (
	"errors"
	"fmt"
)

var promotionOrder = [4]PieceType{Queen, Rook, Bishop, Knight}

// PseudoLegalMoves returns c's moves ignoring whether they leave c's own
// king in check. Castling is only produced when the king is not in check
// and does not pass through or land on an attacked square. En passant is
// only available to the side to move.
func (b *Board) PseudoLegalMoves(c Color) []Move {
	return b.PseudoLegalMovesInto(c, make([]Move, 0, 64))
}

// PseudoLegalMovesInto appends to dst and returns the extended slice.
// Moves come out in a fixed order: pawns, knights, bishops, rooks, queens,
// king, castling; by ascending from-square then to-square within each.
func (b *Board) PseudoLegalMovesInto(c Color, dst []Move) []Move {
	own := b.occupancy[c]
	enemy := b.occupancy[c.Opp()]
	occ := own | enemy

	dst = b.pawnMoves(c, occ, enemy, dst)

	for pt := Knight; pt <= King; pt++ {
		piece := MakePiece(c, pt)
		for from := b.bitboards[c][pt]; from != 0; {
			sq := popLSB(&from)
			for targets := attacksOf(piece, sq, occ) &^ own; targets != 0; {
				to := popLSB(&targets)
				dst = append(dst, NewMove(sq, to, piece, b.pieces[to], NoPiece, 0))
			}
		}
	}

	return b.castlingMoves(c, occ, dst)
}

func (b *Board) pawnMoves(c Color, occ, enemy uint64, dst []Move) []Move {
	pawn := MakePiece(c, Pawn)
	push, startRank, lastRank := Square(8), 1, 7
	if c == Black {
		push, startRank, lastRank = -8, 6, 0
	}

	addPawnMove := func(from, to Square, captured Piece, flags MoveFlags) {
		if to.Rank() == lastRank {
			for _, pt := range promotionOrder {
				dst = append(dst, NewMove(from, to, pawn, captured, MakePiece(c, pt), flags))
			}
			return
		}
		dst = append(dst, NewMove(from, to, pawn, captured, NoPiece, flags))
	}

	epTarget := uint64(0)
	if c == b.sideToMove && b.enPassantSquare != NoSquare {
		epTarget = bb(b.enPassantSquare)
	}

	for pawns := b.bitboards[c][Pawn]; pawns != 0; {
		from := popLSB(&pawns)
		if one := from + push; one.Valid() && occ&bb(one) == 0 {
			addPawnMove(from, one, NoPiece, 0)
			if two := one + push; from.Rank() == startRank && occ&bb(two) == 0 {
				dst = append(dst, NewMove(from, two, pawn, NoPiece, NoPiece, FlagDoublePush))
			}
		}
		att := pawnAttacks[c][from]
		for caps := att & enemy; caps != 0; {
			to := popLSB(&caps)
			addPawnMove(from, to, b.pieces[to], 0)
		}
		if att&epTarget != 0 {
			to := b.enPassantSquare
			captured := b.pieces[epCaptureSquare(to, c)]
			if captured == MakePiece(c.Opp(), Pawn) {
				dst = append(dst, NewMove(from, to, pawn, captured, NoPiece, FlagEnPassant))
			}
		}
	}
	return dst
}

type castleSpec struct {
	right  CastlingRights
	king   Square
	kingTo Square
	rook   Square
	empty  uint64 // squares between king and rook
	safe   [3]Square
}

var castleSpecs = [2][2]castleSpec{
	White: {
		{CastlingWhiteK, E1, G1, H1, bb(F1) | bb(G1), [3]Square{E1, F1, G1}},
		{CastlingWhiteQ, E1, C1, A1, bb(B1) | bb(C1) | bb(D1), [3]Square{E1, D1, C1}},
	},
	Black: {
		{CastlingBlackK, E8, G8, H8, bb(F8) | bb(G8), [3]Square{E8, F8, G8}},
		{CastlingBlackQ, E8, C8, A8, bb(B8) | bb(C8) | bb(D8), [3]Square{E8, D8, C8}},
	},
}

func (b *Board) castlingMoves(c Color, occ uint64, dst []Move) []Move {
	king, rook := MakePiece(c, King), MakePiece(c, Rook)
	for _, cs := range castleSpecs[c] {
		if b.castlingRights&cs.right == 0 || occ&cs.empty != 0 {
			continue
		}
		if b.pieces[cs.king] != king || b.pieces[cs.rook] != rook {
			continue
		}
		attacked := false
		for _, sq := range cs.safe {
			if b.IsSquareAttacked(sq, c.Opp()) {
				attacked = true
				break
			}
		}
		if !attacked {
			dst = append(dst, NewMove(cs.king, cs.kingTo, king, NoPiece, NoPiece, FlagCastle))
		}
	}
	return dst
}

// LegalMoves returns c's moves that do not leave c's king in check.
func (b *Board) LegalMoves(c Color) []Move {
	return b.LegalMovesInto(c, make([]Move, 0, 64))
}

// LegalMovesInto appends c's legal moves to dst. Each pseudo-legal move is
// tried on the board and taken back, so the position is unchanged on return.
func (b *Board) LegalMovesInto(c Color, dst []Move) []Move {
	start := len(dst)
	dst = b.PseudoLegalMovesInto(c, dst)
	n := start
	for _, m := range dst[start:] {
		if b.leavesKingSafe(m, c) {
			dst[n] = m
			n++
		}
	}
	return dst[:n]
}

func (b *Board) leavesKingSafe(m Move, c Color) bool {
	b.Apply(m)
	ok := !b.InCheck(c)
	b.Undo()
	return ok
}

// HasLegalMoves reports whether c has at least one legal move.
func (b *Board) HasLegalMoves(c Color) bool {
	var buf [64]Move
	for _, m := range b.PseudoLegalMovesInto(c, buf[:0]) {
		if b.leavesKingSafe(m, c) {
			return true
		}
	}
	return false
}

// LegalMovesFor returns the side to move's legal moves starting on sq.
func (b *Board) LegalMovesFor(sq Square) []Move {
	var out []Move
	for _, m := range b.LegalMoves(b.sideToMove) {
		if m.From() == sq {
			out = append(out, m)
		}
	}
	return out
}

// ErrIllegalMove is returned when a requested move is not legal.
var ErrIllegalMove = errors.New("illegal move")

// FindMove resolves from/to (and an optional promotion type) to a legal move
// for the side to move. An omitted promotion defaults to a queen.
func (b *Board) FindMove(from, to Square, promo PieceType) (Move, error) {
	if promo == PieceTypeNone {
		promo = Queen
	}
	for _, m := range b.LegalMoves(b.sideToMove) {
		if m.From() != from || m.To() != to {
			continue
		}
		if m.IsPromotion() && m.Promotion() != promo {
			continue
		}
		return m, nil
	}
	return NullMove, fmt.Errorf("%w: %v%v in %s", ErrIllegalMove, from, to, b.FEN())
}

// ParseMove resolves coordinate notation such as "e2e4" or "a7a8n".
func (b *Board) ParseMove(s string) (Move, error) {
	if len(s) != 4 && len(s) != 5 {
		return NullMove, fmt.Errorf("%w: malformed move %q", ErrIllegalMove, s)
	}
	from, err := ParseSquare(s[0:2])
	if err != nil {
		return NullMove, fmt.Errorf("%w: %v", ErrIllegalMove, err)
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NullMove, fmt.Errorf("%w: %v", ErrIllegalMove, err)
	}
	promo, err := ParsePromotion(s[4:])
	if err != nil {
		return NullMove, fmt.Errorf("%w: %v", ErrIllegalMove, err)
	}
	return b.FindMove(from, to, promo)
}

// Status describes whether the game can continue.
type Status uint8

const (
	Ongoing Status = iota
	Checkmate
	Stalemate
)

func (s Status) String() string {
	switch s {
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	}
	return "ongoing"
}

// Status reports checkmate or stalemate for the side to move.
func (b *Board) Status() Status {
	if b.HasLegalMoves(b.sideToMove) {
		return Ongoing
	}
	if b.InCheck(b.sideToMove) {
		return Checkmate
	}
	return Stalemate
}
