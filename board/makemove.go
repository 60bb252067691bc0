package board

import "fmt"

// undoState records what Apply overwrote so Undo can restore it.
type undoState struct {
	move           Move
	captured       Piece
	sideToMove     Color
	castlingRights CastlingRights
	enPassant      Square
	halfmoveClock  int
	fullmoveNumber int
	zobristKey     uint64
}

// castleKeep[sq] is ANDed into the castling rights whenever a move leaves
// from or lands on sq.
var castleKeep [64]CastlingRights

func init() {
	for i := range castleKeep {
		castleKeep[i] = CastlingAll
	}
	castleKeep[E1] &^= CastlingWhiteK | CastlingWhiteQ
	castleKeep[H1] &^= CastlingWhiteK
	castleKeep[A1] &^= CastlingWhiteQ
	castleKeep[E8] &^= CastlingBlackK | CastlingBlackQ
	castleKeep[H8] &^= CastlingBlackK
	castleKeep[A8] &^= CastlingBlackQ
}

// castleRookSquares maps a castling king destination to the rook's from/to.
func castleRookSquares(kingTo Square) (Square, Square) {
	switch kingTo {
	case G1:
		return H1, F1
	case C1:
		return A1, D1
	case G8:
		return H8, F8
	case C8:
		return A8, D8
	}
	panic(fmt.Sprintf("board: no castling rook for king destination %v", kingTo))
}

func epCaptureSquare(to Square, mover Color) Square {
	if mover == White {
		return to - 8
	}
	return to + 8
}

// Apply plays m, which must come from LegalMoves or PseudoLegalMoves for
// the current position. Side to move passes to the mover's opponent.
// A move whose piece is not on its from-square panics.
func (b *Board) Apply(m Move) {
	from, to := m.From(), m.To()
	moved := m.MovedPiece()
	if moved == NoPiece || b.pieces[from] != moved {
		panic(fmt.Sprintf("board: Apply %v: expected %v on %v, found %v", m, moved, from, b.pieces[from]))
	}
	us := moved.Color()

	st := undoState{
		move:           m,
		sideToMove:     b.sideToMove,
		castlingRights: b.castlingRights,
		enPassant:      b.enPassantSquare,
		halfmoveClock:  b.halfmoveClock,
		fullmoveNumber: b.fullmoveNumber,
		zobristKey:     b.zobristKey,
	}

	if b.enPassantSquare != NoSquare {
		b.zobristKey ^= zobristEnPassant[b.enPassantSquare.File()]
		b.enPassantSquare = NoSquare
	}

	if m.IsEnPassant() {
		st.captured = b.removePiece(epCaptureSquare(to, us))
	} else {
		st.captured = b.removePiece(to)
	}
	b.removePiece(from)
	if promo := m.PromotionPiece(); promo != NoPiece {
		b.addPiece(to, promo)
	} else {
		b.addPiece(to, moved)
	}
	if m.IsCastle() {
		rookFrom, rookTo := castleRookSquares(to)
		b.addPiece(rookTo, b.removePiece(rookFrom))
	}

	if cr := b.castlingRights & castleKeep[from] & castleKeep[to]; cr != b.castlingRights {
		b.zobristKey ^= zobristCastle[b.castlingRights] ^ zobristCastle[cr]
		b.castlingRights = cr
	}

	if m.IsDoublePush() {
		b.enPassantSquare = (from + to) / 2
		b.zobristKey ^= zobristEnPassant[b.enPassantSquare.File()]
	}

	if moved.Type() == Pawn || st.captured != NoPiece {
		b.halfmoveClock = 0
	} else {
		b.halfmoveClock++
	}
	if us == Black {
		b.fullmoveNumber++
	}
	if b.sideToMove != us.Opp() {
		b.sideToMove = us.Opp()
		b.zobristKey ^= zobristSide
	}

	b.history = append(b.history, st)
}

// Undo takes back the last applied move. It panics if there is none.
func (b *Board) Undo() {
	n := len(b.history)
	if n == 0 {
		panic("board: Undo with empty history")
	}
	st := b.history[n-1]
	b.history = b.history[:n-1]

	m := st.move
	from, to := m.From(), m.To()
	if m.IsCastle() {
		rookFrom, rookTo := castleRookSquares(to)
		b.addPiece(rookFrom, b.removePiece(rookTo))
	}
	b.removePiece(to)
	b.addPiece(from, m.MovedPiece())
	if st.captured != NoPiece {
		capSq := to
		if m.IsEnPassant() {
			capSq = epCaptureSquare(to, m.Color())
		}
		b.addPiece(capSq, st.captured)
	}

	b.sideToMove = st.sideToMove
	b.castlingRights = st.castlingRights
	b.enPassantSquare = st.enPassant
	b.halfmoveClock = st.halfmoveClock
	b.fullmoveNumber = st.fullmoveNumber
	b.zobristKey = st.zobristKey
}
