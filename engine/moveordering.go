package engine

import "adaptive-chess/board"

type scoredMove struct {
	move  board.Move
	score uint16
}

// Most Valuable Victim - Least Valuable Aggressor, indexed [victim][attacker].
var mvvLva = [7][7]uint16{
	{0, 0, 0, 0, 0, 0, 0},
	{0, 14, 13, 12, 11, 10, 0}, // victim Pawn
	{0, 24, 23, 22, 21, 20, 0}, // victim Knight
	{0, 34, 33, 32, 31, 30, 0}, // victim Bishop
	{0, 44, 43, 42, 41, 40, 0}, // victim Rook
	{0, 54, 53, 52, 51, 50, 0}, // victim Queen
	{0, 0, 0, 0, 0, 0, 0},      // victim King
}

// Promotions first, then captures, then quiet moves in generation order.
const (
	promotionOffset uint16 = 20000
	captureOffset   uint16 = 15000
)

// scoreMoves attaches a static ordering score to each move. The score
// depends only on the move itself so the order is the same on every visit.
func scoreMoves(moves []board.Move, dst []scoredMove) []scoredMove {
	dst = dst[:0]
	for _, m := range moves {
		var score uint16
		if promo := m.Promotion(); promo != board.PieceTypeNone {
			score += promotionOffset + uint16(promo)*10
		}
		if m.IsCapture() {
			score += captureOffset + mvvLva[m.CapturedPiece().Type()][m.MovedPiece().Type()]
		}
		dst = append(dst, scoredMove{move: m, score: score})
	}
	return dst
}

// orderNextMove swaps the best remaining move into position currIndex.
// Ties keep the earliest move.
func orderNextMove(currIndex int, moves []scoredMove) {
	bestIndex := currIndex
	bestScore := moves[bestIndex].score
	for index := currIndex + 1; index < len(moves); index++ {
		if moves[index].score > bestScore {
			bestIndex = index
			bestScore = moves[index].score
		}
	}
	moves[currIndex], moves[bestIndex] = moves[bestIndex], moves[currIndex]
}

// OrderedMoves returns the side to move's legal moves in search order.
func OrderedMoves(b *board.Board) []board.Move {
	scored := scoreMoves(b.LegalMoves(b.SideToMove()), nil)
	out := make([]board.Move, len(scored))
	for i := range scored {
		orderNextMove(i, scored)
		out[i] = scored[i].move
	}
	return out
}
