package game

import (
	"errors"
	"fmt"

	"adaptive-chess/board"
)

var (
	// ErrGameOver is returned when a move is requested after checkmate or
	// stalemate.
	ErrGameOver = errors.New("game is over")
	// ErrNotYourTurn is returned when a side tries to move out of turn.
	ErrNotYourTurn = errors.New("not your turn")
)

// IllegalMoveError reports a rejected human move. The board is unchanged.
type IllegalMoveError struct {
	From, To  board.Square
	Promotion board.PieceType
}

func (e *IllegalMoveError) Error() string {
	s := fmt.Sprintf("illegal move %v%v", e.From, e.To)
	if e.Promotion != board.PieceTypeNone {
		s += "=" + e.Promotion.String()
	}
	return s
}

func (e *IllegalMoveError) Unwrap() error { return board.ErrIllegalMove }
