package game

import "adaptive-chess/board"

// MoveFacts summarizes an applied move for display and persistence.
type MoveFacts struct {
	Move        board.Move
	Piece       board.PieceType
	Captured    board.PieceType
	IsCapture   bool
	IsCheck     bool
	IsCastle    bool
	IsPromotion bool
	FromCentral bool
	ToCentral   bool
	Forward     bool
	// MaterialDelta is the change in the mover's material lead, in
	// centipawns.
	MaterialDelta int
}

func materialLead(b *board.Board, c board.Color) int {
	return b.Material(c) - b.Material(c.Opp())
}

// applyWithFacts plays m on b and describes it.
func applyWithFacts(b *board.Board, m board.Move) MoveFacts {
	us := m.Color()
	lead := materialLead(b, us)
	b.Apply(m)

	from, to := m.From(), m.To()
	f := MoveFacts{
		Move:          m,
		Piece:         m.MovedPiece().Type(),
		Captured:      m.CapturedPiece().Type(),
		IsCapture:     m.IsCapture(),
		IsCheck:       b.InCheck(us.Opp()),
		IsCastle:      m.IsCastle(),
		IsPromotion:   m.IsPromotion(),
		FromCentral:   from.Central(),
		ToCentral:     to.Central(),
		MaterialDelta: materialLead(b, us) - lead,
	}
	if us == board.White {
		f.Forward = to.Rank() > from.Rank()
	} else {
		f.Forward = to.Rank() < from.Rank()
	}
	return f
}
