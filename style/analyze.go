// Package style classifies how a player moves and turns that classification
// into evaluation weights.
package style

import (
	"adaptive-chess/board"
	"adaptive-chess/engine"
	"adaptive-chess/profile"
)

// pawnUnits values pieces in pawns for style heuristics. The king counts
// heavily so that squares near it register as threatened or guarded.
var pawnUnits = [7]int{0, 1, 3, 3, 5, 9, 100}

func units(pt board.PieceType) int { return pawnUnits[pt&7] }

// relativeRank counts ranks from the mover's own back rank.
func relativeRank(sq board.Square, c board.Color) int {
	if c == board.White {
		return sq.Rank()
	}
	return 7 - sq.Rank()
}

// Analyze describes m as played from b. The board must hold the position
// before the move; it is restored before Analyze returns.
func Analyze(b *board.Board, m board.Move) profile.MoveRecord {
	piece := m.MovedPiece()
	us := piece.Color()
	from, to := m.From(), m.To()

	rec := profile.MoveRecord{
		Move:         m.String(),
		Piece:        piece.Type(),
		IsCapture:    m.IsCapture(),
		IsCastling:   piece.Type() == board.King && engine.Abs(from.File()-to.File()) == 2,
		IsPromotion:  m.IsPromotion(),
		Central:      to.Central(),
		RelativeRank: relativeRank(to, us),
	}
	if us == board.White {
		rec.Forward = to.Rank() > from.Rank()
	} else {
		rec.Forward = to.Rank() < from.Rank()
	}
	if m.IsCapture() {
		rec.Target = m.CapturedPiece().Type()
		rec.ValueGain = units(rec.Target) - units(rec.Piece)
	}

	rec.AttackingValue = proximity(b, to, from, us.Opp())
	rec.DefensiveValue = proximity(b, to, from, us)

	b.Apply(m)
	rec.IsCheck = b.InCheck(us.Opp())
	b.Undo()
	return rec
}

// proximity sums the pawn-unit value of c's pieces within two squares of
// center, each divided by its king-step distance. skip is ignored.
func proximity(b *board.Board, center, skip board.Square, c board.Color) float64 {
	var v float64
	cf, cr := center.File(), center.Rank()
	for dr := -2; dr <= 2; dr++ {
		for df := -2; df <= 2; df++ {
			if dr == 0 && df == 0 {
				continue
			}
			f, r := cf+df, cr+dr
			if f < 0 || f > 7 || r < 0 || r > 7 {
				continue
			}
			sq := board.NewSquare(f, r)
			if sq == skip {
				continue
			}
			p := b.PieceAt(sq)
			if p == board.NoPiece || p.Color() != c {
				continue
			}
			v += float64(units(p.Type())) / float64(engine.Max(engine.Abs(dr), engine.Abs(df)))
		}
	}
	return v
}
