package style

import (
	"adaptive-chess/board"
	"adaptive-chess/engine"
	"adaptive-chess/profile"
)

func clamp01(v float64) float64 { return engine.Clamp(v, 0, 1) }

// UpdateProfile recomputes p's style scores and tendencies from moves.
// Running counters such as MovesRecorded are left alone. An empty slice
// leaves p unchanged.
func UpdateProfile(p *profile.Profile, moves []profile.MoveRecord) {
	if len(moves) == 0 {
		return
	}
	n := float64(len(moves))

	var captures, checks, castles float64
	for _, m := range moves {
		if m.IsCapture {
			captures++
		}
		if m.IsCheck {
			checks++
		}
		if m.IsCastling {
			castles++
		}
	}
	p.CaptureRate = captures / n
	p.CheckRate = checks / n
	p.CastleRate = castles / n
	p.TradeWillingness = captures / n

	aggression := make([]float64, len(moves))
	var aggSum float64
	for i, m := range moves {
		aggression[i] = aggressionOf(m)
		aggSum += aggression[i]
	}
	p.AggressionScore = clamp01(0.2 + aggSum/n*0.6)

	var defSum float64
	for i, m := range moves {
		defSum += defenceOf(m, aggression[i])
	}
	p.DefensiveScore = clamp01(0.2 + defSum/n*0.7)

	p.TacticalScore = thresholdScore(moves, tacticsOf, 0.2, 0.8, 0.6)
	p.PositionalScore = thresholdScore(moves, positionOf, 0.15, 0.8, 0.6)
	p.EndgameScore = thresholdScore(moves, endgameOf, 0.1, 1.0, 0.5)

	var central, active, kingSafety, pawnMoves float64
	for _, m := range moves {
		if m.Central {
			central += float64(units(m.Piece)) / 15
		}
		switch m.Piece {
		case board.Knight, board.Bishop, board.Rook, board.Queen:
			active++
		case board.Pawn:
			if !m.IsCapture {
				pawnMoves++
			}
		}
		switch {
		case m.IsCastling:
			kingSafety += 0.5
		case m.Piece == board.King:
			kingSafety += 0.2
		case m.DefensiveValue > 10:
			kingSafety += 0.1
		}
	}
	p.CentralControlPreference = clamp01(0.2 + central/n*1.2)
	p.PieceActivityPreference = active / n
	p.KingSafetyFocus = clamp01(0.2 + kingSafety/n*0.8)
	p.PawnStructureFocus = pawnMoves / n

	var blunders, mistakes float64
	for _, m := range moves {
		switch {
		case m.ValueGain < -5:
			blunders++
		case m.ValueGain < -2:
			mistakes++
		case m.ValueGain < -1:
			mistakes += 0.5
		}
	}
	p.BlunderRate = clamp01((blunders*2 + mistakes) / engine.Max(n*2, 1))
	switch {
	case blunders == 0 && mistakes == 0:
		p.MistakeControl = 0.9
	case blunders == 0:
		p.MistakeControl = engine.Max(0.7, 1-mistakes/n*0.5)
	default:
		p.MistakeControl = engine.Max(0, 1-blunders/n*1.2)
	}
}

// thresholdScore averages per-move scores over all moves, then lifts the
// result to share times the fraction of moves scoring above floor.
func thresholdScore(moves []profile.MoveRecord, score func(profile.MoveRecord) float64, floor, scale, share float64) float64 {
	var sum, hits float64
	for _, m := range moves {
		if s := score(m); s > floor {
			sum += s
			hits++
		}
	}
	n := float64(len(moves))
	v := clamp01(0.2 + sum/n*scale)
	if hits > 0 {
		v = engine.Max(v, hits/n*share)
	}
	return v
}

func aggressionOf(m profile.MoveRecord) float64 {
	var s float64
	if m.IsCapture {
		s += 0.3 + float64(units(m.Target))/30
	}
	if m.IsCheck {
		s += 0.4
	}
	if m.Piece == board.Pawn && m.Forward {
		s += 0.2
	}
	switch {
	case m.ValueGain < -3:
		s += 0.5
	case m.ValueGain < -1:
		s += 0.2
	}
	switch {
	case m.AttackingValue > 20:
		s += 0.3
	case m.AttackingValue > 10:
		s += 0.15
	}
	if m.Forward && (m.Piece == board.Queen || m.Piece == board.Rook) {
		s += 0.15
	}
	return s
}

func defenceOf(m profile.MoveRecord, aggression float64) float64 {
	var s float64
	if m.IsCastling {
		s += 0.5
	}
	switch {
	case m.DefensiveValue > 15:
		s += 0.4
	case m.DefensiveValue > 8:
		s += 0.2
	}
	if !m.IsCapture && m.ValueGain <= 0 {
		s += 0.1
	}
	if m.Piece == board.Pawn && !m.IsCapture {
		s += 0.15
	}
	switch m.Piece {
	case board.Rook, board.Bishop, board.Queen:
		if !m.IsCapture && !m.Central && !m.Forward {
			s += 0.1
		}
	}
	if aggression < 0.2 {
		s += 0.1
	}
	return s
}

func tacticsOf(m profile.MoveRecord) float64 {
	var s float64
	if m.IsCheck {
		s += 0.5
	}
	switch {
	case m.ValueGain >= 5:
		s += 0.6
	case m.ValueGain >= 3:
		s += 0.4
	case m.ValueGain > 0:
		s += 0.2
	}
	switch {
	case m.AttackingValue > 25:
		s += 0.4
	case m.AttackingValue > 15:
		s += 0.2
	}
	if m.Piece == board.Knight && m.Central {
		s += 0.15
	}
	return s
}

func positionOf(m profile.MoveRecord) float64 {
	if m.IsCapture {
		return 0
	}
	var s float64
	if m.Central {
		s += 0.2 + float64(units(m.Piece))/50
	}
	switch m.Piece {
	case board.Knight, board.Bishop:
		s += 0.25
	case board.Pawn:
		s += 0.15
	case board.Rook:
		s += 0.2
	}
	if !m.IsCheck && m.ValueGain <= 0 {
		s += 0.1
	}
	return s
}

func endgameOf(m profile.MoveRecord) float64 {
	var s float64
	switch m.Piece {
	case board.King:
		if m.Forward || m.Central {
			s += 0.4
		} else {
			s += 0.2
		}
	case board.Pawn:
		if m.Forward {
			switch {
			case m.RelativeRank >= 5:
				s += 0.5
			case m.RelativeRank >= 3:
				s += 0.3
			}
		}
		if m.IsCapture {
			s += 0.2
		}
		if m.RelativeRank == 7 {
			s += 0.6
		}
	case board.Queen, board.Rook:
		if m.IsCapture || m.IsCheck {
			s += 0.25
		}
	}
	return s
}
