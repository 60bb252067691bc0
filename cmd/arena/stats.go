package main

import "math"

type gameStatistics struct {
	winningFraction float64
	eloDifference   float64
	los             float64
}

// computeStat follows the usual match statistics formulas.
func computeStat(wins, losses, draws int) gameStatistics {
	games := wins + losses + draws
	if games == 0 {
		return gameStatistics{winningFraction: 0.5, los: 0.5}
	}
	winningFraction := (float64(wins) + 0.5*float64(draws)) / float64(games)
	eloDifference := -math.Log(1/winningFraction-1) * 400 / math.Ln10
	los := 0.5
	if wins+losses > 0 {
		los = 0.5 + 0.5*math.Erf(float64(wins-losses)/math.Sqrt(2*float64(wins+losses)))
	}
	return gameStatistics{
		winningFraction: winningFraction,
		eloDifference:   eloDifference,
		los:             los,
	}
}
