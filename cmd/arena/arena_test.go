package main

import (
	"context"
	"math"
	"strings"
	"testing"

	"go.uber.org/zap"

	"adaptive-chess/engine"
)

func TestComputeStat(t *testing.T) {
	s := computeStat(5, 5, 0)
	if s.winningFraction != 0.5 || math.Abs(s.eloDifference) > 1e-9 || s.los != 0.5 {
		t.Fatalf("even match = %+v", s)
	}
	s = computeStat(3, 1, 0)
	if s.winningFraction != 0.75 || s.eloDifference <= 0 || s.los <= 0.5 {
		t.Fatalf("winning match = %+v", s)
	}
	if s := computeStat(0, 0, 0); s.winningFraction != 0.5 {
		t.Fatalf("empty match = %+v", s)
	}
}

func TestArenaRun(t *testing.T) {
	w := engine.DefaultWeights()
	w.KingSafety = 1.2
	a := &arena{
		cfg:      config{Games: 4, Concurrency: 2, Depth: 1, MaxPlies: 16},
		weightsA: w,
		weightsB: engine.DefaultWeights(),
		logger:   zap.NewNop(),
	}
	results, err := a.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(results) != 4 {
		t.Fatalf("got %d results", len(results))
	}
	for i, r := range results {
		if r.gameInfo.gameNumber != i+1 {
			t.Fatalf("results out of order: %d at %d", r.gameInfo.gameNumber, i)
		}
		if r.outcome == "*" || r.plies > 16 {
			t.Fatalf("game %d unfinished: %+v", i+1, r)
		}
		wantWhite := `[White "adaptive"]`
		if !r.gameInfo.engineAIsWhite {
			wantWhite = `[White "default"]`
		}
		if !strings.Contains(r.pgn, wantWhite) {
			t.Fatalf("game %d PGN missing %s:\n%s", i+1, wantWhite, r.pgn)
		}
	}
}

func TestOpponentProfileSynthetic(t *testing.T) {
	p, err := opponentProfile(context.Background(), config{Style: "defensive"})
	if err != nil {
		t.Fatal(err)
	}
	if p.DefensiveScore != 0.8 {
		t.Fatalf("defensive score = %v", p.DefensiveScore)
	}
}
