package game_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"adaptive-chess/board"
	"adaptive-chess/engine"
	"adaptive-chess/game"
	"adaptive-chess/profile"
	"adaptive-chess/style"
)

func newAdaptive(t *testing.T, store profile.Store) *game.Adaptive {
	t.Helper()
	opts := engine.NewOptions()
	opts.Depth = 1
	a, err := game.NewAdaptive(context.Background(), game.Config{Options: &opts}, store, "tester", "Tester")
	if err != nil {
		t.Fatalf("NewAdaptive: %v", err)
	}
	return a
}

// playFirstLegal plays the human's first legal move followed by the engine
// reply.
func playFirstLegal(t *testing.T, a *game.Adaptive) {
	t.Helper()
	b := a.Board()
	m := b.LegalMoves(b.SideToMove())[0]
	if _, err := a.PlayHuman(m.From(), m.To(), m.Promotion()); err != nil {
		t.Fatalf("PlayHuman(%v): %v", m, err)
	}
	if _, _, err := a.PlayEngine(); err != nil {
		t.Fatalf("PlayEngine: %v", err)
	}
}

func TestAdaptiveLifecycle(t *testing.T) {
	ctx := context.Background()
	store, err := profile.NewJSONStore(t.TempDir(), nil)
	if err != nil {
		t.Fatal(err)
	}
	a := newAdaptive(t, store)

	saved, err := store.Load(ctx, "tester")
	if err != nil {
		t.Fatalf("profile not saved at start: %v", err)
	}
	if saved.GamesPlayed != 1 || saved.PlayerName != "Tester" {
		t.Fatalf("saved profile = %+v", saved)
	}
	if a.Weights() != style.Adapt(a.Profile(), a.BaseWeights()) {
		t.Fatalf("initial weights not adapted")
	}

	for i := 0; i < game.AdaptEvery; i++ {
		playFirstLegal(t, a)
	}
	p := a.Profile()
	if p.MovesRecorded != game.AdaptEvery || len(p.RecentMoves) != game.AdaptEvery {
		t.Fatalf("moves recorded = %d, recent = %d", p.MovesRecorded, len(p.RecentMoves))
	}
	if a.Weights() != style.Adapt(p, a.BaseWeights()) {
		t.Fatalf("weights not re-adapted after %d moves", game.AdaptEvery)
	}
	if a.Explanation() == "" {
		t.Fatalf("empty explanation")
	}

	if err := a.End(ctx); err != nil {
		t.Fatalf("End: %v", err)
	}
	saved, err = store.Load(ctx, "tester")
	if err != nil {
		t.Fatal(err)
	}
	if saved.MovesRecorded != game.AdaptEvery || saved.GamesPlayed != 1 {
		t.Fatalf("saved profile = %+v", saved)
	}

	again := newAdaptive(t, store)
	if again.Profile().GamesPlayed != 2 {
		t.Fatalf("second game not counted")
	}
}

func TestAdaptiveRejectsIllegalMove(t *testing.T) {
	store, err := profile.NewJSONStore(t.TempDir(), nil)
	if err != nil {
		t.Fatal(err)
	}
	a := newAdaptive(t, store)
	if _, err := a.PlayHumanUCI("e2e5"); !errors.Is(err, board.ErrIllegalMove) {
		t.Fatalf("illegal move: %v", err)
	}
	if a.Profile().MovesRecorded != 0 {
		t.Fatalf("illegal move recorded")
	}
}

func TestAdaptiveBlendsGamesIntoHistory(t *testing.T) {
	ctx := context.Background()
	store, err := profile.NewJSONStore(t.TempDir(), nil)
	if err != nil {
		t.Fatal(err)
	}
	near := func(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

	for round := 1; round <= 2; round++ {
		a := newAdaptive(t, store)
		prior := a.Profile()
		for i := 0; i < game.AdaptEvery; i++ {
			playFirstLegal(t, a)
		}
		// The re-adaptation window covers every move of this short game,
		// so the live scores are the game's own scores.
		session := a.Profile()
		if err := a.End(ctx); err != nil {
			t.Fatalf("game %d: End: %v", round, err)
		}
		saved, err := store.Load(ctx, "tester")
		if err != nil {
			t.Fatal(err)
		}
		want := 0.7*prior.AggressionScore + 0.3*session.AggressionScore
		if !near(saved.AggressionScore, want) {
			t.Fatalf("game %d: aggression = %v, want %v", round, saved.AggressionScore, want)
		}
		want = 0.7*prior.DefensiveScore + 0.3*session.DefensiveScore
		if !near(saved.DefensiveScore, want) {
			t.Fatalf("game %d: defensive = %v, want %v", round, saved.DefensiveScore, want)
		}
		if saved.MovesRecorded != round*game.AdaptEvery {
			t.Fatalf("game %d: moves recorded = %d", round, saved.MovesRecorded)
		}
	}
}
