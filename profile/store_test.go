package profile

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"testing"

	"adaptive-chess/board"
)

func sampleProfile(id string) *Profile {
	p := New(id, "Sample "+id)
	p.RecordGameStart()
	p.RecordMove(MoveRecord{Move: "e2e4", Piece: board.Pawn, Forward: true, Central: true})
	p.RecordMove(MoveRecord{Move: "g1f3", Piece: board.Knight, DefensiveValue: 4.5})
	p.AggressionScore = 0.7
	p.TacticalScore = 0.35
	p.KingSafetyFocus = 0.9
	p.CastleRate = 0.1
	return p
}

func checkRoundTrip(t *testing.T, want, got *Profile) {
	t.Helper()
	near := func(a, b float64) bool { return math.Abs(a-b) < 1e-9 }
	if got.PlayerID != want.PlayerID || got.PlayerName != want.PlayerName {
		t.Fatalf("identity mismatch: %q/%q", got.PlayerID, got.PlayerName)
	}
	if got.GamesPlayed != want.GamesPlayed || got.MovesRecorded != want.MovesRecorded {
		t.Fatalf("counters mismatch: %d/%d", got.GamesPlayed, got.MovesRecorded)
	}
	if !near(got.AggressionScore, want.AggressionScore) || !near(got.TacticalScore, want.TacticalScore) {
		t.Fatalf("scores mismatch: %v %v", got.AggressionScore, got.TacticalScore)
	}
	if !near(got.KingSafetyFocus, want.KingSafetyFocus) || !near(got.CastleRate, want.CastleRate) {
		t.Fatalf("tendencies mismatch: %v %v", got.KingSafetyFocus, got.CastleRate)
	}
	if len(got.RecentMoves) != len(want.RecentMoves) || got.RecentMoves[1] != want.RecentMoves[1] {
		t.Fatalf("recent moves mismatch: %+v", got.RecentMoves)
	}
	if got.LastUpdated.IsZero() {
		t.Fatalf("last updated not set")
	}
}

func exerciseStore(t *testing.T, s Store) {
	ctx := context.Background()
	if _, err := s.Load(ctx, "nobody"); !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("missing profile: got %v", err)
	}

	p := sampleProfile("zed")
	if err := s.Save(ctx, p); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := s.Load(ctx, "zed")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	checkRoundTrip(t, p, got)

	p.GamesPlayed = 5
	if err := s.Save(ctx, p); err != nil {
		t.Fatalf("second save: %v", err)
	}
	if got, _ := s.Load(ctx, "zed"); got.GamesPlayed != 5 {
		t.Fatalf("update lost: games = %d", got.GamesPlayed)
	}

	if err := s.Save(ctx, sampleProfile("amy")); err != nil {
		t.Fatalf("save amy: %v", err)
	}
	ids, err := s.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(ids) != 2 || ids[0] != "amy" || ids[1] != "zed" {
		t.Fatalf("list = %v", ids)
	}

	if err := s.Save(ctx, New("../escape", "")); !errors.Is(err, ErrInvalidPlayerID) {
		t.Fatalf("bad id accepted: %v", err)
	}

	fresh, err := GetOrCreate(ctx, s, "newbie", "New")
	if err != nil || fresh.PlayerName != "New" || fresh.MovesRecorded != 0 {
		t.Fatalf("GetOrCreate fresh = %+v, %v", fresh, err)
	}
	old, err := GetOrCreate(ctx, s, "zed", "ignored")
	if err != nil || old.GamesPlayed != 5 {
		t.Fatalf("GetOrCreate existing = %+v, %v", old, err)
	}
}

func TestJSONStore(t *testing.T) {
	s, err := NewJSONStore(filepath.Join(t.TempDir(), "profiles"), nil)
	if err != nil {
		t.Fatalf("NewJSONStore: %v", err)
	}
	exerciseStore(t, s)
}

func TestSQLStore(t *testing.T) {
	ctx := context.Background()
	s, err := OpenSQLStore(ctx, filepath.Join(t.TempDir(), "profiles.db"), nil)
	if err != nil {
		t.Fatalf("OpenSQLStore: %v", err)
	}
	defer s.Close()
	exerciseStore(t, s)
}

func TestJSONStoreCanceledContext(t *testing.T) {
	s, err := NewJSONStore(t.TempDir(), nil)
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.Save(ctx, New("x", "")); !errors.Is(err, context.Canceled) {
		t.Fatalf("save with canceled ctx: %v", err)
	}
}
