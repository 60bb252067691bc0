package main

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"adaptive-chess/engine"
	"adaptive-chess/profile"
	"adaptive-chess/style"
)

func TestExportDefaults(t *testing.T) {
	out := filepath.Join(t.TempDir(), "w.json")
	var buf bytes.Buffer
	if err := run(context.Background(), out, "", "", "", &buf, zap.NewNop()); err != nil {
		t.Fatal(err)
	}
	w, err := engine.LoadWeights(out)
	if err != nil {
		t.Fatal(err)
	}
	if w != engine.DefaultWeights() {
		t.Fatalf("exported %v", w)
	}
}

func TestExportAdaptedForPlayer(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store, err := profile.NewJSONStore(dir, nil)
	if err != nil {
		t.Fatal(err)
	}
	p := profile.New("agg", "")
	p.AggressionScore = 0.9
	if err := store.Save(ctx, p); err != nil {
		t.Fatal(err)
	}

	out := filepath.Join(dir, "w.json")
	var buf bytes.Buffer
	core, logs := observer.New(zap.InfoLevel)
	if err := run(ctx, out, "", "agg", dir, &buf, zap.New(core)); err != nil {
		t.Fatal(err)
	}
	w, err := engine.LoadWeights(out)
	if err != nil {
		t.Fatal(err)
	}
	if want := style.Adapt(p, engine.DefaultWeights()); w != want {
		t.Fatalf("exported %v, want %v", w, want)
	}
	if !strings.Contains(buf.String(), "Adapting to aggressive player") {
		t.Fatalf("explanation missing: %s", buf.String())
	}

	entries := logs.FilterMessage("weights exported").All()
	if len(entries) != 1 {
		t.Fatalf("export logged %d times", len(entries))
	}
	if fields := entries[0].ContextMap(); fields["player_id"] != "agg" || fields["style"] != style.Aggressive {
		t.Fatalf("export log fields = %v", fields)
	}

	if err := run(ctx, out, "", "ghost", dir, &buf, zap.NewNop()); !errors.Is(err, profile.ErrProfileNotFound) {
		t.Fatalf("missing player: %v", err)
	}
}
