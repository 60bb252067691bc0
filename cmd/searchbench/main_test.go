package main

import (
	"context"
	"testing"
)

func TestRunBenchAgrees(t *testing.T) {
	rows, err := runBench(context.Background(), benchPositions, 2)
	if err != nil {
		t.Fatal(err)
	}
	var cutoffs uint64
	for _, r := range rows {
		if n := r.full.Stats.Cutoffs(); n != 0 {
			t.Errorf("%s: full search reported %d cutoffs", r.fen, n)
		}
		cutoffs += r.pruned.Stats.Cutoffs()
		if r.pruned.Move != r.full.Move || r.pruned.Score != r.full.Score {
			t.Errorf("%s: pruned %v/%d, full %v/%d", r.fen, r.pruned.Move, r.pruned.Score, r.full.Move, r.full.Score)
		}
		if r.pruned.Stats.Nodes > r.full.Stats.Nodes {
			t.Errorf("%s: pruning visited more nodes", r.fen)
		}
	}
	if cutoffs == 0 {
		t.Errorf("pruned searches reported no cutoffs")
	}
}

func TestRunBenchBadFEN(t *testing.T) {
	if _, err := runBench(context.Background(), []string{"garbage"}, 1); err == nil {
		t.Fatalf("bad FEN accepted")
	}
}
