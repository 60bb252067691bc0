package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"time"

	"golang.org/x/sync/errgroup"

	"adaptive-chess/board"
	"adaptive-chess/engine"
)

var benchPositions = []string{
	board.FENStartPos,
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	"r2q1rk1/pP1p2pp/Q4n2/bbp1p3/Np6/1B3NBn/pPPP1PPP/R3K2R b KQ - 0 1",
	"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
}

type benchRow struct {
	fen      string
	pruned   engine.Result
	full     engine.Result
	elapsedP time.Duration
	elapsedF time.Duration
}

func main() {
	depthFlag := flag.Int("depth", 4, "search depth in plies")
	fenFlag := flag.String("fen", "", "FEN to search (empty = built-in positions)")
	cpuProfile := flag.String("cpuprofile", "", "write CPU profile to file")
	flag.Parse()

	if *depthFlag <= 0 || *depthFlag > engine.MaxDepth {
		log.Fatalf("depth must be in [1, %d], got %d", engine.MaxDepth, *depthFlag)
	}

	if *cpuProfile != "" {
		cpuFile, err := os.Create(*cpuProfile)
		if err != nil {
			log.Fatalf("could not create CPU profile: %v", err)
		}
		if err := pprof.StartCPUProfile(cpuFile); err != nil {
			log.Fatalf("could not start CPU profile: %v", err)
		}
		defer func() {
			pprof.StopCPUProfile()
			cpuFile.Close()
		}()
	}

	fens := benchPositions
	if *fenFlag != "" {
		fens = []string{*fenFlag}
	}

	rows, err := runBench(context.Background(), fens, *depthFlag)
	if err != nil {
		log.Fatal(err)
	}

	var totalP, totalF uint64
	for _, r := range rows {
		fmt.Printf("%s\n  best %v score %d  pruned %d nodes, %d cutoffs (%v)  full %d nodes (%v)\n",
			r.fen, r.pruned.Move, r.pruned.Score,
			r.pruned.Stats.Nodes, r.pruned.Stats.Cutoffs(), r.elapsedP, r.full.Stats.Nodes, r.elapsedF)
		if r.pruned.Move != r.full.Move || r.pruned.Score != r.full.Score {
			fmt.Printf("  MISMATCH: full search chose %v score %d\n", r.full.Move, r.full.Score)
		}
		totalP += r.pruned.Stats.Nodes
		totalF += r.full.Stats.Nodes
	}
	if totalF > 0 {
		fmt.Printf("total: pruned %d, full %d (%.1f%%)\n", totalP, totalF, 100*float64(totalP)/float64(totalF))
	}
}

// runBench searches every position with and without pruning, one goroutine
// per position. Each goroutine owns its boards and searchers.
func runBench(ctx context.Context, fens []string, depth int) ([]benchRow, error) {
	rows := make([]benchRow, len(fens))
	g, _ := errgroup.WithContext(ctx)
	for i, fen := range fens {
		i, fen := i, fen
		g.Go(func() error {
			row := benchRow{fen: fen}
			for _, pruning := range []bool{true, false} {
				b, err := board.ParseFEN(fen)
				if err != nil {
					return err
				}
				opts := engine.Options{Depth: depth, Pruning: pruning, OrderMoves: true}
				s := engine.NewSearcher(engine.NewEvaluator(engine.DefaultWeights()), opts)
				start := time.Now()
				res, err := s.FindBestMove(b)
				if err != nil {
					return fmt.Errorf("%s: %w", fen, err)
				}
				if pruning {
					row.pruned, row.elapsedP = res, time.Since(start)
				} else {
					row.full, row.elapsedF = res, time.Since(start)
				}
			}
			rows[i] = row
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return rows, nil
}
