package main

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"adaptive-chess/board"
	"adaptive-chess/engine"
	"adaptive-chess/game"
)

var openings = []string{
	"",
	"e2e4 e7e5",
	"d2d4 d7d5",
	"e2e4 c7c5",
	"c2c4 e7e5",
	"g1f3 d7d5",
}

type gameInfo struct {
	opening        string
	engineAIsWhite bool
	gameNumber     int
}

type gameResult struct {
	gameInfo gameInfo
	outcome  string // PGN result
	comment  string
	plies    int
	pgn      string
}

type arena struct {
	cfg      config
	weightsA engine.Weights
	weightsB engine.Weights
	logger   *zap.Logger
}

// Run plays every game and returns the results in game order.
func (a *arena) Run(ctx context.Context) ([]gameResult, error) {
	a.logger.Info("arena started",
		zap.Int("cpus", runtime.NumCPU()),
		zap.Int("concurrency", a.cfg.Concurrency),
		zap.Int("games", a.cfg.Games),
		zap.Int("depth", a.cfg.Depth))
	defer a.logger.Info("arena finished")

	g, ctx := errgroup.WithContext(ctx)

	gameInfos := make(chan gameInfo)
	gameResults := make(chan gameResult)

	g.Go(func() error {
		defer close(gameInfos)
		for i := 0; i < a.cfg.Games; i++ {
			info := gameInfo{
				opening:        openings[(i/2)%len(openings)],
				engineAIsWhite: i%2 == 0,
				gameNumber:     i + 1,
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case gameInfos <- info:
			}
		}
		return nil
	})

	var collected []gameResult
	g.Go(func() error {
		var wins, losses, draws int
		for r := range gameResults {
			collected = append(collected, r)
			switch {
			case r.outcome == "1/2-1/2":
				draws++
			case (r.outcome == "1-0") == r.gameInfo.engineAIsWhite:
				wins++
			default:
				losses++
			}
			stat := computeStat(wins, losses, draws)
			a.logger.Info("game finished",
				zap.Int("game", r.gameInfo.gameNumber),
				zap.String("outcome", r.outcome),
				zap.String("comment", r.comment),
				zap.Int("plies", r.plies))
			a.logger.Info(fmt.Sprintf("Score: %v - %v - %v  [%.3f] Elo %.1f LOS %.1f%%",
				wins, losses, draws, stat.winningFraction, stat.eloDifference, stat.los*100))
		}
		return nil
	})

	concurrency := a.cfg.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}
	wg := &sync.WaitGroup{}
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		g.Go(func() error {
			defer wg.Done()
			return a.playGames(ctx, gameInfos, gameResults)
		})
	}
	g.Go(func() error {
		wg.Wait()
		close(gameResults)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	sort.Slice(collected, func(i, j int) bool {
		return collected[i].gameInfo.gameNumber < collected[j].gameInfo.gameNumber
	})
	return collected, nil
}

func (a *arena) playGames(ctx context.Context, gameInfos <-chan gameInfo, gameResults chan<- gameResult) error {
	for info := range gameInfos {
		res, err := a.playGame(info)
		if err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case gameResults <- res:
		}
	}
	return nil
}

// playGame plays one game; each side has its own evaluator so weights never
// leak between engines.
func (a *arena) playGame(info gameInfo) (gameResult, error) {
	b := board.New()
	rec, err := game.NewRecord("")
	if err != nil {
		return gameResult{}, err
	}
	for _, s := range strings.Fields(info.opening) {
		m, err := b.ParseMove(s)
		if err != nil {
			return gameResult{}, fmt.Errorf("opening %q: %w", info.opening, err)
		}
		if err := rec.Push(m); err != nil {
			return gameResult{}, err
		}
		b.Apply(m)
	}

	whiteW, blackW := a.weightsA, a.weightsB
	white, black := "adaptive", "default"
	if !info.engineAIsWhite {
		whiteW, blackW = blackW, whiteW
		white, black = black, white
	}
	opts := engine.NewOptions()
	opts.Depth = a.cfg.Depth
	var searchers [2]*engine.Searcher
	for c, w := range [2]engine.Weights{whiteW, blackW} {
		eval := engine.NewEvaluator(w)
		eval.SetTradeOwner(board.Color(c))
		searchers[c] = engine.NewSearcher(eval, opts)
	}

	rec.SetTag("Event", "adaptive-chess arena")
	rec.SetTag("Round", fmt.Sprint(info.gameNumber))
	rec.SetTag("White", white)
	rec.SetTag("Black", black)

	comment := ""
	for {
		if st := b.Status(); st != board.Ongoing {
			comment = st.String()
			break
		}
		if rec.Outcome() != "*" {
			comment = "automatic draw"
			break
		}
		if b.HalfmoveClock() >= 100 {
			comment = "fifty-move rule"
			break
		}
		if b.Ply() >= a.cfg.MaxPlies {
			comment = "ply limit"
			break
		}
		res, err := searchers[b.SideToMove()].FindBestMove(b)
		if err != nil {
			return gameResult{}, err
		}
		if err := rec.Push(res.Move); err != nil {
			return gameResult{}, err
		}
		b.Apply(res.Move)
	}
	if err := rec.Draw(); err != nil {
		return gameResult{}, err
	}
	return gameResult{
		gameInfo: info,
		outcome:  rec.Outcome(),
		comment:  comment,
		plies:    b.Ply(),
		pgn:      rec.PGN(),
	}, nil
}
