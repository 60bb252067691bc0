// Command arena plays adaptive weights against default weights.
package main

import (
	"context"
	"flag"
	"os"

	"go.uber.org/zap"

	"adaptive-chess/engine"
	"adaptive-chess/profile"
	"adaptive-chess/style"
)

type config struct {
	Games       int
	Concurrency int
	Depth       int
	MaxPlies    int
	PGN         string
	ProfileDir  string
	PlayerID    string
	Style       string
}

func main() {
	var cfg config
	flag.IntVar(&cfg.Games, "games", 12, "Number of games (colors alternate)")
	flag.IntVar(&cfg.Concurrency, "concurrency", 4, "Games played at once")
	flag.IntVar(&cfg.Depth, "depth", 3, "Search depth in plies for both engines")
	flag.IntVar(&cfg.MaxPlies, "maxplies", 200, "Adjudicate a draw after this many plies")
	flag.StringVar(&cfg.PGN, "pgn", "", "Write all games to this PGN file")
	flag.StringVar(&cfg.ProfileDir, "profiles", "profiles", "Directory of JSON player profiles")
	flag.StringVar(&cfg.PlayerID, "player", "", "Adapt engine A to this stored player")
	flag.StringVar(&cfg.Style, "style", style.Aggressive, "Adapt engine A to a synthetic player of this style when -player is empty")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if err := run(context.Background(), cfg, logger); err != nil {
		logger.Error("arena failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	p, err := opponentProfile(ctx, cfg)
	if err != nil {
		return err
	}
	base := engine.DefaultWeights()
	adapted := style.Adapt(p, base)
	logger.Info("engine A weights",
		zap.String("style", style.PrimaryStyle(p)),
		zap.Stringer("weights", adapted))
	logger.Info(style.Explain(p, base))

	a := &arena{
		cfg:      cfg,
		weightsA: adapted,
		weightsB: base,
		logger:   logger,
	}
	results, err := a.Run(ctx)
	if err != nil {
		return err
	}
	if cfg.PGN != "" {
		return writePGN(cfg.PGN, results)
	}
	return nil
}

// opponentProfile loads the stored player, or synthesizes one of the
// requested style.
func opponentProfile(ctx context.Context, cfg config) (*profile.Profile, error) {
	if cfg.PlayerID != "" {
		store, err := profile.NewJSONStore(cfg.ProfileDir, nil)
		if err != nil {
			return nil, err
		}
		return store.Load(ctx, cfg.PlayerID)
	}
	p := profile.New("synthetic-"+cfg.Style, "")
	switch cfg.Style {
	case style.Aggressive:
		p.AggressionScore = 0.8
	case style.Defensive:
		p.DefensiveScore = 0.8
	case style.Tactical:
		p.TacticalScore = 0.8
	case style.Positional:
		p.PositionalScore = 0.8
	}
	return p, nil
}

func writePGN(path string, results []gameResult) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	for _, r := range results {
		if _, err := f.WriteString(r.pgn + "\n\n"); err != nil {
			f.Close()
			return err
		}
	}
	return f.Close()
}
