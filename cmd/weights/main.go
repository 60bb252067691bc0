// Command weights exports evaluation weights as JSON: the defaults, or the
// weights the engine would adapt to for a stored player.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"adaptive-chess/engine"
	"adaptive-chess/profile"
	"adaptive-chess/style"
)

func main() {
	out := flag.String("out", "weights.json", "Output JSON path")
	base := flag.String("base", "", "Base weights JSON (default: built-in weights)")
	player := flag.String("player", "", "Adapt to this stored player")
	dir := flag.String("profiles", "profiles", "Directory of JSON player profiles")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer logger.Sync()

	if err := run(context.Background(), *out, *base, *player, *dir, os.Stdout, logger); err != nil {
		logger.Error("export failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, out, basePath, player, dir string, w io.Writer, logger *zap.Logger) error {
	base := engine.DefaultWeights()
	if basePath != "" {
		var err error
		if base, err = engine.LoadWeights(basePath); err != nil {
			return err
		}
	}

	result := base
	if player != "" {
		store, err := profile.NewJSONStore(dir, logger)
		if err != nil {
			return err
		}
		p, err := store.Load(ctx, player)
		if err != nil {
			return err
		}
		result = style.Adapt(p, base)
		fmt.Fprintln(w, style.Explain(p, base))
		logger = logger.With(zap.String("player_id", p.PlayerID), zap.String("style", style.PrimaryStyle(p)))
	}

	if err := engine.SaveWeights(out, result); err != nil {
		return err
	}
	logger.Info("weights exported", zap.String("path", out), zap.Stringer("weights", result))
	fmt.Fprintf(w, "wrote %s: %v\n", out, result)
	return nil
}
