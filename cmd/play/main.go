// Command play runs an adaptive game against a human in the terminal.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"adaptive-chess/board"
	"adaptive-chess/engine"
	"adaptive-chess/game"
	"adaptive-chess/internal/tui"
	"adaptive-chess/profile"
	"adaptive-chess/style"
)

func main() {
	color := flag.String("color", "white", "Side the human plays: white or black")
	depth := flag.Int("depth", 4, "Engine search depth in plies")
	fen := flag.String("fen", "", "Start position (empty = standard)")
	player := flag.String("player", "", "Player ID (empty = new random ID)")
	name := flag.String("name", "", "Player display name")
	storeKind := flag.String("store", "json", "Profile store: json or sqlite")
	profileDir := flag.String("profiles", "profiles", "Directory for JSON profiles")
	dbPath := flag.String("db", "profiles.db", "SQLite database for profiles")
	weightsFile := flag.String("weights", "", "Base weights JSON file")
	useTUI := flag.Bool("tui", true, "Use the full-screen board")
	logFile := flag.String("log", "", "Write logs to this file (default: stderr in line mode, none in TUI mode)")
	flag.Parse()

	logger, err := newLogger(*logFile, *useTUI)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer logger.Sync()

	ctx := context.Background()
	store, closeStore, err := openStore(ctx, *storeKind, *profileDir, *dbPath, logger)
	if err != nil {
		logger.Fatal("open profile store", zap.Error(err))
	}
	defer closeStore()

	cfg := game.Config{FEN: *fen, Logger: logger}
	switch strings.ToLower(*color) {
	case "white", "w":
		cfg.HumanColor = board.White
	case "black", "b":
		cfg.HumanColor = board.Black
	default:
		logger.Fatal("bad -color", zap.String("color", *color))
	}
	opts := engine.NewOptions()
	opts.Depth = *depth
	cfg.Options = &opts
	if *weightsFile != "" {
		w, err := engine.LoadWeights(*weightsFile)
		if err != nil {
			logger.Fatal("load weights", zap.Error(err))
		}
		cfg.Weights = &w
	}

	id := *player
	if id == "" {
		id = uuid.NewString()
	}
	a, err := game.NewAdaptive(ctx, cfg, store, id, *name)
	if err != nil {
		logger.Fatal("start game", zap.Error(err))
	}

	if *useTUI {
		err = runTUI(a)
	} else {
		err = runLines(a, os.Stdin, os.Stdout)
	}
	if err != nil {
		logger.Error("session", zap.Error(err))
	}
	if err := a.End(ctx); err != nil {
		logger.Error("save profile", zap.Error(err))
	}
	printSummary(os.Stdout, a)
}

func newLogger(path string, quiet bool) (*zap.Logger, error) {
	if path == "" && quiet {
		return zap.NewNop(), nil
	}
	cfg := zap.NewDevelopmentConfig()
	if path != "" {
		cfg.OutputPaths = []string{path}
		cfg.ErrorOutputPaths = []string{path}
	}
	return cfg.Build()
}

func openStore(ctx context.Context, kind, dir, db string, logger *zap.Logger) (profile.Store, func(), error) {
	switch kind {
	case "json":
		s, err := profile.NewJSONStore(dir, logger)
		return s, func() {}, err
	case "sqlite":
		s, err := profile.OpenSQLStore(ctx, db, logger)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { s.Close() }, nil
	}
	return nil, nil, fmt.Errorf("unknown store %q", kind)
}

func runTUI(a *game.Adaptive) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	tui.New(screen, a).Run()
	return nil
}

// runLines plays with plain text: one move per line, "quit" to stop.
func runLines(a *game.Adaptive, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	for {
		if a.Status() != board.Ongoing {
			fmt.Fprintf(out, "%s\n", a.Board())
			fmt.Fprintf(out, "Game over: %v (%s)\n", a.Status(), a.Outcome())
			return nil
		}
		if a.Turn() != a.HumanColor() {
			res, _, err := a.PlayEngine()
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Engine plays %v (score %d, %d nodes)\n", res.Move, res.Score, res.Stats.Nodes)
			continue
		}

		fmt.Fprintf(out, "%s\n", a.Board())
		if a.InCheck() {
			fmt.Fprintln(out, "Check!")
		}
		fmt.Fprint(out, "Your move: ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "quit", "exit":
			return nil
		case "style":
			fmt.Fprintln(out, a.Explanation())
			continue
		}
		if _, err := a.PlayHumanUCI(line); err != nil {
			var ime *game.IllegalMoveError
			if errors.As(err, &ime) || errors.Is(err, board.ErrIllegalMove) {
				fmt.Fprintf(out, "Illegal move %q, try again\n", line)
				continue
			}
			return err
		}
	}
}

func printSummary(out io.Writer, a *game.Adaptive) {
	p := a.Profile()
	pct := p.Percentages()
	fmt.Fprintf(out, "\nPlayer %s (%s): %d games, %d moves recorded\n", p.PlayerName, p.PlayerID, p.GamesPlayed, p.MovesRecorded)
	fmt.Fprintf(out, "Style: %s\n", style.PrimaryStyle(p))
	for _, k := range []string{"aggressive", "defensive", "tactical", "positional", "endgame", "mistake_control"} {
		fmt.Fprintf(out, "  %-16s %5.1f%%\n", k, pct[k])
	}
	fmt.Fprintln(out, a.Explanation())
	fmt.Fprintln(out)
	fmt.Fprintln(out, a.PGN())
}
