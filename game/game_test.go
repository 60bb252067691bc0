package game_test

import (
	"errors"
	"strings"
	"testing"

	"adaptive-chess/board"
	"adaptive-chess/engine"
	"adaptive-chess/game"
)

func newGame(t *testing.T, fen string, human board.Color, depth int) *game.Game {
	t.Helper()
	opts := engine.NewOptions()
	opts.Depth = depth
	g, err := game.New(game.Config{HumanColor: human, FEN: fen, Options: &opts})
	if err != nil {
		t.Fatalf("game.New: %v", err)
	}
	return g
}

func sq(t *testing.T, s string) board.Square {
	t.Helper()
	v, err := board.ParseSquare(s)
	if err != nil {
		t.Fatal(err)
	}
	return v
}

func TestHumanMoveFacts(t *testing.T) {
	g := newGame(t, "", board.White, 2)
	f, err := g.PlayHuman(sq(t, "e2"), sq(t, "e4"), board.PieceTypeNone)
	if err != nil {
		t.Fatalf("PlayHuman: %v", err)
	}
	if f.Piece != board.Pawn || !f.Forward || !f.ToCentral || f.FromCentral || f.IsCapture || f.MaterialDelta != 0 {
		t.Fatalf("facts wrong: %+v", f)
	}
	if g.Turn() != board.Black {
		t.Fatalf("turn did not pass")
	}
	if _, err := g.PlayHuman(sq(t, "d2"), sq(t, "d4"), board.PieceTypeNone); !errors.Is(err, game.ErrNotYourTurn) {
		t.Fatalf("out of turn move: %v", err)
	}
}

func TestIllegalHumanMoveLeavesBoard(t *testing.T) {
	g := newGame(t, "", board.White, 2)
	before := g.FEN()
	_, err := g.PlayHuman(sq(t, "e2"), sq(t, "e5"), board.PieceTypeNone)
	var ime *game.IllegalMoveError
	if !errors.As(err, &ime) || !errors.Is(err, board.ErrIllegalMove) {
		t.Fatalf("want IllegalMoveError, got %v", err)
	}
	if ime.From != sq(t, "e2") || ime.To != sq(t, "e5") {
		t.Fatalf("error carries %v%v", ime.From, ime.To)
	}
	if g.FEN() != before || len(g.Moves()) != 0 {
		t.Fatalf("board mutated by illegal move")
	}
	if _, err := g.PlayHumanUCI("e2"); !errors.Is(err, board.ErrIllegalMove) {
		t.Fatalf("malformed move: %v", err)
	}
	if _, err := g.PlayHuman(board.NoSquare, sq(t, "e4"), board.PieceTypeNone); !errors.Is(err, board.ErrIllegalMove) {
		t.Fatalf("off-board square: %v", err)
	}
}

func TestCaptureAndPromotionFacts(t *testing.T) {
	g := newGame(t, "4k3/8/8/3q4/4P3/8/8/4K3 w - - 0 1", board.White, 2)
	f, err := g.PlayHumanUCI("e4d5")
	if err != nil {
		t.Fatal(err)
	}
	if !f.IsCapture || f.Captured != board.Queen || f.MaterialDelta != 900 {
		t.Fatalf("capture facts wrong: %+v", f)
	}

	g = newGame(t, "8/4P3/8/8/8/8/k7/4K3 w - - 0 1", board.White, 2)
	f, err = g.PlayHumanUCI("e7e8n")
	if err != nil {
		t.Fatal(err)
	}
	if !f.IsPromotion || f.Move.Promotion() != board.Knight || f.MaterialDelta != 200 {
		t.Fatalf("promotion facts wrong: %+v", f)
	}
}

func TestEngineMove(t *testing.T) {
	g := newGame(t, "", board.Black, 2)
	res, f, err := g.PlayEngine()
	if err != nil {
		t.Fatalf("PlayEngine: %v", err)
	}
	if f.Move != res.Move || g.Turn() != board.Black {
		t.Fatalf("engine move not applied")
	}
	last, ok := g.LastSearch()
	if !ok || last.Move != res.Move || last.Stats.Nodes == 0 {
		t.Fatalf("LastSearch = %+v, %v", last, ok)
	}
	if _, _, err := g.PlayEngine(); !errors.Is(err, game.ErrNotYourTurn) {
		t.Fatalf("engine moved twice: %v", err)
	}
}

func TestEngineDeliversMate(t *testing.T) {
	g := newGame(t, "6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1", board.Black, 2)
	res, f, err := g.PlayEngine()
	if err != nil {
		t.Fatal(err)
	}
	if res.Move.String() != "a1a8" || !f.IsCheck {
		t.Fatalf("engine played %v", res.Move)
	}
	if g.Status() != board.Checkmate || !g.InCheck() {
		t.Fatalf("status = %v", g.Status())
	}
	if g.Outcome() != "1-0" {
		t.Fatalf("outcome = %q", g.Outcome())
	}
	if pgn := g.PGN(); !strings.Contains(pgn, "Ra8#") || !strings.Contains(pgn, `[FEN "6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1"]`) {
		t.Fatalf("PGN missing mate or setup:\n%s", pgn)
	}
	if _, err := g.PlayHumanUCI("g8h8"); !errors.Is(err, game.ErrGameOver) {
		t.Fatalf("move after mate: %v", err)
	}
}

func TestGameOverReported(t *testing.T) {
	g := newGame(t, "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3", board.Black, 2)
	_, _, err := g.PlayEngine()
	var over *engine.GameOverError
	if !errors.As(err, &over) || over.Status != board.Checkmate || over.Loser != board.White {
		t.Fatalf("want checkmate GameOverError, got %v", err)
	}
	if !errors.Is(err, engine.ErrNoLegalMove) {
		t.Fatalf("GameOverError does not match ErrNoLegalMove")
	}

	g = newGame(t, "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1", board.White, 2)
	_, _, err = g.PlayEngine()
	if !errors.As(err, &over) || over.Status != board.Stalemate {
		t.Fatalf("want stalemate GameOverError, got %v", err)
	}
}

func TestSetWeights(t *testing.T) {
	g := newGame(t, "", board.White, 2)
	w := engine.DefaultWeights()
	w.KingSafety = 2
	if err := g.SetWeights(w); err != nil {
		t.Fatal(err)
	}
	bad := w
	bad.Mobility = -1
	if err := g.SetWeights(bad); !errors.Is(err, engine.ErrInvalidWeights) {
		t.Fatalf("negative weight accepted: %v", err)
	}
	if g.Weights() != w {
		t.Fatalf("weights = %v, want %v", g.Weights(), w)
	}
}

func TestNewRejectsBadConfig(t *testing.T) {
	if _, err := game.New(game.Config{FEN: "not a fen"}); !errors.Is(err, board.ErrInvalidFEN) {
		t.Fatalf("bad FEN: %v", err)
	}
	opts := engine.Options{Depth: 0}
	if _, err := game.New(game.Config{Options: &opts}); err == nil {
		t.Fatalf("zero depth accepted")
	}
}
