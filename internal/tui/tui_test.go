package tui

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"adaptive-chess/board"
	"adaptive-chess/engine"
	"adaptive-chess/game"
)

func newScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	s.SetSize(100, 24)
	t.Cleanup(s.Fini)
	return s
}

func newSession(t *testing.T, human board.Color) *game.Game {
	t.Helper()
	opts := engine.NewOptions()
	opts.Depth = 1
	g, err := game.New(game.Config{HumanColor: human, Options: &opts})
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func cellAt(s tcell.SimulationScreen, x, y int) rune {
	cells, w, _ := s.GetContents()
	c := cells[y*w+x]
	if len(c.Runes) == 0 {
		return ' '
	}
	return c.Runes[0]
}

func rowText(s tcell.SimulationScreen, y int) string {
	_, w, _ := s.GetContents()
	var sb strings.Builder
	for x := 0; x < w; x++ {
		sb.WriteRune(cellAt(s, x, y))
	}
	return sb.String()
}

func typeLine(u *UI, line string) {
	for _, r := range line {
		u.HandleKey(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
	u.HandleKey(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
}

func TestDrawStartPosition(t *testing.T) {
	s := newScreen(t)
	u := New(s, newSession(t, board.White))
	u.Draw()

	if got := cellAt(s, boardLeft+1, 0); got != 'r' {
		t.Fatalf("a8 shows %q, want r", got)
	}
	if got := cellAt(s, boardLeft+4*squareWidth+1, 7); got != 'K' {
		t.Fatalf("e1 shows %q, want K", got)
	}
	if !strings.Contains(rowText(s, 1), "white to move") {
		t.Fatalf("status row = %q", rowText(s, 1))
	}
}

func TestDrawFlippedForBlack(t *testing.T) {
	s := newScreen(t)
	g := newSession(t, board.Black)
	u := New(s, g)
	u.engineTurn()
	u.Draw()
	if got := cellAt(s, boardLeft+1, 0); got != 'R' {
		t.Fatalf("top-left shows %q, want R (h1)", got)
	}
	if len(g.Moves()) != 1 {
		t.Fatalf("engine did not open the game")
	}
}

func TestMoveEntry(t *testing.T) {
	s := newScreen(t)
	g := newSession(t, board.White)
	u := New(s, g)

	typeLine(u, "e2e4")
	if len(g.Moves()) != 2 {
		t.Fatalf("moves played = %d, want human and engine reply", len(g.Moves()))
	}
	if g.Board().PieceAt(board.NewSquare(4, 3)) != board.WhitePawn {
		t.Fatalf("e4 pawn missing")
	}

	typeLine(u, "e4e6")
	u.Draw()
	if !strings.Contains(u.message, "Illegal move") {
		t.Fatalf("message = %q", u.message)
	}
	if len(g.Moves()) != 2 {
		t.Fatalf("illegal move changed the game")
	}
}

func TestDrawHighlightsLastMove(t *testing.T) {
	s := newScreen(t)
	g := newSession(t, board.White)
	u := New(s, g)
	typeLine(u, "e2e4")
	u.Draw()

	moves := g.Moves()
	reply := moves[len(moves)-1]
	cells, w, _ := s.GetContents()
	bgAt := func(sq board.Square) tcell.Color {
		x, y := boardLeft+sq.File()*squareWidth+1, 7-sq.Rank()
		_, bg, _ := cells[y*w+x].Style.Decompose()
		return bg
	}
	_, want, _ := lastSquare.Decompose()
	for _, sq := range []board.Square{reply.From(), reply.To()} {
		if bg := bgAt(sq); bg != want {
			t.Fatalf("%v not highlighted", sq)
		}
	}
	if bg := bgAt(board.NewSquare(4, 3)); bg == want {
		t.Fatalf("e4 still highlighted after the reply")
	}
}

func TestEditingKeys(t *testing.T) {
	u := New(newScreen(t), newSession(t, board.White))
	u.HandleKey(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone))
	u.HandleKey(tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone))
	if len(u.input) != 0 {
		t.Fatalf("backspace left %q", string(u.input))
	}
	if !u.HandleKey(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)) {
		t.Fatalf("escape did not quit")
	}
}
