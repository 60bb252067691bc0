package board_test

import (
	"errors"
	"testing"

	"adaptive-chess/board"
)

func TestFENRoundTrip(t *testing.T) {
	fens := []string{
		board.FENStartPos,
		kiwipete,
		"k7/8/8/3pP3/8/8/8/7K w - d6 0 2",
		"r3k2r/8/8/8/8/8/8/R3K2R b Kq - 12 40",
	}
	for _, fen := range fens {
		b := mustParse(t, fen)
		if got := b.FEN(); got != fen {
			t.Fatalf("FEN round trip: got %q want %q", got, fen)
		}
		if err := b.Validate(); err != nil {
			t.Fatalf("%s: %v", fen, err)
		}
	}
}

func TestParseFENDefaultsCounters(t *testing.T) {
	b := mustParse(t, "4k3/8/8/8/8/8/8/4K3 b - -")
	if b.HalfmoveClock() != 0 || b.FullmoveNumber() != 1 {
		t.Fatalf("counters = %d/%d, want 0/1", b.HalfmoveClock(), b.FullmoveNumber())
	}
	if b.SideToMove() != board.Black {
		t.Fatalf("side to move = %v", b.SideToMove())
	}
}

func TestParseFENRejectsGarbage(t *testing.T) {
	bad := []string{
		"",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP w KQkq - 0 1",
		"rnbqkbnr/pppppppp/9/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkz - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq e5 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQ1BNR w kq - 0 1",
		"rnbqkbnr/ppppxppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
	}
	for _, fen := range bad {
		if _, err := board.ParseFEN(fen); !errors.Is(err, board.ErrInvalidFEN) {
			t.Errorf("ParseFEN(%q) error = %v, want ErrInvalidFEN", fen, err)
		}
	}
}

func TestMaterial(t *testing.T) {
	b := board.New()
	if got := b.Material(board.White); got != 3900 {
		t.Fatalf("white material = %d, want 3900", got)
	}
	if b.StartMaterial() != 7800 {
		t.Fatalf("start material = %d, want 7800", b.StartMaterial())
	}
}
