package board_test

import (
	"testing"

	"adaptive-chess/board"
)

func TestApplyUndoRestoresEveryMove(t *testing.T) {
	fens := []string{
		board.FENStartPos,
		kiwipete,
		"k7/8/8/3pP3/8/8/8/7K w - d6 0 2",
		"1n5k/P7/8/8/8/8/8/7K w - - 0 1",
		"r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 3 20",
	}
	for _, fen := range fens {
		b := mustParse(t, fen)
		startFEN, startHash := b.FEN(), b.Hash()
		for _, m := range b.LegalMoves(b.SideToMove()) {
			b.Apply(m)
			if err := b.Validate(); err != nil {
				t.Fatalf("%s after %v: %v", fen, m, err)
			}
			if b.SideToMove() == m.Color() {
				t.Fatalf("%s after %v: side to move did not switch", fen, m)
			}
			b.Undo()
			if b.FEN() != startFEN {
				t.Fatalf("undo %v: FEN %q, want %q", m, b.FEN(), startFEN)
			}
			if b.Hash() != startHash {
				t.Fatalf("undo %v: hash mismatch", m)
			}
		}
		if b.Ply() != 0 {
			t.Fatalf("history not empty after round trips: %d", b.Ply())
		}
	}
}

func TestApplyCastlingMovesRook(t *testing.T) {
	b := mustParse(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	m, err := b.ParseMove("e1g1")
	if err != nil {
		t.Fatal(err)
	}
	if !m.IsCastle() {
		t.Fatalf("e1g1 should be flagged as castling")
	}
	b.Apply(m)
	if b.PieceAt(board.F1) != board.WhiteRook || b.PieceAt(board.H1) != board.NoPiece {
		t.Fatalf("rook not moved to f1:\n%s", b)
	}
	if b.CastlingRights().Of(board.White) != board.CastlingNone {
		t.Fatalf("white castling rights should be gone, have %04b", b.CastlingRights())
	}
	if b.CastlingRights().Of(board.Black) != board.CastlingBlackK|board.CastlingBlackQ {
		t.Fatalf("black castling rights should be intact, have %04b", b.CastlingRights())
	}

	m, err = b.ParseMove("e8c8")
	if err != nil {
		t.Fatal(err)
	}
	b.Apply(m)
	if b.PieceAt(board.D8) != board.BlackRook || b.PieceAt(board.C8) != board.BlackKing {
		t.Fatalf("black queenside castle misplaced pieces:\n%s", b)
	}
}

func TestRookMovesAndCapturesRevokeRights(t *testing.T) {
	b := mustParse(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	m, err := b.ParseMove("a1a8")
	if err != nil {
		t.Fatal(err)
	}
	b.Apply(m)
	if got := b.CastlingRights(); got != board.CastlingWhiteK|board.CastlingBlackK {
		t.Fatalf("rights after Rxa8 = %04b, want K and k only", got)
	}
	b.Undo()
	if b.CastlingRights() != board.CastlingAll {
		t.Fatalf("undo did not restore castling rights")
	}
}

func TestEnPassantWindow(t *testing.T) {
	b := mustParse(t, "4k3/8/8/8/3p4/8/4P3/4K3 w - - 0 1")
	push, err := b.ParseMove("e2e4")
	if err != nil {
		t.Fatal(err)
	}
	if !push.IsDoublePush() {
		t.Fatalf("e2e4 should be a double push")
	}
	b.Apply(push)
	if b.EnPassant() != mustSquare(t, "e3") {
		t.Fatalf("en passant target = %v, want e3", b.EnPassant())
	}
	ep, err := b.ParseMove("d4e3")
	if err != nil {
		t.Fatalf("en passant capture should be legal: %v", err)
	}
	if !ep.IsEnPassant() || ep.CapturedPiece() != board.WhitePawn {
		t.Fatalf("d4e3 flags wrong: %v captured %v", ep, ep.CapturedPiece())
	}
	b.Apply(ep)
	if b.PieceAt(mustSquare(t, "e4")) != board.NoPiece {
		t.Fatalf("captured pawn still on e4")
	}
	b.Undo()

	// Any other move closes the window.
	quiet, err := b.ParseMove("e8d8")
	if err != nil {
		t.Fatal(err)
	}
	b.Apply(quiet)
	reply, err := b.ParseMove("e1d1")
	if err != nil {
		t.Fatal(err)
	}
	b.Apply(reply)
	if b.EnPassant() != board.NoSquare {
		t.Fatalf("en passant target should have expired, got %v", b.EnPassant())
	}
	if _, err := b.ParseMove("d4e3"); err == nil {
		t.Fatalf("en passant capture should no longer be legal")
	}
}

func TestPromotionProducesFourMoves(t *testing.T) {
	b := mustParse(t, "7k/4P3/8/8/8/8/8/K7 w - - 0 1")
	var promos []board.PieceType
	for _, m := range b.LegalMovesFor(mustSquare(t, "e7")) {
		if m.IsPromotion() {
			promos = append(promos, m.Promotion())
		}
	}
	want := []board.PieceType{board.Queen, board.Rook, board.Bishop, board.Knight}
	if len(promos) != len(want) {
		t.Fatalf("got %d promotions, want %d", len(promos), len(want))
	}
	for i := range want {
		if promos[i] != want[i] {
			t.Fatalf("promotion %d = %v, want %v", i, promos[i], want[i])
		}
	}

	m, err := b.ParseMove("e7e8n")
	if err != nil {
		t.Fatal(err)
	}
	b.Apply(m)
	if b.PieceAt(board.E8) != board.WhiteKnight {
		t.Fatalf("e8 holds %v, want knight", b.PieceAt(board.E8))
	}
	b.Undo()
	if b.PieceAt(mustSquare(t, "e7")) != board.WhitePawn {
		t.Fatalf("undo did not restore the pawn")
	}
}

func TestApplyPanicsOnForeignMove(t *testing.T) {
	b := board.New()
	m := board.NewMove(board.E1, board.E8, board.WhiteQueen, board.NoPiece, board.NoPiece, 0)
	defer func() {
		if recover() == nil {
			t.Fatalf("Apply should panic for a move whose piece is absent")
		}
	}()
	b.Apply(m)
}

func TestUndoPanicsOnEmptyHistory(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("Undo should panic with no history")
		}
	}()
	board.New().Undo()
}

func TestPieceAtPanicsOffBoard(t *testing.T) {
	b := board.New()
	for _, sq := range []board.Square{board.NoSquare, 64} {
		func() {
			defer func() {
				if recover() == nil {
					t.Fatalf("PieceAt(%d) did not panic", sq)
				}
			}()
			b.PieceAt(sq)
		}()
	}
	if b.PieceAt(board.H8) != board.BlackRook {
		t.Fatalf("h8 = %v", b.PieceAt(board.H8))
	}
}

func TestCloneIsIndependent(t *testing.T) {
	b := board.New()
	m, _ := b.ParseMove("e2e4")
	b.Apply(m)
	c := b.Clone()
	reply, _ := c.ParseMove("e7e5")
	c.Apply(reply)
	if b.Ply() != 1 || c.Ply() != 2 {
		t.Fatalf("plies: original %d clone %d", b.Ply(), c.Ply())
	}
	c.Undo()
	c.Undo()
	if c.FEN() != board.FENStartPos || b.PieceAt(mustSquare(t, "e4")) != board.WhitePawn {
		t.Fatalf("clone and original share state")
	}
}

func mustSquare(t testing.TB, s string) board.Square {
	t.Helper()
	sq, err := board.ParseSquare(s)
	if err != nil {
		t.Fatal(err)
	}
	return sq
}
