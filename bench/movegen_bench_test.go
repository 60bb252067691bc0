package bench

import (
	"testing"

	"adaptive-chess/board"
)

const (
	kiwipete = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	pos6     = "r4rk1/1pp1qppp/p1np1n2/2b1p3/2B1P3/2NP1N2/PPP1QPPP/R4RK1 w - - 0 10"
)

func mustParse(b *testing.B, fen string) *board.Board {
	pos, err := board.ParseFEN(fen)
	if err != nil {
		b.Fatalf("ParseFEN: %v", err)
	}
	return pos
}

func benchLegalMoves(b *testing.B, fen string) {
	pos := mustParse(b, fen)
	buf := make([]board.Move, 0, 256)
	side := pos.SideToMove()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf = pos.LegalMovesInto(side, buf[:0])
	}
}

func BenchmarkLegalMoves_Initial(b *testing.B)  { benchLegalMoves(b, board.FENStartPos) }
func BenchmarkLegalMoves_Kiwipete(b *testing.B) { benchLegalMoves(b, kiwipete) }
func BenchmarkLegalMoves_Pos6(b *testing.B)     { benchLegalMoves(b, pos6) }

func BenchmarkPseudoLegalMoves_Kiwipete(b *testing.B) {
	pos := mustParse(b, kiwipete)
	buf := make([]board.Move, 0, 256)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf = pos.PseudoLegalMovesInto(board.White, buf[:0])
	}
}

func BenchmarkApplyUndo_AllMoves_Initial(b *testing.B) {
	pos := mustParse(b, board.FENStartPos)
	moves := pos.LegalMoves(board.White)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, m := range moves {
			pos.Apply(m)
			pos.Undo()
		}
	}
}

func BenchmarkAttacks_Kiwipete(b *testing.B) {
	pos := mustParse(b, kiwipete)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = pos.Attacks(board.White) | pos.Attacks(board.Black)
	}
}
