package board

// Perft counts the leaf nodes of the legal move tree to the given depth.
func Perft(b *Board, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	bufs := make([][]Move, depth+1)
	for i := range bufs {
		bufs[i] = make([]Move, 0, 128)
	}
	return perftRec(b, depth, bufs)
}

func perftRec(b *Board, depth int, bufs [][]Move) uint64 {
	moves := b.LegalMovesInto(b.sideToMove, bufs[depth][:0])
	bufs[depth] = moves
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		b.Apply(m)
		nodes += perftRec(b, depth-1, bufs)
		b.Undo()
	}
	return nodes
}

// PerftDivide returns the leaf count below each legal root move.
func PerftDivide(b *Board, depth int) map[Move]uint64 {
	result := make(map[Move]uint64)
	if depth <= 0 {
		return result
	}
	for _, m := range b.LegalMoves(b.sideToMove) {
		b.Apply(m)
		result[m] = Perft(b, depth-1)
		b.Undo()
	}
	return result
}
