package board

import "math/bits"

// Precomputed leaper attacks.
var (
	knightMoves [64]uint64
	kingMoves   [64]uint64
	// pawnAttacks[c][sq] is the set of squares a pawn of color c on sq attacks.
	pawnAttacks [2][64]uint64
)

// Ray directions. The first four step toward higher square indexes.
const (
	dirN = iota
	dirE
	dirNE
	dirNW
	dirS
	dirW
	dirSE
	dirSW
)

var rays [64][8]uint64

var (
	rookDirs   = [4]int{dirN, dirE, dirS, dirW}
	bishopDirs = [4]int{dirNE, dirNW, dirSE, dirSW}
)

func init() {
	initLeaperTables()
	initRays()
}

func stepMask(sq int, offsets [8][2]int) uint64 {
	file, rank := sq%8, sq/8
	var mask uint64
	for _, off := range offsets {
		r, f := rank+off[0], file+off[1]
		if r >= 0 && r < 8 && f >= 0 && f < 8 {
			mask |= 1 << uint(r*8+f)
		}
	}
	return mask
}

func initLeaperTables() {
	knightOffsets := [8][2]int{
		{2, 1}, {2, -1}, {-2, 1}, {-2, -1},
		{1, 2}, {1, -2}, {-1, 2}, {-1, -2},
	}
	kingOffsets := [8][2]int{
		{1, 0}, {-1, 0}, {0, 1}, {0, -1},
		{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
	}
	for sq := 0; sq < 64; sq++ {
		knightMoves[sq] = stepMask(sq, knightOffsets)
		kingMoves[sq] = stepMask(sq, kingOffsets)

		file, rank := sq%8, sq/8
		if rank < 7 {
			if file > 0 {
				pawnAttacks[White][sq] |= 1 << uint(sq+7)
			}
			if file < 7 {
				pawnAttacks[White][sq] |= 1 << uint(sq+9)
			}
		}
		if rank > 0 {
			if file > 0 {
				pawnAttacks[Black][sq] |= 1 << uint(sq-9)
			}
			if file < 7 {
				pawnAttacks[Black][sq] |= 1 << uint(sq-7)
			}
		}
	}
}

func initRays() {
	deltas := [8][2]int{
		dirN: {1, 0}, dirE: {0, 1}, dirNE: {1, 1}, dirNW: {1, -1},
		dirS: {-1, 0}, dirW: {0, -1}, dirSE: {-1, 1}, dirSW: {-1, -1},
	}
	for sq := 0; sq < 64; sq++ {
		for dir, d := range deltas {
			var ray uint64
			r, f := sq/8+d[0], sq%8+d[1]
			for r >= 0 && r < 8 && f >= 0 && f < 8 {
				ray |= 1 << uint(r*8+f)
				r += d[0]
				f += d[1]
			}
			rays[sq][dir] = ray
		}
	}
}

// slide returns the attacks along the given directions, stopping at (and
// including) the first blocker in each.
func slide(sq Square, occ uint64, dirs [4]int) uint64 {
	var att uint64
	for _, dir := range dirs {
		ray := rays[sq][dir]
		if blockers := ray & occ; blockers != 0 {
			var first int
			if dir < dirS {
				first = bits.TrailingZeros64(blockers)
			} else {
				first = 63 - bits.LeadingZeros64(blockers)
			}
			ray &^= rays[first][dir]
		}
		att |= ray
	}
	return att
}

func rookAttacks(sq Square, occ uint64) uint64   { return slide(sq, occ, rookDirs) }
func bishopAttacks(sq Square, occ uint64) uint64 { return slide(sq, occ, bishopDirs) }

// KingZone returns the squares adjacent to sq.
func KingZone(sq Square) uint64 { return kingMoves[sq&63] }

// AttacksFrom returns the squares the piece standing on sq attacks given the
// current occupancy. Empty squares attack nothing.
func (b *Board) AttacksFrom(sq Square) uint64 {
	p := b.pieces[sq&63]
	return attacksOf(p, sq, b.AllOccupancy())
}

func attacksOf(p Piece, sq Square, occ uint64) uint64 {
	switch p.Type() {
	case Pawn:
		return pawnAttacks[p.Color()][sq]
	case Knight:
		return knightMoves[sq]
	case Bishop:
		return bishopAttacks(sq, occ)
	case Rook:
		return rookAttacks(sq, occ)
	case Queen:
		return rookAttacks(sq, occ) | bishopAttacks(sq, occ)
	case King:
		return kingMoves[sq]
	}
	return 0
}

// Attacks returns every square attacked by color c.
func (b *Board) Attacks(c Color) uint64 {
	var att uint64
	occ := b.AllOccupancy()
	for pieces := b.occupancy[c]; pieces != 0; {
		sq := popLSB(&pieces)
		att |= attacksOf(b.pieces[sq], sq, occ)
	}
	return att
}

// AttackersTo returns the pieces of color by that attack sq.
func (b *Board) AttackersTo(sq Square, by Color) uint64 {
	return b.attackersWithOcc(sq, by, b.AllOccupancy())
}

func (b *Board) attackersWithOcc(sq Square, by Color, occ uint64) uint64 {
	own := &b.bitboards[by]
	att := pawnAttacks[by.Opp()][sq] & own[Pawn]
	att |= knightMoves[sq] & own[Knight]
	att |= kingMoves[sq] & own[King]
	att |= rookAttacks(sq, occ) & (own[Rook] | own[Queen])
	att |= bishopAttacks(sq, occ) & (own[Bishop] | own[Queen])
	return att
}

// IsSquareAttacked reports whether any piece of color by attacks sq.
func (b *Board) IsSquareAttacked(sq Square, by Color) bool {
	own := &b.bitboards[by]
	if pawnAttacks[by.Opp()][sq]&own[Pawn] != 0 ||
		knightMoves[sq]&own[Knight] != 0 ||
		kingMoves[sq]&own[King] != 0 {
		return true
	}
	occ := b.AllOccupancy()
	if rookAttacks(sq, occ)&(own[Rook]|own[Queen]) != 0 {
		return true
	}
	return bishopAttacks(sq, occ)&(own[Bishop]|own[Queen]) != 0
}

// InCheck reports whether c's king is attacked.
func (b *Board) InCheck(c Color) bool {
	k := b.KingSquare(c)
	if k == NoSquare {
		return false
	}
	return b.IsSquareAttacked(k, c.Opp())
}
