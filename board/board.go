package board

import (
	"fmt"
	"math/bits"
)

// Piece encodes a colored piece. Black pieces are (type | 8) so that
// piece & 7 gives the type and piece & 8 marks Black.
type Piece uint8

const (
	NoPiece     Piece = 0
	WhitePawn   Piece = 1
	WhiteKnight Piece = 2
	WhiteBishop Piece = 3
	WhiteRook   Piece = 4
	WhiteQueen  Piece = 5
	WhiteKing   Piece = 6

	BlackPawn   Piece = 1 | 8
	BlackKnight Piece = 2 | 8
	BlackBishop Piece = 3 | 8
	BlackRook   Piece = 4 | 8
	BlackQueen  Piece = 5 | 8
	BlackKing   Piece = 6 | 8
)

// PieceType is a colorless piece kind.
type PieceType uint8

const (
	PieceTypeNone PieceType = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// Color is White or Black.
type Color uint8

const (
	White Color = 0
	Black Color = 1
)

// Opp returns the other color.
func (c Color) Opp() Color { return c ^ 1 }

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

// Type returns the colorless type of the piece.
func (p Piece) Type() PieceType { return PieceType(p & 7) }

// Color returns the owner of the piece. NoPiece reports White.
func (p Piece) Color() Color {
	if p&8 != 0 {
		return Black
	}
	return White
}

// MakePiece combines a color and a type.
func MakePiece(c Color, pt PieceType) Piece {
	if pt == PieceTypeNone {
		return NoPiece
	}
	return Piece(pt) | Piece(c)<<3
}

func (p Piece) String() string {
	if p == NoPiece {
		return "."
	}
	return string(charFromPiece(p))
}

// pieceValues holds centipawn values used for material accounting.
var pieceValues = [7]int{0, 100, 300, 300, 500, 900, 0}

// Value returns the centipawn value of the piece type. Kings are worth 0.
func (pt PieceType) Value() int { return pieceValues[pt&7] }

func (pt PieceType) String() string {
	switch pt {
	case Pawn:
		return "pawn"
	case Knight:
		return "knight"
	case Bishop:
		return "bishop"
	case Rook:
		return "rook"
	case Queen:
		return "queen"
	case King:
		return "king"
	}
	return "none"
}

// CastlingRights is a bitmask of the four castling permissions.
type CastlingRights uint8

const (
	CastlingWhiteK CastlingRights = 1 << iota
	CastlingWhiteQ
	CastlingBlackK
	CastlingBlackQ

	CastlingNone CastlingRights = 0
	CastlingAll                 = CastlingWhiteK | CastlingWhiteQ | CastlingBlackK | CastlingBlackQ
)

// Of returns the rights belonging to one color.
func (cr CastlingRights) Of(c Color) CastlingRights {
	if c == White {
		return cr & (CastlingWhiteK | CastlingWhiteQ)
	}
	return cr & (CastlingBlackK | CastlingBlackQ)
}

// Board is a position plus the history needed to take moves back.
// Pieces live in a mailbox with per-type bitboards kept in sync.
type Board struct {
	pieces    [64]Piece
	bitboards [2][7]uint64 // [color][piece type]
	occupancy [2]uint64

	sideToMove      Color
	castlingRights  CastlingRights
	enPassantSquare Square
	halfmoveClock   int
	fullmoveNumber  int

	zobristKey    uint64
	startMaterial int

	history []undoState
}

// New returns the standard starting position.
func New() *Board {
	b, err := ParseFEN(FENStartPos)
	if err != nil {
		panic(err)
	}
	return b
}

// Clone returns an independent deep copy, history included.
func (b *Board) Clone() *Board {
	c := *b
	c.history = append([]undoState(nil), b.history...)
	return &c
}

// SideToMove reports which side is to play.
func (b *Board) SideToMove() Color { return b.sideToMove }

// CastlingRights returns the current castling rights.
func (b *Board) CastlingRights() CastlingRights { return b.castlingRights }

// EnPassant returns the en passant target square or NoSquare.
func (b *Board) EnPassant() Square { return b.enPassantSquare }

// HalfmoveClock counts half-moves since the last capture or pawn move.
func (b *Board) HalfmoveClock() int { return b.halfmoveClock }

// FullmoveNumber starts at 1 and increments after Black's move.
func (b *Board) FullmoveNumber() int { return b.fullmoveNumber }

// Ply returns the number of moves applied since the position was loaded.
func (b *Board) Ply() int { return len(b.history) }

// Hash returns the Zobrist key of the position.
func (b *Board) Hash() uint64 { return b.zobristKey }

// PieceAt returns the piece on sq. It panics when sq is off the board.
func (b *Board) PieceAt(sq Square) Piece {
	if !sq.Valid() {
		panic(fmt.Sprintf("board: PieceAt off-board square %d", sq))
	}
	return b.pieces[sq]
}

// Pieces returns the bitboard of one color's pieces of the given type.
func (b *Board) Pieces(c Color, pt PieceType) uint64 { return b.bitboards[c][pt] }

// Occupancy returns the squares occupied by c.
func (b *Board) Occupancy(c Color) uint64 { return b.occupancy[c] }

// AllOccupancy returns every occupied square.
func (b *Board) AllOccupancy() uint64 { return b.occupancy[White] | b.occupancy[Black] }

// KingSquare returns the square of c's king, or NoSquare if it has none.
func (b *Board) KingSquare(c Color) Square {
	k := b.bitboards[c][King]
	if k == 0 {
		return NoSquare
	}
	return Square(bits.TrailingZeros64(k))
}

// LastMove returns the most recently applied move.
func (b *Board) LastMove() (Move, bool) {
	if len(b.history) == 0 {
		return NullMove, false
	}
	return b.history[len(b.history)-1].move, true
}

// Moves returns the applied moves in order.
func (b *Board) Moves() []Move {
	out := make([]Move, len(b.history))
	for i, st := range b.history {
		out[i] = st.move
	}
	return out
}

// Material sums the centipawn value of c's pieces.
func (b *Board) Material(c Color) int {
	total := 0
	for pt := Pawn; pt <= Queen; pt++ {
		total += bits.OnesCount64(b.bitboards[c][pt]) * pt.Value()
	}
	return total
}

// StartMaterial is the combined material of both sides when the position
// was loaded.
func (b *Board) StartMaterial() int { return b.startMaterial }

func bb(sq Square) uint64 { return 1 << uint(sq) }

func popLSB(mask *uint64) Square {
	idx := bits.TrailingZeros64(*mask)
	*mask &= *mask - 1
	return Square(idx)
}

// addPiece places p on an empty square and keeps bitboards and hash in sync.
func (b *Board) addPiece(sq Square, p Piece) {
	if p == NoPiece {
		return
	}
	c := p.Color()
	b.pieces[sq] = p
	b.bitboards[c][p.Type()] |= bb(sq)
	b.occupancy[c] |= bb(sq)
	b.zobristKey ^= zobristPiece[p][sq]
}

// removePiece clears sq and returns what was there.
func (b *Board) removePiece(sq Square) Piece {
	p := b.pieces[sq]
	if p == NoPiece {
		return NoPiece
	}
	c := p.Color()
	mask := ^bb(sq)
	b.pieces[sq] = NoPiece
	b.bitboards[c][p.Type()] &= mask
	b.occupancy[c] &= mask
	b.zobristKey ^= zobristPiece[p][sq]
	return p
}

// Validate checks the mailbox, bitboards, occupancy and hash agree.
func (b *Board) Validate() error {
	var occ [2]uint64
	var boards [2][7]uint64
	for sq := Square(0); sq < 64; sq++ {
		p := b.pieces[sq]
		if p == NoPiece {
			continue
		}
		pt := p.Type()
		if pt < Pawn || pt > King {
			return fmt.Errorf("board: bad piece code %d on %v", p, sq)
		}
		occ[p.Color()] |= bb(sq)
		boards[p.Color()][pt] |= bb(sq)
	}
	if occ != b.occupancy {
		return fmt.Errorf("board: occupancy out of sync")
	}
	if boards != b.bitboards {
		return fmt.Errorf("board: piece bitboards out of sync")
	}
	if occ[White]&occ[Black] != 0 {
		return fmt.Errorf("board: squares claimed by both colors")
	}
	if b.zobristKey != b.computeZobrist() {
		return fmt.Errorf("board: zobrist key out of sync")
	}
	return nil
}

// String renders the board from White's side, rank 8 first.
func (b *Board) String() string {
	buf := make([]byte, 0, 8*18)
	for rank := 7; rank >= 0; rank-- {
		buf = append(buf, byte('1'+rank), ' ')
		for file := 0; file < 8; file++ {
			buf = append(buf, b.pieces[rank*8+file].String()[0])
			if file < 7 {
				buf = append(buf, ' ')
			}
		}
		buf = append(buf, '\n')
	}
	buf = append(buf, "  a b c d e f g h\n"...)
	return string(buf)
}
