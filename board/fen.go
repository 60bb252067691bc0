package board

import (
	"errors"
	"fmt"
	"math/bits"
	"strconv"
	"strings"
)

// FENStartPos is the standard initial position.
const FENStartPos = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ErrInvalidFEN is returned (wrapped) for any malformed FEN string.
var ErrInvalidFEN = errors.New("invalid FEN")

func fenError(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidFEN}, args...)...)
}

func pieceFromChar(ch rune) Piece {
	switch ch {
	case 'P':
		return WhitePawn
	case 'N':
		return WhiteKnight
	case 'B':
		return WhiteBishop
	case 'R':
		return WhiteRook
	case 'Q':
		return WhiteQueen
	case 'K':
		return WhiteKing
	case 'p':
		return BlackPawn
	case 'n':
		return BlackKnight
	case 'b':
		return BlackBishop
	case 'r':
		return BlackRook
	case 'q':
		return BlackQueen
	case 'k':
		return BlackKing
	}
	return NoPiece
}

func charFromPiece(p Piece) rune {
	const letters = "?PNBRQK??pnbrqk?"
	return rune(letters[p&15])
}

// ParseFEN builds a board from a FEN string. The halfmove and fullmove
// fields are optional. Each side must have exactly one king.
func ParseFEN(fen string) (*Board, error) {
	fields := strings.Fields(fen)
	if len(fields) < 4 {
		return nil, fenError("not enough fields in %q", fen)
	}

	b := &Board{enPassantSquare: NoSquare, fullmoveNumber: 1}

	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return nil, fenError("expected 8 ranks, got %d", len(ranks))
	}
	for i, rankStr := range ranks {
		rank := 7 - i
		file := 0
		for _, ch := range rankStr {
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				continue
			}
			p := pieceFromChar(ch)
			if p == NoPiece {
				return nil, fenError("unrecognized piece %q", ch)
			}
			if file >= 8 {
				return nil, fenError("rank %d has too many squares", rank+1)
			}
			b.addPiece(NewSquare(file, rank), p)
			file++
		}
		if file != 8 {
			return nil, fenError("rank %d does not have 8 files", rank+1)
		}
	}
	for _, c := range []Color{White, Black} {
		if n := bits.OnesCount64(b.bitboards[c][King]); n != 1 {
			return nil, fenError("%v has %d kings", c, n)
		}
	}

	switch fields[1] {
	case "w":
		b.sideToMove = White
	case "b":
		b.sideToMove = Black
	default:
		return nil, fenError("side to move must be 'w' or 'b', got %q", fields[1])
	}

	if fields[2] != "-" {
		for _, ch := range fields[2] {
			switch ch {
			case 'K':
				b.castlingRights |= CastlingWhiteK
			case 'Q':
				b.castlingRights |= CastlingWhiteQ
			case 'k':
				b.castlingRights |= CastlingBlackK
			case 'q':
				b.castlingRights |= CastlingBlackQ
			default:
				return nil, fenError("bad castling character %q", ch)
			}
		}
	}

	if fields[3] != "-" {
		sq, err := ParseSquare(fields[3])
		if err != nil {
			return nil, fenError("bad en passant square %q", fields[3])
		}
		if sq.Rank() != 2 && sq.Rank() != 5 {
			return nil, fenError("en passant square %v not on rank 3 or 6", sq)
		}
		b.enPassantSquare = sq
	}

	if len(fields) > 4 {
		n, err := strconv.Atoi(fields[4])
		if err != nil || n < 0 {
			return nil, fenError("bad halfmove clock %q", fields[4])
		}
		b.halfmoveClock = n
	}
	if len(fields) > 5 {
		n, err := strconv.Atoi(fields[5])
		if err != nil || n < 1 {
			return nil, fenError("bad fullmove number %q", fields[5])
		}
		b.fullmoveNumber = n
	}

	b.startMaterial = b.Material(White) + b.Material(Black)
	b.zobristKey = b.computeZobrist()
	return b, nil
}

// FEN renders the position.
func (b *Board) FEN() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			p := b.pieces[NewSquare(file, rank)]
			if p == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte('0' + byte(empty))
				empty = 0
			}
			sb.WriteRune(charFromPiece(p))
		}
		if empty > 0 {
			sb.WriteByte('0' + byte(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	if b.sideToMove == White {
		sb.WriteString(" w ")
	} else {
		sb.WriteString(" b ")
	}

	if b.castlingRights == 0 {
		sb.WriteByte('-')
	} else {
		for i, ch := range "KQkq" {
			if b.castlingRights&(1<<i) != 0 {
				sb.WriteRune(ch)
			}
		}
	}

	sb.WriteByte(' ')
	sb.WriteString(b.enPassantSquare.String())
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(b.halfmoveClock))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(b.fullmoveNumber))
	return sb.String()
}
