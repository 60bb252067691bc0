package game

import (
	"fmt"

	"github.com/notnil/chess"

	"adaptive-chess/board"
)

// Record mirrors a game into a PGN document.
type Record struct {
	cg *chess.Game
}

// NewRecord starts a record from fen, or from the standard position when
// fen is empty or the standard FEN.
func NewRecord(fen string) (*Record, error) {
	if fen == "" || fen == board.FENStartPos {
		return &Record{cg: chess.NewGame()}, nil
	}
	opt, err := chess.FEN(fen)
	if err != nil {
		return nil, fmt.Errorf("record: %w", err)
	}
	cg := chess.NewGame(opt)
	cg.AddTagPair("SetUp", "1")
	cg.AddTagPair("FEN", fen)
	return &Record{cg: cg}, nil
}

// Push appends m, which must be legal in the recorded position.
func (r *Record) Push(m board.Move) error {
	want := m.String()
	for _, cm := range r.cg.ValidMoves() {
		if cm.String() == want {
			return r.cg.Move(cm)
		}
	}
	return fmt.Errorf("record: %s not legal in %s", want, r.cg.Position().String())
}

// SetTag sets a PGN tag pair such as Event or White.
func (r *Record) SetTag(key, value string) { r.cg.AddTagPair(key, value) }

// Draw ends an unfinished game as drawn by agreement.
func (r *Record) Draw() error {
	if r.cg.Outcome() != chess.NoOutcome {
		return nil
	}
	return r.cg.Draw(chess.DrawOffer)
}

// Outcome returns the PGN result: "1-0", "0-1", "1/2-1/2" or "*".
func (r *Record) Outcome() string { return string(r.cg.Outcome()) }

// PGN renders the tags and movetext.
func (r *Record) PGN() string { return r.cg.String() }
