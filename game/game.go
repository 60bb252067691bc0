// Package game runs a human-versus-engine session on top of the board and
// engine packages.
package game

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"adaptive-chess/board"
	"adaptive-chess/engine"
)

// Config configures a new Game. Zero values select defaults.
type Config struct {
	HumanColor board.Color
	FEN        string          // empty for the standard position
	Weights    *engine.Weights // nil for engine.DefaultWeights
	Options    *engine.Options // nil for engine.NewOptions
	Logger     *zap.Logger
}

// Game owns one board and the engine that plays against the human.
// A Game is not safe for concurrent use.
type Game struct {
	id     uuid.UUID
	human  board.Color
	board  *board.Board
	eval   *engine.Evaluator
	search *engine.Searcher
	record *Record
	logger *zap.Logger

	facts      []MoveFacts
	lastSearch engine.Result
	searched   bool
}

// New starts a game.
func New(cfg Config) (*Game, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	fen := cfg.FEN
	if fen == "" {
		fen = board.FENStartPos
	}
	b, err := board.ParseFEN(fen)
	if err != nil {
		return nil, err
	}

	w := engine.DefaultWeights()
	if cfg.Weights != nil {
		w = *cfg.Weights
	}
	if err := w.Validate(); err != nil {
		return nil, err
	}
	opts := engine.NewOptions()
	if cfg.Options != nil {
		opts = *cfg.Options
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	rec, err := NewRecord(fen)
	if err != nil {
		return nil, err
	}

	eval := engine.NewEvaluator(w)
	eval.SetTradeOwner(cfg.HumanColor.Opp())

	g := &Game{
		id:     uuid.New(),
		human:  cfg.HumanColor,
		board:  b,
		eval:   eval,
		search: engine.NewSearcher(eval, opts),
		record: rec,
	}
	g.logger = logger.With(zap.String("game_id", g.id.String()))

	engineName := "adaptive-chess"
	white, black := "Human", engineName
	if g.human == board.Black {
		white, black = engineName, "Human"
	}
	rec.SetTag("Event", "Human vs engine")
	rec.SetTag("Date", time.Now().Format("2006.01.02"))
	rec.SetTag("White", white)
	rec.SetTag("Black", black)

	g.logger.Info("game started",
		zap.Stringer("human", g.human),
		zap.String("fen", fen),
		zap.Int("depth", opts.Depth))
	return g, nil
}

// ID identifies the game in logs.
func (g *Game) ID() uuid.UUID { return g.id }

// HumanColor is the side the human plays.
func (g *Game) HumanColor() board.Color { return g.human }

// Turn is the side to move.
func (g *Game) Turn() board.Color { return g.board.SideToMove() }

// Board returns a copy of the current position.
func (g *Game) Board() *board.Board { return g.board.Clone() }

// FEN returns the current position.
func (g *Game) FEN() string { return g.board.FEN() }

// Status reports checkmate or stalemate for the side to move.
func (g *Game) Status() board.Status { return g.board.Status() }

// InCheck reports whether the side to move is in check.
func (g *Game) InCheck() bool { return g.board.InCheck(g.board.SideToMove()) }

// Moves returns the moves played so far.
func (g *Game) Moves() []board.Move { return g.board.Moves() }

// Facts returns the per-move facts in play order.
func (g *Game) Facts() []MoveFacts { return append([]MoveFacts(nil), g.facts...) }

// LastSearch returns the result of the most recent engine move.
func (g *Game) LastSearch() (engine.Result, bool) { return g.lastSearch, g.searched }

// Weights returns the weights in force.
func (g *Game) Weights() engine.Weights { return g.eval.Weights() }

// SetWeights replaces the evaluation weights. Invalid weights are rejected
// and the previous ones stay in force.
func (g *Game) SetWeights(w engine.Weights) error {
	if err := g.eval.SetWeights(w); err != nil {
		return err
	}
	g.logger.Debug("weights replaced", zap.Stringer("weights", w))
	return nil
}

// SetOptions replaces the search options.
func (g *Game) SetOptions(opts engine.Options) error { return g.search.SetOptions(opts) }

// Outcome returns the PGN result of the game so far.
func (g *Game) Outcome() string { return g.record.Outcome() }

// PGN renders the game record.
func (g *Game) PGN() string { return g.record.PGN() }

// resolveHuman checks that the human may move and finds the legal move.
func (g *Game) resolveHuman(from, to board.Square, promo board.PieceType) (board.Move, error) {
	if st := g.board.Status(); st != board.Ongoing {
		return board.NullMove, fmt.Errorf("%w: %v", ErrGameOver, st)
	}
	if g.board.SideToMove() != g.human {
		return board.NullMove, ErrNotYourTurn
	}
	if !from.Valid() || !to.Valid() {
		return board.NullMove, &IllegalMoveError{From: from, To: to, Promotion: promo}
	}
	m, err := g.board.FindMove(from, to, promo)
	if err != nil {
		return board.NullMove, &IllegalMoveError{From: from, To: to, Promotion: promo}
	}
	return m, nil
}

// PlayHuman validates and applies the human's move. On error the board is
// unchanged.
func (g *Game) PlayHuman(from, to board.Square, promo board.PieceType) (MoveFacts, error) {
	m, err := g.resolveHuman(from, to, promo)
	if err != nil {
		return MoveFacts{}, err
	}
	return g.play(m), nil
}

// PlayHumanUCI is PlayHuman for coordinate notation such as "e7e8q".
func (g *Game) PlayHumanUCI(s string) (MoveFacts, error) {
	from, to, promo, err := parseCoords(s)
	if err != nil {
		return MoveFacts{}, err
	}
	return g.PlayHuman(from, to, promo)
}

func parseCoords(s string) (board.Square, board.Square, board.PieceType, error) {
	if len(s) != 4 && len(s) != 5 {
		return board.NoSquare, board.NoSquare, board.PieceTypeNone,
			fmt.Errorf("%w: malformed move %q", board.ErrIllegalMove, s)
	}
	from, err := board.ParseSquare(s[:2])
	if err != nil {
		return board.NoSquare, board.NoSquare, board.PieceTypeNone, fmt.Errorf("%w: %v", board.ErrIllegalMove, err)
	}
	to, err := board.ParseSquare(s[2:4])
	if err != nil {
		return board.NoSquare, board.NoSquare, board.PieceTypeNone, fmt.Errorf("%w: %v", board.ErrIllegalMove, err)
	}
	promo, err := board.ParsePromotion(s[4:])
	if err != nil {
		return board.NoSquare, board.NoSquare, board.PieceTypeNone, fmt.Errorf("%w: %v", board.ErrIllegalMove, err)
	}
	return from, to, promo, nil
}

// PlayEngine searches the current position and plays the best move. When
// the engine has no legal move it returns an *engine.GameOverError.
func (g *Game) PlayEngine() (engine.Result, MoveFacts, error) {
	if st := g.board.Status(); st != board.Ongoing {
		return engine.Result{}, MoveFacts{}, &engine.GameOverError{Status: st, Loser: g.board.SideToMove()}
	}
	if g.board.SideToMove() == g.human {
		return engine.Result{}, MoveFacts{}, ErrNotYourTurn
	}
	res, err := g.search.FindBestMove(g.board)
	if err != nil {
		return engine.Result{}, MoveFacts{}, err
	}
	g.lastSearch, g.searched = res, true
	g.logger.Debug("engine move",
		zap.Stringer("move", res.Move),
		zap.Int32("score", res.Score),
		zap.Uint64("nodes", res.Stats.Nodes),
		zap.Int("depth", res.Depth))
	return res, g.play(res.Move), nil
}

func (g *Game) play(m board.Move) MoveFacts {
	f := applyWithFacts(g.board, m)
	g.facts = append(g.facts, f)
	if err := g.record.Push(m); err != nil {
		g.logger.Warn("record out of sync", zap.Error(err))
	}
	if st := g.board.Status(); st != board.Ongoing {
		g.logger.Info("game over",
			zap.Stringer("status", st),
			zap.String("outcome", g.Outcome()))
	}
	return f
}
