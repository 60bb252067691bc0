package engine

import (
	"errors"
	"fmt"
	"strings"

	"adaptive-chess/board"
)

// MaxDepth bounds the search depth accepted by Options.
const MaxDepth = 32

const maxPly = MaxDepth + 1

// Options configures a Searcher.
type Options struct {
	// Depth is the number of plies searched from the root.
	Depth int
	// Pruning enables alpha-beta cutoffs. Results are identical either
	// way; only the node count changes.
	Pruning bool
	// OrderMoves searches promotions and captures before quiet moves.
	OrderMoves bool
}

// NewOptions returns the defaults used by the game session.
func NewOptions() Options {
	return Options{Depth: 4, Pruning: true, OrderMoves: true}
}

// Validate reports whether the options can drive a search.
func (o Options) Validate() error {
	if o.Depth < 1 || o.Depth > MaxDepth {
		return fmt.Errorf("search depth %d out of range [1, %d]", o.Depth, MaxDepth)
	}
	return nil
}

// ErrNoLegalMove is matched by every GameOverError.
var ErrNoLegalMove = errors.New("no legal moves")

// GameOverError is returned by FindBestMove when the side to move has no
// legal moves.
type GameOverError struct {
	Status board.Status
	Loser  board.Color // meaningful for checkmate only
}

func (e *GameOverError) Error() string {
	if e.Status == board.Checkmate {
		return fmt.Sprintf("no legal moves: %v is checkmated", e.Loser)
	}
	return "no legal moves: stalemate"
}

func (e *GameOverError) Unwrap() error { return ErrNoLegalMove }

// Result describes a completed search.
type Result struct {
	Move  board.Move
	Score int32 // White's point of view
	Depth int
	PV    []board.Move
	Stats SearchStats
}

// PVString renders the principal variation in coordinate notation.
func (r Result) PVString() string {
	parts := make([]string, len(r.PV))
	for i, m := range r.PV {
		parts[i] = m.String()
	}
	return strings.Join(parts, " ")
}

// Searcher runs a fixed-depth minimax search with optional alpha-beta
// pruning. White maximizes and Black minimizes. A Searcher is not safe for
// concurrent use.
type Searcher struct {
	eval  *Evaluator
	opts  Options
	stats SearchStats

	moveBufs   [maxPly][]board.Move
	scoredBufs [maxPly][]scoredMove
	pvTable    [maxPly][maxPly]board.Move
	pvLength   [maxPly]int
}

// NewSearcher returns a searcher that scores leaves with eval.
func NewSearcher(eval *Evaluator, opts Options) *Searcher {
	if err := opts.Validate(); err != nil {
		panic(err)
	}
	return &Searcher{eval: eval, opts: opts}
}

// Options returns the current options.
func (s *Searcher) Options() Options { return s.opts }

// SetOptions replaces the options.
func (s *Searcher) SetOptions(opts Options) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	s.opts = opts
	return nil
}

// Evaluator returns the evaluator used at the leaves.
func (s *Searcher) Evaluator() *Evaluator { return s.eval }

// FindBestMove searches b to the configured depth and returns the best move
// for the side to move. b is borrowed mutably and restored before return.
// Among equally scored root moves the first in search order wins.
func (s *Searcher) FindBestMove(b *board.Board) (Result, error) {
	s.stats = SearchStats{}
	side := b.SideToMove()
	moves := s.orderedMoves(b, 0)
	if len(moves) == 0 {
		if b.InCheck(side) {
			return Result{}, &GameOverError{Status: board.Checkmate, Loser: side}
		}
		return Result{}, &GameOverError{Status: board.Stalemate}
	}

	maximizing := side == board.White
	alpha, beta := -MaxScore, MaxScore
	bestScore := MaxScore
	if maximizing {
		bestScore = -MaxScore
	}
	bestMove := moves[0]
	s.pvLength[0] = 0

	for _, m := range moves {
		b.Apply(m)
		score := s.minimax(b, s.opts.Depth-1, 1, alpha, beta)
		b.Undo()

		improved := score > bestScore
		if !maximizing {
			improved = score < bestScore
		}
		if improved {
			bestScore = score
			bestMove = m
			s.storePV(0, m)
		}
		if s.opts.Pruning {
			if maximizing {
				alpha = Max(alpha, bestScore)
			} else {
				beta = Min(beta, bestScore)
			}
		}
	}
	s.stats.Nodes++

	pv := make([]board.Move, s.pvLength[0])
	copy(pv, s.pvTable[0][:s.pvLength[0]])
	return Result{
		Move:  bestMove,
		Score: bestScore,
		Depth: s.opts.Depth,
		PV:    pv,
		Stats: s.stats,
	}, nil
}

func (s *Searcher) minimax(b *board.Board, depth, ply int, alpha, beta int32) int32 {
	s.stats.Nodes++
	s.pvLength[ply] = ply
	side := b.SideToMove()

	if depth <= 0 {
		if !b.HasLegalMoves(side) {
			return s.terminal(b, side, ply)
		}
		s.stats.LeafEvals++
		return s.eval.Evaluate(b)
	}

	moves := s.orderedMoves(b, ply)
	if len(moves) == 0 {
		return s.terminal(b, side, ply)
	}

	if side == board.White {
		best := -MaxScore
		for _, m := range moves {
			b.Apply(m)
			score := s.minimax(b, depth-1, ply+1, alpha, beta)
			b.Undo()
			if score > best {
				best = score
				s.storePV(ply, m)
			}
			if s.opts.Pruning {
				alpha = Max(alpha, best)
				if alpha >= beta {
					s.stats.BetaCutoffs++
					break
				}
			}
		}
		return best
	}

	best := MaxScore
	for _, m := range moves {
		b.Apply(m)
		score := s.minimax(b, depth-1, ply+1, alpha, beta)
		b.Undo()
		if score < best {
			best = score
			s.storePV(ply, m)
		}
		if s.opts.Pruning {
			beta = Min(beta, best)
			if alpha >= beta {
				s.stats.AlphaCutoffs++
				break
			}
		}
	}
	return best
}

// terminal scores a position with no legal moves. Nearer mates score
// further from zero.
func (s *Searcher) terminal(b *board.Board, side board.Color, ply int) int32 {
	s.stats.Terminals++
	if !b.InCheck(side) {
		return DrawScore
	}
	if side == board.White {
		return -Checkmate + int32(ply)
	}
	return Checkmate - int32(ply)
}

func (s *Searcher) storePV(ply int, m board.Move) {
	s.pvTable[ply][ply] = m
	next := ply + 1
	end := next
	if next < maxPly {
		end = s.pvLength[next]
		copy(s.pvTable[ply][next:end], s.pvTable[next][next:end])
	}
	s.pvLength[ply] = end
}

// orderedMoves fills the per-ply buffer with legal moves for the side to
// move, sorted when move ordering is on.
func (s *Searcher) orderedMoves(b *board.Board, ply int) []board.Move {
	moves := b.LegalMovesInto(b.SideToMove(), s.moveBufs[ply][:0])
	s.moveBufs[ply] = moves
	if !s.opts.OrderMoves || len(moves) < 2 {
		return moves
	}
	scored := scoreMoves(moves, s.scoredBufs[ply])
	s.scoredBufs[ply] = scored
	for i := range scored {
		orderNextMove(i, scored)
		moves[i] = scored[i].move
	}
	return moves
}
