package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"adaptive-chess/board"
	"adaptive-chess/engine"
)

func main() {
	uciLoop(os.Stdin, os.Stdout)
}

// uciState is what the protocol loop keeps between commands.
type uciState struct {
	out    io.Writer
	board  *board.Board
	eval   *engine.Evaluator
	search *engine.Searcher

	// tradeOwnerSet pins the trade owner chosen with setoption; otherwise
	// it follows the side the engine searches for.
	tradeOwnerSet bool
}

func newUCIState(out io.Writer) *uciState {
	eval := engine.NewEvaluator(engine.DefaultWeights())
	return &uciState{
		out:    out,
		board:  board.New(),
		eval:   eval,
		search: engine.NewSearcher(eval, engine.NewOptions()),
	}
}

func (s *uciState) println(a ...any) { fmt.Fprintln(s.out, a...) }

func uciLoop(in io.Reader, out io.Writer) {
	scanner := bufio.NewScanner(in)
	st := newUCIState(out)
	for scanner.Scan() {
		line := scanner.Text()
		tokens := strings.Fields(line)
		if len(tokens) == 0 { // ignore blank lines
			continue
		}
		switch strings.ToLower(tokens[0]) {
		case "uci":
			st.println("id name AdaptiveChess 1.0")
			st.println("id author adaptive-chess")
			opts := engine.NewOptions()
			st.println("option name Depth type spin default", opts.Depth, "min 1 max", engine.MaxDepth)
			st.println("option name Pruning type check default", opts.Pruning)
			st.println("option name OrderMoves type check default", opts.OrderMoves)
			st.println("option name TradeOwner type combo default black var white var black")
			st.println("option name WeightsFile type string default <empty>")
			for _, name := range engine.FactorNames {
				v, _ := engine.DefaultWeights().Get(name)
				st.println("option name", name, "type string default", strconv.FormatFloat(v, 'f', -1, 64))
			}
			st.println("uciok")
		case "isready":
			st.println("readyok")
		case "ucinewgame":
			st.board = board.New()
		case "quit":
			return
		case "stop":
			// searches run to completion
		case "position":
			st.position(tokens[1:])
		case "go":
			st.goCommand(tokens[1:])
		case "setoption":
			st.setOption(tokens[1:])
		case "eval":
			st.printEval()
		case "d":
			fmt.Fprint(st.out, st.board.String())
			st.println("Fen:", st.board.FEN())
			st.println("Moves:", joinMoves(engine.OrderedMoves(st.board)))
		default:
			st.println("info string Unknown command", tokens[0])
		}
	}
}

func (s *uciState) position(args []string) {
	if len(args) == 0 {
		s.println("info string Malformed position command")
		return
	}
	var (
		b    *board.Board
		rest []string
		err  error
	)
	switch strings.ToLower(args[0]) {
	case "startpos":
		b, rest = board.New(), args[1:]
	case "fen":
		i := 1
		for i < len(args) && strings.ToLower(args[i]) != "moves" {
			i++
		}
		b, err = board.ParseFEN(strings.Join(args[1:i], " "))
		if err != nil {
			s.println("info string Invalid fen position:", err)
			return
		}
		rest = args[i:]
	default:
		s.println("info string Invalid position subcommand")
		return
	}
	if len(rest) > 0 && strings.ToLower(rest[0]) == "moves" {
		for _, moveStr := range rest[1:] {
			m, err := b.ParseMove(strings.ToLower(moveStr))
			if err != nil {
				s.println("info string Move", moveStr, "not found for position", b.FEN())
				break
			}
			b.Apply(m)
		}
	}
	s.board = b
}

func (s *uciState) goCommand(args []string) {
	opts := s.search.Options()
	for i := 0; i < len(args); i++ {
		switch strings.ToLower(args[i]) {
		case "depth":
			if i+1 >= len(args) {
				s.println("info string Malformed go command option depth")
				continue
			}
			i++
			d, err := strconv.Atoi(args[i])
			if err != nil || d < 1 || d > engine.MaxDepth {
				s.println("info string Malformed go command option; could not convert depth")
				continue
			}
			opts.Depth = d
		case "infinite":
		case "wtime", "btime", "winc", "binc", "movetime", "movestogo":
			// fixed-depth engine; clock values are read and ignored
			i++
		default:
			s.println("info string Unknown go subcommand", args[i])
		}
	}

	if !s.tradeOwnerSet {
		s.eval.SetTradeOwner(s.board.SideToMove())
	}
	searcher := engine.NewSearcher(s.eval, opts)
	res, err := searcher.FindBestMove(s.board)
	if err != nil {
		s.println("info string", err)
		s.println("bestmove 0000")
		return
	}
	s.println(fmt.Sprintf("info depth %d score %s nodes %d pv %s",
		res.Depth, uciScore(res.Score, s.board.SideToMove()), res.Stats.Nodes, res.PVString()))
	for _, l := range res.Stats.Lines() {
		s.println(l)
	}
	s.println("bestmove", res.Move)
}

func joinMoves(moves []board.Move) string {
	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = m.String()
	}
	return strings.Join(parts, " ")
}

// uciScore converts a White-relative score to the side-to-move view,
// reporting mates in moves.
func uciScore(score int32, side board.Color) string {
	if side == board.Black {
		score = -score
	}
	if d := engine.Checkmate - engine.Abs(score); d >= 0 && d <= engine.MaxDepth+1 {
		moves := (d + 1) / 2
		if score < 0 {
			moves = -moves
		}
		return fmt.Sprintf("mate %d", moves)
	}
	return fmt.Sprintf("cp %d", score)
}

// setOption handles "setoption name <id> value <x>".
func (s *uciState) setOption(args []string) {
	var name, value string
	for i := 0; i < len(args); i++ {
		switch strings.ToLower(args[i]) {
		case "name":
			if i+1 < len(args) {
				i++
				name = args[i]
			}
		case "value":
			value = strings.Join(args[i+1:], " ")
			i = len(args)
		}
	}
	if name == "" {
		s.println("info string Malformed setoption command")
		return
	}

	opts := s.search.Options()
	var err error
	switch strings.ToLower(name) {
	case "depth":
		opts.Depth, err = strconv.Atoi(value)
		if err == nil {
			err = s.search.SetOptions(opts)
		}
	case "pruning":
		opts.Pruning, err = strconv.ParseBool(value)
		if err == nil {
			err = s.search.SetOptions(opts)
		}
	case "ordermoves":
		opts.OrderMoves, err = strconv.ParseBool(value)
		if err == nil {
			err = s.search.SetOptions(opts)
		}
	case "tradeowner":
		switch strings.ToLower(value) {
		case "white":
			s.eval.SetTradeOwner(board.White)
			s.tradeOwnerSet = true
		case "black":
			s.eval.SetTradeOwner(board.Black)
			s.tradeOwnerSet = true
		default:
			err = fmt.Errorf("unknown side %q", value)
		}
	case "weightsfile":
		var w engine.Weights
		w, err = engine.LoadWeights(value)
		if err == nil {
			err = s.eval.SetWeights(w)
		}
	default:
		var v float64
		v, err = strconv.ParseFloat(value, 64)
		if err != nil {
			break
		}
		w := s.eval.Weights()
		m := w.Map()
		if _, ok := m[strings.ToLower(name)]; !ok {
			s.println("info string Unknown option", name)
			return
		}
		m[strings.ToLower(name)] = v
		if w, err = engine.WeightsFromMap(m); err == nil {
			err = s.eval.SetWeights(w)
		}
	}
	if err != nil {
		s.println("info string Could not set", name+":", err)
	}
}

func (s *uciState) printEval() {
	terms := s.eval.Breakdown(s.board)
	m := terms.Map()
	for _, name := range engine.FactorNames {
		s.println(fmt.Sprintf("info string %-18s %8.2f", name, m[name]))
	}
	s.println("info string total", s.eval.Evaluate(s.board))
}
