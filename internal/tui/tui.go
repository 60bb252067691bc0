// Package tui draws a game on a terminal and reads moves from the keyboard.
package tui

import (
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"

	"adaptive-chess/board"
	"adaptive-chess/engine"
	"adaptive-chess/game"
)

// Session is the part of a game the terminal needs.
type Session interface {
	Board() *board.Board
	HumanColor() board.Color
	Status() board.Status
	InCheck() bool
	LastSearch() (engine.Result, bool)
	PlayHumanUCI(s string) (game.MoveFacts, error)
	PlayEngine() (engine.Result, game.MoveFacts, error)
}

// explainer is implemented by sessions that adapt to the player.
type explainer interface {
	Explanation() string
}

const (
	squareWidth = 3
	boardLeft   = 2
	panelLeft   = boardLeft + 8*squareWidth + 3
)

var (
	lightSquare = tcell.StyleDefault.Background(tcell.ColorBurlyWood).Foreground(tcell.ColorBlack)
	darkSquare  = tcell.StyleDefault.Background(tcell.ColorSaddleBrown).Foreground(tcell.ColorBlack)
	lastSquare  = tcell.StyleDefault.Background(tcell.ColorOlive).Foreground(tcell.ColorBlack)
	whitePiece  = tcell.ColorWhite
	blackPiece  = tcell.ColorBlack
	textStyle   = tcell.StyleDefault
	alertStyle  = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
)

// UI renders one session on one screen.
type UI struct {
	screen  tcell.Screen
	session Session
	input   []rune
	message string
}

// New returns a UI. The screen must already be initialised.
func New(screen tcell.Screen, session Session) *UI {
	return &UI{screen: screen, session: session}
}

// Run plays the engine's turns and handles keys until the player quits.
func (u *UI) Run() {
	u.engineTurn()
	u.Draw()
	for {
		switch ev := u.screen.PollEvent().(type) {
		case *tcell.EventResize:
			u.screen.Sync()
		case *tcell.EventKey:
			if u.HandleKey(ev) {
				return
			}
		case nil:
			return
		}
		u.Draw()
	}
}

// HandleKey edits the move line or submits it. It reports whether the
// player asked to quit.
func (u *UI) HandleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(u.input) > 0 {
			u.input = u.input[:len(u.input)-1]
		}
	case tcell.KeyEnter:
		line := string(u.input)
		u.input = u.input[:0]
		if line == "quit" {
			return true
		}
		u.submit(line)
	case tcell.KeyRune:
		if len(u.input) < 8 {
			u.input = append(u.input, ev.Rune())
		}
	}
	return false
}

func (u *UI) submit(line string) {
	if _, err := u.session.PlayHumanUCI(line); err != nil {
		var ime *game.IllegalMoveError
		switch {
		case errors.As(err, &ime):
			u.message = fmt.Sprintf("Illegal move: %s", line)
		case errors.Is(err, game.ErrGameOver):
			u.message = "The game is over"
		default:
			u.message = err.Error()
		}
		return
	}
	u.message = ""
	u.engineTurn()
}

func (u *UI) engineTurn() {
	if u.session.Board().SideToMove() == u.session.HumanColor() {
		return
	}
	if u.session.Status() != board.Ongoing {
		return
	}
	res, _, err := u.session.PlayEngine()
	if err != nil {
		u.message = err.Error()
		return
	}
	u.message = fmt.Sprintf("Engine played %v", res.Move)
}

// Draw repaints the whole screen.
func (u *UI) Draw() {
	u.screen.Clear()
	b := u.session.Board()
	flip := u.session.HumanColor() == board.Black
	last, hasLast := b.LastMove()

	for row := 0; row < 8; row++ {
		rank := 7 - row
		if flip {
			rank = row
		}
		u.text(0, row, textStyle, fmt.Sprintf("%d", rank+1))
		for col := 0; col < 8; col++ {
			file := col
			if flip {
				file = 7 - col
			}
			sq := board.NewSquare(file, rank)
			st := darkSquare
			if (file+rank)%2 == 1 {
				st = lightSquare
			}
			if hasLast && (sq == last.From() || sq == last.To()) {
				st = lastSquare
			}
			u.square(boardLeft+col*squareWidth, row, st, b.PieceAt(sq))
		}
	}
	for col := 0; col < 8; col++ {
		file := col
		if flip {
			file = 7 - col
		}
		u.text(boardLeft+col*squareWidth+1, 8, textStyle, string(rune('a'+file)))
	}

	y := 0
	line := func(st tcell.Style, s string) {
		u.text(panelLeft, y, st, s)
		y++
	}
	line(textStyle, fmt.Sprintf("You play %v", u.session.HumanColor()))
	switch st := u.session.Status(); st {
	case board.Checkmate:
		line(alertStyle, fmt.Sprintf("Checkmate, %v wins", b.SideToMove().Opp()))
	case board.Stalemate:
		line(alertStyle, "Stalemate")
	default:
		turn := fmt.Sprintf("%v to move", b.SideToMove())
		if u.session.InCheck() {
			line(alertStyle, turn+", check!")
		} else {
			line(textStyle, turn)
		}
	}
	if res, ok := u.session.LastSearch(); ok {
		line(textStyle, fmt.Sprintf("Last: %v  score %d  nodes %d", res.Move, res.Score, res.Stats.Nodes))
	}
	if ex, ok := u.session.(explainer); ok {
		y++
		line(textStyle, ex.Explanation())
	}
	if u.message != "" {
		y++
		line(alertStyle, u.message)
	}

	u.text(0, 10, textStyle, "Move: "+string(u.input))
	u.screen.ShowCursor(6+len(u.input), 10)
	u.screen.Show()
}

func (u *UI) square(x, y int, st tcell.Style, p board.Piece) {
	r := ' '
	if p != board.NoPiece {
		r = rune(p.String()[0])
		if p.Color() == board.White {
			st = st.Foreground(whitePiece).Bold(true)
		} else {
			st = st.Foreground(blackPiece)
		}
	}
	u.screen.SetContent(x, y, ' ', nil, st)
	u.screen.SetContent(x+1, y, r, nil, st)
	u.screen.SetContent(x+2, y, ' ', nil, st)
}

func (u *UI) text(x, y int, st tcell.Style, s string) {
	for _, r := range s {
		u.screen.SetContent(x, y, r, nil, st)
		x++
	}
}
