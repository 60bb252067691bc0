// Package profile stores what has been learned about a player's style.
package profile

import (
	"errors"
	"time"

	"adaptive-chess/board"
)

// MaxRecentMoves bounds the move analyses kept on a profile.
const MaxRecentMoves = 100

// ErrProfileNotFound is returned by stores when no profile has the given ID.
var ErrProfileNotFound = errors.New("profile not found")

// ErrInvalidPlayerID is returned for IDs that cannot be used as keys.
var ErrInvalidPlayerID = errors.New("invalid player id")

// MoveRecord is the style-relevant description of one move, taken from the
// position before the move was played.
type MoveRecord struct {
	Move           string          `json:"move"`
	Piece          board.PieceType `json:"piece"`
	Target         board.PieceType `json:"target,omitempty"`
	IsCapture      bool            `json:"is_capture"`
	IsCheck        bool            `json:"is_check"`
	IsCastling     bool            `json:"is_castling"`
	IsPromotion    bool            `json:"is_promotion"`
	Forward        bool            `json:"forward"`
	Central        bool            `json:"central"`
	RelativeRank   int             `json:"relative_rank"` // destination rank seen from the mover, 0..7
	AttackingValue float64         `json:"attacking_value"`
	DefensiveValue float64         `json:"defensive_value"`
	ValueGain      int             `json:"value_gain"` // captured minus capturer, in pawns
}

// Profile holds style scores and tendencies, each in [0, 1].
type Profile struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`

	GamesPlayed   int `json:"games_played"`
	MovesRecorded int `json:"moves_recorded"`

	AggressionScore float64 `json:"aggression_score"`
	DefensiveScore  float64 `json:"defensive_score"`
	TacticalScore   float64 `json:"tactical_score"`
	PositionalScore float64 `json:"positional_score"`
	EndgameScore    float64 `json:"endgame_score"`
	MistakeControl  float64 `json:"mistake_control"`
	BlunderRate     float64 `json:"blunder_rate"`

	TradeWillingness         float64 `json:"trade_willingness"`
	KingSafetyFocus          float64 `json:"king_safety_focus"`
	CentralControlPreference float64 `json:"central_control_preference"`
	PieceActivityPreference  float64 `json:"piece_activity_preference"`
	PawnStructureFocus       float64 `json:"pawn_structure_focus"`

	CaptureRate float64 `json:"capture_rate"`
	CheckRate   float64 `json:"check_rate"`
	CastleRate  float64 `json:"castle_rate"`

	RecentMoves []MoveRecord `json:"recent_moves"`
	LastUpdated time.Time    `json:"last_updated"`
}

// New returns a neutral profile. An empty name defaults to the ID.
func New(id, name string) *Profile {
	if name == "" {
		name = id
	}
	return &Profile{
		PlayerID:                 id,
		PlayerName:               name,
		AggressionScore:          0.5,
		DefensiveScore:           0.5,
		TacticalScore:            0.5,
		PositionalScore:          0.5,
		EndgameScore:             0.5,
		MistakeControl:           0.5,
		TradeWillingness:         0.5,
		KingSafetyFocus:          0.5,
		CentralControlPreference: 0.5,
		PieceActivityPreference:  0.5,
		PawnStructureFocus:       0.5,
	}
}

// RecordGameStart counts a new game.
func (p *Profile) RecordGameStart() { p.GamesPlayed++ }

// RecordMove folds one move into the running rates and the recent-move
// window.
func (p *Profile) RecordMove(rec MoveRecord) {
	p.MovesRecorded++
	n := float64(p.MovesRecorded)
	p.CaptureRate = runningRate(p.CaptureRate, n, rec.IsCapture)
	p.CheckRate = runningRate(p.CheckRate, n, rec.IsCheck)
	if rec.ValueGain < -5 {
		p.BlunderRate = runningRate(p.BlunderRate, n, true)
		p.MistakeControl = clamp01(1 - p.BlunderRate)
	}

	p.RecentMoves = append(p.RecentMoves, rec)
	if extra := len(p.RecentMoves) - MaxRecentMoves; extra > 0 {
		p.RecentMoves = append(p.RecentMoves[:0], p.RecentMoves[extra:]...)
	}
}

func runningRate(rate, n float64, hit bool) float64 {
	if !hit {
		return rate * (n - 1) / n
	}
	return (rate*(n-1) + 1) / n
}

// Percentages returns the headline scores on a 0..100 scale.
func (p *Profile) Percentages() map[string]float64 {
	return map[string]float64{
		"aggressive":      p.AggressionScore * 100,
		"defensive":       p.DefensiveScore * 100,
		"tactical":        p.TacticalScore * 100,
		"positional":      p.PositionalScore * 100,
		"endgame":         p.EndgameScore * 100,
		"mistake_control": p.MistakeControl * 100,
	}
}

// History and the finished game share each blended score 70/30.
const (
	historyWeight = 0.7
	gameWeight    = 1 - historyWeight
)

// BlendGame folds the scores p holds for one finished game into the
// history kept in prev, so a single game never erases earlier ones.
// Mistake control follows the running blunder rate.
func (p *Profile) BlendGame(prev *Profile) {
	blend := func(old, cur float64) float64 {
		return clamp01(old*historyWeight + cur*gameWeight)
	}
	p.AggressionScore = blend(prev.AggressionScore, p.AggressionScore)
	p.DefensiveScore = blend(prev.DefensiveScore, p.DefensiveScore)
	p.PositionalScore = blend(prev.PositionalScore, p.PositionalScore)
	p.TacticalScore = blend(prev.TacticalScore, p.TacticalScore)
	p.EndgameScore = blend(prev.EndgameScore, p.EndgameScore)
	p.MistakeControl = clamp01(1 - p.BlunderRate)
}

// Clone returns a deep copy.
func (p *Profile) Clone() *Profile {
	c := *p
	c.RecentMoves = append([]MoveRecord(nil), p.RecentMoves...)
	return &c
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
