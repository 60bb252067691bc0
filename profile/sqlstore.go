package profile

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS player_profiles (
	player_id        TEXT PRIMARY KEY,
	player_name      TEXT NOT NULL,
	games_played     INTEGER NOT NULL DEFAULT 0,
	moves_recorded   INTEGER NOT NULL DEFAULT 0,
	aggressive       REAL NOT NULL DEFAULT 50,
	defensive        REAL NOT NULL DEFAULT 50,
	positional       REAL NOT NULL DEFAULT 50,
	tactical         REAL NOT NULL DEFAULT 50,
	endgame          REAL NOT NULL DEFAULT 50,
	mistake_control  REAL NOT NULL DEFAULT 50,
	blunder_rate     REAL NOT NULL DEFAULT 0,
	tendencies       TEXT NOT NULL DEFAULT '{}',
	recent_moves     TEXT NOT NULL DEFAULT '[]',
	last_updated     TEXT NOT NULL
)`

const upsertProfile = `
INSERT INTO player_profiles (
	player_id, player_name, games_played, moves_recorded,
	aggressive, defensive, positional, tactical, endgame,
	mistake_control, blunder_rate, tendencies, recent_moves, last_updated
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(player_id) DO UPDATE SET
	player_name = excluded.player_name,
	games_played = excluded.games_played,
	moves_recorded = excluded.moves_recorded,
	aggressive = excluded.aggressive,
	defensive = excluded.defensive,
	positional = excluded.positional,
	tactical = excluded.tactical,
	endgame = excluded.endgame,
	mistake_control = excluded.mistake_control,
	blunder_rate = excluded.blunder_rate,
	tendencies = excluded.tendencies,
	recent_moves = excluded.recent_moves,
	last_updated = excluded.last_updated`

const selectProfile = `
SELECT player_name, games_played, moves_recorded,
	aggressive, defensive, positional, tactical, endgame,
	mistake_control, blunder_rate, tendencies, recent_moves, last_updated
FROM player_profiles WHERE player_id = ?`

// tendencies is the JSON column holding the non-headline rates.
type tendencies struct {
	TradeWillingness         float64 `json:"trade_willingness"`
	KingSafetyFocus          float64 `json:"king_safety_focus"`
	CentralControlPreference float64 `json:"central_control_preference"`
	PieceActivityPreference  float64 `json:"piece_activity_preference"`
	PawnStructureFocus       float64 `json:"pawn_structure_focus"`
	CaptureRate              float64 `json:"capture_rate"`
	CheckRate                float64 `json:"check_rate"`
	CastleRate               float64 `json:"castle_rate"`
}

// SQLStore keeps profiles in a SQLite table. Headline scores are stored on
// a 0..100 scale.
type SQLStore struct {
	db     *sql.DB
	logger *zap.Logger
}

// OpenSQLStore opens (creating if needed) the database at path.
func OpenSQLStore(ctx context.Context, path string, logger *zap.Logger) (*SQLStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("profile: open %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("profile: create schema: %w", err)
	}
	return &SQLStore{db: db, logger: logger}, nil
}

func (s *SQLStore) Close() error { return s.db.Close() }

func (s *SQLStore) Load(ctx context.Context, id string) (*Profile, error) {
	var (
		p                 = New(id, "")
		tend, recent, upd string
	)
	err := s.db.QueryRowContext(ctx, selectProfile, id).Scan(
		&p.PlayerName, &p.GamesPlayed, &p.MovesRecorded,
		&p.AggressionScore, &p.DefensiveScore, &p.PositionalScore, &p.TacticalScore, &p.EndgameScore,
		&p.MistakeControl, &p.BlunderRate, &tend, &recent, &upd)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrProfileNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("profile: load %s: %w", id, err)
	}
	for _, f := range []*float64{
		&p.AggressionScore, &p.DefensiveScore, &p.PositionalScore, &p.TacticalScore,
		&p.EndgameScore, &p.MistakeControl, &p.BlunderRate,
	} {
		*f /= 100
	}

	var t tendencies
	if err := json.Unmarshal([]byte(tend), &t); err != nil {
		return nil, fmt.Errorf("profile: decode tendencies for %s: %w", id, err)
	}
	p.TradeWillingness = t.TradeWillingness
	p.KingSafetyFocus = t.KingSafetyFocus
	p.CentralControlPreference = t.CentralControlPreference
	p.PieceActivityPreference = t.PieceActivityPreference
	p.PawnStructureFocus = t.PawnStructureFocus
	p.CaptureRate = t.CaptureRate
	p.CheckRate = t.CheckRate
	p.CastleRate = t.CastleRate

	if err := json.Unmarshal([]byte(recent), &p.RecentMoves); err != nil {
		return nil, fmt.Errorf("profile: decode recent moves for %s: %w", id, err)
	}
	if ts, err := time.Parse(time.RFC3339Nano, upd); err == nil {
		p.LastUpdated = ts
	}
	s.logger.Debug("profile loaded", zap.String("player_id", id), zap.Int("moves", p.MovesRecorded))
	return p, nil
}

// Save upserts the profile and stamps LastUpdated.
func (s *SQLStore) Save(ctx context.Context, p *Profile) error {
	if !ValidID(p.PlayerID) {
		return fmt.Errorf("%w: %q", ErrInvalidPlayerID, p.PlayerID)
	}
	tend, err := json.Marshal(tendencies{
		TradeWillingness:         p.TradeWillingness,
		KingSafetyFocus:          p.KingSafetyFocus,
		CentralControlPreference: p.CentralControlPreference,
		PieceActivityPreference:  p.PieceActivityPreference,
		PawnStructureFocus:       p.PawnStructureFocus,
		CaptureRate:              p.CaptureRate,
		CheckRate:                p.CheckRate,
		CastleRate:               p.CastleRate,
	})
	if err != nil {
		return fmt.Errorf("profile: encode %s: %w", p.PlayerID, err)
	}
	recent := p.RecentMoves
	if recent == nil {
		recent = []MoveRecord{}
	}
	moves, err := json.Marshal(recent)
	if err != nil {
		return fmt.Errorf("profile: encode %s: %w", p.PlayerID, err)
	}
	p.LastUpdated = time.Now().UTC()
	_, err = s.db.ExecContext(ctx, upsertProfile,
		p.PlayerID, p.PlayerName, p.GamesPlayed, p.MovesRecorded,
		p.AggressionScore*100, p.DefensiveScore*100, p.PositionalScore*100,
		p.TacticalScore*100, p.EndgameScore*100,
		p.MistakeControl*100, p.BlunderRate*100,
		string(tend), string(moves), p.LastUpdated.Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("profile: save %s: %w", p.PlayerID, err)
	}
	s.logger.Info("profile saved",
		zap.String("player_id", p.PlayerID),
		zap.Int("games", p.GamesPlayed),
		zap.Int("moves", p.MovesRecorded))
	return nil
}

// List returns the stored player IDs in sorted order.
func (s *SQLStore) List(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT player_id FROM player_profiles ORDER BY player_id`)
	if err != nil {
		return nil, fmt.Errorf("profile: list: %w", err)
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("profile: list: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
