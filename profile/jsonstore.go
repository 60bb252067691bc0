package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/exp/slices"
)

// JSONStore keeps one indented JSON file per player in a directory.
type JSONStore struct {
	dir    string
	logger *zap.Logger
}

// NewJSONStore creates dir if needed.
func NewJSONStore(dir string, logger *zap.Logger) (*JSONStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("profile: create %s: %w", dir, err)
	}
	return &JSONStore{dir: dir, logger: logger}, nil
}

func (s *JSONStore) path(id string) string { return filepath.Join(s.dir, id+".json") }

func (s *JSONStore) Load(ctx context.Context, id string) (*Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !ValidID(id) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPlayerID, id)
	}
	data, err := os.ReadFile(s.path(id))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrProfileNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("profile: read %s: %w", id, err)
	}
	p := New(id, "")
	if err := json.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("profile: decode %s: %w", id, err)
	}
	s.logger.Debug("profile loaded", zap.String("player_id", id), zap.Int("moves", p.MovesRecorded))
	return p, nil
}

// Save stamps LastUpdated and writes through a temp file and rename.
func (s *JSONStore) Save(ctx context.Context, p *Profile) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !ValidID(p.PlayerID) {
		return fmt.Errorf("%w: %q", ErrInvalidPlayerID, p.PlayerID)
	}
	p.LastUpdated = time.Now().UTC()
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("profile: encode %s: %w", p.PlayerID, err)
	}
	tmp, err := os.CreateTemp(s.dir, p.PlayerID+".*.tmp")
	if err != nil {
		return fmt.Errorf("profile: save %s: %w", p.PlayerID, err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("profile: save %s: %w", p.PlayerID, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("profile: save %s: %w", p.PlayerID, err)
	}
	if err := os.Rename(tmp.Name(), s.path(p.PlayerID)); err != nil {
		return fmt.Errorf("profile: save %s: %w", p.PlayerID, err)
	}
	s.logger.Info("profile saved",
		zap.String("player_id", p.PlayerID),
		zap.Int("games", p.GamesPlayed),
		zap.Int("moves", p.MovesRecorded))
	return nil
}

// List returns the stored player IDs in sorted order.
func (s *JSONStore) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("profile: list %s: %w", s.dir, err)
	}
	var ids []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, ".json"))
	}
	slices.Sort(ids)
	return ids, nil
}
