package profile

import (
	"context"
	"errors"
	"strings"
)

// Store persists profiles keyed by player ID.
type Store interface {
	Load(ctx context.Context, id string) (*Profile, error)
	Save(ctx context.Context, p *Profile) error
	List(ctx context.Context) ([]string, error)
}

// GetOrCreate loads the profile for id, or returns a fresh one when the
// store has none. The fresh profile is not saved.
func GetOrCreate(ctx context.Context, s Store, id, name string) (*Profile, error) {
	p, err := s.Load(ctx, id)
	if err == nil {
		return p, nil
	}
	if errors.Is(err, ErrProfileNotFound) {
		return New(id, name), nil
	}
	return nil, err
}

// ValidID reports whether id is usable as a store key: non-empty, at most
// 64 bytes of letters, digits, '-', '_' or '.'.
func ValidID(id string) bool {
	if id == "" || len(id) > 64 || strings.Trim(id, ".") == "" {
		return false
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-' || r == '_' || r == '.':
		default:
			return false
		}
	}
	return true
}
