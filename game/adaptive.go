package game

import (
	"context"

	"go.uber.org/zap"

	"adaptive-chess/board"
	"adaptive-chess/engine"
	"adaptive-chess/profile"
	"adaptive-chess/style"
)

const (
	// AdaptEvery is the number of human moves between re-adaptations.
	AdaptEvery = 5
	// adaptWindow is how many recent human moves feed a re-adaptation.
	adaptWindow = 20
	// sessionMoves bounds the analyses kept for the current game.
	sessionMoves = profile.MaxRecentMoves
)

// Adaptive is a Game whose engine weights follow the human's style.
type Adaptive struct {
	*Game

	store    profile.Store
	player   *profile.Profile
	prior    *profile.Profile // scores as stored before this game
	base     engine.Weights
	analyses []profile.MoveRecord
	humans   int
}

// NewAdaptive starts a game against the stored player, creating the profile
// when it does not exist yet. The engine starts from weights adapted to
// whatever the profile already knows.
func NewAdaptive(ctx context.Context, cfg Config, store profile.Store, playerID, name string) (*Adaptive, error) {
	g, err := New(cfg)
	if err != nil {
		return nil, err
	}
	p, err := profile.GetOrCreate(ctx, store, playerID, name)
	if err != nil {
		return nil, err
	}
	p.RecordGameStart()
	if err := store.Save(ctx, p); err != nil {
		return nil, err
	}

	a := &Adaptive{
		Game:   g,
		store:  store,
		player: p,
		prior:  p.Clone(),
		base:   g.Weights(),
	}
	a.logger = a.logger.With(zap.String("player_id", p.PlayerID))
	a.adapt()
	return a, nil
}

// Profile returns a copy of the player's profile.
func (a *Adaptive) Profile() *profile.Profile { return a.player.Clone() }

// BaseWeights are the weights adaptation starts from.
func (a *Adaptive) BaseWeights() engine.Weights { return a.base }

// Explanation describes the current adaptation.
func (a *Adaptive) Explanation() string { return style.Explain(a.player, a.base) }

// PlayHuman plays the human's move and learns from it.
func (a *Adaptive) PlayHuman(from, to board.Square, promo board.PieceType) (MoveFacts, error) {
	m, err := a.resolveHuman(from, to, promo)
	if err != nil {
		return MoveFacts{}, err
	}
	rec := style.Analyze(a.board, m)
	f := a.play(m)

	a.analyses = append(a.analyses, rec)
	if extra := len(a.analyses) - sessionMoves; extra > 0 {
		a.analyses = append(a.analyses[:0], a.analyses[extra:]...)
	}
	a.player.RecordMove(rec)
	a.humans++
	if a.humans%AdaptEvery == 0 {
		start := engine.Max(0, len(a.analyses)-adaptWindow)
		style.UpdateProfile(a.player, a.analyses[start:])
		a.adapt()
	}
	return f, nil
}

// PlayHumanUCI is PlayHuman for coordinate notation.
func (a *Adaptive) PlayHumanUCI(s string) (MoveFacts, error) {
	from, to, promo, err := parseCoords(s)
	if err != nil {
		return MoveFacts{}, err
	}
	return a.PlayHuman(from, to, promo)
}

func (a *Adaptive) adapt() {
	w := style.Adapt(a.player, a.base)
	if err := a.SetWeights(w); err != nil {
		a.logger.Warn("adaptation rejected", zap.Error(err))
		return
	}
	a.logger.Info("weights adapted",
		zap.String("style", style.PrimaryStyle(a.player)),
		zap.Stringer("weights", w))
}

// End scores the whole game, blends it into the stored history and saves
// the profile.
func (a *Adaptive) End(ctx context.Context) error {
	if len(a.analyses) >= AdaptEvery {
		style.UpdateProfile(a.player, a.analyses)
		a.player.BlendGame(a.prior)
	}
	if err := a.store.Save(ctx, a.player); err != nil {
		a.logger.Error("profile save failed", zap.Error(err))
		return err
	}
	a.logger.Info("game ended",
		zap.String("outcome", a.Outcome()),
		zap.Int("human_moves", a.humans))
	return nil
}
