package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Names of the evaluation factors, as used in JSON and weight maps.
const (
	FactorMaterial          = "material"
	FactorPieceActivity     = "piece_activity"
	FactorKingSafety        = "king_safety"
	FactorCentralControl    = "central_control"
	FactorPawnStructure     = "pawn_structure"
	FactorPieceCoordination = "piece_coordination"
	FactorMobility          = "mobility"
	FactorTradePreference   = "trade_preference"
)

// FactorNames lists the factors in evaluation order.
var FactorNames = []string{
	FactorMaterial,
	FactorPieceActivity,
	FactorKingSafety,
	FactorCentralControl,
	FactorPawnStructure,
	FactorPieceCoordination,
	FactorMobility,
	FactorTradePreference,
}

// ErrInvalidWeights is returned (wrapped) when a weight vector is rejected.
var ErrInvalidWeights = errors.New("invalid weights")

// Weights scales each evaluation factor. A weight of 0 disables a factor.
type Weights struct {
	Material          float64 `json:"material"`
	PieceActivity     float64 `json:"piece_activity"`
	KingSafety        float64 `json:"king_safety"`
	CentralControl    float64 `json:"central_control"`
	PawnStructure     float64 `json:"pawn_structure"`
	PieceCoordination float64 `json:"piece_coordination"`
	Mobility          float64 `json:"mobility"`
	TradePreference   float64 `json:"trade_preference"`
}

// DefaultWeights is the baseline style before any adaptation.
func DefaultWeights() Weights {
	return Weights{
		Material:          1.0,
		PieceActivity:     0.5,
		KingSafety:        0.8,
		CentralControl:    0.3,
		PawnStructure:     0.4,
		PieceCoordination: 0.2,
		Mobility:          0.6,
		TradePreference:   0.0,
	}
}

func (w *Weights) field(name string) *float64 {
	switch name {
	case FactorMaterial:
		return &w.Material
	case FactorPieceActivity:
		return &w.PieceActivity
	case FactorKingSafety:
		return &w.KingSafety
	case FactorCentralControl:
		return &w.CentralControl
	case FactorPawnStructure:
		return &w.PawnStructure
	case FactorPieceCoordination:
		return &w.PieceCoordination
	case FactorMobility:
		return &w.Mobility
	case FactorTradePreference:
		return &w.TradePreference
	}
	return nil
}

// Get returns the named weight.
func (w Weights) Get(name string) (float64, bool) {
	if p := w.field(name); p != nil {
		return *p, true
	}
	return 0, false
}

// Map returns the weights keyed by factor name.
func (w Weights) Map() map[string]float64 {
	m := make(map[string]float64, len(FactorNames))
	for _, name := range FactorNames {
		m[name] = *w.field(name)
	}
	return m
}

// WeightsFromMap builds weights from a name->value map. Missing factors keep
// their default; unknown names are an error.
func WeightsFromMap(m map[string]float64) (Weights, error) {
	w := DefaultWeights()
	for _, name := range sortedKeys(m) {
		p := w.field(name)
		if p == nil {
			return Weights{}, fmt.Errorf("%w: unknown factor %q", ErrInvalidWeights, name)
		}
		*p = m[name]
	}
	return w, w.Validate()
}

// Merge adds each delta to the named weight and returns the result.
func (w Weights) Merge(deltas map[string]float64) (Weights, error) {
	for _, name := range sortedKeys(deltas) {
		p := w.field(name)
		if p == nil {
			return w, fmt.Errorf("%w: unknown factor %q", ErrInvalidWeights, name)
		}
		*p += deltas[name]
	}
	return w, nil
}

// Validate rejects NaN and infinite weights, and negative weights for every
// factor except trade preference, whose sign picks seeking or avoiding trades.
func (w Weights) Validate() error {
	for _, name := range FactorNames {
		v := *w.field(name)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s is %v", ErrInvalidWeights, name, v)
		}
		if v < 0 && name != FactorTradePreference {
			return fmt.Errorf("%w: %s is negative (%v)", ErrInvalidWeights, name, v)
		}
	}
	return nil
}

func (w Weights) String() string {
	parts := make([]string, len(FactorNames))
	for i, name := range FactorNames {
		parts[i] = fmt.Sprintf("%s=%.2f", name, *w.field(name))
	}
	return strings.Join(parts, " ")
}

func sortedKeys(m map[string]float64) []string {
	keys := maps.Keys(m)
	slices.Sort(keys)
	return keys
}

// LoadWeights reads a JSON weights file. Factors absent from the file keep
// their defaults.
func LoadWeights(path string) (Weights, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Weights{}, fmt.Errorf("read weights: %w", err)
	}
	var m map[string]float64
	if err := json.Unmarshal(data, &m); err != nil {
		return Weights{}, fmt.Errorf("%w: %s: %v", ErrInvalidWeights, path, err)
	}
	return WeightsFromMap(m)
}

// SaveWeights writes w as indented JSON, replacing path atomically.
func SaveWeights(path string, w Weights) error {
	if err := w.Validate(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(w, "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".weights-*.json")
	if err != nil {
		return fmt.Errorf("save weights: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return fmt.Errorf("save weights: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("save weights: %w", err)
	}
	return os.Rename(tmp.Name(), path)
}
