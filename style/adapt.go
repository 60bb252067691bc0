package style

import (
	"fmt"
	"math"
	"strings"

	"adaptive-chess/engine"
	"adaptive-chess/profile"
)

// Style names returned by PrimaryStyle.
const (
	Aggressive = "aggressive"
	Defensive  = "defensive"
	Tactical   = "tactical"
	Positional = "positional"
	Balanced   = "balanced"
)

// dominant is the score a style must exceed to be called primary.
const dominant = 0.65

// PrimaryStyle names the first style scoring above the dominance threshold,
// checked in the order aggressive, defensive, tactical, positional.
func PrimaryStyle(p *profile.Profile) string {
	switch {
	case p.AggressionScore > dominant:
		return Aggressive
	case p.DefensiveScore > dominant:
		return Defensive
	case p.TacticalScore > dominant:
		return Tactical
	case p.PositionalScore > dominant:
		return Positional
	}
	return Balanced
}

// styleDeltas counters each primary style.
var styleDeltas = map[string]map[string]float64{
	Aggressive: {
		engine.FactorKingSafety:      0.3,
		engine.FactorPieceActivity:   -0.2,
		engine.FactorCentralControl:  0.2,
		engine.FactorTradePreference: -0.3,
	},
	Defensive: {
		engine.FactorCentralControl:  0.3,
		engine.FactorPieceActivity:   0.2,
		engine.FactorKingSafety:      -0.1,
		engine.FactorTradePreference: 0.2,
	},
	Tactical: {
		engine.FactorPawnStructure:     0.3,
		engine.FactorKingSafety:        0.2,
		engine.FactorPieceCoordination: 0.2,
		engine.FactorMobility:          -0.1,
	},
	Positional: {
		engine.FactorPieceActivity:   0.3,
		engine.FactorMobility:        0.2,
		engine.FactorCentralControl:  -0.1,
		engine.FactorTradePreference: 0.1,
	},
}

// Deltas returns the weight adjustments chosen for p.
func Deltas(p *profile.Profile) map[string]float64 {
	d := make(map[string]float64, len(engine.FactorNames))
	for name, v := range styleDeltas[PrimaryStyle(p)] {
		d[name] += v
	}

	switch {
	case p.TradeWillingness > 0.6:
		d[engine.FactorTradePreference] -= 0.2
	case p.TradeWillingness < 0.4:
		d[engine.FactorTradePreference] += 0.2
	}
	if p.KingSafetyFocus > 0.6 {
		d[engine.FactorPieceActivity] += 0.15
		d[engine.FactorMobility] += 0.1
	}
	if p.CentralControlPreference > 0.6 {
		d[engine.FactorCentralControl] += 0.15
	} else {
		d[engine.FactorCentralControl] += 0.2
	}
	return d
}

// Adapt applies Deltas(p) to base. Non-finite results fall back to the base
// weight and negatives are clamped to zero, except trade preference, which
// keeps its sign.
func Adapt(p *profile.Profile, base engine.Weights) engine.Weights {
	adapted, err := base.Merge(Deltas(p))
	if err != nil {
		return base
	}
	m := adapted.Map()
	orig := base.Map()
	for name, v := range m {
		switch {
		case math.IsNaN(v) || math.IsInf(v, 0):
			m[name] = orig[name]
		case v < 0 && name != engine.FactorTradePreference:
			m[name] = 0
		}
	}
	w, err := engine.WeightsFromMap(m)
	if err != nil {
		return base
	}
	return w
}

// Explain describes the adaptation Adapt would make for p in plain words.
func Explain(p *profile.Profile, base engine.Weights) string {
	primary := PrimaryStyle(p)
	adapted := Adapt(p, base).Map()
	orig := base.Map()

	var parts []string
	for _, name := range engine.FactorNames {
		delta := adapted[name] - orig[name]
		if !(engine.Abs(delta) > 0.1) {
			continue
		}
		verb := "Increased"
		if delta < 0 {
			verb = "Decreased"
		}
		parts = append(parts, fmt.Sprintf("%s %s by %.2f", verb, strings.ReplaceAll(name, "_", " "), engine.Abs(delta)))
	}
	if len(parts) == 0 {
		return fmt.Sprintf("No significant adaptation needed for %s player", primary)
	}
	return fmt.Sprintf("Adapting to %s player: %s", primary, strings.Join(parts, "; "))
}
