package lesson

import "strings"

// StrategyKind tags the variant of a WeightingStrategy.
type StrategyKind string

const (
	// EqualWeight gives every character the same weight.
	EqualWeight StrategyKind = "equal_weight"
	// FocusKey multiplies the weight of a focused set of characters.
	FocusKey StrategyKind = "focus_key"
)

// WeightingStrategy decides the relative sampling weight of a character.
// FocusKeys and Multiplier are only meaningful for the FocusKey kind.
type WeightingStrategy struct {
	Kind       StrategyKind `json:"kind"`
	FocusKeys  string       `json:"focus_keys,omitempty"`
	Multiplier float64      `json:"multiplier,omitempty"`
}

// Equal returns the EqualWeight strategy.
func Equal() WeightingStrategy {
	return WeightingStrategy{Kind: EqualWeight}
}

// Focus returns a FocusKey strategy weighting keys by multiplier.
func Focus(keys string, multiplier float64) WeightingStrategy {
	return WeightingStrategy{Kind: FocusKey, FocusKeys: keys, Multiplier: multiplier}
}

// Weight returns the strategy weight for ch. It is always positive for a
// strategy with a positive multiplier.
func (s WeightingStrategy) Weight(ch rune) float64 {
	switch s.Kind {
	case FocusKey:
		if strings.ContainsRune(s.FocusKeys, ch) {
			return s.Multiplier
		}
		return 1.0
	default:
		return 1.0
	}
}

// String describes the strategy for listings.
func (s WeightingStrategy) String() string {
	switch s.Kind {
	case FocusKey:
		return "focus " + s.FocusKeys + " x" + trimFloat(s.Multiplier)
	default:
		return "equal"
	}
}

func trimFloat(v float64) string {
	out := strings.TrimRight(strings.TrimRight(formatFloat(v), "0"), ".")
	if out == "" {
		return "0"
	}
	return out
}
