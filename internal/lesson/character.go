package lesson

import (
	"encoding/json"
	"fmt"
	"unicode/utf8"
)

// Character is a single practice character and its base sampling weight.
type Character struct {
	Value  rune
	Weight float64
}

// NewCharacter returns a Character with the default weight of 1.
func NewCharacter(value rune) Character {
	return Character{Value: value, Weight: 1.0}
}

type characterJSON struct {
	Value  string  `json:"value"`
	Weight float64 `json:"weight"`
}

// MarshalJSON encodes the rune as a one-character string.
func (c Character) MarshalJSON() ([]byte, error) {
	return json.Marshal(characterJSON{Value: string(c.Value), Weight: c.Weight})
}

// UnmarshalJSON decodes a character written by MarshalJSON. A missing weight means 1.
func (c *Character) UnmarshalJSON(data []byte) error {
	var raw characterJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if utf8.RuneCountInString(raw.Value) != 1 {
		return fmt.Errorf("character value must be exactly one rune, got %q", raw.Value)
	}
	r, _ := utf8.DecodeRuneInString(raw.Value)
	c.Value = r
	c.Weight = raw.Weight
	if c.Weight == 0 {
		c.Weight = 1.0
	}
	if c.Weight < 0 {
		return fmt.Errorf("character %q has negative weight %v", raw.Value, raw.Weight)
	}
	return nil
}
