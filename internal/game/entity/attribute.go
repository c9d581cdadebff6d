package entity

import "github.com/cory-johannsen/wildone/internal/game/dice"

// DexterityKey is the attribute key consulted by attack and initiative checks.
const DexterityKey = "DEX"

// Attribute is one named ability score.
type Attribute struct {
	Key           string
	DisplayName   string
	Notation      string
	BaseValue     int
	ModifiedValue int
}

// RollAttribute creates an Attribute by rolling notation.
//
// Postcondition: BaseValue == ModifiedValue.
func RollAttribute(d *dice.Service, key, displayName, notation string) (*Attribute, error) {
	a := &Attribute{Key: key, DisplayName: displayName, Notation: notation}
	if err := a.ReRoll(d); err != nil {
		return nil, err
	}
	return a, nil
}

// ReRoll replaces the base value with a fresh roll of the notation and
// resets the modified value to it.
func (a *Attribute) ReRoll(d *dice.Service) error {
	v, err := d.Roll(a.Notation)
	if err != nil {
		return err
	}
	a.BaseValue = v
	a.ModifiedValue = v
	return nil
}

// Clone returns an independent copy.
func (a *Attribute) Clone() *Attribute {
	c := *a
	return &c
}

func cloneAttributes(attrs []*Attribute) []*Attribute {
	out := make([]*Attribute, len(attrs))
	for i, a := range attrs {
		out[i] = a.Clone()
	}
	return out
}
