// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package vocab

import (
	"encoding/json"
	"math/bits"
)

// # Trait Categories

// TraitCategory groups trait tags for display in the onboarding wizard.
type TraitCategory string

const (
	TraitTaste     TraitCategory = "taste"
	TraitAroma     TraitCategory = "aroma"
	TraitBody      TraitCategory = "body"
	TraitTexture   TraitCategory = "texture"
	TraitCharacter TraitCategory = "character"
	TraitNotes     TraitCategory = "notes"
)

// # Traits

// Trait is one tag of the closed trait vocabulary. Zero is not a trait.
type Trait uint8

// traitDefs lists every tag; a tag's position+1 is its [Trait] code.
var traitDefs = []struct {
	label    string
	category TraitCategory
}{
	{"fruity", TraitTaste}, {"savory", TraitTaste}, {"spicy", TraitTaste},
	{"bitter", TraitTaste}, {"juicy", TraitTaste},

	{"citrus", TraitAroma}, {"floral", TraitAroma}, {"herbal", TraitAroma},
	{"berry", TraitAroma}, {"tropical", TraitAroma}, {"stone_fruit", TraitAroma},
	{"oak", TraitAroma}, {"vanilla", TraitAroma},

	{"lean", TraitBody}, {"round", TraitBody}, {"rich", TraitBody}, {"structured", TraitBody},

	{"silky", TraitTexture}, {"velvety", TraitTexture}, {"creamy", TraitTexture},
	{"crisp", TraitTexture}, {"grippy", TraitTexture},

	{"elegant", TraitCharacter}, {"bold", TraitCharacter}, {"complex", TraitCharacter},
	{"fresh", TraitCharacter}, {"rustic", TraitCharacter},

	{"mineral", TraitNotes}, {"earthy", TraitNotes}, {"smoky", TraitNotes},
	{"leather", TraitNotes}, {"chocolate", TraitNotes}, {"honey", TraitNotes},
	{"peppery", TraitNotes},
}

var traitTable = func() table {
	labels := make([]string, len(traitDefs))
	for i, def := range traitDefs {
		labels[i] = def.label
	}
	return newTable(labels...)
}()

// ParseTrait maps a label to a [Trait]; ok is false for labels outside the vocabulary.
func ParseTrait(raw string) (Trait, bool) {
	code := traitTable.parse(raw)
	return Trait(code), code != 0
}

// Traits returns the full vocabulary in table order.
func Traits() []Trait {
	all := make([]Trait, len(traitDefs))
	for i := range traitDefs {
		all[i] = Trait(i + 1)
	}
	return all
}

func (t Trait) String() string { return traitTable.label(uint8(t)) }

// Category returns the trait category, or "" for an invalid trait.
func (t Trait) Category() TraitCategory {
	if t == 0 || int(t) > len(traitDefs) {
		return ""
	}
	return traitDefs[t-1].category
}

// # Trait Sets

// TraitSet is a fixed-width bitset over the trait vocabulary; bit n holds Trait n.
type TraitSet uint64

// NewTraitSet builds a set from traits, ignoring invalid ones.
func NewTraitSet(traits ...Trait) TraitSet {
	var set TraitSet
	for _, t := range traits {
		set = set.With(t)
	}
	return set
}

// TraitSetOf parses labels into a set and reports the labels it did not recognise.
func TraitSetOf(labels []string) (set TraitSet, unknown []string) {
	for _, label := range labels {
		trait, ok := ParseTrait(label)
		if !ok {
			unknown = append(unknown, label)
			continue
		}
		set = set.With(trait)
	}
	return set, unknown
}

// ParseTraitSet parses labels into a set. ok is false when any label is
// unknown; callers then ignore the whole trait dimension.
func ParseTraitSet(labels []string) (TraitSet, bool) {
	set, unknown := TraitSetOf(labels)
	if len(unknown) > 0 {
		return 0, false
	}
	return set, true
}

// With returns s plus t. Invalid traits leave s unchanged.
func (s TraitSet) With(t Trait) TraitSet {
	if t == 0 || int(t) > len(traitDefs) {
		return s
	}
	return s | 1<<t
}

func (s TraitSet) Has(t Trait) bool              { return t != 0 && s&(1<<t) != 0 }
func (s TraitSet) Len() int                      { return bits.OnesCount64(uint64(s)) }
func (s TraitSet) IsEmpty() bool                 { return s == 0 }
func (s TraitSet) Union(o TraitSet) TraitSet     { return s | o }
func (s TraitSet) Intersect(o TraitSet) TraitSet { return s & o }

// ContainsAll reports whether every trait of o is also in s.
func (s TraitSet) ContainsAll(o TraitSet) bool { return s&o == o }

// Jaccard returns |s ∩ o| / |s ∪ o|, defined as 1 when both sets are empty.
func (s TraitSet) Jaccard(o TraitSet) float64 {
	union := s.Union(o).Len()
	if union == 0 {
		return 1
	}
	return float64(s.Intersect(o).Len()) / float64(union)
}

// Traits returns the members of s in vocabulary order.
func (s TraitSet) Traits() []Trait {
	members := make([]Trait, 0, s.Len())
	for rest := uint64(s); rest != 0; rest &= rest - 1 {
		members = append(members, Trait(bits.TrailingZeros64(rest)))
	}
	return members
}

// Labels returns the canonical labels of s in vocabulary order.
func (s TraitSet) Labels() []string {
	members := s.Traits()
	labels := make([]string, len(members))
	for i, t := range members {
		labels[i] = t.String()
	}
	return labels
}

// MarshalJSON encodes the set as an array of labels in vocabulary order.
func (s TraitSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Labels())
}

// UnmarshalJSON decodes an array of labels, dropping unknown ones.
func (s *TraitSet) UnmarshalJSON(data []byte) error {
	var labels []string
	if err := json.Unmarshal(data, &labels); err != nil {
		return err
	}
	*s, _ = TraitSetOf(labels)
	return nil
}
