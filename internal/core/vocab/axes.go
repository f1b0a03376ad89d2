// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package vocab

// # Sweetness

// Sweetness is the residual-sugar axis: dry < off_dry < semi_sweet < sweet.
type Sweetness uint8

const (
	SweetnessUnset Sweetness = iota
	SweetnessDry
	SweetnessOffDry
	SweetnessSemiSweet
	SweetnessSweet
)

var sweetnessTable = newTable("dry", "off_dry", "semi_sweet", "sweet")

// ParseSweetness maps a label to a [Sweetness]; unknown labels are unset.
func ParseSweetness(raw string) Sweetness { return Sweetness(sweetnessTable.parse(raw)) }

func (s Sweetness) Ordinal() (int, bool) { return sweetnessTable.ordinal(uint8(s)) }
func (s Sweetness) IsSet() bool          { return s != SweetnessUnset && s <= SweetnessSweet }
func (s Sweetness) String() string       { return sweetnessTable.label(uint8(s)) }

func (s Sweetness) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *Sweetness) UnmarshalText(text []byte) error {
	*s = ParseSweetness(string(text))
	return nil
}

// # Body

// Body is the weight of the wine on the palate: light < medium < medium_full < full.
type Body uint8

const (
	BodyUnset Body = iota
	BodyLight
	BodyMedium
	BodyMediumFull
	BodyFull
)

var bodyTable = newTable("light", "medium", "medium_full", "full")

// ParseBody maps a label to a [Body]; unknown labels are unset.
func ParseBody(raw string) Body { return Body(bodyTable.parse(raw)) }

func (b Body) Ordinal() (int, bool) { return bodyTable.ordinal(uint8(b)) }
func (b Body) IsSet() bool          { return b != BodyUnset && b <= BodyFull }
func (b Body) String() string       { return bodyTable.label(uint8(b)) }

func (b Body) MarshalText() ([]byte, error) { return []byte(b.String()), nil }

func (b *Body) UnmarshalText(text []byte) error {
	*b = ParseBody(string(text))
	return nil
}

// # Acidity

// Acidity is the perceived freshness axis: low < medium < high < very_high.
type Acidity uint8

const (
	AcidityUnset Acidity = iota
	AcidityLow
	AcidityMedium
	AcidityHigh
	AcidityVeryHigh
)

var acidityTable = newTable("low", "medium", "high", "very_high")

// ParseAcidity maps a label to an [Acidity]; unknown labels are unset.
func ParseAcidity(raw string) Acidity { return Acidity(acidityTable.parse(raw)) }

func (a Acidity) Ordinal() (int, bool) { return acidityTable.ordinal(uint8(a)) }
func (a Acidity) IsSet() bool          { return a != AcidityUnset && a <= AcidityVeryHigh }
func (a Acidity) String() string       { return acidityTable.label(uint8(a)) }

func (a Acidity) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

func (a *Acidity) UnmarshalText(text []byte) error {
	*a = ParseAcidity(string(text))
	return nil
}

// # Tannin

// Tannin is the grip axis: low < medium < high < very_high.
type Tannin uint8

const (
	TanninUnset Tannin = iota
	TanninLow
	TanninMedium
	TanninHigh
	TanninVeryHigh
)

var tanninTable = newTable("low", "medium", "high", "very_high")

// ParseTannin maps a label to a [Tannin]; unknown labels are unset.
func ParseTannin(raw string) Tannin { return Tannin(tanninTable.parse(raw)) }

func (t Tannin) Ordinal() (int, bool) { return tanninTable.ordinal(uint8(t)) }
func (t Tannin) IsSet() bool          { return t != TanninUnset && t <= TanninVeryHigh }
func (t Tannin) String() string       { return tanninTable.label(uint8(t)) }

func (t Tannin) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

func (t *Tannin) UnmarshalText(text []byte) error {
	*t = ParseTannin(string(text))
	return nil
}
