// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package vocab defines the closed vocabularies shared by the catalog, the taste
profile and the matching engine.

Every value type here is a small integer with an explicit unset zero value:

  - Ordinal axes: Sweetness, Body, Acidity, Tannin (four levels each).
  - Category: the wine style (red, white, rose, ...).
  - PriceBucket: half-open price ranges.
  - Trait / TraitSet: descriptive tags partitioned into trait categories.

Parsing never fails. Labels are canonicalised with [slug.Token] and anything
outside the table maps to the unset value, so a malformed client value
silently drops that dimension instead of producing an error.
*/
package vocab

import "github.com/taibuivan/sommelier/pkg/slug"

// MaxDistance is the largest ordinal distance between two levels of one axis.
const MaxDistance = 3

// # Ordinal Axes

// Ordinal is implemented by the four taste axes.
type Ordinal interface {
	// Ordinal returns the zero-based level and false when the value is unset.
	Ordinal() (int, bool)
}

// Distance returns |a−b| on their shared ordinal scale. ok is false when
// either side is unset, in which case the axis is not comparable.
func Distance(a, b Ordinal) (distance int, ok bool) {
	left, okLeft := a.Ordinal()
	right, okRight := b.Ordinal()
	if !okLeft || !okRight {
		return 0, false
	}
	if left > right {
		return left - right, true
	}
	return right - left, true
}

// # Label Tables

// table maps canonical labels to 1-based codes; code 0 is always unset.
type table struct {
	labels []string
	codes  map[string]uint8
}

func newTable(labels ...string) table {
	codes := make(map[string]uint8, len(labels))
	for i, label := range labels {
		codes[label] = uint8(i + 1)
	}
	return table{labels: labels, codes: codes}
}

// parse returns the code of raw, or 0 when raw is not in the table.
func (t table) parse(raw string) uint8 {
	return t.codes[slug.Token(raw)]
}

// label returns the canonical label of code, or "" for unset and out-of-range codes.
func (t table) label(code uint8) string {
	if code == 0 || int(code) > len(t.labels) {
		return ""
	}
	return t.labels[code-1]
}

// ordinal converts a 1-based code to a 0-based level.
func (t table) ordinal(code uint8) (int, bool) {
	if code == 0 || int(code) > len(t.labels) {
		return 0, false
	}
	return int(code) - 1, true
}
