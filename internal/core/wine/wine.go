// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package wine defines the catalog record and the immutable snapshot the
matching engine reads from.

Core Responsibility:

  - Record: the [Wine] entity and its validation rules.
  - Snapshot: a read-only, id-ordered view of the catalog with a category index.
  - Provider: loads snapshots from PostgreSQL and swaps them atomically when
    the catalog write path announces a change.

The catalog is written elsewhere. This package only ever reads it.
*/
package wine

import (
	"fmt"

	"github.com/taibuivan/sommelier/internal/core/vocab"
	"github.com/taibuivan/sommelier/internal/platform/validate"
)

// Vintage bounds accepted from the catalog.
const (
	minVintage = 1800
	maxVintage = 2100
)

// Wine is a single catalog record.
type Wine struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Winery       string          `json:"winery"`
	Category     vocab.Category  `json:"category"`
	Price        float64         `json:"price"`
	Rating       int             `json:"rating"` // 0–100
	Region       string          `json:"region"`
	Vintage      *int16          `json:"vintage,omitempty"` // nil for non-vintage wines
	Sweetness    vocab.Sweetness `json:"sweetness"`
	Body         vocab.Body      `json:"body"`
	Acidity      vocab.Acidity   `json:"acidity"`
	Tannin       vocab.Tannin    `json:"tannin"`
	Traits       vocab.TraitSet  `json:"traits"`
	FoodPairings []string        `json:"food_pairings"` // descriptive only, never scored

	// Unrecognized lists stored labels that fell outside the vocabulary.
	// Any entry makes the record invalid.
	Unrecognized []UnknownLabel `json:"-"`
}

// UnknownLabel is a stored enum or trait value the vocabulary does not know.
type UnknownLabel struct {
	Field string
	Label string
}

// Validate checks the record invariants. Invalid records are excluded from
// snapshots rather than failing the whole load.
func (w Wine) Validate() error {
	validator := &validate.Validator{}

	validator.
		Positive("id", w.ID).
		Required("name", w.Name).
		MaxLen("name", w.Name, 200).
		Custom("category", !w.Category.IsSet(), "Must be a known wine category").
		NonNegative("price", w.Price).
		Range("rating", w.Rating, 0, 100)

	if w.Vintage != nil {
		validator.Range("vintage", int(*w.Vintage), minVintage, maxVintage)
	}

	for _, unknown := range w.Unrecognized {
		validator.Custom(unknown.Field, true, fmt.Sprintf("Unknown value %q", unknown.Label))
	}

	return validator.Err()
}
