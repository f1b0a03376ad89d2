// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package match is the deterministic matching core: facet filtering, profile
scoring, ranking and wine-to-wine similarity.

Every function is a pure computation over one immutable [wine.Snapshot]. No
I/O, no shared mutable state, no randomness: the same snapshot and inputs
always produce the same ordering, which is what lets pages be re-derived
instead of held in server-side cursors.

Pipeline:

	Query ─► Filter ─► candidates ─► Rank (Scorer) ─► pagination.Slice
	target id ─────────────────────► Similar (Scorer)
*/
package match

import (
	"errors"
	"fmt"
	"math"

	"github.com/taibuivan/sommelier/internal/core/vocab"
	"github.com/taibuivan/sommelier/internal/core/wine"
	"github.com/taibuivan/sommelier/internal/users/preference"
	"github.com/taibuivan/sommelier/pkg/pagination"
)

// # Weights

// Weights are the tunable constants of the composite score.
type Weights struct {
	// Taste weighs the ordinal-axis similarity.
	Taste float64

	// Trait weighs the Jaccard overlap of trait sets.
	Trait float64

	// CategoryPenalty multiplies a similarity score when the candidate's
	// category differs from the target's.
	CategoryPenalty float64
}

// DefaultWeights returns the 0.6 / 0.4 split with a halving category penalty.
func DefaultWeights() Weights {
	return Weights{Taste: 0.6, Trait: 0.4, CategoryPenalty: 0.5}
}

// Validate rejects weights that cannot produce a score in [0,1].
func (w Weights) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"taste", w.Taste},
		{"trait", w.Trait},
		{"category penalty", w.CategoryPenalty},
	}
	for _, field := range fields {
		if math.IsNaN(field.value) || math.IsInf(field.value, 0) || field.value < 0 {
			return fmt.Errorf("match: %s weight must be a finite non-negative number", field.name)
		}
	}
	if w.Taste+w.Trait == 0 {
		return errors.New("match: taste and trait weights cannot both be zero")
	}
	if w.CategoryPenalty > 1 {
		return errors.New("match: category penalty must not exceed 1")
	}
	return nil
}

// # Query

// Query holds the active filter dimensions of one browse request.
//
// The zero value filters nothing. Unset enum fields, an empty trait set and a
// zero MinRating each disable their dimension.
type Query struct {
	Category  vocab.Category
	Price     vocab.PriceBucket
	Traits    vocab.TraitSet
	MinRating int
	Search    string

	// Types restricts categories to a set. It is only filled from a profile's
	// wine types and is ignored when Category is set.
	Types vocab.CategorySet

	pagination.Params
}

// IsEmpty reports whether the query filters nothing.
func (q Query) IsEmpty() bool {
	return !q.Category.IsSet() && !q.Price.IsSet() && q.Traits.IsEmpty() &&
		q.MinRating <= 0 && q.Search == "" && q.Types.IsEmpty()
}

/*
Personalize applies a profile's hard preferences to the dimensions the caller
left unset.

Wine types and the price bucket never enter the numeric score; they narrow the
candidate set instead. Explicit query values always win over the profile.

Parameters:
  - profile: *preference.Profile (nil leaves the query unchanged)

Returns:
  - Query: The narrowed query
*/
func (q Query) Personalize(profile *preference.Profile) Query {
	if profile == nil {
		return q
	}
	if !q.Category.IsSet() && q.Types.IsEmpty() {
		q.Types = profile.WineTypes
	}
	if !q.Price.IsSet() {
		q.Price = profile.PriceBucket
	}
	return q
}

// # Results

// Ranking sources reported to clients.
const (
	RankedByProfile = "profile"
	RankedByRating  = "rating"
)

// Ranked is one scored wine. It exists only for the duration of a request.
type Ranked struct {
	Wine  wine.Wine `json:"wine"`
	Score float64   `json:"score"`

	// Components of Score, kept so a ranking can be explained.
	Taste float64 `json:"taste"`
	Trait float64 `json:"trait"`
}
