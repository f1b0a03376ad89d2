// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package match

import (
	"cmp"
	"slices"

	"github.com/taibuivan/sommelier/internal/core/vocab"
	"github.com/taibuivan/sommelier/internal/core/wine"
	"github.com/taibuivan/sommelier/internal/platform/apperr"
	"github.com/taibuivan/sommelier/internal/users/preference"
	"github.com/taibuivan/sommelier/pkg/slice"
)

// # Scorer

// Scorer computes composite match scores with a fixed set of [Weights].
// It is immutable and safe for concurrent use.
type Scorer struct {
	weights Weights
}

// NewScorer creates a scorer. Weights are expected to be validated already.
func NewScorer(weights Weights) *Scorer {
	return &Scorer{weights: weights}
}

// Weights returns the scorer's configuration.
func (s *Scorer) Weights() Weights { return s.weights }

// axes is the taste fingerprint shared by wines and profiles.
type axes struct {
	sweetness vocab.Sweetness
	body      vocab.Body
	acidity   vocab.Acidity
	tannin    vocab.Tannin
	traits    vocab.TraitSet
}

func wineAxes(w wine.Wine) axes {
	return axes{w.Sweetness, w.Body, w.Acidity, w.Tannin, w.Traits}
}

func profileAxes(p *preference.Profile) axes {
	return axes{p.Sweetness, p.Body, p.Acidity, p.Tannin, p.Traits}
}

// tasteSimilarity is 1 minus the mean normalised distance over the axes set
// on both sides, or 1 when no axis is comparable.
func tasteSimilarity(a, b axes) float64 {
	pairs := [4][2]vocab.Ordinal{
		{a.sweetness, b.sweetness},
		{a.body, b.body},
		{a.acidity, b.acidity},
		{a.tannin, b.tannin},
	}

	sum, compared := 0, 0
	for _, pair := range pairs {
		if distance, ok := vocab.Distance(pair[0], pair[1]); ok {
			sum += distance
			compared++
		}
	}
	if compared == 0 {
		return 1
	}
	return 1 - float64(sum)/float64(compared*vocab.MaxDistance)
}

// rank scores a and b and returns the weighted composite with its parts.
func (s *Scorer) rank(a, b axes) (score, taste, trait float64) {
	taste = tasteSimilarity(a, b)
	trait = a.traits.Jaccard(b.traits)
	score = (s.weights.Taste*taste + s.weights.Trait*trait) / (s.weights.Taste + s.weights.Trait)
	return score, taste, trait
}

/*
Score rates how well a wine matches a taste profile.

Wine types and the price bucket are not part of the score; see
[Query.Personalize].

Parameters:
  - w: wine.Wine
  - profile: *preference.Profile (must not be nil)

Returns:
  - float64: Composite score in [0,1]
*/
func (s *Scorer) Score(w wine.Wine, profile *preference.Profile) float64 {
	score, _, _ := s.rank(wineAxes(w), profileAxes(profile))
	return score
}

// # Ranking

// compareRanked orders by score desc, rating desc, then id asc.
func compareRanked(a, b Ranked) int {
	if c := cmp.Compare(b.Score, a.Score); c != 0 {
		return c
	}
	if c := cmp.Compare(b.Wine.Rating, a.Wine.Rating); c != 0 {
		return c
	}
	return cmp.Compare(a.Wine.ID, b.Wine.ID)
}

/*
Rank orders candidates for a profile.

With a nil profile the result is ordered by rating desc then id asc and every
score is zero. Either way the order is total, so pages cut from it never
overlap or skip.

Parameters:
  - candidates: []wine.Wine (typically the output of [Filter])
  - profile: *preference.Profile (nil for anonymous or unprofiled users)

Returns:
  - []Ranked: A new slice in rank order
*/
func (s *Scorer) Rank(candidates []wine.Wine, profile *preference.Profile) []Ranked {
	ranked := make([]Ranked, len(candidates))

	var target axes
	if profile != nil {
		target = profileAxes(profile)
	}

	for i, candidate := range candidates {
		ranked[i].Wine = candidate
		if profile != nil {
			ranked[i].Score, ranked[i].Taste, ranked[i].Trait = s.rank(wineAxes(candidate), target)
		}
	}

	slices.SortFunc(ranked, compareRanked)
	return ranked
}

// # Similarity

/*
Similar returns up to k wines most similar to the target, best first.

Both sides are scored with the profile formulas. A candidate whose category
differs from the target's has its score multiplied by the category penalty.
The target itself is never returned.

Parameters:
  - snapshot: *wine.Snapshot
  - targetID: int64
  - k: int (non-positive yields an empty list)

Returns:
  - []wine.Wine: At most k wines
  - error: apperr.NotFound when the target is not in the snapshot
*/
func (s *Scorer) Similar(snapshot *wine.Snapshot, targetID int64, k int) ([]wine.Wine, error) {
	target, ok := snapshot.Find(targetID)
	if !ok {
		return nil, apperr.NotFound("Wine")
	}
	if k <= 0 {
		return []wine.Wine{}, nil
	}

	reference := wineAxes(target)
	ranked := make([]Ranked, 0, snapshot.Len())
	for _, candidate := range snapshot.All() {
		if candidate.ID == targetID {
			continue
		}
		score, taste, trait := s.rank(wineAxes(candidate), reference)
		if candidate.Category != target.Category {
			score *= s.weights.CategoryPenalty
		}
		ranked = append(ranked, Ranked{Wine: candidate, Score: score, Taste: taste, Trait: trait})
	}

	slices.SortFunc(ranked, compareRanked)

	if len(ranked) > k {
		ranked = ranked[:k]
	}
	return Wines(ranked), nil
}

// Wines strips the scores from a ranking.
func Wines(ranked []Ranked) []wine.Wine {
	return slice.Map(ranked, func(entry Ranked) wine.Wine { return entry.Wine })
}
