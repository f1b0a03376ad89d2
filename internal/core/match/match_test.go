// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package match_test

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/sommelier/internal/core/match"
	"github.com/taibuivan/sommelier/internal/core/vocab"
	"github.com/taibuivan/sommelier/internal/core/wine"
	"github.com/taibuivan/sommelier/internal/platform/apperr"
	"github.com/taibuivan/sommelier/internal/users/preference"
)

func traits(t *testing.T, labels ...string) vocab.TraitSet {
	t.Helper()
	set, ok := vocab.ParseTraitSet(labels)
	require.True(t, ok, "unknown trait in %v", labels)
	return set
}

// catalog builds a deterministic, varied catalog of n wines.
func catalog(n int) []wine.Wine {
	wineries := []string{"Château Margaux", "Dr. Loosen", "Bodega Ñandú", "Ridge"}
	regions := []string{"Bordeaux", "Mosel", "Mendoza", "Sonoma", "Rioja"}
	categories := vocab.Categories()
	allTraits := vocab.Traits()

	records := make([]wine.Wine, 0, n)
	for i := 1; i <= n; i++ {
		records = append(records, wine.Wine{
			ID:        int64(i),
			Name:      fmt.Sprintf("Cuvée %d", i),
			Winery:    wineries[i%len(wineries)],
			Region:    regions[i%len(regions)],
			Category:  categories[i%len(categories)],
			Price:     float64(5 + (i*7)%140),
			Rating:    70 + (i*13)%31,
			Sweetness: vocab.Sweetness(i % 5),
			Body:      vocab.Body((i + 1) % 5),
			Acidity:   vocab.Acidity((i + 2) % 5),
			Tannin:    vocab.Tannin((i + 3) % 5),
			Traits:    vocab.NewTraitSet(allTraits[i%len(allTraits)], allTraits[(i*3)%len(allTraits)]),
		})
	}
	return records
}

func snapshotOf(records []wine.Wine) *wine.Snapshot {
	return wine.NewSnapshot(records, 1, time.Unix(0, 0))
}

func ids(wines []wine.Wine) []int64 {
	out := make([]int64, len(wines))
	for i, w := range wines {
		out[i] = w.ID
	}
	return out
}

/*
TestScorer_WorkedExample reproduces the reference calculation:
taste 0.8333, traits 1/3, composite 0.6333.
*/
func TestScorer_WorkedExample(t *testing.T) {
	scorer := match.NewScorer(match.DefaultWeights())

	wineA := wine.Wine{
		ID:        1,
		Sweetness: vocab.SweetnessDry,
		Body:      vocab.BodyMedium,
		Acidity:   vocab.AcidityHigh,
		Tannin:    vocab.TanninMedium,
		Traits:    traits(t, "citrus", "mineral"),
	}
	profile := &preference.Profile{
		Sweetness: vocab.SweetnessDry,
		Body:      vocab.BodyMedium,
		Acidity:   vocab.AcidityMedium,
		Tannin:    vocab.TanninLow,
		Traits:    traits(t, "citrus", "earthy"),
	}

	assert.InDelta(t, 0.6333, scorer.Score(wineA, profile), 1e-4)

	ranked := scorer.Rank([]wine.Wine{wineA}, profile)
	require.Len(t, ranked, 1)
	assert.InDelta(t, 0.8333, ranked[0].Taste, 1e-4)
	assert.InDelta(t, 0.3333, ranked[0].Trait, 1e-4)
}

/*
TestScorer_NeutralComponents treats missing data as neutral rather than as a
mismatch.
*/
func TestScorer_NeutralComponents(t *testing.T) {
	scorer := match.NewScorer(match.DefaultWeights())

	tests := []struct {
		name    string
		wine    wine.Wine
		profile preference.Profile
		want    float64
	}{
		{
			name:    "nothing comparable",
			wine:    wine.Wine{Sweetness: vocab.SweetnessSweet},
			profile: preference.Profile{Body: vocab.BodyLight},
			want:    1,
		},
		{
			name:    "opposite on every axis, no traits",
			wine:    wine.Wine{Sweetness: vocab.SweetnessSweet, Body: vocab.BodyFull, Acidity: vocab.AcidityVeryHigh, Tannin: vocab.TanninVeryHigh},
			profile: preference.Profile{Sweetness: vocab.SweetnessDry, Body: vocab.BodyLight, Acidity: vocab.AcidityLow, Tannin: vocab.TanninLow},
			want:    0.4,
		},
		{
			name:    "disjoint traits only",
			wine:    wine.Wine{Traits: traits(t, "bold")},
			profile: preference.Profile{Traits: traits(t, "elegant")},
			want:    0.6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, scorer.Score(tt.wine, &tt.profile), 1e-9)
		})
	}
}

/*
TestScorer_Determinism requires bit-identical scores across repeated calls.
*/
func TestScorer_Determinism(t *testing.T) {
	scorer := match.NewScorer(match.DefaultWeights())
	profile := &preference.Profile{
		Sweetness: vocab.SweetnessOffDry,
		Tannin:    vocab.TanninHigh,
		Traits:    traits(t, "berry", "oak", "velvety"),
	}

	for _, record := range catalog(40) {
		first := scorer.Score(record, profile)
		for range 5 {
			assert.Equal(t, first, scorer.Score(record, profile))
		}
		assert.GreaterOrEqual(t, first, 0.0)
		assert.LessOrEqual(t, first, 1.0)
	}
}

/*
TestScorer_TraitMonotonicity adds traits shared with the profile one at a time
and requires the score never to drop.
*/
func TestScorer_TraitMonotonicity(t *testing.T) {
	scorer := match.NewScorer(match.DefaultWeights())
	profile := &preference.Profile{
		Body:   vocab.BodyMedium,
		Traits: traits(t, "citrus", "mineral", "crisp", "fresh"),
	}

	for _, record := range catalog(30) {
		previous := scorer.Score(record, profile)
		for _, shared := range profile.Traits.Traits() {
			record.Traits = record.Traits.With(shared)
			current := scorer.Score(record, profile)
			assert.GreaterOrEqual(t, current, previous, "wine %d after adding %s", record.ID, shared)
			previous = current
		}
	}
}

/*
TestRank_TotalOrder checks both orderings and their tie-breaks.
*/
func TestRank_TotalOrder(t *testing.T) {
	scorer := match.NewScorer(match.DefaultWeights())
	candidates := []wine.Wine{
		{ID: 4, Rating: 90, Body: vocab.BodyFull},
		{ID: 2, Rating: 95, Body: vocab.BodyFull},
		{ID: 3, Rating: 95, Body: vocab.BodyFull},
		{ID: 1, Rating: 99, Body: vocab.BodyLight},
	}

	t.Run("by rating without profile", func(t *testing.T) {
		ranked := scorer.Rank(candidates, nil)
		assert.Equal(t, []int64{1, 2, 3, 4}, ids(match.Wines(ranked)))
	})

	t.Run("by score then rating then id", func(t *testing.T) {
		ranked := scorer.Rank(candidates, &preference.Profile{Body: vocab.BodyFull})
		assert.Equal(t, []int64{2, 3, 4, 1}, ids(match.Wines(ranked)))
		assert.Equal(t, 1.0, ranked[0].Score)
	})
}

/*
TestFilter_Correctness compares Filter against an independent check of every
predicate over a generated catalog.
*/
func TestFilter_Correctness(t *testing.T) {
	records := catalog(120)
	snapshot := snapshotOf(records)

	queries := map[string]match.Query{
		"empty":        {},
		"category":     {Category: vocab.CategoryWhite},
		"price":        {Price: vocab.PriceMid},
		"traits":       {Traits: traits(t, "fruity")},
		"two traits":   {Traits: traits(t, "fruity", "spicy")},
		"min rating":   {MinRating: 95},
		"search":       {Search: "château"},
		"search upper": {Search: "  MOSEL "},
		"types":        {Types: vocab.NewCategorySet(vocab.CategoryRed, vocab.CategoryOrange)},
		"combined":     {Category: vocab.CategoryRed, Price: vocab.PriceBudget, MinRating: 80, Search: "o"},
	}

	independent := func(q match.Query, w wine.Wine) bool {
		if q.Category.IsSet() && w.Category != q.Category {
			return false
		}
		if !q.Category.IsSet() && !q.Types.IsEmpty() && !q.Types.Has(w.Category) {
			return false
		}
		if q.Price.IsSet() && vocab.BucketOf(w.Price) != q.Price {
			return false
		}
		for _, trait := range q.Traits.Traits() {
			if !w.Traits.Has(trait) {
				return false
			}
		}
		if w.Rating < q.MinRating {
			return false
		}
		if needle := strings.ToLower(strings.TrimSpace(q.Search)); needle != "" {
			haystacks := []string{w.Name, w.Winery, w.Region}
			for _, haystack := range haystacks {
				if strings.Contains(strings.ToLower(haystack), needle) {
					return true
				}
			}
			return false
		}
		return true
	}

	for name, query := range queries {
		t.Run(name, func(t *testing.T) {
			var want []int64
			for _, record := range snapshot.All() {
				if independent(query, record) {
					want = append(want, record.ID)
				}
			}

			got := match.Filter(snapshot, query)
			assert.ElementsMatch(t, want, ids(got))
		})
	}
}

/*
TestFilter_EmptyQueryReturnsCatalogByRating covers the unfiltered,
unpersonalised browse.
*/
func TestFilter_EmptyQueryReturnsCatalogByRating(t *testing.T) {
	records := catalog(25)
	snapshot := snapshotOf(records)
	scorer := match.NewScorer(match.DefaultWeights())

	query := match.Query{}
	require.True(t, query.IsEmpty())

	candidates := match.Filter(snapshot, query)
	require.Len(t, candidates, len(records))

	ranked := match.Wines(scorer.Rank(candidates, nil))
	for i := 1; i < len(ranked); i++ {
		previous, current := ranked[i-1], ranked[i]
		ordered := previous.Rating > current.Rating ||
			(previous.Rating == current.Rating && previous.ID < current.ID)
		assert.True(t, ordered, "position %d: %d(%d) before %d(%d)", i, previous.ID, previous.Rating, current.ID, current.Rating)
	}
}

/*
TestFilter_NoMatchIsEmpty returns an empty, non-nil slice.
*/
func TestFilter_NoMatchIsEmpty(t *testing.T) {
	snapshot := snapshotOf(catalog(10))

	got := match.Filter(snapshot, match.Query{Search: "no such producer"})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

/*
TestQuery_Personalize fills only the dimensions the caller left open.
*/
func TestQuery_Personalize(t *testing.T) {
	profile := &preference.Profile{
		PriceBucket: vocab.PriceLuxury,
		WineTypes:   vocab.NewCategorySet(vocab.CategorySparkling),
	}

	open := match.Query{}.Personalize(profile)
	assert.Equal(t, vocab.PriceLuxury, open.Price)
	assert.True(t, open.Types.Has(vocab.CategorySparkling))

	explicit := match.Query{Category: vocab.CategoryRed, Price: vocab.PriceBudget}.Personalize(profile)
	assert.Equal(t, vocab.PriceBudget, explicit.Price)
	assert.True(t, explicit.Types.IsEmpty())

	assert.Equal(t, match.Query{Search: "x"}, match.Query{Search: "x"}.Personalize(nil))
}

/*
TestScorer_Similar checks exclusion of the target, the size bound, the
category penalty and the not-found path.
*/
func TestScorer_Similar(t *testing.T) {
	scorer := match.NewScorer(match.DefaultWeights())
	bold := traits(t, "bold", "structured")

	snapshot := snapshotOf([]wine.Wine{
		{ID: 1, Name: "Target", Category: vocab.CategoryRed, Rating: 90, Body: vocab.BodyFull, Tannin: vocab.TanninHigh, Traits: bold},
		{ID: 2, Name: "Twin in white", Category: vocab.CategoryWhite, Rating: 90, Body: vocab.BodyFull, Tannin: vocab.TanninHigh, Traits: bold},
		{ID: 3, Name: "Near red", Category: vocab.CategoryRed, Rating: 85, Body: vocab.BodyMediumFull, Tannin: vocab.TanninHigh, Traits: bold},
		{ID: 4, Name: "Far red", Category: vocab.CategoryRed, Rating: 99, Body: vocab.BodyLight, Tannin: vocab.TanninLow},
		{ID: 5, Name: "Twin red", Category: vocab.CategoryRed, Rating: 80, Body: vocab.BodyFull, Tannin: vocab.TanninHigh, Traits: bold},
	})

	similar, err := scorer.Similar(snapshot, 1, 10)
	require.NoError(t, err)
	assert.NotContains(t, ids(similar), int64(1))

	// The white twin scores 1 × 0.5 and falls below both close reds
	assert.Equal(t, []int64{5, 3, 2, 4}, ids(similar))

	top, err := scorer.Similar(snapshot, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, []int64{5, 3}, ids(top))

	again, err := scorer.Similar(snapshot, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, ids(similar), ids(again))

	none, err := scorer.Similar(snapshot, 1, 0)
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = scorer.Similar(snapshot, 404, 5)
	assert.True(t, apperr.IsNotFound(err))
}

/*
TestWeights_Validate rejects weights that cannot yield a bounded score.
*/
func TestWeights_Validate(t *testing.T) {
	tests := []struct {
		name    string
		weights match.Weights
		wantErr bool
	}{
		{"defaults", match.DefaultWeights(), false},
		{"taste only", match.Weights{Taste: 1, CategoryPenalty: 1}, false},
		{"negative", match.Weights{Taste: -0.1, Trait: 1}, true},
		{"both zero", match.Weights{CategoryPenalty: 0.5}, true},
		{"penalty above one", match.Weights{Taste: 1, Trait: 1, CategoryPenalty: 1.5}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.weights.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
