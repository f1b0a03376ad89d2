// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package vocab_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/sommelier/internal/core/vocab"
)

/*
TestParse_Axes checks label canonicalisation and the unset fallback.
*/
func TestParse_Axes(t *testing.T) {
	tests := []struct {
		name string
		got  vocab.Ordinal
		want int
		ok   bool
	}{
		{"dry", vocab.ParseSweetness("dry"), 0, true},
		{"off_dry_hyphenated", vocab.ParseSweetness("Off-Dry"), 1, true},
		{"sweet", vocab.ParseSweetness("SWEET"), 3, true},
		{"sweetness_unknown", vocab.ParseSweetness("bone dry"), 0, false},
		{"body_medium_full", vocab.ParseBody("medium full"), 2, true},
		{"body_empty", vocab.ParseBody(""), 0, false},
		{"acidity_very_high", vocab.ParseAcidity("very-high"), 3, true},
		{"tannin_low", vocab.ParseTannin("low"), 0, true},
		{"tannin_unknown", vocab.ParseTannin("chewy"), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			level, ok := tt.got.Ordinal()
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, level)
		})
	}
}

/*
TestDistance is symmetric and undefined when either side is unset.
*/
func TestDistance(t *testing.T) {
	distance, ok := vocab.Distance(vocab.SweetnessDry, vocab.SweetnessSweet)
	assert.True(t, ok)
	assert.Equal(t, vocab.MaxDistance, distance)

	distance, ok = vocab.Distance(vocab.BodyFull, vocab.BodyMedium)
	assert.True(t, ok)
	assert.Equal(t, 2, distance)

	_, ok = vocab.Distance(vocab.TanninUnset, vocab.TanninHigh)
	assert.False(t, ok)
}

/*
TestCategory_Parse maps "all" and unknown styles to unset.
*/
func TestCategory_Parse(t *testing.T) {
	assert.Equal(t, vocab.CategoryRose, vocab.ParseCategory("Rosé"))
	assert.Equal(t, vocab.CategoryRed, vocab.ParseCategory("red"))
	assert.Equal(t, vocab.CategoryUnset, vocab.ParseCategory("all"))
	assert.Equal(t, vocab.CategoryUnset, vocab.ParseCategory("beer"))
	assert.False(t, vocab.CategoryUnset.IsSet())
	assert.Len(t, vocab.Categories(), 7)
}

/*
TestPriceBucket_Contains verifies the half-open bucket boundaries.
*/
func TestPriceBucket_Contains(t *testing.T) {
	tests := []struct {
		bucket vocab.PriceBucket
		price  float64
		want   bool
	}{
		{vocab.PriceBudget, 10, true},
		{vocab.PriceBudget, 19.99, true},
		{vocab.PriceBudget, 20, false},
		{vocab.PriceMid, 20, true},
		{vocab.PriceMid, 50, false},
		{vocab.PricePremium, 99.99, true},
		{vocab.PriceLuxury, 100, true},
		{vocab.PriceLuxury, 5000, true},
		{vocab.PriceAny, 3, true},
		{vocab.PriceBudget, 9.99, false},
	}

	for _, tt := range tests {
		t.Run(tt.bucket.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.bucket.Contains(tt.price), "price %v", tt.price)
		})
	}

	assert.Equal(t, vocab.PriceMid, vocab.BucketOf(20))
	assert.Equal(t, vocab.PriceAny, vocab.BucketOf(5))
	assert.Equal(t, vocab.PriceAny, vocab.ParsePriceBucket("any"))
}

/*
TestTraitSet_ParseIsAllOrNothing ignores the whole set when one tag is unknown.
*/
func TestTraitSet_ParseIsAllOrNothing(t *testing.T) {
	set, ok := vocab.ParseTraitSet([]string{"Fruity", "oak"})
	require.True(t, ok)
	assert.Equal(t, 2, set.Len())
	assert.Equal(t, []string{"fruity", "oak"}, set.Labels())

	set, ok = vocab.ParseTraitSet([]string{"fruity", "unicorn"})
	assert.False(t, ok)
	assert.True(t, set.IsEmpty())

	lenient, unknown := vocab.TraitSetOf([]string{"fruity", "unicorn"})
	assert.Equal(t, 1, lenient.Len())
	assert.Equal(t, []string{"unicorn"}, unknown)
}

/*
TestTraitSet_Jaccard covers the empty-set convention and partial overlap.
*/
func TestTraitSet_Jaccard(t *testing.T) {
	fruity, _ := vocab.ParseTrait("fruity")
	oak, _ := vocab.ParseTrait("oak")
	spicy, _ := vocab.ParseTrait("spicy")
	mineral, _ := vocab.ParseTrait("mineral")

	assert.Equal(t, 1.0, vocab.TraitSet(0).Jaccard(0))
	assert.Equal(t, 0.0, vocab.NewTraitSet(fruity).Jaccard(0))

	wine := vocab.NewTraitSet(fruity, oak, spicy)
	profile := vocab.NewTraitSet(fruity, oak, mineral)
	assert.InDelta(t, 0.5, wine.Jaccard(profile), 1e-12)

	assert.True(t, wine.ContainsAll(vocab.NewTraitSet(fruity, spicy)))
	assert.False(t, wine.ContainsAll(profile))
}

/*
TestTrait_Vocabulary checks every tag belongs to exactly one category and fits the bitset.
*/
func TestTrait_Vocabulary(t *testing.T) {
	all := vocab.Traits()
	require.Less(t, len(all), 64)

	seen := make(map[string]bool)
	for _, trait := range all {
		assert.NotEmpty(t, trait.Category(), trait.String())
		assert.False(t, seen[trait.String()], "duplicate label %s", trait.String())
		seen[trait.String()] = true
	}
}

/*
TestJSON_RoundTrip keeps labels on the wire and normalises unknown values.
*/
func TestJSON_RoundTrip(t *testing.T) {
	type payload struct {
		Sweetness vocab.Sweetness   `json:"sweetness"`
		Category  vocab.Category    `json:"category"`
		Price     vocab.PriceBucket `json:"price"`
		Traits    vocab.TraitSet    `json:"traits"`
	}

	var decoded payload
	err := json.Unmarshal([]byte(`{"sweetness":"Semi Sweet","category":"sake","price":"premium","traits":["oak","glitter","citrus"]}`), &decoded)
	require.NoError(t, err)

	assert.Equal(t, vocab.SweetnessSemiSweet, decoded.Sweetness)
	assert.Equal(t, vocab.CategoryUnset, decoded.Category)
	assert.Equal(t, vocab.PricePremium, decoded.Price)
	assert.Equal(t, []string{"citrus", "oak"}, decoded.Traits.Labels())

	encoded, err := json.Marshal(decoded)
	require.NoError(t, err)
	assert.JSONEq(t, `{"sweetness":"semi_sweet","category":"","price":"premium","traits":["citrus","oak"]}`, string(encoded))
}

/*
TestCategorySet_Parse treats "all" and unknown styles as an unusable list.
*/
func TestCategorySet_Parse(t *testing.T) {
	set, ok := vocab.ParseCategorySet([]string{"Red", "sparkling"})
	require.True(t, ok)
	assert.True(t, set.Has(vocab.CategoryRed))
	assert.False(t, set.Has(vocab.CategoryWhite))
	assert.Equal(t, []string{"red", "sparkling"}, set.Labels())

	_, ok = vocab.ParseCategorySet([]string{"red", "all"})
	assert.False(t, ok)

	empty, ok := vocab.ParseCategorySet(nil)
	assert.True(t, ok)
	assert.True(t, empty.IsEmpty())
}
