// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package vocab

import (
	"encoding/json"
	"math"
	"math/bits"
)

// # Wine Category

// Category is the style of a wine. The unset value also stands for "all"
// in filter queries.
type Category uint8

const (
	CategoryUnset Category = iota
	CategoryRed
	CategoryWhite
	CategoryRose
	CategorySparkling
	CategoryDessert
	CategoryFortified
	CategoryOrange
)

var categoryTable = newTable("red", "white", "rose", "sparkling", "dessert", "fortified", "orange")

// ParseCategory maps a label to a [Category]. "all" and unknown labels are unset.
func ParseCategory(raw string) Category { return Category(categoryTable.parse(raw)) }

// Categories returns every set category in display order.
func Categories() []Category {
	return []Category{
		CategoryRed, CategoryWhite, CategoryRose, CategorySparkling,
		CategoryDessert, CategoryFortified, CategoryOrange,
	}
}

func (c Category) IsSet() bool    { return c != CategoryUnset && c <= CategoryOrange }
func (c Category) String() string { return categoryTable.label(uint8(c)) }

func (c Category) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

func (c *Category) UnmarshalText(text []byte) error {
	*c = ParseCategory(string(text))
	return nil
}

// CategorySet is a bitset of categories; bit n holds Category n.
type CategorySet uint16

// ParseCategorySet parses labels into a set. ok is false when any label is
// not a concrete category, including "all".
func ParseCategorySet(labels []string) (CategorySet, bool) {
	var set CategorySet
	for _, label := range labels {
		category := ParseCategory(label)
		if !category.IsSet() {
			return 0, false
		}
		set = set.With(category)
	}
	return set, true
}

// NewCategorySet builds a set from categories, ignoring unset ones.
func NewCategorySet(categories ...Category) CategorySet {
	var set CategorySet
	for _, category := range categories {
		set = set.With(category)
	}
	return set
}

// With returns s plus c. Unset categories leave s unchanged.
func (s CategorySet) With(c Category) CategorySet {
	if !c.IsSet() {
		return s
	}
	return s | 1<<c
}

func (s CategorySet) Has(c Category) bool { return c.IsSet() && s&(1<<c) != 0 }
func (s CategorySet) Len() int            { return bits.OnesCount16(uint16(s)) }
func (s CategorySet) IsEmpty() bool       { return s == 0 }

// Labels returns the member labels in display order.
func (s CategorySet) Labels() []string {
	labels := make([]string, 0, s.Len())
	for _, category := range Categories() {
		if s.Has(category) {
			labels = append(labels, category.String())
		}
	}
	return labels
}

// MarshalJSON encodes the set as an array of labels.
func (s CategorySet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Labels())
}

// UnmarshalJSON decodes an array of labels, dropping unknown ones.
func (s *CategorySet) UnmarshalJSON(data []byte) error {
	var labels []string
	if err := json.Unmarshal(data, &labels); err != nil {
		return err
	}
	var set CategorySet
	for _, label := range labels {
		set = set.With(ParseCategory(label))
	}
	*s = set
	return nil
}

// # Price Buckets

// PriceBucket is a half-open price range. The unset value is "any".
type PriceBucket uint8

const (
	PriceAny PriceBucket = iota
	PriceBudget
	PriceMid
	PricePremium
	PriceLuxury
)

var priceTable = newTable("budget", "mid", "premium", "luxury")

// bucketBounds holds [lower, upper) per bucket, indexed by code.
var bucketBounds = [...][2]float64{
	PriceAny:     {math.Inf(-1), math.Inf(1)},
	PriceBudget:  {10, 20},
	PriceMid:     {20, 50},
	PricePremium: {50, 100},
	PriceLuxury:  {100, math.Inf(1)},
}

// ParsePriceBucket maps a label to a [PriceBucket]. "any" and unknown labels are unset.
func ParsePriceBucket(raw string) PriceBucket { return PriceBucket(priceTable.parse(raw)) }

// PriceBuckets returns every concrete bucket in ascending price order.
func PriceBuckets() []PriceBucket {
	return []PriceBucket{PriceBudget, PriceMid, PricePremium, PriceLuxury}
}

// BucketOf returns the concrete bucket containing price, or [PriceAny] when
// the price falls below the cheapest bucket.
func BucketOf(price float64) PriceBucket {
	for _, bucket := range PriceBuckets() {
		if bucket.Contains(price) {
			return bucket
		}
	}
	return PriceAny
}

// Contains reports whether price lies inside the bucket. [PriceAny] contains every price.
func (b PriceBucket) Contains(price float64) bool {
	if !b.IsSet() {
		return true
	}
	bounds := bucketBounds[b]
	return price >= bounds[0] && price < bounds[1]
}

func (b PriceBucket) IsSet() bool    { return b != PriceAny && b <= PriceLuxury }
func (b PriceBucket) String() string { return priceTable.label(uint8(b)) }

func (b PriceBucket) MarshalText() ([]byte, error) {
	if !b.IsSet() {
		return []byte("any"), nil
	}
	return []byte(b.String()), nil
}

func (b *PriceBucket) UnmarshalText(text []byte) error {
	*b = ParsePriceBucket(string(text))
	return nil
}
