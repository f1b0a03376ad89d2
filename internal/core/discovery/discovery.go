// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package discovery serves catalog browsing on top of the matching engine.

It joins the moving parts of one request: the current catalog snapshot, the
caller's taste profile, filtering, ranking and pagination. Each request pins
exactly one snapshot, so a reload in the middle of a request is never seen.

Core Responsibility:

  - Browse: filter, personalise, rank and page the catalog.
  - Lookup: single wine and "similar wines" retrieval.
  - Facets: per-dimension counts, cached in Redis per snapshot version.
  - Admin: forced snapshot reloads.
*/
package discovery

import (
	"context"

	"github.com/taibuivan/sommelier/internal/core/match"
	"github.com/taibuivan/sommelier/internal/core/vocab"
	"github.com/taibuivan/sommelier/internal/core/wine"
	"github.com/taibuivan/sommelier/internal/users/preference"
)

// # Collaborators

// Catalog hands out immutable snapshots. [*wine.Provider] implements it.
type Catalog interface {
	Current() (*wine.Snapshot, error)
	Reload(context context.Context, trigger string) (*wine.Snapshot, error)
}

// ProfileSource resolves the profile used to personalise a ranking.
// [*preference.Service] implements it.
type ProfileSource interface {
	Lookup(context context.Context, userID string) (*preference.Profile, error)
}

// # Results

// Page is one window of a ranked browse.
type Page struct {
	Wines    []wine.Wine `json:"wines"`
	Total    int         `json:"total"`
	Page     int         `json:"page"`
	Limit    int         `json:"limit"`
	HasMore  bool        `json:"has_more"`
	RankedBy string      `json:"ranked_by"`
}

// FacetCounts counts the candidates of a query per facet value.
type FacetCounts struct {
	Total      int            `json:"total"`
	Categories map[string]int `json:"categories"`
	Prices     map[string]int `json:"prices"`
	Traits     map[string]int `json:"traits"`
}

// CountFacets tallies the wines that pass query.
//
// Values with no candidate are omitted. Wines priced below the cheapest
// bucket count towards no price facet.
func CountFacets(snapshot *wine.Snapshot, query match.Query) FacetCounts {
	candidates := match.Filter(snapshot, query)

	counts := FacetCounts{
		Total:      len(candidates),
		Categories: make(map[string]int),
		Prices:     make(map[string]int),
		Traits:     make(map[string]int),
	}

	for _, candidate := range candidates {
		counts.Categories[candidate.Category.String()]++
		if bucket := vocab.BucketOf(candidate.Price); bucket.IsSet() {
			counts.Prices[bucket.String()]++
		}
		for _, trait := range candidate.Traits.Traits() {
			counts.Traits[trait.String()]++
		}
	}

	return counts
}
