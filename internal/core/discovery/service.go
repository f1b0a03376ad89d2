// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package discovery

import (
	"context"
	"log/slog"
	"time"

	"github.com/taibuivan/sommelier/internal/core/match"
	"github.com/taibuivan/sommelier/internal/core/wine"
	"github.com/taibuivan/sommelier/internal/platform/apperr"
	"github.com/taibuivan/sommelier/internal/platform/metrics"
	"github.com/taibuivan/sommelier/pkg/pagination"
)

// # Service Layer

// Service orchestrates catalog browsing.
type Service struct {
	catalog  Catalog
	profiles ProfileSource
	scorer   *match.Scorer
	facets   *FacetCache
	logger   *slog.Logger
}

// NewService constructs a new [Service]. facets may be nil to disable caching.
func NewService(
	catalog Catalog,
	profiles ProfileSource,
	scorer *match.Scorer,
	facets *FacetCache,
	logger *slog.Logger,
) *Service {
	return &Service{
		catalog:  catalog,
		profiles: profiles,
		scorer:   scorer,
		facets:   facets,
		logger:   logger,
	}
}

/*
Browse returns one page of the filtered catalog.

Description: When userID has a stored profile, its wine types and budget
narrow the query dimensions left open and the candidates are ranked by match
score. Otherwise they are ranked by rating.

Parameters:
  - context: context.Context
  - userID: string (empty for anonymous callers)
  - query: match.Query (Page and Limit already normalised)

Returns:
  - *Page: The requested window with paging metadata
  - error: apperr.Unavailable when the catalog or the profile store is down
*/
func (service *Service) Browse(context context.Context, userID string, query match.Query) (*Page, error) {
	snapshot, err := service.catalog.Current()
	if err != nil {
		return nil, err
	}

	profile, err := service.profiles.Lookup(context, userID)
	if err != nil {
		return nil, err
	}

	start := time.Now()

	rankedBy := match.RankedByRating
	if profile != nil {
		rankedBy = match.RankedByProfile
	}

	candidates := match.Filter(snapshot, query.Personalize(profile))
	ranked := service.scorer.Rank(candidates, profile)
	window, hasMore := pagination.Slice(ranked, query.Page, query.Limit)

	metrics.RecordRanking(rankedBy, time.Since(start))

	return &Page{
		Wines:    match.Wines(window),
		Total:    len(ranked),
		Page:     query.Page,
		Limit:    query.Limit,
		HasMore:  hasMore,
		RankedBy: rankedBy,
	}, nil
}

/*
Get returns a single wine from the current snapshot.

Parameters:
  - context: context.Context
  - id: int64

Returns:
  - *wine.Wine: The catalog record
  - error: apperr.NotFound or apperr.Unavailable
*/
func (service *Service) Get(context context.Context, id int64) (*wine.Wine, error) {
	snapshot, err := service.catalog.Current()
	if err != nil {
		return nil, err
	}

	record, ok := snapshot.Find(id)
	if !ok {
		return nil, apperr.NotFound("Wine")
	}
	return &record, nil
}

/*
Similar returns the k wines closest to the given one.

Parameters:
  - context: context.Context
  - id: int64
  - k: int

Returns:
  - []wine.Wine: Best match first, never containing id
  - error: apperr.NotFound or apperr.Unavailable
*/
func (service *Service) Similar(context context.Context, id int64, k int) ([]wine.Wine, error) {
	snapshot, err := service.catalog.Current()
	if err != nil {
		return nil, err
	}
	return service.scorer.Similar(snapshot, id, k)
}

/*
Facets counts the candidates of a query per facet value.

Description: Counts are computed without personalisation so they stay
shareable across users, and cached per snapshot version.

Parameters:
  - context: context.Context
  - query: match.Query

Returns:
  - *FacetCounts
  - error: apperr.Unavailable when no snapshot is loaded
*/
func (service *Service) Facets(context context.Context, query match.Query) (*FacetCounts, error) {
	snapshot, err := service.catalog.Current()
	if err != nil {
		return nil, err
	}

	if cached, ok := service.facets.Get(context, snapshot.Version(), query); ok {
		return cached, nil
	}

	counts := CountFacets(snapshot, query)
	service.facets.Set(context, snapshot.Version(), query, &counts)
	return &counts, nil
}

/*
Reload forces a catalog reload and reports the resulting snapshot.

Parameters:
  - context: context.Context

Returns:
  - wine.Stats: Summary of the snapshot now serving
  - error: apperr.Unavailable when the load fails; the old snapshot keeps serving
*/
func (service *Service) Reload(context context.Context) (wine.Stats, error) {
	snapshot, err := service.catalog.Reload(context, wine.TriggerManual)
	if err != nil {
		return wine.Stats{}, err
	}
	return snapshot.Stats(), nil
}
