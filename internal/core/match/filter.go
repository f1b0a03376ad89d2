// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package match

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/taibuivan/sommelier/internal/core/wine"
)

// # Facet Filter

/*
Filter returns the wines of snapshot that satisfy every active dimension of
query, in ascending id order.

A set category reads the snapshot's category index instead of scanning the
whole catalog. An empty result is valid.

Parameters:
  - snapshot: *wine.Snapshot
  - query: Query

Returns:
  - []wine.Wine: A new slice; never nil
*/
func Filter(snapshot *wine.Snapshot, query Query) []wine.Wine {
	candidates := snapshot.All()
	if query.Category.IsSet() {
		candidates = snapshot.InCategory(query.Category)
	}

	predicate := newPredicate(query)
	matched := make([]wine.Wine, 0, len(candidates))
	for _, record := range candidates {
		if predicate.matches(record) {
			matched = append(matched, record)
		}
	}
	return matched
}

// predicate evaluates one query. It owns a case folder, so it must not be
// shared between goroutines.
type predicate struct {
	query  Query
	folder cases.Caser
	needle string
}

func newPredicate(query Query) *predicate {
	p := &predicate{query: query}
	if search := strings.TrimSpace(query.Search); search != "" {
		p.folder = cases.Fold()
		p.needle = p.folder.String(search)
	}
	return p
}

func (p *predicate) matches(record wine.Wine) bool {
	query := p.query

	if query.Category.IsSet() {
		if record.Category != query.Category {
			return false
		}
	} else if !query.Types.IsEmpty() && !query.Types.Has(record.Category) {
		return false
	}

	if !query.Price.Contains(record.Price) {
		return false
	}

	// AND semantics: the wine must carry every requested trait
	if !record.Traits.ContainsAll(query.Traits) {
		return false
	}

	if record.Rating < query.MinRating {
		return false
	}

	if p.needle != "" {
		return p.contains(record.Name) || p.contains(record.Winery) || p.contains(record.Region)
	}

	return true
}

func (p *predicate) contains(field string) bool {
	return strings.Contains(p.folder.String(field), p.needle)
}
