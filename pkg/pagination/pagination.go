// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination provides shared types and helpers for API list endpoints.
//
// # Overview
//
// Pages are cut from a fully ranked list rather than from a server-side cursor.
// Because ranking is a pure function of its inputs, page N derived twice from
// the same snapshot and query is the same window, and pages 1..N concatenate
// to the first N×limit elements with no duplicates and no gaps.
package pagination

import (
	"math"
	"net/http"

	"github.com/taibuivan/sommelier/pkg/query"
)

const (
	// DefaultLimit is the number of items per page if not specified.
	DefaultLimit = 20
	// MaxLimit is the upper bound for items per page to prevent system abuse.
	MaxLimit = 100
	// DefaultPage is the starting page (1-indexed).
	DefaultPage = 1
	// MaxPage keeps (page-1)*MaxLimit inside int.
	MaxPage = math.MaxInt / MaxLimit
)

// Params holds the parsed page and limit from a request's query string.
type Params struct {
	Page  int
	Limit int
}

// Offset returns the zero-based index of the first item on [Page].
//
// The result saturates at math.MaxInt instead of wrapping.
func (p Params) Offset() int {
	if p.Page <= 1 || p.Limit <= 0 {
		return 0
	}
	if p.Page-1 > math.MaxInt/p.Limit {
		return math.MaxInt
	}
	return (p.Page - 1) * p.Limit
}

// FromRequest parses "page" and "limit" query parameters from an HTTP request.
//
// # Clamping
//
// Invalid or negative values fall back to [DefaultPage] and [DefaultLimit];
// limits above [MaxLimit] and pages above [MaxPage] are capped.
func FromRequest(r *http.Request) Params {
	values := r.URL.Query()
	page := query.Int(values, "page", DefaultPage)
	limit := query.Int(values, "limit", DefaultLimit)

	switch {
	case page < 1:
		page = DefaultPage
	case page > MaxPage:
		page = MaxPage
	}

	switch {
	case limit < 1:
		limit = DefaultLimit
	case limit > MaxLimit:
		limit = MaxLimit
	}

	return Params{Page: page, Limit: limit}
}

// Slice returns the window of items for the given page and whether any items
// follow it.
//
// A page past the end yields an empty window and false, never an error.
// page < 1 is treated as the first page; size < 1 yields an empty window.
func Slice[T any](items []T, page, size int) ([]T, bool) {
	if size < 1 {
		return []T{}, false
	}
	if page < 1 {
		page = 1
	}

	// Compare page counts before multiplying so huge pages cannot wrap
	if len(items) == 0 || page-1 > (len(items)-1)/size {
		return []T{}, false
	}

	offset := Params{Page: page, Limit: size}.Offset()

	end := min(offset+size, len(items))
	return items[offset:end], offset+size < len(items)
}
