// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package discovery

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/sommelier/internal/core/match"
	"github.com/taibuivan/sommelier/internal/core/vocab"
	"github.com/taibuivan/sommelier/internal/platform/ctxutil"
	"github.com/taibuivan/sommelier/internal/platform/middleware"
	requestutil "github.com/taibuivan/sommelier/internal/platform/request"
	"github.com/taibuivan/sommelier/internal/platform/respond"
	"github.com/taibuivan/sommelier/internal/platform/sec"
	"github.com/taibuivan/sommelier/pkg/pagination"
	"github.com/taibuivan/sommelier/pkg/query"
)

// Similar-wines page size.
const (
	DefaultSimilar = 10
	MaxSimilar     = 50
)

// # Handler Implementation

// Handler implements the HTTP layer for catalog discovery.
type Handler struct {
	service *Service
}

// NewHandler constructs a new discovery [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with the public wine endpoints.
//
// Browsing is public; an authenticated caller with a stored profile gets a
// personalised ranking.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listWines)
	router.Get("/facets", handler.getFacets)
	router.Get("/{id}", handler.getWine)
	router.Get("/{id}/similar", handler.listSimilar)

	return router
}

// RegisterAdminRoutes attaches catalog maintenance endpoints.
func (handler *Handler) RegisterAdminRoutes(router chi.Router) {
	router.With(middleware.RequireRole(sec.RoleAdmin)).Post("/catalog/reload", handler.reloadCatalog)
}

// ParseQuery reads the browse filters from the query string.
//
// Malformed values never fail the request: an unknown enum or a trait list
// with any unknown tag disables that dimension, and min_rating is clamped
// to [0,100].
func ParseQuery(request *http.Request) match.Query {
	values := request.URL.Query()

	// An unknown tag zeroes the whole set
	traits, _ := vocab.ParseTraitSet(query.List(values, "traits"))

	return match.Query{
		Category:  vocab.ParseCategory(query.String(values, "category")),
		Price:     vocab.ParsePriceBucket(query.String(values, "price")),
		Traits:    traits,
		MinRating: min(max(query.Int(values, "min_rating", 0), 0), 100),
		Search:    query.String(values, "search"),
		Params:    pagination.FromRequest(request),
	}
}

// # Wine Endpoints

/*
GET /api/v1/wines.

Description: Filters, ranks and pages the catalog.

Request:
  - category: string (red, white, rose, sparkling, dessert, fortified, orange, all)
  - price: string (budget, mid, premium, luxury, any)
  - traits: []string (wine must carry every listed trait)
  - min_rating: int (0-100)
  - search: string (name, winery or region)
  - page: int
  - limit: int (max 100)

Response:
  - 200: Page
  - 503: ErrUpstreamUnavailable: Catalog or profile store unavailable
*/
func (handler *Handler) listWines(writer http.ResponseWriter, request *http.Request) {
	userID := ctxutil.UserID(request.Context())

	page, err := handler.service.Browse(request.Context(), userID, ParseQuery(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.JSON(writer, http.StatusOK, page)
}

/*
GET /api/v1/wines/{id}.

Response:
  - 200: Wine
  - 400: ErrValidation: Malformed id
  - 404: ErrNotFound: Unknown wine
*/
func (handler *Handler) getWine(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.Int64Param(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	record, err := handler.service.Get(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, record)
}

/*
GET /api/v1/wines/{id}/similar.

Request:
  - k: int (default 10, max 50)

Response:
  - 200: []Wine: Most similar first, never including the wine itself
  - 404: ErrNotFound: Unknown wine
*/
func (handler *Handler) listSimilar(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.Int64Param(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	k := query.Int(request.URL.Query(), "k", DefaultSimilar)
	switch {
	case k < 1:
		k = DefaultSimilar
	case k > MaxSimilar:
		k = MaxSimilar
	}

	similar, err := handler.service.Similar(request.Context(), id, k)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, similar)
}

/*
GET /api/v1/wines/facets.

Description: Counts the wines matching the same filters as the list endpoint,
per category, price bucket and trait.

Response:
  - 200: FacetCounts
*/
func (handler *Handler) getFacets(writer http.ResponseWriter, request *http.Request) {
	counts, err := handler.service.Facets(request.Context(), ParseQuery(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, counts)
}

// # Admin Endpoints

/*
POST /api/v1/catalog/reload.

Description: Reloads the catalog snapshot immediately.

Response:
  - 200: wine.Stats
  - 403: ErrForbidden: Admin role required
  - 503: ErrUpstreamUnavailable: Load failed; the previous snapshot keeps serving
*/
func (handler *Handler) reloadCatalog(writer http.ResponseWriter, request *http.Request) {
	stats, err := handler.service.Reload(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, stats)
}
