// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package preference

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/sommelier/internal/platform/request"
	"github.com/taibuivan/sommelier/internal/platform/respond"
	"github.com/taibuivan/sommelier/internal/platform/validate"
	"github.com/taibuivan/sommelier/pkg/slug"
)

// Handler implements the HTTP layer for taste profiles.
//
// Both endpoints require an authenticated user; mount them behind
// middleware.RequireAuth.
type Handler struct {
	service *Service
}

// NewHandler constructs a new preference [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes attaches the preference endpoints to the router.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/me/preferences", handler.getPreferences)
	router.Post("/me/preferences", handler.updatePreferences)
}

/*
GET /api/v1/me/preferences.

Description: Retrieves the caller's taste profile. Users who never answered
the questionnaire get an empty profile.

Response:
  - 200: Profile
  - 401: ErrUnauthorized: Authentication required
  - 503: ErrUpstreamUnavailable: Profile store unreachable
*/
func (handler *Handler) getPreferences(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	profile, err := handler.service.Get(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, profile)
}

/*
POST /api/v1/me/preferences.

Description: Merges one questionnaire step into the caller's profile. Fields
absent from the body keep their stored value.

Request Body:
  - Patch: sweetness, body, acidity, tannin, price_bucket, traits, wine_types, step

Response:
  - 200: Profile: The merged profile
  - 400: ErrValidation: Empty patch or unknown step
  - 401: ErrUnauthorized: Authentication required
  - 503: ErrUpstreamUnavailable: Profile store unreachable
*/
func (handler *Handler) updatePreferences(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var patch Patch
	if err := requestutil.DecodeJSON(writer, request, &patch); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if patch.Step != nil {
		validator := &validate.Validator{}
		validator.OneOf("step", slug.Token(*patch.Step), "taste", "traits", "wine_types")
		if err := validator.Err(); err != nil {
			respond.Error(writer, request, err)
			return
		}
	}

	profile, err := handler.service.Update(request.Context(), userID, patch)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, profile)
}
