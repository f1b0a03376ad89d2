// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/sommelier/internal/api"
	"github.com/taibuivan/sommelier/internal/core/discovery"
	"github.com/taibuivan/sommelier/internal/core/match"
	"github.com/taibuivan/sommelier/internal/core/vocab"
	"github.com/taibuivan/sommelier/internal/core/wine"
	"github.com/taibuivan/sommelier/internal/platform/apperr"
	"github.com/taibuivan/sommelier/internal/platform/config"
	"github.com/taibuivan/sommelier/internal/platform/metrics"
	"github.com/taibuivan/sommelier/internal/platform/sec"
	"github.com/taibuivan/sommelier/internal/users/preference"
)

// # Stubs

type stubVerifier struct{}

func (stubVerifier) VerifyToken(token string) (*sec.AuthClaims, error) {
	switch token {
	case "admin-token":
		return &sec.AuthClaims{UserID: "u-admin", Role: string(sec.RoleAdmin)}, nil
	case "member-token":
		return &sec.AuthClaims{UserID: "u-member", Role: string(sec.RoleMember)}, nil
	}
	return nil, errors.New("invalid token")
}

type stubCatalogRepository struct{}

func (stubCatalogRepository) LoadAll(ctx context.Context) ([]wine.Wine, error) {
	return []wine.Wine{
		{ID: 1, Name: "Chablis", Category: vocab.CategoryWhite, Price: 28, Rating: 90, Body: vocab.BodyLight},
		{ID: 2, Name: "Syrah", Category: vocab.CategoryRed, Price: 40, Rating: 94, Body: vocab.BodyFull},
		{ID: 3, Name: "Nameless", Category: vocab.CategoryRed, Price: 40, Rating: 101},
	}, nil
}

type stubProfileRepository struct {
	profiles map[string]preference.Profile
}

func (repository *stubProfileRepository) FindByUserID(ctx context.Context, userID string) (*preference.Profile, error) {
	profile, ok := repository.profiles[userID]
	if !ok {
		return nil, apperr.NotFound("Taste profile")
	}
	return &profile, nil
}

func (repository *stubProfileRepository) Upsert(ctx context.Context, profile *preference.Profile) error {
	repository.profiles[profile.UserID] = *profile
	return nil
}

// newTestServer wires the real handlers over in-memory repositories.
func newTestServer(t *testing.T, load bool) (http.Handler, *wine.Provider) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	provider := wine.NewProvider(stubCatalogRepository{}, logger)
	if load {
		_, err := provider.Reload(context.Background(), wine.TriggerStartup)
		require.NoError(t, err)
	}

	profiles := preference.NewService(
		&stubProfileRepository{profiles: make(map[string]preference.Profile)},
		preference.BreakerSettings{Failures: 5, Timeout: time.Second},
		logger,
	)
	browse := discovery.NewService(provider, profiles, match.NewScorer(match.DefaultWeights()), nil, logger)

	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CatalogStats: func() (wine.Stats, error) {
			snapshot, err := provider.Current()
			if err != nil {
				return wine.Stats{}, err
			}
			return snapshot.Stats(), nil
		},
	}, logger)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	server := api.NewServer(ctx, &config.Config{ServerPort: "0", Environment: "test"}, logger, stubVerifier{}, api.Handlers{
		Liveness:   liveness,
		Readiness:  readiness,
		Metrics:    metrics.Handler(),
		Discovery:  discovery.NewHandler(browse),
		Preference: preference.NewHandler(profiles),
	})
	return server.Handler(), provider
}

func call(handler http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	request := httptest.NewRequest(method, path, reader)
	request.RemoteAddr = "192.0.2.10:5000"
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

/*
TestServer_Routes exercises every mounted route group once.
*/
func TestServer_Routes(t *testing.T) {
	handler, _ := newTestServer(t, true)

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		body   string
		want   int
	}{
		{"liveness", http.MethodGet, "/health", "", "", http.StatusOK},
		{"readiness", http.MethodGet, "/ready", "", "", http.StatusOK},
		{"metrics", http.MethodGet, "/metrics", "", "", http.StatusOK},
		{"browse anonymous", http.MethodGet, "/api/v1/wines", "", "", http.StatusOK},
		{"facets", http.MethodGet, "/api/v1/wines/facets?category=red", "", "", http.StatusOK},
		{"wine", http.MethodGet, "/api/v1/wines/2", "", "", http.StatusOK},
		{"rejected wine is unknown", http.MethodGet, "/api/v1/wines/3", "", "", http.StatusNotFound},
		{"similar", http.MethodGet, "/api/v1/wines/1/similar", "", "", http.StatusOK},
		{"bad token", http.MethodGet, "/api/v1/wines", "forged", "", http.StatusUnauthorized},
		{"preferences anonymous", http.MethodGet, "/api/v1/me/preferences", "", "", http.StatusUnauthorized},
		{"preferences member", http.MethodGet, "/api/v1/me/preferences", "member-token", "", http.StatusOK},
		{"reload member", http.MethodPost, "/api/v1/catalog/reload", "member-token", "", http.StatusForbidden},
		{"reload admin", http.MethodPost, "/api/v1/catalog/reload", "admin-token", "", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := call(handler, tt.method, tt.path, tt.token, tt.body)
			assert.Equal(t, tt.want, recorder.Code, recorder.Body.String())
		})
	}
}

/*
TestServer_ProfilePersonalisesBrowse saves a profile and sees the ranking
source switch from rating to profile.
*/
func TestServer_ProfilePersonalisesBrowse(t *testing.T) {
	handler, _ := newTestServer(t, true)

	rankedBy := func(token string) (string, []int64) {
		recorder := call(handler, http.MethodGet, "/api/v1/wines", token, "")
		require.Equal(t, http.StatusOK, recorder.Code)

		var page struct {
			Wines    []struct{ ID int64 } `json:"wines"`
			RankedBy string               `json:"ranked_by"`
		}
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &page))

		ids := make([]int64, len(page.Wines))
		for i, w := range page.Wines {
			ids[i] = w.ID
		}
		return page.RankedBy, ids
	}

	source, ids := rankedBy("member-token")
	assert.Equal(t, "rating", source)
	assert.Equal(t, []int64{2, 1}, ids)

	saved := call(handler, http.MethodPost, "/api/v1/me/preferences", "member-token", `{"body":"light","step":"taste"}`)
	require.Equal(t, http.StatusOK, saved.Code, saved.Body.String())

	source, ids = rankedBy("member-token")
	assert.Equal(t, "profile", source)
	assert.Equal(t, []int64{1, 2}, ids)
}

/*
TestServer_NotReadyBeforeFirstSnapshot keeps traffic away until the catalog loads.
*/
func TestServer_NotReadyBeforeFirstSnapshot(t *testing.T) {
	handler, provider := newTestServer(t, false)

	assert.Equal(t, http.StatusServiceUnavailable, call(handler, http.MethodGet, "/ready", "", "").Code)
	assert.Equal(t, http.StatusServiceUnavailable, call(handler, http.MethodGet, "/api/v1/wines", "", "").Code)

	_, err := provider.Reload(context.Background(), wine.TriggerStartup)
	require.NoError(t, err)

	recorder := call(handler, http.MethodGet, "/ready", "", "")
	require.Equal(t, http.StatusOK, recorder.Code)

	var envelope struct {
		Data struct {
			Status  string     `json:"status"`
			Catalog wine.Stats `json:"catalog"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	assert.Equal(t, "ready", envelope.Data.Status)
	assert.Equal(t, 2, envelope.Data.Catalog.Wines)
	assert.Equal(t, 1, envelope.Data.Catalog.Rejected)
}
