// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package preference_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/sommelier/internal/platform/ctxutil"
	"github.com/taibuivan/sommelier/internal/platform/sec"
	"github.com/taibuivan/sommelier/internal/users/preference"
)

func newRouter() chi.Router {
	router := chi.NewRouter()
	preference.NewHandler(newService(newMemoryRepository())).RegisterRoutes(router)
	return router
}

func authenticated(request *http.Request, userID string) *http.Request {
	claims := &sec.AuthClaims{UserID: userID, Role: string(sec.RoleMember)}
	return request.WithContext(ctxutil.WithAuthUser(request.Context(), claims))
}

/*
TestHandler_RequiresAuthentication rejects anonymous callers.
*/
func TestHandler_RequiresAuthentication(t *testing.T) {
	router := newRouter()

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/me/preferences", nil))

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

/*
TestHandler_PostThenGet walks a two step questionnaire over HTTP.
*/
func TestHandler_PostThenGet(t *testing.T) {
	router := newRouter()

	post := func(body string) *httptest.ResponseRecorder {
		request := authenticated(httptest.NewRequest(http.MethodPost, "/me/preferences", strings.NewReader(body)), "u-7")
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, request)
		return recorder
	}

	require.Equal(t, http.StatusOK, post(`{"sweetness":"off dry","body":"full","step":"taste"}`).Code)
	require.Equal(t, http.StatusOK, post(`{"traits":["earthy","smoky"],"price_bucket":"premium"}`).Code)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, authenticated(httptest.NewRequest(http.MethodGet, "/me/preferences", nil), "u-7"))
	require.Equal(t, http.StatusOK, recorder.Code)

	var envelope struct {
		Data struct {
			UserID      string   `json:"user_id"`
			Sweetness   string   `json:"sweetness"`
			Body        string   `json:"body"`
			PriceBucket string   `json:"price_bucket"`
			Traits      []string `json:"traits"`
			Steps       int      `json:"steps"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))

	assert.Equal(t, "u-7", envelope.Data.UserID)
	assert.Equal(t, "off_dry", envelope.Data.Sweetness)
	assert.Equal(t, "full", envelope.Data.Body)
	assert.Equal(t, "premium", envelope.Data.PriceBucket)
	assert.Equal(t, []string{"earthy", "smoky"}, envelope.Data.Traits)
	assert.Equal(t, int(preference.StepTaste), envelope.Data.Steps)
}

/*
TestHandler_UpdateValidation maps malformed bodies to 400.
*/
func TestHandler_UpdateValidation(t *testing.T) {
	router := newRouter()

	tests := []struct {
		name string
		body string
	}{
		{"invalid json", `{"sweetness":`},
		{"empty patch", `{}`},
		{"unknown step", `{"body":"light","step":"dessert_course"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := authenticated(httptest.NewRequest(http.MethodPost, "/me/preferences", strings.NewReader(tt.body)), "u-8")
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, request)
			assert.Equal(t, http.StatusBadRequest, recorder.Code)
		})
	}
}
