package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Dosada05/league-system/fixtures"
	"github.com/Dosada05/league-system/services"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapServiceErrorToHTTP(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"competition not found", services.ErrCompetitionNotFound, http.StatusNotFound},
		{"venue not found", services.ErrVenueNotFound, http.StatusNotFound},
		{"insufficient teams", fixtures.ErrInsufficientTeams, http.StatusBadRequest},
		{"invalid schedule", fixtures.ErrInvalidScheduleConfig, http.StatusBadRequest},
		{"booking too soon", services.ErrBookingTooSoon, http.StatusBadRequest},
		{"booking too far", services.ErrBookingTooFar, http.StatusBadRequest},
		{"invalid time range", services.ErrBookingInvalidTimeRange, http.StatusBadRequest},
		{"venue unavailable", services.ErrVenueUnavailable, http.StatusConflict},
		{"booking limit", services.ErrBookingLimitReached, http.StatusConflict},
		{"no venues", fixtures.ErrNoVenuesAvailable, http.StatusConflict},
		{"photo upload unavailable", services.ErrPhotoUploadUnavailable, http.StatusServiceUnavailable},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			request := httptest.NewRequest(http.MethodGet, "/", nil)

			mapServiceErrorToHTTP(recorder, request, tc.err)
			assert.Equal(t, tc.status, recorder.Code)
			assert.Contains(t, recorder.Header().Get("Content-Type"), "application/json")
		})
	}

	// Обёрнутые ошибки тоже распознаются.
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	wrapped := errors.Join(errors.New("context"), services.ErrVenueUnavailable)
	mapServiceErrorToHTTP(recorder, request, wrapped)
	assert.Equal(t, http.StatusConflict, recorder.Code)
}

func TestGetIDFromURL(t *testing.T) {
	newRequest := func(value string) *http.Request {
		routeCtx := chi.NewRouteContext()
		routeCtx.URLParams.Add("venueID", value)
		request := httptest.NewRequest(http.MethodGet, "/venues/"+value, nil)
		return request.WithContext(context.WithValue(request.Context(), chi.RouteCtxKey, routeCtx))
	}

	id, err := getIDFromURL(newRequest("17"), "venueID")
	require.NoError(t, err)
	assert.Equal(t, 17, id)

	_, err = getIDFromURL(newRequest("abc"), "venueID")
	require.Error(t, err)

	_, err = getIDFromURL(newRequest("0"), "venueID")
	require.Error(t, err)

	_, err = getIDFromURL(newRequest("-3"), "venueID")
	require.Error(t, err)
}

func TestReadJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	t.Run("valid body", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"ok"}`))
		var dst payload
		require.NoError(t, readJSON(httptest.NewRecorder(), request, &dst))
		assert.Equal(t, "ok", dst.Name)
	})

	t.Run("empty body", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
		var dst payload
		require.EqualError(t, readJSON(httptest.NewRecorder(), request, &dst), "body must not be empty")
	})

	t.Run("unknown field", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"bogus":1}`))
		var dst payload
		err := readJSON(httptest.NewRecorder(), request, &dst)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown key")
	})

	t.Run("multiple JSON values", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"a"}{"name":"b"}`))
		var dst payload
		require.EqualError(t, readJSON(httptest.NewRecorder(), request, &dst), "body must only contain a single JSON value")
	})

	t.Run("malformed JSON", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":`))
		var dst payload
		require.Error(t, readJSON(httptest.NewRecorder(), request, &dst))
	})
}
