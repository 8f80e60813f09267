package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	api "spyglass/pkg/api/spyglass"
)

func TestGetChannels(t *testing.T) {
	mockDB, mock := setupMockDB(t)
	defer mockDB.Close()
	initHandlers(mockDB)

	rows := sqlmock.NewRows([]string{"channel"}).
		AddRow("Instagram").
		AddRow("TikTok").
		AddRow("YouTube")

	mock.ExpectQuery("SELECT DISTINCT jsonb_array_elements_text").
		WithArgs("creator-1").WillReturnRows(rows)

	router := setupTestGin()
	router.GET("/analytics/channels", authAs("creator-1"), GetChannels)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/analytics/channels", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp api.ChannelsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"Instagram", "TikTok", "YouTube"}, resp.Channels)
}

func TestGetChannelsCached(t *testing.T) {
	mockDB, mock := setupMockDB(t)
	defer mockDB.Close()
	initHandlers(mockDB)

	rows := sqlmock.NewRows([]string{"channel"}).AddRow("Instagram")
	// Only one query expected; the second request hits the cache.
	mock.ExpectQuery("SELECT DISTINCT jsonb_array_elements_text").
		WithArgs("creator-1").WillReturnRows(rows)

	router := setupTestGin()
	router.GET("/analytics/channels", authAs("creator-1"), GetChannels)

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/analytics/channels", nil)
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
	}

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetChannelsQueryErrorDegrades(t *testing.T) {
	mockDB, mock := setupMockDB(t)
	defer mockDB.Close()
	initHandlers(mockDB)

	mock.ExpectQuery("SELECT DISTINCT jsonb_array_elements_text").
		WithArgs("creator-1").WillReturnError(assert.AnError)

	router := setupTestGin()
	router.GET("/analytics/channels", authAs("creator-1"), GetChannels)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/analytics/channels", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp api.ChannelsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Channels)
}
