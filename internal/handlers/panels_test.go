package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetFans(t *testing.T) {
	mockDB, mock := setupMockDB(t)
	defer mockDB.Close()
	initHandlers(mockDB)

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "creator_id", "display_name", "email", "platform", "tags",
		"notes", "first_seen", "last_seen",
	}).AddRow("fan-1", "creator-1", "Sam", "sam@example.com", "Instagram",
		pq.Array([]string{"vip"}), "superfan", now, now)

	mock.ExpectQuery("SELECT (.+) FROM fans").
		WithArgs("creator-1").WillReturnRows(rows)

	router := setupTestGin()
	router.GET("/fans", authAs("creator-1"), GetFans)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/fans", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Fans []map[string]interface{} `json:"fans"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Fans, 1)
	assert.Equal(t, "Sam", resp.Fans[0]["display_name"])
}

func TestGetFansWithSearch(t *testing.T) {
	mockDB, mock := setupMockDB(t)
	defer mockDB.Close()
	initHandlers(mockDB)

	mock.ExpectQuery("SELECT (.+) FROM fans").
		WithArgs("creator-1", "%sam%").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "creator_id", "display_name", "email", "platform", "tags",
			"notes", "first_seen", "last_seen",
		}))

	router := setupTestGin()
	router.GET("/fans", authAs("creator-1"), GetFans)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/fans?q=sam", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreatePromotionValidation(t *testing.T) {
	mockDB, _ := setupMockDB(t)
	defer mockDB.Close()
	initHandlers(mockDB)

	router := setupTestGin()
	router.POST("/promotions", authAs("creator-1"), CreatePromotion)

	tests := []struct {
		name string
		body map[string]interface{}
	}{
		{
			name: "discount over 100",
			body: map[string]interface{}{
				"title":            "Flash sale",
				"discount_percent": 150,
				"starts_at":        time.Now().Format(time.RFC3339),
				"ends_at":          time.Now().Add(time.Hour).Format(time.RFC3339),
			},
		},
		{
			name: "ends before starts",
			body: map[string]interface{}{
				"title":            "Flash sale",
				"discount_percent": 20,
				"starts_at":        time.Now().Add(time.Hour).Format(time.RFC3339),
				"ends_at":          time.Now().Format(time.RFC3339),
			},
		},
		{
			name: "missing title",
			body: map[string]interface{}{
				"discount_percent": 20,
				"starts_at":        time.Now().Format(time.RFC3339),
				"ends_at":          time.Now().Add(time.Hour).Format(time.RFC3339),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, _ := json.Marshal(tt.body)
			w := httptest.NewRecorder()
			req := httptest.NewRequest("POST", "/promotions", bytes.NewReader(raw))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(w, req)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestCreatePromotion(t *testing.T) {
	mockDB, mock := setupMockDB(t)
	defer mockDB.Close()
	initHandlers(mockDB)

	mock.ExpectExec("INSERT INTO promotions").
		WillReturnResult(sqlmock.NewResult(1, 1))

	router := setupTestGin()
	router.POST("/promotions", authAs("creator-1"), CreatePromotion)

	body, _ := json.Marshal(map[string]interface{}{
		"title":            "Summer sale",
		"discount_percent": 25,
		"starts_at":        time.Now().Format(time.RFC3339),
		"ends_at":          time.Now().Add(72 * time.Hour).Format(time.RFC3339),
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/promotions", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Promotion map[string]interface{} `json:"promotion"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp.Promotion["is_active"])
}

func TestGetCalendarInvalidMonth(t *testing.T) {
	mockDB, _ := setupMockDB(t)
	defer mockDB.Close()
	initHandlers(mockDB)

	router := setupTestGin()
	router.GET("/calendar", authAs("creator-1"), GetCalendar)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/calendar?month=August", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetCalendar(t *testing.T) {
	mockDB, mock := setupMockDB(t)
	defer mockDB.Close()
	initHandlers(mockDB)

	monthStart := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "creator_id", "title", "channel", "status", "notes",
		"scheduled_for", "created_at", "updated_at",
	}).AddRow("cal-1", "creator-1", "Vlog upload", "YouTube", "planned", "",
		monthStart.AddDate(0, 0, 14), now, now)

	mock.ExpectQuery("SELECT (.+) FROM calendar_entries").
		WithArgs("creator-1", monthStart, monthStart.AddDate(0, 1, 0)).
		WillReturnRows(rows)

	router := setupTestGin()
	router.GET("/calendar", authAs("creator-1"), GetCalendar)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/calendar?month=2026-08", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Entries []map[string]interface{} `json:"entries"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Entries, 1)
	assert.Equal(t, "Vlog upload", resp.Entries[0]["title"])
}

func TestUpdateCalendarEntryInvalidStatus(t *testing.T) {
	mockDB, _ := setupMockDB(t)
	defer mockDB.Close()
	initHandlers(mockDB)

	router := setupTestGin()
	router.PUT("/calendar/:id", authAs("creator-1"), UpdateCalendarEntry)

	body, _ := json.Marshal(map[string]interface{}{"status": "cancelled"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/calendar/cal-1", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
