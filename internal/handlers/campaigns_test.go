package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetCampaigns(t *testing.T) {
	mockDB, mock := setupMockDB(t)
	defer mockDB.Close()
	initHandlers(mockDB)

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "creator_id", "subject", "body", "segment", "status",
		"scheduled_at", "created_at", "updated_at",
	}).AddRow("camp-1", "creator-1", "Merch drop", "It's here", "all", "draft", nil, now, now)

	mock.ExpectQuery("SELECT (.+) FROM email_campaigns").
		WithArgs("creator-1").WillReturnRows(rows)

	router := setupTestGin()
	router.GET("/campaigns", authAs("creator-1"), GetCampaigns)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/campaigns", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Campaigns []map[string]interface{} `json:"campaigns"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Campaigns, 1)
	assert.Equal(t, "Merch drop", resp.Campaigns[0]["subject"])
}

func TestCreateCampaign(t *testing.T) {
	mockDB, mock := setupMockDB(t)
	defer mockDB.Close()
	initHandlers(mockDB)

	mock.ExpectExec("INSERT INTO email_campaigns").
		WillReturnResult(sqlmock.NewResult(1, 1))

	router := setupTestGin()
	router.POST("/campaigns", authAs("creator-1"), CreateCampaign)

	body, _ := json.Marshal(map[string]interface{}{
		"subject": "New video out",
		"body":    "Watch it now",
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/campaigns", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Campaign map[string]interface{} `json:"campaign"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "draft", resp.Campaign["status"])
	assert.Equal(t, "all", resp.Campaign["segment"])
	assert.NotEmpty(t, resp.Campaign["id"])

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateCampaignMissingSubject(t *testing.T) {
	mockDB, _ := setupMockDB(t)
	defer mockDB.Close()
	initHandlers(mockDB)

	router := setupTestGin()
	router.POST("/campaigns", authAs("creator-1"), CreateCampaign)

	body, _ := json.Marshal(map[string]interface{}{"body": "no subject"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/campaigns", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestQueueCampaignNotDraft(t *testing.T) {
	mockDB, mock := setupMockDB(t)
	defer mockDB.Close()
	initHandlers(mockDB)

	mock.ExpectExec("UPDATE email_campaigns").
		WillReturnResult(sqlmock.NewResult(0, 0))

	router := setupTestGin()
	router.POST("/campaigns/:id/queue", authAs("creator-1"), QueueCampaign)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/campaigns/camp-1/queue", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteCampaign(t *testing.T) {
	mockDB, mock := setupMockDB(t)
	defer mockDB.Close()
	initHandlers(mockDB)

	mock.ExpectExec("DELETE FROM email_campaigns").
		WithArgs("camp-1", "creator-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	router := setupTestGin()
	router.DELETE("/campaigns/:id", authAs("creator-1"), DeleteCampaign)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("DELETE", "/campaigns/camp-1", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
