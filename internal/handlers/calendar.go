package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	api "spyglass/pkg/api/spyglass"
	"spyglass/pkg/models"
)

// GetCalendar lists the creator's planned content for a month. The month
// query parameter takes "2006-01" format and defaults to the current month.
func GetCalendar(c *gin.Context) {
	creatorID := c.GetString("creator_id")
	if creatorID == "" {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Creator context required"})
		return
	}

	countPanelQuery("calendar", "list")

	monthStart := time.Now().UTC()
	monthStart = time.Date(monthStart.Year(), monthStart.Month(), 1, 0, 0, 0, 0, time.UTC)
	if raw := c.Query("month"); raw != "" {
		parsed, err := time.Parse("2006-01", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid month format, expected YYYY-MM"})
			return
		}
		monthStart = parsed
	}
	monthEnd := monthStart.AddDate(0, 1, 0)

	rows, err := db.QueryContext(c.Request.Context(), `
		SELECT id, creator_id, title, channel, status, notes, scheduled_for, created_at, updated_at
		FROM calendar_entries
		WHERE creator_id = $1 AND scheduled_for >= $2 AND scheduled_for < $3
		ORDER BY scheduled_for ASC`, creatorID, monthStart, monthEnd)
	if err != nil {
		logger.WithField("error", err.Error()).Error("Failed to query calendar entries")
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to retrieve calendar"})
		return
	}
	defer rows.Close()

	entries := []models.CalendarEntry{}
	for rows.Next() {
		var m models.CalendarEntry
		if err := rows.Scan(&m.ID, &m.CreatorID, &m.Title, &m.Channel, &m.Status,
			&m.Notes, &m.ScheduledFor, &m.CreatedAt, &m.UpdatedAt); err != nil {
			logger.WithField("error", err.Error()).Error("Failed to scan calendar row")
			continue
		}
		entries = append(entries, m)
	}

	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

// CreateCalendarEntryRequest is the payload for planning a content item.
type CreateCalendarEntryRequest struct {
	Title        string    `json:"title" binding:"required"`
	Channel      string    `json:"channel" binding:"required"`
	Notes        string    `json:"notes"`
	ScheduledFor time.Time `json:"scheduled_for" binding:"required"`
}

// CreateCalendarEntry plans a new content item.
func CreateCalendarEntry(c *gin.Context) {
	creatorID := c.GetString("creator_id")
	if creatorID == "" {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Creator context required"})
		return
	}

	var req CreateCalendarEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Title, channel and scheduled_for are required"})
		return
	}

	countPanelQuery("calendar", "create")

	now := time.Now()
	entry := models.CalendarEntry{
		ID:           uuid.New().String(),
		CreatorID:    creatorID,
		Title:        req.Title,
		Channel:      req.Channel,
		Status:       "planned",
		Notes:        req.Notes,
		ScheduledFor: req.ScheduledFor,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err := db.ExecContext(c.Request.Context(), `
		INSERT INTO calendar_entries (id, creator_id, title, channel, status, notes, scheduled_for, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		entry.ID, entry.CreatorID, entry.Title, entry.Channel, entry.Status,
		entry.Notes, entry.ScheduledFor, entry.CreatedAt, entry.UpdatedAt)
	if err != nil {
		logger.WithField("error", err.Error()).Error("Failed to create calendar entry")
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to create calendar entry"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"entry": entry})
}

// UpdateCalendarEntryRequest carries the mutable calendar entry fields.
type UpdateCalendarEntryRequest struct {
	Title        *string    `json:"title"`
	Channel      *string    `json:"channel"`
	Status       *string    `json:"status"`
	Notes        *string    `json:"notes"`
	ScheduledFor *time.Time `json:"scheduled_for"`
}

var validEntryStatuses = map[string]bool{
	"planned":   true,
	"drafted":   true,
	"published": true,
}

// UpdateCalendarEntry edits a planned content item.
func UpdateCalendarEntry(c *gin.Context) {
	creatorID := c.GetString("creator_id")
	entryID := c.Param("id")
	if creatorID == "" {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Creator context required"})
		return
	}

	var req UpdateCalendarEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if req.Status != nil && !validEntryStatuses[*req.Status] {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid status"})
		return
	}

	countPanelQuery("calendar", "update")

	var m models.CalendarEntry
	err := db.QueryRowContext(c.Request.Context(), `
		SELECT id, creator_id, title, channel, status, notes, scheduled_for, created_at, updated_at
		FROM calendar_entries
		WHERE id = $1 AND creator_id = $2`, entryID, creatorID).
		Scan(&m.ID, &m.CreatorID, &m.Title, &m.Channel, &m.Status, &m.Notes,
			&m.ScheduledFor, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Calendar entry not found"})
		return
	}

	if req.Title != nil {
		m.Title = *req.Title
	}
	if req.Channel != nil {
		m.Channel = *req.Channel
	}
	if req.Status != nil {
		m.Status = *req.Status
	}
	if req.Notes != nil {
		m.Notes = *req.Notes
	}
	if req.ScheduledFor != nil {
		m.ScheduledFor = *req.ScheduledFor
	}
	m.UpdatedAt = time.Now()

	_, err = db.ExecContext(c.Request.Context(), `
		UPDATE calendar_entries
		SET title = $1, channel = $2, status = $3, notes = $4, scheduled_for = $5, updated_at = $6
		WHERE id = $7 AND creator_id = $8`,
		m.Title, m.Channel, m.Status, m.Notes, m.ScheduledFor, m.UpdatedAt, m.ID, creatorID)
	if err != nil {
		logger.WithField("error", err.Error()).Error("Failed to update calendar entry")
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to update calendar entry"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"entry": m})
}

// DeleteCalendarEntry removes a planned content item.
func DeleteCalendarEntry(c *gin.Context) {
	creatorID := c.GetString("creator_id")
	entryID := c.Param("id")
	if creatorID == "" {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Creator context required"})
		return
	}

	countPanelQuery("calendar", "delete")

	result, err := db.ExecContext(c.Request.Context(), `
		DELETE FROM calendar_entries WHERE id = $1 AND creator_id = $2`, entryID, creatorID)
	if err != nil {
		logger.WithField("error", err.Error()).Error("Failed to delete calendar entry")
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to delete calendar entry"})
		return
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Calendar entry not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
