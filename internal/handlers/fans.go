package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"

	api "spyglass/pkg/api/spyglass"
	"spyglass/pkg/models"
)

const (
	defaultFanPageSize = 50
	maxFanPageSize     = 200
)

// GetFans lists the creator's fans, most recently seen first. Supports a
// q search parameter matching display name or email, and a limit parameter.
func GetFans(c *gin.Context) {
	creatorID := c.GetString("creator_id")
	if creatorID == "" {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Creator context required"})
		return
	}

	countPanelQuery("fans", "list")

	limit := defaultFanPageSize
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= maxFanPageSize {
			limit = parsed
		}
	}

	query := `
		SELECT id, creator_id, display_name, email, platform, tags, notes, first_seen, last_seen
		FROM fans
		WHERE creator_id = $1`
	args := []interface{}{creatorID}

	if q := c.Query("q"); q != "" {
		query += ` AND (display_name ILIKE $2 OR email ILIKE $2)`
		args = append(args, "%"+q+"%")
	}
	query += ` ORDER BY last_seen DESC LIMIT ` + strconv.Itoa(limit)

	rows, err := db.QueryContext(c.Request.Context(), query, args...)
	if err != nil {
		logger.WithField("error", err.Error()).Error("Failed to query fans")
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to retrieve fans"})
		return
	}
	defer rows.Close()

	fans := []models.Fan{}
	for rows.Next() {
		var m models.Fan
		if err := rows.Scan(&m.ID, &m.CreatorID, &m.DisplayName, &m.Email, &m.Platform,
			pq.Array(&m.Tags), &m.Notes, &m.FirstSeen, &m.LastSeen); err != nil {
			logger.WithField("error", err.Error()).Error("Failed to scan fan row")
			continue
		}
		if m.Tags == nil {
			m.Tags = []string{}
		}
		fans = append(fans, m)
	}

	c.JSON(http.StatusOK, gin.H{"fans": fans})
}

// GetFan returns one fan record.
func GetFan(c *gin.Context) {
	creatorID := c.GetString("creator_id")
	fanID := c.Param("id")
	if creatorID == "" {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Creator context required"})
		return
	}

	countPanelQuery("fans", "get")

	var m models.Fan
	err := db.QueryRowContext(c.Request.Context(), `
		SELECT id, creator_id, display_name, email, platform, tags, notes, first_seen, last_seen
		FROM fans
		WHERE id = $1 AND creator_id = $2`, fanID, creatorID).
		Scan(&m.ID, &m.CreatorID, &m.DisplayName, &m.Email, &m.Platform,
			pq.Array(&m.Tags), &m.Notes, &m.FirstSeen, &m.LastSeen)
	if err != nil {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Fan not found"})
		return
	}
	if m.Tags == nil {
		m.Tags = []string{}
	}

	c.JSON(http.StatusOK, gin.H{"fan": m})
}

// UpdateFanRequest carries the editable CRM fields for a fan.
type UpdateFanRequest struct {
	DisplayName *string   `json:"display_name"`
	Email       *string   `json:"email"`
	Tags        *[]string `json:"tags"`
	Notes       *string   `json:"notes"`
}

// UpdateFan edits a fan's CRM fields.
func UpdateFan(c *gin.Context) {
	creatorID := c.GetString("creator_id")
	fanID := c.Param("id")
	if creatorID == "" {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Creator context required"})
		return
	}

	var req UpdateFanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid request body"})
		return
	}

	countPanelQuery("fans", "update")

	var m models.Fan
	err := db.QueryRowContext(c.Request.Context(), `
		SELECT id, creator_id, display_name, email, platform, tags, notes, first_seen, last_seen
		FROM fans
		WHERE id = $1 AND creator_id = $2`, fanID, creatorID).
		Scan(&m.ID, &m.CreatorID, &m.DisplayName, &m.Email, &m.Platform,
			pq.Array(&m.Tags), &m.Notes, &m.FirstSeen, &m.LastSeen)
	if err != nil {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Fan not found"})
		return
	}

	if req.DisplayName != nil {
		m.DisplayName = *req.DisplayName
	}
	if req.Email != nil {
		m.Email = *req.Email
	}
	if req.Tags != nil {
		m.Tags = *req.Tags
	}
	if req.Notes != nil {
		m.Notes = *req.Notes
	}
	if m.Tags == nil {
		m.Tags = []string{}
	}
	m.LastSeen = time.Now()

	_, err = db.ExecContext(c.Request.Context(), `
		UPDATE fans
		SET display_name = $1, email = $2, tags = $3, notes = $4, last_seen = $5
		WHERE id = $6 AND creator_id = $7`,
		m.DisplayName, m.Email, pq.Array(m.Tags), m.Notes, m.LastSeen, m.ID, creatorID)
	if err != nil {
		logger.WithField("error", err.Error()).Error("Failed to update fan")
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to update fan"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"fan": m})
}

// DeleteFan removes a fan from the CRM.
func DeleteFan(c *gin.Context) {
	creatorID := c.GetString("creator_id")
	fanID := c.Param("id")
	if creatorID == "" {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Creator context required"})
		return
	}

	countPanelQuery("fans", "delete")

	result, err := db.ExecContext(c.Request.Context(), `
		DELETE FROM fans WHERE id = $1 AND creator_id = $2`, fanID, creatorID)
	if err != nil {
		logger.WithField("error", err.Error()).Error("Failed to delete fan")
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to delete fan"})
		return
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Fan not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
