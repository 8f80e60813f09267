package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	api "spyglass/pkg/api/spyglass"
	"spyglass/pkg/models"
)

// GetCampaigns returns the creator's email campaigns, newest first.
func GetCampaigns(c *gin.Context) {
	creatorID := c.GetString("creator_id")
	if creatorID == "" {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Creator context required"})
		return
	}

	countPanelQuery("campaigns", "list")

	rows, err := db.QueryContext(c.Request.Context(), `
		SELECT id, creator_id, subject, body, segment, status, scheduled_at, created_at, updated_at
		FROM email_campaigns
		WHERE creator_id = $1
		ORDER BY created_at DESC`, creatorID)
	if err != nil {
		logger.WithField("error", err.Error()).Error("Failed to query campaigns")
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to retrieve campaigns"})
		return
	}
	defer rows.Close()

	campaigns := []models.EmailCampaign{}
	for rows.Next() {
		var m models.EmailCampaign
		if err := rows.Scan(&m.ID, &m.CreatorID, &m.Subject, &m.Body, &m.Segment,
			&m.Status, &m.ScheduledAt, &m.CreatedAt, &m.UpdatedAt); err != nil {
			logger.WithField("error", err.Error()).Error("Failed to scan campaign row")
			continue
		}
		campaigns = append(campaigns, m)
	}

	c.JSON(http.StatusOK, gin.H{"campaigns": campaigns})
}

// CreateCampaignRequest is the payload for creating a campaign draft.
type CreateCampaignRequest struct {
	Subject     string     `json:"subject" binding:"required"`
	Body        string     `json:"body" binding:"required"`
	Segment     string     `json:"segment"`
	ScheduledAt *time.Time `json:"scheduled_at"`
}

// CreateCampaign creates a new campaign in draft status.
func CreateCampaign(c *gin.Context) {
	creatorID := c.GetString("creator_id")
	if creatorID == "" {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Creator context required"})
		return
	}

	var req CreateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Subject and body are required"})
		return
	}

	countPanelQuery("campaigns", "create")

	if req.Segment == "" {
		req.Segment = "all"
	}

	now := time.Now()
	campaign := models.EmailCampaign{
		ID:          uuid.New().String(),
		CreatorID:   creatorID,
		Subject:     req.Subject,
		Body:        req.Body,
		Segment:     req.Segment,
		Status:      "draft",
		ScheduledAt: req.ScheduledAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err := db.ExecContext(c.Request.Context(), `
		INSERT INTO email_campaigns (id, creator_id, subject, body, segment, status, scheduled_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		campaign.ID, campaign.CreatorID, campaign.Subject, campaign.Body, campaign.Segment,
		campaign.Status, campaign.ScheduledAt, campaign.CreatedAt, campaign.UpdatedAt)
	if err != nil {
		logger.WithField("error", err.Error()).Error("Failed to create campaign")
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to create campaign"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"campaign": campaign})
}

// UpdateCampaignRequest carries the mutable campaign fields; nil means leave
// unchanged.
type UpdateCampaignRequest struct {
	Subject     *string    `json:"subject"`
	Body        *string    `json:"body"`
	Segment     *string    `json:"segment"`
	ScheduledAt *time.Time `json:"scheduled_at"`
}

// UpdateCampaign edits a draft campaign. Queued or sent campaigns are
// immutable.
func UpdateCampaign(c *gin.Context) {
	creatorID := c.GetString("creator_id")
	campaignID := c.Param("id")
	if creatorID == "" {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Creator context required"})
		return
	}

	var req UpdateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid request body"})
		return
	}

	countPanelQuery("campaigns", "update")

	var m models.EmailCampaign
	err := db.QueryRowContext(c.Request.Context(), `
		SELECT id, creator_id, subject, body, segment, status, scheduled_at, created_at, updated_at
		FROM email_campaigns
		WHERE id = $1 AND creator_id = $2`, campaignID, creatorID).
		Scan(&m.ID, &m.CreatorID, &m.Subject, &m.Body, &m.Segment, &m.Status,
			&m.ScheduledAt, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Campaign not found"})
		return
	}
	if m.Status != "draft" {
		c.JSON(http.StatusConflict, api.ErrorResponse{Error: "Only draft campaigns can be edited"})
		return
	}

	if req.Subject != nil {
		m.Subject = *req.Subject
	}
	if req.Body != nil {
		m.Body = *req.Body
	}
	if req.Segment != nil {
		m.Segment = *req.Segment
	}
	if req.ScheduledAt != nil {
		m.ScheduledAt = req.ScheduledAt
	}
	m.UpdatedAt = time.Now()

	_, err = db.ExecContext(c.Request.Context(), `
		UPDATE email_campaigns
		SET subject = $1, body = $2, segment = $3, scheduled_at = $4, updated_at = $5
		WHERE id = $6 AND creator_id = $7`,
		m.Subject, m.Body, m.Segment, m.ScheduledAt, m.UpdatedAt, m.ID, creatorID)
	if err != nil {
		logger.WithField("error", err.Error()).Error("Failed to update campaign")
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to update campaign"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"campaign": m})
}

// QueueCampaign moves a draft campaign into the send queue.
func QueueCampaign(c *gin.Context) {
	creatorID := c.GetString("creator_id")
	campaignID := c.Param("id")
	if creatorID == "" {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Creator context required"})
		return
	}

	countPanelQuery("campaigns", "queue")

	result, err := db.ExecContext(c.Request.Context(), `
		UPDATE email_campaigns
		SET status = 'queued', updated_at = $1
		WHERE id = $2 AND creator_id = $3 AND status = 'draft'`,
		time.Now(), campaignID, creatorID)
	if err != nil {
		logger.WithField("error", err.Error()).Error("Failed to queue campaign")
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to queue campaign"})
		return
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Draft campaign not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "queued"})
}

// DeleteCampaign removes a campaign.
func DeleteCampaign(c *gin.Context) {
	creatorID := c.GetString("creator_id")
	campaignID := c.Param("id")
	if creatorID == "" {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Creator context required"})
		return
	}

	countPanelQuery("campaigns", "delete")

	result, err := db.ExecContext(c.Request.Context(), `
		DELETE FROM email_campaigns WHERE id = $1 AND creator_id = $2`, campaignID, creatorID)
	if err != nil {
		logger.WithField("error", err.Error()).Error("Failed to delete campaign")
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to delete campaign"})
		return
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Campaign not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func countPanelQuery(panel, op string) {
	if serviceMetrics != nil {
		serviceMetrics.PanelQueries.WithLabelValues(panel, op).Inc()
	}
}
