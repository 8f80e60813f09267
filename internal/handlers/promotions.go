package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	api "spyglass/pkg/api/spyglass"
	"spyglass/pkg/models"
)

// GetPromotions lists the creator's promotions, upcoming first.
func GetPromotions(c *gin.Context) {
	creatorID := c.GetString("creator_id")
	if creatorID == "" {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Creator context required"})
		return
	}

	countPanelQuery("promotions", "list")

	rows, err := db.QueryContext(c.Request.Context(), `
		SELECT id, creator_id, title, discount_percent, starts_at, ends_at, is_active, created_at, updated_at
		FROM promotions
		WHERE creator_id = $1
		ORDER BY starts_at DESC`, creatorID)
	if err != nil {
		logger.WithField("error", err.Error()).Error("Failed to query promotions")
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to retrieve promotions"})
		return
	}
	defer rows.Close()

	promotions := []models.Promotion{}
	for rows.Next() {
		var m models.Promotion
		if err := rows.Scan(&m.ID, &m.CreatorID, &m.Title, &m.DiscountPercent,
			&m.StartsAt, &m.EndsAt, &m.IsActive, &m.CreatedAt, &m.UpdatedAt); err != nil {
			logger.WithField("error", err.Error()).Error("Failed to scan promotion row")
			continue
		}
		promotions = append(promotions, m)
	}

	c.JSON(http.StatusOK, gin.H{"promotions": promotions})
}

// CreatePromotionRequest is the payload for creating a promotion.
type CreatePromotionRequest struct {
	Title           string    `json:"title" binding:"required"`
	DiscountPercent int       `json:"discount_percent" binding:"required"`
	StartsAt        time.Time `json:"starts_at" binding:"required"`
	EndsAt          time.Time `json:"ends_at" binding:"required"`
}

// CreatePromotion creates a time-boxed promotion.
func CreatePromotion(c *gin.Context) {
	creatorID := c.GetString("creator_id")
	if creatorID == "" {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Creator context required"})
		return
	}

	var req CreatePromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Title, discount and time range are required"})
		return
	}
	if req.DiscountPercent < 1 || req.DiscountPercent > 100 {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "discount_percent must be between 1 and 100"})
		return
	}
	if !req.EndsAt.After(req.StartsAt) {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "ends_at must be after starts_at"})
		return
	}

	countPanelQuery("promotions", "create")

	now := time.Now()
	promo := models.Promotion{
		ID:              uuid.New().String(),
		CreatorID:       creatorID,
		Title:           req.Title,
		DiscountPercent: req.DiscountPercent,
		StartsAt:        req.StartsAt,
		EndsAt:          req.EndsAt,
		IsActive:        true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	_, err := db.ExecContext(c.Request.Context(), `
		INSERT INTO promotions (id, creator_id, title, discount_percent, starts_at, ends_at, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		promo.ID, promo.CreatorID, promo.Title, promo.DiscountPercent,
		promo.StartsAt, promo.EndsAt, promo.IsActive, promo.CreatedAt, promo.UpdatedAt)
	if err != nil {
		logger.WithField("error", err.Error()).Error("Failed to create promotion")
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to create promotion"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"promotion": promo})
}

// UpdatePromotionRequest carries the mutable promotion fields.
type UpdatePromotionRequest struct {
	Title           *string    `json:"title"`
	DiscountPercent *int       `json:"discount_percent"`
	StartsAt        *time.Time `json:"starts_at"`
	EndsAt          *time.Time `json:"ends_at"`
	IsActive        *bool      `json:"is_active"`
}

// UpdatePromotion edits a promotion, including toggling it active.
func UpdatePromotion(c *gin.Context) {
	creatorID := c.GetString("creator_id")
	promoID := c.Param("id")
	if creatorID == "" {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Creator context required"})
		return
	}

	var req UpdatePromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid request body"})
		return
	}

	countPanelQuery("promotions", "update")

	var m models.Promotion
	err := db.QueryRowContext(c.Request.Context(), `
		SELECT id, creator_id, title, discount_percent, starts_at, ends_at, is_active, created_at, updated_at
		FROM promotions
		WHERE id = $1 AND creator_id = $2`, promoID, creatorID).
		Scan(&m.ID, &m.CreatorID, &m.Title, &m.DiscountPercent, &m.StartsAt,
			&m.EndsAt, &m.IsActive, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Promotion not found"})
		return
	}

	if req.Title != nil {
		m.Title = *req.Title
	}
	if req.DiscountPercent != nil {
		if *req.DiscountPercent < 1 || *req.DiscountPercent > 100 {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "discount_percent must be between 1 and 100"})
			return
		}
		m.DiscountPercent = *req.DiscountPercent
	}
	if req.StartsAt != nil {
		m.StartsAt = *req.StartsAt
	}
	if req.EndsAt != nil {
		m.EndsAt = *req.EndsAt
	}
	if !m.EndsAt.After(m.StartsAt) {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "ends_at must be after starts_at"})
		return
	}
	if req.IsActive != nil {
		m.IsActive = *req.IsActive
	}
	m.UpdatedAt = time.Now()

	_, err = db.ExecContext(c.Request.Context(), `
		UPDATE promotions
		SET title = $1, discount_percent = $2, starts_at = $3, ends_at = $4, is_active = $5, updated_at = $6
		WHERE id = $7 AND creator_id = $8`,
		m.Title, m.DiscountPercent, m.StartsAt, m.EndsAt, m.IsActive, m.UpdatedAt, m.ID, creatorID)
	if err != nil {
		logger.WithField("error", err.Error()).Error("Failed to update promotion")
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to update promotion"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"promotion": m})
}

// DeletePromotion removes a promotion.
func DeletePromotion(c *gin.Context) {
	creatorID := c.GetString("creator_id")
	promoID := c.Param("id")
	if creatorID == "" {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Creator context required"})
		return
	}

	countPanelQuery("promotions", "delete")

	result, err := db.ExecContext(c.Request.Context(), `
		DELETE FROM promotions WHERE id = $1 AND creator_id = $2`, promoID, creatorID)
	if err != nil {
		logger.WithField("error", err.Error()).Error("Failed to delete promotion")
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to delete promotion"})
		return
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Promotion not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
