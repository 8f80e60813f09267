package handlers

import (
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	api "spyglass/pkg/api/spyglass"
	"spyglass/pkg/logging"
	"spyglass/pkg/models"
)

// Redemption rate limit: attempts per client IP per window.
const (
	redeemRateLimit  = 10
	redeemRateWindow = time.Minute
)

// GetInviteCodes lists the creator's invite codes.
func GetInviteCodes(c *gin.Context) {
	creatorID := c.GetString("creator_id")
	if creatorID == "" {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Creator context required"})
		return
	}

	countPanelQuery("invites", "list")

	rows, err := db.QueryContext(c.Request.Context(), `
		SELECT id, creator_id, code, max_uses, use_count, expires_at, created_at
		FROM invite_codes
		WHERE creator_id = $1
		ORDER BY created_at DESC`, creatorID)
	if err != nil {
		logger.WithField("error", err.Error()).Error("Failed to query invite codes")
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to retrieve invite codes"})
		return
	}
	defer rows.Close()

	invites := []models.InviteCode{}
	for rows.Next() {
		var m models.InviteCode
		if err := rows.Scan(&m.ID, &m.CreatorID, &m.Code, &m.MaxUses, &m.UseCount,
			&m.ExpiresAt, &m.CreatedAt); err != nil {
			logger.WithField("error", err.Error()).Error("Failed to scan invite code row")
			continue
		}
		invites = append(invites, m)
	}

	c.JSON(http.StatusOK, gin.H{"invites": invites})
}

// CreateInviteCodeRequest is the payload for minting an invite code.
type CreateInviteCodeRequest struct {
	Code      string     `json:"code"`
	MaxUses   int        `json:"max_uses"`
	ExpiresAt *time.Time `json:"expires_at"`
}

// CreateInviteCode mints a new invite code. A custom code may be supplied;
// otherwise a short random one is generated.
func CreateInviteCode(c *gin.Context) {
	creatorID := c.GetString("creator_id")
	if creatorID == "" {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Creator context required"})
		return
	}

	var req CreateInviteCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if req.MaxUses < 0 {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "max_uses cannot be negative"})
		return
	}

	countPanelQuery("invites", "create")

	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if code == "" {
		code = strings.ToUpper(uuid.New().String()[:8])
	}

	invite := models.InviteCode{
		ID:        uuid.New().String(),
		CreatorID: creatorID,
		Code:      code,
		MaxUses:   req.MaxUses,
		ExpiresAt: req.ExpiresAt,
		CreatedAt: time.Now(),
	}

	_, err := db.ExecContext(c.Request.Context(), `
		INSERT INTO invite_codes (id, creator_id, code, max_uses, use_count, expires_at, created_at)
		VALUES ($1, $2, $3, $4, 0, $5, $6)`,
		invite.ID, invite.CreatorID, invite.Code, invite.MaxUses, invite.ExpiresAt, invite.CreatedAt)
	if err != nil {
		logger.WithField("error", err.Error()).Error("Failed to create invite code")
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to create invite code"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"invite": invite})
}

// DeleteInviteCode revokes an invite code.
func DeleteInviteCode(c *gin.Context) {
	creatorID := c.GetString("creator_id")
	inviteID := c.Param("id")
	if creatorID == "" {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Creator context required"})
		return
	}

	countPanelQuery("invites", "delete")

	result, err := db.ExecContext(c.Request.Context(), `
		DELETE FROM invite_codes WHERE id = $1 AND creator_id = $2`, inviteID, creatorID)
	if err != nil {
		logger.WithField("error", err.Error()).Error("Failed to delete invite code")
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to delete invite code"})
		return
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Invite code not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// RedeemInviteCode consumes one use of an invite code. This endpoint is
// public (fans redeem before they have an account) and rate limited per
// client IP when redis is available.
func RedeemInviteCode(c *gin.Context) {
	code := strings.ToUpper(strings.TrimSpace(c.Param("code")))
	if code == "" {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invite code required"})
		return
	}

	if !allowRedeemAttempt(c) {
		countInviteRedemption("rate_limited")
		c.JSON(http.StatusTooManyRequests, api.ErrorResponse{Error: "Too many attempts, try again later"})
		return
	}

	ctx := c.Request.Context()
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		logger.WithField("error", err.Error()).Error("Failed to begin redemption transaction")
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to redeem invite code"})
		return
	}
	defer tx.Rollback()

	var (
		inviteID  string
		maxUses   int
		useCount  int
		expiresAt sql.NullTime
	)
	err = tx.QueryRowContext(ctx, `
		SELECT id, max_uses, use_count, expires_at
		FROM invite_codes
		WHERE code = $1
		FOR UPDATE`, code).Scan(&inviteID, &maxUses, &useCount, &expiresAt)
	if err == sql.ErrNoRows {
		countInviteRedemption("not_found")
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Invite code not found"})
		return
	}
	if err != nil {
		logger.WithField("error", err.Error()).Error("Failed to look up invite code")
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to redeem invite code"})
		return
	}

	if expiresAt.Valid && time.Now().After(expiresAt.Time) {
		countInviteRedemption("expired")
		c.JSON(http.StatusGone, api.ErrorResponse{Error: "Invite code has expired"})
		return
	}
	if maxUses > 0 && useCount >= maxUses {
		countInviteRedemption("exhausted")
		c.JSON(http.StatusGone, api.ErrorResponse{Error: "Invite code has no uses left"})
		return
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE invite_codes SET use_count = use_count + 1 WHERE id = $1`, inviteID); err != nil {
		logger.WithField("error", err.Error()).Error("Failed to consume invite code use")
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to redeem invite code"})
		return
	}
	if err := tx.Commit(); err != nil {
		logger.WithField("error", err.Error()).Error("Failed to commit redemption")
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to redeem invite code"})
		return
	}

	countInviteRedemption("success")
	c.JSON(http.StatusOK, gin.H{"redeemed": true, "code": code})
}

// allowRedeemAttempt enforces the per-IP rate limit via redis INCR with a
// windowed expiry. Without redis the limit is skipped rather than blocking
// redemptions.
func allowRedeemAttempt(c *gin.Context) bool {
	if redisClient == nil {
		return true
	}

	ctx := c.Request.Context()
	key := "invite_redeem_rl:" + c.ClientIP()
	count, err := redisClient.Incr(ctx, key).Result()
	if err != nil {
		logger.WithFields(logging.Fields{
			"error": err.Error(),
		}).Warn("Redis rate limit check failed, allowing request")
		return true
	}
	if count == 1 {
		redisClient.Expire(ctx, key, redeemRateWindow)
	}
	return count <= redeemRateLimit
}

func countInviteRedemption(outcome string) {
	if serviceMetrics != nil {
		serviceMetrics.InviteRedemptions.WithLabelValues(outcome).Inc()
	}
}
