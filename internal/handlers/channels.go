package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	api "spyglass/pkg/api/spyglass"
	"spyglass/pkg/logging"
)

// GetChannels returns the distinct channels the creator has posted to, for
// the dashboard filter dropdown. Results are cached per creator with
// stale-while-revalidate; a query failure yields an empty list rather than
// an error since the dropdown is not critical.
func GetChannels(c *gin.Context) {
	creatorID := c.GetString("creator_id")
	if creatorID == "" {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Creator context required"})
		return
	}

	val, ok, err := channelCache.Get(c.Request.Context(), "channels:"+creatorID, loadChannels)
	if err != nil || !ok {
		c.JSON(http.StatusOK, api.ChannelsResponse{Channels: []string{}})
		return
	}

	channels, _ := val.([]string)
	if channels == nil {
		channels = []string{}
	}
	c.JSON(http.StatusOK, api.ChannelsResponse{Channels: channels})
}

func loadChannels(ctx context.Context, key string) (interface{}, bool, error) {
	creatorID := key[len("channels:"):]

	rows, err := db.QueryContext(ctx, `
		SELECT DISTINCT jsonb_array_elements_text(doc->'channels') AS channel
		FROM content_posts
		WHERE creator_id = $1
		ORDER BY channel`, creatorID)
	if err != nil {
		logger.WithFields(logging.Fields{
			"creator_id": creatorID,
			"error":      err.Error(),
		}).Warn("Failed to load creator channels")
		return nil, false, err
	}
	defer rows.Close()

	channels := []string{}
	for rows.Next() {
		var channel string
		if err := rows.Scan(&channel); err != nil {
			return nil, false, err
		}
		channels = append(channels, channel)
	}
	if err := rows.Err(); err != nil {
		return nil, false, err
	}
	return channels, true, nil
}
