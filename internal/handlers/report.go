package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"spyglass/internal/analytics"
	api "spyglass/pkg/api/spyglass"
	"spyglass/pkg/logging"
)

// GetEngagementReport returns the aggregated engagement report for the
// authenticated creator. The aggregation itself never fails; a record source
// outage or pipeline fault degrades to a zeroed report, still HTTP 200.
func GetEngagementReport(c *gin.Context) {
	start := time.Now()
	rangeToken := c.DefaultQuery("range", analytics.Range30d)
	defer func() {
		if serviceMetrics != nil {
			serviceMetrics.ReportDuration.WithLabelValues(rangeToken).Observe(time.Since(start).Seconds())
		}
	}()

	if serviceMetrics != nil {
		serviceMetrics.ReportRequests.WithLabelValues("requested").Inc()
	}

	creatorID := c.GetString("creator_id")
	if creatorID == "" {
		if serviceMetrics != nil {
			serviceMetrics.ReportRequests.WithLabelValues("error").Inc()
		}
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Creator context required"})
		return
	}

	channel := c.DefaultQuery("channel", analytics.AllChannels)
	ctx := c.Request.Context()

	posts, postsErr := activityStore.FetchPosts(ctx, creatorID)
	if postsErr != nil {
		logger.WithFields(logging.Fields{
			"creator_id": creatorID,
			"error":      postsErr.Error(),
		}).Error("Failed to fetch posts, degrading to empty collection")
		if serviceMetrics != nil {
			serviceMetrics.RecordFetchFailures.WithLabelValues("posts").Inc()
		}
		posts = nil
	}

	messages, messagesErr := activityStore.FetchMessages(ctx, creatorID)
	if messagesErr != nil {
		logger.WithFields(logging.Fields{
			"creator_id": creatorID,
			"error":      messagesErr.Error(),
		}).Error("Failed to fetch messages, degrading to empty collection")
		if serviceMetrics != nil {
			serviceMetrics.RecordFetchFailures.WithLabelValues("messages").Inc()
		}
		messages = nil
	}

	// Total source outage: serve the zeroed shape directly instead of an
	// aggregation over empty inputs, which would look like a quiet period.
	if postsErr != nil && messagesErr != nil {
		if serviceMetrics != nil {
			serviceMetrics.ReportRequests.WithLabelValues("degraded").Inc()
		}
		c.JSON(http.StatusOK, api.ZeroReport())
		return
	}

	report := pipeline.Run(time.Now(), posts, messages, rangeToken, channel)

	if serviceMetrics != nil {
		serviceMetrics.ReportRequests.WithLabelValues("success").Inc()
	}
	c.JSON(http.StatusOK, report)
}
