package spyglass

import (
	"spyglass/pkg/api/common"
)

// SeriesPoint is a single named value in a chart series
type SeriesPoint struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// Insight is a single human-readable observation for the dashboard
type Insight struct {
	Icon        string `json:"icon"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Report is the engagement report returned to the dashboard. Every field is
// always present; on internal failure the zero-valued shape is returned
// instead of an error payload.
type Report struct {
	ResponseRate       []SeriesPoint `json:"responseRate"`
	FollowerGrowth     []SeriesPoint `json:"followerGrowth"`
	Sentiment          []SeriesPoint `json:"sentiment"`
	TotalReplies       int           `json:"totalReplies"`
	NewFollowers       int           `json:"newFollowers"`
	EngagementIncrease int           `json:"engagementIncrease"`
	TopTopics          []string      `json:"topTopics"`
	SuggestedFaqs      []string      `json:"suggestedFaqs"`
	EngagementInsights []Insight     `json:"engagementInsights"`
}

// ZeroReport returns a fully-populated empty report. Numeric fields are 0 and
// every list is non-nil so the JSON shape stays stable.
func ZeroReport() Report {
	return Report{
		ResponseRate:       []SeriesPoint{},
		FollowerGrowth:     []SeriesPoint{},
		Sentiment:          []SeriesPoint{},
		TopTopics:          []string{},
		SuggestedFaqs:      []string{},
		EngagementInsights: []Insight{},
	}
}

// ChannelsResponse represents the response from GetChannels
type ChannelsResponse struct {
	Channels []string `json:"channels"`
}

// ErrorResponse is a type alias to the common error response
type ErrorResponse = common.ErrorResponse
