package analytics

import (
	"fmt"

	api "spyglass/pkg/api/spyglass"
)

// insightInput is the snapshot of aggregate values the insight rules read.
type insightInput struct {
	PostCount     int
	MessageCount  int
	AvgEngagement float64
	ResponseRate  int
	PositiveShare float64
	TotalReplies  int
}

type insightRule func(in insightInput) (api.Insight, bool)

// Each rule is independent; a rule either fires with a fully formed insight
// or stays silent. Rules never error.
var insightRules = []insightRule{
	func(in insightInput) (api.Insight, bool) {
		if in.PostCount == 0 {
			return api.Insight{
				Icon:        "calendar",
				Title:       "Time to post",
				Description: "No new content went out this period. Posting consistently keeps fans engaged.",
			}, true
		}
		return api.Insight{}, false
	},
	func(in insightInput) (api.Insight, bool) {
		if in.PostCount > 0 && in.AvgEngagement >= 50 {
			return api.Insight{
				Icon:        "trending-up",
				Title:       "Strong engagement",
				Description: fmt.Sprintf("Your posts averaged %.0f interactions this period. Keep the momentum going.", in.AvgEngagement),
			}, true
		}
		return api.Insight{}, false
	},
	func(in insightInput) (api.Insight, bool) {
		if in.MessageCount > 0 && in.ResponseRate >= 70 {
			return api.Insight{
				Icon:        "message-circle",
				Title:       "Responsive inbox",
				Description: fmt.Sprintf("You answered %d%% of fan messages. Fast replies build loyal fans.", in.ResponseRate),
			}, true
		}
		return api.Insight{}, false
	},
	func(in insightInput) (api.Insight, bool) {
		if in.MessageCount >= 5 && in.PositiveShare >= 0.5 {
			return api.Insight{
				Icon:        "smile",
				Title:       "Fans are happy",
				Description: fmt.Sprintf("%.0f%% of recent messages read as positive. Your content is landing well.", in.PositiveShare*100),
			}, true
		}
		return api.Insight{}, false
	},
	func(in insightInput) (api.Insight, bool) {
		if in.MessageCount >= 10 && in.ResponseRate < 40 {
			return api.Insight{
				Icon:        "inbox",
				Title:       "Inbox needs attention",
				Description: fmt.Sprintf("Only %d%% of fan messages got a reply this period.", in.ResponseRate),
			}, true
		}
		return api.Insight{}, false
	},
}

// GenerateInsights evaluates every rule against the aggregates and collects
// the insights that fired. An empty result is valid.
func GenerateInsights(posts, messages []TimedRecord) []api.Insight {
	in := buildInsightInput(posts, messages)
	insights := make([]api.Insight, 0, len(insightRules))
	for _, rule := range insightRules {
		if insight, ok := rule(in); ok {
			insights = append(insights, insight)
		}
	}
	return insights
}

func buildInsightInput(posts, messages []TimedRecord) insightInput {
	in := insightInput{
		PostCount:    len(posts),
		MessageCount: len(messages),
		TotalReplies: TotalResponded(messages),
	}
	if in.PostCount > 0 {
		total := 0
		for _, rec := range posts {
			total += Engagement(rec)
		}
		in.AvgEngagement = float64(total) / float64(in.PostCount)
	}
	if in.MessageCount > 0 {
		in.ResponseRate = int(float64(in.TotalReplies) / float64(in.MessageCount) * 100)
		positive := 0
		for _, rec := range messages {
			switch rec.Record.StringField("sentiment") {
			case "Positive", "positive":
				positive++
			}
		}
		in.PositiveShare = float64(positive) / float64(in.MessageCount)
	}
	return in
}
