package analytics

import (
	"time"

	api "spyglass/pkg/api/spyglass"
	"spyglass/pkg/logging"
)

// reportTopicLimit is how many topics the report surfaces out of the
// extractor's ranking.
const reportTopicLimit = 5

// reportFAQLimit caps the suggested FAQ list on the report.
const reportFAQLimit = 3

// Swappable in tests to exercise the failure path.
var extractTopics = TopTopics

// Pipeline runs the full aggregation for one report request. It is stateless
// between runs; every Run receives its inputs explicitly so the same inputs
// always produce the same report.
type Pipeline struct {
	logger logging.Logger
}

func NewPipeline(logger logging.Logger) *Pipeline {
	return &Pipeline{logger: logger}
}

// Run aggregates the given activity records into an engagement report. It
// never fails: any panic inside a stage is recovered and the caller gets a
// zeroed report with the full shape intact.
func (p *Pipeline) Run(now time.Time, posts, messages []Record, rangeToken, channel string) (report api.Report) {
	defer func() {
		if r := recover(); r != nil {
			if p.logger != nil {
				p.logger.WithFields(logging.Fields{
					"panic":   r,
					"range":   rangeToken,
					"channel": channel,
				}).Error("Aggregation failed, returning empty report")
			}
			report = api.ZeroReport()
		}
	}()

	window := ResolveWindow(rangeToken, now)
	scopedPosts := FilterPosts(posts, window, channel)
	scopedMessages := FilterMessages(messages, window, channel)

	report = api.Report{
		ResponseRate:       ResponseRateSeries(scopedMessages),
		FollowerGrowth:     FollowerGrowthSeries(scopedPosts),
		Sentiment:          SentimentDistribution(scopedMessages),
		TotalReplies:       TotalResponded(scopedMessages),
		NewFollowers:       EstimatedNewFollowers(scopedPosts),
		TopTopics:          extractTopics(collectTexts(scopedPosts, scopedMessages), reportTopicLimit),
		SuggestedFaqs:      SuggestedFAQs(scopedMessages, reportFAQLimit),
		EngagementInsights: GenerateInsights(scopedPosts, scopedMessages),
	}
	if len(scopedPosts) > 0 {
		report.EngagementIncrease = EngagementDeltaPercent
	}
	return report
}

func collectTexts(posts, messages []TimedRecord) []string {
	texts := make([]string, 0, len(posts)+len(messages))
	for _, rec := range posts {
		if t := rec.Record.StringField("caption", "text", "content", "title"); t != "" {
			texts = append(texts, t)
		}
	}
	for _, rec := range messages {
		if t := rec.Record.StringField("text", "content", "message"); t != "" {
			texts = append(texts, t)
		}
	}
	return texts
}
