package analytics

import (
	"math"

	api "spyglass/pkg/api/spyglass"
)

// followerGrowthRate is the heuristic used to estimate follower gain from
// engagement while the platform connectors cannot report real follower
// deltas.
const followerGrowthRate = 0.05

// EngagementDeltaPercent is a placeholder for period-over-period engagement
// change. Computing the real delta needs a previous-window comparison, which
// the aggregation does not do yet.
const EngagementDeltaPercent = 12

// maxGrowthWeeks caps the follower growth series to the most recent weeks.
const maxGrowthWeeks = 8

// Responded reports whether an inbox message has been handled, either via
// the resolution flag or the legacy status field.
func Responded(rec TimedRecord) bool {
	if rec.Record.BoolField("isResolved", "is_resolved") {
		return true
	}
	return rec.Record.StringField("status") == "replied"
}

// Engagement scores a post as likes plus double-weighted comments.
func Engagement(rec TimedRecord) int {
	likes := rec.Record.IntField("likeCount", "likes", "like_count")
	comments := rec.Record.IntField("commentCount", "comments", "comment_count")
	return likes + 2*comments
}

// ResponseRateSeries computes the per-day percentage of messages that were
// responded to. Days with no messages simply do not appear.
func ResponseRateSeries(messages []TimedRecord) []api.SeriesPoint {
	buckets := BucketRecords(messages, DayKey, BucketRules{Count: Responded})
	points := make([]api.SeriesPoint, 0, len(buckets))
	for _, b := range buckets {
		rate := 0
		if b.Den > 0 {
			rate = int(math.Round(100 * float64(b.Num) / float64(b.Den)))
		}
		points = append(points, api.SeriesPoint{Name: b.Label, Value: rate})
	}
	return points
}

// FollowerGrowthSeries estimates weekly follower gains from post engagement,
// keeping only the most recent weeks.
func FollowerGrowthSeries(posts []TimedRecord) []api.SeriesPoint {
	buckets := BucketRecords(posts, WeekKey, BucketRules{
		Sum: func(rec TimedRecord) int {
			return int(math.Floor(float64(Engagement(rec)) * followerGrowthRate))
		},
	})
	buckets = TrimOldest(buckets, maxGrowthWeeks)
	points := make([]api.SeriesPoint, 0, len(buckets))
	for _, b := range buckets {
		points = append(points, api.SeriesPoint{Name: b.Label, Value: b.Sum})
	}
	return points
}

// SentimentDistribution counts messages per sentiment category. The three
// categories are always present so the dashboard chart keeps its shape;
// messages with a missing or unrecognized sentiment count as Neutral.
func SentimentDistribution(messages []TimedRecord) []api.SeriesPoint {
	counts := map[string]int{"Positive": 0, "Neutral": 0, "Negative": 0}
	for _, rec := range messages {
		switch rec.Record.StringField("sentiment") {
		case "Positive", "positive":
			counts["Positive"]++
		case "Negative", "negative":
			counts["Negative"]++
		default:
			counts["Neutral"]++
		}
	}
	return []api.SeriesPoint{
		{Name: "Positive", Value: counts["Positive"]},
		{Name: "Neutral", Value: counts["Neutral"]},
		{Name: "Negative", Value: counts["Negative"]},
	}
}

// TotalResponded counts the messages that were responded to.
func TotalResponded(messages []TimedRecord) int {
	total := 0
	for _, rec := range messages {
		if Responded(rec) {
			total++
		}
	}
	return total
}

// EstimatedNewFollowers applies the growth heuristic to the total engagement
// across all posts in the window.
func EstimatedNewFollowers(posts []TimedRecord) int {
	total := 0
	for _, rec := range posts {
		total += Engagement(rec)
	}
	return int(math.Floor(float64(total) * followerGrowthRate))
}
