package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func timed(at time.Time, rec Record) TimedRecord {
	return TimedRecord{Record: rec, At: at}
}

func TestBucketRecordsSparse(t *testing.T) {
	day1 := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	day3 := time.Date(2026, 8, 3, 9, 0, 0, 0, time.UTC)

	recs := []TimedRecord{
		timed(day1, Record{}),
		timed(day1, Record{}),
		timed(day3, Record{}),
	}

	buckets := BucketRecords(recs, DayKey, BucketRules{})

	// Aug 2 has no records so no bucket exists for it.
	require.Len(t, buckets, 2)
	assert.Equal(t, "Aug 1", buckets[0].Label)
	assert.Equal(t, 2, buckets[0].Den)
	assert.Equal(t, "Aug 3", buckets[1].Label)
	assert.Equal(t, 1, buckets[1].Den)
}

func TestBucketRecordsChronologicalOrder(t *testing.T) {
	days := []time.Time{
		time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 8, 5, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 8, 12, 0, 0, 0, 0, time.UTC),
	}
	recs := make([]TimedRecord, 0, len(days))
	for _, d := range days {
		recs = append(recs, timed(d, Record{}))
	}

	buckets := BucketRecords(recs, DayKey, BucketRules{})
	require.Len(t, buckets, 3)
	assert.Equal(t, []string{"2026-08-05", "2026-08-12", "2026-08-20"},
		[]string{buckets[0].Key, buckets[1].Key, buckets[2].Key})
}

func TestBucketRecordsCountAndSum(t *testing.T) {
	day := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
	recs := []TimedRecord{
		timed(day, Record{"isResolved": true, "likeCount": float64(10)}),
		timed(day, Record{"isResolved": false, "likeCount": float64(20)}),
	}

	buckets := BucketRecords(recs, DayKey, BucketRules{
		Count: Responded,
		Sum:   func(rec TimedRecord) int { return rec.Record.IntField("likeCount") },
	})

	require.Len(t, buckets, 1)
	assert.Equal(t, 1, buckets[0].Num)
	assert.Equal(t, 2, buckets[0].Den)
	assert.Equal(t, 30, buckets[0].Sum)
}

func TestWeekKey(t *testing.T) {
	// Mon Aug 3 2026 and Sun Aug 9 2026 share an ISO week.
	monday := time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC)
	sunday := time.Date(2026, 8, 9, 23, 59, 0, 0, time.UTC)

	k1, label := WeekKey(monday)
	k2, _ := WeekKey(sunday)
	assert.Equal(t, k1, k2)
	assert.Contains(t, label, "Week ")
}

func TestTrimOldest(t *testing.T) {
	buckets := []Bucket{{Key: "a"}, {Key: "b"}, {Key: "c"}, {Key: "d"}}

	trimmed := TrimOldest(buckets, 2)
	require.Len(t, trimmed, 2)
	assert.Equal(t, "c", trimmed[0].Key)
	assert.Equal(t, "d", trimmed[1].Key)

	assert.Len(t, TrimOldest(buckets, 10), 4)
	assert.Len(t, TrimOldest(buckets, 0), 4)
}
