package analytics

import (
	"fmt"
	"sort"
	"time"
)

// Bucket accumulates per-period counts for a time series. Key is a sortable
// period identifier, Label is what the series point displays. Buckets exist
// only for periods that actually contain records; empty periods produce no
// bucket and therefore no series point.
type Bucket struct {
	Key   string
	Label string
	Num   int
	Den   int
	Sum   int
}

// KeyFunc maps an instant to a period key and display label.
type KeyFunc func(t time.Time) (key, label string)

// DayKey buckets by calendar day.
func DayKey(t time.Time) (string, string) {
	return t.Format("2006-01-02"), t.Format("Jan 2")
}

// WeekKey buckets by ISO week.
func WeekKey(t time.Time) (string, string) {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%04d-%02d", year, week), fmt.Sprintf("Week %d", week)
}

// BucketRules drive what each record contributes to its bucket. Every record
// increments Den. Count, when set, decides whether the record also increments
// Num. Sum, when set, adds the record's contribution to the bucket Sum.
type BucketRules struct {
	Count func(TimedRecord) bool
	Sum   func(TimedRecord) int
}

// BucketRecords groups records into periods and returns the buckets in
// chronological order.
func BucketRecords(recs []TimedRecord, key KeyFunc, rules BucketRules) []Bucket {
	byKey := make(map[string]*Bucket)
	for _, rec := range recs {
		k, label := key(rec.At)
		b, ok := byKey[k]
		if !ok {
			b = &Bucket{Key: k, Label: label}
			byKey[k] = b
		}
		b.Den++
		if rules.Count != nil && rules.Count(rec) {
			b.Num++
		}
		if rules.Sum != nil {
			b.Sum += rules.Sum(rec)
		}
	}

	buckets := make([]Bucket, 0, len(byKey))
	for _, b := range byKey {
		buckets = append(buckets, *b)
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Key < buckets[j].Key })
	return buckets
}

// TrimOldest keeps at most max buckets, dropping the oldest first.
func TrimOldest(buckets []Bucket, max int) []Bucket {
	if max <= 0 || len(buckets) <= max {
		return buckets
	}
	return buckets[len(buckets)-max:]
}
