package analytics

// AllChannels is the channel filter value that matches every record.
const AllChannels = "All"

// Timestamp field priority per collection. Posts historically stamped
// createdAt while inbox messages stamped timestamp first, so the priority
// order differs.
var (
	postTimestampFields    = []string{"createdAt", "created_at", "publishedAt", "timestamp"}
	messageTimestampFields = []string{"timestamp", "createdAt", "created_at", "receivedAt"}
)

// FilterPosts returns the posts that carry a parseable timestamp inside the
// window and match the channel filter. Records whose timestamp cannot be
// normalized are dropped here and never reach a metric computer.
func FilterPosts(posts []Record, w Window, channel string) []TimedRecord {
	return filterRecords(posts, w, postTimestampFields, func(rec Record) bool {
		if channel == "" || channel == AllChannels {
			return true
		}
		for _, ch := range rec.StringsField("channels", "platforms") {
			if ch == channel {
				return true
			}
		}
		return false
	})
}

// FilterMessages is the inbox counterpart of FilterPosts. Messages carry a
// single platform field instead of a channel list.
func FilterMessages(messages []Record, w Window, channel string) []TimedRecord {
	return filterRecords(messages, w, messageTimestampFields, func(rec Record) bool {
		if channel == "" || channel == AllChannels {
			return true
		}
		return rec.StringField("platform", "channel") == channel
	})
}

func filterRecords(recs []Record, w Window, tsFields []string, match func(Record) bool) []TimedRecord {
	out := make([]TimedRecord, 0, len(recs))
	for _, rec := range recs {
		if rec == nil {
			continue
		}
		at, ok := NormalizeTimestamp(rec, tsFields...)
		if !ok || !w.Contains(at) {
			continue
		}
		if !match(rec) {
			continue
		}
		out = append(out, TimedRecord{Record: rec, At: at})
	}
	return out
}
