package analytics

import (
	"encoding/json"
	"strings"
	"time"
)

// Timestamp layouts accepted for string-encoded instants. RFC3339 variants
// come first since that is what the ingestion path writes today; the looser
// layouts cover documents imported from older exports.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// NormalizeTimestamp resolves a record's timestamp by trying the candidate
// field names in priority order. The first populated field wins; if its value
// cannot be interpreted as an instant the record is considered untimed and
// the second return value is false. Supported encodings are native time.Time,
// a {"seconds": N} wrapper object, a bare epoch-seconds number, and the
// string layouts above.
func NormalizeTimestamp(rec Record, fields ...string) (time.Time, bool) {
	for _, name := range fields {
		v, ok := rec[name]
		if !ok || v == nil {
			continue
		}
		if s, ok := v.(string); ok && strings.TrimSpace(s) == "" {
			continue
		}
		return coerceTime(v)
	}
	return time.Time{}, false
}

func coerceTime(v interface{}) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		if t.IsZero() {
			return time.Time{}, false
		}
		return t, true
	case map[string]interface{}:
		return secondsWrapper(t)
	case float64:
		return time.Unix(int64(t), 0).UTC(), true
	case int:
		return time.Unix(int64(t), 0).UTC(), true
	case int64:
		return time.Unix(t, 0).UTC(), true
	case json.Number:
		if sec, err := t.Int64(); err == nil {
			return time.Unix(sec, 0).UTC(), true
		}
		if f, err := t.Float64(); err == nil {
			return time.Unix(int64(f), 0).UTC(), true
		}
		return time.Time{}, false
	case string:
		s := strings.TrimSpace(t)
		for _, layout := range timestampLayouts {
			if parsed, err := time.Parse(layout, s); err == nil {
				return parsed, true
			}
		}
		return time.Time{}, false
	default:
		return time.Time{}, false
	}
}

// secondsWrapper handles the serialized timestamp object some older writers
// produced, where the instant lives under a "seconds" key.
func secondsWrapper(obj map[string]interface{}) (time.Time, bool) {
	for _, key := range []string{"seconds", "_seconds"} {
		v, ok := obj[key]
		if !ok || v == nil {
			continue
		}
		switch sec := v.(type) {
		case float64:
			return time.Unix(int64(sec), 0).UTC(), true
		case int64:
			return time.Unix(sec, 0).UTC(), true
		case int:
			return time.Unix(int64(sec), 0).UTC(), true
		case json.Number:
			if i, err := sec.Int64(); err == nil {
				return time.Unix(i, 0).UTC(), true
			}
		}
	}
	return time.Time{}, false
}
