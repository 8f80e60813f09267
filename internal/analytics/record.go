package analytics

import (
	"encoding/json"
	"strings"
	"time"
)

// Record is a single loosely-typed activity document as it comes out of the
// document store. Field names are not normalized at rest; several legacy
// aliases may carry the same concept, so all access goes through the helpers
// below.
type Record map[string]interface{}

// TimedRecord pairs a record with its normalized timestamp. Only records that
// survived timestamp normalization and window filtering are ever wrapped, so
// downstream computations cannot accidentally include an unparseable record.
type TimedRecord struct {
	Record Record
	At     time.Time
}

// StringField returns the first non-empty string value among the candidate
// field names.
func (r Record) StringField(names ...string) string {
	for _, name := range names {
		if v, ok := r[name]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}

// IntField returns the first numeric value among the candidate field names,
// coerced to int. JSON decoding yields float64 for numbers; json.Number and
// native ints are handled for callers that decode differently.
func (r Record) IntField(names ...string) int {
	for _, name := range names {
		v, ok := r[name]
		if !ok || v == nil {
			continue
		}
		switch n := v.(type) {
		case float64:
			return int(n)
		case int:
			return n
		case int64:
			return int(n)
		case json.Number:
			if i, err := n.Int64(); err == nil {
				return int(i)
			}
			if f, err := n.Float64(); err == nil {
				return int(f)
			}
		}
	}
	return 0
}

// BoolField returns the first boolean value among the candidate field names.
// String "true"/"false" values are tolerated.
func (r Record) BoolField(names ...string) bool {
	for _, name := range names {
		v, ok := r[name]
		if !ok || v == nil {
			continue
		}
		switch b := v.(type) {
		case bool:
			return b
		case string:
			return strings.EqualFold(b, "true")
		}
	}
	return false
}

// StringsField returns the first list-of-strings value among the candidate
// field names. Both []string and the []interface{} produced by JSON decoding
// are accepted; non-string elements are skipped.
func (r Record) StringsField(names ...string) []string {
	for _, name := range names {
		v, ok := r[name]
		if !ok || v == nil {
			continue
		}
		switch list := v.(type) {
		case []string:
			return list
		case []interface{}:
			out := make([]string, 0, len(list))
			for _, item := range list {
				if s, ok := item.(string); ok {
					out = append(out, s)
				}
			}
			return out
		}
	}
	return nil
}
