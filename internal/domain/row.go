package domain

import (
	"strconv"
	"time"
)

// Row is one decoded record from the remote data source. Values carry
// whatever types the JSON decoder produced: string, float64, bool, nil,
// or a nested map for an embedded resource.
type Row map[string]any

// String returns the column as a string, or "" when absent or null
func (r Row) String(col string) string {
	if s, ok := r[col].(string); ok {
		return s
	}
	return ""
}

// Int64 returns the column as an int64. JSON numbers arrive as float64;
// string ids are tolerated because some endpoints quote bigints.
func (r Row) Int64(col string) int64 {
	switch v := r[col].(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

// Int returns the column as an int, or 0 when absent or non-numeric
func (r Row) Int(col string) int {
	return int(r.Int64(col))
}

// Float returns the column as a float64, or 0 when absent or non-numeric
func (r Row) Float(col string) float64 {
	switch v := r[col].(type) {
	case float64:
		return v
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// Bool returns the column as a bool. Absent and null both report false,
// which is what lets optional flag columns default off.
func (r Row) Bool(col string) bool {
	b, _ := r[col].(bool)
	return b
}

// timeLayouts covers the timestamp shapes the backend emits: RFC 3339
// with an offset, and timestamp-without-timezone from older tables.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
}

// Time returns the column parsed as a timestamp, or the zero time when
// absent or unparseable
func (r Row) Time(col string) time.Time {
	s, ok := r[col].(string)
	if !ok || s == "" {
		return time.Time{}
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// Sub returns an embedded single resource (a joined sub-record) as a Row,
// or nil when the column is absent, null, or not an object
func (r Row) Sub(col string) Row {
	if m, ok := r[col].(map[string]any); ok {
		return Row(m)
	}
	return nil
}
