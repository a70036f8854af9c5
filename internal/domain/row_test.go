package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRow_Accessors(t *testing.T) {
	// Decode through encoding/json so values carry the types real
	// responses produce.
	payload := `{
		"id": 42,
		"title_fa": "میم",
		"avg_rating": 4.5,
		"play_count": 1200,
		"is_free": true,
		"cover_url": null,
		"narrators": {"name": "آوا"},
		"quoted_id": "97"
	}`
	var row Row
	require.NoError(t, json.Unmarshal([]byte(payload), &row))

	assert.Equal(t, int64(42), row.Int64("id"))
	assert.Equal(t, int64(97), row.Int64("quoted_id"))
	assert.Equal(t, "میم", row.String("title_fa"))
	assert.Equal(t, 4.5, row.Float("avg_rating"))
	assert.Equal(t, 1200, row.Int("play_count"))
	assert.True(t, row.Bool("is_free"))

	sub := row.Sub("narrators")
	require.NotNil(t, sub)
	assert.Equal(t, "آوا", sub.String("name"))
}

func TestRow_MissingAndNullColumns(t *testing.T) {
	row := Row{"cover_url": nil}

	assert.Equal(t, "", row.String("cover_url"))
	assert.Equal(t, "", row.String("absent"))
	assert.Equal(t, int64(0), row.Int64("absent"))
	assert.Equal(t, 0.0, row.Float("absent"))
	assert.False(t, row.Bool("absent"), "absent flag columns read as false")
	assert.False(t, row.Bool("cover_url"))
	assert.Nil(t, row.Sub("absent"))
	assert.True(t, row.Time("absent").IsZero())
}

func TestRow_Time(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected time.Time
	}{
		{
			name:     "rfc3339 with offset",
			value:    "2024-05-02T10:11:12+00:00",
			expected: time.Date(2024, 5, 2, 10, 11, 12, 0, time.UTC),
		},
		{
			name:     "rfc3339 with fractional seconds",
			value:    "2024-05-02T10:11:12.345678+00:00",
			expected: time.Date(2024, 5, 2, 10, 11, 12, 345678000, time.UTC),
		},
		{
			name:     "timestamp without timezone",
			value:    "2024-05-02T10:11:12",
			expected: time.Date(2024, 5, 2, 10, 11, 12, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := Row{"created_at": tt.value}
			assert.True(t, tt.expected.Equal(row.Time("created_at")),
				"expected %v, got %v", tt.expected, row.Time("created_at"))
		})
	}

	assert.True(t, Row{"created_at": "garbage"}.Time("created_at").IsZero())
}

func TestRow_BadNumericStrings(t *testing.T) {
	row := Row{"id": "abc", "avg_rating": "n/a"}

	assert.Equal(t, int64(0), row.Int64("id"))
	assert.Equal(t, 0.0, row.Float("avg_rating"))
}
