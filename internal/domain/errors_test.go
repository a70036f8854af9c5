package domain

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
)

// timeoutErr satisfies net.Error the way transport timeouts do
type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected ErrorClass
	}{
		{
			name:     "schema error",
			err:      &SchemaError{Code: "42703", Message: "column content.is_podcast does not exist"},
			expected: ClassSchema,
		},
		{
			name:     "wrapped schema error",
			err:      fmt.Errorf("loading list: %w", &SchemaError{Message: "bad filter"}),
			expected: ClassSchema,
		},
		{
			name:     "transport error",
			err:      &TransportError{Err: errors.New("dial tcp: connect: connection refused")},
			expected: ClassConnectivity,
		},
		{
			name:     "net error type",
			err:      &net.OpError{Op: "dial", Err: timeoutErr{}},
			expected: ClassConnectivity,
		},
		{
			name:     "deadline exceeded",
			err:      context.DeadlineExceeded,
			expected: ClassConnectivity,
		},
		{
			name:     "flattened timeout text",
			err:      errors.New("request timed out after 30s"),
			expected: ClassConnectivity,
		},
		{
			name:     "backend 500",
			err:      errors.New("unexpected status code: 500"),
			expected: ClassBackend,
		},
		{
			name:     "plain failure",
			err:      errors.New("something else"),
			expected: ClassBackend,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Classify(tt.err))
		})
	}
}

func TestUserMessage(t *testing.T) {
	connectivity := &TransportError{Err: errors.New("no such host")}
	backend := errors.New("unexpected status code: 503")
	schema := &SchemaError{Code: "PGRST100", Message: "failed to parse order"}

	assert.Equal(t, MsgConnectivity, UserMessage(connectivity))
	assert.Equal(t, MsgBackend, UserMessage(backend))
	assert.Equal(t, MsgBackend, UserMessage(schema), "schema rejections read as backend failures")
}

func TestIsMissingColumn(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "undefined column sqlstate",
			err:      &SchemaError{Code: "42703", Message: "column content.is_article does not exist"},
			expected: true,
		},
		{
			name:     "schema cache miss code",
			err:      &SchemaError{Code: "PGRST204", Message: "Could not find the 'is_podcast' column of 'content' in the schema cache"},
			expected: true,
		},
		{
			name:     "message signature without code",
			err:      &SchemaError{Message: "column \"is_podcast\" does not exist"},
			expected: true,
		},
		{
			name:     "wrapped missing column",
			err:      fmt.Errorf("fetch: %w", &SchemaError{Code: "42703", Message: "does not exist"}),
			expected: true,
		},
		{
			name:     "other schema error",
			err:      &SchemaError{Code: "PGRST100", Message: "unexpected order direction"},
			expected: false,
		},
		{
			name:     "non-schema error with matching text",
			err:      errors.New("column does not exist"),
			expected: false,
		},
		{
			name:     "connectivity error",
			err:      &TransportError{Err: errors.New("connection reset")},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsMissingColumn(tt.err))
		})
	}
}

func TestTransportError_Unwrap(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := &TransportError{Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "backend unreachable")
}

func TestSchemaError_Error(t *testing.T) {
	withCode := &SchemaError{Code: "42703", Message: "column does not exist"}
	withoutCode := &SchemaError{Message: "bad request"}

	assert.Contains(t, withCode.Error(), "42703")
	assert.Contains(t, withoutCode.Error(), "bad request")
}
