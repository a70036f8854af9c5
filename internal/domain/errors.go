package domain

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
)

// Sentinel errors for account and submission flows
var (
	// ErrNotSignedIn indicates the operation needs an authenticated user
	ErrNotSignedIn = errors.New("not signed in")

	// ErrInvalidLogin indicates the email/password pair was rejected
	ErrInvalidLogin = errors.New("email or password is incorrect")

	// ErrEmailTaken indicates sign-up hit an existing account
	ErrEmailTaken = errors.New("an account with this email already exists")

	// ErrSessionExpired indicates the stored session could not be refreshed
	ErrSessionExpired = errors.New("session expired, sign in again")
)

// SchemaError is a request the backend parsed and rejected: unknown
// column, bad filter shape, constraint violation. Code carries the
// backend's error code (SQLSTATE or PGRST*) when one was returned.
type SchemaError struct {
	Code    string
	Message string
}

func (e *SchemaError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("backend rejected request (%s): %s", e.Code, e.Message)
	}
	return "backend rejected request: " + e.Message
}

// TransportError is a failure to reach the backend at all: DNS, refused
// connection, timeout. The request never produced a response.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return "backend unreachable: " + e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ErrorClass buckets a fetch failure for user messaging
type ErrorClass int

const (
	ClassBackend      ErrorClass = iota // Backend responded with an error
	ClassConnectivity                   // No usable response at all
	ClassSchema                         // Request shape rejected
)

// connectivitySignatures matches errors that arrive flattened to text.
// The transport stack is not consistent about error types, so the string
// check backs up the type checks.
var connectivitySignatures = []string{
	"connection refused",
	"connection reset",
	"no such host",
	"network is unreachable",
	"timeout",
	"timed out",
	"broken pipe",
	"unexpected eof",
}

// Classify buckets err: connectivity failures are separated from
// everything the backend actually answered
func Classify(err error) ErrorClass {
	var se *SchemaError
	if errors.As(err, &se) {
		return ClassSchema
	}
	var te *TransportError
	if errors.As(err, &te) {
		return ClassConnectivity
	}
	var ne net.Error
	if errors.As(err, &ne) {
		return ClassConnectivity
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ClassConnectivity
	}
	msg := strings.ToLower(err.Error())
	for _, sig := range connectivitySignatures {
		if strings.Contains(msg, sig) {
			return ClassConnectivity
		}
	}
	return ClassBackend
}

// The two user-facing fetch failure messages. Screens show one of these
// with a retry hint and never the raw error.
const (
	MsgConnectivity = "Couldn't reach the server. Check your connection and try again."
	MsgBackend      = "Something went wrong loading this list. Try again."
)

// UserMessage maps any fetch failure to the message a screen shows
func UserMessage(err error) string {
	if Classify(err) == ClassConnectivity {
		return MsgConnectivity
	}
	return MsgBackend
}

// missingColumnCodes are the unknown-column rejections: 42703 is the
// Postgres undefined_column SQLSTATE, PGRST204 is the REST layer's
// schema-cache miss for a named column.
var missingColumnCodes = map[string]bool{
	"42703":    true,
	"PGRST204": true,
}

// IsMissingColumn reports whether err is the unknown-column rejection that
// categories with optional flag columns tolerate during schema rollout.
// The message fallbacks cover backend versions that return 400s without a
// stable code.
func IsMissingColumn(err error) bool {
	var se *SchemaError
	if !errors.As(err, &se) {
		return false
	}
	if missingColumnCodes[se.Code] {
		return true
	}
	msg := strings.ToLower(se.Message)
	return strings.Contains(msg, "does not exist") || strings.Contains(msg, "could not find")
}
