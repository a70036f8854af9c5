package domain

import "time"

// Session is an authenticated backend session. The access token rides on
// every request after sign-in; the refresh token trades for a new pair
// when the access token expires.
type Session struct {
	AccessToken  string
	RefreshToken string
	UserID       string
	Email        string
	ExpiresAt    time.Time
}

// Valid returns true when the session carries enough to authenticate
func (s Session) Valid() bool {
	return s.AccessToken != "" && s.UserID != ""
}

// Expired returns true when the access token is past its lifetime.
// Sessions without a recorded expiry never report expired.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}
