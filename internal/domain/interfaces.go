package domain

import "context"

// DataSource executes reads against the hosted backend. Implementations
// return *SchemaError when the backend rejects a request shape and
// connectivity-class errors when it cannot be reached.
type DataSource interface {
	// Query returns up to q.Limit rows from table
	Query(ctx context.Context, table string, q RemoteQuery) ([]Row, error)

	// QueryIn is Query with a membership predicate on top: column must be
	// one of ids. Used to resolve progress rows to catalog items.
	QueryIn(ctx context.Context, table, column string, ids []int64, q RemoteQuery) ([]Row, error)
}

// Mutator performs the few writes this client issues.
type Mutator interface {
	// Insert adds one row to table
	Insert(ctx context.Context, table string, record any) error

	// Upsert adds one row, replacing an existing row with the same
	// conflict key
	Upsert(ctx context.Context, table string, record any) error
}

// FileStore uploads user files to the backend's object storage.
type FileStore interface {
	// Upload stores data at bucket/path with the given content type
	Upload(ctx context.Context, bucket, path, contentType string, data []byte) error

	// PublicURL returns the public access URL for a stored object
	PublicURL(bucket, path string) string
}

// Authenticator is the password auth surface of the backend.
type Authenticator interface {
	SignIn(ctx context.Context, email, password string) (*Session, error)
	SignUp(ctx context.Context, email, password string) (*Session, error)
	SignOut(ctx context.Context, accessToken string) error
	Refresh(ctx context.Context, refreshToken string) (*Session, error)
}

// SessionStore persists the auth session between runs. Catalog data is
// never persisted, only the session.
type SessionStore interface {
	SaveSession(s *Session) error
	LoadSession() (*Session, bool)
	ClearSession() error
}

// TokenSetter is implemented by clients whose requests carry the user's
// access token once signed in. An empty token reverts to anonymous access.
type TokenSetter interface {
	SetAccessToken(token string)
}
