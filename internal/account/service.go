package account

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/navatui/nava/internal/domain"
)

// Service owns the signed-in state: backend auth flows, the persisted
// session, and the access token the data client sends.
type Service struct {
	auth   domain.Authenticator
	store  domain.SessionStore
	tokens domain.TokenSetter
	logger *slog.Logger

	mu      sync.RWMutex
	session *domain.Session
}

// NewService creates a new account service
func NewService(auth domain.Authenticator, store domain.SessionStore, tokens domain.TokenSetter, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{auth: auth, store: store, tokens: tokens, logger: logger}
}

// Restore loads the persisted session, refreshing it when expired.
// Returns false when there is nothing usable, which leaves the client
// browsing anonymously.
func (s *Service) Restore(ctx context.Context) (*domain.Session, bool) {
	sess, ok := s.store.LoadSession()
	if !ok {
		return nil, false
	}

	if sess.Expired(time.Now()) {
		refreshed, err := s.auth.Refresh(ctx, sess.RefreshToken)
		if err != nil {
			s.logger.Warn("failed to refresh stored session", "error", err)
			_ = s.store.ClearSession()
			return nil, false
		}
		sess = refreshed
	}

	s.adopt(sess)
	s.logger.Info("restored session", "user", sess.UserID)
	return sess, true
}

// SignIn authenticates with an email/password pair and persists the
// resulting session
func (s *Service) SignIn(ctx context.Context, email, password string) (*domain.Session, error) {
	sess, err := s.auth.SignIn(ctx, email, password)
	if err != nil {
		return nil, err
	}
	s.adopt(sess)
	return sess, nil
}

// SignUp registers a new account and persists the resulting session
func (s *Service) SignUp(ctx context.Context, email, password string) (*domain.Session, error) {
	sess, err := s.auth.SignUp(ctx, email, password)
	if err != nil {
		return nil, err
	}
	s.adopt(sess)
	return sess, nil
}

// SignOut revokes the session server-side and always discards the local
// one, even when the revoke fails
func (s *Service) SignOut(ctx context.Context) error {
	s.mu.Lock()
	sess := s.session
	s.session = nil
	s.mu.Unlock()

	s.tokens.SetAccessToken("")
	if err := s.store.ClearSession(); err != nil {
		s.logger.Error("failed to clear stored session", "error", err)
	}

	if sess == nil {
		return nil
	}
	if err := s.auth.SignOut(ctx, sess.AccessToken); err != nil {
		s.logger.Warn("server-side sign-out failed", "error", err)
		return err
	}
	return nil
}

// Current returns the active session, if any
func (s *Service) Current() (*domain.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return nil, false
	}
	return s.session, true
}

// UserID returns the signed-in user's id, or "" when browsing anonymously
func (s *Service) UserID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return ""
	}
	return s.session.UserID
}

// Email returns the signed-in user's email, or "" when anonymous
func (s *Service) Email() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return ""
	}
	return s.session.Email
}

// adopt installs a session: cache it, persist it, point the data client
// at its token
func (s *Service) adopt(sess *domain.Session) {
	s.mu.Lock()
	s.session = sess
	s.mu.Unlock()

	s.tokens.SetAccessToken(sess.AccessToken)
	if err := s.store.SaveSession(sess); err != nil {
		s.logger.Error("failed to persist session", "error", err)
	}
}
