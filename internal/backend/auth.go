package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/navatui/nava/internal/domain"
)

// AuthClient drives the backend's password auth endpoints. It is separate
// from Client because auth uses a different error envelope and its
// responses never carry rows.
type AuthClient struct {
	baseURL    string
	anonKey    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewAuthClient creates a new authentication client
func NewAuthClient(baseURL, anonKey string, logger *slog.Logger) *AuthClient {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		anonKey: anonKey,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
	}
}

// tokenResponse is the session payload the auth endpoints return
type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	RefreshToken string `json:"refresh_token"`
	User         struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"user"`
}

// authError is the auth error envelope. Older deployments use
// error/error_description, newer ones msg/error_code.
type authError struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
	Msg              string `json:"msg"`
	ErrorCode        string `json:"error_code"`
}

func (e authError) text() string {
	if e.ErrorDescription != "" {
		return e.ErrorDescription
	}
	if e.Msg != "" {
		return e.Msg
	}
	return e.Error
}

// SignIn trades an email/password pair for a session
func (a *AuthClient) SignIn(ctx context.Context, email, password string) (*domain.Session, error) {
	payload := map[string]string{"email": email, "password": password}
	tok, err := a.doAuthRequest(ctx, "/token?grant_type=password", payload, "")
	if err != nil {
		return nil, err
	}
	a.logger.Info("signed in", "user", tok.User.ID)
	return sessionFromToken(tok), nil
}

// SignUp registers a new account. Deployments with confirmation disabled
// return a usable session immediately.
func (a *AuthClient) SignUp(ctx context.Context, email, password string) (*domain.Session, error) {
	payload := map[string]string{"email": email, "password": password}
	tok, err := a.doAuthRequest(ctx, "/signup", payload, "")
	if err != nil {
		return nil, err
	}
	a.logger.Info("signed up", "user", tok.User.ID)
	return sessionFromToken(tok), nil
}

// Refresh trades a refresh token for a fresh session
func (a *AuthClient) Refresh(ctx context.Context, refreshToken string) (*domain.Session, error) {
	payload := map[string]string{"refresh_token": refreshToken}
	tok, err := a.doAuthRequest(ctx, "/token?grant_type=refresh_token", payload, "")
	if err != nil {
		return nil, err
	}
	return sessionFromToken(tok), nil
}

// SignOut revokes the session server-side. A failed revoke only matters
// for other devices, the local session is discarded regardless.
func (a *AuthClient) SignOut(ctx context.Context, accessToken string) error {
	_, err := a.doAuthRequest(ctx, "/logout", nil, accessToken)
	return err
}

func (a *AuthClient) doAuthRequest(ctx context.Context, path string, payload any, bearer string) (*tokenResponse, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode auth payload: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+authPath+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if bearer == "" {
		bearer = a.anonKey
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", a.anonKey)
	req.Header.Set("Authorization", "Bearer "+bearer)
	req.Header.Set("User-Agent", userAgent)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		a.logger.Error("auth request failed", "path", path, "error", err)
		return nil, &domain.TransportError{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.TransportError{Err: err}
	}

	if resp.StatusCode >= 400 {
		return nil, a.mapAuthError(resp.StatusCode, respBody)
	}
	if resp.StatusCode == http.StatusNoContent || len(respBody) == 0 {
		return &tokenResponse{}, nil
	}

	var tok tokenResponse
	if err := json.Unmarshal(respBody, &tok); err != nil {
		return nil, fmt.Errorf("failed to parse auth response: %w", err)
	}
	return &tok, nil
}

// mapAuthError converts auth failures to the sentinels the UI prompts on
func (a *AuthClient) mapAuthError(status int, body []byte) error {
	var e authError
	_ = json.Unmarshal(body, &e)
	text := strings.ToLower(e.text())

	switch {
	case e.Error == "invalid_grant" || strings.Contains(text, "invalid login credentials"):
		return domain.ErrInvalidLogin
	case status == http.StatusUnprocessableEntity && strings.Contains(text, "already registered"):
		return domain.ErrEmailTaken
	case strings.Contains(text, "already registered") || strings.Contains(text, "already been registered"):
		return domain.ErrEmailTaken
	case status == http.StatusUnauthorized:
		return domain.ErrSessionExpired
	}

	a.logger.Error("auth request rejected", "status", status, "body", string(body))
	if text != "" {
		return fmt.Errorf("auth error %d: %s", status, e.text())
	}
	return fmt.Errorf("unexpected status code: %d", status)
}

// sessionFromToken builds a domain session, timestamping expiry from now
func sessionFromToken(tok *tokenResponse) *domain.Session {
	s := &domain.Session{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		UserID:       tok.User.ID,
		Email:        tok.User.Email,
	}
	if tok.ExpiresIn > 0 {
		s.ExpiresAt = time.Now().Add(time.Duration(tok.ExpiresIn) * time.Second)
	}
	return s
}
