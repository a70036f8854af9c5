package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/navatui/nava/internal/domain"
)

const (
	defaultTimeout = 30 * time.Second
	userAgent      = "Nava/1.0"

	restPath    = "/rest/v1"
	authPath    = "/auth/v1"
	storagePath = "/storage/v1"
)

// Client talks to the hosted backend's REST surface. It implements
// domain.DataSource, domain.Mutator, domain.FileStore and
// domain.TokenSetter. Requests ride the anon key until a user signs in.
type Client struct {
	baseURL    string
	anonKey    string
	httpClient *http.Client
	logger     *slog.Logger

	mu          sync.RWMutex
	accessToken string
}

// NewClient creates a new backend client
func NewClient(baseURL, anonKey string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		anonKey: anonKey,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
	}
}

// SetAccessToken switches subsequent requests to the signed-in user's
// token. Empty reverts to anonymous access.
func (c *Client) SetAccessToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accessToken = token
}

func (c *Client) bearer() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.accessToken != "" {
		return c.accessToken
	}
	return c.anonKey
}

// Query returns up to q.Limit rows from table
func (c *Client) Query(ctx context.Context, table string, q domain.RemoteQuery) ([]domain.Row, error) {
	params := buildParams(q)
	body, err := c.doRequest(ctx, http.MethodGet, restPath+"/"+table, params, nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeRows(body)
}

// QueryIn is Query with a membership predicate on column
func (c *Client) QueryIn(ctx context.Context, table, column string, ids []int64, q domain.RemoteQuery) ([]domain.Row, error) {
	params := buildParams(q)
	params.Add(column, "in.("+joinIDs(ids)+")")
	body, err := c.doRequest(ctx, http.MethodGet, restPath+"/"+table, params, nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeRows(body)
}

// Insert adds one row to table
func (c *Client) Insert(ctx context.Context, table string, record any) error {
	return c.write(ctx, table, record, "return=minimal")
}

// Upsert adds one row, replacing an existing row with the same conflict key
func (c *Client) Upsert(ctx context.Context, table string, record any) error {
	return c.write(ctx, table, record, "resolution=merge-duplicates,return=minimal")
}

func (c *Client) write(ctx context.Context, table string, record any, prefer string) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}
	headers := map[string]string{
		"Content-Type": "application/json",
		"Prefer":       prefer,
	}
	_, err = c.doRequest(ctx, http.MethodPost, restPath+"/"+table, nil, bytes.NewReader(payload), headers)
	return err
}

// doRequest performs one authenticated request and returns the response
// body. Transport failures come back as *domain.TransportError, rejected
// requests as *domain.SchemaError.
func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values, body io.Reader, headers map[string]string) ([]byte, error) {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL = reqURL + "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Authorization", "Bearer "+c.bearer())
	req.Header.Set("User-Agent", userAgent)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	c.logger.Debug("backend request", "method", method, "path", path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("backend request failed", "path", path, "error", err)
		return nil, &domain.TransportError{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.TransportError{Err: err}
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, domain.ErrSessionExpired
	}
	if resp.StatusCode >= 400 {
		c.logger.Error("backend request rejected",
			"path", path, "status", resp.StatusCode, "body", string(respBody))
		return nil, parseAPIError(resp.StatusCode, respBody)
	}

	return respBody, nil
}

// apiError is the error envelope the REST surface returns
type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

// parseAPIError maps an error response to the domain taxonomy. 4xx with a
// decodable envelope means the backend understood and rejected the
// request; everything else stays a plain status error.
func parseAPIError(status int, body []byte) error {
	var e apiError
	if err := json.Unmarshal(body, &e); err == nil && (e.Code != "" || e.Message != "") {
		if status < 500 {
			return &domain.SchemaError{Code: e.Code, Message: e.Message}
		}
		return fmt.Errorf("backend error %d: %s", status, e.Message)
	}
	return fmt.Errorf("unexpected status code: %d", status)
}

// buildParams renders a RemoteQuery as REST query parameters:
// select=..., col=eq.value, order=col.desc, limit=n
func buildParams(q domain.RemoteQuery) url.Values {
	params := url.Values{}

	sel := q.Select
	if sel == "" {
		sel = "*"
	}
	params.Set("select", sel)

	for _, f := range q.Filters {
		if f.Op == "" {
			params.Add(f.Column, formatValue(f.Value))
			continue
		}
		params.Add(f.Column, f.Op+"."+formatValue(f.Value))
	}

	if q.Order.Column != "" {
		dir := "desc"
		if q.Order.Ascending {
			dir = "asc"
		}
		params.Set("order", q.Order.Column+"."+dir)
	}

	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}

	return params
}

func formatValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", val)
	}
}

func joinIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}

func decodeRows(body []byte) ([]domain.Row, error) {
	var rows []domain.Row
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return rows, nil
}
