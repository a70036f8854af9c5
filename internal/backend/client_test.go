package backend

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/navatui/nava/internal/domain"
)

func TestClient_Query(t *testing.T) {
	var gotReq *http.Request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotReq = r.Clone(context.Background())
		_ = json.NewEncoder(w).Encode([]map[string]any{
			{"id": 1, "title_fa": "اول"},
			{"id": 2, "title_fa": "دوم"},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "anon-key", nil)
	rows, err := client.Query(context.Background(), "content", domain.RemoteQuery{
		Select: "id,title_fa",
		Filters: []domain.Filter{
			domain.Eq("status", "approved"),
			domain.Eq("is_featured", true),
		},
		Order: domain.Order{Column: "created_at", Ascending: false},
		Limit: 100,
	})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, int64(1), rows[0].Int64("id"))

	require.NotNil(t, gotReq)
	assert.Equal(t, "/rest/v1/content", gotReq.URL.Path)

	params := gotReq.URL.Query()
	assert.Equal(t, "id,title_fa", params.Get("select"))
	assert.Equal(t, "eq.approved", params.Get("status"))
	assert.Equal(t, "eq.true", params.Get("is_featured"))
	assert.Equal(t, "created_at.desc", params.Get("order"))
	assert.Equal(t, "100", params.Get("limit"))

	assert.Equal(t, "anon-key", gotReq.Header.Get("apikey"))
	assert.Equal(t, "Bearer anon-key", gotReq.Header.Get("Authorization"))
}

func TestClient_QueryIn(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte("[]"))
	}))
	defer server.Close()

	client := NewClient(server.URL, "anon-key", nil)
	_, err := client.QueryIn(context.Background(), "content", "id", []int64{7, 3, 9}, domain.RemoteQuery{
		Filters: []domain.Filter{domain.Eq("status", "approved")},
	})
	require.NoError(t, err)

	parsed, err := url.ParseQuery(gotQuery)
	require.NoError(t, err)
	assert.Equal(t, "in.(7,3,9)", parsed.Get("id"))
	assert.Equal(t, "eq.approved", parsed.Get("status"))
	assert.Equal(t, "*", parsed.Get("select"))
}

func TestClient_SetAccessToken(t *testing.T) {
	var auths []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auths = append(auths, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte("[]"))
	}))
	defer server.Close()

	client := NewClient(server.URL, "anon-key", nil)

	_, err := client.Query(context.Background(), "content", domain.RemoteQuery{})
	require.NoError(t, err)

	client.SetAccessToken("user-token")
	_, err = client.Query(context.Background(), "content", domain.RemoteQuery{})
	require.NoError(t, err)

	client.SetAccessToken("")
	_, err = client.Query(context.Background(), "content", domain.RemoteQuery{})
	require.NoError(t, err)

	require.Len(t, auths, 3)
	assert.Equal(t, "Bearer anon-key", auths[0])
	assert.Equal(t, "Bearer user-token", auths[1])
	assert.Equal(t, "Bearer anon-key", auths[2], "clearing the token reverts to anonymous")
}

func TestClient_QueryErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		check  func(t *testing.T, err error)
	}{
		{
			name:   "missing column becomes a schema error",
			status: http.StatusBadRequest,
			body:   `{"code":"42703","message":"column content.is_podcast does not exist"}`,
			check: func(t *testing.T, err error) {
				var se *domain.SchemaError
				require.ErrorAs(t, err, &se)
				assert.Equal(t, "42703", se.Code)
				assert.True(t, domain.IsMissingColumn(err))
			},
		},
		{
			name:   "schema cache miss becomes a schema error",
			status: http.StatusNotFound,
			body:   `{"code":"PGRST204","message":"Could not find the 'is_article' column of 'content' in the schema cache"}`,
			check: func(t *testing.T, err error) {
				assert.True(t, domain.IsMissingColumn(err))
			},
		},
		{
			name:   "server error stays a backend error",
			status: http.StatusInternalServerError,
			body:   `{"message":"internal"}`,
			check: func(t *testing.T, err error) {
				assert.Equal(t, domain.ClassBackend, domain.Classify(err))
				assert.False(t, domain.IsMissingColumn(err))
			},
		},
		{
			name:   "unauthorized maps to the session sentinel",
			status: http.StatusUnauthorized,
			body:   `{"message":"JWT expired"}`,
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, domain.ErrSessionExpired)
			},
		},
		{
			name:   "undecodable error body keeps the status",
			status: http.StatusBadGateway,
			body:   `<html>bad gateway</html>`,
			check: func(t *testing.T, err error) {
				assert.Contains(t, err.Error(), "502")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewClient(server.URL, "anon-key", nil)
			_, err := client.Query(context.Background(), "content", domain.RemoteQuery{})
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestClient_QueryUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // nothing listening anymore

	client := NewClient(server.URL, "anon-key", nil)
	_, err := client.Query(context.Background(), "content", domain.RemoteQuery{})

	require.Error(t, err)
	var te *domain.TransportError
	assert.ErrorAs(t, err, &te)
	assert.Equal(t, domain.ClassConnectivity, domain.Classify(err))
}

func TestClient_InsertAndUpsert(t *testing.T) {
	type recorded struct {
		path   string
		prefer string
		body   map[string]any
	}
	var calls []recorded

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		var decoded map[string]any
		_ = json.Unmarshal(data, &decoded)
		calls = append(calls, recorded{
			path:   r.URL.Path,
			prefer: r.Header.Get("Prefer"),
			body:   decoded,
		})
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	client := NewClient(server.URL, "anon-key", nil)

	err := client.Insert(context.Background(), "narrator_applications", map[string]any{"user_id": "u1"})
	require.NoError(t, err)

	err = client.Upsert(context.Background(), "reviews", map[string]any{"user_id": "u1", "rating": 5})
	require.NoError(t, err)

	require.Len(t, calls, 2)
	assert.Equal(t, "/rest/v1/narrator_applications", calls[0].path)
	assert.Equal(t, "return=minimal", calls[0].prefer)
	assert.Equal(t, "u1", calls[0].body["user_id"])

	assert.Equal(t, "/rest/v1/reviews", calls[1].path)
	assert.Equal(t, "resolution=merge-duplicates,return=minimal", calls[1].prefer)
}

func TestClient_Upload(t *testing.T) {
	var gotPath, gotContentType string
	var gotBody []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		_, _ = w.Write([]byte(`{"Key":"narration-samples/u1/sample.mp3"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "anon-key", nil)
	err := client.Upload(context.Background(), "narration-samples", "u1/sample.mp3", "audio/mpeg", []byte("audio-bytes"))
	require.NoError(t, err)

	assert.Equal(t, "/storage/v1/object/narration-samples/u1/sample.mp3", gotPath)
	assert.Equal(t, "audio/mpeg", gotContentType)
	assert.Equal(t, []byte("audio-bytes"), gotBody)
}

func TestClient_UploadRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"message":"The resource already exists"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "anon-key", nil)
	err := client.Upload(context.Background(), "narration-samples", "u1/sample.mp3", "audio/mpeg", nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestClient_PublicURL(t *testing.T) {
	client := NewClient("https://api.nava.example", "anon-key", nil)

	url := client.PublicURL("narration-samples", "u1/sample.mp3")
	assert.Equal(t, "https://api.nava.example/storage/v1/object/public/narration-samples/u1/sample.mp3", url)
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "approved", formatValue("approved"))
	assert.Equal(t, "true", formatValue(true))
	assert.Equal(t, "false", formatValue(false))
	assert.Equal(t, "42", formatValue(42))
	assert.Equal(t, "42", formatValue(int64(42)))
	assert.Equal(t, "4.5", formatValue(4.5))
}
