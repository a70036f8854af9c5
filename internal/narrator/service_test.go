package narrator

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/navatui/nava/internal/domain"
)

// mockMutator records the filed application
type mockMutator struct {
	insertErr    error
	insertTable  string
	insertRecord any
}

func (m *mockMutator) Insert(ctx context.Context, table string, record any) error {
	m.insertTable = table
	m.insertRecord = record
	return m.insertErr
}

func (m *mockMutator) Upsert(ctx context.Context, table string, record any) error {
	return errors.New("unexpected Upsert")
}

// mockFileStore records uploads
type mockFileStore struct {
	uploadErr   error
	bucket      string
	path        string
	contentType string
	data        []byte
}

func (m *mockFileStore) Upload(ctx context.Context, bucket, path, contentType string, data []byte) error {
	m.bucket = bucket
	m.path = path
	m.contentType = contentType
	m.data = data
	return m.uploadErr
}

func (m *mockFileStore) PublicURL(bucket, path string) string {
	return "https://cdn.example.com/" + bucket + "/" + path
}

// mockSource returns canned application rows
type mockSource struct {
	rows  []domain.Row
	err   error
	query domain.RemoteQuery
}

func (m *mockSource) Query(ctx context.Context, table string, q domain.RemoteQuery) ([]domain.Row, error) {
	m.query = q
	if m.err != nil {
		return nil, m.err
	}
	return m.rows, nil
}

func (m *mockSource) QueryIn(ctx context.Context, table, column string, ids []int64, q domain.RemoteQuery) ([]domain.Row, error) {
	return nil, errors.New("unexpected QueryIn")
}

func writeSample(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func TestService_Submit(t *testing.T) {
	writer := &mockMutator{}
	files := &mockFileStore{}
	svc := NewService(writer, files, &mockSource{}, nil)

	sample := writeSample(t, "voice.mp3", []byte("fake-audio"))
	app, err := svc.Submit(context.Background(), "u-1", " مریم راد ", "09120000000", "دو سال سابقه", sample)
	require.NoError(t, err)

	assert.Equal(t, "narration-samples", files.bucket)
	assert.True(t, strings.HasPrefix(files.path, "u-1/"), "samples are namespaced per user, got %s", files.path)
	assert.True(t, strings.HasSuffix(files.path, ".mp3"))
	assert.Equal(t, "audio/mpeg", files.contentType)
	assert.Equal(t, []byte("fake-audio"), files.data)

	assert.Equal(t, "narrator_applications", writer.insertTable)
	rec, ok := writer.insertRecord.(applicationRecord)
	require.True(t, ok)
	assert.Equal(t, "مریم راد", rec.FullName, "whitespace is trimmed")
	assert.Equal(t, "pending", rec.Status)
	assert.Equal(t, files.path, rec.SamplePath)

	assert.Equal(t, files.path, app.SamplePath)
	assert.Equal(t, "pending", app.Status)
}

func TestService_Submit_FreshPathPerAttempt(t *testing.T) {
	files := &mockFileStore{}
	svc := NewService(&mockMutator{}, files, &mockSource{}, nil)

	sample := writeSample(t, "voice.wav", []byte("fake-audio"))

	_, err := svc.Submit(context.Background(), "u-1", "مریم", "0912", "", sample)
	require.NoError(t, err)
	first := files.path

	_, err = svc.Submit(context.Background(), "u-1", "مریم", "0912", "", sample)
	require.NoError(t, err)

	assert.NotEqual(t, first, files.path, "resubmission must not overwrite the previous sample")
}

func TestService_Submit_Validation(t *testing.T) {
	sampleOK := func(t *testing.T) string { return writeSample(t, "v.mp3", []byte("a")) }

	tests := []struct {
		name     string
		userID   string
		fullName string
		phone    string
		sample   func(t *testing.T) string
		expected error
	}{
		{name: "anonymous", userID: "", fullName: "م", phone: "0912", sample: sampleOK, expected: domain.ErrNotSignedIn},
		{name: "missing name", userID: "u-1", fullName: "  ", phone: "0912", sample: sampleOK, expected: ErrNameRequired},
		{name: "missing phone", userID: "u-1", fullName: "م", phone: "", sample: sampleOK, expected: ErrPhoneRequired},
		{
			name: "no sample path", userID: "u-1", fullName: "م", phone: "0912",
			sample:   func(t *testing.T) string { return "" },
			expected: ErrSampleRequired,
		},
		{
			name: "unsupported format", userID: "u-1", fullName: "م", phone: "0912",
			sample:   func(t *testing.T) string { return writeSample(t, "v.flac", []byte("a")) },
			expected: ErrSampleFormat,
		},
		{
			name: "empty sample file", userID: "u-1", fullName: "م", phone: "0912",
			sample:   func(t *testing.T) string { return writeSample(t, "v.mp3", nil) },
			expected: ErrSampleRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files := &mockFileStore{}
			writer := &mockMutator{}
			svc := NewService(writer, files, &mockSource{}, nil)

			_, err := svc.Submit(context.Background(), tt.userID, tt.fullName, tt.phone, "", tt.sample(t))

			assert.ErrorIs(t, err, tt.expected)
			assert.Empty(t, files.bucket, "invalid applications never upload")
			assert.Empty(t, writer.insertTable)
		})
	}
}

func TestService_Submit_MissingFile(t *testing.T) {
	svc := NewService(&mockMutator{}, &mockFileStore{}, &mockSource{}, nil)

	_, err := svc.Submit(context.Background(), "u-1", "م", "0912", "", filepath.Join(t.TempDir(), "absent.mp3"))

	assert.Error(t, err)
}

func TestService_Submit_UploadFailureSkipsInsert(t *testing.T) {
	files := &mockFileStore{uploadErr: &domain.TransportError{Err: errors.New("connection reset")}}
	writer := &mockMutator{}
	svc := NewService(writer, files, &mockSource{}, nil)

	sample := writeSample(t, "voice.m4a", []byte("fake-audio"))
	_, err := svc.Submit(context.Background(), "u-1", "م", "0912", "", sample)

	assert.Error(t, err)
	assert.Empty(t, writer.insertTable, "no application row without its sample")
}

func TestService_Status(t *testing.T) {
	source := &mockSource{
		rows: []domain.Row{{
			"user_id":     "u-1",
			"full_name":   "مریم راد",
			"phone":       "09120000000",
			"sample_path": "u-1/abc.mp3",
			"status":      "accepted",
			"created_at":  "2024-06-01T10:00:00+00:00",
		}},
	}
	svc := NewService(&mockMutator{}, &mockFileStore{}, source, nil)

	app, err := svc.Status(context.Background(), "u-1")
	require.NoError(t, err)

	require.NotNil(t, app)
	assert.Equal(t, "accepted", app.Status)
	assert.Equal(t, 1, source.query.Limit, "only the latest application matters")
	assert.Equal(t, domain.Order{Column: "created_at", Ascending: false}, source.query.Order)
}

func TestService_Status_NoApplication(t *testing.T) {
	svc := NewService(&mockMutator{}, &mockFileStore{}, &mockSource{}, nil)

	app, err := svc.Status(context.Background(), "u-1")

	require.NoError(t, err)
	assert.Nil(t, app)
}

func TestService_SampleURL(t *testing.T) {
	files := &mockFileStore{}
	svc := NewService(&mockMutator{}, files, &mockSource{}, nil)

	app := &domain.NarratorApplication{SamplePath: "u-1/abc.mp3"}
	assert.Equal(t, "https://cdn.example.com/narration-samples/u-1/abc.mp3", svc.SampleURL(app))
	assert.Empty(t, svc.SampleURL(nil))
}
