package narrator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/navatui/nava/internal/domain"
)

const (
	applicationsTable = "narrator_applications"
	applicationSelect = "user_id,full_name,phone,bio,sample_path,status,created_at"
	sampleBucket      = "narration-samples"
	maxSampleBytes    = 20 << 20 // 20 MiB
)

// Validation errors surfaced directly in the application form
var (
	// ErrNameRequired indicates the applicant left the name empty
	ErrNameRequired = errors.New("full name is required")

	// ErrPhoneRequired indicates the applicant left the phone empty
	ErrPhoneRequired = errors.New("phone number is required")

	// ErrSampleRequired indicates no voice sample file was given
	ErrSampleRequired = errors.New("a voice sample is required")

	// ErrSampleTooLarge indicates the voice sample exceeds the size cap
	ErrSampleTooLarge = errors.New("voice sample is too large (20 MB max)")

	// ErrSampleFormat indicates the voice sample has an unsupported extension
	ErrSampleFormat = errors.New("voice sample must be mp3, m4a, wav or ogg")
)

// sampleContentTypes maps accepted sample extensions to their MIME type
var sampleContentTypes = map[string]string{
	".mp3": "audio/mpeg",
	".m4a": "audio/mp4",
	".wav": "audio/wav",
	".ogg": "audio/ogg",
}

// applicationRecord is the write payload for the applications table
type applicationRecord struct {
	UserID     string `json:"user_id"`
	FullName   string `json:"full_name"`
	Phone      string `json:"phone"`
	Bio        string `json:"bio,omitempty"`
	SamplePath string `json:"sample_path"`
	Status     string `json:"status"`
}

// Service files narrator applications: it uploads the voice sample and
// writes the application row.
type Service struct {
	writer domain.Mutator
	files  domain.FileStore
	source domain.DataSource
	logger *slog.Logger
}

// NewService creates a new narrator application service
func NewService(writer domain.Mutator, files domain.FileStore, source domain.DataSource, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{writer: writer, files: files, source: source, logger: logger}
}

// Submit validates the form, uploads the voice sample and files the
// application. The sample is stored under a fresh uuid so resubmissions
// never collide. Returns the application as filed.
func (s *Service) Submit(ctx context.Context, userID, fullName, phone, bio, samplePath string) (*domain.NarratorApplication, error) {
	if userID == "" {
		return nil, domain.ErrNotSignedIn
	}
	if strings.TrimSpace(fullName) == "" {
		return nil, ErrNameRequired
	}
	if strings.TrimSpace(phone) == "" {
		return nil, ErrPhoneRequired
	}
	if strings.TrimSpace(samplePath) == "" {
		return nil, ErrSampleRequired
	}

	ext := strings.ToLower(filepath.Ext(samplePath))
	contentType, ok := sampleContentTypes[ext]
	if !ok {
		return nil, ErrSampleFormat
	}

	data, err := os.ReadFile(samplePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read voice sample: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrSampleRequired
	}
	if len(data) > maxSampleBytes {
		return nil, ErrSampleTooLarge
	}

	objectPath := fmt.Sprintf("%s/%s%s", userID, uuid.NewString(), ext)
	if err := s.files.Upload(ctx, sampleBucket, objectPath, contentType, data); err != nil {
		s.logger.Error("failed to upload voice sample", "path", objectPath, "error", err)
		return nil, err
	}

	app := &domain.NarratorApplication{
		UserID:     userID,
		FullName:   strings.TrimSpace(fullName),
		Phone:      strings.TrimSpace(phone),
		Bio:        strings.TrimSpace(bio),
		SamplePath: objectPath,
		Status:     "pending",
	}
	rec := applicationRecord{
		UserID:     app.UserID,
		FullName:   app.FullName,
		Phone:      app.Phone,
		Bio:        app.Bio,
		SamplePath: app.SamplePath,
		Status:     app.Status,
	}
	if err := s.writer.Insert(ctx, applicationsTable, rec); err != nil {
		s.logger.Error("failed to file application", "user", userID, "error", err)
		return nil, err
	}

	s.logger.Info("narrator application filed", "user", userID, "sample", objectPath)
	return app, nil
}

// Status returns the user's most recent application, if any
func (s *Service) Status(ctx context.Context, userID string) (*domain.NarratorApplication, error) {
	if userID == "" {
		return nil, domain.ErrNotSignedIn
	}

	rows, err := s.source.Query(ctx, applicationsTable, domain.RemoteQuery{
		Select:  applicationSelect,
		Filters: []domain.Filter{domain.Eq("user_id", userID)},
		Order:   domain.Order{Column: "created_at", Ascending: false},
		Limit:   1,
	})
	if err != nil {
		s.logger.Error("failed to fetch application status", "user", userID, "error", err)
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	app := applicationFromRow(rows[0])
	return &app, nil
}

// SampleURL returns the public URL of an application's voice sample
func (s *Service) SampleURL(app *domain.NarratorApplication) string {
	if app == nil || app.SamplePath == "" {
		return ""
	}
	return s.files.PublicURL(sampleBucket, app.SamplePath)
}

func applicationFromRow(row domain.Row) domain.NarratorApplication {
	return domain.NarratorApplication{
		UserID:     row.String("user_id"),
		FullName:   row.String("full_name"),
		Phone:      row.String("phone"),
		Bio:        row.String("bio"),
		SamplePath: row.String("sample_path"),
		Status:     row.String("status"),
		CreatedAt:  row.Time("created_at"),
	}
}
