package review

import (
	"context"
	"errors"
	"log/slog"

	"github.com/navatui/nava/internal/domain"
)

const (
	reviewsTable    = "reviews"
	reviewSelect    = "user_id,content_id,rating,comment,created_at"
	maxCommentRunes = 2000
	listLimit       = 100
)

// Validation errors surfaced directly in the review form
var (
	// ErrRatingRange indicates the rating is outside 1-5
	ErrRatingRange = errors.New("rating must be between 1 and 5")

	// ErrCommentTooLong indicates the comment exceeds the length cap
	ErrCommentTooLong = errors.New("comment is too long")
)

// reviewRecord is the write payload for the reviews table. The conflict
// key is (user_id, content_id), so resubmitting replaces the old review.
type reviewRecord struct {
	UserID    string `json:"user_id"`
	ContentID int64  `json:"content_id"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment,omitempty"`
}

// Service submits and lists content reviews.
type Service struct {
	writer domain.Mutator
	source domain.DataSource
	logger *slog.Logger
}

// NewService creates a new review service
func NewService(writer domain.Mutator, source domain.DataSource, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{writer: writer, source: source, logger: logger}
}

// Submit validates and stores one review. A second submit for the same
// item replaces the first.
func (s *Service) Submit(ctx context.Context, userID string, contentID int64, rating int, comment string) error {
	if userID == "" {
		return domain.ErrNotSignedIn
	}
	if rating < 1 || rating > 5 {
		return ErrRatingRange
	}
	if len([]rune(comment)) > maxCommentRunes {
		return ErrCommentTooLong
	}

	rec := reviewRecord{
		UserID:    userID,
		ContentID: contentID,
		Rating:    rating,
		Comment:   comment,
	}
	if err := s.writer.Upsert(ctx, reviewsTable, rec); err != nil {
		s.logger.Error("failed to submit review", "content", contentID, "error", err)
		return err
	}

	s.logger.Info("review submitted", "content", contentID, "rating", rating)
	return nil
}

// ListForContent returns the newest reviews for one item
func (s *Service) ListForContent(ctx context.Context, contentID int64) ([]domain.Review, error) {
	rows, err := s.source.Query(ctx, reviewsTable, domain.RemoteQuery{
		Select:  reviewSelect,
		Filters: []domain.Filter{domain.Eq("content_id", contentID)},
		Order:   domain.Order{Column: "created_at", Ascending: false},
		Limit:   listLimit,
	})
	if err != nil {
		s.logger.Error("failed to fetch reviews", "content", contentID, "error", err)
		return nil, err
	}

	reviews := make([]domain.Review, 0, len(rows))
	for _, row := range rows {
		reviews = append(reviews, reviewFromRow(row))
	}
	return reviews, nil
}

func reviewFromRow(row domain.Row) domain.Review {
	return domain.Review{
		UserID:    row.String("user_id"),
		ContentID: row.Int64("content_id"),
		Rating:    row.Int("rating"),
		Comment:   row.String("comment"),
		CreatedAt: row.Time("created_at"),
	}
}
