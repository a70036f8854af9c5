package domain

import (
	"fmt"
	"time"
)

// ContentItem is one row of the remote catalog: an audiobook, a music
// album, a podcast series or a narrated article. Items are snapshots of
// backend state at fetch time and are never cached locally.
type ContentItem struct {
	ID        int64     // Backend row id
	TitleFA   string    // Persian title (primary)
	TitleEN   string    // English title (may be empty)
	CoverURL  string    // Cover image URL (may be empty)
	Narrator  string    // Narrator for books, artist for music
	Rating    float64   // Average user rating, 0-5
	PlayCount int       // Total play count across all users
	CreatedAt time.Time // When the item was published

	// Content flags. The optional ones may not exist on older backend
	// deployments; rows from those report false here.
	IsFree          bool // Playable without a subscription
	IsFeatured      bool // Editorial pick for the featured rail
	IsMusic         bool // Music rather than a narrated book
	IsPodcast       bool // Podcast series
	IsArticle       bool // Narrated article
	IsBrandNarrated bool // Narrated by the publisher's own studio
}

// DisplayTitle returns the title for the given locale, falling back to the
// other language when the preferred one is empty
func (c ContentItem) DisplayTitle(locale string) string {
	if locale == "en" {
		if c.TitleEN != "" {
			return c.TitleEN
		}
		return c.TitleFA
	}
	if c.TitleFA != "" {
		return c.TitleFA
	}
	return c.TitleEN
}

// Kind returns the content type identifier: "book", "music", "podcast", "article"
func (c ContentItem) Kind() string {
	switch {
	case c.IsMusic:
		return "music"
	case c.IsPodcast:
		return "podcast"
	case c.IsArticle:
		return "article"
	default:
		return "book"
	}
}

// FormattedRating returns the rating as "4.2", or "-" when unrated
func (c ContentItem) FormattedRating() string {
	if c.Rating <= 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f", c.Rating)
}

// FormattedPlays returns the play count compacted for narrow columns:
// 432, 1.2k, 3.4M
func (c ContentItem) FormattedPlays() string {
	switch {
	case c.PlayCount >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(c.PlayCount)/1_000_000)
	case c.PlayCount >= 1_000:
		return fmt.Sprintf("%.1fk", float64(c.PlayCount)/1_000)
	default:
		return fmt.Sprintf("%d", c.PlayCount)
	}
}

// Review is one user's rating and optional comment on a content item.
// A user keeps at most one review per item; resubmitting replaces it.
type Review struct {
	UserID    string
	ContentID int64
	Rating    int    // 1-5 stars
	Comment   string // Optional free text
	CreatedAt time.Time
}

// NarratorApplication is a listener's request to join the narrator program.
type NarratorApplication struct {
	UserID     string
	FullName   string
	Phone      string
	Bio        string
	SamplePath string // Object path of the uploaded voice sample
	Status     string // "pending", "accepted" or "rejected", set server-side
	CreatedAt  time.Time
}
