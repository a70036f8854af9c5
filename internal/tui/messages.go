package tui

import (
	"github.com/navatui/nava/internal/catalog"
	"github.com/navatui/nava/internal/domain"
)

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// ListLoadedMsg carries the outcome of one category fetch. Seq ties it
// back to the screen session that issued the fetch; stale sequences are
// discarded on commit.
type ListLoadedMsg struct {
	Category catalog.Category
	Seq      uint64
	Items    []domain.ContentItem
	Err      error
}

// SearchResultsMsg signals that server search results are ready
type SearchResultsMsg struct {
	Query   string
	Results []domain.ContentItem
	Err     error
}

// ReviewsLoadedMsg signals that reviews for an item have been loaded
type ReviewsLoadedMsg struct {
	ContentID int64
	Reviews   []domain.Review
	Err       error
}

// ReviewSubmittedMsg signals the outcome of a review submission
type ReviewSubmittedMsg struct {
	ContentID int64
	Err       error
}

// ApplicationSubmittedMsg signals the outcome of a narrator application
type ApplicationSubmittedMsg struct {
	Application *domain.NarratorApplication
	Err         error
}

// ApplicationStatusMsg carries the user's latest narrator application,
// nil when they never applied
type ApplicationStatusMsg struct {
	Application *domain.NarratorApplication
	Err         error
}

// SignedOutMsg signals that sign-out finished
type SignedOutMsg struct {
	Err error
}

// StatusMsg sets a temporary status message
type StatusMsg struct {
	Message string
	IsError bool
}

// ClearStatusMsg clears the status bar message
type ClearStatusMsg struct{}

// TickMsg is a general tick message for animations
type TickMsg struct{}
