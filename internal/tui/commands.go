package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/navatui/nava/internal/account"
	"github.com/navatui/nava/internal/catalog"
	"github.com/navatui/nava/internal/narrator"
	"github.com/navatui/nava/internal/review"
	"github.com/navatui/nava/internal/search"
)

// commandTimeout bounds every backend call made from the UI
const commandTimeout = 30 * time.Second

// LoadCategoryCmd fetches one category screen. The sequence number rides
// along so the result can be matched against the screen session that
// started it.
func LoadCategoryCmd(coordinator *catalog.Coordinator, userID string, category catalog.Category, mode catalog.SortMode, seq uint64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()

		items, err := coordinator.FetchCategory(ctx, userID, category, mode)
		return ListLoadedMsg{Category: category, Seq: seq, Items: items, Err: err}
	}
}

// SearchCmd runs a catalog search
func SearchCmd(searcher *search.Service, query string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()

		results, err := searcher.Search(ctx, query)
		return SearchResultsMsg{Query: query, Results: results, Err: err}
	}
}

// LoadReviewsCmd fetches the reviews for one item
func LoadReviewsCmd(reviews *review.Service, contentID int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()

		loaded, err := reviews.ListForContent(ctx, contentID)
		return ReviewsLoadedMsg{ContentID: contentID, Reviews: loaded, Err: err}
	}
}

// SubmitReviewCmd stores a review for one item
func SubmitReviewCmd(reviews *review.Service, userID string, contentID int64, rating int, comment string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()

		err := reviews.Submit(ctx, userID, contentID, rating, comment)
		return ReviewSubmittedMsg{ContentID: contentID, Err: err}
	}
}

// SubmitApplicationCmd uploads the voice sample and files a narrator
// application
func SubmitApplicationCmd(narrators *narrator.Service, userID, fullName, phone, bio, samplePath string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()

		app, err := narrators.Submit(ctx, userID, fullName, phone, bio, samplePath)
		return ApplicationSubmittedMsg{Application: app, Err: err}
	}
}

// LoadApplicationStatusCmd fetches the user's narrator application, if any
func LoadApplicationStatusCmd(narrators *narrator.Service, userID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()

		app, err := narrators.Status(ctx, userID)
		return ApplicationStatusMsg{Application: app, Err: err}
	}
}

// SignOutCmd revokes the session and clears the stored refresh token
func SignOutCmd(accounts *account.Service) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()

		return SignedOutMsg{Err: accounts.SignOut(ctx)}
	}
}

// TickCmd drives the loading spinner
func TickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return TickMsg{}
	})
}

// ClearStatusCmd clears the status line after a delay
func ClearStatusCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
