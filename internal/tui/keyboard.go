package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/navatui/nava/internal/catalog"
	"github.com/navatui/nava/internal/domain"
)

// handleKeyMsg handles keyboard input
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Honored everywhere, modals included
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// Handle state-specific keys
	switch m.State {
	case StateHelp:
		// Any key returns to browsing
		m.State = StateBrowsing
		return m, nil

	case StateConfirmSignOut:
		switch {
		case key.Matches(msg, Keys.Confirm):
			return m, SignOutCmd(m.Accounts)
		case key.Matches(msg, Keys.Deny):
			m.State = StateBrowsing
		}
		return m, nil
	}

	// Route to the active overlay if any
	if handled, newModel, cmd := m.routeToModal(msg); handled {
		return newModel, cmd
	}

	// While the filter input is focused every key belongs to it
	if m.List.IsFilterTyping() {
		var cmd tea.Cmd
		m.List, cmd = m.List.Update(msg)
		return m, cmd
	}

	// Global keys
	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, Keys.Help):
		m.State = StateHelp
		return m, nil

	case key.Matches(msg, Keys.Escape):
		if m.List.IsFiltering() {
			m.List.ClearFilter()
		}
		return m, nil

	case key.Matches(msg, Keys.Filter):
		m.List.ToggleFilter()
		return m, nil

	case key.Matches(msg, Keys.Search):
		m.SearchOverlay.Show()
		m.SearchOverlay.SetSize(m.Width, m.Height)
		return m, nil

	case key.Matches(msg, Keys.Sort):
		cat := m.Categories[m.Active]
		if opts := catalog.SortOptions(cat); opts != nil {
			m.SortModal.Show(opts, m.sortModes[cat])
		}
		return m, nil

	case key.Matches(msg, Keys.NextTab):
		return m, m.switchCategory((m.Active + 1) % len(m.Categories))

	case key.Matches(msg, Keys.PrevTab):
		return m, m.switchCategory((m.Active + len(m.Categories) - 1) % len(m.Categories))

	case key.Matches(msg, Keys.Reload):
		return m, m.startLoad()

	case key.Matches(msg, Keys.GridView):
		m.List.ToggleGrid()
		return m, nil

	case key.Matches(msg, Keys.Enter):
		if item := m.List.Selected(); item != nil {
			m.Detail.Show(*item)
			return m, LoadReviewsCmd(m.Reviews, item.ID)
		}
		return m, nil

	case key.Matches(msg, Keys.Review):
		if item := m.List.Selected(); item != nil {
			return m.openReviewForm(*item)
		}
		return m, nil

	case key.Matches(msg, Keys.Apply):
		if m.Accounts.UserID() == "" {
			m.setStatus("Sign in to apply as a narrator", true)
			return m, ClearStatusCmd(3 * time.Second)
		}
		m.ApplyForm.Show()
		return m, nil

	case key.Matches(msg, Keys.AppStatus):
		if m.Accounts.UserID() == "" {
			m.setStatus("Sign in to check your application", true)
			return m, ClearStatusCmd(3 * time.Second)
		}
		return m, LoadApplicationStatusCmd(m.Narrators, m.Accounts.UserID())

	case key.Matches(msg, Keys.SignOut):
		if m.Accounts.UserID() == "" {
			m.setStatus("Browsing as a guest, nothing to sign out of", false)
			return m, ClearStatusCmd(3 * time.Second)
		}
		m.State = StateConfirmSignOut
		return m, nil
	}

	// Remaining keys drive list navigation
	var cmd tea.Cmd
	m.List, cmd = m.List.Update(msg)
	return m, cmd
}

// routeToModal feeds the key to whichever overlay is open. Reports
// whether the key was consumed.
func (m Model) routeToModal(msg tea.KeyMsg) (bool, Model, tea.Cmd) {
	if m.SearchOverlay.IsVisible() {
		switch {
		case key.Matches(msg, Keys.Escape):
			m.SearchOverlay.Hide()
			return true, m, nil
		case key.Matches(msg, Keys.Enter):
			if item := m.SearchOverlay.Selected(); item != nil {
				m.SearchOverlay.Hide()
				m.Detail.Show(*item)
				return true, m, LoadReviewsCmd(m.Reviews, item.ID)
			}
			if query := m.SearchOverlay.Query(); query != "" && !m.SearchOverlay.IsLoading() {
				m.SearchOverlay.SetLoading(true)
				return true, m, SearchCmd(m.Searcher, query)
			}
			return true, m, nil
		}
		var cmd tea.Cmd
		m.SearchOverlay, cmd = m.SearchOverlay.Update(msg)
		return true, m, cmd
	}

	if m.SortModal.IsVisible() {
		handled, selection := m.SortModal.HandleKey(msg.String())
		if handled && selection != nil {
			cat := m.Categories[m.Active]
			if *selection != m.sortModes[cat] {
				// A new order means a new fetch
				m.sortModes[cat] = *selection
				return true, m, m.startLoad()
			}
		}
		return true, m, nil
	}

	if m.ReviewForm.IsVisible() {
		var cmd tea.Cmd
		var submitted bool
		m.ReviewForm, cmd, submitted = m.ReviewForm.Update(msg)
		if submitted {
			return true, m, SubmitReviewCmd(m.Reviews, m.Accounts.UserID(),
				m.ReviewForm.ContentID(), m.ReviewForm.Rating(), m.ReviewForm.Comment())
		}
		return true, m, cmd
	}

	if m.ApplyForm.IsVisible() {
		var cmd tea.Cmd
		var submitted bool
		m.ApplyForm, cmd, submitted = m.ApplyForm.Update(msg)
		if submitted {
			fullName, phone, bio, samplePath := m.ApplyForm.Values()
			m.setStatus("Uploading your sample...", false)
			return true, m, SubmitApplicationCmd(m.Narrators, m.Accounts.UserID(),
				fullName, phone, bio, samplePath)
		}
		return true, m, cmd
	}

	if m.Detail.IsVisible() {
		switch {
		case key.Matches(msg, Keys.Escape):
			m.Detail.Hide()
			return true, m, nil
		case key.Matches(msg, Keys.Review):
			newModel, cmd := m.openReviewForm(m.Detail.Item())
			return true, newModel, cmd
		}
		// The detail overlay has no other interactions
		return true, m, nil
	}

	return false, m, nil
}

// openReviewForm opens the review modal for an item, or nudges guests
// toward signing in.
func (m Model) openReviewForm(item domain.ContentItem) (Model, tea.Cmd) {
	if m.Accounts.UserID() == "" {
		m.setStatus("Sign in to write reviews", true)
		return m, ClearStatusCmd(3 * time.Second)
	}
	m.ReviewForm.Show(item.ID, item.DisplayTitle(m.locale))
	return m, nil
}
