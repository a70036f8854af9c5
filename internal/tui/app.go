package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/navatui/nava/internal/account"
	"github.com/navatui/nava/internal/catalog"
	"github.com/navatui/nava/internal/domain"
	"github.com/navatui/nava/internal/narrator"
	"github.com/navatui/nava/internal/review"
	"github.com/navatui/nava/internal/search"
	"github.com/navatui/nava/internal/tui/components"
	"github.com/navatui/nava/internal/tui/styles"
)

// ApplicationState represents the current state of the application
type ApplicationState int

const (
	StateBrowsing ApplicationState = iota
	StateHelp
	StateConfirmSignOut
)

// ChromeHeight is the tab bar plus the footer line
const ChromeHeight = 2

// Model is the main Bubble Tea model for the application
type Model struct {
	// Application state
	State ApplicationState
	Ready bool

	// Services
	Coordinator *catalog.Coordinator
	Accounts    *account.Service
	Reviews     *review.Service
	Narrators   *narrator.Service
	Searcher    *search.Service

	// UI components
	List          components.ContentList
	SortModal     components.SortModal
	Detail        components.Detail
	ReviewForm    components.ReviewForm
	ApplyForm     components.ApplyForm
	SearchOverlay components.SearchOverlay

	// Category screens
	Categories []catalog.Category
	Active     int

	// Dimensions
	Width  int
	Height int

	// UI state
	StatusMsg    string
	StatusIsErr  bool
	SpinnerFrame int

	// One session per category; a session serializes that screen's
	// fetches so a stale response can never overwrite a newer one
	sessions  map[catalog.Category]*catalog.ScreenSession
	sortModes map[catalog.Category]catalog.SortMode

	locale string
}

// NewModel creates a new application model
func NewModel(
	coordinator *catalog.Coordinator,
	accounts *account.Service,
	reviews *review.Service,
	narrators *narrator.Service,
	searcher *search.Service,
	locale string,
	gridColumns int,
) Model {
	categories := catalog.Categories()
	sessions := make(map[catalog.Category]*catalog.ScreenSession, len(categories))
	sortModes := make(map[catalog.Category]catalog.SortMode, len(categories))
	for _, cat := range categories {
		sessions[cat] = catalog.NewScreenSession()
		sortModes[cat] = catalog.SortDefault
	}

	list := components.NewContentList(locale, gridColumns)
	list.SetEmptyMessage(categories[0].EmptyMessage())
	list.SetLoading(true)
	list.SetFocused(true)

	return Model{
		State:         StateBrowsing,
		Coordinator:   coordinator,
		Accounts:      accounts,
		Reviews:       reviews,
		Narrators:     narrators,
		Searcher:      searcher,
		List:          list,
		SortModal:     components.NewSortModal(),
		Detail:        components.NewDetail(locale),
		ReviewForm:    components.NewReviewForm(),
		ApplyForm:     components.NewApplyForm(),
		SearchOverlay: components.NewSearchOverlay(locale),
		Categories:    categories,
		sessions:      sessions,
		sortModes:     sortModes,
		locale:        locale,
	}
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.startLoad(),
		TickCmd(100*time.Millisecond),
	)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case TickMsg:
		m.SpinnerFrame++
		m.List.SetSpinnerFrame(m.SpinnerFrame)
		return m, TickCmd(100 * time.Millisecond)

	case ListLoadedMsg:
		return m.handleListLoaded(msg)

	case SearchResultsMsg:
		if !m.SearchOverlay.IsVisible() || msg.Query != m.SearchOverlay.Query() {
			// The user closed the overlay or kept typing
			return m, nil
		}
		if msg.Err != nil {
			m.SearchOverlay.SetError(domain.UserMessage(msg.Err))
			return m, nil
		}
		m.SearchOverlay.SetResults(msg.Results)
		return m, nil

	case ReviewsLoadedMsg:
		if m.Detail.IsVisible() && m.Detail.Item().ID == msg.ContentID {
			if msg.Err != nil {
				m.Detail.SetReviewsError(msg.Err)
			} else {
				m.Detail.SetReviews(msg.Reviews)
			}
		}
		return m, nil

	case ReviewSubmittedMsg:
		if msg.Err != nil {
			m.setStatus(submitMessage(msg.Err), true)
			return m, ClearStatusCmd(5 * time.Second)
		}
		m.setStatus("Review submitted", false)
		cmds := []tea.Cmd{ClearStatusCmd(3 * time.Second)}
		if m.Detail.IsVisible() && m.Detail.Item().ID == msg.ContentID {
			// Pull the fresh list so the new review shows right away
			cmds = append(cmds, LoadReviewsCmd(m.Reviews, msg.ContentID))
		}
		return m, tea.Batch(cmds...)

	case ApplicationSubmittedMsg:
		if msg.Err != nil {
			m.setStatus(submitMessage(msg.Err), true)
			return m, ClearStatusCmd(5 * time.Second)
		}
		m.setStatus("Application sent. Check back with A for its status.", false)
		return m, ClearStatusCmd(5 * time.Second)

	case ApplicationStatusMsg:
		if msg.Err != nil {
			m.setStatus(submitMessage(msg.Err), true)
			return m, ClearStatusCmd(5 * time.Second)
		}
		if msg.Application == nil {
			m.setStatus("No application on file. Press a to apply.", false)
			return m, ClearStatusCmd(5 * time.Second)
		}
		m.setStatus(fmt.Sprintf("Application from %s: %s",
			msg.Application.CreatedAt.Format("2 Jan 2006"), msg.Application.Status), false)
		return m, ClearStatusCmd(5 * time.Second)

	case SignedOutMsg:
		if msg.Err != nil {
			m.setStatus("Sign out failed: "+submitMessage(msg.Err), true)
			m.State = StateBrowsing
			return m, ClearStatusCmd(5 * time.Second)
		}
		fmt.Println("\nSigned out. Run 'nava' to sign in again.")
		return m, tea.Quit

	case StatusMsg:
		m.setStatus(msg.Message, msg.IsError)
		return m, ClearStatusCmd(3 * time.Second)

	case ClearStatusMsg:
		m.StatusMsg = ""
		m.StatusIsErr = false
		return m, nil

	case ErrMsg:
		m.setStatus(msg.Context+": "+msg.Err.Error(), true)
		return m, ClearStatusCmd(5 * time.Second)
	}

	return m, nil
}

// handleListLoaded commits a fetch outcome onto its category's session
// and, when that category is on screen, into the visible list.
func (m Model) handleListLoaded(msg ListLoadedMsg) (tea.Model, tea.Cmd) {
	session := m.sessions[msg.Category]
	if !session.Commit(msg.Seq, msg.Items, msg.Err) {
		// A newer fetch owns this screen now
		return m, nil
	}
	if msg.Category != m.Categories[m.Active] {
		return m, nil
	}

	m.List.SetLoading(false)
	if msg.Err != nil {
		// The error panel renders from the session snapshot
		return m, nil
	}
	m.List.SetItems(msg.Items)
	return m, nil
}

// startLoad begins a fetch for the active category and returns the
// command that runs it. The played lists need a signed-in user; for
// guests they show a sign-in hint instead of fetching.
func (m *Model) startLoad() tea.Cmd {
	cat := m.Categories[m.Active]

	if cat.Reconciled() && m.Accounts.UserID() == "" {
		m.List.SetItems(nil)
		m.List.SetLoading(false)
		m.List.SetEmptyMessage("Sign in to see your listening history.")
		return nil
	}

	m.List.SetItems(nil)
	m.List.SetEmptyMessage(cat.EmptyMessage())
	m.List.SetLoading(true)

	seq := m.sessions[cat].Begin()
	return LoadCategoryCmd(m.Coordinator, m.Accounts.UserID(), cat, m.sortModes[cat], seq)
}

// switchCategory moves to another tab. Every entry starts a fresh fetch
// with the default order; nothing carries over from the last visit.
func (m *Model) switchCategory(index int) tea.Cmd {
	m.Active = index
	cat := m.Categories[m.Active]
	m.sortModes[cat] = catalog.SortDefault
	return m.startLoad()
}

func (m *Model) setStatus(text string, isErr bool) {
	m.StatusMsg = text
	m.StatusIsErr = isErr
}

func (m *Model) updateLayout() {
	contentHeight := m.Height - ChromeHeight
	if contentHeight < 1 {
		contentHeight = 1
	}
	m.List.SetSize(m.Width, contentHeight)
	m.Detail.SetSize(m.Width, m.Height)
	m.SearchOverlay.SetSize(m.Width, m.Height)
}

// submitMessage picks the status line for a failed write. Validation
// errors read fine as-is; transport and backend failures get the same
// wording the list screens use.
func submitMessage(err error) string {
	var schemaErr *domain.SchemaError
	if errors.As(err, &schemaErr) {
		return domain.MsgBackend
	}
	if domain.Classify(err) == domain.ClassConnectivity {
		return domain.MsgConnectivity
	}
	return err.Error()
}

// View renders the whole application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	if m.State == StateHelp {
		return m.renderHelp()
	}

	if m.State == StateConfirmSignOut {
		return m.renderSignOutConfirmation()
	}

	view := lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTabs(),
		m.renderContent(),
		m.renderFooter(),
	)

	// Overlays, outermost last
	if m.Detail.IsVisible() {
		view = lipgloss.Place(m.Width, m.Height,
			lipgloss.Center, lipgloss.Center,
			m.Detail.View())
	}
	if m.SortModal.IsVisible() {
		view = lipgloss.Place(m.Width, m.Height,
			lipgloss.Center, lipgloss.Center,
			m.SortModal.View())
	}
	if m.SearchOverlay.IsVisible() {
		view = lipgloss.Place(m.Width, m.Height,
			lipgloss.Center, lipgloss.Center,
			m.SearchOverlay.View())
	}
	if m.ReviewForm.IsVisible() {
		view = lipgloss.Place(m.Width, m.Height,
			lipgloss.Center, lipgloss.Center,
			m.ReviewForm.View())
	}
	if m.ApplyForm.IsVisible() {
		view = lipgloss.Place(m.Width, m.Height,
			lipgloss.Center, lipgloss.Center,
			m.ApplyForm.View())
	}

	return view
}

func (m Model) renderTabs() string {
	tabs := make([]string, 0, len(m.Categories))
	for i, cat := range m.Categories {
		if i == m.Active {
			tabs = append(tabs, styles.ActiveTabStyle.Render(cat.Label()))
		} else {
			tabs = append(tabs, styles.InactiveTabStyle.Render(cat.Label()))
		}
	}
	bar := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	if lipgloss.Width(bar) <= m.Width {
		return bar
	}

	// Too narrow for every tab: show just the active one with its position
	cat := m.Categories[m.Active]
	return styles.ActiveTabStyle.Render(cat.Label()) +
		styles.DimStyle.Render(fmt.Sprintf(" %d/%d · tab to switch", m.Active+1, len(m.Categories)))
}

func (m Model) renderContent() string {
	cat := m.Categories[m.Active]
	state, _, err := m.sessions[cat].Snapshot()
	if state == catalog.ScreenErrored && err != nil {
		return m.renderLoadError(err)
	}
	return m.List.View()
}

func (m Model) renderLoadError(err error) string {
	contentHeight := m.Height - ChromeHeight
	if contentHeight < 1 {
		contentHeight = 1
	}
	box := styles.ModalStyle.Render(
		styles.ErrorStyle.Render(domain.UserMessage(err)) + "\n\n" +
			styles.AccentStyle.Render("r") + styles.DimStyle.Render(" try again"),
	)
	return lipgloss.Place(m.Width, contentHeight,
		lipgloss.Center, lipgloss.Center, box)
}

// renderFooter renders a single-line minimal footer
func (m Model) renderFooter() string {
	// Left side: spinner while loading, else any status message
	var left string
	cat := m.Categories[m.Active]
	if m.sessions[cat].State() == catalog.ScreenLoading {
		left = renderSpinner(m.SpinnerFrame) + " " +
			styles.DimStyle.Render("Loading "+cat.Label()+"...")
	} else if m.StatusMsg != "" {
		if m.StatusIsErr {
			left = styles.ErrorStyle.Render(m.StatusMsg)
		} else {
			left = styles.DimStyle.Render(m.StatusMsg)
		}
	}

	// Center: sort hint only where sorting applies
	var center string
	if catalog.SortOptions(cat) != nil {
		center = styles.AccentStyle.Render("s") + styles.DimStyle.Render(" sort")
	}

	// Right side: "? help" hint
	right := styles.AccentStyle.Render("?") + styles.DimStyle.Render(" help")

	leftWidth := lipgloss.Width(left)
	centerWidth := lipgloss.Width(center)
	rightWidth := lipgloss.Width(right)

	totalContent := leftWidth + centerWidth + rightWidth
	if totalContent >= m.Width {
		gap := m.Width - leftWidth - rightWidth
		if gap < 0 {
			gap = 0
		}
		return left + strings.Repeat(" ", gap) + right
	}

	available := m.Width - leftWidth - rightWidth
	leftPad := (available - centerWidth) / 2
	rightPad := available - centerWidth - leftPad

	return left + strings.Repeat(" ", leftPad) + center + strings.Repeat(" ", rightPad) + right
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	help := `
NAVIGATION                      CATALOG
  j/k        Up/down               Enter  Open details
  h/l        Left/right (grid)     s      Sort
  g/G        First/last            /      Filter
  Ctrl+u/d   Scroll half page      f      Search
  Tab        Next category         r      Reload
  Shift+Tab  Previous category     v      Toggle grid view

ACCOUNT                         OTHER
  w          Write review          q      Quit
  a          Apply as narrator     ?      This help
  A          Application status    Esc    Close / Cancel
  L          Sign out

Press any key to return...
`

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(help))
}

// renderSignOutConfirmation renders the sign-out confirmation modal
func (m Model) renderSignOutConfirmation() string {
	modal := `
             Sign Out?

  This signs you out on this device
  and clears the saved session.

        [Y] Yes      [N] No
`

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(modal))
}

// renderSpinner renders a loading spinner
func renderSpinner(frame int) string {
	return styles.SpinnerStyle.Render(styles.SpinnerFrames[frame%len(styles.SpinnerFrames)])
}
