package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/navatui/nava/internal/domain"
	"github.com/navatui/nava/internal/tui/styles"
)

const maxSearchRows = 8

// SearchOverlay is the catalog search box: a query line on top and the
// ranked hits underneath. Typing invalidates the hits, so enter either
// runs the search or opens the highlighted result.
type SearchOverlay struct {
	visible  bool
	locale   string
	input    textinput.Model
	results  []domain.ContentItem
	cursor   int
	loading  bool
	searched bool
	errText  string
	width    int
}

// NewSearchOverlay creates a hidden search overlay
func NewSearchOverlay(locale string) SearchOverlay {
	input := textinput.New()
	input.Placeholder = "title, in Persian or English..."
	input.Prompt = "? "
	input.CharLimit = 120
	input.Width = 40
	return SearchOverlay{locale: locale, input: input}
}

// Show opens the overlay with a fresh query
func (s *SearchOverlay) Show() {
	s.visible = true
	s.input.SetValue("")
	s.input.Focus()
	s.results = nil
	s.cursor = 0
	s.loading = false
	s.searched = false
	s.errText = ""
}

// Hide dismisses the overlay
func (s *SearchOverlay) Hide() {
	s.visible = false
	s.input.Blur()
}

// IsVisible returns whether the overlay is shown
func (s SearchOverlay) IsVisible() bool {
	return s.visible
}

// Query returns the trimmed query text
func (s SearchOverlay) Query() string {
	return strings.TrimSpace(s.input.Value())
}

// IsLoading returns whether a search is in flight
func (s SearchOverlay) IsLoading() bool {
	return s.loading
}

// SetLoading marks a search as in flight
func (s *SearchOverlay) SetLoading(loading bool) {
	s.loading = loading
}

// SetResults installs the hits for the current query
func (s *SearchOverlay) SetResults(results []domain.ContentItem) {
	s.results = results
	s.cursor = 0
	s.loading = false
	s.searched = true
	s.errText = ""
}

// SetError shows a failure line in place of results
func (s *SearchOverlay) SetError(text string) {
	s.loading = false
	s.searched = false
	s.results = nil
	s.errText = text
}

// SetSize updates the component dimensions
func (s *SearchOverlay) SetSize(width, _ int) {
	s.width = width
	inputWidth := width/2 - 8
	if inputWidth < 24 {
		inputWidth = 24
	}
	if inputWidth > 60 {
		inputWidth = 60
	}
	s.input.Width = inputWidth
}

// Selected returns the highlighted result, or nil when there are none
func (s SearchOverlay) Selected() *domain.ContentItem {
	if len(s.results) == 0 || s.cursor >= len(s.results) {
		return nil
	}
	return &s.results[s.cursor]
}

// Update handles typing and result navigation. Enter and escape are the
// caller's to interpret.
func (s SearchOverlay) Update(msg tea.Msg) (SearchOverlay, tea.Cmd) {
	if !s.visible {
		return s, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "down", "ctrl+n":
			if s.cursor < len(s.results)-1 {
				s.cursor++
			}
			return s, nil
		case "up", "ctrl+p":
			if s.cursor > 0 {
				s.cursor--
			}
			return s, nil
		}
	}

	before := s.input.Value()
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	if s.input.Value() != before {
		// Old hits no longer match what's typed
		s.results = nil
		s.cursor = 0
		s.searched = false
		s.errText = ""
	}
	return s, cmd
}

// View renders the search overlay
func (s SearchOverlay) View() string {
	if !s.visible {
		return ""
	}

	var b strings.Builder
	b.WriteString(styles.ModalTitleStyle.Render("Search"))
	b.WriteString("\n")
	b.WriteString(s.input.View())
	b.WriteString("\n")

	switch {
	case s.loading:
		b.WriteString("\n" + styles.DimStyle.Render("searching..."))
	case s.errText != "":
		b.WriteString("\n" + styles.ErrorStyle.Render(s.errText))
	case s.searched && len(s.results) == 0:
		b.WriteString("\n" + styles.DimStyle.Render("No matches"))
	case len(s.results) > 0:
		b.WriteString("\n")
		shown := len(s.results)
		if shown > maxSearchRows {
			shown = maxSearchRows
		}
		for i := 0; i < shown; i++ {
			b.WriteString(s.renderResult(i))
			b.WriteString("\n")
		}
		if len(s.results) > shown {
			b.WriteString(styles.DimStyle.Render("  ..."))
			b.WriteString("\n")
		}
	default:
		b.WriteString("\n" + styles.DimStyle.Render("Press enter to search"))
	}

	b.WriteString("\n")
	if len(s.results) > 0 {
		b.WriteString(styles.HelpKeyStyle.Render("enter") + styles.HelpDescStyle.Render(" open  "))
	} else {
		b.WriteString(styles.HelpKeyStyle.Render("enter") + styles.HelpDescStyle.Render(" search  "))
	}
	b.WriteString(styles.HelpKeyStyle.Render("esc") + styles.HelpDescStyle.Render(" close"))

	return styles.ModalStyle.Render(b.String())
}

func (s SearchOverlay) renderResult(index int) string {
	item := s.results[index]
	title := styles.Truncate(item.DisplayTitle(s.locale), 34)
	line := styles.Pad(title, 36)
	meta := styles.StarFilled + " " + item.FormattedRating()

	if index == s.cursor {
		return styles.SelectedItemStyle.Render("▸ "+line) + styles.DimStyle.Render(meta)
	}
	return styles.NormalItemStyle.Render("  "+line) + styles.DimStyle.Render(meta)
}
