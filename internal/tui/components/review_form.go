package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/navatui/nava/internal/tui/styles"
)

const (
	focusRating = iota
	focusComment
)

// ReviewForm is the modal for rating an item: a 1-5 star picker plus an
// optional comment line.
type ReviewForm struct {
	visible   bool
	contentID int64
	title     string
	rating    int
	comment   textinput.Model
	focus     int
}

// NewReviewForm creates an empty review form
func NewReviewForm() ReviewForm {
	input := textinput.New()
	input.Placeholder = "optional comment..."
	input.CharLimit = 2000
	input.Width = 42
	return ReviewForm{rating: 5, comment: input}
}

// Show opens the form for an item, resetting any previous draft
func (f *ReviewForm) Show(contentID int64, title string) {
	f.visible = true
	f.contentID = contentID
	f.title = title
	f.rating = 5
	f.focus = focusRating
	f.comment.SetValue("")
	f.comment.Blur()
}

// Hide dismisses the form
func (f *ReviewForm) Hide() {
	f.visible = false
	f.comment.Blur()
}

// IsVisible returns whether the form is shown
func (f ReviewForm) IsVisible() bool {
	return f.visible
}

// ContentID returns the item the draft review is for
func (f ReviewForm) ContentID() int64 {
	return f.contentID
}

// Rating returns the picked star rating
func (f ReviewForm) Rating() int {
	return f.rating
}

// Comment returns the trimmed comment text
func (f ReviewForm) Comment() string {
	return strings.TrimSpace(f.comment.Value())
}

// Update handles form input. The bool reports that the user submitted
// the draft and the caller should read Rating, Comment and ContentID.
func (f ReviewForm) Update(msg tea.Msg) (ReviewForm, tea.Cmd, bool) {
	if !f.visible {
		return f, nil, false
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return f, nil, false
	}

	switch keyMsg.String() {
	case "esc":
		f.Hide()
		return f, nil, false
	case "enter":
		f.Hide()
		return f, nil, true
	case "tab", "shift+tab":
		f.toggleFocus()
		return f, nil, false
	}

	if f.focus == focusRating {
		switch keyMsg.String() {
		case "left", "h", "down", "j":
			if f.rating > 1 {
				f.rating--
			}
		case "right", "l", "up", "k":
			if f.rating < 5 {
				f.rating++
			}
		case "1", "2", "3", "4", "5":
			f.rating = int(keyMsg.String()[0] - '0')
		}
		return f, nil, false
	}

	var cmd tea.Cmd
	f.comment, cmd = f.comment.Update(msg)
	return f, cmd, false
}

func (f *ReviewForm) toggleFocus() {
	if f.focus == focusRating {
		f.focus = focusComment
		f.comment.Focus()
	} else {
		f.focus = focusRating
		f.comment.Blur()
	}
}

// View renders the review form modal
func (f ReviewForm) View() string {
	if !f.visible {
		return ""
	}

	var b strings.Builder
	b.WriteString(styles.ModalTitleStyle.Render("Rate this title"))
	b.WriteString("\n")
	b.WriteString(styles.SubtitleStyle.Render(styles.Truncate(f.title, 44)))
	b.WriteString("\n\n")

	stars := styles.RenderStars(float64(f.rating))
	if f.focus == focusRating {
		b.WriteString(styles.AccentStyle.Render("› "))
		b.WriteString(stars)
		b.WriteString(styles.DimStyle.Render("  ←/→ or 1-5"))
	} else {
		b.WriteString("  " + stars)
	}
	b.WriteString("\n\n")

	if f.focus == focusComment {
		b.WriteString(styles.AccentStyle.Render("› "))
	} else {
		b.WriteString("  ")
	}
	b.WriteString(f.comment.View())
	b.WriteString("\n\n")

	b.WriteString(styles.HelpKeyStyle.Render("tab") + styles.HelpDescStyle.Render(" switch  "))
	b.WriteString(styles.HelpKeyStyle.Render("enter") + styles.HelpDescStyle.Render(" submit  "))
	b.WriteString(styles.HelpKeyStyle.Render("esc") + styles.HelpDescStyle.Render(" cancel"))

	return styles.ModalStyle.Render(b.String())
}
