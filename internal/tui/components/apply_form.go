package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/navatui/nava/internal/tui/styles"
)

// applyFieldCount is the number of inputs in the narrator form
const applyFieldCount = 4

var applyLabels = [applyFieldCount]string{"Full name", "Phone", "Bio", "Voice sample"}

// ApplyForm is the narrator application modal: name, phone, an optional
// bio and the local path of a voice sample to upload.
type ApplyForm struct {
	visible bool
	inputs  [applyFieldCount]textinput.Model
	focus   int
}

// NewApplyForm creates an empty narrator application form
func NewApplyForm() ApplyForm {
	var form ApplyForm
	placeholders := [applyFieldCount]string{
		"as it should appear to listeners",
		"09...",
		"a line or two about you (optional)",
		"/path/to/sample.mp3",
	}
	for i := range form.inputs {
		input := textinput.New()
		input.Placeholder = placeholders[i]
		input.CharLimit = 500
		input.Width = 42
		form.inputs[i] = input
	}
	return form
}

// Show opens the form with all fields cleared
func (f *ApplyForm) Show() {
	f.visible = true
	f.focus = 0
	for i := range f.inputs {
		f.inputs[i].SetValue("")
		f.inputs[i].Blur()
	}
	f.inputs[0].Focus()
}

// Hide dismisses the form
func (f *ApplyForm) Hide() {
	f.visible = false
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
}

// IsVisible returns whether the form is shown
func (f ApplyForm) IsVisible() bool {
	return f.visible
}

// Values returns the form fields: full name, phone, bio, sample path
func (f ApplyForm) Values() (fullName, phone, bio, samplePath string) {
	return strings.TrimSpace(f.inputs[0].Value()),
		strings.TrimSpace(f.inputs[1].Value()),
		strings.TrimSpace(f.inputs[2].Value()),
		strings.TrimSpace(f.inputs[3].Value())
}

// Update handles form input. The bool reports that the user submitted
// the application and the caller should read Values.
func (f ApplyForm) Update(msg tea.Msg) (ApplyForm, tea.Cmd, bool) {
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
	case "tab", "down":
		f.setFocus((f.focus + 1) % applyFieldCount)
		return f, nil, false
	case "shift+tab", "up":
		f.setFocus((f.focus + applyFieldCount - 1) % applyFieldCount)
		return f, nil, false
	case "enter":
		// Enter advances until the last field, then submits
		if f.focus < applyFieldCount-1 {
			f.setFocus(f.focus + 1)
			return f, nil, false
		}
		f.Hide()
		return f, nil, true
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd, false
}

func (f *ApplyForm) setFocus(index int) {
	f.inputs[f.focus].Blur()
	f.focus = index
	f.inputs[f.focus].Focus()
}

// View renders the narrator application modal
func (f ApplyForm) View() string {
	if !f.visible {
		return ""
	}

	var b strings.Builder
	b.WriteString(styles.ModalTitleStyle.Render("Become a narrator"))
	b.WriteString("\n\n")

	for i := range f.inputs {
		label := applyLabels[i]
		if f.focus == i {
			b.WriteString(styles.AccentStyle.Render(label))
		} else {
			b.WriteString(styles.DimStyle.Render(label))
		}
		b.WriteString("\n")
		b.WriteString(f.inputs[i].View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.DimStyle.Render("Samples: mp3, m4a, wav or ogg, up to 20 MB"))
	b.WriteString("\n\n")
	b.WriteString(styles.HelpKeyStyle.Render("tab") + styles.HelpDescStyle.Render(" next  "))
	b.WriteString(styles.HelpKeyStyle.Render("enter") + styles.HelpDescStyle.Render(" submit  "))
	b.WriteString(styles.HelpKeyStyle.Render("esc") + styles.HelpDescStyle.Render(" cancel"))

	return styles.ModalStyle.Render(b.String())
}
