package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"github.com/navatui/nava/internal/domain"
	"github.com/navatui/nava/internal/tui/styles"
)

// Layout constants
const (
	// Border adds 1 char on each side
	BorderWidth  = 2
	BorderHeight = 2

	// Scroll indicators ("↑ more" and "↓ more") each take 1 line
	ScrollIndicatorLines = 2

	// A grid cell is 2 content lines plus its border
	gridCellHeight = 4

	minGridColumns = 1
	maxGridColumns = 6
)

// ContentList is the scrollable browse list. It renders content items
// either as rows or as a cover-less grid, and supports an in-place fuzzy
// filter over the visible items.
type ContentList struct {
	items  []domain.ContentItem
	locale string

	// Selection
	cursor     int
	offset     int // First visible item (list) or row (grid)
	maxVisible int

	// Dimensions
	width   int
	height  int
	focused bool

	// Loading state
	loading      bool
	spinnerFrame int

	// View mode
	gridMode    bool
	gridColumns int

	// Shown when items is empty
	emptyMessage string

	// Filter state
	filterActive bool
	filterInput  textinput.Model
	filterQuery  string
	filteredIdx  []int // indices into items
}

// NewContentList creates a list showing titles in the given locale
func NewContentList(locale string, gridColumns int) ContentList {
	ti := textinput.New()
	ti.Placeholder = "type to filter..."
	ti.Prompt = "/ "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = styles.FilterStyle

	if gridColumns < minGridColumns {
		gridColumns = minGridColumns
	}
	if gridColumns > maxGridColumns {
		gridColumns = maxGridColumns
	}

	return ContentList{
		locale:       locale,
		gridColumns:  gridColumns,
		filterInput:  ti,
		emptyMessage: "Nothing here.",
	}
}

// SetItems replaces the list contents and resets selection and filter
func (c *ContentList) SetItems(items []domain.ContentItem) {
	c.items = items
	c.loading = false
	c.cursor = 0
	c.offset = 0
	c.clearFilter()
}

// SetEmptyMessage sets the text shown when the list is empty
func (c *ContentList) SetEmptyMessage(msg string) {
	c.emptyMessage = msg
}

// SetLoading toggles the loading spinner
func (c *ContentList) SetLoading(loading bool) {
	c.loading = loading
}

// IsLoading reports whether the spinner is showing
func (c ContentList) IsLoading() bool {
	return c.loading
}

// SetSpinnerFrame advances the spinner animation
func (c *ContentList) SetSpinnerFrame(frame int) {
	c.spinnerFrame = frame
}

// SetSize updates the component dimensions
func (c *ContentList) SetSize(width, height int) {
	c.width = width
	c.height = height
	c.recalcMaxVisible()
	c.ensureVisible()
}

// SetFocused toggles the focus border
func (c *ContentList) SetFocused(focused bool) {
	c.focused = focused
}

// ToggleGrid flips between row and grid rendering
func (c *ContentList) ToggleGrid() {
	c.gridMode = !c.gridMode
	c.offset = 0
	c.recalcMaxVisible()
	c.ensureVisible()
}

// IsGrid reports whether grid rendering is active
func (c ContentList) IsGrid() bool {
	return c.gridMode
}

// Selected returns the item under the cursor, nil when the list is empty
func (c ContentList) Selected() *domain.ContentItem {
	count := c.ItemCount()
	if count == 0 || c.cursor >= count {
		return nil
	}
	item := c.items[c.mapIndex(c.cursor)]
	return &item
}

// SelectedIndex returns the cursor position
func (c ContentList) SelectedIndex() int {
	return c.cursor
}

// ItemCount returns the number of visible (possibly filtered) items
func (c ContentList) ItemCount() int {
	if c.filteredIdx != nil {
		return len(c.filteredIdx)
	}
	return len(c.items)
}

// ToggleFilter activates the filter input
func (c *ContentList) ToggleFilter() {
	c.filterActive = true
	c.filterInput.Focus()
	c.recalcMaxVisible()
}

// IsFiltering returns true if filter mode is active
func (c ContentList) IsFiltering() bool {
	return c.filterActive
}

// IsFilterTyping returns true if filter is active AND input is focused
func (c ContentList) IsFilterTyping() bool {
	return c.filterActive && c.filterInput.Focused()
}

// ClearFilter deactivates the filter and shows all items
func (c *ContentList) ClearFilter() {
	c.clearFilter()
}

// Update handles navigation and filter keys
func (c ContentList) Update(msg tea.Msg) (ContentList, tea.Cmd) {
	// Typing mode routes everything to the filter input
	if c.filterActive && c.filterInput.Focused() {
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch keyMsg.String() {
			case "esc":
				c.clearFilter()
				return c, nil
			case "enter":
				// Accept filter, blur input to allow navigation
				c.filterInput.Blur()
				return c, nil
			case "backspace":
				if c.filterInput.Value() == "" {
					c.clearFilter()
					return c, nil
				}
			}
		}

		var cmd tea.Cmd
		c.filterInput, cmd = c.filterInput.Update(msg)
		c.applyFilter()
		return c, cmd
	}

	// Filter accepted but still narrowing the list
	if c.filterActive {
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch keyMsg.String() {
			case "esc":
				c.clearFilter()
				return c, nil
			case "/":
				c.filterInput.Focus()
				return c, nil
			}
		}
	}

	count := c.ItemCount()
	if count == 0 {
		return c, nil
	}

	step := 1
	if c.gridMode {
		step = c.gridColumns
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "j", "down":
			if c.cursor+step < count {
				c.cursor += step
			} else if c.gridMode && c.cursor/c.gridColumns < (count-1)/c.gridColumns {
				// Land on the partial last row
				c.cursor = count - 1
			}
			c.ensureVisible()
		case "k", "up":
			if c.cursor-step >= 0 {
				c.cursor -= step
			}
			c.ensureVisible()
		case "h", "left":
			if c.gridMode && c.cursor > 0 {
				c.cursor--
				c.ensureVisible()
			}
		case "l", "right":
			if c.gridMode && c.cursor < count-1 {
				c.cursor++
				c.ensureVisible()
			}
		case "g", "home":
			c.cursor = 0
			c.offset = 0
		case "G", "end":
			c.cursor = count - 1
			c.ensureVisible()
		case "ctrl+d":
			c.cursor += c.pageStep()
			if c.cursor >= count {
				c.cursor = count - 1
			}
			c.ensureVisible()
		case "ctrl+u":
			c.cursor -= c.pageStep()
			if c.cursor < 0 {
				c.cursor = 0
			}
			c.ensureVisible()
		}
	}

	return c, nil
}

// View renders the list inside its border
func (c ContentList) View() string {
	style := styles.InactiveBorder
	if c.focused {
		style = styles.ActiveBorder
	}

	content := c.renderContent()

	frameW, frameH := style.GetFrameSize()
	return style.
		Width(c.width - frameW).
		Height(c.height - frameH).
		Render(content)
}

// Internal methods

func (c *ContentList) pageStep() int {
	if c.gridMode {
		return c.maxVisible * c.gridColumns / 2
	}
	return c.maxVisible / 2
}

func (c *ContentList) recalcMaxVisible() {
	interior := c.height - BorderHeight - ScrollIndicatorLines
	if c.filterActive {
		interior--
	}
	if c.gridMode {
		c.maxVisible = interior / gridCellHeight
	} else {
		c.maxVisible = interior
	}
	if c.maxVisible < 1 {
		c.maxVisible = 1
	}
}

// ensureVisible scrolls so the cursor stays on screen. In grid mode the
// offset counts rows, in list mode it counts items.
func (c *ContentList) ensureVisible() {
	if c.maxVisible <= 0 {
		return
	}
	pos := c.cursor
	if c.gridMode {
		pos = c.cursor / c.gridColumns
	}
	if pos < c.offset {
		c.offset = pos
	}
	if pos >= c.offset+c.maxVisible {
		c.offset = pos - c.maxVisible + 1
	}
}

func (c *ContentList) clearFilter() {
	c.filterActive = false
	c.filterQuery = ""
	c.filteredIdx = nil
	c.filterInput.SetValue("")
	c.filterInput.Blur()
	c.recalcMaxVisible()
}

func (c *ContentList) applyFilter() {
	query := c.filterInput.Value()
	c.filterQuery = query

	if query == "" {
		c.filteredIdx = nil
		return
	}

	titles := make([]string, len(c.items))
	for i, item := range c.items {
		titles[i] = strings.ToLower(item.DisplayTitle(c.locale))
	}

	matches := fuzzy.Find(strings.ToLower(query), titles)
	c.filteredIdx = make([]int, len(matches))
	for i, match := range matches {
		c.filteredIdx[i] = match.Index
	}

	c.cursor = 0
	c.offset = 0
}

func (c ContentList) mapIndex(i int) int {
	if c.filteredIdx != nil && i < len(c.filteredIdx) {
		return c.filteredIdx[i]
	}
	return i
}

// Rendering

func (c ContentList) renderContent() string {
	itemWidth := c.width - BorderWidth
	if itemWidth < 10 {
		itemWidth = 10
	}

	var header []string
	if c.filterActive {
		header = append(header, c.filterInput.View())
	}

	if c.loading {
		spinner := styles.SpinnerFrames[c.spinnerFrame%len(styles.SpinnerFrames)]
		lines := append(header, styles.DimStyle.Render(spinner+" Loading..."))
		return strings.Join(lines, "\n")
	}

	count := c.ItemCount()
	if count == 0 {
		empty := c.emptyMessage
		if c.filterActive && c.filterQuery != "" {
			empty = "No matches"
		}
		lines := append(header, styles.DimStyle.Render(empty))
		return strings.Join(lines, "\n")
	}

	var body string
	if c.gridMode {
		body = c.renderGrid(itemWidth, count)
	} else {
		body = c.renderRows(itemWidth, count)
	}

	if len(header) > 0 {
		return strings.Join(header, "\n") + "\n" + body
	}
	return body
}

func (c ContentList) renderRows(itemWidth, count int) string {
	end := c.offset + c.maxVisible
	if end > count {
		end = count
	}

	var lines []string
	for i := c.offset; i < end; i++ {
		lines = append(lines, c.renderRow(c.items[c.mapIndex(i)], i == c.cursor, itemWidth))
	}

	// Always reserve both indicator lines so rows never shift
	up := " "
	if c.offset > 0 {
		up = styles.DimStyle.Render("↑ more")
	}
	down := " "
	if end < count {
		down = styles.DimStyle.Render("↓ more")
	}

	return up + "\n" + strings.Join(lines, "\n") + "\n" + down
}

func (c ContentList) renderRow(item domain.ContentItem, selected bool, width int) string {
	saffron := styles.Saffron
	dim := styles.DimGray
	green := styles.Green

	title := item.DisplayTitle(c.locale)
	maxTitle := width * 2 / 5
	if maxTitle < 12 {
		maxTitle = 12
	}
	title = styles.Truncate(title, maxTitle)

	parts := []styles.RowPart{{Text: title}}
	if item.Narrator != "" {
		parts = append(parts, styles.RowPart{Text: "  " + styles.Truncate(item.Narrator, 18), Foreground: &dim})
	}
	parts = append(parts,
		styles.RowPart{Text: "  " + styles.StarFilled + " " + item.FormattedRating(), Foreground: &saffron},
		styles.RowPart{Text: "  " + item.FormattedPlays(), Foreground: &dim},
	)
	if item.IsFree {
		parts = append(parts, styles.RowPart{Text: "  " + "free", Foreground: &green})
	}

	return styles.RenderListRow(parts, selected, width)
}

func (c ContentList) renderGrid(itemWidth, count int) string {
	cols := c.gridColumns
	cellWidth := itemWidth/cols - BorderWidth
	if cellWidth < 10 {
		cellWidth = 10
	}
	cellInner := cellWidth - 2 // cell padding

	startRow := c.offset
	endRow := startRow + c.maxVisible
	totalRows := (count + cols - 1) / cols
	if endRow > totalRows {
		endRow = totalRows
	}

	var rows []string
	for row := startRow; row < endRow; row++ {
		var cells []string
		for col := 0; col < cols; col++ {
			i := row*cols + col
			if i >= count {
				break
			}
			cells = append(cells, c.renderCell(c.items[c.mapIndex(i)], i == c.cursor, cellWidth, cellInner))
		}
		rows = append(rows, joinCells(cells))
	}

	up := " "
	if startRow > 0 {
		up = styles.DimStyle.Render("↑ more")
	}
	down := " "
	if endRow < totalRows {
		down = styles.DimStyle.Render("↓ more")
	}

	return up + "\n" + strings.Join(rows, "\n") + "\n" + down
}

func (c ContentList) renderCell(item domain.ContentItem, selected bool, cellWidth, cellInner int) string {
	style := styles.GridCellStyle
	if selected {
		style = styles.GridCellSelectedStyle
	}

	title := styles.Pad(styles.Truncate(item.DisplayTitle(c.locale), cellInner), cellInner)
	meta := styles.StarFilled + " " + item.FormattedRating() + " · " + item.FormattedPlays()
	metaLine := styles.DimStyle.Render(styles.Pad(styles.Truncate(meta, cellInner), cellInner))

	return style.Width(cellWidth).Render(title + "\n" + metaLine)
}

// joinCells joins bordered cells side by side line-wise
func joinCells(cells []string) string {
	if len(cells) == 0 {
		return ""
	}
	split := make([][]string, len(cells))
	height := 0
	for i, cell := range cells {
		split[i] = strings.Split(cell, "\n")
		if len(split[i]) > height {
			height = len(split[i])
		}
	}

	var b strings.Builder
	for line := 0; line < height; line++ {
		for _, lines := range split {
			if line < len(lines) {
				b.WriteString(lines[line])
			}
		}
		if line < height-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
