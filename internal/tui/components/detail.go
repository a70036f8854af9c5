package components

import (
	"fmt"
	"strings"

	"github.com/navatui/nava/internal/domain"
	"github.com/navatui/nava/internal/tui/styles"
)

const maxDetailReviews = 5

// Detail is the item detail overlay: full metadata plus the newest
// reviews, which load after the overlay opens.
type Detail struct {
	visible bool
	locale  string

	item           domain.ContentItem
	reviews        []domain.Review
	reviewsLoading bool
	reviewsErr     error

	width  int
	height int
}

// NewDetail creates a detail overlay rendering titles in the given locale
func NewDetail(locale string) Detail {
	return Detail{locale: locale}
}

// Show opens the overlay for an item. Reviews start in the loading state
// until SetReviews or SetReviewsError arrives.
func (d *Detail) Show(item domain.ContentItem) {
	d.visible = true
	d.item = item
	d.reviews = nil
	d.reviewsErr = nil
	d.reviewsLoading = true
}

// Hide dismisses the overlay
func (d *Detail) Hide() {
	d.visible = false
}

// IsVisible returns whether the overlay is shown
func (d Detail) IsVisible() bool {
	return d.visible
}

// Item returns the item being shown
func (d Detail) Item() domain.ContentItem {
	return d.item
}

// SetReviews fills in the loaded reviews
func (d *Detail) SetReviews(reviews []domain.Review) {
	d.reviews = reviews
	d.reviewsLoading = false
	d.reviewsErr = nil
}

// SetReviewsError records a failed reviews fetch
func (d *Detail) SetReviewsError(err error) {
	d.reviewsLoading = false
	d.reviewsErr = err
}

// SetSize updates the component dimensions
func (d *Detail) SetSize(width, height int) {
	d.width = width
	d.height = height
}

// View renders the detail overlay
func (d Detail) View() string {
	if !d.visible {
		return ""
	}

	modalWidth := d.width * 2 / 3
	if modalWidth < 44 {
		modalWidth = 44
	}
	if modalWidth > 80 {
		modalWidth = 80
	}
	inner := modalWidth - 6

	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render(styles.Truncate(d.item.DisplayTitle(d.locale), inner)))
	b.WriteString("\n")

	// Secondary title in the other locale, when present
	secondary := d.item.TitleEN
	if d.locale == "en" {
		secondary = d.item.TitleFA
	}
	if secondary != "" && secondary != d.item.DisplayTitle(d.locale) {
		b.WriteString(styles.SubtitleStyle.Render(styles.Truncate(secondary, inner)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if d.item.Narrator != "" {
		b.WriteString(styles.DimStyle.Render("Narrated by "))
		b.WriteString(styles.SubtitleStyle.Render(d.item.Narrator))
		if d.item.IsBrandNarrated {
			b.WriteString(" " + styles.DimBadgeStyle.Render("studio"))
		}
		b.WriteString("\n")
	}

	b.WriteString(styles.RenderStars(d.item.Rating))
	b.WriteString(styles.DimStyle.Render(fmt.Sprintf("  %s · %s plays", d.item.FormattedRating(), d.item.FormattedPlays())))
	b.WriteString("\n")

	var badges []string
	badges = append(badges, styles.DimBadgeStyle.Render(d.item.Kind()))
	if d.item.IsFree {
		badges = append(badges, styles.FreeBadgeStyle.Render("free"))
	}
	if d.item.IsFeatured {
		badges = append(badges, styles.BadgeStyle.Render("featured"))
	}
	b.WriteString(strings.Join(badges, " "))
	b.WriteString("\n")

	if !d.item.CreatedAt.IsZero() {
		b.WriteString(styles.DimStyle.Render("Added " + d.item.CreatedAt.Format("2 Jan 2006")))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.AccentStyle.Render("Reviews"))
	b.WriteString("\n")
	d.renderReviews(&b, inner)

	b.WriteString("\n")
	b.WriteString(styles.HelpKeyStyle.Render("w") + styles.HelpDescStyle.Render(" write review  "))
	b.WriteString(styles.HelpKeyStyle.Render("esc") + styles.HelpDescStyle.Render(" close"))

	return styles.ModalStyle.
		Width(modalWidth).
		Render(b.String())
}



func (d Detail) renderReviews(b *strings.Builder, inner int) {
	switch {
	case d.reviewsLoading:
		b.WriteString(styles.DimStyle.Render("Loading reviews..."))
		b.WriteString("\n")
	case d.reviewsErr != nil:
		b.WriteString(styles.ErrorStyle.Render("Couldn't load reviews"))
		b.WriteString("\n")
	case len(d.reviews) == 0:
		b.WriteString(styles.DimStyle.Render("No reviews yet. Press w to write the first one."))
		b.WriteString("\n")
	default:
		shown := len(d.reviews)
		if shown > maxDetailReviews {
			shown = maxDetailReviews
		}
		for _, review := range d.reviews[:shown] {
			b.WriteString(styles.RenderStars(float64(review.Rating)))
			if !review.CreatedAt.IsZero() {
				b.WriteString(styles.DimStyle.Render("  " + review.CreatedAt.Format("2 Jan 2006")))
			}
			b.WriteString("\n")
			if review.Comment != "" {
				b.WriteString(styles.SubtitleStyle.Render(styles.Truncate(review.Comment, inner)))
				b.WriteString("\n")
			}
		}
		if len(d.reviews) > shown {
			b.WriteString(styles.DimStyle.Render(fmt.Sprintf("... and %d more", len(d.reviews)-shown)))
			b.WriteString("\n")
		}
	}
}
