package catalog

import "github.com/navatui/nava/internal/domain"

// Category is one content partition shown as a list screen.
type Category int

const (
	CategoryNewReleases Category = iota
	CategoryFeatured
	CategoryPopular
	CategoryMusic
	CategoryPodcasts
	CategoryArticles
	CategoryRecentlyPlayed
	CategoryContinueListening
)

// categorySpec is one row of the static category table: default order,
// fixed flag predicates, display strings and fetch strategy.
type categorySpec struct {
	orderColumn    string
	ascending      bool
	filters        []domain.Filter // Category predicates; the approval gate is added at fetch time
	label          string
	emptyMessage   string
	reconciled     bool            // Ordered by the user's progress rows, not the catalog
	optionalSchema bool            // Backing flag column may not exist remotely yet
	progressFilter []domain.Filter // Extra predicates on the progress fetch
}

// categorySpecs is the full category table. Adding a category means adding
// a row here; nothing is derived at runtime.
var categorySpecs = map[Category]categorySpec{
	CategoryNewReleases: {
		orderColumn:  ColumnCreatedAt,
		label:        "New Releases",
		emptyMessage: "Nothing new right now.",
	},
	CategoryFeatured: {
		orderColumn:  ColumnCreatedAt,
		filters:      []domain.Filter{domain.Eq("is_featured", true)},
		label:        "Featured",
		emptyMessage: "No featured titles yet.",
	},
	CategoryPopular: {
		orderColumn:  ColumnPlayCount,
		label:        "Popular",
		emptyMessage: "Nothing trending yet.",
	},
	CategoryMusic: {
		orderColumn:  ColumnCreatedAt,
		filters:      []domain.Filter{domain.Eq("is_music", true)},
		label:        "Music",
		emptyMessage: "No music yet.",
	},
	CategoryPodcasts: {
		orderColumn:    ColumnCreatedAt,
		filters:        []domain.Filter{domain.Eq("is_podcast", true)},
		label:          "Podcasts",
		emptyMessage:   "No podcasts yet.",
		optionalSchema: true,
	},
	CategoryArticles: {
		orderColumn:    ColumnCreatedAt,
		filters:        []domain.Filter{domain.Eq("is_article", true)},
		label:          "Articles",
		emptyMessage:   "No articles yet.",
		optionalSchema: true,
	},
	CategoryRecentlyPlayed: {
		orderColumn:  ColumnUpdatedAt,
		label:        "Recently Played",
		emptyMessage: "You haven't played anything yet.",
		reconciled:   true,
	},
	CategoryContinueListening: {
		orderColumn:    ColumnUpdatedAt,
		label:          "Continue Listening",
		emptyMessage:   "Nothing in progress. Pick something to start.",
		reconciled:     true,
		progressFilter: []domain.Filter{domain.Eq("is_completed", false)},
	},
}

// Categories returns all categories in display order
func Categories() []Category {
	return []Category{
		CategoryNewReleases,
		CategoryFeatured,
		CategoryPopular,
		CategoryMusic,
		CategoryPodcasts,
		CategoryArticles,
		CategoryRecentlyPlayed,
		CategoryContinueListening,
	}
}

// Label returns the display name shown in the category tabs
func (c Category) Label() string {
	if spec, ok := categorySpecs[c]; ok {
		return spec.label
	}
	return "Unknown"
}

// EmptyMessage returns the text shown when the category loads empty
func (c Category) EmptyMessage() string {
	if spec, ok := categorySpecs[c]; ok {
		return spec.emptyMessage
	}
	return "Nothing here."
}

// Reconciled returns true for the played lists, whose order comes from
// the user's listening progress rather than a catalog column
func (c Category) Reconciled() bool {
	return categorySpecs[c].reconciled
}

// OptionalSchema returns true when the category's flag column may be
// missing on older backend deployments
func (c Category) OptionalSchema() bool {
	return categorySpecs[c].optionalSchema
}

func (c Category) String() string {
	return c.Label()
}
