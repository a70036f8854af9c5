package catalog

// SortMode is the user-selected ordering applied within a category.
type SortMode int

const (
	SortDefault SortMode = iota // Category's own order
	SortNewest
	SortPopular
	SortRating
	SortTitle // The only ascending mode
)

func (m SortMode) String() string {
	switch m {
	case SortDefault:
		return "Default"
	case SortNewest:
		return "Newest"
	case SortPopular:
		return "Most Played"
	case SortRating:
		return "Top Rated"
	case SortTitle:
		return "Title"
	default:
		return "Unknown"
	}
}

// sortColumns maps every explicit mode to its order pair. Alphabetical is
// the only ascending sort; everything else reads best-first.
var sortColumns = map[SortMode]struct {
	column    string
	ascending bool
}{
	SortNewest:  {ColumnCreatedAt, false},
	SortPopular: {ColumnPlayCount, false},
	SortRating:  {ColumnRating, false},
	SortTitle:   {ColumnTitle, true},
}

// SortOptions returns the modes the sort modal offers for a category.
// The played lists are pinned to listening recency and offer none.
func SortOptions(c Category) []SortMode {
	spec, ok := categorySpecs[c]
	if !ok || spec.reconciled {
		return nil
	}
	return []SortMode{SortDefault, SortNewest, SortPopular, SortRating, SortTitle}
}
