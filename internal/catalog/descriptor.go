package catalog

import (
	"fmt"

	"github.com/navatui/nava/internal/domain"
)

// Order columns the backend accepts. Descriptors never order by anything
// outside this set.
const (
	ColumnCreatedAt = "created_at"
	ColumnPlayCount = "play_count"
	ColumnRating    = "avg_rating"
	ColumnTitle     = "title_fa"
	ColumnUpdatedAt = "updated_at"
)

// Row caps for the two query families
const (
	listLimit     = 100 // Content list fetches
	progressLimit = 50  // Progress fetches behind the played lists
)

// QueryDescriptor is the resolved shape of one list fetch. Descriptors
// are built fresh per fetch and never persisted.
type QueryDescriptor struct {
	OrderColumn string
	Ascending   bool
	Filters     []domain.Filter
	Limit       int
}

// ResolveQueryDescriptor maps a (category, sort mode) pair to its query
// shape. The mapping is a pure table lookup: every pair the UI can issue
// resolves, and values outside the tables are an error rather than a
// silent fallback.
func ResolveQueryDescriptor(c Category, mode SortMode) (QueryDescriptor, error) {
	spec, ok := categorySpecs[c]
	if !ok {
		return QueryDescriptor{}, fmt.Errorf("unknown category %d", int(c))
	}

	d := QueryDescriptor{
		OrderColumn: spec.orderColumn,
		Ascending:   spec.ascending,
		Filters:     spec.filters,
		Limit:       listLimit,
	}

	if mode != SortDefault {
		sc, ok := sortColumns[mode]
		if !ok {
			return QueryDescriptor{}, fmt.Errorf("unknown sort mode %d", int(mode))
		}
		d.OrderColumn = sc.column
		d.Ascending = sc.ascending
	}

	return d, nil
}
