package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/navatui/nava/internal/domain"
)

// Coordinator turns (category, sort mode) pairs into remote queries and
// normalized item lists. The data source is injected and the coordinator
// keeps no state between fetches.
type Coordinator struct {
	source domain.DataSource
	logger *slog.Logger
}

// NewCoordinator creates a coordinator over the given data source.
func NewCoordinator(source domain.DataSource, logger *slog.Logger) *Coordinator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Coordinator{source: source, logger: logger}
}

// FetchList runs one content query shaped by desc. The approval gate is
// applied on top of the descriptor's own predicates on every fetch.
func (c *Coordinator) FetchList(ctx context.Context, desc QueryDescriptor) ([]domain.ContentItem, error) {
	filters := append([]domain.Filter{domain.Eq("status", StatusApproved)}, desc.Filters...)

	rows, err := c.source.Query(ctx, ContentTable, domain.RemoteQuery{
		Select:  ContentSelect,
		Filters: filters,
		Order:   domain.Order{Column: desc.OrderColumn, Ascending: desc.Ascending},
		Limit:   desc.Limit,
	})
	if err != nil {
		c.logger.Error("failed to fetch content list", "order", desc.OrderColumn, "error", err)
		return nil, err
	}

	items := ItemsFromRows(rows)
	c.logger.Debug("fetched content list", "order", desc.OrderColumn, "count", len(items))
	return items, nil
}

// FetchWithOptionalColumn is FetchList for categories whose flag column
// may not exist remotely yet: the unknown-column rejection degrades to an
// empty list, every other failure propagates.
func (c *Coordinator) FetchWithOptionalColumn(ctx context.Context, desc QueryDescriptor) ([]domain.ContentItem, error) {
	items, err := c.FetchList(ctx, desc)
	if err != nil {
		if domain.IsMissingColumn(err) {
			c.logger.Warn("flag column missing remotely, showing empty list", "error", err)
			return []domain.ContentItem{}, nil
		}
		return nil, err
	}
	return items, nil
}

// FetchReconciled builds a played list. The user's progress rows pick both
// the member set and the order; the catalog fetch only resolves them to
// displayable items. Progress rows whose item is gone or unapproved are
// dropped without comment.
func (c *Coordinator) FetchReconciled(ctx context.Context, userID string, cat Category) ([]domain.ContentItem, error) {
	spec, ok := categorySpecs[cat]
	if !ok || !spec.reconciled {
		return nil, fmt.Errorf("category %q is not progress-ordered", cat.Label())
	}
	if userID == "" {
		return nil, domain.ErrNotSignedIn
	}

	progressFilters := append([]domain.Filter{domain.Eq("user_id", userID)}, spec.progressFilter...)
	progressRows, err := c.source.Query(ctx, ProgressTable, domain.RemoteQuery{
		Select:  progressSelect,
		Filters: progressFilters,
		Order:   domain.Order{Column: ColumnUpdatedAt, Ascending: false},
		Limit:   progressLimit,
	})
	if err != nil {
		c.logger.Error("failed to fetch listening progress", "category", cat.Label(), "error", err)
		return nil, err
	}
	if len(progressRows) == 0 {
		return nil, nil
	}

	// Progress order is the output order. First occurrence wins if the
	// backend ever returns a duplicate (user, item) pair.
	ids := make([]int64, 0, len(progressRows))
	seen := make(map[int64]bool, len(progressRows))
	for _, row := range progressRows {
		rec := progressFromRow(row)
		if rec.ContentID == 0 || seen[rec.ContentID] {
			continue
		}
		seen[rec.ContentID] = true
		ids = append(ids, rec.ContentID)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	itemFilters := append([]domain.Filter{domain.Eq("status", StatusApproved)}, spec.filters...)
	itemRows, err := c.source.QueryIn(ctx, ContentTable, "id", ids, domain.RemoteQuery{
		Select:  ContentSelect,
		Filters: itemFilters,
		Limit:   len(ids),
	})
	if err != nil {
		c.logger.Error("failed to resolve played items", "category", cat.Label(), "error", err)
		return nil, err
	}

	byID := make(map[int64]domain.ContentItem, len(itemRows))
	for _, row := range itemRows {
		item := ItemFromRow(row)
		byID[item.ID] = item
	}

	items := make([]domain.ContentItem, 0, len(ids))
	for _, id := range ids {
		if item, ok := byID[id]; ok {
			items = append(items, item)
		}
	}
	c.logger.Debug("reconciled played list",
		"category", cat.Label(), "progress", len(ids), "resolved", len(items))
	return items, nil
}

// FetchCategory is the entry point screens use: it picks the fetch
// strategy for the category and applies the sort mode where one applies.
func (c *Coordinator) FetchCategory(ctx context.Context, userID string, cat Category, mode SortMode) ([]domain.ContentItem, error) {
	spec, ok := categorySpecs[cat]
	if !ok {
		return nil, fmt.Errorf("unknown category %d", int(cat))
	}
	if spec.reconciled {
		return c.FetchReconciled(ctx, userID, cat)
	}

	desc, err := ResolveQueryDescriptor(cat, mode)
	if err != nil {
		return nil, err
	}
	if spec.optionalSchema {
		return c.FetchWithOptionalColumn(ctx, desc)
	}
	return c.FetchList(ctx, desc)
}
