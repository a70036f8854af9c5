package search

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/navatui/nava/internal/catalog"
	"github.com/navatui/nava/internal/domain"
)

const searchLimit = 100

// Service runs title search: a server-side substring match over both
// title columns, re-ranked locally so close matches surface first.
type Service struct {
	source domain.DataSource
	logger *slog.Logger
}

// NewService creates a new search service
func NewService(source domain.DataSource, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{source: source, logger: logger}
}

// Search returns approved items whose title matches query
func (s *Service) Search(ctx context.Context, query string) ([]domain.ContentItem, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	s.logger.Debug("searching", "query", query)

	pattern := "*" + sanitize(query) + "*"
	rows, err := s.source.Query(ctx, catalog.ContentTable, domain.RemoteQuery{
		Select: catalog.ContentSelect,
		Filters: []domain.Filter{
			domain.Eq("status", catalog.StatusApproved),
			domain.AnyOf(
				fmt.Sprintf("title_fa.ilike.%s", pattern),
				fmt.Sprintf("title_en.ilike.%s", pattern),
			),
		},
		Order: domain.Order{Column: catalog.ColumnPlayCount, Ascending: false},
		Limit: searchLimit,
	})
	if err != nil {
		s.logger.Error("search failed", "query", query, "error", err)
		return nil, err
	}

	items := catalog.ItemsFromRows(rows)
	ranked := rankResults(items, query)
	s.logger.Debug("search complete", "query", query, "results", len(ranked))
	return ranked, nil
}

// sanitize strips the characters the filter grammar reserves. The local
// re-rank still sees the raw query.
func sanitize(query string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ',', '(', ')', '.', '"', '\\':
			return -1
		}
		return r
	}, query)
}

// rankResults orders items best match first. The server already filtered
// to substring matches; ranking only decides presentation order.
func rankResults(items []domain.ContentItem, query string) []domain.ContentItem {
	if len(items) == 0 {
		return items
	}

	query = strings.ToLower(query)

	type rankedItem struct {
		item  domain.ContentItem
		score int
	}

	ranked := make([]rankedItem, 0, len(items))
	for _, item := range items {
		score := matchScore(strings.ToLower(item.TitleFA), query)
		if item.TitleEN != "" {
			if en := matchScore(strings.ToLower(item.TitleEN), query); en < score {
				score = en
			}
		}
		ranked = append(ranked, rankedItem{item: item, score: score})
	}

	// Stable keeps the play-count order from the server on ties.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score < ranked[j].score
	})

	results := make([]domain.ContentItem, len(ranked))
	for i, r := range ranked {
		results[i] = r.item
	}
	return results
}

// matchScore scores one title against the query, lower is better
func matchScore(title, query string) int {
	if title == query {
		return 0
	}
	if strings.HasPrefix(title, query) {
		return 10
	}
	if strings.Contains(title, query) {
		return 50
	}
	return 100 + fuzzy.LevenshteinDistance(query, title)
}
