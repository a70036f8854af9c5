package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/navatui/nava/internal/domain"
)

func TestResolveQueryDescriptor_CategoryDefaults(t *testing.T) {
	tests := []struct {
		name        string
		category    Category
		orderColumn string
		filters     []domain.Filter
	}{
		{
			name:        "new releases order by publish date",
			category:    CategoryNewReleases,
			orderColumn: ColumnCreatedAt,
		},
		{
			name:        "featured filters on the featured flag",
			category:    CategoryFeatured,
			orderColumn: ColumnCreatedAt,
			filters:     []domain.Filter{domain.Eq("is_featured", true)},
		},
		{
			name:        "popular orders by play count",
			category:    CategoryPopular,
			orderColumn: ColumnPlayCount,
		},
		{
			name:        "music filters on the music flag",
			category:    CategoryMusic,
			orderColumn: ColumnCreatedAt,
			filters:     []domain.Filter{domain.Eq("is_music", true)},
		},
		{
			name:        "podcasts filter on the podcast flag",
			category:    CategoryPodcasts,
			orderColumn: ColumnCreatedAt,
			filters:     []domain.Filter{domain.Eq("is_podcast", true)},
		},
		{
			name:        "articles filter on the article flag",
			category:    CategoryArticles,
			orderColumn: ColumnCreatedAt,
			filters:     []domain.Filter{domain.Eq("is_article", true)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			desc, err := ResolveQueryDescriptor(tt.category, SortDefault)
			require.NoError(t, err)

			assert.Equal(t, tt.orderColumn, desc.OrderColumn)
			assert.False(t, desc.Ascending, "category defaults all read newest/best first")
			assert.Equal(t, tt.filters, desc.Filters)
			assert.Equal(t, 100, desc.Limit)
		})
	}
}

func TestResolveQueryDescriptor_SortModes(t *testing.T) {
	tests := []struct {
		name        string
		mode        SortMode
		orderColumn string
		ascending   bool
	}{
		{name: "newest", mode: SortNewest, orderColumn: ColumnCreatedAt},
		{name: "most played", mode: SortPopular, orderColumn: ColumnPlayCount},
		{name: "top rated", mode: SortRating, orderColumn: ColumnRating},
		{name: "title is the only ascending mode", mode: SortTitle, orderColumn: ColumnTitle, ascending: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			desc, err := ResolveQueryDescriptor(CategoryPopular, tt.mode)
			require.NoError(t, err)

			assert.Equal(t, tt.orderColumn, desc.OrderColumn)
			assert.Equal(t, tt.ascending, desc.Ascending)
		})
	}
}

func TestResolveQueryDescriptor_SortKeepsCategoryFilters(t *testing.T) {
	desc, err := ResolveQueryDescriptor(CategoryPodcasts, SortRating)
	require.NoError(t, err)

	assert.Equal(t, ColumnRating, desc.OrderColumn)
	assert.Equal(t, []domain.Filter{domain.Eq("is_podcast", true)}, desc.Filters,
		"sorting changes order, never membership")
}

func TestResolveQueryDescriptor_EveryPairResolves(t *testing.T) {
	for _, cat := range Categories() {
		if cat.Reconciled() {
			continue
		}
		for _, mode := range []SortMode{SortDefault, SortNewest, SortPopular, SortRating, SortTitle} {
			desc, err := ResolveQueryDescriptor(cat, mode)
			require.NoError(t, err, "category %s mode %s", cat, mode)

			assert.NotEmpty(t, desc.OrderColumn)
			assert.Equal(t, mode == SortTitle, desc.Ascending,
				"ascending must hold exactly for the title sort (category %s mode %s)", cat, mode)
		}
	}
}

func TestResolveQueryDescriptor_Unknown(t *testing.T) {
	_, err := ResolveQueryDescriptor(Category(99), SortDefault)
	assert.Error(t, err)

	_, err = ResolveQueryDescriptor(CategoryPopular, SortMode(99))
	assert.Error(t, err)
}

func TestSortOptions(t *testing.T) {
	assert.Len(t, SortOptions(CategoryPopular), 5)
	assert.Nil(t, SortOptions(CategoryRecentlyPlayed), "played lists are pinned to recency")
	assert.Nil(t, SortOptions(CategoryContinueListening))
	assert.Nil(t, SortOptions(Category(99)))
}

func TestCategories_TableComplete(t *testing.T) {
	for _, cat := range Categories() {
		assert.NotEqual(t, "Unknown", cat.Label())
		assert.NotEmpty(t, cat.EmptyMessage())
	}
	assert.Len(t, Categories(), len(categorySpecs))
}
