package search

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/navatui/nava/internal/catalog"
	"github.com/navatui/nava/internal/domain"
)

type queryCall struct {
	table string
	q     domain.RemoteQuery
}

type mockDataSource struct {
	rows []domain.Row
	err  error

	calls []queryCall
}

func (m *mockDataSource) Query(ctx context.Context, table string, q domain.RemoteQuery) ([]domain.Row, error) {
	m.calls = append(m.calls, queryCall{table: table, q: q})
	if m.err != nil {
		return nil, m.err
	}
	return m.rows, nil
}

func (m *mockDataSource) QueryIn(ctx context.Context, table, column string, ids []int64, q domain.RemoteQuery) ([]domain.Row, error) {
	return nil, errors.New("unexpected QueryIn")
}

func titleRow(id int64, titleFA, titleEN string) domain.Row {
	return domain.Row{
		"id":       float64(id),
		"title_fa": titleFA,
		"title_en": titleEN,
	}
}

func TestService_Search_QueryShape(t *testing.T) {
	source := &mockDataSource{rows: []domain.Row{titleRow(1, "شب", "Night")}}
	svc := NewService(source, nil)

	items, err := svc.Search(context.Background(), "شب")
	require.NoError(t, err)
	require.Len(t, items, 1)

	require.Len(t, source.calls, 1)
	call := source.calls[0]
	assert.Equal(t, catalog.ContentTable, call.table)
	assert.Equal(t, catalog.ContentSelect, call.q.Select)
	assert.Equal(t, domain.Order{Column: catalog.ColumnPlayCount, Ascending: false}, call.q.Order)
	assert.Equal(t, searchLimit, call.q.Limit)

	require.Len(t, call.q.Filters, 2)
	assert.Equal(t, domain.Eq("status", "approved"), call.q.Filters[0])
	assert.Equal(t, domain.AnyOf("title_fa.ilike.*شب*", "title_en.ilike.*شب*"), call.q.Filters[1])
}

func TestService_Search_EmptyQuery(t *testing.T) {
	source := &mockDataSource{}
	svc := NewService(source, nil)

	for _, query := range []string{"", "   ", "\t"} {
		items, err := svc.Search(context.Background(), query)
		require.NoError(t, err)
		assert.Nil(t, items)
	}
	assert.Empty(t, source.calls, "blank queries never hit the server")
}

func TestService_Search_SanitizesPattern(t *testing.T) {
	source := &mockDataSource{}
	svc := NewService(source, nil)

	_, err := svc.Search(context.Background(), `a,b(c)d.e"f`)
	require.NoError(t, err)

	require.Len(t, source.calls, 1)
	filters := source.calls[0].q.Filters
	require.Len(t, filters, 2)
	assert.Equal(t, domain.AnyOf("title_fa.ilike.*abcdef*", "title_en.ilike.*abcdef*"), filters[1])
}

func TestService_Search_RanksCloserMatchesFirst(t *testing.T) {
	// Server order is play count; output order must be match quality.
	source := &mockDataSource{rows: []domain.Row{
		titleRow(1, "قصه شب", ""),
		titleRow(2, "شبهای تهران", ""),
		titleRow(3, "شب", ""),
	}}
	svc := NewService(source, nil)

	items, err := svc.Search(context.Background(), "شب")
	require.NoError(t, err)

	require.Len(t, items, 3)
	assert.Equal(t, int64(3), items[0].ID, "exact match first")
	assert.Equal(t, int64(2), items[1].ID, "prefix match second")
	assert.Equal(t, int64(1), items[2].ID, "substring match last")
}

func TestService_Search_EnglishTitleCounts(t *testing.T) {
	source := &mockDataSource{rows: []domain.Row{
		titleRow(1, "شبهای تهران", "Tehran Nights"),
		titleRow(2, "شب", "Night"),
	}}
	svc := NewService(source, nil)

	items, err := svc.Search(context.Background(), "night")
	require.NoError(t, err)

	require.Len(t, items, 2)
	assert.Equal(t, int64(2), items[0].ID, "exact English match outranks substring")
}

func TestService_Search_TiesKeepServerOrder(t *testing.T) {
	source := &mockDataSource{rows: []domain.Row{
		titleRow(1, "قصه شب", ""),
		titleRow(2, "کتاب شب", ""),
	}}
	svc := NewService(source, nil)

	items, err := svc.Search(context.Background(), "شب")
	require.NoError(t, err)

	require.Len(t, items, 2)
	assert.Equal(t, int64(1), items[0].ID)
	assert.Equal(t, int64(2), items[1].ID)
}

func TestService_Search_Error(t *testing.T) {
	fetchErr := &domain.TransportError{Err: errors.New("connection refused")}
	source := &mockDataSource{err: fetchErr}
	svc := NewService(source, nil)

	items, err := svc.Search(context.Background(), "شب")
	assert.Nil(t, items)
	assert.ErrorIs(t, err, fetchErr.Err)
}

func TestMatchScore(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		query    string
		expected int
	}{
		{name: "exact", title: "شب", query: "شب", expected: 0},
		{name: "prefix", title: "شبهای تهران", query: "شب", expected: 10},
		{name: "contains", title: "قصه شب", query: "شب", expected: 50},
		{name: "fuzzy distance", title: "shal", query: "shab", expected: 101},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, matchScore(tt.title, tt.query))
		})
	}
}
