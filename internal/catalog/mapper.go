package catalog

import "github.com/navatui/nava/internal/domain"

// Tables and projections for the catalog reads. ContentSelect embeds the
// narrator sub-record; ItemFromRow flattens it.
const (
	ContentTable  = "content"
	ProgressTable = "listening_progress"

	ContentSelect = "id,title_fa,title_en,cover_url,avg_rating,play_count,created_at," +
		"is_free,is_featured,is_music,is_podcast,is_article,is_brand_narrated,narrators(name)"
	progressSelect = "user_id,content_id,updated_at,completion_percentage," +
		"current_chapter,position_seconds,is_completed"
)

// StatusApproved gates every content read. Rows in other states exist
// remotely but are never shown.
const StatusApproved = "approved"

// ItemFromRow converts one content row to a domain item
func ItemFromRow(row domain.Row) domain.ContentItem {
	item := domain.ContentItem{
		ID:              row.Int64("id"),
		TitleFA:         row.String("title_fa"),
		TitleEN:         row.String("title_en"),
		CoverURL:        row.String("cover_url"),
		Rating:          row.Float("avg_rating"),
		PlayCount:       row.Int("play_count"),
		CreatedAt:       row.Time("created_at"),
		IsFree:          row.Bool("is_free"),
		IsFeatured:      row.Bool("is_featured"),
		IsMusic:         row.Bool("is_music"),
		IsPodcast:       row.Bool("is_podcast"),
		IsArticle:       row.Bool("is_article"),
		IsBrandNarrated: row.Bool("is_brand_narrated"),
	}
	if narrator := row.Sub("narrators"); narrator != nil {
		item.Narrator = narrator.String("name")
	}
	return item
}

// ItemsFromRows converts a page of content rows, preserving order
func ItemsFromRows(rows []domain.Row) []domain.ContentItem {
	items := make([]domain.ContentItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, ItemFromRow(row))
	}
	return items
}

// progressFromRow converts one listening_progress row
func progressFromRow(row domain.Row) domain.ListeningProgress {
	return domain.ListeningProgress{
		UserID:               row.String("user_id"),
		ContentID:            row.Int64("content_id"),
		UpdatedAt:            row.Time("updated_at"),
		CompletionPercentage: row.Float("completion_percentage"),
		CurrentChapter:       row.Int("current_chapter"),
		PositionSeconds:      row.Int("position_seconds"),
		IsCompleted:          row.Bool("is_completed"),
	}
}
