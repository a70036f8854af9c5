package domain

import "time"

// ListeningProgress is the per-user playback position for one content item.
// The mobile player owns writes; this client only reads the newest row per
// (user, item) pair and never mutates it.
type ListeningProgress struct {
	UserID               string
	ContentID            int64
	UpdatedAt            time.Time // Last position write, recency key for the played lists
	CompletionPercentage float64   // 0-100
	CurrentChapter       int       // 1-based chapter index
	PositionSeconds      int       // Offset within the current chapter
	IsCompleted          bool      // Finished at least once
}

// Resumable returns true when the item has a position worth resuming from
func (p ListeningProgress) Resumable() bool {
	return !p.IsCompleted && (p.PositionSeconds > 0 || p.CurrentChapter > 1)
}
