package models

import (
	"time"
)

// Message is a single guestbook entry as carried on the live feed.
// The persisted log stores only the text; ID and CreatedAt exist so feed
// subscribers can deduplicate and display entries.
type Message struct {
	ID        string    `json:"id"`        // Unique event ID (UUID)
	Text      string    `json:"text"`      // Entry content, already trimmed
	CreatedAt time.Time `json:"createdAt"` // Time the entry was accepted
}
