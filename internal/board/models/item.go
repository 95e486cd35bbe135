package models

import "time"

// Color is an RGB triple attached to an item for display purposes.
type Color struct {
	R, G, B uint8
}

// Item is a single task record.
//
// Invariants:
//   - Board always names the one board currently holding the item; Board is
//     re-keyed by Board.AddItem, never assigned by callers
//   - ID is zero until the persistence gateway assigns one, and immutable
//     afterwards; re-saving an item with an ID updates the durable record
type Item struct {
	// ID is the storage-assigned identifier. Zero means not yet persisted.
	ID          int64
	Title       string
	Description string
	DueDate     time.Time
	Done        bool
	URL         string
	Image       []byte
	Color       Color
	Board       Name
	Author      string
	Sharing     *Sharing
}

// NewItem builds an unpersisted item authored by owner. The board field is
// assigned when the item joins a board.
func NewItem(title, description string, due time.Time, author string) *Item {
	return &Item{
		Title:       title,
		Description: description,
		DueDate:     due,
		Author:      author,
		Sharing:     NewSharing(author),
	}
}
