// Package store defines the durable-storage contract the board domain
// requires, with in-memory and PostgreSQL implementations.
package store

import (
	"context"

	"boardkeep/internal/board/models"
)

// BoardRecord is the durable shape of a board row: its name and the
// owner-editable description. Item membership is stored on the items.
type BoardRecord struct {
	Name        models.Name
	Description string
}

// Gateway is the capability interface the registry consumes. Implementations
// must assign stable item ids on insert and keep sharing-edge writes
// idempotent; no multi-statement transaction guarantee is assumed beyond
// that — the registry substitutes in-memory rollback for real transactions.
type Gateway interface {
	// LoadBoards returns the persisted board rows for an owner. Boards with
	// no durable row yet simply do not appear.
	LoadBoards(ctx context.Context, owner string) ([]BoardRecord, error)
	// LoadItems returns an owner's items for one board, in insertion order,
	// without sharing sets.
	LoadItems(ctx context.Context, board models.Name, owner string) ([]*models.Item, error)
	// LoadSharing returns the emails an item is shared with.
	LoadSharing(ctx context.Context, itemID int64) ([]string, error)

	// UpsertBoard creates the board row on first write, else updates it.
	UpsertBoard(ctx context.Context, board *models.Board) error
	// InsertItem persists a new item and returns its assigned id.
	InsertItem(ctx context.Context, item *models.Item) (int64, error)
	// UpdateItem re-saves an item under its existing id.
	UpdateItem(ctx context.Context, item *models.Item) error
	// DeleteItem removes the item row and cascades its sharing edges.
	DeleteItem(ctx context.Context, itemID int64) error

	// AddSharingEdge records that itemID is shared with addr. Idempotent.
	AddSharingEdge(ctx context.Context, itemID int64, addr string) error
	// RemoveSharingEdge deletes the edge if present. Idempotent.
	RemoveSharingEdge(ctx context.Context, itemID int64, addr string) error
}
