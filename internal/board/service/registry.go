// Package service hosts the board registry, the aggregate root the
// application mutates boards through.
package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"boardkeep/internal/audit"
	"boardkeep/internal/board/models"
	"boardkeep/internal/board/store"
	"boardkeep/internal/platform/metrics"
	derrors "boardkeep/pkg/domain-errors"
	"boardkeep/pkg/email"
)

// sharingLoadConcurrency caps parallel sharing-set loads during hydration.
const sharingLoadConcurrency = 4

// Registry is the per-owner aggregate of all boards. It enforces the
// membership and sharing invariants in memory and forwards durable changes
// to the persistence gateway; when the gateway fails, the in-memory state
// is rolled back to its pre-call shape in place of a real transaction.
//
// A registry serves one interactive session. It is not safe for concurrent
// use without external locking.
type Registry struct {
	owner   string
	gateway store.Gateway
	boards  map[models.Name]*models.Board
	logger  *slog.Logger
	audit   audit.Publisher
	metrics *metrics.Metrics
}

type Option func(r *Registry)

func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) { r.logger = logger }
}

func WithAuditPublisher(publisher audit.Publisher) Option {
	return func(r *Registry) { r.audit = publisher }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Registry) { r.metrics = m }
}

// NewRegistry builds an empty registry for an owner. The board set is
// static configuration: every board of the closed enumeration exists
// immediately, hydrated or not.
func NewRegistry(owner string, gateway store.Gateway, opts ...Option) *Registry {
	r := &Registry{
		owner:   owner,
		gateway: gateway,
		boards:  emptyBoards(owner),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func emptyBoards(owner string) map[models.Name]*models.Board {
	boards := make(map[models.Name]*models.Board, len(models.Names()))
	for _, name := range models.Names() {
		boards[name] = models.NewBoard(name, owner)
	}
	return boards
}

func (r *Registry) Owner() string { return r.owner }

// Board returns the named board, failing with CodeNotFound for names
// outside the closed set.
func (r *Registry) Board(name models.Name) (*models.Board, error) {
	board, ok := r.boards[name]
	if !ok {
		return nil, derrors.New(derrors.CodeNotFound, "unknown board: "+name.String())
	}
	return board, nil
}

// Boards returns all boards in display order.
func (r *Registry) Boards() []*models.Board {
	out := make([]*models.Board, 0, len(r.boards))
	for _, name := range models.Names() {
		out = append(out, r.boards[name])
	}
	return out
}

// Hydrate replaces the in-memory state with the owner's durable boards,
// items and sharing sets. On any storage failure the registry is left with
// empty boards and the failure surfaces to the caller; the registry is
// never partially populated.
func (r *Registry) Hydrate(ctx context.Context) error {
	fresh := emptyBoards(r.owner)

	records, err := r.gateway.LoadBoards(ctx, r.owner)
	if err != nil {
		return r.failHydration(err, "load boards")
	}
	for _, rec := range records {
		if board, ok := fresh[rec.Name]; ok {
			board.SetDescription(rec.Description)
		}
	}

	var all []*models.Item
	for _, name := range models.Names() {
		items, err := r.gateway.LoadItems(ctx, name, r.owner)
		if err != nil {
			return r.failHydration(err, "load items")
		}
		for _, item := range items {
			fresh[name].AddItem(item)
			all = append(all, item)
		}
	}

	// Sharing sets are independent per item; load them concurrently.
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(sharingLoadConcurrency)
	for _, item := range all {
		group.Go(func() error {
			members, err := r.gateway.LoadSharing(groupCtx, item.ID)
			if err != nil {
				return err
			}
			item.Sharing = models.NewSharing(item.Author, members...)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return r.failHydration(err, "load sharing")
	}

	r.boards = fresh
	return nil
}

func (r *Registry) failHydration(err error, stage string) error {
	r.boards = emptyBoards(r.owner)
	r.metrics.RecordStorageFailure()
	return derrors.Wrap(err, derrors.CodeStorage, "hydrate: "+stage)
}

// AddItem appends an item to the named board and persists it, assigning the
// durable id. Empty titles are rejected here rather than at the setters, so
// the data model stays permissive while the service boundary is not.
func (r *Registry) AddItem(ctx context.Context, name models.Name, item *models.Item) error {
	if strings.TrimSpace(item.Title) == "" {
		return derrors.New(derrors.CodeValidation, "item title must not be empty")
	}
	board, err := r.Board(name)
	if err != nil {
		return err
	}
	if item.Author == "" {
		item.Author = r.owner
	}
	if item.Sharing == nil {
		item.Sharing = models.NewSharing(item.Author)
	}

	board.AddItem(item)
	id, err := r.gateway.InsertItem(ctx, item)
	if err != nil {
		r.dropLast(board, item)
		r.metrics.RecordStorageFailure()
		return derrors.Wrap(err, derrors.CodeStorage, "insert item")
	}
	item.ID = id

	for _, addr := range item.Sharing.Members() {
		if err := r.gateway.AddSharingEdge(ctx, id, addr); err != nil {
			// Durable cleanup is best effort; the in-memory rollback is the
			// contract.
			_ = r.gateway.DeleteItem(ctx, id)
			r.dropLast(board, item)
			item.ID = 0
			r.metrics.RecordStorageFailure()
			return derrors.Wrap(err, derrors.CodeStorage, "persist sharing edge")
		}
	}

	r.metrics.RecordItemMutation("add")
	r.emit(ctx, audit.Event{Action: audit.ActionItemAdded, Owner: r.owner, Board: name.String(), ItemID: item.ID})
	return nil
}

// dropLast undoes a just-applied AddItem. The appended item is by
// construction the last one.
func (r *Registry) dropLast(board *models.Board, item *models.Item) {
	if n := board.Len(); n > 0 {
		_, _ = board.RemoveItem(n - 1)
	}
	item.Board = ""
}

// RemoveItem deletes the item at index from the named board, durable record
// and sharing edges included, and returns the removed item.
func (r *Registry) RemoveItem(ctx context.Context, name models.Name, index int) (*models.Item, error) {
	board, err := r.Board(name)
	if err != nil {
		return nil, err
	}
	item, err := board.Item(index)
	if err != nil {
		return nil, err
	}

	// Delete durably first: if storage fails the board is untouched.
	if item.ID != 0 {
		if err := r.gateway.DeleteItem(ctx, item.ID); err != nil {
			r.metrics.RecordStorageFailure()
			return nil, derrors.Wrap(err, derrors.CodeStorage, "delete item")
		}
	}
	removed, err := board.RemoveItem(index)
	if err != nil {
		return nil, err
	}

	r.metrics.RecordItemMutation("remove")
	r.emit(ctx, audit.Event{Action: audit.ActionItemRemoved, Owner: r.owner, Board: name.String(), ItemID: removed.ID})
	return removed, nil
}

// MoveItem relocates the item at index from one board to the end of
// another. The item is removed, re-keyed and appended as one in-memory
// step, then the board association is persisted; a reader never observes
// the item on both boards or neither.
func (r *Registry) MoveItem(ctx context.Context, from models.Name, index int, to models.Name) error {
	if from == to {
		return derrors.New(derrors.CodeValidation, "source and destination board are the same")
	}
	src, err := r.Board(from)
	if err != nil {
		return err
	}
	dst, err := r.Board(to)
	if err != nil {
		return err
	}

	item, err := src.RemoveItem(index)
	if err != nil {
		return err
	}
	dst.AddItem(item)

	if err := r.gateway.UpdateItem(ctx, item); err != nil {
		r.dropLast(dst, item)
		src.RestoreItem(index, item)
		r.metrics.RecordStorageFailure()
		return derrors.Wrap(err, derrors.CodeStorage, "persist board association")
	}

	r.metrics.RecordItemMutation("move")
	r.emit(ctx, audit.Event{Action: audit.ActionItemMoved, Owner: r.owner, Board: to.String(), ItemID: item.ID})
	return nil
}

// ReorderItem moves the item at from to position to within one board.
// Order is session-local: it is not persisted, and a reload restores
// insertion order.
func (r *Registry) ReorderItem(ctx context.Context, name models.Name, from, to int) error {
	board, err := r.Board(name)
	if err != nil {
		return err
	}
	if err := board.Reorder(from, to); err != nil {
		return err
	}
	r.metrics.RecordItemMutation("reorder")
	r.emit(ctx, audit.Event{Action: audit.ActionItemReordered, Owner: r.owner, Board: name.String()})
	return nil
}

// ItemPatch carries the optional field updates of EditItem. Nil fields are
// left untouched.
type ItemPatch struct {
	Title       *string
	Description *string
	DueDate     *time.Time
	Done        *bool
	URL         *string
	Color       *models.Color
}

// EditItem applies a field patch to the item at index and persists the full
// record. On storage failure the previous field values are restored.
func (r *Registry) EditItem(ctx context.Context, name models.Name, index int, patch ItemPatch) error {
	board, err := r.Board(name)
	if err != nil {
		return err
	}
	item, err := board.Item(index)
	if err != nil {
		return err
	}
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return derrors.New(derrors.CodeValidation, "item title must not be empty")
	}

	snapshot := *item
	if patch.Title != nil {
		item.Title = *patch.Title
	}
	if patch.Description != nil {
		item.Description = *patch.Description
	}
	if patch.DueDate != nil {
		item.DueDate = *patch.DueDate
	}
	if patch.Done != nil {
		item.Done = *patch.Done
	}
	if patch.URL != nil {
		item.URL = *patch.URL
	}
	if patch.Color != nil {
		item.Color = *patch.Color
	}

	if err := r.gateway.UpdateItem(ctx, item); err != nil {
		*item = snapshot
		r.metrics.RecordStorageFailure()
		return derrors.Wrap(err, derrors.CodeStorage, "update item")
	}

	r.metrics.RecordItemMutation("edit")
	r.emit(ctx, audit.Event{Action: audit.ActionItemEdited, Owner: r.owner, Board: name.String(), ItemID: item.ID})
	return nil
}

// SetBoardDescription updates a board's description and upserts its durable
// row, so the first write for a board creates it.
func (r *Registry) SetBoardDescription(ctx context.Context, name models.Name, text string) error {
	board, err := r.Board(name)
	if err != nil {
		return err
	}
	prev := board.Description()
	board.SetDescription(text)

	if err := r.gateway.UpsertBoard(ctx, board); err != nil {
		board.SetDescription(prev)
		r.metrics.RecordStorageFailure()
		return derrors.Wrap(err, derrors.CodeStorage, "upsert board")
	}

	r.emit(ctx, audit.Event{Action: audit.ActionBoardDescribed, Owner: r.owner, Board: name.String()})
	return nil
}

// ShareItem grants addr visibility of the item at index. Sharing with an
// existing member or the author is a no-op, never an error.
func (r *Registry) ShareItem(ctx context.Context, name models.Name, index int, addr string) error {
	addr = email.Normalize(addr)
	if err := email.Validate(addr); err != nil {
		return err
	}
	board, err := r.Board(name)
	if err != nil {
		return err
	}
	item, err := board.Item(index)
	if err != nil {
		return err
	}
	if addr == item.Sharing.Author() || item.Sharing.Contains(addr) {
		return nil
	}

	item.Sharing.Add(addr)
	if item.ID != 0 {
		if err := r.gateway.AddSharingEdge(ctx, item.ID, addr); err != nil {
			item.Sharing.Remove(addr)
			r.metrics.RecordStorageFailure()
			return derrors.Wrap(err, derrors.CodeStorage, "add sharing edge")
		}
	}

	r.metrics.RecordSharingEdge("added")
	r.emit(ctx, audit.Event{Action: audit.ActionItemShared, Owner: r.owner, Board: name.String(), ItemID: item.ID, Email: addr})
	return nil
}

// UnshareItem revokes addr's visibility of the item at index. Unsharing a
// non-member is a no-op.
func (r *Registry) UnshareItem(ctx context.Context, name models.Name, index int, addr string) error {
	addr = email.Normalize(addr)
	board, err := r.Board(name)
	if err != nil {
		return err
	}
	item, err := board.Item(index)
	if err != nil {
		return err
	}
	if !item.Sharing.Contains(addr) {
		return nil
	}

	item.Sharing.Remove(addr)
	if item.ID != 0 {
		if err := r.gateway.RemoveSharingEdge(ctx, item.ID, addr); err != nil {
			item.Sharing.Add(addr)
			r.metrics.RecordStorageFailure()
			return derrors.Wrap(err, derrors.CodeStorage, "remove sharing edge")
		}
	}

	r.metrics.RecordSharingEdge("removed")
	r.emit(ctx, audit.Event{Action: audit.ActionItemUnshared, Owner: r.owner, Board: name.String(), ItemID: item.ID, Email: addr})
	return nil
}

func (r *Registry) emit(ctx context.Context, event audit.Event) {
	if r.logger != nil {
		r.logger.InfoContext(ctx, string(event.Action),
			"owner", event.Owner,
			"board", event.Board,
			"item_id", event.ItemID,
			"log_type", "audit",
		)
	}
	if r.audit == nil {
		return
	}
	if err := r.audit.Emit(ctx, event); err != nil && r.logger != nil {
		r.logger.WarnContext(ctx, "audit emit failed", "error", err)
	}
}
