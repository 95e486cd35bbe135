package models

import (
	"fmt"

	derrors "boardkeep/pkg/domain-errors"
)

// Board is a named, owned, ordered collection of items. Item order is
// significant: it drives display order and is the target of Reorder.
//
// A board exclusively owns its item sequence. Items move between boards by
// remove-then-insert, never by aliasing, so no item is ever referenced by
// two boards.
type Board struct {
	name        Name
	owner       string
	description string
	items       []*Item
}

func NewBoard(name Name, owner string) *Board {
	return &Board{name: name, owner: owner}
}

func (b *Board) Name() Name          { return b.name }
func (b *Board) Owner() string       { return b.owner }
func (b *Board) Description() string { return b.description }
func (b *Board) Len() int            { return len(b.items) }

func (b *Board) SetDescription(text string) {
	b.description = text
}

// AddItem appends to the end of the sequence and re-keys the item to this
// board. Always succeeds.
func (b *Board) AddItem(item *Item) {
	item.Board = b.name
	b.items = append(b.items, item)
}

// RemoveItem removes and returns the item at index so callers can re-insert
// it elsewhere; this is the basis of move semantics.
func (b *Board) RemoveItem(index int) (*Item, error) {
	if index < 0 || index >= len(b.items) {
		return nil, derrors.New(derrors.CodeOutOfRange,
			fmt.Sprintf("index %d out of range for board %s (len %d)", index, b.name, len(b.items)))
	}
	item := b.items[index]
	b.items = append(b.items[:index], b.items[index+1:]...)
	return item, nil
}

// Reorder cuts the item at from and re-inserts it at to, where to is
// interpreted against the sequence after the removal. Cut-and-paste
// semantics, not a swap.
func (b *Board) Reorder(from, to int) error {
	if from < 0 || from >= len(b.items) {
		return derrors.New(derrors.CodeOutOfRange,
			fmt.Sprintf("from index %d out of range for board %s (len %d)", from, b.name, len(b.items)))
	}
	if to < 0 || to >= len(b.items) {
		return derrors.New(derrors.CodeOutOfRange,
			fmt.Sprintf("to index %d out of range for board %s (len %d)", to, b.name, len(b.items)))
	}
	item := b.items[from]
	rest := append(b.items[:from], b.items[from+1:]...)
	b.items = append(rest[:to], append([]*Item{item}, rest[to:]...)...)
	return nil
}

// Item returns the item at index.
func (b *Board) Item(index int) (*Item, error) {
	if index < 0 || index >= len(b.items) {
		return nil, derrors.New(derrors.CodeOutOfRange,
			fmt.Sprintf("index %d out of range for board %s (len %d)", index, b.name, len(b.items)))
	}
	return b.items[index], nil
}

// Items returns a copy of the ordered sequence. The items themselves are
// shared pointers; the slice is not.
func (b *Board) Items() []*Item {
	out := make([]*Item, len(b.items))
	copy(out, b.items)
	return out
}

// IndexOf locates a persisted item by its storage id, returning -1 when the
// board does not hold it.
func (b *Board) IndexOf(id int64) int {
	for i, item := range b.items {
		if item.ID != 0 && item.ID == id {
			return i
		}
	}
	return -1
}

// insertAt places an item at a specific position. Used by the registry to
// restore a board to its pre-call state when persistence fails.
func (b *Board) insertAt(index int, item *Item) {
	if index < 0 {
		index = 0
	}
	if index > len(b.items) {
		index = len(b.items)
	}
	item.Board = b.name
	b.items = append(b.items[:index], append([]*Item{item}, b.items[index:]...)...)
}

// RestoreItem re-inserts a previously removed item at its original position.
func (b *Board) RestoreItem(index int, item *Item) {
	b.insertAt(index, item)
}
