// Package audit captures key domain actions as events. Events are emitted
// from service logic and fanned out by a Publisher, keeping the domain
// transport-agnostic.
package audit

import "time"

// Action names a single auditable operation.
type Action string

const (
	// Account events
	ActionUserRegistered Action = "user_registered"
	ActionLoginSucceeded Action = "login_succeeded"
	ActionLoginFailed    Action = "login_failed"
	ActionLogout         Action = "logout"

	// Board events
	ActionItemAdded      Action = "item_added"
	ActionItemRemoved    Action = "item_removed"
	ActionItemMoved      Action = "item_moved"
	ActionItemReordered  Action = "item_reordered"
	ActionItemEdited     Action = "item_edited"
	ActionItemShared     Action = "item_shared"
	ActionItemUnshared   Action = "item_unshared"
	ActionBoardDescribed Action = "board_described"
)

// Event records one action against an owner's data.
type Event struct {
	ID     string    `json:"id"`
	Action Action    `json:"action"`
	Owner  string    `json:"owner"`
	Board  string    `json:"board,omitempty"`
	ItemID int64     `json:"item_id,omitempty"`
	// Email carries the counterparty address for share/unshare events and
	// the registered address for account events.
	Email string    `json:"email,omitempty"`
	At    time.Time `json:"at"`
}
