package account

import "context"

// UserStore persists identities keyed by email.
type UserStore interface {
	// Create stores a new identity; sentinel.ErrConflict when the email is
	// already registered.
	Create(ctx context.Context, identity Identity) error
	// FindByEmail returns sentinel.ErrNotFound for unknown addresses.
	FindByEmail(ctx context.Context, email string) (Identity, error)
}

// SessionStore tracks live sessions. Implementations may expire entries on
// their own; a missing session reads as sentinel.ErrNotFound either way.
type SessionStore interface {
	Save(ctx context.Context, session Session) error
	Find(ctx context.Context, id string) (Session, error)
	Delete(ctx context.Context, id string) error
}
