package account

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"boardkeep/pkg/platform/sentinel"
)

// PostgresUserStore persists identities in PostgreSQL.
type PostgresUserStore struct {
	db *sql.DB
}

func NewPostgresUserStore(db *sql.DB) *PostgresUserStore {
	return &PostgresUserStore{db: db}
}

const userSchema = `
CREATE TABLE IF NOT EXISTS users (
	email           TEXT        PRIMARY KEY,
	credential_hash TEXT        NOT NULL,
	registered_at   TIMESTAMPTZ NOT NULL
);
`

// EnsureSchema creates the users table when absent. Safe to call repeatedly.
func (s *PostgresUserStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, userSchema); err != nil {
		return fmt.Errorf("ensure user schema: %w", err)
	}
	return nil
}

func (s *PostgresUserStore) Create(ctx context.Context, identity Identity) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (email, credential_hash, registered_at)
		VALUES ($1, $2, $3)`,
		identity.Email, identity.CredentialHash, identity.RegisteredAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (s *PostgresUserStore) FindByEmail(ctx context.Context, email string) (Identity, error) {
	var identity Identity
	err := s.db.QueryRowContext(ctx, `
		SELECT email, credential_hash, registered_at
		FROM users WHERE email = $1`, email).
		Scan(&identity.Email, &identity.CredentialHash, &identity.RegisteredAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Identity{}, sentinel.ErrNotFound
		}
		return Identity{}, fmt.Errorf("find user: %w", err)
	}
	return identity, nil
}
