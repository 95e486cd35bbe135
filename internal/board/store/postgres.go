package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"boardkeep/internal/board/models"
	"boardkeep/pkg/platform/sentinel"
)

// Postgres persists boards, items and sharing edges in PostgreSQL.
type Postgres struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed gateway.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

const schema = `
CREATE TABLE IF NOT EXISTS boards (
	owner_email TEXT        NOT NULL,
	name        TEXT        NOT NULL,
	description TEXT        NOT NULL DEFAULT '',
	PRIMARY KEY (owner_email, name)
);

CREATE TABLE IF NOT EXISTS items (
	id           BIGSERIAL   PRIMARY KEY,
	board_name   TEXT        NOT NULL,
	author_email TEXT        NOT NULL,
	title        TEXT        NOT NULL,
	description  TEXT        NOT NULL DEFAULT '',
	due_date     TIMESTAMPTZ,
	done         BOOLEAN     NOT NULL DEFAULT FALSE,
	url          TEXT        NOT NULL DEFAULT '',
	image        BYTEA,
	color_r      SMALLINT    NOT NULL DEFAULT 0,
	color_g      SMALLINT    NOT NULL DEFAULT 0,
	color_b      SMALLINT    NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS items_owner_board_idx ON items (author_email, board_name);

CREATE TABLE IF NOT EXISTS item_shares (
	item_id BIGINT NOT NULL REFERENCES items (id) ON DELETE CASCADE,
	email   TEXT   NOT NULL,
	PRIMARY KEY (item_id, email)
);
`

// EnsureSchema creates the tables when they do not exist yet. Integration
// tests and first boots call this; it is safe to call repeatedly.
func (s *Postgres) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

func (s *Postgres) LoadBoards(ctx context.Context, owner string) ([]BoardRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, description FROM boards WHERE owner_email = $1`, owner)
	if err != nil {
		return nil, fmt.Errorf("load boards: %w", err)
	}
	defer rows.Close()

	var out []BoardRecord
	for rows.Next() {
		var rec BoardRecord
		var name string
		if err := rows.Scan(&name, &rec.Description); err != nil {
			return nil, fmt.Errorf("scan board: %w", err)
		}
		parsed, err := models.ParseName(name)
		if err != nil {
			// Rows outside the closed board set are unreachable through the
			// registry; skip rather than fail hydration.
			continue
		}
		rec.Name = parsed
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load boards: %w", err)
	}
	return out, nil
}

func (s *Postgres) LoadItems(ctx context.Context, board models.Name, owner string) ([]*models.Item, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, description, due_date, done, url, image, color_r, color_g, color_b
		FROM items
		WHERE author_email = $1 AND board_name = $2
		ORDER BY id`, owner, board.String())
	if err != nil {
		return nil, fmt.Errorf("load items: %w", err)
	}
	defer rows.Close()

	var out []*models.Item
	for rows.Next() {
		item := &models.Item{Board: board, Author: owner}
		var due sql.NullTime
		var r, g, b int16
		if err := rows.Scan(&item.ID, &item.Title, &item.Description, &due,
			&item.Done, &item.URL, &item.Image, &r, &g, &b); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		if due.Valid {
			item.DueDate = due.Time
		}
		item.Color = models.Color{R: uint8(r), G: uint8(g), B: uint8(b)}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load items: %w", err)
	}
	return out, nil
}

func (s *Postgres) LoadSharing(ctx context.Context, itemID int64) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT email FROM item_shares WHERE item_id = $1`, itemID)
	if err != nil {
		return nil, fmt.Errorf("load sharing: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var addr string
		if err := rows.Scan(&addr); err != nil {
			return nil, fmt.Errorf("scan sharing edge: %w", err)
		}
		out = append(out, addr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load sharing: %w", err)
	}
	return out, nil
}

func (s *Postgres) UpsertBoard(ctx context.Context, board *models.Board) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO boards (owner_email, name, description)
		VALUES ($1, $2, $3)
		ON CONFLICT (owner_email, name) DO UPDATE SET description = EXCLUDED.description`,
		board.Owner(), board.Name().String(), board.Description())
	if err != nil {
		return fmt.Errorf("upsert board: %w", err)
	}
	return nil
}

func (s *Postgres) InsertItem(ctx context.Context, item *models.Item) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO items (board_name, author_email, title, description, due_date, done, url, image, color_r, color_g, color_b)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`,
		item.Board.String(), item.Author, item.Title, item.Description,
		nullTime(item.DueDate), item.Done, item.URL, item.Image,
		int16(item.Color.R), int16(item.Color.G), int16(item.Color.B)).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert item: %w", err)
	}
	return id, nil
}

func (s *Postgres) UpdateItem(ctx context.Context, item *models.Item) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE items
		SET board_name = $2, title = $3, description = $4, due_date = $5,
		    done = $6, url = $7, image = $8, color_r = $9, color_g = $10, color_b = $11
		WHERE id = $1`,
		item.ID, item.Board.String(), item.Title, item.Description,
		nullTime(item.DueDate), item.Done, item.URL, item.Image,
		int16(item.Color.R), int16(item.Color.G), int16(item.Color.B))
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *Postgres) DeleteItem(ctx context.Context, itemID int64) error {
	// Sharing edges cascade via the foreign key.
	if _, err := s.db.ExecContext(ctx, `DELETE FROM items WHERE id = $1`, itemID); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

func (s *Postgres) AddSharingEdge(ctx context.Context, itemID int64, addr string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO item_shares (item_id, email)
		VALUES ($1, $2)
		ON CONFLICT (item_id, email) DO NOTHING`, itemID, addr)
	if err != nil {
		return fmt.Errorf("add sharing edge: %w", err)
	}
	return nil
}

func (s *Postgres) RemoveSharingEdge(ctx context.Context, itemID int64, addr string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM item_shares WHERE item_id = $1 AND email = $2`, itemID, addr)
	if err != nil {
		return fmt.Errorf("remove sharing edge: %w", err)
	}
	return nil
}

func nullTime(t time.Time) sql.NullTime {
	if t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t, Valid: true}
}
