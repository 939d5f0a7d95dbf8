package shopping

import (
	"context"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"recipehub/internal/platform/postgres"
)

// Store defines the interface for shopping list operations.
type Store interface {
	AddItem(ctx context.Context, item *Item) (bool, error)
	ListItems(ctx context.Context, owner string) ([]*Item, error)
	ToggleItem(ctx context.Context, owner, id string) (*Item, error)
	RemoveItem(ctx context.Context, owner, id string) (bool, error)
	ClearItems(ctx context.Context, owner string) error
}

const schema = `
CREATE TABLE IF NOT EXISTS shopping_items (
	id TEXT PRIMARY KEY,
	owner_id TEXT NOT NULL,
	text TEXT NOT NULL,
	checked BOOLEAN NOT NULL DEFAULT FALSE,
	recipe_slug TEXT NOT NULL DEFAULT '',
	recipe_title TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE (owner_id, text)
);
`

var itemColumns = []string{"id", "owner_id", "text", "checked", "recipe_slug", "recipe_title", "created_at"}

// PostgresStore implements the Store interface for PostgreSQL.
type PostgresStore struct {
	db *sqlx.DB
}

// NewPostgresStore creates the shopping_items table if needed and returns a store.
func NewPostgresStore(db *sqlx.DB) (*PostgresStore, error) {
	if err := postgres.EnsureSchema(db, schema); err != nil {
		return nil, fmt.Errorf("failed to create shopping_items table: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

// AddItem stores item unless the owner already has an item with the same
// text. It reports whether a row was written; ID and CreatedAt are filled in.
func (s *PostgresStore) AddItem(ctx context.Context, item *Item) (bool, error) {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now().UTC()
	}

	query, args, err := postgres.Builder.
		Insert("shopping_items").
		Columns(itemColumns...).
		Values(item.ID, item.OwnerID, item.Text, item.Checked, item.RecipeSlug, item.RecipeTitle, item.CreatedAt).
		Suffix("ON CONFLICT (owner_id, text) DO NOTHING").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build item insert: %w", err)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to add shopping item: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read insert result: %w", err)
	}
	return n > 0, nil
}

// ListItems returns the owner's items in the order they were added.
func (s *PostgresStore) ListItems(ctx context.Context, owner string) ([]*Item, error) {
	query, args, err := postgres.Builder.
		Select(itemColumns...).
		From("shopping_items").
		Where(sq.Eq{"owner_id": owner}).
		OrderBy("created_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build items query: %w", err)
	}

	items := []*Item{}
	if err := s.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list shopping items: %w", err)
	}
	return items, nil
}

// ToggleItem flips the checked flag and returns the updated item, or nil when
// the owner has no such item.
func (s *PostgresStore) ToggleItem(ctx context.Context, owner, id string) (*Item, error) {
	query, args, err := postgres.Builder.
		Update("shopping_items").
		Set("checked", sq.Expr("NOT checked")).
		Where(sq.Eq{"owner_id": owner, "id": id}).
		Suffix("RETURNING " + strings.Join(itemColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build toggle: %w", err)
	}

	rows, err := s.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to toggle shopping item: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	var item Item
	if err := rows.StructScan(&item); err != nil {
		return nil, fmt.Errorf("failed to scan shopping item: %w", err)
	}
	return &item, nil
}

// RemoveItem deletes one item and reports whether it existed.
func (s *PostgresStore) RemoveItem(ctx context.Context, owner, id string) (bool, error) {
	query, args, err := postgres.Builder.
		Delete("shopping_items").
		Where(sq.Eq{"owner_id": owner, "id": id}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build delete: %w", err)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to remove shopping item: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read delete result: %w", err)
	}
	return n > 0, nil
}

// ClearItems empties the owner's list.
func (s *PostgresStore) ClearItems(ctx context.Context, owner string) error {
	query, args, err := postgres.Builder.
		Delete("shopping_items").
		Where(sq.Eq{"owner_id": owner}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build clear: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to clear shopping list: %w", err)
	}
	return nil
}
