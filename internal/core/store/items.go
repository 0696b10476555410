package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/domaingen/domaingen/internal/core"
)

// ListItems returns every stored item ordered by id.
func (s *Store) ListItems(ctx context.Context) ([]core.Item, error) {
	if s == nil || s.DB == nil {
		return nil, errors.New("store is not initialized")
	}

	return s.queryItems(ctx, `SELECT id, type, description FROM items ORDER BY id`)
}

// ListItemsByType returns the items of the given type ordered by id.
func (s *Store) ListItemsByType(ctx context.Context, itemType core.ItemType) ([]core.Item, error) {
	if s == nil || s.DB == nil {
		return nil, errors.New("store is not initialized")
	}

	return s.queryItems(ctx, `SELECT id, type, description FROM items WHERE type = ? ORDER BY id`, string(itemType))
}

// SaveItem inserts a new item and returns it with its assigned id.
func (s *Store) SaveItem(ctx context.Context, input core.ItemInput) (*core.Item, error) {
	if s == nil || s.DB == nil {
		return nil, errors.New("store is not initialized")
	}

	if ctx == nil {
		ctx = context.Background()
	}

	if !input.Type.Valid() {
		return nil, fmt.Errorf("%w: unsupported item type %q", ErrInvalidItem, input.Type)
	}
	// descriptions are stored trimmed; callers pass them through untouched
	description := strings.TrimSpace(input.Description)
	if description == "" {
		return nil, fmt.Errorf("%w: description is required", ErrInvalidItem)
	}

	item := &core.Item{Type: input.Type, Description: description}
	row := s.DB.QueryRowContext(ctx, s.rebind(`
		INSERT INTO items (type, description)
		VALUES (?, ?)
		RETURNING id
	`), string(item.Type), item.Description)
	if err := row.Scan(&item.ID); err != nil {
		return nil, fmt.Errorf("%w: store item: %v", ErrPersistence, err)
	}

	return item, nil
}

// DeleteItem removes the item with the given id. Deleting an id that does not
// exist is not an error.
func (s *Store) DeleteItem(ctx context.Context, id int64) (bool, error) {
	if s == nil || s.DB == nil {
		return false, errors.New("store is not initialized")
	}

	if ctx == nil {
		ctx = context.Background()
	}

	if _, err := s.DB.ExecContext(ctx, s.rebind(`DELETE FROM items WHERE id = ?`), id); err != nil {
		return false, fmt.Errorf("%w: delete item: %v", ErrPersistence, err)
	}

	return true, nil
}

func (s *Store) queryItems(ctx context.Context, query string, args ...any) ([]core.Item, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	rows, err := s.DB.QueryContext(ctx, s.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("%w: list items: %v", ErrPersistence, err)
	}
	defer rows.Close() // nolint:errcheck // best-effort cleanup on SQL rows

	items := make([]core.Item, 0)
	for rows.Next() {
		var (
			item     core.Item
			itemType string
		)
		if err := rows.Scan(&item.ID, &itemType, &item.Description); err != nil {
			return nil, fmt.Errorf("%w: scan item: %v", ErrPersistence, err)
		}
		item.Type = core.ItemType(itemType)
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list items: %v", ErrPersistence, err)
	}

	return items, nil
}
