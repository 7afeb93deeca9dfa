package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/erazemk/garderoba/internal/model"
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// SaveItem inserts or updates an item. New items are appended after all
// existing ones; updates keep their position.
func SaveItem(ctx context.Context, q querier, item model.ClothingItem) error {
	colors, err := json.Marshal(item.Colors)
	if err != nil {
		return fmt.Errorf("encoding colors: %w", err)
	}
	seasons, err := json.Marshal(item.Seasons)
	if err != nil {
		return fmt.Errorf("encoding seasons: %w", err)
	}
	occasions, err := json.Marshal(item.Occasions)
	if err != nil {
		return fmt.Errorf("encoding occasions: %w", err)
	}

	_, err = q.ExecContext(ctx,
		`INSERT INTO items (id, position, name, brand, category, subcategory, colors, seasons, occasions,
		                    price, image_url, description, favorite)
		 VALUES (?, (SELECT COALESCE(MAX(position), 0) + 1 FROM items), ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET
		     name = excluded.name, brand = excluded.brand, category = excluded.category,
		     subcategory = excluded.subcategory, colors = excluded.colors, seasons = excluded.seasons,
		     occasions = excluded.occasions, price = excluded.price, image_url = excluded.image_url,
		     description = excluded.description, favorite = excluded.favorite`,
		item.ID, item.Name, item.Brand, item.Category, item.Subcategory,
		string(colors), string(seasons), string(occasions),
		item.Price, item.ImageURL, item.Description, item.Favorite,
	)
	if err != nil {
		return fmt.Errorf("saving item %s: %w", item.ID, err)
	}
	return nil
}

// DeleteItem deletes an item. Its outfit memberships go with it.
func DeleteItem(ctx context.Context, q querier, id string) error {
	if _, err := q.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting item %s: %w", id, err)
	}
	return nil
}

// ListItems returns all items in insertion order.
func ListItems(ctx context.Context, q querier) ([]model.ClothingItem, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT id, name, brand, category, subcategory, colors, seasons, occasions,
		        price, image_url, description, favorite
		 FROM items ORDER BY position`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	var items []model.ClothingItem
	for rows.Next() {
		var item model.ClothingItem
		var colors, seasons, occasions string
		if err := rows.Scan(&item.ID, &item.Name, &item.Brand, &item.Category, &item.Subcategory,
			&colors, &seasons, &occasions,
			&item.Price, &item.ImageURL, &item.Description, &item.Favorite); err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		if err := decodeSets(&item, colors, seasons, occasions); err != nil {
			return nil, fmt.Errorf("decoding item %s: %w", item.ID, err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func decodeSets(item *model.ClothingItem, colors, seasons, occasions string) error {
	if err := json.Unmarshal([]byte(colors), &item.Colors); err != nil {
		return fmt.Errorf("colors: %w", err)
	}
	if err := json.Unmarshal([]byte(seasons), &item.Seasons); err != nil {
		return fmt.Errorf("seasons: %w", err)
	}
	if err := json.Unmarshal([]byte(occasions), &item.Occasions); err != nil {
		return fmt.Errorf("occasions: %w", err)
	}
	return nil
}
