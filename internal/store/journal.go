package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/erazemk/garderoba/internal/model"
	"github.com/erazemk/garderoba/internal/wardrobe"
)

// Apply writes one committed wardrobe change to the database. Selection
// changes are transient and ignored.
func Apply(ctx context.Context, db *sql.DB, c wardrobe.Change) error {
	switch c.Kind {
	case wardrobe.ItemAdded, wardrobe.ItemUpdated:
		return SaveItem(ctx, db, *c.Item)
	case wardrobe.ItemRemoved:
		return DeleteItem(ctx, db, c.Item.ID)
	case wardrobe.OutfitCreated, wardrobe.OutfitUpdated:
		return inTx(ctx, db, func(tx *sql.Tx) error {
			return SaveOutfit(ctx, tx, *c.Outfit)
		})
	case wardrobe.OutfitRemoved:
		return DeleteOutfit(ctx, db, c.Outfit.ID)
	case wardrobe.SelectionChanged:
		return nil
	default:
		return fmt.Errorf("unknown change kind %q", c.Kind)
	}
}

// Listener returns a wardrobe listener that applies every change to db.
// Failures are passed to onError; the in-memory change is never undone.
func Listener(db *sql.DB, onError func(wardrobe.Change, error)) func(wardrobe.Change) {
	return func(c wardrobe.Change) {
		if err := Apply(context.Background(), db, c); err != nil && onError != nil {
			onError(c, err)
		}
	}
}

// SaveAll writes a full wardrobe in one transaction.
func SaveAll(ctx context.Context, db *sql.DB, items []model.ClothingItem, outfits []model.Outfit) error {
	return inTx(ctx, db, func(tx *sql.Tx) error {
		for _, item := range items {
			if err := SaveItem(ctx, tx, item); err != nil {
				return err
			}
		}
		for _, o := range outfits {
			if err := SaveOutfit(ctx, tx, o); err != nil {
				return err
			}
		}
		return nil
	})
}

// Load reads the saved wardrobe.
func Load(ctx context.Context, db *sql.DB) ([]model.ClothingItem, []model.Outfit, error) {
	items, err := ListItems(ctx, db)
	if err != nil {
		return nil, nil, err
	}
	outfits, err := ListOutfits(ctx, db)
	if err != nil {
		return nil, nil, err
	}
	return items, outfits, nil
}

func inTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}
