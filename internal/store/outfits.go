package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/erazemk/garderoba/internal/model"
)

// SaveOutfit inserts or updates an outfit and replaces its item list.
// Callers should run it inside a transaction.
func SaveOutfit(ctx context.Context, q querier, o model.Outfit) error {
	var lastWorn sql.NullTime
	if o.LastWorn != nil {
		lastWorn = sql.NullTime{Time: *o.LastWorn, Valid: true}
	}

	_, err := q.ExecContext(ctx,
		`INSERT INTO outfits (id, position, name, description, occasion,
		                      weather_season, weather_temperature, weather_condition,
		                      rating, favorite, created_at, last_worn_at)
		 VALUES (?, (SELECT COALESCE(MAX(position), 0) + 1 FROM outfits), ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET
		     name = excluded.name, description = excluded.description, occasion = excluded.occasion,
		     weather_season = excluded.weather_season, weather_temperature = excluded.weather_temperature,
		     weather_condition = excluded.weather_condition, rating = excluded.rating,
		     favorite = excluded.favorite, last_worn_at = excluded.last_worn_at`,
		o.ID, o.Name, o.Description, o.Occasion,
		o.Weather.Season, o.Weather.Temperature, o.Weather.Condition,
		o.Rating, o.Favorite, o.Created, lastWorn,
	)
	if err != nil {
		return fmt.Errorf("saving outfit %s: %w", o.ID, err)
	}

	if _, err := q.ExecContext(ctx, `DELETE FROM outfit_items WHERE outfit_id = ?`, o.ID); err != nil {
		return fmt.Errorf("clearing outfit %s items: %w", o.ID, err)
	}
	for i, itemID := range o.Items {
		if _, err := q.ExecContext(ctx,
			`INSERT INTO outfit_items (outfit_id, item_id, position) VALUES (?, ?, ?)`,
			o.ID, itemID, i,
		); err != nil {
			return fmt.Errorf("saving outfit %s item %s: %w", o.ID, itemID, err)
		}
	}
	return nil
}

// DeleteOutfit deletes an outfit. Its items are kept.
func DeleteOutfit(ctx context.Context, q querier, id string) error {
	if _, err := q.ExecContext(ctx, `DELETE FROM outfits WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting outfit %s: %w", id, err)
	}
	return nil
}

// ListOutfits returns all outfits in creation order with their item lists.
func ListOutfits(ctx context.Context, q querier) ([]model.Outfit, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT id, name, description, occasion, weather_season, weather_temperature, weather_condition,
		        rating, favorite, created_at, last_worn_at
		 FROM outfits ORDER BY position`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing outfits: %w", err)
	}

	var outfits []model.Outfit
	index := make(map[string]int)
	for rows.Next() {
		var o model.Outfit
		var lastWorn sql.NullTime
		if err := rows.Scan(&o.ID, &o.Name, &o.Description, &o.Occasion,
			&o.Weather.Season, &o.Weather.Temperature, &o.Weather.Condition,
			&o.Rating, &o.Favorite, &o.Created, &lastWorn); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning outfit: %w", err)
		}
		if lastWorn.Valid {
			worn := lastWorn.Time
			o.LastWorn = &worn
		}
		o.Items = []string{}
		index[o.ID] = len(outfits)
		outfits = append(outfits, o)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("listing outfits: %w", err)
	}
	rows.Close()

	memberships, err := q.QueryContext(ctx,
		`SELECT outfit_id, item_id FROM outfit_items ORDER BY outfit_id, position`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing outfit items: %w", err)
	}
	defer memberships.Close()

	for memberships.Next() {
		var outfitID, itemID string
		if err := memberships.Scan(&outfitID, &itemID); err != nil {
			return nil, fmt.Errorf("scanning outfit item: %w", err)
		}
		if i, ok := index[outfitID]; ok {
			outfits[i].Items = append(outfits[i].Items, itemID)
		}
	}
	return outfits, memberships.Err()
}
