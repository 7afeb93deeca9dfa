package db

import (
	"database/sql"
	"fmt"
)

// schema is the full database schema. Set-valued item attributes are stored
// as JSON arrays.
const schema = `
CREATE TABLE IF NOT EXISTS items (
    id          TEXT PRIMARY KEY,
    position    INTEGER NOT NULL,
    name        TEXT NOT NULL,
    brand       TEXT NOT NULL DEFAULT '',
    category    TEXT NOT NULL CHECK (category IN ('tops', 'bottoms', 'outerwear', 'shoes', 'accessories', 'dresses')),
    subcategory TEXT NOT NULL DEFAULT '',
    colors      TEXT NOT NULL DEFAULT '[]',
    seasons     TEXT NOT NULL DEFAULT '[]',
    occasions   TEXT NOT NULL DEFAULT '[]',
    price       REAL NOT NULL DEFAULT 0 CHECK (price >= 0),
    image_url   TEXT NOT NULL DEFAULT '',
    description TEXT NOT NULL DEFAULT '',
    favorite    INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS outfits (
    id                  TEXT PRIMARY KEY,
    position            INTEGER NOT NULL,
    name                TEXT NOT NULL DEFAULT '',
    description         TEXT NOT NULL DEFAULT '',
    occasion            TEXT NOT NULL DEFAULT '',
    weather_season      TEXT NOT NULL DEFAULT '',
    weather_temperature INTEGER NOT NULL DEFAULT 0,
    weather_condition   TEXT NOT NULL DEFAULT '',
    rating              INTEGER NOT NULL DEFAULT 0 CHECK (rating BETWEEN 0 AND 5),
    favorite            INTEGER NOT NULL DEFAULT 0,
    created_at          DATETIME NOT NULL,
    last_worn_at        DATETIME
);

CREATE TABLE IF NOT EXISTS outfit_items (
    outfit_id TEXT NOT NULL REFERENCES outfits(id) ON DELETE CASCADE,
    item_id   TEXT NOT NULL REFERENCES items(id) ON DELETE CASCADE,
    position  INTEGER NOT NULL,
    PRIMARY KEY (outfit_id, item_id)
);

CREATE INDEX IF NOT EXISTS idx_outfit_items_item ON outfit_items(item_id);
`

// EnsureSchema creates the journal tables and indexes if they don't already
// exist.
func EnsureSchema(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
