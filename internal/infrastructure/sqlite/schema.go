package sqlite

import (
	"context"
	"database/sql"
	"fmt"
)

// Montos como TEXT (decimal exacto) y fechas como TEXT UTC de ancho fijo, que ordenan igual que el tiempo.
const schema = `
CREATE TABLE IF NOT EXISTS warehouses (
	id          TEXT PRIMARY KEY,
	user_id     TEXT NOT NULL,
	name        TEXT NOT NULL,
	is_default  INTEGER NOT NULL DEFAULT 0,
	created_at  TEXT NOT NULL,
	UNIQUE (user_id, name)
);

CREATE TABLE IF NOT EXISTS products (
	id          TEXT PRIMARY KEY,
	user_id     TEXT NOT NULL,
	name        TEXT NOT NULL,
	brand       TEXT NOT NULL DEFAULT '',
	size        TEXT NOT NULL,
	sku         TEXT NOT NULL,
	price       TEXT NOT NULL DEFAULT '0',
	stock       INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0),
	image_url   TEXT NOT NULL DEFAULT '',
	status      TEXT NOT NULL DEFAULT 'instock',
	location    TEXT NOT NULL DEFAULT '',
	warehouse   TEXT NOT NULL DEFAULT '',
	created_at  TEXT NOT NULL,
	updated_at  TEXT NOT NULL,
	UNIQUE (user_id, sku, size)
);
CREATE INDEX IF NOT EXISTS idx_products_user_warehouse ON products (user_id, warehouse);

CREATE TABLE IF NOT EXISTS activities (
	id            TEXT PRIMARY KEY,
	user_id       TEXT NOT NULL,
	type          TEXT NOT NULL,
	product_name  TEXT NOT NULL DEFAULT '',
	sku           TEXT NOT NULL DEFAULT '',
	size          TEXT NOT NULL DEFAULT '',
	price         TEXT NOT NULL DEFAULT '0',
	cost          TEXT NOT NULL DEFAULT '0',
	image_url     TEXT NOT NULL DEFAULT '',
	warehouse     TEXT NOT NULL DEFAULT '',
	count         INTEGER NOT NULL DEFAULT 1 CHECK (count >= 1),
	platform      TEXT NOT NULL DEFAULT '',
	created_at    TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_activities_user_created ON activities (user_id, created_at DESC);

CREATE TABLE IF NOT EXISTS preferences (
	user_id  TEXT NOT NULL,
	key      TEXT NOT NULL,
	value    TEXT NOT NULL,
	PRIMARY KEY (user_id, key)
);
`

// EnsureSchema crea tablas e índices si no existen.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
