package postgres

import (
	"context"
	"fmt"
)

const schema = `
CREATE TABLE IF NOT EXISTS warehouses (
	id          TEXT PRIMARY KEY,
	user_id     TEXT NOT NULL,
	name        TEXT NOT NULL,
	is_default  BOOLEAN NOT NULL DEFAULT FALSE,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE (user_id, name)
);

CREATE TABLE IF NOT EXISTS products (
	id          TEXT PRIMARY KEY,
	user_id     TEXT NOT NULL,
	name        TEXT NOT NULL,
	brand       TEXT NOT NULL DEFAULT '',
	size        TEXT NOT NULL,
	sku         TEXT NOT NULL,
	price       NUMERIC(12,2) NOT NULL DEFAULT 0,
	stock       INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0),
	image_url   TEXT NOT NULL DEFAULT '',
	status      TEXT NOT NULL DEFAULT 'instock',
	location    TEXT NOT NULL DEFAULT '',
	warehouse   TEXT NOT NULL DEFAULT '',
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
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
	price         NUMERIC(12,2) NOT NULL DEFAULT 0,
	cost          NUMERIC(12,2) NOT NULL DEFAULT 0,
	image_url     TEXT NOT NULL DEFAULT '',
	warehouse     TEXT NOT NULL DEFAULT '',
	count         INTEGER NOT NULL DEFAULT 1 CHECK (count >= 1),
	platform      TEXT NOT NULL DEFAULT '',
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_activities_user_created ON activities (user_id, created_at DESC);

CREATE TABLE IF NOT EXISTS preferences (
	user_id  TEXT NOT NULL,
	key      TEXT NOT NULL,
	value    TEXT NOT NULL,
	PRIMARY KEY (user_id, key)
);
`

// EnsureSchema crea tablas e índices si no existen. Es idempotente.
func EnsureSchema(ctx context.Context, q Querier) error {
	if _, err := q.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
