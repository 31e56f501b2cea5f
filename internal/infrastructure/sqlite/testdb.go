package sqlite

import (
	"context"
	"database/sql"
	"testing"
)

// NewTestDB crea una base en memoria con el esquema aplicado; se cierra al terminar el test.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("abrir base de prueba: %v", err)
	}
	if err := EnsureSchema(context.Background(), db); err != nil {
		db.Close()
		t.Fatalf("esquema de prueba: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}
