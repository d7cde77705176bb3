package dbtest

import (
	"context"
	"testing"

	db "github.com/rschio/otica/internal/data/dbsql/pgx"
)

func TestNewUnit(t *testing.T) {
	ctx := context.Background()
	log, database, teardown := NewUnit(t, WithMigrations(),
		WithSeed(`INSERT INTO clients (id, nome, status, created_at) VALUES ('c1', 'Ana', 'adimplente', now())`))
	t.Cleanup(teardown)
	log.Info("Hello")

	if err := db.StatusCheck(ctx, database); err != nil {
		t.Fatal(err)
	}

	var n int
	if err := database.QueryRow(ctx, "SELECT COUNT(*) FROM clients").Scan(&n); err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("got %d clients, want 1", n)
	}
}
