package rosterdb

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rschio/otica/internal/core/roster"
	"github.com/rschio/otica/internal/data/dbtest"
)

func TestCreateQuery(t *testing.T) {
	ctx := context.Background()
	log, database, teardown := dbtest.NewUnit(t, dbtest.WithMigrations())
	t.Cleanup(teardown)

	store := NewStore(log, database)

	age := 34
	income := 4500.00
	want := genClient("Maria Silva", roster.StatusDelinquent)
	want.AmountOwed = 75.50
	want.Age = &age
	want.GrossIncome = &income
	want.PurchaseTier = "premium"
	want.LastPaymentDate = "2024-02-15"

	if err := store.Create(ctx, want); err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	got, err := store.QueryByID(ctx, want.ID)
	if err != nil {
		t.Fatalf("failed to query client by id: %v", err)
	}
	if got.AmountOwed != 75.50 {
		t.Errorf("wrong owed, got %v want 75.50", got.AmountOwed)
	}
	if got.Age == nil || *got.Age != 34 {
		t.Errorf("wrong age, got %v want 34", got.Age)
	}
	if got.LastPaymentDate != "2024-02-15" {
		t.Errorf("wrong last payment date, got %q", got.LastPaymentDate)
	}
}

func TestQueryStatusFilter(t *testing.T) {
	ctx := context.Background()
	log, database, teardown := dbtest.NewUnit(t, dbtest.WithMigrations())
	t.Cleanup(teardown)

	store := NewStore(log, database)

	seed := []roster.Client{
		genClient("Ana", roster.StatusCurrent),
		genClient("Bruno", roster.StatusDelinquent),
		genClient("Carla", roster.StatusCurrent),
	}
	for _, c := range seed {
		if err := store.Create(ctx, c); err != nil {
			t.Fatalf("failed to create client: %v", err)
		}
	}

	cs, err := store.Query(ctx, roster.StatusDelinquent, 0, 100)
	if err != nil {
		t.Fatalf("failed to query clients: %v", err)
	}
	if len(cs) != 1 {
		t.Fatalf("got %d clients, want 1", len(cs))
	}
	if cs[0].Name != "Bruno" {
		t.Errorf("got %q, want Bruno", cs[0].Name)
	}

	// All clients, sorted by name ascending.
	cs, err = store.Query(ctx, "", 0, 100)
	if err != nil {
		t.Fatalf("failed to query clients: %v", err)
	}
	if len(cs) != 3 {
		t.Fatalf("got %d clients, want 3", len(cs))
	}
	if cs[0].Name != "Ana" || cs[2].Name != "Carla" {
		t.Errorf("wrong order: %q %q %q", cs[0].Name, cs[1].Name, cs[2].Name)
	}
}

func TestUpdateDelete(t *testing.T) {
	ctx := context.Background()
	log, database, teardown := dbtest.NewUnit(t, dbtest.WithMigrations())
	t.Cleanup(teardown)

	store := NewStore(log, database)

	c := genClient("Maria Silva", roster.StatusCurrent)
	if err := store.Create(ctx, c); err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	c.Status = roster.StatusDelinquent
	c.AmountOwed = 120.00
	if err := store.Update(ctx, c); err != nil {
		t.Fatalf("failed to update client: %v", err)
	}

	got, err := store.QueryByID(ctx, c.ID)
	if err != nil {
		t.Fatalf("failed to query client by id: %v", err)
	}
	if got.Status != roster.StatusDelinquent {
		t.Errorf("wrong status, got %q", got.Status)
	}

	if err := store.Delete(ctx, c.ID); err != nil {
		t.Fatalf("failed to delete client: %v", err)
	}
	if _, err := store.QueryByID(ctx, c.ID); !errors.Is(err, roster.ErrNotFound) {
		t.Fatalf("got err %v, want ErrNotFound", err)
	}
}

func genClient(name, status string) roster.Client {
	return roster.Client{
		ID:        uuid.NewString(),
		Name:      name,
		Status:    status,
		CreatedAt: time.Now().UTC().Round(time.Microsecond),
	}
}
