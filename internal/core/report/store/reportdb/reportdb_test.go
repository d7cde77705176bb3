package reportdb

import (
	"context"
	"testing"
	"time"

	"github.com/rschio/otica/internal/data/dbtest"
)

const seed = `
INSERT INTO transactions (id, tipo, categoria, valor, data, created_at) VALUES
	('t1', 'entrada', 'venda_oculos', 100.00, '2024-03-05', now()),
	('t2', 'saida',   'aluguel',       40.00, '2024-03-10', now()),
	('t3', 'entrada', 'venda_lentes',  50.00, '2024-04-01', now()),
	('t4', 'entrada', 'venda_oculos',  77.00, '2023-12-31', now());

INSERT INTO clients (id, nome, status, valor_devido, idade, renda_bruta, tipo_compra, created_at) VALUES
	('c1', 'Ana',   'inadimplente', 75.50, 30,   3000, 'premium', now()),
	('c2', 'Bruno', 'adimplente',    0.00, 40,   NULL, 'premium', now()),
	('c3', 'Carla', 'inadimplente', 24.50, NULL, NULL, '',        now());
`

func TestEntriesInRange(t *testing.T) {
	ctx := context.Background()
	log, database, teardown := dbtest.NewUnit(t, dbtest.WithMigrations(), dbtest.WithSeed(seed))
	t.Cleanup(teardown)

	store := NewStore(log, database)

	// [2024-01-01, 2025-01-01) keeps the three 2024 entries and drops the
	// one from 2023.
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	entries, err := store.EntriesInRange(ctx, start, start.AddDate(1, 0, 0))
	if err != nil {
		t.Fatalf("failed to query entries: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	for _, e := range entries {
		if e.Date < "2024-01-01" || e.Date >= "2025-01-01" {
			t.Errorf("entry date %q outside the queried range", e.Date)
		}
	}

	// The end boundary is exclusive: [2024-03-01, 2024-04-01) must not pick
	// up the April 1st entry.
	start = time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	entries, err = store.EntriesInRange(ctx, start, start.AddDate(0, 1, 0))
	if err != nil {
		t.Fatalf("failed to query entries: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
}

func TestDelinquentSummary(t *testing.T) {
	ctx := context.Background()
	log, database, teardown := dbtest.NewUnit(t, dbtest.WithMigrations(), dbtest.WithSeed(seed))
	t.Cleanup(teardown)

	store := NewStore(log, database)

	count, owed, err := store.DelinquentSummary(ctx)
	if err != nil {
		t.Fatalf("failed to query delinquent summary: %v", err)
	}
	if count != 2 {
		t.Errorf("got count %d, want 2", count)
	}
	if owed != 100.00 {
		t.Errorf("got owed %v, want 100.00", owed)
	}
}

func TestDelinquentSummaryEmpty(t *testing.T) {
	ctx := context.Background()
	log, database, teardown := dbtest.NewUnit(t, dbtest.WithMigrations())
	t.Cleanup(teardown)

	store := NewStore(log, database)

	count, owed, err := store.DelinquentSummary(ctx)
	if err != nil {
		t.Fatalf("failed to query delinquent summary: %v", err)
	}
	if count != 0 || owed != 0 {
		t.Errorf("got count %d owed %v, want zeros", count, owed)
	}
}

func TestTierGroups(t *testing.T) {
	ctx := context.Background()
	log, database, teardown := dbtest.NewUnit(t, dbtest.WithMigrations(), dbtest.WithSeed(seed))
	t.Cleanup(teardown)

	store := NewStore(log, database)

	groups, err := store.TierGroups(ctx)
	if err != nil {
		t.Fatalf("failed to query tier groups: %v", err)
	}
	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}

	// Ordered by tier ascending, the unset tier comes first.
	unset, premium := groups[0], groups[1]
	if unset.Tier != "" || unset.Count != 1 {
		t.Errorf("got tier %q count %d, want unset tier with 1 client", unset.Tier, unset.Count)
	}
	if unset.MeanAge != nil {
		t.Errorf("mean age over no observations should be nil, got %v", *unset.MeanAge)
	}

	if premium.Tier != "premium" || premium.Count != 2 {
		t.Errorf("got tier %q count %d, want premium with 2 clients", premium.Tier, premium.Count)
	}
	if premium.MeanAge == nil || *premium.MeanAge != 35 {
		t.Errorf("got mean age %v, want 35", premium.MeanAge)
	}
	if premium.MeanIncome == nil || *premium.MeanIncome != 3000 {
		t.Errorf("got mean income %v, want 3000 (nulls ignored)", premium.MeanIncome)
	}
}
