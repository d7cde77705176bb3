// Package reportdb contains the read only queries that feed the report
// engine.
package reportdb

import (
	"context"
	"log/slog"
	"time"

	"github.com/rschio/otica/internal/core/ledger"
	"github.com/rschio/otica/internal/core/report"
	db "github.com/rschio/otica/internal/data/dbsql/pgx"
)

type Store struct {
	log *slog.Logger
	db  db.DB
}

func NewStore(log *slog.Logger, database db.DB) *Store {
	return &Store{
		log: log,
		db:  database,
	}
}

// EntriesInRange returns the entries with start <= data < end. The column is
// a native DATE so the bucket boundary is a real date comparison, not a
// string prefix match.
func (s *Store) EntriesInRange(ctx context.Context, start, end time.Time) ([]report.Entry, error) {
	data := struct {
		Start string `db:"data_inicio"`
		End   string `db:"data_fim"`
	}{
		Start: start.Format(ledger.DateLayout),
		End:   end.Format(ledger.DateLayout),
	}

	const q = `
	SELECT
		tipo, valor, data
	FROM
		transactions
	WHERE
		data >= @data_inicio::date AND data < @data_fim::date`

	rows, err := db.NamedQuerySlice[dbEntry](ctx, s.log, s.db, q, data)
	if err != nil {
		return nil, err
	}

	entries := make([]report.Entry, len(rows))
	for i, r := range rows {
		entries[i] = report.Entry{
			Type:   r.Type,
			Amount: r.Amount,
			Date:   r.Date.Format(ledger.DateLayout),
		}
	}

	return entries, nil
}

func (s *Store) DelinquentSummary(ctx context.Context) (int, float64, error) {
	const q = `
	SELECT
		COUNT(*) AS quantidade,
		COALESCE(SUM(valor_devido), 0) AS valor_total_devido
	FROM
		clients
	WHERE
		status = 'inadimplente'`

	row, err := db.NamedQueryStruct[dbDelinquentSummary](ctx, s.log, s.db, q, struct{}{})
	if err != nil {
		return 0, 0, err
	}

	return row.Count, row.TotalOwed, nil
}

// TierGroups groups the roster by purchase tier. AVG ignores NULLs and
// returns NULL over an all NULL group, which maps to a nil mean.
func (s *Store) TierGroups(ctx context.Context) ([]report.TierGroup, error) {
	const q = `
	SELECT
		tipo_compra,
		COUNT(*) AS quantidade,
		COALESCE(SUM(valor_devido), 0) AS valor_total_devido,
		AVG(idade)::double precision AS idade_media,
		AVG(renda_bruta)::double precision AS renda_media
	FROM
		clients
	GROUP BY
		tipo_compra
	ORDER BY
		tipo_compra ASC`

	rows, err := db.NamedQuerySlice[dbTierGroup](ctx, s.log, s.db, q, struct{}{})
	if err != nil {
		return nil, err
	}

	groups := make([]report.TierGroup, len(rows))
	for i, r := range rows {
		groups[i] = report.TierGroup{
			Tier:       r.Tier,
			Count:      r.Count,
			TotalOwed:  r.TotalOwed,
			MeanAge:    r.MeanAge,
			MeanIncome: r.MeanIncome,
		}
	}

	return groups, nil
}

// ----------------------------------------------------------------------

type dbEntry struct {
	Type   string    `db:"tipo"`
	Amount float64   `db:"valor"`
	Date   time.Time `db:"data"`
}

type dbDelinquentSummary struct {
	Count     int     `db:"quantidade"`
	TotalOwed float64 `db:"valor_total_devido"`
}

type dbTierGroup struct {
	Tier       string   `db:"tipo_compra"`
	Count      int      `db:"quantidade"`
	TotalOwed  float64  `db:"valor_total_devido"`
	MeanAge    *float64 `db:"idade_media"`
	MeanIncome *float64 `db:"renda_media"`
}
