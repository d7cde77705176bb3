// Package report computes the monthly, dashboard and segmentation summaries.
//
// The engine is stateless: every call queries the store and recomputes from
// scratch, so there is nothing to invalidate and concurrent calls need no
// coordination. Sums accumulate in full float64 precision and are rounded to
// 2 decimal places only at the reporting boundary.
package report

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/rschio/otica/internal/core/ledger"
	"golang.org/x/sync/errgroup"
)

// ErrInternal reports a store query failure. Zero activity is never reported
// through it, an empty result set is a valid summary.
var ErrInternal = errors.New("report internal error")

// Storer is the read only query capability the engine needs.
type Storer interface {
	// EntriesInRange returns the entries with start <= date < end.
	EntriesInRange(ctx context.Context, start, end time.Time) ([]Entry, error)

	// DelinquentSummary returns the count of delinquent clients and the
	// full precision sum of their owed amounts.
	DelinquentSummary(ctx context.Context) (count int, totalOwed float64, err error)

	// TierGroups returns the client groups by purchase tier, ordered by
	// tier ascending, with full precision aggregates.
	TierGroups(ctx context.Context) ([]TierGroup, error)
}

// Engine turns the flat transaction and client records into summaries.
type Engine struct {
	log    *slog.Logger
	storer Storer
}

func NewEngine(log *slog.Logger, storer Storer) *Engine {
	return &Engine{log: log, storer: storer}
}

// Monthly buckets the transactions of year by calendar month and sums each
// bucket. Months with no transactions are omitted and the result is ordered
// by month ascending. Entries whose date does not parse as a calendar date
// are skipped with a warning, never coerced to a default date.
func (e *Engine) Monthly(ctx context.Context, year int) ([]MonthSummary, error) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)

	entries, err := e.storer.EntriesInRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("%w: querying year %d: %w", ErrInternal, year, err)
	}

	type bucket struct {
		income  float64
		expense float64
		count   int
	}
	var buckets [13]bucket

	for _, entry := range entries {
		d, err := time.Parse(ledger.DateLayout, entry.Date)
		if err != nil {
			e.log.WarnContext(ctx, "report: skipping entry with malformed date",
				"date", entry.Date)
			continue
		}
		if d.Year() != year {
			continue
		}

		b := &buckets[d.Month()]
		b.count++
		switch entry.Type {
		case ledger.TypeIncome:
			b.income += entry.Amount
		case ledger.TypeExpense:
			b.expense += entry.Amount
		}
	}

	summaries := make([]MonthSummary, 0, 12)
	for m := 1; m <= 12; m++ {
		b := buckets[m]
		if b.count == 0 {
			continue
		}
		income, expense := round2(b.income), round2(b.expense)
		summaries = append(summaries, MonthSummary{
			Month:        m,
			Year:         year,
			TotalIncome:  income,
			TotalExpense: expense,
			NetRevenue:   round2(income - expense),
			Count:        b.count,
		})
	}

	return summaries, nil
}

// Dashboard computes the current month totals and the delinquency figures as
// of now. The two halves share no state and run concurrently.
func (e *Engine) Dashboard(ctx context.Context, now time.Time) (Snapshot, error) {
	var (
		income, expense float64
		count           int
		owed            float64
	)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 1, 0)

		entries, err := e.storer.EntriesInRange(ctx, start, end)
		if err != nil {
			return fmt.Errorf("querying current month: %w", err)
		}

		for _, entry := range entries {
			if _, err := time.Parse(ledger.DateLayout, entry.Date); err != nil {
				e.log.WarnContext(ctx, "report: skipping entry with malformed date",
					"date", entry.Date)
				continue
			}
			switch entry.Type {
			case ledger.TypeIncome:
				income += entry.Amount
			case ledger.TypeExpense:
				expense += entry.Amount
			}
		}
		return nil
	})

	g.Go(func() error {
		var err error
		count, owed, err = e.storer.DelinquentSummary(ctx)
		if err != nil {
			return fmt.Errorf("querying delinquents: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	income, expense = round2(income), round2(expense)
	return Snapshot{
		MonthIncome:     income,
		MonthExpense:    expense,
		NetRevenue:      round2(income - expense),
		DelinquentCount: count,
		DelinquentOwed:  round2(owed),
	}, nil
}

// Segmentation groups the whole roster by purchase tier. No clients is not
// an error, it yields an empty sequence.
func (e *Engine) Segmentation(ctx context.Context) ([]TierGroup, error) {
	groups, err := e.storer.TierGroups(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: querying tier groups: %w", ErrInternal, err)
	}

	out := make([]TierGroup, len(groups))
	for i, g := range groups {
		g.TotalOwed = round2(g.TotalOwed)
		out[i] = g
	}

	return out, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
