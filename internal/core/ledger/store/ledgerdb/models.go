package ledgerdb

import (
	"fmt"
	"time"

	"github.com/rschio/otica/internal/core/ledger"
)

type dbTransaction struct {
	ID          string    `db:"id"`
	Type        string    `db:"tipo"`
	Category    string    `db:"categoria"`
	Description string    `db:"descricao"`
	Amount      float64   `db:"valor"`
	Date        time.Time `db:"data"`
	ClientName  string    `db:"cliente_nome"`
	ClientID    string    `db:"cliente_id"`
	Notes       string    `db:"observacoes"`
	CreatedAt   time.Time `db:"created_at"`
}

func toDBTransaction(t ledger.Transaction) (dbTransaction, error) {
	// The date travels as an ISO-8601 string but is persisted as a native
	// DATE so range queries use real date comparison.
	d, err := time.Parse(ledger.DateLayout, t.Date)
	if err != nil {
		return dbTransaction{}, fmt.Errorf("date %q: %w", t.Date, ledger.ErrInvalidArgument)
	}

	return dbTransaction{
		ID:          t.ID,
		Type:        t.Type,
		Category:    t.Category,
		Description: t.Description,
		Amount:      t.Amount,
		Date:        d,
		ClientName:  t.ClientName,
		ClientID:    t.ClientID,
		Notes:       t.Notes,
		CreatedAt:   t.CreatedAt,
	}, nil
}

func toTransactions(ts []dbTransaction) []ledger.Transaction {
	slice := make([]ledger.Transaction, len(ts))
	for i, t := range ts {
		slice[i] = toTransaction(t)
	}
	return slice
}

func toTransaction(t dbTransaction) ledger.Transaction {
	return ledger.Transaction{
		ID:          t.ID,
		Type:        t.Type,
		Category:    t.Category,
		Description: t.Description,
		Amount:      t.Amount,
		Date:        t.Date.Format(ledger.DateLayout),
		ClientName:  t.ClientName,
		ClientID:    t.ClientID,
		Notes:       t.Notes,
		CreatedAt:   t.CreatedAt,
	}
}
