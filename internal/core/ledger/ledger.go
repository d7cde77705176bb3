// Package ledger deals with income and expense transactions.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rschio/otica/internal/web"
)

// DateLayout is the calendar date format used to persist transaction dates.
const DateLayout = "2006-01-02"

// Set of errors for ledger API.
var (
	ErrNotFound        = errors.New("transaction not found")
	ErrInvalidArgument = errors.New("transaction invalid argument")
)

// Storer is used to persist transaction data.
type Storer interface {
	Create(ctx context.Context, t Transaction) error
	Query(ctx context.Context, filter QueryFilter, skip, limit int) ([]Transaction, error)
	QueryByID(ctx context.Context, id string) (Transaction, error)
	QueryAll(ctx context.Context) ([]Transaction, error)
	Update(ctx context.Context, t Transaction) error
	Delete(ctx context.Context, id string) error
}

// Core deals with transaction business logic.
type Core struct {
	storer Storer
}

func NewCore(storer Storer) *Core {
	return &Core{storer: storer}
}

// Create validates nt and stores it as a new Transaction. The ID and the
// creation timestamp are assigned here, never by the caller.
func (c *Core) Create(ctx context.Context, nt NewTransaction) (Transaction, error) {
	t := Transaction{
		ID:          uuid.NewString(),
		Type:        nt.Type,
		Category:    nt.Category,
		Description: nt.Description,
		Amount:      nt.Amount,
		Date:        nt.Date,
		ClientName:  nt.ClientName,
		ClientID:    nt.ClientID,
		Notes:       nt.Notes,
		CreatedAt:   web.GetTime(ctx),
	}
	if err := t.validate(); err != nil {
		return Transaction{}, err
	}

	if err := c.storer.Create(ctx, t); err != nil {
		return Transaction{}, fmt.Errorf("create: %w", err)
	}

	return t, nil
}

// Query lists transactions sorted by date descending.
func (c *Core) Query(ctx context.Context, filter QueryFilter, skip, limit int) ([]Transaction, error) {
	if err := filter.validate(); err != nil {
		return nil, err
	}
	if skip < 0 || limit < 1 {
		return nil, fmt.Errorf("skip %d limit %d: %w", skip, limit, ErrInvalidArgument)
	}

	ts, err := c.storer.Query(ctx, filter, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	return ts, nil
}

// QueryAll lists every transaction sorted by date descending, used by the
// export endpoint.
func (c *Core) QueryAll(ctx context.Context) ([]Transaction, error) {
	ts, err := c.storer.QueryAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("query all: %w", err)
	}
	return ts, nil
}

// Update applies the non nil fields of ut to the stored transaction.
// CreatedAt is immutable and never touched.
func (c *Core) Update(ctx context.Context, id string, ut UpdateTransaction) (Transaction, error) {
	t, err := c.storer.QueryByID(ctx, id)
	if err != nil {
		return Transaction{}, fmt.Errorf("query id[%s]: %w", id, err)
	}

	if ut.Type != nil {
		t.Type = *ut.Type
	}
	if ut.Category != nil {
		t.Category = *ut.Category
	}
	if ut.Description != nil {
		t.Description = *ut.Description
	}
	if ut.Amount != nil {
		t.Amount = *ut.Amount
	}
	if ut.Date != nil {
		t.Date = *ut.Date
	}
	if ut.ClientName != nil {
		t.ClientName = *ut.ClientName
	}
	if ut.ClientID != nil {
		t.ClientID = *ut.ClientID
	}
	if ut.Notes != nil {
		t.Notes = *ut.Notes
	}

	if err := t.validate(); err != nil {
		return Transaction{}, err
	}

	if err := c.storer.Update(ctx, t); err != nil {
		return Transaction{}, fmt.Errorf("update id[%s]: %w", id, err)
	}

	return t, nil
}

// Delete removes the transaction. It returns ErrNotFound if no transaction
// has the given id.
func (c *Core) Delete(ctx context.Context, id string) error {
	if err := c.storer.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete id[%s]: %w", id, err)
	}
	return nil
}

func (t Transaction) validate() error {
	switch {
	case t.Type != TypeIncome && t.Type != TypeExpense:
		return fmt.Errorf("type %q: %w", t.Type, ErrInvalidArgument)
	case !Categories[t.Category]:
		return fmt.Errorf("category %q: %w", t.Category, ErrInvalidArgument)
	case t.Amount < 0:
		return fmt.Errorf("amount %v: %w", t.Amount, ErrInvalidArgument)
	}

	if _, err := time.Parse(DateLayout, t.Date); err != nil {
		return fmt.Errorf("date %q: %w", t.Date, ErrInvalidArgument)
	}

	return nil
}

func (f QueryFilter) validate() error {
	for _, d := range []string{f.DateStart, f.DateEnd} {
		if d == "" {
			continue
		}
		if _, err := time.Parse(DateLayout, d); err != nil {
			return fmt.Errorf("filter date %q: %w", d, ErrInvalidArgument)
		}
	}
	return nil
}
