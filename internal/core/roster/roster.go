// Package roster deals with the client roster business logic.
package roster

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rschio/otica/internal/core/ledger"
	"github.com/rschio/otica/internal/web"
)

// Set of errors for roster API.
var (
	ErrNotFound        = errors.New("client not found")
	ErrInvalidArgument = errors.New("client invalid argument")
)

// Storer is used to persist client data.
type Storer interface {
	Create(ctx context.Context, c Client) error
	Query(ctx context.Context, status string, skip, limit int) ([]Client, error)
	QueryByID(ctx context.Context, id string) (Client, error)
	QueryAll(ctx context.Context) ([]Client, error)
	Update(ctx context.Context, c Client) error
	Delete(ctx context.Context, id string) error
}

// Core deals with client business logic.
type Core struct {
	storer Storer
}

func NewCore(storer Storer) *Core {
	return &Core{storer: storer}
}

// Create validates nc and stores it as a new Client. A missing status
// defaults to adimplente, as new clients owe nothing.
func (c *Core) Create(ctx context.Context, nc NewClient) (Client, error) {
	if nc.Status == "" {
		nc.Status = StatusCurrent
	}

	client := Client{
		ID:                uuid.NewString(),
		Name:              nc.Name,
		Email:             nc.Email,
		Phone:             nc.Phone,
		Address:           nc.Address,
		Status:            nc.Status,
		AmountOwed:        nc.AmountOwed,
		LastPaymentDate:   nc.LastPaymentDate,
		MaritalStatus:     nc.MaritalStatus,
		Dependents:        nc.Dependents,
		Education:         nc.Education,
		HasCreditCard:     nc.HasCreditCard,
		GrossIncome:       nc.GrossIncome,
		Age:               nc.Age,
		PurchaseFrequency: nc.PurchaseFrequency,
		PurchaseCount:     nc.PurchaseCount,
		PurchaseTier:      nc.PurchaseTier,
		Channel:           nc.Channel,
		Notes:             nc.Notes,
		CreatedAt:         web.GetTime(ctx),
	}
	if err := client.validate(); err != nil {
		return Client{}, err
	}

	if err := c.storer.Create(ctx, client); err != nil {
		return Client{}, fmt.Errorf("create: %w", err)
	}

	return client, nil
}

// Query lists clients sorted by name ascending. An empty status matches all
// clients.
func (c *Core) Query(ctx context.Context, status string, skip, limit int) ([]Client, error) {
	if status != "" && status != StatusCurrent && status != StatusDelinquent {
		return nil, fmt.Errorf("status %q: %w", status, ErrInvalidArgument)
	}
	if skip < 0 || limit < 1 {
		return nil, fmt.Errorf("skip %d limit %d: %w", skip, limit, ErrInvalidArgument)
	}

	cs, err := c.storer.Query(ctx, status, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	return cs, nil
}

// QueryAll lists every client sorted by name ascending, used by the export
// endpoint.
func (c *Core) QueryAll(ctx context.Context) ([]Client, error) {
	cs, err := c.storer.QueryAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("query all: %w", err)
	}
	return cs, nil
}

// Update applies the non nil fields of uc to the stored client.
func (c *Core) Update(ctx context.Context, id string, uc UpdateClient) (Client, error) {
	client, err := c.storer.QueryByID(ctx, id)
	if err != nil {
		return Client{}, fmt.Errorf("query id[%s]: %w", id, err)
	}

	if uc.Name != nil {
		client.Name = *uc.Name
	}
	if uc.Email != nil {
		client.Email = *uc.Email
	}
	if uc.Phone != nil {
		client.Phone = *uc.Phone
	}
	if uc.Address != nil {
		client.Address = *uc.Address
	}
	if uc.Status != nil {
		client.Status = *uc.Status
	}
	if uc.AmountOwed != nil {
		client.AmountOwed = *uc.AmountOwed
	}
	if uc.LastPaymentDate != nil {
		client.LastPaymentDate = *uc.LastPaymentDate
	}
	if uc.MaritalStatus != nil {
		client.MaritalStatus = *uc.MaritalStatus
	}
	if uc.Dependents != nil {
		client.Dependents = *uc.Dependents
	}
	if uc.Education != nil {
		client.Education = *uc.Education
	}
	if uc.HasCreditCard != nil {
		client.HasCreditCard = uc.HasCreditCard
	}
	if uc.GrossIncome != nil {
		client.GrossIncome = uc.GrossIncome
	}
	if uc.Age != nil {
		client.Age = uc.Age
	}
	if uc.PurchaseFrequency != nil {
		client.PurchaseFrequency = *uc.PurchaseFrequency
	}
	if uc.PurchaseCount != nil {
		client.PurchaseCount = *uc.PurchaseCount
	}
	if uc.PurchaseTier != nil {
		client.PurchaseTier = *uc.PurchaseTier
	}
	if uc.Channel != nil {
		client.Channel = *uc.Channel
	}
	if uc.Notes != nil {
		client.Notes = *uc.Notes
	}

	if err := client.validate(); err != nil {
		return Client{}, err
	}

	if err := c.storer.Update(ctx, client); err != nil {
		return Client{}, fmt.Errorf("update id[%s]: %w", id, err)
	}

	return client, nil
}

// Delete removes the client. Transactions referencing it keep their soft
// link, there is no cascade.
func (c *Core) Delete(ctx context.Context, id string) error {
	if err := c.storer.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete id[%s]: %w", id, err)
	}
	return nil
}

func (c Client) validate() error {
	switch {
	case c.Name == "":
		return fmt.Errorf("name is required: %w", ErrInvalidArgument)
	case c.Status != StatusCurrent && c.Status != StatusDelinquent:
		return fmt.Errorf("status %q: %w", c.Status, ErrInvalidArgument)
	case c.AmountOwed < 0:
		return fmt.Errorf("amount owed %v: %w", c.AmountOwed, ErrInvalidArgument)
	case c.Dependents < 0 || c.PurchaseCount < 0:
		return fmt.Errorf("negative count: %w", ErrInvalidArgument)
	}

	if c.LastPaymentDate != "" {
		if _, err := time.Parse(ledger.DateLayout, c.LastPaymentDate); err != nil {
			return fmt.Errorf("last payment date %q: %w", c.LastPaymentDate, ErrInvalidArgument)
		}
	}

	for _, attr := range []struct {
		set   map[string]bool
		value string
	}{
		{MaritalStatuses, c.MaritalStatus},
		{EducationLevels, c.Education},
		{PurchaseFrequencies, c.PurchaseFrequency},
		{PurchaseTiers, c.PurchaseTier},
		{AcquisitionChannels, c.Channel},
	} {
		if attr.value != "" && !attr.set[attr.value] {
			return fmt.Errorf("attribute %q: %w", attr.value, ErrInvalidArgument)
		}
	}

	return nil
}
