package rosterdb

import (
	"fmt"
	"time"

	"github.com/rschio/otica/internal/core/ledger"
	"github.com/rschio/otica/internal/core/roster"
)

type dbClient struct {
	ID                string     `db:"id"`
	Name              string     `db:"nome"`
	Email             string     `db:"email"`
	Phone             string     `db:"telefone"`
	Address           string     `db:"endereco"`
	Status            string     `db:"status"`
	AmountOwed        float64    `db:"valor_devido"`
	LastPaymentDate   *time.Time `db:"data_ultimo_pagamento"`
	MaritalStatus     string     `db:"estado_civil"`
	Dependents        int        `db:"numero_filhos"`
	Education         string     `db:"escolaridade"`
	HasCreditCard     *bool      `db:"tem_cartao_credito"`
	GrossIncome       *float64   `db:"renda_bruta"`
	Age               *int       `db:"idade"`
	PurchaseFrequency string     `db:"frequencia_compra"`
	PurchaseCount     int        `db:"quantidade_compras"`
	PurchaseTier      string     `db:"tipo_compra"`
	Channel           string     `db:"origem_cliente"`
	Notes             string     `db:"observacoes"`
	CreatedAt         time.Time  `db:"created_at"`
}

func toDBClient(c roster.Client) (dbClient, error) {
	var lastPayment *time.Time
	if c.LastPaymentDate != "" {
		d, err := time.Parse(ledger.DateLayout, c.LastPaymentDate)
		if err != nil {
			return dbClient{}, fmt.Errorf("last payment date %q: %w", c.LastPaymentDate, roster.ErrInvalidArgument)
		}
		lastPayment = &d
	}

	return dbClient{
		ID:                c.ID,
		Name:              c.Name,
		Email:             c.Email,
		Phone:             c.Phone,
		Address:           c.Address,
		Status:            c.Status,
		AmountOwed:        c.AmountOwed,
		LastPaymentDate:   lastPayment,
		MaritalStatus:     c.MaritalStatus,
		Dependents:        c.Dependents,
		Education:         c.Education,
		HasCreditCard:     c.HasCreditCard,
		GrossIncome:       c.GrossIncome,
		Age:               c.Age,
		PurchaseFrequency: c.PurchaseFrequency,
		PurchaseCount:     c.PurchaseCount,
		PurchaseTier:      c.PurchaseTier,
		Channel:           c.Channel,
		Notes:             c.Notes,
		CreatedAt:         c.CreatedAt,
	}, nil
}

func toClients(cs []dbClient) []roster.Client {
	slice := make([]roster.Client, len(cs))
	for i, c := range cs {
		slice[i] = toClient(c)
	}
	return slice
}

func toClient(c dbClient) roster.Client {
	var lastPayment string
	if c.LastPaymentDate != nil {
		lastPayment = c.LastPaymentDate.Format(ledger.DateLayout)
	}

	return roster.Client{
		ID:                c.ID,
		Name:              c.Name,
		Email:             c.Email,
		Phone:             c.Phone,
		Address:           c.Address,
		Status:            c.Status,
		AmountOwed:        c.AmountOwed,
		LastPaymentDate:   lastPayment,
		MaritalStatus:     c.MaritalStatus,
		Dependents:        c.Dependents,
		Education:         c.Education,
		HasCreditCard:     c.HasCreditCard,
		GrossIncome:       c.GrossIncome,
		Age:               c.Age,
		PurchaseFrequency: c.PurchaseFrequency,
		PurchaseCount:     c.PurchaseCount,
		PurchaseTier:      c.PurchaseTier,
		Channel:           c.Channel,
		Notes:             c.Notes,
		CreatedAt:         c.CreatedAt,
	}
}
