package handlers

import (
	"time"

	"github.com/rschio/otica/internal/core/ledger"
	"github.com/rschio/otica/internal/core/report"
	"github.com/rschio/otica/internal/core/roster"
)

// The wire format keeps the Portuguese field names the frontend already
// speaks.

type CreateTransactionReq struct {
	Type        string  `json:"tipo"`
	Category    string  `json:"categoria"`
	Description string  `json:"descricao"`
	Amount      float64 `json:"valor"`
	Date        string  `json:"data"`
	ClientName  string  `json:"cliente_nome"`
	ClientID    string  `json:"cliente_id"`
	Notes       string  `json:"observacoes"`
}

type UpdateTransactionReq struct {
	Type        *string  `json:"tipo"`
	Category    *string  `json:"categoria"`
	Description *string  `json:"descricao"`
	Amount      *float64 `json:"valor"`
	Date        *string  `json:"data"`
	ClientName  *string  `json:"cliente_nome"`
	ClientID    *string  `json:"cliente_id"`
	Notes       *string  `json:"observacoes"`
}

func (r UpdateTransactionReq) empty() bool {
	return r.Type == nil && r.Category == nil && r.Description == nil &&
		r.Amount == nil && r.Date == nil && r.ClientName == nil &&
		r.ClientID == nil && r.Notes == nil
}

type TransactionResp struct {
	ID          string    `json:"id"`
	Type        string    `json:"tipo"`
	Category    string    `json:"categoria"`
	Description string    `json:"descricao,omitempty"`
	Amount      float64   `json:"valor"`
	Date        string    `json:"data"`
	ClientName  string    `json:"cliente_nome,omitempty"`
	ClientID    string    `json:"cliente_id,omitempty"`
	Notes       string    `json:"observacoes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func toTransactionResp(t ledger.Transaction) TransactionResp {
	return TransactionResp{
		ID:          t.ID,
		Type:        t.Type,
		Category:    t.Category,
		Description: t.Description,
		Amount:      t.Amount,
		Date:        t.Date,
		ClientName:  t.ClientName,
		ClientID:    t.ClientID,
		Notes:       t.Notes,
		CreatedAt:   t.CreatedAt,
	}
}

func toTransactionResps(ts []ledger.Transaction) []TransactionResp {
	slice := make([]TransactionResp, len(ts))
	for i, t := range ts {
		slice[i] = toTransactionResp(t)
	}
	return slice
}

type CreateClientReq struct {
	Name              string   `json:"nome"`
	Email             string   `json:"email"`
	Phone             string   `json:"telefone"`
	Address           string   `json:"endereco"`
	Status            string   `json:"status"`
	AmountOwed        float64  `json:"valor_devido"`
	LastPaymentDate   string   `json:"data_ultimo_pagamento"`
	MaritalStatus     string   `json:"estado_civil"`
	Dependents        int      `json:"numero_filhos"`
	Education         string   `json:"escolaridade"`
	HasCreditCard     *bool    `json:"tem_cartao_credito"`
	GrossIncome       *float64 `json:"renda_bruta"`
	Age               *int     `json:"idade"`
	PurchaseFrequency string   `json:"frequencia_compra"`
	PurchaseCount     int      `json:"quantidade_compras"`
	PurchaseTier      string   `json:"tipo_compra"`
	Channel           string   `json:"origem_cliente"`
	Notes             string   `json:"observacoes"`
}

type UpdateClientReq struct {
	Name              *string  `json:"nome"`
	Email             *string  `json:"email"`
	Phone             *string  `json:"telefone"`
	Address           *string  `json:"endereco"`
	Status            *string  `json:"status"`
	AmountOwed        *float64 `json:"valor_devido"`
	LastPaymentDate   *string  `json:"data_ultimo_pagamento"`
	MaritalStatus     *string  `json:"estado_civil"`
	Dependents        *int     `json:"numero_filhos"`
	Education         *string  `json:"escolaridade"`
	HasCreditCard     *bool    `json:"tem_cartao_credito"`
	GrossIncome       *float64 `json:"renda_bruta"`
	Age               *int     `json:"idade"`
	PurchaseFrequency *string  `json:"frequencia_compra"`
	PurchaseCount     *int     `json:"quantidade_compras"`
	PurchaseTier      *string  `json:"tipo_compra"`
	Channel           *string  `json:"origem_cliente"`
	Notes             *string  `json:"observacoes"`
}

func (r UpdateClientReq) empty() bool {
	return r.Name == nil && r.Email == nil && r.Phone == nil &&
		r.Address == nil && r.Status == nil && r.AmountOwed == nil &&
		r.LastPaymentDate == nil && r.MaritalStatus == nil &&
		r.Dependents == nil && r.Education == nil && r.HasCreditCard == nil &&
		r.GrossIncome == nil && r.Age == nil && r.PurchaseFrequency == nil &&
		r.PurchaseCount == nil && r.PurchaseTier == nil && r.Channel == nil &&
		r.Notes == nil
}

type ClientResp struct {
	ID                string    `json:"id"`
	Name              string    `json:"nome"`
	Email             string    `json:"email,omitempty"`
	Phone             string    `json:"telefone,omitempty"`
	Address           string    `json:"endereco,omitempty"`
	Status            string    `json:"status"`
	AmountOwed        float64   `json:"valor_devido"`
	LastPaymentDate   string    `json:"data_ultimo_pagamento,omitempty"`
	MaritalStatus     string    `json:"estado_civil,omitempty"`
	Dependents        int       `json:"numero_filhos"`
	Education         string    `json:"escolaridade,omitempty"`
	HasCreditCard     *bool     `json:"tem_cartao_credito"`
	GrossIncome       *float64  `json:"renda_bruta"`
	Age               *int      `json:"idade"`
	PurchaseFrequency string    `json:"frequencia_compra,omitempty"`
	PurchaseCount     int       `json:"quantidade_compras"`
	PurchaseTier      string    `json:"tipo_compra,omitempty"`
	Channel           string    `json:"origem_cliente,omitempty"`
	Notes             string    `json:"observacoes,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

func toClientResp(c roster.Client) ClientResp {
	return ClientResp{
		ID:                c.ID,
		Name:              c.Name,
		Email:             c.Email,
		Phone:             c.Phone,
		Address:           c.Address,
		Status:            c.Status,
		AmountOwed:        c.AmountOwed,
		LastPaymentDate:   c.LastPaymentDate,
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

func toClientResps(cs []roster.Client) []ClientResp {
	slice := make([]ClientResp, len(cs))
	for i, c := range cs {
		slice[i] = toClientResp(c)
	}
	return slice
}

type MonthSummaryResp struct {
	Month        int     `json:"mes"`
	Year         int     `json:"ano"`
	TotalIncome  float64 `json:"total_entradas"`
	TotalExpense float64 `json:"total_saidas"`
	NetRevenue   float64 `json:"faturamento_liquido"`
	Count        int     `json:"transacoes_count"`
}

func toMonthSummaryResps(ms []report.MonthSummary) []MonthSummaryResp {
	slice := make([]MonthSummaryResp, len(ms))
	for i, m := range ms {
		slice[i] = MonthSummaryResp(m)
	}
	return slice
}

type MonthTotalsResp struct {
	Income  float64 `json:"entradas"`
	Expense float64 `json:"saidas"`
	Net     float64 `json:"faturamento_liquido"`
}

type DelinquentsResp struct {
	Count     int     `json:"quantidade"`
	TotalOwed float64 `json:"valor_total_devido"`
}

type DashboardResp struct {
	CurrentMonth MonthTotalsResp `json:"mes_atual"`
	Delinquents  DelinquentsResp `json:"inadimplentes"`
}

func toDashboardResp(s report.Snapshot) DashboardResp {
	return DashboardResp{
		CurrentMonth: MonthTotalsResp{
			Income:  s.MonthIncome,
			Expense: s.MonthExpense,
			Net:     s.NetRevenue,
		},
		Delinquents: DelinquentsResp{
			Count:     s.DelinquentCount,
			TotalOwed: s.DelinquentOwed,
		},
	}
}

type TierGroupResp struct {
	Tier       string   `json:"tipo_compra"`
	Count      int      `json:"count"`
	TotalOwed  float64  `json:"valor_total_devido"`
	MeanAge    *float64 `json:"idade_media"`
	MeanIncome *float64 `json:"renda_media"`
}

func toTierGroupResps(gs []report.TierGroup) []TierGroupResp {
	slice := make([]TierGroupResp, len(gs))
	for i, g := range gs {
		slice[i] = TierGroupResp(g)
	}
	return slice
}

type ExportDashboardResp struct {
	Dashboard       DashboardResp      `json:"dashboard"`
	MonthlyReport   []MonthSummaryResp `json:"relatorio_mensal"`
	ClientStats     []TierGroupResp    `json:"estatisticas_clientes"`
	ExportTimestamp time.Time          `json:"export_timestamp"`
}
