package ledger

import "time"

// Transaction types.
const (
	TypeIncome  = "entrada"
	TypeExpense = "saida"
)

// Categories is the closed set of transaction categories. The first six are
// income categories, the rest are expense categories. The partition is
// documentation only, it is not enforced against the transaction type.
var Categories = map[string]bool{
	"venda_oculos":     true,
	"venda_lentes":     true,
	"venda_acessorios": true,
	"servico_exame":    true,
	"servico_consulta": true,
	"outros_servicos":  true,
	"custo_produtos":   true,
	"aluguel":          true,
	"salarios":         true,
	"energia":          true,
	"agua":             true,
	"telefone":         true,
	"marketing":        true,
	"manutencao":       true,
	"impostos":         true,
	"outros_custos":    true,
}

// Transaction is an income or expense movement. Date is an ISO-8601 calendar
// date (no time component) and is always handled as a calendar date.
type Transaction struct {
	ID          string
	Type        string
	Category    string
	Description string
	Amount      float64
	Date        string
	ClientName  string
	ClientID    string
	Notes       string
	CreatedAt   time.Time
}

// NewTransaction holds the caller supplied fields to create a Transaction.
type NewTransaction struct {
	Type        string
	Category    string
	Description string
	Amount      float64
	Date        string
	ClientName  string
	ClientID    string
	Notes       string
}

// UpdateTransaction holds a partial update. Nil fields are left untouched.
type UpdateTransaction struct {
	Type        *string
	Category    *string
	Description *string
	Amount      *float64
	Date        *string
	ClientName  *string
	ClientID    *string
	Notes       *string
}

// QueryFilter restricts a transaction listing. DateStart and DateEnd are
// inclusive calendar dates, ClientName is a case insensitive substring.
type QueryFilter struct {
	DateStart  string
	DateEnd    string
	ClientName string
}
