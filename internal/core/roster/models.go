package roster

import "time"

// Client credit status.
const (
	StatusCurrent    = "adimplente"
	StatusDelinquent = "inadimplente"
)

// Enumerations for the demographic attributes. They feed downstream
// segmentation and are not interpreted by any business rule here.
var (
	MaritalStatuses = map[string]bool{
		"solteiro": true, "casado": true, "divorciado": true,
		"viuvo": true, "uniao_estavel": true,
	}
	EducationLevels = map[string]bool{
		"fundamental": true, "medio": true, "superior": true,
		"tecnico": true, "pos_graduacao": true,
	}
	PurchaseFrequencies = map[string]bool{
		"primeira_vez": true, "esporadico": true, "regular": true, "frequente": true,
	}
	PurchaseTiers = map[string]bool{
		"economico": true, "padrao": true, "premium": true, "luxo": true,
	}
	AcquisitionChannels = map[string]bool{
		"amigo": true, "instagram": true, "whatsapp": true, "facebook": true,
		"google": true, "placa_loja": true, "passando_rua": true, "outros": true,
	}
)

// Client is a shop customer. AmountOwed is meaningful only when Status is
// delinquent, that is a caller convention and not enforced here. Optional
// attributes use pointer or empty string to mean unset.
type Client struct {
	ID                string
	Name              string
	Email             string
	Phone             string
	Address           string
	Status            string
	AmountOwed        float64
	LastPaymentDate   string
	MaritalStatus     string
	Dependents        int
	Education         string
	HasCreditCard     *bool
	GrossIncome       *float64
	Age               *int
	PurchaseFrequency string
	PurchaseCount     int
	PurchaseTier      string
	Channel           string
	Notes             string
	CreatedAt         time.Time
}

// NewClient holds the caller supplied fields to create a Client.
type NewClient struct {
	Name              string
	Email             string
	Phone             string
	Address           string
	Status            string
	AmountOwed        float64
	LastPaymentDate   string
	MaritalStatus     string
	Dependents        int
	Education         string
	HasCreditCard     *bool
	GrossIncome       *float64
	Age               *int
	PurchaseFrequency string
	PurchaseCount     int
	PurchaseTier      string
	Channel           string
	Notes             string
}

// UpdateClient holds a partial update. Nil fields are left untouched.
type UpdateClient struct {
	Name              *string
	Email             *string
	Phone             *string
	Address           *string
	Status            *string
	AmountOwed        *float64
	LastPaymentDate   *string
	MaritalStatus     *string
	Dependents        *int
	Education         *string
	HasCreditCard     *bool
	GrossIncome       *float64
	Age               *int
	PurchaseFrequency *string
	PurchaseCount     *int
	PurchaseTier      *string
	Channel           *string
	Notes             *string
}
