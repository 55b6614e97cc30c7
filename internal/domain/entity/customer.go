package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// CustomerType clasificación del cliente.
type CustomerType string

const (
	CustomerTypeBusiness   CustomerType = "BUSINESS"
	CustomerTypeIndividual CustomerType = "INDIVIDUAL"
)

// CustomerTypes todos los tipos válidos, en orden estable (estadísticas).
var CustomerTypes = []CustomerType{CustomerTypeBusiness, CustomerTypeIndividual}

// Valid indica si el tipo es uno de los conocidos.
func (t CustomerType) Valid() bool {
	return t == CustomerTypeBusiness || t == CustomerTypeIndividual
}

// ParseCustomerType interpreta el tipo sin distinguir mayúsculas. ok=false si no es válido.
func ParseCustomerType(s string) (CustomerType, bool) {
	t := CustomerType(strings.ToUpper(strings.TrimSpace(s)))
	return t, t.Valid()
}

// DefaultCustomerStatus etiqueta de estado por defecto.
const DefaultCustomerStatus = "ACTIVE"

// Address dirección postal completa (facturación o envío).
type Address struct {
	Attention string
	Country   string
	Address1  string
	Address2  string
	City      string
	State     string
	PinCode   string
	Phone     string
	Fax       string
}

// Customer representa un cliente del ERP.
// Active es la marca de borrado lógico; DisplayName es único entre clientes activos.
// ReceivablesBalance nunca es nulo tras la creación y no se recalcula automáticamente.
type Customer struct {
	ID           string
	CustomerType CustomerType
	Salutation   string
	FirstName    string
	LastName     string
	CompanyName  string
	DisplayName  string
	Email        string
	WorkPhone    string
	MobilePhone  string
	Language     string

	PAN                string // identificación tributaria
	Currency           string
	OpeningBalance     decimal.NullDecimal
	ReceivablesBalance decimal.Decimal
	PaymentTerms       string
	EnablePortal       bool

	Billing  Address
	Shipping Address

	Remarks       string
	Status        string
	Active        bool
	LastContactAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
	CreatedBy string
	UpdatedBy string
}

// HasOutstandingBalance saldo por cobrar estrictamente positivo.
func (c *Customer) HasOutstandingBalance() bool {
	return c.ReceivablesBalance.GreaterThan(decimal.Zero)
}
