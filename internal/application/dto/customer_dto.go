package dto

import (
	"time"

	"github.com/jhoicas/maestros-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// AddressDTO dirección postal en requests y responses.
type AddressDTO struct {
	Attention string `json:"attention"`
	Country   string `json:"country"`
	Address1  string `json:"address1"`
	Address2  string `json:"address2"`
	City      string `json:"city"`
	State     string `json:"state"`
	PinCode   string `json:"pin_code"`
	Phone     string `json:"phone"`
	Fax       string `json:"fax"`
}

// CustomerRequest body para POST y PUT /api/customers.
// ReceivablesBalance ausente: en creación se toma de OpeningBalance; en actualización se conserva.
type CustomerRequest struct {
	CustomerType       string              `json:"customer_type"`
	Salutation         string              `json:"salutation"`
	FirstName          string              `json:"first_name"`
	LastName           string              `json:"last_name"`
	CompanyName        string              `json:"company_name"`
	DisplayName        string              `json:"display_name"`
	Email              string              `json:"email"`
	WorkPhone          string              `json:"work_phone"`
	MobilePhone        string              `json:"mobile_phone"`
	Language           string              `json:"language"`
	PAN                string              `json:"pan"`
	Currency           string              `json:"currency"`
	OpeningBalance     decimal.NullDecimal `json:"opening_balance"`
	ReceivablesBalance decimal.NullDecimal `json:"receivables_balance"`
	PaymentTerms       string              `json:"payment_terms"`
	EnablePortal       bool                `json:"enable_portal"`
	BillingAddress     AddressDTO          `json:"billing_address"`
	ShippingAddress    AddressDTO          `json:"shipping_address"`
	Remarks            string              `json:"remarks"`
	Status             string              `json:"status"`
	LastContactAt      *time.Time          `json:"last_contact_at,omitempty"`
}

// CustomerResponse cliente en respuestas.
type CustomerResponse struct {
	ID                 string              `json:"id"`
	CustomerType       string              `json:"customer_type"`
	Salutation         string              `json:"salutation,omitempty"`
	FirstName          string              `json:"first_name,omitempty"`
	LastName           string              `json:"last_name,omitempty"`
	CompanyName        string              `json:"company_name,omitempty"`
	DisplayName        string              `json:"display_name"`
	Email              string              `json:"email,omitempty"`
	WorkPhone          string              `json:"work_phone,omitempty"`
	MobilePhone        string              `json:"mobile_phone,omitempty"`
	Language           string              `json:"language,omitempty"`
	PAN                string              `json:"pan,omitempty"`
	Currency           string              `json:"currency,omitempty"`
	OpeningBalance     decimal.NullDecimal `json:"opening_balance"`
	ReceivablesBalance decimal.Decimal     `json:"receivables_balance"`
	PaymentTerms       string              `json:"payment_terms,omitempty"`
	EnablePortal       bool                `json:"enable_portal"`
	BillingAddress     AddressDTO          `json:"billing_address"`
	ShippingAddress    AddressDTO          `json:"shipping_address"`
	Remarks            string              `json:"remarks,omitempty"`
	Status             string              `json:"status"`
	Active             bool                `json:"active"`
	LastContactAt      *time.Time          `json:"last_contact_at,omitempty"`
	CreatedAt          time.Time           `json:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at"`
	CreatedBy          string              `json:"created_by,omitempty"`
	UpdatedBy          string              `json:"updated_by,omitempty"`
}

// CustomerStatisticsResponse respuesta de GET /api/customers/statistics.
type CustomerStatisticsResponse struct {
	TotalCustomers         int64 `json:"total_customers"`
	BusinessCount          int64 `json:"business_count"`
	IndividualCount        int64 `json:"individual_count"`
	WithOutstandingBalance int64 `json:"with_outstanding_balance"`
}

// NewAddress proyecta un AddressDTO al valor del dominio.
func NewAddress(a AddressDTO) entity.Address {
	return entity.Address{
		Attention: a.Attention,
		Country:   a.Country,
		Address1:  a.Address1,
		Address2:  a.Address2,
		City:      a.City,
		State:     a.State,
		PinCode:   a.PinCode,
		Phone:     a.Phone,
		Fax:       a.Fax,
	}
}

// NewAddressDTO proyecta una dirección del dominio.
func NewAddressDTO(a entity.Address) AddressDTO {
	return AddressDTO{
		Attention: a.Attention,
		Country:   a.Country,
		Address1:  a.Address1,
		Address2:  a.Address2,
		City:      a.City,
		State:     a.State,
		PinCode:   a.PinCode,
		Phone:     a.Phone,
		Fax:       a.Fax,
	}
}

// NewCustomerResponse proyecta un Customer almacenado.
func NewCustomerResponse(c *entity.Customer) CustomerResponse {
	return CustomerResponse{
		ID:                 c.ID,
		CustomerType:       string(c.CustomerType),
		Salutation:         c.Salutation,
		FirstName:          c.FirstName,
		LastName:           c.LastName,
		CompanyName:        c.CompanyName,
		DisplayName:        c.DisplayName,
		Email:              c.Email,
		WorkPhone:          c.WorkPhone,
		MobilePhone:        c.MobilePhone,
		Language:           c.Language,
		PAN:                c.PAN,
		Currency:           c.Currency,
		OpeningBalance:     c.OpeningBalance,
		ReceivablesBalance: c.ReceivablesBalance,
		PaymentTerms:       c.PaymentTerms,
		EnablePortal:       c.EnablePortal,
		BillingAddress:     NewAddressDTO(c.Billing),
		ShippingAddress:    NewAddressDTO(c.Shipping),
		Remarks:            c.Remarks,
		Status:             c.Status,
		Active:             c.Active,
		LastContactAt:      c.LastContactAt,
		CreatedAt:          c.CreatedAt,
		UpdatedAt:          c.UpdatedAt,
		CreatedBy:          c.CreatedBy,
		UpdatedBy:          c.UpdatedBy,
	}
}
