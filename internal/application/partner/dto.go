package partner

import (
	"time"

	"github.com/google/uuid"

	"github.com/forniture-store/backend/internal/domain/address"
	"github.com/forniture-store/backend/internal/domain/partner"
	"github.com/forniture-store/backend/internal/domain/shared"
)

// =============================================================================
// Address DTOs
// =============================================================================

// AddressResponse represents a primary address in API responses
type AddressResponse struct {
	ID                  uuid.UUID `json:"id"`
	Type                string    `json:"address_type"`
	PostalCode          string    `json:"postal_code"`
	FormattedPostalCode string    `json:"formatted_postal_code"`
	Street              string    `json:"street"`
	Number              string    `json:"number"`
	Complement          string    `json:"complement"`
	Neighborhood        string    `json:"neighborhood"`
	City                string    `json:"city"`
	State               string    `json:"state"`
	Country             string    `json:"country"`
	FullAddress         string    `json:"full_address"`
	IsPrimary           bool      `json:"is_primary"`
}

// ToAddressResponse converts an address to a response; nil stays nil
func ToAddressResponse(a *address.Address) *AddressResponse {
	if a == nil {
		return nil
	}
	return &AddressResponse{
		ID:                  a.ID,
		Type:                string(a.Type),
		PostalCode:          a.PostalCode,
		FormattedPostalCode: a.FormattedPostalCode(),
		Street:              a.Street,
		Number:              a.Number,
		Complement:          a.Complement,
		Neighborhood:        a.Neighborhood,
		City:                a.City,
		State:               a.State,
		Country:             a.Country,
		FullAddress:         a.FullAddress(),
		IsPrimary:           a.IsPrimary,
	}
}

// =============================================================================
// Customer DTOs
// =============================================================================

// CreateCustomerRequest represents a request to create a new customer.
// Address nil means no address was sent; an address whose values are all
// blank removes it.
type CreateCustomerRequest struct {
	PartyType     string          `json:"party_type" validate:"omitempty,oneof=IND CORP"`
	LegalName     string          `json:"legal_name" validate:"max=100"`
	PreferredName string          `json:"preferred_name" validate:"max=50"`
	TaxID         string          `json:"tax_id" validate:"required,max=18"`
	Phone         string          `json:"phone" validate:"max=20"`
	Email         string          `json:"email" validate:"omitempty,email,max=254"`
	IsVIP         bool            `json:"is_vip"`
	Profession    string          `json:"profession" validate:"max=50"`
	Interests     string          `json:"interests"`
	Notes         string          `json:"notes"`
	Address       *address.Fields `json:"address"`
}

// UpdateCustomerRequest represents a partial update of a customer.
// Nil fields are left untouched.
type UpdateCustomerRequest struct {
	PartyType     *string         `json:"party_type" validate:"omitempty,oneof=IND CORP"`
	LegalName     *string         `json:"legal_name" validate:"omitempty,max=100"`
	PreferredName *string         `json:"preferred_name" validate:"omitempty,max=50"`
	TaxID         *string         `json:"tax_id" validate:"omitempty,max=18"`
	Phone         *string         `json:"phone" validate:"omitempty,max=20"`
	Email         *string         `json:"email" validate:"omitempty,email,max=254"`
	IsVIP         *bool           `json:"is_vip"`
	Profession    *string         `json:"profession" validate:"omitempty,max=50"`
	Interests     *string         `json:"interests"`
	Notes         *string         `json:"notes"`
	Address       *address.Fields `json:"address"`
}

// CustomerResponse represents a customer in API responses
type CustomerResponse struct {
	ID               uuid.UUID        `json:"id"`
	PartyType        string           `json:"party_type"`
	LegalName        string           `json:"legal_name"`
	PreferredName    string           `json:"preferred_name"`
	DisplayName      string           `json:"display_name"`
	TaxID            string           `json:"tax_id"`
	FormattedTaxID   string           `json:"formatted_tax_id"`
	Phone            string           `json:"phone"`
	FormattedPhone   string           `json:"formatted_phone"`
	Email            string           `json:"email"`
	IsActive         bool             `json:"is_active"`
	IsVIP            bool             `json:"is_vip"`
	Profession       string           `json:"profession"`
	Interests        string           `json:"interests"`
	Notes            string           `json:"notes"`
	RegistrationDate time.Time        `json:"registration_date"`
	Address          *AddressResponse `json:"address,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
	Version          int              `json:"version"`
}

// CustomerListFilter represents filter options for customer list
type CustomerListFilter struct {
	Search    string `form:"search"`
	PartyType string `form:"party_type" validate:"omitempty,oneof=IND CORP"`
	IsActive  *bool  `form:"is_active"`
	IsVIP     *bool  `form:"is_vip"`
	Page      int    `form:"page" validate:"omitempty,min=1"`
	PageSize  int    `form:"page_size" validate:"omitempty,min=1,max=100"`
	OrderBy   string `form:"order_by"`
	OrderDir  string `form:"order_dir" validate:"omitempty,oneof=asc desc"`
}

// ToCustomerResponse converts a domain Customer and its primary address to a response
func ToCustomerResponse(c *partner.Customer, primary *address.Address) CustomerResponse {
	return CustomerResponse{
		ID:               c.ID,
		PartyType:        string(c.Type),
		LegalName:        c.LegalName,
		PreferredName:    c.PreferredName,
		DisplayName:      c.DisplayName(),
		TaxID:            c.TaxID,
		FormattedTaxID:   c.FormattedTaxID(),
		Phone:            c.Phone,
		FormattedPhone:   c.FormattedPhone(),
		Email:            c.Email,
		IsActive:         c.IsActive,
		IsVIP:            c.IsVIP,
		Profession:       c.Profession,
		Interests:        c.Interests,
		Notes:            c.Notes,
		RegistrationDate: c.RegistrationDate,
		Address:          ToAddressResponse(primary),
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
		Version:          c.Version,
	}
}

// =============================================================================
// Supplier DTOs
// =============================================================================

// CreateSupplierRequest represents a request to create a new supplier
type CreateSupplierRequest struct {
	PartyType             string          `json:"party_type" validate:"omitempty,oneof=IND CORP"`
	LegalName             string          `json:"legal_name" validate:"max=100"`
	PreferredName         string          `json:"preferred_name" validate:"max=50"`
	TaxID                 string          `json:"tax_id" validate:"required,max=18"`
	Phone                 string          `json:"phone" validate:"max=20"`
	Email                 string          `json:"email" validate:"omitempty,email,max=254"`
	StateRegistration     string          `json:"state_registration" validate:"max=20"`
	MunicipalRegistration string          `json:"municipal_registration" validate:"max=20"`
	ContactPerson         string          `json:"contact_person" validate:"max=100"`
	BankName              string          `json:"bank_name" validate:"max=50"`
	BankAgency            string          `json:"bank_agency" validate:"max=10"`
	BankAccount           string          `json:"bank_account" validate:"max=20"`
	PixKey                string          `json:"pix_key" validate:"max=100"`
	Notes                 string          `json:"notes"`
	Address               *address.Fields `json:"address"`
}

// UpdateSupplierRequest represents a partial update of a supplier
type UpdateSupplierRequest struct {
	PartyType             *string         `json:"party_type" validate:"omitempty,oneof=IND CORP"`
	LegalName             *string         `json:"legal_name" validate:"omitempty,max=100"`
	PreferredName         *string         `json:"preferred_name" validate:"omitempty,max=50"`
	TaxID                 *string         `json:"tax_id" validate:"omitempty,max=18"`
	Phone                 *string         `json:"phone" validate:"omitempty,max=20"`
	Email                 *string         `json:"email" validate:"omitempty,email,max=254"`
	StateRegistration     *string         `json:"state_registration" validate:"omitempty,max=20"`
	MunicipalRegistration *string         `json:"municipal_registration" validate:"omitempty,max=20"`
	ContactPerson         *string         `json:"contact_person" validate:"omitempty,max=100"`
	BankName              *string         `json:"bank_name" validate:"omitempty,max=50"`
	BankAgency            *string         `json:"bank_agency" validate:"omitempty,max=10"`
	BankAccount           *string         `json:"bank_account" validate:"omitempty,max=20"`
	PixKey                *string         `json:"pix_key" validate:"omitempty,max=100"`
	Notes                 *string         `json:"notes"`
	Address               *address.Fields `json:"address"`
}

// SupplierResponse represents a supplier in API responses
type SupplierResponse struct {
	ID                    uuid.UUID        `json:"id"`
	PartyType             string           `json:"party_type"`
	LegalName             string           `json:"legal_name"`
	PreferredName         string           `json:"preferred_name"`
	DisplayName           string           `json:"display_name"`
	TaxID                 string           `json:"tax_id"`
	FormattedTaxID        string           `json:"formatted_tax_id"`
	Phone                 string           `json:"phone"`
	FormattedPhone        string           `json:"formatted_phone"`
	Email                 string           `json:"email"`
	IsActive              bool             `json:"is_active"`
	StateRegistration     string           `json:"state_registration"`
	MunicipalRegistration string           `json:"municipal_registration"`
	ContactPerson         string           `json:"contact_person"`
	BankName              string           `json:"bank_name"`
	BankAgency            string           `json:"bank_agency"`
	BankAccount           string           `json:"bank_account"`
	PixKey                string           `json:"pix_key"`
	Notes                 string           `json:"notes"`
	RegistrationDate      time.Time        `json:"registration_date"`
	Address               *AddressResponse `json:"address,omitempty"`
	CreatedAt             time.Time        `json:"created_at"`
	UpdatedAt             time.Time        `json:"updated_at"`
	Version               int              `json:"version"`
}

// SupplierListFilter represents filter options for supplier list
type SupplierListFilter struct {
	Search    string `form:"search"`
	PartyType string `form:"party_type" validate:"omitempty,oneof=IND CORP"`
	IsActive  *bool  `form:"is_active"`
	Page      int    `form:"page" validate:"omitempty,min=1"`
	PageSize  int    `form:"page_size" validate:"omitempty,min=1,max=100"`
	OrderBy   string `form:"order_by"`
	OrderDir  string `form:"order_dir" validate:"omitempty,oneof=asc desc"`
}

// ToSupplierResponse converts a domain Supplier and its primary address to a response
func ToSupplierResponse(s *partner.Supplier, primary *address.Address) SupplierResponse {
	return SupplierResponse{
		ID:                    s.ID,
		PartyType:             string(s.Type),
		LegalName:             s.LegalName,
		PreferredName:         s.PreferredName,
		DisplayName:           s.DisplayName(),
		TaxID:                 s.TaxID,
		FormattedTaxID:        s.FormattedTaxID(),
		Phone:                 s.Phone,
		FormattedPhone:        s.FormattedPhone(),
		Email:                 s.Email,
		IsActive:              s.IsActive,
		StateRegistration:     s.StateRegistration,
		MunicipalRegistration: s.MunicipalRegistration,
		ContactPerson:         s.ContactPerson,
		BankName:              s.BankName,
		BankAgency:            s.BankAgency,
		BankAccount:           s.BankAccount,
		PixKey:                s.PixKey,
		Notes:                 s.Notes,
		RegistrationDate:      s.RegistrationDate,
		Address:               ToAddressResponse(primary),
		CreatedAt:             s.CreatedAt,
		UpdatedAt:             s.UpdatedAt,
		Version:               s.Version,
	}
}

// toFilter maps list options onto a repository filter
func toFilter(search string, partyType string, isActive *bool, page, pageSize int, orderBy, orderDir string) shared.Filter {
	filter := shared.DefaultFilter()
	filter.Search = search
	if page > 0 {
		filter.Page = page
	}
	if pageSize > 0 {
		filter.PageSize = pageSize
	}
	if orderBy != "" {
		filter.OrderBy = orderBy
	}
	if orderDir != "" {
		filter.OrderDir = orderDir
	}
	if partyType != "" {
		filter.Filters[partner.FilterPartyType] = partner.PartyType(partyType)
	}
	if isActive != nil {
		filter.Filters[partner.FilterIsActive] = *isActive
	}
	return filter
}
