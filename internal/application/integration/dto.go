package integration

import (
	"context"

	"github.com/forniture-store/backend/internal/domain/integration"
	"github.com/forniture-store/backend/internal/domain/shared/valueobject"
)

// ---------------------------------------------------------------------------
// Lookup DTOs
// ---------------------------------------------------------------------------

// PostalCodeLookupResponse is the answer to a CEP lookup
type PostalCodeLookupResponse struct {
	PostalCode string                     `json:"postal_code"`
	Formatted  string                     `json:"formatted_postal_code,omitempty"`
	Found      bool                       `json:"found"`
	Address    *integration.PostalAddress `json:"address,omitempty"`
}

// CompanyLookupResponse is the answer to a CNPJ lookup
type CompanyLookupResponse struct {
	TaxID     string                      `json:"tax_id"`
	Formatted string                      `json:"formatted_tax_id,omitempty"`
	Found     bool                        `json:"found"`
	Company   *integration.CompanyProfile `json:"company,omitempty"`
}

// LookupPostalCode wraps LookupAddressByPostalCode into a response DTO
func (s *LookupService) LookupPostalCode(ctx context.Context, code string) PostalCodeLookupResponse {
	digits := valueobject.OnlyDigits(code)
	resp := PostalCodeLookupResponse{PostalCode: digits}
	if len(digits) == valueobject.PostalCodeLength {
		resp.Formatted = valueobject.FormatPostalCode(digits)
	}
	resp.Address, resp.Found = s.LookupAddressByPostalCode(ctx, code)
	return resp
}

// LookupCompany wraps LookupCompanyByTaxID into a response DTO
func (s *LookupService) LookupCompany(ctx context.Context, taxID string) CompanyLookupResponse {
	digits := valueobject.OnlyDigits(taxID)
	resp := CompanyLookupResponse{TaxID: digits}
	if len(digits) == valueobject.CNPJLength {
		resp.Formatted = valueobject.FormatTaxID(digits)
	}
	resp.Company, resp.Found = s.LookupCompanyByTaxID(ctx, taxID)
	return resp
}
