package partner

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/forniture-store/backend/internal/domain/address"
	"github.com/forniture-store/backend/internal/domain/integration"
	"github.com/forniture-store/backend/internal/domain/shared"
	"github.com/forniture-store/backend/internal/domain/shared/valueobject"
)

// PartyType tells whether a partner is a person or a company
type PartyType string

const (
	PartyTypeIndividual PartyType = "IND"  // Pessoa Física, identified by CPF
	PartyTypeCompany    PartyType = "CORP" // Pessoa Jurídica, identified by CNPJ
)

// IsValid returns true if the party type is known
func (t PartyType) IsValid() bool {
	return t == PartyTypeIndividual || t == PartyTypeCompany
}

// TaxIDKind returns the tax identifier format required for the party type
func (t PartyType) TaxIDKind() valueobject.TaxIDKind {
	if t == PartyTypeCompany {
		return valueobject.TaxIDKindCNPJ
	}
	return valueobject.TaxIDKindCPF
}

// DefaultAddressType returns the address type stored when the caller sets none
func (t PartyType) DefaultAddressType() address.AddressType {
	if t == PartyTypeCompany {
		return address.AddressTypeCommercial
	}
	return address.AddressTypeResidential
}

// Field length limits shared by customers and suppliers
const (
	maxLegalNameLength     = 100
	maxPreferredNameLength = 50
	maxEmailLength         = 254
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// NormalizeTaxID strips punctuation from raw and validates it against the
// format required by partyType (CPF for IND, CNPJ for CORP).
func NormalizeTaxID(raw string, partyType PartyType) (string, error) {
	if !partyType.IsValid() {
		return "", shared.NewDomainError(shared.CodeInvalidFormat, "Party type must be IND or CORP")
	}
	return valueobject.NormalizeAndValidateTaxID(raw, partyType.TaxIDKind())
}

// Party holds the registration data common to customers and suppliers
type Party struct {
	Type          PartyType
	LegalName     string // Nome completo / Razão social
	PreferredName string // Apelido / Nome fantasia
	TaxID         string // digits only once validated
	Phone         string // digits only once validated
	Email         string
	IsActive      bool
}

// normalize validates every party field and rewrites tax id and phone to digits.
// It only writes back when the whole party is valid.
func (p *Party) normalize() shared.ValidationErrors {
	verrs := make(shared.ValidationErrors)

	if !p.Type.IsValid() {
		verrs.Add("party_type", shared.NewDomainError(shared.CodeInvalidFormat, "Party type must be IND or CORP"))
	}

	legalName := strings.TrimSpace(p.LegalName)
	switch {
	case legalName == "":
		verrs.Add("legal_name", shared.NewDomainError(shared.CodeMissingRequiredField, "Legal name is required"))
	case utf8.RuneCountInString(legalName) > maxLegalNameLength:
		verrs.Add("legal_name", tooLong("Legal name", maxLegalNameLength))
	}

	preferredName := strings.TrimSpace(p.PreferredName)
	if utf8.RuneCountInString(preferredName) > maxPreferredNameLength {
		verrs.Add("preferred_name", tooLong("Preferred name", maxPreferredNameLength))
	}

	var taxID string
	if p.Type.IsValid() {
		var err error
		taxID, err = NormalizeTaxID(p.TaxID, p.Type)
		verrs.Add("tax_id", err)
	}

	phone, err := valueobject.NormalizePhone(p.Phone)
	verrs.Add("phone", err)

	email := strings.TrimSpace(p.Email)
	if email != "" {
		if len(email) > maxEmailLength || !emailRegex.MatchString(email) {
			verrs.Add("email", shared.NewDomainError(shared.CodeInvalidFormat, "Invalid email format"))
		}
	}

	if verrs.HasErrors() {
		return verrs
	}

	p.LegalName = legalName
	p.PreferredName = preferredName
	p.TaxID = taxID
	p.Phone = phone
	p.Email = email
	return verrs
}

// applyCompanyNames copies non-empty registry names over the party's names
func (p *Party) applyCompanyNames(profile *integration.CompanyProfile) bool {
	if profile == nil {
		return false
	}
	changed := false
	if name := strings.TrimSpace(profile.LegalName); name != "" {
		p.LegalName = name
		changed = true
	}
	if name := strings.TrimSpace(profile.PreferredName); name != "" {
		p.PreferredName = name
		changed = true
	}
	return changed
}

// NeedsCompanyLookup reports whether the party is a company whose tax id
// already has the 14 digits a registry lookup needs
func (p *Party) NeedsCompanyLookup() bool {
	return p.Type == PartyTypeCompany && len(valueobject.OnlyDigits(p.TaxID)) == valueobject.CNPJLength
}

// FormattedTaxID renders the tax id with the CPF or CNPJ mask
func (p *Party) FormattedTaxID() string {
	return valueobject.FormatTaxID(p.TaxID)
}

// FormattedPhone renders the phone as (00) 0000-0000 or (00) 00000-0000
func (p *Party) FormattedPhone() string {
	return valueobject.FormatPhone(p.Phone)
}

func (p *Party) displayName(fallback string) string {
	if p.PreferredName != "" {
		return p.PreferredName
	}
	if p.LegalName != "" {
		return p.LegalName
	}
	return fallback
}

func tooLong(label string, limit int) error {
	return shared.NewDomainError(shared.CodeInvalidFormat, fmt.Sprintf("%s cannot exceed %d characters", label, limit))
}

func checkLength(verrs shared.ValidationErrors, field, label, value string, limit int) {
	if utf8.RuneCountInString(value) > limit {
		verrs.Add(field, tooLong(label, limit))
	}
}
