package partner

import (
	"strings"
	"time"

	"github.com/forniture-store/backend/internal/domain/address"
	"github.com/forniture-store/backend/internal/domain/integration"
	"github.com/forniture-store/backend/internal/domain/shared"
)

// Supplier field length limits
const (
	maxRegistrationLength = 20
	maxContactLength      = 100
	maxBankNameLength     = 50
	maxBankAgencyLength   = 10
	maxBankAccountLength  = 20
	maxPixKeyLength       = 100
)

// Supplier represents a vendor the store buys from.
// Companies are the default; individuals are accepted with a CPF.
type Supplier struct {
	shared.BaseAggregateRoot
	Party
	StateRegistration     string // Inscrição estadual
	MunicipalRegistration string // Inscrição municipal
	ContactPerson         string
	BankName              string
	BankAgency            string
	BankAccount           string
	PixKey                string
	Notes                 string
	RegistrationDate      time.Time
}

// NewSupplier creates a draft supplier
func NewSupplier(partyType PartyType, legalName, taxID string) (*Supplier, error) {
	if partyType == "" {
		partyType = PartyTypeCompany
	}
	if !partyType.IsValid() {
		return nil, shared.NewDomainError("INVALID_TYPE", "Supplier type must be IND or CORP")
	}

	root := shared.NewBaseAggregateRoot()
	return &Supplier{
		BaseAggregateRoot: root,
		Party: Party{
			Type:      partyType,
			LegalName: legalName,
			TaxID:     taxID,
			IsActive:  true,
		},
		RegistrationDate: root.CreatedAt,
	}, nil
}

// OwnerRef identifies the supplier as an address owner
func (s *Supplier) OwnerRef() address.OwnerRef {
	return address.OwnerRef{Kind: address.OwnerKindSupplier, ID: s.ID}
}

// GetParty returns the shared registration data
func (s *Supplier) GetParty() *Party {
	return &s.Party
}

// Validate checks every field and normalizes tax id and phone to digits.
// Companies must carry a trade name.
func (s *Supplier) Validate() error {
	verrs := s.Party.normalize()

	if s.Type == PartyTypeCompany && strings.TrimSpace(s.PreferredName) == "" {
		verrs.Add("preferred_name", shared.NewDomainError(shared.CodeMissingRequiredField,
			"Trade name is required for company suppliers"))
	}

	checkLength(verrs, "state_registration", "State registration", s.StateRegistration, maxRegistrationLength)
	checkLength(verrs, "municipal_registration", "Municipal registration", s.MunicipalRegistration, maxRegistrationLength)
	checkLength(verrs, "contact_person", "Contact person", s.ContactPerson, maxContactLength)
	checkLength(verrs, "bank_name", "Bank name", s.BankName, maxBankNameLength)
	checkLength(verrs, "bank_agency", "Bank agency", s.BankAgency, maxBankAgencyLength)
	checkLength(verrs, "bank_account", "Bank account", s.BankAccount, maxBankAccountLength)
	checkLength(verrs, "pix_key", "PIX key", s.PixKey, maxPixKeyLength)

	return verrs.Err()
}

// ApplyCompanyProfile copies registry names and the state registration
func (s *Supplier) ApplyCompanyProfile(profile *integration.CompanyProfile) bool {
	changed := s.Party.applyCompanyNames(profile)
	if profile != nil {
		if reg := strings.TrimSpace(profile.StateRegistration); reg != "" {
			s.StateRegistration = reg
			changed = true
		}
	}
	return changed
}

// DisplayName returns the trade name, the legal name or a generic label
func (s *Supplier) DisplayName() string {
	return s.Party.displayName("Supplier " + s.ID.String())
}

// Activate activates the supplier
func (s *Supplier) Activate() error {
	if s.IsActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Supplier is already active")
	}
	s.IsActive = true
	s.Touch()
	return nil
}

// Deactivate deactivates the supplier
func (s *Supplier) Deactivate() error {
	if !s.IsActive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Supplier is already inactive")
	}
	s.IsActive = false
	s.Touch()
	return nil
}

