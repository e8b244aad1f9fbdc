package partner

import (
	"time"

	"github.com/forniture-store/backend/internal/domain/address"
	"github.com/forniture-store/backend/internal/domain/integration"
	"github.com/forniture-store/backend/internal/domain/shared"
)

const maxProfessionLength = 50

// Customer represents a customer of the store, either a person or a company.
// It is the aggregate root for customer registration; its address lives in
// the address context keyed by OwnerRef.
type Customer struct {
	shared.BaseAggregateRoot
	Party
	IsVIP            bool
	Profession       string
	Interests        string
	Notes            string
	RegistrationDate time.Time
}

// NewCustomer creates a draft customer. Fields are checked by Validate,
// which the save workflow runs after company enrichment.
func NewCustomer(partyType PartyType, legalName, taxID string) (*Customer, error) {
	if partyType == "" {
		partyType = PartyTypeIndividual
	}
	if !partyType.IsValid() {
		return nil, shared.NewDomainError("INVALID_TYPE", "Customer type must be IND or CORP")
	}

	root := shared.NewBaseAggregateRoot()
	return &Customer{
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

// OwnerRef identifies the customer as an address owner
func (c *Customer) OwnerRef() address.OwnerRef {
	return address.OwnerRef{Kind: address.OwnerKindCustomer, ID: c.ID}
}

// GetParty returns the shared registration data
func (c *Customer) GetParty() *Party {
	return &c.Party
}

// Validate checks every field and normalizes tax id and phone to digits
func (c *Customer) Validate() error {
	verrs := c.Party.normalize()
	checkLength(verrs, "profession", "Profession", c.Profession, maxProfessionLength)
	return verrs.Err()
}

// ApplyCompanyProfile copies registry names over the customer's names
func (c *Customer) ApplyCompanyProfile(profile *integration.CompanyProfile) bool {
	return c.Party.applyCompanyNames(profile)
}

// DisplayName returns the preferred name, the legal name or a generic label
func (c *Customer) DisplayName() string {
	return c.Party.displayName("Customer " + c.ID.String())
}

// SetVIP flags or unflags the customer as VIP
func (c *Customer) SetVIP(vip bool) {
	c.IsVIP = vip
	c.Touch()
}

// Activate activates the customer
func (c *Customer) Activate() error {
	if c.IsActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Customer is already active")
	}
	c.IsActive = true
	c.Touch()
	return nil
}

// Deactivate deactivates the customer
func (c *Customer) Deactivate() error {
	if !c.IsActive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Customer is already inactive")
	}
	c.IsActive = false
	c.Touch()
	return nil
}


// IsCompany returns true if the customer is a company
func (c *Customer) IsCompany() bool {
	return c.Type == PartyTypeCompany
}
