package integration

import (
	"context"
	"errors"
	"time"

	"github.com/forniture-store/backend/internal/domain/address"
)

// ---------------------------------------------------------------------------
// Lookup Errors
// ---------------------------------------------------------------------------

var (
	// ErrLookupUnavailable means a provider could not be reached, timed out or
	// answered with something unusable. It never leaves the lookup layer.
	ErrLookupUnavailable = errors.New("integration: lookup provider unavailable")

	// ErrLookupNotFound means the provider answered and knows nothing about the key
	ErrLookupNotFound = errors.New("integration: lookup key not found")

	// ErrCacheMiss is returned by LookupCache.Get when the key is absent or expired
	ErrCacheMiss = errors.New("integration: cache miss")
)

// ---------------------------------------------------------------------------
// Results
// ---------------------------------------------------------------------------

// PostalAddress is the partial address a postal-code provider knows about
type PostalAddress struct {
	PostalCode   string `json:"postal_code"`
	Street       string `json:"street,omitempty"`
	Neighborhood string `json:"neighborhood,omitempty"`
	City         string `json:"city,omitempty"`
	State        string `json:"state,omitempty"`
	Source       string `json:"source,omitempty"`
}

// IsEmpty reports whether the provider returned no location data
func (p *PostalAddress) IsEmpty() bool {
	return p == nil || (p.Street == "" && p.Neighborhood == "" && p.City == "" && p.State == "")
}

// Fields converts the result into address fields
func (p *PostalAddress) Fields() address.Fields {
	if p == nil {
		return address.Fields{}
	}
	return address.Fields{
		PostalCode:   p.PostalCode,
		Street:       p.Street,
		Neighborhood: p.Neighborhood,
		City:         p.City,
		State:        p.State,
	}
}

// CompanyProfile is what a company registry returns for a CNPJ
type CompanyProfile struct {
	TaxID             string         `json:"tax_id"`
	LegalName         string         `json:"legal_name,omitempty"`
	PreferredName     string         `json:"preferred_name,omitempty"`
	StateRegistration string         `json:"state_registration,omitempty"`
	Address           address.Fields `json:"address"`
}

// HasAddress reports whether the registry returned any location value
func (c *CompanyProfile) HasAddress() bool {
	return c != nil && !c.Address.IsEmpty()
}

// ---------------------------------------------------------------------------
// Ports
// ---------------------------------------------------------------------------

// PostalCodeProvider resolves an 8 digit CEP.
// Implementations return ErrLookupNotFound for unknown codes and wrap
// ErrLookupUnavailable for transport failures.
type PostalCodeProvider interface {
	Name() string
	LookupPostalCode(ctx context.Context, postalCode string) (*PostalAddress, error)
}

// CompanyRegistry resolves a 14 digit CNPJ
type CompanyRegistry interface {
	Name() string
	LookupCompany(ctx context.Context, taxID string) (*CompanyProfile, error)
}

// LookupCache is an expiring key-value store for lookup results
type LookupCache interface {
	// Get returns the cached value or ErrCacheMiss
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores value under key for ttl
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
