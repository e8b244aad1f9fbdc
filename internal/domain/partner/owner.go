package partner

import (
	"github.com/forniture-store/backend/internal/domain/address"
	"github.com/forniture-store/backend/internal/domain/integration"
)

// Owner is a partner that can own an address and go through the save workflow
type Owner interface {
	// OwnerRef identifies the owner for address storage
	OwnerRef() address.OwnerRef
	// GetParty exposes the shared registration data
	GetParty() *Party
	// Validate checks and normalizes the owner in place, returning
	// shared.ValidationErrors when any field is invalid
	Validate() error
	// ApplyCompanyProfile overwrites names (and registry data the owner keeps)
	// with non-empty values from profile; it reports whether anything changed
	ApplyCompanyProfile(profile *integration.CompanyProfile) bool
}
