package partner

import (
	"context"

	"github.com/google/uuid"

	"github.com/forniture-store/backend/internal/domain/shared"
)

// Filter keys understood by partner repositories in shared.Filter.Filters
const (
	FilterPartyType = "party_type" // PartyType
	FilterIsActive  = "is_active"  // bool
	FilterIsVIP     = "is_vip"     // bool, customers only
)

// CustomerRepository defines the interface for customer persistence
type CustomerRepository interface {
	// FindByID finds a customer by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)

	// FindByTaxID finds a customer by its normalized tax id
	FindByTaxID(ctx context.Context, taxID string) (*Customer, error)

	// ExistsByTaxID reports whether another customer already uses taxID
	ExistsByTaxID(ctx context.Context, taxID string, excludeID uuid.UUID) (bool, error)

	// FindAll finds all customers matching the filter.
	// Search matches legal name, preferred name and tax id.
	FindAll(ctx context.Context, filter shared.Filter) ([]Customer, error)

	// Count counts customers matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// Save creates or updates a customer
	Save(ctx context.Context, customer *Customer) error

	// Delete deletes a customer
	Delete(ctx context.Context, id uuid.UUID) error
}
