package partner

import (
	"context"

	"github.com/google/uuid"

	"github.com/forniture-store/backend/internal/domain/shared"
)

// SupplierRepository defines the interface for supplier persistence
type SupplierRepository interface {
	// FindByID finds a supplier by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Supplier, error)

	// FindByTaxID finds a supplier by its normalized tax id
	FindByTaxID(ctx context.Context, taxID string) (*Supplier, error)

	// ExistsByTaxID reports whether another supplier already uses taxID
	ExistsByTaxID(ctx context.Context, taxID string, excludeID uuid.UUID) (bool, error)

	// FindAll finds all suppliers matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Supplier, error)

	// Count counts suppliers matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// Save creates or updates a supplier
	Save(ctx context.Context, supplier *Supplier) error

	// Delete deletes a supplier
	Delete(ctx context.Context, id uuid.UUID) error
}
