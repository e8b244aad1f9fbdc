package address

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for address persistence
type Repository interface {
	// FindByID finds an address by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Address, error)

	// FindByOwner returns every address of owner, primary first then oldest first
	FindByOwner(ctx context.Context, owner OwnerRef) ([]Address, error)

	// FindPrimary returns the owner's primary address or shared.ErrNotFound
	FindPrimary(ctx context.Context, owner OwnerRef) (*Address, error)

	// FindPrimaryByOwners returns the primary address of each owner that has one
	FindPrimaryByOwners(ctx context.Context, kind OwnerKind, ownerIDs []uuid.UUID) (map[uuid.UUID]*Address, error)

	// Save creates or updates an address
	Save(ctx context.Context, address *Address) error

	// DemoteOthers clears the primary flag on every address of owner except keepID
	DemoteOthers(ctx context.Context, owner OwnerRef, keepID uuid.UUID) error

	// Delete deletes an address
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByOwner deletes every address of owner and returns how many were removed
	DeleteByOwner(ctx context.Context, owner OwnerRef) (int64, error)

	// CountPrimary counts the owner's primary addresses
	CountPrimary(ctx context.Context, owner OwnerRef) (int64, error)
}
