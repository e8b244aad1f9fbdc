package partner

import (
	"context"

	"github.com/forniture-store/backend/internal/domain/address"
	"github.com/forniture-store/backend/internal/domain/partner"
)

// TransactionScope runs owner and address writes atomically.
type TransactionScope interface {
	// Execute runs fn within a database transaction.
	// If fn returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories gives access to the repositories of one transaction.
// All of them share the same underlying database transaction.
type TransactionalRepositories interface {
	Customers() partner.CustomerRepository
	Suppliers() partner.SupplierRepository
	Addresses() address.Repository
}
