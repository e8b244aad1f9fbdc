package partner_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	apppartner "github.com/forniture-store/backend/internal/application/partner"
	"github.com/forniture-store/backend/internal/domain/address"
	"github.com/forniture-store/backend/internal/domain/integration"
	"github.com/forniture-store/backend/internal/infrastructure/config"
	"github.com/forniture-store/backend/internal/infrastructure/persistence"
)

// MockCompanyLookup is a mock implementation of CompanyLookup
type MockCompanyLookup struct {
	mock.Mock
}

func (m *MockCompanyLookup) LookupCompanyByTaxID(ctx context.Context, taxID string) (*integration.CompanyProfile, bool) {
	args := m.Called(ctx, taxID)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).(*integration.CompanyProfile), args.Bool(1)
}

// testEnv wires the save workflow and services to an in-memory SQLite database
type testEnv struct {
	db        *gorm.DB
	customers *persistence.GormCustomerRepository
	suppliers *persistence.GormSupplierRepository
	addresses *persistence.GormAddressRepository
	scope     *persistence.GormTransactionScope
	lookup    *MockCompanyLookup
	workflow  *apppartner.SaveWorkflow
	logs      *observer.ObservedLogs
	logger    *zap.Logger
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	database, err := persistence.Open(sqlite.Open(":memory:"), &config.DatabaseConfig{MaxOpenConns: 1, MaxIdleConns: 1})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate())
	t.Cleanup(func() { _ = database.Close() })

	core, logs := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)
	lookup := new(MockCompanyLookup)
	scope := persistence.NewGormTransactionScope(database.DB)

	t.Cleanup(func() { lookup.AssertExpectations(t) })

	return &testEnv{
		db:        database.DB,
		customers: persistence.NewGormCustomerRepository(database.DB),
		suppliers: persistence.NewGormSupplierRepository(database.DB),
		addresses: persistence.NewGormAddressRepository(database.DB),
		scope:     scope,
		lookup:    lookup,
		workflow:  apppartner.NewSaveWorkflow(scope, lookup, logger),
		logs:      logs,
		logger:    logger,
	}
}

func (e *testEnv) customerService() *apppartner.CustomerService {
	return apppartner.NewCustomerService(e.customers, e.addresses, e.scope, e.workflow, e.logger)
}

func (e *testEnv) supplierService() *apppartner.SupplierService {
	return apppartner.NewSupplierService(e.suppliers, e.addresses, e.scope, e.workflow, e.logger)
}

func (e *testEnv) addressesOf(t *testing.T, owner address.OwnerRef) []address.Address {
	t.Helper()
	addrs, err := e.addresses.FindByOwner(context.Background(), owner)
	require.NoError(t, err)
	return addrs
}

func (e *testEnv) primaryCount(t *testing.T, owner address.OwnerRef) int64 {
	t.Helper()
	n, err := e.addresses.CountPrimary(context.Background(), owner)
	require.NoError(t, err)
	return n
}

func paulista() *address.Fields {
	return &address.Fields{
		PostalCode:   "01310-100",
		Street:       "Avenida Paulista",
		Number:       "1000",
		Neighborhood: "Bela Vista",
		City:         "São Paulo",
		State:        "sp",
	}
}

func acmeProfile() *integration.CompanyProfile {
	return &integration.CompanyProfile{
		TaxID:             "11222333000181",
		LegalName:         "ACME CORP LTDA",
		PreferredName:     "ACME",
		StateRegistration: "110042490114",
		Address: address.Fields{
			PostalCode:   "04538-133",
			Street:       "Avenida Brigadeiro Faria Lima",
			Number:       "3477",
			Neighborhood: "Itaim Bibi",
			City:         "São Paulo",
			State:        "SP",
		},
	}
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }
