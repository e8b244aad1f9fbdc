package persistence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/forniture-store/backend/internal/domain/partner"
	"github.com/forniture-store/backend/internal/infrastructure/config"
)

// newTestDB opens a migrated in-memory SQLite database.
// A single pooled connection keeps every query on the same memory database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := Open(sqlite.Open(":memory:"), &config.DatabaseConfig{MaxOpenConns: 1, MaxIdleConns: 1})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate())
	t.Cleanup(func() { _ = db.Close() })

	return db.DB
}

func newTestCustomer(t *testing.T, partyType partner.PartyType, legalName, taxID string) *partner.Customer {
	t.Helper()
	c, err := partner.NewCustomer(partyType, legalName, taxID)
	require.NoError(t, err)
	require.NoError(t, c.Validate())
	return c
}

func newTestSupplier(t *testing.T, legalName, tradeName, taxID string) *partner.Supplier {
	t.Helper()
	s, err := partner.NewSupplier(partner.PartyTypeCompany, legalName, taxID)
	require.NoError(t, err)
	s.PreferredName = tradeName
	require.NoError(t, s.Validate())
	return s
}

// daysAgo gives fixtures distinct registration dates for ordering assertions
func daysAgo(n int) time.Time {
	return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC).AddDate(0, 0, -n)
}
