package persistence

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/forniture-store/backend/internal/domain/partner"
	"github.com/forniture-store/backend/internal/domain/shared"
)

func TestGormCustomerRepository_SaveAndFind(t *testing.T) {
	ctx := context.Background()
	repo := NewGormCustomerRepository(newTestDB(t))

	customer := newTestCustomer(t, partner.PartyTypeIndividual, "José da Silva", "529.982.247-25")
	customer.Phone = "11987654321"
	customer.Profession = "Arquiteto"
	customer.SetVIP(true)
	require.NoError(t, repo.Save(ctx, customer))

	t.Run("by id", func(t *testing.T) {
		found, err := repo.FindByID(ctx, customer.ID)
		require.NoError(t, err)
		assert.Equal(t, "José da Silva", found.LegalName)
		assert.Equal(t, "52998224725", found.TaxID)
		assert.Equal(t, "11987654321", found.Phone)
		assert.Equal(t, "Arquiteto", found.Profession)
		assert.True(t, found.IsVIP)
		assert.True(t, found.IsActive)
		assert.Equal(t, partner.PartyTypeIndividual, found.Type)
		assert.Equal(t, customer.Version, found.Version)
	})

	t.Run("by tax id", func(t *testing.T) {
		found, err := repo.FindByTaxID(ctx, "52998224725")
		require.NoError(t, err)
		assert.Equal(t, customer.ID, found.ID)
	})

	t.Run("missing rows map to ErrNotFound", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)

		_, err = repo.FindByTaxID(ctx, "11144477735")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormCustomerRepository_SaveUpdatesInPlace(t *testing.T) {
	ctx := context.Background()
	repo := NewGormCustomerRepository(newTestDB(t))

	customer := newTestCustomer(t, partner.PartyTypeIndividual, "Maria Souza", "11144477735")
	require.NoError(t, repo.Save(ctx, customer))

	customer.Email = "maria@example.com"
	require.NoError(t, customer.Deactivate())
	require.NoError(t, repo.Save(ctx, customer))

	found, err := repo.FindByID(ctx, customer.ID)
	require.NoError(t, err)
	assert.Equal(t, "maria@example.com", found.Email)
	assert.False(t, found.IsActive)

	count, err := repo.Count(ctx, shared.Filter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestGormCustomerRepository_TaxIDUniqueness(t *testing.T) {
	ctx := context.Background()
	repo := NewGormCustomerRepository(newTestDB(t))

	first := newTestCustomer(t, partner.PartyTypeIndividual, "Ana Lima", "52998224725")
	require.NoError(t, repo.Save(ctx, first))

	exists, err := repo.ExistsByTaxID(ctx, "52998224725", uuid.Nil)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByTaxID(ctx, "52998224725", first.ID)
	require.NoError(t, err)
	assert.False(t, exists, "the owner itself is excluded")

	duplicate := newTestCustomer(t, partner.PartyTypeIndividual, "Outra Ana", "529.982.247-25")
	assert.Error(t, repo.Save(ctx, duplicate), "unique index rejects a second row")
}

func TestGormCustomerRepository_FindAll(t *testing.T) {
	ctx := context.Background()
	repo := NewGormCustomerRepository(newTestDB(t))

	jose := newTestCustomer(t, partner.PartyTypeIndividual, "José Araújo", "52998224725")
	jose.RegistrationDate = daysAgo(3)
	maria := newTestCustomer(t, partner.PartyTypeIndividual, "Maria Conceição", "11144477735")
	maria.RegistrationDate = daysAgo(2)
	maria.SetVIP(true)
	acme := newTestCustomer(t, partner.PartyTypeCompany, "ACME Móveis LTDA", "11222333000181")
	acme.PreferredName = "Acme"
	acme.RegistrationDate = daysAgo(1)
	for _, c := range []*partner.Customer{jose, maria, acme} {
		require.NoError(t, repo.Save(ctx, c))
	}

	names := func(customers []partner.Customer) []string {
		out := make([]string, len(customers))
		for i := range customers {
			out[i] = customers[i].LegalName
		}
		return out
	}

	tests := []struct {
		name   string
		filter shared.Filter
		want   []string
	}{
		{
			name:   "default order is newest registration first",
			filter: shared.DefaultFilter(),
			want:   []string{"ACME Móveis LTDA", "Maria Conceição", "José Araújo"},
		},
		{
			name:   "search ignores accents and case",
			filter: shared.Filter{Search: "JOSE ARAUJO"},
			want:   []string{"José Araújo"},
		},
		{
			name:   "search matches the folded text of accented queries",
			filter: shared.Filter{Search: "conceição"},
			want:   []string{"Maria Conceição"},
		},
		{
			name:   "digits match the start of the tax id",
			filter: shared.Filter{Search: "112.223"},
			want:   []string{"ACME Móveis LTDA"},
		},
		{
			name:   "search also covers the preferred name",
			filter: shared.Filter{Search: "acme"},
			want:   []string{"ACME Móveis LTDA"},
		},
		{
			name:   "party type filter",
			filter: shared.Filter{Filters: map[string]any{partner.FilterPartyType: partner.PartyTypeCompany}},
			want:   []string{"ACME Móveis LTDA"},
		},
		{
			name:   "vip filter",
			filter: shared.Filter{Filters: map[string]any{partner.FilterIsVIP: true}},
			want:   []string{"Maria Conceição"},
		},
		{
			name:   "explicit ascending order by legal name",
			filter: shared.Filter{OrderBy: "legal_name", OrderDir: "asc"},
			want:   []string{"ACME Móveis LTDA", "José Araújo", "Maria Conceição"},
		},
		{
			name:   "unknown sort field falls back to registration date",
			filter: shared.Filter{OrderBy: "1; DROP TABLE customers", OrderDir: "asc"},
			want:   []string{"José Araújo", "Maria Conceição", "ACME Móveis LTDA"},
		},
		{
			name:   "second page",
			filter: shared.Filter{Page: 2, PageSize: 2, OrderDir: "desc"},
			want:   []string{"José Araújo"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			customers, err := repo.FindAll(ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, names(customers))

			count, err := repo.Count(ctx, tt.filter)
			require.NoError(t, err)
			if tt.filter.Page <= 1 {
				assert.Equal(t, int64(len(tt.want)), count)
			}
		})
	}
}

func TestGormCustomerRepository_Delete(t *testing.T) {
	ctx := context.Background()
	repo := NewGormCustomerRepository(newTestDB(t))

	customer := newTestCustomer(t, partner.PartyTypeIndividual, "Pedro Alves", "52998224725")
	require.NoError(t, repo.Save(ctx, customer))

	require.NoError(t, repo.Delete(ctx, customer.ID))
	assert.ErrorIs(t, repo.Delete(ctx, customer.ID), shared.ErrNotFound)

	_, err := repo.FindByID(ctx, customer.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormCustomerRepository_DatabaseErrors(t *testing.T) {
	ctx := context.Background()
	db, mock, mockDB := newMockDatabase(t)
	defer mockDB.Close()
	repo := NewGormCustomerRepository(db.DB)

	t.Run("find propagates driver errors unchanged", func(t *testing.T) {
		id := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "customers" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(id, 1).
			WillReturnError(assert.AnError)

		_, err := repo.FindByID(ctx, id)
		assert.ErrorIs(t, err, assert.AnError)
		assert.NotErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("ErrRecordNotFound maps to ErrNotFound", func(t *testing.T) {
		mock.ExpectQuery(`SELECT \* FROM "customers" WHERE tax_id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("52998224725", 1).
			WillReturnError(gorm.ErrRecordNotFound)

		_, err := repo.FindByTaxID(ctx, "52998224725")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("exists excludes the given id", func(t *testing.T) {
		id := uuid.New()
		mock.ExpectQuery(`SELECT count\(\*\) FROM "customers" WHERE tax_id = \$1 AND id <> \$2`).
			WithArgs("52998224725", id).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		exists, err := repo.ExistsByTaxID(ctx, "52998224725", id)
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("count propagates errors", func(t *testing.T) {
		mock.ExpectQuery(`SELECT count\(\*\) FROM "customers"`).WillReturnError(assert.AnError)

		_, err := repo.Count(ctx, shared.Filter{})
		assert.ErrorIs(t, err, assert.AnError)
	})

	t.Run("delete propagates errors", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM "customers" WHERE id = \$1`).WillReturnError(assert.AnError)

		err := repo.Delete(ctx, uuid.New())
		assert.ErrorIs(t, err, assert.AnError)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
