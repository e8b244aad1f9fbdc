package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forniture-store/backend/internal/domain/address"
	"github.com/forniture-store/backend/internal/domain/shared"
)

func newTestAddress(t *testing.T, owner address.OwnerRef, street string, primary bool) *address.Address {
	t.Helper()
	a, err := address.NewAddress(owner, address.Fields{
		PostalCode: "01310-100",
		Street:     street,
		Number:     "1000",
		City:       "São Paulo",
		State:      "sp",
	}, address.AddressTypeResidential)
	require.NoError(t, err)
	if primary {
		a.MarkPrimary()
	}
	return a
}

func TestGormAddressRepository_SaveAndFind(t *testing.T) {
	ctx := context.Background()
	repo := NewGormAddressRepository(newTestDB(t))
	owner := address.OwnerRef{Kind: address.OwnerKindCustomer, ID: uuid.New()}

	primary := newTestAddress(t, owner, "Avenida Paulista", true)
	require.NoError(t, repo.Save(ctx, primary))

	found, err := repo.FindByID(ctx, primary.ID)
	require.NoError(t, err)
	assert.Equal(t, owner, found.Owner)
	assert.Equal(t, "01310100", found.PostalCode)
	assert.Equal(t, "SP", found.State)
	assert.Equal(t, address.DefaultCountry, found.Country)
	assert.Equal(t, address.AddressTypeResidential, found.Type)
	assert.True(t, found.IsPrimary)
	assert.True(t, found.IsActive)

	got, err := repo.FindPrimary(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, primary.ID, got.ID)

	_, err = repo.FindPrimary(ctx, address.OwnerRef{Kind: address.OwnerKindSupplier, ID: owner.ID})
	assert.ErrorIs(t, err, shared.ErrNotFound, "owner kind is part of the key")

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormAddressRepository_SinglePrimaryIndex(t *testing.T) {
	ctx := context.Background()
	repo := NewGormAddressRepository(newTestDB(t))
	owner := address.OwnerRef{Kind: address.OwnerKindCustomer, ID: uuid.New()}

	first := newTestAddress(t, owner, "Rua A", true)
	require.NoError(t, repo.Save(ctx, first))

	t.Run("a second primary row is rejected", func(t *testing.T) {
		second := newTestAddress(t, owner, "Rua B", true)
		assert.Error(t, repo.Save(ctx, second))
	})

	t.Run("non primary rows are unrestricted", func(t *testing.T) {
		require.NoError(t, repo.Save(ctx, newTestAddress(t, owner, "Rua C", false)))
		require.NoError(t, repo.Save(ctx, newTestAddress(t, owner, "Rua D", false)))
	})

	t.Run("another owner may hold its own primary", func(t *testing.T) {
		other := address.OwnerRef{Kind: address.OwnerKindSupplier, ID: owner.ID}
		require.NoError(t, repo.Save(ctx, newTestAddress(t, other, "Rua E", true)))
	})

	t.Run("demote then save moves the primary flag", func(t *testing.T) {
		next := newTestAddress(t, owner, "Rua F", true)
		require.NoError(t, repo.DemoteOthers(ctx, owner, next.ID))
		require.NoError(t, repo.Save(ctx, next))

		count, err := repo.CountPrimary(ctx, owner)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)

		got, err := repo.FindPrimary(ctx, owner)
		require.NoError(t, err)
		assert.Equal(t, "Rua F", got.Street)

		all, err := repo.FindByOwner(ctx, owner)
		require.NoError(t, err)
		require.Len(t, all, 4)
		assert.Equal(t, next.ID, all[0].ID, "primary first")
	})
}

func TestGormAddressRepository_FindPrimaryByOwners(t *testing.T) {
	ctx := context.Background()
	repo := NewGormAddressRepository(newTestDB(t))

	withAddress := address.OwnerRef{Kind: address.OwnerKindCustomer, ID: uuid.New()}
	withoutAddress := address.OwnerRef{Kind: address.OwnerKindCustomer, ID: uuid.New()}
	supplier := address.OwnerRef{Kind: address.OwnerKindSupplier, ID: uuid.New()}

	require.NoError(t, repo.Save(ctx, newTestAddress(t, withAddress, "Rua das Flores", true)))
	require.NoError(t, repo.Save(ctx, newTestAddress(t, supplier, "Rua do Porto", true)))

	result, err := repo.FindPrimaryByOwners(ctx, address.OwnerKindCustomer,
		[]uuid.UUID{withAddress.ID, withoutAddress.ID, supplier.ID})
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "Rua das Flores", result[withAddress.ID].Street)

	empty, err := repo.FindPrimaryByOwners(ctx, address.OwnerKindCustomer, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestGormAddressRepository_Delete(t *testing.T) {
	ctx := context.Background()
	repo := NewGormAddressRepository(newTestDB(t))
	owner := address.OwnerRef{Kind: address.OwnerKindSupplier, ID: uuid.New()}

	a := newTestAddress(t, owner, "Rua A", true)
	require.NoError(t, repo.Save(ctx, a))
	require.NoError(t, repo.Save(ctx, newTestAddress(t, owner, "Rua B", false)))

	require.NoError(t, repo.Delete(ctx, a.ID))
	assert.ErrorIs(t, repo.Delete(ctx, a.ID), shared.ErrNotFound)

	removed, err := repo.DeleteByOwner(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	remaining, err := repo.FindByOwner(ctx, owner)
	require.NoError(t, err)
	assert.Empty(t, remaining)
}
