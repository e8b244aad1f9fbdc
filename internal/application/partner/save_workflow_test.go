package partner_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apppartner "github.com/forniture-store/backend/internal/application/partner"
	"github.com/forniture-store/backend/internal/domain/address"
	"github.com/forniture-store/backend/internal/domain/partner"
	"github.com/forniture-store/backend/internal/domain/shared"
	"github.com/forniture-store/backend/internal/infrastructure/persistence/models"
)

func TestSaveWorkflow_CompanyEnrichment(t *testing.T) {
	ctx := context.Background()

	t.Run("lookup fills names and address", func(t *testing.T) {
		env := newTestEnv(t)
		env.lookup.On("LookupCompanyByTaxID", mock.Anything, "11.222.333/0001-81").Return(acmeProfile(), true).Once()

		customer, err := partner.NewCustomer(partner.PartyTypeCompany, "", "11.222.333/0001-81")
		require.NoError(t, err)

		result, err := env.workflow.SaveCustomer(ctx, customer, nil)
		require.NoError(t, err)

		assert.True(t, result.Enriched)
		assert.Equal(t, apppartner.ActionUpsertFromLookup, result.Action)
		assert.Equal(t, address.OutcomeCreated, result.Outcome)
		require.NotNil(t, result.Address)
		assert.Equal(t, address.AddressTypeCommercial, result.Address.Type)
		assert.Equal(t, "04538133", result.Address.PostalCode)

		stored, err := env.customers.FindByID(ctx, customer.ID)
		require.NoError(t, err)
		assert.Equal(t, "ACME CORP LTDA", stored.LegalName)
		assert.Equal(t, "ACME", stored.PreferredName)
		assert.Equal(t, "11222333000181", stored.TaxID)

		primary, err := env.addresses.FindPrimary(ctx, customer.OwnerRef())
		require.NoError(t, err)
		assert.Equal(t, "Avenida Brigadeiro Faria Lima", primary.Street)
		assert.Equal(t, int64(1), env.primaryCount(t, customer.OwnerRef()))

		entries := env.logs.FilterMessage("Address saved").All()
		require.Len(t, entries, 1)
		assert.Equal(t, "lookup", entries[0].ContextMap()["source"])
		assert.Equal(t, "created", entries[0].ContextMap()["outcome"])
	})

	t.Run("caller address wins over lookup address", func(t *testing.T) {
		env := newTestEnv(t)
		env.lookup.On("LookupCompanyByTaxID", mock.Anything, "11222333000181").Return(acmeProfile(), true).Once()

		customer, err := partner.NewCustomer(partner.PartyTypeCompany, "", "11222333000181")
		require.NoError(t, err)

		result, err := env.workflow.SaveCustomer(ctx, customer, paulista())
		require.NoError(t, err)

		assert.True(t, result.Enriched)
		assert.Equal(t, apppartner.ActionUpsertFromCaller, result.Action)
		assert.Equal(t, "Avenida Paulista", result.Address.Street)
		assert.Equal(t, "SP", result.Address.State)

		entries := env.logs.FilterMessage("Address saved").All()
		require.Len(t, entries, 1)
		assert.Equal(t, "caller", entries[0].ContextMap()["source"])
	})

	t.Run("lookup miss keeps caller names and address", func(t *testing.T) {
		env := newTestEnv(t)
		env.lookup.On("LookupCompanyByTaxID", mock.Anything, "11444777000161").Return(nil, false).Once()

		customer, err := partner.NewCustomer(partner.PartyTypeCompany, "Móveis Brasil LTDA", "11444777000161")
		require.NoError(t, err)

		result, err := env.workflow.SaveCustomer(ctx, customer, nil)
		require.NoError(t, err)

		assert.False(t, result.Enriched)
		assert.Equal(t, apppartner.ActionKeep, result.Action)
		assert.Equal(t, address.OutcomeUnchanged, result.Outcome)
		assert.Empty(t, env.addressesOf(t, customer.OwnerRef()))
		assert.Equal(t, "Móveis Brasil LTDA", customer.LegalName)
	})

	t.Run("registry address that fails validation is skipped", func(t *testing.T) {
		env := newTestEnv(t)
		abroad := acmeProfile()
		abroad.Address = address.Fields{City: "EXTERIOR", State: "EX"}
		env.lookup.On("LookupCompanyByTaxID", mock.Anything, "11222333000181").Return(abroad, true).Once()

		customer, err := partner.NewCustomer(partner.PartyTypeCompany, "", "11222333000181")
		require.NoError(t, err)

		result, err := env.workflow.SaveCustomer(ctx, customer, nil)
		require.NoError(t, err)

		assert.True(t, result.Enriched)
		assert.Equal(t, apppartner.ActionKeep, result.Action)
		assert.Equal(t, address.OutcomeUnchanged, result.Outcome)
		assert.Nil(t, result.Address)

		stored, err := env.customers.FindByID(ctx, customer.ID)
		require.NoError(t, err)
		assert.Equal(t, "ACME CORP LTDA", stored.LegalName)
		assert.Empty(t, env.addressesOf(t, customer.OwnerRef()))

		warnings := env.logs.FilterMessage("Registry address rejected, keeping current address").All()
		require.Len(t, warnings, 1)
		assert.Empty(t, env.logs.FilterMessage("Address saved").All())
	})

	t.Run("short registry postal code keeps the stored address", func(t *testing.T) {
		env := newTestEnv(t)
		env.lookup.On("LookupCompanyByTaxID", mock.Anything, "11222333000181").Return(acmeProfile(), true).Once()

		customer, err := partner.NewCustomer(partner.PartyTypeCompany, "", "11222333000181")
		require.NoError(t, err)
		_, err = env.workflow.SaveCustomer(ctx, customer, nil)
		require.NoError(t, err)

		shortCEP := acmeProfile()
		shortCEP.Address.PostalCode = "1234567"
		shortCEP.Address.Street = "Rua Nova"
		env.lookup.On("LookupCompanyByTaxID", mock.Anything, "11222333000181").Return(shortCEP, true).Once()

		result, err := env.workflow.SaveCustomer(ctx, customer, nil)
		require.NoError(t, err)
		assert.Equal(t, apppartner.ActionKeep, result.Action)

		primary, err := env.addresses.FindPrimary(ctx, customer.OwnerRef())
		require.NoError(t, err)
		assert.Equal(t, "Avenida Brigadeiro Faria Lima", primary.Street)
		assert.Equal(t, "04538133", primary.PostalCode)
	})

	t.Run("individuals are never looked up", func(t *testing.T) {
		env := newTestEnv(t)

		customer, err := partner.NewCustomer(partner.PartyTypeIndividual, "Maria da Silva", "529.982.247-25")
		require.NoError(t, err)

		result, err := env.workflow.SaveCustomer(ctx, customer, nil)
		require.NoError(t, err)

		assert.False(t, result.Enriched)
		env.lookup.AssertNotCalled(t, "LookupCompanyByTaxID", mock.Anything, mock.Anything)
	})

	t.Run("supplier takes state registration from the registry", func(t *testing.T) {
		env := newTestEnv(t)
		env.lookup.On("LookupCompanyByTaxID", mock.Anything, "11222333000181").Return(acmeProfile(), true).Once()

		supplier, err := partner.NewSupplier("", "", "11222333000181")
		require.NoError(t, err)

		result, err := env.workflow.SaveSupplier(ctx, supplier, nil)
		require.NoError(t, err)

		assert.Equal(t, apppartner.ActionUpsertFromLookup, result.Action)
		stored, err := env.suppliers.FindByID(ctx, supplier.ID)
		require.NoError(t, err)
		assert.Equal(t, "ACME", stored.PreferredName)
		assert.Equal(t, "110042490114", stored.StateRegistration)

		primary, err := env.addresses.FindPrimary(ctx, supplier.OwnerRef())
		require.NoError(t, err)
		assert.Equal(t, address.OwnerKindSupplier, primary.Owner.Kind)
	})
}

func TestSaveWorkflow_AddressLifecycle(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	customer, err := partner.NewCustomer(partner.PartyTypeIndividual, "Maria da Silva", "529.982.247-25")
	require.NoError(t, err)
	owner := customer.OwnerRef()

	// created without address
	result, err := env.workflow.SaveCustomer(ctx, customer, nil)
	require.NoError(t, err)
	assert.Equal(t, apppartner.ActionKeep, result.Action)
	assert.Empty(t, env.addressesOf(t, owner))

	// address populated
	result, err = env.workflow.SaveCustomer(ctx, customer, paulista())
	require.NoError(t, err)
	assert.Equal(t, apppartner.ActionUpsertFromCaller, result.Action)
	assert.Equal(t, address.OutcomeCreated, result.Outcome)
	assert.Equal(t, address.AddressTypeResidential, result.Address.Type)
	assert.Equal(t, address.DefaultCountry, result.Address.Country)
	firstID := result.Address.ID

	// same payload again updates the same row
	result, err = env.workflow.SaveCustomer(ctx, customer, paulista())
	require.NoError(t, err)
	assert.Equal(t, address.OutcomeUpdated, result.Outcome)
	assert.Equal(t, firstID, result.Address.ID)
	addrs := env.addressesOf(t, owner)
	require.Len(t, addrs, 1)
	assert.True(t, addrs[0].IsPrimary)

	// blank payload clears it
	result, err = env.workflow.SaveCustomer(ctx, customer, &address.Fields{Street: "  ", City: ""})
	require.NoError(t, err)
	assert.Equal(t, apppartner.ActionDelete, result.Action)
	assert.Equal(t, address.OutcomeDeleted, result.Outcome)
	assert.Nil(t, result.Address)
	assert.Empty(t, env.addressesOf(t, owner))

	// absent payload leaves nothing behind
	result, err = env.workflow.SaveCustomer(ctx, customer, nil)
	require.NoError(t, err)
	assert.Equal(t, apppartner.ActionKeep, result.Action)
	assert.Empty(t, env.addressesOf(t, owner))

	// blank payload on an owner without address is a no-op
	result, err = env.workflow.SaveCustomer(ctx, customer, &address.Fields{})
	require.NoError(t, err)
	assert.Equal(t, address.OutcomeUnchanged, result.Outcome)
}

func TestSaveWorkflow_SinglePrimary(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	customer, err := partner.NewCustomer(partner.PartyTypeIndividual, "João Araújo", "111.444.777-35")
	require.NoError(t, err)
	_, err = env.workflow.SaveCustomer(ctx, customer, nil)
	require.NoError(t, err)

	// leftovers from an older import: two non-primary rows
	owner := customer.OwnerRef()
	for _, street := range []string{"Rua Antiga 1", "Rua Antiga 2"} {
		a, err := address.NewAddress(owner, address.Fields{Street: street, City: "Recife", State: "PE"}, address.AddressTypeOther)
		require.NoError(t, err)
		require.NoError(t, env.addresses.Save(ctx, a))
	}

	result, err := env.workflow.SaveCustomer(ctx, customer, paulista())
	require.NoError(t, err)
	assert.Equal(t, address.OutcomeUpdated, result.Outcome)

	assert.Equal(t, int64(1), env.primaryCount(t, owner))
	addrs := env.addressesOf(t, owner)
	require.Len(t, addrs, 2)
	assert.True(t, addrs[0].IsPrimary)
	assert.Equal(t, "Avenida Paulista", addrs[0].Street)
	assert.False(t, addrs[1].IsPrimary)

	// clearing removes the leftover row as well
	result, err = env.workflow.SaveCustomer(ctx, customer, &address.Fields{})
	require.NoError(t, err)
	assert.Equal(t, apppartner.ActionDelete, result.Action)
	assert.Equal(t, address.OutcomeDeleted, result.Outcome)
	assert.Empty(t, env.addressesOf(t, owner))
}

func TestSaveWorkflow_ValidationAbortsBeforePersistence(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	customer, err := partner.NewCustomer(partner.PartyTypeIndividual, "Maria da Silva", "529.982.247-24")
	require.NoError(t, err)

	_, err = env.workflow.SaveCustomer(ctx, customer, paulista())
	require.Error(t, err)

	verrs, ok := shared.AsValidationErrors(err)
	require.True(t, ok)
	assert.Equal(t, []string{"tax_id"}, verrs.Fields())
	assert.True(t, errors.Is(err, shared.ErrInvalidChecksum))

	_, err = env.customers.FindByID(ctx, customer.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	assert.Empty(t, env.addressesOf(t, customer.OwnerRef()))
}

func TestSaveWorkflow_AddressErrorRollsBackOwner(t *testing.T) {
	ctx := context.Background()

	t.Run("new owner is not persisted", func(t *testing.T) {
		env := newTestEnv(t)

		customer, err := partner.NewCustomer(partner.PartyTypeIndividual, "Maria da Silva", "52998224725")
		require.NoError(t, err)

		_, err = env.workflow.SaveCustomer(ctx, customer, &address.Fields{PostalCode: "1234-5", Street: "Rua A"})
		require.Error(t, err)

		verrs, ok := shared.AsValidationErrors(err)
		require.True(t, ok)
		assert.Contains(t, verrs.Fields(), "address.postal_code")
		assert.True(t, errors.Is(err, shared.ErrInvalidPostalCode))

		_, err = env.customers.FindByID(ctx, customer.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("existing owner keeps its previous state", func(t *testing.T) {
		env := newTestEnv(t)

		customer, err := partner.NewCustomer(partner.PartyTypeIndividual, "Maria da Silva", "52998224725")
		require.NoError(t, err)
		_, err = env.workflow.SaveCustomer(ctx, customer, paulista())
		require.NoError(t, err)

		customer.LegalName = "Maria Souza"
		_, err = env.workflow.SaveCustomer(ctx, customer, &address.Fields{Street: "Rua B", State: "XX"})
		require.Error(t, err)

		stored, err := env.customers.FindByID(ctx, customer.ID)
		require.NoError(t, err)
		assert.Equal(t, "Maria da Silva", stored.LegalName)

		primary, err := env.addresses.FindPrimary(ctx, customer.OwnerRef())
		require.NoError(t, err)
		assert.Equal(t, "Avenida Paulista", primary.Street)
	})

	t.Run("storage failure is wrapped", func(t *testing.T) {
		env := newTestEnv(t)
		require.NoError(t, env.db.Migrator().DropTable(&models.AddressModel{}))

		customer, err := partner.NewCustomer(partner.PartyTypeIndividual, "Maria da Silva", "52998224725")
		require.NoError(t, err)

		_, err = env.workflow.SaveCustomer(ctx, customer, paulista())
		require.Error(t, err)
		assert.ErrorIs(t, err, apppartner.ErrSaveFailed)
		assert.Contains(t, err.Error(), "partner: save failed")

		_, ok := shared.AsValidationErrors(err)
		assert.False(t, ok)

		_, err = env.customers.FindByID(ctx, customer.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestSaveWorkflow_DuplicateTaxID(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	first, err := partner.NewCustomer(partner.PartyTypeIndividual, "Maria da Silva", "52998224725")
	require.NoError(t, err)
	_, err = env.workflow.SaveCustomer(ctx, first, nil)
	require.NoError(t, err)

	// saving the same owner again is not a conflict
	_, err = env.workflow.SaveCustomer(ctx, first, nil)
	require.NoError(t, err)

	second, err := partner.NewCustomer(partner.PartyTypeIndividual, "Outra Maria", "529.982.247-25")
	require.NoError(t, err)
	_, err = env.workflow.SaveCustomer(ctx, second, paulista())
	require.Error(t, err)

	verrs, ok := shared.AsValidationErrors(err)
	require.True(t, ok)
	assert.Equal(t, []string{"tax_id"}, verrs.Fields())
	assert.True(t, errors.Is(err, shared.ErrAlreadyExists))

	_, err = env.customers.FindByID(ctx, second.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	assert.Empty(t, env.addressesOf(t, second.OwnerRef()))

	// the same tax id may belong to a supplier
	supplier, err := partner.NewSupplier(partner.PartyTypeIndividual, "Maria da Silva", "52998224725")
	require.NoError(t, err)
	_, err = env.workflow.SaveSupplier(ctx, supplier, nil)
	require.NoError(t, err)
}
