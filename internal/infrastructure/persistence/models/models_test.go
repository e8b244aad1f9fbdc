package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forniture-store/backend/internal/domain/address"
	"github.com/forniture-store/backend/internal/domain/partner"
)

func TestFoldText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"José", "jose"},
		{"  CONCEIÇÃO   da   Silva ", "conceicao da silva"},
		{"Móveis São João", "moveis sao joao"},
		{"", ""},
		{"123.456", "123.456"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FoldText(tt.in))
		})
	}
}

func TestSearchKey(t *testing.T) {
	assert.Equal(t, "acme moveis ltda acme 11222333000181", SearchKey("ACME Móveis LTDA", "Acme", "11222333000181"))
	assert.Equal(t, "maria", SearchKey("", "Maria", "  "))
}

func TestCustomerModel_RoundTrip(t *testing.T) {
	c, err := partner.NewCustomer(partner.PartyTypeCompany, "ACME Móveis LTDA", "11222333000181")
	require.NoError(t, err)
	c.PreferredName = "Acme"
	c.Email = "compras@acme.com.br"
	c.IsVIP = true
	c.Notes = "Entrega pela doca 2"

	m := CustomerModelFromDomain(c)
	assert.Equal(t, "customers", m.TableName())
	assert.Equal(t, "acme moveis ltda acme 11222333000181", m.SearchText)

	back := m.ToDomain()
	assert.Equal(t, c.ID, back.ID)
	assert.Equal(t, c.Party, back.Party)
	assert.True(t, back.IsVIP)
	assert.Equal(t, "Entrega pela doca 2", back.Notes)
	assert.Equal(t, c.RegistrationDate, back.RegistrationDate)
	assert.Equal(t, c.Version, back.Version)
}

func TestSupplierModel_RoundTrip(t *testing.T) {
	s, err := partner.NewSupplier(partner.PartyTypeCompany, "Madeireira Ltda", "11444777000161")
	require.NoError(t, err)
	s.StateRegistration = "ISENTO"
	s.BankAgency = "0001"

	m := SupplierModelFromDomain(s)
	assert.Equal(t, "suppliers", m.TableName())

	back := m.ToDomain()
	assert.Equal(t, s.ID, back.ID)
	assert.Equal(t, "ISENTO", back.StateRegistration)
	assert.Equal(t, "0001", back.BankAgency)
	assert.Equal(t, partner.PartyTypeCompany, back.Type)
}

func TestAddressModel_RoundTrip(t *testing.T) {
	owner := address.OwnerRef{Kind: address.OwnerKindCustomer, ID: uuid.New()}
	a, err := address.NewAddress(owner, address.Fields{
		PostalCode: "01310-100",
		Street:     "Avenida Paulista",
		City:       "São Paulo",
		State:      "SP",
	}, address.AddressTypeResidential)
	require.NoError(t, err)
	a.MarkPrimary()
	a.UpdatedAt = time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	m := AddressModelFromDomain(a)
	assert.Equal(t, "addresses", m.TableName())
	assert.Equal(t, address.OwnerKindCustomer, m.OwnerKind)
	assert.Equal(t, owner.ID, m.OwnerID)
	assert.Equal(t, "01310100", m.PostalCode)

	back := m.ToDomain()
	assert.Equal(t, owner, back.Owner)
	assert.Equal(t, a.Fields(), back.Fields())
	assert.True(t, back.IsPrimary)
	assert.True(t, back.IsActive)
	assert.Equal(t, a.UpdatedAt, back.UpdatedAt)
}
