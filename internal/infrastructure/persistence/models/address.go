package models

import (
	"github.com/google/uuid"

	"github.com/forniture-store/backend/internal/domain/address"
)

// AddressModel is the persistence model for the Address domain entity.
// idx_addresses_single_primary is partial: at most one primary row per owner.
type AddressModel struct {
	AggregateModel
	OwnerKind    address.OwnerKind   `gorm:"type:varchar(16);not null;index:idx_addresses_owner,priority:1;uniqueIndex:idx_addresses_single_primary,priority:1,where:is_primary"`
	OwnerID      uuid.UUID           `gorm:"type:uuid;not null;index:idx_addresses_owner,priority:2;uniqueIndex:idx_addresses_single_primary,priority:2,where:is_primary"`
	AddressType  address.AddressType `gorm:"type:varchar(16);not null"`
	Street       string              `gorm:"type:varchar(100)"`
	Number       string              `gorm:"type:varchar(10)"`
	Complement   string              `gorm:"type:varchar(100)"`
	Neighborhood string              `gorm:"type:varchar(50)"`
	City         string              `gorm:"type:varchar(50)"`
	State        string              `gorm:"type:varchar(2)"`
	PostalCode   string              `gorm:"type:varchar(8);index"`
	Country      string              `gorm:"type:varchar(50);not null;default:'Brasil'"`
	IsPrimary    bool                `gorm:"not null"`
	IsActive     bool                `gorm:"not null"`
}

// TableName returns the table name for GORM
func (AddressModel) TableName() string {
	return "addresses"
}

// ToDomain converts the persistence model to a domain Address entity.
func (m *AddressModel) ToDomain() *address.Address {
	return &address.Address{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Owner:             address.OwnerRef{Kind: m.OwnerKind, ID: m.OwnerID},
		Type:              m.AddressType,
		Street:            m.Street,
		Number:            m.Number,
		Complement:        m.Complement,
		Neighborhood:      m.Neighborhood,
		City:              m.City,
		State:             m.State,
		PostalCode:        m.PostalCode,
		Country:           m.Country,
		IsPrimary:         m.IsPrimary,
		IsActive:          m.IsActive,
	}
}

// FromDomain populates the persistence model from a domain Address entity.
func (m *AddressModel) FromDomain(a *address.Address) {
	m.FromDomainAggregateRoot(a.BaseAggregateRoot)
	m.OwnerKind = a.Owner.Kind
	m.OwnerID = a.Owner.ID
	m.AddressType = a.Type
	m.Street = a.Street
	m.Number = a.Number
	m.Complement = a.Complement
	m.Neighborhood = a.Neighborhood
	m.City = a.City
	m.State = a.State
	m.PostalCode = a.PostalCode
	m.Country = a.Country
	m.IsPrimary = a.IsPrimary
	m.IsActive = a.IsActive
}

// AddressModelFromDomain creates a new persistence model from a domain Address entity.
func AddressModelFromDomain(a *address.Address) *AddressModel {
	m := &AddressModel{}
	m.FromDomain(a)
	return m
}
