package models

import (
	"time"

	"github.com/forniture-store/backend/internal/domain/partner"
)

// PartyColumns holds the registration columns shared by customers and suppliers.
type PartyColumns struct {
	PartyType     partner.PartyType `gorm:"type:varchar(4);not null;default:'IND';index"`
	LegalName     string            `gorm:"type:varchar(100);not null"`
	PreferredName string            `gorm:"type:varchar(50)"`
	TaxID         string            `gorm:"type:varchar(14);not null;uniqueIndex"`
	Phone         string            `gorm:"type:varchar(11)"`
	Email         string            `gorm:"type:varchar(254)"`
	IsActive      bool              `gorm:"not null;index"`
	SearchText    string            `gorm:"type:text"`
}

func (c *PartyColumns) fromDomain(p partner.Party) {
	c.PartyType = p.Type
	c.LegalName = p.LegalName
	c.PreferredName = p.PreferredName
	c.TaxID = p.TaxID
	c.Phone = p.Phone
	c.Email = p.Email
	c.IsActive = p.IsActive
	c.SearchText = SearchKey(p.LegalName, p.PreferredName, p.TaxID)
}

func (c *PartyColumns) toDomain() partner.Party {
	return partner.Party{
		Type:          c.PartyType,
		LegalName:     c.LegalName,
		PreferredName: c.PreferredName,
		TaxID:         c.TaxID,
		Phone:         c.Phone,
		Email:         c.Email,
		IsActive:      c.IsActive,
	}
}

// CustomerModel is the persistence model for the Customer domain entity.
type CustomerModel struct {
	AggregateModel
	PartyColumns     `gorm:"embedded"`
	IsVIP            bool      `gorm:"not null"`
	Profession       string    `gorm:"type:varchar(50)"`
	Interests        string    `gorm:"type:text"`
	Notes            string    `gorm:"type:text"`
	RegistrationDate time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the persistence model to a domain Customer entity.
func (m *CustomerModel) ToDomain() *partner.Customer {
	return &partner.Customer{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Party:             m.PartyColumns.toDomain(),
		IsVIP:             m.IsVIP,
		Profession:        m.Profession,
		Interests:         m.Interests,
		Notes:             m.Notes,
		RegistrationDate:  m.RegistrationDate,
	}
}

// FromDomain populates the persistence model from a domain Customer entity.
func (m *CustomerModel) FromDomain(c *partner.Customer) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.PartyColumns.fromDomain(c.Party)
	m.IsVIP = c.IsVIP
	m.Profession = c.Profession
	m.Interests = c.Interests
	m.Notes = c.Notes
	m.RegistrationDate = c.RegistrationDate
}

// CustomerModelFromDomain creates a new persistence model from a domain Customer entity.
func CustomerModelFromDomain(c *partner.Customer) *CustomerModel {
	m := &CustomerModel{}
	m.FromDomain(c)
	return m
}

// SupplierModel is the persistence model for the Supplier domain entity.
type SupplierModel struct {
	AggregateModel
	PartyColumns          `gorm:"embedded"`
	StateRegistration     string    `gorm:"type:varchar(20)"`
	MunicipalRegistration string    `gorm:"type:varchar(20)"`
	ContactPerson         string    `gorm:"type:varchar(100)"`
	BankName              string    `gorm:"type:varchar(50)"`
	BankAgency            string    `gorm:"type:varchar(10)"`
	BankAccount           string    `gorm:"type:varchar(20)"`
	PixKey                string    `gorm:"type:varchar(100)"`
	Notes                 string    `gorm:"type:text"`
	RegistrationDate      time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (SupplierModel) TableName() string {
	return "suppliers"
}

// ToDomain converts the persistence model to a domain Supplier entity.
func (m *SupplierModel) ToDomain() *partner.Supplier {
	return &partner.Supplier{
		BaseAggregateRoot:     m.ToDomainAggregateRoot(),
		Party:                 m.PartyColumns.toDomain(),
		StateRegistration:     m.StateRegistration,
		MunicipalRegistration: m.MunicipalRegistration,
		ContactPerson:         m.ContactPerson,
		BankName:              m.BankName,
		BankAgency:            m.BankAgency,
		BankAccount:           m.BankAccount,
		PixKey:                m.PixKey,
		Notes:                 m.Notes,
		RegistrationDate:      m.RegistrationDate,
	}
}

// FromDomain populates the persistence model from a domain Supplier entity.
func (m *SupplierModel) FromDomain(s *partner.Supplier) {
	m.FromDomainAggregateRoot(s.BaseAggregateRoot)
	m.PartyColumns.fromDomain(s.Party)
	m.StateRegistration = s.StateRegistration
	m.MunicipalRegistration = s.MunicipalRegistration
	m.ContactPerson = s.ContactPerson
	m.BankName = s.BankName
	m.BankAgency = s.BankAgency
	m.BankAccount = s.BankAccount
	m.PixKey = s.PixKey
	m.Notes = s.Notes
	m.RegistrationDate = s.RegistrationDate
}

// SupplierModelFromDomain creates a new persistence model from a domain Supplier entity.
func SupplierModelFromDomain(s *partner.Supplier) *SupplierModel {
	m := &SupplierModel{}
	m.FromDomain(s)
	return m
}
