package address

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/forniture-store/backend/internal/domain/shared"
	"github.com/forniture-store/backend/internal/domain/shared/valueobject"
)

// AddressType classifies what an address is used for
type AddressType string

const (
	AddressTypeCommercial  AddressType = "COMMERCIAL"
	AddressTypeResidential AddressType = "RESIDENTIAL"
	AddressTypeBilling     AddressType = "BILLING"
	AddressTypeDelivery    AddressType = "DELIVERY"
	AddressTypeMessage     AddressType = "MESSAGE"
	AddressTypeOther       AddressType = "OTHER"
)

// IsValid reports whether t is one of the known address types
func (t AddressType) IsValid() bool {
	switch t {
	case AddressTypeCommercial, AddressTypeResidential, AddressTypeBilling,
		AddressTypeDelivery, AddressTypeMessage, AddressTypeOther:
		return true
	}
	return false
}

// DefaultCountry is stored when the caller leaves the country blank
const DefaultCountry = "Brasil"

// Field length limits
const (
	maxStreetLength       = 100
	maxNumberLength       = 10
	maxComplementLength   = 100
	maxNeighborhoodLength = 50
	maxCityLength         = 50
	maxCountryLength      = 50
)

// OwnerKind tags which kind of entity owns an address
type OwnerKind string

const (
	OwnerKindCustomer OwnerKind = "customer"
	OwnerKindSupplier OwnerKind = "supplier"
)

// OwnerRef identifies the single owner of an address
type OwnerRef struct {
	Kind OwnerKind
	ID   uuid.UUID
}

// Validate checks that the reference names a known kind and a concrete id
func (r OwnerRef) Validate() error {
	if r.Kind != OwnerKindCustomer && r.Kind != OwnerKindSupplier {
		return shared.NewDomainError("INVALID_OWNER", "Unknown address owner kind")
	}
	if r.ID == uuid.Nil {
		return shared.NewDomainError("INVALID_OWNER", "Address owner id is required")
	}
	return nil
}

// String renders the reference as kind:id
func (r OwnerRef) String() string {
	return string(r.Kind) + ":" + r.ID.String()
}

// Fields carries address data supplied by a caller or an external provider.
// Blank values mean "not provided".
type Fields struct {
	PostalCode   string      `json:"postal_code,omitempty"`
	Street       string      `json:"street,omitempty"`
	Number       string      `json:"number,omitempty"`
	Complement   string      `json:"complement,omitempty"`
	Neighborhood string      `json:"neighborhood,omitempty"`
	City         string      `json:"city,omitempty"`
	State        string      `json:"state,omitempty"`
	Country      string      `json:"country,omitempty"`
	Type         AddressType `json:"address_type,omitempty"`
}

// Trimmed returns a copy with surrounding whitespace removed from every value
func (f Fields) Trimmed() Fields {
	return Fields{
		PostalCode:   strings.TrimSpace(f.PostalCode),
		Street:       strings.TrimSpace(f.Street),
		Number:       strings.TrimSpace(f.Number),
		Complement:   strings.TrimSpace(f.Complement),
		Neighborhood: strings.TrimSpace(f.Neighborhood),
		City:         strings.TrimSpace(f.City),
		State:        strings.TrimSpace(f.State),
		Country:      strings.TrimSpace(f.Country),
		Type:         AddressType(strings.TrimSpace(string(f.Type))),
	}
}

// IsEmpty reports whether every value is blank after trimming
func (f Fields) IsEmpty() bool {
	return f.Trimmed() == Fields{}
}

// Address is a location attached to exactly one owner.
// At most one address per owner has IsPrimary set.
type Address struct {
	shared.BaseAggregateRoot
	Owner        OwnerRef
	Type         AddressType
	Street       string
	Number       string
	Complement   string
	Neighborhood string
	City         string
	State        string
	PostalCode   string
	Country      string
	IsPrimary    bool
	IsActive     bool
}

// NewAddress creates an active, non-primary address for owner from fields.
// defaultType is used when fields does not carry a type.
func NewAddress(owner OwnerRef, fields Fields, defaultType AddressType) (*Address, error) {
	if err := owner.Validate(); err != nil {
		return nil, err
	}

	addr := &Address{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Owner:             owner,
		IsActive:          true,
	}
	if err := addr.apply(fields, defaultType); err != nil {
		return nil, err
	}
	return addr, nil
}

// Replace overwrites every location field with fields (update in place)
func (a *Address) Replace(fields Fields, defaultType AddressType) error {
	if err := a.apply(fields, defaultType); err != nil {
		return err
	}
	a.Touch()
	return nil
}

// MarkPrimary flags the address as the owner's canonical one
func (a *Address) MarkPrimary() {
	if a.IsPrimary {
		return
	}
	a.IsPrimary = true
	a.MarkUpdated()
}

// Demote clears the primary flag
func (a *Address) Demote() {
	if !a.IsPrimary {
		return
	}
	a.IsPrimary = false
	a.MarkUpdated()
}

// Fields returns the address data in caller form
func (a *Address) Fields() Fields {
	return Fields{
		PostalCode:   a.PostalCode,
		Street:       a.Street,
		Number:       a.Number,
		Complement:   a.Complement,
		Neighborhood: a.Neighborhood,
		City:         a.City,
		State:        a.State,
		Country:      a.Country,
		Type:         a.Type,
	}
}

// FormattedPostalCode renders the CEP as 00000-000
func (a *Address) FormattedPostalCode() string {
	return valueobject.FormatPostalCode(a.PostalCode)
}

// FullAddress renders the address on a single line, skipping blank parts
func (a *Address) FullAddress() string {
	var parts []string

	line := a.Street
	if a.Number != "" {
		line = joinNonEmpty(", ", line, a.Number)
	}
	if a.Complement != "" {
		line = joinNonEmpty(" - ", line, a.Complement)
	}
	if line != "" {
		parts = append(parts, line)
	}
	if a.Neighborhood != "" {
		parts = append(parts, a.Neighborhood)
	}

	cityState := joinNonEmpty("/", a.City, a.State)
	if cityState != "" {
		parts = append(parts, cityState)
	}
	if a.PostalCode != "" {
		parts = append(parts, "CEP "+a.FormattedPostalCode())
	}
	return strings.Join(parts, " - ")
}

func (a *Address) apply(fields Fields, defaultType AddressType) error {
	f := fields.Trimmed()
	verrs := make(shared.ValidationErrors)

	postalCode, err := valueobject.NormalizePostalCode(f.PostalCode)
	verrs.Add("postal_code", err)

	state, err := valueobject.NormalizeState(f.State)
	verrs.Add("state", err)

	checkLength(verrs, "street", f.Street, maxStreetLength)
	checkLength(verrs, "number", f.Number, maxNumberLength)
	checkLength(verrs, "complement", f.Complement, maxComplementLength)
	checkLength(verrs, "neighborhood", f.Neighborhood, maxNeighborhoodLength)
	checkLength(verrs, "city", f.City, maxCityLength)
	checkLength(verrs, "country", f.Country, maxCountryLength)

	addrType := f.Type
	if addrType == "" {
		addrType = defaultType
	}
	if addrType == "" {
		addrType = AddressTypeOther
	}
	if !addrType.IsValid() {
		verrs.AddMessage("address_type", "Unknown address type")
	}

	if err := verrs.Err(); err != nil {
		return err
	}

	country := f.Country
	if country == "" {
		country = DefaultCountry
	}

	a.Type = addrType
	a.Street = f.Street
	a.Number = f.Number
	a.Complement = f.Complement
	a.Neighborhood = f.Neighborhood
	a.City = f.City
	a.State = state
	a.PostalCode = postalCode
	a.Country = country
	return nil
}

func checkLength(verrs shared.ValidationErrors, field, value string, limit int) {
	if len([]rune(value)) > limit {
		verrs.Add(field, shared.NewDomainError(shared.CodeInvalidFormat,
			fmt.Sprintf("%s cannot exceed %d characters", field, limit)))
	}
}

func joinNonEmpty(sep string, values ...string) string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return strings.Join(out, sep)
}
