package partner

import (
	"github.com/forniture-store/backend/internal/domain/address"
	"github.com/forniture-store/backend/internal/domain/integration"
	"github.com/forniture-store/backend/internal/domain/partner"
)

// AddressAction is what a save does to the owner's primary address
type AddressAction string

const (
	// ActionUpsertFromCaller writes the address the caller sent
	ActionUpsertFromCaller AddressAction = "upsert_caller"
	// ActionUpsertFromLookup writes the address the company registry returned
	ActionUpsertFromLookup AddressAction = "upsert_lookup"
	// ActionDelete removes the current address
	ActionDelete AddressAction = "delete"
	// ActionKeep leaves the current address untouched
	ActionKeep AddressAction = "keep"
)

// Source names who supplied the address written by the action
func (a AddressAction) Source() string {
	switch a {
	case ActionUpsertFromCaller:
		return "caller"
	case ActionUpsertFromLookup:
		return "lookup"
	default:
		return ""
	}
}

// ResolveAddressAction decides the address step of a save.
//
// input is nil when the caller sent no address at all. A payload whose values
// are all blank after trimming is an explicit request to remove the address,
// for individuals and companies alike. Without a payload a company takes the
// registry address when one came back, and everything else keeps its address.
func ResolveAddressAction(input *address.Fields, partyType partner.PartyType, company *integration.CompanyProfile) AddressAction {
	if input != nil {
		if input.IsEmpty() {
			return ActionDelete
		}
		return ActionUpsertFromCaller
	}
	if partyType == partner.PartyTypeCompany && company.HasAddress() {
		return ActionUpsertFromLookup
	}
	return ActionKeep
}
