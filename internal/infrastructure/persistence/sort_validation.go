package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// PartySortFields contains allowed sort fields for customers and suppliers
var PartySortFields = map[string]bool{
	"id":                true,
	"created_at":        true,
	"updated_at":        true,
	"legal_name":        true,
	"preferred_name":    true,
	"tax_id":            true,
	"party_type":        true,
	"is_active":         true,
	"registration_date": true,
}

// CustomerSortFields adds customer-only columns to PartySortFields
var CustomerSortFields = withFields(PartySortFields, "is_vip", "profession")

// SupplierSortFields adds supplier-only columns to PartySortFields
var SupplierSortFields = withFields(PartySortFields, "contact_person", "state_registration")

func withFields(base map[string]bool, extra ...string) map[string]bool {
	out := make(map[string]bool, len(base)+len(extra))
	for k, v := range base {
		out[k] = v
	}
	for _, k := range extra {
		out[k] = true
	}
	return out
}
