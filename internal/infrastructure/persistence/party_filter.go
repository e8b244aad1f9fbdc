package persistence

import (
	"gorm.io/gorm"

	"github.com/forniture-store/backend/internal/domain/partner"
	"github.com/forniture-store/backend/internal/domain/shared"
	"github.com/forniture-store/backend/internal/domain/shared/valueobject"
	"github.com/forniture-store/backend/internal/infrastructure/persistence/models"
)

// minDigitSearch is the shortest digit run treated as a tax id prefix search
const minDigitSearch = 3

// applyPartyWhere applies search and the shared party filters.
// Search is accent and case insensitive on names; a run of digits also
// matches the start of the tax id, so "529.982" finds 52998224725.
func applyPartyWhere(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if key := models.FoldText(filter.Search); key != "" {
		pattern := "%" + key + "%"
		if digits := valueobject.OnlyDigits(filter.Search); len(digits) >= minDigitSearch {
			query = query.Where("search_text LIKE ? OR tax_id LIKE ?", pattern, digits+"%")
		} else {
			query = query.Where("search_text LIKE ?", pattern)
		}
	}

	for key, value := range filter.Filters {
		switch key {
		case partner.FilterPartyType:
			query = query.Where("party_type = ?", value)
		case partner.FilterIsActive:
			query = query.Where("is_active = ?", value)
		}
	}
	return query
}

// applyPage applies ordering and pagination
func applyPage(query *gorm.DB, filter shared.Filter, sortFields map[string]bool) *gorm.DB {
	orderBy := ValidateSortField(filter.OrderBy, sortFields, "registration_date")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir)).Order("id ASC")

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}
	return query
}
