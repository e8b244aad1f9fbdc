package valueobject

import (
	"github.com/forniture-store/backend/internal/domain/shared"
)

// NormalizePhone keeps only digits; a present phone must have 10 (landline)
// or 11 (mobile) digits including the area code.
func NormalizePhone(raw string) (string, error) {
	digits := OnlyDigits(raw)
	if digits == "" {
		return "", nil
	}
	if len(digits) != 10 && len(digits) != 11 {
		return "", shared.NewDomainError(shared.CodeInvalidFormat, "Phone must have 10 or 11 digits")
	}
	return digits, nil
}

// FormatPhone renders (00) 0000-0000 or (00) 00000-0000
func FormatPhone(digits string) string {
	switch len(digits) {
	case 10:
		return "(" + digits[:2] + ") " + digits[2:6] + "-" + digits[6:]
	case 11:
		return "(" + digits[:2] + ") " + digits[2:7] + "-" + digits[7:]
	default:
		return digits
	}
}
