package valueobject

import (
	"github.com/forniture-store/backend/internal/domain/shared"
)

// PostalCodeLength is the digit count of a Brazilian CEP
const PostalCodeLength = 8

// NormalizePostalCode strips punctuation from a CEP and requires exactly 8 digits.
// An input without any digit normalizes to "" without error so callers can treat
// the field as absent.
func NormalizePostalCode(raw string) (string, error) {
	digits := OnlyDigits(raw)
	if digits == "" {
		return "", nil
	}
	if len(digits) != PostalCodeLength {
		return "", shared.NewDomainError(shared.CodeInvalidPostalCode, "Postal code must contain 8 digits")
	}
	return digits, nil
}

// FormatPostalCode renders an 8 digit CEP as 00000-000
func FormatPostalCode(digits string) string {
	if len(digits) != PostalCodeLength {
		return digits
	}
	return digits[:5] + "-" + digits[5:]
}
