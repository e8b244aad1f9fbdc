package valueobject

import (
	"fmt"

	"github.com/forniture-store/backend/internal/domain/shared"
)

// TaxIDKind identifies a Brazilian national tax identifier format
type TaxIDKind string

const (
	TaxIDKindCPF  TaxIDKind = "CPF"  // Individual, 11 digits
	TaxIDKindCNPJ TaxIDKind = "CNPJ" // Company, 14 digits
)

// CPFLength and CNPJLength are the digit counts after normalization
const (
	CPFLength  = 11
	CNPJLength = 14
)

var (
	cnpjFirstWeights  = []int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	cnpjSecondWeights = []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
)

// Length returns the number of digits required for the kind
func (k TaxIDKind) Length() int {
	switch k {
	case TaxIDKindCPF:
		return CPFLength
	case TaxIDKindCNPJ:
		return CNPJLength
	default:
		return 0
	}
}

// NormalizeAndValidateTaxID strips every non-digit from raw and checks the
// length and check digits required by kind. It returns the digits-only id.
func NormalizeAndValidateTaxID(raw string, kind TaxIDKind) (string, error) {
	digits := OnlyDigits(raw)
	if digits == "" {
		return "", shared.NewDomainError(shared.CodeMissingRequiredField, "Tax ID (CPF/CNPJ) is required")
	}

	want := kind.Length()
	if want == 0 {
		return "", shared.NewDomainError(shared.CodeInvalidFormat, fmt.Sprintf("Unknown tax ID kind %q", kind))
	}
	if len(digits) != want {
		return "", shared.NewDomainError(shared.CodeInvalidFormat,
			fmt.Sprintf("Invalid %s: must contain %d digits", kind, want))
	}

	var ok bool
	switch kind {
	case TaxIDKindCPF:
		ok = validCPF(digits)
	case TaxIDKindCNPJ:
		ok = validCNPJ(digits)
	}
	if !ok {
		return "", shared.NewDomainError(shared.CodeInvalidChecksum, fmt.Sprintf("Invalid %s", kind))
	}

	return digits, nil
}

// IsValidCPF reports whether raw normalizes to a valid CPF
func IsValidCPF(raw string) bool {
	_, err := NormalizeAndValidateTaxID(raw, TaxIDKindCPF)
	return err == nil
}

// IsValidCNPJ reports whether raw normalizes to a valid CNPJ
func IsValidCNPJ(raw string) bool {
	_, err := NormalizeAndValidateTaxID(raw, TaxIDKindCNPJ)
	return err == nil
}

// FormatTaxID applies the display mask for 11 (CPF) or 14 (CNPJ) digit ids.
// Any other input is returned unchanged.
func FormatTaxID(digits string) string {
	switch len(digits) {
	case CPFLength:
		return digits[:3] + "." + digits[3:6] + "." + digits[6:9] + "-" + digits[9:]
	case CNPJLength:
		return digits[:2] + "." + digits[2:5] + "." + digits[5:8] + "/" + digits[8:12] + "-" + digits[12:]
	default:
		return digits
	}
}

func validCPF(digits string) bool {
	if repeatedDigits(digits) {
		return false
	}
	d := toInts(digits)
	first := checkDigit(d[:9], descendingWeights(10, 9))
	if d[9] != first {
		return false
	}
	second := checkDigit(d[:10], descendingWeights(11, 10))
	return d[10] == second
}

func validCNPJ(digits string) bool {
	if repeatedDigits(digits) {
		return false
	}
	d := toInts(digits)
	if d[12] != checkDigit(d[:12], cnpjFirstWeights) {
		return false
	}
	return d[13] == checkDigit(d[:13], cnpjSecondWeights)
}

// checkDigit computes a modulo 11 check digit; remainders 0 and 1 map to 0
func checkDigit(digits, weights []int) int {
	sum := 0
	for i, d := range digits {
		sum += d * weights[i]
	}
	r := sum % 11
	if r < 2 {
		return 0
	}
	return 11 - r
}

func descendingWeights(start, n int) []int {
	w := make([]int, n)
	for i := range w {
		w[i] = start - i
	}
	return w
}

func repeatedDigits(digits string) bool {
	for i := 1; i < len(digits); i++ {
		if digits[i] != digits[0] {
			return false
		}
	}
	return true
}

func toInts(digits string) []int {
	out := make([]int, len(digits))
	for i := 0; i < len(digits); i++ {
		out[i] = int(digits[i] - '0')
	}
	return out
}
