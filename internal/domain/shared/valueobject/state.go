package valueobject

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/forniture-store/backend/internal/domain/shared"
)

// BrazilianStates lists the 27 federative unit codes (UF)
var BrazilianStates = map[string]string{
	"AC": "Acre", "AL": "Alagoas", "AP": "Amapá", "AM": "Amazonas", "BA": "Bahia",
	"CE": "Ceará", "DF": "Distrito Federal", "ES": "Espírito Santo", "GO": "Goiás",
	"MA": "Maranhão", "MT": "Mato Grosso", "MS": "Mato Grosso do Sul", "MG": "Minas Gerais",
	"PA": "Pará", "PB": "Paraíba", "PR": "Paraná", "PE": "Pernambuco", "PI": "Piauí",
	"RJ": "Rio de Janeiro", "RN": "Rio Grande do Norte", "RS": "Rio Grande do Sul",
	"RO": "Rondônia", "RR": "Roraima", "SC": "Santa Catarina", "SP": "São Paulo",
	"SE": "Sergipe", "TO": "Tocantins",
}

var upperPT = cases.Upper(language.BrazilianPortuguese)

// NormalizeState trims and upper-cases a UF code and checks it is a known state.
// Blank input normalizes to "".
func NormalizeState(raw string) (string, error) {
	uf := upperPT.String(strings.TrimSpace(raw))
	if uf == "" {
		return "", nil
	}
	if _, ok := BrazilianStates[uf]; !ok {
		return "", shared.NewDomainError(shared.CodeInvalidFormat, "State must be a valid 2-letter UF code")
	}
	return uf, nil
}
