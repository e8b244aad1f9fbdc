package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/forniture-store/backend/internal/domain/integration"
)

// ViaCEPProviderName identifies ViaCEP in logs and cached results
const ViaCEPProviderName = "viacep"

// viaCEPResponse is the body of GET /ws/{cep}/json/
type viaCEPResponse struct {
	CEP        string          `json:"cep"`
	Logradouro string          `json:"logradouro"`
	Bairro     string          `json:"bairro"`
	Localidade string          `json:"localidade"`
	UF         string          `json:"uf"`
	Erro       json.RawMessage `json:"erro,omitempty"`
}

// notFound reports ViaCEP's "erro" marker, sent as true or "true"
func (r *viaCEPResponse) notFound() bool {
	v := strings.Trim(string(r.Erro), `" `)
	return v == "true"
}

// ViaCEPProvider implements integration.PostalCodeProvider with ViaCEP
type ViaCEPProvider struct {
	http *httpClient
}

// NewViaCEPProvider creates a ViaCEP provider
func NewViaCEPProvider(cfg *Config) (*ViaCEPProvider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &ViaCEPProvider{http: newHTTPClient(ViaCEPProviderName, cfg.ViaCEPBaseURL, cfg)}, nil
}

// Name returns the provider name
func (p *ViaCEPProvider) Name() string {
	return ViaCEPProviderName
}

// LookupPostalCode resolves an 8 digit CEP
func (p *ViaCEPProvider) LookupPostalCode(ctx context.Context, postalCode string) (*integration.PostalAddress, error) {
	var resp viaCEPResponse
	if err := p.http.getJSON(ctx, fmt.Sprintf("/ws/%s/json/", postalCode), &resp); err != nil {
		return nil, err
	}
	if resp.notFound() {
		return nil, fmt.Errorf("%w: %s", integration.ErrLookupNotFound, ViaCEPProviderName)
	}

	return &integration.PostalAddress{
		PostalCode:   postalCode,
		Street:       strings.TrimSpace(resp.Logradouro),
		Neighborhood: strings.TrimSpace(resp.Bairro),
		City:         strings.TrimSpace(resp.Localidade),
		State:        strings.TrimSpace(resp.UF),
		Source:       ViaCEPProviderName,
	}, nil
}
