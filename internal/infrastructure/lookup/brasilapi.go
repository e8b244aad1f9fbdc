package lookup

import (
	"context"
	"fmt"
	"strings"

	"github.com/forniture-store/backend/internal/domain/address"
	"github.com/forniture-store/backend/internal/domain/integration"
)

// Provider names for BrasilAPI endpoints
const (
	BrasilAPICEPProviderName  = "brasilapi-cep"
	BrasilAPICNPJProviderName = "brasilapi-cnpj"
)

// brasilAPICEPResponse is the body of GET /api/cep/v1/{cep}
type brasilAPICEPResponse struct {
	CEP          string `json:"cep"`
	State        string `json:"state"`
	City         string `json:"city"`
	Neighborhood string `json:"neighborhood"`
	Street       string `json:"street"`
}

// brasilAPICNPJResponse is the subset of GET /api/cnpj/v1/{cnpj} we use
type brasilAPICNPJResponse struct {
	CNPJ                string `json:"cnpj"`
	RazaoSocial         string `json:"razao_social"`
	NomeFantasia        string `json:"nome_fantasia"`
	CEP                 string `json:"cep"`
	TipoLogradouro      string `json:"descricao_tipo_de_logradouro"`
	Logradouro          string `json:"logradouro"`
	Numero              string `json:"numero"`
	Complemento         string `json:"complemento"`
	Bairro              string `json:"bairro"`
	Municipio           string `json:"municipio"`
	UF                  string `json:"uf"`
	InscricoesEstaduais []struct {
		InscricaoEstadual string `json:"inscricao_estadual"`
		Ativo             bool   `json:"ativo"`
	} `json:"inscricoes_estaduais"`
}

// BrasilAPICEPProvider implements integration.PostalCodeProvider with BrasilAPI
type BrasilAPICEPProvider struct {
	http *httpClient
}

// NewBrasilAPICEPProvider creates a BrasilAPI CEP provider
func NewBrasilAPICEPProvider(cfg *Config) (*BrasilAPICEPProvider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &BrasilAPICEPProvider{http: newHTTPClient(BrasilAPICEPProviderName, cfg.BrasilAPIBaseURL, cfg)}, nil
}

// Name returns the provider name
func (p *BrasilAPICEPProvider) Name() string {
	return BrasilAPICEPProviderName
}

// LookupPostalCode resolves an 8 digit CEP
func (p *BrasilAPICEPProvider) LookupPostalCode(ctx context.Context, postalCode string) (*integration.PostalAddress, error) {
	var resp brasilAPICEPResponse
	if err := p.http.getJSON(ctx, "/api/cep/v1/"+postalCode, &resp); err != nil {
		return nil, err
	}
	return &integration.PostalAddress{
		PostalCode:   postalCode,
		Street:       strings.TrimSpace(resp.Street),
		Neighborhood: strings.TrimSpace(resp.Neighborhood),
		City:         strings.TrimSpace(resp.City),
		State:        strings.TrimSpace(resp.State),
		Source:       BrasilAPICEPProviderName,
	}, nil
}

// BrasilAPICNPJRegistry implements integration.CompanyRegistry with BrasilAPI
type BrasilAPICNPJRegistry struct {
	http *httpClient
}

// NewBrasilAPICNPJRegistry creates a BrasilAPI CNPJ registry client
func NewBrasilAPICNPJRegistry(cfg *Config) (*BrasilAPICNPJRegistry, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &BrasilAPICNPJRegistry{http: newHTTPClient(BrasilAPICNPJProviderName, cfg.BrasilAPIBaseURL, cfg)}, nil
}

// Name returns the provider name
func (r *BrasilAPICNPJRegistry) Name() string {
	return BrasilAPICNPJProviderName
}

// LookupCompany resolves a 14 digit CNPJ
func (r *BrasilAPICNPJRegistry) LookupCompany(ctx context.Context, taxID string) (*integration.CompanyProfile, error) {
	var resp brasilAPICNPJResponse
	if err := r.http.getJSON(ctx, "/api/cnpj/v1/"+taxID, &resp); err != nil {
		return nil, err
	}
	if strings.TrimSpace(resp.RazaoSocial) == "" && strings.TrimSpace(resp.NomeFantasia) == "" {
		return nil, fmt.Errorf("%w: %s", integration.ErrLookupNotFound, BrasilAPICNPJProviderName)
	}

	street := strings.TrimSpace(resp.Logradouro)
	if kind := strings.TrimSpace(resp.TipoLogradouro); kind != "" && street != "" &&
		!strings.HasPrefix(strings.ToUpper(street), strings.ToUpper(kind)) {
		street = kind + " " + street
	}

	profile := &integration.CompanyProfile{
		TaxID:         taxID,
		LegalName:     strings.TrimSpace(resp.RazaoSocial),
		PreferredName: strings.TrimSpace(resp.NomeFantasia),
		Address: address.Fields{
			PostalCode:   strings.TrimSpace(resp.CEP),
			Street:       street,
			Number:       strings.TrimSpace(resp.Numero),
			Complement:   strings.TrimSpace(resp.Complemento),
			Neighborhood: strings.TrimSpace(resp.Bairro),
			City:         strings.TrimSpace(resp.Municipio),
			State:        strings.TrimSpace(resp.UF),
		},
	}
	for _, ie := range resp.InscricoesEstaduais {
		if ie.Ativo && strings.TrimSpace(ie.InscricaoEstadual) != "" {
			profile.StateRegistration = strings.TrimSpace(ie.InscricaoEstadual)
			break
		}
	}
	return profile, nil
}
