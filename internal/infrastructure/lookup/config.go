package lookup

import (
	"errors"
	"time"
)

const (
	// DefaultViaCEPBaseURL is the public ViaCEP endpoint
	DefaultViaCEPBaseURL = "https://viacep.com.br"
	// DefaultBrasilAPIBaseURL is the public BrasilAPI endpoint
	DefaultBrasilAPIBaseURL = "https://brasilapi.com.br"
	// DefaultTimeout bounds a single provider call
	DefaultTimeout = 2 * time.Second
	// DefaultUserAgent identifies this client to providers
	DefaultUserAgent = "forniture-store-backend/1.0"
)

// ErrInvalidTimeout is returned when a negative timeout is configured
var ErrInvalidTimeout = errors.New("lookup: timeout cannot be negative")

// Config holds the endpoints and limits of the lookup providers
type Config struct {
	// ViaCEPBaseURL is the base URL of the ViaCEP service
	ViaCEPBaseURL string
	// BrasilAPIBaseURL is the base URL of BrasilAPI (CEP and CNPJ)
	BrasilAPIBaseURL string
	// Timeout bounds each HTTP call
	Timeout time.Duration
	// UserAgent is sent with every request
	UserAgent string
}

// DefaultConfig returns a configuration pointing at the public services
func DefaultConfig() *Config {
	return &Config{
		ViaCEPBaseURL:    DefaultViaCEPBaseURL,
		BrasilAPIBaseURL: DefaultBrasilAPIBaseURL,
		Timeout:          DefaultTimeout,
		UserAgent:        DefaultUserAgent,
	}
}

// Validate checks the configuration and fills defaults for blank values
func (c *Config) Validate() error {
	if c.Timeout < 0 {
		return ErrInvalidTimeout
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	if c.ViaCEPBaseURL == "" {
		c.ViaCEPBaseURL = DefaultViaCEPBaseURL
	}
	if c.BrasilAPIBaseURL == "" {
		c.BrasilAPIBaseURL = DefaultBrasilAPIBaseURL
	}
	if c.UserAgent == "" {
		c.UserAgent = DefaultUserAgent
	}
	return nil
}
