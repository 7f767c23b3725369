package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/spec-kit/admin-console/internal/config"
	"github.com/spec-kit/admin-console/internal/domain"
)

// ErrInvalidCEP marks a postal code rejected before any network call.
var ErrInvalidCEP = errors.New("cep must have 8 digits")

// ErrCEPNotFound marks a well-formed code ViaCEP knows nothing about.
var ErrCEPNotFound = errors.New("cep not found")

// CEP looks up Brazilian postal codes on the public ViaCEP service. It
// deliberately has its own HTTP client: lookups are unauthenticated and
// must never carry the bearer token to a third party.
type CEP struct {
	baseURL string
	http    *http.Client
}

// NewCEP builds the lookup client.
func NewCEP(cfg config.APIConfig) *CEP {
	return &CEP{
		baseURL: strings.TrimRight(cfg.CEPBaseURL, "/"),
		http:    &http.Client{Timeout: cfg.RequestTimeout()},
	}
}

type viaCEPResponse struct {
	Erro       bool   `json:"erro"`
	CEP        string `json:"cep"`
	Logradouro string `json:"logradouro"`
	Bairro     string `json:"bairro"`
	Localidade string `json:"localidade"`
	UF         string `json:"uf"`
}

// Lookup resolves a postal code to an address. The code may carry the usual
// punctuation ("01310-100"); anything but its digits is stripped first.
func (c *CEP) Lookup(ctx context.Context, code string) (*domain.Address, error) {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, code)
	if len(digits) != 8 {
		return nil, ErrInvalidCEP
	}

	url := fmt.Sprintf("%s/ws/%s/json/", c.baseURL, digits)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cep lookup: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cep lookup: unexpected status %d", resp.StatusCode)
	}

	var payload viaCEPResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("cep lookup: %w", err)
	}
	if payload.Erro {
		return nil, ErrCEPNotFound
	}

	addr := &domain.Address{
		CEP:      payload.CEP,
		Street:   payload.Logradouro,
		District: payload.Bairro,
		City:     payload.Localidade,
		State:    payload.UF,
	}
	if addr.CEP == "" {
		addr.CEP = digits
	}
	return addr, nil
}
