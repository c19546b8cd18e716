// Package responses holds the HTTP response shapes.
package responses

import (
	domain "thumbforge/internal/domain/thumbnail"
)

// GenerationResponse is returned by POST /v1/thumbnails.
type GenerationResponse struct {
	Record    domain.GenerationRecord `json:"record"`
	Credits   int                     `json:"credits"`
	Unlimited bool                    `json:"unlimited"`
}

// HistoryResponse is returned by GET /v1/thumbnails.
type HistoryResponse struct {
	Records []domain.GenerationRecord `json:"records"`
	Count   int                       `json:"count"`
}

// CreditsResponse is returned by GET /v1/credits.
type CreditsResponse struct {
	Credits   int  `json:"credits"`
	Unlimited bool `json:"unlimited"`
}

// CredentialStatusResponse reports which credential fields are stored.
// Secret values never leave the ledger.
type CredentialStatusResponse struct {
	HasAPIKey     bool `json:"hasApiKey"`
	HasImageToken bool `json:"hasImageToken"`
}

// CatalogResponse is returned by GET /v1/catalog.
type CatalogResponse struct {
	Backend string               `json:"backend"`
	Models  []domain.ModelOption `json:"models"`
	Styles  []string             `json:"styles"`
}
