package handlers

import (
	"github.com/rs/zerolog"

	"thumbforge/internal/config"
	domain "thumbforge/internal/domain/thumbnail"
)

// Provider wires HTTP handlers.
type Provider struct {
	Thumbnail  *ThumbnailHandler
	Credential *CredentialHandler
}

func NewProvider(cfg *config.Config, service *domain.Service, log zerolog.Logger) *Provider {
	return &Provider{
		Thumbnail:  NewThumbnailHandler(cfg, service, log),
		Credential: NewCredentialHandler(service, log),
	}
}
