package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	domain "thumbforge/internal/domain/thumbnail"
	"thumbforge/internal/interfaces/httpserver/requests"
	"thumbforge/internal/interfaces/httpserver/responses"
	"thumbforge/internal/utils/platformerrors"
)

// CredentialHandler exposes credential management and the credit counter.
type CredentialHandler struct {
	service *domain.Service
	log     zerolog.Logger
}

func NewCredentialHandler(service *domain.Service, log zerolog.Logger) *CredentialHandler {
	return &CredentialHandler{
		service: service,
		log:     log.With().Str("component", "credential-handler").Logger(),
	}
}

// Save handles PUT /v1/credentials.
func (h *CredentialHandler) Save(c *gin.Context) {
	var req requests.SaveCredentialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		platformerrors.WriteValidationError(c, err.Error())
		return
	}

	if err := h.service.SaveCredential(c.Request.Context(), req.ToDomain()); err != nil {
		platformerrors.WriteError(c, err, h.log)
		return
	}
	h.Status(c)
}

// Clear handles DELETE /v1/credentials. Removing the credential also
// restores the free credit allotment.
func (h *CredentialHandler) Clear(c *gin.Context) {
	if err := h.service.ClearCredential(c.Request.Context()); err != nil {
		platformerrors.WriteError(c, err, h.log)
		return
	}
	h.Status(c)
}

// Status handles GET /v1/credentials.
func (h *CredentialHandler) Status(c *gin.Context) {
	hasAPIKey, hasImageToken := h.service.CredentialShape(c.Request.Context())
	c.JSON(http.StatusOK, responses.CredentialStatusResponse{
		HasAPIKey:     hasAPIKey,
		HasImageToken: hasImageToken,
	})
}

// Credits handles GET /v1/credits.
func (h *CredentialHandler) Credits(c *gin.Context) {
	credits, unlimited := h.service.CreditStatus(c.Request.Context())
	c.JSON(http.StatusOK, responses.CreditsResponse{
		Credits:   credits,
		Unlimited: unlimited,
	})
}
