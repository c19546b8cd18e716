package handlers

import (
	"net/http"
	"sync/atomic"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"thumbforge/internal/config"
	domain "thumbforge/internal/domain/thumbnail"
	"thumbforge/internal/interfaces/httpserver/requests"
	"thumbforge/internal/interfaces/httpserver/responses"
	"thumbforge/internal/utils/platformerrors"
)

// ThumbnailHandler exposes the generation, history and catalog endpoints.
type ThumbnailHandler struct {
	cfg     *config.Config
	service *domain.Service
	log     zerolog.Logger

	// inFlight serializes generation: one attempt at a time, a second
	// request gets 409 instead of queueing behind a slow upstream.
	inFlight atomic.Bool
}

func NewThumbnailHandler(cfg *config.Config, service *domain.Service, log zerolog.Logger) *ThumbnailHandler {
	return &ThumbnailHandler{
		cfg:     cfg,
		service: service,
		log:     log.With().Str("component", "thumbnail-handler").Logger(),
	}
}

// Generate handles POST /v1/thumbnails.
func (h *ThumbnailHandler) Generate(c *gin.Context) {
	var req requests.GenerateThumbnailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		platformerrors.WriteValidationError(c, err.Error())
		return
	}

	domainReq, err := req.ToDomain(h.cfg.MaxReferenceBytes)
	if err != nil {
		platformerrors.WriteValidationError(c, err.Error())
		return
	}

	if !h.inFlight.CompareAndSwap(false, true) {
		platformerrors.WriteConflict(c, "a generation is already in progress, please wait for it to finish")
		return
	}
	defer h.inFlight.Store(false)

	result, err := h.service.Generate(c.Request.Context(), domainReq)
	if err != nil {
		platformerrors.WriteError(c, err, h.log)
		return
	}

	c.JSON(http.StatusOK, responses.GenerationResponse{
		Record:    result.Record,
		Credits:   result.Credits,
		Unlimited: result.Unlimited,
	})
}

// History handles GET /v1/thumbnails.
func (h *ThumbnailHandler) History(c *gin.Context) {
	records := h.service.History(c.Request.Context())
	if records == nil {
		records = []domain.GenerationRecord{}
	}
	c.JSON(http.StatusOK, responses.HistoryResponse{Records: records, Count: len(records)})
}

// Record handles GET /v1/thumbnails/:id.
func (h *ThumbnailHandler) Record(c *gin.Context) {
	record, err := h.service.Record(c.Request.Context(), c.Param("id"))
	if err != nil {
		platformerrors.WriteError(c, err, h.log)
		return
	}
	c.JSON(http.StatusOK, record)
}

// Catalog handles GET /v1/catalog.
func (h *ThumbnailHandler) Catalog(c *gin.Context) {
	models, styles := h.service.Catalog()
	c.JSON(http.StatusOK, responses.CatalogResponse{
		Backend: h.cfg.Backend,
		Models:  models,
		Styles:  styles,
	})
}
