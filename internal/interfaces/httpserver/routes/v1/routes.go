package v1

import (
	"github.com/gin-gonic/gin"

	"thumbforge/internal/interfaces/httpserver/handlers"
)

// Routes encapsulates versioned route registration.
type Routes struct {
	handlers *handlers.Provider
}

func NewRoutes(provider *handlers.Provider) *Routes {
	return &Routes{handlers: provider}
}

// Register attaches all v1 routes under the /v1 prefix.
func (r *Routes) Register(router gin.IRouter) {
	group := router.Group("/v1")

	group.POST("/thumbnails", r.handlers.Thumbnail.Generate)
	group.GET("/thumbnails", r.handlers.Thumbnail.History)
	group.GET("/thumbnails/:id", r.handlers.Thumbnail.Record)
	group.GET("/catalog", r.handlers.Thumbnail.Catalog)

	group.GET("/credits", r.handlers.Credential.Credits)
	group.GET("/credentials", r.handlers.Credential.Status)
	group.PUT("/credentials", r.handlers.Credential.Save)
	group.DELETE("/credentials", r.handlers.Credential.Clear)
}
