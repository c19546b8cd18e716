// Package httpserver assembles the gin engine, middleware stack and
// routes, and owns graceful shutdown of the listener.
package httpserver

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"thumbforge/internal/config"
	domain "thumbforge/internal/domain/thumbnail"
	"thumbforge/internal/interfaces/httpserver/handlers"
	"thumbforge/internal/interfaces/httpserver/middlewares"
	v1 "thumbforge/internal/interfaces/httpserver/routes/v1"
)

// HttpServer wraps the gin engine with graceful shutdown helpers.
type HttpServer struct {
	cfg    *config.Config
	engine *gin.Engine
	log    zerolog.Logger
}

// New constructs the HTTP server with default middleware and routes.
func New(cfg *config.Config, log zerolog.Logger, service *domain.Service) *HttpServer {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(
		gin.Recovery(),
		middlewares.RequestID(),
		middlewares.Logging(log),
		middlewares.Metrics(),
	)

	handlerProvider := handlers.NewProvider(cfg, service, log)
	routeProvider := v1.NewRoutes(handlerProvider)
	registerCoreRoutes(engine, cfg, routeProvider)

	return &HttpServer{
		cfg:    cfg,
		engine: engine,
		log:    log,
	}
}

// Engine exposes the router for tests.
func (s *HttpServer) Engine() *gin.Engine {
	return s.engine
}

// Run starts the HTTP listener and handles graceful shutdown via context
// cancellation.
func (s *HttpServer) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:    s.cfg.Addr(),
		Handler: s.engine,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.cfg.Addr()).Str("backend", s.cfg.Backend).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		s.log.Info().Msg("context cancelled, shutting down HTTP server")
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func registerCoreRoutes(engine *gin.Engine, cfg *config.Config, routes *v1.Routes) {
	engine.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"service": cfg.ServiceName, "status": "ok"})
	})
	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	engine.GET("/readyz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
	engine.GET("/privacy", func(c *gin.Context) {
		c.String(http.StatusOK, privacyPolicy)
	})
	engine.GET("/terms", func(c *gin.Context) {
		c.String(http.StatusOK, termsOfService)
	})

	routes.Register(engine.Group("/"))
}

const privacyPolicy = `Privacy Policy

This service stores nothing about you on remote servers. Generation
history, the free credit counter and any API credentials you provide are
kept in a local database on the machine running the service. Credentials
are only ever sent to the provider they belong to (Google, Groq or
Hugging Face) to fulfil a generation you requested. No cookies, no
tracking, no analytics.
`

const termsOfService = `Terms of Service

The service is provided as-is, without warranty of any kind. Generated
images are produced by third-party models; you are responsible for
ensuring your use of them complies with the providers' terms and with
applicable law. Free credits are a courtesy and may change. When you use
your own API keys, the provider's pricing and terms apply.
`
