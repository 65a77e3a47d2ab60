package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/amity-sujit/quadroute/config"
	"github.com/amity-sujit/quadroute/internal/api/handlers"
	"github.com/amity-sujit/quadroute/internal/api/middleware"
	"github.com/amity-sujit/quadroute/internal/metrics"
	"github.com/amity-sujit/quadroute/internal/search"
	"github.com/amity-sujit/quadroute/internal/services"
	"github.com/amity-sujit/quadroute/internal/tracing"
)

// Server represents the HTTP server
type Server struct {
	config          config.Config
	router          *gin.Engine
	httpServer      *http.Server
	deliveryService *services.DeliveryService
	tenantService   *services.TenantService
	dairyService    *services.DairyService
	elastic         *search.ElasticClient
	metrics         *metrics.Metrics
	tracer          tracing.Tracer
}

// NewServer creates a new HTTP server
func NewServer(
	cfg config.Config,
	deliveryService *services.DeliveryService,
	tenantService *services.TenantService,
	dairyService *services.DairyService,
	elastic *search.ElasticClient,
	m *metrics.Metrics,
	tracer tracing.Tracer,
) *Server {
	server := &Server{
		config:          cfg,
		deliveryService: deliveryService,
		tenantService:   tenantService,
		dairyService:    dairyService,
		elastic:         elastic,
		metrics:         m,
		tracer:          tracer,
	}

	router := server.setupRouter()
	server.router = router

	httpServer := &http.Server{
		Addr:         cfg.ServerAddress,
		Handler:      router,
		ReadTimeout:  cfg.ServerTimeout,
		WriteTimeout: cfg.ServerTimeout,
	}
	server.httpServer = httpServer

	return server
}

// setupRouter configures the HTTP router
func (s *Server) setupRouter() *gin.Engine {
	if s.config.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.Metrics(s.metrics))

	handlers.NewCustomerHandler(s.deliveryService, s.tracer).RegisterRoutes(router)
	handlers.NewStoreHandler(s.deliveryService).RegisterRoutes(router)
	handlers.NewVehicleHandler(s.deliveryService).RegisterRoutes(router)
	handlers.NewOrderHandler(s.deliveryService, s.tracer).RegisterRoutes(router)
	handlers.NewTenantHandler(s.tenantService).RegisterRoutes(router)
	handlers.NewDairyHandler(s.dairyService).RegisterRoutes(router)
	if s.elastic != nil {
		handlers.NewSearchHandler(s.elastic).RegisterRoutes(router)
	}
	handlers.NewMetricsHandler(s.metrics).RegisterRoutes(router)

	return router
}

// Start starts the HTTP server
func (s *Server) Start() error {
	log.Info().Str("address", s.config.ServerAddress).Msg("Starting HTTP server")

	if err := s.httpServer.ListenAndServe(); err != nil {
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrap(err, "HTTP server error")
	}

	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	log.Info().Msg("Shutting down HTTP server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "HTTP server shutdown error")
	}

	log.Info().Msg("HTTP server shut down successfully")
	return nil
}
