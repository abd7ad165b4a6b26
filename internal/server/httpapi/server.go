// Package httpapi exposes the catalog and auth operations over HTTP using
// gin, translating service results and sentinel errors into status codes.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mkragh/cereald/internal/common"
	"github.com/mkragh/cereald/internal/logging"
	"github.com/mkragh/cereald/internal/server/config"
	"github.com/mkragh/cereald/internal/server/services"
)

type HTTPServer struct {
	address     string
	logger      logging.Logger
	users       *services.UserService
	cereals     *services.CerealService
	jwtSecret   []byte
	jwtIssuer   string
	jwtAudience string
}

func NewHTTPServer(l logging.Logger, us *services.UserService, cs *services.CerealService, cfg *config.Config) *HTTPServer {
	return &HTTPServer{
		address:     cfg.EndpointAddrHTTP,
		logger:      l.With("module", "http_server"),
		users:       us,
		cereals:     cs,
		jwtSecret:   []byte(cfg.SecretKey),
		jwtIssuer:   cfg.JWTIssuer,
		jwtAudience: cfg.JWTAudience,
	}
}

// Router builds the gin engine with all routes attached. Read-only catalog
// endpoints are open; mutating ones go through the access guard and the
// admin role check.
func (s *HTTPServer) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	api := r.Group("/api")

	api.POST("/auth/login", s.login)

	api.GET("/cereals", s.listCereals)
	api.GET("/cereals/:id", s.getCereal)

	protected := api.Group("/cereals")
	protected.Use(s.authenticate(), s.requireRole(common.RoleAdmin))
	protected.POST("", s.createCereal)
	protected.PUT("/:id", s.updateCereal)
	protected.DELETE("/:id", s.deleteCereal)

	return r
}

// Run serves HTTP until the context is cancelled, then shuts down
// gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Router(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
