// Package transport serves the pipeline over HTTP and websockets.
package transport

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.trai.ch/nanoindent/internal/core/domain"
	"go.trai.ch/nanoindent/internal/core/ports"
	"go.trai.ch/nanoindent/internal/registry"
	"go.trai.ch/zerr"
)

const shutdownTimeout = 5 * time.Second

// Config carries the collaborators of a Server.
type Config struct {
	Pipeline    ports.Pipeline
	Registry    *registry.Registry
	Metrics     http.Handler
	Logger      ports.Logger
	ServiceName string
}

// Server routes client requests to the pipeline.
type Server struct {
	pipeline ports.Pipeline
	registry *registry.Registry
	logger   ports.Logger
	router   *gin.Engine
	upgrader websocket.Upgrader
}

// New builds the router.
func New(cfg Config) *Server {
	gin.SetMode(gin.ReleaseMode)
	s := &Server{
		pipeline: cfg.Pipeline,
		registry: cfg.Registry,
		logger:   cfg.Logger,
		router:   gin.New(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1 << 16,
			WriteBufferSize: 1 << 16,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}

	s.router.Use(gin.Recovery(), otelgin.Middleware(cfg.ServiceName), s.logRequests)
	s.router.GET("/healthz", s.health)
	s.router.GET("/algorithms", s.algorithms)
	s.router.POST("/process", s.process)
	s.router.GET("/ws", s.serveWS)
	s.router.GET("/ws/data", s.serveWS)
	if cfg.Metrics != nil {
		s.router.GET("/metrics", gin.WrapH(cfg.Metrics))
	}
	return s
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return zerr.With(zerr.Wrap(err, domain.ErrServerFailed.Error()), "addr", addr)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return zerr.Wrap(err, domain.ErrServerFailed.Error())
		}
		return nil
	}
}

func (s *Server) logRequests(c *gin.Context) {
	start := time.Now()
	c.Next()
	s.logger.Info("request",
		"method", c.Request.Method,
		"path", c.FullPath(),
		"status", c.Writer.Status(),
		"duration", time.Since(start),
	)
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) algorithms(c *gin.Context) {
	c.JSON(http.StatusOK, s.registry.Catalog())
}

func (s *Server) process(c *gin.Context) {
	var req domain.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, zerr.Wrap(domain.ErrInvalidRequest, err.Error()))
		return
	}
	resp, err := s.pipeline.Process(c.Request.Context(), &req)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	if domain.IsConfigurationError(err) {
		status = http.StatusBadRequest
	} else {
		s.logger.Error(err)
	}
	c.JSON(status, errorMessage(err))
}
