package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"waitlist/internal/api/middleware"
	"waitlist/internal/config"
)

const shutdownTimeout = 10 * time.Second

type Server struct {
	engine *gin.Engine
	logger *logrus.Logger
}

func New(appEnv config.AppEnv, logger *logrus.Logger) *Server {
	switch appEnv {
	case config.ProductionEnv:
		gin.SetMode(gin.ReleaseMode)
	case config.TestEnv:
		gin.SetMode(gin.TestMode)
	}

	r := gin.New()
	r.RedirectTrailingSlash = false
	r.Use(gin.Recovery(), middleware.RequestLogger(logger))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
	}))

	return &Server{
		engine: r,
		logger: logger,
	}
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

// Serve blocks until ctx is done or the listener fails. On ctx cancellation
// in-flight requests get shutdownTimeout to finish.
func (s *Server) Serve(ctx context.Context, address string) error {
	srv := &http.Server{
		Addr:    address,
		Handler: s.engine,
	}

	s.logger.Info(fmt.Sprintf("rest server starting at: %s", address))
	srvError := make(chan error, 1)
	go func() {
		srvError <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("rest server is shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-srvError:
		return err
	}
}
