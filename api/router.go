package api

import (
	"context"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

// Registrar mounts one resource under /api/v1/<Path>.
type Registrar interface {
	Path() string
	Register(router *gin.RouterGroup)
}

type RouterConfig struct {
	Log       *zap.Logger
	Tokens    TokenParser
	Auth      *AuthHandler
	Resources []Registrar
	// SwaggerDir holds doc.json; docs are served only when it is set.
	SwaggerDir  string
	HealthCheck func(ctx context.Context) error
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(RequestID(), Logger(cfg.Log), Metrics(), ErrorClassifier(cfg.Log))

	router.GET("/health", func(c *gin.Context) {
		if cfg.HealthCheck != nil {
			if err := cfg.HealthCheck(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if cfg.SwaggerDir != "" {
		router.StaticFile("/docs/doc.json", filepath.Join(cfg.SwaggerDir, "doc.json"))
		router.GET("/swagger/*any", gin.WrapH(httpSwagger.Handler(httpSwagger.URL("/docs/doc.json"))))
	}

	v1 := router.Group("/api/v1")
	cfg.Auth.Register(v1.Group("/Authentication"))

	secured := v1.Group("", Authenticate(cfg.Tokens))
	for _, r := range cfg.Resources {
		r.Register(secured.Group("/" + r.Path()))
	}
	return router
}
