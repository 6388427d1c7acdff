package portal

import (
	"net/http"
	"time"

	"github.com/Domenick1991/flightdesk/internal/session"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type RouterConfig struct {
	Log        *zap.Logger
	Sessions   session.Store
	Cookie     string
	SessionTTL time.Duration
	Handler    *Handler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	app := router.Group("", Sessions(cfg.Sessions, cfg.Cookie, cfg.SessionTTL, cfg.Log))
	cfg.Handler.Register(app)
	return router
}
