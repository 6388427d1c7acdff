package portal

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/Domenick1991/flightdesk/internal/apperr"
	"github.com/Domenick1991/flightdesk/internal/gateway"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	client   *gateway.Client
	pageSize int
	log      *zap.Logger
}

type signInRequest struct {
	UserName string `json:"userName" form:"userName" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

func NewHandler(client *gateway.Client, pageSize int, log *zap.Logger) *Handler {
	return &Handler{client: client, pageSize: pageSize, log: log}
}

func (h *Handler) Register(router *gin.RouterGroup) {
	router.POST("/signin", h.signIn)
	router.POST("/signout", h.signOut)

	resources := router.Group("/resources/:name", requireSignIn)
	resources.GET("", h.list)
	resources.GET("/:id", h.get)
	resources.DELETE("/:id", h.delete)
}

func (h *Handler) signIn(c *gin.Context) {
	var req signInRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user name and password are required"})
		return
	}

	if err := h.client.SignIn(c.Request.Context(), req.UserName, req.Password); err != nil {
		if errors.Is(err, apperr.ErrUnauthorized) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		h.fail(c, err)
		return
	}
	renewCookie(c)
	c.JSON(http.StatusOK, gin.H{"signedIn": true, "userName": req.UserName})
}

func (h *Handler) signOut(c *gin.Context) {
	if err := h.client.SignOut(c.Request.Context()); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) list(c *gin.Context) {
	resource, ok := h.resource(c)
	if !ok {
		return
	}
	page, pageSize, ok := h.pageParams(c)
	if !ok {
		return
	}

	filters := map[string]string{}
	for _, key := range []string{"name", "from", "to", "minPrice", "maxPrice"} {
		if v := c.Query(key); v != "" {
			filters[key] = v
		}
	}

	result, err := gateway.List[json.RawMessage](c.Request.Context(), h.client, resource, page, pageSize, filters)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) get(c *gin.Context) {
	resource, ok := h.resource(c)
	if !ok {
		return
	}
	id, ok := h.id(c)
	if !ok {
		return
	}

	entity, err := gateway.Get[json.RawMessage](c.Request.Context(), h.client, resource, id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, entity)
}

func (h *Handler) delete(c *gin.Context) {
	resource, ok := h.resource(c)
	if !ok {
		return
	}
	id, ok := h.id(c)
	if !ok {
		return
	}

	deleted, err := h.client.Delete(c.Request.Context(), resource, id)
	if err != nil {
		h.fail(c, err)
		return
	}
	if !deleted {
		c.JSON(http.StatusConflict, gin.H{"error": "cannot delete, still referenced"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) resource(c *gin.Context) (gateway.Resource, bool) {
	r, err := gateway.ParseResource(c.Param("name"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return "", false
	}
	return r, true
}

func (h *Handler) pageParams(c *gin.Context) (int, int, bool) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid page"})
		return 0, 0, false
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("pageSize", strconv.Itoa(h.pageSize)))
	if err != nil || pageSize < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid pageSize"})
		return 0, 0, false
	}
	return page, pageSize, true
}

func (h *Handler) id(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func (h *Handler) fail(c *gin.Context, err error) {
	var statusErr *gateway.StatusError
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.As(err, &statusErr) && statusErr.Status == http.StatusUnauthorized:
		c.JSON(http.StatusUnauthorized, gin.H{"error": "session expired, sign in again"})
	case errors.As(err, &statusErr) && statusErr.Status == http.StatusBadRequest:
		c.JSON(http.StatusBadRequest, gin.H{"error": "resource service rejected the request", "status": statusErr.Status})
	case errors.As(err, &statusErr):
		c.JSON(http.StatusBadGateway, gin.H{"error": "resource service rejected the request", "status": statusErr.Status})
	default:
		h.log.Error("portal request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "resource service unavailable"})
	}
}
