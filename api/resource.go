package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/Domenick1991/flightdesk/internal/apperr"
	"github.com/Domenick1991/flightdesk/internal/domain"
	"github.com/Domenick1991/flightdesk/internal/pagination"
	"github.com/Domenick1991/flightdesk/internal/patch"
	"github.com/Domenick1991/flightdesk/internal/repository"
	"github.com/Domenick1991/flightdesk/internal/service/resource"
	"github.com/gin-gonic/gin"
)

// Capabilities lists the mutations a resource exposes. Listing and reading by
// id are always available.
type Capabilities struct {
	Create  bool
	Replace bool
	Patch   bool
	Delete  bool
}

var FullAccess = Capabilities{Create: true, Replace: true, Patch: true, Delete: true}

type HandlerOption func(*handlerSettings)

type handlerSettings struct {
	caps       Capabilities
	readRoles  []string
	writeRoles []string
}

func WithCapabilities(caps Capabilities) HandlerOption {
	return func(s *handlerSettings) {
		s.caps = caps
	}
}

// WithRoles restricts reads and writes. An empty read list admits any
// authenticated caller.
func WithRoles(read, write []string) HandlerOption {
	return func(s *handlerSettings) {
		s.readRoles = read
		s.writeRoles = write
	}
}

type ResourceHandler[T any] struct {
	name            string
	path            string
	service         resource.UseCase[T]
	defaultPageSize int
	settings        handlerSettings
}

func NewResourceHandler[T any](name, path string, service resource.UseCase[T], defaultPageSize int, opts ...HandlerOption) *ResourceHandler[T] {
	settings := handlerSettings{
		caps:       FullAccess,
		writeRoles: []string{domain.RoleAdmin, domain.RoleSuperAdmin},
	}
	for _, opt := range opts {
		opt(&settings)
	}
	return &ResourceHandler[T]{
		name:            name,
		path:            path,
		service:         service,
		defaultPageSize: defaultPageSize,
		settings:        settings,
	}
}

func (h *ResourceHandler[T]) Path() string { return h.path }

func (h *ResourceHandler[T]) Register(router *gin.RouterGroup) {
	read := RequireRole(h.settings.readRoles...)
	write := RequireRole(h.settings.writeRoles...)

	router.GET("", read, h.list)
	router.GET("/:id", read, h.get)
	if h.settings.caps.Create {
		router.POST("", write, h.create)
	}
	if h.settings.caps.Replace {
		router.PUT("/:id", write, h.replace)
	}
	if h.settings.caps.Patch {
		router.PATCH("/:id", write, h.patch)
	}
	if h.settings.caps.Delete {
		router.DELETE("/:id", write, h.delete)
	}
}

func (h *ResourceHandler[T]) list(c *gin.Context) {
	page, pageSize, err := pageParams(c, h.defaultPageSize)
	if err != nil {
		fail(c, err)
		return
	}
	criteria, err := criteriaParams(c)
	if err != nil {
		fail(c, err)
		return
	}

	result, err := h.service.List(c.Request.Context(), page, pageSize, criteria)
	if err != nil {
		fail(c, err)
		return
	}
	if result.TotalCount == 0 {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *ResourceHandler[T]) get(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		fail(c, err)
		return
	}
	entity, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, entity)
}

func (h *ResourceHandler[T]) create(c *gin.Context) {
	var entity T
	if err := bindJSON(c, &entity); err != nil {
		fail(c, err)
		return
	}
	created, err := h.service.Create(c.Request.Context(), &entity)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *ResourceHandler[T]) replace(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		fail(c, err)
		return
	}
	var entity T
	if err := bindJSON(c, &entity); err != nil {
		fail(c, err)
		return
	}
	if err := h.service.Replace(c.Request.Context(), id, &entity); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ResourceHandler[T]) patch(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		fail(c, err)
		return
	}
	body, err := c.GetRawData()
	if err != nil {
		fail(c, apperr.BadArgument("read body: %v", err))
		return
	}
	doc, err := patch.Decode(body)
	if err != nil {
		fail(c, err)
		return
	}

	patched, err := h.service.Patch(c.Request.Context(), id, doc)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, patched)
}

func (h *ResourceHandler[T]) delete(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		fail(c, err)
		return
	}
	outcome, err := h.service.Delete(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}

	switch outcome {
	case domain.Deleted:
		c.Status(http.StatusNoContent)
	case domain.NotFound:
		c.AbortWithStatus(http.StatusNotFound)
	case domain.Referenced:
		c.AbortWithStatusJSON(http.StatusConflict, apperr.Response{
			ResponseCode:    http.StatusConflict,
			ResponseMessage: fmt.Sprintf("Conflict: %s is referenced in other records and cannot be deleted.", h.name),
		})
	}
}

func idParam(c *gin.Context) (int64, error) {
	raw := c.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, apperr.BadArgument("invalid id %q", raw)
	}
	return id, nil
}

// pageParams reads page and pageSize. Unparseable values are pagination
// failures like out-of-range ones.
func pageParams(c *gin.Context, defaultPageSize int) (int, int, error) {
	page, pageSize := 1, defaultPageSize
	if raw, ok := c.GetQuery("page"); ok {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return 0, 0, pagination.ErrInvalid
		}
		page = v
	}
	if raw, ok := c.GetQuery("pageSize"); ok {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return 0, 0, pagination.ErrInvalid
		}
		pageSize = v
	}
	return page, pageSize, nil
}

func criteriaParams(c *gin.Context) (repository.Criteria, error) {
	criteria := repository.Criteria{Name: c.Query("name")}

	for param, target := range map[string]**domain.Date{"from": &criteria.From, "to": &criteria.To} {
		raw := c.Query(param)
		if raw == "" {
			continue
		}
		d, err := domain.ParseDate(raw)
		if err != nil {
			return repository.Criteria{}, apperr.BadArgument("%s: %v", param, err)
		}
		*target = &d
	}

	for param, target := range map[string]**float64{"minPrice": &criteria.MinPrice, "maxPrice": &criteria.MaxPrice} {
		raw := c.Query(param)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return repository.Criteria{}, apperr.BadArgument("%s: invalid number %q", param, raw)
		}
		*target = &v
	}
	return criteria, nil
}
