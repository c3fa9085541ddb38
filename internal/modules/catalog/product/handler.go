package product

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/homeline/storefront/internal/middleware"
	"github.com/homeline/storefront/internal/models"
	"github.com/homeline/storefront/internal/pkg/pagination"
	"github.com/homeline/storefront/internal/pkg/query"
	"github.com/homeline/storefront/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/products")
	g.GET("", h.list)
	g.GET("/featured", h.featured)
	g.GET("/new", h.newArrivals)
	g.GET("/:slug", h.get)
	g.GET("/:slug/related", h.related)

	authed := g.Group("", authMW)
	authed.POST("", h.create)
	authed.PUT("/:slug", h.update)
	authed.PATCH("/:slug", h.patch)
	authed.DELETE("/:slug", h.delete)
}

// list serves search and faceted filtering. Admins may pass all=true to
// include inactive products.
func (h *Handler) list(c *gin.Context) {
	criteria := CriteriaFromContext(c)

	var (
		items []*models.Product
		err   error
	)
	if c.Query("all") == "true" && middleware.IsAdmin(c) {
		items, err = h.svc.List()
		if err == nil && !criteria.Empty() {
			items = query.Where(items, criteria.Predicates()...)
		}
	} else {
		items, err = h.svc.Filter(criteria)
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	page, meta := pagination.Slice(items, pagination.FromContext(c))
	response.Paged(c, page, meta)
}

func (h *Handler) featured(c *gin.Context) {
	items, err := h.svc.Featured()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, items)
}

func (h *Handler) newArrivals(c *gin.Context) {
	items, err := h.svc.New()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, items)
}

func (h *Handler) get(c *gin.Context) {
	var (
		p   *models.Product
		err error
	)
	if middleware.IsAdmin(c) {
		p, err = h.svc.Get(c.Param("slug"))
	} else {
		p, err = h.svc.GetActive(c.Param("slug"))
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, p)
}

func (h *Handler) related(c *gin.Context) {
	n, _ := strconv.Atoi(c.Query("limit"))
	items, err := h.svc.Related(c.Param("slug"), n)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, items)
}

func (h *Handler) create(c *gin.Context) {
	p, ok := bind(c)
	if !ok {
		return
	}
	if err := h.svc.Create(p); err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, p)
}

func (h *Handler) update(c *gin.Context) {
	p, ok := bind(c)
	if !ok {
		return
	}
	if err := h.svc.Update(c.Param("slug"), p); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, p)
}

// patch decodes the body over the stored product so omitted fields keep their
// current values.
func (h *Handler) patch(c *gin.Context) {
	slug := c.Param("slug")
	p, err := h.svc.Get(slug)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := c.ShouldBindJSON(p); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := h.svc.Update(slug, p); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, p)
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Param("slug")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// bind decodes the request body over a defaulted product, so omitted flags
// keep their document defaults.
func bind(c *gin.Context) (*models.Product, bool) {
	p := models.NewProduct()
	if err := c.ShouldBindJSON(p); err != nil {
		response.BadRequest(c, err.Error())
		return nil, false
	}
	return p, true
}
