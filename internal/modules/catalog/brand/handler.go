package brand

import (
	"github.com/gin-gonic/gin"
	"github.com/homeline/storefront/internal/models"
	"github.com/homeline/storefront/internal/modules/catalog/product"
	"github.com/homeline/storefront/internal/pkg/pagination"
	"github.com/homeline/storefront/internal/pkg/response"
)

type Handler struct {
	svc      *Service
	products *product.Service
}

func NewHandler(svc *Service, products *product.Service) *Handler {
	return &Handler{svc: svc, products: products}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/brands")
	g.GET("", h.list)
	g.GET("/:slug", h.get)
	g.GET("/:slug/products", h.listProducts)

	authed := g.Group("", authMW)
	authed.POST("", h.create)
	authed.PUT("/:slug", h.update)
	authed.PATCH("/:slug", h.patch)
	authed.DELETE("/:slug", h.delete)
}

// list accepts ?country= to narrow the listing.
func (h *Handler) list(c *gin.Context) {
	var (
		items []*models.Brand
		err   error
	)
	if country := c.Query("country"); country != "" {
		items, err = h.svc.ByCountry(country)
	} else {
		items, err = h.svc.List()
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, items)
}

func (h *Handler) get(c *gin.Context) {
	b, err := h.svc.Get(c.Param("slug"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, b)
}

func (h *Handler) listProducts(c *gin.Context) {
	slug := c.Param("slug")
	if _, err := h.svc.Get(slug); err != nil {
		response.Error(c, err)
		return
	}
	items, err := h.products.ByBrand(slug)
	if err != nil {
		response.Error(c, err)
		return
	}
	page, meta := pagination.Slice(items, pagination.FromContext(c))
	response.Paged(c, page, meta)
}

func (h *Handler) create(c *gin.Context) {
	var b models.Brand
	if err := c.ShouldBindJSON(&b); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := h.svc.Create(&b); err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, b)
}

func (h *Handler) update(c *gin.Context) {
	var b models.Brand
	if err := c.ShouldBindJSON(&b); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := h.svc.Update(c.Param("slug"), &b); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, b)
}

// patch decodes the body over the stored brand so omitted fields keep their
// current values.
func (h *Handler) patch(c *gin.Context) {
	slug := c.Param("slug")
	b, err := h.svc.Get(slug)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := c.ShouldBindJSON(b); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := h.svc.Update(slug, b); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, b)
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Param("slug")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
