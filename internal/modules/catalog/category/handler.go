package category

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
	cats := rg.Group("/categories")
	cats.GET("", h.list)
	cats.GET("/:slug", h.get)
	cats.GET("/:slug/products", h.listProducts)

	authed := cats.Group("", authMW)
	authed.POST("", h.create)
	authed.PUT("/:slug", h.update)
	authed.PATCH("/:slug", h.patch)
	authed.DELETE("/:slug", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	cats, err := h.svc.List()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, cats)
}

func (h *Handler) get(c *gin.Context) {
	cat, err := h.svc.Get(c.Param("slug"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, cat)
}

// listProducts returns the active products of a category, optionally
// narrowed to one subcategory.
func (h *Handler) listProducts(c *gin.Context) {
	slug := c.Param("slug")
	if _, err := h.svc.Get(slug); err != nil {
		response.Error(c, err)
		return
	}
	items, err := h.products.ByCategory(slug)
	if err != nil {
		response.Error(c, err)
		return
	}
	if sub := c.Query("subcategory"); sub != "" {
		filtered := items[:0]
		for _, p := range items {
			if p.Subcategory == sub {
				filtered = append(filtered, p)
			}
		}
		items = filtered
	}
	page, meta := pagination.Slice(items, pagination.FromContext(c))
	response.Paged(c, page, meta)
}

func (h *Handler) create(c *gin.Context) {
	var cat models.Category
	if err := c.ShouldBindJSON(&cat); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := h.svc.Create(&cat); err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, cat)
}

func (h *Handler) update(c *gin.Context) {
	var cat models.Category
	if err := c.ShouldBindJSON(&cat); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := h.svc.Update(c.Param("slug"), &cat); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, cat)
}

// patch decodes the body over the stored category so omitted fields keep their
// current values.
func (h *Handler) patch(c *gin.Context) {
	slug := c.Param("slug")
	cat, err := h.svc.Get(slug)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := c.ShouldBindJSON(cat); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := h.svc.Update(slug, cat); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, cat)
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Param("slug")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
