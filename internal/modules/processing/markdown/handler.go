package markdown

import (
	"github.com/gin-gonic/gin"
	"github.com/homeline/storefront/internal/database"
	"github.com/homeline/storefront/internal/pkg/response"
)

type renderDTO struct {
	Text string `json:"text"`
}

type Handler struct {
	store *database.Store
}

func NewHandler(store *database.Store) *Handler { return &Handler{store: store} }

// RegisterRoutes mounts the editor tooling. Everything here is admin only.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/markdown", authMW)
	g.POST("/render", h.render)
	g.GET("/structure/:kind/:slug", h.structure)
	g.GET("/export", h.export)
}

func (h *Handler) render(c *gin.Context) {
	var dto renderDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	response.OK(c, gin.H{"html": Render(dto.Text)})
}

// GET /markdown/structure/:kind/:slug lists the headings of a document body.
func (h *Handler) structure(c *gin.Context) {
	doc, err := h.store.Get(c.Param("kind"), c.Param("slug"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{
		"kind":     doc.Kind,
		"slug":     doc.Slug,
		"headings": ExtractHeadings(doc.Content),
	})
}
