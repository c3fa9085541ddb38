package contact

import (
	"github.com/gin-gonic/gin"
	"github.com/homeline/storefront/internal/pkg/response"
)

type Handler struct {
	svc    *Service
	guards []gin.HandlerFunc
}

// NewHandler wraps the public submit route with guards (rate limit,
// idempotence).
func NewHandler(svc *Service, guards ...gin.HandlerFunc) *Handler {
	return &Handler{svc: svc, guards: guards}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/contact")
	g.POST("", append(h.guards, h.submit)...)

	admin := g.Group("/messages", authMW)
	admin.GET("", h.list)
	admin.GET("/:slug", h.get)
	admin.PATCH("/:slug", h.markRead)
	admin.DELETE("/:slug", h.delete)
}

func (h *Handler) submit(c *gin.Context) {
	var sub Submission
	if err := c.ShouldBindJSON(&sub); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	msg, err := h.svc.Submit(c.Request.Context(), sub)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"slug": msg.Slug, "created": msg.Created})
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.svc.List(c.Query("unread") == "true")
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, items)
}

func (h *Handler) get(c *gin.Context) {
	msg, err := h.svc.Get(c.Param("slug"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, msg)
}

type readDTO struct {
	Read *bool `json:"read" binding:"required"`
}

func (h *Handler) markRead(c *gin.Context) {
	var dto readDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	msg, err := h.svc.MarkRead(c.Param("slug"), *dto.Read)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, msg)
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Param("slug")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
