package backup

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/homeline/storefront/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/backups", authMW)
	g.GET("", h.list)
	g.POST("", h.create)
	g.GET("/:filename", h.download)
	g.DELETE("/:filename", h.delete)
}

// GET /backups
func (h *Handler) list(c *gin.Context) {
	items, err := h.svc.List()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, items)
}

// POST /backups runs a backup now. An upload failure is reported with the
// local archive that was still written.
func (h *Handler) create(c *gin.Context) {
	art, err := h.svc.Run(c.Request.Context())
	if err != nil {
		if art != nil {
			c.JSON(http.StatusBadGateway, gin.H{"ok": 0, "code": http.StatusBadGateway, "message": err.Error(), "backup": art})
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Created(c, art)
}

// GET /backups/:filename
func (h *Handler) download(c *gin.Context) {
	full, err := h.svc.Path(c.Param("filename"))
	if err != nil {
		if os.IsNotExist(err) {
			response.NotFound(c)
			return
		}
		response.BadRequest(c, err.Error())
		return
	}
	c.FileAttachment(full, c.Param("filename"))
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Param("filename")); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	response.NoContent(c)
}
