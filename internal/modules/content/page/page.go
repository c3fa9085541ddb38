package page

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/homeline/storefront/internal/database"
	"github.com/homeline/storefront/internal/models"
	"github.com/homeline/storefront/internal/pkg/pagination"
	"github.com/homeline/storefront/internal/pkg/query"
	"github.com/homeline/storefront/internal/pkg/response"
)

// Kind is the content directory of static pages.
const Kind = "pages"

const dateLayout = "2006-01-02"

type Service struct {
	coll *database.Collection[*models.Page]
	now  func() time.Time
}

func NewService(store *database.Store) *Service {
	return &Service{
		coll: database.NewCollection(store, Kind, models.NewPage, func(a, b *models.Page) int {
			return query.CompareFold(a.Title, b.Title)
		}),
		now: time.Now,
	}
}

// List returns every page sorted by title.
func (s *Service) List() ([]*models.Page, error) { return s.coll.List() }

func (s *Service) GetBySlug(slug string) (*models.Page, error) { return s.coll.Get(slug) }

// Check reports documents that listings skip.
func (s *Service) Check() ([]database.Problem, error) { return s.coll.Check() }

// Create derives the slug from the title and stamps lastUpdated when either
// is left empty.
func (s *Service) Create(p *models.Page) error {
	if strings.TrimSpace(p.Slug) == "" {
		p.Slug = database.Slugify(p.Title)
	}
	s.stamp(p)
	return s.coll.Create(p)
}

// Update always moves lastUpdated to today.
func (s *Service) Update(slug string, p *models.Page) error {
	p.LastUpdated = s.today()
	return s.coll.Update(slug, p)
}

func (s *Service) Delete(slug string) error { return s.coll.Delete(slug) }

func (s *Service) stamp(p *models.Page) {
	if strings.TrimSpace(p.LastUpdated) == "" {
		p.LastUpdated = s.today()
	}
}

func (s *Service) today() string { return s.now().Format(dateLayout) }

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/pages")
	g.GET("", h.list)
	g.GET("/:slug", h.getBySlug)

	a := g.Group("", authMW)
	a.POST("", h.create)
	a.PUT("/:slug", h.update)
	a.PATCH("/:slug", h.patch)
	a.DELETE("/:slug", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	pages, err := h.svc.List()
	if err != nil {
		response.Error(c, err)
		return
	}
	items, pag := pagination.Slice(pages, pagination.FromContext(c))
	response.Paged(c, items, pag)
}

func (h *Handler) getBySlug(c *gin.Context) {
	p, err := h.svc.GetBySlug(c.Param("slug"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, p)
}

func (h *Handler) create(c *gin.Context) {
	var p models.Page
	if err := c.ShouldBindJSON(&p); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := h.svc.Create(&p); err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, p)
}

func (h *Handler) update(c *gin.Context) {
	var p models.Page
	if err := c.ShouldBindJSON(&p); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := h.svc.Update(c.Param("slug"), &p); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, p)
}

// patch decodes the body over the stored page so omitted fields keep their
// current values.
func (h *Handler) patch(c *gin.Context) {
	slug := c.Param("slug")
	p, err := h.svc.GetBySlug(slug)
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
