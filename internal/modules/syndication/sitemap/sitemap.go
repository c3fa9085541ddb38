package sitemap

import (
	"encoding/xml"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/homeline/storefront/internal/database"
	"github.com/homeline/storefront/internal/modules/catalog/brand"
	"github.com/homeline/storefront/internal/modules/catalog/category"
	"github.com/homeline/storefront/internal/modules/catalog/collection"
	"github.com/homeline/storefront/internal/modules/catalog/product"
	"github.com/homeline/storefront/internal/modules/content/page"
	"go.uber.org/zap"
)

const xmlns = "http://www.sitemaps.org/schemas/sitemap/0.9"

type urlset struct {
	XMLName xml.Name `xml:"urlset"`
	Xmlns   string   `xml:"xmlns,attr"`
	URLs    []entry  `xml:"url"`
}

type entry struct {
	Loc        string  `xml:"loc"`
	LastMod    string  `xml:"lastmod,omitempty"`
	ChangeFreq string  `xml:"changefreq"`
	Priority   float64 `xml:"priority"`
}

// section maps one content kind to a public URL prefix.
type section struct {
	kind       string
	prefix     string
	changeFreq string
	priority   float64
	// visible reports whether a document belongs in the sitemap.
	visible func(*database.Document) bool
}

var sections = []section{
	{kind: product.Kind, prefix: "/products/", changeFreq: "weekly", priority: 0.8, visible: activeOnly},
	{kind: category.Kind, prefix: "/categories/", changeFreq: "weekly", priority: 0.7},
	{kind: collection.Kind, prefix: "/collections/", changeFreq: "weekly", priority: 0.6},
	{kind: brand.Kind, prefix: "/brands/", changeFreq: "monthly", priority: 0.5},
	{kind: page.Kind, prefix: "/", changeFreq: "monthly", priority: 0.5},
}

// activeOnly hides products whose frontmatter sets active: false.
func activeOnly(doc *database.Document) bool {
	flags := struct {
		Active *bool `yaml:"active"`
	}{}
	if err := doc.Decode(&flags); err != nil {
		return false
	}
	return flags.Active == nil || *flags.Active
}

type Handler struct {
	store   *database.Store
	siteURL string
	logger  *zap.Logger
	now     func() time.Time
}

func NewHandler(store *database.Store, siteURL string, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		store:   store,
		siteURL: strings.TrimRight(strings.TrimSpace(siteURL), "/"),
		logger:  logger,
		now:     time.Now,
	}
}

// RegisterRoutes mounts the sitemap on rg, normally the engine root.
func (h *Handler) RegisterRoutes(rg gin.IRoutes) {
	rg.GET("/sitemap.xml", h.render)
	rg.GET("/sitemap", h.render)
}

func (h *Handler) render(c *gin.Context) {
	body, err := h.Build()
	if err != nil {
		h.logger.Error("build sitemap", zap.Error(err))
		c.String(http.StatusInternalServerError, "error generating sitemap")
		return
	}
	c.Data(http.StatusOK, "application/xml; charset=utf-8", body)
}

// Build renders the sitemap document for every public URL of the store.
func (h *Handler) Build() ([]byte, error) {
	set := urlset{Xmlns: xmlns}
	set.URLs = append(set.URLs, entry{
		Loc:        h.siteURL + "/",
		LastMod:    h.now().Format("2006-01-02"),
		ChangeFreq: "daily",
		Priority:   1.0,
	})

	for _, sec := range sections {
		docs, err := h.store.List(sec.kind)
		if err != nil {
			return nil, err
		}
		for _, doc := range docs {
			if sec.visible != nil && !sec.visible(doc) {
				continue
			}
			set.URLs = append(set.URLs, entry{
				Loc:        h.siteURL + sec.prefix + doc.Slug,
				LastMod:    doc.ModTime.Format("2006-01-02"),
				ChangeFreq: sec.changeFreq,
				Priority:   sec.priority,
			})
		}
	}

	out, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), out...), nil
}
