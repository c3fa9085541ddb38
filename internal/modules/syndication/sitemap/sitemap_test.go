package sitemap

import (
	"encoding/xml"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/homeline/storefront/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, root, kind, slug, content string) {
	t.Helper()
	dir := filepath.Join(root, kind)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, slug+".md"), []byte(content), 0o644))
}

func TestBuild(t *testing.T) {
	store, err := database.Open(t.TempDir(), nil, nil)
	require.NoError(t, err)
	root := store.Root()
	write(t, root, "products", "hex-tile", "---\nname: \"Hex\"\ncategory: \"tiles\"\n---\n")
	write(t, root, "products", "retired", "---\nname: \"Old\"\nactive: false\n---\n")
	write(t, root, "categories", "tiles", "---\nname: \"Tiles\"\n---\n")
	write(t, root, "pages", "about", "---\ntitle: \"About\"\n---\nHello\n")

	h := NewHandler(store, "https://shop.example.com/", nil)
	h.now = func() time.Time { return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC) }

	body, err := h.Build()
	require.NoError(t, err)

	var set urlset
	require.NoError(t, xml.Unmarshal(body, &set))
	locs := make([]string, len(set.URLs))
	for i, u := range set.URLs {
		locs[i] = u.Loc
	}
	assert.Equal(t, []string{
		"https://shop.example.com/",
		"https://shop.example.com/products/hex-tile",
		"https://shop.example.com/categories/tiles",
		"https://shop.example.com/about",
	}, locs)
	assert.Equal(t, "2026-03-01", set.URLs[0].LastMod)
	assert.NotEmpty(t, set.URLs[1].LastMod)
}

func TestRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store, err := database.Open(t.TempDir(), nil, nil)
	require.NoError(t, err)

	r := gin.New()
	NewHandler(store, "https://shop.example.com", nil).RegisterRoutes(r)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/sitemap.xml", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/xml")
	assert.Contains(t, w.Body.String(), "<urlset xmlns=\"http://www.sitemaps.org/schemas/sitemap/0.9\">")
}
