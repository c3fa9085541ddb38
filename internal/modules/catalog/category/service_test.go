package category

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/homeline/storefront/internal/database"
	"github.com/homeline/storefront/internal/models"
	"github.com/homeline/storefront/internal/modules/catalog/product"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *database.Store {
	t.Helper()
	store, err := database.Open(t.TempDir(), nil, nil)
	require.NoError(t, err)
	return store
}

func write(t *testing.T, store *database.Store, kind, slug, content string) {
	t.Helper()
	dir := filepath.Join(store.Root(), kind)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, slug+".md"), []byte(content), 0o644))
}

func TestListSortedByOrder(t *testing.T) {
	store := newStore(t)
	// Filename order deliberately disagrees with the order field.
	write(t, store, Kind, "a-last", "---\nname: \"Last\"\norder: 3\n---\n")
	write(t, store, Kind, "b-first", "---\nname: \"First\"\norder: 1\n---\n")
	write(t, store, Kind, "c-tie", "---\nname: \"Tie A\"\norder: 2\n---\n")
	write(t, store, Kind, "d-tie", "---\nname: \"Tie B\"\norder: 2\n---\n")
	write(t, store, Kind, "e-none", "---\nname: \"No order\"\n---\n")

	cats, err := NewService(store).List()
	require.NoError(t, err)

	got := make([]string, len(cats))
	for i, c := range cats {
		got[i] = c.Slug
	}
	assert.Equal(t, []string{"e-none", "b-first", "c-tie", "d-tie", "a-last"}, got)
	assert.NotNil(t, cats[0].Subcategories)
}

func TestCreateDerivesSlugs(t *testing.T) {
	svc := NewService(newStore(t))
	cat := &models.Category{
		Name:          "Wall Tiles",
		Subcategories: []models.Subcategory{{Name: "Subway Tiles"}},
	}
	require.NoError(t, svc.Create(cat))
	assert.Equal(t, "wall-tiles", cat.Slug)

	got, err := svc.Get("wall-tiles")
	require.NoError(t, err)
	require.Len(t, got.Subcategories, 1)
	assert.Equal(t, "subway-tiles", got.Subcategories[0].Slug)

	err = svc.Create(&models.Category{Name: "Wall Tiles"})
	assert.ErrorIs(t, err, database.ErrSlugConflict)
}

func TestListProducts(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := newStore(t)
	write(t, store, Kind, "tiles", "---\nname: \"Tiles\"\n---\n")
	write(t, store, product.Kind, "hex", "---\nname: \"Hex\"\ncategory: \"tiles\"\nsubcategory: \"floor\"\n---\n")
	write(t, store, product.Kind, "metro", "---\nname: \"Metro\"\ncategory: \"tiles\"\nsubcategory: \"wall\"\n---\n")
	write(t, store, product.Kind, "oak", "---\nname: \"Oak\"\ncategory: \"wood\"\n---\n")

	r := gin.New()
	NewHandler(NewService(store), product.NewService(store)).RegisterRoutes(r.Group(""), func(c *gin.Context) { c.AbortWithStatus(http.StatusUnauthorized) })

	get := func(target string) (int, []string) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
		var body struct {
			Data []struct {
				Slug string `json:"slug"`
			} `json:"data"`
		}
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		out := []string{}
		for _, d := range body.Data {
			out = append(out, d.Slug)
		}
		return w.Code, out
	}

	code, got := get("/categories/tiles/products")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, []string{"hex", "metro"}, got)

	_, got = get("/categories/tiles/products?subcategory=wall")
	assert.Equal(t, []string{"metro"}, got)

	code, _ = get("/categories/missing/products")
	assert.Equal(t, http.StatusNotFound, code)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/categories", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPatchKeepsOmittedFields(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := newStore(t)
	svc := NewService(store)
	require.NoError(t, svc.Create(&models.Category{
		Name:          "Tiles",
		Description:   "Floor and wall",
		Icon:          "grid",
		Order:         3,
		Subcategories: []models.Subcategory{{Name: "Mosaic"}},
		Markdown:      models.Markdown{Content: "All our tiles."},
	}))

	r := gin.New()
	NewHandler(svc, product.NewService(store)).RegisterRoutes(r.Group(""), func(c *gin.Context) { c.Next() })

	send := func(method, target, body string) int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		return w.Code
	}

	require.Equal(t, http.StatusOK, send(http.MethodPatch, "/categories/tiles", `{"name":"Tiles & Stone"}`))
	got, err := svc.Get("tiles")
	require.NoError(t, err)
	assert.Equal(t, "Tiles & Stone", got.Name)
	assert.Equal(t, "Floor and wall", got.Description)
	assert.Equal(t, "grid", got.Icon)
	assert.Equal(t, 3, got.Order)
	require.Len(t, got.Subcategories, 1)
	assert.Equal(t, "mosaic", got.Subcategories[0].Slug)
	assert.Equal(t, "All our tiles.", got.Content)

	// PUT replaces the whole record.
	require.Equal(t, http.StatusOK, send(http.MethodPut, "/categories/tiles", `{"name":"Tiles"}`))
	got, err = svc.Get("tiles")
	require.NoError(t, err)
	assert.Empty(t, got.Description)
	assert.Zero(t, got.Order)

	assert.Equal(t, http.StatusNotFound, send(http.MethodPatch, "/categories/missing", `{"name":"x"}`))
}
