package page

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/homeline/storefront/internal/database"
	"github.com/homeline/storefront/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) *Service {
	t.Helper()
	store, err := database.Open(t.TempDir(), nil, strings.TrimSpace)
	require.NoError(t, err)
	svc := NewService(store)
	svc.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	return svc
}

func TestCreateStampsAndSorts(t *testing.T) {
	svc := newService(t)
	require.NoError(t, svc.Create(&models.Page{Title: "Terms of Service"}))
	require.NoError(t, svc.Create(&models.Page{Title: "about us", LastUpdated: "2023-01-02"}))

	pages, err := svc.List()
	require.NoError(t, err)
	require.Len(t, pages, 2)
	assert.Equal(t, "about-us", pages[0].Slug)
	assert.Equal(t, "2023-01-02", pages[0].LastUpdated)
	assert.Equal(t, "terms-of-service", pages[1].Slug)
	assert.Equal(t, "2024-05-01", pages[1].LastUpdated)
}

func TestUpdateRestamps(t *testing.T) {
	svc := newService(t)
	require.NoError(t, svc.Create(&models.Page{Title: "Returns", LastUpdated: "2023-01-02"}))

	loaded, err := svc.GetBySlug("returns")
	require.NoError(t, err)
	require.Equal(t, "2023-01-02", loaded.LastUpdated)
	loaded.Content = "Thirty days."
	require.NoError(t, svc.Update("returns", loaded))

	got, err := svc.GetBySlug("returns")
	require.NoError(t, err)
	assert.Equal(t, "2024-05-01", got.LastUpdated)
	assert.Equal(t, "Thirty days.", got.Content)
}

func TestValidation(t *testing.T) {
	svc := newService(t)
	assert.Error(t, svc.Create(&models.Page{Slug: "untitled"}))
	assert.Error(t, svc.Create(&models.Page{Title: "Bad date", LastUpdated: "01/05/2024"}))
}

func TestHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := newService(t)
	r := gin.New()
	NewHandler(svc).RegisterRoutes(r.Group("/api/v1"), func(c *gin.Context) { c.Next() })

	do := func(method, target, body string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		return w
	}

	w := do(http.MethodPost, "/api/v1/pages", `{"title":"FAQ","content":"  Ask away  "}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = do(http.MethodGet, "/api/v1/pages/faq", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"html":"Ask away"`)

	assert.Equal(t, http.StatusConflict, do(http.MethodPost, "/api/v1/pages", `{"title":"FAQ"}`).Code)
	assert.Equal(t, http.StatusNotFound, do(http.MethodGet, "/api/v1/pages/missing", "").Code)

	w = do(http.MethodPatch, "/api/v1/pages/faq", `{"title":"Questions"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	got, err := svc.GetBySlug("faq")
	require.NoError(t, err)
	assert.Equal(t, "Questions", got.Title)
	assert.Equal(t, "Ask away", strings.TrimSpace(got.Content))

	w = do(http.MethodGet, "/api/v1/pages", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":1`)
}
