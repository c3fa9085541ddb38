package contact

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gin-gonic/gin"
	"github.com/homeline/storefront/internal/database"
	"github.com/homeline/storefront/internal/pkg/mail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNotifier struct {
	mu   sync.Mutex
	sent []mail.ContactNotifyData
	to   [][]string
	err  error
}

func (f *fakeNotifier) SendContactNotify(_ context.Context, to []string, data mail.ContactNotifyData) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.to = append(f.to, to)
	f.sent = append(f.sent, data)
	return f.err
}

func newService(t *testing.T, n Notifier) *Service {
	t.Helper()
	store, err := database.Open(t.TempDir(), nil, nil)
	require.NoError(t, err)
	return NewService(store, n, Options{
		SiteName:   "Homeline",
		SiteURL:    "https://shop.example.com",
		Recipients: []string{"owner@example.com"},
	})
}

func validSubmission() Submission {
	return Submission{
		Name:    " Ana ",
		Email:   "ana@example.com",
		Product: "carrara-marble",
		Message: "Do you ship to Porto?",
	}
}

func TestSubmitStoresAndNotifies(t *testing.T) {
	n := &fakeNotifier{}
	svc := newService(t, n)
	svc.now = func() time.Time { return time.Date(2024, 5, 1, 9, 30, 15, 0, time.UTC) }

	msg, err := svc.Submit(context.Background(), validSubmission())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(msg.Slug, "20240501-093015-"), msg.Slug)
	assert.Len(t, msg.Slug, len("20240501-093015-")+8)
	assert.True(t, database.ValidSlug(msg.Slug))
	assert.Equal(t, "Contact form", msg.Subject)

	stored, err := svc.Get(msg.Slug)
	require.NoError(t, err)
	assert.Equal(t, "Ana", stored.Name)
	assert.Equal(t, "Do you ship to Porto?", stored.Content)
	assert.Equal(t, "2024-05-01T09:30:15Z", stored.Created)
	assert.False(t, stored.Read)

	require.Len(t, n.sent, 1)
	assert.Equal(t, []string{"owner@example.com"}, n.to[0])
	assert.Equal(t, "https://shop.example.com/products/carrara-marble", n.sent[0].ProductURL)
}

func TestSubmitKeepsMessageWhenMailFails(t *testing.T) {
	svc := newService(t, &fakeNotifier{err: errors.New("smtp down")})
	msg, err := svc.Submit(context.Background(), validSubmission())
	require.NoError(t, err)

	_, err = svc.Get(msg.Slug)
	assert.NoError(t, err)
}

func TestSubmitValidation(t *testing.T) {
	svc := newService(t, nil)
	cases := map[string]func(*Submission){
		"missing name":  func(s *Submission) { s.Name = "  " },
		"bad email":     func(s *Submission) { s.Email = "not-an-email" },
		"empty message": func(s *Submission) { s.Message = "" },
		"bad product":   func(s *Submission) { s.Product = "../etc" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			sub := validSubmission()
			mutate(&sub)
			_, err := svc.Submit(context.Background(), sub)
			var verrs validation.Errors
			assert.True(t, errors.As(err, &verrs), "got %v", err)
		})
	}

	items, err := svc.List(false)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestListMarkReadAndPrune(t *testing.T) {
	svc := newService(t, nil)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	var slugs []string
	for i := 0; i < 3; i++ {
		at := base.Add(time.Duration(i) * time.Hour)
		svc.now = func() time.Time { return at }
		msg, err := svc.Submit(context.Background(), validSubmission())
		require.NoError(t, err)
		slugs = append(slugs, msg.Slug)
	}

	items, err := svc.List(false)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, slugs[2], items[0].Slug, "newest first")

	_, err = svc.MarkRead(slugs[0], true)
	require.NoError(t, err)
	_, err = svc.MarkRead(slugs[2], true)
	require.NoError(t, err)

	unread, err := svc.List(true)
	require.NoError(t, err)
	require.Len(t, unread, 1)
	assert.Equal(t, slugs[1], unread[0].Slug)

	n, err := svc.PruneRead(base.Add(90 * time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	items, err = svc.List(false)
	require.NoError(t, err)
	assert.Len(t, items, 2)

	_, err = svc.MarkRead("20990101-000000-deadbeef", true)
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestHandlerSubmit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := newService(t, nil)
	r := gin.New()
	NewHandler(svc).RegisterRoutes(r.Group("/api/v1"), func(c *gin.Context) { c.AbortWithStatus(http.StatusUnauthorized) })

	post := func(body string) int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/contact", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusCreated, post(`{"name":"Ana","email":"ana@example.com","message":"Hi"}`))
	assert.Equal(t, http.StatusUnprocessableEntity, post(`{"name":"Ana","email":"nope","message":"Hi"}`))
	assert.Equal(t, http.StatusBadRequest, post(`{`))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/contact/messages", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
