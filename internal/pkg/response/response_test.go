package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gin-gonic/gin"
	"github.com/homeline/storefront/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func send(t *testing.T, err error) (int, map[string]any) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	Error(c, err)

	body := map[string]any{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestErrorMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{fmt.Errorf("products/x: %w", database.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("products/x: %w", database.ErrSlugConflict), http.StatusConflict},
		{fmt.Errorf("%w: %q", database.ErrInvalidSlug, "A B"), http.StatusUnprocessableEntity},
		{validation.Errors{"name": errors.New("cannot be blank")}, http.StatusUnprocessableEntity},
		{&database.MalformedError{Path: "products/x.md", Err: database.ErrMalformed}, http.StatusInternalServerError},
		{errors.New("disk on fire"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		status, body := send(t, tc.err)
		assert.Equal(t, tc.status, status, tc.err.Error())
		assert.EqualValues(t, 0, body["ok"])
		assert.EqualValues(t, tc.status, body["code"])
	}
}

func TestErrorPartialRename(t *testing.T) {
	err := fmt.Errorf("%w: products/a -> b: %w", database.ErrPartialRename, errors.New("busy"))
	status, body := send(t, err)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "partial_rename", body["error"])
}

func TestErrorValidationFields(t *testing.T) {
	_, body := send(t, validation.Errors{"email": errors.New("must be a valid email address")})
	fields, ok := body["errors"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "must be a valid email address", fields["email"])
}

func TestOKWrapsSlices(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	OK(c, []string{"a"})
	assert.JSONEq(t, `{"data":["a"]}`, w.Body.String())
}
