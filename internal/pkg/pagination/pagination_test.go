package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestFromContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := map[string]Query{
		"/":                    {Page: 1, Size: DefaultSize},
		"/?page=3&size=5":      {Page: 3, Size: 5},
		"/?page=-1&size=0":     {Page: 1, Size: DefaultSize},
		"/?page=abc&size=1000": {Page: 1, Size: MaxSize},
	}
	for target, want := range cases {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest("GET", target, nil)
		assert.Equal(t, want, FromContext(c), target)
	}
}

func TestSlice(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	page, meta := Slice(items, Query{Page: 2, Size: 2})
	assert.Equal(t, []int{3, 4}, page)
	assert.Equal(t, 5, meta.Total)
	assert.Equal(t, 3, meta.TotalPage)
	assert.True(t, meta.HasNextPage)

	page, meta = Slice(items, Query{Page: 3, Size: 2})
	assert.Equal(t, []int{5}, page)
	assert.False(t, meta.HasNextPage)

	page, _ = Slice(items, Query{Page: 9, Size: 2})
	assert.NotNil(t, page)
	assert.Empty(t, page)
}
