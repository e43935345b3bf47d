package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func paramsFor(target string) Params {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", target, nil)
	return Parse(c)
}

func TestParse(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		p := paramsFor("/?")
		assert.Equal(t, DefaultPage, p.Page)
		assert.Equal(t, DefaultLimit, p.Limit)
		assert.Equal(t, 0, p.Offset)
	})

	t.Run("explicit values", func(t *testing.T) {
		p := paramsFor("/?page=3&limit=10")
		assert.Equal(t, 3, p.Page)
		assert.Equal(t, 10, p.Limit)
		assert.Equal(t, 20, p.Offset)
	})

	t.Run("clamps out-of-range values", func(t *testing.T) {
		p := paramsFor("/?page=-1&limit=9999")
		assert.Equal(t, DefaultPage, p.Page)
		assert.Equal(t, MaxLimit, p.Limit)
	})

	t.Run("non-numeric values fall back", func(t *testing.T) {
		p := paramsFor("/?page=abc&limit=xyz")
		assert.Equal(t, DefaultPage, p.Page)
		assert.Equal(t, DefaultLimit, p.Limit)
	})
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, int64(0), TotalPages(100, 0))
	assert.Equal(t, int64(0), TotalPages(0, 20))
	assert.Equal(t, int64(1), TotalPages(20, 20))
	assert.Equal(t, int64(2), TotalPages(21, 20))
	assert.Equal(t, int64(5), TotalPages(100, 20))
}
