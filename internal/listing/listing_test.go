package listing

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func paramsForQuery(t *testing.T, rawQuery string, allowed []string) Params {
	t.Helper()
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+rawQuery, nil)

	return Parse(c, allowed)
}

func TestParseDefaults(t *testing.T) {
	p := paramsForQuery(t, "", []string{"id", "vin"})

	assert.Equal(t, DefaultLimit, p.Limit)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, "id", p.SortBy)
	assert.False(t, p.Asc)
}

func TestParseAllowedSortColumn(t *testing.T) {
	p := paramsForQuery(t, "sort_by=vin&asc=asc", []string{"id", "vin"})

	assert.Equal(t, "vin", p.SortBy)
	assert.True(t, p.Asc)
}

func TestParseUnknownSortColumnFallsBack(t *testing.T) {
	p := paramsForQuery(t, "sort_by=password_hash;drop+table+users&asc=banana", []string{"id", "vin"})

	assert.Equal(t, "id", p.SortBy)
	assert.False(t, p.Asc)
}

func TestParseLimitIsCapped(t *testing.T) {
	p := paramsForQuery(t, "limit=5000&page=3", nil)

	assert.Equal(t, MaxLimit, p.Limit)
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, uint(200), p.Offset())
}

func TestParseRejectsNonPositiveValues(t *testing.T) {
	p := paramsForQuery(t, "limit=-5&page=0", nil)

	assert.Equal(t, DefaultLimit, p.Limit)
	assert.Equal(t, 1, p.Page)
}
