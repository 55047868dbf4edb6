// internal/handlers/game_test.go
package handlers

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamevault/gamestore-backend/internal/catalog"
)

func criteriaFor(t *testing.T, query string) catalog.FilterCriteria {
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/games?"+query, nil)

	return parseCriteria(c)
}

func TestParseCriteriaDefaults(t *testing.T) {
	criteria := criteriaFor(t, "")

	assert.Equal(t, 1, criteria.Page)
	assert.Equal(t, "10", criteria.PageSize)
	assert.Empty(t, criteria.Name)
	assert.Nil(t, criteria.MinPrice)
	assert.Nil(t, criteria.MaxPrice)
	assert.Empty(t, criteria.Genres)
}

func TestParseCriteriaFullQuery(t *testing.T) {
	criteria := criteriaFor(t,
		"name=star&minPrice=9.99&maxPrice=59.99&publishedWithin=month&sort=priceAsc&page=3&pageSize=20")

	assert.Equal(t, "star", criteria.Name)
	require.NotNil(t, criteria.MinPrice)
	assert.Equal(t, 9.99, *criteria.MinPrice)
	require.NotNil(t, criteria.MaxPrice)
	assert.Equal(t, 59.99, *criteria.MaxPrice)
	assert.Equal(t, "month", criteria.PublishedWithin)
	assert.Equal(t, catalog.SortPriceAsc, criteria.Sort)
	assert.Equal(t, 3, criteria.Page)
	assert.Equal(t, "20", criteria.PageSize)
}

func TestParseCriteriaListParams(t *testing.T) {
	// Repeated params and comma-separated values both work, mixed freely.
	criteria := criteriaFor(t, "genres=a&genres=b,c&platforms=%20pc%20,%20xbox")

	assert.Equal(t, []string{"a", "b", "c"}, criteria.Genres)
	assert.Equal(t, []string{"pc", "xbox"}, criteria.Platforms)
}

func TestParseCriteriaUnparsableNumbers(t *testing.T) {
	criteria := criteriaFor(t, "minPrice=free&page=first")

	assert.Nil(t, criteria.MinPrice)
	assert.Equal(t, 0, criteria.Page)
	assert.Equal(t, 1, criteria.EffectivePage())
}
