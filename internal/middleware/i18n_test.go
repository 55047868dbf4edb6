// internal/middleware/i18n_test.go
package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func resolveLang(t *testing.T, header string) string {
	gin.SetMode(gin.TestMode)

	var lang string
	router := gin.New()
	router.Use(I18nMiddleware())
	router.GET("/", func(c *gin.Context) {
		lang = c.GetString("lang")
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Accept-Language", header)
	}
	router.ServeHTTP(httptest.NewRecorder(), req)

	return lang
}

func TestI18nMiddleware(t *testing.T) {
	assert.Equal(t, "en", resolveLang(t, ""))
	assert.Equal(t, "en", resolveLang(t, "en-US,en;q=0.9"))
	assert.Equal(t, "uk", resolveLang(t, "uk-UA,uk;q=0.9,en;q=0.8"))
	assert.Equal(t, "uk", resolveLang(t, "uk"))
	assert.Equal(t, "en", resolveLang(t, "fr-FR,fr;q=0.9"))
}
