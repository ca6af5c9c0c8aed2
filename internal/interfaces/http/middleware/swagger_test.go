package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func swaggerEngine(cfg SwaggerConfig) *gin.Engine {
	r := gin.New()
	r.GET("/swagger/*any", SwaggerProtection(cfg), func(c *gin.Context) { c.String(http.StatusOK, "docs") })
	return r
}

func swaggerRequest(r http.Handler, remote string) int {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil)
	req.RemoteAddr = remote
	r.ServeHTTP(w, req)
	return w.Code
}

func TestSwaggerProtection(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, swaggerRequest(swaggerEngine(SwaggerConfig{}), "10.0.0.1:5000"))
	assert.Equal(t, http.StatusOK, swaggerRequest(swaggerEngine(SwaggerConfig{Enabled: true}), "10.0.0.1:5000"))

	restricted := swaggerEngine(SwaggerConfig{Enabled: true, AllowedIPs: []string{"192.168.1.0/24", "10.0.0.7", "bogus"}})
	assert.Equal(t, http.StatusOK, swaggerRequest(restricted, "192.168.1.20:5000"))
	assert.Equal(t, http.StatusOK, swaggerRequest(restricted, "10.0.0.7:5000"))
	assert.Equal(t, http.StatusForbidden, swaggerRequest(restricted, "10.0.0.8:5000"))
}
