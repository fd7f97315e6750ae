package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/akjilan/digital-ecommerce/common/auth"
	"github.com/akjilan/digital-ecommerce/middleware"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func bearer(t *testing.T, sub string) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": sub,
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return "Bearer " + s
}

func whoami(c *gin.Context) {
	id, err := middleware.GetUserID(c)
	if err != nil {
		c.String(http.StatusOK, "guest")
		return
	}
	c.String(http.StatusOK, id)
}

func serve(r *gin.Engine, authz string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestOptionalAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", middleware.OptionalAuth(auth.NewTokenValidator(testSecret)), whoami)

	assert.Equal(t, "user-7", serve(r, bearer(t, "user-7")).Body.String())
	assert.Equal(t, "guest", serve(r, "").Body.String())

	w := serve(r, "Bearer forged.token.value")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "guest", w.Body.String())
}

func TestRequireAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", middleware.RequireAuth(auth.NewTokenValidator(testSecret)), whoami)

	assert.Equal(t, "user-7", serve(r, bearer(t, "user-7")).Body.String())
	assert.Equal(t, http.StatusUnauthorized, serve(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(r, "Bearer nope").Code)
}
