package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SyedFrazAli/geoscope/internal/contexts"
	"github.com/SyedFrazAli/geoscope/internal/server/biz"
)

func TestExtractBearerToken(t *testing.T) {
	newRequest := func(header string) *http.Request {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}

		return req
	}

	t.Run("valid bearer", func(t *testing.T) {
		token, err := ExtractBearerToken(newRequest("Bearer abc.def.ghi"))
		require.NoError(t, err)
		assert.Equal(t, "abc.def.ghi", token)
	})

	t.Run("missing header", func(t *testing.T) {
		_, err := ExtractBearerToken(newRequest(""))
		require.Error(t, err)
	})

	t.Run("wrong scheme", func(t *testing.T) {
		_, err := ExtractBearerToken(newRequest("Basic abc"))
		require.Error(t, err)
	})

	t.Run("empty token", func(t *testing.T) {
		_, err := ExtractBearerToken(newRequest("Bearer "))
		require.Error(t, err)
	})
}

func TestWithJWTAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)

	auth := biz.NewAuthService(biz.AuthConfig{JWTSecret: "test-secret"})

	engine := gin.New()
	engine.Use(WithJWTAuth(auth))
	engine.GET("/whoami", func(c *gin.Context) {
		userID, ok := contexts.GetUserID(c.Request.Context())
		require.True(t, ok)
		c.String(http.StatusOK, userID)
	})

	t.Run("valid token populates identity", func(t *testing.T) {
		token, err := auth.GenerateToken("alice@example.com")
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "alice@example.com", w.Body.String())
	})

	t.Run("missing header is unauthorized", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)

		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("bad token is unauthorized", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "Bearer garbage")

		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "invalid or expired token")
	})
}
