package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name  string
		panic any
	}{
		{"string panic", "boom"},
		{"error panic", assert.AnError},
		{"nil panic", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := gin.New()
			engine.Use(Recovery())
			engine.GET("/panic", func(c *gin.Context) {
				panic(tt.panic)
			})

			w := httptest.NewRecorder()
			req, err := http.NewRequest(http.MethodGet, "/panic", nil)
			require.NoError(t, err)

			engine.ServeHTTP(w, req)

			assert.Equal(t, http.StatusInternalServerError, w.Code)
			assert.Contains(t, w.Body.String(), "Internal Server Error")
		})
	}

	t.Run("no panic passes through", func(t *testing.T) {
		engine := gin.New()
		engine.Use(Recovery())
		engine.GET("/ok", func(c *gin.Context) {
			c.String(http.StatusOK, "ok")
		})

		w := httptest.NewRecorder()
		req, err := http.NewRequest(http.MethodGet, "/ok", nil)
		require.NoError(t, err)

		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "ok", w.Body.String())
	})
}
