package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/SyedFrazAli/geoscope/internal/contexts"
	"github.com/SyedFrazAli/geoscope/internal/server/biz"
)

// ExtractBearerToken pulls the token out of the Authorization header.
func ExtractBearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", errors.New("missing Authorization header")
	}

	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return "", errors.New("Authorization header must be a Bearer token")
	}

	return token, nil
}

// WithJWTAuth verifies the bearer token and stores the caller identity in the
// request context. Token issuance is the identity tier's concern; only
// verification happens here.
func WithJWTAuth(auth *biz.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := ExtractBearerToken(c.Request)
		if err != nil {
			AbortWithError(c, http.StatusUnauthorized, err)
			return
		}

		identity, err := auth.VerifyToken(token)
		if err != nil {
			AbortWithError(c, http.StatusUnauthorized, errors.New("invalid or expired token"))
			return
		}

		ctx := contexts.WithUserID(c.Request.Context(), identity)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
