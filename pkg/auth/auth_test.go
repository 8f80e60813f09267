package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateJWT(t *testing.T) {
	secret := []byte("test-secret")

	token, err := GenerateJWT("creator-1", "alex@example.com", "creator", secret)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateJWT(token, secret)
	require.NoError(t, err)
	assert.Equal(t, "creator-1", claims.CreatorID)
	assert.Equal(t, "alex@example.com", claims.Email)
	assert.Equal(t, "creator", claims.Role)
}

func TestValidateJWT_WrongSecret(t *testing.T) {
	token, err := GenerateJWT("creator-1", "alex@example.com", "creator", []byte("secret-a"))
	require.NoError(t, err)

	_, err = ValidateJWT(token, []byte("secret-b"))
	assert.ErrorIs(t, err, ErrInvalidJWT)
}

func TestValidateJWT_Garbage(t *testing.T) {
	_, err := ValidateJWT("not.a.token", []byte("secret"))
	assert.ErrorIs(t, err, ErrInvalidJWT)
}

func TestJWTAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	secret := []byte("test-secret")

	r := gin.New()
	r.Use(JWTAuthMiddleware(secret))
	r.GET("/me", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"creator_id": c.GetString("creator_id")})
	})

	t.Run("missing header", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequestWithContext(context.Background(), "GET", "/me", nil)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("bearer token", func(t *testing.T) {
		token, err := GenerateJWT("creator-42", "a@b.c", "creator", secret)
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req, _ := http.NewRequestWithContext(context.Background(), "GET", "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "creator-42")
	})

	t.Run("cookie fallback", func(t *testing.T) {
		token, err := GenerateJWT("creator-7", "a@b.c", "creator", secret)
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req, _ := http.NewRequestWithContext(context.Background(), "GET", "/me", nil)
		req.AddCookie(&http.Cookie{Name: "access_token", Value: token})
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "creator-7")
	})

	t.Run("malformed header", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequestWithContext(context.Background(), "GET", "/me", nil)
		req.Header.Set("Authorization", "Token abc")
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
