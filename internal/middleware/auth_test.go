package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"logisticpro/internal/models"
	"logisticpro/internal/token"
)

func newTestRouter(tokens *token.Manager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	authed := router.Group("/", Auth(tokens, zap.NewNop()))
	authed.GET("/protected", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": c.GetInt64(ContextUserID),
			"role":    c.GetString(ContextRole),
		})
	})
	authed.GET("/admin-only", AdminOnly(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	return router
}

func doRequest(router *gin.Engine, authHeader string, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuth_MissingHeader(t *testing.T) {
	tokens := token.NewManager([]byte("secret"), time.Hour)
	router := newTestRouter(tokens)

	w := doRequest(router, "", "/protected")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_WrongScheme(t *testing.T) {
	tokens := token.NewManager([]byte("secret"), time.Hour)
	router := newTestRouter(tokens)

	tokenString, _, err := tokens.Issue(1, models.RoleUser)
	require.NoError(t, err)

	for _, header := range []string{"Basic dXNlcjpwYXNz", "Bearer", "Token " + tokenString, tokenString} {
		w := doRequest(router, header, "/protected")
		assert.Equal(t, http.StatusUnauthorized, w.Code, "header=%q", header)
	}
}

func TestAuth_InvalidToken(t *testing.T) {
	tokens := token.NewManager([]byte("secret"), time.Hour)
	router := newTestRouter(tokens)

	w := doRequest(router, "Bearer not-a-token", "/protected")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_ExpiredToken(t *testing.T) {
	expired := token.NewManager([]byte("secret"), -time.Minute)
	tokenString, _, err := expired.Issue(1, models.RoleUser)
	require.NoError(t, err)

	router := newTestRouter(token.NewManager([]byte("secret"), time.Hour))
	w := doRequest(router, "Bearer "+tokenString, "/protected")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Token expired")
}

func TestAuth_ValidTokenSetsContext(t *testing.T) {
	tokens := token.NewManager([]byte("secret"), time.Hour)
	router := newTestRouter(tokens)

	tokenString, _, err := tokens.Issue(42, models.RoleAdmin)
	require.NoError(t, err)

	w := doRequest(router, "Bearer "+tokenString, "/protected")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id": 42, "role": "admin"}`, w.Body.String())
}

func TestAdminOnly_RoleGate(t *testing.T) {
	tokens := token.NewManager([]byte("secret"), time.Hour)
	router := newTestRouter(tokens)

	userToken, _, err := tokens.Issue(1, models.RoleUser)
	require.NoError(t, err)
	adminToken, _, err := tokens.Issue(2, models.RoleAdmin)
	require.NoError(t, err)

	w := doRequest(router, "Bearer "+userToken, "/admin-only")
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doRequest(router, "Bearer "+adminToken, "/admin-only")
	assert.Equal(t, http.StatusOK, w.Code)
}
