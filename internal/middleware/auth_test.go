package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DhavalSuthar-24/crease/pkg/token"
)

func TestAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/whoami", AuthMiddleware("secret"), func(c *gin.Context) {
		uid, err := GetUserIDFromContext(c)
		require.NoError(t, err)
		c.JSON(http.StatusOK, gin.H{"user_id": uid})
	})

	call := func(header string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	tok, err := token.GenerateJWT(9, "scorer", "secret", time.Minute)
	require.NoError(t, err)

	w := call("Bearer " + tok)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":9}`, w.Body.String())

	assert.Equal(t, http.StatusUnauthorized, call("").Code)
	assert.Equal(t, http.StatusUnauthorized, call(tok).Code)
	assert.Equal(t, http.StatusUnauthorized, call("Basic "+tok).Code)
	assert.Equal(t, http.StatusUnauthorized, call("Bearer nope").Code)
}

func TestGetUserIDFromContextMissing(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	_, err := GetUserIDFromContext(c)
	assert.Error(t, err)

	c.Set(AuthUserIDKey, "nine")
	_, err = GetUserIDFromContext(c)
	assert.Error(t, err)
}
