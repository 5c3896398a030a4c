package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"storefront/internal/auth"
)

func newEngine(tokens *auth.TokenIssuer, logs *bytes.Buffer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestLogger(zerolog.New(logs)))
	r.GET("/me", UserAuth(tokens), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": UserID(c)})
	})
	r.GET("/refresh", RefreshAuth(tokens), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": UserID(c)})
	})
	r.GET("/boom", func(c *gin.Context) { panic("boom") })
	return r
}

func get(r http.Handler, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestUserAuth(t *testing.T) {
	tokens := auth.NewTokenIssuer("secret", time.Minute, time.Hour)
	r := newEngine(tokens, &bytes.Buffer{})
	pair, err := tokens.IssuePair(7, false)
	require.NoError(t, err)

	w := get(r, "/me", "Bearer "+pair.AccessToken)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"id":7}`, w.Body.String())

	w = get(r, "/me", "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "Unauthorized", body["status"])

	require.Equal(t, http.StatusUnauthorized, get(r, "/me", "Token "+pair.AccessToken).Code)
	require.Equal(t, http.StatusUnauthorized, get(r, "/me", "Bearer "+pair.RefreshToken).Code)
	require.Equal(t, http.StatusUnauthorized, get(r, "/me", "Bearer garbage").Code)
}

func TestRefreshAuthOnlyTakesRefreshTokens(t *testing.T) {
	tokens := auth.NewTokenIssuer("secret", time.Minute, time.Hour)
	r := newEngine(tokens, &bytes.Buffer{})
	pair, err := tokens.IssuePair(7, false)
	require.NoError(t, err)

	require.Equal(t, http.StatusOK, get(r, "/refresh", "Bearer "+pair.RefreshToken).Code)
	require.Equal(t, http.StatusUnauthorized, get(r, "/refresh", "Bearer "+pair.AccessToken).Code)
}

func TestRequestLoggerRecoversPanics(t *testing.T) {
	logs := &bytes.Buffer{}
	r := newEngine(auth.NewTokenIssuer("secret", time.Minute, time.Hour), logs)

	w := get(r, "/boom", "")
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.NotEmpty(t, w.Header().Get(requestIDHeader))

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.EqualValues(t, 500, body["code"])
	require.Contains(t, logs.String(), "panic recovered")
	require.Contains(t, logs.String(), `"status":500`)
}
