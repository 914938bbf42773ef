package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/group-study-api/internal/models"
	appErrors "github.com/noah-isme/group-study-api/pkg/errors"
)

type stubVerifier struct {
	claims *models.TokenClaims
	err    error
	seen   string
}

func (s *stubVerifier) Verify(_ context.Context, token string) (*models.TokenClaims, error) {
	s.seen = token
	return s.claims, s.err
}

func newAuthRouter(verifier TokenVerifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/private", CookieAuth(verifier, "token"), func(c *gin.Context) {
		claims := ClaimsFromContext(c)
		c.String(http.StatusOK, claims.Email)
	})
	return r
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Error.Code
}

func TestCookieAuthMissingCookie(t *testing.T) {
	verifier := &stubVerifier{}
	r := newAuthRouter(verifier)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/private", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "UNAUTHORIZED", errorCode(t, w))
	assert.Empty(t, verifier.seen)
}

func TestCookieAuthRejectedToken(t *testing.T) {
	verifier := &stubVerifier{err: appErrors.Clone(appErrors.ErrUnauthorized, "token expired")}
	r := newAuthRouter(verifier)

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: "stale"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "stale", verifier.seen)
	assert.Contains(t, w.Body.String(), "token expired")
}

func TestCookieAuthBindsClaims(t *testing.T) {
	verifier := &stubVerifier{claims: &models.TokenClaims{Email: "a@example.com"}}
	r := newAuthRouter(verifier)

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: "good"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "a@example.com", w.Body.String())
}

func TestClaimsFromContextWithoutAuth(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Nil(t, ClaimsFromContext(c))

	c.Set(ContextUserKey, "not claims")
	assert.Nil(t, ClaimsFromContext(c))
}
