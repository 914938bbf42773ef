package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/group-study-api/internal/models"
	"github.com/noah-isme/group-study-api/pkg/config"
	appErrors "github.com/noah-isme/group-study-api/pkg/errors"
	"github.com/noah-isme/group-study-api/pkg/response"
)

type tokenService interface {
	Issue(ctx context.Context, req models.TokenRequest) (*models.IssuedToken, error)
	Revoke(ctx context.Context, token string) error
	Expiry() time.Duration
}

// AuthHandler issues and clears the credential cookie.
type AuthHandler struct {
	tokens tokenService
	cookie config.CookieConfig
	logger *zap.Logger
}

// NewAuthHandler creates a new handler.
func NewAuthHandler(tokens tokenService, cookie config.CookieConfig, logger *zap.Logger) *AuthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandler{tokens: tokens, cookie: cookie, logger: logger}
}

// Issue godoc
// @Summary Issue credential cookie
// @Description Signs a token for the supplied identity and stores it in an HttpOnly cookie
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body models.TokenRequest true "Identity claims"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /auth/jwt [post]
func (h *AuthHandler) Issue(c *gin.Context) {
	var req models.TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid identity payload"))
		return
	}

	issued, err := h.tokens.Issue(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.setCookie(c, issued.Token, int(h.tokens.Expiry().Seconds()))
	response.OK(c, models.AuthResult{Success: true})
}

// Logout godoc
// @Summary Clear credential cookie
// @Description Revokes the presented token when revocation is enabled and expires the cookie
// @Tags Authentication
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if token, err := c.Cookie(h.cookie.Name); err == nil && token != "" {
		if err := h.tokens.Revoke(c.Request.Context(), token); err != nil {
			h.logger.Warn("token revocation failed", zap.Error(err))
		}
	}

	h.setCookie(c, "", -1)
	response.OK(c, models.AuthResult{Success: true})
}

func (h *AuthHandler) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(sameSiteMode(h.cookie.SameSite))
	c.SetCookie(h.cookie.Name, value, maxAge, "/", "", h.cookie.Secure, true)
}

func sameSiteMode(raw string) http.SameSite {
	switch strings.ToLower(raw) {
	case "none":
		return http.SameSiteNoneMode
	case "lax":
		return http.SameSiteLaxMode
	case "strict":
		return http.SameSiteStrictMode
	default:
		return http.SameSiteDefaultMode
	}
}
