package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"vp-madrs/internal/service"
)

// AuthHandler canjea la API key configurada por un token de acceso JWT.
type AuthHandler struct {
	logger     *zap.Logger
	tokenSvc   *service.TokenService
	apiKeyHash string
}

func NewAuthHandler(logger *zap.Logger, tokenSvc *service.TokenService, apiKeyHash string) *AuthHandler {
	return &AuthHandler{logger: logger, tokenSvc: tokenSvc, apiKeyHash: apiKeyHash}
}

// IssueToken maneja POST /auth/token.
func (h *AuthHandler) IssueToken(c *gin.Context) {
	var req struct {
		ClientID string `json:"client_id" binding:"required"`
		APIKey   string `json:"api_key" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid token request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if h.apiKeyHash == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "auth not configured"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(h.apiKeyHash), []byte(req.APIKey)); err != nil {
		h.logger.Warn("api key rejected", zap.String("client_id", req.ClientID))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, err := h.tokenSvc.Issue(req.ClientID)
	if err != nil {
		h.logger.Error("issue token failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not issue token"})
		return
	}
	c.JSON(http.StatusOK, token)
}
