package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"vp-madrs/internal/service"
)

// NewRouter configura el router de Gin con middlewares y rutas.
func NewRouter(
	logger *zap.Logger,
	authH *AuthHandler,
	profileH *ProfileHandler,
	reportH *ReportHandler,
	healthH *HealthHandler,
	tokenSvc *service.TokenService,
) *gin.Engine {
	r := gin.New()

	// Middlewares basicos: logging, recovery y JSON content-type.
	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), jsonContentTypeMiddleware())

	r.GET("/healthz", healthH.Check)
	r.POST("/auth/token", authH.IssueToken)

	authed := r.Group("", JWTAuthMiddleware(tokenSvc))
	authed.POST("/profiles", profileH.CreateProfile)
	authed.GET("/profiles", profileH.ListProfiles)
	authed.GET("/profiles/:id", profileH.GetProfile)
	authed.GET("/profiles/:id/similar", profileH.SimilarProfiles)
	authed.POST("/batches", profileH.CreateBatch)
	authed.GET("/reports/summary", reportH.Summary)

	return r
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// jsonContentTypeMiddleware fuerza Content-Type: application/json en responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}
