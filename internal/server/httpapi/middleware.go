package httpapi

import (
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// Context keys set by AuthRequired for downstream handlers.
const (
	ctxHandle = "authHandle"
	ctxName   = "authName"
)

type bearerClaims struct {
	jwt.RegisteredClaims
	Name string `json:"name"`
}

// AuthRequired validates the bearer token and attaches the verified
// identity to the request context.
func AuthRequired(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, envelope{Type: "error", Message: "missing authorization"})
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, envelope{Type: "error", Message: "invalid authorization header"})
			return
		}

		claims := &bearerClaims{}
		token, err := jwt.ParseWithClaims(parts[1], claims, func(t *jwt.Token) (any, error) {
			return secret, nil
		})
		if err != nil || !token.Valid || claims.Subject == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, envelope{Type: "error", Message: "invalid or expired token"})
			return
		}

		c.Set(ctxHandle, claims.Subject)
		c.Set(ctxName, claims.Name)
		c.Next()
	}
}

// RequestLogger logs request metadata, never payloads.
func RequestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Info("http",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("dur", time.Since(start)),
			zap.String("client", c.ClientIP()),
		)
	}
}

// Recovery converts panics into a generic 500 and logs the stack.
func Recovery(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("panic",
					zap.Any("reason", r),
					zap.ByteString("stack", debug.Stack()),
					zap.String("path", c.Request.URL.Path),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, envelope{Type: "error", Message: "internal error"})
			}
		}()
		c.Next()
	}
}
