package server

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/vincentcrosswell-gif/truthradeo-sub000/internal/logger"
	subscriptiondomain "github.com/vincentcrosswell-gif/truthradeo-sub000/internal/subscription/domain"
)

const ctxUserKey = "auth.user_id"

// RequestLogger logs one line per request with the masked authorization
// header and the upstream request id when present.
func RequestLogger(log *zap.Logger) gin.HandlerFunc {
	log = log.Named("http")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("authorization", logger.MaskAuthorization(c.GetHeader("Authorization"))),
		}
		if reqID := c.GetHeader("X-Request-Id"); reqID != "" {
			fields = append(fields, zap.String("request_id", reqID))
		}
		log.Info("request", fields...)
	}
}

// RequireAuth validates the bearer token and stores the subject on the
// context for downstream handlers.
func (s *Server) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(raw) == "" {
			AbortWithError(c, ErrUnauthenticated)
			return
		}

		token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(s.cfg.Auth.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			AbortWithError(c, ErrUnauthenticated)
			return
		}

		subject, err := token.Claims.GetSubject()
		if err != nil || subject == "" {
			AbortWithError(c, ErrUnauthenticated)
			return
		}

		c.Set(ctxUserKey, subject)
		c.Next()
	}
}

// RequirePlan resolves the caller's current plan and rejects the
// request when it sits below the required tier.
func (s *Server) RequirePlan(required subscriptiondomain.Plan) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := UserID(c)
		if userID == "" {
			AbortWithError(c, ErrUnauthenticated)
			return
		}

		current, err := s.subSvc.GetPlan(c.Request.Context(), userID)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		if !subscriptiondomain.PlanAtLeast(current, required) {
			AbortWithError(c, &upgradeRequiredError{Current: current, Required: required})
			return
		}
		c.Next()
	}
}

// UserID returns the authenticated subject, empty when unauthenticated.
func UserID(c *gin.Context) string {
	return c.GetString(ctxUserKey)
}
