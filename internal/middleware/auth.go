package middleware

import (
	"strings"

	"cscx-api/internal/model"
	"cscx-api/pkg/response"
	"cscx-api/pkg/scope"

	"github.com/gin-gonic/gin"
)

// DemoUserID is the scope every request runs under in demo mode.
const DemoUserID = "demo-user"

// Auth validates the bearer token and sets the caller's scope in the
// request context. In demo mode every request runs as the demo CSM
// without a token.
func (m Middleware) Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.demoMode {
			sc := model.Scope{
				UserID:   DemoUserID,
				Username: "demo",
				Role:     model.RoleCSM,
			}
			c.Request = c.Request.WithContext(scope.SetScopeToContext(c.Request.Context(), sc))
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			m.l.Warnf(c.Request.Context(), "Missing Authorization header | Path: %s", c.Request.URL.Path)
			response.Unauthorized(c)
			c.Abort()
			return
		}

		const bearerPrefix = "Bearer "
		if !strings.HasPrefix(authHeader, bearerPrefix) {
			m.l.Warnf(c.Request.Context(), "Invalid Authorization header format | Path: %s", c.Request.URL.Path)
			response.Unauthorized(c)
			c.Abort()
			return
		}

		tokenString := strings.TrimSpace(authHeader[len(bearerPrefix):])
		if tokenString == "" {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		payload, err := m.jwtMgr.Verify(tokenString)
		if err != nil {
			m.l.Warnf(c.Request.Context(), "Token verification failed: %v | Path: %s", err, c.Request.URL.Path)
			response.Unauthorized(c)
			c.Abort()
			return
		}

		ctx := c.Request.Context()
		ctx = scope.SetPayloadToContext(ctx, payload)
		ctx = scope.SetScopeToContext(ctx, scope.NewScope(payload))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
