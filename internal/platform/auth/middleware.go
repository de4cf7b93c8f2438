package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"

	"library-backend/internal/platform/apperr"
)

const (
	CtxUserIDKey = "user_id"
	CtxRoleKey   = "role"
)

// RequireAuth: Authorization: Bearer <token> を検証して context に sub/role を詰める
func RequireAuth(secret []byte, log logrus.FieldLogger) gin.HandlerFunc {
	deny := func(c *gin.Context, msg string) {
		apperr.Respond(c, log, apperr.ErrUnauthorized(msg))
	}
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" {
			deny(c, "missing Authorization header")
			return
		}

		parts := strings.SplitN(h, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			deny(c, "invalid Authorization header")
			return
		}

		tokenStr := strings.TrimSpace(parts[1])
		if tokenStr == "" {
			deny(c, "empty token")
			return
		}

		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
			return secret, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
		if err != nil || token == nil || !token.Valid {
			deny(c, "invalid token")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			deny(c, "invalid claims")
			return
		}
		sub, err := claims.GetSubject()
		if err != nil || sub == "" {
			deny(c, "invalid sub")
			return
		}
		role, _ := claims["role"].(string)

		c.Set(CtxUserIDKey, sub)
		c.Set(CtxRoleKey, role)
		c.Next()
	}
}

// RequireRole: 例) LIBRARIAN / ADMIN のみ許可したい時に追加
func RequireRole(log logrus.FieldLogger, roles ...string) gin.HandlerFunc {
	roleSet := make(map[string]struct{})
	for _, r := range roles {
		if r == "" {
			continue
		}
		roleSet[r] = struct{}{}
	}

	return func(c *gin.Context) {
		role := c.GetString(CtxRoleKey)
		if role == "" {
			apperr.Respond(c, log, apperr.ErrForbidden("missing role"))
			return
		}
		if _, allowed := roleSet[role]; !allowed {
			apperr.Respond(c, log, apperr.ErrForbidden("forbidden"))
			return
		}
		c.Next()
	}
}
