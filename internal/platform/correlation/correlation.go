package correlation

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	HeaderName = "X-Correlation-Id"
	// gin.Context 側のキー
	CtxKey = "cid"
)

type ctxKey struct{}

// With returns a child context carrying id.
func With(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the correlation id of the request that owns ctx, or "".
func FromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxKey{}).(string); ok {
		return v
	}
	return ""
}

// Resolve は受信ヘッダの値を採用し、空なら新規に採番する。
func Resolve(inbound string) string {
	if v := strings.TrimSpace(inbound); v != "" {
		return v
	}
	return uuid.NewString()
}

// Middleware establishes the correlation id for the request. The id lives only
// in the request context, so it ends with the request whatever the outcome.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := Resolve(c.GetHeader(HeaderName))

		c.Request = c.Request.WithContext(With(c.Request.Context(), id))
		c.Set(CtxKey, id)
		// ハンドラがエラーで抜けてもヘッダは必ず付く
		c.Header(HeaderName, id)

		c.Next()
	}
}
