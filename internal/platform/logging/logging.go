package logging

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"library-backend/internal/platform/correlation"
)

const FieldCID = "cid"

// New builds the process logger. release mode logs JSON, dev mode logs text.
func New(mode, level string) *logrus.Logger {
	return NewWithOutput(mode, level, os.Stdout)
}

func NewWithOutput(mode, level string, out io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(out)
	if mode == "release" {
		l.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	lv, err := logrus.ParseLevel(level)
	if err != nil {
		lv = logrus.InfoLevel
	}
	l.SetLevel(lv)
	return l
}

// FromContext returns an entry tagged with the request's correlation id.
func FromContext(ctx context.Context, base logrus.FieldLogger) *logrus.Entry {
	return base.WithField(FieldCID, correlation.FromContext(ctx))
}

// RequestLogger は gin.Logger() の代わり。1リクエスト1行、cid 付き。
func RequestLogger(base logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := FromContext(c.Request.Context(), base).WithFields(logrus.Fields{
			"method":      c.Request.Method,
			"path":        c.FullPath(),
			"status":      c.Writer.Status(),
			"duration_ms": time.Since(start).Milliseconds(),
		})
		switch {
		case c.Writer.Status() >= 500:
			entry.Error("request completed")
		case c.Writer.Status() >= 400:
			entry.Warn("request completed")
		default:
			entry.Info("request completed")
		}
	}
}
