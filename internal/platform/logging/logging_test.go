package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/internal/platform/correlation"
)

func TestNewWithOutput(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithOutput("release", "debug", &buf)
	assert.Equal(t, logrus.DebugLevel, l.GetLevel())

	FromContext(correlation.With(context.Background(), "c-1"), l).Info("hello")
	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "c-1", line["cid"])
	assert.Equal(t, "hello", line["msg"])

	assert.Equal(t, logrus.InfoLevel, NewWithOutput("dev", "loud", &buf).GetLevel())
}

func TestRequestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	l := NewWithOutput("release", "info", &buf)

	r := gin.New()
	r.Use(correlation.Middleware(), RequestLogger(l))
	r.GET("/items/:id", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	req := httptest.NewRequest(http.MethodGet, "/items/42", nil)
	req.Header.Set(correlation.HeaderName, "c-2")
	r.ServeHTTP(httptest.NewRecorder(), req)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "c-2", line["cid"])
	assert.Equal(t, "/items/:id", line["path"])
	assert.Equal(t, float64(404), line["status"])
	assert.Equal(t, "warning", line["level"])
}
