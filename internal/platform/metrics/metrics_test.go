package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddlewareCountsRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusTeapot) })

	before := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/ping", "418"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.Equal(t, http.StatusTeapot, w.Code)

	after := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/ping", "418"))
	assert.Equal(t, before+1, after)
}

func TestRecordTransition(t *testing.T) {
	before := testutil.ToFloat64(lendingTransitions.WithLabelValues("borrow", "conflict"))
	RecordTransition("borrow", "conflict")
	assert.Equal(t, before+1, testutil.ToFloat64(lendingTransitions.WithLabelValues("borrow", "conflict")))
}

func TestHandlerServesRegistry(t *testing.T) {
	RecordTransition("return", "ok")
	w := httptest.NewRecorder()
	Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "library_lending_transitions_total")
}
