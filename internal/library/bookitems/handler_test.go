package bookitems

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/internal/platform/apperr"
	"library-backend/internal/platform/correlation"
	"library-backend/internal/platform/paging"
)

func newTestRouter(t *testing.T, repo *memRepo) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger, _ := test.NewNullLogger()
	r := gin.New()
	r.Use(correlation.Middleware())
	RegisterRoutes(r, NewService(repo, logger, 14), logger)
	return r
}

func do(r http.Handler, method, path, body, cid string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if cid != "" {
		req.Header.Set(correlation.HeaderName, cid)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodePayload(t *testing.T, w *httptest.ResponseRecorder) apperr.Payload {
	t.Helper()
	var p apperr.Payload
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	return p
}

func TestHandler_BorrowAndReturn(t *testing.T) {
	repo := newMemRepo()
	seedItem(repo, "X")
	r := newTestRouter(t, repo)

	w := do(r, http.MethodPut, "/book-items/X/borrow", `{"userId":"A","status":"BORROWED"}`, "abc")
	require.Equal(t, http.StatusAccepted, w.Code, w.Body.String())
	assert.Equal(t, "abc", w.Header().Get(correlation.HeaderName))
	var item BookItemResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &item))
	assert.Equal(t, StatusBorrowed, item.Status)

	w = do(r, http.MethodPut, "/book-items/X/borrow", `{"userId":"B","status":"BORROWED"}`, "def")
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "def", w.Header().Get(correlation.HeaderName))
	p := decodePayload(t, w)
	assert.Equal(t, "def", p.CID)
	assert.Equal(t, apperr.CodeConflict, p.ErrorID)
	assert.NotEmpty(t, p.ErrorMsg)

	w = do(r, http.MethodPut, "/book-items/X/return", `{"userId":"A"}`, "")
	require.Equal(t, http.StatusAccepted, w.Code)
	assert.NotEmpty(t, w.Header().Get(correlation.HeaderName))
}

func TestHandler_MissingParameter(t *testing.T) {
	repo := newMemRepo()
	seedItem(repo, "X")
	r := newTestRouter(t, repo)

	w := do(r, http.MethodPut, "/book-items/X/borrow", `{"status":"BORROWED"}`, "c1")
	require.Equal(t, http.StatusBadRequest, w.Code)
	p := decodePayload(t, w)
	assert.Equal(t, apperr.CodeMissingParameter, p.ErrorID)
	assert.Equal(t, "c1", p.CID)

	w = do(r, http.MethodPut, "/book-items/X/borrow", `{`, "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apperr.CodeInvalidArgument, decodePayload(t, w).ErrorID)

	// ボディなしは壊れた JSON ではなく必須項目の欠落
	for _, path := range []string{"/book-items/X/borrow", "/book-items/X/return"} {
		w = do(r, http.MethodPut, path, "", "c2")
		require.Equal(t, http.StatusBadRequest, w.Code, path)
		p = decodePayload(t, w)
		assert.Equal(t, apperr.CodeMissingParameter, p.ErrorID, path)
		assert.Equal(t, "userId is required", p.ErrorMsg, path)
		assert.Equal(t, "c2", p.CID)
	}

	w = do(r, http.MethodPost, "/book-items", "", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apperr.CodeMissingParameter, decodePayload(t, w).ErrorID)
}

func TestHandler_NotFound(t *testing.T) {
	r := newTestRouter(t, newMemRepo())

	w := do(r, http.MethodGet, "/book-items/nope", "", "")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, apperr.CodeNotFound, decodePayload(t, w).ErrorID)
}

func TestHandler_InternalErrorHidesDetail(t *testing.T) {
	repo := newMemRepo()
	seedItem(repo, "X")
	repo.failAppend = errors.New("dial tcp 10.0.0.3:3306: connection refused")
	r := newTestRouter(t, repo)

	w := do(r, http.MethodPut, "/book-items/X/borrow", `{"userId":"A","status":"BORROWED"}`, "c9")
	require.Equal(t, http.StatusInternalServerError, w.Code)
	p := decodePayload(t, w)
	assert.Equal(t, apperr.CodeInternal, p.ErrorID)
	assert.Equal(t, "c9", p.CID)
	assert.NotContains(t, w.Body.String(), "10.0.0.3")
}

func TestHandler_List(t *testing.T) {
	repo := newMemRepo()
	seedItem(repo, "X")
	seedItem(repo, "Y")
	r := newTestRouter(t, repo)

	w := do(r, http.MethodPut, "/book-items/X/borrow", `{"userId":"A","status":"BORROWED"}`, "")
	require.Equal(t, http.StatusAccepted, w.Code)

	w = do(r, http.MethodGet, "/book-items?status=BORROWED&startDate=2000-01-01&endDate=2000-01-31", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	var page paging.Page[BookItemResponse]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Equal(t, int64(0), page.Total)
	assert.Empty(t, page.Items)
	assert.Contains(t, w.Body.String(), `"items":[]`)

	w = do(r, http.MethodGet, "/book-items?pageSize=500", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Equal(t, 100, page.PageSize)
	assert.Equal(t, int64(2), page.Total)

	w = do(r, http.MethodGet, "/book-items?status=bogus", "", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apperr.CodeInvalidArgument, decodePayload(t, w).ErrorID)
}

func TestHandler_CreateDeleteHistory(t *testing.T) {
	r := newTestRouter(t, newMemRepo())

	w := do(r, http.MethodPost, "/book-items", `{"bookId":"b1"}`, "")
	require.Equal(t, http.StatusCreated, w.Code)
	var item BookItemResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &item))
	assert.Equal(t, "/book-items/"+item.ID, w.Header().Get("Location"))

	w = do(r, http.MethodPut, "/book-items/"+item.ID+"/borrow", `{"userId":"A","status":"BORROWED"}`, "")
	require.Equal(t, http.StatusAccepted, w.Code)

	w = do(r, http.MethodGet, "/book-items/"+item.ID+"/history", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	var page paging.Page[HistoryResponse]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	require.Len(t, page.Items, 1)
	assert.Equal(t, ActionBorrow, page.Items[0].Action)

	w = do(r, http.MethodDelete, "/book-items/"+item.ID, "", "")
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(r, http.MethodPut, "/book-items/"+item.ID+"/return", `{"userId":"A"}`, "")
	require.Equal(t, http.StatusAccepted, w.Code)
	w = do(r, http.MethodDelete, "/book-items/"+item.ID, "", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestParseDate(t *testing.T) {
	d, err := parseDate("2024-02-10", true)
	require.NoError(t, err)
	assert.Equal(t, 23, d.Hour())
	assert.Equal(t, 10, d.Day())

	d, err = parseDate("2024-02-10T05:00:00+09:00", false)
	require.NoError(t, err)
	assert.Equal(t, 20, d.Hour())

	_, err = parseDate("yesterday", false)
	assert.Error(t, err)
}
