package bookitems

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"library-backend/internal/platform/apperr"
	"library-backend/internal/platform/paging"
)

type Handler struct {
	svc *Service
	log logrus.FieldLogger
}

// RegisterRoutes mounts the book item endpoints. writeGuards run before the
// catalogue writes (create / delete); borrow and return are open to any
// authenticated caller.
func RegisterRoutes(r gin.IRoutes, svc *Service, log logrus.FieldLogger, writeGuards ...gin.HandlerFunc) {
	h := &Handler{svc: svc, log: log}
	guarded := func(fn gin.HandlerFunc) []gin.HandlerFunc {
		return append(append([]gin.HandlerFunc{}, writeGuards...), fn)
	}

	r.POST("/book-items", guarded(h.Create)...)
	r.GET("/book-items", h.List)
	r.GET("/book-items/:id", h.Get)
	r.DELETE("/book-items/:id", guarded(h.Delete)...)

	// 貸出・返却（202 Accepted）
	r.PUT("/book-items/:id/borrow", h.Borrow)
	r.PUT("/book-items/:id/return", h.Return)

	r.GET("/book-items/:id/history", h.History)
}

// ---------- handlers ----------

// POST /book-items
func (h *Handler) Create(c *gin.Context) {
	var req CreateItemRequest
	if err := bindBody(c, &req); err != nil {
		apperr.Respond(c, h.log, apperr.ErrInvalid("invalid json"))
		return
	}
	res, err := h.svc.CreateItem(c.Request.Context(), req)
	if err != nil {
		apperr.Respond(c, h.log, err)
		return
	}
	c.Header("Location", "/book-items/"+res.ID)
	c.JSON(http.StatusCreated, res)
}

// GET /book-items?status=&id=&bookId=&startDate=&endDate=&pageSize=&pageNumber=&sort=&direction=
func (h *Handler) List(c *gin.Context) {
	q, err := parseListQuery(c)
	if err != nil {
		apperr.Respond(c, h.log, err)
		return
	}
	res, err := h.svc.ListItems(c.Request.Context(), q)
	if err != nil {
		apperr.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) Get(c *gin.Context) {
	res, err := h.svc.GetItem(c.Request.Context(), c.Param("id"))
	if err != nil {
		apperr.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.svc.DeleteItem(c.Request.Context(), c.Param("id")); err != nil {
		apperr.Respond(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// PUT /book-items/:id/borrow
func (h *Handler) Borrow(c *gin.Context) {
	var req BorrowRequest
	if err := bindBody(c, &req); err != nil {
		apperr.Respond(c, h.log, apperr.ErrInvalid("invalid json"))
		return
	}
	res, err := h.svc.Borrow(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		apperr.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusAccepted, res)
}

// PUT /book-items/:id/return
func (h *Handler) Return(c *gin.Context) {
	var req ReturnRequest
	if err := bindBody(c, &req); err != nil {
		apperr.Respond(c, h.log, apperr.ErrInvalid("invalid json"))
		return
	}
	res, err := h.svc.Return(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		apperr.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusAccepted, res)
}

func (h *Handler) History(c *gin.Context) {
	res, err := h.svc.ListHistory(c.Request.Context(), c.Param("id"), paging.FromQuery(c))
	if err != nil {
		apperr.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// ---------- helpers ----------

// bindBody は空ボディを空のリクエストとして扱う。必須項目の欠落はサービス側で判定する
func bindBody(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func parseListQuery(c *gin.Context) (ListQuery, error) {
	q := ListQuery{Page: paging.FromQuery(c)}

	if v := c.Query("status"); v != "" {
		st, ok := ParseStatus(v)
		if !ok {
			return q, apperr.ErrInvalid("unknown status " + v)
		}
		q.Filter.Status = &st
	}
	if v := c.Query("id"); v != "" {
		q.Filter.ID = &v
	}
	if v := c.Query("bookId"); v != "" {
		q.Filter.BookID = &v
	}
	if v := c.Query("startDate"); v != "" {
		t, err := parseDate(v, false)
		if err != nil {
			return q, apperr.ErrInvalid("invalid startDate, expected RFC3339 or YYYY-MM-DD")
		}
		q.Filter.From = &t
	}
	if v := c.Query("endDate"); v != "" {
		t, err := parseDate(v, true)
		if err != nil {
			return q, apperr.ErrInvalid("invalid endDate, expected RFC3339 or YYYY-MM-DD")
		}
		q.Filter.To = &t
	}
	return q, nil
}

// 日付のみ指定の endDate はその日の終わりまで含める
func parseDate(s string, endOfDay bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, err
	}
	if endOfDay {
		d = d.Add(24*time.Hour - time.Microsecond)
	}
	return d, nil
}
