package books

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"library-backend/internal/platform/apperr"
	"library-backend/internal/platform/paging"
)

type Handler struct {
	svc *Service
	log logrus.FieldLogger
}

func RegisterRoutes(r gin.IRoutes, svc *Service, log logrus.FieldLogger, writeGuards ...gin.HandlerFunc) {
	h := &Handler{svc: svc, log: log}

	r.POST("/books", append(append([]gin.HandlerFunc{}, writeGuards...), h.Create)...)
	r.GET("/books", h.List)
	r.GET("/books/:id", h.Get)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Respond(c, h.log, apperr.ErrInvalid("invalid json"))
		return
	}
	res, err := h.svc.CreateBook(c.Request.Context(), req)
	if err != nil {
		apperr.Respond(c, h.log, err)
		return
	}
	c.Header("Location", "/books/"+res.ID)
	c.JSON(http.StatusCreated, res)
}

func (h *Handler) Get(c *gin.Context) {
	res, err := h.svc.GetBook(c.Request.Context(), c.Param("id"))
	if err != nil {
		apperr.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// GET /books?genreId=&author=&title=&pageSize=&pageNumber=&sort=&direction=
func (h *Handler) List(c *gin.Context) {
	q := ListQuery{Page: paging.FromQuery(c)}
	if v := c.Query("genreId"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			apperr.Respond(c, h.log, apperr.ErrInvalid("genreId must be a number"))
			return
		}
		q.Search.GenreID = &id
	}
	if v := c.Query("author"); v != "" {
		q.Search.Author = &v
	}
	if v := c.Query("title"); v != "" {
		q.Search.Title = &v
	}

	res, err := h.svc.ListBooks(c.Request.Context(), q)
	if err != nil {
		apperr.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
