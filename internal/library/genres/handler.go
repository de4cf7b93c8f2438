package genres

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"library-backend/internal/platform/apperr"
)

type Handler struct {
	svc *Service
	log logrus.FieldLogger
}

func RegisterRoutes(r gin.IRoutes, svc *Service, log logrus.FieldLogger, writeGuards ...gin.HandlerFunc) {
	h := &Handler{svc: svc, log: log}
	guarded := func(fn gin.HandlerFunc) []gin.HandlerFunc {
		return append(append([]gin.HandlerFunc{}, writeGuards...), fn)
	}
	r.POST("/genres", guarded(h.CreateGenre)...)
	r.GET("/genres", h.ListGenres)
	r.GET("/genres/:id", h.GetGenre)
	r.PUT("/genres/:id", guarded(h.UpdateGenre)...)
	r.DELETE("/genres/:id", guarded(h.DisableGenre)...)
}

func (h *Handler) ListGenres(c *gin.Context) {
	resp, err := h.svc.ListGenres(c.Request.Context(), c.Query("all"))
	if err != nil {
		apperr.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) GetGenre(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	resp, err := h.svc.GetGenre(c.Request.Context(), id)
	if err != nil {
		apperr.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) CreateGenre(c *gin.Context) {
	var req CreateGenreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Respond(c, h.log, apperr.ErrInvalid("invalid json"))
		return
	}
	resp, err := h.svc.CreateGenre(c.Request.Context(), req)
	if err != nil {
		apperr.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *Handler) UpdateGenre(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	var req UpdateGenreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Respond(c, h.log, apperr.ErrInvalid("invalid json"))
		return
	}
	resp, err := h.svc.UpdateGenre(c.Request.Context(), id, req)
	if err != nil {
		apperr.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) DisableGenre(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	if err := h.svc.DisableGenre(c.Request.Context(), id); err != nil {
		apperr.Respond(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) parseID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		apperr.Respond(c, h.log, apperr.ErrInvalid("invalid id"))
		return 0, false
	}
	return id, true
}
