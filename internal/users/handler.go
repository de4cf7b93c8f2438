package users

import (
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

func RegisterRoutes(r gin.IRoutes, svc *Service, log logrus.FieldLogger, writeGuards ...gin.HandlerFunc) {
	h := &Handler{svc: svc, log: log}
	r.POST("/users", append(append([]gin.HandlerFunc{}, writeGuards...), h.Create)...)
	r.GET("/users", h.List)
	r.GET("/users/:id", h.Get)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Respond(c, h.log, apperr.ErrInvalid("invalid json"))
		return
	}
	res, err := h.svc.CreateUser(c.Request.Context(), req)
	if err != nil {
		apperr.Respond(c, h.log, err)
		return
	}
	c.Header("Location", "/users/"+res.ID)
	c.JSON(http.StatusCreated, res)
}

func (h *Handler) Get(c *gin.Context) {
	res, err := h.svc.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		apperr.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// GET /users?id=&username=&moderationState=&userState=&roleType=&startDate=&endDate=
func (h *Handler) List(c *gin.Context) {
	q, err := parseListQuery(c)
	if err != nil {
		apperr.Respond(c, h.log, err)
		return
	}
	res, err := h.svc.ListUsers(c.Request.Context(), q)
	if err != nil {
		apperr.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func parseListQuery(c *gin.Context) (ListQuery, error) {
	q := ListQuery{Page: paging.FromQuery(c)}
	f := &q.Filter

	if v := c.Query("id"); v != "" {
		f.ID = &v
	}
	if v := c.Query("username"); v != "" {
		f.Username = &v
	}
	if v := c.Query("moderationState"); v != "" {
		st, ok := ParseModerationState(v)
		if !ok {
			return q, apperr.ErrInvalid("unknown moderationState " + v)
		}
		f.ModerationState = &st
	}
	if v := c.Query("userState"); v != "" {
		st, ok := ParseUserState(v)
		if !ok {
			return q, apperr.ErrInvalid("unknown userState " + v)
		}
		f.UserState = &st
	}
	if v := c.Query("roleType"); v != "" {
		r, ok := ParseRoleType(v)
		if !ok {
			return q, apperr.ErrInvalid("unknown roleType " + v)
		}
		f.RoleType = &r
	}
	if v := c.Query("startDate"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return q, apperr.ErrInvalid("invalid startDate, expected RFC3339")
		}
		f.CreatedFrom = &t
	}
	if v := c.Query("endDate"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return q, apperr.ErrInvalid("invalid endDate, expected RFC3339")
		}
		f.CreatedTo = &t
	}
	return q, nil
}
