package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"library-backend/internal/platform/apperr"
)

type AuthHandler struct {
	svc *Service
	log logrus.FieldLogger
}

func RegisterRoutes(r gin.IRoutes, svc *Service, log logrus.FieldLogger) {
	h := &AuthHandler{svc: svc, log: log}
	r.POST("/login", h.Login)
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Respond(c, h.log, apperr.ErrInvalid("invalid json"))
		return
	}
	switch {
	case req.Username == "":
		apperr.RespondMissing(c, h.log, "username")
		return
	case req.Password == "":
		apperr.RespondMissing(c, h.log, "password")
		return
	}

	token, err := h.svc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			apperr.Respond(c, h.log, apperr.ErrUnauthorized("invalid username or password"))
			return
		}
		apperr.Respond(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":   token,
		"message": "Login successful",
	})
}
