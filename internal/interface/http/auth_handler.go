package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/employee-hierarchy-api/internal/application"
	"github.com/oksasatya/employee-hierarchy-api/internal/mediator"
	"github.com/oksasatya/employee-hierarchy-api/pkg/response"
	"github.com/oksasatya/employee-hierarchy-api/pkg/validation"
)

type AuthHandler struct {
	Dispatcher *mediator.Dispatcher
	Logger     *logrus.Logger
}

func NewAuthHandler(d *mediator.Dispatcher, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Dispatcher: d, Logger: logger}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var cmd application.LoginCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	res, err := mediator.Send[application.LoginCommand, application.AuthResponse](c.Request.Context(), h.Dispatcher, cmd)
	if !handled(c, h.Logger, res, err) {
		return
	}
	c.JSON(http.StatusOK, res.Value())
}
