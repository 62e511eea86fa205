package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/employee-hierarchy-api/internal/application"
	"github.com/oksasatya/employee-hierarchy-api/internal/mediator"
	"github.com/oksasatya/employee-hierarchy-api/pkg/response"
	"github.com/oksasatya/employee-hierarchy-api/pkg/result"
	"github.com/oksasatya/employee-hierarchy-api/pkg/validation"
)

type EmployeeHandler struct {
	Dispatcher *mediator.Dispatcher
	Logger     *logrus.Logger
	// BasePath prefixes the Location header, e.g. /api/v1/employees
	BasePath string
}

func NewEmployeeHandler(d *mediator.Dispatcher, logger *logrus.Logger, basePath string) *EmployeeHandler {
	return &EmployeeHandler{Dispatcher: d, Logger: logger, BasePath: basePath}
}

type idResponse struct {
	ID uuid.UUID `json:"id"`
}

type listParams struct {
	Page     int `form:"page,default=1"`
	PageSize int `form:"pageSize,default=50"`
}

type searchParams struct {
	Q    string `form:"q"`
	Size int    `form:"size,default=10"`
}

func (h *EmployeeHandler) location(id uuid.UUID) string {
	return h.BasePath + "/" + id.String()
}

func (h *EmployeeHandler) Create(c *gin.Context) {
	var p application.EmployeePayload
	if err := c.ShouldBindJSON(&p); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	res, err := mediator.Send[application.CreateEmployeeCommand, uuid.UUID](c.Request.Context(), h.Dispatcher, application.CreateEmployeeCommand{Payload: p})
	if !handled(c, h.Logger, res, err) {
		return
	}
	c.Header("Location", h.location(res.Value()))
	c.JSON(http.StatusCreated, idResponse{ID: res.Value()})
}

func (h *EmployeeHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var p application.EmployeePayload
	if err := c.ShouldBindJSON(&p); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	res, err := mediator.Send[application.UpdateEmployeeCommand, uuid.UUID](c.Request.Context(), h.Dispatcher, application.UpdateEmployeeCommand{ID: id, Payload: p})
	if !handled(c, h.Logger, res, err) {
		return
	}
	c.Header("Location", h.location(res.Value()))
	c.JSON(http.StatusOK, idResponse{ID: res.Value()})
}

func (h *EmployeeHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	res, err := mediator.Send[application.DeleteEmployeeCommand, result.Empty](c.Request.Context(), h.Dispatcher, application.DeleteEmployeeCommand{ID: id})
	if !handled(c, h.Logger, res, err) {
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *EmployeeHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	res, err := mediator.Query[application.GetEmployeeQuery, application.EmployeeResponse](c.Request.Context(), h.Dispatcher, application.GetEmployeeQuery{ID: id})
	if !handled(c, h.Logger, res, err) {
		return
	}
	c.JSON(http.StatusOK, res.Value())
}

func (h *EmployeeHandler) List(c *gin.Context) {
	var p listParams
	if err := c.ShouldBindQuery(&p); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid query", map[string]string{"page": "Page and pageSize must be integers"})
		return
	}
	q := application.ListEmployeesQuery{Page: p.Page, PageSize: p.PageSize}
	res, err := mediator.Query[application.ListEmployeesQuery, []application.EmployeeResponse](c.Request.Context(), h.Dispatcher, q)
	if !handled(c, h.Logger, res, err) {
		return
	}
	c.JSON(http.StatusOK, res.Value())
}

func (h *EmployeeHandler) Search(c *gin.Context) {
	var p searchParams
	if err := c.ShouldBindQuery(&p); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid query", map[string]string{"size": "Size must be an integer"})
		return
	}
	q := application.SearchEmployeesQuery{Q: p.Q, Size: p.Size}
	res, err := mediator.Query[application.SearchEmployeesQuery, []application.EmployeeResponse](c.Request.Context(), h.Dispatcher, q)
	if !handled(c, h.Logger, res, err) {
		return
	}
	c.JSON(http.StatusOK, res.Value())
}
