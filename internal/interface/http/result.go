package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/employee-hierarchy-api/pkg/helpers"
	"github.com/oksasatya/employee-hierarchy-api/pkg/response"
	"github.com/oksasatya/employee-hierarchy-api/pkg/result"
)

// handled writes the error response for a fatal error or a business failure and
// reports whether the caller may write a success response.
func handled[T any](c *gin.Context, logger *logrus.Logger, res result.Result[T], err error) bool {
	if err != nil {
		if logger != nil {
			helpers.LogError(logger, "unhandled error", err, logrus.Fields{
				"request_id": c.GetString("request_id"),
				"path":       c.FullPath(),
			})
		}
		response.Error(c, http.StatusInternalServerError, "An unexpected error occurred.", nil)
		return false
	}
	if res.Failed() {
		response.Failure(c, res.Failure())
		return false
	}
	return true
}

func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "The identifier is not a valid UUID.", map[string]string{"id": "Id must be a valid UUID"})
		return uuid.Nil, false
	}
	return id, true
}
