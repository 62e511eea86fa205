package response

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/employee-hierarchy-api/pkg/result"
)

const problemContentType = "application/problem+json"

// Problem is an RFC 7807 problem details body with the error taxonomy as extensions.
type Problem struct {
	Type            string            `json:"type"`
	Title           string            `json:"title"`
	Status          int               `json:"status"`
	Detail          string            `json:"detail"`
	Instance        string            `json:"instance,omitempty"`
	ErrorCode       string            `json:"errorCode,omitempty"`
	ErrorDefinition string            `json:"errorDefinition,omitempty"`
	Errors          map[string]string `json:"errors,omitempty"`
	RequestID       string            `json:"requestId,omitempty"`
	Timestamp       time.Time         `json:"timestamp"`
}

// StatusFor maps a failure definition to its HTTP status and title.
func StatusFor(d result.Definition) (int, string) {
	switch d {
	case result.Validation:
		return http.StatusBadRequest, "Validation Error"
	case result.NotFound:
		return http.StatusNotFound, "Resource Not Found"
	case result.Concurrency:
		return http.StatusConflict, "Concurrency Conflict"
	case result.Conflict:
		return http.StatusConflict, "Data Conflict"
	case result.Unauthorized:
		return http.StatusUnauthorized, "Unauthorized"
	default:
		return http.StatusBadRequest, "Bad Request"
	}
}

func newProblem(c *gin.Context, status int, title, detail string) Problem {
	return Problem{
		Type:      "https://httpstatuses.com/" + strconv.Itoa(status),
		Title:     title,
		Status:    status,
		Detail:    detail,
		Instance:  c.Request.URL.Path,
		RequestID: c.GetString("request_id"),
		Timestamp: time.Now().UTC(),
	}
}

// Failure writes a business failure as problem details.
func Failure(c *gin.Context, err *result.Error) {
	status, title := StatusFor(err.Definition)
	p := newProblem(c, status, title, err.Description)
	p.ErrorCode = err.Code
	p.ErrorDefinition = err.Definition.String()
	if err.Definition == result.Validation {
		p.Errors = err.Fields
	}
	write(c, p)
}

// Error writes a problem that did not come from a handler, e.g. a malformed request.
func Error(c *gin.Context, status int, detail string, fields map[string]string) {
	_, title := StatusFor(result.Failure)
	switch status {
	case http.StatusBadRequest:
		if len(fields) > 0 {
			title = "Validation Error"
		}
	case http.StatusUnauthorized:
		title = "Unauthorized"
	case http.StatusTooManyRequests:
		title = "Too Many Requests"
	case http.StatusInternalServerError:
		title = "Internal Server Error"
	}
	p := newProblem(c, status, title, detail)
	p.Errors = fields
	write(c, p)
}

func write(c *gin.Context, p Problem) {
	c.Header("Content-Type", problemContentType)
	c.AbortWithStatusJSON(p.Status, p)
}
