package result

import "fmt"

// Definition classifies a business failure. The HTTP layer maps it to a status code.
type Definition int

const (
	None Definition = iota
	Failure
	NotFound
	Concurrency
	Validation
	Conflict
	Unauthorized
)

func (d Definition) String() string {
	switch d {
	case None:
		return "None"
	case Failure:
		return "Error"
	case NotFound:
		return "NotFound"
	case Concurrency:
		return "Concurrency"
	case Validation:
		return "Validation"
	case Conflict:
		return "Conflict"
	case Unauthorized:
		return "Unauthorized"
	default:
		return fmt.Sprintf("Definition(%d)", int(d))
	}
}

// Error is a typed business failure carried inside a Result.
type Error struct {
	Code        string
	Definition  Definition
	Description string
	// Fields holds per-field validation messages, keyed by field name.
	Fields map[string]string
}

func (e *Error) Error() string {
	return e.Code + ": " + e.Description
}

// NewError builds a generic failure with the given code and description.
func NewError(code, description string) *Error {
	return &Error{Code: code, Definition: Failure, Description: description}
}

// NotFoundError describes a missing resource. The id appears verbatim in the description.
func NotFoundError(resource string, id any) *Error {
	return &Error{
		Code:        resource + ".NotFound",
		Definition:  NotFound,
		Description: fmt.Sprintf("Resource '%s' with identifier '%v' was not found.", resource, id),
	}
}

// ValidationError groups field level messages for one resource.
func ValidationError(resource string, fields map[string]string) *Error {
	return &Error{
		Code:        resource + ".Validation",
		Definition:  Validation,
		Description: fmt.Sprintf("Resource '%s' has %d validation(s) error(s).", resource, len(fields)),
		Fields:      fields,
	}
}

func ConflictError(code, description string) *Error {
	return &Error{Code: code, Definition: Conflict, Description: description}
}

func UnauthorizedError(code, description string) *Error {
	return &Error{Code: code, Definition: Unauthorized, Description: description}
}

func ConcurrencyError(code, description string) *Error {
	return &Error{Code: code, Definition: Concurrency, Description: description}
}

// Result holds either a value or a business failure.
type Result[T any] struct {
	value T
	err   *Error
}

// Empty is the value of results that carry no payload.
type Empty struct{}

func Ok[T any](v T) Result[T] {
	return Result[T]{value: v}
}

func Fail[T any](err *Error) Result[T] {
	if err == nil {
		err = NewError("Unknown", "unknown failure")
	}
	return Result[T]{err: err}
}

func (r Result[T]) IsSuccess() bool { return r.err == nil }

func (r Result[T]) Value() T { return r.value }

// Failure returns the business failure, nil on success.
func (r Result[T]) Failure() *Error { return r.err }

// Failed reports whether the result carries a failure.
func (r Result[T]) Failed() bool { return r.err != nil }
