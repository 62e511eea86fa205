package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/oksasatya/employee-hierarchy-api/internal/domain/repository"
	"github.com/oksasatya/employee-hierarchy-api/pkg/result"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 50
)

type GetEmployeeQuery struct {
	ID uuid.UUID `json:"id"`
}

type ListEmployeesQuery struct {
	Page     int `json:"page" validate:"gte=1"`
	PageSize int `json:"pageSize" validate:"gte=1,lte=1000"`
}

type SearchEmployeesQuery struct {
	Q    string `json:"q" validate:"required,max=200"`
	Size int    `json:"size" validate:"gte=0,lte=50"`
}

// EmployeeSearcher finds employee ids matching free text, best match first.
type EmployeeSearcher interface {
	SearchEmployees(ctx context.Context, q string, size int) ([]uuid.UUID, error)
}

type GetEmployeeHandler struct {
	repo repository.EmployeeRepository
}

func NewGetEmployeeHandler(repo repository.EmployeeRepository) *GetEmployeeHandler {
	return &GetEmployeeHandler{repo: repo}
}

// Handle includes the transitive report count for supervisors only.
func (h *GetEmployeeHandler) Handle(ctx context.Context, q GetEmployeeQuery) (result.Result[EmployeeResponse], error) {
	e, err := h.repo.GetByIDWithSupervisor(ctx, q.ID)
	if errors.Is(err, repository.ErrNotFound) {
		return result.Fail[EmployeeResponse](result.NotFoundError(employeeResource, q.ID)), nil
	}
	if err != nil {
		return result.Result[EmployeeResponse]{}, fmt.Errorf("load employee: %w", err)
	}
	resp := toEmployeeResponse(e)
	if e.IsSupervisor {
		n, err := h.repo.GetTotalReportsCount(ctx, e.ID)
		if err != nil {
			return result.Result[EmployeeResponse]{}, fmt.Errorf("count reports: %w", err)
		}
		resp.TotalReportsCount = n
	}
	return result.Ok(resp), nil
}

type ListEmployeesHandler struct {
	repo repository.EmployeeRepository
}

func NewListEmployeesHandler(repo repository.EmployeeRepository) *ListEmployeesHandler {
	return &ListEmployeesHandler{repo: repo}
}

func (h *ListEmployeesHandler) Handle(ctx context.Context, q ListEmployeesQuery) (result.Result[[]EmployeeResponse], error) {
	list, err := h.repo.GetPaginated(ctx, q.Page, q.PageSize)
	if err != nil {
		return result.Result[[]EmployeeResponse]{}, fmt.Errorf("list employees: %w", err)
	}
	return result.Ok(toEmployeeResponses(list)), nil
}

type SearchEmployeesHandler struct {
	repo     repository.EmployeeRepository
	searcher EmployeeSearcher
}

// NewSearchEmployeesHandler accepts a nil searcher; searches then return no hits.
func NewSearchEmployeesHandler(repo repository.EmployeeRepository, searcher EmployeeSearcher) *SearchEmployeesHandler {
	return &SearchEmployeesHandler{repo: repo, searcher: searcher}
}

// Handle resolves index hits against the database so stale documents are skipped.
func (h *SearchEmployeesHandler) Handle(ctx context.Context, q SearchEmployeesQuery) (result.Result[[]EmployeeResponse], error) {
	out := []EmployeeResponse{}
	if h.searcher == nil {
		return result.Ok(out), nil
	}
	size := q.Size
	if size <= 0 {
		size = 10
	}
	ids, err := h.searcher.SearchEmployees(ctx, q.Q, size)
	if err != nil {
		return result.Result[[]EmployeeResponse]{}, fmt.Errorf("search employees: %w", err)
	}
	for _, id := range ids {
		e, err := h.repo.GetByIDWithSupervisor(ctx, id)
		if errors.Is(err, repository.ErrNotFound) {
			continue
		}
		if err != nil {
			return result.Result[[]EmployeeResponse]{}, fmt.Errorf("load employee %s: %w", id, err)
		}
		out = append(out, toEmployeeResponse(e))
	}
	return result.Ok(out), nil
}
