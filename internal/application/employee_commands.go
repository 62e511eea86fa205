package application

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/oksasatya/employee-hierarchy-api/internal/domain/entity"
	"github.com/oksasatya/employee-hierarchy-api/internal/domain/repository"
	"github.com/oksasatya/employee-hierarchy-api/pkg/result"
)

const employeeResource = "Employee"

// EmployeePayload is the writable part of an employee.
type EmployeePayload struct {
	FirstName    string     `json:"firstName" validate:"required,max=100"`
	LastName     string     `json:"lastName" validate:"required,max=100"`
	Email        string     `json:"email" validate:"required,email,max=100"`
	IsSupervisor bool       `json:"isSupervisor"`
	SupervisorID *uuid.UUID `json:"supervisorId"`
}

type CreateEmployeeCommand struct {
	Payload EmployeePayload `json:"payload"`
}

type UpdateEmployeeCommand struct {
	ID      uuid.UUID       `json:"id"`
	Payload EmployeePayload `json:"payload"`
}

type DeleteEmployeeCommand struct {
	ID uuid.UUID `json:"id"`
}

func emailExists() *result.Error {
	return result.ConflictError("Employee.EmailConflict", "Email already exists")
}

func supervisorError(msg string) *result.Error {
	return result.ValidationError(employeeResource, map[string]string{"supervisorId": msg})
}

// The only unique column written by employee commands is the email.
func (CreateEmployeeCommand) DuplicateKeyError() *result.Error { return emailExists() }
func (UpdateEmployeeCommand) DuplicateKeyError() *result.Error { return emailExists() }

type CreateEmployeeHandler struct {
	repo repository.EmployeeRepository
}

func NewCreateEmployeeHandler(repo repository.EmployeeRepository) *CreateEmployeeHandler {
	return &CreateEmployeeHandler{repo: repo}
}

func (h *CreateEmployeeHandler) Handle(ctx context.Context, cmd CreateEmployeeCommand) (result.Result[uuid.UUID], error) {
	p := cmd.Payload
	taken, err := h.repo.Any(ctx, repository.Where("email", strings.TrimSpace(p.Email)))
	if err != nil {
		return result.Result[uuid.UUID]{}, fmt.Errorf("check email: %w", err)
	}
	if taken {
		return result.Fail[uuid.UUID](emailExists()), nil
	}
	if p.SupervisorID != nil {
		found, err := h.repo.Any(ctx, repository.Where("id", *p.SupervisorID))
		if err != nil {
			return result.Result[uuid.UUID]{}, fmt.Errorf("check supervisor: %w", err)
		}
		if !found {
			return result.Fail[uuid.UUID](result.NotFoundError(employeeResource, *p.SupervisorID)), nil
		}
	}

	e := entity.NewEmployee(p.FirstName, p.LastName, p.Email, p.IsSupervisor, p.SupervisorID)
	if err := h.repo.Add(ctx, e); err != nil {
		return result.Result[uuid.UUID]{}, err
	}
	return result.Ok(e.ID), nil
}

type UpdateEmployeeHandler struct {
	repo repository.EmployeeRepository
}

func NewUpdateEmployeeHandler(repo repository.EmployeeRepository) *UpdateEmployeeHandler {
	return &UpdateEmployeeHandler{repo: repo}
}

func (h *UpdateEmployeeHandler) Handle(ctx context.Context, cmd UpdateEmployeeCommand) (result.Result[uuid.UUID], error) {
	e, err := h.repo.GetByID(ctx, cmd.ID, true)
	if errors.Is(err, repository.ErrNotFound) {
		return result.Fail[uuid.UUID](result.NotFoundError(employeeResource, cmd.ID)), nil
	}
	if err != nil {
		return result.Result[uuid.UUID]{}, fmt.Errorf("load employee: %w", err)
	}

	p := cmd.Payload
	taken, err := h.repo.Any(ctx, repository.Where("email", strings.TrimSpace(p.Email)).Except("id", cmd.ID))
	if err != nil {
		return result.Result[uuid.UUID]{}, fmt.Errorf("check email: %w", err)
	}
	if taken {
		return result.Fail[uuid.UUID](emailExists()), nil
	}

	if p.SupervisorID != nil {
		fail, err := h.checkSupervisor(ctx, cmd.ID, *p.SupervisorID)
		if err != nil {
			return result.Result[uuid.UUID]{}, err
		}
		if fail != nil {
			return result.Fail[uuid.UUID](fail), nil
		}
	}

	e.Update(p.FirstName, p.LastName, p.Email, p.IsSupervisor, p.SupervisorID)
	if err := h.repo.Update(ctx, e); err != nil {
		return result.Result[uuid.UUID]{}, err
	}
	return result.Ok(e.ID), nil
}

// checkSupervisor rejects self supervision, unknown supervisors and any assignment that
// would put the employee above itself in the chain.
func (h *UpdateEmployeeHandler) checkSupervisor(ctx context.Context, id, supervisorID uuid.UUID) (*result.Error, error) {
	if supervisorID == id {
		return supervisorError("Employee cannot be their own supervisor"), nil
	}
	candidate, err := h.repo.GetByID(ctx, supervisorID, false)
	if errors.Is(err, repository.ErrNotFound) {
		return result.NotFoundError("Supervisor", supervisorID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load supervisor: %w", err)
	}
	circular := supervisorError("Circular reference detected: The selected supervisor has this employee as their supervisor")
	if candidate.ReportsTo(id) {
		return circular, nil
	}
	chain, err := h.repo.SupervisorChain(ctx, supervisorID)
	if err != nil {
		return nil, fmt.Errorf("load supervisor chain: %w", err)
	}
	if slices.Contains(chain, id) {
		return circular, nil
	}
	return nil, nil
}

type DeleteEmployeeHandler struct {
	repo repository.EmployeeRepository
}

func NewDeleteEmployeeHandler(repo repository.EmployeeRepository) *DeleteEmployeeHandler {
	return &DeleteEmployeeHandler{repo: repo}
}

func (h *DeleteEmployeeHandler) Handle(ctx context.Context, cmd DeleteEmployeeCommand) (result.Result[result.Empty], error) {
	e, err := h.repo.GetByID(ctx, cmd.ID, true)
	if errors.Is(err, repository.ErrNotFound) {
		return result.Fail[result.Empty](result.NotFoundError(employeeResource, cmd.ID)), nil
	}
	if err != nil {
		return result.Result[result.Empty]{}, fmt.Errorf("load employee: %w", err)
	}

	reports, err := h.repo.GetDirectReports(ctx, cmd.ID)
	if err != nil {
		return result.Result[result.Empty]{}, fmt.Errorf("load direct reports: %w", err)
	}
	if n := len(reports); n > 0 {
		return result.Fail[result.Empty](result.ValidationError(employeeResource, map[string]string{
			"directReports": fmt.Sprintf("Cannot delete employee with direct reports. %d cases.", n),
		})), nil
	}

	if err := h.repo.Remove(ctx, e); err != nil {
		return result.Result[result.Empty]{}, err
	}
	return result.Ok(result.Empty{}), nil
}
