package application

import (
	"errors"

	"github.com/google/uuid"

	"github.com/oksasatya/employee-hierarchy-api/internal/domain/repository"
	"github.com/oksasatya/employee-hierarchy-api/internal/mediator"
	"github.com/oksasatya/employee-hierarchy-api/pkg/result"
)

// Deps are the collaborators of every handler.
type Deps struct {
	Employees repository.EmployeeRepository
	Users     repository.UserRepository
	Auth      *AuthService
	Searcher  EmployeeSearcher
}

// Register binds all command and query handlers.
func Register(d *mediator.Dispatcher, deps Deps) error {
	return errors.Join(
		mediator.RegisterCommand[LoginCommand, AuthResponse](d, NewLoginHandler(deps.Users, deps.Auth)),
		mediator.RegisterCommand[CreateEmployeeCommand, uuid.UUID](d, NewCreateEmployeeHandler(deps.Employees)),
		mediator.RegisterCommand[UpdateEmployeeCommand, uuid.UUID](d, NewUpdateEmployeeHandler(deps.Employees)),
		mediator.RegisterCommand[DeleteEmployeeCommand, result.Empty](d, NewDeleteEmployeeHandler(deps.Employees)),
		mediator.RegisterQuery[GetEmployeeQuery, EmployeeResponse](d, NewGetEmployeeHandler(deps.Employees)),
		mediator.RegisterQuery[ListEmployeesQuery, []EmployeeResponse](d, NewListEmployeesHandler(deps.Employees)),
		mediator.RegisterQuery[SearchEmployeesQuery, []EmployeeResponse](d, NewSearchEmployeesHandler(deps.Employees, deps.Searcher)),
	)
}

// Requests returns a zero value of every request type served over HTTP.
func Requests() []any {
	return []any{
		LoginCommand{},
		CreateEmployeeCommand{},
		UpdateEmployeeCommand{},
		DeleteEmployeeCommand{},
		GetEmployeeQuery{},
		ListEmployeesQuery{},
		SearchEmployeesQuery{},
	}
}
