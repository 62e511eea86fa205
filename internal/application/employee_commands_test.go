package application_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/employee-hierarchy-api/internal/application"
	"github.com/oksasatya/employee-hierarchy-api/internal/infrastructure/database"
	"github.com/oksasatya/employee-hierarchy-api/internal/mediator"
	"github.com/oksasatya/employee-hierarchy-api/pkg/result"
)

func update(f *fixture, id uuid.UUID, p application.EmployeePayload) (result.Result[uuid.UUID], error) {
	return mediator.Send[application.UpdateEmployeeCommand, uuid.UUID](context.Background(), f.d, application.UpdateEmployeeCommand{ID: id, Payload: p})
}

func TestCreateEmployee_StampsCreatedAt(t *testing.T) {
	f := newFixture(t, nil)
	id := f.create(t, "Ada", "ada@x.io", false, nil)

	e, err := f.employees.GetByID(context.Background(), id, false)
	require.NoError(t, err)
	assert.True(t, e.CreatedAt.Equal(now))
	assert.Nil(t, e.UpdatedAt)
}

func TestCreateEmployee_DuplicateEmail(t *testing.T) {
	f := newFixture(t, nil)
	f.create(t, "Ada", "ada@x.io", false, nil)

	res, err := mediator.Send[application.CreateEmployeeCommand, uuid.UUID](context.Background(), f.d, application.CreateEmployeeCommand{
		Payload: application.EmployeePayload{FirstName: "Other", LastName: "Person", Email: "ada@x.io"},
	})
	require.NoError(t, err)
	require.True(t, res.Failed())
	assert.Equal(t, result.Conflict, res.Failure().Definition)
	assert.Equal(t, "Email already exists", res.Failure().Description)
}

func TestCreateEmployee_Validation(t *testing.T) {
	f := newFixture(t, nil)

	res, err := mediator.Send[application.CreateEmployeeCommand, uuid.UUID](context.Background(), f.d, application.CreateEmployeeCommand{
		Payload: application.EmployeePayload{LastName: "Test", Email: "not-an-email"},
	})
	require.NoError(t, err)
	require.True(t, res.Failed())
	assert.Equal(t, result.Validation, res.Failure().Definition)
	assert.Equal(t, "FirstName is required", res.Failure().Fields["firstName"])
	assert.Equal(t, "Email must be a valid email", res.Failure().Fields["email"])
}

func TestCreateEmployee_UnknownSupervisor(t *testing.T) {
	f := newFixture(t, nil)
	missing := uuid.New()

	res, err := mediator.Send[application.CreateEmployeeCommand, uuid.UUID](context.Background(), f.d, application.CreateEmployeeCommand{
		Payload: application.EmployeePayload{FirstName: "Ada", LastName: "Test", Email: "ada@x.io", SupervisorID: &missing},
	})
	require.NoError(t, err)
	require.True(t, res.Failed())
	assert.Equal(t, result.NotFound, res.Failure().Definition)
	assert.Contains(t, res.Failure().Description, missing.String())
}

func TestUpdateEmployee(t *testing.T) {
	f := newFixture(t, nil)
	boss := f.create(t, "Boss", "boss@x.io", true, nil)
	id := f.create(t, "Ada", "ada@x.io", false, nil)

	res, err := update(f, id, application.EmployeePayload{FirstName: " Adele ", LastName: "Test", Email: "adele@x.io", SupervisorID: &boss})
	require.NoError(t, err)
	require.False(t, res.Failed())
	assert.Equal(t, id, res.Value())

	e, err := f.employees.GetByIDWithSupervisor(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Adele", e.FirstName)
	assert.Equal(t, "adele@x.io", e.Email)
	require.NotNil(t, e.Supervisor)
	assert.Equal(t, boss, e.Supervisor.ID)
	require.NotNil(t, e.UpdatedAt)
}

func TestUpdateEmployee_KeepsOwnEmail(t *testing.T) {
	f := newFixture(t, nil)
	id := f.create(t, "Ada", "ada@x.io", false, nil)

	res, err := update(f, id, application.EmployeePayload{FirstName: "Ada", LastName: "Lovelace", Email: "ada@x.io"})
	require.NoError(t, err)
	assert.False(t, res.Failed())
}

func TestUpdateEmployee_EmailTakenByAnother(t *testing.T) {
	f := newFixture(t, nil)
	f.create(t, "Ada", "ada@x.io", false, nil)
	id := f.create(t, "Bob", "bob@x.io", false, nil)

	res, err := update(f, id, application.EmployeePayload{FirstName: "Bob", LastName: "Test", Email: "ada@x.io"})
	require.NoError(t, err)
	require.True(t, res.Failed())
	assert.Equal(t, result.Conflict, res.Failure().Definition)
}

func TestUpdateEmployee_NotFound(t *testing.T) {
	f := newFixture(t, nil)
	id := uuid.New()

	res, err := update(f, id, application.EmployeePayload{FirstName: "X", LastName: "Y", Email: "x@y.io"})
	require.NoError(t, err)
	require.True(t, res.Failed())
	assert.Equal(t, result.NotFound, res.Failure().Definition)
	assert.Equal(t, "Resource 'Employee' with identifier '"+id.String()+"' was not found.", res.Failure().Description)
}

func TestUpdateEmployee_SelfSupervision(t *testing.T) {
	f := newFixture(t, nil)
	id := f.create(t, "Ada", "ada@x.io", false, nil)

	res, err := update(f, id, application.EmployeePayload{FirstName: "Ada", LastName: "Test", Email: "ada@x.io", SupervisorID: &id})
	require.NoError(t, err)
	require.True(t, res.Failed())
	assert.Equal(t, result.Validation, res.Failure().Definition)
	assert.Equal(t, "Employee cannot be their own supervisor", res.Failure().Fields["supervisorId"])
}

func TestUpdateEmployee_Cycles(t *testing.T) {
	f := newFixture(t, nil)
	a := f.create(t, "A", "a@x.io", true, nil)
	b := f.create(t, "B", "b@x.io", true, &a)
	c := f.create(t, "C", "c@x.io", false, &b)

	t.Run("direct", func(t *testing.T) {
		res, err := update(f, a, application.EmployeePayload{FirstName: "A", LastName: "Test", Email: "a@x.io", SupervisorID: &b})
		require.NoError(t, err)
		require.True(t, res.Failed())
		assert.Contains(t, res.Failure().Fields["supervisorId"], "Circular reference detected")
	})
	t.Run("deep", func(t *testing.T) {
		res, err := update(f, a, application.EmployeePayload{FirstName: "A", LastName: "Test", Email: "a@x.io", SupervisorID: &c})
		require.NoError(t, err)
		require.True(t, res.Failed())
		assert.Equal(t, result.Validation, res.Failure().Definition)
	})

	e, err := f.employees.GetByID(context.Background(), a, false)
	require.NoError(t, err)
	assert.Nil(t, e.SupervisorID, "rejected updates must not persist")
}

func TestDeleteEmployee(t *testing.T) {
	f := newFixture(t, nil)
	boss := f.create(t, "Boss", "boss@x.io", true, nil)
	f.create(t, "R1", "r1@x.io", false, &boss)
	r2 := f.create(t, "R2", "r2@x.io", false, &boss)
	ctx := context.Background()

	res, err := mediator.Send[application.DeleteEmployeeCommand, result.Empty](ctx, f.d, application.DeleteEmployeeCommand{ID: boss})
	require.NoError(t, err)
	require.True(t, res.Failed())
	assert.Equal(t, result.Validation, res.Failure().Definition)
	assert.Equal(t, "Cannot delete employee with direct reports. 2 cases.", res.Failure().Fields["directReports"])

	res, err = mediator.Send[application.DeleteEmployeeCommand, result.Empty](ctx, f.d, application.DeleteEmployeeCommand{ID: r2})
	require.NoError(t, err)
	require.False(t, res.Failed())

	res, err = mediator.Send[application.DeleteEmployeeCommand, result.Empty](ctx, f.d, application.DeleteEmployeeCommand{ID: r2})
	require.NoError(t, err)
	assert.Equal(t, result.NotFound, res.Failure().Definition)
}

func TestEmployeeCommands_DuplicateKeyIsEmailConflict(t *testing.T) {
	for _, cmd := range []database.DuplicateKeyReporter{application.CreateEmployeeCommand{}, application.UpdateEmployeeCommand{}} {
		e := cmd.DuplicateKeyError()
		require.NotNil(t, e)
		assert.Equal(t, result.Conflict, e.Definition)
		assert.Equal(t, "Employee.EmailConflict", e.Code)
		assert.Equal(t, "Email already exists", e.Description)
	}
}
