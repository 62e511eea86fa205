package database

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/employee-hierarchy-api/internal/domain/entity"
	"github.com/oksasatya/employee-hierarchy-api/internal/domain/repository"
	"github.com/oksasatya/employee-hierarchy-api/internal/mediator"
	"github.com/oksasatya/employee-hierarchy-api/pkg/result"
)

type addEmployee struct {
	Email string
	Fail  bool
}

type countEmployees struct{}

// addWithEmailRule reports unique violations as an email conflict.
type addWithEmailRule struct {
	Email string
}

func (addWithEmailRule) DuplicateKeyError() *result.Error {
	return result.ConflictError("Employee.EmailConflict", "Email already exists")
}

func newBehaviorDispatcher(t *testing.T) (*mediator.Dispatcher, *EmployeeRepository) {
	t.Helper()
	db := newTestDB(t)
	repo := NewEmployeeRepository(db)
	d := mediator.New(UnitOfWorkBehavior(fixedFactory(db)))

	require.NoError(t, mediator.RegisterCommand[addEmployee, uuid.UUID](d, mediator.HandlerFunc[addEmployee, uuid.UUID](
		func(ctx context.Context, cmd addEmployee) (result.Result[uuid.UUID], error) {
			e := entity.NewEmployee("First", "Last", cmd.Email, false, nil)
			if err := repo.Add(ctx, e); err != nil {
				return result.Result[uuid.UUID]{}, err
			}
			if cmd.Fail {
				return result.Fail[uuid.UUID](result.NewError("Test.Failed", "handler failed")), nil
			}
			return result.Ok(e.ID), nil
		})))
	require.NoError(t, mediator.RegisterQuery[countEmployees, int64](d, mediator.HandlerFunc[countEmployees, int64](
		func(ctx context.Context, _ countEmployees) (result.Result[int64], error) {
			if _, ok := UnitOfWorkFrom(ctx); ok {
				return result.Result[int64]{}, assert.AnError
			}
			n, err := repo.Count(ctx, repository.Condition{})
			return result.Ok(n), err
		})))
	require.NoError(t, mediator.RegisterCommand[addWithEmailRule, uuid.UUID](d, mediator.HandlerFunc[addWithEmailRule, uuid.UUID](
		func(ctx context.Context, cmd addWithEmailRule) (result.Result[uuid.UUID], error) {
			e := entity.NewEmployee("First", "Last", cmd.Email, false, nil)
			if err := repo.Add(ctx, e); err != nil {
				return result.Result[uuid.UUID]{}, err
			}
			return result.Ok(e.ID), nil
		})))
	return d, repo
}

func TestUnitOfWorkBehavior_CommitsOnSuccess(t *testing.T) {
	d, _ := newBehaviorDispatcher(t)
	ctx := context.Background()

	res, err := mediator.Send[addEmployee, uuid.UUID](ctx, d, addEmployee{Email: "a@x.io"})
	require.NoError(t, err)
	require.False(t, res.Failed())

	n, err := mediator.Query[countEmployees, int64](ctx, d, countEmployees{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, n.Value())
}

func TestUnitOfWorkBehavior_DiscardsOnFailure(t *testing.T) {
	d, _ := newBehaviorDispatcher(t)
	ctx := context.Background()

	res, err := mediator.Send[addEmployee, uuid.UUID](ctx, d, addEmployee{Email: "a@x.io", Fail: true})
	require.NoError(t, err)
	require.True(t, res.Failed())

	n, err := mediator.Query[countEmployees, int64](ctx, d, countEmployees{})
	require.NoError(t, err)
	assert.EqualValues(t, 0, n.Value())
}

func TestUnitOfWorkBehavior_DuplicateAtCommitIsConflict(t *testing.T) {
	d, _ := newBehaviorDispatcher(t)
	ctx := context.Background()

	_, err := mediator.Send[addEmployee, uuid.UUID](ctx, d, addEmployee{Email: "same@x.io"})
	require.NoError(t, err)

	res, err := mediator.Send[addEmployee, uuid.UUID](ctx, d, addEmployee{Email: "same@x.io"})
	require.NoError(t, err)
	require.True(t, res.Failed())
	assert.Equal(t, result.Conflict, res.Failure().Definition)
}

func TestUnitOfWorkBehavior_DuplicateAtCommitUsesCommandRule(t *testing.T) {
	d, _ := newBehaviorDispatcher(t)
	ctx := context.Background()

	_, err := mediator.Send[addWithEmailRule, uuid.UUID](ctx, d, addWithEmailRule{Email: "same@x.io"})
	require.NoError(t, err)

	res, err := mediator.Send[addWithEmailRule, uuid.UUID](ctx, d, addWithEmailRule{Email: "same@x.io"})
	require.NoError(t, err)
	require.True(t, res.Failed())
	assert.Equal(t, "Employee.EmailConflict", res.Failure().Code)
	assert.Equal(t, "Email already exists", res.Failure().Description)
}

func TestUnitOfWorkBehavior_CancelledCommandPersistsNothing(t *testing.T) {
	d, _ := newBehaviorDispatcher(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := mediator.Send[addEmployee, uuid.UUID](ctx, d, addEmployee{Email: "late@x.io"})
	require.ErrorIs(t, err, context.Canceled)

	n, err := mediator.Query[countEmployees, int64](context.Background(), d, countEmployees{})
	require.NoError(t, err)
	assert.EqualValues(t, 0, n.Value())
}
