package application_test

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/employee-hierarchy-api/internal/application"
	"github.com/oksasatya/employee-hierarchy-api/internal/domain/entity"
	"github.com/oksasatya/employee-hierarchy-api/internal/infrastructure/database"
	"github.com/oksasatya/employee-hierarchy-api/internal/mediator"
	"github.com/oksasatya/employee-hierarchy-api/pkg/helpers"
	"github.com/oksasatya/employee-hierarchy-api/pkg/validation"
)

var now = time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

type fixture struct {
	d         *mediator.Dispatcher
	employees *database.EmployeeRepository
	users     *database.UserRepository
	uow       *database.UnitOfWorkFactory
	auth      *application.AuthService
}

func newFixture(t *testing.T, searcher application.EmployeeSearcher) *fixture {
	t.Helper()
	db, err := database.OpenInMemory(t.Name())
	require.NoError(t, err)
	t.Cleanup(func() { database.Close(db) })

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	clock := helpers.FixedClock(now)

	f := &fixture{
		employees: database.NewEmployeeRepository(db),
		users:     database.NewUserRepository(db),
		uow:       database.NewUnitOfWorkFactory(db, clock),
		auth: application.NewAuthService(
			helpers.NewPasswordHasher("pepper", helpers.Argon2Params{Time: 1, Memory: 8 * 1024, Threads: 1, KeyLen: 32, SaltLen: 16}),
			helpers.NewJWTManager("test-secret", "", "", time.Hour, clock),
		),
	}
	f.d = mediator.New(
		mediator.Logging(logger),
		mediator.Validation(validation.New()),
		database.UnitOfWorkBehavior(f.uow),
	)
	require.NoError(t, application.Register(f.d, application.Deps{
		Employees: f.employees,
		Users:     f.users,
		Auth:      f.auth,
		Searcher:  searcher,
	}))
	require.NoError(t, f.d.Require(application.Requests()...))
	return f
}

func (f *fixture) create(t *testing.T, first, email string, isSupervisor bool, supervisor *uuid.UUID) uuid.UUID {
	t.Helper()
	res, err := mediator.Send[application.CreateEmployeeCommand, uuid.UUID](context.Background(), f.d, application.CreateEmployeeCommand{
		Payload: application.EmployeePayload{FirstName: first, LastName: "Test", Email: email, IsSupervisor: isSupervisor, SupervisorID: supervisor},
	})
	require.NoError(t, err)
	require.False(t, res.Failed(), "create %s: %v", first, res.Failure())
	return res.Value()
}

func (f *fixture) addUser(t *testing.T, username, password string) *entity.User {
	t.Helper()
	hash, err := f.auth.HashPassword(password)
	require.NoError(t, err)
	u := entity.NewUser(username, username+"@employees.test", hash, "Test", "User")
	uw := f.uow.New()
	ctx := database.WithUnitOfWork(context.Background(), uw)
	require.NoError(t, f.users.Add(ctx, u))
	require.NoError(t, uw.Commit(ctx))
	return u
}

func ptr(id uuid.UUID) *uuid.UUID { return &id }
