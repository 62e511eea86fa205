package router

import (
	"fmt"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/oksasatya/employee-hierarchy-api/config"
	"github.com/oksasatya/employee-hierarchy-api/internal/application"
	"github.com/oksasatya/employee-hierarchy-api/internal/container"
	"github.com/oksasatya/employee-hierarchy-api/internal/infrastructure/database"
	"github.com/oksasatya/employee-hierarchy-api/internal/infrastructure/messaging"
	"github.com/oksasatya/employee-hierarchy-api/internal/infrastructure/search"
	handlers "github.com/oksasatya/employee-hierarchy-api/internal/interface/http"
	"github.com/oksasatya/employee-hierarchy-api/internal/mediator"
	"github.com/oksasatya/employee-hierarchy-api/internal/router/modules"
	"github.com/oksasatya/employee-hierarchy-api/pkg/helpers"
	"github.com/oksasatya/employee-hierarchy-api/pkg/validation"
)

// Infra holds the shared components modules are built from. Optional parts
// (Redis, ES, Publisher) may be nil.
type Infra struct {
	Config    *config.Config
	Logger    *logrus.Logger
	DB        *gorm.DB
	Redis     *redis.Client
	Clock     helpers.Clock
	JWT       *helpers.JWTManager
	Hasher    *helpers.PasswordHasher
	ES        *elasticsearch.Client
	Publisher messaging.Publisher
}

// InfraFromContainer collects the singletons registered by cmd/main.
func InfraFromContainer() Infra {
	in := Infra{
		Config: container.GetConfig(),
		Logger: container.GetLogger(),
		DB:     container.GetDB(),
		Redis:  container.GetRedis(),
		Clock:  container.GetClock(),
		JWT:    container.GetJWT(),
		Hasher: container.GetHasher(),
		ES:     container.GetES(),
	}
	if pub := container.GetRabbitPub(); pub != nil {
		in.Publisher = pub
	}
	return in
}

type EmployeeModuleDeps struct {
	Dispatcher *mediator.Dispatcher
	UnitOfWork *database.UnitOfWorkFactory
	Employees  *database.EmployeeRepository
	Users      *database.UserRepository
	Auth       *application.AuthService
}

// BuildDeps wires repositories, commit observers, the handler pipeline and the
// dispatcher. It fails when a request type served over HTTP has no handler.
func BuildDeps(in Infra) (EmployeeModuleDeps, error) {
	employees := database.NewEmployeeRepository(in.DB)
	users := database.NewUserRepository(in.DB)
	uow := database.NewUnitOfWorkFactory(in.DB, in.Clock)

	var searcher application.EmployeeSearcher
	if in.ES != nil {
		idx := search.NewEmployeeIndex(in.ES, in.Config.ESEmployeesIndex, in.Logger)
		uow.Observe(idx)
		searcher = idx
	}
	if in.Publisher != nil {
		uow.Observe(messaging.NewEmployeeEventPublisher(in.Publisher, in.Clock, in.Logger))
	}

	auth := application.NewAuthService(in.Hasher, in.JWT)
	d := mediator.New(
		mediator.Logging(in.Logger),
		mediator.Validation(validation.New()),
		database.UnitOfWorkBehavior(uow),
	)
	if err := application.Register(d, application.Deps{
		Employees: employees,
		Users:     users,
		Auth:      auth,
		Searcher:  searcher,
	}); err != nil {
		return EmployeeModuleDeps{}, fmt.Errorf("register handlers: %w", err)
	}
	if err := d.Require(application.Requests()...); err != nil {
		return EmployeeModuleDeps{}, err
	}

	return EmployeeModuleDeps{
		Dispatcher: d,
		UnitOfWork: uow,
		Employees:  employees,
		Users:      users,
		Auth:       auth,
	}, nil
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry, in Infra) (EmployeeModuleDeps, error) {
	deps, err := BuildDeps(in)
	if err != nil {
		return EmployeeModuleDeps{}, err
	}
	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(deps.Dispatcher, in.Logger), in.Redis))
	r.Add(modules.NewEmployeeModule(
		handlers.NewEmployeeHandler(deps.Dispatcher, in.Logger, APIPrefix+"/employees"),
		in.JWT,
		in.Redis,
	))
	r.AddRoot(modules.NewHealthModule(handlers.NewHealthHandler(in.DB, in.Redis), in.Redis))
	return deps, nil
}
