package database

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/employee-hierarchy-api/internal/domain/entity"
	"github.com/oksasatya/employee-hierarchy-api/internal/domain/repository"
	"github.com/oksasatya/employee-hierarchy-api/pkg/helpers"
)

// Hasher hashes seeded passwords.
type Hasher interface {
	Hash(plain string) (string, error)
}

// SeedUser describes a login account created by the seeder.
type SeedUser struct {
	Username, Password, Email, FirstName, LastName string
}

// DefaultSeedUsers are the demo accounts.
var DefaultSeedUsers = []SeedUser{
	{Username: "admin", Password: "Admin@123", Email: "admin@employees.local", FirstName: "Ada", LastName: "Admin"},
	{Username: "manager", Password: "Manager@123", Email: "manager@employees.local", FirstName: "Max", LastName: "Manager"},
	{Username: "employee", Password: "Employee@123", Email: "employee@employees.local", FirstName: "Eve", LastName: "Employee"},
}

// Seeder fills an empty database with demo users and a small hierarchy:
// a CEO, two managers reporting to the CEO and two employees per manager.
type Seeder struct {
	uow       *UnitOfWorkFactory
	users     *UserRepository
	employees *EmployeeRepository
	hasher    Hasher
	logger    *logrus.Logger
}

func NewSeeder(uow *UnitOfWorkFactory, users *UserRepository, employees *EmployeeRepository, hasher Hasher, logger *logrus.Logger) *Seeder {
	return &Seeder{uow: uow, users: users, employees: employees, hasher: hasher, logger: logger}
}

// Seed is idempotent: each table is only seeded when empty.
func (s *Seeder) Seed(ctx context.Context) error {
	uow := s.uow.New()
	ctx = WithUnitOfWork(ctx, uow)

	if err := s.seedUsers(ctx); err != nil {
		uow.Discard()
		return err
	}
	if err := s.seedEmployees(ctx); err != nil {
		uow.Discard()
		return err
	}
	if !uow.HasPendingChanges() {
		uow.Discard()
		return nil
	}
	if err := uow.Commit(ctx); err != nil {
		return fmt.Errorf("commit seed: %w", err)
	}
	return nil
}

func (s *Seeder) seedUsers(ctx context.Context) error {
	exists, err := s.users.Any(ctx, repository.Condition{})
	if err != nil {
		return fmt.Errorf("check users: %w", err)
	}
	if exists {
		s.logger.Info("users already exist, skipping seed")
		return nil
	}
	for _, su := range DefaultSeedUsers {
		hash, err := s.hasher.Hash(su.Password)
		if err != nil {
			return fmt.Errorf("hash password for %s: %w", su.Username, err)
		}
		if err := s.users.Add(ctx, entity.NewUser(su.Username, su.Email, hash, su.FirstName, su.LastName)); err != nil {
			return err
		}
	}
	helpers.LogInfo(s.logger, "seeding users", logrus.Fields{"count": len(DefaultSeedUsers)})
	return nil
}

func (s *Seeder) seedEmployees(ctx context.Context) error {
	exists, err := s.employees.Any(ctx, repository.Condition{})
	if err != nil {
		return fmt.Errorf("check employees: %w", err)
	}
	if exists {
		return nil
	}

	ceo := entity.NewEmployee("Carla", "Chief", "carla.chief@employees.local", true, nil)
	m1 := entity.NewEmployee("Mario", "Rossi", "mario.rossi@employees.local", true, &ceo.ID)
	m2 := entity.NewEmployee("Nina", "Berg", "nina.berg@employees.local", true, &ceo.ID)
	staff := []*entity.Employee{
		ceo, m1, m2,
		entity.NewEmployee("Omar", "Haddad", "omar.haddad@employees.local", false, ptr(m1.ID)),
		entity.NewEmployee("Priya", "Nair", "priya.nair@employees.local", false, ptr(m1.ID)),
		entity.NewEmployee("Quinn", "Murphy", "quinn.murphy@employees.local", false, ptr(m2.ID)),
		entity.NewEmployee("Rosa", "Lima", "rosa.lima@employees.local", false, ptr(m2.ID)),
	}
	for _, e := range staff {
		if err := s.employees.Add(ctx, e); err != nil {
			return err
		}
	}
	helpers.LogInfo(s.logger, "seeding sample employees", logrus.Fields{"count": len(staff)})
	return nil
}

func ptr(id uuid.UUID) *uuid.UUID { return &id }
