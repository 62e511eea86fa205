package main

import (
	"context"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/oksasatya/employee-hierarchy-api/config"
	"github.com/oksasatya/employee-hierarchy-api/internal/infrastructure/database"
	"github.com/oksasatya/employee-hierarchy-api/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)

	ctx := context.Background()
	db, pool, err := database.Open(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer database.Close(db)
	if pool != nil {
		defer pool.Close()
	}

	hasher := helpers.NewPasswordHasher(cfg.PasswordPepper, helpers.DefaultArgon2Params)
	seeder := database.NewSeeder(
		database.NewUnitOfWorkFactory(db, helpers.SystemClock{}),
		database.NewUserRepository(db),
		database.NewEmployeeRepository(db),
		hasher,
		logger,
	)
	if err := seeder.Seed(ctx); err != nil {
		log.Fatalf("failed to seed: %v", err)
	}
	for _, u := range database.DefaultSeedUsers {
		fmt.Printf("seeded user: username=%s email=%s password=%s\n", u.Username, u.Email, u.Password)
	}
}
