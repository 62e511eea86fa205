package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/oksasatya/employee-hierarchy-api/config"
	"github.com/oksasatya/employee-hierarchy-api/internal/container"
	"github.com/oksasatya/employee-hierarchy-api/internal/infrastructure/database"
	"github.com/oksasatya/employee-hierarchy-api/internal/interface/middleware"
	"github.com/oksasatya/employee-hierarchy-api/internal/router"
	"github.com/oksasatya/employee-hierarchy-api/pkg/helpers"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)
	gin.SetMode(cfg.GinMode)

	ctx := context.Background()

	// Database (postgres runs SQL migrations, sqlite auto-migrates)
	db, pool, err := database.Open(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("failed to open database: %v", err)
	}
	defer database.Close(db)
	if pool != nil {
		defer pool.Close()
	}

	// Redis (optional)
	rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if rdb != nil {
		defer func() { _ = rdb.Close() }()
	}

	// Elasticsearch (optional)
	if addrs := cfg.ESAddrs(); len(addrs) > 0 {
		es, err := helpers.NewESClient(addrs, cfg.ElasticsearchUser, cfg.ElasticsearchPass)
		if err != nil {
			logger.Fatalf("failed to init elasticsearch client: %v", err)
		}
		container.SetES(es)
	}

	// RabbitMQ (optional)
	if cfg.RabbitMQURL != "" {
		pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQEmployeeQueue)
		if err != nil {
			logger.Fatalf("failed to connect to rabbitmq: %v", err)
		}
		defer pub.Close()
		container.SetRabbitPub(pub)
	}

	clock := helpers.SystemClock{}
	hasher := helpers.NewPasswordHasher(cfg.PasswordPepper, helpers.DefaultArgon2Params)
	jwtManager := helpers.NewJWTManager(cfg.JWTSecretKey, cfg.JWTIssuer, cfg.JWTAudience, cfg.JWTTTL(), clock)

	// Provide infra singletons to container for registry auto-wiring
	container.SetConfig(cfg)
	container.SetLogger(logger)
	container.SetDB(db)
	container.SetRedis(rdb)
	container.SetClock(clock)
	container.SetJWT(jwtManager)
	container.SetHasher(hasher)

	// Gin engine and global middleware
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RealIP())
	r.Use(middleware.RequestIDMiddleware())
	corsCfg := cors.Config{
		AllowOrigins:     cfg.CORSOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", "Location", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(corsCfg.AllowOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	}
	r.Use(cors.New(corsCfg))
	if cfg.HTTPLogEnabled || cfg.Env == "development" {
		r.Use(gin.Logger())
	}

	reg := router.NewRegistry(r)
	deps, err := router.InitModules(reg, router.InfraFromContainer())
	if err != nil {
		logger.Fatalf("failed to init modules: %v", err)
	}
	reg.RegisterAll()

	if cfg.SeedOnStart {
		seeder := database.NewSeeder(deps.UnitOfWork, deps.Users, deps.Employees, hasher, logger)
		if err := seeder.Seed(ctx); err != nil {
			logger.Fatalf("seed failed: %v", err)
		}
	}

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		logger.Infof("server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Errorf("server forced to shutdown: %v", err)
	}
	logger.Info("server exited properly")
}
