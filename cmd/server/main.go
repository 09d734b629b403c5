package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"contract-registry.backend/internal/abis"
	"contract-registry.backend/internal/config"
	"contract-registry.backend/internal/infrastructure/blockchain"
	"contract-registry.backend/internal/infrastructure/datasources/postgres"
	"contract-registry.backend/internal/infrastructure/repositories"
	"contract-registry.backend/internal/infrastructure/storage"
	"contract-registry.backend/internal/interfaces/http/handlers"
	"contract-registry.backend/internal/interfaces/http/middleware"
	"contract-registry.backend/internal/registry"
	"contract-registry.backend/internal/usecases"
	"contract-registry.backend/pkg/jwt"
	"contract-registry.backend/pkg/logger"
	"contract-registry.backend/pkg/redis"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const gatewayTimeout = 10 * time.Second

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = postgres.NewConnection
	runServer  = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()
	ctx := context.Background()

	initLog(cfg.Server.Env)
	defer logger.Sync()
	if cfg.Server.LogLevel != "" {
		if err := logger.SetLevel(cfg.Server.LogLevel); err != nil {
			logger.Warn(ctx, "Ignoring invalid log level", zap.String("level", cfg.Server.LogLevel), zap.Error(err))
		}
	}
	logger.Info(ctx, "Logger initialized", zap.String("env", cfg.Server.Env))

	if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
		logger.Error(ctx, "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	defer redis.Close()
	logger.Info(ctx, "Redis initialized")

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDB(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}
	logger.Info(ctx, "Connected to PostgreSQL")

	clientFactory := blockchain.NewRestrictedClientFactory(cfg.Blockchain.RPCAllowlist())
	defer clientFactory.Close()

	r, err := buildRouter(cfg, db, clientFactory)
	if err != nil {
		return err
	}

	logger.Info(ctx, "Contract registry starting",
		zap.String("port", cfg.Server.Port),
		zap.Int("routes", len(r.Routes())),
	)
	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

func buildRouter(cfg *config.Config, db *gorm.DB, clientFactory *blockchain.ClientFactory) (*gin.Engine, error) {
	reader, err := blockchain.NewMetadataReader()
	if err != nil {
		return nil, fmt.Errorf("failed to load metadata interface: %w", err)
	}

	reg := registry.Default()
	resolver := usecases.NewABIResolver(reg, abis.Default(), reader)
	initializers := usecases.NewClientInitializer(reg, clientFactory, resolver)
	metadataStorage := storage.NewGatewayStorage(cfg.Storage.GatewayURL, &http.Client{Timeout: gatewayTimeout}, cfg.Storage.CacheTTL)

	resolution := usecases.NewContractResolutionUsecase(
		initializers,
		repositories.NewContractRecordRepository(db),
		metadataStorage,
		cfg.Blockchain.DefaultRPCURL,
		cfg.Blockchain.ResolveTimeout,
	)
	detect := usecases.NewDetectUsecase(reg, clientFactory, reader)
	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.Expiry)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())

	applyCORSMiddleware(r)
	registerHealthRoute(r)
	registerMetricsRoute(r)
	registerAPIV1Routes(r, routeDeps{
		contractTypeHandler: handlers.NewContractTypeHandler(reg),
		contractHandler:     handlers.NewContractHandler(detect, resolution),
		adminHandler:        handlers.NewAdminHandler(jwtService, cfg.Admin.PasswordHash),
		authMiddleware:      middleware.AuthMiddleware(jwtService),
	})
	return r, nil
}
