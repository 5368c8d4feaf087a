package main

import (
	"context"
	"fmt"
	"time"

	"github.com/aibutsu/server/aibutsu/conversations"
	"github.com/aibutsu/server/aibutsu/shares"
	"github.com/aibutsu/server/aibutsu/tokens"
	"github.com/aibutsu/server/internal/config"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// creates and configures a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	ctx := context.Background()

	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	// configure connection pool for supabase free tier pooler compatibility
	// free tier has ~10-15 pooler connections, so keep our pool small
	poolConfig.MaxConns = 5
	poolConfig.MinConns = 1
	poolConfig.MaxConnLifetime = 30 * time.Minute
	poolConfig.MaxConnIdleTime = 5 * time.Minute
	poolConfig.HealthCheckPeriod = 1 * time.Minute

	// CRITICAL: use simple protocol for supabase pooler (PgBouncer) compatibility
	// pgBouncer in transaction mode doesn't support prepared statements,
	// which causes connections to hang on subsequent queries
	poolConfig.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol

	db, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create database pool: %w", err)
	}

	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	tokenRepo := tokens.NewRepository(db, tokens.Config{
		FreeDailyLimit:    cfg.Quota.FreeDailyLimit,
		PremiumDailyLimit: cfg.Quota.PremiumDailyLimit,
	}, cfg.ResetLocation)
	turnRepo := conversations.NewRepository(db)
	shareRepo := shares.NewRepository(db)

	services, err := InitializeServices(cfg, tokenRepo, turnRepo)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	resetService := tokens.NewResetService(tokenRepo, cfg.ResetLocation)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	server := &Server{
		db:           db,
		config:       cfg,
		tokenRepo:    tokenRepo,
		turnRepo:     turnRepo,
		shareRepo:    shareRepo,
		services:     services,
		resetService: resetService,
		router:       router,
	}

	RegisterRoutes(router, server)

	return server, nil
}
