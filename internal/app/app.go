package app

import (
	"context"
	"fmt"
	"log/slog"

	"casevault/internal/cache/redis"
	"casevault/internal/config"
	"casevault/internal/dbs/postgres"
	cachedocsrepo "casevault/internal/repositories/cache/docs"
	auditrepo "casevault/internal/repositories/db/audit"
	caserepo "casevault/internal/repositories/db/cases"
	documentrepo "casevault/internal/repositories/db/document"
	tokenrepo "casevault/internal/repositories/db/token"
	userrepo "casevault/internal/repositories/db/user"
	filerepo "casevault/internal/repositories/storage/file"
	accessservice "casevault/internal/services/access"
	authservice "casevault/internal/services/auth"
	documentservice "casevault/internal/services/document"
	userservice "casevault/internal/services/user"
)

type App struct {
	AuthService     *authservice.AuthService
	UserService     *userservice.UserService
	DocumentService *documentservice.DocumentService
}

func NewApp(ctx context.Context, log *slog.Logger, cfg *config.Config) (*App, error) {
	db, err := postgres.New(ctx, postgres.Config{
		Addr:     cfg.DB.Addr,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		DB:       cfg.DB.DB})
	if err != nil {
		log.Error("failed connect to db", "err", err)
		return nil, fmt.Errorf("failed connect to db: %w", err)
	}

	cache, err := redis.New(ctx, redis.Config{Addr: cfg.Cache.Addr, Password: cfg.Cache.Password, DB: cfg.Cache.DB})
	if err != nil {
		log.Error("failed connect to cache", "err", err)
		return nil, fmt.Errorf("failed connect to cache: %w", err)
	}

	userRepo := userrepo.NewRepository(db)

	caseRepo := caserepo.NewRepository(db)

	tokenRepo := tokenrepo.NewRepository(db)

	auditRepo := auditrepo.NewRepository(db)

	docRepo := documentrepo.NewRepository(db)

	documentCacheRepo := cachedocsrepo.New(cache, cfg.Cache.DocumentsTTL)

	fileStorage := filerepo.NewRepository(cfg.FileStorage.Path)

	userService := userservice.New(log, userRepo, userRepo)

	accessService := accessservice.New(log, userRepo, caseRepo)

	authService := authservice.New(log, userService, userService, tokenRepo, cfg.Auth.IdleTimeout(), cfg.AdminToken)

	documentService := documentservice.New(log, docRepo, documentCacheRepo, fileStorage, accessService, auditRepo)

	return &App{
		AuthService:     authService,
		UserService:     userService,
		DocumentService: documentService,
	}, nil
}
