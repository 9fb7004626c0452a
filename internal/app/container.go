package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/fisherfans/fisherfans-backend/internal/api"
	"github.com/fisherfans/fisherfans-backend/internal/auth"
	"github.com/fisherfans/fisherfans-backend/internal/boat"
	boatHttp "github.com/fisherfans/fisherfans-backend/internal/boat/http"
	"github.com/fisherfans/fisherfans-backend/internal/config"
	"github.com/fisherfans/fisherfans-backend/internal/file"
	fileHttp "github.com/fisherfans/fisherfans-backend/internal/file/http"
	"github.com/fisherfans/fisherfans-backend/internal/fishlog"
	logHttp "github.com/fisherfans/fisherfans-backend/internal/fishlog/http"
	"github.com/fisherfans/fisherfans-backend/internal/pkg/storage"
	"github.com/fisherfans/fisherfans-backend/internal/reservation"
	resHttp "github.com/fisherfans/fisherfans-backend/internal/reservation/http"
	"github.com/fisherfans/fisherfans-backend/internal/trip"
	tripHttp "github.com/fisherfans/fisherfans-backend/internal/trip/http"
	"github.com/fisherfans/fisherfans-backend/internal/user"
	userHttp "github.com/fisherfans/fisherfans-backend/internal/user/http"
)

// Container holds the initialized components that are needed externally.
type Container struct {
	Router      *gin.Engine
	JWTManager  *auth.JWTManager
	UserService user.Service

	redis *redis.Client
}

// NewContainer initializes all modules and returns the container.
func NewContainer(ctx context.Context, cfg *config.Config, pool *pgxpool.Pool, logger *slog.Logger) (*Container, error) {
	// Init Components
	passwordHasher := auth.NewBcryptPasswordHasher(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTAccessTokenTTL)
	policy := auth.NewPolicy()

	c := &Container{JWTManager: jwtManager}

	var revocations auth.RevocationStore
	if cfg.RedisAddr != "" {
		client, err := auth.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		c.redis = client
		revocations = auth.NewRedisRevocationStore(client)
		logger.Info("token revocations stored in redis", "addr", cfg.RedisAddr)
	} else {
		revocations = auth.NewMemoryRevocationStore()
		logger.Warn("REDIS_ADDR not set, token revocations kept in memory")
	}

	store, err := storage.NewLocalStorage(cfg.StoragePath)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("init storage: %w", err)
	}

	// File Module
	fileService := file.NewService(file.NewPgxRepository(pool), store)
	fileHandler := fileHttp.NewHandler(fileService)

	// User Module
	userRepo := user.NewPgxRepository(pool)
	userService := user.NewService(userRepo, passwordHasher, jwtManager, revocations, fileService, policy)
	c.UserService = userService

	// Boat, Trip and Reservation modules check each other, so repositories come first.
	boatRepo := boat.NewPgxRepository(pool)
	tripRepo := trip.NewPgxRepository(pool)
	resRepo := reservation.NewPgxRepository(pool)

	boatService := boat.NewService(boatRepo, tripRepo, fileService, policy)
	tripService := trip.NewService(tripRepo, boatRepo, policy)
	resService := reservation.NewService(resRepo, tripRepo, policy)

	// Log Module
	logService := fishlog.NewService(fishlog.NewPgxRepository(pool), fileService, policy)

	// Router
	c.Router = api.NewRouter(api.Config{
		IsProduction:       cfg.IsProduction,
		ProdOrigins:        cfg.ProdOrigins,
		Logger:             logger,
		JWTManager:         jwtManager,
		Revocations:        revocations,
		Resolver:           userService,
		UserHandler:        userHttp.NewHandler(userService),
		BoatHandler:        boatHttp.NewHandler(boatService, fileHandler, cfg.UploadMaxBytes),
		TripHandler:        tripHttp.NewHandler(tripService),
		ReservationHandler: resHttp.NewHandler(resService),
		LogHandler:         logHttp.NewHandler(logService, fileHandler, cfg.UploadMaxBytes),
		FileHandler:        fileHandler,
	})

	return c, nil
}

// Close releases connections owned by the container. The pool belongs to the caller.
func (c *Container) Close() {
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			slog.Warn("failed to close redis client", "error", err)
		}
	}
}
