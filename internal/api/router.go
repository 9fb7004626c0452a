package api

import (
	"log/slog"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/fisherfans/fisherfans-backend/internal/auth"
	boatHttp "github.com/fisherfans/fisherfans-backend/internal/boat/http"
	fileHttp "github.com/fisherfans/fisherfans-backend/internal/file/http"
	logHttp "github.com/fisherfans/fisherfans-backend/internal/fishlog/http"
	resHttp "github.com/fisherfans/fisherfans-backend/internal/reservation/http"
	tripHttp "github.com/fisherfans/fisherfans-backend/internal/trip/http"
	userHttp "github.com/fisherfans/fisherfans-backend/internal/user/http"
)

// Config holds everything the router needs to assemble middleware and routes.
type Config struct {
	IsProduction bool
	ProdOrigins  []string
	Logger       *slog.Logger

	JWTManager  *auth.JWTManager
	Revocations auth.RevocationStore
	Resolver    auth.ActorResolver

	UserHandler        *userHttp.UserHandler
	BoatHandler        *boatHttp.BoatHandler
	TripHandler        *tripHttp.TripHandler
	ReservationHandler *resHttp.ReservationHandler
	LogHandler         *logHttp.LogHandler
	FileHandler        *fileHttp.Handler
}

// NewRouter initializes the HTTP router engine.
// It is responsible for assembling middleware (CORS, Logger, Auth) and registering routes for various modules.
func NewRouter(cfg Config) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	// Unknown JSON fields are rejected so clients cannot set server-owned columns.
	binding.EnableDecoderDisallowUnknownFields = true

	r := gin.New()

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	r.Use(RequestLogger(logger), gin.Recovery())

	// Configure CORS (Cross-Origin Resource Sharing).
	// Production without PROD_ORIGINS serves same-origin requests only.
	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction {
		corsConfig.AllowOrigins = cfg.ProdOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	if corsConfig.AllowAllOrigins || len(corsConfig.AllowOrigins) > 0 {
		r.Use(cors.New(corsConfig))
	}

	// authMiddleware: Validates the JWT, rejects revoked tokens and resolves the actor.
	authMiddleware := auth.AuthRequired(cfg.JWTManager, cfg.Revocations, cfg.Resolver)

	// Register API routes under /v1
	v1 := r.Group("/v1")
	{
		userHttp.RegisterRoutes(v1, cfg.UserHandler, authMiddleware)
		boatHttp.RegisterRoutes(v1, cfg.BoatHandler, authMiddleware)
		tripHttp.RegisterRoutes(v1, cfg.TripHandler, authMiddleware)
		resHttp.RegisterRoutes(v1, cfg.ReservationHandler, authMiddleware)
		logHttp.RegisterRoutes(v1, cfg.LogHandler, authMiddleware)
		fileHttp.RegisterRoutes(v1, cfg.FileHandler, authMiddleware)
	}

	return r
}
