package server

import (
	"net/http"
	"strings"
	"time"

	"anoa.com/skinannotator/internal/config"
	"anoa.com/skinannotator/internal/middleware"
	"anoa.com/skinannotator/pkg/ratelimiter"

	annotationHttp "anoa.com/skinannotator/internal/modules/annotation/delivery/http"
	annotationRepo "anoa.com/skinannotator/internal/modules/annotation/repository"
	annotationService "anoa.com/skinannotator/internal/modules/annotation/service"

	annotatorHttp "anoa.com/skinannotator/internal/modules/annotator/delivery/http"
	annotatorRepo "anoa.com/skinannotator/internal/modules/annotator/repository"
	annotatorService "anoa.com/skinannotator/internal/modules/annotator/service"

	leaderboardHttp "anoa.com/skinannotator/internal/modules/leaderboard/delivery/http"
	leaderboardRepo "anoa.com/skinannotator/internal/modules/leaderboard/repository"
	leaderboardService "anoa.com/skinannotator/internal/modules/leaderboard/service"

	userHttp "anoa.com/skinannotator/internal/modules/user/delivery/http"
	userRepo "anoa.com/skinannotator/internal/modules/user/repository"
	userService "anoa.com/skinannotator/internal/modules/user/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Server struct {
	engine      *gin.Engine
	leaderboard leaderboardService.LeaderboardService
}

func NewServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	userRepository := userRepo.NewUserRepository(db)
	authSvc := userService.NewAuthService(userRepository, cfg.JWTSecret, cfg.JWTTTL)
	authHandler := userHttp.NewAuthHandler(authSvc)

	annotationRepository := annotationRepo.NewAnnotationRepository(db)
	annotationSvc := annotationService.NewAnnotationService(annotationRepository)
	annotationHandler := annotationHttp.NewAnnotationHandler(annotationSvc)

	annotatorRepository := annotatorRepo.NewAnnotatorRepository(db)
	annotatorSvc := annotatorService.NewAnnotatorService(annotatorRepository)
	annotatorHandler := annotatorHttp.NewAnnotatorHandler(annotatorSvc)

	leaderboardRepository := leaderboardRepo.NewLeaderboardRepository(db)
	leaderboardSvc := leaderboardService.NewLeaderboardService(leaderboardRepository, ratelimiter.NewLimiter(redisClient), leaderboardService.Options{
		MaxStaleness:    cfg.LeaderboardMaxStaleness,
		RefreshCooldown: cfg.RefreshRateLimit,
	})
	leaderboardHandler := leaderboardHttp.NewLeaderboardHandler(leaderboardSvc)

	router := gin.New()

	setupCORS(router, cfg.AllowedOrigins)

	router.Use(gin.Recovery())
	router.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{"/api/health"},
	}))

	authMiddleware := middleware.NewAuthMiddleware(cfg.JWTSecret)

	api := router.Group("/api")

	// Public routes (no auth required)
	api.GET("/health", healthHandler(db))
	auth := api.Group("/auth")
	{
		auth.POST("/signup", authHandler.Signup)
		auth.POST("/signin", authHandler.Signin)
	}

	// Protected routes
	protected := api.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		protected.GET("/auth/me", authHandler.Me)

		annotations := protected.Group("/annotations")
		{
			annotations.GET("/next", annotationHandler.GetNext)
			annotations.GET("/diagnostic", annotationHandler.Diagnostic)
			annotations.PATCH("/:id/lock", annotationHandler.Lock)
			annotations.PATCH("/:id/unlock", annotationHandler.Unlock)
			annotations.PATCH("/:id/skip", annotationHandler.Skip)
			annotations.PUT("/:id", annotationHandler.Update)
			annotations.DELETE("/:id", annotationHandler.Delete)
		}

		annotators := protected.Group("/annotators")
		{
			annotators.GET("/profile", annotatorHandler.GetProfile)
			annotators.POST("/profile", annotatorHandler.UpsertProfile)
			annotators.POST("/rewards", annotatorHandler.GrantRewards)
			annotators.GET("/stats", leaderboardHandler.GetStats)
			annotators.POST("/stats/refresh", leaderboardHandler.Refresh)
			annotators.GET("/leaderboard", leaderboardHandler.GetLeaderboard)
			annotators.GET("/debug/leaderboard", leaderboardHandler.Debug)
		}
	}

	return &Server{
		engine:      router,
		leaderboard: leaderboardSvc,
	}
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

// Leaderboard exposes the service so the scheduler refreshes the same
// instance the handlers read from.
func (s *Server) Leaderboard() leaderboardService.LeaderboardService {
	return s.leaderboard
}

func healthHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

func setupCORS(router *gin.Engine, allowedOrigins string) {
	var origins []string
	for _, origin := range strings.Split(allowedOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		origins = []string{"http://localhost:5173"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
