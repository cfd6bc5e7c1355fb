package api

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ioulasri/CodeArena/internal/api/handlers"
	"github.com/ioulasri/CodeArena/internal/api/middleware"
	"github.com/ioulasri/CodeArena/internal/config"
	"github.com/ioulasri/CodeArena/internal/match"
	"github.com/ioulasri/CodeArena/internal/puzzle"
	"github.com/ioulasri/CodeArena/internal/repository"
	"github.com/ioulasri/CodeArena/internal/service"
	"github.com/ioulasri/CodeArena/internal/websocket"
	"github.com/ioulasri/CodeArena/pkg/database"
	"github.com/ioulasri/CodeArena/pkg/logger"
	"github.com/ioulasri/CodeArena/pkg/metrics"
	"github.com/ioulasri/CodeArena/pkg/ratelimit"
)

// SetupRouter API 라우터 설정
// 반환된 Coordinator는 graceful shutdown 시 타이머 정리에 사용
func SetupRouter(cfg *config.Config, db *database.DB) (*gin.Engine, *match.Coordinator) {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// 전역 미들웨어
	router.Use(gin.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	// Repository 초기화
	userRepo := repository.NewUserRepository(db)
	puzzleRepo := repository.NewPuzzleRepository(db)
	matchArchiveRepo := repository.NewMatchArchiveRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)
	statsRepo := repository.NewStatsRepository(db)

	// Service 초기화
	userService := service.NewUserService(userRepo)
	puzzleService := service.NewPuzzleService(puzzleRepo)
	archiveService := service.NewArchiveService(matchArchiveRepo, submissionRepo)
	statsService := service.NewStatsService(statsRepo)

	// WebSocket Hub 초기화 및 시작
	wsHub := websocket.NewHub()
	go wsHub.Run()
	logger.Info("WebSocket Hub started")

	// Match Coordinator 초기화
	coordinator := match.NewCoordinator(
		match.Config{
			IdleTimeout:    cfg.MatchIdleTimeout,
			Retention:      cfg.MatchRetention,
			IssueTimeout:   cfg.IssueTimeout,
			RoomCodeLength: cfg.RoomCodeLength,
		},
		puzzleRepo,
		puzzle.NewFactory(),
		wsHub,
		archiveService,
		statsService,
	)

	// Rate Limiter 초기화 - Redis가 있으면 분산, 없으면 인메모리
	var authLimit, createLimit, submitLimit gin.HandlerFunc
	if redisLimiter, err := ratelimit.NewRedisRateLimiterFromURL(cfg.RedisURL); err == nil && pingRedis(redisLimiter) {
		logger.Info("Using Redis rate limiting", "url", cfg.RedisURL)
		authLimit = middleware.RedisAuthRateLimit(redisLimiter)
		createLimit = middleware.RedisMatchCreationRateLimit(redisLimiter)
		submitLimit = middleware.RedisSubmissionRateLimit(redisLimiter)
	} else {
		logger.Warn("Redis unavailable, using in-memory rate limiting")
		authLimit = middleware.AuthRateLimit()
		createLimit = middleware.MatchCreationRateLimit()
		submitLimit = middleware.SubmissionRateLimit()
	}

	// Handler 초기화
	authHandler := handlers.NewAuthHandler(userService, cfg)
	userHandler := handlers.NewUserHandler(userService)
	puzzleHandler := handlers.NewPuzzleHandler(puzzleService)
	matchHandler := handlers.NewMatchHandler(coordinator, archiveService)
	statsHandler := handlers.NewStatsHandler(statsService)
	wsHandler := handlers.NewWebSocketHandler(wsHub, coordinator, cfg)

	// Health check
	router.GET("/health", handlers.HealthCheck)

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	// API v1
	v1 := router.Group("/api/v1")
	{
		// WebSocket endpoint (토큰은 쿼리 파라미터)
		v1.GET("/ws/match/:id", wsHandler.HandleMatchWebSocket)

		// Auth routes
		auth := v1.Group("/auth")
		{
			auth.POST("/login", authLimit, authHandler.Login)
			auth.POST("/register", authLimit, authHandler.Register)
		}

		// Puzzle routes
		puzzles := v1.Group("/puzzles")
		{
			puzzles.GET("", puzzleHandler.ListPuzzles)
			puzzles.GET("/:id", puzzleHandler.GetPuzzle)
		}

		// Match routes
		matches := v1.Group("/matches")
		matches.Use(middleware.Auth(cfg))
		{
			matches.POST("", createLimit, matchHandler.CreateMatch)
			matches.POST("/join", matchHandler.JoinMatch)
			matches.GET("/history", matchHandler.GetHistory)
			matches.GET("/:id", matchHandler.GetMatch)
			matches.POST("/:id/start", matchHandler.StartMatch)
			matches.POST("/:id/submit", submitLimit, matchHandler.SubmitAnswer)
			matches.GET("/:id/submissions", matchHandler.GetSubmissions)
		}

		// Stats routes
		stats := v1.Group("/stats")
		{
			stats.GET("/me", middleware.Auth(cfg), statsHandler.GetMyStats)
			stats.GET("/leaderboard", statsHandler.GetLeaderboard)
		}

		// User routes
		users := v1.Group("/users")
		users.Use(middleware.Auth(cfg))
		{
			users.GET("/me", userHandler.GetCurrentUser)
		}
	}

	return router, coordinator
}

func pingRedis(limiter *ratelimit.RedisRateLimiter) bool {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return limiter.Ping(ctx) == nil
}
