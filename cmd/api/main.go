package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"career-compass/internal/config"
	"career-compass/internal/content"
	"career-compass/internal/db"
	apihttp "career-compass/internal/http"
	"career-compass/internal/repository"
	"career-compass/internal/service"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// El contenido mal configurado debe fallar al iniciar, no cuando un estudiante envia respuestas.
	store, err := content.LoadStore(cfg.ContentDir)
	if err != nil {
		logger.Fatal("content validation failed", zap.String("dir", cfg.ContentDir), zap.Error(err))
	}

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	careerRepo := repository.NewPgCareerRepository(pool)
	assessmentRepo := repository.NewPgAssessmentRepository(pool)
	traitRepo := repository.NewPgTraitRepository(pool)
	quizResultRepo := repository.NewPgQuizResultRepository(pool)

	submitWindow := time.Duration(cfg.SubmissionWindowSecs) * time.Second
	matchCache := service.NewMemoryMatchCache()
	limiter := service.NewMemorySubmissionLimiter(submitWindow, cfg.SubmissionRateLimit)
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed, using in-memory cache and limiter", zap.Error(err))
		} else {
			matchCache = service.NewRedisMatchCache(redisClient)
			limiter = service.NewRedisSubmissionLimiter(redisClient, submitWindow, cfg.SubmissionRateLimit)
		}
		cancel()
	}

	jwtSvc := service.NewJWTService(
		cfg.JWTSecret,
		cfg.JWTIssuer,
		time.Duration(cfg.JWTAccessTTLMinutes)*time.Minute,
	)
	if cfg.JWTSecret == "" {
		logger.Warn("jwt secret not configured")
	}

	careerSvc := service.NewCareerService(careerRepo)
	assessmentSvc := service.NewAssessmentService(
		store.Assessment(),
		careerRepo,
		assessmentRepo,
		traitRepo,
		matchCache,
		time.Duration(cfg.MatchCacheTTLMinutes)*time.Minute,
		logger,
	)
	quizSvc := service.NewQuizService(store.Quizzes(), quizResultRepo, logger)

	careerHandler := apihttp.NewCareerHandler(logger, careerSvc)
	assessmentHandler := apihttp.NewAssessmentHandler(logger, assessmentSvc)
	quizHandler := apihttp.NewQuizHandler(logger, quizSvc)
	router := apihttp.NewRouter(logger, jwtSvc, limiter, careerHandler, assessmentHandler, quizHandler)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server",
		zap.String("port", cfg.HTTPPort),
		zap.Int("quizzes", len(store.Quizzes())),
		zap.Int("assessment_questions", len(store.Assessment().Questions)),
	)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
