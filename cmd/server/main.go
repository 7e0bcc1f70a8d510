package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/recruitiq/recruit-match/internal/config"
	"github.com/recruitiq/recruit-match/internal/domain/fiber/handler"
	"github.com/recruitiq/recruit-match/internal/embedding"
	"github.com/recruitiq/recruit-match/internal/logger"
	"github.com/recruitiq/recruit-match/internal/matching"
	"github.com/recruitiq/recruit-match/internal/middleware"
	"github.com/recruitiq/recruit-match/internal/model"
	"github.com/recruitiq/recruit-match/internal/repository"
	"github.com/recruitiq/recruit-match/internal/service"
	"github.com/recruitiq/recruit-match/internal/usecase"
	"github.com/recruitiq/recruit-match/internal/worker"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	ctx := context.Background()
	if err := godotenv.Load(); err != nil {
		log.Println("Could not load .env file")
	}

	appConfig := config.LoadAppConfig()
	embeddingConfig := config.LoadEmbeddingConfig()

	zlog, err := logger.New(appConfig.Env == "production", appConfig.Env != "production")
	if err != nil {
		log.Fatal(err)
	}
	defer zlog.Sync()

	app := fiber.New(fiber.Config{
		AppName: appConfig.Name,
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError

			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}

			message := err.Error()
			if message == "" {
				message = "Internal Server Error"
			}

			return ctx.Status(code).JSON(fiber.Map{"error": message})
		},
	})
	app.Use(fiberlogger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))
	app.Use(recover.New(recover.Config{
		EnableStackTrace: appConfig.Env != "production",
	}))
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(pprof.New(pprof.Config{
		Next: func(c *fiber.Ctx) bool {
			return config.LoadAppConfig().Env != "production"
		},
	}))
	app.Use(healthcheck.New())
	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))
	app.Use(middleware.RateLimiter(50, 1*time.Minute))

	db := ConnectDB()

	jobRepo := repository.NewJobRepository(db)
	candidateRepo := repository.NewCandidateRepository(db)
	tokenRepo := repository.NewTokenRepository(db)
	matchRepo := repository.NewMatchRepository(db)

	provider, generator := buildProvider(ctx, embeddingConfig.Provider, zlog)
	codec := embedding.NewCodec(provider.Dim(), zlog)

	scorer := matching.NewScorer(matching.ScorerConfig{
		NormalizedEmbeddings: provider.Normalized(),
	}, zlog)

	tokenUC := usecase.NewTokenUsecase(tokenRepo, provider, codec, zlog)
	matchUC := usecase.NewMatchUsecase(jobRepo, candidateRepo, matchRepo, scorer, zlog)
	jobUC := usecase.NewJobUsecase(jobRepo, tokenUC, matchUC, provider, codec, zlog)
	candidateUC := usecase.NewCandidateUsecase(candidateRepo, matchUC, provider, codec, generator, zlog)
	insightsUC := usecase.NewInsightsUsecase(tokenRepo, jobRepo, zlog)

	pool := worker.NewPool(4, 64, zlog)
	defer pool.Stop()

	handler.NewJobHandler(jobUC, matchUC).RegisterRoutes(app)
	handler.NewCandidateHandler(candidateUC, matchUC, pool).RegisterRoutes(app)
	handler.NewInsightsHandler(insightsUC).RegisterRoutes(app)

	// periodic expiry sweep keeps expired postings out of candidate matching
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		for range ticker.C {
			if _, err := jobUC.ExpireJobs(); err != nil {
				zlog.Error("expiry sweep failed", zap.Error(err))
			}
		}
	}()

	zlog.Info("server running", zap.String("port", appConfig.Port))
	if err := app.Listen(appConfig.Port); err != nil {
		zlog.Fatal("server stopped", zap.Error(err))
	}
}

// buildProvider picks the embedding backend. Gemini also supplies the resume
// profile extractor; with OpenAI embeddings the extractor is optional and
// only wired when a Gemini key is present.
func buildProvider(ctx context.Context, name string, zlog *zap.Logger) (embedding.Provider, usecase.ContentGenerator) {
	switch name {
	case "gemini":
		gemini, err := service.NewGeminiService(ctx, zlog)
		if err != nil {
			zlog.Fatal("gemini init failed", zap.Error(err))
		}
		return gemini, gemini
	default:
		openai := service.NewOpenAIService(zlog)
		if config.LoadGeminiConfig().APIKey != "" {
			gemini, err := service.NewGeminiService(ctx, zlog)
			if err == nil {
				return openai, gemini
			}
			zlog.Warn("gemini init failed, resume parsing disabled", zap.Error(err))
		}
		return openai, nil
	}
}

func ConnectDB() *gorm.DB {
	dbConfig := config.LoadDBConfig()
	appConfig := config.LoadAppConfig()

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		dbConfig.Host,
		dbConfig.User,
		dbConfig.Password,
		dbConfig.Name,
		dbConfig.Port,
		dbConfig.SSLMode,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Could not connect to database: %v", err)
	}
	pgDB, err := db.DB()
	if err != nil {
		log.Fatalf("Could not get database instance: %v", err)
	}
	if appConfig.Env != "production" {
		pgDB.SetMaxIdleConns(5)
		pgDB.SetMaxOpenConns(10)
		pgDB.SetConnMaxLifetime(30 * time.Minute)
	} else {
		pgDB.SetMaxIdleConns(20)
		pgDB.SetMaxOpenConns(200)
		pgDB.SetConnMaxLifetime(time.Hour)
	}

	err = db.AutoMigrate(&model.Candidate{}, &model.Job{}, &model.JobToken{}, &model.Match{})
	if err != nil {
		log.Fatal("migration failed: ", err)
	}
	return db
}
