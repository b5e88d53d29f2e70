package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"

	"ms-content/internal/auth"
	"ms-content/internal/banko"
	banko_api "ms-content/internal/banko/api"
	banko_db "ms-content/internal/banko/db"
	"ms-content/internal/bonus"
	bonus_api "ms-content/internal/bonus/api"
	bonus_db "ms-content/internal/bonus/db"
	"ms-content/internal/cache"
	"ms-content/internal/campaign"
	campaign_api "ms-content/internal/campaign/api"
	campaign_db "ms-content/internal/campaign/db"
	"ms-content/internal/config"
	"ms-content/internal/database/migrations"
	"ms-content/internal/display"
	display_api "ms-content/internal/display/api"
	display_db "ms-content/internal/display/db"
	"ms-content/internal/kafka"
	"ms-content/internal/logger"
	"ms-content/internal/models"
	"ms-content/internal/push"
	push_api "ms-content/internal/push/api"
	push_db "ms-content/internal/push/db"
	"ms-content/internal/review"
	review_api "ms-content/internal/review/api"
	review_db "ms-content/internal/review/db"
	review_redis "ms-content/internal/review/redis"
	"ms-content/internal/seo"
	seo_api "ms-content/internal/seo/api"
	seo_db "ms-content/internal/seo/db"
	"ms-content/internal/stats"
	stats_api "ms-content/internal/stats/api"
	"ms-content/internal/telegram"
	telegram_api "ms-content/internal/telegram/api"
	telegram_db "ms-content/internal/telegram/db"
)

// noopEvents satisfies the per-feature publisher interfaces when Kafka is
// disabled, so services never have to nil-check.
type noopEvents struct{}

func (noopEvents) PublishBonusEvent(topic, action string, b models.Bonus) error          { return nil }
func (noopEvents) PublishCampaignEvent(topic, action string, c models.Campaign) error    { return nil }
func (noopEvents) PublishReviewEvent(topic, action string, r models.SiteReview) error    { return nil }
func (noopEvents) PublishNotification(topic string, n models.PushNotification) error     { return nil }

func connectPostgres(cfg config.DatabaseConfig, log *logger.Logger) *bun.DB {
	if cfg.DSN == "" {
		log.Fatal("CONFIG", "POSTGRES_DSN not set")
	}

	var sqldb *sql.DB
	var err error
	maxRetries := 5

	for i := 0; i < maxRetries; i++ {
		log.Info("DATABASE", fmt.Sprintf("Attempting to connect to PostgreSQL (attempt %d/%d)", i+1, maxRetries))
		sqldb, err = sql.Open("postgres", cfg.DSN)
		if err != nil {
			log.Error("DATABASE", fmt.Sprintf("Failed to open PostgreSQL: %v", err))
			time.Sleep(2 * time.Second)
			continue
		}
		if err = sqldb.Ping(); err == nil {
			break
		}
		log.Error("DATABASE", fmt.Sprintf("Failed to connect to PostgreSQL: %v", err))
		if i < maxRetries-1 {
			time.Sleep(2 * time.Second)
		}
	}
	if err != nil {
		log.Fatal("DATABASE", fmt.Sprintf("Failed to connect to PostgreSQL after %d attempts: %v", maxRetries, err))
	}

	sqldb.SetMaxOpenConns(cfg.MaxOpenConns)
	sqldb.SetMaxIdleConns(cfg.MaxIdleConns)
	sqldb.SetConnMaxLifetime(cfg.MaxLifetime)

	log.Info("DATABASE", "PostgreSQL connection successful")
	return bun.NewDB(sqldb, pgdialect.New())
}

func connectRedis(ctx context.Context, cfg config.RedisConfig, log *logger.Logger) *redis.Client {
	client := redis.NewClient(&redis.Options{Addr: cfg.Addr})
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatal("DATABASE", fmt.Sprintf("Redis connection error: %v", err))
	}
	log.Info("DATABASE", fmt.Sprintf("Redis connection successful to %s", cfg.Addr))
	return client
}

func main() {
	log := logger.NewLogger()
	defer log.Close()

	log.Info("APP", "Starting Content Service initialization")

	if err := godotenv.Load(); err != nil {
		log.Warn("CONFIG", ".env file not found, using environment variables")
	} else {
		log.Info("CONFIG", "Loaded environment variables from .env file")
	}

	cfg := config.Load()
	ctx := context.Background()

	bunDB := connectPostgres(cfg.Database, log)
	defer bunDB.Close()

	redisClient := connectRedis(ctx, cfg.Redis, log)
	defer redisClient.Close()

	if cfg.Database.AutoMigrate {
		runner := migrations.NewRunner(bunDB, migrations.Options{
			MigrationsDir: cfg.Database.MigrationsDir,
		})
		if err := runner.MigrateUp(); err != nil {
			log.Fatal("DATABASE", fmt.Sprintf("Migration failed: %v", err))
		}
		log.Info("DATABASE", "Schema migrations applied")
	}

	var bonusEvents bonus.EventPublisher = noopEvents{}
	var campaignEvents campaign.EventPublisher = noopEvents{}
	var reviewEvents review.EventPublisher = noopEvents{}
	var pushDispatch push.Dispatcher = noopEvents{}

	if cfg.Kafka.Enabled {
		producer := kafka.NewProducer(cfg.Kafka.Brokers)
		defer producer.Close()
		log.Info("KAFKA", fmt.Sprintf("Kafka producer initialized for %v", cfg.Kafka.Brokers))

		requiredTopics := []string{
			cfg.Kafka.Topics.BonusEvents,
			cfg.Kafka.Topics.CampaignEvents,
			cfg.Kafka.Topics.ReviewEvents,
			cfg.Kafka.Topics.PushDispatch,
		}
		if err := kafka.EnsureTopicsExist(cfg.Kafka.Brokers, requiredTopics); err != nil {
			log.Warn("KAFKA", fmt.Sprintf("Topic creation might have failed: %v", err))
		} else {
			log.Info("KAFKA", "Required topics ensured successfully")
		}

		bonusEvents = producer
		campaignEvents = producer
		reviewEvents = producer
		pushDispatch = producer
	} else {
		log.Warn("KAFKA", "Kafka disabled, lifecycle events will not be published")
	}

	bonusCache := cache.NewListing[models.Bonus](redisClient, "listing:bonuses", cfg.Redis.ListingTTL)
	campaignCache := cache.NewListing[models.Campaign](redisClient, "listing:campaigns", cfg.Redis.ListingTTL)
	voteLimiter := review_redis.NewVoteLimiter(redisClient, cfg.Redis.VoteTTL)

	bonusService := bonus.NewService(bonus_db.New(bunDB), bonusEvents, bonusCache, cfg.Kafka.Topics.BonusEvents)
	campaignService := campaign.NewService(campaign_db.New(bunDB), campaignEvents, campaignCache, cfg.Kafka.Topics.CampaignEvents)
	reviewService := review.NewService(review_db.New(bunDB), voteLimiter, reviewEvents, cfg.Kafka.Topics.ReviewEvents)
	telegramService := telegram.NewService(telegram_db.New(bunDB))
	displayService := display.NewService(display_db.New(bunDB))
	seoService := seo.NewService(seo_db.New(bunDB))
	pushService := push.NewService(push_db.New(bunDB), pushDispatch, cfg.Kafka.Topics.PushDispatch)
	bankoService := banko.NewService(banko_db.New(bunDB))
	statsService := stats.NewService(bunDB)

	pageSize := cfg.Moderation.PageSize
	bonusHandler := bonus_api.NewHandler(bonusService, log, pageSize)
	campaignHandler := campaign_api.NewHandler(campaignService, log, pageSize)
	reviewHandler := review_api.NewHandler(reviewService, log, pageSize)
	telegramHandler := telegram_api.NewHandler(telegramService, log)
	displayHandler := display_api.NewHandler(displayService, log)
	seoHandler := seo_api.NewHandler(seoService, log)
	pushHandler := push_api.NewHandler(pushService, log)
	bankoHandler := banko_api.NewHandler(bankoService, log)
	statsHandler := stats_api.NewHandler(statsService, log)

	log.Info("HTTP", "Setting up router and middleware")
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Route("/api", func(r chi.Router) {
		bonusHandler.RegisterPublicRoutes(r)
		campaignHandler.RegisterPublicRoutes(r)
		reviewHandler.RegisterPublicRoutes(r)
		telegramHandler.RegisterPublicRoutes(r)
		displayHandler.RegisterPublicRoutes(r)
		seoHandler.RegisterPublicRoutes(r)
		pushHandler.RegisterPublicRoutes(r)
		bankoHandler.RegisterPublicRoutes(r)
	})
	log.Info("ROUTER", "Public routes registered under /api")

	r.Route("/api/admin", func(r chi.Router) {
		r.Use(auth.Middleware(cfg.Auth.OIDCIssuer))
		r.Use(auth.RequireRole(cfg.Auth.AdminRole))

		bonusHandler.RegisterAdminRoutes(r)
		campaignHandler.RegisterAdminRoutes(r)
		reviewHandler.RegisterAdminRoutes(r)
		telegramHandler.RegisterAdminRoutes(r)
		displayHandler.RegisterAdminRoutes(r)
		seoHandler.RegisterAdminRoutes(r)
		pushHandler.RegisterAdminRoutes(r)
		bankoHandler.RegisterAdminRoutes(r)
		statsHandler.RegisterAdminRoutes(r)
	})
	log.Info("ROUTER", fmt.Sprintf("Admin routes registered under /api/admin (role: %s)", cfg.Auth.AdminRole))

	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("HTTP", fmt.Sprintf("Content Service running on %s", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP", fmt.Sprintf("HTTP server error: %v", err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	log.Info("APP", "Service started successfully, waiting for shutdown signal")
	<-stop

	log.Info("APP", "Shutdown signal received, initiating graceful shutdown")
	ctxShutdown, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Error("HTTP", fmt.Sprintf("Server Shutdown Failed: %v", err))
	} else {
		log.Info("HTTP", "Content Service shutdown complete")
	}
}
