package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/pitchside/transfer-market-service/internal/app/background"
	"github.com/pitchside/transfer-market-service/internal/config"
	"github.com/pitchside/transfer-market-service/internal/delivery/httpapi"
	"github.com/pitchside/transfer-market-service/internal/delivery/ws"
	publisher "github.com/pitchside/transfer-market-service/internal/infrastructure/kafka"
	"github.com/pitchside/transfer-market-service/internal/infrastructure/metrics"
	"github.com/pitchside/transfer-market-service/internal/infrastructure/migrate"
	"github.com/pitchside/transfer-market-service/internal/infrastructure/notifier"
	"github.com/pitchside/transfer-market-service/internal/infrastructure/postgres"
	"github.com/pitchside/transfer-market-service/internal/infrastructure/postgres/repository"
	"github.com/pitchside/transfer-market-service/internal/infrastructure/queue"
	"github.com/pitchside/transfer-market-service/internal/usecase"
	"github.com/redis/go-redis/v9"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("failed to load .env")
	}
	// Reading config
	cfg := config.MustLoad()
	// Init database
	db := postgres.MustInitDB(cfg)

	if cfg.MarketDB.MigrationsPath != "" {
		if err := migrate.RunMigrations(db, cfg.MarketDB.MigrationsPath); err != nil {
			log.Fatalf("failed to run migrations: %v", err)
		}
	}

	store := repository.NewGormStore(db)

	if cfg.MarketDB.SeedPlayers {
		if err := postgres.SeedPlayers(context.Background(), store); err != nil {
			log.Fatalf("failed to seed players: %v", err)
		}
	}

	// Kafka
	brokers := []string{fmt.Sprintf("%s:%s", cfg.KafkaService.Host, cfg.KafkaService.Port)}
	pub := publisher.NewDefaultKafkaPublisher(brokers)
	sub := publisher.NewDefaultKafkaSubscriber(brokers)

	// Redis draft queue
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisQueue.Addr,
		Password: cfg.RedisQueue.Password,
		DB:       cfg.RedisQueue.DB,
	})
	draftQueue := queue.NewRedisDraftQueue(redisClient)

	marketMetrics := metrics.NewMarketMetrics()

	tokenTTL, err := time.ParseDuration(cfg.AuthConfig.TokenTTL)
	if err != nil {
		log.Fatalf("invalid token_ttl: %v", err)
	}

	// Init usecases
	authUsecase := usecase.NewDefaultAuthUsecase(store, draftQueue, cfg.AuthConfig.JWTSecret, tokenTTL)
	teamUsecase := usecase.NewDefaultTeamUsecase(store, pub, marketMetrics)
	marketUsecase := usecase.NewDefaultMarketUsecase(store, pub, marketMetrics)

	// Draft workers
	tasks := background.NewBackgroundTasks(teamUsecase, draftQueue, cfg.RedisQueue.Workers)
	tasks.StartAll(context.Background())

	// WebSocket hub fed by the kafka event topics
	hub := ws.NewHub()
	go hub.Run()
	dispatcher := notifier.NewDispatcher(sub, hub, "market-service-notifier")
	if err := dispatcher.Start(); err != nil {
		log.Fatalf("failed to start notification dispatcher: %v", err)
	}

	authHandler := httpapi.NewAuthHandler(authUsecase)
	teamHandler := httpapi.NewTeamHandler(teamUsecase)
	marketHandler := httpapi.NewMarketHandler(marketUsecase)

	router := httpapi.NewRouter([]byte(cfg.AuthConfig.JWTSecret), authHandler, teamHandler, marketHandler, hub)

	addr := fmt.Sprintf("%s:%s", cfg.HTTPServer.Host, cfg.HTTPServer.Port)
	log.Printf("HTTP server started on %s\n", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("failed to serve: %v\n", err)
	}
}
