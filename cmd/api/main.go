package main

import (
	"context"
	"log"
	"time"

	"go.uber.org/zap"

	"mailtriage/internal/config"
	"mailtriage/internal/handler"
	"mailtriage/internal/httpserver"
	"mailtriage/internal/repository"
	"mailtriage/internal/service/auth"
	"mailtriage/internal/service/ingest"
	"mailtriage/internal/service/review"
	"mailtriage/internal/service/sap"
	"mailtriage/pkg/db"
	"mailtriage/pkg/logger"
	"mailtriage/pkg/mq"
	"mailtriage/pkg/redis"
)

func main() {
	cfg := config.Load()

	logger := logger.NewLogger()
	defer logger.Sync()

	// DB
	dbConn, err := db.NewConnection(cfg.DB, logger)
	if err != nil {
		logger.Fatal("DB initialization failed", zap.Error(err))
	}
	defer dbConn.Close()

	if err := repository.EnsureSchema(context.Background(), dbConn); err != nil {
		logger.Fatal("Schema initialization failed", zap.Error(err))
	}

	// Redis
	rdb := redis.NewClient(cfg.Redis)
	defer rdb.Close()

	// MQ Publisher
	publisher, err := mq.NewPublisher(cfg.MQ.URL)
	if err != nil {
		logger.Fatal("Failed to init MQ publisher", zap.Error(err))
	}
	defer publisher.Close()

	// Repositories
	reviewerRepo := repository.NewReviewerRepository(dbConn)
	emailRepo := repository.NewEmailRepository(dbConn)
	queueRepo := repository.NewReviewQueueRepository(dbConn)
	actionRepo := repository.NewReviewActionRepository(dbConn)
	approvedRepo := repository.NewApprovedChangeRepository(dbConn)
	outgoingRepo := repository.NewOutgoingEmailRepository(dbConn)
	sapRepo := repository.NewSAPCustomerRepository(dbConn)

	// Services
	authService := auth.NewService(reviewerRepo, cfg.JWT.Secret)
	ingestService := ingest.NewService(emailRepo, publisher, logger)
	reviewService := review.NewService(queueRepo, emailRepo, actionRepo, approvedRepo, outgoingRepo, publisher, logger)
	sapLookup := sap.NewLookup(sapRepo, rdb, time.Hour, logger)

	// Handlers
	authHandler := handler.NewAuthHandler(authService, logger)
	ingestHandler := handler.NewIngestHandler(ingestService, logger)
	reviewHandler := handler.NewReviewHandler(reviewService, queueRepo, emailRepo, actionRepo, outgoingRepo, logger)
	sapHandler := handler.NewSAPHandler(sapLookup, logger)

	// Router
	router := httpserver.NewRouter(
		authHandler,
		ingestHandler,
		reviewHandler,
		sapHandler,
		cfg.JWT.Secret,
		dbConn,
		publisher,
	)

	logger.Info("Starting triage API", zap.String("port", cfg.Server.Port))
	if err := router.Run(cfg.Server.Port); err != nil {
		log.Fatalf("server start failed: %v", err)
	}
}
