package main

import (
	"time"

	"go.uber.org/zap"

	"mailtriage/internal/config"
	"mailtriage/internal/mqhandler"
	"mailtriage/internal/repository"
	"mailtriage/internal/service/extract"
	"mailtriage/internal/service/sap"
	"mailtriage/internal/service/triage"
	"mailtriage/pkg/db"
	"mailtriage/pkg/logger"
	"mailtriage/pkg/mq"
	"mailtriage/pkg/redis"
	"mailtriage/pkg/util"
)

func main() {
	cfg := config.Load()

	logger := logger.NewLogger()
	defer logger.Sync()

	logger.Info("Starting triage worker...")

	// Redis
	rdb := redis.NewClient(cfg.Redis)
	defer rdb.Close()

	deduper := util.NewDeduperWithLogger(rdb, time.Hour, logger)
	retryCounter := util.NewRetryCounter(rdb, time.Hour)

	// DB
	dbConn, err := db.NewConnection(cfg.DB, logger)
	if err != nil {
		logger.Fatal("DB connection failed", zap.Error(err))
	}
	defer dbConn.Close()

	logger.Info("DB ready")

	// MQ Publisher for email.triaged events
	publisher, err := mq.NewPublisher(cfg.MQ.URL)
	if err != nil {
		logger.Fatal("Failed to init MQ publisher", zap.Error(err))
	}
	defer publisher.Close()

	// Repositories
	emailRepo := repository.NewEmailRepository(dbConn)
	queueRepo := repository.NewReviewQueueRepository(dbConn)
	sapRepo := repository.NewSAPCustomerRepository(dbConn)

	// Services
	extractClient := extract.NewClient(cfg.Extractor.URL)
	sapLookup := sap.NewLookup(sapRepo, rdb, time.Hour, logger)
	triageService := triage.NewService(queueRepo, emailRepo, sapLookup, publisher, logger)

	// Handler
	receivedHandler := mqhandler.NewEmailReceivedHandler(
		emailRepo, extractClient, triageService,
		retryCounter, deduper, logger,
	)

	logger.Info("Init consumer: email.received.triage.q")
	consumer, err := mq.NewConsumer(
		cfg.MQ.URL,
		"email.received.triage.q",
		"email.received",
		logger,
	)
	if err != nil {
		logger.Fatal("Triage consumer init failed", zap.Error(err))
	}
	consumer.SetHandler(receivedHandler.HandleEmailReceived)

	go func() {
		if err := consumer.StartConsuming(); err != nil {
			logger.Fatal("Triage consumer crashed", zap.Error(err))
		}
	}()
	defer consumer.Close()

	logger.Info("Worker running")
	select {}
}
