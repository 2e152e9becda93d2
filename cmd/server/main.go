package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/itemshare/api"
	"github.com/Domenick1991/itemshare/config"
	"github.com/Domenick1991/itemshare/internal/bootstrap"
	"github.com/Domenick1991/itemshare/internal/cache"
	"github.com/Domenick1991/itemshare/internal/kafka"
	"github.com/Domenick1991/itemshare/internal/repository"
	"github.com/Domenick1991/itemshare/internal/service/bookings"
	"github.com/Domenick1991/itemshare/internal/service/items"
	"github.com/Domenick1991/itemshare/internal/service/requests"
	"github.com/Domenick1991/itemshare/internal/service/users"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	_ = godotenv.Load()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		logrus.Fatalf("load config: %v", err)
	}
	configureLogging(cfg.Log.Level)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		logrus.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Cache.SearchTTLSeconds)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	userRepo := repository.NewUserRepository(pool)
	itemRepo := repository.NewItemRepository(pool)
	requestRepo := repository.NewItemRequestRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	commentRepo := repository.NewCommentRepository(pool)

	userService := users.NewUserService(userRepo)
	itemService := items.NewItemService(itemRepo, userRepo, bookingRepo, commentRepo, requestRepo, redisCache)
	requestService := requests.NewRequestService(requestRepo, itemRepo, userRepo)
	bookingService := bookings.NewBookingService(
		bookingRepo,
		itemRepo,
		userRepo,
		producer,
		cfg.Kafka.BookingTopic,
		bookings.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
	)

	router := api.NewRouter(userService, itemService, requestService, bookingService)

	logrus.WithField("address", cfg.HTTP.Address).Info("starting server")
	if err := bootstrap.Run(ctx, cfg.HTTP.Address, router); err != nil {
		logrus.Fatalf("server error: %v", err)
	}
}

func configureLogging(level string) {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	if lvl, err := logrus.ParseLevel(level); err == nil {
		logrus.SetLevel(lvl)
	}
}
