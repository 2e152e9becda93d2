package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	gatewayapi "github.com/Domenick1991/itemshare/api/gateway"
	"github.com/Domenick1991/itemshare/config"
	"github.com/Domenick1991/itemshare/internal/bootstrap"
	"github.com/Domenick1991/itemshare/internal/gateway"
	"github.com/gin-gonic/gin"
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
	logrus.SetFormatter(&logrus.JSONFormatter{})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := gateway.NewClient(cfg.Gateway.ServerURL)

	router := gin.New()
	router.Use(gin.Recovery())
	gatewayapi.NewHandler(client).Register(router)

	logrus.WithFields(logrus.Fields{
		"address": cfg.Gateway.Address,
		"server":  cfg.Gateway.ServerURL,
	}).Info("starting gateway")
	if err := bootstrap.Run(ctx, cfg.Gateway.Address, router); err != nil {
		logrus.Fatalf("gateway error: %v", err)
	}
}
