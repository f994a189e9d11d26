package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fancontrol/internal/app"
	"fancontrol/internal/config"
	"fancontrol/internal/logger"
)

func main() {
	configPath := flag.String("config", "", "service config file (optional)")
	flag.Parse()

	cfg, err := config.LoadService(*configPath)
	if err != nil {
		logger.Error("Config error: %v", err)
		os.Exit(1)
	}

	// 创建应用实例
	app := app.NewApp(cfg)
	if err := app.Initialize(); err != nil {
		logger.Error("Init error: %v", err)
		os.Exit(1)
	}

	if err := app.Start(); err != nil {
		logger.Error("Start error: %v", err)
		os.Exit(1)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.Stop(ctx); err != nil {
		logger.Error("Stop error: %v", err)
	}
}
