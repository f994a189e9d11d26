// internal/app/app.go

package app

import (
	"context"
	"fmt"
	"net/http"

	"fancontrol/api"
	"fancontrol/internal/config"
	"fancontrol/internal/control"
	"fancontrol/internal/db"
	"fancontrol/internal/events"
	"fancontrol/internal/handlers"
	"fancontrol/internal/logger"
	"fancontrol/internal/monitor"
	"fancontrol/internal/sensor"
)

type App struct {
	cfg      *config.ServiceConfig
	eventBus *events.EventBus
	table    *sensor.Table
	manager  *control.Manager
	recorder *db.Recorder
	monitor  *monitor.Monitor
	server   *http.Server
}

func NewApp(cfg *config.ServiceConfig) *App {
	return &App{cfg: cfg}
}

// Initialize 构建完整的控制图
//
// 配置错误在这里直接失败，不存在半初始化的应用。
func (a *App) Initialize() error {
	logger.SetLevelByName(a.cfg.LogLevel)

	if err := db.Init(a.cfg.DBPath); err != nil {
		return err
	}

	engineCfg, err := config.LoadEngine(a.cfg.ConfDir)
	if err != nil {
		return err
	}

	a.eventBus = events.NewEventBus()
	a.table = sensor.NewTable()

	a.manager, err = control.NewManager(engineCfg, a.table, a.eventBus, a.cfg.QueueDepth)
	if err != nil {
		return err
	}

	historyRepo := db.NewHistoryRepository(db.DB)
	a.recorder = db.NewRecorder(historyRepo, a.eventBus, 4*a.cfg.QueueDepth)
	a.monitor = monitor.NewMonitor(a.eventBus, a.manager, a.cfg.MonitorInterval)

	statusHandler := handlers.NewStatusHandler(a.manager, a.monitor)
	notifyHandler := handlers.NewNotifyHandler(a.manager)
	historyHandler := handlers.NewHistoryHandler(historyRepo)

	router := api.SetupRouter(statusHandler, notifyHandler, historyHandler)
	a.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", a.cfg.Port),
		Handler: router,
	}
	return nil
}

func (a *App) Start() error {
	// 记录器先于管理器启动，启动评估产生的变更也要入库
	a.recorder.Start()
	a.manager.Start()
	a.monitor.Start()

	go func() {
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server error: %v", err)
		}
	}()

	logger.Info("Server started on port %d", a.cfg.Port)
	return nil
}

func (a *App) Stop(ctx context.Context) error {
	if err := a.server.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown: %v", err)
	}
	a.monitor.Stop()
	if err := a.manager.Stop(ctx); err != nil {
		return err
	}
	a.recorder.Stop()
	logger.Info("Application stopped gracefully")
	return nil
}
