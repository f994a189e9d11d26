// api/router.go

package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"fancontrol/internal/handlers"
	"fancontrol/internal/logger"
	"fancontrol/middleware"
)

func SetupRouter(
	statusHandler *handlers.StatusHandler,
	notifyHandler *handlers.NotifyHandler,
	historyHandler *handlers.HistoryHandler,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	// 使用CORS中间件
	router.Use(middleware.Cors())

	// 使用自定义logger中间件
	router.Use(func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		logger.Debug("[%s] %s %s %v", c.Request.Method, path, c.ClientIP(), time.Since(start))
	})

	api := router.Group("/api")
	{
		// 通知注入（总线协作方边界）
		api.POST("/sensors/notify", notifyHandler.Notify)

		// 状态查询
		api.GET("/zones", statusHandler.ListZones)
		api.GET("/zones/:id", statusHandler.GetZone)
		api.GET("/groups", statusHandler.ListGroups)
		api.GET("/monitor", statusHandler.GetMonitor)

		// 历史记录
		api.GET("/zones/:id/history", historyHandler.GetZoneHistory)
		api.GET("/faults", historyHandler.GetFaults)
	}

	return router
}
