// internal/handlers/status_handler.go

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fancontrol/internal/control"
	"fancontrol/internal/monitor"
)

// StatusHandler 风区与组状态查询
type StatusHandler struct {
	manager *control.Manager
	monitor *monitor.Monitor
}

func NewStatusHandler(manager *control.Manager, mon *monitor.Monitor) *StatusHandler {
	return &StatusHandler{
		manager: manager,
		monitor: mon,
	}
}

// ListZones 全部风区的当前指令转速与边界
func (h *StatusHandler) ListZones(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"zones": h.manager.ZoneStatuses(),
	})
}

// GetZone 单个风区状态
func (h *StatusHandler) GetZone(c *gin.Context) {
	id := c.Param("id")
	status, ok := h.manager.ZoneStatus(id)
	if !ok {
		errorResponse(c, http.StatusNotFound, "unknown zone "+id)
		return
	}
	c.JSON(http.StatusOK, status)
}

// ListGroups 全部组的信任判定与成员快照
func (h *StatusHandler) ListGroups(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"groups": h.manager.GroupStatuses(),
	})
}

// GetMonitor 最近一次监控快照
func (h *StatusHandler) GetMonitor(c *gin.Context) {
	latest := h.monitor.Latest()
	if latest == nil {
		errorResponse(c, http.StatusServiceUnavailable, "no metrics collected yet")
		return
	}
	c.JSON(http.StatusOK, latest)
}
