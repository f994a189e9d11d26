// internal/handlers/history_handler.go

package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"fancontrol/internal/db"
)

// HistoryHandler 变更历史查询
type HistoryHandler struct {
	repo *db.HistoryRepository
}

func NewHistoryHandler(repo *db.HistoryRepository) *HistoryHandler {
	return &HistoryHandler{repo: repo}
}

// GetZoneHistory 指定风区的目标/下限变更记录
//
// 可选 start/end (RFC3339) 限定时间范围，可选 limit 限制条数
func (h *HistoryHandler) GetZoneHistory(c *gin.Context) {
	zoneID := c.Param("id")

	startStr := c.Query("start")
	endStr := c.Query("end")
	if startStr != "" && endStr != "" {
		start, err := time.Parse(time.RFC3339, startStr)
		if err != nil {
			errorResponse(c, http.StatusBadRequest, "invalid start time")
			return
		}
		end, err := time.Parse(time.RFC3339, endStr)
		if err != nil {
			errorResponse(c, http.StatusBadRequest, "invalid end time")
			return
		}
		changes, err := h.repo.GetChangesByZoneAndTimeRange(zoneID, start, end)
		if err != nil {
			errorResponse(c, http.StatusInternalServerError, err.Error())
			return
		}
		c.JSON(http.StatusOK, gin.H{"zone": zoneID, "changes": changes})
		return
	}

	limit := 100
	if limitStr := c.Query("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed <= 0 {
			errorResponse(c, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = parsed
	}
	changes, err := h.repo.GetChangesByZone(zoneID, limit)
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"zone": zoneID, "changes": changes})
}

// GetFaults 最近的传感器属主故障记录
func (h *HistoryHandler) GetFaults(c *gin.Context) {
	limit := 100
	if limitStr := c.Query("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed <= 0 {
			errorResponse(c, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = parsed
	}
	faults, err := h.repo.GetRecentFaults(limit)
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"faults": faults})
}
