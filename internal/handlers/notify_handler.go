// internal/handlers/notify_handler.go

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fancontrol/internal/control"
)

// 传感器通知请求
type NotifyRequest struct {
	Sensor   string `json:"sensor" binding:"required"`
	Value    *int64 `json:"value" binding:"required"`
	HasOwner *bool  `json:"has_owner" binding:"required"`
}

// NotifyHandler 通知注入入口
//
// 这是总线协作方的接口边界：每个请求等价于一条
// (sensorHandle, newValue, ownerPresent) 通知。
type NotifyHandler struct {
	manager *control.Manager
}

func NewNotifyHandler(manager *control.Manager) *NotifyHandler {
	return &NotifyHandler{manager: manager}
}

func (h *NotifyHandler) Notify(c *gin.Context) {
	var req NotifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "invalid request format")
		return
	}

	accepted := h.manager.Notify(control.Notification{
		Sensor:   req.Sensor,
		Value:    *req.Value,
		HasOwner: *req.HasOwner,
	})
	if !accepted {
		errorResponse(c, http.StatusServiceUnavailable, "manager not accepting notifications")
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"accepted": true})
}
