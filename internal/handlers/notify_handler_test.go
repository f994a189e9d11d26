package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fancontrol/internal/config"
	"fancontrol/internal/control"
	"fancontrol/internal/events"
	"fancontrol/internal/monitor"
	"fancontrol/internal/sensor"
)

func testRouter(t *testing.T) (*gin.Engine, *control.Manager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.EngineConfig{
		Zones: []config.ZoneConfig{
			{ID: "zone0", Floor: 3000, Ceiling: 12000, DefaultFloor: 8000, FullSpeed: 12000},
		},
		Groups: []config.GroupConfig{
			{Name: "G", TrustPolicy: "nonzero_speed", Members: []config.GroupMemberConfig{
				{Sensor: "fan0_inlet"},
			}},
		},
		Events: []config.EventConfig{
			{Name: "e", Zone: "zone0",
				Groups:   []config.EventGroupConfig{{Name: "G"}},
				Triggers: []config.TriggerConfig{{Class: config.TriggerStartup}, {Class: config.TriggerSignal}},
				Actions:  []config.ActionConfig{{Name: "default_floor"}}},
		},
	}
	bus := events.NewEventBus()
	manager, err := control.NewManager(cfg, sensor.NewTable(), bus, 16)
	require.NoError(t, err)
	manager.Start()
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		manager.Stop(ctx)
	})

	mon := monitor.NewMonitor(bus, manager, time.Minute)

	router := gin.New()
	statusHandler := NewStatusHandler(manager, mon)
	notifyHandler := NewNotifyHandler(manager)
	router.POST("/api/sensors/notify", notifyHandler.Notify)
	router.GET("/api/zones", statusHandler.ListZones)
	router.GET("/api/zones/:id", statusHandler.GetZone)
	router.GET("/api/groups", statusHandler.ListGroups)
	router.GET("/api/monitor", statusHandler.GetMonitor)
	return router, manager
}

// TestNotifyEndpoint 通知注入边界
func TestNotifyEndpoint(t *testing.T) {
	router, _ := testRouter(t)

	t.Run("Valid Notification Accepted", func(t *testing.T) {
		body := `{"sensor": "fan0_inlet", "value": 4200, "has_owner": true}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/api/sensors/notify", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusAccepted, w.Code)
	})

	t.Run("Zero Value Still Binds", func(t *testing.T) {
		// value 和 has_owner 用指针绑定，0/false 不会被 required 拒掉
		body := `{"sensor": "fan0_inlet", "value": 0, "has_owner": false}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/api/sensors/notify", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusAccepted, w.Code)
	})

	t.Run("Missing Sensor Rejected", func(t *testing.T) {
		body := `{"value": 4200, "has_owner": true}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/api/sensors/notify", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

// TestStatusEndpoints 状态查询
func TestStatusEndpoints(t *testing.T) {
	router, _ := testRouter(t)

	t.Run("List Zones", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/api/zones", nil))
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Zones []control.ZoneStatus `json:"zones"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Zones, 1)
		assert.Equal(t, "zone0", resp.Zones[0].ID)
		// 启动评估后传感器无属主 → 下限抬到缺省值
		assert.Equal(t, uint64(8000), resp.Zones[0].Floor)
	})

	t.Run("Unknown Zone Is 404", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/api/zones/ghost", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("List Groups", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/api/groups", nil))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"G"`)
	})

	t.Run("Monitor Before First Collection", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/api/monitor", nil))
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}
