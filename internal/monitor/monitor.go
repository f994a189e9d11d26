// internal/monitor/monitor.go

package monitor

import (
	"sync"
	"time"

	"fancontrol/internal/control"
	"fancontrol/internal/events"
	"fancontrol/internal/logger"
)

// Monitor 周期性采集风区与组的状态快照
//
// 快照发布到事件总线并保留最近一份供接口层查询，
// 采集只读不写，不参与任何控制决策。
type Monitor struct {
	mu       sync.RWMutex
	eventBus *events.EventBus
	manager  *control.Manager
	interval time.Duration
	latest   *events.MetricsData
	stopChan chan struct{}
	done     chan struct{}
}

func NewMonitor(eventBus *events.EventBus, manager *control.Manager, interval time.Duration) *Monitor {
	if interval == 0 {
		interval = 5 * time.Second // 默认5秒更新一次
	}
	return &Monitor{
		eventBus: eventBus,
		manager:  manager,
		interval: interval,
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

func (m *Monitor) Start() {
	go m.run()
	logger.Info("Monitor started, interval %v", m.interval)
}

func (m *Monitor) Stop() {
	close(m.stopChan)
	<-m.done
}

// Latest 返回最近一次采集的快照，尚未采集时返回 nil
func (m *Monitor) Latest() *events.MetricsData {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.latest
}

func (m *Monitor) run() {
	defer close(m.done)
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	// 启动时先采一次，避免接口层在第一个周期内拿到空快照
	m.collect()

	for {
		select {
		case <-ticker.C:
			m.collect()
		case <-m.stopChan:
			return
		}
	}
}

func (m *Monitor) collect() {
	metrics := &events.MetricsData{
		Timestamp:     time.Now(),
		Zones:         make(map[string]events.ZoneMetrics),
		Groups:        make(map[string]events.GroupMetrics),
		PendingEvents: m.manager.PendingJobs(),
	}

	for _, zs := range m.manager.ZoneStatuses() {
		metrics.Zones[zs.ID] = events.ZoneMetrics{
			Target:       zs.Target,
			Floor:        zs.Floor,
			Ceiling:      zs.Ceiling,
			DefaultFloor: zs.DefaultFloor,
			FloorHeld:    zs.FloorHeld,
		}
	}

	for _, gs := range m.manager.GroupStatuses() {
		gm := events.GroupMetrics{
			Policy:       gs.Policy,
			Trusted:      gs.Trusted,
			MemberValues: make(map[string]int64),
		}
		for _, member := range gs.Members {
			gm.MemberValues[member.Handle] = member.Value
			if !member.HasOwner {
				gm.MissingOwner = append(gm.MissingOwner, member.Handle)
			}
		}
		metrics.Groups[gs.Name] = gm
	}

	m.mu.Lock()
	m.latest = metrics
	m.mu.Unlock()

	m.eventBus.Publish(events.Event{
		Type:      events.EventMetricsUpdate,
		Timestamp: metrics.Timestamp,
		Data:      *metrics,
	})
}
