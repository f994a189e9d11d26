// internal/control/manager.go

package control

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"fancontrol/internal/config"
	"fancontrol/internal/events"
	"fancontrol/internal/logger"
	"fancontrol/internal/sensor"
)

// Notification 外部总线送达的一条传感器通知
type Notification struct {
	Sensor   string `json:"sensor"`
	Value    int64  `json:"value"`
	HasOwner bool   `json:"has_owner"`
}

// GroupStatus 组状态快照，供接口层和监控使用
type GroupStatus struct {
	Name    string          `json:"name"`
	Policy  string          `json:"policy"`
	Trusted bool            `json:"trusted"`
	Members []sensor.Record `json:"members"`
}

// zoneWorker 单风区的串行执行流
//
// 同一风区的所有动作执行都经过这一个 goroutine，
// 不同风区之间互不等待。
type zoneWorker struct {
	zoneID string
	jobs   chan func()
}

// Manager 引擎的持有者和调度中心
//
// 从已校验的配置一次性构建全部风区、组和事件；单一入队
// goroutine 按到达顺序应用传感器更新并把动作执行分发到
// 对应风区的 worker。启动触发器在接受通知之前同步跑完，
// 系统从已知状态进入稳态。
type Manager struct {
	table *sensor.Table
	bus   *events.EventBus

	zones  map[string]*Zone
	groups map[string]*Group
	events []*Event

	// 句柄 → 引用它的组
	sensorGroups map[string][]*Group
	// 组名 → 带信号触发器的事件
	groupEvents map[string][]*Event

	workers  map[string]*zoneWorker
	notifyCh chan Notification

	// 组名 → 最近一次信任判定，用于发布 TrustChange
	trustState map[string]bool

	accepting atomic.Bool
	stopCh    chan struct{}
	stopOnce  sync.Once
	wg        sync.WaitGroup
}

// NewManager 从配置构建完整的控制图
//
// 任何引用错误（未知的组、风区、策略、动作）或参数错误都
// 使构建失败，不存在部分构建的管理器。
func NewManager(cfg *config.EngineConfig, table *sensor.Table, bus *events.EventBus, queueDepth int) (*Manager, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("engine config: %w", err)
	}
	if queueDepth <= 0 {
		queueDepth = 64
	}

	m := &Manager{
		table:        table,
		bus:          bus,
		zones:        make(map[string]*Zone),
		groups:       make(map[string]*Group),
		sensorGroups: make(map[string][]*Group),
		groupEvents:  make(map[string][]*Event),
		workers:      make(map[string]*zoneWorker),
		notifyCh:     make(chan Notification, queueDepth),
		trustState:   make(map[string]bool),
		stopCh:       make(chan struct{}),
	}

	for _, zc := range cfg.Zones {
		zone := NewZone(zc, bus)
		m.zones[zc.ID] = zone
		m.workers[zc.ID] = &zoneWorker{
			zoneID: zc.ID,
			jobs:   make(chan func(), queueDepth),
		}
	}

	for _, gc := range cfg.Groups {
		group, err := NewGroup(gc, table)
		if err != nil {
			return nil, err
		}
		m.groups[gc.Name] = group
		for _, member := range group.Members() {
			m.sensorGroups[member.Handle] = append(m.sensorGroups[member.Handle], group)
		}
	}

	for _, ec := range cfg.Events {
		event, err := NewEvent(ec, m.groups, m.zones)
		if err != nil {
			return nil, err
		}
		m.events = append(m.events, event)
		if event.HasSignalTrigger() {
			for _, group := range event.Groups() {
				m.groupEvents[group.Name()] = append(m.groupEvents[group.Name()], event)
			}
		}
	}

	logger.Info("Manager built: %d zones, %d groups, %d events, %d sensors",
		len(m.zones), len(m.groups), len(m.events), table.Len())
	return m, nil
}

// Start 启动管理器
//
// 先在调用者的 goroutine 里同步执行全部启动触发器，然后才
// 启动 worker、定时器和入队循环并开始接受通知。任何信号
// 触发的结果都不可能先于启动评估被观察到。
func (m *Manager) Start() {
	if len(m.events) == 0 {
		// 没有配置事件时全部风区直接运行在 full_speed
		for _, zone := range m.zones {
			zone.SetTarget(zone.FullSpeed(), "no events configured")
		}
	}

	startupTrace := uuid.NewString()[:8]
	for _, event := range m.events {
		if !event.HasStartupTrigger() {
			continue
		}
		logger.Info("[%s] startup evaluation of event %s", startupTrace, event.Name())
		for _, group := range event.Groups() {
			event.RunGroup(group, startupTrace)
		}
	}

	// 记录初始信任判定作为 TrustChange 的基线
	for name, group := range m.groups {
		m.trustState[name] = group.Trusted()
	}

	for _, worker := range m.workers {
		m.wg.Add(1)
		go m.runWorker(worker)
	}
	for _, event := range m.events {
		for _, trigger := range event.TimerTriggers() {
			m.wg.Add(1)
			go m.runTimer(event, trigger)
		}
	}
	m.wg.Add(1)
	go m.runIntake()

	m.accepting.Store(true)
	m.bus.Publish(events.Event{
		Type:      events.EventSystemStartup,
		Timestamp: time.Now(),
	})
	logger.Info("Manager started, accepting notifications")
}

// Stop 停止管理器，等待在途评估结束或超时
func (m *Manager) Stop(ctx context.Context) error {
	m.accepting.Store(false)
	m.stopOnce.Do(func() { close(m.stopCh) })

	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		m.bus.Publish(events.Event{
			Type:      events.EventSystemShutdown,
			Timestamp: time.Now(),
		})
		logger.Info("Manager stopped")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("manager shutdown timeout")
	}
}

// Notify 投递一条传感器通知
//
// 同一句柄的通知按投递顺序生效。管理器尚未启动或已停止时
// 通知被丢弃并返回 false；真实总线在启动完成后才建立订阅，
// 这里丢弃的只可能是多余的早到消息。
func (m *Manager) Notify(n Notification) bool {
	if !m.accepting.Load() {
		logger.Warn("Dropping notification for %s: manager not accepting", n.Sensor)
		return false
	}
	select {
	case m.notifyCh <- n:
		return true
	case <-m.stopCh:
		return false
	}
}

// runIntake 单一入队循环
//
// 串行应用传感器更新保证了同一句柄的顺序；更新应用后再
// 把受影响事件的动作执行分发到风区 worker。
func (m *Manager) runIntake() {
	defer m.wg.Done()
	for {
		select {
		case n := <-m.notifyCh:
			m.handleNotification(n)
		case <-m.stopCh:
			return
		}
	}
}

func (m *Manager) handleNotification(n Notification) {
	groups := m.sensorGroups[n.Sensor]
	if len(groups) == 0 {
		// 通知源覆盖的传感器集合可以比配置的大，不是错误
		logger.Debug("Ignoring notification for unreferenced sensor %s", n.Sensor)
		return
	}

	prev, _ := m.table.Get(n.Sensor)
	m.table.Update(n.Sensor, n.Value, n.HasOwner)

	traceID := uuid.NewString()[:8]
	logger.Debug("[%s] sensor %s value=%d owner=%v", traceID, n.Sensor, n.Value, n.HasOwner)

	m.bus.Publish(events.Event{
		Type:      events.EventSensorUpdate,
		Timestamp: time.Now(),
		Data: events.SensorUpdateData{
			Sensor:   n.Sensor,
			Value:    n.Value,
			HasOwner: n.HasOwner,
		},
	})

	if prev.HasOwner != n.HasOwner {
		for _, group := range groups {
			m.bus.Publish(events.Event{
				Type:      events.EventSensorFault,
				Timestamp: time.Now(),
				Data: events.SensorFaultData{
					Sensor:    n.Sensor,
					GroupName: group.Name(),
					HasOwner:  n.HasOwner,
				},
			})
		}
	}

	for _, group := range groups {
		trusted := group.Trusted()
		if m.trustState[group.Name()] != trusted {
			m.trustState[group.Name()] = trusted
			m.bus.Publish(events.Event{
				Type:      events.EventTrustChange,
				Timestamp: time.Now(),
				Data: events.TrustChangeData{
					GroupName: group.Name(),
					Trusted:   trusted,
					Policy:    group.PolicyName(),
				},
			})
		}

		for _, event := range m.groupEvents[group.Name()] {
			// 信号触发只对发生变化的组求值
			m.dispatch(event, group, traceID)
		}
	}
}

// dispatch 把一次组评估排入该组绑定风区的串行执行流
func (m *Manager) dispatch(event *Event, group *Group, traceID string) {
	worker := m.workers[event.ZoneFor(group).ID()]
	job := func() { event.RunGroup(group, traceID) }
	select {
	case worker.jobs <- job:
	case <-m.stopCh:
	}
}

func (m *Manager) runWorker(w *zoneWorker) {
	defer m.wg.Done()
	for {
		select {
		case job := <-w.jobs:
			job()
		case <-m.stopCh:
			return
		}
	}
}

// runTimer 定时触发循环，周期定时器每次到期后重新武装
func (m *Manager) runTimer(event *Event, trigger Trigger) {
	defer m.wg.Done()

	timer := time.NewTimer(trigger.Interval)
	defer timer.Stop()

	for {
		select {
		case <-timer.C:
			traceID := uuid.NewString()[:8]
			for _, group := range event.Groups() {
				m.dispatch(event, group, traceID)
			}
			if trigger.Oneshot {
				return
			}
			timer.Reset(trigger.Interval)
		case <-m.stopCh:
			return
		}
	}
}

// ZoneStatuses 全部风区状态，按 id 排序
func (m *Manager) ZoneStatuses() []ZoneStatus {
	statuses := make([]ZoneStatus, 0, len(m.zones))
	for _, zone := range m.zones {
		statuses = append(statuses, zone.Status())
	}
	sort.Slice(statuses, func(i, j int) bool { return statuses[i].ID < statuses[j].ID })
	return statuses
}

// ZoneStatus 单个风区状态
func (m *Manager) ZoneStatus(id string) (ZoneStatus, bool) {
	zone, ok := m.zones[id]
	if !ok {
		return ZoneStatus{}, false
	}
	return zone.Status(), true
}

// GroupStatuses 全部组状态，按名称排序
func (m *Manager) GroupStatuses() []GroupStatus {
	statuses := make([]GroupStatus, 0, len(m.groups))
	for _, group := range m.groups {
		statuses = append(statuses, GroupStatus{
			Name:    group.Name(),
			Policy:  group.PolicyName(),
			Trusted: group.Trusted(),
			Members: group.Snapshot(),
		})
	}
	sort.Slice(statuses, func(i, j int) bool { return statuses[i].Name < statuses[j].Name })
	return statuses
}

// PendingJobs 各风区执行流中积压的评估数量
func (m *Manager) PendingJobs() int {
	pending := len(m.notifyCh)
	for _, worker := range m.workers {
		pending += len(worker.jobs)
	}
	return pending
}
