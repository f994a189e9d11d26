package events

import "time"

// EventType 事件类型定义
type EventType int

const (
	// 系统事件 (0-9)
	EventSystemStartup EventType = iota
	EventSystemShutdown

	// 传感器事件 (10-19)
	EventSensorUpdate
	EventSensorFault

	// 风区控制事件 (20-39)
	EventTargetChange
	EventFloorChange
	EventTrustChange

	// 监控事件 (40-49)
	EventMetricsUpdate
)

// Event 事件结构
type Event struct {
	Type      EventType   `json:"type"`
	ZoneID    string      `json:"zone_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// Handler 事件处理函数类型
type Handler func(Event)

// Subscription 事件订阅信息
type Subscription struct {
	EventType EventType
	id        int
}

// TargetChangeData 风区目标转速变化
type TargetChangeData struct {
	ZoneID    string `json:"zone_id"`
	OldTarget uint64 `json:"old_target"`
	NewTarget uint64 `json:"new_target"`
	Reason    string `json:"reason"`
}

// FloorChangeData 风区下限变化
type FloorChangeData struct {
	ZoneID   string `json:"zone_id"`
	OldFloor uint64 `json:"old_floor"`
	NewFloor uint64 `json:"new_floor"`
	Reason   string `json:"reason"`
}

// SensorUpdateData 一条生效的传感器通知
type SensorUpdateData struct {
	Sensor   string `json:"sensor"`
	Value    int64  `json:"value"`
	HasOwner bool   `json:"has_owner"`
}

// TrustChangeData 传感器组信任状态变化
type TrustChangeData struct {
	GroupName string `json:"group_name"`
	Trusted   bool   `json:"trusted"`
	Policy    string `json:"policy"`
}

// SensorFaultData 传感器失去属主服务
type SensorFaultData struct {
	Sensor    string `json:"sensor"`
	GroupName string `json:"group_name"`
	HasOwner  bool   `json:"has_owner"`
}

// MetricsData 周期性监控快照
type MetricsData struct {
	Timestamp     time.Time               `json:"timestamp"`
	Zones         map[string]ZoneMetrics  `json:"zones"`
	Groups        map[string]GroupMetrics `json:"groups"`
	PendingEvents int                     `json:"pending_events"`
}

// ZoneMetrics 单个风区的监控指标
type ZoneMetrics struct {
	Target       uint64 `json:"target"`
	Floor        uint64 `json:"floor"`
	Ceiling      uint64 `json:"ceiling"`
	DefaultFloor uint64 `json:"default_floor"`
	FloorHeld    bool   `json:"floor_held"`
}

// GroupMetrics 单个传感器组的监控指标
type GroupMetrics struct {
	Policy       string           `json:"policy"`
	Trusted      bool             `json:"trusted"`
	MemberValues map[string]int64 `json:"member_values"`
	MissingOwner []string         `json:"missing_owner,omitempty"`
}

// EventNames 提供事件类型的字符串表示
var EventNames = map[EventType]string{
	EventSystemStartup:  "SystemStartup",
	EventSystemShutdown: "SystemShutdown",
	EventSensorUpdate:   "SensorUpdate",
	EventSensorFault:    "SensorFault",
	EventTargetChange:   "TargetChange",
	EventFloorChange:    "FloorChange",
	EventTrustChange:    "TrustChange",
	EventMetricsUpdate:  "MetricsUpdate",
}
