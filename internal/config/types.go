// internal/config/types.go

package config

import "encoding/json"

// 触发器类型
const (
	TriggerStartup = "startup"
	TriggerTimer   = "timer"
	TriggerSignal  = "signal"
)

// ZoneConfig 风区定义 (zones.json)
type ZoneConfig struct {
	ID           string `json:"id"`
	Floor        uint64 `json:"floor"`
	Ceiling      uint64 `json:"ceiling"`
	DefaultFloor uint64 `json:"default_floor"`
	FullSpeed    uint64 `json:"full_speed"`
}

// GroupMemberConfig 组成员定义
//
// IncludeInTrust 省略时默认参与信任判定
type GroupMemberConfig struct {
	Sensor         string `json:"sensor"`
	IncludeInTrust *bool  `json:"include_in_trust,omitempty"`
}

// GroupConfig 传感器组定义 (groups.json)
type GroupConfig struct {
	Name        string              `json:"name"`
	Members     []GroupMemberConfig `json:"members"`
	TrustPolicy string              `json:"trust_policy"`
}

// TriggerConfig 触发器定义
//
// class 为 timer 时 interval_ms 必填，oneshot 控制是否只触发一次
type TriggerConfig struct {
	Class      string `json:"class"`
	IntervalMS int64  `json:"interval_ms,omitempty"`
	Oneshot    bool   `json:"oneshot,omitempty"`
}

// ActionConfig 动作定义，参数由具体动作自行解析
type ActionConfig struct {
	Name   string          `json:"name"`
	Params json.RawMessage `json:"params,omitempty"`
}

// EventGroupConfig 事件引用的组，可单独指定目标风区
type EventGroupConfig struct {
	Name string `json:"name"`
	Zone string `json:"zone,omitempty"`
}

// EventConfig 事件定义 (events.json)
type EventConfig struct {
	Name     string             `json:"name"`
	Zone     string             `json:"zone"`
	Groups   []EventGroupConfig `json:"groups"`
	Triggers []TriggerConfig    `json:"triggers"`
	Actions  []ActionConfig     `json:"actions"`
}

// EngineConfig 三个配置文件解析后的整体
type EngineConfig struct {
	Zones  []ZoneConfig
	Groups []GroupConfig
	Events []EventConfig
}
