// internal/control/event.go

package control

import (
	"fmt"
	"time"

	"fancontrol/internal/config"
	"fancontrol/internal/logger"
)

// Trigger 触发器：决定事件何时重新评估其动作
type Trigger struct {
	Class    string
	Interval time.Duration
	Oneshot  bool
}

// Event 配置的风控事件
//
// 事件把若干传感器组、触发器和有序的动作列表绑在一起。
// 拓扑在构建后不再变化，运行期只有组引用的数据在变。
// 启动和定时触发对事件的全部组求值，信号触发只对发生
// 变化的那个组求值。
type Event struct {
	name     string
	groups   []*Group
	zones    map[string]*Zone // 组名 → 绑定的风区
	triggers []Trigger
	actions  []Action
}

// NewEvent 从配置创建事件
//
// 引用的组、风区、动作任何一个无法解析都是致命的配置错误。
func NewEvent(cfg config.EventConfig, groups map[string]*Group, zones map[string]*Zone) (*Event, error) {
	e := &Event{
		name:  cfg.Name,
		zones: make(map[string]*Zone),
	}

	for _, gc := range cfg.Groups {
		group, ok := groups[gc.Name]
		if !ok {
			return nil, fmt.Errorf("event %q: unknown group %q", cfg.Name, gc.Name)
		}
		zoneID := gc.Zone
		if zoneID == "" {
			zoneID = cfg.Zone
		}
		zone, ok := zones[zoneID]
		if !ok {
			return nil, fmt.Errorf("event %q: group %q bound to unknown zone %q",
				cfg.Name, gc.Name, zoneID)
		}
		e.groups = append(e.groups, group)
		e.zones[gc.Name] = zone
	}

	for _, tc := range cfg.Triggers {
		e.triggers = append(e.triggers, Trigger{
			Class:    tc.Class,
			Interval: time.Duration(tc.IntervalMS) * time.Millisecond,
			Oneshot:  tc.Oneshot,
		})
	}

	for _, ac := range cfg.Actions {
		action, err := NewAction(ac)
		if err != nil {
			return nil, fmt.Errorf("event %q: %w", cfg.Name, err)
		}
		e.actions = append(e.actions, action)
	}
	return e, nil
}

func (e *Event) Name() string {
	return e.name
}

func (e *Event) Groups() []*Group {
	return e.groups
}

func (e *Event) Triggers() []Trigger {
	return e.triggers
}

// ZoneFor 返回某个组绑定的风区
func (e *Event) ZoneFor(group *Group) *Zone {
	return e.zones[group.Name()]
}

// HasStartupTrigger 是否配置了启动触发器
func (e *Event) HasStartupTrigger() bool {
	for _, t := range e.triggers {
		if t.Class == config.TriggerStartup {
			return true
		}
	}
	return false
}

// HasSignalTrigger 是否配置了信号触发器
func (e *Event) HasSignalTrigger() bool {
	for _, t := range e.triggers {
		if t.Class == config.TriggerSignal {
			return true
		}
	}
	return false
}

// TimerTriggers 返回配置的定时触发器
func (e *Event) TimerTriggers() []Trigger {
	var timers []Trigger
	for _, t := range e.triggers {
		if t.Class == config.TriggerTimer {
			timers = append(timers, t)
		}
	}
	return timers
}

// RunGroup 对单个组按配置顺序执行全部动作
//
// 单个动作的错误或 panic 记录后继续执行后续动作，
// 运行期故障不允许中断整个评估流程。
func (e *Event) RunGroup(group *Group, traceID string) {
	zone := e.zones[group.Name()]
	for _, action := range e.actions {
		if err := runAction(action, zone, group); err != nil {
			logger.Error("[%s] event %s action %s on group %s: %v",
				traceID, e.name, action.Name(), group.Name(), err)
		}
	}
}

func runAction(action Action, zone *Zone, group *Group) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return action.Run(zone, group)
}
