// internal/control/zone.go

package control

import (
	"sync"
	"time"

	"fancontrol/internal/config"
	"fancontrol/internal/events"
	"fancontrol/internal/logger"
)

// ServiceState 组内单个传感器的属主服务状态
type ServiceState struct {
	Sensor   string `json:"sensor"`
	HasOwner bool   `json:"has_owner"`
}

// ZoneStatus 风区状态快照，供接口层和监控使用
type ZoneStatus struct {
	ID           string `json:"id"`
	Target       uint64 `json:"target"`
	Floor        uint64 `json:"floor"`
	Ceiling      uint64 `json:"ceiling"`
	DefaultFloor uint64 `json:"default_floor"`
	FullSpeed    uint64 `json:"full_speed"`
	FloorHeld    bool   `json:"floor_held"`
}

// Zone 风区：一个风扇调速域的可变控制状态
//
// 动作是唯一的写入方，管理器保证同一风区的动作串行执行。
// 读方（接口层、监控）可以并发访问，由内部锁保护。
type Zone struct {
	mu sync.RWMutex

	id           string
	target       uint64
	floor        uint64
	ceiling      uint64
	defaultFloor uint64
	fullSpeed    uint64

	// 组名 → 是否允许下调下限，未记录的组视为允许
	floorChangeAllowed map[string]bool
	// 组名 → 属主服务快照
	groupServices map[string][]ServiceState

	bus *events.EventBus
}

// NewZone 从配置创建风区
//
// 初始目标转速为 full_speed：在启动触发器评估完成之前，
// 风区保持保守的高转速而不是未初始化的低转速。
func NewZone(cfg config.ZoneConfig, bus *events.EventBus) *Zone {
	return &Zone{
		id:                 cfg.ID,
		target:             cfg.FullSpeed,
		floor:              cfg.Floor,
		ceiling:            cfg.Ceiling,
		defaultFloor:       cfg.DefaultFloor,
		fullSpeed:          cfg.FullSpeed,
		floorChangeAllowed: make(map[string]bool),
		groupServices:      make(map[string][]ServiceState),
		bus:                bus,
	}
}

func (z *Zone) ID() string {
	return z.id
}

func (z *Zone) Target() uint64 {
	z.mu.RLock()
	defer z.mu.RUnlock()
	return z.target
}

func (z *Zone) Floor() uint64 {
	z.mu.RLock()
	defer z.mu.RUnlock()
	return z.floor
}

func (z *Zone) Ceiling() uint64 {
	return z.ceiling
}

func (z *Zone) DefaultFloor() uint64 {
	return z.defaultFloor
}

func (z *Zone) FullSpeed() uint64 {
	return z.fullSpeed
}

// SetTarget 设置目标转速，越界时收敛到 [floor, ceiling]
func (z *Zone) SetTarget(target uint64, reason string) {
	z.mu.Lock()
	if target < z.floor {
		target = z.floor
	}
	if target > z.ceiling {
		target = z.ceiling
	}
	old := z.target
	z.target = target
	z.mu.Unlock()

	if old != target {
		logger.Info("Zone %s target %d -> %d (%s)", z.id, old, target, reason)
		if z.bus != nil {
			z.bus.Publish(events.Event{
				Type:      events.EventTargetChange,
				ZoneID:    z.id,
				Timestamp: time.Now(),
				Data: events.TargetChangeData{
					ZoneID:    z.id,
					OldTarget: old,
					NewTarget: target,
					Reason:    reason,
				},
			})
		}
	}
}

// SetFloor 设置下限
//
// 上调永远生效，下调要求没有任何组持有否决。生效后目标转速
// 随下限一起抬升，保证 floor ≤ target ≤ ceiling 始终成立。
// 返回值表示本次请求是否被应用。
func (z *Zone) SetFloor(floor uint64, reason string) bool {
	if floor > z.ceiling {
		floor = z.ceiling
	}

	z.mu.Lock()
	if floor < z.floor && !z.floorDecreaseAllowed() {
		z.mu.Unlock()
		logger.Debug("Zone %s floor decrease to %d vetoed (%s)", z.id, floor, reason)
		return false
	}
	old := z.floor
	z.floor = floor
	raisedTarget := false
	oldTarget := z.target
	if z.target < floor {
		z.target = floor
		raisedTarget = true
	}
	z.mu.Unlock()

	if old != floor {
		logger.Info("Zone %s floor %d -> %d (%s)", z.id, old, floor, reason)
		if z.bus != nil {
			z.bus.Publish(events.Event{
				Type:      events.EventFloorChange,
				ZoneID:    z.id,
				Timestamp: time.Now(),
				Data: events.FloorChangeData{
					ZoneID:   z.id,
					OldFloor: old,
					NewFloor: floor,
					Reason:   reason,
				},
			})
		}
	}
	if raisedTarget && z.bus != nil {
		z.bus.Publish(events.Event{
			Type:      events.EventTargetChange,
			ZoneID:    z.id,
			Timestamp: time.Now(),
			Data: events.TargetChangeData{
				ZoneID:    z.id,
				OldTarget: oldTarget,
				NewTarget: floor,
				Reason:    "floor raised: " + reason,
			},
		})
	}
	return true
}

// 调用方必须持有 z.mu
func (z *Zone) floorDecreaseAllowed() bool {
	for _, allowed := range z.floorChangeAllowed {
		if !allowed {
			return false
		}
	}
	return true
}

// SetFloorChangeAllowed 记录某个组对下调下限的许可
func (z *Zone) SetFloorChangeAllowed(group string, allowed bool) {
	z.mu.Lock()
	defer z.mu.Unlock()
	z.floorChangeAllowed[group] = allowed
}

// FloorHeld 是否有组正在阻止下限下调
func (z *Zone) FloorHeld() bool {
	z.mu.RLock()
	defer z.mu.RUnlock()
	return !z.floorDecreaseAllowed()
}

// SetServices 刷新某个组的属主服务快照
func (z *Zone) SetServices(group string, states []ServiceState) {
	z.mu.Lock()
	defer z.mu.Unlock()
	z.groupServices[group] = states
}

// GroupServices 读取某个组的属主服务快照
func (z *Zone) GroupServices(group string) []ServiceState {
	z.mu.RLock()
	defer z.mu.RUnlock()

	states := z.groupServices[group]
	out := make([]ServiceState, len(states))
	copy(out, states)
	return out
}

// Status 读取风区状态快照
func (z *Zone) Status() ZoneStatus {
	z.mu.RLock()
	defer z.mu.RUnlock()
	return ZoneStatus{
		ID:           z.id,
		Target:       z.target,
		Floor:        z.floor,
		Ceiling:      z.ceiling,
		DefaultFloor: z.defaultFloor,
		FullSpeed:    z.fullSpeed,
		FloorHeld:    !z.floorDecreaseAllowed(),
	}
}
