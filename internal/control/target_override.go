// internal/control/target_override.go

package control

import (
	"encoding/json"
	"fmt"
)

// targetOverrideParams 动作参数
//
// target 为 0 时使用风区的 full_speed
type targetOverrideParams struct {
	Target uint64 `json:"target"`
}

// targetOverride 信任失效时的目标转速接管
//
// 组不可信时把目标转速顶到配置值（默认 full_speed）并记住
// 接管前的目标；信任恢复后还原。active 标志保证重复触发
// 不会把接管后的值当成恢复值保存。
type targetOverride struct {
	target uint64

	active bool
	saved  uint64
}

func newTargetOverride(params json.RawMessage) (Action, error) {
	var p targetOverrideParams
	if len(params) > 0 {
		if err := json.Unmarshal(params, &p); err != nil {
			return nil, fmt.Errorf("invalid params: %w", err)
		}
	}
	return &targetOverride{target: p.Target}, nil
}

func (a *targetOverride) Name() string { return "target_override" }

func (a *targetOverride) Run(zone *Zone, group *Group) error {
	trusted := group.Trusted()

	if !trusted {
		if !a.active {
			a.saved = zone.Target()
			a.active = true
		}
		target := a.target
		if target == 0 {
			target = zone.FullSpeed()
		}
		zone.SetTarget(target, "target_override: "+group.Name()+" untrusted")
		return nil
	}
	if a.active {
		a.active = false
		zone.SetTarget(a.saved, "target_override: "+group.Name()+" trust restored")
	}
	return nil
}
