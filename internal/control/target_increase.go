// internal/control/target_increase.go

package control

import (
	"encoding/json"
	"fmt"
)

type targetIncreaseParams struct {
	Threshold int64  `json:"threshold"`
	Delta     uint64 `json:"delta"`
}

// targetIncrease 越限加速
//
// 组内任一参与信任判定的成员读数达到阈值时，把目标转速
// 上调 delta，上限收敛到 ceiling。读数回落后不主动回调，
// 降速交给其它动作或下一次映射。
type targetIncrease struct {
	threshold int64
	delta     uint64
}

func newTargetIncrease(params json.RawMessage) (Action, error) {
	var p targetIncreaseParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, fmt.Errorf("invalid params: %w", err)
	}
	if p.Delta == 0 {
		return nil, fmt.Errorf("delta must be positive")
	}
	return &targetIncrease{threshold: p.Threshold, delta: p.Delta}, nil
}

func (a *targetIncrease) Name() string { return "target_increase" }

func (a *targetIncrease) Run(zone *Zone, group *Group) error {
	included := make(map[string]bool, len(group.Members()))
	for _, m := range group.Members() {
		if m.IncludeInTrust {
			included[m.Handle] = true
		}
	}
	for _, record := range group.Snapshot() {
		if included[record.Handle] && record.Value >= a.threshold {
			zone.SetTarget(zone.Target()+a.delta,
				fmt.Sprintf("target_increase: %s at %d", record.Handle, record.Value))
			return nil
		}
	}
	return nil
}
