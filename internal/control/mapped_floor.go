// internal/control/mapped_floor.go

package control

import (
	"encoding/json"
	"fmt"
	"sort"
)

// mappedFloorRange 一段取值区间到下限的映射
//
// 组内参与信任判定的成员取最大值，落在第一个 value < below
// 的区间时使用该区间的 floor
type mappedFloorRange struct {
	Below int64  `json:"below"`
	Floor uint64 `json:"floor"`
}

type mappedFloorParams struct {
	Ranges []mappedFloorRange `json:"ranges"`
}

// mappedFloor 按传感器读数映射风区下限
//
// 组不可信时不使用读数，直接退到缺省下限；读数超出全部
// 区间时保持当前下限不变。
type mappedFloor struct {
	ranges []mappedFloorRange
}

func newMappedFloor(params json.RawMessage) (Action, error) {
	var p mappedFloorParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, fmt.Errorf("invalid params: %w", err)
	}
	if len(p.Ranges) == 0 {
		return nil, fmt.Errorf("at least one range is required")
	}
	sort.Slice(p.Ranges, func(i, j int) bool {
		return p.Ranges[i].Below < p.Ranges[j].Below
	})
	return &mappedFloor{ranges: p.Ranges}, nil
}

func (a *mappedFloor) Name() string { return "mapped_floor" }

func (a *mappedFloor) Run(zone *Zone, group *Group) error {
	if !group.Trusted() {
		zone.SetFloor(zone.DefaultFloor(), "mapped_floor: "+group.Name()+" untrusted")
		return nil
	}

	var max int64
	found := false
	for _, r := range group.Snapshot() {
		if !found || r.Value > max {
			max = r.Value
			found = true
		}
	}
	if !found {
		return fmt.Errorf("group %s has no readable members", group.Name())
	}

	for _, rg := range a.ranges {
		if max < rg.Below {
			zone.SetFloor(rg.Floor, fmt.Sprintf("mapped_floor: %s value %d", group.Name(), max))
			return nil
		}
	}
	// 超出最高区间，保持现状
	return nil
}
