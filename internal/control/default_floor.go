// internal/control/default_floor.go

package control

import "encoding/json"

// defaultFloor 缺省下限动作
//
// 每次触发时刷新风区对组内属主服务的记录；只要组内有任一
// 传感器失去属主服务，就把下限抬到缺省下限并禁止本组下调，
// 全部恢复属主后重新放开许可。失去发布服务被当作可靠性故障
// 处理，宁可多转也不信残留读数。
type defaultFloor struct{}

// 本动作没有 JSON 配置参数
func newDefaultFloor(json.RawMessage) (Action, error) {
	return defaultFloor{}, nil
}

func (defaultFloor) Name() string { return "default_floor" }

func (defaultFloor) Run(zone *Zone, group *Group) error {
	records := group.Snapshot()

	states := make([]ServiceState, 0, len(records))
	missing := false
	for _, r := range records {
		states = append(states, ServiceState{
			Sensor:   r.Handle,
			HasOwner: r.HasOwner,
		})
		if !r.HasOwner {
			missing = true
		}
	}
	zone.SetServices(group.Name(), states)

	if missing {
		zone.SetFloor(zone.DefaultFloor(), "default_floor: "+group.Name()+" missing owner")
	}
	zone.SetFloorChangeAllowed(group.Name(), !missing)
	return nil
}
