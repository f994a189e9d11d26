// internal/control/group.go

package control

import (
	"fmt"

	"fancontrol/internal/config"
	"fancontrol/internal/sensor"
	"fancontrol/internal/trust"
)

// GroupMember 组成员：传感器句柄加是否参与信任判定
type GroupMember struct {
	Handle         string
	IncludeInTrust bool
}

// Group 传感器组
//
// 组不持有传感器数据的副本，成员只是进程级传感器表中的句柄。
// 信任判定每次按需从表中取快照重新计算，保证读到的是最新状态。
type Group struct {
	name    string
	members []GroupMember
	policy  trust.Policy
	table   *sensor.Table
}

// NewGroup 从配置创建组并在传感器表中登记全部成员
func NewGroup(cfg config.GroupConfig, table *sensor.Table) (*Group, error) {
	if len(cfg.Members) == 0 {
		return nil, fmt.Errorf("group %q: no members", cfg.Name)
	}
	policy, err := trust.New(cfg.TrustPolicy)
	if err != nil {
		return nil, fmt.Errorf("group %q: %w", cfg.Name, err)
	}

	members := make([]GroupMember, 0, len(cfg.Members))
	for _, m := range cfg.Members {
		include := m.IncludeInTrust == nil || *m.IncludeInTrust
		members = append(members, GroupMember{
			Handle:         m.Sensor,
			IncludeInTrust: include,
		})
		table.Register(m.Sensor)
	}
	return &Group{
		name:    cfg.Name,
		members: members,
		policy:  policy,
		table:   table,
	}, nil
}

func (g *Group) Name() string {
	return g.name
}

func (g *Group) PolicyName() string {
	return g.policy.Name()
}

func (g *Group) Members() []GroupMember {
	return g.members
}

// Contains 判断句柄是否属于本组
func (g *Group) Contains(handle string) bool {
	for _, m := range g.members {
		if m.Handle == handle {
			return true
		}
	}
	return false
}

// Snapshot 按成员顺序读取全体成员的当前记录
func (g *Group) Snapshot() []sensor.Record {
	handles := make([]string, 0, len(g.members))
	for _, m := range g.members {
		handles = append(handles, m.Handle)
	}
	return g.table.Snapshot(handles)
}

// Trusted 计算组的信任判定
//
// 只有 include_in_trust 的成员参与判定；没有成员参与时
// 按不可信处理。
func (g *Group) Trusted() bool {
	handles := make([]string, 0, len(g.members))
	for _, m := range g.members {
		if m.IncludeInTrust {
			handles = append(handles, m.Handle)
		}
	}
	return g.policy.Trusted(g.table.Snapshot(handles))
}
