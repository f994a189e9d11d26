// internal/control/action.go

package control

import (
	"encoding/json"
	"fmt"
	"sort"

	"fancontrol/internal/config"
)

// Action 动作接口
//
// 动作读取组的状态并修改风区，是风区唯一的写入方。同一个
// 动作会在每次事件触发时重复执行，除非显式建模了累积状态
// （如 target_override 的恢复值），重复执行不得产生副作用累积。
// 运行期错误返回给调度方记录，不会中断其余动作。
type Action interface {
	Name() string
	Run(zone *Zone, group *Group) error
}

type actionFactory func(params json.RawMessage) (Action, error)

var actionRegistry = map[string]actionFactory{
	"default_floor":   newDefaultFloor,
	"target_override": newTargetOverride,
	"mapped_floor":    newMappedFloor,
	"target_increase": newTargetIncrease,
}

// NewAction 按配置名称创建动作，参数错误在构建期即报错
func NewAction(cfg config.ActionConfig) (Action, error) {
	factory, ok := actionRegistry[cfg.Name]
	if !ok {
		return nil, fmt.Errorf("unknown action %q (available: %v)", cfg.Name, ActionNames())
	}
	action, err := factory(cfg.Params)
	if err != nil {
		return nil, fmt.Errorf("action %q: %w", cfg.Name, err)
	}
	return action, nil
}

// ActionNames 返回已注册的动作名称，按字典序排列
func ActionNames() []string {
	names := make([]string, 0, len(actionRegistry))
	for name := range actionRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
