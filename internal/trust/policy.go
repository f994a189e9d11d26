// internal/trust/policy.go

package trust

import (
	"fmt"
	"sort"

	"fancontrol/internal/sensor"
)

// Policy 信任策略接口
//
// 策略是针对一组传感器快照的纯谓词：相同的快照输入必须得到
// 相同的判定结果，策略自身不持有任何状态。传入的快照只包含
// 参与信任判定的成员（include_in_trust 为 false 的成员已被过滤）。
type Policy interface {
	Name() string
	Trusted(members []sensor.Record) bool
}

var registry = map[string]func() Policy{
	"nonzero_speed":    func() Policy { return nonzeroSpeed{} },
	"any_present":      func() Policy { return anyPresent{} },
	"majority_nonzero": func() Policy { return majorityNonzero{} },
}

// New 按配置名称创建信任策略，未知名称返回错误
func New(name string) (Policy, error) {
	factory, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown trust policy %q (available: %v)", name, Names())
	}
	return factory(), nil
}

// Names 返回已注册的策略名称，按字典序排列
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
