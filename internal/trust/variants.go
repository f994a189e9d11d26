// internal/trust/variants.go

package trust

import "fancontrol/internal/sensor"

// nonzeroSpeed 只要组内任一成员转速非零即可信；
// 全部为零说明整组读数已不可信（例如计数器整体失效）。
type nonzeroSpeed struct{}

func (nonzeroSpeed) Name() string { return "nonzero_speed" }

func (nonzeroSpeed) Trusted(members []sensor.Record) bool {
	for _, m := range members {
		if m.Value != 0 {
			return true
		}
	}
	// 没有成员参与判定时按不可信处理
	return false
}

// anyPresent 只要组内任一成员仍有属主服务即可信
type anyPresent struct{}

func (anyPresent) Name() string { return "any_present" }

func (anyPresent) Trusted(members []sensor.Record) bool {
	for _, m := range members {
		if m.HasOwner {
			return true
		}
	}
	return false
}

// majorityNonzero 超过半数成员转速非零才可信
type majorityNonzero struct{}

func (majorityNonzero) Name() string { return "majority_nonzero" }

func (majorityNonzero) Trusted(members []sensor.Record) bool {
	if len(members) == 0 {
		return false
	}
	nonzero := 0
	for _, m := range members {
		if m.Value != 0 {
			nonzero++
		}
	}
	return nonzero*2 > len(members)
}
