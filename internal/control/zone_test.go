package control

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fancontrol/internal/config"
)

func testZone() *Zone {
	return NewZone(config.ZoneConfig{
		ID:           "zone0",
		Floor:        3000,
		Ceiling:      12000,
		DefaultFloor: 8000,
		FullSpeed:    12000,
	}, nil)
}

// TestZoneTargetBounds 目标转速始终收敛到 [floor, ceiling]
func TestZoneTargetBounds(t *testing.T) {
	zone := testZone()

	// 初始目标为 full_speed
	assert.Equal(t, uint64(12000), zone.Target())

	zone.SetTarget(5000, "test")
	assert.Equal(t, uint64(5000), zone.Target())

	zone.SetTarget(100, "below floor")
	assert.Equal(t, uint64(3000), zone.Target(), "target below floor clamps to floor")

	zone.SetTarget(99999, "above ceiling")
	assert.Equal(t, uint64(12000), zone.Target(), "target above ceiling clamps to ceiling")
}

// TestZoneFloor 下限上调无条件生效并抬升目标
func TestZoneFloor(t *testing.T) {
	zone := testZone()
	zone.SetTarget(3500, "test")

	require.True(t, zone.SetFloor(8000, "raise"))
	assert.Equal(t, uint64(8000), zone.Floor())
	assert.Equal(t, uint64(8000), zone.Target(), "raising the floor drags the target up")

	// 上限收敛
	require.True(t, zone.SetFloor(20000, "beyond ceiling"))
	assert.Equal(t, uint64(12000), zone.Floor())

	// 不变式始终成立
	status := zone.Status()
	assert.LessOrEqual(t, status.Floor, status.Target)
	assert.LessOrEqual(t, status.Target, status.Ceiling)
}

// TestZoneFloorVeto 任一组都可以独立否决下限下调
func TestZoneFloorVeto(t *testing.T) {
	zone := testZone()
	require.True(t, zone.SetFloor(8000, "raise"))

	zone.SetFloorChangeAllowed("groupA", false)
	zone.SetFloorChangeAllowed("groupB", true)

	assert.False(t, zone.SetFloor(3000, "decrease"), "decrease must be vetoed by groupA")
	assert.Equal(t, uint64(8000), zone.Floor())
	assert.True(t, zone.FloorHeld())

	// 上调不受否决影响
	assert.True(t, zone.SetFloor(9000, "increase while held"))
	assert.Equal(t, uint64(9000), zone.Floor())

	zone.SetFloorChangeAllowed("groupA", true)
	assert.True(t, zone.SetFloor(3000, "decrease"), "all groups allow, decrease applies")
	assert.Equal(t, uint64(3000), zone.Floor())
	assert.False(t, zone.FloorHeld())
}

// TestZoneServices 属主服务快照按组记录且读取为副本
func TestZoneServices(t *testing.T) {
	zone := testZone()
	zone.SetServices("groupA", []ServiceState{
		{Sensor: "fan0_inlet", HasOwner: true},
		{Sensor: "fan1_inlet", HasOwner: false},
	})

	services := zone.GroupServices("groupA")
	require.Len(t, services, 2)
	assert.Equal(t, "fan0_inlet", services[0].Sensor)

	// 修改返回值不影响内部状态
	services[0].HasOwner = false
	fresh := zone.GroupServices("groupA")
	assert.True(t, fresh[0].HasOwner)

	assert.Empty(t, zone.GroupServices("unknown"))
}
