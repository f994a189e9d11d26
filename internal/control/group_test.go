package control

import (
	"testing"

	"fancontrol/internal/config"
	"fancontrol/internal/sensor"
)

// TestGroupTrustFiltering include_in_trust=false 的成员不参与判定
func TestGroupTrustFiltering(t *testing.T) {
	table := sensor.NewTable()
	falsePtr := false
	group, err := NewGroup(config.GroupConfig{
		Name:        "G",
		TrustPolicy: "nonzero_speed",
		Members: []config.GroupMemberConfig{
			{Sensor: "A"},
			{Sensor: "B", IncludeInTrust: &falsePtr},
		},
	}, table)
	if err != nil {
		t.Fatalf("Failed to build group: %v", err)
	}

	// 只有被排除的 B 非零：组仍然不可信
	table.Update("A", 0, true)
	table.Update("B", 9000, true)
	if group.Trusted() {
		t.Error("Excluded member must not contribute to the verdict")
	}

	table.Update("A", 100, true)
	if !group.Trusted() {
		t.Error("Included nonzero member should make the group trusted")
	}

	// 快照仍然包含全部成员
	if len(group.Snapshot()) != 2 {
		t.Errorf("Snapshot should cover all members, got %d", len(group.Snapshot()))
	}
}

// TestGroupContains 句柄归属判断
func TestGroupContains(t *testing.T) {
	table := sensor.NewTable()
	group := testGroup(t, table, "G", "A", "B")

	if !group.Contains("A") || !group.Contains("B") {
		t.Error("Members should be reported as contained")
	}
	if group.Contains("C") {
		t.Error("Non-member should not be reported as contained")
	}
}
