package trust

import (
	"math/rand"
	"testing"

	"fancontrol/internal/sensor"
)

func records(values ...int64) []sensor.Record {
	rs := make([]sensor.Record, 0, len(values))
	for _, v := range values {
		rs = append(rs, sensor.Record{Handle: "s", Value: v, HasOwner: true})
	}
	return rs
}

// TestNonzeroSpeed 验证 nonzero_speed 策略的判定
func TestNonzeroSpeed(t *testing.T) {
	policy, err := New("nonzero_speed")
	if err != nil {
		t.Fatalf("Failed to create policy: %v", err)
	}

	t.Run("All Zero Is Untrusted", func(t *testing.T) {
		if policy.Trusted(records(0, 0, 0)) {
			t.Error("All-zero members should be untrusted")
		}
	})

	t.Run("Any Nonzero Is Trusted", func(t *testing.T) {
		if !policy.Trusted(records(0, 4200, 0)) {
			t.Error("One nonzero member should make the group trusted")
		}
	})

	t.Run("Empty Members Is Untrusted", func(t *testing.T) {
		if policy.Trusted(nil) {
			t.Error("Group with no included members should be untrusted")
		}
	})

	// 随机向量：判定必须恰好等于“存在非零成员”
	t.Run("Random Vectors", func(t *testing.T) {
		rng := rand.New(rand.NewSource(42))
		for i := 0; i < 1000; i++ {
			n := 1 + rng.Intn(8)
			values := make([]int64, n)
			anyNonzero := false
			for j := range values {
				if rng.Intn(2) == 1 {
					values[j] = rng.Int63n(20000) + 1
					anyNonzero = true
				}
			}
			got := policy.Trusted(records(values...))
			if got != anyNonzero {
				t.Fatalf("values=%v: trusted=%v, want %v", values, got, anyNonzero)
			}
		}
	})

	// 纯函数：同一快照重复判定结果一致
	t.Run("Deterministic", func(t *testing.T) {
		snapshot := records(0, 150, 0)
		first := policy.Trusted(snapshot)
		for i := 0; i < 10; i++ {
			if policy.Trusted(snapshot) != first {
				t.Fatal("Same snapshot must yield the same verdict")
			}
		}
	})
}

// TestAnyPresent 验证 any_present 策略的判定
func TestAnyPresent(t *testing.T) {
	policy, err := New("any_present")
	if err != nil {
		t.Fatalf("Failed to create policy: %v", err)
	}

	t.Run("All Owners Missing Is Untrusted", func(t *testing.T) {
		members := []sensor.Record{
			{Handle: "a", Value: 100, HasOwner: false},
			{Handle: "b", Value: 200, HasOwner: false},
		}
		if policy.Trusted(members) {
			t.Error("Group with no owned members should be untrusted")
		}
	})

	t.Run("One Owner Present Is Trusted", func(t *testing.T) {
		members := []sensor.Record{
			{Handle: "a", Value: 0, HasOwner: false},
			{Handle: "b", Value: 0, HasOwner: true},
		}
		if !policy.Trusted(members) {
			t.Error("One owned member should make the group trusted")
		}
	})

	t.Run("Empty Members Is Untrusted", func(t *testing.T) {
		if policy.Trusted(nil) {
			t.Error("Group with no included members should be untrusted")
		}
	})
}

// TestMajorityNonzero 验证 majority_nonzero 策略的判定
func TestMajorityNonzero(t *testing.T) {
	policy, err := New("majority_nonzero")
	if err != nil {
		t.Fatalf("Failed to create policy: %v", err)
	}

	cases := []struct {
		name    string
		values  []int64
		trusted bool
	}{
		{"Empty", nil, false},
		{"Single Nonzero", []int64{1}, true},
		{"Single Zero", []int64{0}, false},
		{"Exactly Half", []int64{1, 0}, false},
		{"Majority", []int64{1, 2, 0}, true},
		{"Minority", []int64{1, 0, 0}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := policy.Trusted(records(tc.values...)); got != tc.trusted {
				t.Errorf("values=%v: trusted=%v, want %v", tc.values, got, tc.trusted)
			}
		})
	}
}

// TestRegistry 验证策略注册表
func TestRegistry(t *testing.T) {
	t.Run("Unknown Policy", func(t *testing.T) {
		if _, err := New("no_such_policy"); err == nil {
			t.Error("Unknown policy name should be rejected")
		}
	})

	t.Run("All Registered Names Resolve", func(t *testing.T) {
		for _, name := range Names() {
			policy, err := New(name)
			if err != nil {
				t.Errorf("Failed to create %q: %v", name, err)
				continue
			}
			if policy.Name() != name {
				t.Errorf("Policy %q reports name %q", name, policy.Name())
			}
		}
	})
}
