package sensor

import (
	"sync"
	"testing"
)

// TestTable 验证传感器表的基本操作
func TestTable(t *testing.T) {
	t.Run("Unknown Handle Update Is Noop", func(t *testing.T) {
		table := NewTable()
		if table.Update("ghost", 100, true) {
			t.Error("Update of an unregistered handle should return false")
		}
		if table.Len() != 0 {
			t.Errorf("Table should stay empty, got %d records", table.Len())
		}
	})

	t.Run("Register Then Update", func(t *testing.T) {
		table := NewTable()
		table.Register("fan0_inlet")

		record, ok := table.Get("fan0_inlet")
		if !ok {
			t.Fatal("Registered handle should be readable")
		}
		if record.Value != 0 || record.HasOwner {
			t.Error("New record should start at zero with no owner")
		}

		if !table.Update("fan0_inlet", 4200, true) {
			t.Fatal("Update of a registered handle should succeed")
		}
		record, _ = table.Get("fan0_inlet")
		if record.Value != 4200 || !record.HasOwner {
			t.Errorf("Record not updated: %+v", record)
		}
	})

	t.Run("Duplicate Register Keeps Record", func(t *testing.T) {
		table := NewTable()
		table.Register("fan0_inlet")
		table.Update("fan0_inlet", 900, true)
		table.Register("fan0_inlet")

		record, _ := table.Get("fan0_inlet")
		if record.Value != 900 {
			t.Errorf("Re-register must not reset the record, got value %d", record.Value)
		}
	})

	t.Run("Snapshot Preserves Order And Skips Unknown", func(t *testing.T) {
		table := NewTable()
		table.Register("a")
		table.Register("b")
		table.Update("a", 1, true)
		table.Update("b", 2, true)

		snapshot := table.Snapshot([]string{"b", "ghost", "a"})
		if len(snapshot) != 2 {
			t.Fatalf("Snapshot should have 2 records, got %d", len(snapshot))
		}
		if snapshot[0].Handle != "b" || snapshot[1].Handle != "a" {
			t.Errorf("Snapshot order should follow the requested handles: %+v", snapshot)
		}
	})
}

// TestTableConcurrentReads 更新与并发读取不冲突
func TestTableConcurrentReads(t *testing.T) {
	table := NewTable()
	table.Register("fan0_inlet")

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				table.Get("fan0_inlet")
				table.Snapshot([]string{"fan0_inlet"})
			}
		}()
	}
	for j := 0; j < 1000; j++ {
		table.Update("fan0_inlet", int64(j), j%2 == 0)
	}
	wg.Wait()
}
