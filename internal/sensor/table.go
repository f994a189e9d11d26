// internal/sensor/table.go

package sensor

import (
	"sync"
	"time"
)

// Record 单个传感器的最近一次上报
type Record struct {
	Handle     string    `json:"handle"`
	Value      int64     `json:"value"`
	HasOwner   bool      `json:"has_owner"`
	LastUpdate time.Time `json:"last_update"`
}

// Table 进程级传感器表
//
// 所有传感器组通过句柄引用本表中的记录，组之间不各自持有副本。
// 写入只发生在管理器的通知处理流程中，读取可以并发。
type Table struct {
	mu      sync.RWMutex
	records map[string]*Record
}

func NewTable() *Table {
	return &Table{
		records: make(map[string]*Record),
	}
}

// Register 登记一个传感器句柄
//
// 新登记的传感器初始值为 0 且无属主服务，在第一条通知到达前
// 按失效状态处理。重复登记是无害的空操作。
func (t *Table) Register(handle string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.records[handle]; !exists {
		t.records[handle] = &Record{Handle: handle}
	}
}

// Update 更新传感器记录，句柄未登记时返回 false 且不做任何修改
func (t *Table) Update(handle string, value int64, hasOwner bool) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	record, exists := t.records[handle]
	if !exists {
		return false
	}
	record.Value = value
	record.HasOwner = hasOwner
	record.LastUpdate = time.Now()
	return true
}

// Get 读取单个传感器记录
func (t *Table) Get(handle string) (Record, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if record, exists := t.records[handle]; exists {
		return *record, true
	}
	return Record{}, false
}

// Snapshot 按给定顺序读取一组传感器记录，未登记的句柄被跳过
func (t *Table) Snapshot(handles []string) []Record {
	t.mu.RLock()
	defer t.mu.RUnlock()

	records := make([]Record, 0, len(handles))
	for _, handle := range handles {
		if record, exists := t.records[handle]; exists {
			records = append(records, *record)
		}
	}
	return records
}

// Contains 判断句柄是否已登记
func (t *Table) Contains(handle string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	_, exists := t.records[handle]
	return exists
}

// Len 返回已登记的传感器数量
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.records)
}
