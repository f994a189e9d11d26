package db

import "time"

// 目标/下限变更历史表
type TargetChangeLog struct {
	ID        int `gorm:"primaryKey"`
	ZoneID    string
	Kind      string // target / floor
	OldValue  uint64
	NewValue  uint64
	Reason    string    `gorm:"type:varchar(255)"`
	ChangedAt time.Time `gorm:"type:datetime"`
}

// 传感器属主故障日志表
type SensorFaultLog struct {
	ID        int `gorm:"primaryKey"`
	Sensor    string
	GroupName string
	HasOwner  bool
	LoggedAt  time.Time `gorm:"type:datetime"`
}
