// internal/db/history_repository.go
package db

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"fancontrol/internal/logger"
)

type HistoryRepository struct {
	db *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// CreateTargetChange 记录一次目标/下限变更
func (r *HistoryRepository) CreateTargetChange(change *TargetChangeLog) error {
	err := r.db.Create(change).Error
	if err != nil {
		logger.Error("记录变更历史失败 - 风区: %s, 错误: %v", change.ZoneID, err)
		return fmt.Errorf("记录变更历史失败: %v", err)
	}
	return nil
}

// GetChangesByZone 获取指定风区的全部变更记录
func (r *HistoryRepository) GetChangesByZone(zoneID string, limit int) ([]TargetChangeLog, error) {
	var changes []TargetChangeLog
	q := r.db.Where("zone_id = ?", zoneID).Order("changed_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&changes).Error; err != nil {
		logger.Error("获取变更历史失败 - 风区: %s, 错误: %v", zoneID, err)
		return nil, fmt.Errorf("获取变更历史失败: %v", err)
	}
	return changes, nil
}

// GetChangesByZoneAndTimeRange 获取指定风区在时间范围内的变更记录
func (r *HistoryRepository) GetChangesByZoneAndTimeRange(zoneID string, start, end time.Time) ([]TargetChangeLog, error) {
	var changes []TargetChangeLog
	err := r.db.Where("zone_id = ? AND changed_at BETWEEN ? AND ?", zoneID, start, end).
		Order("changed_at ASC").
		Find(&changes).Error
	if err != nil {
		logger.Error("获取变更历史失败 - 风区: %s, 时间范围: %v 到 %v, 错误: %v",
			zoneID, start.Format("2006-01-02 15:04:05"), end.Format("2006-01-02 15:04:05"), err)
		return nil, fmt.Errorf("获取变更历史失败: %v", err)
	}
	return changes, nil
}

// CreateSensorFault 记录一次传感器属主状态变化
func (r *HistoryRepository) CreateSensorFault(fault *SensorFaultLog) error {
	err := r.db.Create(fault).Error
	if err != nil {
		logger.Error("记录传感器故障失败 - 传感器: %s, 错误: %v", fault.Sensor, err)
		return fmt.Errorf("记录传感器故障失败: %v", err)
	}
	return nil
}

// GetRecentFaults 获取最近的传感器故障记录
func (r *HistoryRepository) GetRecentFaults(limit int) ([]SensorFaultLog, error) {
	var faults []SensorFaultLog
	q := r.db.Order("logged_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&faults).Error; err != nil {
		logger.Error("获取传感器故障记录失败 - 错误: %v", err)
		return nil, fmt.Errorf("获取传感器故障记录失败: %v", err)
	}
	return faults, nil
}
