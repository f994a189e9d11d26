package db

import (
	"database/sql"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"fancontrol/internal/logger"
)

var SQLDB *sql.DB
var DB *gorm.DB

// Init 打开数据库并迁移表结构
func Init(path string) error {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return fmt.Errorf("open database %s: %w", path, err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("get sql db: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetConnMaxLifetime(time.Hour)
	DB = db
	SQLDB = sqlDB

	if err := db.AutoMigrate(&TargetChangeLog{}, &SensorFaultLog{}); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	logger.Info("Database ready at %s", path)
	return nil
}

func GetDB() *gorm.DB {
	return DB
}
