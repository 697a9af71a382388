package database

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"LeadDial/internal/model"
	"LeadDial/pkg/logger"
)

// Migrate 运行数据库迁移，创建所有表
func Migrate() error {
	db := DB()
	if db == nil {
		return gorm.ErrInvalidDB
	}

	logger.Logger.Info("Starting database migration...")

	err := db.AutoMigrate(
		&model.AdminUser{},
		&model.Lead{},
		&model.FollowRecord{},
		&model.CallTask{},
		&model.CallRecord{},
		&model.Scene{},
		&model.Product{},
	)

	if err != nil {
		logger.Logger.Error("Database migration failed", zap.Error(err))
		return err
	}

	logger.Logger.Info("Database migration completed")
	return nil
}
