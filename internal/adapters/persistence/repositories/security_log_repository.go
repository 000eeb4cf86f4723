package repositories

import (
	"context"

	"muni-hostelhub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// securityLogRepository implements SecurityLogRepository on GORM
type securityLogRepository struct {
	db *gorm.DB
}

// NewSecurityLogRepository creates a new security log repository
func NewSecurityLogRepository(db *gorm.DB) SecurityLogRepository {
	return &securityLogRepository{db: db}
}

// Append adds a log entry
func (r *securityLogRepository) Append(ctx context.Context, entry *models.SecurityLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// List lists all log entries, newest first
func (r *securityLogRepository) List(ctx context.Context) ([]*models.SecurityLog, error) {
	var logs []*models.SecurityLog
	if err := r.db.WithContext(ctx).Order("timestamp DESC").Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

// Clear removes all log entries
func (r *securityLogRepository) Clear(ctx context.Context) error {
	return r.db.WithContext(ctx).Where("1 = 1").Delete(&models.SecurityLog{}).Error
}
