package repository

import (
	"go-backoffice-ws/internal/model"

	"gorm.io/gorm"
)

type AuditLogRepository interface {
	Create(entry *model.AuditLog) error
	// FindAll lists entries newest first; entityType/entityID filter when
	// non-empty. Entries are append-only, there is no update or delete.
	FindAll(entityType, entityID string, limit int) ([]model.AuditLog, error)
}

type auditLogRepo struct {
	db *gorm.DB
}

func NewAuditLogRepo(db *gorm.DB) AuditLogRepository {
	return &auditLogRepo{db}
}

func (r *auditLogRepo) Create(entry *model.AuditLog) error {
	return r.db.Create(entry).Error
}

func (r *auditLogRepo) FindAll(entityType, entityID string, limit int) ([]model.AuditLog, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	q := r.db.Order("created_at DESC").Limit(limit)
	if entityType != "" {
		q = q.Where("entity_type = ?", entityType)
	}
	if entityID != "" {
		q = q.Where("entity_id = ?", entityID)
	}
	var entries []model.AuditLog
	if err := q.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
