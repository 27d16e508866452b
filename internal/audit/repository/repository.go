package repository

import (
	"context"

	"github.com/MegaDev007/farmheart-backend-sub000/internal/audit/domain"
	"gorm.io/gorm"
)

type auditRepository struct {
	db *gorm.DB
}

func Provide(db *gorm.DB) domain.Repository {
	return &auditRepository{db: db}
}

func (r *auditRepository) Insert(ctx context.Context, entry *domain.AuditLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}
