package repository

import (
	"context"
	"errors"

	"github.com/MegaDev007/farmheart-backend-sub000/internal/owner/domain"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type ownerRepository struct {
	db *gorm.DB
}

func Provide(db *gorm.DB) domain.Repository {
	return &ownerRepository{db: db}
}

func (r *ownerRepository) FindByID(ctx context.Context, id snowflake.ID) (*domain.Owner, error) {
	if id == 0 {
		return nil, domain.ErrInvalidID
	}
	var owner domain.Owner
	err := r.db.WithContext(ctx).First(&owner, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &owner, nil
}

func (r *ownerRepository) Insert(ctx context.Context, owner *domain.Owner) error {
	return r.db.WithContext(ctx).Create(owner).Error
}
