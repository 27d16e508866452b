package repository

import (
	"context"
	"errors"
	"time"

	"github.com/MegaDev007/farmheart-backend-sub000/internal/notification/domain"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type notificationRepository struct {
	db *gorm.DB
}

func Provide(db *gorm.DB) domain.Repository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) InsertUnlessRecent(ctx context.Context, record *domain.NotificationRecord, window time.Duration) (bool, error) {
	if window <= 0 {
		window = time.Hour
	}
	since := record.CreatedAt.Add(-window)

	// Single-statement conditional insert so the suppression check and the
	// write cannot interleave with a racing evaluation.
	result := r.db.WithContext(ctx).Exec(
		`INSERT INTO notifications
		 (id, owner_id, animal_id, title, message, severity, category,
		  metadata, is_read, is_dismissed, created_at)
		 SELECT ?, ?, ?, ?, ?, ?, ?, ?, false, false, ?
		 WHERE NOT EXISTS (
			SELECT 1 FROM notifications
			WHERE owner_id = ?
			  AND animal_id = ?
			  AND category = ?
			  AND is_dismissed = false
			  AND created_at > ?
		 )`,
		record.ID,
		record.OwnerID,
		record.AnimalID,
		record.Title,
		record.Message,
		record.Severity,
		record.Category,
		record.Metadata,
		record.CreatedAt,
		record.OwnerID,
		record.AnimalID,
		record.Category,
		since,
	)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *notificationRepository) Insert(ctx context.Context, record *domain.NotificationRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *notificationRepository) List(ctx context.Context, filter domain.ListFilter) ([]domain.NotificationRecord, error) {
	limit := filter.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	query := r.db.WithContext(ctx).
		Where("owner_id = ? AND is_dismissed = false", filter.OwnerID).
		Order("created_at DESC, id DESC").
		Limit(limit)
	if filter.UnreadOnly {
		query = query.Where("is_read = false")
	}
	if filter.Before != nil {
		query = query.Where("created_at < ?", *filter.Before)
	}

	var records []domain.NotificationRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, ownerID, id snowflake.ID) (bool, error) {
	return r.flagUpdate(ctx, ownerID, id, "is_read")
}

func (r *notificationRepository) MarkDismissed(ctx context.Context, ownerID, id snowflake.ID) (bool, error) {
	return r.flagUpdate(ctx, ownerID, id, "is_dismissed")
}

func (r *notificationRepository) flagUpdate(ctx context.Context, ownerID, id snowflake.ID, column string) (bool, error) {
	if id == 0 {
		return false, domain.ErrInvalidID
	}
	result := r.db.WithContext(ctx).
		Model(&domain.NotificationRecord{}).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Update(column, true)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *notificationRepository) GetPreference(ctx context.Context, ownerID snowflake.ID) (*domain.ChannelPreference, error) {
	var pref domain.ChannelPreference
	err := r.db.WithContext(ctx).First(&pref, "owner_id = ?", ownerID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrPreferenceNotFound
	}
	if err != nil {
		return nil, err
	}
	return &pref, nil
}

func (r *notificationRepository) EnsurePreference(ctx context.Context, pref domain.ChannelPreference) (*domain.ChannelPreference, error) {
	// Insert-if-absent so two racing first accesses converge on one row.
	err := r.db.WithContext(ctx).Exec(
		`INSERT INTO channel_preferences (owner_id, in_app_enabled, email_enabled, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT (owner_id) DO NOTHING`,
		pref.OwnerID,
		pref.InAppEnabled,
		pref.EmailEnabled,
		time.Now().UTC(),
	).Error
	if err != nil {
		return nil, err
	}
	return r.GetPreference(ctx, pref.OwnerID)
}

func (r *notificationRepository) UpdatePreference(ctx context.Context, pref domain.ChannelPreference) (*domain.ChannelPreference, error) {
	err := r.db.WithContext(ctx).Exec(
		`INSERT INTO channel_preferences (owner_id, in_app_enabled, email_enabled, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT (owner_id) DO UPDATE
		 SET in_app_enabled = excluded.in_app_enabled,
		     email_enabled = excluded.email_enabled,
		     updated_at = excluded.updated_at`,
		pref.OwnerID,
		pref.InAppEnabled,
		pref.EmailEnabled,
		time.Now().UTC(),
	).Error
	if err != nil {
		return nil, err
	}
	return r.GetPreference(ctx, pref.OwnerID)
}
