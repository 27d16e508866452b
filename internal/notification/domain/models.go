// Package domain contains notification persistence models and the
// repository contracts the dispatch engine depends on.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// NotificationRecord is one delivered in-app alert. The engine never
// mutates a record after creation; only the read/dismiss operations do.
type NotificationRecord struct {
	ID          snowflake.ID      `gorm:"primaryKey" json:"id"`
	OwnerID     snowflake.ID      `gorm:"not null;index:idx_notifications_owner_created" json:"owner_id"`
	AnimalID    snowflake.ID      `gorm:"not null;index" json:"animal_id"`
	Title       string            `gorm:"type:text;not null" json:"title"`
	Message     string            `gorm:"type:text;not null" json:"message"`
	Severity    string            `gorm:"type:text;not null" json:"severity"`
	Category    string            `gorm:"type:text;not null;index" json:"category"`
	Metadata    datatypes.JSONMap `gorm:"type:jsonb" json:"metadata,omitempty"`
	IsRead      bool              `gorm:"not null;default:false" json:"is_read"`
	IsDismissed bool              `gorm:"not null;default:false" json:"is_dismissed"`
	CreatedAt   time.Time         `gorm:"not null;index:idx_notifications_owner_created" json:"created_at"`
}

// TableName sets the database table name.
func (NotificationRecord) TableName() string { return "notifications" }

// ChannelPreference holds one owner's delivery channel switches. Created
// lazily on first access with in-app on and email off.
type ChannelPreference struct {
	OwnerID      snowflake.ID `gorm:"primaryKey" json:"owner_id"`
	InAppEnabled bool         `gorm:"not null;default:true" json:"in_app_enabled"`
	EmailEnabled bool         `gorm:"not null;default:false" json:"email_enabled"`
	UpdatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"-"`
}

// TableName sets the database table name.
func (ChannelPreference) TableName() string { return "channel_preferences" }

// DefaultPreference is the safe fallback when preference storage is
// unavailable: alerting degrades to in-app rather than going silent.
func DefaultPreference(ownerID snowflake.ID) ChannelPreference {
	return ChannelPreference{
		OwnerID:      ownerID,
		InAppEnabled: true,
		EmailEnabled: false,
	}
}
