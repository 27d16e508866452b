// Package domain defines the immutable audit trail for lifecycle and
// preference changes.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// ActorType represents who triggered an action.
type ActorType string

const (
	ActorTypeOwner  ActorType = "owner"
	ActorTypeSystem ActorType = "system"
)

const (
	ActionAnimalRetired     = "animal.retired"
	ActionAnimalArchived    = "animal.archived"
	ActionPreferenceUpdated = "preference.updated"
)

// AuditLog captures one immutable record of a state-changing action.
type AuditLog struct {
	ID         snowflake.ID      `gorm:"primaryKey"`
	OwnerID    *snowflake.ID     `gorm:"index"`
	ActorType  ActorType         `gorm:"type:text;not null"`
	Action     string            `gorm:"type:text;not null;index"`
	TargetType string            `gorm:"type:text;not null"`
	TargetID   *string           `gorm:"type:text"`
	Metadata   datatypes.JSONMap `gorm:"type:jsonb"`
	CreatedAt  time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (AuditLog) TableName() string { return "audit_logs" }
