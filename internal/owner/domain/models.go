// Package domain holds the owner account model consumed by auth and dispatch.
package domain

import (
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

// Owner is a player account. APITokenHash stores an argon2id encoded hash of
// the secret half of the owner's API token.
type Owner struct {
	ID           snowflake.ID `gorm:"primaryKey" json:"id"`
	Username     string       `gorm:"type:text;not null;uniqueIndex" json:"username"`
	Email        string       `gorm:"type:text;not null" json:"email"`
	APITokenHash string       `gorm:"type:text;not null" json:"-"`
	CreatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"-"`
}

// TableName sets the database table name.
func (Owner) TableName() string { return "owners" }

var (
	ErrNotFound  = errors.New("owner_not_found")
	ErrInvalidID = errors.New("invalid_owner_id")
)
