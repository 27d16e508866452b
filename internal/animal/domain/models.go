// Package domain contains the animal and stat snapshot persistence models.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// LifecycleState is the coarse status gating which alerts are meaningful.
type LifecycleState string

const (
	LifecycleActive   LifecycleState = "active"
	LifecycleRetired  LifecycleState = "retired"
	LifecycleArchived LifecycleState = "archived"
)

// Valid reports whether the value is one of the three known states.
func (s LifecycleState) Valid() bool {
	switch s {
	case LifecycleActive, LifecycleRetired, LifecycleArchived:
		return true
	}
	return false
}

// Terminal states never transition again. Retired still fires its one
// became-retired notification on the edge into the state.
func (s LifecycleState) Terminal() bool {
	return s == LifecycleRetired || s == LifecycleArchived
}

// Animal is a living entity on a farm.
type Animal struct {
	ID             snowflake.ID   `gorm:"primaryKey" json:"id"`
	OwnerID        snowflake.ID   `gorm:"not null;index" json:"owner_id"`
	Name           string         `gorm:"type:text;not null" json:"name"`
	Species        string         `gorm:"type:text;not null" json:"species"`
	LifecycleState LifecycleState `gorm:"type:text;not null;default:active" json:"lifecycle_state"`
	BreedCount     int            `gorm:"not null;default:0" json:"breed_count"`
	BreedLimit     int            `gorm:"not null;default:0" json:"breed_limit"`
	LastDecayAt    time.Time      `gorm:"not null;index" json:"-"`
	CreatedAt      time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"-"`
}

// TableName sets the database table name.
func (Animal) TableName() string { return "animals" }

// StatSnapshot is one immutable reading of an animal's vitals. Rows are
// append-only; the latest row by recorded_at is the comparison baseline for
// the next evaluation.
type StatSnapshot struct {
	ID               snowflake.ID      `gorm:"primaryKey" json:"id"`
	AnimalID         snowflake.ID      `gorm:"not null;index:idx_snapshots_animal_recorded" json:"animal_id"`
	HungerPercent    int               `gorm:"not null" json:"hunger_percent"`
	HappinessPercent int               `gorm:"not null" json:"happiness_percent"`
	HeatPercent      int               `gorm:"not null" json:"heat_percent"`
	IsOperable       bool              `gorm:"not null;default:true" json:"is_operable"`
	IsBreedable      bool              `gorm:"not null;default:false" json:"is_breedable"`
	LifecycleState   LifecycleState    `gorm:"type:text;not null;default:active" json:"lifecycle_state"`
	Metadata         datatypes.JSONMap `gorm:"type:jsonb" json:"metadata,omitempty"`
	RecordedAt       time.Time         `gorm:"not null;index:idx_snapshots_animal_recorded" json:"recorded_at"`
}

// TableName sets the database table name.
func (StatSnapshot) TableName() string { return "stat_snapshots" }

// ClampPercent forces a raw percentage into [0,100]. Upstream values outside
// the range are clamped, never rejected.
func ClampPercent(value int) int {
	if value < 0 {
		return 0
	}
	if value > 100 {
		return 100
	}
	return value
}
