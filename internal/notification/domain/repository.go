package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

type ListFilter struct {
	OwnerID    snowflake.ID
	UnreadOnly bool
	Before     *time.Time
	Limit      int
}

type Repository interface {
	// InsertUnlessRecent atomically inserts the record unless an
	// undismissed notification with the same owner, animal and category was
	// created inside the cooldown window. Returns whether the row was
	// inserted. This is the one place correctness depends on atomicity
	// stronger than read-your-own-writes: two racing evaluations must not
	// both store the same alert.
	InsertUnlessRecent(ctx context.Context, record *NotificationRecord, window time.Duration) (bool, error)

	// Insert stores unconditionally; the dedup fail-open path uses it.
	Insert(ctx context.Context, record *NotificationRecord) error

	List(ctx context.Context, filter ListFilter) ([]NotificationRecord, error)
	MarkRead(ctx context.Context, ownerID, id snowflake.ID) (bool, error)
	MarkDismissed(ctx context.Context, ownerID, id snowflake.ID) (bool, error)

	// GetPreference returns ErrPreferenceNotFound when the owner has no row.
	GetPreference(ctx context.Context, ownerID snowflake.ID) (*ChannelPreference, error)

	// EnsurePreference inserts the default row if absent; concurrent
	// first-access calls converge on a single row.
	EnsurePreference(ctx context.Context, pref ChannelPreference) (*ChannelPreference, error)

	UpdatePreference(ctx context.Context, pref ChannelPreference) (*ChannelPreference, error)
}

var (
	ErrNotFound           = errors.New("notification_not_found")
	ErrInvalidID          = errors.New("invalid_notification_id")
	ErrPreferenceNotFound = errors.New("preference_not_found")
)
