package domain

import (
	"context"

	"github.com/MegaDev007/farmheart-backend-sub000/internal/vitals/engine"
	"github.com/bwmarrin/snowflake"
)

// PreferenceResolver loads an owner's channel preferences, creating the
// default row on first access. Resolve never fails the caller: on storage
// errors it degrades to the safe default so alerting keeps working.
type PreferenceResolver interface {
	Resolve(ctx context.Context, ownerID snowflake.ID) ChannelPreference
	Update(ctx context.Context, pref ChannelPreference) (*ChannelPreference, error)
}

// Dispatcher delivers one surviving candidate event. It returns the stored
// record, or nil when no channel was eligible or the event was suppressed
// as a duplicate inside the cooldown window.
type Dispatcher interface {
	Dispatch(ctx context.Context, event engine.Event, pref ChannelPreference) *NotificationRecord
}

// Inbox exposes the owner-facing notification operations.
type Inbox interface {
	List(ctx context.Context, filter ListFilter) ([]NotificationRecord, error)
	MarkRead(ctx context.Context, ownerID, id snowflake.ID) error
	MarkDismissed(ctx context.Context, ownerID, id snowflake.ID) error
}
