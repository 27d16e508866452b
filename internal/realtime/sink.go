// Package realtime delivers notification records to connected clients.
package realtime

import (
	"github.com/MegaDev007/farmheart-backend-sub000/internal/notification/domain"
	"github.com/bwmarrin/snowflake"
)

// Sink receives notification records for live delivery. Publishing is best
// effort: implementations must never block the dispatcher and never fail it.
type Sink interface {
	Publish(ownerID snowflake.ID, record *domain.NotificationRecord)
}

// NoopSink drops everything. Used when no realtime transport is configured;
// the absence of a sink is a no-op, not an error.
type NoopSink struct{}

func (NoopSink) Publish(ownerID snowflake.ID, record *domain.NotificationRecord) {}
