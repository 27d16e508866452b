// Package appcontext carries request-scoped identity through context values.
package appcontext

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

type contextKey string

const (
	requestIDKey contextKey = "farmheart_request_id"
	ownerIDKey   contextKey = "farmheart_owner_id"
	actorKey     contextKey = "farmheart_actor"
)

func WithRequestID(ctx context.Context, requestID string) context.Context {
	if ctx == nil || requestID == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, requestID)
}

func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	value, _ := ctx.Value(requestIDKey).(string)
	return value
}

func WithOwnerID(ctx context.Context, ownerID snowflake.ID) context.Context {
	if ctx == nil || ownerID == 0 {
		return ctx
	}
	return context.WithValue(ctx, ownerIDKey, ownerID)
}

func OwnerIDFromContext(ctx context.Context) (snowflake.ID, bool) {
	if ctx == nil {
		return 0, false
	}
	value, ok := ctx.Value(ownerIDKey).(snowflake.ID)
	return value, ok && value != 0
}

// WithActor records who triggered the action, "system" for sweep work.
func WithActor(ctx context.Context, actor string) context.Context {
	if ctx == nil || actor == "" {
		return ctx
	}
	return context.WithValue(ctx, actorKey, actor)
}

func ActorFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	value, _ := ctx.Value(actorKey).(string)
	return value
}
