package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

// Service exposes animal reads and lifecycle transitions. Stat updates flow
// through the vitals service, not here.
type Service interface {
	GetByID(ctx context.Context, ownerID, id snowflake.ID) (*Animal, error)
	Retire(ctx context.Context, ownerID, id snowflake.ID) (*Animal, error)
	Archive(ctx context.Context, ownerID, id snowflake.ID) (*Animal, error)
}

var (
	ErrNotFound          = errors.New("animal_not_found")
	ErrInvalidID         = errors.New("invalid_animal_id")
	ErrInvalidTransition = errors.New("invalid_lifecycle_transition")
)
