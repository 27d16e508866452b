package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

type Repository interface {
	FindByID(ctx context.Context, id snowflake.ID) (*Owner, error)
	Insert(ctx context.Context, owner *Owner) error
}
