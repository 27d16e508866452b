package domain

import "context"

type Repository interface {
	Insert(ctx context.Context, entry *AuditLog) error
}
