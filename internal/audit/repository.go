package audit

import (
	"context"

	"github.com/fekuna/omnipos-inventory-service/internal/model"
)

type Repository interface {
	Create(ctx context.Context, l *model.AuditLog) error
	FindByEntity(ctx context.Context, entityType, entityID string) ([]model.AuditLog, error)
}
