package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fekuna/omnipos-inventory-service/internal/audit"
	"github.com/fekuna/omnipos-inventory-service/internal/model"
	"github.com/fekuna/omnipos-inventory-service/pkg/clock"
	"github.com/google/uuid"
)

type auditSink struct {
	repo  audit.Repository
	clock clock.Clock
}

func NewAuditSink(repo audit.Repository, clk clock.Clock) audit.Sink {
	return &auditSink{repo: repo, clock: clk}
}

func (s *auditSink) Record(ctx context.Context, e audit.Entry) error {
	details := ""
	if e.Details != nil {
		b, err := json.Marshal(e.Details)
		if err != nil {
			return fmt.Errorf("encode audit details: %w", err)
		}
		details = string(b)
	}

	return s.repo.Create(ctx, &model.AuditLog{
		ID:          uuid.New().String(),
		Action:      e.Action,
		EntityType:  e.EntityType,
		EntityID:    e.EntityID,
		PerformedBy: e.PerformedBy,
		Details:     details,
		CreatedAt:   s.clock.Now(),
	})
}
