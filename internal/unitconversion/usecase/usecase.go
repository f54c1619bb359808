package usecase

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/fekuna/omnipos-inventory-service/internal/apperror"
	"github.com/fekuna/omnipos-inventory-service/internal/audit"
	"github.com/fekuna/omnipos-inventory-service/internal/model"
	"github.com/fekuna/omnipos-inventory-service/internal/unitconversion"
	"github.com/fekuna/omnipos-inventory-service/internal/unitconversion/dto"
	"github.com/fekuna/omnipos-inventory-service/pkg/clock"
	"github.com/fekuna/omnipos-inventory-service/pkg/database/postgres"
	"github.com/fekuna/omnipos-inventory-service/pkg/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type conversionUseCase struct {
	repo   unitconversion.Repository
	txm    postgres.TxManager
	cache  unitconversion.Cache
	ttl    time.Duration
	audit  audit.Sink
	clock  clock.Clock
	logger logger.ZapLogger
}

func NewConversionUseCase(
	repo unitconversion.Repository,
	txm postgres.TxManager,
	cache unitconversion.Cache,
	ttl time.Duration,
	auditSink audit.Sink,
	clk clock.Clock,
	log logger.ZapLogger,
) unitconversion.UseCase {
	return &conversionUseCase{
		repo:   repo,
		txm:    txm,
		cache:  cache,
		ttl:    ttl,
		audit:  auditSink,
		clock:  clk,
		logger: log,
	}
}

func cacheKey(from, to string) string {
	return fmt.Sprintf("unitconv:%s:%s", from, to)
}

// Convert multiplies by the factor of a stored from->to row, or divides by the
// factor of a stored to->from row. Only single-hop conversions are supported.
func (uc *conversionUseCase) Convert(ctx context.Context, fromUnitID, toUnitID string, value decimal.Decimal) (decimal.Decimal, error) {
	if fromUnitID == toUnitID {
		return value, nil
	}

	direct, err := uc.lookup(ctx, fromUnitID, toUnitID)
	if err != nil {
		return decimal.Zero, err
	}
	if direct != nil {
		return value.Mul(direct.ConversionFactor), nil
	}

	reverse, err := uc.lookup(ctx, toUnitID, fromUnitID)
	if err != nil {
		return decimal.Zero, err
	}
	if reverse != nil {
		if reverse.ConversionFactor.IsZero() {
			return decimal.Zero, apperror.InvalidState("conversion %s -> %s has a zero factor", toUnitID, fromUnitID)
		}
		return value.Div(reverse.ConversionFactor), nil
	}

	return decimal.Zero, apperror.NotFound("no conversion between units %s and %s", fromUnitID, toUnitID)
}

func (uc *conversionUseCase) lookup(ctx context.Context, from, to string) (*model.UnitConversion, error) {
	key := cacheKey(from, to)

	var cached model.UnitConversion
	hit, err := uc.cache.GetJSON(ctx, key, &cached)
	if err != nil {
		uc.logger.Warn("Unit conversion cache read failed", zap.String("key", key), zap.Error(err))
	}
	if hit {
		return &cached, nil
	}

	conv, err := uc.repo.FindDirect(ctx, from, to)
	if err != nil {
		return nil, err
	}
	if conv == nil {
		return nil, nil
	}

	if err := uc.cache.SetJSON(ctx, key, conv, uc.ttl); err != nil {
		uc.logger.Warn("Unit conversion cache write failed", zap.String("key", key), zap.Error(err))
	}
	return conv, nil
}

func (uc *conversionUseCase) CreateConversion(ctx context.Context, in *dto.CreateConversionInput) (*model.UnitConversion, error) {
	if err := apperror.Validate(in); err != nil {
		return nil, err
	}
	if in.FromUnitID == in.ToUnitID {
		return nil, apperror.InvalidArgument("a unit cannot be converted to itself")
	}
	if !in.ConversionFactor.IsPositive() {
		return nil, apperror.InvalidArgument("conversion factor must be greater than 0")
	}

	conv := &model.UnitConversion{
		ID:               uuid.New().String(),
		FromUnitID:       in.FromUnitID,
		ToUnitID:         in.ToUnitID,
		ConversionFactor: in.ConversionFactor,
		CreatedAt:        uc.clock.Now(),
	}

	err := uc.txm.WithinTx(ctx, sql.LevelSerializable, func(ctx context.Context) error {
		for _, id := range []string{in.FromUnitID, in.ToUnitID} {
			u, err := uc.repo.FindUnitByID(ctx, id)
			if err != nil {
				return err
			}
			if u == nil {
				return apperror.NotFound("unit %s not found", id)
			}
		}

		existing, err := uc.repo.FindPair(ctx, in.FromUnitID, in.ToUnitID)
		if err != nil {
			return err
		}
		if existing != nil {
			return apperror.Conflict("a conversion between units %s and %s already exists", in.FromUnitID, in.ToUnitID)
		}

		if err := uc.repo.Create(ctx, conv); err != nil {
			if postgres.IsUniqueViolation(err) {
				return apperror.Conflict("a conversion between units %s and %s already exists", in.FromUnitID, in.ToUnitID)
			}
			return err
		}

		return uc.audit.Record(ctx, audit.Entry{
			Action:      audit.ActionUnitConversionCreated,
			EntityType:  "unit_conversion",
			EntityID:    conv.ID,
			PerformedBy: in.Actor,
			Details:     conv,
		})
	})
	if err != nil {
		return nil, apperror.Report(uc.logger, "create unit conversion", err)
	}

	if err := uc.cache.Delete(ctx, cacheKey(in.FromUnitID, in.ToUnitID), cacheKey(in.ToUnitID, in.FromUnitID)); err != nil {
		uc.logger.Warn("Unit conversion cache invalidation failed", zap.Error(err))
	}
	return conv, nil
}

func (uc *conversionUseCase) ListConversions(ctx context.Context) ([]model.UnitConversion, error) {
	items, err := uc.repo.FindAll(ctx)
	if err != nil {
		return nil, apperror.Report(uc.logger, "list unit conversions", err)
	}
	return items, nil
}
