package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/fekuna/omnipos-inventory-service/internal/model"
	"github.com/fekuna/omnipos-inventory-service/pkg/database/postgres"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) FindUnitByID(ctx context.Context, id string) (*model.Unit, error) {
	var u model.Unit
	err := sqlx.GetContext(ctx, postgres.Executor(ctx, r.DB), &u, `SELECT * FROM units WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *PGRepository) FindDirect(ctx context.Context, fromUnitID, toUnitID string) (*model.UnitConversion, error) {
	return r.get(ctx, `SELECT * FROM unit_conversions WHERE from_unit_id = $1 AND to_unit_id = $2`, fromUnitID, toUnitID)
}

func (r *PGRepository) FindPair(ctx context.Context, unitA, unitB string) (*model.UnitConversion, error) {
	return r.get(ctx, `
		SELECT * FROM unit_conversions
		WHERE (from_unit_id = $1 AND to_unit_id = $2) OR (from_unit_id = $2 AND to_unit_id = $1)
		LIMIT 1
	`, unitA, unitB)
}

func (r *PGRepository) get(ctx context.Context, query string, args ...interface{}) (*model.UnitConversion, error) {
	var c model.UnitConversion
	err := sqlx.GetContext(ctx, postgres.Executor(ctx, r.DB), &c, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *PGRepository) Create(ctx context.Context, c *model.UnitConversion) error {
	query := `
		INSERT INTO unit_conversions (id, from_unit_id, to_unit_id, conversion_factor, created_at)
		VALUES (:id, :from_unit_id, :to_unit_id, :conversion_factor, :created_at)
	`
	_, err := sqlx.NamedExecContext(ctx, postgres.Executor(ctx, r.DB), query, c)
	return err
}

func (r *PGRepository) FindAll(ctx context.Context) ([]model.UnitConversion, error) {
	items := []model.UnitConversion{}
	err := sqlx.SelectContext(ctx, postgres.Executor(ctx, r.DB), &items,
		`SELECT * FROM unit_conversions ORDER BY created_at`)
	return items, err
}
