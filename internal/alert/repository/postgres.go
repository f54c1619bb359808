package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fekuna/omnipos-inventory-service/internal/alert/dto"
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

func (r *PGRepository) Create(ctx context.Context, a *model.Alert) error {
	query := `
		INSERT INTO alerts (id, alert_type, message, product_id, ingredient_id, is_acknowledged, alert_date)
		VALUES (:id, :alert_type, :message, :product_id, :ingredient_id, :is_acknowledged, :alert_date)
	`
	_, err := sqlx.NamedExecContext(ctx, postgres.Executor(ctx, r.DB), query, a)
	return err
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Alert, error) {
	var a model.Alert
	err := sqlx.GetContext(ctx, postgres.Executor(ctx, r.DB), &a, `SELECT * FROM alerts WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.AlertFilters) ([]model.Alert, int, error) {
	conditions := []string{}
	args := []interface{}{}

	add := func(cond string, arg interface{}) {
		args = append(args, arg)
		conditions = append(conditions, fmt.Sprintf(cond, len(args)))
	}
	if f.AlertType != "" {
		add("alert_type = $%d", f.AlertType)
	}
	if f.ProductID != "" {
		add("product_id = $%d", f.ProductID)
	}
	if f.IngredientID != "" {
		add("ingredient_id = $%d", f.IngredientID)
	}
	if f.Acknowledged != nil {
		add("is_acknowledged = $%d", *f.Acknowledged)
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	db := postgres.Executor(ctx, r.DB)

	var count int
	if err := sqlx.GetContext(ctx, db, &count, "SELECT count(*) FROM alerts"+whereClause, args...); err != nil {
		return nil, 0, err
	}

	query := "SELECT * FROM alerts" + whereClause + " ORDER BY alert_date DESC"
	if f.PageSize > 0 {
		page := f.Page
		if page < 1 {
			page = 1
		}
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, (page-1)*f.PageSize)
	}

	items := []model.Alert{}
	if err := sqlx.SelectContext(ctx, db, &items, query, args...); err != nil {
		return nil, 0, err
	}
	return items, count, nil
}

func (r *PGRepository) Acknowledge(ctx context.Context, id, by string, at time.Time) error {
	query := `
		UPDATE alerts
		SET is_acknowledged = TRUE, acknowledged_by = $2, acknowledged_at = $3
		WHERE id = $1
	`
	_, err := postgres.Executor(ctx, r.DB).ExecContext(ctx, query, id, by, at)
	return err
}

func (r *PGRepository) HasOpen(ctx context.Context, alertType model.AlertType, target model.StockTarget) (bool, error) {
	column := "product_id"
	if target.IsIngredient() {
		column = "ingredient_id"
	}
	query := fmt.Sprintf(`SELECT EXISTS (
		SELECT 1 FROM alerts WHERE alert_type = $1 AND %s = $2 AND is_acknowledged = FALSE
	)`, column)

	var exists bool
	err := sqlx.GetContext(ctx, postgres.Executor(ctx, r.DB), &exists, query, alertType, target.ID())
	return exists, err
}
