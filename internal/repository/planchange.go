package repository

import (
	"context"
	"database/sql"

	"github.com/inkmatch/inkmatch/internal/domain/planchange"
	ierr "github.com/inkmatch/inkmatch/internal/errors"
	"github.com/inkmatch/inkmatch/internal/logger"
	"github.com/inkmatch/inkmatch/internal/postgres"
	"github.com/inkmatch/inkmatch/internal/types"
	"github.com/jmoiron/sqlx"
)

type planChangeRepository struct {
	db     postgres.IClient
	logger *logger.Logger
}

// NewPlanChangeRepository creates a postgres-backed plan-change attempt repository
func NewPlanChangeRepository(db postgres.IClient, log *logger.Logger) planchange.Repository {
	return &planChangeRepository{db: db, logger: log}
}

const planChangeColumns = `id, subscription_id, current_plan_id, target_plan_id,
	change_type, state, quoted_charge, acknowledged, payment_id,
	confirmed_at, cancelled_at,
	status, created_at, updated_at, created_by, updated_by`

func (r *planChangeRepository) Create(ctx context.Context, attempt *planchange.Attempt) error {
	query := `INSERT INTO plan_changes (` + planChangeColumns + `)
		VALUES (:id, :subscription_id, :current_plan_id, :target_plan_id,
			:change_type, :state, :quoted_charge, :acknowledged, :payment_id,
			:confirmed_at, :cancelled_at,
			:status, :created_at, :updated_at, :created_by, :updated_by)`

	if _, err := sqlx.NamedExecContext(ctx, r.db.Querier(ctx), query, attempt); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create plan change attempt").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *planChangeRepository) Get(ctx context.Context, id string) (*planchange.Attempt, error) {
	var attempt planchange.Attempt
	query := `SELECT ` + planChangeColumns + ` FROM plan_changes WHERE id = $1`
	if err := sqlx.GetContext(ctx, r.db.Querier(ctx), &attempt, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.NewError("plan change not found").
				WithHintf("Plan change with ID %s was not found", id).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get plan change attempt").
			Mark(ierr.ErrDatabase)
	}
	return &attempt, nil
}

func (r *planChangeRepository) Update(ctx context.Context, attempt *planchange.Attempt) error {
	query := `UPDATE plan_changes SET
		change_type = :change_type, state = :state, quoted_charge = :quoted_charge,
		acknowledged = :acknowledged, payment_id = :payment_id,
		confirmed_at = :confirmed_at, cancelled_at = :cancelled_at,
		status = :status, updated_at = :updated_at, updated_by = :updated_by
		WHERE id = :id`

	if _, err := sqlx.NamedExecContext(ctx, r.db.Querier(ctx), query, attempt); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update plan change attempt").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *planChangeRepository) GetOpenBySubscriptionID(ctx context.Context, subscriptionID string) (*planchange.Attempt, error) {
	var attempt planchange.Attempt
	query := `SELECT ` + planChangeColumns + ` FROM plan_changes
		WHERE subscription_id = $1 AND state NOT IN ($2, $3)
		ORDER BY created_at DESC LIMIT 1`
	err := sqlx.GetContext(ctx, r.db.Querier(ctx), &attempt, query, subscriptionID,
		types.PlanChangeStateConfirmed, types.PlanChangeStateCancelled)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.NewError("no open plan change").
				WithHintf("No plan change in flight for subscription %s", subscriptionID).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get open plan change").
			Mark(ierr.ErrDatabase)
	}
	return &attempt, nil
}
