package repository

import (
	"context"
	"database/sql"

	"github.com/inkmatch/inkmatch/internal/cache"
	"github.com/inkmatch/inkmatch/internal/domain/plan"
	ierr "github.com/inkmatch/inkmatch/internal/errors"
	"github.com/inkmatch/inkmatch/internal/logger"
	"github.com/inkmatch/inkmatch/internal/postgres"
	"github.com/inkmatch/inkmatch/internal/types"
	"github.com/jmoiron/sqlx"
)

type planRepository struct {
	db     postgres.IClient
	cache  cache.Cache
	logger *logger.Logger
}

// NewPlanRepository creates a postgres-backed plan repository with a
// read-through cache over the catalog.
func NewPlanRepository(db postgres.IClient, c cache.Cache, log *logger.Logger) plan.Repository {
	return &planRepository{db: db, cache: c, logger: log}
}

const planColumns = `id, name, lookup_key, description, tier, price, currency,
	status, created_at, updated_at, created_by, updated_by`

func (r *planRepository) Create(ctx context.Context, p *plan.Plan) error {
	query := `INSERT INTO plans (` + planColumns + `)
		VALUES (:id, :name, :lookup_key, :description, :tier, :price, :currency,
			:status, :created_at, :updated_at, :created_by, :updated_by)`

	if _, err := sqlx.NamedExecContext(ctx, r.db.Querier(ctx), query, p); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create plan").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *planRepository) Get(ctx context.Context, id string) (*plan.Plan, error) {
	key := cache.GenerateKey(cache.PrefixPlan, id)
	if cached, ok := r.cache.Get(ctx, key); ok {
		if p, ok := cached.(*plan.Plan); ok {
			return p, nil
		}
	}

	var p plan.Plan
	query := `SELECT ` + planColumns + ` FROM plans WHERE id = $1 AND status != $2`
	if err := sqlx.GetContext(ctx, r.db.Querier(ctx), &p, query, id, types.StatusDeleted); err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.NewError("plan not found").
				WithHintf("Plan with ID %s was not found", id).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get plan").
			Mark(ierr.ErrDatabase)
	}

	r.cache.Set(ctx, key, &p, cache.DefaultExpiration)
	return &p, nil
}

func (r *planRepository) GetByLookupKey(ctx context.Context, lookupKey string) (*plan.Plan, error) {
	var p plan.Plan
	query := `SELECT ` + planColumns + ` FROM plans WHERE lookup_key = $1 AND status != $2`
	if err := sqlx.GetContext(ctx, r.db.Querier(ctx), &p, query, lookupKey, types.StatusDeleted); err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.NewError("plan not found").
				WithHintf("Plan with lookup key %s was not found", lookupKey).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get plan by lookup key").
			Mark(ierr.ErrDatabase)
	}
	return &p, nil
}

func (r *planRepository) List(ctx context.Context) ([]*plan.Plan, error) {
	var plans []*plan.Plan
	query := `SELECT ` + planColumns + ` FROM plans WHERE status = $1 ORDER BY price ASC`
	if err := sqlx.SelectContext(ctx, r.db.Querier(ctx), &plans, query, types.StatusActive); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list plans").
			Mark(ierr.ErrDatabase)
	}
	return plans, nil
}

func (r *planRepository) Update(ctx context.Context, p *plan.Plan) error {
	query := `UPDATE plans SET
		name = :name, lookup_key = :lookup_key, description = :description,
		tier = :tier, price = :price, currency = :currency,
		status = :status, updated_at = :updated_at, updated_by = :updated_by
		WHERE id = :id`

	if _, err := sqlx.NamedExecContext(ctx, r.db.Querier(ctx), query, p); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update plan").
			Mark(ierr.ErrDatabase)
	}

	r.cache.Delete(ctx, cache.GenerateKey(cache.PrefixPlan, p.ID))
	return nil
}

func (r *planRepository) Delete(ctx context.Context, id string) error {
	query := `UPDATE plans SET status = $1 WHERE id = $2`
	if _, err := r.db.Querier(ctx).ExecContext(ctx, query, types.StatusDeleted, id); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete plan").
			Mark(ierr.ErrDatabase)
	}

	r.cache.Delete(ctx, cache.GenerateKey(cache.PrefixPlan, id))
	return nil
}
