package repository

import (
	"context"
	"database/sql"

	"github.com/inkmatch/inkmatch/internal/domain/subscription"
	ierr "github.com/inkmatch/inkmatch/internal/errors"
	"github.com/inkmatch/inkmatch/internal/logger"
	"github.com/inkmatch/inkmatch/internal/postgres"
	"github.com/inkmatch/inkmatch/internal/types"
	"github.com/jmoiron/sqlx"
)

type subscriptionRepository struct {
	db     postgres.IClient
	logger *logger.Logger
}

// NewSubscriptionRepository creates a postgres-backed subscription repository
func NewSubscriptionRepository(db postgres.IClient, log *logger.Logger) subscription.Repository {
	return &subscriptionRepository{db: db, logger: log}
}

const subscriptionColumns = `id, artist_id, plan_id, subscription_status, start_date,
	next_payment_date, cancel_at_period_end, cancelled_at,
	status, created_at, updated_at, created_by, updated_by`

func (r *subscriptionRepository) Create(ctx context.Context, sub *subscription.Subscription) error {
	query := `INSERT INTO subscriptions (` + subscriptionColumns + `)
		VALUES (:id, :artist_id, :plan_id, :subscription_status, :start_date,
			:next_payment_date, :cancel_at_period_end, :cancelled_at,
			:status, :created_at, :updated_at, :created_by, :updated_by)`

	if _, err := sqlx.NamedExecContext(ctx, r.db.Querier(ctx), query, sub); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create subscription").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *subscriptionRepository) Get(ctx context.Context, id string) (*subscription.Subscription, error) {
	var sub subscription.Subscription
	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE id = $1 AND status != $2`
	if err := sqlx.GetContext(ctx, r.db.Querier(ctx), &sub, query, id, types.StatusDeleted); err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.NewError("subscription not found").
				WithHintf("Subscription with ID %s was not found", id).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get subscription").
			Mark(ierr.ErrDatabase)
	}
	return &sub, nil
}

func (r *subscriptionRepository) GetByArtistID(ctx context.Context, artistID string) (*subscription.Subscription, error) {
	var sub subscription.Subscription
	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions
		WHERE artist_id = $1 AND status != $2
		ORDER BY created_at DESC LIMIT 1`
	if err := sqlx.GetContext(ctx, r.db.Querier(ctx), &sub, query, artistID, types.StatusDeleted); err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.NewError("subscription not found").
				WithHintf("No subscription found for artist %s", artistID).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get subscription by artist").
			Mark(ierr.ErrDatabase)
	}
	return &sub, nil
}

func (r *subscriptionRepository) Update(ctx context.Context, sub *subscription.Subscription) error {
	query := `UPDATE subscriptions SET
		plan_id = :plan_id, subscription_status = :subscription_status,
		start_date = :start_date, next_payment_date = :next_payment_date,
		cancel_at_period_end = :cancel_at_period_end, cancelled_at = :cancelled_at,
		status = :status, updated_at = :updated_at, updated_by = :updated_by
		WHERE id = :id`

	if _, err := sqlx.NamedExecContext(ctx, r.db.Querier(ctx), query, sub); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update subscription").
			Mark(ierr.ErrDatabase)
	}
	return nil
}
