package repository

import (
	"context"
	"database/sql"

	"github.com/inkmatch/inkmatch/internal/domain/payment"
	ierr "github.com/inkmatch/inkmatch/internal/errors"
	"github.com/inkmatch/inkmatch/internal/logger"
	"github.com/inkmatch/inkmatch/internal/postgres"
	"github.com/jmoiron/sqlx"
)

type paymentRepository struct {
	db     postgres.IClient
	logger *logger.Logger
}

// NewPaymentRepository creates a postgres-backed payment repository
func NewPaymentRepository(db postgres.IClient, log *logger.Logger) payment.Repository {
	return &paymentRepository{db: db, logger: log}
}

const paymentColumns = `id, subscription_id, plan_id, amount, currency,
	payment_method_id, payment_status, gateway_payment_id, error_message,
	succeeded_at, failed_at,
	status, created_at, updated_at, created_by, updated_by`

func (r *paymentRepository) Create(ctx context.Context, p *payment.Payment) error {
	query := `INSERT INTO payments (` + paymentColumns + `)
		VALUES (:id, :subscription_id, :plan_id, :amount, :currency,
			:payment_method_id, :payment_status, :gateway_payment_id, :error_message,
			:succeeded_at, :failed_at,
			:status, :created_at, :updated_at, :created_by, :updated_by)`

	if _, err := sqlx.NamedExecContext(ctx, r.db.Querier(ctx), query, p); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create payment").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *paymentRepository) Get(ctx context.Context, id string) (*payment.Payment, error) {
	var p payment.Payment
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`
	if err := sqlx.GetContext(ctx, r.db.Querier(ctx), &p, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.NewError("payment not found").
				WithHintf("Payment with ID %s was not found", id).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get payment").
			Mark(ierr.ErrDatabase)
	}
	return &p, nil
}

func (r *paymentRepository) Update(ctx context.Context, p *payment.Payment) error {
	query := `UPDATE payments SET
		payment_status = :payment_status, gateway_payment_id = :gateway_payment_id,
		error_message = :error_message, succeeded_at = :succeeded_at, failed_at = :failed_at,
		status = :status, updated_at = :updated_at, updated_by = :updated_by
		WHERE id = :id`

	if _, err := sqlx.NamedExecContext(ctx, r.db.Querier(ctx), query, p); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update payment").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *paymentRepository) ListBySubscriptionID(ctx context.Context, subscriptionID string) ([]*payment.Payment, error) {
	var payments []*payment.Payment
	query := `SELECT ` + paymentColumns + ` FROM payments
		WHERE subscription_id = $1 ORDER BY created_at DESC`
	if err := sqlx.SelectContext(ctx, r.db.Querier(ctx), &payments, query, subscriptionID); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list payments").
			Mark(ierr.ErrDatabase)
	}
	return payments, nil
}
