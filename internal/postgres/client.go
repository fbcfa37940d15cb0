package postgres

import (
	"context"

	"github.com/inkmatch/inkmatch/internal/config"
	ierr "github.com/inkmatch/inkmatch/internal/errors"
	"github.com/inkmatch/inkmatch/internal/logger"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

type txKey struct{}

// IClient is the database access contract handed to repositories. It
// hides whether the current operation runs inside a transaction.
type IClient interface {
	// Querier returns the transaction bound to ctx, or the base
	// connection pool when none is open.
	Querier(ctx context.Context) sqlx.ExtContext
	// WithTx runs fn inside a transaction, committing on nil and rolling
	// back on error. Nested calls reuse the open transaction.
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	Close() error
}

type client struct {
	db     *sqlx.DB
	logger *logger.Logger
}

// NewClient connects to postgres using the configured DSN.
func NewClient(cfg *config.Configuration, log *logger.Logger) (IClient, error) {
	db, err := sqlx.Connect("postgres", cfg.Postgres.DSN())
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to connect to postgres").
			Mark(ierr.ErrDatabase)
	}

	log.Infow("connected to postgres", "host", cfg.Postgres.Host, "db", cfg.Postgres.DBName)
	return &client{db: db, logger: log}, nil
}

func (c *client) Querier(ctx context.Context) sqlx.ExtContext {
	if tx, ok := ctx.Value(txKey{}).(*sqlx.Tx); ok {
		return tx
	}
	return c.db
}

func (c *client) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*sqlx.Tx); ok {
		return fn(ctx)
	}

	tx, err := c.db.BeginTxx(ctx, nil)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to begin transaction").
			Mark(ierr.ErrDatabase)
	}

	txCtx := context.WithValue(ctx, txKey{}, tx)
	if err := fn(txCtx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			c.logger.Errorw("transaction rollback failed", "error", rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to commit transaction").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (c *client) Close() error {
	return c.db.Close()
}
