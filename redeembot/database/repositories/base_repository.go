package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/topheroes-tools/redeembot/redeembot/logger"
	"github.com/uptrace/bun"
)

const DefaultQueryTimeout = 10 * time.Second

// BaseRepository carries the bun handle and the per-query timeout shared by
// repositories of one table.
type BaseRepository struct {
	db             *bun.DB
	table          string
	defaultTimeout time.Duration
}

func NewBaseRepository(db *bun.DB, table string) *BaseRepository {
	return &BaseRepository{
		db:             db,
		table:          table,
		defaultTimeout: DefaultQueryTimeout,
	}
}

// RepositoryError is returned for every failed query. Key is the row the
// query was about, empty for table-wide operations.
type RepositoryError struct {
	Operation string
	Table     string
	Key       string
	Err       error
}

func (re *RepositoryError) Error() string {
	if re.Key == "" {
		return fmt.Sprintf("%s on %s failed: %v", re.Operation, re.Table, re.Err)
	}
	return fmt.Sprintf("%s on %s for %q failed: %v", re.Operation, re.Table, re.Key, re.Err)
}

func (re *RepositoryError) Unwrap() error {
	return re.Err
}

// Timeout reports whether the query ran out of time.
func (re *RepositoryError) Timeout() bool {
	return errors.Is(re.Err, context.DeadlineExceeded)
}

func (br *BaseRepository) WithTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, br.defaultTimeout)
}

// HandleError logs err and wraps it in a *RepositoryError. nil passes through.
func (br *BaseRepository) HandleError(operation, key string, err error) error {
	if err == nil {
		return nil
	}
	repoErr := &RepositoryError{Operation: operation, Table: br.table, Key: key, Err: err}
	logger.LogDB("Query failed", repoErr, operation, br.table)
	return repoErr
}
