// Package application holds the use-case plumbing shared by every context.
package application

import (
	"context"
	"errors"
	"fmt"
)

// UnitOfWork scopes a group of repository calls to one transaction carried
// in the returned context.
type UnitOfWork interface {
	Begin(ctx context.Context) (context.Context, error)
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// WithUnitOfWork runs fn inside a transaction. fn's error rolls the
// transaction back and is returned as is; a failed rollback is joined to it.
func WithUnitOfWork(ctx context.Context, uow UnitOfWork, fn func(ctx context.Context) error) error {
	txCtx, err := uow.Begin(ctx)
	if err != nil {
		return err
	}

	if err := fn(txCtx); err != nil {
		if rbErr := uow.Rollback(txCtx); rbErr != nil {
			return errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
		}
		return err
	}

	return uow.Commit(txCtx)
}
