package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/oksasatya/employee-hierarchy-api/internal/mediator"
	"github.com/oksasatya/employee-hierarchy-api/pkg/result"
)

// DuplicateKeyReporter is implemented by commands that know which business rule a
// unique index violation at commit time breaks.
type DuplicateKeyReporter interface {
	DuplicateKeyError() *result.Error
}

func duplicateKeyFailure(req mediator.Request) *result.Error {
	if r, ok := req.Payload.(DuplicateKeyReporter); ok {
		if e := r.DuplicateKeyError(); e != nil {
			return e
		}
	}
	return result.ConflictError(req.Name+".Conflict", "A record with the same unique value already exists")
}

// UnitOfWorkBehavior gives every command its own unit of work and commits it when the
// handler succeeded with pending changes. Queries pass through untouched.
func UnitOfWorkBehavior(factory *UnitOfWorkFactory) mediator.Behavior {
	return func(ctx context.Context, req mediator.Request, next mediator.Next) (mediator.Outcome, error) {
		if req.Kind != mediator.KindCommand {
			return next(ctx)
		}
		uow := factory.New()
		out, err := next(WithUnitOfWork(ctx, uow))
		if err != nil || out == nil || out.Failed() {
			uow.Discard()
			return out, err
		}
		if !uow.HasPendingChanges() {
			uow.Discard()
			return out, nil
		}
		if err := uow.Commit(ctx); err != nil {
			switch {
			case errors.Is(err, ErrDuplicateKey):
				return mediator.Fail(duplicateKeyFailure(req)), nil
			case errors.Is(err, ErrConcurrencyConflict):
				return mediator.Fail(result.ConcurrencyError(req.Name+".Concurrency", "The record was changed or removed by another request")), nil
			case errors.Is(err, ErrForeignKeyViolation):
				return mediator.Fail(result.ConflictError(req.Name+".Reference", "The change conflicts with related records")), nil
			}
			return nil, fmt.Errorf("commit %s: %w", req.Name, err)
		}
		return out, nil
	}
}
