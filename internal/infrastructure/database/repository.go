package database

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/oksasatya/employee-hierarchy-api/internal/domain/entity"
	"github.com/oksasatya/employee-hierarchy-api/internal/domain/repository"
)

// Scope narrows a query, e.g. by adding preloads or ordering.
type Scope = func(*gorm.DB) *gorm.DB

// Repository implements the generic reads over gorm and stages writes on the unit of
// work found in the context.
type Repository[T any, PT entity.Pointer[T]] struct {
	db *gorm.DB
}

func NewRepository[T any, PT entity.Pointer[T]](db *gorm.DB) *Repository[T, PT] {
	return &Repository[T, PT]{db: db}
}

func (r *Repository[T, PT]) conn(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repository.ErrNotFound
	}
	return err
}

func applyCondition(q *gorm.DB, c repository.Condition) *gorm.DB {
	if len(c.Where) > 0 {
		q = q.Where(c.Where)
	}
	if len(c.Not) > 0 {
		q = q.Not(c.Not)
	}
	return q
}

// GetByID loads one row by primary key; with tracking the entity joins the unit of work.
func (r *Repository[T, PT]) GetByID(ctx context.Context, id uuid.UUID, tracking bool) (PT, error) {
	e := PT(new(T))
	if err := r.conn(ctx).First(e, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	if tracking {
		if u, ok := UnitOfWorkFrom(ctx); ok {
			u.Attach(e)
		}
	}
	return e, nil
}

// FirstWhere returns the first row matching cond or repository.ErrNotFound.
func (r *Repository[T, PT]) FirstWhere(ctx context.Context, cond repository.Condition) (PT, error) {
	e := PT(new(T))
	if err := applyCondition(r.conn(ctx), cond).First(e).Error; err != nil {
		return nil, notFound(err)
	}
	return e, nil
}

// Find returns every row selected by the scopes.
func (r *Repository[T, PT]) Find(ctx context.Context, scopes ...Scope) ([]PT, error) {
	var rows []PT
	if err := r.conn(ctx).Scopes(scopes...).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Page is 1-based; page and pageSize below 1 are clamped to 1.
func (r *Repository[T, PT]) Page(ctx context.Context, page, pageSize int, scopes ...Scope) ([]PT, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 1
	}
	paged := append(append(make([]Scope, 0, len(scopes)+1), scopes...), func(q *gorm.DB) *gorm.DB {
		return q.Offset((page - 1) * pageSize).Limit(pageSize)
	})
	return r.Find(ctx, paged...)
}

func (r *Repository[T, PT]) Any(ctx context.Context, cond repository.Condition) (bool, error) {
	n, err := r.Count(ctx, cond)
	return n > 0, err
}

func (r *Repository[T, PT]) Count(ctx context.Context, cond repository.Condition) (int64, error) {
	var n int64
	err := applyCondition(r.conn(ctx).Model(PT(new(T))), cond).Count(&n).Error
	return n, err
}

func (r *Repository[T, PT]) Add(ctx context.Context, e PT) error {
	u, ok := UnitOfWorkFrom(ctx)
	if !ok {
		return ErrNoUnitOfWork
	}
	return u.RegisterNew(e)
}

func (r *Repository[T, PT]) Update(ctx context.Context, e PT) error {
	u, ok := UnitOfWorkFrom(ctx)
	if !ok {
		return ErrNoUnitOfWork
	}
	return u.RegisterDirty(e)
}

func (r *Repository[T, PT]) Remove(ctx context.Context, e PT) error {
	u, ok := UnitOfWorkFrom(ctx)
	if !ok {
		return ErrNoUnitOfWork
	}
	return u.RegisterRemoved(e)
}
