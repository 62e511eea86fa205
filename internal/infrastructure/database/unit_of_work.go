package database

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/oksasatya/employee-hierarchy-api/internal/domain/entity"
	"github.com/oksasatya/employee-hierarchy-api/pkg/helpers"
)

var (
	ErrNoUnitOfWork        = errors.New("no unit of work in context")
	ErrUnitOfWorkClosed    = errors.New("unit of work already completed")
	ErrEntityRemoved       = errors.New("entity is scheduled for removal")
	ErrDuplicateKey        = errors.New("duplicate key")
	ErrForeignKeyViolation = errors.New("foreign key violation")
	ErrConcurrencyConflict = errors.New("row was changed or removed concurrently")
)

type Operation int

const (
	OpAdded Operation = iota
	OpModified
	OpRemoved
)

func (o Operation) String() string {
	switch o {
	case OpAdded:
		return "added"
	case OpModified:
		return "modified"
	case OpRemoved:
		return "removed"
	}
	return "unknown"
}

// Change is one committed write.
type Change struct {
	Op     Operation
	Entity entity.Auditable
}

// CommitObserver is notified after a successful commit. Observers must not block for long
// and cannot fail the commit.
type CommitObserver interface {
	AfterCommit(ctx context.Context, changes []Change)
}

type trackedEntry struct {
	entity   entity.Auditable
	snapshot any
}

// UnitOfWork collects the writes of one command and flushes them in a single
// transaction. It is not shared between requests.
type UnitOfWork struct {
	db        *gorm.DB
	clock     helpers.Clock
	observers []CommitObserver

	mu      sync.Mutex
	pending []Change
	tracked []trackedEntry
	closed  bool
}

// UnitOfWorkFactory creates units of work bound to one database.
type UnitOfWorkFactory struct {
	db        *gorm.DB
	clock     helpers.Clock
	observers []CommitObserver
}

func NewUnitOfWorkFactory(db *gorm.DB, clock helpers.Clock, observers ...CommitObserver) *UnitOfWorkFactory {
	if clock == nil {
		clock = helpers.SystemClock{}
	}
	return &UnitOfWorkFactory{db: db, clock: clock, observers: observers}
}

// Observe registers an observer for units of work created afterwards.
func (f *UnitOfWorkFactory) Observe(o CommitObserver) {
	if o != nil {
		f.observers = append(f.observers, o)
	}
}

func (f *UnitOfWorkFactory) New() *UnitOfWork {
	return &UnitOfWork{db: f.db, clock: f.clock, observers: f.observers}
}

type uowKey struct{}

func WithUnitOfWork(ctx context.Context, u *UnitOfWork) context.Context {
	return context.WithValue(ctx, uowKey{}, u)
}

func UnitOfWorkFrom(ctx context.Context) (*UnitOfWork, bool) {
	u, ok := ctx.Value(uowKey{}).(*UnitOfWork)
	return u, ok && u != nil
}

func (u *UnitOfWork) indexOf(e entity.Auditable) int {
	for i, c := range u.pending {
		if c.Entity == e {
			return i
		}
	}
	return -1
}

// RegisterNew schedules an insert.
func (u *UnitOfWork) RegisterNew(e entity.Auditable) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.closed {
		return ErrUnitOfWorkClosed
	}
	if u.indexOf(e) >= 0 {
		return nil
	}
	u.pending = append(u.pending, Change{Op: OpAdded, Entity: e})
	return nil
}

// RegisterDirty schedules an update of every column.
func (u *UnitOfWork) RegisterDirty(e entity.Auditable) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.closed {
		return ErrUnitOfWorkClosed
	}
	if i := u.indexOf(e); i >= 0 {
		if u.pending[i].Op == OpRemoved {
			return ErrEntityRemoved
		}
		return nil
	}
	u.pending = append(u.pending, Change{Op: OpModified, Entity: e})
	return nil
}

// RegisterRemoved schedules a delete. Removing an entity added in the same unit of
// work simply cancels the insert.
func (u *UnitOfWork) RegisterRemoved(e entity.Auditable) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.closed {
		return ErrUnitOfWorkClosed
	}
	u.untrack(e)
	if i := u.indexOf(e); i >= 0 {
		switch u.pending[i].Op {
		case OpAdded:
			u.pending = append(u.pending[:i], u.pending[i+1:]...)
		case OpModified:
			u.pending[i].Op = OpRemoved
		}
		return nil
	}
	u.pending = append(u.pending, Change{Op: OpRemoved, Entity: e})
	return nil
}

// Attach starts change tracking: if e differs from its current state at commit time
// it is saved as modified.
func (u *UnitOfWork) Attach(e entity.Auditable) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.closed {
		return
	}
	for _, t := range u.tracked {
		if t.entity == e {
			return
		}
	}
	u.tracked = append(u.tracked, trackedEntry{entity: e, snapshot: snapshot(e)})
}

func (u *UnitOfWork) untrack(e entity.Auditable) {
	for i, t := range u.tracked {
		if t.entity == e {
			u.tracked = append(u.tracked[:i], u.tracked[i+1:]...)
			return
		}
	}
}

func snapshot(e entity.Auditable) any {
	return reflect.ValueOf(e).Elem().Interface()
}

func (u *UnitOfWork) changesLocked() []Change {
	changes := make([]Change, 0, len(u.pending)+len(u.tracked))
	changes = append(changes, u.pending...)
	for _, t := range u.tracked {
		if u.indexOf(t.entity) >= 0 {
			continue
		}
		if !reflect.DeepEqual(t.snapshot, snapshot(t.entity)) {
			changes = append(changes, Change{Op: OpModified, Entity: t.entity})
		}
	}
	return changes
}

// HasPendingChanges reports explicit writes or modified tracked entities.
func (u *UnitOfWork) HasPendingChanges() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.changesLocked()) > 0
}

// Discard drops all pending work.
func (u *UnitOfWork) Discard() {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.pending, u.tracked, u.closed = nil, nil, true
}

// Commit stamps audit fields and writes every pending change in one transaction.
// On any failure nothing is persisted and the unit of work is discarded.
func (u *UnitOfWork) Commit(ctx context.Context) error {
	u.mu.Lock()
	if u.closed {
		u.mu.Unlock()
		return ErrUnitOfWorkClosed
	}
	if err := ctx.Err(); err != nil {
		u.pending, u.tracked, u.closed = nil, nil, true
		u.mu.Unlock()
		return err
	}
	changes := u.changesLocked()
	u.pending, u.tracked, u.closed = nil, nil, true
	u.mu.Unlock()

	if len(changes) == 0 {
		return nil
	}

	now := u.clock.Now()
	for _, c := range changes {
		switch c.Op {
		case OpAdded:
			c.Entity.MarkCreated(now)
		case OpModified:
			c.Entity.MarkUpdated(now)
		}
	}

	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, c := range changes {
			if err := apply(tx, c); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return translateError(err)
	}

	for _, o := range u.observers {
		o.AfterCommit(context.WithoutCancel(ctx), changes)
	}
	return nil
}

func apply(tx *gorm.DB, c Change) error {
	switch c.Op {
	case OpAdded:
		return tx.Omit(clause.Associations).Create(c.Entity).Error
	case OpModified:
		res := tx.Model(c.Entity).Select("*").Omit(clause.Associations).Updates(c.Entity)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: update %s", ErrConcurrencyConflict, c.Entity.GetID())
		}
	case OpRemoved:
		res := tx.Delete(c.Entity)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: delete %s", ErrConcurrencyConflict, c.Entity.GetID())
		}
	}
	return nil
}

// translateError maps driver errors to sentinels. gorm translates most of them;
// the message checks cover drivers that leave constraint errors untranslated.
func translateError(err error) error {
	msg := err.Error()
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey),
		strings.Contains(msg, "UNIQUE constraint failed"),
		strings.Contains(msg, "SQLSTATE 23505"):
		return fmt.Errorf("%w: %v", ErrDuplicateKey, err)
	case errors.Is(err, gorm.ErrForeignKeyViolated),
		strings.Contains(msg, "FOREIGN KEY constraint failed"),
		strings.Contains(msg, "SQLSTATE 23503"):
		return fmt.Errorf("%w: %v", ErrForeignKeyViolation, err)
	}
	return err
}
