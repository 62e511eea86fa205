package database

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/oksasatya/employee-hierarchy-api/internal/domain/entity"
	"github.com/oksasatya/employee-hierarchy-api/pkg/helpers"
)

var t0 = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := OpenInMemory(t.Name())
	require.NoError(t, err)
	t.Cleanup(func() { Close(db) })
	return db
}

// commit stages writes through fn on a fresh unit of work and commits them.
func commit(t *testing.T, f *UnitOfWorkFactory, fn func(ctx context.Context)) {
	t.Helper()
	u := f.New()
	ctx := WithUnitOfWork(context.Background(), u)
	fn(ctx)
	require.NoError(t, u.Commit(ctx))
}

func emp(first string, supervisor *entity.Employee) *entity.Employee {
	var sid *uuid.UUID
	if supervisor != nil {
		sid = &supervisor.ID
	}
	return entity.NewEmployee(first, "Test", first+"@employees.test", supervisor == nil, sid)
}

func fixedFactory(db *gorm.DB, observers ...CommitObserver) *UnitOfWorkFactory {
	return NewUnitOfWorkFactory(db, helpers.FixedClock(t0), observers...)
}
