package database

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/employee-hierarchy-api/internal/domain/entity"
	"github.com/oksasatya/employee-hierarchy-api/internal/domain/repository"
)

// org builds ceo -> (m1 -> a, b), (m2 -> c -> d).
func org(t *testing.T, repo *EmployeeRepository, f *UnitOfWorkFactory) map[string]*entity.Employee {
	t.Helper()
	ceo := emp("ceo", nil)
	m1 := emp("m1", ceo)
	m2 := emp("m2", ceo)
	a := emp("a", m1)
	b := emp("b", m1)
	c := emp("c", m2)
	d := emp("d", c)
	all := []*entity.Employee{ceo, m1, m2, a, b, c, d}
	commit(t, f, func(ctx context.Context) {
		for _, e := range all {
			require.NoError(t, repo.Add(ctx, e))
		}
	})
	return map[string]*entity.Employee{"ceo": ceo, "m1": m1, "m2": m2, "a": a, "b": b, "c": c, "d": d}
}

func TestGetTotalReportsCount(t *testing.T) {
	db := newTestDB(t)
	repo := NewEmployeeRepository(db)
	o := org(t, repo, fixedFactory(db))
	ctx := context.Background()

	cases := map[string]int{"ceo": 6, "m1": 2, "m2": 2, "c": 1, "d": 0}
	for name, want := range cases {
		got, err := repo.GetTotalReportsCount(ctx, o[name].ID)
		require.NoError(t, err)
		assert.Equal(t, want, got, name)
	}
}

func TestGetTotalReportsCount_TerminatesOnCycle(t *testing.T) {
	db := newTestDB(t)
	repo := NewEmployeeRepository(db)
	o := org(t, repo, fixedFactory(db))

	// Force ceo -> d, closing a loop through m2 and c.
	require.NoError(t, db.Model(&entity.Employee{}).Where("id = ?", o["ceo"].ID).Update("supervisor_id", o["d"].ID).Error)

	got, err := repo.GetTotalReportsCount(context.Background(), o["m2"].ID)
	require.NoError(t, err)
	assert.Equal(t, 6, got)
}

func TestSupervisorChain(t *testing.T) {
	db := newTestDB(t)
	repo := NewEmployeeRepository(db)
	o := org(t, repo, fixedFactory(db))

	chain, err := repo.SupervisorChain(context.Background(), o["d"].ID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{o["c"].ID, o["m2"].ID, o["ceo"].ID}, chain)

	top, err := repo.SupervisorChain(context.Background(), o["ceo"].ID)
	require.NoError(t, err)
	assert.Empty(t, top)
}

func TestGetDirectReports(t *testing.T) {
	db := newTestDB(t)
	repo := NewEmployeeRepository(db)
	o := org(t, repo, fixedFactory(db))

	reports, err := repo.GetDirectReports(context.Background(), o["m1"].ID)
	require.NoError(t, err)
	require.Len(t, reports, 2)
	for _, r := range reports {
		assert.True(t, r.ReportsTo(o["m1"].ID))
	}
}

func TestGetPaginated(t *testing.T) {
	db := newTestDB(t)
	repo := NewEmployeeRepository(db)
	f := fixedFactory(db)
	boss := emp("boss", nil)
	commit(t, f, func(ctx context.Context) {
		require.NoError(t, repo.Add(ctx, boss))
		for i := range 9 {
			require.NoError(t, repo.Add(ctx, emp(fmt.Sprintf("e%d", i), boss)))
		}
	})
	ctx := context.Background()

	page2, err := repo.GetPaginated(ctx, 2, 5)
	require.NoError(t, err)
	assert.Len(t, page2, 5)
	for _, e := range page2 {
		require.NotNil(t, e.Supervisor, "supervisor must be preloaded")
		assert.Equal(t, boss.ID, e.Supervisor.ID)
	}

	page3, err := repo.GetPaginated(ctx, 3, 5)
	require.NoError(t, err)
	assert.Empty(t, page3)

	clamped, err := repo.GetPaginated(ctx, 0, 0)
	require.NoError(t, err)
	assert.Len(t, clamped, 1)
}

func TestGetByIDWithSupervisor(t *testing.T) {
	db := newTestDB(t)
	repo := NewEmployeeRepository(db)
	o := org(t, repo, fixedFactory(db))
	ctx := context.Background()

	got, err := repo.GetByIDWithSupervisor(ctx, o["a"].ID)
	require.NoError(t, err)
	require.NotNil(t, got.Supervisor)
	assert.Equal(t, "m1 Test", got.Supervisor.FullName())

	_, err = repo.GetByIDWithSupervisor(ctx, entity.NewID())
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestAny_Except(t *testing.T) {
	db := newTestDB(t)
	repo := NewEmployeeRepository(db)
	o := org(t, repo, fixedFactory(db))
	ctx := context.Background()

	taken, err := repo.Any(ctx, repository.Where("email", o["a"].Email))
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = repo.Any(ctx, repository.Where("email", o["a"].Email).Except("id", o["a"].ID))
	require.NoError(t, err)
	assert.False(t, taken)
}
