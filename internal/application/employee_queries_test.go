package application_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/employee-hierarchy-api/internal/application"
	"github.com/oksasatya/employee-hierarchy-api/internal/mediator"
	"github.com/oksasatya/employee-hierarchy-api/pkg/result"
)

type stubSearcher struct {
	ids []uuid.UUID
	got string
}

func (s *stubSearcher) SearchEmployees(_ context.Context, q string, _ int) ([]uuid.UUID, error) {
	s.got = q
	return s.ids, nil
}

func TestGetEmployee_ReportCountForSupervisors(t *testing.T) {
	f := newFixture(t, nil)
	ceo := f.create(t, "Carla", "carla@x.io", true, nil)
	m := f.create(t, "Mario", "mario@x.io", true, &ceo)
	f.create(t, "Omar", "omar@x.io", false, &m)
	f.create(t, "Priya", "priya@x.io", false, &m)
	ctx := context.Background()

	res, err := mediator.Query[application.GetEmployeeQuery, application.EmployeeResponse](ctx, f.d, application.GetEmployeeQuery{ID: ceo})
	require.NoError(t, err)
	require.False(t, res.Failed())
	assert.Equal(t, 3, res.Value().TotalReportsCount)
	assert.Nil(t, res.Value().SupervisorName)

	res, err = mediator.Query[application.GetEmployeeQuery, application.EmployeeResponse](ctx, f.d, application.GetEmployeeQuery{ID: m})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Value().TotalReportsCount)
	require.NotNil(t, res.Value().SupervisorName)
	assert.Equal(t, "Carla Test", *res.Value().SupervisorName)
}

func TestGetEmployee_NotFound(t *testing.T) {
	f := newFixture(t, nil)
	id := uuid.New()

	res, err := mediator.Query[application.GetEmployeeQuery, application.EmployeeResponse](context.Background(), f.d, application.GetEmployeeQuery{ID: id})
	require.NoError(t, err)
	require.True(t, res.Failed())
	assert.Contains(t, res.Failure().Description, id.String())
}

func TestListEmployees(t *testing.T) {
	f := newFixture(t, nil)
	for i := range 10 {
		f.create(t, fmt.Sprintf("E%d", i), fmt.Sprintf("e%d@x.io", i), false, nil)
	}
	ctx := context.Background()

	res, err := mediator.Query[application.ListEmployeesQuery, []application.EmployeeResponse](ctx, f.d, application.ListEmployeesQuery{Page: 2, PageSize: 5})
	require.NoError(t, err)
	require.False(t, res.Failed())
	assert.Len(t, res.Value(), 5)

	res, err = mediator.Query[application.ListEmployeesQuery, []application.EmployeeResponse](ctx, f.d, application.ListEmployeesQuery{Page: 0, PageSize: 5})
	require.NoError(t, err)
	require.True(t, res.Failed())
	assert.Equal(t, result.Validation, res.Failure().Definition)
	assert.Contains(t, res.Failure().Fields, "page")
}

func TestSearchEmployees(t *testing.T) {
	t.Run("without index", func(t *testing.T) {
		f := newFixture(t, nil)
		res, err := mediator.Query[application.SearchEmployeesQuery, []application.EmployeeResponse](context.Background(), f.d, application.SearchEmployeesQuery{Q: "ada"})
		require.NoError(t, err)
		require.False(t, res.Failed())
		assert.Empty(t, res.Value())
	})

	t.Run("skips stale hits", func(t *testing.T) {
		s := &stubSearcher{}
		f := newFixture(t, s)
		id := f.create(t, "Ada", "ada@x.io", false, nil)
		s.ids = []uuid.UUID{uuid.New(), id}

		res, err := mediator.Query[application.SearchEmployeesQuery, []application.EmployeeResponse](context.Background(), f.d, application.SearchEmployeesQuery{Q: "ada"})
		require.NoError(t, err)
		require.Len(t, res.Value(), 1)
		assert.Equal(t, id, res.Value()[0].ID)
		assert.Equal(t, "ada", s.got)
	})

	t.Run("requires a query", func(t *testing.T) {
		f := newFixture(t, nil)
		res, err := mediator.Query[application.SearchEmployeesQuery, []application.EmployeeResponse](context.Background(), f.d, application.SearchEmployeesQuery{})
		require.NoError(t, err)
		assert.Equal(t, result.Validation, res.Failure().Definition)
	})
}
