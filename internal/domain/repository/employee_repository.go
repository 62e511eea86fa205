package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/oksasatya/employee-hierarchy-api/internal/domain/entity"
)

// EmployeeRepository defines persistence operations for the employee hierarchy.
// Writes are staged on the unit of work carried by ctx and flushed on commit.
type EmployeeRepository interface {
	// GetByID returns ErrNotFound when no employee has the id. When tracking is true the
	// entity joins the current unit of work and later in-place changes are saved on commit.
	GetByID(ctx context.Context, id uuid.UUID, tracking bool) (*entity.Employee, error)
	GetByIDWithSupervisor(ctx context.Context, id uuid.UUID) (*entity.Employee, error)
	// GetPaginated is 1-based: page 1 returns the first pageSize employees.
	GetPaginated(ctx context.Context, page, pageSize int) ([]*entity.Employee, error)
	GetDirectReports(ctx context.Context, supervisorID uuid.UUID) ([]*entity.Employee, error)
	// GetTotalReportsCount counts distinct employees below supervisorID at any depth.
	GetTotalReportsCount(ctx context.Context, supervisorID uuid.UUID) (int, error)
	// SupervisorChain lists the ids above id, nearest first. It stops at the root or at
	// the first repeated id.
	SupervisorChain(ctx context.Context, id uuid.UUID) ([]uuid.UUID, error)
	Any(ctx context.Context, cond Condition) (bool, error)
	Add(ctx context.Context, e *entity.Employee) error
	Update(ctx context.Context, e *entity.Employee) error
	Remove(ctx context.Context, e *entity.Employee) error
}
