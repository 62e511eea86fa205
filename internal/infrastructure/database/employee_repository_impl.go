package database

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/oksasatya/employee-hierarchy-api/internal/domain/entity"
	"github.com/oksasatya/employee-hierarchy-api/internal/domain/repository"
)

// inChunk bounds the number of bind variables per IN list.
const inChunk = 500

type EmployeeRepository struct {
	*Repository[entity.Employee, *entity.Employee]
}

var _ repository.EmployeeRepository = (*EmployeeRepository)(nil)

func NewEmployeeRepository(db *gorm.DB) *EmployeeRepository {
	return &EmployeeRepository{Repository: NewRepository[entity.Employee, *entity.Employee](db)}
}

func withSupervisor(q *gorm.DB) *gorm.DB { return q.Preload("Supervisor") }

func ordered(q *gorm.DB) *gorm.DB { return q.Order("created_at").Order("id") }

func (r *EmployeeRepository) GetByIDWithSupervisor(ctx context.Context, id uuid.UUID) (*entity.Employee, error) {
	e := &entity.Employee{}
	if err := r.conn(ctx).Scopes(withSupervisor).First(e, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return e, nil
}

func (r *EmployeeRepository) GetPaginated(ctx context.Context, page, pageSize int) ([]*entity.Employee, error) {
	return r.Page(ctx, page, pageSize, withSupervisor, ordered)
}

func (r *EmployeeRepository) GetDirectReports(ctx context.Context, supervisorID uuid.UUID) ([]*entity.Employee, error) {
	return r.Find(ctx, ordered, func(q *gorm.DB) *gorm.DB {
		return q.Where("supervisor_id = ?", supervisorID)
	})
}

// GetTotalReportsCount walks the hierarchy one level per query. The visited set makes
// the walk terminate on cyclic data and counts every employee at most once.
func (r *EmployeeRepository) GetTotalReportsCount(ctx context.Context, supervisorID uuid.UUID) (int, error) {
	visited := map[uuid.UUID]struct{}{supervisorID: {}}
	frontier := []uuid.UUID{supervisorID}
	total := 0
	for len(frontier) > 0 {
		var next []uuid.UUID
		for start := 0; start < len(frontier); start += inChunk {
			if err := ctx.Err(); err != nil {
				return 0, err
			}
			end := min(start+inChunk, len(frontier))
			var ids []uuid.UUID
			err := r.conn(ctx).Model(&entity.Employee{}).
				Where("supervisor_id IN ?", frontier[start:end]).
				Pluck("id", &ids).Error
			if err != nil {
				return 0, err
			}
			for _, id := range ids {
				if _, seen := visited[id]; seen {
					continue
				}
				visited[id] = struct{}{}
				next = append(next, id)
			}
		}
		total += len(next)
		frontier = next
	}
	return total, nil
}

// SupervisorChain returns the ids above id, nearest first, stopping at a repeat.
func (r *EmployeeRepository) SupervisorChain(ctx context.Context, id uuid.UUID) ([]uuid.UUID, error) {
	seen := map[uuid.UUID]struct{}{id: {}}
	var chain []uuid.UUID
	current := id
	for {
		var row struct{ SupervisorID *uuid.UUID }
		err := r.conn(ctx).Model(&entity.Employee{}).Select("supervisor_id").
			Where("id = ?", current).Take(&row).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return chain, nil
		}
		if err != nil {
			return nil, err
		}
		if row.SupervisorID == nil {
			return chain, nil
		}
		if _, dup := seen[*row.SupervisorID]; dup {
			return chain, nil
		}
		seen[*row.SupervisorID] = struct{}{}
		chain = append(chain, *row.SupervisorID)
		current = *row.SupervisorID
	}
}
