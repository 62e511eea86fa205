package repository

import (
	"context"

	"github.com/oksasatya/employee-hierarchy-api/internal/domain/entity"
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Any(ctx context.Context, cond Condition) (bool, error)
	Add(ctx context.Context, u *entity.User) error
}
