package database

import (
	"context"

	"gorm.io/gorm"

	"github.com/oksasatya/employee-hierarchy-api/internal/domain/entity"
	"github.com/oksasatya/employee-hierarchy-api/internal/domain/repository"
)

type UserRepository struct {
	*Repository[entity.User, *entity.User]
}

var _ repository.UserRepository = (*UserRepository)(nil)

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{Repository: NewRepository[entity.User, *entity.User](db)}
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.FirstWhere(ctx, repository.Where("username", username))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.FirstWhere(ctx, repository.Where("email", email))
}
