// internal/repository/users.go
package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/valentynslivko/chift-odoo-test-assignment/pkg/models"
)

type UserRepository struct {
	*Repository[models.User]
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{Repository: New[models.User](db)}
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.GetByFilters(ctx, Filters{"email": email})
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.GetByFilters(ctx, Filters{"username": username})
}
