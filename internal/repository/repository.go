// internal/repository/repository.go
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Filters maps column names to expected values; entries are ANDed together.
type Filters map[string]any

// Repository is generic CRUD access over one entity type. Operations run on
// whatever handle the repository was built with, so callers that need a
// transaction spanning several operations use WithTx.
type Repository[T any] struct {
	db *gorm.DB
}

func New[T any](db *gorm.DB) *Repository[T] {
	return &Repository[T]{db: db}
}

// WithTx returns a repository bound to the given transaction handle.
func (r *Repository[T]) WithTx(tx *gorm.DB) *Repository[T] {
	return &Repository[T]{db: tx}
}

// Get returns the entity with the given local id, or nil when absent.
func (r *Repository[T]) Get(ctx context.Context, id uuid.UUID) (*T, error) {
	var entity T
	err := r.db.WithContext(ctx).First(&entity, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entity, nil
}

// GetByFilters returns a single matching entity, or nil when none matches.
func (r *Repository[T]) GetByFilters(ctx context.Context, filters Filters) (*T, error) {
	var entity T
	err := r.db.WithContext(ctx).Where(map[string]any(filters)).First(&entity).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entity, nil
}

func (r *Repository[T]) ListByFilters(ctx context.Context, filters Filters, limit, offset int) ([]T, error) {
	var entities []T
	query := r.db.WithContext(ctx).Model(new(T))
	if len(filters) > 0 {
		query = query.Where(map[string]any(filters))
	}
	err := query.Limit(limit).Offset(offset).Find(&entities).Error
	return entities, err
}

func (r *Repository[T]) CountByFilters(ctx context.Context, filters Filters) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(new(T))
	if len(filters) > 0 {
		query = query.Where(map[string]any(filters))
	}
	err := query.Count(&count).Error
	return count, err
}

// Create persists the entity, assigning its local id and created_at.
func (r *Repository[T]) Create(ctx context.Context, entity *T) (*T, error) {
	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		return nil, err
	}
	return entity, nil
}

// Update applies the patch to an existing entity and refreshes updated_at.
// Patch keys are column names; keys the entity schema doesn't know are
// ignored, not rejected.
func (r *Repository[T]) Update(ctx context.Context, entity *T, patch map[string]any) (*T, error) {
	known, err := r.knownColumns(patch)
	if err != nil {
		return nil, err
	}
	if len(known) == 0 {
		return entity, nil
	}
	if err := r.db.WithContext(ctx).Model(entity).Updates(known).Error; err != nil {
		return nil, err
	}
	return entity, nil
}

// Delete removes the entity with the given id, returning it, or nil when it
// did not exist.
func (r *Repository[T]) Delete(ctx context.Context, id uuid.UUID) (*T, error) {
	entity, err := r.Get(ctx, id)
	if err != nil || entity == nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Delete(entity).Error; err != nil {
		return nil, err
	}
	return entity, nil
}

func (r *Repository[T]) knownColumns(patch map[string]any) (map[string]any, error) {
	stmt := &gorm.Statement{DB: r.db}
	if err := stmt.Parse(new(T)); err != nil {
		return nil, fmt.Errorf("failed to parse entity schema: %w", err)
	}
	known := make(map[string]any, len(patch))
	for column, value := range patch {
		if _, ok := stmt.Schema.FieldsByDBName[column]; ok {
			known[column] = value
		}
	}
	return known, nil
}
