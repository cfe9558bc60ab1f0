package sql

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// GormRepository implements Repository using GORM
type GormRepository struct {
	db *gorm.DB
}

// NewGormRepository creates a new repository instance
func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

// WithTx runs fn inside a database transaction. The transaction is rolled back
// when fn returns an error.
func (r *GormRepository) WithTx(ctx context.Context, fn func(tx *GormRepository) error) error {
	if err := r.ready(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormRepository{db: tx})
	})
}

func (r *GormRepository) ready() error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	return nil
}

// deleteByID removes one row and reports gorm.ErrRecordNotFound when nothing matched.
func (r *GormRepository) deleteByID(ctx context.Context, model interface{}, id uint) error {
	if err := r.ready(); err != nil {
		return err
	}
	if id == 0 {
		return gorm.ErrRecordNotFound
	}
	result := r.db.WithContext(ctx).Delete(model, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// updateByID applies a column map and reports gorm.ErrRecordNotFound when nothing matched.
func (r *GormRepository) updateByID(ctx context.Context, model interface{}, id uint, updates map[string]interface{}) error {
	if err := r.ready(); err != nil {
		return err
	}
	if id == 0 {
		return gorm.ErrRecordNotFound
	}
	if len(updates) == 0 {
		return nil
	}
	result := r.db.WithContext(ctx).Model(model).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return gorm.ErrRecordNotFound
		}
	}
	return nil
}
