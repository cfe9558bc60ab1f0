package sql

import (
	"context"
	"crm/internal/entity"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// userScope preloads the role and its permissions so authorization stays in memory.
func (r *GormRepository) userScope(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Role.Permissions")
}

// CreateUser persists a new user record.
func (r *GormRepository) CreateUser(ctx context.Context, user *entity.DbUser) error {
	if err := r.ready(); err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("user is nil")
	}
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	return r.db.WithContext(ctx).Omit("Role").Create(user).Error
}

// UpdateUser updates an existing user entry.
func (r *GormRepository) UpdateUser(ctx context.Context, id uint, updates entity.UserUpdates) error {
	if updates.Email != nil {
		normalized := strings.ToLower(strings.TrimSpace(*updates.Email))
		updates.Email = &normalized
	}
	return r.updateByID(ctx, &entity.DbUser{}, id, updates.ToMap())
}

// GetUserByEmail loads a user by email.
func (r *GormRepository) GetUserByEmail(ctx context.Context, email string) (*entity.DbUser, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}
	trimmed := strings.TrimSpace(email)
	if trimmed == "" {
		return nil, gorm.ErrRecordNotFound
	}

	var user entity.DbUser
	if err := r.userScope(ctx).Where("LOWER(email) = ?", strings.ToLower(trimmed)).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByID loads a user by ID.
func (r *GormRepository) GetUserByID(ctx context.Context, id uint) (*entity.DbUser, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}
	if id == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	var user entity.DbUser
	if err := r.userScope(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ListUsers returns users ordered by id.
func (r *GormRepository) ListUsers(ctx context.Context, params *entity.UserQuery) ([]entity.DbUser, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}

	query := r.db.WithContext(ctx).Preload("Role").Model(&entity.DbUser{})
	if params != nil {
		if trimmed := strings.TrimSpace(params.RoleName); trimmed != "" {
			query = query.Joins("JOIN roles ON roles.id = users.role_id").
				Where("LOWER(roles.name) = ?", strings.ToLower(trimmed))
		}
	}

	var users []entity.DbUser
	if err := query.Order("users.id ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// DeleteUser removes a user and clears the designated-contact references to it.
func (r *GormRepository) DeleteUser(ctx context.Context, id uint) error {
	if err := r.ready(); err != nil {
		return err
	}
	return r.WithTx(ctx, func(tx *GormRepository) error {
		db := tx.db.WithContext(ctx)
		if err := db.Model(&entity.DbClient{}).Where("epic_events_contact_id = ?", id).
			Update("epic_events_contact_id", nil).Error; err != nil {
			return err
		}
		if err := db.Model(&entity.DbContract{}).Where("commercial_contact_id = ?", id).
			Update("commercial_contact_id", nil).Error; err != nil {
			return err
		}
		if err := db.Model(&entity.DbEvent{}).Where("support_contact_id = ?", id).
			Update("support_contact_id", nil).Error; err != nil {
			return err
		}
		return tx.deleteByID(ctx, &entity.DbUser{}, id)
	})
}

// CountUsers returns total user count.
func (r *GormRepository) CountUsers(ctx context.Context) (int64, error) {
	if err := r.ready(); err != nil {
		return 0, err
	}
	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.DbUser{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
