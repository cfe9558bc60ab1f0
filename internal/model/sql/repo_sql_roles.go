package sql

import (
	"context"
	"crm/internal/entity"
	"fmt"
	"strings"
)

// EnsureRole returns the named role, creating it when missing.
func (r *GormRepository) EnsureRole(ctx context.Context, name string) (*entity.DbRole, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("role name is empty")
	}
	role := entity.DbRole{Name: name}
	if err := r.db.WithContext(ctx).Where(entity.DbRole{Name: name}).FirstOrCreate(&role).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

// EnsurePermission returns the named permission, creating it when missing.
func (r *GormRepository) EnsurePermission(ctx context.Context, name string) (*entity.DbPermission, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("permission name is empty")
	}
	perm := entity.DbPermission{Name: name}
	if err := r.db.WithContext(ctx).Where(entity.DbPermission{Name: name}).FirstOrCreate(&perm).Error; err != nil {
		return nil, err
	}
	return &perm, nil
}

// EnsureRolePermission links a role to a permission once.
func (r *GormRepository) EnsureRolePermission(ctx context.Context, roleID, permissionID uint) error {
	if err := r.ready(); err != nil {
		return err
	}
	if roleID == 0 || permissionID == 0 {
		return fmt.Errorf("invalid role permission pair")
	}
	link := entity.DbRolePermission{RoleID: roleID, PermissionID: permissionID}
	return r.db.WithContext(ctx).
		Where(entity.DbRolePermission{RoleID: roleID, PermissionID: permissionID}).
		FirstOrCreate(&link).Error
}

// GetRoleByName loads a role with its permissions, matching the name case-insensitively.
func (r *GormRepository) GetRoleByName(ctx context.Context, name string) (*entity.DbRole, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}
	var role entity.DbRole
	err := r.db.WithContext(ctx).
		Preload("Permissions").
		Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name))).
		First(&role).Error
	if err != nil {
		return nil, err
	}
	return &role, nil
}

// ListRoles returns every role with its permissions.
func (r *GormRepository) ListRoles(ctx context.Context) ([]entity.DbRole, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}
	var roles []entity.DbRole
	if err := r.db.WithContext(ctx).Preload("Permissions").Order("id ASC").Find(&roles).Error; err != nil {
		return nil, err
	}
	return roles, nil
}

// CountPermissions returns the number of catalog rows.
func (r *GormRepository) CountPermissions(ctx context.Context) (int64, error) {
	if err := r.ready(); err != nil {
		return 0, err
	}
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.DbPermission{}).Count(&count).Error
	return count, err
}

// CountRolePermissions returns the number of role/permission links.
func (r *GormRepository) CountRolePermissions(ctx context.Context) (int64, error) {
	if err := r.ready(); err != nil {
		return 0, err
	}
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.DbRolePermission{}).Count(&count).Error
	return count, err
}
