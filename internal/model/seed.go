package model

import (
	"context"
	"crm/internal/authz"
	"fmt"

	"github.com/sirupsen/logrus"
)

// SeedCatalog ensures roles, permissions and the role matrix exist.
// Everything is written in one transaction and can be run repeatedly.
func SeedCatalog(ctx context.Context, repo Repository) error {
	if repo == nil {
		return fmt.Errorf("repository not initialised")
	}
	return repo.Transaction(ctx, func(tx Repository) error {
		permIDs := make(map[authz.Permission]uint)
		for _, perm := range authz.Generate() {
			row, err := tx.EnsurePermission(ctx, string(perm))
			if err != nil {
				return fmt.Errorf("seed permission %s: %w", perm, err)
			}
			permIDs[perm] = row.ID
		}

		matrix := authz.RoleMatrix()
		for _, roleName := range authz.Roles {
			role, err := tx.EnsureRole(ctx, string(roleName))
			if err != nil {
				return fmt.Errorf("seed role %s: %w", roleName, err)
			}
			for _, perm := range matrix[roleName] {
				if err := tx.EnsureRolePermission(ctx, role.ID, permIDs[perm]); err != nil {
					return fmt.Errorf("seed %s/%s: %w", roleName, perm, err)
				}
			}
			logrus.WithField("role", roleName).WithField("permissions", len(matrix[roleName])).Debug("role seeded")
		}
		return nil
	})
}
