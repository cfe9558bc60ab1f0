package model

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"crm/internal/authz"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var dbSeq atomic.Int64

func newTestRepository(t *testing.T) Repository {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, dbSeq.Add(1))
	repo, err := NewSQLiteRepository(dsn)
	require.NoError(t, err)
	return repo
}

func TestSeedCatalogIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	for i := 0; i < 2; i++ {
		require.NoError(t, SeedCatalog(ctx, repo))

		perms, err := repo.CountPermissions(ctx)
		require.NoError(t, err)
		assert.EqualValues(t, 25, perms)

		links, err := repo.CountRolePermissions(ctx)
		require.NoError(t, err)
		assert.EqualValues(t, 5+9+3+20, links)

		roles, err := repo.ListRoles(ctx)
		require.NoError(t, err)
		assert.Len(t, roles, 4)
	}
}

func TestSeedCatalogMatchesMatrix(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)
	require.NoError(t, SeedCatalog(ctx, repo))

	matrix := authz.RoleMatrix()
	for _, roleName := range authz.Roles {
		role, err := repo.GetRoleByName(ctx, string(roleName))
		require.NoError(t, err)

		names := make([]authz.Permission, 0, len(role.Permissions))
		for _, p := range role.Permissions {
			names = append(names, authz.Permission(p.Name))
		}
		assert.ElementsMatch(t, matrix[roleName], names, string(roleName))
	}
}

func TestTransactionRollsBack(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	err := repo.Transaction(ctx, func(tx Repository) error {
		if _, err := tx.EnsureRole(ctx, "Temporary"); err != nil {
			return err
		}
		return fmt.Errorf("abort")
	})
	require.Error(t, err)

	_, err = repo.GetRoleByName(ctx, "Temporary")
	assert.Error(t, err)
}
