package authz

import (
	"errors"
	"testing"

	"crm/internal/apperr"
	"crm/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func userWithRole(id uint, role RoleName) *entity.DbUser {
	perms := make([]entity.DbPermission, 0)
	for i, p := range Grants(role) {
		perms = append(perms, entity.DbPermission{ID: uint(i + 1), Name: string(p)})
	}
	return &entity.DbUser{
		ID:   id,
		Name: string(role),
		Role: &entity.DbRole{Name: string(role), Permissions: perms},
	}
}

func uintPtr(v uint) *uint { return &v }

func TestHasPermissionMatchesMatrix(t *testing.T) {
	matrix := RoleMatrix()
	for _, role := range Roles {
		user := userWithRole(1, role)
		granted := make(map[Permission]bool)
		for _, p := range matrix[role] {
			granted[p] = true
		}
		for _, p := range Generate() {
			assert.Equal(t, granted[p], HasPermission(user, p), "%s/%s", role, p)
		}
	}
}

func TestHasPermissionUnknownName(t *testing.T) {
	user := userWithRole(1, RoleAdmin)
	assert.False(t, HasPermission(user, Permission("fly-client")))
	assert.False(t, HasPermission(nil, CreateClient))
	assert.False(t, HasPermission(&entity.DbUser{ID: 2}, CreateClient))
}

func TestHasPermissionOwn(t *testing.T) {
	for _, role := range Roles {
		user := userWithRole(7, role)
		assert.True(t, HasPermissionOwn(user, uintPtr(7)), string(role))
		assert.False(t, HasPermissionOwn(user, uintPtr(8)), string(role))
		assert.False(t, HasPermissionOwn(user, nil), string(role))
	}
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name string
		user *entity.DbUser
		perm Permission
		want error
	}{
		{name: "anonymous", user: nil, perm: ListClient, want: ErrAuthenticationRequired},
		{name: "anonymous other action", user: nil, perm: DeleteUser, want: ErrAuthenticationRequired},
		{name: "missing permission", user: userWithRole(1, RoleSupport), perm: CreateClient, want: ErrPermissionDenied},
		{name: "granted", user: userWithRole(1, RoleCommercial), perm: CreateClient, want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Check(tt.user, tt.perm)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestCheckMessages(t *testing.T) {
	assert.EqualError(t, Check(nil, ListClient), "Authentication required")
	assert.EqualError(t, Check(userWithRole(1, RoleSupport), CreateClient), "You don't have the permissions required")
	assert.Equal(t, apperr.CodeAuthentication, apperr.CodeOf(Check(nil, ListClient)))
	assert.Equal(t, apperr.CodeAuthorization, apperr.CodeOf(Check(userWithRole(1, RoleSupport), CreateClient)))
}

func TestAuthorizeOwnershipOverride(t *testing.T) {
	commercial := userWithRole(3, RoleCommercial)

	require.NoError(t, Authorize(commercial, UpdateClient, uintPtr(99)))
	require.NoError(t, Authorize(commercial, DeleteClient, uintPtr(3)))

	err := Authorize(commercial, DeleteClient, uintPtr(99))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPermissionDenied))
	assert.True(t, errors.Is(err, ErrNotOwner))
	assert.Contains(t, err.Error(), "Unauthorized")

	err = Authorize(commercial, DeleteClient, nil)
	assert.ErrorIs(t, err, ErrNotOwner)
}

func TestAuthorizeAnonymousIgnoresOwner(t *testing.T) {
	err := Authorize(nil, UpdateClient, uintPtr(3))
	assert.ErrorIs(t, err, ErrAuthenticationRequired)
	assert.False(t, errors.Is(err, ErrNotOwner))
}

func TestAuthorizeSelf(t *testing.T) {
	support := userWithRole(4, RoleSupport)
	assert.NoError(t, AuthorizeSelf(support, UpdateUser, 4))
	assert.ErrorIs(t, AuthorizeSelf(support, UpdateUser, 5), ErrPermissionDenied)
}

func TestCanAssignRole(t *testing.T) {
	assert.NoError(t, CanAssignRole(userWithRole(1, RoleAdmin), RoleAdmin))
	assert.NoError(t, CanAssignRole(userWithRole(1, RoleGestion), RoleSupport))
	assert.ErrorIs(t, CanAssignRole(userWithRole(1, RoleGestion), RoleAdmin), ErrAdminAssignment)
	assert.ErrorIs(t, CanAssignRole(nil, RoleSupport), ErrAuthenticationRequired)
}

func TestRequireOwner(t *testing.T) {
	admin := userWithRole(1, RoleAdmin)
	assert.NoError(t, RequireOwner(admin, uintPtr(1)))
	assert.ErrorIs(t, RequireOwner(admin, uintPtr(2)), ErrNotOwner)
	assert.ErrorIs(t, RequireOwner(admin, nil), ErrNotOwner)
	assert.ErrorIs(t, RequireOwner(nil, uintPtr(1)), ErrAuthenticationRequired)
}
