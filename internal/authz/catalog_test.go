package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOrderAndSize(t *testing.T) {
	perms := Generate()
	require.Len(t, perms, 25)

	assert.Equal(t, []Permission{"get-user", "create-user", "list-user", "update-user", "delete-user"}, perms[:5])
	assert.Equal(t, Permission("get-role"), perms[5])
	assert.Equal(t, Permission("delete-contract"), perms[24])

	seen := make(map[Permission]bool)
	for _, p := range perms {
		assert.False(t, seen[p], "duplicate permission %s", p)
		seen[p] = true
	}
	assert.Equal(t, perms, Generate())
}

func TestRoleMatrix(t *testing.T) {
	matrix := RoleMatrix()

	assert.ElementsMatch(t, []Permission{GetClient, CreateClient, ListClient, UpdateClient, CreateEvent}, matrix[RoleCommercial])
	assert.ElementsMatch(t, []Permission{
		GetUser, CreateUser, ListUser, UpdateUser, DeleteUser,
		GetContract, CreateContract, ListContract, UpdateContract,
	}, matrix[RoleGestion])
	assert.ElementsMatch(t, []Permission{GetEvent, ListEvent, UpdateEvent}, matrix[RoleSupport])

	admin := matrix[RoleAdmin]
	assert.Len(t, admin, 20)
	for _, p := range admin {
		assert.NotContains(t, string(p), "-role")
	}
}

func TestRoleMatrixExcludesDeletes(t *testing.T) {
	matrix := RoleMatrix()
	assert.NotContains(t, matrix[RoleCommercial], DeleteClient)
	assert.NotContains(t, matrix[RoleGestion], DeleteContract)
	assert.NotContains(t, matrix[RoleSupport], DeleteEvent)
	assert.NotContains(t, matrix[RoleSupport], CreateEvent)
}

func TestParsePermission(t *testing.T) {
	p, err := ParsePermission(" Create-Client ")
	require.NoError(t, err)
	assert.Equal(t, CreateClient, p)

	_, err = ParsePermission("fly-client")
	assert.Error(t, err)
}

func TestParseRole(t *testing.T) {
	role, err := ParseRole("support")
	require.NoError(t, err)
	assert.Equal(t, RoleSupport, role)

	_, err = ParseRole("Manager")
	assert.EqualError(t, err, "This role does not exist")
}
