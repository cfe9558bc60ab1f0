package authz

import (
	"fmt"
	"strings"
)

// Action is the verb half of a permission name.
type Action string

const (
	ActionGet    Action = "get"
	ActionCreate Action = "create"
	ActionList   Action = "list"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Actions lists every action in catalog order.
var Actions = []Action{ActionGet, ActionCreate, ActionList, ActionUpdate, ActionDelete}

// Resource is the record kind half of a permission name.
type Resource string

const (
	ResourceUser     Resource = "user"
	ResourceRole     Resource = "role"
	ResourceClient   Resource = "client"
	ResourceEvent    Resource = "event"
	ResourceContract Resource = "contract"
)

// Resources lists every resource in catalog order.
var Resources = []Resource{ResourceUser, ResourceRole, ResourceClient, ResourceEvent, ResourceContract}

// Permission is an "<action>-<resource>" capability.
type Permission string

// PermissionOf builds the permission for an action on a resource.
func PermissionOf(action Action, resource Resource) Permission {
	return Permission(string(action) + "-" + string(resource))
}

func (p Permission) String() string {
	return string(p)
}

// Permissions used by command handlers.
var (
	GetUser    = PermissionOf(ActionGet, ResourceUser)
	CreateUser = PermissionOf(ActionCreate, ResourceUser)
	ListUser   = PermissionOf(ActionList, ResourceUser)
	UpdateUser = PermissionOf(ActionUpdate, ResourceUser)
	DeleteUser = PermissionOf(ActionDelete, ResourceUser)

	GetClient    = PermissionOf(ActionGet, ResourceClient)
	CreateClient = PermissionOf(ActionCreate, ResourceClient)
	ListClient   = PermissionOf(ActionList, ResourceClient)
	UpdateClient = PermissionOf(ActionUpdate, ResourceClient)
	DeleteClient = PermissionOf(ActionDelete, ResourceClient)

	GetContract    = PermissionOf(ActionGet, ResourceContract)
	CreateContract = PermissionOf(ActionCreate, ResourceContract)
	ListContract   = PermissionOf(ActionList, ResourceContract)
	UpdateContract = PermissionOf(ActionUpdate, ResourceContract)
	DeleteContract = PermissionOf(ActionDelete, ResourceContract)

	GetEvent    = PermissionOf(ActionGet, ResourceEvent)
	CreateEvent = PermissionOf(ActionCreate, ResourceEvent)
	ListEvent   = PermissionOf(ActionList, ResourceEvent)
	UpdateEvent = PermissionOf(ActionUpdate, ResourceEvent)
	DeleteEvent = PermissionOf(ActionDelete, ResourceEvent)
)

// Generate enumerates the catalog: resources in the outer loop, actions in the inner loop.
func Generate() []Permission {
	perms := make([]Permission, 0, len(Resources)*len(Actions))
	for _, resource := range Resources {
		for _, action := range Actions {
			perms = append(perms, PermissionOf(action, resource))
		}
	}
	return perms
}

var catalogIndex = func() map[Permission]struct{} {
	index := make(map[Permission]struct{}, len(Resources)*len(Actions))
	for _, p := range Generate() {
		index[p] = struct{}{}
	}
	return index
}()

// ParsePermission validates a permission name against the catalog.
func ParsePermission(name string) (Permission, error) {
	p := Permission(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := catalogIndex[p]; !ok {
		return "", fmt.Errorf("unknown permission %q", name)
	}
	return p, nil
}

// RoleName is one of the four fixed roles.
type RoleName string

const (
	RoleCommercial RoleName = "Commercial"
	RoleGestion    RoleName = "Gestion"
	RoleSupport    RoleName = "Support"
	RoleAdmin      RoleName = "Admin"
)

// Roles lists every role in seeding order.
var Roles = []RoleName{RoleCommercial, RoleGestion, RoleSupport, RoleAdmin}

// ParseRole matches a role name case-insensitively.
func ParseRole(name string) (RoleName, error) {
	trimmed := strings.TrimSpace(name)
	for _, role := range Roles {
		if strings.EqualFold(string(role), trimmed) {
			return role, nil
		}
	}
	return "", fmt.Errorf("This role does not exist")
}

// roleGrant describes what a role receives on the catalog.
type roleGrant struct {
	resources []Resource
	except    []Permission
	extra     []Permission
}

var roleGrants = map[RoleName]roleGrant{
	RoleCommercial: {
		resources: []Resource{ResourceClient},
		except:    []Permission{DeleteClient},
		extra:     []Permission{CreateEvent},
	},
	RoleGestion: {
		resources: []Resource{ResourceContract, ResourceUser},
		except:    []Permission{DeleteContract},
	},
	RoleSupport: {
		resources: []Resource{ResourceEvent},
		except:    []Permission{CreateEvent, DeleteEvent},
	},
	RoleAdmin: {
		resources: []Resource{ResourceUser, ResourceClient, ResourceContract, ResourceEvent},
	},
}

// RoleMatrix returns the permissions granted to each role, in catalog order.
func RoleMatrix() map[RoleName][]Permission {
	matrix := make(map[RoleName][]Permission, len(Roles))
	for _, role := range Roles {
		matrix[role] = Grants(role)
	}
	return matrix
}

// Grants returns the permissions of a single role, in catalog order.
func Grants(role RoleName) []Permission {
	grant, ok := roleGrants[role]
	if !ok {
		return nil
	}
	included := make(map[Permission]bool)
	for _, resource := range grant.resources {
		for _, action := range Actions {
			included[PermissionOf(action, resource)] = true
		}
	}
	for _, p := range grant.except {
		delete(included, p)
	}
	for _, p := range grant.extra {
		included[p] = true
	}

	perms := make([]Permission, 0, len(included))
	for _, p := range Generate() {
		if included[p] {
			perms = append(perms, p)
		}
	}
	return perms
}
