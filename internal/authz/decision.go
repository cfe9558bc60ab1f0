package authz

import (
	"crm/internal/apperr"
	"crm/internal/entity"
	"errors"
)

var (
	ErrAuthenticationRequired = apperr.New(apperr.CodeAuthentication, "Authentication required")
	ErrPermissionDenied       = apperr.New(apperr.CodeAuthorization, "You don't have the permissions required")
	ErrNotOwner               = apperr.New(apperr.CodeAuthorization, "Unauthorized")
	ErrAdminAssignment        = apperr.New(apperr.CodeAuthorization, "Only an Admin can assign the Admin role")
)

// HasPermission reports whether the user's role grants perm.
// The role and its permissions must be preloaded.
func HasPermission(user *entity.DbUser, perm Permission) bool {
	if user == nil || user.Role == nil {
		return false
	}
	for _, p := range user.Role.Permissions {
		if p.Name == string(perm) {
			return true
		}
	}
	return false
}

// HasPermissionOwn reports whether user is the designated contact.
func HasPermissionOwn(user *entity.DbUser, contactID *uint) bool {
	return user.Is(contactID)
}

// Check is the composite gate: an authenticated user holding perm.
func Check(user *entity.DbUser, perm Permission) error {
	if user == nil {
		return ErrAuthenticationRequired
	}
	if !HasPermission(user, perm) {
		return ErrPermissionDenied
	}
	return nil
}

// Authorize allows an action on an existing record when the role grants perm
// or the user is the record's designated contact. Listing and creation go
// through Check only.
func Authorize(user *entity.DbUser, perm Permission, owner *uint) error {
	err := Check(user, perm)
	if err == nil || user == nil {
		return err
	}
	if HasPermissionOwn(user, owner) {
		return nil
	}
	return errors.Join(err, ErrNotOwner)
}

// AuthorizeSelf allows users to act on their own account without perm.
func AuthorizeSelf(user *entity.DbUser, perm Permission, targetID uint) error {
	return Authorize(user, perm, &targetID)
}

// CanAssignRole applies the extra gate on granting a role.
func CanAssignRole(actor *entity.DbUser, role RoleName) error {
	if actor == nil {
		return ErrAuthenticationRequired
	}
	if role == RoleAdmin && RoleName(actor.RoleName()) != RoleAdmin {
		return ErrAdminAssignment
	}
	return nil
}

// RequireOwner gates actions reserved to the designated contact of a record,
// such as opening the event of a contract.
func RequireOwner(user *entity.DbUser, owner *uint) error {
	if user == nil {
		return ErrAuthenticationRequired
	}
	if !HasPermissionOwn(user, owner) {
		return ErrNotOwner
	}
	return nil
}
