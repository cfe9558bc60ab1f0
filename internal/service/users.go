package service

import (
	"context"
	"crm/internal/apperr"
	"crm/internal/auth"
	"crm/internal/authz"
	"crm/internal/entity"
	"crm/internal/model"
	"crm/internal/queue"

	"github.com/sirupsen/logrus"
)

// ErrAdminConfirmation is returned when the Admin role is granted without confirmation.
var ErrAdminConfirmation = apperr.New(apperr.CodeValidation, "Granting the Admin role must be confirmed")

// UserInput carries the fields of a new user.
type UserInput struct {
	Name         string
	Email        string
	Password     string
	Role         string
	ConfirmAdmin bool
}

// UserChanges carries the fields to update; nil fields are left untouched.
type UserChanges struct {
	Name         *string
	Email        *string
	Password     *string
	Role         *string
	ConfirmAdmin bool
}

// Setup creates the role and permission catalog.
func (s *Service) Setup(ctx context.Context) error {
	if err := model.SeedCatalog(ctx, s.repo); err != nil {
		return translate(err, "Catalog")
	}
	return nil
}

// BootstrapAdmin creates the first Admin. It is refused once any user exists.
func (s *Service) BootstrapAdmin(ctx context.Context, in UserInput) (*entity.DbUser, error) {
	count, err := s.repo.CountUsers(ctx)
	if err != nil {
		return nil, translate(err, "User")
	}
	if count > 0 {
		return nil, apperr.BusinessRule("Users already exist, ask an administrator to create your account")
	}
	in.Role = string(authz.RoleAdmin)
	user, err := s.newUser(ctx, in)
	if err != nil {
		return nil, err
	}
	logrus.WithField("user_id", user.ID).Info("bootstrap admin created")
	s.notify(ctx, user, queue.UserCreated, user.ID, map[string]any{"role": user.RoleName()})
	return user, nil
}

// CreateUser creates a collaborator with one of the four roles.
func (s *Service) CreateUser(ctx context.Context, actor *entity.DbUser, in UserInput) (*entity.DbUser, error) {
	if err := authz.Check(actor, authz.CreateUser); err != nil {
		return nil, err
	}
	role, err := authz.ParseRole(in.Role)
	if err != nil {
		return nil, apperr.Validation("%s", err.Error())
	}
	if err := s.checkRoleGrant(actor, role, in.ConfirmAdmin); err != nil {
		return nil, err
	}
	in.Role = string(role)

	user, err := s.newUser(ctx, in)
	if err != nil {
		return nil, err
	}
	s.notify(ctx, actor, queue.UserCreated, user.ID, map[string]any{"role": user.RoleName()})
	return user, nil
}

func (s *Service) newUser(ctx context.Context, in UserInput) (*entity.DbUser, error) {
	name, err := requireText("Name", in.Name)
	if err != nil {
		return nil, err
	}
	email, err := validateEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if in.Password == "" {
		return nil, apperr.Validation("Password is required")
	}
	role, err := s.roleByName(ctx, authz.RoleName(in.Role))
	if err != nil {
		return nil, err
	}
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, apperr.Validation("%s", err.Error())
	}

	user := &entity.DbUser{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		RoleID:       role.ID,
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, translate(err, "User")
	}
	return s.loadUser(ctx, user.ID)
}

func (s *Service) checkRoleGrant(actor *entity.DbUser, role authz.RoleName, confirmed bool) error {
	if err := authz.CanAssignRole(actor, role); err != nil {
		return err
	}
	if role == authz.RoleAdmin && !confirmed {
		return ErrAdminConfirmation
	}
	return nil
}

// GetUser returns one user. Users may always read their own account.
func (s *Service) GetUser(ctx context.Context, actor *entity.DbUser, id uint) (*entity.DbUser, error) {
	if actor == nil {
		return nil, authz.ErrAuthenticationRequired
	}
	user, err := s.loadUser(ctx, id)
	if err != nil {
		return nil, lookupDenied(actor, authz.GetUser, err)
	}
	if err := authz.AuthorizeSelf(actor, authz.GetUser, user.ID); err != nil {
		return nil, err
	}
	return user, nil
}

// ListUsers lists users, optionally restricted to one role.
func (s *Service) ListUsers(ctx context.Context, actor *entity.DbUser, roleFilter string) ([]entity.DbUser, error) {
	if err := authz.Check(actor, authz.ListUser); err != nil {
		return nil, err
	}
	query := &entity.UserQuery{}
	if roleFilter != "" {
		role, err := authz.ParseRole(roleFilter)
		if err != nil {
			return nil, apperr.Validation("%s", err.Error())
		}
		query.RoleName = string(role)
	}
	users, err := s.repo.ListUsers(ctx, query)
	if err != nil {
		return nil, translate(err, "User")
	}
	return users, nil
}

// UpdateUser applies changes to a user. A role change needs update-user
// even on one's own account.
func (s *Service) UpdateUser(ctx context.Context, actor *entity.DbUser, id uint, changes UserChanges) (*entity.DbUser, error) {
	if actor == nil {
		return nil, authz.ErrAuthenticationRequired
	}
	user, err := s.loadUser(ctx, id)
	if err != nil {
		return nil, lookupDenied(actor, authz.UpdateUser, err)
	}
	if err := authz.AuthorizeSelf(actor, authz.UpdateUser, user.ID); err != nil {
		return nil, err
	}

	var updates entity.UserUpdates
	if changes.Name != nil {
		name, err := requireText("Name", *changes.Name)
		if err != nil {
			return nil, err
		}
		updates.Name = &name
	}
	if changes.Email != nil {
		email, err := validateEmail(*changes.Email)
		if err != nil {
			return nil, err
		}
		updates.Email = &email
	}
	if changes.Password != nil {
		hash, err := auth.HashPassword(*changes.Password)
		if err != nil {
			return nil, apperr.Validation("%s", err.Error())
		}
		updates.PasswordHash = &hash
	}
	if changes.Role != nil {
		if err := authz.Check(actor, authz.UpdateUser); err != nil {
			return nil, err
		}
		role, err := authz.ParseRole(*changes.Role)
		if err != nil {
			return nil, apperr.Validation("%s", err.Error())
		}
		if err := s.checkRoleGrant(actor, role, changes.ConfirmAdmin); err != nil {
			return nil, err
		}
		row, err := s.roleByName(ctx, role)
		if err != nil {
			return nil, err
		}
		updates.RoleID = &row.ID
	}
	if updates.IsEmpty() {
		return user, nil
	}

	if err := s.repo.UpdateUser(ctx, user.ID, updates); err != nil {
		return nil, translate(err, "User")
	}
	return s.loadUser(ctx, user.ID)
}

// DeleteUser removes a user. Records they followed lose their contact.
func (s *Service) DeleteUser(ctx context.Context, actor *entity.DbUser, id uint) error {
	if err := authz.Check(actor, authz.DeleteUser); err != nil {
		return err
	}
	user, err := s.loadUser(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteUser(ctx, user.ID); err != nil {
		return translate(err, "User")
	}
	s.notify(ctx, actor, queue.UserDeleted, user.ID, map[string]any{"email": user.Email})
	return nil
}
