package service

import (
	"context"
	"crm/internal/apperr"
	"crm/internal/authz"
	"crm/internal/entity"
	"crm/internal/queue"
	"strings"
	"time"
)

// ClientInput carries the fields of a new client.
type ClientInput struct {
	FirstName   string
	LastName    string
	Email       string
	Phone       string
	CompanyName string
}

// ClientChanges carries the fields to update; nil fields are left untouched.
type ClientChanges struct {
	FirstName   *string
	LastName    *string
	Email       *string
	Phone       *string
	CompanyName *string
	LastContact *time.Time
}

// CreateClient registers a client followed by the actor.
func (s *Service) CreateClient(ctx context.Context, actor *entity.DbUser, in ClientInput) (*entity.DbClient, error) {
	if err := authz.Check(actor, authz.CreateClient); err != nil {
		return nil, err
	}
	firstName, err := requireText("First name", in.FirstName)
	if err != nil {
		return nil, err
	}
	lastName, err := requireText("Last name", in.LastName)
	if err != nil {
		return nil, err
	}
	email, err := validateEmail(in.Email)
	if err != nil {
		return nil, err
	}

	now := s.now()
	contactID := actor.ID
	client := &entity.DbClient{
		FirstName:           firstName,
		LastName:            lastName,
		Email:               email,
		Phone:               strings.TrimSpace(in.Phone),
		CompanyName:         strings.TrimSpace(in.CompanyName),
		CreatedAt:           now,
		LastContact:         now,
		EpicEventsContactID: &contactID,
	}
	if err := s.repo.CreateClient(ctx, client); err != nil {
		return nil, translate(err, "Client")
	}
	s.notify(ctx, actor, queue.ClientCreated, client.ID, map[string]any{"email": client.Email})
	return s.loadClient(ctx, client.ID)
}

func (s *Service) loadClient(ctx context.Context, id uint) (*entity.DbClient, error) {
	client, err := s.repo.GetClient(ctx, id)
	if err != nil {
		return nil, translate(err, "Client")
	}
	return client, nil
}

// GetClient returns one client.
func (s *Service) GetClient(ctx context.Context, actor *entity.DbUser, id uint) (*entity.DbClient, error) {
	if err := authz.Check(actor, authz.GetClient); err != nil {
		return nil, err
	}
	return s.loadClient(ctx, id)
}

// ClientForUpdate returns a client the actor may update, as the designated
// contact or through update-client.
func (s *Service) ClientForUpdate(ctx context.Context, actor *entity.DbUser, id uint) (*entity.DbClient, error) {
	return s.authorizedClient(ctx, actor, authz.UpdateClient, id)
}

func (s *Service) authorizedClient(ctx context.Context, actor *entity.DbUser, perm authz.Permission, id uint) (*entity.DbClient, error) {
	if actor == nil {
		return nil, authz.ErrAuthenticationRequired
	}
	client, err := s.loadClient(ctx, id)
	if err != nil {
		return nil, lookupDenied(actor, perm, err)
	}
	if err := authz.Authorize(actor, perm, client.OwnerID()); err != nil {
		return nil, err
	}
	return client, nil
}

// ListClients lists clients; mine restricts to those followed by the actor.
func (s *Service) ListClients(ctx context.Context, actor *entity.DbUser, mine bool) ([]entity.DbClient, error) {
	if err := authz.Check(actor, authz.ListClient); err != nil {
		return nil, err
	}
	query := &entity.ClientQuery{}
	if mine {
		query.ContactID = &actor.ID
	}
	clients, err := s.repo.ListClients(ctx, query)
	if err != nil {
		return nil, translate(err, "Client")
	}
	return clients, nil
}

// UpdateClient applies changes to a client.
func (s *Service) UpdateClient(ctx context.Context, actor *entity.DbUser, id uint, changes ClientChanges) (*entity.DbClient, error) {
	client, err := s.authorizedClient(ctx, actor, authz.UpdateClient, id)
	if err != nil {
		return nil, err
	}

	updates := entity.ClientUpdates{
		Phone:       trimmed(changes.Phone),
		CompanyName: trimmed(changes.CompanyName),
		LastContact: changes.LastContact,
	}
	if changes.FirstName != nil {
		v, err := requireText("First name", *changes.FirstName)
		if err != nil {
			return nil, err
		}
		updates.FirstName = &v
	}
	if changes.LastName != nil {
		v, err := requireText("Last name", *changes.LastName)
		if err != nil {
			return nil, err
		}
		updates.LastName = &v
	}
	if changes.Email != nil {
		v, err := validateEmail(*changes.Email)
		if err != nil {
			return nil, err
		}
		updates.Email = &v
	}
	if updates.IsEmpty() {
		return client, nil
	}

	if err := s.repo.UpdateClient(ctx, client.ID, updates); err != nil {
		return nil, translate(err, "Client")
	}
	return s.loadClient(ctx, client.ID)
}

// DeleteClient removes a client that no longer has contracts.
func (s *Service) DeleteClient(ctx context.Context, actor *entity.DbUser, id uint) error {
	client, err := s.authorizedClient(ctx, actor, authz.DeleteClient, id)
	if err != nil {
		return err
	}

	contracts, err := s.repo.ListContracts(ctx, &entity.ContractQuery{ClientID: &client.ID})
	if err != nil {
		return translate(err, "Contract")
	}
	if len(contracts) > 0 {
		return apperr.BusinessRule("Delete the contracts of this client first")
	}
	if err := s.repo.DeleteClient(ctx, client.ID); err != nil {
		return translate(err, "Client")
	}
	s.notify(ctx, actor, queue.ClientDeleted, client.ID, map[string]any{"email": client.Email})
	return nil
}

func trimmed(value *string) *string {
	if value == nil {
		return nil
	}
	v := strings.TrimSpace(*value)
	return &v
}
