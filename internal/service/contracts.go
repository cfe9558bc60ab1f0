package service

import (
	"context"
	"crm/internal/apperr"
	"crm/internal/authz"
	"crm/internal/entity"
	"crm/internal/queue"
)

// ContractInput carries the fields of a new contract.
type ContractInput struct {
	ClientID        uint
	TotalAmount     float64
	RemainingAmount float64
	Signed          bool
}

// ContractChanges carries the fields to update; nil fields are left untouched.
type ContractChanges struct {
	ClientID        *uint
	TotalAmount     *float64
	RemainingAmount *float64
	Signed          *bool
}

// ContractFilter selects contracts in a listing. Status and Remain are the
// user-facing values ("signed", "not signed", "rest to pay", "paid").
type ContractFilter struct {
	Status string
	Remain string
	Mine   bool
}

func validateAmounts(total, remaining float64) error {
	if total < 0 {
		return apperr.Validation("Total amount must be positive")
	}
	if remaining < 0 {
		return apperr.Validation("Remaining amount must be positive")
	}
	if remaining > total {
		return apperr.Validation("Remaining amount can't exceed the total amount")
	}
	return nil
}

// CreateContract opens a contract for a client. The commercial contact is
// copied from the client.
func (s *Service) CreateContract(ctx context.Context, actor *entity.DbUser, in ContractInput) (*entity.DbContract, error) {
	if err := authz.Check(actor, authz.CreateContract); err != nil {
		return nil, err
	}
	client, err := s.loadClient(ctx, in.ClientID)
	if err != nil {
		return nil, err
	}
	if err := validateAmounts(in.TotalAmount, in.RemainingAmount); err != nil {
		return nil, err
	}

	contract := &entity.DbContract{
		ClientID:            client.ID,
		CommercialContactID: client.EpicEventsContactID,
		TotalAmount:         in.TotalAmount,
		RemainingAmount:     in.RemainingAmount,
		Signed:              in.Signed,
		CreatedAt:           s.now(),
	}
	if err := s.repo.CreateContract(ctx, contract); err != nil {
		return nil, translate(err, "Contract")
	}
	s.notify(ctx, actor, queue.ContractCreated, contract.ID, map[string]any{"client_id": client.ID})
	if contract.Signed {
		s.notify(ctx, actor, queue.ContractSigned, contract.ID, nil)
	}
	return s.loadContract(ctx, contract.ID)
}

func (s *Service) loadContract(ctx context.Context, id uint) (*entity.DbContract, error) {
	contract, err := s.repo.GetContract(ctx, id)
	if err != nil {
		return nil, translate(err, "Contract")
	}
	return contract, nil
}

// GetContract returns one contract.
func (s *Service) GetContract(ctx context.Context, actor *entity.DbUser, id uint) (*entity.DbContract, error) {
	if err := authz.Check(actor, authz.GetContract); err != nil {
		return nil, err
	}
	return s.loadContract(ctx, id)
}

// ContractForUpdate returns a contract the actor may update, as the designated
// contact or through update-contract.
func (s *Service) ContractForUpdate(ctx context.Context, actor *entity.DbUser, id uint) (*entity.DbContract, error) {
	return s.authorizedContract(ctx, actor, authz.UpdateContract, id)
}

func (s *Service) authorizedContract(ctx context.Context, actor *entity.DbUser, perm authz.Permission, id uint) (*entity.DbContract, error) {
	if actor == nil {
		return nil, authz.ErrAuthenticationRequired
	}
	contract, err := s.loadContract(ctx, id)
	if err != nil {
		return nil, lookupDenied(actor, perm, err)
	}
	if err := authz.Authorize(actor, perm, contract.OwnerID()); err != nil {
		return nil, err
	}
	return contract, nil
}

// ListContracts lists contracts matching filter.
func (s *Service) ListContracts(ctx context.Context, actor *entity.DbUser, filter ContractFilter) ([]entity.DbContract, error) {
	if err := authz.Check(actor, authz.ListContract); err != nil {
		return nil, err
	}
	status, err := entity.ParseContractStatus(filter.Status)
	if err != nil {
		return nil, apperr.Validation("%s", err.Error())
	}
	payment, err := entity.ParsePaymentState(filter.Remain)
	if err != nil {
		return nil, apperr.Validation("%s", err.Error())
	}
	query := &entity.ContractQuery{Status: status, Payment: payment}
	if filter.Mine {
		query.ContactID = &actor.ID
	}
	contracts, err := s.repo.ListContracts(ctx, query)
	if err != nil {
		return nil, translate(err, "Contract")
	}
	return contracts, nil
}

// UpdateContract applies changes to a contract. Moving it to another client
// moves the commercial contact along.
func (s *Service) UpdateContract(ctx context.Context, actor *entity.DbUser, id uint, changes ContractChanges) (*entity.DbContract, error) {
	contract, err := s.authorizedContract(ctx, actor, authz.UpdateContract, id)
	if err != nil {
		return nil, err
	}

	updates := entity.ContractUpdates{
		TotalAmount:     changes.TotalAmount,
		RemainingAmount: changes.RemainingAmount,
		Signed:          changes.Signed,
	}
	if changes.ClientID != nil && *changes.ClientID != contract.ClientID {
		client, err := s.loadClient(ctx, *changes.ClientID)
		if err != nil {
			return nil, err
		}
		updates.ClientID = &client.ID
		updates.CommercialContactID = client.EpicEventsContactID
	}

	total, remaining := contract.TotalAmount, contract.RemainingAmount
	if changes.TotalAmount != nil {
		total = *changes.TotalAmount
	}
	if changes.RemainingAmount != nil {
		remaining = *changes.RemainingAmount
	}
	if err := validateAmounts(total, remaining); err != nil {
		return nil, err
	}
	if updates.IsEmpty() {
		return contract, nil
	}

	if err := s.repo.UpdateContract(ctx, contract.ID, updates); err != nil {
		return nil, translate(err, "Contract")
	}
	if changes.Signed != nil && *changes.Signed && !contract.Signed {
		s.notify(ctx, actor, queue.ContractSigned, contract.ID, nil)
	}
	return s.loadContract(ctx, contract.ID)
}

// DeleteContract removes a contract that has no event.
func (s *Service) DeleteContract(ctx context.Context, actor *entity.DbUser, id uint) error {
	contract, err := s.authorizedContract(ctx, actor, authz.DeleteContract, id)
	if err != nil {
		return err
	}
	exists, err := s.repo.EventExistsForContract(ctx, contract.ID)
	if err != nil {
		return translate(err, "Event")
	}
	if exists {
		return apperr.BusinessRule("Delete the event of this contract first")
	}
	if err := s.repo.DeleteContract(ctx, contract.ID); err != nil {
		return translate(err, "Contract")
	}
	s.notify(ctx, actor, queue.ContractDeleted, contract.ID, nil)
	return nil
}
