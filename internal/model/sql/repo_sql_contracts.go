package sql

import (
	"context"
	"crm/internal/entity"
	"fmt"

	"gorm.io/gorm"
)

// CreateContract persists a new contract.
func (r *GormRepository) CreateContract(ctx context.Context, contract *entity.DbContract) error {
	if err := r.ready(); err != nil {
		return err
	}
	if contract == nil {
		return fmt.Errorf("contract is nil")
	}
	return r.db.WithContext(ctx).Omit("Client", "CommercialContact").Create(contract).Error
}

// UpdateContract updates the given columns of a contract.
func (r *GormRepository) UpdateContract(ctx context.Context, id uint, updates entity.ContractUpdates) error {
	return r.updateByID(ctx, &entity.DbContract{}, id, updates.ToMap())
}

// GetContract loads a contract with its client and contact.
func (r *GormRepository) GetContract(ctx context.Context, id uint) (*entity.DbContract, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}
	if id == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	var contract entity.DbContract
	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("CommercialContact").
		First(&contract, id).Error
	if err != nil {
		return nil, err
	}
	return &contract, nil
}

// ListContracts returns contracts matching the status and payment filters.
func (r *GormRepository) ListContracts(ctx context.Context, params *entity.ContractQuery) ([]entity.DbContract, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}
	query := r.db.WithContext(ctx).
		Preload("Client").
		Preload("CommercialContact").
		Model(&entity.DbContract{})

	if params != nil {
		switch params.Status {
		case entity.StatusSigned:
			query = query.Where("signed = ?", true)
		case entity.StatusNotSigned:
			query = query.Where("signed = ?", false)
		}
		switch params.Payment {
		case entity.PaymentOutstanding:
			query = query.Where("remaining_amount > ?", 0)
		case entity.PaymentPaid:
			query = query.Where("remaining_amount = ?", 0)
		}
		if params.ContactID != nil {
			query = query.Where("commercial_contact_id = ?", *params.ContactID)
		}
		if params.ClientID != nil {
			query = query.Where("client_id = ?", *params.ClientID)
		}
	}

	var contracts []entity.DbContract
	if err := query.Order("id ASC").Find(&contracts).Error; err != nil {
		return nil, err
	}
	return contracts, nil
}

// DeleteContract removes a contract.
func (r *GormRepository) DeleteContract(ctx context.Context, id uint) error {
	return r.deleteByID(ctx, &entity.DbContract{}, id)
}
