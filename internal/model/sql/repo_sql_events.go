package sql

import (
	"context"
	"crm/internal/entity"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// CreateEvent persists a new event.
func (r *GormRepository) CreateEvent(ctx context.Context, event *entity.DbEvent) error {
	if err := r.ready(); err != nil {
		return err
	}
	if event == nil {
		return fmt.Errorf("event is nil")
	}
	return r.db.WithContext(ctx).Omit("Contract", "SupportContact").Create(event).Error
}

// UpdateEvent updates the given columns of an event.
func (r *GormRepository) UpdateEvent(ctx context.Context, id uint, updates entity.EventUpdates) error {
	return r.updateByID(ctx, &entity.DbEvent{}, id, updates.ToMap())
}

func (r *GormRepository) eventScope(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Contract").
		Preload("Contract.Client").
		Preload("SupportContact")
}

// GetEvent loads an event with its contract, client and support contact.
func (r *GormRepository) GetEvent(ctx context.Context, id uint) (*entity.DbEvent, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}
	if id == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	var event entity.DbEvent
	if err := r.eventScope(ctx).First(&event, id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

// ListEvents returns events matching the support filters.
func (r *GormRepository) ListEvents(ctx context.Context, params *entity.EventQuery) ([]entity.DbEvent, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}
	query := r.eventScope(ctx).Model(&entity.DbEvent{})
	if params != nil {
		if params.Unassigned {
			query = query.Where("events.support_contact_id IS NULL")
		}
		if params.SupportID != nil {
			query = query.Where("events.support_contact_id = ?", *params.SupportID)
		}
		if name := strings.TrimSpace(params.SupportName); name != "" {
			query = query.Joins("JOIN users ON users.id = events.support_contact_id").
				Where("LOWER(users.name) = ?", strings.ToLower(name))
		}
	}
	var events []entity.DbEvent
	if err := query.Order("events.id ASC").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// DeleteEvent removes an event.
func (r *GormRepository) DeleteEvent(ctx context.Context, id uint) error {
	return r.deleteByID(ctx, &entity.DbEvent{}, id)
}

// EventExistsForContract reports whether an event was already created for the contract.
func (r *GormRepository) EventExistsForContract(ctx context.Context, contractID uint) (bool, error) {
	if err := r.ready(); err != nil {
		return false, err
	}
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.DbEvent{}).Where("contract_id = ?", contractID).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
