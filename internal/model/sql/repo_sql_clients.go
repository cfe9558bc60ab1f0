package sql

import (
	"context"
	"crm/internal/entity"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// CreateClient persists a new client.
func (r *GormRepository) CreateClient(ctx context.Context, client *entity.DbClient) error {
	if err := r.ready(); err != nil {
		return err
	}
	if client == nil {
		return fmt.Errorf("client is nil")
	}
	client.Email = strings.ToLower(strings.TrimSpace(client.Email))
	return r.db.WithContext(ctx).Omit("EpicEventsContact").Create(client).Error
}

// UpdateClient updates the given columns of a client.
func (r *GormRepository) UpdateClient(ctx context.Context, id uint, updates entity.ClientUpdates) error {
	if updates.Email != nil {
		normalized := strings.ToLower(strings.TrimSpace(*updates.Email))
		updates.Email = &normalized
	}
	return r.updateByID(ctx, &entity.DbClient{}, id, updates.ToMap())
}

// GetClient loads a client with its contact.
func (r *GormRepository) GetClient(ctx context.Context, id uint) (*entity.DbClient, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}
	if id == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	var client entity.DbClient
	if err := r.db.WithContext(ctx).Preload("EpicEventsContact").First(&client, id).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

// ListClients returns clients ordered by id.
func (r *GormRepository) ListClients(ctx context.Context, params *entity.ClientQuery) ([]entity.DbClient, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}
	query := r.db.WithContext(ctx).Preload("EpicEventsContact").Model(&entity.DbClient{})
	if params != nil && params.ContactID != nil {
		query = query.Where("epic_events_contact_id = ?", *params.ContactID)
	}
	var clients []entity.DbClient
	if err := query.Order("id ASC").Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

// DeleteClient removes a client.
func (r *GormRepository) DeleteClient(ctx context.Context, id uint) error {
	return r.deleteByID(ctx, &entity.DbClient{}, id)
}
