package service

import (
	"context"
	"crm/internal/apperr"
	"crm/internal/authz"
	"crm/internal/entity"
	"crm/internal/queue"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
)

// DateLayout is the accepted date format.
const DateLayout = "2006-01-02"

var dateLayouts = []string{DateLayout, "2006-01-02 15:04", time.RFC3339}

// ErrInvalidDate is returned for dates not in YYYY-MM-DD form.
var ErrInvalidDate = apperr.New(apperr.CodeValidation, "Invalid date format, try : YYYY-MM-DD")

// ParseDate parses a YYYY-MM-DD date, optionally followed by a time.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidDate
}

// EventInput carries the fields of a new event.
type EventInput struct {
	Name             string
	ContractID       uint
	SupportContactID *uint
	Location         string
	Attendees        int
	Notes            string
	Start            string
	End              string
}

// EventChanges carries the fields to update; nil fields are left untouched.
type EventChanges struct {
	Name             *string
	SupportContactID *uint
	Location         *string
	Attendees        *int
	Notes            *string
	Start            *time.Time
	End              *time.Time
}

// EventFilter selects events in a listing.
type EventFilter struct {
	SupportName string
	Unassigned  bool
	Mine        bool
}

var (
	ErrContractNotSigned = apperr.BusinessRule("Contract must be sign to create an event")
	ErrEventExists       = apperr.BusinessRule("An event already exist for this contract.")
	ErrNotSupportUser    = apperr.New(apperr.CodeValidation, "Only a support user can be assigned")
)

// CreateEvent organises the event of a signed contract. Only the contract's
// commercial contact may open it.
func (s *Service) CreateEvent(ctx context.Context, actor *entity.DbUser, in EventInput) (*entity.DbEvent, error) {
	if err := authz.Check(actor, authz.CreateEvent); err != nil {
		return nil, err
	}
	contract, err := s.loadContract(ctx, in.ContractID)
	if err != nil {
		return nil, err
	}
	if !contract.Signed {
		return nil, ErrContractNotSigned
	}
	exists, err := s.repo.EventExistsForContract(ctx, contract.ID)
	if err != nil {
		return nil, translate(err, "Event")
	}
	if exists {
		return nil, ErrEventExists
	}
	if err := authz.RequireOwner(actor, contract.OwnerID()); err != nil {
		return nil, err
	}

	if in.SupportContactID != nil {
		if err := s.requireSupportUser(ctx, *in.SupportContactID); err != nil {
			return nil, err
		}
	}
	name, err := requireText("Name", in.Name)
	if err != nil {
		return nil, err
	}
	start, err := ParseDate(in.Start)
	if err != nil {
		return nil, err
	}
	end, err := ParseDate(in.End)
	if err != nil {
		return nil, err
	}
	if err := validateSchedule(start, end, in.Attendees); err != nil {
		return nil, err
	}

	event := &entity.DbEvent{
		Name:             name,
		ContractID:       contract.ID,
		StartDate:        start,
		EndDate:          end,
		SupportContactID: in.SupportContactID,
		Location:         strings.TrimSpace(in.Location),
		Attendees:        in.Attendees,
		Notes:            strings.TrimSpace(in.Notes),
	}
	if err := s.repo.CreateEvent(ctx, event); err != nil {
		return nil, translate(err, "Event")
	}
	s.notify(ctx, actor, queue.EventCreated, event.ID, map[string]any{"contract_id": contract.ID})
	return s.loadEvent(ctx, event.ID)
}

func validateSchedule(start, end time.Time, attendees int) error {
	if end.Before(start) {
		return apperr.Validation("End date can't be before start date")
	}
	if attendees < 0 {
		return apperr.Validation("Attendees must be positive")
	}
	return nil
}

func (s *Service) requireSupportUser(ctx context.Context, id uint) error {
	user, err := s.repo.GetUserByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("User")
	}
	if err != nil {
		return translate(err, "User")
	}
	if authz.RoleName(user.RoleName()) != authz.RoleSupport {
		return ErrNotSupportUser
	}
	return nil
}

func (s *Service) loadEvent(ctx context.Context, id uint) (*entity.DbEvent, error) {
	event, err := s.repo.GetEvent(ctx, id)
	if err != nil {
		return nil, translate(err, "Event")
	}
	return event, nil
}

// GetEvent returns one event.
func (s *Service) GetEvent(ctx context.Context, actor *entity.DbUser, id uint) (*entity.DbEvent, error) {
	if err := authz.Check(actor, authz.GetEvent); err != nil {
		return nil, err
	}
	return s.loadEvent(ctx, id)
}

// EventForUpdate returns an event the actor may update, as the designated
// contact or through update-event.
func (s *Service) EventForUpdate(ctx context.Context, actor *entity.DbUser, id uint) (*entity.DbEvent, error) {
	return s.authorizedEvent(ctx, actor, authz.UpdateEvent, id)
}

func (s *Service) authorizedEvent(ctx context.Context, actor *entity.DbUser, perm authz.Permission, id uint) (*entity.DbEvent, error) {
	if actor == nil {
		return nil, authz.ErrAuthenticationRequired
	}
	event, err := s.loadEvent(ctx, id)
	if err != nil {
		return nil, lookupDenied(actor, perm, err)
	}
	if err := authz.Authorize(actor, perm, event.OwnerID()); err != nil {
		return nil, err
	}
	return event, nil
}

// ListEvents lists events matching filter.
func (s *Service) ListEvents(ctx context.Context, actor *entity.DbUser, filter EventFilter) ([]entity.DbEvent, error) {
	if err := authz.Check(actor, authz.ListEvent); err != nil {
		return nil, err
	}
	query := &entity.EventQuery{
		SupportName: strings.TrimSpace(filter.SupportName),
		Unassigned:  filter.Unassigned,
	}
	if filter.Mine {
		query.SupportID = &actor.ID
	}
	events, err := s.repo.ListEvents(ctx, query)
	if err != nil {
		return nil, translate(err, "Event")
	}
	return events, nil
}

// UpdateEvent applies changes to an event.
func (s *Service) UpdateEvent(ctx context.Context, actor *entity.DbUser, id uint, changes EventChanges) (*entity.DbEvent, error) {
	event, err := s.authorizedEvent(ctx, actor, authz.UpdateEvent, id)
	if err != nil {
		return nil, err
	}

	updates := entity.EventUpdates{
		Location:  trimmed(changes.Location),
		Notes:     trimmed(changes.Notes),
		Attendees: changes.Attendees,
		StartDate: changes.Start,
		EndDate:   changes.End,
	}
	if changes.Name != nil {
		name, err := requireText("Name", *changes.Name)
		if err != nil {
			return nil, err
		}
		updates.Name = &name
	}
	if changes.SupportContactID != nil && !sameID(event.SupportContactID, changes.SupportContactID) {
		if err := s.requireSupportUser(ctx, *changes.SupportContactID); err != nil {
			return nil, err
		}
		updates.SupportContactID = changes.SupportContactID
	}

	start, end, attendees := event.StartDate, event.EndDate, event.Attendees
	if changes.Start != nil {
		start = *changes.Start
	}
	if changes.End != nil {
		end = *changes.End
	}
	if changes.Attendees != nil {
		attendees = *changes.Attendees
	}
	if err := validateSchedule(start, end, attendees); err != nil {
		return nil, err
	}
	if updates.IsEmpty() {
		return event, nil
	}

	if err := s.repo.UpdateEvent(ctx, event.ID, updates); err != nil {
		return nil, translate(err, "Event")
	}
	return s.loadEvent(ctx, event.ID)
}

// DeleteEvent removes an event.
func (s *Service) DeleteEvent(ctx context.Context, actor *entity.DbUser, id uint) error {
	event, err := s.authorizedEvent(ctx, actor, authz.DeleteEvent, id)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteEvent(ctx, event.ID); err != nil {
		return translate(err, "Event")
	}
	s.notify(ctx, actor, queue.EventDeleted, event.ID, map[string]any{"contract_id": event.ContractID})
	return nil
}

func sameID(a, b *uint) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
