package service

import (
	"context"
	"crm/internal/apperr"
	"crm/internal/authz"
	"crm/internal/entity"
	"crm/internal/model"
	"crm/internal/queue"
	"crm/internal/storage"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ArchiveFactory opens the export archive on first use.
type ArchiveFactory func() (storage.Archive, error)

// Options wires a Service.
type Options struct {
	Repo      model.Repository
	Publisher queue.Publisher
	Archive   ArchiveFactory
	Clock     func() time.Time
}

// Service implements the CRM operations. Every method takes the acting user
// and applies the authorization rules before touching the repository.
type Service struct {
	repo      model.Repository
	publisher queue.Publisher
	archive   ArchiveFactory
	now       func() time.Time
}

// New creates a Service.
func New(opts Options) (*Service, error) {
	if opts.Repo == nil {
		return nil, errors.New("service: repository is required")
	}
	s := &Service{
		repo:      opts.Repo,
		publisher: opts.Publisher,
		archive:   opts.Archive,
		now:       opts.Clock,
	}
	if s.publisher == nil {
		s.publisher = queue.NopPublisher{}
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s, nil
}

func (s *Service) notify(ctx context.Context, actor *entity.DbUser, eventType string, id uint, data map[string]any) {
	var actorID uint
	if actor != nil {
		actorID = actor.ID
	}
	queue.Notify(ctx, s.publisher, queue.Event{
		Type:       eventType,
		EntityID:   id,
		ActorID:    actorID,
		OccurredAt: s.now().UTC(),
		Data:       data,
	})
}

// lookupDenied answers a missing record with the denial an existing record
// would get when the actor lacks perm, so ids cannot be enumerated.
func lookupDenied(actor *entity.DbUser, perm authz.Permission, err error) error {
	if apperr.CodeOf(err) != apperr.CodeNotFound {
		return err
	}
	if denied := authz.Authorize(actor, perm, nil); denied != nil {
		return denied
	}
	return err
}

// translate converts repository failures into command-boundary errors.
func translate(err error, entityName string) error {
	if err == nil {
		return nil
	}
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return err
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperr.NotFound(entityName)
	case errors.Is(err, gorm.ErrDuplicatedKey), isUniqueViolation(err):
		return apperr.Wrap(apperr.CodeValidation, fmt.Sprintf("%s with this email already exists", entityName), err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return apperr.Wrap(apperr.CodeValidation, fmt.Sprintf("%s references a missing record", entityName), err)
	case errors.Is(err, context.DeadlineExceeded):
		return apperr.Wrap(apperr.CodeInternal, "operation timed out", err)
	default:
		logrus.WithError(err).WithField("entity", entityName).Error("repository operation failed")
		return apperr.Internal(err)
	}
}

func isUniqueViolation(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate entry") ||
		strings.Contains(msg, "duplicate key")
}

// requireText trims value and rejects blanks.
func requireText(field, value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", apperr.Validation("%s is required", field)
	}
	return trimmed, nil
}

func validateEmail(value string) (string, error) {
	email, err := requireText("Email", value)
	if err != nil {
		return "", err
	}
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 || strings.ContainsAny(email, " \t") {
		return "", apperr.Validation("Invalid email address: %s", email)
	}
	return strings.ToLower(email), nil
}

// loadUser fetches a user and maps a missing row to "User not found".
func (s *Service) loadUser(ctx context.Context, id uint) (*entity.DbUser, error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, translate(err, "User")
	}
	return user, nil
}

// roleByName resolves a closed role name to its seeded row.
func (s *Service) roleByName(ctx context.Context, role authz.RoleName) (*entity.DbRole, error) {
	row, err := s.repo.GetRoleByName(ctx, string(role))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Validation("Role %s is not seeded, run setup first", role)
	}
	if err != nil {
		return nil, translate(err, "Role")
	}
	return row, nil
}
