package service

import (
	"context"
	"crm/internal/apperr"
	"crm/internal/entity"
	"crm/internal/queue"
	"crm/internal/storage"
	"encoding/json"
	"fmt"
	"strings"
)

// Export kinds.
const (
	ExportClients   = "clients"
	ExportContracts = "contracts"
	ExportEvents    = "events"
)

// ExportResult describes a written snapshot.
type ExportResult struct {
	Kind  string
	Key   string
	Count int
}

// Export writes a JSON snapshot of one resource to the archive. It requires
// the list permission of that resource.
func (s *Service) Export(ctx context.Context, actor *entity.DbUser, kind string) (*ExportResult, error) {
	kind = strings.ToLower(strings.TrimSpace(kind))

	var (
		records any
		count   int
	)
	switch kind {
	case ExportClients:
		clients, err := s.ListClients(ctx, actor, false)
		if err != nil {
			return nil, err
		}
		records, count = clients, len(clients)
	case ExportContracts:
		contracts, err := s.ListContracts(ctx, actor, ContractFilter{})
		if err != nil {
			return nil, err
		}
		records, count = contracts, len(contracts)
	case ExportEvents:
		events, err := s.ListEvents(ctx, actor, EventFilter{})
		if err != nil {
			return nil, err
		}
		records, count = events, len(events)
	default:
		return nil, apperr.Validation("Unknown export kind %q, expected clients, contracts or events", kind)
	}

	if s.archive == nil {
		return nil, apperr.New(apperr.CodeInternal, "Export storage is not configured")
	}
	archive, err := s.archive()
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "Export storage is unavailable", err)
	}

	body, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("encode %s: %w", kind, err))
	}
	at := s.now().UTC()
	key, err := archive.Put(ctx, storage.Object{
		Kind:      kind,
		Name:      fmt.Sprintf("%s-%s", kind, at.Format("20060102T150405")),
		At:        at,
		Extension: "json",
		Body:      body,
	})
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "Export failed", err)
	}

	s.notify(ctx, actor, queue.ExportCompleted, 0, map[string]any{"kind": kind, "key": key, "count": count})
	return &ExportResult{Kind: kind, Key: key, Count: count}, nil
}
