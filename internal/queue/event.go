// Package queue publishes CRM domain events to RabbitMQ.
package queue

import "time"

// Routing keys of the published events.
const (
	ClientCreated   = "crm.client.created"
	ClientDeleted   = "crm.client.deleted"
	ContractCreated = "crm.contract.created"
	ContractSigned  = "crm.contract.signed"
	ContractDeleted = "crm.contract.deleted"
	EventCreated    = "crm.event.created"
	EventDeleted    = "crm.event.deleted"
	UserCreated     = "crm.user.created"
	UserDeleted     = "crm.user.deleted"
	ExportCompleted = "crm.export.completed"
)

// Event is the JSON payload published for every domain change.
type Event struct {
	Type       string         `json:"type"`
	EntityID   uint           `json:"entity_id"`
	ActorID    uint           `json:"actor_id"`
	OccurredAt time.Time      `json:"occurred_at"`
	Data       map[string]any `json:"data,omitempty"`
}
