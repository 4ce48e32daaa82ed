package audit

import (
	"context"
	"time"

	id "bukuinduk/pkg/domain"
)

// Action names an audited operation.
type Action string

const (
	ActionRegistryGenerated  Action = "registry_generated"
	ActionRegistrySummarized Action = "registry_summarized"
)

// Event is emitted from service code to capture key actions. It is
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Timestamp time.Time         `json:"timestamp"`
	TenantID  id.TenantID       `json:"tenant_id"`
	Subject   string            `json:"subject"`
	Action    Action            `json:"action"`
	RequestID string            `json:"request_id,omitempty"`
	Outcome   string            `json:"outcome,omitempty"`
	Details   map[string]string `json:"details,omitempty"`
}

// Store persists audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
}
