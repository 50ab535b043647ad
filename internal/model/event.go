package model

import (
	"encoding/json"
	"time"
)

// EventTypeUnknown is stored when a webhook arrives without an
// X-GitHub-Event header.
const EventTypeUnknown = "unknown"

// Event is one normalized webhook occurrence as it appears in the event log.
// The serialized form is a public contract with the downstream consumer:
// timestamp, event_type and delivery_id are always present, everything else
// is omitted when the webhook body did not carry it.
type Event struct {
	Timestamp   string          `json:"timestamp"`
	EventType   string          `json:"event_type"`
	DeliveryID  string          `json:"delivery_id"`
	Action      *string         `json:"action,omitempty"`
	WorkflowRun json.RawMessage `json:"workflow_run,omitempty"`
	CheckRun    json.RawMessage `json:"check_run,omitempty"`
	Repository  *string         `json:"repository,omitempty"`
	Sender      *string         `json:"sender,omitempty"`
}

// WebhookPayload is the subset of a GitHub webhook body the bridge extracts.
// Every field is optional; a missing key or nesting level decodes to nil
// rather than failing. workflow_run and check_run are passed through
// verbatim, not validated.
type WebhookPayload struct {
	Action      *string         `json:"action"`
	WorkflowRun json.RawMessage `json:"workflow_run"`
	CheckRun    json.RawMessage `json:"check_run"`
	Repository  *struct {
		FullName *string `json:"full_name"`
	} `json:"repository"`
	Sender *struct {
		Login *string `json:"login"`
	} `json:"sender"`
}

// NewEvent builds the normalized record for a received webhook.
// eventType falls back to EventTypeUnknown when empty; the timestamp is the
// receipt time in UTC RFC 3339.
func NewEvent(eventType, deliveryID string, payload *WebhookPayload, receivedAt time.Time) Event {
	if eventType == "" {
		eventType = EventTypeUnknown
	}
	ev := Event{
		Timestamp:  receivedAt.UTC().Format(time.RFC3339Nano),
		EventType:  eventType,
		DeliveryID: deliveryID,
	}
	if payload == nil {
		return ev
	}
	ev.Action = payload.Action
	ev.WorkflowRun = payload.WorkflowRun
	ev.CheckRun = payload.CheckRun
	if payload.Repository != nil {
		ev.Repository = payload.Repository.FullName
	}
	if payload.Sender != nil {
		ev.Sender = payload.Sender.Login
	}
	return ev
}
