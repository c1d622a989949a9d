// Package audit records an append-only trail of dashboard activity per organization.
package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// EventType identifies what happened.
type EventType string

const (
	// EventTemplateGenerated is logged when an org-scoped generator produces text.
	EventTemplateGenerated EventType = "template.generated"
	// EventProfileUpdated is logged when a business profile is saved.
	EventProfileUpdated EventType = "profile.updated"
	// EventCustomerCreated is logged when a customer record is added.
	EventCustomerCreated EventType = "customer.created"
	// EventTestCallRequested is logged when a test call is accepted upstream.
	EventTestCallRequested EventType = "call.test_requested"
	// EventTestCallFailed is logged when a test call could not be placed.
	EventTestCallFailed EventType = "call.test_failed"
	// EventTestEmailSent is logged when a test email is handed to the provider.
	EventTestEmailSent EventType = "email.test_sent"
	// EventTestEmailFailed is logged when a test email could not be sent.
	EventTestEmailFailed EventType = "email.test_failed"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// Event is an immutable audit record.
type Event struct {
	ID        string          `json:"id"`
	EventType EventType       `json:"event_type"`
	OrgID     string          `json:"org_id"`
	Details   json.RawMessage `json:"details,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// Details carries event-specific fields. Contact data is stored masked.
type Details struct {
	Generator  string `json:"generator,omitempty"`
	Variant    string `json:"variant,omitempty"`
	CustomerID string `json:"customer_id,omitempty"`
	Recipient  string `json:"recipient,omitempty"`
	CallID     string `json:"call_id,omitempty"`
	MessageID  string `json:"message_id,omitempty"`
	Reason     string `json:"reason,omitempty"`
}

// Service writes and reads audit events.
type Service struct {
	db *sql.DB
}

// NewService creates a new audit service.
func NewService(db *sql.DB) *Service {
	return &Service{db: db}
}

// Log records an audit event. A nil service is a no-op.
func (s *Service) Log(ctx context.Context, event Event) error {
	if s == nil || s.db == nil {
		return nil
	}
	if event.OrgID == "" {
		return fmt.Errorf("audit: org id required")
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}
	if len(event.Details) == 0 {
		event.Details = json.RawMessage(`{}`)
	}

	query := `
		INSERT INTO audit_events (id, event_type, org_id, details, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := s.db.ExecContext(ctx, query,
		event.ID,
		event.EventType,
		event.OrgID,
		[]byte(event.Details),
		event.CreatedAt,
	); err != nil {
		return fmt.Errorf("audit: failed to log event: %w", err)
	}
	return nil
}

// LogDetails marshals details and records an event of the given type.
func (s *Service) LogDetails(ctx context.Context, eventType EventType, orgID string, details Details) error {
	raw, err := json.Marshal(details)
	if err != nil {
		return fmt.Errorf("audit: marshal details: %w", err)
	}
	return s.Log(ctx, Event{EventType: eventType, OrgID: orgID, Details: raw})
}

// LogTemplateGenerated records a generator run for an org.
func (s *Service) LogTemplateGenerated(ctx context.Context, orgID, generator, variant string) error {
	return s.LogDetails(ctx, EventTemplateGenerated, orgID, Details{Generator: generator, Variant: variant})
}

// LogTestCall records the outcome of a test call. recipient must already be masked.
func (s *Service) LogTestCall(ctx context.Context, orgID, recipient, callID string, callErr error) error {
	if callErr != nil {
		return s.LogDetails(ctx, EventTestCallFailed, orgID, Details{Recipient: recipient, Reason: callErr.Error()})
	}
	return s.LogDetails(ctx, EventTestCallRequested, orgID, Details{Recipient: recipient, CallID: callID})
}

// LogTestEmail records the outcome of a test email. recipient must already be masked.
func (s *Service) LogTestEmail(ctx context.Context, orgID, recipient, messageID string, sendErr error) error {
	if sendErr != nil {
		return s.LogDetails(ctx, EventTestEmailFailed, orgID, Details{Recipient: recipient, Reason: sendErr.Error()})
	}
	return s.LogDetails(ctx, EventTestEmailSent, orgID, Details{Recipient: recipient, MessageID: messageID})
}

// ListByTypes returns an org's most recent events, newest first. An empty types
// slice matches every type.
func (s *Service) ListByTypes(ctx context.Context, orgID string, types []EventType, limit int) ([]Event, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("audit: database not configured")
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	query := `
		SELECT id, event_type, org_id, details, created_at
		FROM audit_events
		WHERE org_id = $1
	`
	args := []interface{}{orgID}
	if len(types) > 0 {
		names := make([]string, len(types))
		for i, t := range types {
			names[i] = string(t)
		}
		query += " AND event_type = ANY($2)"
		args = append(args, pq.Array(names))
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT %d", limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("audit: failed to query events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		var details []byte
		if err := rows.Scan(&e.ID, &e.EventType, &e.OrgID, &details, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("audit: failed to scan event: %w", err)
		}
		if len(details) > 0 {
			e.Details = json.RawMessage(details)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("audit: iterate events: %w", err)
	}
	return events, nil
}
