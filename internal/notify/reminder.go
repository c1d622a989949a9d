package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/onespecapp/nemo-b2b-web-sub000/internal/templates"
	"github.com/onespecapp/nemo-b2b-web-sub000/internal/validation"
	"github.com/onespecapp/nemo-b2b-web-sub000/pkg/logging"
)

var reminderTracer = otel.Tracer("nemo.internal.notify.reminder")

// ErrInvalidRecipient wraps the email validation message for a bad address.
var ErrInvalidRecipient = errors.New("notify: invalid recipient")

// ReminderMailer renders email-channel reminders and hands them to a sender.
type ReminderMailer struct {
	sender EmailSender
	logger *logging.Logger
}

// NewReminderMailer wraps sender. A nil sender falls back to the stub.
func NewReminderMailer(sender EmailSender, logger *logging.Logger) *ReminderMailer {
	if logger == nil {
		logger = logging.Default()
	}
	if sender == nil {
		sender = NewStubEmailSender(logger)
	}
	return &ReminderMailer{sender: sender, logger: logger}
}

// Provider reports the underlying sender's name.
func (m *ReminderMailer) Provider() string {
	return m.sender.Provider()
}

// SentReminder describes a delivered reminder.
type SentReminder struct {
	MessageID string `json:"message_id,omitempty"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
}

// Compose renders the email for in, forcing the email channel. A tone outside
// the closed set falls back to friendly.
func Compose(in templates.ReminderInput) (subject, body string) {
	in.Channel = templates.ChannelEmail
	if !in.Tone.Valid() {
		in.Tone = templates.ToneFriendly
	}
	return templates.SplitEmail(templates.GenerateTemplate(in))
}

// SendReminder validates to, composes the reminder and sends it.
func (m *ReminderMailer) SendReminder(ctx context.Context, to string, in templates.ReminderInput) (SentReminder, error) {
	to = strings.TrimSpace(to)
	if to == "" {
		return SentReminder{}, ErrNoRecipient
	}
	if res := validation.ValidateEmail(to); !res.Valid {
		return SentReminder{}, fmt.Errorf("%w: %s", ErrInvalidRecipient, res.Error)
	}

	subject, body := Compose(in)

	ctx, span := reminderTracer.Start(ctx, "notify.reminder.send", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.SetAttributes(
		attribute.String("nemo.email.provider", m.sender.Provider()),
		attribute.String("nemo.reminder.tone", string(in.Tone)),
	)

	id, err := m.sender.Send(ctx, EmailMessage{
		To:      to,
		ToName:  in.CustomerName,
		Subject: subject,
		Body:    body,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "send failed")
		return SentReminder{}, err
	}
	span.SetAttributes(attribute.String("nemo.email.message_id", id))
	return SentReminder{MessageID: id, Subject: subject, Body: body}, nil
}
