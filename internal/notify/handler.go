package notify

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/onespecapp/nemo-b2b-web-sub000/internal/audit"
	"github.com/onespecapp/nemo-b2b-web-sub000/internal/observability/metrics"
	"github.com/onespecapp/nemo-b2b-web-sub000/internal/templates"
	"github.com/onespecapp/nemo-b2b-web-sub000/internal/tenancy"
	"github.com/onespecapp/nemo-b2b-web-sub000/internal/validation"
	"github.com/onespecapp/nemo-b2b-web-sub000/pkg/logging"
)

const maxRequestBytes = 16 << 10

// TestEmailRequest is the body of POST /api/orgs/{orgID}/test-email.
type TestEmailRequest struct {
	To           string         `json:"to"`
	Tone         templates.Tone `json:"tone"`
	CustomerName string         `json:"customer_name"`
	ServiceName  string         `json:"service_name"`
	Date         string         `json:"date"`
	Time         string         `json:"time"`
}

// Handler serves the test email endpoint.
type Handler struct {
	mailer   *ReminderMailer
	defaults templates.DefaultsSource
	audit    *audit.Service
	metrics  *metrics.OutreachMetrics
	logger   *logging.Logger
}

// NewHandler wires the test email endpoint. defaults, auditor and m may be nil.
func NewHandler(mailer *ReminderMailer, defaults templates.DefaultsSource, auditor *audit.Service, m *metrics.OutreachMetrics, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		mailer:   mailer,
		defaults: defaults,
		audit:    auditor,
		metrics:  m,
		logger:   logger.Component("notify"),
	}
}

// SendTestEmail handles POST /api/orgs/{orgID}/test-email.
func (h *Handler) SendTestEmail(w http.ResponseWriter, r *http.Request) {
	orgID, ok := tenancy.OrgIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusBadRequest, "missing org context")
		return
	}

	var req TestEmailRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	in := templates.ReminderInput{
		CustomerName: req.CustomerName,
		ServiceName:  req.ServiceName,
		Date:         req.Date,
		Time:         req.Time,
		Tone:         req.Tone,
		Channel:      templates.ChannelEmail,
	}
	if h.defaults != nil {
		d, err := h.defaults.TemplateDefaults(r.Context(), orgID)
		if err != nil {
			h.logger.Error("failed to load template defaults", "org_id", orgID, "error", err)
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		d.ApplyReminder(&in)
	}

	masked := validation.MaskEmail(req.To)
	sent, err := h.mailer.SendReminder(r.Context(), req.To, in)
	switch {
	case errors.Is(err, ErrNoRecipient):
		writeError(w, http.StatusBadRequest, "to is required")
		return
	case errors.Is(err, ErrInvalidRecipient):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": validation.ValidateEmail(req.To).Error})
		return
	case err != nil:
		h.metrics.ObserveTestEmail(h.mailer.Provider(), "failed")
		if aerr := h.audit.LogTestEmail(r.Context(), orgID, masked, "", err); aerr != nil {
			h.logger.Warn("failed to audit test email", "org_id", orgID, "error", aerr)
		}
		h.logger.Error("test email failed", "org_id", orgID, "to", masked, "error", err)
		writeError(w, http.StatusBadGateway, "email provider error")
		return
	}

	h.metrics.ObserveTestEmail(h.mailer.Provider(), "sent")
	if aerr := h.audit.LogTestEmail(r.Context(), orgID, masked, sent.MessageID, nil); aerr != nil {
		h.logger.Warn("failed to audit test email", "org_id", orgID, "error", aerr)
	}
	h.logger.Info("test email sent", "org_id", orgID, "to", masked, "message_id", sent.MessageID)
	writeJSON(w, http.StatusAccepted, sent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
