package calls

import (
	"context"
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

// Placer is satisfied by *Client.
type Placer interface {
	PlaceTestCall(ctx context.Context, req TestCallRequest) (*TestCallResponse, error)
}

// TestCallBody is the request body of POST /api/orgs/{orgID}/test-call.
type TestCallBody struct {
	Phone        string `json:"phone"`
	CustomerName string `json:"customer_name"`
	Service      string `json:"service"`
	Date         string `json:"date"`
	Time         string `json:"time"`
}

// Handler serves the test call endpoint.
type Handler struct {
	placer   Placer
	defaults templates.DefaultsSource
	audit    *audit.Service
	metrics  *metrics.OutreachMetrics
	logger   *logging.Logger
}

// NewHandler wires the test call endpoint. A nil placer answers 503.
func NewHandler(placer Placer, defaults templates.DefaultsSource, auditor *audit.Service, m *metrics.OutreachMetrics, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		placer:   placer,
		defaults: defaults,
		audit:    auditor,
		metrics:  m,
		logger:   logger.Component("calls"),
	}
}

// TestCall handles POST /api/orgs/{orgID}/test-call.
func (h *Handler) TestCall(w http.ResponseWriter, r *http.Request) {
	orgID, ok := tenancy.OrgIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusBadRequest, "missing org context")
		return
	}

	var body TestCallBody
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes)).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	// Phone is optional in general but a call needs somewhere to go.
	if validation.CleanPhone(body.Phone) == "" {
		writeJSON(w, http.StatusBadRequest, validation.Result{Valid: false, Error: "Phone number is required"})
		return
	}
	if res := validation.ValidatePhone(body.Phone); !res.Valid {
		writeJSON(w, http.StatusBadRequest, res)
		return
	}

	if h.placer == nil {
		h.metrics.ObserveTestCall("not_configured")
		writeError(w, http.StatusServiceUnavailable, "test calls are not configured")
		return
	}

	in := templates.ReminderInput{
		CustomerName: body.CustomerName,
		ServiceName:  body.Service,
		Date:         body.Date,
		Time:         body.Time,
		Channel:      templates.ChannelPhone,
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
	if !in.Tone.Valid() {
		in.Tone = templates.ToneFriendly
	}
	script := templates.GenerateTemplate(in)

	to := validation.FormatPhoneForAPI(body.Phone)
	masked := validation.MaskPhone(to)
	resp, err := h.placer.PlaceTestCall(r.Context(), TestCallRequest{
		To:           to,
		CustomerName: body.CustomerName,
		BusinessName: in.BusinessName,
		Script:       script,
		Turns:        templates.SplitScript(script),
	})
	if aerr := h.audit.LogTestCall(r.Context(), orgID, masked, callID(resp), err); aerr != nil {
		h.logger.Warn("failed to audit test call", "org_id", orgID, "error", aerr)
	}

	switch {
	case errors.Is(err, ErrNotConfigured):
		h.metrics.ObserveTestCall("not_configured")
		writeError(w, http.StatusServiceUnavailable, "test calls are not configured")
		return
	case err != nil:
		h.metrics.ObserveTestCall("upstream_error")
		h.logger.Error("test call failed", "org_id", orgID, "to", masked, "error", err)
		writeError(w, http.StatusBadGateway, "call provider error")
		return
	}

	h.metrics.ObserveTestCall("accepted")
	h.logger.Info("test call accepted", "org_id", orgID, "to", masked, "call_id", resp.CallID)
	writeJSON(w, http.StatusAccepted, map[string]string{
		"call_id": resp.CallID,
		"status":  resp.Status,
		"script":  script,
	})
}

func callID(resp *TestCallResponse) string {
	if resp == nil {
		return ""
	}
	return resp.CallID
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
