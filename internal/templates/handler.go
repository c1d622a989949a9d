package templates

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/onespecapp/nemo-b2b-web-sub000/internal/audit"
	"github.com/onespecapp/nemo-b2b-web-sub000/internal/industry"
	"github.com/onespecapp/nemo-b2b-web-sub000/internal/observability/metrics"
	"github.com/onespecapp/nemo-b2b-web-sub000/internal/tenancy"
	"github.com/onespecapp/nemo-b2b-web-sub000/pkg/logging"
)

const maxRequestBytes = 64 << 10

// Handler exposes the generators over HTTP. Requests carrying an org id in
// their context get that org's defaults applied to blank fields.
type Handler struct {
	defaults DefaultsSource
	audit    *audit.Service
	metrics  *metrics.EngineMetrics
	logger   *logging.Logger
	now      func() time.Time
}

// NewHandler creates the generator handler. Every dependency may be nil.
func NewHandler(defaults DefaultsSource, auditor *audit.Service, m *metrics.EngineMetrics, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		defaults: defaults,
		audit:    auditor,
		metrics:  m,
		logger:   logger.Component("templates"),
		now:      time.Now,
	}
}

// SMSOption is one generated SMS with its segment count.
type SMSOption struct {
	Text       string `json:"text"`
	Characters int    `json:"characters"`
	Segments   int    `json:"segments"`
	Unicode    bool   `json:"unicode"`
}

// SMSResponse is returned by POST .../templates/sms.
type SMSResponse struct {
	MessageType MessageType `json:"message_type"`
	Options     []SMSOption `json:"options"`
}

// ReminderResponse is returned by POST .../templates/reminder.
type ReminderResponse struct {
	Channel Channel  `json:"channel"`
	Tone    Tone     `json:"tone"`
	Text    string   `json:"text"`
	Subject string   `json:"subject,omitempty"`
	Body    string   `json:"body,omitempty"`
	Turns   []string `json:"turns,omitempty"`
}

// TextResponse is returned by the card and policy endpoints.
type TextResponse struct {
	Text string `json:"text"`
}

// policyRequest lets callers omit include_late_arrival and inherit the default.
type policyRequest struct {
	PolicyInput
	IncludeLateArrival *bool `json:"include_late_arrival"`
}

// SMS handles POST /api/templates/sms.
func (h *Handler) SMS(w http.ResponseWriter, r *http.Request) {
	var in SMSInput
	if !h.decode(w, r, &in) {
		return
	}
	if in.MessageType == "" {
		in.MessageType = MessageConfirmation
	}
	if !in.MessageType.Valid() {
		writeError(w, http.StatusBadRequest, "unknown message_type")
		return
	}
	d, ok := h.orgDefaults(w, r)
	if !ok {
		return
	}
	if d != nil {
		d.ApplySMS(&in)
	}

	start := h.now()
	texts := GenerateSMSTemplates(in)
	h.observe(r, "sms", string(in.MessageType), start)

	resp := SMSResponse{MessageType: in.MessageType, Options: make([]SMSOption, len(texts))}
	for i, text := range texts {
		info := Segments(text)
		resp.Options[i] = SMSOption{Text: text, Characters: info.Characters, Segments: info.Segments, Unicode: info.Unicode}
	}
	writeJSON(w, http.StatusOK, resp)
}

// Reminder handles POST /api/templates/reminder.
func (h *Handler) Reminder(w http.ResponseWriter, r *http.Request) {
	var in ReminderInput
	if !h.decode(w, r, &in) {
		return
	}
	d, ok := h.orgDefaults(w, r)
	if !ok {
		return
	}
	if d != nil {
		d.ApplyReminder(&in)
	}
	if in.Channel == "" {
		in.Channel = ChannelSMS
	}
	if in.Tone == "" {
		in.Tone = ToneFriendly
	}
	if !in.Channel.Valid() || !in.Tone.Valid() {
		writeError(w, http.StatusBadRequest, "unknown channel or tone")
		return
	}

	start := h.now()
	text := GenerateTemplate(in)
	h.observe(r, "reminder", ReminderKey(in.Channel, in.Tone), start)

	resp := ReminderResponse{Channel: in.Channel, Tone: in.Tone, Text: text}
	switch in.Channel {
	case ChannelEmail:
		resp.Subject, resp.Body = SplitEmail(text)
	case ChannelPhone:
		resp.Turns = SplitScript(text)
	}
	writeJSON(w, http.StatusOK, resp)
}

// Card handles POST /api/templates/card.
func (h *Handler) Card(w http.ResponseWriter, r *http.Request) {
	var in CardInput
	if !h.decode(w, r, &in) {
		return
	}
	d, ok := h.orgDefaults(w, r)
	if !ok {
		return
	}
	if d != nil {
		d.ApplyCard(&in)
	}

	start := h.now()
	text := GenerateCardText(in)
	variant := in.Industry
	if !variant.Valid() {
		variant = industry.Other
	}
	h.observe(r, "card", string(variant), start)
	writeJSON(w, http.StatusOK, TextResponse{Text: text})
}

// Policy handles POST /api/templates/policy.
func (h *Handler) Policy(w http.ResponseWriter, r *http.Request) {
	var req policyRequest
	if !h.decode(w, r, &req) {
		return
	}
	in := req.PolicyInput
	in.IncludeLateArrival = true

	d, ok := h.orgDefaults(w, r)
	if !ok {
		return
	}
	if d != nil {
		d.ApplyPolicy(&in)
		in.IncludeLateArrival = d.IncludeLateArrival
	}
	if req.IncludeLateArrival != nil {
		in.IncludeLateArrival = *req.IncludeLateArrival
	}

	start := h.now()
	text := GeneratePolicy(in)
	style := in.PolicyStyle
	if !style.Valid() {
		style = StyleStandard
	}
	h.observe(r, "policy", string(style), start)
	writeJSON(w, http.StatusOK, TextResponse{Text: text})
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

// orgDefaults returns nil when the request is not org scoped. A false return
// means an error response was written.
func (h *Handler) orgDefaults(w http.ResponseWriter, r *http.Request) (*Defaults, bool) {
	orgID, ok := tenancy.OrgIDFromContext(r.Context())
	if !ok || h.defaults == nil {
		return nil, true
	}
	d, err := h.defaults.TemplateDefaults(r.Context(), orgID)
	if err != nil {
		h.logger.Error("failed to load template defaults", "org_id", orgID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return nil, false
	}
	return &d, true
}

func (h *Handler) observe(r *http.Request, generator, variant string, start time.Time) {
	elapsed := h.now().Sub(start)
	h.metrics.ObserveGeneration(generator, variant, elapsed.Seconds())

	orgID, ok := tenancy.OrgIDFromContext(r.Context())
	if !ok {
		return
	}
	if err := h.audit.LogTemplateGenerated(r.Context(), orgID, generator, variant); err != nil {
		h.logger.Warn("failed to audit generation", "org_id", orgID, "generator", generator, "error", err)
	}
	h.logger.Debug("template generated", "org_id", orgID, "generator", generator, "variant", variant, "duration_ms", elapsed.Milliseconds())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
