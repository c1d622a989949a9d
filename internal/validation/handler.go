package validation

import (
	"encoding/json"
	"net/http"

	"github.com/onespecapp/nemo-b2b-web-sub000/internal/observability/metrics"
	"github.com/onespecapp/nemo-b2b-web-sub000/pkg/logging"
)

// Handler serves the contact validation endpoints used by dashboard forms.
type Handler struct {
	metrics *metrics.EngineMetrics
	logger  *logging.Logger
}

// NewHandler creates a validation handler. m may be nil.
func NewHandler(m *metrics.EngineMetrics, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{metrics: m, logger: logger.Component("validation")}
}

// PhoneResponse adds the display and API renderings to a phone result.
type PhoneResponse struct {
	Result
	Display string `json:"display,omitempty"`
	API     string `json:"api,omitempty"`
}

// Phone handles POST /api/validate/phone.
func (h *Handler) Phone(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Phone string `json:"phone"`
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 4<<10)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}

	res := ValidatePhone(req.Phone)
	h.metrics.ObserveValidation("phone", res.Valid)

	resp := PhoneResponse{Result: res}
	if res.Valid {
		resp.Display = FormatPhoneForDisplay(req.Phone)
		resp.API = FormatPhoneForAPI(req.Phone)
	}
	writeJSON(w, http.StatusOK, resp)
}

// Email handles POST /api/validate/email.
func (h *Handler) Email(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 4<<10)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}

	res := ValidateEmail(req.Email)
	h.metrics.ObserveValidation("email", res.Valid)
	writeJSON(w, http.StatusOK, res)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
