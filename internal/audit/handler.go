package audit

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/onespecapp/nemo-b2b-web-sub000/internal/tenancy"
	"github.com/onespecapp/nemo-b2b-web-sub000/pkg/logging"
)

// Handler lists an org's audit trail.
type Handler struct {
	service *Service
	logger  *logging.Logger
}

func NewHandler(service *Service, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{service: service, logger: logger.Component("audit")}
}

// ListEvents handles GET /api/orgs/{orgID}/audit.
// Query params:
//   - type: event type, repeatable or comma separated (optional)
//   - limit: 1-200, default 50
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	orgID, ok := tenancy.OrgIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing org context"})
		return
	}
	if h.service == nil || h.service.db == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "audit log disabled (db not configured)"})
		return
	}

	var types []EventType
	for _, raw := range r.URL.Query()["type"] {
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				types = append(types, EventType(t))
			}
		}
	}
	limit := defaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > maxListLimit {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid limit; must be 1-200"})
			return
		}
		limit = parsed
	}

	events, err := h.service.ListByTypes(r.Context(), orgID, types, limit)
	if err != nil {
		h.logger.Error("failed to list audit events", "org_id", orgID, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	if events == nil {
		events = []Event{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"events": events, "count": len(events)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
