package business

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/onespecapp/nemo-b2b-web-sub000/internal/audit"
	"github.com/onespecapp/nemo-b2b-web-sub000/internal/industry"
	"github.com/onespecapp/nemo-b2b-web-sub000/internal/templates"
	"github.com/onespecapp/nemo-b2b-web-sub000/pkg/logging"
)

const maxRequestBytes = 16 << 10

// ProfileStore is the persistence used by Handler.
type ProfileStore interface {
	Get(ctx context.Context, orgID string) (*Profile, error)
	Set(ctx context.Context, p *Profile) error
}

// Handler provides HTTP endpoints for business profile management.
type Handler struct {
	store  ProfileStore
	audit  *audit.Service
	logger *logging.Logger
}

// NewHandler creates a new profile HTTP handler. auditor may be nil.
func NewHandler(store ProfileStore, auditor *audit.Service, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		store:  store,
		audit:  auditor,
		logger: logger.Component("business"),
	}
}

// GetProfile returns the profile for an org.
// GET /api/orgs/{orgID}/profile
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	orgID := chi.URLParam(r, "orgID")
	if orgID == "" {
		http.Error(w, `{"error": "org_id required"}`, http.StatusBadRequest)
		return
	}

	p, err := h.store.Get(r.Context(), orgID)
	if err != nil {
		h.logger.Error("failed to get business profile", "org_id", orgID, "error", err)
		http.Error(w, `{"error": "internal server error"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// UpdateProfileRequest is a partial update; nil or empty fields are left alone.
type UpdateProfileRequest struct {
	Name                  *string                 `json:"name,omitempty"`
	Industry              *industry.Key           `json:"industry,omitempty"`
	Phone                 *string                 `json:"phone,omitempty"`
	Address               *string                 `json:"address,omitempty"`
	Email                 *string                 `json:"email,omitempty"`
	Timezone              *string                 `json:"timezone,omitempty"`
	DefaultTone           *templates.Tone         `json:"default_tone,omitempty"`
	DefaultChannel        *templates.Channel      `json:"default_channel,omitempty"`
	NoticePeriod          *templates.NoticePeriod `json:"notice_period,omitempty"`
	CancellationFee       *templates.FeeOption    `json:"cancellation_fee,omitempty"`
	CancellationFeeCustom *string                 `json:"cancellation_fee_custom,omitempty"`
	NoShowFee             *templates.FeeOption    `json:"no_show_fee,omitempty"`
	NoShowFeeCustom       *string                 `json:"no_show_fee_custom,omitempty"`
	PolicyStyle           *templates.PolicyStyle  `json:"policy_style,omitempty"`
	IncludeLateArrival    *bool                   `json:"include_late_arrival,omitempty"`
	Receptionist          *Receptionist           `json:"receptionist,omitempty"`
}

func (req UpdateProfileRequest) apply(p *Profile) {
	setString(&p.Name, req.Name)
	setString(&p.Phone, req.Phone)
	setString(&p.Address, req.Address)
	setString(&p.Email, req.Email)
	setString(&p.Timezone, req.Timezone)
	setString(&p.CancellationFeeCustom, req.CancellationFeeCustom)
	setString(&p.NoShowFeeCustom, req.NoShowFeeCustom)
	if req.Industry != nil {
		p.Industry = *req.Industry
	}
	if req.DefaultTone != nil {
		p.DefaultTone = *req.DefaultTone
	}
	if req.DefaultChannel != nil {
		p.DefaultChannel = *req.DefaultChannel
	}
	if req.NoticePeriod != nil {
		p.NoticePeriod = *req.NoticePeriod
	}
	if req.CancellationFee != nil {
		p.CancellationFee = *req.CancellationFee
	}
	if req.NoShowFee != nil {
		p.NoShowFee = *req.NoShowFee
	}
	if req.PolicyStyle != nil {
		p.PolicyStyle = *req.PolicyStyle
	}
	if req.IncludeLateArrival != nil {
		p.IncludeLateArrival = *req.IncludeLateArrival
	}
	if req.Receptionist != nil {
		rc := *req.Receptionist
		if rc.CallWindowStart == "" {
			rc.CallWindowStart = p.Receptionist.CallWindowStart
		}
		if rc.CallWindowEnd == "" {
			rc.CallWindowEnd = p.Receptionist.CallWindowEnd
		}
		if rc.RemindHoursBefore == 0 {
			rc.RemindHoursBefore = p.Receptionist.RemindHoursBefore
		}
		p.Receptionist = rc
	}
}

// UpdateProfile creates or updates the profile for an org.
// PUT /api/orgs/{orgID}/profile
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	orgID := chi.URLParam(r, "orgID")
	if orgID == "" {
		http.Error(w, `{"error": "org_id required"}`, http.StatusBadRequest)
		return
	}

	var req UpdateProfileRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes)).Decode(&req); err != nil {
		http.Error(w, `{"error": "invalid JSON body"}`, http.StatusBadRequest)
		return
	}

	p, err := h.store.Get(r.Context(), orgID)
	if err != nil {
		h.logger.Error("failed to get business profile", "org_id", orgID, "error", err)
		http.Error(w, `{"error": "internal server error"}`, http.StatusInternalServerError)
		return
	}

	req.apply(p)
	p.OrgID = orgID
	if err := p.Validate(); err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid profile", "fields": verr.Fields})
			return
		}
		http.Error(w, `{"error": "invalid profile"}`, http.StatusBadRequest)
		return
	}

	p.Normalize()
	if err := h.store.Set(r.Context(), p); err != nil {
		h.logger.Error("failed to save business profile", "org_id", orgID, "error", err)
		http.Error(w, `{"error": "failed to save profile"}`, http.StatusInternalServerError)
		return
	}
	if err := h.audit.LogDetails(r.Context(), audit.EventProfileUpdated, orgID, audit.Details{}); err != nil {
		h.logger.Warn("failed to audit profile update", "org_id", orgID, "error", err)
	}

	h.logger.Info("business profile updated", "org_id", orgID, "industry", p.Industry)
	writeJSON(w, http.StatusOK, p)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
