package customers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/onespecapp/nemo-b2b-web-sub000/internal/audit"
	"github.com/onespecapp/nemo-b2b-web-sub000/internal/tenancy"
	"github.com/onespecapp/nemo-b2b-web-sub000/internal/validation"
	"github.com/onespecapp/nemo-b2b-web-sub000/pkg/logging"
)

const maxRequestBytes = 64 << 10

// Handler handles HTTP requests for customers.
type Handler struct {
	repo   Repository
	audit  *audit.Service
	logger *logging.Logger
}

// NewHandler creates a new customers handler. auditor may be nil.
func NewHandler(repo Repository, auditor *audit.Service, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		repo:   repo,
		audit:  auditor,
		logger: logger.Component("customers"),
	}
}

// CustomerView adds display formatting to a stored customer.
type CustomerView struct {
	*Customer
	PhoneDisplay string `json:"phone_display,omitempty"`
}

func viewOf(c *Customer) CustomerView {
	return CustomerView{Customer: c, PhoneDisplay: validation.FormatPhoneForDisplay(c.Phone)}
}

// CreateCustomer handles POST /api/orgs/{orgID}/customers.
func (h *Handler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req CreateCustomerRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	orgID, ok := tenancy.OrgIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusBadRequest, "missing org context")
		return
	}
	req.OrgID = orgID

	c, err := h.repo.Create(r.Context(), &req)
	if err != nil {
		if IsValidationError(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("failed to create customer", "org_id", orgID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create customer")
		return
	}

	if err := h.audit.LogDetails(r.Context(), audit.EventCustomerCreated, orgID, audit.Details{CustomerID: c.ID}); err != nil {
		h.logger.Warn("failed to audit customer creation", "org_id", orgID, "error", err)
	}
	h.logger.Info("customer created", "org_id", orgID, "id", c.ID, "phone", validation.MaskPhone(c.Phone))

	writeJSON(w, http.StatusCreated, viewOf(c))
}

// ListCustomersResponse is the response for listing customers.
type ListCustomersResponse struct {
	Customers []CustomerView `json:"customers"`
	Count     int            `json:"count"`
	Offset    int            `json:"offset"`
	Limit     int            `json:"limit"`
}

// ListCustomers handles GET /api/orgs/{orgID}/customers.
func (h *Handler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	orgID, ok := tenancy.OrgIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusBadRequest, "missing org context")
		return
	}

	filter := ListFilter{Limit: DefaultListLimit}
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 && limit <= MaxListLimit {
			filter.Limit = limit
		}
	}
	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		if offset, err := strconv.Atoi(offsetStr); err == nil && offset >= 0 {
			filter.Offset = offset
		}
	}

	list, err := h.repo.ListByOrg(r.Context(), orgID, filter)
	if err != nil {
		h.logger.Error("failed to list customers", "org_id", orgID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list customers")
		return
	}

	views := make([]CustomerView, len(list))
	for i, c := range list {
		views[i] = viewOf(c)
	}
	writeJSON(w, http.StatusOK, ListCustomersResponse{
		Customers: views,
		Count:     len(views),
		Offset:    filter.Offset,
		Limit:     filter.Limit,
	})
}

// GetCustomer handles GET /api/orgs/{orgID}/customers/{customerID}.
func (h *Handler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	orgID, ok := tenancy.OrgIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusBadRequest, "missing org context")
		return
	}
	id := chi.URLParam(r, "customerID")

	c, err := h.repo.GetByID(r.Context(), orgID, id)
	if errors.Is(err, ErrCustomerNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		h.logger.Error("failed to get customer", "org_id", orgID, "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, viewOf(c))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
