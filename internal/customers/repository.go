package customers

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Repository defines customer storage.
type Repository interface {
	Create(ctx context.Context, req *CreateCustomerRequest) (*Customer, error)
	GetByID(ctx context.Context, orgID, id string) (*Customer, error)
	ListByOrg(ctx context.Context, orgID string, filter ListFilter) ([]*Customer, error)
}

// InMemoryRepository keeps customers in a map. Used when no database is configured.
type InMemoryRepository struct {
	mu        sync.RWMutex
	customers map[string]*Customer
	now       func() time.Time
}

// NewInMemoryRepository creates a new in-memory repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		customers: make(map[string]*Customer),
		now:       time.Now,
	}
}

// Create stores a new customer.
func (r *InMemoryRepository) Create(ctx context.Context, req *CreateCustomerRequest) (*Customer, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	req.normalize()

	c := &Customer{
		ID:        uuid.New().String(),
		OrgID:     req.OrgID,
		Name:      req.Name,
		Phone:     req.Phone,
		Email:     req.Email,
		Notes:     req.Notes,
		CreatedAt: r.now().UTC(),
	}

	r.mu.Lock()
	r.customers[c.ID] = c
	r.mu.Unlock()

	return c, nil
}

// GetByID retrieves a customer scoped to the org.
func (r *InMemoryRepository) GetByID(ctx context.Context, orgID, id string) (*Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.customers[id]
	if !ok || c.OrgID != orgID {
		return nil, ErrCustomerNotFound
	}
	cp := *c
	return &cp, nil
}

// ListByOrg returns the org's customers, newest first.
func (r *InMemoryRepository) ListByOrg(ctx context.Context, orgID string, filter ListFilter) ([]*Customer, error) {
	filter = filter.normalized()

	r.mu.RLock()
	var matched []*Customer
	for _, c := range r.customers {
		if c.OrgID == orgID {
			cp := *c
			matched = append(matched, &cp)
		}
	}
	r.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID < matched[j].ID
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	if filter.Offset >= len(matched) {
		return []*Customer{}, nil
	}
	end := filter.Offset + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[filter.Offset:end], nil
}
